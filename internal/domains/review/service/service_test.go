package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carhive/config"
	"carhive/infras/otel/mocks"
	carMocks "carhive/internal/domains/car/mocks"
	reviewMocks "carhive/internal/domains/review/mocks"
	"carhive/internal/domains/review/model"
	"carhive/internal/domains/review/model/dto"
	"carhive/internal/domains/review/service"
	cacheMocks "carhive/shared/cache/mocks"
	"carhive/shared/constant"
	gDto "carhive/shared/dto"
)

func newReviewService(ctrl *gomock.Controller) (service.Review, *reviewMocks.MockReview, *carMocks.MockCar, *cacheMocks.MockRedisCache) {
	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockCarRepo := carMocks.NewMockCar(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCarRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCarRepo, mockCache
}

func TestReviewService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCarRepo, mockCache := newReviewService(ctrl)

	req := dto.CreateReviewRequest{
		Rating:  5,
		Comment: "Great car, smooth ride",
	}

	tests := []struct {
		name      string
		ctx       context.Context
		carID     string
		setupMock func()
		wantErr   bool
	}{
		{
			name:  "successful creation",
			ctx:   context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id"),
			carID: "car-id",
			setupMock: func() {
				mockCarRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, review model.Review) error {
						assert.Equal(t, "car-id", review.CarID)
						assert.Equal(t, "user-id", review.UserID)
						assert.Equal(t, 5, review.Rating)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "missing user in context",
			ctx:       context.Background(),
			carID:     "car-id",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:  "car not found",
			ctx:   context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id"),
			carID: "missing-car",
			setupMock: func() {
				mockCarRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name:  "insert error",
			ctx:   context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id"),
			carID: "car-id",
			setupMock: func() {
				mockCarRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(tt.ctx, tt.carID, req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReviewService_GetByCar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newReviewService(ctrl)

	reviews := []model.Review{
		{ID: "review-1", CarID: "car-id", UserID: "user-1", Rating: 5, Comment: "Great"},
		{ID: "review-2", CarID: "car-id", UserID: "user-2", Rating: 3, Comment: "Okay"},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantData  int
	}{
		{
			name: "cache miss, fetched from db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(reviews, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:  false,
			wantData: 2,
		},
		{
			name: "count error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetByCar(context.Background(), "car-id", gDto.QueryParams{Limit: 10, Page: 1})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantData, res.TotalData)
				assert.Len(t, res.Reviews, 2)
			}
		})
	}
}
