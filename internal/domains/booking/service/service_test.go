package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carhive/config"
	kafkaMocks "carhive/infras/kafka/mocks"
	"carhive/infras/otel/mocks"
	bookingMocks "carhive/internal/domains/booking/mocks"
	"carhive/internal/domains/booking/model"
	"carhive/internal/domains/booking/model/dto"
	"carhive/internal/domains/booking/service"
	carMocks "carhive/internal/domains/car/mocks"
	carModel "carhive/internal/domains/car/model"
	cacheMocks "carhive/shared/cache/mocks"
	"carhive/shared/constant"
	gDto "carhive/shared/dto"
	gModel "carhive/shared/model"
	"carhive/shared/timezone"
)

type bookingMockSet struct {
	repo    *bookingMocks.MockBooking
	carRepo *carMocks.MockCar
	cache   *cacheMocks.MockRedisCache
	kafka   *kafkaMocks.MockClient
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, bookingMockSet) {
	set := bookingMockSet{
		repo:    bookingMocks.NewMockBooking(ctrl),
		carRepo: carMocks.NewMockCar(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(set.repo, set.carRepo, cfg, set.cache, mocks.NewOtel(), set.kafka)

	return svc, set
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func bookingDate(daysFromNow int) string {
	return timezone.Now().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	car := carModel.Car{
		ID:          "car-id",
		Brand:       "Toyota",
		Model:       "Avanza",
		PricePerDay: 50,
		Available:   true,
	}

	tests := []struct {
		name       string
		ctx        context.Context
		carID      string
		req        dto.CreateBookingRequest
		setupMock  func()
		wantErr    bool
		wantTotal  float64
		wantStatus string
	}{
		{
			name:  "successful creation with snapshot price",
			ctx:   userContext("user-id", constant.RoleUser),
			carID: "car-id",
			req: dto.CreateBookingRequest{
				StartDate: bookingDate(7),
				EndDate:   bookingDate(10),
			},
			setupMock: func() {
				set.carRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(car, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.kafka.EXPECT().
					SendMessages(gomock.Any(), service.TopicBookingCreated, gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:    false,
			wantTotal:  150,
			wantStatus: model.StatusPending,
		},
		{
			name:  "missing user in context",
			ctx:   context.Background(),
			carID: "car-id",
			req: dto.CreateBookingRequest{
				StartDate: bookingDate(7),
				EndDate:   bookingDate(10),
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:  "car not found",
			ctx:   userContext("user-id", constant.RoleUser),
			carID: "missing-car",
			req: dto.CreateBookingRequest{
				StartDate: bookingDate(7),
				EndDate:   bookingDate(10),
			},
			setupMock: func() {
				set.carRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(carModel.Car{}, nil)
			},
			wantErr: true,
		},
		{
			name:  "invalid date format",
			ctx:   userContext("user-id", constant.RoleUser),
			carID: "car-id",
			req: dto.CreateBookingRequest{
				StartDate: "01-06-2030",
				EndDate:   "04-06-2030",
			},
			setupMock: func() {
				set.carRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(car, nil)
			},
			wantErr: true,
		},
		{
			name:  "end date equals start date",
			ctx:   userContext("user-id", constant.RoleUser),
			carID: "car-id",
			req: dto.CreateBookingRequest{
				StartDate: bookingDate(7),
				EndDate:   bookingDate(7),
			},
			setupMock: func() {
				set.carRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(car, nil)
			},
			wantErr: true,
		},
		{
			name:  "end date before start date",
			ctx:   userContext("user-id", constant.RoleUser),
			carID: "car-id",
			req: dto.CreateBookingRequest{
				StartDate: bookingDate(10),
				EndDate:   bookingDate(7),
			},
			setupMock: func() {
				set.carRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(car, nil)
			},
			wantErr: true,
		},
		{
			name:  "start date in the past",
			ctx:   userContext("user-id", constant.RoleUser),
			carID: "car-id",
			req: dto.CreateBookingRequest{
				StartDate: bookingDate(-10),
				EndDate:   bookingDate(-7),
			},
			setupMock: func() {
				set.carRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(car, nil)
			},
			wantErr: true,
		},
		{
			name:  "repository error",
			ctx:   userContext("user-id", constant.RoleUser),
			carID: "car-id",
			req: dto.CreateBookingRequest{
				StartDate: bookingDate(7),
				EndDate:   bookingDate(10),
			},
			setupMock: func() {
				set.carRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(car, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(tt.ctx, tt.carID, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, res.TotalPrice)
				assert.Equal(t, tt.wantStatus, res.Status)
				assert.Equal(t, tt.req.StartDate, res.StartDate)
				assert.Equal(t, tt.req.EndDate, res.EndDate)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	bookings := []model.Booking{
		{
			ID:         "booking-id",
			CarID:      "car-id",
			UserID:     "user-id",
			StartDate:  time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC),
			TotalPrice: 150,
			Status:     model.StatusPending,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  "user-id",
				ModifiedBy: "user-id",
			},
		},
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantData  int
	}{
		{
			name: "admin can list all bookings",
			ctx:  userContext("admin-id", constant.RoleAdmin),
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				set.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				set.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookings, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:  false,
			wantData: 1,
		},
		{
			name:      "non-admin is rejected",
			ctx:       userContext("user-id", constant.RoleUser),
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetAll(tt.ctx, gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantData, res.TotalData)
			}
		})
	}
}

func TestBookingService_GetMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	set.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assertOwnerFilter(t, filter, "user-id")

			return 0, nil
		})

	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assertOwnerFilter(t, filter, "user-id")

			return nil, nil
		})

	set.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	ctx := userContext("user-id", constant.RoleUser)
	res, err := svc.GetMine(ctx, gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 0, res.TotalData)
}

// assertOwnerFilter checks the listing filter was pinned to the caller.
func assertOwnerFilter(t *testing.T, filter gDto.FilterGroup, userID string) {
	t.Helper()

	for _, raw := range filter.Filters {
		if f, ok := raw.(gDto.Filter); ok && f.Field == model.FieldUserID && f.Value == userID {
			return
		}
	}

	t.Errorf("filter is not pinned to user %q", userID)
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	booking := model.Booking{
		ID:         "booking-id",
		CarID:      "car-id",
		UserID:     "user-id",
		StartDate:  time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC),
		TotalPrice: 150,
		Status:     model.StatusPending,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "owner can read own booking",
			ctx:  userContext("user-id", constant.RoleUser),
			id:   "booking-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "booking-id",
		},
		{
			name: "other user is rejected",
			ctx:  userContext("another-user", constant.RoleUser),
			id:   "booking-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: true,
		},
		{
			name: "admin can read any booking",
			ctx:  userContext("admin-id", constant.RoleAdmin),
			id:   "booking-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "booking-id",
		},
		{
			name: "booking not found",
			ctx:  userContext("user-id", constant.RoleUser),
			id:   "nonexistent-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(tt.ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, res.ID)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	booking := model.Booking{
		ID:     "booking-id",
		CarID:  "car-id",
		UserID: "user-id",
		Status: model.StatusPending,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateBookingStatusRequest
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "admin confirms booking",
			ctx:  userContext("admin-id", constant.RoleAdmin),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			id:   "booking-id",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.kafka.EXPECT().
					SendMessages(gomock.Any(), service.TopicBookingStatusUpdated, gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "admin reverts booking to pending",
			ctx:  userContext("admin-id", constant.RoleAdmin),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusPending},
			id:   "booking-id",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", Status: model.StatusConfirmed}, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.kafka.EXPECT().
					SendMessages(gomock.Any(), service.TopicBookingStatusUpdated, gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "non-admin is rejected",
			ctx:       userContext("user-id", constant.RoleUser),
			req:       dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			id:        "booking-id",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "invalid status",
			ctx:       userContext("admin-id", constant.RoleAdmin),
			req:       dto.UpdateBookingStatusRequest{Status: "done"},
			id:        "booking-id",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "booking not found",
			ctx:  userContext("admin-id", constant.RoleAdmin),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCanceled},
			id:   "nonexistent-id",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "update error",
			ctx:  userContext("admin-id", constant.RoleAdmin),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			id:   "booking-id",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.UpdateStatus(tt.ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
