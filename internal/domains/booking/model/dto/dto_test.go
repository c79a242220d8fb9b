package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carhive/internal/domains/booking/model"
	"carhive/internal/domains/booking/model/dto"
)

func TestCreateBookingRequest_ParseDates(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateBookingRequest
		wantErr bool
	}{
		{
			name: "valid dates",
			req: dto.CreateBookingRequest{
				StartDate: "2030-06-01",
				EndDate:   "2030-06-04",
			},
			wantErr: false,
		},
		{
			name: "wrong layout",
			req: dto.CreateBookingRequest{
				StartDate: "01/06/2030",
				EndDate:   "04/06/2030",
			},
			wantErr: true,
		},
		{
			name: "empty end date",
			req: dto.CreateBookingRequest{
				StartDate: "2030-06-01",
				EndDate:   "",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := tt.req.ParseDates()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "2030-06-01", start.Format(dto.DateFormat))
				assert.Equal(t, "2030-06-04", end.Format(dto.DateFormat))
			}
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		StartDate: "2030-06-01",
		EndDate:   "2030-06-04",
	}

	start := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC)

	booking := req.ToModel("user-id", "car-id", start, end, 150)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "car-id", booking.CarID)
	assert.Equal(t, "user-id", booking.UserID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, 150.0, booking.TotalPrice)
	assert.Equal(t, "user-id", booking.CreatedBy)
}

func TestBookingResponse_FromModel(t *testing.T) {
	booking := model.Booking{
		ID:         "booking-id",
		CarID:      "car-id",
		UserID:     "user-id",
		StartDate:  time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC),
		TotalPrice: 150,
		Status:     model.StatusConfirmed,
	}

	var res dto.BookingResponse
	res.FromModel(booking)

	assert.Equal(t, "booking-id", res.ID)
	assert.Equal(t, "2030-06-01", res.StartDate)
	assert.Equal(t, "2030-06-04", res.EndDate)
	assert.Equal(t, model.StatusConfirmed, res.Status)
}

func TestNewBookingEvent(t *testing.T) {
	booking := model.Booking{
		ID:         "booking-id",
		CarID:      "car-id",
		UserID:     "user-id",
		TotalPrice: 150,
		Status:     model.StatusPending,
	}

	event := dto.NewBookingEvent(booking)

	assert.Equal(t, "booking-id", event.BookingID)
	assert.Equal(t, model.StatusPending, event.Status)
	assert.NotEmpty(t, event.OccurredAt)

	_, err := time.Parse(time.RFC3339, event.OccurredAt)
	assert.NoError(t, err)
}
