package dto

import (
	"time"

	"carhive/internal/domains/booking/model"
	"carhive/shared"
	gDto "carhive/shared/dto"
	gModel "carhive/shared/model"
	"carhive/shared/timezone"

	"github.com/google/uuid"
)

const DateFormat = "2006-01-02"

type CreateBookingRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
}

// ParseDates interprets the request dates in the application timezone.
func (c *CreateBookingRequest) ParseDates() (start, end time.Time, err error) {
	start, err = timezone.Parse(DateFormat, c.StartDate)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.Parse(DateFormat, c.EndDate)

	return start, end, err
}

// ToModel builds the persisted booking. Status is always pending at creation,
// regardless of anything the client sends.
func (c *CreateBookingRequest) ToModel(user, carID string, start, end time.Time, totalPrice float64) model.Booking {
	return model.Booking{
		ID:         uuid.NewString(),
		CarID:      carID,
		UserID:     user,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: totalPrice,
		Status:     model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=pending confirmed canceled"`
}

type BookingResponse struct {
	ID         string  `json:"id"`
	CarID      string  `json:"car_id"`
	UserID     string  `json:"user_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CarID = model.CarID
	r.UserID = model.UserID
	r.StartDate = model.StartDate.Format(DateFormat)
	r.EndDate = model.EndDate.Format(DateFormat)
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to Kafka on booking lifecycle changes.
type BookingEvent struct {
	BookingID  string  `json:"booking_id"`
	CarID      string  `json:"car_id"`
	UserID     string  `json:"user_id"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	OccurredAt string  `json:"occurred_at"`
}

func NewBookingEvent(booking model.Booking) BookingEvent {
	return BookingEvent{
		BookingID:  booking.ID,
		CarID:      booking.CarID,
		UserID:     booking.UserID,
		Status:     booking.Status,
		TotalPrice: booking.TotalPrice,
		OccurredAt: timezone.Now().Format(time.RFC3339),
	}
}
