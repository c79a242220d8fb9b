package model

import (
	"carhive/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldCarID      = "car_id"
	FieldUserID     = "user_id"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldTotalPrice = "total_price"
	FieldStatus     = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

// ValidStatus reports whether status belongs to the booking status enum.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return true
	}

	return false
}

type Booking struct {
	ID         string    `db:"id"`
	CarID      string    `db:"car_id"`
	UserID     string    `db:"user_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	TotalPrice float64   `db:"total_price"`
	Status     string    `db:"status"`
	model.Metadata
}
