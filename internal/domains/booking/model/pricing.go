package model

import (
	"time"
)

const hoursPerDay = 24

// RentalDays returns the number of billable days between start and end at
// calendar-day granularity. Both dates are normalized to midnight UTC before
// subtracting, so time-of-day and timezone offsets (including DST shifts in
// the application timezone) never change the count. Callers must ensure end
// is after start.
func RentalDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	return int(e.Sub(s).Hours() / hoursPerDay)
}

// TotalPrice prices a rental at the per-day rate snapshotted at booking time.
func TotalPrice(days int, pricePerDay float64) float64 {
	return float64(days) * pricePerDay
}
