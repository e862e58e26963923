package wizard

import (
	"time"

	"merch-intake/models"
)

const (
	// MinimumOrderQuantity is the default MOQ below which a warning is shown.
	// A wizard uses the MOQ of its catalog.
	MinimumOrderQuantity = models.DefaultMinimumOrderQuantity
	// RushThresholdDays is the default lead time under which an order is a rush order
	RushThresholdDays = models.DefaultRushThresholdDays
)

// IsBelowMinimum reports whether quantity is under the minimum order quantity
func IsBelowMinimum(quantity int) bool {
	return quantity < MinimumOrderQuantity
}

// IsRushOrder reports whether dueDate is set and fewer than RushThresholdDays
// whole days away from today.
func IsRushOrder(dueDate *time.Time, today time.Time) bool {
	return isRushWithin(dueDate, today, RushThresholdDays)
}

func isRushWithin(dueDate *time.Time, today time.Time, days int) bool {
	if dueDate == nil {
		return false
	}
	return DaysBetween(today, *dueDate) < days
}

// DaysBetween counts calendar days from a to b, ignoring the time of day.
// The location of a is used for both dates.
func DaysBetween(a, b time.Time) int {
	loc := a.Location()
	b = b.In(loc)
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
