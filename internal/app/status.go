package app

import (
	"fmt"

	"github.com/klabast/wb-services/shopping-sunday/internal/calendar"
)

// BuildStatus evaluates the table against today. All fields are computed
// from the same date; a table without an upcoming date yields an error and
// no partial status.
func BuildStatus(table *calendar.Table, today calendar.Date) (ShoppingStatus, error) {
	next, err := table.NextShoppingSunday(today)
	if err != nil {
		return ShoppingStatus{}, fmt.Errorf("status for %s: %w", today, err)
	}

	nextSunday := calendar.NextSunday(today)
	return ShoppingStatus{
		Today:                 today,
		IsTodayShoppingSunday: table.IsShoppingSunday(today),
		IsNextSundayShopping:  table.IsShoppingSunday(nextSunday),
		NextSunday:            nextSunday,
		NextShoppingSunday:    next,
	}, nil
}

// Payload converts the status to its wire form
func (s ShoppingStatus) Payload() StatusPayload {
	return StatusPayload{
		IsTodayShoppingSunday: s.IsTodayShoppingSunday,
		IsNextSundayShopping:  s.IsNextSundayShopping,
		NextShoppingSunday:    s.NextShoppingSunday.String(),
	}
}

// DaysUntilNext returns the number of days until the next shopping Sunday
func (s ShoppingStatus) DaysUntilNext() int {
	return s.Today.DaysUntil(s.NextShoppingSunday)
}

// FormatDates maps dates to their YYYY-MM-DD strings, preserving order
func FormatDates(dates []calendar.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}
