package calendar

import (
	"errors"
	"time"
)

// ErrNoUpcomingShoppingSunday is returned when the table holds no date after
// the queried one
var ErrNoUpcomingShoppingSunday = errors.New("no upcoming shopping sunday in calendar")

// IsShoppingSunday reports whether d is one of the designated dates
func (t *Table) IsShoppingSunday(d Date) bool {
	for _, s := range t.dates {
		if s == d {
			return true
		}
	}
	return false
}

// NextShoppingSunday returns the designated date closest to d that lies
// strictly after it. d itself never qualifies, even when it is a shopping
// Sunday.
func (t *Table) NextShoppingSunday(d Date) (Date, error) {
	var (
		best     Date
		bestDays int
		found    bool
	)
	for _, s := range t.dates {
		days := d.DaysUntil(s)
		if days <= 0 {
			continue
		}
		if !found || days < bestDays {
			best, bestDays, found = s, days, true
		}
	}
	if !found {
		return Date{}, ErrNoUpcomingShoppingSunday
	}
	return best, nil
}

// NextSunday returns the first Sunday strictly after d. For a Sunday that is
// the following week's Sunday.
func NextSunday(d Date) Date {
	days := (7 - int(d.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return d.AddDays(days)
}

// Today returns the host's local calendar date
func Today() Date {
	return FromTime(time.Now())
}
