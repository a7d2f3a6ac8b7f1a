// Package calendar holds the shopping Sunday table and the date arithmetic
// used to query it.
package calendar

import (
	"fmt"
	"time"
)

// DateFormat is the ISO-8601 calendar date layout used on the wire
const DateFormat = "2006-01-02"

// Date is a calendar date without time of day or timezone
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for year, month and day. It fails when the
// values do not name a real calendar date (e.g. 2019-02-30).
func NewDate(year, month, day int) (Date, error) {
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, fmt.Errorf("invalid calendar date %04d-%02d-%02d", year, month, day)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// MustDate is like NewDate but panics on an invalid date
func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns the calendar date of t in t's location
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// Time returns the date at noon UTC. Noon keeps day arithmetic clear of
// any DST or offset edge.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// IsSunday reports whether d falls on a Sunday
func (d Date) IsSunday() bool {
	return d.Weekday() == time.Sunday
}

// AddDays returns d shifted by n days
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to other (negative if other
// is earlier)
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to
// or after other
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// Before reports whether d is before other
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is after other
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// IsZero reports whether d is the zero Date
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
