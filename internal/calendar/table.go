package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateDate = errors.New("duplicate date in calendar")
	ErrUnorderedDate = errors.New("calendar dates out of order")
)

// Table is an immutable, ordered set of designated shopping Sundays. It is
// safe for concurrent use since nothing writes to it after construction.
type Table struct {
	dates []Date
}

// NewTable builds a table from dates, which must be in ascending order
// without duplicates. Weekdays are not checked here; the shipped table is
// verified by tests.
func NewTable(dates []Date) (*Table, error) {
	out := make([]Date, len(dates))
	for i, d := range dates {
		if d.IsZero() {
			return nil, fmt.Errorf("entry %d: zero date", i)
		}
		if i > 0 {
			switch d.Compare(dates[i-1]) {
			case 0:
				return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, d)
			case -1:
				return nil, fmt.Errorf("%w: %s follows %s", ErrUnorderedDate, d, dates[i-1])
			}
		}
		out[i] = d
	}
	return &Table{dates: out}, nil
}

// MustTable is like NewTable but panics on error
func MustTable(dates []Date) *Table {
	t, err := NewTable(dates)
	if err != nil {
		panic(err)
	}
	return t
}

// AvailableSundays returns every designated date in table order. The
// returned slice is a copy.
func (t *Table) AvailableSundays() []Date {
	out := make([]Date, len(t.dates))
	copy(out, t.dates)
	return out
}

// Len returns the number of designated dates
func (t *Table) Len() int {
	return len(t.dates)
}

// Years returns the distinct years covered by the table, ascending
func (t *Table) Years() []int {
	var years []int
	for _, d := range t.dates {
		if len(years) == 0 || years[len(years)-1] != d.Year {
			years = append(years, d.Year)
		}
	}
	return years
}

// InYear returns the designated dates of a single year
func (t *Table) InYear(year int) []Date {
	var out []Date
	for _, d := range t.dates {
		if d.Year == year {
			out = append(out, d)
		}
	}
	return out
}
