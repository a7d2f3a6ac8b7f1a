package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnsupportedYear is returned for years before the trade restriction act
// reached its current shape
var ErrUnsupportedYear = errors.New("no statutory rules for year")

// FirstStatutoryYear is the earliest year StatutorySundays can compute
const FirstStatutoryYear = 2019

// StatutorySundays returns the shopping Sundays of year as derived from the
// trade restriction act, in ascending order
func StatutorySundays(year int) ([]Date, error) {
	if year < FirstStatutoryYear {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedYear, year)
	}

	easter := calculateEaster(year)

	var candidates []Date

	// Last Sunday of every month in 2019, only Jan/Apr/Jun/Aug afterwards
	months := []time.Month{time.January, time.April, time.June, time.August}
	if year == 2019 {
		months = months[:0]
		for m := time.January; m <= time.December; m++ {
			months = append(months, m)
		}
	}
	for _, m := range months {
		candidates = append(candidates, lastSundayOf(year, m))
	}

	// Sunday before Easter
	candidates = append(candidates, easter.AddDays(-7))

	// Christmas trade: two Sundays before the 25th, three before the 24th
	// since 24 December became a public holiday
	if year < 2025 {
		candidates = append(candidates, sundaysBefore(MustDate(year, 12, 25), 2)...)
	} else {
		candidates = append(candidates, sundaysBefore(MustDate(year, 12, 24), 3)...)
	}

	// Sunday public holidays push the trading day back a week
	holidays := map[Date]bool{
		easter:             true,
		easter.AddDays(49): true, // Pentecost
	}

	seen := make(map[Date]bool)
	var out []Date
	for _, d := range candidates {
		for holidays[d] {
			d = d.AddDays(-7)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sortDates(out)
	return out, nil
}

// StatutoryTable builds a table covering the years from..to inclusive
func StatutoryTable(from, to int) (*Table, error) {
	if to < from {
		return nil, fmt.Errorf("invalid year range %d..%d", from, to)
	}
	var dates []Date
	for y := from; y <= to; y++ {
		ds, err := StatutorySundays(y)
		if err != nil {
			return nil, err
		}
		dates = append(dates, ds...)
	}
	return NewTable(dates)
}

// calculateEaster calculates Easter Sunday using the Meeus/Jones/Butcher algorithm
func calculateEaster(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return MustDate(year, month, day)
}

// lastSundayOf returns the last Sunday of the given month
func lastSundayOf(year int, month time.Month) Date {
	d := FromTime(time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC))
	return d.AddDays(-int(d.Weekday()))
}

// sundaysBefore returns the n Sundays strictly before d, latest first
func sundaysBefore(d Date, n int) []Date {
	offset := int(d.Weekday())
	if offset == 0 {
		offset = 7
	}
	first := d.AddDays(-offset)
	out := make([]Date, n)
	for i := range out {
		out[i] = first.AddDays(-7 * i)
	}
	return out
}

// sortDates sorts dates in ascending order
func sortDates(dates []Date) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}
