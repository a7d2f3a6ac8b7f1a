package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, dates ...Date) *Table {
	t.Helper()
	table, err := NewTable(dates)
	require.NoError(t, err)
	return table
}

func TestIsShoppingSunday(t *testing.T) {
	table := newTestTable(t,
		MustDate(2019, 1, 1),
		MustDate(2019, 1, 2),
		MustDate(2019, 5, 12),
		MustDate(2019, 6, 17),
		MustDate(2019, 9, 20),
	)

	assert.True(t, table.IsShoppingSunday(MustDate(2019, 1, 2)), "listed date should match")
	assert.False(t, table.IsShoppingSunday(MustDate(2019, 1, 3)), "unlisted date should not match")
}

func TestNextSunday(t *testing.T) {
	tests := []struct {
		date Date
		want Date
	}{
		{MustDate(2019, 1, 1), MustDate(2019, 1, 6)},
		{MustDate(2019, 6, 12), MustDate(2019, 6, 16)},
		{MustDate(2019, 10, 20), MustDate(2019, 10, 27)},
		{MustDate(2019, 10, 26), MustDate(2019, 10, 27)},
		{MustDate(2019, 12, 30), MustDate(2020, 1, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, NextSunday(tt.date))
		})
	}
}

func TestNextSundayProperties(t *testing.T) {
	start := MustDate(2018, 12, 1)
	for i := 0; i < 800; i++ {
		d := start.AddDays(i)
		next := NextSunday(d)

		require.Equal(t, time.Sunday, next.Weekday(), "next sunday of %s", d)
		require.True(t, next.After(d), "next sunday of %s must be in the future", d)
		require.LessOrEqual(t, d.DaysUntil(next), 7, "next sunday of %s too far away", d)

		if d.IsSunday() {
			require.Equal(t, next, NextSunday(next.AddDays(-1)), "sunday %s", d)
		}
	}
}

func TestNextShoppingSunday(t *testing.T) {
	table := newTestTable(t,
		MustDate(2019, 5, 12),
		MustDate(2019, 6, 17),
		MustDate(2019, 9, 20),
	)

	tests := []struct {
		date Date
		want Date
	}{
		{MustDate(2019, 3, 10), MustDate(2019, 5, 12)},
		{MustDate(2019, 5, 12), MustDate(2019, 6, 17)},
		{MustDate(2019, 6, 10), MustDate(2019, 6, 17)},
		{MustDate(2019, 7, 10), MustDate(2019, 9, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			got, err := table.NextShoppingSunday(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextShoppingSundayExhausted(t *testing.T) {
	table := newTestTable(t,
		MustDate(2019, 5, 12),
		MustDate(2019, 6, 17),
		MustDate(2019, 9, 20),
	)

	for _, d := range []Date{MustDate(2019, 9, 20), MustDate(2019, 9, 21), MustDate(2030, 1, 1)} {
		_, err := table.NextShoppingSunday(d)
		assert.ErrorIs(t, err, ErrNoUpcomingShoppingSunday, "date %s", d)
	}

	empty := newTestTable(t)
	_, err := empty.NextShoppingSunday(MustDate(2019, 1, 1))
	assert.ErrorIs(t, err, ErrNoUpcomingShoppingSunday)
}

func TestNextShoppingSundayNeverInPast(t *testing.T) {
	table := Default()
	sundays := table.AvailableSundays()
	last := sundays[len(sundays)-1]

	for d := sundays[0].AddDays(-10); d.Before(last); d = d.AddDays(1) {
		next, err := table.NextShoppingSunday(d)
		require.NoError(t, err, "date %s", d)
		require.True(t, next.After(d), "next shopping sunday %s not after %s", next, d)
		require.True(t, table.IsShoppingSunday(next))
	}
}
