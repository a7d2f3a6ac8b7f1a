package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		wantErr bool
	}{
		{name: "Valid date", y: 2019, m: 1, d: 27},
		{name: "Leap day", y: 2024, m: 2, d: 29},
		{name: "Non-leap Feb 29", y: 2023, m: 2, d: 29, wantErr: true},
		{name: "Day out of range", y: 2019, m: 2, d: 30, wantErr: true},
		{name: "Month out of range", y: 2019, m: 13, d: 1, wantErr: true},
		{name: "Zero day", y: 2019, m: 1, d: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDate(tt.y, tt.m, tt.d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.y, d.Year)
			assert.Equal(t, time.Month(tt.m), d.Month)
			assert.Equal(t, tt.d, d.Day)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2019-05-12")
	require.NoError(t, err)
	assert.Equal(t, MustDate(2019, 5, 12), d)

	_, err = ParseDate("2019-02-30")
	assert.Error(t, err)

	_, err = ParseDate("12.05.2019")
	assert.Error(t, err)
}

func TestFromTimeUsesLocation(t *testing.T) {
	warsaw := time.FixedZone("CEST", 2*60*60)
	// 23:30 UTC on the 11th is already the 12th in Warsaw
	ts := time.Date(2019, 5, 11, 23, 30, 0, 0, time.UTC).In(warsaw)
	assert.Equal(t, MustDate(2019, 5, 12), FromTime(ts))
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "2019-01-06", MustDate(2019, 1, 6).String())
	assert.Equal(t, "0999-12-31", Date{Year: 999, Month: time.December, Day: 31}.String())
}

func TestDateCompare(t *testing.T) {
	a := MustDate(2019, 5, 12)
	b := MustDate(2019, 6, 17)
	c := MustDate(2020, 1, 1)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, c.Compare(b))
	assert.Equal(t, 0, a.Compare(MustDate(2019, 5, 12)))
	assert.True(t, a.Before(b))
	assert.True(t, c.After(a))
	assert.False(t, a.After(a))
}

func TestDateArithmetic(t *testing.T) {
	d := MustDate(2019, 12, 29)
	assert.Equal(t, MustDate(2020, 1, 5), d.AddDays(7))
	assert.Equal(t, MustDate(2019, 12, 28), d.AddDays(-1))
	assert.Equal(t, 7, d.DaysUntil(d.AddDays(7)))
	assert.Equal(t, -1, d.DaysUntil(d.AddDays(-1)))

	// Across the spring DST change in Europe
	assert.Equal(t, 1, MustDate(2019, 3, 30).DaysUntil(MustDate(2019, 3, 31)))
	assert.Equal(t, 366, MustDate(2024, 1, 1).DaysUntil(MustDate(2025, 1, 1)))
}
