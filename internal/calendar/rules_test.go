package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEaster(t *testing.T) {
	tests := map[int]Date{
		2019: MustDate(2019, 4, 21),
		2024: MustDate(2024, 3, 31),
		2025: MustDate(2025, 4, 20),
		2026: MustDate(2026, 4, 5),
	}

	for year, want := range tests {
		assert.Equal(t, want, calculateEaster(year), "easter %d", year)
	}
}

func TestStatutorySundays(t *testing.T) {
	got, err := StatutorySundays(2024)
	require.NoError(t, err)
	assert.Equal(t, []Date{
		MustDate(2024, 1, 28),
		MustDate(2024, 3, 24),
		MustDate(2024, 4, 28),
		MustDate(2024, 6, 30),
		MustDate(2024, 8, 25),
		MustDate(2024, 12, 15),
		MustDate(2024, 12, 22),
	}, got)
}

func TestStatutorySundaysChristmasRegimes(t *testing.T) {
	// 2023: 24 December is itself a Sunday before the 25th
	got, err := StatutorySundays(2023)
	require.NoError(t, err)
	assert.Contains(t, got, MustDate(2023, 12, 24))
	assert.Contains(t, got, MustDate(2023, 12, 17))

	// 2028: 24 December is a Sunday and no longer a trading day
	got, err = StatutorySundays(2028)
	require.NoError(t, err)
	assert.NotContains(t, got, MustDate(2028, 12, 24))
	assert.Contains(t, got, MustDate(2028, 12, 3))
	assert.Contains(t, got, MustDate(2028, 12, 10))
	assert.Contains(t, got, MustDate(2028, 12, 17))
}

func TestStatutorySundaysAreSundays(t *testing.T) {
	for year := FirstStatutoryYear; year <= 2040; year++ {
		got, err := StatutorySundays(year)
		require.NoError(t, err)
		for i, d := range got {
			assert.True(t, d.IsSunday(), "%s is not sunday", d)
			assert.Equal(t, year, d.Year)
			assert.NotEqual(t, calculateEaster(year), d, "easter is never a trading day")
			if i > 0 {
				assert.True(t, got[i-1].Before(d))
			}
		}
	}
}

func TestStatutorySundaysUnsupportedYear(t *testing.T) {
	_, err := StatutorySundays(2018)
	assert.ErrorIs(t, err, ErrUnsupportedYear)
}

func TestStatutoryTable(t *testing.T) {
	table, err := StatutoryTable(2019, 2026)
	require.NoError(t, err)
	assert.Equal(t, Default().AvailableSundays(), table.AvailableSundays())

	_, err = StatutoryTable(2026, 2025)
	assert.Error(t, err)

	_, err = StatutoryTable(2017, 2019)
	assert.ErrorIs(t, err, ErrUnsupportedYear)
}
