package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/shopping-sunday/internal/app"
	"github.com/klabast/wb-services/shopping-sunday/internal/calendar"
)

func TestWriteCheckJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeCheck(&buf, calendar.Default(), calendar.MustDate(2019, 5, 20), false, 0)
	require.NoError(t, err)

	var payload app.StatusPayload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, app.StatusPayload{
		IsTodayShoppingSunday: false,
		IsNextSundayShopping:  true,
		NextShoppingSunday:    "2019-05-26",
	}, payload)
}

func TestWriteCheckPretty(t *testing.T) {
	var buf bytes.Buffer
	err := writeCheck(&buf, calendar.Default(), calendar.MustDate(2019, 5, 26), true, 80)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Date                   2019-05-26 (Sunday)")
	assert.Contains(t, out, "Shopping Sunday today  yes")
	assert.Contains(t, out, "Coming Sunday          2019-06-02 (no)")
	assert.Contains(t, out, "Next shopping Sunday   2019-06-30 (in 35 days)")
}

func TestWriteCheckNarrowTerminal(t *testing.T) {
	var buf bytes.Buffer
	err := writeCheck(&buf, calendar.Default(), calendar.MustDate(2019, 5, 26), true, 20)
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len(line), 20, line)
	}
}

func TestWriteCheckExhausted(t *testing.T) {
	var buf bytes.Buffer
	err := writeCheck(&buf, calendar.Default(), calendar.MustDate(2030, 1, 1), false, 0)
	assert.ErrorIs(t, err, calendar.ErrNoUpcomingShoppingSunday)
	assert.Empty(t, buf.String())
}

func TestWriteGenerate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeGenerate(&buf, 2025, 2026))

	table, err := calendar.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, append(calendar.Default().InYear(2025), calendar.Default().InYear(2026)...), table.AvailableSundays())

	assert.Error(t, writeGenerate(&buf, 2010, 2011))
}

func TestLoadTable(t *testing.T) {
	table, err := LoadTable("")
	require.NoError(t, err)
	assert.Same(t, calendar.Default(), table)

	_, err = LoadTable("does-not-exist.yaml")
	assert.Error(t, err)
}
