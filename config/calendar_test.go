package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCalendarTableMissingFileUsesDefaults(t *testing.T) {
	table, err := LoadCalendarTable(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	raya, ok := table.Holidays["2025-03-31"]
	require.True(t, ok)
	assert.Equal(t, "Hari Raya Aidilfitri", raya.Name)
	assert.Equal(t, 0.50, raya.Factor)
	assert.Equal(t, 5, raya.PreDays)
	assert.Equal(t, 2, raya.PostDays)
	assert.NotEmpty(t, table.Ramadan)
	assert.NotEmpty(t, table.SchoolHolidays)
	assert.Contains(t, table.CNYDates, 2025)
}

func TestLoadCalendarTableParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.yml")
	content := `holidays:
  "2025-07-04":
    name: Test Day
    factor: 0.22
    pre_days: 2
    post_days: 1
ramadan:
  - start: 2025-03-01
    end: 2025-03-30
    factor: 0.15
school_holidays:
  - start: 2025-08-16
    end: 2025-08-24
    name: Short Break
    factor: 0.10
cny_dates:
  2025: 2025-01-29
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadCalendarTable(path)
	require.NoError(t, err)
	require.Len(t, table.Holidays, 1)
	assert.Equal(t, "Test Day", table.Holidays["2025-07-04"].Name)
	assert.Equal(t, 0.22, table.Holidays["2025-07-04"].Factor)
	assert.Equal(t, time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC), table.CNYDates[2025].Time)
}

func TestLoadCalendarTablePartialFileInheritsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.yml")
	content := `holidays:
  "2025-07-04":
    name: Test Day
    factor: 0.22
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadCalendarTable(path)
	require.NoError(t, err)
	require.Len(t, table.Holidays, 1)

	defaults := DefaultCalendarTable()
	assert.Equal(t, defaults.Ramadan, table.Ramadan)
	assert.Equal(t, defaults.SchoolHolidays, table.SchoolHolidays)
	assert.Equal(t, defaults.CNYDates, table.CNYDates)
}

func TestLoadCalendarTableMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.yml")
	require.NoError(t, os.WriteFile(path, []byte("holidays: [not: a: map"), 0o644))

	_, err := LoadCalendarTable(path)
	assert.Error(t, err)
}

func TestWindowContains(t *testing.T) {
	window := Window{Start: mustDate("2025-08-16"), End: mustDate("2025-08-24"), Factor: 0.10}

	assert.True(t, window.Contains(time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)))
	assert.True(t, window.Contains(time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)))
}
