package pricestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "prices.csv"))
	require.NoError(t, err)
	return store
}

func TestNewBootstrapsTemplate(t *testing.T) {
	store := newTestStore(t)

	periods, err := store.Periods()
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, "01.01.2025 - 07.01.2025", periods[0].DateRange)
	assert.Equal(t, 6.50, periods[0].AvgPrice)
}

func TestAppendAndSortByEndDate(t *testing.T) {
	store := newTestStore(t)

	// Appended out of order; Periods must sort ascending by end date.
	require.NoError(t, store.Append("15.01.2025 - 21.01.2025", 6.80))
	require.NoError(t, store.Append("08.01.2025 - 14.01.2025", 6.60))

	periods, err := store.Periods()
	require.NoError(t, err)
	require.Len(t, periods, 3)
	assert.Equal(t, 6.50, periods[0].AvgPrice)
	assert.Equal(t, 6.60, periods[1].AvgPrice)
	assert.Equal(t, 6.80, periods[2].AvgPrice)
	for i := 1; i < len(periods); i++ {
		assert.True(t, periods[i].EndDate.After(periods[i-1].EndDate))
	}
}

func TestAppendRejectsBadInput(t *testing.T) {
	store := newTestStore(t)

	assert.Error(t, store.Append("not a range", 6.50))
	assert.Error(t, store.Append("08.01.2025 - 14.01.2025", -1))
	assert.Error(t, store.Append("08.01.2025 - 14.01.2025", 0))
}

func TestPeriodsDropsUnparseableRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	csv := "Date_Range,Avg_Price\n" +
		"01.01.2025 - 07.01.2025,6.50\n" +
		"garbage,6.60\n" +
		"08.01.2025 - 14.01.2025,not-a-price\n" +
		"08.01.2025 - 14.01.2025,6.70\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	store, err := New(path)
	require.NoError(t, err)

	periods, err := store.Periods()
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, 6.50, periods[0].AvgPrice)
	assert.Equal(t, 6.70, periods[1].AvgPrice)
}

func TestParseDateRange(t *testing.T) {
	endDate, err := ParseDateRange("01.01.2025 - 07.01.2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-07", endDate.Format("2006-01-02"))

	_, err = ParseDateRange("07.01.2025")
	assert.Error(t, err)

	_, err = ParseDateRange("01.01.2025 - 32.01.2025")
	assert.Error(t, err)
}
