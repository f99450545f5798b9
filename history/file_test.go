package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restockd/models"
)

func TestFileStoreEmptyWhenMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "history.json"))

	entries, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStoreAppendRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "history.json"))

	actual := 1450
	entry := models.HistoryEntry{
		Timestamp: time.Date(2025, 7, 15, 8, 0, 0, 0, time.UTC),
		Prediction: models.PredictionRecord{
			TargetDate: "2025-07-17 (Thursday)",
			Output:     models.DemandOutput{Mode: models.ModeQuantity, Quantity: 1400},
			Confidence: models.ConfidenceMediumHigh,
		},
		ActualQuantity: &actual,
	}
	require.NoError(t, store.Append(entry))
	require.NoError(t, store.Append(models.HistoryEntry{
		Timestamp:  time.Date(2025, 7, 16, 8, 0, 0, 0, time.UTC),
		Prediction: models.PredictionRecord{TargetDate: "2025-07-19 (Saturday)"},
	}))

	entries, err := store.All()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-07-17 (Thursday)", entries[0].Prediction.TargetDate)
	require.NotNil(t, entries[0].ActualQuantity)
	assert.Equal(t, 1450, *entries[0].ActualQuantity)
	assert.Nil(t, entries[1].ActualQuantity)
	assert.True(t, entries[0].Timestamp.Equal(entry.Timestamp))
}
