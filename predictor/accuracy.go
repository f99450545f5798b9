package predictor

import (
	"time"

	"restockd/models"
)

// Log is the append-only prediction history the tracker reads and writes.
type Log interface {
	Append(entry models.HistoryEntry) error
	All() ([]models.HistoryEntry, error)
}

// AccuracyTracker stores predictions alongside later-supplied actuals and
// computes accuracy statistics over a trailing window.
type AccuracyTracker struct {
	log Log
	now func() time.Time
}

func NewAccuracyTracker(log Log) *AccuracyTracker {
	return &AccuracyTracker{log: log, now: time.Now}
}

// Record appends a prediction with its actual outcome. Either actual may be
// nil; snapshot entries without actuals are listed in history but never count
// toward accuracy.
func (t *AccuracyTracker) Record(prediction models.PredictionRecord, actualQuantity *int, actualTier *string) error {
	return t.log.Append(models.HistoryEntry{
		Timestamp:      t.now(),
		Prediction:     prediction,
		ActualQuantity: actualQuantity,
		ActualTier:     actualTier,
	})
}

// Recent returns entries whose timestamp falls within the trailing window,
// newest last.
func (t *AccuracyTracker) Recent(windowDays int) ([]models.HistoryEntry, error) {
	entries, err := t.log.All()
	if err != nil {
		return nil, err
	}
	cutoff := t.now().AddDate(0, 0, -windowDays)
	recent := []models.HistoryEntry{}
	for _, e := range entries {
		if e.Timestamp.After(cutoff) {
			recent = append(recent, e)
		}
	}
	return recent, nil
}

// Accuracy computes stats over entries in the trailing window that carry an
// actual outcome. Quantity records produce mean/min/max percentage accuracy;
// tier records produce an exact-match rate. A nil result (with nil error)
// means there is not enough data, which is not a failure.
func (t *AccuracyTracker) Accuracy(windowDays int) (*models.AccuracyStats, error) {
	recent, err := t.Recent(windowDays)
	if err != nil {
		return nil, err
	}

	var accuracies []float64
	tierTotal, tierMatches := 0, 0
	qualifying := 0

	for _, entry := range recent {
		switch {
		case entry.ActualQuantity != nil:
			qualifying++
			actual := *entry.ActualQuantity
			if actual <= 0 {
				continue
			}
			predicted := entry.Prediction.Output.Quantity
			accuracy := 100 - abs(float64(predicted-actual))/float64(actual)*100
			if accuracy < 0 {
				accuracy = 0
			}
			accuracies = append(accuracies, accuracy)
		case entry.ActualTier != nil:
			qualifying++
			tierTotal++
			if entry.Prediction.Output.Tier == *entry.ActualTier {
				tierMatches++
			}
		}
	}

	if len(accuracies) == 0 && tierTotal == 0 {
		return nil, nil
	}

	stats := &models.AccuracyStats{TotalPredictions: qualifying}
	if len(accuracies) > 0 {
		avg, min, max := accuracies[0], accuracies[0], accuracies[0]
		sum := 0.0
		for _, a := range accuracies {
			sum += a
			if a < min {
				min = a
			}
			if a > max {
				max = a
			}
		}
		avg = sum / float64(len(accuracies))
		stats.AvgAccuracy = &avg
		stats.MinAccuracy = &min
		stats.MaxAccuracy = &max
	}
	if tierTotal > 0 {
		rate := float64(tierMatches) / float64(tierTotal) * 100
		stats.MatchRate = &rate
	}
	return stats, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
