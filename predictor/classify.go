package predictor

import (
	"math"

	"restockd/models"
)

// Classifier turns the total demand adjustment into an output. Two
// implementations exist: a bounded restock quantity and a discrete tier.
type Classifier interface {
	Mode() string
	Classify(totalAdjustment float64) models.DemandOutput
}

// QuantityClassifier scales a base demand by the total adjustment, clamps it
// to the operational stock band and rounds to whole crates of 50 units.
type QuantityClassifier struct {
	BaseDemand int
	MinStock   int
	MaxStock   int
}

func (c QuantityClassifier) Mode() string { return models.ModeQuantity }

func (c QuantityClassifier) Classify(totalAdjustment float64) models.DemandOutput {
	quantity := float64(c.BaseDemand) * (1 + totalAdjustment)
	quantity = clamp(quantity, float64(c.MinStock), float64(c.MaxStock))
	quantity = math.Round(quantity/50) * 50
	return models.DemandOutput{Mode: models.ModeQuantity, Quantity: int(quantity)}
}

// TierClassifier buckets the total adjustment into a demand tier.
type TierClassifier struct{}

func (TierClassifier) Mode() string { return models.ModeTier }

func (TierClassifier) Classify(totalAdjustment float64) models.DemandOutput {
	var tier string
	switch {
	case totalAdjustment >= 0.30:
		tier = models.TierHigh
	case totalAdjustment >= 0.15:
		tier = models.TierMediumHigh
	case totalAdjustment >= 0.0:
		tier = models.TierMedium
	case totalAdjustment >= -0.15:
		tier = models.TierMediumLow
	default:
		tier = models.TierLow
	}
	return models.DemandOutput{Mode: models.ModeTier, Tier: tier}
}
