package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"restockd/models"
)

func TestQuantityClassifierBounds(t *testing.T) {
	c := QuantityClassifier{BaseDemand: BaseDemand, MinStock: MinStock, MaxStock: MaxStock}

	// Every output is a multiple of 50 inside [MinStock, MaxStock],
	// for any adjustment however extreme.
	for adjustment := -2.0; adjustment <= 2.0; adjustment += 0.07 {
		out := c.Classify(adjustment)
		assert.Equal(t, models.ModeQuantity, out.Mode)
		assert.Zero(t, out.Quantity%50, "adjustment %.2f", adjustment)
		assert.GreaterOrEqual(t, out.Quantity, MinStock)
		assert.LessOrEqual(t, out.Quantity, MaxStock)
	}

	assert.Equal(t, 1200, c.Classify(0).Quantity)
	assert.Equal(t, 1400, c.Classify(0.15).Quantity) // 1380 rounds up
	assert.Equal(t, 2000, c.Classify(1.0).Quantity)
	assert.Equal(t, 1000, c.Classify(-0.5).Quantity)
}

func TestTierClassifierBands(t *testing.T) {
	c := TierClassifier{}

	cases := []struct {
		adjustment float64
		tier       string
	}{
		{0.45, models.TierHigh},
		{0.30, models.TierHigh},
		{0.29, models.TierMediumHigh},
		{0.15, models.TierMediumHigh},
		{0.14, models.TierMedium},
		{0.0, models.TierMedium},
		{-0.01, models.TierMediumLow},
		{-0.15, models.TierMediumLow},
		{-0.16, models.TierLow},
	}
	for _, tc := range cases {
		out := c.Classify(tc.adjustment)
		assert.Equal(t, models.ModeTier, out.Mode)
		assert.Equal(t, tc.tier, out.Tier, "adjustment %.2f", tc.adjustment)
	}
}
