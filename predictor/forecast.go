package predictor

import (
	"math"
	"time"

	"restockd/config"
	"restockd/models"
)

// FallbackPrice is used whenever no usable price history exists.
const FallbackPrice = 6.5

// Forecast price band; projections never leave it.
const (
	minForecastPrice = 5.0
	maxForecastPrice = 9.0
)

// PriceForecaster projects a future unit price from the history series using
// the recent trend plus a seasonal calendar adjustment.
type PriceForecaster struct {
	table *config.CalendarTable
	now   func() time.Time
}

func NewPriceForecaster(table *config.CalendarTable) *PriceForecaster {
	return &PriceForecaster{table: table, now: time.Now}
}

// Forecast projects the price for targetDate from the given history, sorted
// ascending by period end date. It never fails: an empty series yields the
// fallback forecast.
func (f *PriceForecaster) Forecast(targetDate time.Time, history []models.PricePeriod) models.PriceForecast {
	if len(history) == 0 {
		return FallbackForecast(models.MethodFallback, "")
	}

	currentPrice := history[len(history)-1].AvgPrice
	if currentPrice <= 0 || math.IsNaN(currentPrice) {
		return FallbackForecast(models.MethodFallbackError, "non-positive current price")
	}

	daysAhead := int(targetDate.Sub(f.now()).Hours() / 24)

	// Near-term prices are assumed stable.
	if daysAhead <= 3 {
		return models.PriceForecast{
			ForecastedPrice: currentPrice,
			Confidence:      models.ConfidenceHigh,
			Method:          models.MethodCurrent,
			Factors: models.ForecastFactors{
				BasePrice: currentPrice,
				DaysAhead: daysAhead,
			},
		}
	}

	weeksBack := len(history)
	if weeksBack > 8 {
		weeksBack = 8
	}
	recent := history[len(history)-weeksBack:]

	trend := 0.0
	if len(recent) >= 3 {
		trend = meanPctChange(recent) * (float64(daysAhead) / 7)
		trend = clamp(trend, -0.15, 0.15)
	}

	seasonal := f.seasonalFactor(targetDate)

	confidence := models.ConfidenceLow
	if len(recent) >= 3 {
		volatility := stddev(recent) / mean(recent)
		switch {
		case volatility < 0.05:
			confidence = models.ConfidenceHigh
		case volatility < 0.10:
			confidence = models.ConfidenceMedium
		}
	}

	total := trend + seasonal
	price := clamp(currentPrice*(1+total), minForecastPrice, maxForecastPrice)
	price = round2(price)

	return models.PriceForecast{
		ForecastedPrice: price,
		Confidence:      confidence,
		Method:          models.MethodTrendSeasonal,
		Factors: models.ForecastFactors{
			BasePrice:          round2(currentPrice),
			TrendAdjustment:    round2(trend * 100),
			SeasonalAdjustment: round2(seasonal * 100),
			TotalAdjustment:    round2(total * 100),
			DaysAhead:          daysAhead,
			WeeksOfData:        weeksBack,
		},
	}
}

// FallbackForecast is the documented safe default when the forecaster cannot
// run at all: RM 6.50 at Low confidence.
func FallbackForecast(method, errMsg string) models.PriceForecast {
	return models.PriceForecast{
		ForecastedPrice: FallbackPrice,
		Confidence:      models.ConfidenceLow,
		Method:          method,
		Factors:         models.ForecastFactors{Error: errMsg},
	}
}

// seasonalFactor is a fixed calendar lookup, independent of the price series.
// The January/February band ramps toward Chinese New Year; the March/April
// band covers the Raya season; June and the year-end holidays get flat bumps.
func (f *PriceForecaster) seasonalFactor(targetDate time.Time) float64 {
	month := targetDate.Month()
	day := targetDate.Day()

	switch {
	case (month == time.January && day > 15) || (month == time.February && day < 15):
		if cny, ok := f.table.CNYDates[targetDate.Year()]; ok {
			daysToCNY := daysBetween(targetDate, cny.Time)
			if daysToCNY < 0 {
				daysToCNY = -daysToCNY
			}
			if daysToCNY < 7 {
				return 0.15
			}
			if daysToCNY < 14 {
				return 0.10
			}
		}
		return 0.05
	case month == time.March || month == time.April:
		if month == time.March && day > 20 {
			return 0.15
		}
		if month == time.April && day < 5 {
			return 0.12
		}
		return 0.08
	case month == time.June:
		return 0.06
	case month == time.November || month == time.December:
		if month == time.December && day > 15 {
			return 0.10
		}
		return 0.06
	default:
		return 0.0
	}
}

func meanPctChange(periods []models.PricePeriod) float64 {
	sum, n := 0.0, 0
	for i := 1; i < len(periods); i++ {
		prev := periods[i-1].AvgPrice
		if prev == 0 {
			continue
		}
		sum += (periods[i].AvgPrice - prev) / prev
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func mean(periods []models.PricePeriod) float64 {
	sum := 0.0
	for _, p := range periods {
		sum += p.AvgPrice
	}
	return sum / float64(len(periods))
}

func stddev(periods []models.PricePeriod) float64 {
	m := mean(periods)
	sum := 0.0
	for _, p := range periods {
		d := p.AvgPrice - m
		sum += d * d
	}
	// Sample standard deviation, matching the window statistics the
	// confidence thresholds were tuned against.
	if len(periods) < 2 {
		return 0
	}
	return math.Sqrt(sum / float64(len(periods)-1))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
