package predictor

import (
	"errors"
	"log"
	"time"

	"restockd/models"
)

var errNoRecentPrices = errors.New("no price data within the requested window")

// Operational restock constants for the tracked item.
const (
	MinStock   = 1000
	MaxStock   = 2000
	BaseDemand = 1200
)

// Restock deliveries run Mondays, Thursdays and Saturdays.
var RestockDays = map[time.Weekday]bool{
	time.Monday:   true,
	time.Thursday: true,
	time.Saturday: true,
}

// StockSource yields the live stock snapshot.
type StockSource interface {
	FetchStock() (models.StockSnapshot, error)
}

// PriceSource yields the price history, sorted ascending by period end date.
type PriceSource interface {
	Periods() ([]models.PricePeriod, error)
}

// Engine is the prediction orchestrator. It is constructed once at startup
// and shared by the HTTP handlers and the scheduler.
type Engine struct {
	stock      StockSource
	prices     PriceSource
	calendar   *CalendarResolver
	forecaster *PriceForecaster

	quantity QuantityClassifier
	tier     TierClassifier

	// Snapshot assumed when the stock source is unreachable. The default
	// totals 800 units, which lands in the neutral inventory band.
	fallbackStock models.StockSnapshot

	now func() time.Time
}

func NewEngine(stock StockSource, prices PriceSource, calendar *CalendarResolver, forecaster *PriceForecaster) *Engine {
	return &Engine{
		stock:         stock,
		prices:        prices,
		calendar:      calendar,
		forecaster:    forecaster,
		quantity:      QuantityClassifier{BaseDemand: BaseDemand, MinStock: MinStock, MaxStock: MaxStock},
		tier:          TierClassifier{},
		fallbackStock: models.StockSnapshot{FactoryStock: 500, KioskStock: 300},
		now:           time.Now,
	}
}

// classifier picks the output strategy for a mode, defaulting to quantity.
func (e *Engine) classifier(mode string) Classifier {
	if mode == models.ModeTier {
		return e.tier
	}
	return e.quantity
}

// NextRestockDay scans forward from today (inclusive) for up to a week and
// returns the first restock day, falling back to tomorrow.
func (e *Engine) NextRestockDay() time.Time {
	today := e.now()
	for i := 0; i < 7; i++ {
		check := today.AddDate(0, 0, i)
		if RestockDays[check.Weekday()] {
			return check
		}
	}
	return today.AddDate(0, 0, 1)
}

// Predict produces a prediction for targetDate, or for the next restock day
// when targetDate is nil. Every collaborator failure is mapped to its
// documented fallback here; Predict itself never fails.
func (e *Engine) Predict(targetDate *time.Time, mode string) models.PredictionRecord {
	var target time.Time
	if targetDate != nil {
		target = *targetDate
	} else {
		target = e.NextRestockDay()
	}

	var degraded []string

	snapshot, err := e.stock.FetchStock()
	if err != nil {
		log.Printf("stock fetch failed, assuming %d/%d: %v",
			e.fallbackStock.FactoryStock, e.fallbackStock.KioskStock, err)
		snapshot = e.fallbackStock
		degraded = append(degraded, "stock-fallback")
	}

	daysAhead := int(target.Sub(e.now()).Hours() / 24)

	var priceInfo models.PriceInfo
	if daysAhead > 3 {
		forecast := e.Forecast(target)
		priceInfo = models.PriceInfo{
			Price:           forecast.ForecastedPrice,
			Source:          "forecasted",
			Confidence:      forecast.Confidence,
			Method:          forecast.Method,
			ForecastFactors: forecast.Factors,
		}
		if forecast.Method == models.MethodFallback || forecast.Method == models.MethodFallbackError {
			degraded = append(degraded, "price-fallback")
		}
	} else {
		price, err := e.CurrentPrice()
		if err != nil {
			log.Printf("price read failed, assuming %.2f: %v", FallbackPrice, err)
			price = FallbackPrice
			degraded = append(degraded, "price-fallback")
		}
		priceInfo = models.PriceInfo{
			Price:           price,
			Source:          "current",
			Confidence:      models.ConfidenceHigh,
			Method:          models.MethodCurrent,
			ForecastFactors: models.ForecastFactors{BasePrice: price, DaysAhead: daysAhead},
		}
	}

	event := e.calendar.Resolve(target)

	inventoryFactor := InventoryFactor(snapshot.Total())
	priceFactor := PriceFactor(priceInfo.Price)
	dayFactor := DayOfWeekFactor(target)
	total := inventoryFactor + priceFactor + event.Factor + dayFactor

	output := e.classifier(mode).Classify(total)

	return models.PredictionRecord{
		TargetDate: target.Format("2006-01-02 (Monday)"),
		Output:     output,
		CurrentStock: models.StockBreakdown{
			Factory: snapshot.FactoryStock,
			Kiosk:   snapshot.KioskStock,
			Total:   snapshot.Total(),
		},
		Factors: models.FactorBreakdown{
			Inventory: models.NewFactor(inventoryFactor),
			Price:     models.NewFactor(priceFactor),
			Calendar:  models.NewFactor(event.Factor),
			DayOfWeek: models.NewFactor(dayFactor),
			Total:     models.NewFactor(total),
		},
		CalendarEvent: event,
		PriceInfo:     priceInfo,
		BaseDemand:    BaseDemand,
		Confidence:    blendConfidence(total, priceInfo.Confidence),
		Degraded:      degraded,
	}
}

// PredictNextWeek emits one prediction per restock day over the next 14
// calendar days.
func (e *Engine) PredictNextWeek(mode string) []models.PredictionRecord {
	predictions := []models.PredictionRecord{}
	today := e.now()
	for i := 0; i < 14; i++ {
		check := today.AddDate(0, 0, i)
		if RestockDays[check.Weekday()] {
			predictions = append(predictions, e.Predict(&check, mode))
		}
	}
	return predictions
}

// Forecast loads the price history and projects the price for targetDate. A
// store failure becomes the fallback-error forecast, never an error.
func (e *Engine) Forecast(targetDate time.Time) models.PriceForecast {
	history, err := e.prices.Periods()
	if err != nil {
		log.Printf("price history read failed: %v", err)
		return FallbackForecast(models.MethodFallbackError, err.Error())
	}
	return e.forecaster.Forecast(targetDate, history)
}

// CurrentPrice returns the most recent known average price.
func (e *Engine) CurrentPrice() (float64, error) {
	history, err := e.prices.Periods()
	if err != nil {
		return 0, err
	}
	if len(history) == 0 {
		return FallbackPrice, nil
	}
	return history[len(history)-1].AvgPrice, nil
}

// PriceHistory returns observed prices within the trailing window plus a
// 14-day forward forecast strip.
func (e *Engine) PriceHistory(days int) (models.PriceHistorySummary, error) {
	history, err := e.prices.Periods()
	if err != nil {
		return models.PriceHistorySummary{}, err
	}

	cutoff := e.now().AddDate(0, 0, -days)
	recent := history[:0:0]
	for _, p := range history {
		if p.EndDate.After(cutoff) {
			recent = append(recent, p)
		}
	}
	if len(recent) == 0 {
		return models.PriceHistorySummary{}, errNoRecentPrices
	}

	summary := models.PriceHistorySummary{
		CurrentPrice: recent[len(recent)-1].AvgPrice,
		MinPrice:     recent[0].AvgPrice,
		MaxPrice:     recent[0].AvgPrice,
	}
	sum := 0.0
	for _, p := range recent {
		summary.Data = append(summary.Data, models.PriceHistoryPoint{
			Date:  p.EndDate.Format("2006-01-02"),
			Price: p.AvgPrice,
		})
		sum += p.AvgPrice
		if p.AvgPrice < summary.MinPrice {
			summary.MinPrice = p.AvgPrice
		}
		if p.AvgPrice > summary.MaxPrice {
			summary.MaxPrice = p.AvgPrice
		}
	}
	summary.AvgPrice = sum / float64(len(recent))

	today := e.now()
	for i := 1; i <= 14; i++ {
		forecastDate := today.AddDate(0, 0, i)
		forecast := e.forecaster.Forecast(forecastDate, history)
		summary.Data = append(summary.Data, models.PriceHistoryPoint{
			Date:       forecastDate.Format("2006-01-02"),
			Price:      forecast.ForecastedPrice,
			IsForecast: true,
			Confidence: forecast.Confidence,
		})
	}
	return summary, nil
}

// blendConfidence averages the quantity-confidence tier (from the size of the
// total adjustment) with the price forecast confidence on a 0-3 scale.
func blendConfidence(totalAdjustment float64, priceConfidence string) string {
	quantityConfidence := models.ConfidenceHigh
	abs := totalAdjustment
	if abs < 0 {
		abs = -abs
	}
	if abs > 0.5 {
		quantityConfidence = models.ConfidenceMedium
	} else if abs > 0.3 {
		quantityConfidence = models.ConfidenceMediumHigh
	}

	avg := (confidenceScore(quantityConfidence) + confidenceScore(priceConfidence)) / 2
	switch {
	case avg >= 2.5:
		return models.ConfidenceHigh
	case avg >= 1.5:
		return models.ConfidenceMediumHigh
	case avg >= 0.5:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func confidenceScore(label string) float64 {
	switch label {
	case models.ConfidenceHigh:
		return 3
	case models.ConfidenceMediumHigh:
		return 2
	case models.ConfidenceMedium:
		return 1
	case models.ConfidenceLow:
		return 0
	default:
		return 1
	}
}
