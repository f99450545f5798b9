package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Confidence & Tiers ---

const (
	ConfidenceLow        = "Low"
	ConfidenceMedium     = "Medium"
	ConfidenceMediumHigh = "Medium-High"
	ConfidenceHigh       = "High"
)

const (
	TierLow        = "Low"
	TierMediumLow  = "Medium-Low"
	TierMedium     = "Medium"
	TierMediumHigh = "Medium-High"
	TierHigh       = "High"
)

// ValidTier reports whether s is one of the demand tier labels.
func ValidTier(s string) bool {
	switch s {
	case TierLow, TierMediumLow, TierMedium, TierMediumHigh, TierHigh:
		return true
	}
	return false
}

// Output modes for the demand classifier.
const (
	ModeQuantity = "quantity"
	ModeTier     = "tier"
)

// --- Core Models ---

// PricePeriod is one row of the ex-farm price history: a weekly date range and
// its average price. EndDate is parsed from the range label and drives sorting.
type PricePeriod struct {
	DateRange string    `json:"date_range"`
	EndDate   time.Time `json:"end_date"`
	AvgPrice  float64   `json:"avg_price"`
}

// StockSnapshot is the live stock position at prediction time. It is fetched
// per request and never persisted on its own.
type StockSnapshot struct {
	FactoryStock int `json:"factory"`
	KioskStock   int `json:"kiosk"`
}

func (s StockSnapshot) Total() int {
	return s.FactoryStock + s.KioskStock
}

// Calendar event kinds, in resolver priority order.
const (
	EventFestival      = "festival"
	EventPreFestival   = "pre-festival"
	EventPostFestival  = "post-festival"
	EventRamadan       = "ramadan"
	EventSchoolHoliday = "school-holiday"
	EventFriday        = "friday"
	EventNormal        = "normal"
)

// Calendar event sources.
const (
	SourceLiveLookup = "live-lookup"
	SourceRuleBased  = "rule-based"
	SourceCalculated = "calculated"
	SourceConfigured = "configured"
)

// LiveHoliday is one named holiday returned by the external holiday source.
type LiveHoliday struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
	Type string    `json:"type"`
}

// CalendarEvent is the demand-shifting event (if any) resolved for one date.
type CalendarEvent struct {
	HasEvent  bool    `json:"has_event"`
	EventName string  `json:"event_name"`
	Factor    float64 `json:"factor"`
	Type      string  `json:"type"`
	Source    string  `json:"source"`
}

// Price forecast methods.
const (
	MethodCurrent       = "current"
	MethodTrendSeasonal = "trend-seasonal"
	MethodFallback      = "fallback"
	MethodFallbackError = "fallback-error"
)

// ForecastFactors is the explanatory breakdown attached to a price forecast.
// Adjustment fields are percentages, rounded for display.
type ForecastFactors struct {
	BasePrice          float64 `json:"base_price"`
	TrendAdjustment    float64 `json:"trend_adjustment"`
	SeasonalAdjustment float64 `json:"seasonal_adjustment"`
	TotalAdjustment    float64 `json:"total_adjustment"`
	DaysAhead          int     `json:"days_ahead"`
	WeeksOfData        int     `json:"weeks_of_data,omitempty"`
	Error              string  `json:"error,omitempty"`
}

// PriceForecast is the projected unit price for a target date.
type PriceForecast struct {
	ForecastedPrice float64         `json:"forecasted_price"`
	Confidence      string          `json:"confidence"`
	Method          string          `json:"method"`
	Factors         ForecastFactors `json:"factors"`
}

// --- Prediction Output ---

// Factor is one additive demand adjustment with its display form.
type Factor struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// NewFactor builds a Factor with its "+0.15 (+15.0%)" display form.
func NewFactor(v float64) Factor {
	return Factor{Value: v, Display: fmt.Sprintf("%+.2f (%+.1f%%)", v, v*100)}
}

// FactorBreakdown holds the four independent adjustments and their sum.
type FactorBreakdown struct {
	Inventory Factor `json:"inventory_adjustment"`
	Price     Factor `json:"price_adjustment"`
	Calendar  Factor `json:"calendar_adjustment"`
	DayOfWeek Factor `json:"day_of_week_adjustment"`
	Total     Factor `json:"total_adjustment"`
}

// DemandOutput is the classified prediction: a bounded restock quantity or a
// discrete demand tier, depending on the selected mode.
type DemandOutput struct {
	Mode     string `json:"mode"`
	Quantity int    `json:"quantity,omitempty"`
	Tier     string `json:"tier,omitempty"`
}

// StockBreakdown mirrors the snapshot with its total, for response payloads.
type StockBreakdown struct {
	Factory int `json:"factory"`
	Kiosk   int `json:"kiosk"`
	Total   int `json:"total"`
}

// PriceInfo records which price fed the factor engine and how reliable it is.
type PriceInfo struct {
	Price           float64         `json:"price"`
	Source          string          `json:"source"` // "current" or "forecasted"
	Confidence      string          `json:"confidence"`
	Method          string          `json:"method"`
	ForecastFactors ForecastFactors `json:"forecast_factors"`
}

// PredictionRecord is the full structured result of one prediction. It is
// immutable once returned.
type PredictionRecord struct {
	TargetDate    string          `json:"target_date"`
	Output        DemandOutput    `json:"demand"`
	CurrentStock  StockBreakdown  `json:"current_stock"`
	Factors       FactorBreakdown `json:"factors"`
	CalendarEvent CalendarEvent   `json:"calendar_event"`
	PriceInfo     PriceInfo       `json:"price_info"`
	BaseDemand    int             `json:"base_demand"`
	Confidence    string          `json:"confidence"`
	Degraded      []string        `json:"degraded,omitempty"`
}

// --- History & Accuracy ---

// HistoryEntry is one append-only log record: a prediction plus the actual
// outcome supplied later (if any).
type HistoryEntry struct {
	Timestamp      time.Time        `json:"timestamp"`
	Prediction     PredictionRecord `json:"prediction"`
	ActualQuantity *int             `json:"actual_quantity,omitempty"`
	ActualTier     *string          `json:"actual_tier,omitempty"`
}

// AccuracyStats summarises prediction accuracy over a trailing window.
// Quantity records fill the accuracy percentages; tier records fill MatchRate.
type AccuracyStats struct {
	AvgAccuracy      *float64 `json:"avg_accuracy,omitempty"`
	MinAccuracy      *float64 `json:"min_accuracy,omitempty"`
	MaxAccuracy      *float64 `json:"max_accuracy,omitempty"`
	MatchRate        *float64 `json:"tier_match_rate,omitempty"`
	TotalPredictions int      `json:"total_predictions"`
}

// --- Price History Responses ---

// PriceHistoryPoint is one point on the observed-plus-forecast price series.
type PriceHistoryPoint struct {
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	IsForecast bool    `json:"is_forecast,omitempty"`
	Confidence string  `json:"confidence,omitempty"`
}

// PriceHistorySummary is the payload of GET /api/price/history.
type PriceHistorySummary struct {
	Data         []PriceHistoryPoint `json:"data"`
	CurrentPrice float64             `json:"current_price"`
	AvgPrice     float64             `json:"avg_price"`
	MinPrice     float64             `json:"min_price"`
	MaxPrice     float64             `json:"max_price"`
}

// --- Requests & Alerts ---

type UpdatePriceRequest struct {
	DateRange string   `json:"date_range"`
	Price     *float64 `json:"price"`
}

type RecordActualRequest struct {
	Date           string  `json:"date"`
	ActualQuantity *int    `json:"actual_quantity"`
	ActualTier     *string `json:"actual_tier"`
}

// Alert is an operator notification derived from the latest prediction.
type Alert struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Detail    string `json:"detail"`
	Timestamp string `json:"timestamp"`
}
