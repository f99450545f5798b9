package predictor

import "time"

// Price thresholds for the price adjustment factor (RM per unit).
const (
	normalPrice        = 6.5
	highPriceThreshold = 6.8
	lowPriceThreshold  = 6.2
)

// InventoryFactor converts the combined factory and kiosk stock level into a
// demand adjustment. Low stock pushes the restock up, heavy stock pulls it
// down; thresholds are checked in the listed order, first match wins.
func InventoryFactor(totalStock int) float64 {
	switch {
	case totalStock < 100:
		return 0.5
	case totalStock < 300:
		return 0.3
	case totalStock < 500:
		return 0.1
	case totalStock > 1500:
		return -0.3
	case totalStock > 1000:
		return -0.15
	default:
		return 0.0
	}
}

// PriceFactor converts the current or forecasted unit price into a demand
// adjustment. High prices historically coincide with high demand.
func PriceFactor(price float64) float64 {
	switch {
	case price >= highPriceThreshold:
		return 0.3
	case price >= normalPrice:
		return 0.15
	case price <= lowPriceThreshold:
		return -0.2
	default:
		return 0.0
	}
}

// DayOfWeekFactor gives Saturdays and Thursdays a fixed bump.
func DayOfWeekFactor(targetDate time.Time) float64 {
	switch targetDate.Weekday() {
	case time.Saturday:
		return 0.15
	case time.Thursday:
		return 0.05
	default:
		return 0.0
	}
}
