package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"restockd/models"
)

// HandleAlerts derives operator alerts from the latest prediction: stock
// levels, unusual demand and forecast price spikes.
// GET /api/alerts
func (h *Handler) HandleAlerts(c *fiber.Ctx) error {
	prediction := h.Engine.Predict(nil, models.ModeQuantity)
	stock := prediction.CurrentStock.Total
	now := time.Now().Format(time.RFC3339)
	alerts := []models.Alert{}

	if stock < 300 {
		alerts = append(alerts, models.Alert{
			Type:      "critical",
			Message:   "Critical stock level detected",
			Detail:    fmt.Sprintf("Current stock (%d) is below minimum threshold of 300 units", stock),
			Timestamp: now,
		})
	}
	if stock < 500 {
		alerts = append(alerts, models.Alert{
			Type:      "warning",
			Message:   "Low stock warning",
			Detail:    fmt.Sprintf("Stock level at %d units. Consider restocking soon.", stock),
			Timestamp: now,
		})
	}
	if prediction.Output.Quantity >= 1800 {
		alerts = append(alerts, models.Alert{
			Type:      "info",
			Message:   "High demand period approaching",
			Detail:    fmt.Sprintf("Predicted restock: %d units due to %s", prediction.Output.Quantity, prediction.CalendarEvent.EventName),
			Timestamp: now,
		})
	}
	if prediction.PriceInfo.Source == "forecasted" && prediction.PriceInfo.Price > 7.0 {
		alerts = append(alerts, models.Alert{
			Type:      "warning",
			Message:   "High price forecast",
			Detail:    fmt.Sprintf("Ex-farm price forecasted at RM %.2f for %s", prediction.PriceInfo.Price, prediction.TargetDate),
			Timestamp: now,
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": alerts})
}
