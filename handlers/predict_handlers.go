package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"restockd/models"
)

// parseMode validates the ?mode= query parameter.
func parseMode(c *fiber.Ctx) (string, bool) {
	mode := c.Query("mode", models.ModeQuantity)
	if mode != models.ModeQuantity && mode != models.ModeTier {
		return "", false
	}
	return mode, true
}

// HandlePredict returns the prediction for the next restock day, or for an
// explicit ?date=YYYY-MM-DD.
// GET /api/predict
func (h *Handler) HandlePredict(c *fiber.Ctx) error {
	mode, ok := parseMode(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "mode must be 'quantity' or 'tier'"})
	}

	var targetDate *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "date must be in YYYY-MM-DD format"})
		}
		targetDate = &parsed
	}

	result := h.Engine.Predict(targetDate, mode)
	return c.JSON(fiber.Map{"success": true, "data": result})
}

// HandlePredictWeek returns one prediction per restock day over the next 14
// calendar days.
// GET /api/predict/week
func (h *Handler) HandlePredictWeek(c *fiber.Ctx) error {
	mode, ok := parseMode(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "mode must be 'quantity' or 'tier'"})
	}

	predictions := h.Engine.PredictNextWeek(mode)
	return c.JSON(fiber.Map{"success": true, "data": predictions})
}
