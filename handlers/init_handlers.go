package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth reports service liveness.
// GET /health and GET /api/health
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "timestamp": time.Now().Format(time.RFC3339)})
}

// HandleRoot lists the available endpoints.
// GET /
func (h *Handler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Restock Predictor API",
		"status":  "running",
		"endpoints": []string{
			"/api/predict",
			"/api/predict/week",
			"/api/price/current",
			"/api/price/forecast",
			"/api/price/history",
			"/api/history",
			"/api/accuracy",
			"/api/alerts",
			"/health",
		},
	})
}
