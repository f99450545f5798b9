package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"restockd/models"
	"restockd/predictor"
)

// HandleCurrentPrice returns the most recent known average price.
// GET /api/price/current
func (h *Handler) HandleCurrentPrice(c *fiber.Ctx) error {
	price, err := h.Engine.CurrentPrice()
	source := "csv"
	if err != nil {
		log.Printf("current price read failed: %v", err)
		price = predictor.FallbackPrice
		source = "fallback"
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"price": price, "source": source}})
}

// HandlePriceForecast forecasts the price for ?date=YYYY-MM-DD, defaulting to
// one week out.
// GET /api/price/forecast
func (h *Handler) HandlePriceForecast(c *fiber.Ctx) error {
	targetDate := time.Now().AddDate(0, 0, 7)
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "date must be in YYYY-MM-DD format"})
		}
		targetDate = parsed
	}

	forecast := h.Engine.Forecast(targetDate)
	return c.JSON(fiber.Map{"success": true, "data": forecast})
}

// HandlePriceHistory returns observed prices within a trailing window plus a
// 14-day forecast strip.
// GET /api/price/history
func (h *Handler) HandlePriceHistory(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "90"))
	if err != nil || days <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "days must be a positive integer"})
	}

	summary, err := h.Engine.PriceHistory(days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"data":          summary.Data,
		"current_price": summary.CurrentPrice,
		"avg_price":     summary.AvgPrice,
		"min_price":     summary.MinPrice,
		"max_price":     summary.MaxPrice,
	})
}

// HandleUpdatePrice appends a new (date range, price) row to the price
// history. Admin only.
// POST /api/price/update
func (h *Handler) HandleUpdatePrice(c *fiber.Ctx) error {
	var req models.UpdatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.DateRange == "" || req.Price == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Missing required fields (date_range, price)"})
	}

	if err := h.Prices.Append(req.DateRange, *req.Price); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Price updated successfully",
		"new_price":  *req.Price,
		"date_range": req.DateRange,
	})
}
