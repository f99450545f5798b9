package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"restockd/models"
	"restockd/utils"
)

// HandleHistory lists prediction log entries within a trailing window,
// paginated.
// GET /api/history
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "days must be a positive integer"})
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "50"))

	entries, err := h.Tracker.Recent(days)
	if err != nil {
		log.Printf("history read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not read prediction history"})
	}

	start, end := utils.SliceBounds(len(entries), page, pageSize)
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       entries[start:end],
		"pagination": utils.CreatePagination(len(entries), page, pageSize),
	})
}

// HandleAccuracy computes accuracy statistics over a trailing window.
// GET /api/accuracy
func (h *Handler) HandleAccuracy(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "days must be a positive integer"})
	}

	stats, err := h.Tracker.Accuracy(days)
	if err != nil {
		log.Printf("accuracy read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not read prediction history"})
	}
	if stats == nil {
		return c.JSON(fiber.Map{"success": true, "data": nil, "message": "Insufficient historical data"})
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

// HandleRecordActual records the actual outcome for a date alongside a fresh
// prediction for it. Admin only.
// POST /api/record
func (h *Handler) HandleRecordActual(c *fiber.Ctx) error {
	var req models.RecordActualRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.Date == "" || (req.ActualQuantity == nil && req.ActualTier == nil) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Missing required fields (date and actual_quantity or actual_tier)"})
	}

	targetDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "date must be in YYYY-MM-DD format"})
	}
	if req.ActualTier != nil && !models.ValidTier(*req.ActualTier) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "actual_tier must be one of Low, Medium-Low, Medium, Medium-High, High"})
	}
	if req.ActualQuantity != nil && *req.ActualQuantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "actual_quantity must be non-negative"})
	}

	mode := models.ModeQuantity
	if req.ActualQuantity == nil {
		mode = models.ModeTier
	}
	prediction := h.Engine.Predict(&targetDate, mode)

	if err := h.Tracker.Record(prediction, req.ActualQuantity, req.ActualTier); err != nil {
		log.Printf("history append failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not record actual outcome"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Actual outcome recorded"})
}
