package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"restockd/models"
)

// HandleExplainPrediction generates operator-readable commentary for a
// prediction using the Gemini API.
// POST /api/ai/explain
func (h *Handler) HandleExplainPrediction(c *fiber.Ctx) error {
	if h.Cfg.GeminiAPIKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "AI commentary is not configured"})
	}

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

	prediction := h.Engine.Predict(targetDate, mode)

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(h.Cfg.GeminiAPIKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to initialize AI client"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-pro")
	resp, err := model.GenerateContent(ctx, genai.Text(explainPrompt(prediction)))
	if err != nil {
		log.Printf("Error generating content: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate commentary"})
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Empty AI response"})
	}

	analysis := fmt.Sprint(resp.Candidates[0].Content.Parts[0])
	return c.JSON(fiber.Map{"success": true, "analysis": analysis, "prediction": prediction})
}

func explainPrompt(p models.PredictionRecord) string {
	output := fmt.Sprintf("%d units", p.Output.Quantity)
	if p.Output.Mode == models.ModeTier {
		output = fmt.Sprintf("demand tier %q", p.Output.Tier)
	}
	return fmt.Sprintf(
		`You are a supply chain analyst for a marinated chicken retailer in Malaysia.
Explain this restock prediction to a kiosk operations manager in 3-4 plain sentences.

Target date: %s
Prediction: %s (confidence %s)
Current stock: factory %d, kiosks %d
Adjustments: inventory %s, price %s, calendar %s, day-of-week %s, total %s
Calendar event: %s (%s)
Unit price: RM %.2f (%s, %s confidence)`,
		p.TargetDate, output, p.Confidence,
		p.CurrentStock.Factory, p.CurrentStock.Kiosk,
		p.Factors.Inventory.Display, p.Factors.Price.Display,
		p.Factors.Calendar.Display, p.Factors.DayOfWeek.Display, p.Factors.Total.Display,
		p.CalendarEvent.EventName, p.CalendarEvent.Type,
		p.PriceInfo.Price, p.PriceInfo.Source, p.PriceInfo.Confidence,
	)
}
