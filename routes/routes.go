package routes

import (
	"github.com/gofiber/fiber/v2"

	"restockd/handlers"
	"restockd/middleware"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/", h.HandleRoot)
	app.Get("/health", h.HandleHealth)

	api := app.Group("/api")
	api.Get("/health", h.HandleHealth)

	// --- Authentication ---
	api.Post("/auth/login", h.HandleLogin)

	// --- Predictions ---
	api.Get("/predict", h.HandlePredict)
	api.Get("/predict/week", h.HandlePredictWeek)

	// --- Prices ---
	price := api.Group("/price")
	price.Get("/current", h.HandleCurrentPrice)
	price.Get("/forecast", h.HandlePriceForecast)
	price.Get("/history", h.HandlePriceHistory)
	price.Post("/update", middleware.JWTMiddleware, middleware.AdminRequired, h.HandleUpdatePrice)

	// --- History & Accuracy ---
	api.Get("/history", h.HandleHistory)
	api.Get("/accuracy", h.HandleAccuracy)
	api.Post("/record", middleware.JWTMiddleware, middleware.AdminRequired, h.HandleRecordActual)

	// --- Alerts & AI ---
	api.Get("/alerts", h.HandleAlerts)
	api.Post("/ai/explain", h.HandleExplainPrediction)
}
