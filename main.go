package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"restockd/clients"
	"restockd/config"
	"restockd/database"
	"restockd/handlers"
	"restockd/history"
	"restockd/middleware"
	"restockd/predictor"
	"restockd/pricestore"
	"restockd/routes"
	"restockd/scheduler"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	middleware.JWTSecret = []byte(cfg.JWTSecret)

	// Storage
	prices, err := pricestore.New(cfg.PriceCSVPath)
	if err != nil {
		log.Fatalf("Unable to open price store: %v", err)
	}

	var historyStore history.Store
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		defer database.Close(pool)

		historyStore, err = history.NewPostgresStore(context.Background(), pool)
		if err != nil {
			log.Fatalf("Unable to prepare history table: %v", err)
		}
	} else {
		historyStore = history.NewFileStore(cfg.HistoryPath)
	}

	// Collaborators and engine
	var holidaySource *clients.HolidayClient
	if cfg.CalendarificAPIKey != "" {
		holidaySource = clients.NewHolidayClient(cfg.CalendarificAPIKey)
	}

	resolver := newResolver(cfg, holidaySource)
	forecaster := predictor.NewPriceForecaster(cfg.Calendar)
	stock := clients.NewStockClient(cfg.StockAPIURL, cfg.ItemName)
	engine := predictor.NewEngine(stock, prices, resolver, forecaster)
	tracker := predictor.NewAccuracyTracker(historyStore)

	// Scheduler
	sched := newSchedulerWarmer(engine, tracker, holidaySource)
	if err := sched.Register(cfg.SnapshotCron); err != nil {
		log.Fatalf("Unable to register scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	app := fiber.New()
	app.Use(cors.New())
	routes.SetupRoutes(app, handlers.New(engine, tracker, prices, cfg))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down")
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newResolver wires the calendar resolver, leaving the live source out when
// it is not configured so the interface value stays nil.
func newResolver(cfg *config.Config, holidays *clients.HolidayClient) *predictor.CalendarResolver {
	if holidays == nil {
		return predictor.NewCalendarResolver(cfg.Calendar, nil)
	}
	return predictor.NewCalendarResolver(cfg.Calendar, holidays)
}

func newSchedulerWarmer(engine *predictor.Engine, tracker *predictor.AccuracyTracker, holidays *clients.HolidayClient) *scheduler.Scheduler {
	if holidays == nil {
		return scheduler.NewScheduler(engine, tracker, nil)
	}
	return scheduler.NewScheduler(engine, tracker, holidays)
}
