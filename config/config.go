package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration. It is built once in main and
// passed to the components that need it.
type Config struct {
	Port string

	// Collaborators
	StockAPIURL        string
	ItemName           string
	CalendarificAPIKey string

	// Storage
	PriceCSVPath string
	HistoryPath  string
	DatabaseURL  string

	// Auth
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	// AI commentary
	GeminiAPIKey string

	// Scheduler (cron spec with seconds field)
	SnapshotCron string

	// Calendar rule tables, loaded from YAML with compiled-in defaults.
	Calendar *CalendarTable
}

// Load reads configuration from environment variables and the calendar YAML
// file. JWT_SECRET is the only hard requirement.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "3000"),
		StockAPIURL:        os.Getenv("STOCK_API_URL"),
		ItemName:           getEnv("ITEM_NAME", "Marinated Chicken"),
		CalendarificAPIKey: os.Getenv("CALENDARIFIC_API_KEY"),
		PriceCSVPath:       getEnv("PRICE_CSV_PATH", "data/ExFarmPrice.csv"),
		HistoryPath:        getEnv("HISTORY_PATH", "data/prediction_history.json"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		SnapshotCron:       getEnv("SNAPSHOT_CRON", "0 0 6 * * *"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	calendar, err := LoadCalendarTable(getEnv("CALENDAR_CONFIG", "config/calendar.yml"))
	if err != nil {
		return nil, fmt.Errorf("load calendar config: %w", err)
	}
	cfg.Calendar = calendar

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
