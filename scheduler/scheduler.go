// Package scheduler runs the background cron jobs: a daily prediction
// snapshot on restock days and a holiday-cache warmup.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"restockd/models"
	"restockd/predictor"
)

// HolidayWarmer pre-fetches live holidays so request paths hit a warm cache.
type HolidayWarmer interface {
	HolidaysForYear(year int) ([]models.LiveHoliday, error)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *predictor.Engine
	Tracker  *predictor.AccuracyTracker
	Holidays HolidayWarmer
}

// NewScheduler creates a new Scheduler. holidays may be nil when no live
// source is configured.
func NewScheduler(engine *predictor.Engine, tracker *predictor.AccuracyTracker, holidays HolidayWarmer) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   engine,
		Tracker:  tracker,
		Holidays: holidays,
	}
}

// Register registers the daily snapshot task.
func (s *Scheduler) Register(snapshotCron string) error {
	if _, err := s.Cron.AddFunc(snapshotCron, s.dailyTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// dailyTask warms the holiday cache and, on restock days, appends a
// prediction snapshot to the history log. The actual quantity is backfilled
// later through the record endpoint.
func (s *Scheduler) dailyTask() {
	if s.Holidays != nil {
		if _, err := s.Holidays.HolidaysForYear(time.Now().Year()); err != nil {
			log.Printf("[WARN] holiday cache warmup failed: %v", err)
		}
	}

	today := time.Now()
	if !predictor.RestockDays[today.Weekday()] {
		return
	}

	record := s.Engine.Predict(&today, models.ModeQuantity)
	if err := s.Tracker.Record(record, nil, nil); err != nil {
		log.Printf("[WARN] snapshot record failed: %v", err)
		return
	}
	log.Printf("[INFO] snapshot recorded for %s: %d units", record.TargetDate, record.Output.Quantity)
}
