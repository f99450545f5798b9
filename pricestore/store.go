// Package pricestore persists the ex-farm price history as a CSV of
// (date-range label, average price) rows.
package pricestore

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"restockd/models"
)

var header = []string{"Date_Range", "Avg_Price"}

// templateRow seeds a fresh file so the forecaster always has a base price.
var templateRow = []string{"01.01.2025 - 07.01.2025", "6.50"}

// Store reads and appends price periods. All writes rewrite the file in full
// under a single-writer lock.
type Store struct {
	path string
	mu   sync.Mutex
}

// New opens the store, bootstrapping the CSV with the template row when the
// file does not exist yet.
func New(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create price data dir: %w", err)
		}
		if err := s.writeRows([][]string{templateRow}); err != nil {
			return nil, fmt.Errorf("bootstrap price csv: %w", err)
		}
		log.Printf("created default price CSV at %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("stat price csv: %w", err)
	}
	return s, nil
}

// Periods returns the price history sorted ascending by parsed end date.
// Rows whose date range or price cannot be parsed are dropped.
func (s *Store) Periods() ([]models.PricePeriod, error) {
	s.mu.Lock()
	rows, err := s.readRows()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	periods := make([]models.PricePeriod, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		endDate, err := ParseDateRange(row[0])
		if err != nil {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			continue
		}
		periods = append(periods, models.PricePeriod{
			DateRange: row[0],
			EndDate:   endDate,
			AvgPrice:  price,
		})
	}

	sort.Slice(periods, func(i, j int) bool { return periods[i].EndDate.Before(periods[j].EndDate) })
	return periods, nil
}

// Append adds a new (date range, price) row. The range label must parse so a
// bad row cannot poison the series.
func (s *Store) Append(dateRange string, price float64) error {
	if _, err := ParseDateRange(dateRange); err != nil {
		return fmt.Errorf("invalid date range %q: %w", dateRange, err)
	}
	if price <= 0 {
		return fmt.Errorf("invalid price %v", price)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows()
	if err != nil {
		return err
	}
	rows = append(rows, []string{dateRange, strconv.FormatFloat(price, 'f', 2, 64)})
	return s.writeRows(rows)
}

// ParseDateRange extracts the end date from a "start - end" label, with the
// end date in day.month.year form.
func ParseDateRange(label string) (time.Time, error) {
	parts := strings.Split(label, " - ")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("expected \"start - end\", got %q", label)
	}
	return time.Parse("02.01.2006", strings.TrimSpace(parts[1]))
}

func (s *Store) readRows() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open price csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read price csv: %w", err)
	}
	if len(records) > 0 && records[0][0] == header[0] {
		records = records[1:]
	}
	return records, nil
}

func (s *Store) writeRows(rows [][]string) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write price csv: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
