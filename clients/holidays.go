package clients

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"restockd/models"
)

const holidayCacheTTL = 24 * time.Hour

// HolidayClient looks up named holidays per year from the Calendarific API.
// Results are cached for 24 hours per year, and concurrent refreshes of the
// same year collapse to one in-flight fetch via a per-year lock.
type HolidayClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	country string

	mu    sync.Mutex
	cache map[int]holidayCacheEntry
	locks map[int]*sync.Mutex
}

type holidayCacheEntry struct {
	holidays  []models.LiveHoliday
	fetchedAt time.Time
}

func NewHolidayClient(apiKey string) *HolidayClient {
	return &HolidayClient{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://calendarific.com/api/v2/holidays",
		apiKey:  apiKey,
		country: "MY",
		cache:   make(map[int]holidayCacheEntry),
		locks:   make(map[int]*sync.Mutex),
	}
}

// calendarificResponse covers the fields we read from the holiday API.
type calendarificResponse struct {
	Response struct {
		Holidays []struct {
			Name string `json:"name"`
			Date struct {
				ISO string `json:"iso"`
			} `json:"date"`
			Type []string `json:"type"`
		} `json:"holidays"`
	} `json:"response"`
}

// HolidaysForYear returns the named holidays for a year. Without an API key
// it returns an empty list, which sends the resolver to its static tables.
func (c *HolidayClient) HolidaysForYear(year int) ([]models.LiveHoliday, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	c.mu.Lock()
	if entry, ok := c.cache[year]; ok && time.Since(entry.fetchedAt) < holidayCacheTTL {
		c.mu.Unlock()
		return entry.holidays, nil
	}
	lock, ok := c.locks[year]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[year] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	// Another request may have refreshed the year while we waited.
	c.mu.Lock()
	if entry, ok := c.cache[year]; ok && time.Since(entry.fetchedAt) < holidayCacheTTL {
		c.mu.Unlock()
		return entry.holidays, nil
	}
	c.mu.Unlock()

	holidays, err := c.fetchYear(year)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[year] = holidayCacheEntry{holidays: holidays, fetchedAt: time.Now()}
	c.mu.Unlock()
	return holidays, nil
}

func (c *HolidayClient) fetchYear(year int) ([]models.LiveHoliday, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("country", c.country)
	params.Set("year", fmt.Sprintf("%d", year))

	resp, err := c.client.Get(c.baseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	var decoded calendarificResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode holiday response: %w", err)
	}

	holidays := make([]models.LiveHoliday, 0, len(decoded.Response.Holidays))
	for _, h := range decoded.Response.Holidays {
		date, err := time.Parse("2006-01-02", h.Date.ISO)
		if err != nil {
			// Some entries carry full timestamps.
			date, err = time.Parse(time.RFC3339, h.Date.ISO)
			if err != nil {
				continue
			}
		}
		typeTag := ""
		if len(h.Type) > 0 {
			typeTag = h.Type[0]
		}
		holidays = append(holidays, models.LiveHoliday{Name: h.Name, Date: date, Type: typeTag})
	}
	return holidays, nil
}
