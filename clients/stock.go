// Package clients holds the outbound HTTP collaborators: the inventory
// analytics API and the live holiday lookup.
package clients

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"restockd/models"
)

// StockClient queries the remote inventory analytics API for the tracked
// item's stock position across the factory and all kiosks.
type StockClient struct {
	client   *http.Client
	apiURL   string
	itemName string
}

func NewStockClient(apiURL, itemName string) *StockClient {
	return &StockClient{
		client:   &http.Client{Timeout: 10 * time.Second},
		apiURL:   apiURL,
		itemName: itemName,
	}
}

// stockOverview is the analytics API response. Stock counts arrive as either
// numbers or strings depending on the upstream version.
type stockOverview struct {
	Success     bool `json:"success"`
	FactoryData []struct {
		ItemName   string      `json:"item_name"`
		StockCount interface{} `json:"stock_count"`
	} `json:"factory_data"`
	KioskData []struct {
		Items []struct {
			ItemName   string      `json:"item_name"`
			StockCount interface{} `json:"stock_count"`
		} `json:"items"`
	} `json:"kiosk_data"`
}

// FetchStock returns the current snapshot: the factory count for the tracked
// item plus the sum across every kiosk.
func (c *StockClient) FetchStock() (models.StockSnapshot, error) {
	resp, err := c.client.Get(c.apiURL)
	if err != nil {
		return models.StockSnapshot{}, fmt.Errorf("fetch stock: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.StockSnapshot{}, fmt.Errorf("stock API returned status %d", resp.StatusCode)
	}

	var overview stockOverview
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		return models.StockSnapshot{}, fmt.Errorf("decode stock response: %w", err)
	}
	if !overview.Success {
		return models.StockSnapshot{}, fmt.Errorf("stock API returned unsuccessful response")
	}

	var snapshot models.StockSnapshot
	for _, item := range overview.FactoryData {
		if item.ItemName == c.itemName {
			snapshot.FactoryStock = toInt(item.StockCount)
			break
		}
	}
	for _, kiosk := range overview.KioskData {
		for _, item := range kiosk.Items {
			if item.ItemName == c.itemName {
				snapshot.KioskStock += toInt(item.StockCount)
			}
		}
	}
	return snapshot, nil
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}
