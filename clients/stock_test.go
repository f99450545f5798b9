package clients

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchStockSumsKiosks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
            "success": true,
            "factory_data": [
                {"item_name": "Marinated Chicken", "stock_count": 320},
                {"item_name": "Plain Chicken", "stock_count": 900}
            ],
            "kiosk_data": [
                {"items": [{"item_name": "Marinated Chicken", "stock_count": "40"}]},
                {"items": [{"item_name": "Marinated Chicken", "stock_count": 25}]},
                {"items": [{"item_name": "Plain Chicken", "stock_count": 99}]}
            ]
        }`))
	}))
	defer server.Close()

	client := NewStockClient(server.URL, "Marinated Chicken")
	snapshot, err := client.FetchStock()
	require.NoError(t, err)
	assert.Equal(t, 320, snapshot.FactoryStock)
	assert.Equal(t, 65, snapshot.KioskStock)
	assert.Equal(t, 385, snapshot.Total())
}

func TestFetchStockUnsuccessfulFlag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	client := NewStockClient(server.URL, "Marinated Chicken")
	_, err := client.FetchStock()
	assert.Error(t, err)
}

func TestFetchStockServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewStockClient(server.URL, "Marinated Chicken")
	_, err := client.FetchStock()
	assert.Error(t, err)
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 42, toInt(float64(42)))
	assert.Equal(t, 42, toInt("42"))
	assert.Equal(t, 0, toInt("not a number"))
	assert.Equal(t, 0, toInt(nil))
}
