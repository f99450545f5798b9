package clients

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const holidayPayload = `{
    "response": {
        "holidays": [
            {"name": "Hari Raya Aidilfitri", "date": {"iso": "2025-03-31"}, "type": ["Religious holiday"]},
            {"name": "Merdeka Day", "date": {"iso": "2025-08-31"}, "type": ["National holiday"]},
            {"name": "Broken entry", "date": {"iso": "not-a-date"}, "type": []}
        ]
    }
}`

func newTestHolidayClient(server *httptest.Server) *HolidayClient {
	client := NewHolidayClient("test-key")
	client.baseURL = server.URL
	return client
}

func TestHolidaysForYearParsesAndDropsBadDates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "MY", r.URL.Query().Get("country"))
		w.Write([]byte(holidayPayload))
	}))
	defer server.Close()

	client := newTestHolidayClient(server)
	holidays, err := client.HolidaysForYear(2025)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "Hari Raya Aidilfitri", holidays[0].Name)
	assert.Equal(t, "Religious holiday", holidays[0].Type)
}

func TestHolidaysForYearWithoutKeyIsEmpty(t *testing.T) {
	client := NewHolidayClient("")
	holidays, err := client.HolidaysForYear(2025)
	require.NoError(t, err)
	assert.Empty(t, holidays)
}

func TestHolidaysForYearCachesPerYear(t *testing.T) {
	var fetches int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fetches, 1)
		w.Write([]byte(holidayPayload))
	}))
	defer server.Close()

	client := newTestHolidayClient(server)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.HolidaysForYear(2025)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Concurrent lookups of one year collapse to a single upstream fetch.
	assert.Equal(t, int64(1), atomic.LoadInt64(&fetches))

	_, err := client.HolidaysForYear(2025)
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&fetches))
}

func TestHolidaysForYearUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestHolidayClient(server)
	_, err := client.HolidaysForYear(2025)
	assert.Error(t, err)
}
