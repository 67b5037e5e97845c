package twelvedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCandles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time_series", r.URL.Path)
		assert.Equal(t, "EUR/USD", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1day", r.URL.Query().Get("interval"))
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		// Newest first, as the API returns it.
		_, _ = w.Write([]byte(`{
			"meta": {"symbol": "EUR/USD", "interval": "1day"},
			"values": [
				{"datetime": "2025-03-04", "open": "1.0480", "high": "1.0630", "low": "1.0470", "close": "1.0620"},
				{"datetime": "2025-03-03", "open": "1.0400", "high": "1.0490", "low": "1.0390", "close": "1.0480"}
			],
			"status": "ok"
		}`))
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{APIKey: "secret", BaseURL: srv.URL, RequestsPerSec: 50})
	candles, err := client.GetCandles(context.Background(), "EUR/USD", "1d", 2)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), candles[0].OpenTime)
	assert.Equal(t, 1.0480, candles[0].Close)
	assert.Equal(t, 1.0620, candles[1].Close)
	assert.Zero(t, candles[1].Volume)
}

func TestGetCandles_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": 400, "message": "symbol not found", "status": "error"}`))
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	_, err := client.GetCandles(context.Background(), "NOPE", "4h", 10)
	assert.ErrorContains(t, err, "symbol not found")
}

func TestTranslateInterval(t *testing.T) {
	assert.Equal(t, "4h", translateInterval("4h"))
	assert.Equal(t, "15min", translateInterval("15m"))
	assert.Equal(t, "1day", translateInterval("1d"))
}
