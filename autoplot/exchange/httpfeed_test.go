package exchange

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezquant/autoplot/autoplot/model"
)

func candleServer(t *testing.T, failures int32, status int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= failures {
			w.WriteHeader(status)
			return
		}

		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("pair"))
		assert.Equal(t, "1h", r.URL.Query().Get("timeframe"))
		assert.Equal(t, "2024-01-01T00:00:00Z", r.URL.Query().Get("start"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]model.Candle{
			{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Open: 1, Close: 2, High: 3, Low: 0.5, Volume: 10},
			{Time: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), Open: 2, Close: 3, High: 4, Low: 1.5, Volume: 11},
		})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func fetchDay(feed *HTTPFeed) ([]model.Candle, error) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return feed.CandlesByPeriod(context.Background(), "BTCUSDT", "1h", start, start.Add(24*time.Hour))
}

func TestHTTPFeed_CandlesByPeriod(t *testing.T) {
	server, calls := candleServer(t, 0, 0)

	candles, err := fetchDay(NewHTTPFeed(server.URL))
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.Equal(t, 4.0, candles[1].High)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestHTTPFeed_RetriesServerErrors(t *testing.T) {
	server, calls := candleServer(t, 2, http.StatusBadGateway)

	feed := NewHTTPFeed(server.URL, WithBackoff(time.Millisecond, 5*time.Millisecond))
	candles, err := fetchDay(feed)
	require.NoError(t, err)
	assert.Len(t, candles, 2)
	assert.EqualValues(t, 3, atomic.LoadInt32(calls))
}

func TestHTTPFeed_GivesUp(t *testing.T) {
	server, calls := candleServer(t, 100, http.StatusServiceUnavailable)

	feed := NewHTTPFeed(server.URL, WithRetries(1), WithBackoff(time.Millisecond, time.Millisecond))
	_, err := fetchDay(feed)
	assert.Error(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(calls))
}

func TestHTTPFeed_ClientErrorIsNotRetried(t *testing.T) {
	server, calls := candleServer(t, 100, http.StatusNotFound)

	_, err := fetchDay(NewHTTPFeed(server.URL, WithBackoff(time.Millisecond, time.Millisecond)))
	assert.ErrorIs(t, err, ErrFeedRejected)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestHTTPFeed_CancelledContext(t *testing.T) {
	server, _ := candleServer(t, 100, http.StatusServiceUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	feed := NewHTTPFeed(server.URL, WithRateLimit(1, 1))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := feed.CandlesByPeriod(ctx, "BTCUSDT", "1h", start, start.Add(time.Hour))
	assert.Error(t, err)
}
