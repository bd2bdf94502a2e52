package plot

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartServer(t *testing.T) {
	fig := sampleFigure(t)
	server := httptest.NewServer(NewChartServer(fig).Handler())
	defer server.Close()

	t.Run("index", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	})

	t.Run("figure", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/figure")
		require.NoError(t, err)
		defer resp.Body.Close()

		var view map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
		assert.Equal(t, fig.ID, view["id"])
	})

	t.Run("range", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/range", "application/json",
			strings.NewReader(`{"start": 5, "end": 15}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body rangeResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotNil(t, body.Y)

		low, high, ok := NewAutoscaler(Normalize(sampleCandles(40)), DefaultAutoscalePadding).Bounds(5, 15)
		require.True(t, ok)
		assert.InDelta(t, low, body.Y[0], 1e-9)
		assert.InDelta(t, high, body.Y[1], 1e-9)
		assert.Equal(t, 15.0, fig.XRange.End())
	})

	t.Run("invalid range", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/range", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/range")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/range", "application/json",
			strings.NewReader(`{"start": 500, "end": 600}`))
		require.NoError(t, err)
		resp.Body.Close()

		resp, err = http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		metrics := string(body)
		assert.Contains(t, metrics, "autoplot_relay_duration_seconds_count 2")
		assert.Contains(t, metrics, "autoplot_relay_empty_window_total 1")
		assert.Contains(t, metrics, `autoplot_requests_total{route="/range"} 3`)
	})
}
