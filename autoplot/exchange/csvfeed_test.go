package exchange

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezquant/autoplot/autoplot/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCandles(t *testing.T) {
	t.Run("unix seconds without header", func(t *testing.T) {
		path := writeFile(t, "btc-1h.csv", "1704067200,100,101,102,99,10\n1704070800,101,103,104,100,12\n")

		candles, err := LoadCandles(path)
		require.NoError(t, err)
		require.Len(t, candles, 2)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), candles[0].Time)
		assert.Equal(t, model.Candle{
			Time: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), Open: 101, Close: 103, High: 104, Low: 100, Volume: 12,
		}, candles[1])
	})

	t.Run("header and rfc3339", func(t *testing.T) {
		path := writeFile(t, "eth.csv", "time,open,close,high,low,volume\n2024-01-01T00:00:00Z,1,2,3,0.5,7\n")

		candles, err := LoadCandles(path)
		require.NoError(t, err)
		require.Len(t, candles, 1)
		assert.Equal(t, 3.0, candles[0].High)
	})

	t.Run("invalid rows", func(t *testing.T) {
		_, err := LoadCandles(writeFile(t, "short.csv", "1704067200,1,2\n"))
		assert.Error(t, err)

		_, err = LoadCandles(writeFile(t, "nan.csv", "1704067200,1,x,3,4,5\n"))
		assert.Error(t, err)

		_, err = LoadCandles(filepath.Join(t.TempDir(), "missing.csv"))
		assert.Error(t, err)
	})
}

func TestLoadTrades(t *testing.T) {
	content := `date,size,entry,exit_time,exit_price,stop_loss,take_profit,profit,status,order_price
2024-01-01T02:00:00Z,1,100,2024-01-01T05:00:00Z,110,95,,10,closed,
2024-01-01 03:00:00,-2,105,,,none,nan,,open,
2024-01-02,1,101,,,,,,canceled,99
`
	trades, err := LoadTrades(writeFile(t, "trades.csv", content))
	require.NoError(t, err)
	require.Len(t, trades, 3)

	closed := trades[0]
	assert.Equal(t, model.TradeStatusClosed, closed.Status)
	require.NotNil(t, closed.ExitTime)
	assert.Equal(t, time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC), *closed.ExitTime)
	assert.Equal(t, 110.0, *closed.ExitPrice)
	assert.Equal(t, 95.0, *closed.StopLoss)
	assert.Nil(t, closed.TakeProfit)
	assert.True(t, closed.Profitable())

	open := trades[1]
	assert.Equal(t, model.TradeStatusOpen, open.Status)
	assert.True(t, open.Short())
	assert.Nil(t, open.StopLoss)
	assert.Nil(t, open.TakeProfit)
	assert.Nil(t, open.ExitTime)

	cancelled := trades[2]
	assert.Equal(t, model.TradeStatusCancelled, cancelled.Status)
	assert.Equal(t, 99.0, cancelled.Price())
}

func TestLoadTrades_Invalid(t *testing.T) {
	_, err := LoadTrades(writeFile(t, "nodate.csv", "size,entry\n1,100\n"))
	assert.Error(t, err)

	_, err = LoadTrades(writeFile(t, "status.csv", "date,size,entry,status\n2024-01-01,1,100,pending\n"))
	assert.Error(t, err)

	_, err = LoadTrades(writeFile(t, "profit.csv", "date,size,entry,profit\n2024-01-01,1,100,lots\n"))
	assert.Error(t, err)

	trades, err := LoadTrades(writeFile(t, "empty.csv", ""))
	assert.NoError(t, err)
	assert.Empty(t, trades)
}
