package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTradeStatus(t *testing.T) {
	tt := []struct {
		in   string
		want TradeStatus
	}{
		{"closed", TradeStatusClosed},
		{"", TradeStatusClosed},
		{" Open ", TradeStatusOpen},
		{"cancelled", TradeStatusCancelled},
		{"canceled", TradeStatusCancelled},
	}
	for _, tc := range tt {
		status, err := ParseTradeStatus(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, status)
	}

	_, err := ParseTradeStatus("pending")
	assert.Error(t, err)
}

func TestTradeRecord(t *testing.T) {
	entry := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	long := TradeRecord{EntryTime: entry, Size: 2, EntryPrice: 100, Profit: Float(5), Status: TradeStatusClosed}
	assert.True(t, long.Long())
	assert.False(t, long.Short())
	assert.True(t, long.Profitable())
	assert.False(t, long.Unprofitable())
	assert.Equal(t, "[closed] LONG 2.0000 @ 100.0000 (2024-01-01 12:00)", long.String())

	short := TradeRecord{EntryTime: entry, Size: -1, EntryPrice: 100, Profit: Float(-1)}
	assert.True(t, short.Short())
	assert.True(t, short.Unprofitable())

	unknown := TradeRecord{Size: 1}
	assert.False(t, unknown.Profitable())
	assert.False(t, unknown.Unprofitable())

	cancelled := TradeRecord{EntryPrice: 100, OrderPrice: Float(97), Status: TradeStatusCancelled}
	assert.Equal(t, 97.0, cancelled.Price())
	open := TradeRecord{EntryPrice: 100, OrderPrice: Float(97), Status: TradeStatusOpen}
	assert.Equal(t, 100.0, open.Price())
}
