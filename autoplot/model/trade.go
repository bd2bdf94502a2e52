package model

import (
	"fmt"
	"strings"
	"time"
)

type TradeStatus string

const (
	TradeStatusClosed    TradeStatus = "closed"
	TradeStatusOpen      TradeStatus = "open"
	TradeStatusCancelled TradeStatus = "cancelled"
)

// ParseTradeStatus accepts the status column of a trade table.
func ParseTradeStatus(s string) (TradeStatus, error) {
	switch TradeStatus(strings.ToLower(strings.TrimSpace(s))) {
	case TradeStatusClosed, "":
		return TradeStatusClosed, nil
	case TradeStatusOpen:
		return TradeStatusOpen, nil
	case TradeStatusCancelled, "canceled":
		return TradeStatusCancelled, nil
	}
	return "", fmt.Errorf("invalid trade status: %q", s)
}

// TradeRecord is one row of a trade table produced by a backtest. Optional
// columns are nil when the bookkeeping did not record them.
type TradeRecord struct {
	EntryTime  time.Time
	ExitTime   *time.Time
	Size       float64
	EntryPrice float64
	OrderPrice *float64
	ExitPrice  *float64
	StopLoss   *float64
	TakeProfit *float64
	Profit     *float64
	Status     TradeStatus
}

func (t TradeRecord) Long() bool {
	return t.Size > 0
}

func (t TradeRecord) Short() bool {
	return t.Size < 0
}

// Profitable is false for trades without a realized profit.
func (t TradeRecord) Profitable() bool {
	return t.Profit != nil && *t.Profit > 0
}

func (t TradeRecord) Unprofitable() bool {
	return t.Profit != nil && *t.Profit < 0
}

// Price returns the level a not yet closed trade is drawn at: the order price
// for cancelled orders, the entry price otherwise.
func (t TradeRecord) Price() float64 {
	if t.Status == TradeStatusCancelled && t.OrderPrice != nil {
		return *t.OrderPrice
	}
	return t.EntryPrice
}

func (t TradeRecord) String() string {
	side := "LONG"
	if t.Short() {
		side = "SHORT"
	}
	return fmt.Sprintf("[%s] %s %.4f @ %.4f (%s)", t.Status, side, t.Size, t.EntryPrice,
		t.EntryTime.Format("2006-01-02 15:04"))
}

// Float is a helper to fill optional numeric columns.
func Float(v float64) *float64 {
	return &v
}

// Time is a helper to fill optional timestamp columns.
func Time(t time.Time) *time.Time {
	return &t
}
