package plot

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/ezquant/autoplot/autoplot/model"
)

// NewBotResult summarizes the closed trades of one instrument. Trades without
// a recorded profit are counted but never win or lose.
func NewBotResult(instrument string, trades []model.TradeRecord) BotResult {
	closed := lo.Filter(trades, func(t model.TradeRecord, _ int) bool {
		return t.Status == model.TradeStatusClosed || t.Status == ""
	})

	result := BotResult{Instrument: instrument, Trades: len(closed)}
	wins := lo.FilterMap(closed, func(t model.TradeRecord, _ int) (float64, bool) {
		return lo.FromPtr(t.Profit), t.Profitable()
	})
	losses := lo.FilterMap(closed, func(t model.TradeRecord, _ int) (float64, bool) {
		return math.Abs(lo.FromPtr(t.Profit)), t.Unprofitable()
	})

	if len(closed) > 0 {
		result.WinRate = float64(len(wins)) / float64(len(closed)) * 100
	}
	if len(wins) > 0 {
		result.AvgWin = lo.Sum(wins) / float64(len(wins))
		result.MaxWin = lo.Max(wins)
	}
	if len(losses) > 0 {
		result.AvgLoss = lo.Sum(losses) / float64(len(losses))
		result.MaxLoss = lo.Max(losses)
	}
	return result
}

// CumulativeProfit accumulates the realized profit of closed trades at their
// exit times.
func CumulativeProfit(instrument string, trades []model.TradeRecord) InstrumentPL {
	realized := lo.Filter(trades, func(t model.TradeRecord, _ int) bool {
		return t.ExitTime != nil && t.Profit != nil
	})
	sort.SliceStable(realized, func(i, j int) bool {
		return realized[i].ExitTime.Before(*realized[j].ExitTime)
	})

	pl := InstrumentPL{
		Instrument: instrument,
		Time:       make([]time.Time, 0, len(realized)),
		Profit:     make([]float64, 0, len(realized)),
	}
	total := 0.0
	for _, t := range realized {
		total += *t.Profit
		pl.Time = append(pl.Time, *t.ExitTime)
		pl.Profit = append(pl.Profit, total)
	}
	return pl
}

// NetAssetValue is the account value at every candle: the initial balance
// plus the profit every instrument realized up to that candle.
func NetAssetValue(candles []model.Candle, initial float64, cumulative []InstrumentPL) []float64 {
	nav := make([]float64, len(candles))
	for i, candle := range candles {
		nav[i] = initial
		for _, pl := range cumulative {
			// last realized total at or before the candle
			n := sort.Search(len(pl.Time), func(k int) bool { return pl.Time[k].After(candle.Time) })
			if n > 0 && n <= len(pl.Profit) {
				nav[i] += pl.Profit[n-1]
			}
		}
	}
	return nav
}

// StepProfit holds the running profit of one instrument at every candle, the
// last realized total at or before it.
func StepProfit(candles []model.Candle, pl InstrumentPL) []float64 {
	return NetAssetValue(candles, 0, []InstrumentPL{pl})
}
