package plot

import (
	"github.com/samber/lo"

	"github.com/ezquant/autoplot/autoplot/model"
)

const (
	LabelProfitableLongs    = "Profitable long trades"
	LabelProfitableShorts   = "Profitable short trades"
	LabelUnprofitableLongs  = "Unprofitable long trades"
	LabelUnprofitableShorts = "Unprofitable short trades"
	LabelOpenLongs          = "Open long trades"
	LabelOpenShorts         = "Open short trades"
	LabelCancelledLongs     = "Cancelled long trades"
	LabelCancelledShorts    = "Cancelled short trades"
	LabelStopLoss           = "Stop loss"
	LabelTakeProfit         = "Take profit"
	LabelPositionExit       = "Position exit"
)

const tradeMarkerSize = 15

// alignedTrade is a trade record placed on the axis.
type alignedTrade struct {
	index  int
	record model.TradeRecord
}

// joinEntries is the equi-join of the records entry time against the frame
// timestamps. Records without an exact match are left out; a timestamp that
// appears twice in the frame places the record twice.
func joinEntries(frame *AxisFrame, records []model.TradeRecord) []alignedTrade {
	var joined []alignedTrade
	for _, record := range records {
		for _, index := range frame.Lookup(record.EntryTime) {
			joined = append(joined, alignedTrade{index: index, record: record})
		}
	}
	return joined
}

// joinExits places closed trades on their exit bar.
func joinExits(frame *AxisFrame, records []model.TradeRecord) []alignedTrade {
	var joined []alignedTrade
	for _, record := range records {
		if record.ExitTime == nil || record.ExitPrice == nil {
			continue
		}
		for _, index := range frame.Lookup(*record.ExitTime) {
			joined = append(joined, alignedTrade{index: index, record: record})
		}
	}
	return joined
}

// allPresent is the all or nothing policy of the stop loss and take profit
// layers: the layer is drawn only when no record of the table lacks the field.
func allPresent(records []model.TradeRecord, field func(model.TradeRecord) *float64) bool {
	for _, record := range records {
		if field(record) == nil {
			return false
		}
	}
	return true
}

func stopLoss(t model.TradeRecord) *float64   { return t.StopLoss }
func takeProfit(t model.TradeRecord) *float64 { return t.TakeProfit }

func tradePoints(trades []alignedTrade, price func(model.TradeRecord) float64) []Point {
	return lo.Map(trades, func(t alignedTrade, _ int) Point {
		return Point{X: float64(t.index), Y: price(t.record)}
	})
}

func entryPrice(t model.TradeRecord) float64 { return t.EntryPrice }
func orderPrice(t model.TradeRecord) float64 { return t.Price() }

func filterTrades(trades []alignedTrade, keep func(model.TradeRecord) bool) []alignedTrade {
	return lo.Filter(trades, func(t alignedTrade, _ int) bool {
		return keep(t.record)
	})
}

// AlignTrades turns one trade table into marker layers on the axis of frame.
// status says which table it is: closed trades are split by outcome and side
// and get exit markers, open and cancelled trades only by side.
func AlignTrades(frame *AxisFrame, records []model.TradeRecord, status model.TradeStatus) []Layer {
	entries := joinEntries(frame, records)
	longs := filterTrades(entries, model.TradeRecord.Long)
	shorts := filterTrades(entries, model.TradeRecord.Short)

	var layers []Layer
	switch status {
	case model.TradeStatusClosed:
		layers = append(layers,
			markerLayer(tradePoints(filterTrades(longs, model.TradeRecord.Profitable), entryPrice),
				MarkerTriangle, "lightgreen", LabelProfitableLongs, tradeMarkerSize),
			markerLayer(tradePoints(filterTrades(shorts, model.TradeRecord.Profitable), entryPrice),
				MarkerInvertedTriangle, "lightgreen", LabelProfitableShorts, tradeMarkerSize),
			markerLayer(tradePoints(filterTrades(longs, model.TradeRecord.Unprofitable), entryPrice),
				MarkerTriangle, "orangered", LabelUnprofitableLongs, tradeMarkerSize),
			markerLayer(tradePoints(filterTrades(shorts, model.TradeRecord.Unprofitable), entryPrice),
				MarkerInvertedTriangle, "orangered", LabelUnprofitableShorts, tradeMarkerSize),
		)
	case model.TradeStatusOpen:
		layers = append(layers,
			markerLayer(tradePoints(longs, entryPrice), MarkerTriangle, "white", LabelOpenLongs, tradeMarkerSize),
			markerLayer(tradePoints(shorts, entryPrice), MarkerInvertedTriangle, "white", LabelOpenShorts, tradeMarkerSize),
		)
	case model.TradeStatusCancelled:
		layers = append(layers,
			markerLayer(tradePoints(longs, orderPrice), MarkerTriangle, "black", LabelCancelledLongs, tradeMarkerSize),
			markerLayer(tradePoints(shorts, orderPrice), MarkerInvertedTriangle, "black", LabelCancelledShorts, tradeMarkerSize),
		)
	}

	if allPresent(records, stopLoss) {
		layers = append(layers, markerLayer(tradePoints(entries, func(t model.TradeRecord) float64 {
			return *t.StopLoss
		}), MarkerDash, "black", LabelStopLoss, tradeMarkerSize))
	}

	if allPresent(records, takeProfit) {
		layers = append(layers, markerLayer(tradePoints(entries, func(t model.TradeRecord) float64 {
			return *t.TakeProfit
		}), MarkerDash, "black", LabelTakeProfit, tradeMarkerSize))
	}

	if status == model.TradeStatusClosed {
		exits := joinExits(frame, records)
		layers = append(layers, markerLayer(tradePoints(exits, func(t model.TradeRecord) float64 {
			return *t.ExitPrice
		}), MarkerCircle, "black", LabelPositionExit, tradeMarkerSize))
	}

	return lo.Filter(layers, func(layer Layer, _ int) bool {
		return layer.Len() > 0
	})
}

// SplitTrades separates a mixed table by status, keeping row order.
func SplitTrades(records []model.TradeRecord) (closed, open, cancelled []model.TradeRecord) {
	for _, record := range records {
		switch record.Status {
		case model.TradeStatusOpen:
			open = append(open, record)
		case model.TradeStatusCancelled:
			cancelled = append(cancelled, record)
		default:
			closed = append(closed, record)
		}
	}
	return closed, open, cancelled
}
