package plot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezquant/autoplot/autoplot/model"
)

func closedTrade(entry, exit int, size, price, profit float64) model.TradeRecord {
	return model.TradeRecord{
		EntryTime:  hour(entry),
		ExitTime:   model.Time(hour(exit)),
		Size:       size,
		EntryPrice: price,
		ExitPrice:  model.Float(price + profit/size),
		Profit:     model.Float(profit),
		Status:     model.TradeStatusClosed,
	}
}

func layersByLabel(layers []Layer) map[string]Layer {
	byLabel := make(map[string]Layer, len(layers))
	for _, layer := range layers {
		byLabel[layer.Label] = layer
	}
	return byLabel
}

func TestAlignTrades_Closed(t *testing.T) {
	frame := Normalize(sampleCandles(30))
	trades := []model.TradeRecord{
		closedTrade(2, 5, 1, 100, 10),
		closedTrade(6, 8, -1, 101, 5),
		closedTrade(9, 12, 1, 102, -3),
		closedTrade(13, 14, -2, 103, -4),
		closedTrade(15, 16, 1, 104, 0),
	}

	layers := layersByLabel(AlignTrades(frame, trades, model.TradeStatusClosed))

	assert.Equal(t, []Point{{X: 2, Y: 100}}, layers[LabelProfitableLongs].Points)
	assert.Equal(t, MarkerTriangle, layers[LabelProfitableLongs].Marker)
	assert.Equal(t, "lightgreen", layers[LabelProfitableLongs].FillColor)

	assert.Equal(t, []Point{{X: 6, Y: 101}}, layers[LabelProfitableShorts].Points)
	assert.Equal(t, MarkerInvertedTriangle, layers[LabelProfitableShorts].Marker)

	assert.Equal(t, []Point{{X: 9, Y: 102}}, layers[LabelUnprofitableLongs].Points)
	assert.Equal(t, "orangered", layers[LabelUnprofitableLongs].FillColor)
	assert.Equal(t, []Point{{X: 13, Y: 103}}, layers[LabelUnprofitableShorts].Points)

	exits := layers[LabelPositionExit]
	assert.Len(t, exits.Points, 5)
	assert.Equal(t, MarkerCircle, exits.Marker)
	assert.Equal(t, Point{X: 5, Y: 110}, exits.Points[0])

	_, ok := layers[LabelStopLoss]
	assert.False(t, ok)
	_, ok = layers[LabelTakeProfit]
	assert.False(t, ok)
}

func TestAlignTrades_UnmatchedEntry(t *testing.T) {
	frame := Normalize(sampleCandles(30))
	trade := closedTrade(2, 5, 1, 100, 10)
	trade.EntryTime = hour(2).Add(30 * time.Minute)

	layers := layersByLabel(AlignTrades(frame, []model.TradeRecord{trade}, model.TradeStatusClosed))

	_, ok := layers[LabelProfitableLongs]
	assert.False(t, ok, "no nearest match")
	assert.Len(t, layers[LabelPositionExit].Points, 1, "exit still joins on its own time")
}

func TestAlignTrades_DuplicateTimestamps(t *testing.T) {
	candles := sampleCandles(5)
	candles[3].Time = candles[2].Time
	frame := Normalize(candles)

	layers := layersByLabel(AlignTrades(frame, []model.TradeRecord{closedTrade(2, 4, 1, 100, 1)}, model.TradeStatusClosed))
	assert.Equal(t, []Point{{X: 2, Y: 100}, {X: 3, Y: 100}}, layers[LabelProfitableLongs].Points)
}

func TestAlignTrades_StopLossAllOrNothing(t *testing.T) {
	frame := Normalize(sampleCandles(30))

	withStop := func(trade model.TradeRecord, stop float64) model.TradeRecord {
		trade.StopLoss = model.Float(stop)
		trade.TakeProfit = model.Float(stop + 20)
		return trade
	}

	t.Run("every record has one", func(t *testing.T) {
		trades := []model.TradeRecord{
			withStop(closedTrade(2, 5, 1, 100, 10), 95),
			withStop(closedTrade(6, 8, 1, 100, 10), 96),
		}
		layers := layersByLabel(AlignTrades(frame, trades, model.TradeStatusClosed))

		require.Contains(t, layers, LabelStopLoss)
		assert.Equal(t, []Point{{X: 2, Y: 95}, {X: 6, Y: 96}}, layers[LabelStopLoss].Points)
		assert.Equal(t, MarkerDash, layers[LabelStopLoss].Marker)
		assert.Equal(t, []Point{{X: 2, Y: 115}, {X: 6, Y: 116}}, layers[LabelTakeProfit].Points)
	})

	t.Run("one record lacks it", func(t *testing.T) {
		trades := []model.TradeRecord{
			withStop(closedTrade(2, 5, 1, 100, 10), 95),
			closedTrade(6, 8, 1, 100, 10),
		}
		layers := layersByLabel(AlignTrades(frame, trades, model.TradeStatusClosed))
		assert.NotContains(t, layers, LabelStopLoss)
		assert.NotContains(t, layers, LabelTakeProfit)
	})
}

func TestAlignTrades_OpenAndCancelled(t *testing.T) {
	frame := Normalize(sampleCandles(30))

	open := []model.TradeRecord{
		{EntryTime: hour(20), Size: 1, EntryPrice: 100, Status: model.TradeStatusOpen},
		{EntryTime: hour(21), Size: -1, EntryPrice: 101, Status: model.TradeStatusOpen},
	}
	layers := layersByLabel(AlignTrades(frame, open, model.TradeStatusOpen))
	assert.Equal(t, []Point{{X: 20, Y: 100}}, layers[LabelOpenLongs].Points)
	assert.Equal(t, "white", layers[LabelOpenLongs].FillColor)
	assert.Equal(t, []Point{{X: 21, Y: 101}}, layers[LabelOpenShorts].Points)
	assert.NotContains(t, layers, LabelPositionExit)

	cancelled := []model.TradeRecord{
		{EntryTime: hour(22), Size: 1, EntryPrice: 100, OrderPrice: model.Float(98), Status: model.TradeStatusCancelled},
	}
	layers = layersByLabel(AlignTrades(frame, cancelled, model.TradeStatusCancelled))
	assert.Equal(t, []Point{{X: 22, Y: 98}}, layers[LabelCancelledLongs].Points)
	assert.Equal(t, "black", layers[LabelCancelledLongs].FillColor)
	assert.NotContains(t, layers, LabelCancelledShorts)
}

func TestAlignTrades_Empty(t *testing.T) {
	frame := Normalize(sampleCandles(30))
	assert.Empty(t, AlignTrades(frame, nil, model.TradeStatusClosed))
	assert.Empty(t, AlignTrades(Normalize(nil), []model.TradeRecord{closedTrade(1, 2, 1, 1, 1)}, model.TradeStatusClosed))
}

func TestSplitTrades(t *testing.T) {
	records := []model.TradeRecord{
		{Status: model.TradeStatusOpen},
		{Status: model.TradeStatusClosed},
		{Status: model.TradeStatusCancelled},
		{},
	}
	closed, open, cancelled := SplitTrades(records)
	assert.Len(t, closed, 2)
	assert.Len(t, open, 1)
	assert.Len(t, cancelled, 1)
}
