package plot

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/strategy"
)

func TestAlignMetric(t *testing.T) {
	frame := Normalize(sampleCandles(5))

	t.Run("joined by time", func(t *testing.T) {
		aligned := alignMetric(frame, []time.Time{hour(1), hour(3), hour(9)}, model.Series[float64]{10, 30, 90}, 0)
		require.Len(t, aligned, 5)
		assert.Equal(t, 10.0, aligned[1])
		assert.Equal(t, 30.0, aligned[3])
		assert.True(t, math.IsNaN(aligned[0]))
		assert.True(t, math.IsNaN(aligned[4]))
	})

	t.Run("positional without times", func(t *testing.T) {
		aligned := alignMetric(frame, nil, model.Series[float64]{1, 2, 3, 4, 5, 6}, 2)
		assert.True(t, math.IsNaN(aligned[0]))
		assert.True(t, math.IsNaN(aligned[1]))
		assert.Equal(t, []float64{3, 4, 5}, aligned[2:])
	})
}

func TestFromChartIndicator(t *testing.T) {
	frame := Normalize(sampleCandles(10))
	times := frame.Times()
	values := model.Series[float64](constant(10, 1))

	t.Run("overlay flag without type", func(t *testing.T) {
		series := FromChartIndicator(frame, strategy.ChartIndicator{
			Overlay:   true,
			GroupName: "MA's",
			Time:      times,
			Metrics: []strategy.IndicatorMetric{
				{Name: "EMA 8", Values: values},
				{Values: values},
			},
		})
		require.Len(t, series, 2)
		assert.Equal(t, KindOverlay, series[0].Kind)
		assert.Equal(t, "EMA 8", series[0].Name)
		assert.Equal(t, "MA's", series[1].Name)
	})

	t.Run("below without type", func(t *testing.T) {
		series := FromChartIndicator(frame, strategy.ChartIndicator{
			GroupName: "volume",
			Metrics:   []strategy.IndicatorMetric{{Name: "volume", Values: values}},
		})
		require.Len(t, series, 1)
		assert.Equal(t, KindBelow, series[0].Kind)
	})

	t.Run("macd by style", func(t *testing.T) {
		series := FromChartIndicator(frame, strategy.ChartIndicator{
			GroupName: "MACD",
			Type:      "MACD",
			Time:      times,
			Metrics: []strategy.IndicatorMetric{
				{Name: "hist", Values: values, Style: strategy.StyleHistogram},
				{Name: "macd", Values: values},
				{Name: "signal", Values: values},
				{Name: "cross", Values: values, Style: strategy.StyleScatter},
			},
		})
		require.Len(t, series, 1)
		data := series[0].MACD
		require.NotNil(t, data)
		assert.Len(t, data.MACD, 10)
		assert.Len(t, data.Signal, 10)
		assert.Len(t, data.Histogram, 10)
		assert.Len(t, data.CrossValues, 10)
	})

	t.Run("supertrend takes two metrics", func(t *testing.T) {
		series := FromChartIndicator(frame, strategy.ChartIndicator{
			GroupName: "ST",
			Type:      "supertrend",
			Time:      times,
			Metrics: []strategy.IndicatorMetric{
				{Values: values},
				{Values: values},
			},
		})
		require.Len(t, series, 1)
		assert.Equal(t, KindSupertrend, series[0].Kind)
		require.NotNil(t, series[0].Supertrend)
	})

	t.Run("unknown type keeps its tag", func(t *testing.T) {
		series := FromChartIndicator(frame, strategy.ChartIndicator{
			GroupName: "ichimoku",
			Type:      "Ichimoku",
			Metrics:   []strategy.IndicatorMetric{{Values: values}},
		})
		require.Len(t, series, 1)
		assert.Equal(t, KindUnknown, series[0].Kind)
		assert.Equal(t, "Ichimoku", series[0].DeclaredType())
	})
}
