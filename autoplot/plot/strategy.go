package plot

import (
	"math"
	"time"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/strategy"
)

// alignMetric re-expresses metric values on the frame axis. Values with a
// time are joined on it; without times the values are taken as already
// aligned. The first warmup values are left out.
func alignMetric(frame *AxisFrame, times []time.Time, values model.Series[float64], warmup int) []float64 {
	aligned := make([]float64, frame.Len())
	for i := range aligned {
		aligned[i] = math.NaN()
	}

	for i, v := range values {
		if i < warmup {
			continue
		}
		if len(times) == 0 {
			if i < len(aligned) {
				aligned[i] = v
			}
			continue
		}
		if i >= len(times) {
			break
		}
		for _, index := range frame.Lookup(times[i]) {
			aligned[index] = v
		}
	}

	return aligned
}

// FromChartIndicator converts a strategy indicator group into series the
// allocator understands.
func FromChartIndicator(frame *AxisFrame, indicator strategy.ChartIndicator) []IndicatorSeries {
	tag := indicator.Type
	kind := ParseIndicatorKind(tag)
	if tag == "" {
		kind = KindBelow
		if indicator.Overlay {
			kind = KindOverlay
		}
		tag = kind.String()
	}

	align := func(metric strategy.IndicatorMetric) []float64 {
		return alignMetric(frame, indicator.Time, metric.Values, indicator.Warmup)
	}

	switch kind {
	case KindMACD:
		data := &MACDData{}
		lines := 0
		for _, metric := range indicator.Metrics {
			switch metric.Style {
			case strategy.StyleHistogram, strategy.StyleBar:
				data.Histogram = align(metric)
			case strategy.StyleScatter:
				data.CrossValues = align(metric)
			default:
				if lines == 0 {
					data.MACD = align(metric)
				} else {
					data.Signal = align(metric)
				}
				lines++
			}
		}
		return []IndicatorSeries{{Name: indicator.GroupName, Kind: kind, Tag: tag, Values: data.MACD, MACD: data}}

	case KindSupertrend:
		data := &SupertrendData{}
		for i, metric := range indicator.Metrics {
			if i == 0 {
				data.Uptrend = align(metric)
			} else if i == 1 {
				data.Downtrend = align(metric)
			}
		}
		return []IndicatorSeries{{Name: indicator.GroupName, Kind: kind, Tag: tag, Values: data.Uptrend, Supertrend: data}}
	}

	series := make([]IndicatorSeries, 0, len(indicator.Metrics))
	for _, metric := range indicator.Metrics {
		name := metric.Name
		if name == "" {
			name = indicator.GroupName
		}
		series = append(series, IndicatorSeries{Name: name, Kind: kind, Tag: tag, Values: align(metric)})
	}
	return series
}

// strategySeries runs the strategy indicators over the plotted candles.
func strategySeries(frame *AxisFrame, s strategy.Strategy, df *model.Dataframe) []IndicatorSeries {
	var series []IndicatorSeries
	for _, indicator := range s.Indicators(df) {
		series = append(series, FromChartIndicator(frame, indicator)...)
	}
	return series
}
