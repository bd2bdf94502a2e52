package strategy

import (
	"time"

	"github.com/ezquant/autoplot/autoplot/model"
)

type MetricStyle string

const (
	StyleBar       = "bar"
	StyleScatter   = "scatter"
	StyleLine      = "line"
	StyleHistogram = "histogram"
	StyleWaterfall = "waterfall"
)

type IndicatorMetric struct {
	Name   string
	Color  string
	Style  MetricStyle // default: line
	Values model.Series[float64]
}

// ChartIndicator is a group of metrics a strategy wants on the chart. Type is
// the declared placement tag (MA, MACD, RSI, ...); when empty, Overlay picks
// between a plain overlay and a plain sub-panel.
type ChartIndicator struct {
	Time      []time.Time
	Metrics   []IndicatorMetric
	Overlay   bool
	GroupName string
	Warmup    int
	Type      string
}

// Strategy is the part of a trading strategy the chart needs.
type Strategy interface {
	Timeframe() string
	WarmupPeriod() int
	Indicators(df *model.Dataframe) []ChartIndicator
}
