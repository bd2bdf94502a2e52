package plot

import (
	"time"

	"github.com/ezquant/autoplot/autoplot/model"
)

// MACDData is the payload of a KindMACD series.
type MACDData struct {
	MACD      []float64 `json:"macd"`
	Signal    []float64 `json:"signal"`
	Histogram []float64 `json:"histogram"`
	// CrossValues is optional, NaN where there is no crossover.
	CrossValues []float64 `json:"crossvals,omitempty"`
}

// SupertrendData is the payload of a KindSupertrend series.
type SupertrendData struct {
	Uptrend   []float64 `json:"uptrend"`
	Downtrend []float64 `json:"downtrend"`
}

// SwingsData holds swing levels keyed by their own timestamps; they are joined
// onto the frame by date.
type SwingsData struct {
	Time []time.Time `json:"time"`
	Last []float64   `json:"last"`
}

// IndicatorSeries is an already computed indicator with a declared type.
// Values are aligned 1:1 with the frame the chart is built from.
type IndicatorSeries struct {
	Name   string
	Kind   IndicatorKind
	Tag    string
	Values []float64

	MACD       *MACDData
	Supertrend *SupertrendData
	Swings     *SwingsData
	// Candles feeds KindHeikinAshi, normalized onto its own frame.
	Candles []model.Candle
}

// NewIndicatorSeries resolves tag through the kind enumeration. The tag is kept
// so unknown types can be reported by name.
func NewIndicatorSeries(name, tag string, values []float64) IndicatorSeries {
	return IndicatorSeries{
		Name:   name,
		Kind:   ParseIndicatorKind(tag),
		Tag:    tag,
		Values: values,
	}
}

// DeclaredType is the tag the series was declared with.
func (s IndicatorSeries) DeclaredType() string {
	if s.Tag != "" {
		return s.Tag
	}
	return s.Kind.String()
}

// Indicator is a chart side indicator computed from the candles being plotted.
type Indicator interface {
	Name() string
	Kind() IndicatorKind
	Warmup() int
	Load(dataframe *model.Dataframe)
	Series() IndicatorSeries
}
