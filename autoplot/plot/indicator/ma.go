package indicator

import (
	"fmt"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/plot"

	"github.com/markcheno/go-talib"
)

// EMA is an exponential moving average drawn over the candles.
func EMA(period int, source Source) plot.Indicator {
	return &movingAverage{
		name:    "EMA",
		Period:  period,
		Source:  source,
		compute: talib.Ema,
	}
}

// SMA is a simple moving average drawn over the candles.
func SMA(period int, source Source) plot.Indicator {
	return &movingAverage{
		name:    "SMA",
		Period:  period,
		Source:  source,
		compute: talib.Sma,
	}
}

type movingAverage struct {
	name    string
	Period  int
	Source  Source
	Values  model.Series[float64]
	compute func([]float64, int) []float64
}

func (m movingAverage) Warmup() int {
	return m.Period
}

func (m movingAverage) Name() string {
	return fmt.Sprintf("%s(%d)", m.name, m.Period)
}

func (m movingAverage) Kind() plot.IndicatorKind {
	return plot.KindMA
}

func (m *movingAverage) Load(df *model.Dataframe) {
	m.Values = trimWarmup(m.compute(source(df, m.Source), m.Period), m.Period-1)
}

func (m movingAverage) Series() plot.IndicatorSeries {
	return plot.IndicatorSeries{
		Name:   m.Name(),
		Kind:   m.Kind(),
		Values: m.Values,
	}
}

func source(df *model.Dataframe, s Source) []float64 {
	switch s {
	case Open:
		return df.Open
	case High:
		return df.High
	case Low:
		return df.Low
	}
	return df.Close
}
