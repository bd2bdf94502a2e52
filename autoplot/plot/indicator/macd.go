package indicator

import (
	"fmt"
	"math"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/plot"

	"github.com/markcheno/go-talib"
)

func MACD(fast, slow, signal int) plot.Indicator {
	return &macd{
		Fast:   fast,
		Slow:   slow,
		Signal: signal,
	}
}

type macd struct {
	Fast, Slow, Signal int

	data plot.MACDData
}

func (e macd) Warmup() int {
	return e.Slow + e.Signal - 2
}

func (e macd) Name() string {
	return fmt.Sprintf("MACD(%d, %d, %d)", e.Fast, e.Slow, e.Signal)
}

func (e macd) Kind() plot.IndicatorKind {
	return plot.KindMACD
}

func (e *macd) Load(df *model.Dataframe) {
	line, signal, histogram := talib.Macd(df.Close, e.Fast, e.Slow, e.Signal)
	warmup := e.Warmup()

	e.data = plot.MACDData{
		MACD:        trimWarmup(line, warmup),
		Signal:      trimWarmup(signal, warmup),
		Histogram:   trimWarmup(histogram, warmup),
		CrossValues: crossValues(trimWarmup(line, warmup), trimWarmup(signal, warmup)),
	}
}

// crossValues marks the MACD level at every bar where it crosses its signal.
func crossValues(line, signal []float64) []float64 {
	values := make([]float64, len(line))
	for i := range values {
		values[i] = math.NaN()
		if i == 0 || math.IsNaN(line[i-1]) || math.IsNaN(signal[i-1]) {
			continue
		}
		if (line[i] > signal[i]) != (line[i-1] > signal[i-1]) {
			values[i] = line[i]
		}
	}
	return values
}

func (e macd) Series() plot.IndicatorSeries {
	data := e.data
	return plot.IndicatorSeries{
		Name:   e.Name(),
		Kind:   e.Kind(),
		Values: data.MACD,
		MACD:   &data,
	}
}
