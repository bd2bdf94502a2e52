package indicator

import (
	"fmt"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/plot"

	"github.com/markcheno/go-talib"
)

func RSI(period int) plot.Indicator {
	return &rsi{
		Period: period,
	}
}

type rsi struct {
	Period int
	Values model.Series[float64]
}

func (e rsi) Warmup() int {
	return e.Period
}

func (e rsi) Name() string {
	return fmt.Sprintf("RSI(%d)", e.Period)
}

func (e rsi) Kind() plot.IndicatorKind {
	return plot.KindRSI
}

func (e *rsi) Load(dataframe *model.Dataframe) {
	e.Values = trimWarmup(talib.Rsi(dataframe.Close, e.Period), e.Period)
}

func (e rsi) Series() plot.IndicatorSeries {
	return plot.IndicatorSeries{
		Name:   e.Name(),
		Kind:   e.Kind(),
		Values: e.Values,
	}
}
