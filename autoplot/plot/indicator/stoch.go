package indicator

import (
	"fmt"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/plot"

	"github.com/markcheno/go-talib"
)

// Stochastic plots the slow %K line of the stochastic oscillator.
func Stochastic(fastK, slowK, slowD int) plot.Indicator {
	return &stochastic{
		FastK: fastK,
		SlowK: slowK,
		SlowD: slowD,
	}
}

type stochastic struct {
	FastK, SlowK, SlowD int
	Values              model.Series[float64]
}

func (s stochastic) Warmup() int {
	return s.FastK + s.SlowK + s.SlowD - 3
}

func (s stochastic) Name() string {
	return fmt.Sprintf("STOCH(%d, %d, %d)", s.FastK, s.SlowK, s.SlowD)
}

func (s stochastic) Kind() plot.IndicatorKind {
	return plot.KindStochastic
}

func (s *stochastic) Load(df *model.Dataframe) {
	k, _ := talib.Stoch(df.High, df.Low, df.Close, s.FastK, s.SlowK, talib.SMA, s.SlowD, talib.SMA)
	s.Values = trimWarmup(k, s.Warmup())
}

func (s stochastic) Series() plot.IndicatorSeries {
	return plot.IndicatorSeries{
		Name:   s.Name(),
		Kind:   s.Kind(),
		Values: s.Values,
	}
}
