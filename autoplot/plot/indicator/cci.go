package indicator

import (
	"fmt"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/plot"

	"github.com/markcheno/go-talib"
)

func CCI(period int) plot.Indicator {
	return &cci{
		Period: period,
	}
}

type cci struct {
	Period int
	Values model.Series[float64]
}

func (c cci) Warmup() int {
	return c.Period
}

func (c cci) Name() string {
	return fmt.Sprintf("CCI(%d)", c.Period)
}

func (c cci) Kind() plot.IndicatorKind {
	return plot.KindBelow
}

func (c *cci) Load(dataframe *model.Dataframe) {
	c.Values = trimWarmup(talib.Cci(dataframe.High, dataframe.Low, dataframe.Close, c.Period), c.Period)
}

func (c cci) Series() plot.IndicatorSeries {
	return plot.IndicatorSeries{
		Name:   c.Name(),
		Kind:   c.Kind(),
		Values: c.Values,
	}
}
