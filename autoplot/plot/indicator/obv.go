package indicator

import (
	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/plot"

	"github.com/markcheno/go-talib"
)

func OBV() plot.Indicator {
	return &obv{}
}

type obv struct {
	Values model.Series[float64]
}

func (e obv) Warmup() int {
	return 0
}

func (e obv) Name() string {
	return "OBV"
}

func (e obv) Kind() plot.IndicatorKind {
	return plot.KindBelow
}

func (e *obv) Load(df *model.Dataframe) {
	e.Values = talib.Obv(df.Close, df.Volume)
}

func (e obv) Series() plot.IndicatorSeries {
	return plot.IndicatorSeries{
		Name:   e.Name(),
		Kind:   e.Kind(),
		Values: e.Values,
	}
}
