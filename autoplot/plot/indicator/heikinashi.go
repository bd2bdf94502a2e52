package indicator

import (
	"math"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/plot"
)

// HeikinAshi redraws the candles as Heikin-Ashi candles in their own panel.
func HeikinAshi() plot.Indicator {
	return &heikinAshi{}
}

type heikinAshi struct {
	Candles []model.Candle
}

func (h heikinAshi) Warmup() int {
	return 0
}

func (h heikinAshi) Name() string {
	return "Heikin-Ashi"
}

func (h heikinAshi) Kind() plot.IndicatorKind {
	return plot.KindHeikinAshi
}

func (h *heikinAshi) Load(df *model.Dataframe) {
	h.Candles = make([]model.Candle, len(df.Close))
	for i := range h.Candles {
		closePrice := (df.Open[i] + df.High[i] + df.Low[i] + df.Close[i]) / 4
		openPrice := (df.Open[i] + df.Close[i]) / 2
		if i > 0 {
			openPrice = (h.Candles[i-1].Open + h.Candles[i-1].Close) / 2
		}

		h.Candles[i] = model.Candle{
			Time:   df.Time[i],
			Open:   openPrice,
			Close:  closePrice,
			High:   math.Max(df.High[i], math.Max(openPrice, closePrice)),
			Low:    math.Min(df.Low[i], math.Min(openPrice, closePrice)),
			Volume: df.Volume[i],
		}
	}
}

func (h heikinAshi) Series() plot.IndicatorSeries {
	return plot.IndicatorSeries{
		Name:    h.Name(),
		Kind:    h.Kind(),
		Candles: h.Candles,
	}
}
