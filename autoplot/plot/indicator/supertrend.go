package indicator

import (
	"fmt"
	"math"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/plot"

	"github.com/markcheno/go-talib"
)

// Supertrend draws the ATR band that supports the current trend: below the
// candles in an uptrend, above them in a downtrend.
func Supertrend(period int, multiplier float64) plot.Indicator {
	return &supertrend{
		Period:     period,
		Multiplier: multiplier,
	}
}

type supertrend struct {
	Period     int
	Multiplier float64

	data plot.SupertrendData
}

func (s supertrend) Warmup() int {
	return s.Period
}

func (s supertrend) Name() string {
	return fmt.Sprintf("Supertrend(%d, %.1f)", s.Period, s.Multiplier)
}

func (s supertrend) Kind() plot.IndicatorKind {
	return plot.KindSupertrend
}

func (s *supertrend) Load(df *model.Dataframe) {
	size := len(df.Close)
	atr := talib.Atr(df.High, df.Low, df.Close, s.Period)

	s.data = plot.SupertrendData{
		Uptrend:   make([]float64, size),
		Downtrend: make([]float64, size),
	}

	var upper, lower float64
	up := true
	for i := 0; i < size; i++ {
		s.data.Uptrend[i], s.data.Downtrend[i] = math.NaN(), math.NaN()
		if i < s.Period {
			continue
		}

		mid := (df.High[i] + df.Low[i]) / 2
		basicUpper := mid + s.Multiplier*atr[i]
		basicLower := mid - s.Multiplier*atr[i]

		if i == s.Period {
			upper, lower = basicUpper, basicLower
		} else {
			if basicUpper < upper || df.Close[i-1] > upper {
				upper = basicUpper
			}
			if basicLower > lower || df.Close[i-1] < lower {
				lower = basicLower
			}
		}

		switch {
		case up && df.Close[i] < lower:
			up = false
		case !up && df.Close[i] > upper:
			up = true
		}

		if up {
			s.data.Uptrend[i] = lower
		} else {
			s.data.Downtrend[i] = upper
		}
	}
}

func (s supertrend) Series() plot.IndicatorSeries {
	data := s.data
	return plot.IndicatorSeries{
		Name:       s.Name(),
		Kind:       s.Kind(),
		Values:     data.Uptrend,
		Supertrend: &data,
	}
}
