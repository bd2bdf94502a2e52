package indicator

import (
	"fmt"
	"math"
	"time"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/plot"

	"github.com/markcheno/go-talib"
)

// Swings tracks the last swing level: the recent low while price breaks out
// upwards, the recent high while it breaks down.
func Swings(period int) plot.Indicator {
	return &swings{
		Period: period,
	}
}

type swings struct {
	Period int
	Time   []time.Time
	Last   model.Series[float64]
}

func (s swings) Warmup() int {
	return s.Period
}

func (s swings) Name() string {
	return fmt.Sprintf("Swings(%d)", s.Period)
}

func (s swings) Kind() plot.IndicatorKind {
	return plot.KindSwings
}

func (s *swings) Load(df *model.Dataframe) {
	highs := talib.Max(df.High, s.Period)
	lows := talib.Min(df.Low, s.Period)

	s.Time = df.Time
	s.Last = make(model.Series[float64], len(df.Close))

	up := true
	for i := range s.Last {
		s.Last[i] = math.NaN()
		if i <= s.Period {
			continue
		}
		switch {
		case df.Close[i] > highs[i-1]:
			up = true
		case df.Close[i] < lows[i-1]:
			up = false
		}
		if up {
			s.Last[i] = lows[i]
		} else {
			s.Last[i] = highs[i]
		}
	}
}

func (s swings) Series() plot.IndicatorSeries {
	return plot.IndicatorSeries{
		Name:   s.Name(),
		Kind:   s.Kind(),
		Values: s.Last,
		Swings: &plot.SwingsData{Time: s.Time, Last: s.Last},
	}
}
