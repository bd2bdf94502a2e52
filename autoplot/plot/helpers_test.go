package plot

import (
	"math"
	"time"

	"github.com/ezquant/autoplot/autoplot/model"
)

var epoch = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// sampleCandles is a gently oscillating hourly series.
func sampleCandles(n int) []model.Candle {
	candles := make([]model.Candle, n)
	for i := range candles {
		base := 100 + 10*math.Sin(float64(i)/5)
		candles[i] = model.Candle{
			Time:   epoch.Add(time.Duration(i) * time.Hour),
			Open:   base,
			Close:  base + 0.5*math.Cos(float64(i)),
			High:   base + 2,
			Low:    base - 2,
			Volume: float64(1000 + i),
		}
	}
	return candles
}

func hour(i int) time.Time {
	return epoch.Add(time.Duration(i) * time.Hour)
}

func constant(n int, v float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return values
}

func layerLabels(panel *Panel) []string {
	labels := make([]string, 0, len(panel.Layers))
	for _, layer := range panel.Layers {
		labels = append(labels, layer.Label)
	}
	return labels
}
