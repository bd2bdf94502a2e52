package model

import (
	"time"
)

type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	Close  float64   `json:"close"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Volume float64   `json:"volume"`
}

// Bullish reports whether the candle closed at or above its open.
func (c Candle) Bullish() bool {
	return c.Close >= c.Open
}

type Dataframe struct {
	Pair string

	Close  Series[float64]
	Open   Series[float64]
	High   Series[float64]
	Low    Series[float64]
	Volume Series[float64]

	Time       []time.Time
	LastUpdate time.Time

	// Custom user metadata
	Metadata map[string]Series[float64]
}

// NewDataframe builds the column view of a candle list.
func NewDataframe(pair string, candles []Candle) *Dataframe {
	df := &Dataframe{
		Pair:     pair,
		Close:    make(Series[float64], 0, len(candles)),
		Open:     make(Series[float64], 0, len(candles)),
		High:     make(Series[float64], 0, len(candles)),
		Low:      make(Series[float64], 0, len(candles)),
		Volume:   make(Series[float64], 0, len(candles)),
		Time:     make([]time.Time, 0, len(candles)),
		Metadata: make(map[string]Series[float64]),
	}

	for _, candle := range candles {
		df.Close = append(df.Close, candle.Close)
		df.Open = append(df.Open, candle.Open)
		df.High = append(df.High, candle.High)
		df.Low = append(df.Low, candle.Low)
		df.Volume = append(df.Volume, candle.Volume)
		df.Time = append(df.Time, candle.Time)
	}

	if len(candles) > 0 {
		df.LastUpdate = candles[len(candles)-1].Time
	}

	return df
}

// Candles rebuilds the row view of the dataframe.
func (df Dataframe) Candles() []Candle {
	candles := make([]Candle, len(df.Time))
	for i := range df.Time {
		candles[i] = Candle{
			Time:   df.Time[i],
			Open:   df.Open[i],
			Close:  df.Close[i],
			High:   df.High[i],
			Low:    df.Low[i],
			Volume: df.Volume[i],
		}
	}
	return candles
}
