package plot

import (
	"time"

	"github.com/ezquant/autoplot/autoplot/model"
)

// DateLabelLayout is the short date format used for categorical x labels.
const DateLabelLayout = "Jan 02"

// Bar is one row of a normalized frame. Index is the axis coordinate every
// panel draws against, so gaps in Time (weekends, halts) never show up as gaps
// on the chart.
type Bar struct {
	Index  int       `json:"index"`
	Time   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Bullish reports whether the bar closed at or above its open.
func (b Bar) Bullish() bool {
	return b.Close >= b.Open
}

// AxisFrame owns the index to timestamp mapping of one dataset.
type AxisFrame struct {
	bars    []Bar
	byStamp map[int64][]int
}

// Normalize copies the candles into a new frame with a dense 0 based index in
// input order. Duplicate timestamps are kept positionally.
func Normalize(candles []model.Candle) *AxisFrame {
	frame := &AxisFrame{
		bars:    make([]Bar, len(candles)),
		byStamp: make(map[int64][]int, len(candles)),
	}

	for i, candle := range candles {
		frame.bars[i] = Bar{
			Index:  i,
			Time:   candle.Time,
			Open:   candle.Open,
			High:   candle.High,
			Low:    candle.Low,
			Close:  candle.Close,
			Volume: candle.Volume,
		}
		key := candle.Time.UnixNano()
		frame.byStamp[key] = append(frame.byStamp[key], i)
	}

	return frame
}

// NormalizeDataframe is Normalize for the column view.
func NormalizeDataframe(df *model.Dataframe) *AxisFrame {
	return Normalize(df.Candles())
}

func (f *AxisFrame) Len() int {
	return len(f.bars)
}

// Empty reports whether the frame has no bars.
func (f *AxisFrame) Empty() bool {
	return len(f.bars) == 0
}

// Bar returns the bar at axis index i.
func (f *AxisFrame) Bar(i int) Bar {
	return f.bars[i]
}

// Bars returns a copy of the frame rows.
func (f *AxisFrame) Bars() []Bar {
	bars := make([]Bar, len(f.bars))
	copy(bars, f.bars)
	return bars
}

// Time returns the original timestamp of axis index i.
func (f *AxisFrame) Time(i int) time.Time {
	return f.bars[i].Time
}

func (f *AxisFrame) Times() []time.Time {
	times := make([]time.Time, len(f.bars))
	for i, bar := range f.bars {
		times[i] = bar.Time
	}
	return times
}

// LastIndex is the highest axis index, -1 for an empty frame.
func (f *AxisFrame) LastIndex() int {
	return len(f.bars) - 1
}

// Lookup is the equi-join on timestamp: it returns every axis index whose time
// is exactly t, in axis order. There is no nearest match.
func (f *AxisFrame) Lookup(t time.Time) []int {
	return f.byStamp[t.UnixNano()]
}

// Indexes returns the axis coordinates as floats, ready for drawing.
func (f *AxisFrame) Indexes() []float64 {
	xs := make([]float64, len(f.bars))
	for i := range f.bars {
		xs[i] = float64(i)
	}
	return xs
}

func (f *AxisFrame) column(get func(Bar) float64) []float64 {
	values := make([]float64, len(f.bars))
	for i, bar := range f.bars {
		values[i] = get(bar)
	}
	return values
}

func (f *AxisFrame) Opens() []float64  { return f.column(func(b Bar) float64 { return b.Open }) }
func (f *AxisFrame) Highs() []float64  { return f.column(func(b Bar) float64 { return b.High }) }
func (f *AxisFrame) Lows() []float64   { return f.column(func(b Bar) float64 { return b.Low }) }
func (f *AxisFrame) Closes() []float64 { return f.column(func(b Bar) float64 { return b.Close }) }

// Labels formats every timestamp with layout, keyed by axis index.
func (f *AxisFrame) Labels(layout string) map[int]string {
	labels := make(map[int]string, len(f.bars))
	for i, bar := range f.bars {
		labels[i] = bar.Time.Format(layout)
	}
	return labels
}
