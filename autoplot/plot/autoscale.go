package plot

import (
	"math"
)

// DefaultAutoscalePadding is the share of the visible price span added above
// and below the fitted range.
const DefaultAutoscalePadding = 0.05

// Autoscaler fits the vertical range of a price panel to the bars visible in a
// horizontal window. It only reads the arrays it was built with, so Bounds is
// a pure function of the window.
type Autoscaler struct {
	highs   []float64
	lows    []float64
	padding float64
}

// NewAutoscaler copies the high and low columns of the frame.
func NewAutoscaler(frame *AxisFrame, padding float64) *Autoscaler {
	return &Autoscaler{
		highs:   frame.Highs(),
		lows:    frame.Lows(),
		padding: padding,
	}
}

// Bounds returns the padded min and max of the bars whose index lies inside
// [start, end]. ok is false when the window holds no bar.
func (a *Autoscaler) Bounds(start, end float64) (low, high float64, ok bool) {
	if !finite(start) || !finite(end) {
		return 0, 0, false
	}
	if start > end {
		start, end = end, start
	}

	// clamp before converting, out of range floats have no defined int value
	start = math.Max(0, math.Ceil(start))
	end = math.Min(float64(len(a.highs)-1), math.Floor(end))
	if start > end {
		return 0, 0, false
	}
	first, last := int(start), int(end)

	low, high = math.Inf(1), math.Inf(-1)
	for i := first; i <= last; i++ {
		if !math.IsNaN(a.lows[i]) {
			low = math.Min(low, a.lows[i])
		}
		if !math.IsNaN(a.highs[i]) {
			high = math.Max(high, a.highs[i])
		}
	}

	if math.IsInf(low, 1) || math.IsInf(high, -1) {
		return 0, 0, false
	}

	pad := (high - low) * a.padding
	return low - pad, high + pad, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Padding is the share of the span added on each side.
func (a *Autoscaler) Padding() float64 {
	return a.padding
}
