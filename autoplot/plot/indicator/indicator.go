package indicator

import (
	"math"
)

// Source picks the price column an indicator is computed on.
type Source int

const (
	Close Source = iota
	Open
	High
	Low
)

// trimWarmup hides the first n values, they are not meaningful yet.
func trimWarmup(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	for i := 0; i < n && i < len(out); i++ {
		out[i] = math.NaN()
	}
	return out
}
