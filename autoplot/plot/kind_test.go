package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIndicatorKind(t *testing.T) {
	tt := []struct {
		tag       string
		kind      IndicatorKind
		placement Placement
		cost      int
	}{
		{"over", KindOverlay, PlacementOverlay, 1},
		{"MA", KindMA, PlacementOverlay, 1},
		{"ma", KindMA, PlacementOverlay, 1},
		{"Supertrend", KindSupertrend, PlacementOverlay, 2},
		{"Swings", KindSwings, PlacementOverlay, 2},
		{"below", KindBelow, PlacementBelow, 1},
		{"MACD", KindMACD, PlacementBelow, 1},
		{"RSI", KindRSI, PlacementBelow, 1},
		{"STOCHASTIC", KindStochastic, PlacementBelow, 1},
		{"Heikin-Ashi", KindHeikinAshi, PlacementBelow, 1},
		{"Engulfing", KindEngulfing, PlacementBelow, 1},
		{"Crossover", KindCrossover, PlacementBelow, 1},
		{"Ichimoku", KindUnknown, PlacementFallback, 1},
		{"", KindUnknown, PlacementFallback, 1},
	}

	for _, tc := range tt {
		t.Run(tc.tag, func(t *testing.T) {
			kind := ParseIndicatorKind(tc.tag)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.placement, kind.Placement())
			assert.Equal(t, tc.cost, kind.Cost())
		})
	}
}

func TestIndicatorSeries_DeclaredType(t *testing.T) {
	assert.Equal(t, "Ichimoku", NewIndicatorSeries("ichi", "Ichimoku", nil).DeclaredType())
	assert.Equal(t, "MACD", IndicatorSeries{Kind: KindMACD}.DeclaredType())
}
