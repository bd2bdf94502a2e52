package plot

import (
	"strings"
)

// Placement is where an indicator kind is drawn.
type Placement int

const (
	PlacementFallback Placement = iota
	PlacementOverlay
	PlacementBelow
)

func (p Placement) String() string {
	switch p {
	case PlacementOverlay:
		return "over"
	case PlacementBelow:
		return "below"
	}
	return "fallback"
}

// IndicatorKind is the closed set of indicator types the allocator knows how
// to place. Anything else resolves to KindUnknown.
type IndicatorKind int

const (
	KindUnknown IndicatorKind = iota
	KindOverlay
	KindMA
	KindSupertrend
	KindSwings
	KindBelow
	KindMACD
	KindRSI
	KindStochastic
	KindHeikinAshi
	KindEngulfing
	KindCrossover
)

var kindTags = map[IndicatorKind]string{
	KindOverlay:    "over",
	KindMA:         "MA",
	KindSupertrend: "Supertrend",
	KindSwings:     "Swings",
	KindBelow:      "below",
	KindMACD:       "MACD",
	KindRSI:        "RSI",
	KindStochastic: "STOCHASTIC",
	KindHeikinAshi: "Heikin-Ashi",
	KindEngulfing:  "Engulfing",
	KindCrossover:  "Crossover",
}

var tagKinds = func() map[string]IndicatorKind {
	kinds := make(map[string]IndicatorKind, len(kindTags))
	for kind, tag := range kindTags {
		kinds[strings.ToLower(tag)] = kind
	}
	return kinds
}()

// ParseIndicatorKind resolves a declared type tag. Matching ignores case.
func ParseIndicatorKind(tag string) IndicatorKind {
	if kind, ok := tagKinds[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return kind
	}
	return KindUnknown
}

func (k IndicatorKind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return "unknown"
}

func (k IndicatorKind) Placement() Placement {
	switch k {
	case KindOverlay, KindMA, KindSupertrend, KindSwings:
		return PlacementOverlay
	case KindBelow, KindMACD, KindRSI, KindStochastic, KindHeikinAshi, KindEngulfing, KindCrossover:
		return PlacementBelow
	}
	return PlacementFallback
}

// Cost is the number of overlay slots the kind takes. Composite overlays draw
// two series and count double.
func (k IndicatorKind) Cost() int {
	switch k {
	case KindSupertrend, KindSwings:
		return 2
	}
	return 1
}
