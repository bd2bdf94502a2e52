package plot

import (
	"encoding/json"
	"math"
)

type LayerKind string

const (
	LayerCandles   LayerKind = "candles"
	LayerLine      LayerKind = "line"
	LayerMarkers   LayerKind = "markers"
	LayerHistogram LayerKind = "histogram"
	LayerBars      LayerKind = "bars"
	LayerWedges    LayerKind = "wedges"
)

type Marker string

const (
	MarkerTriangle         Marker = "triangle"
	MarkerInvertedTriangle Marker = "inverted_triangle"
	MarkerDash             Marker = "dash"
	MarkerCircle           Marker = "circle"
)

// Point is addressed in axis coordinates. A NaN Y is a gap.
type Point struct {
	X float64
	Y float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	var y *float64
	if !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) {
		y = &p.Y
	}
	return json.Marshal(struct {
		X float64  `json:"x"`
		Y *float64 `json:"y"`
	}{p.X, y})
}

// Tooltip is one hover line: a label and the format of the value shown.
type Tooltip struct {
	Label  string `json:"label"`
	Format string `json:"format"`
}

// Wedge is a slice of a proportion chart, angles in radians.
type Wedge struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	StartAngle float64 `json:"start"`
	EndAngle   float64 `json:"end"`
	Color      string  `json:"color"`
}

// Layer is one drawn element set of a panel.
type Layer struct {
	Kind      LayerKind `json:"kind"`
	Label     string    `json:"label,omitempty"`
	Color     string    `json:"color,omitempty"`
	FillColor string    `json:"fill,omitempty"`
	Marker    Marker    `json:"marker,omitempty"`
	Size      float64   `json:"size,omitempty"`
	Width     float64   `json:"width,omitempty"`
	Points    []Point   `json:"points,omitempty"`
	// Colors overrides FillColor point by point (histograms, bars).
	Colors []string `json:"colors,omitempty"`

	Bars      []Bar  `json:"bars,omitempty"`
	BullColor string `json:"bull,omitempty"`
	BearColor string `json:"bear,omitempty"`

	Categories []string  `json:"categories,omitempty"`
	Bottom     []float64 `json:"bottom,omitempty"`
	Wedges     []Wedge   `json:"wedges,omitempty"`

	Tooltips []Tooltip `json:"tooltips,omitempty"`
}

// Len is the number of drawable items in the layer.
func (l Layer) Len() int {
	switch l.Kind {
	case LayerCandles:
		return len(l.Bars)
	case LayerWedges:
		return len(l.Wedges)
	}
	return len(l.Points)
}

// LinePoints pairs values with their axis index.
func LinePoints(values []float64) []Point {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{X: float64(i), Y: v}
	}
	return points
}
