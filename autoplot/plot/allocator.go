package plot

import (
	"math"

	"github.com/ezquant/autoplot/autoplot/tools/log"
)

const (
	DefaultMaxOverlay  = 3
	DefaultMaxBelow    = 2
	DefaultBelowHeight = 150
	DefaultLineHeight  = 130
)

var overlayColors = []string{"red", "blue", "orange", "green"}

// capacity is the bounded canvas policy of one placement class: a slot is
// granted while fewer than max units are used, whatever the cost of the
// indicator taking it. Once spent, further indicators of the class are dropped
// without a diagnostic.
type capacity struct {
	used int
	max  int
}

func (c capacity) admits() bool {
	return c.used < c.max
}

func (c *capacity) take(units int) {
	c.used += units
}

// exhaust closes the class for the rest of the allocation.
func (c *capacity) exhaust() {
	if c.used < c.max {
		c.used = c.max
	}
}

// Allocation is what the allocator did with each indicator.
type Allocation struct {
	Overlays []string
	Panels   []*Panel
	Dropped  []string
}

// Allocator places indicators either on the base panel or on new panels
// below it.
type Allocator struct {
	MaxOverlay  int
	MaxBelow    int
	BelowHeight int
	LineHeight  int
	Tools       []string
}

func NewAllocator(maxOverlay, maxBelow int, tools []string) Allocator {
	return Allocator{
		MaxOverlay:  maxOverlay,
		MaxBelow:    maxBelow,
		BelowHeight: DefaultBelowHeight,
		LineHeight:  DefaultLineHeight,
		Tools:       tools,
	}
}

// Allocate walks indicators in declaration order. Overlays are added to base
// in place; sub-panels are returned top to bottom in allocation order.
func (a Allocator) Allocate(frame *AxisFrame, base *Panel, indicators []IndicatorSeries) Allocation {
	var (
		result Allocation
		over   = capacity{max: a.MaxOverlay}
		below  = capacity{max: a.MaxBelow}
	)

	for _, indicator := range indicators {
		switch indicator.Kind.Placement() {
		case PlacementOverlay:
			if !over.admits() {
				result.Dropped = append(result.Dropped, indicator.Name)
				continue
			}
			base.AddLayer(a.overlayLayers(frame, indicator, over.used)...)
			over.take(indicator.Kind.Cost())
			result.Overlays = append(result.Overlays, indicator.Name)

		case PlacementBelow:
			if !below.admits() {
				result.Dropped = append(result.Dropped, indicator.Name)
				continue
			}
			var panel *Panel
			switch indicator.Kind {
			case KindMACD:
				panel = a.macdPanel(base, indicator)
				below.take(1)
			case KindHeikinAshi:
				panel = a.heikinAshiPanel(base, indicator)
				below.exhaust()
			default:
				panel = a.linePanel(base, indicator)
				below.take(1)
			}
			result.Panels = append(result.Panels, panel)

		default:
			if !below.admits() {
				result.Dropped = append(result.Dropped, indicator.Name)
				continue
			}
			log.Warnf("indicator type '%s' not recognised, plotting %s on a new panel",
				indicator.DeclaredType(), indicator.Name)
			result.Panels = append(result.Panels, a.fallbackPanel(base, indicator))
			below.take(1)
		}
	}

	return result
}

func (a Allocator) overlayLayers(frame *AxisFrame, indicator IndicatorSeries, slot int) []Layer {
	switch indicator.Kind {
	case KindSupertrend:
		return supertrendLayers(indicator)
	case KindSwings:
		return []Layer{swingsLayer(frame, indicator)}
	}
	color := overlayColors[slot%len(overlayColors)]
	return []Layer{lineLayer(indicator.Values, color, indicator.Name, 1.5)}
}

func supertrendLayers(indicator IndicatorSeries) []Layer {
	up, down := indicator.Values, []float64(nil)
	if indicator.Supertrend != nil {
		up, down = indicator.Supertrend.Uptrend, indicator.Supertrend.Downtrend
	}
	return []Layer{
		markerLayer(LinePoints(up), MarkerCircle, "blue", "Up trend support", 5),
		markerLayer(LinePoints(down), MarkerCircle, "red", "Down trend support", 5),
	}
}

// swingsLayer joins swing levels onto the frame by date.
func swingsLayer(frame *AxisFrame, indicator IndicatorSeries) Layer {
	var points []Point
	if swings := indicator.Swings; swings != nil {
		for i, t := range swings.Time {
			if i >= len(swings.Last) {
				break
			}
			for _, index := range frame.Lookup(t) {
				points = append(points, Point{X: float64(index), Y: swings.Last[i]})
			}
		}
	} else {
		points = LinePoints(indicator.Values)
	}
	return markerLayer(points, MarkerDash, "black", "Last Swing Price Level", 15)
}

func (a Allocator) macdPanel(base *Panel, indicator IndicatorSeries) *Panel {
	panel := newLinePanel(base, RoleBottom, a.BelowHeight, base.Tools)
	panel.Title = indicator.Name

	data := indicator.MACD
	if data == nil {
		data = &MACDData{MACD: indicator.Values}
	}

	panel.AddLayer(
		lineLayer(data.MACD, "blue", "", 1),
		lineLayer(data.Signal, "red", "", 1),
		histogramLayer(data.Histogram),
	)

	if len(data.CrossValues) > 0 {
		panel.AddLayer(markerLayer(LinePoints(data.CrossValues), MarkerDash, "black",
			"Last Crossover Value", 15))
	}

	return panel
}

// histogramLayer colours negative bars red, everything else (gaps included)
// light blue.
func histogramLayer(values []float64) Layer {
	colors := make([]string, len(values))
	for i, v := range values {
		if !math.IsNaN(v) && v < 0 {
			colors[i] = "red"
		} else {
			colors[i] = "lightblue"
		}
	}
	return Layer{
		Kind:   LayerHistogram,
		Width:  0.6,
		Points: LinePoints(values),
		Colors: colors,
	}
}

// heikinAshiPanel is a secondary candle panel on its own frame, sharing both
// ranges of the base panel.
func (a Allocator) heikinAshiPanel(base *Panel, indicator IndicatorSeries) *Panel {
	frame := Normalize(indicator.Candles)
	panel := newCandlePanel(frame, RoleBottom, base.Width, base.Height, base.Tools)
	panel.Title = indicator.Name
	panel.XRange = base.XRange
	panel.YRange = base.YRange
	return panel
}

func (a Allocator) linePanel(base *Panel, indicator IndicatorSeries) *Panel {
	panel := newLinePanel(base, RoleBottom, a.LineHeight, base.Tools)
	panel.AddLayer(lineLayer(indicator.Values, "black", indicator.Name, 1))
	return panel
}

func (a Allocator) fallbackPanel(base *Panel, indicator IndicatorSeries) *Panel {
	panel := newLinePanel(base, RoleBottom, a.BelowHeight, a.Tools)
	layer := lineLayer(indicator.Values, "black", indicator.Name, 1)
	layer.Tooltips = valueTooltips(indicator.Name)
	panel.AddLayer(layer)
	return panel
}
