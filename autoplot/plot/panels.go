package plot

import (
	"math"
)

const (
	BullColor = "#D5E1DD"
	BearColor = "#F2583E"
)

var candleTooltips = []Tooltip{
	{Label: "Date", Format: "%b %d %H:%M:%S"},
	{Label: "Open", Format: "0.0000"},
	{Label: "High", Format: "0.0000"},
	{Label: "Low", Format: "0.0000"},
	{Label: "Close", Format: "0.0000"},
}

// newCandlePanel draws the frame as candlesticks. The vertical range starts
// fitted to the whole frame.
func newCandlePanel(frame *AxisFrame, role PanelRole, width, height int, tools []string) *Panel {
	panel := &Panel{
		Role:         role,
		Width:        width,
		Height:       height,
		Tools:        tools,
		ActiveDrag:   "pan",
		ActiveScroll: "wheel_zoom",
		YRange:       NewRange(0, 0),
	}

	if low, high, ok := NewAutoscaler(frame, DefaultAutoscalePadding).Bounds(0, float64(frame.LastIndex())); ok {
		panel.YRange.set(low, high)
	}

	panel.AddLayer(Layer{
		Kind:      LayerCandles,
		Color:     "black",
		Width:     0.7,
		Bars:      frame.Bars(),
		BullColor: BullColor,
		BearColor: BearColor,
		Tooltips:  candleTooltips,
	})

	return panel
}

// newLinePanel is an empty panel sharing the look of linked.
func newLinePanel(linked *Panel, role PanelRole, height int, tools []string) *Panel {
	return &Panel{
		Role:         role,
		Width:        linked.Width,
		Height:       height,
		XRange:       linked.XRange,
		Tools:        tools,
		ActiveDrag:   "pan",
		ActiveScroll: "wheel_zoom",
	}
}

func lineLayer(values []float64, color, label string, width float64) Layer {
	return Layer{
		Kind:   LayerLine,
		Label:  label,
		Color:  color,
		Width:  width,
		Points: LinePoints(values),
	}
}

// valueTooltips is the hover of a generic line: the date and the value.
func valueTooltips(name string) []Tooltip {
	if name == "" {
		name = "Data"
	}
	return []Tooltip{
		{Label: "Date", Format: "%b %d %H:%M"},
		{Label: name, Format: "%0.2f"},
	}
}

// markerLayer skips points with no value.
func markerLayer(points []Point, marker Marker, fill, label string, size float64) Layer {
	kept := make([]Point, 0, len(points))
	for _, point := range points {
		if math.IsNaN(point.Y) {
			continue
		}
		kept = append(kept, point)
	}
	return Layer{
		Kind:      LayerMarkers,
		Label:     label,
		Color:     "black",
		FillColor: fill,
		Marker:    marker,
		Size:      size,
		Points:    kept,
	}
}
