package plot

import (
	"sync"
)

// StylePolicy is the uniform look applied to every linked panel. It is a
// value: applying it returns a styled copy and never touches the input.
type StylePolicy struct {
	Legend      Legend
	Style       Style
	LabelLayout string
}

func DefaultStylePolicy() StylePolicy {
	return StylePolicy{
		Legend: Legend{
			Visible:     true,
			Location:    "top_left",
			BorderWidth: 1,
			BorderColor: "#333333",
			Padding:     5,
			Spacing:     0,
			Margin:      0,
			FontSize:    "8pt",
			ClickPolicy: "hide",
		},
		Style: Style{
			SizingMode:      "stretch_width",
			MinBorderLeft:   0,
			MinBorderTop:    3,
			MinBorderBottom: 6,
			MinBorderRight:  10,
			OutlineColor:    "black",
		},
		LabelLayout: DateLabelLayout,
	}
}

// Apply returns panel styled by the policy. Legend settings are only set on
// panels that have labelled layers.
func (p StylePolicy) Apply(panel Panel) Panel {
	panel.Style = p.Style
	if panel.HasLegend() {
		panel.Legend = p.Legend
	}
	return panel
}

// Linker ties the panels of one figure together.
type Linker struct {
	Policy  StylePolicy
	Padding float64
}

func NewLinker(policy StylePolicy) Linker {
	return Linker{Policy: policy, Padding: DefaultAutoscalePadding}
}

// Linkage is the result of linking: the shared range and crosshair, the
// styled panels, and the handlers run when the range moves.
type Linkage struct {
	XRange    *Range
	Crosshair *Crosshair
	Panels    []*Panel

	base       *Panel
	autoscaler *Autoscaler
	handlers   []func(start, end float64)

	// relay serializes moving the range with running its handlers
	relay sync.Mutex
}

// Link shares one x range and one crosshair across panels, labels every x axis
// with the frame dates, titles the first panel and installs autoscale on the
// base panel when there is one. Nil panels are skipped.
func (l Linker) Link(frame *AxisFrame, panels []*Panel, title string) *Linkage {
	last := frame.LastIndex()
	if last < 0 {
		last = 0
	}

	linkage := &Linkage{
		XRange:    NewRange(0, float64(last)),
		Crosshair: &Crosshair{Dimensions: "both"},
	}

	labels := frame.Labels(l.Policy.LabelLayout)
	titled := false
	for _, panel := range panels {
		if panel == nil {
			continue
		}

		styled := l.Policy.Apply(*panel)
		styled.XRange = linkage.XRange
		styled.Crosshair = linkage.Crosshair
		styled.XAxis = XAxis{Labels: labels, Bounds: [2]int{0, last}}
		if !titled {
			styled.Title = title
			titled = true
		}

		linkage.Panels = append(linkage.Panels, &styled)
		if styled.Role == RoleBase && linkage.base == nil {
			linkage.base = linkage.Panels[len(linkage.Panels)-1]
		}
	}

	if linkage.base != nil && !frame.Empty() {
		linkage.installAutoscale(NewAutoscaler(frame, l.Padding))
	}

	return linkage
}

func (l *Linkage) installAutoscale(autoscaler *Autoscaler) {
	l.autoscaler = autoscaler
	if l.base.YRange == nil {
		l.base.YRange = NewRange(0, 0)
	}

	yRange := l.base.YRange
	l.OnRangeEnd(func(start, end float64) {
		if low, high, ok := autoscaler.Bounds(start, end); ok {
			yRange.set(low, high)
		}
	})

	start, end := l.XRange.Bounds()
	if low, high, ok := autoscaler.Bounds(start, end); ok {
		yRange.set(low, high)
	}
}

// OnRangeEnd registers fn to run every time the visible end of the shared
// range changes.
func (l *Linkage) OnRangeEnd(fn func(start, end float64)) {
	l.handlers = append(l.handlers, fn)
}

// Relay is the range change protocol: it moves the shared range and runs the
// installed handlers when the visible end changed.
func (l *Linkage) Relay(start, end float64) {
	l.relay.Lock()
	defer l.relay.Unlock()

	if !l.XRange.set(start, end) {
		return
	}
	for _, handler := range l.handlers {
		handler(start, end)
	}
}

// Base returns the linked candle panel, nil when the stack has none.
func (l *Linkage) Base() *Panel {
	return l.base
}

// Autoscaler returns the installed autoscaler, nil without a base panel.
func (l *Linkage) Autoscaler() *Autoscaler {
	return l.autoscaler
}
