package plot

import (
	"sync"
)

type PanelRole string

const (
	RoleTop    PanelRole = "top"
	RoleBase   PanelRole = "base"
	RoleBottom PanelRole = "bottom"
	// RoleGrid panels are categorical charts of the dashboard, outside the
	// linked stack.
	RoleGrid PanelRole = "grid"
)

// Range is a visible interval. The shared x range of a figure is only moved
// through Linkage.Relay.
type Range struct {
	mu         sync.RWMutex
	start, end float64
}

func NewRange(start, end float64) *Range {
	return &Range{start: start, end: end}
}

func (r *Range) Bounds() (start, end float64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.start, r.end
}

func (r *Range) Start() float64 {
	start, _ := r.Bounds()
	return start
}

func (r *Range) End() float64 {
	_, end := r.Bounds()
	return end
}

// set reports whether the end of the range moved.
func (r *Range) set(start, end float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := r.end != end
	r.start, r.end = start, end
	return moved
}

type Crosshair struct {
	Dimensions string `json:"dimensions"`
}

type Legend struct {
	Visible     bool   `json:"visible"`
	Location    string `json:"location"`
	BorderWidth int    `json:"border_width"`
	BorderColor string `json:"border_color"`
	Padding     int    `json:"padding"`
	Spacing     int    `json:"spacing"`
	Margin      int    `json:"margin"`
	FontSize    string `json:"font_size"`
	ClickPolicy string `json:"click_policy"`
}

type Style struct {
	SizingMode      string `json:"sizing_mode"`
	MinBorderLeft   int    `json:"min_border_left"`
	MinBorderTop    int    `json:"min_border_top"`
	MinBorderBottom int    `json:"min_border_bottom"`
	MinBorderRight  int    `json:"min_border_right"`
	OutlineColor    string `json:"outline_color"`
}

type XAxis struct {
	Labels map[int]string `json:"labels,omitempty"`
	Bounds [2]int         `json:"bounds"`
}

// Panel is one drawable region of a figure.
type Panel struct {
	Title  string
	Role   PanelRole
	Width  int
	Height int

	XRange *Range
	YRange *Range

	Tools        []string
	ActiveDrag   string
	ActiveScroll string
	Crosshair    *Crosshair

	Legend Legend
	XAxis  XAxis
	Style  Style
	Layers []Layer
}

// AddLayer appends a layer, skipping empty ones.
func (p *Panel) AddLayer(layers ...Layer) {
	for _, layer := range layers {
		if layer.Len() == 0 {
			continue
		}
		p.Layers = append(p.Layers, layer)
	}
}

// HasLegend reports whether any layer carries a legend label.
func (p *Panel) HasLegend() bool {
	for _, layer := range p.Layers {
		if layer.Label != "" {
			return true
		}
	}
	return false
}

// Layer returns the first layer with the given legend label.
func (p *Panel) Layer(label string) (Layer, bool) {
	for _, layer := range p.Layers {
		if layer.Label == label {
			return layer, true
		}
	}
	return Layer{}, false
}
