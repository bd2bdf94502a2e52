package plot

import (
	"github.com/google/uuid"
)

type Toolbar struct {
	Location string `json:"location"`
	Merge    bool   `json:"merge"`
	Logo     bool   `json:"logo"`
}

// Figure is the composed chart handed to the export side. Panels is the
// vertical stack; Rows is the grid layout, one row per panel for stacked
// charts.
type Figure struct {
	ID         string
	Title      string
	Artifact   string
	SizingMode string
	Toolbar    Toolbar

	Panels    []*Panel
	Rows      [][]*Panel
	XRange    *Range
	Crosshair *Crosshair

	linkage *Linkage
}

func newFigure(title, artifact string, linkage *Linkage) *Figure {
	fig := &Figure{
		ID:         uuid.NewString(),
		Title:      title,
		Artifact:   artifact,
		SizingMode: "stretch_width",
		Toolbar:    Toolbar{Location: "right", Merge: true},
		Panels:     linkage.Panels,
		XRange:     linkage.XRange,
		Crosshair:  linkage.Crosshair,
		linkage:    linkage,
	}
	for _, panel := range fig.Panels {
		fig.Rows = append(fig.Rows, []*Panel{panel})
	}
	return fig
}

// Base returns the candle panel.
func (f *Figure) Base() *Panel {
	return f.linkage.Base()
}

func (f *Figure) panels(role PanelRole) []*Panel {
	var panels []*Panel
	for _, panel := range f.Panels {
		if panel.Role == role {
			panels = append(panels, panel)
		}
	}
	return panels
}

// Top returns the panels stacked above the base panel.
func (f *Figure) Top() []*Panel {
	return f.panels(RoleTop)
}

// Bottom returns the sub-panels stacked below the base panel.
func (f *Figure) Bottom() []*Panel {
	return f.panels(RoleBottom)
}

// Relay forwards a user range change to the linked panels and returns the
// base panel vertical range after autoscale.
func (f *Figure) Relay(start, end float64) (low, high float64, ok bool) {
	f.linkage.Relay(start, end)
	base := f.linkage.Base()
	if base == nil || base.YRange == nil {
		return 0, 0, false
	}
	low, high = base.YRange.Bounds()
	return low, high, true
}
