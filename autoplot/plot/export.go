package plot

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
)

//go:embed assets
var staticFiles embed.FS

var (
	indexHTML = template.Must(template.ParseFS(staticFiles, "assets/chart.html"))

	scriptOnce    sync.Once
	scriptContent string
	scriptErr     error
)

// chartScript bundles the client side scripts, minified once per process.
func chartScript() (string, error) {
	scriptOnce.Do(func() {
		var buffer bytes.Buffer
		for _, name := range []string{"assets/autoscale.js", "assets/chart.js"} {
			source, err := staticFiles.ReadFile(name)
			if err != nil {
				scriptErr = err
				return
			}

			result := api.Transform(string(source), api.TransformOptions{
				Loader:            api.LoaderJS,
				Target:            api.ES2015,
				MinifySyntax:      true,
				MinifyIdentifiers: true,
				MinifyWhitespace:  true,
			})
			if len(result.Errors) > 0 {
				scriptErr = fmt.Errorf("%s failed with: %v", name, result.Errors)
				return
			}
			buffer.Write(result.Code)
		}
		scriptContent = buffer.String()
	})
	return scriptContent, scriptErr
}

type panelView struct {
	Title        string      `json:"title,omitempty"`
	Role         PanelRole   `json:"role"`
	Width        int         `json:"width,omitempty"`
	Height       int         `json:"height"`
	Linked       bool        `json:"linked"`
	XRange       *[2]float64 `json:"x_range,omitempty"`
	YRange       *[2]float64 `json:"y_range,omitempty"`
	Tools        []string    `json:"tools"`
	ActiveDrag   string      `json:"active_drag,omitempty"`
	ActiveScroll string      `json:"active_scroll,omitempty"`
	Crosshair    bool        `json:"crosshair"`
	Legend       Legend      `json:"legend"`
	XAxis        XAxis       `json:"x_axis"`
	Style        Style       `json:"style"`
	Layers       []Layer     `json:"layers"`
}

type autoscaleView struct {
	Panel   int     `json:"panel"`
	Padding float64 `json:"padding"`
}

type figureView struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Artifact   string         `json:"artifact"`
	SizingMode string         `json:"sizing_mode"`
	Toolbar    Toolbar        `json:"toolbar"`
	XRange     [2]float64     `json:"x_range"`
	Crosshair  *Crosshair     `json:"crosshair,omitempty"`
	Autoscale  *autoscaleView `json:"autoscale,omitempty"`
	Panels     []panelView    `json:"panels"`
	Rows       [][]int        `json:"rows"`
}

func bounds(r *Range) *[2]float64 {
	if r == nil {
		return nil
	}
	start, end := r.Bounds()
	return &[2]float64{start, end}
}

func (f *Figure) MarshalJSON() ([]byte, error) {
	view := figureView{
		ID:         f.ID,
		Title:      f.Title,
		Artifact:   f.Artifact,
		SizingMode: f.SizingMode,
		Toolbar:    f.Toolbar,
		Crosshair:  f.Crosshair,
	}
	if f.XRange != nil {
		view.XRange = *bounds(f.XRange)
	}

	positions := make(map[*Panel]int, len(f.Panels))
	for i, panel := range f.Panels {
		positions[panel] = i
		pv := panelView{
			Title:        panel.Title,
			Role:         panel.Role,
			Width:        panel.Width,
			Height:       panel.Height,
			Linked:       f.XRange != nil && panel.XRange == f.XRange,
			YRange:       bounds(panel.YRange),
			Tools:        panel.Tools,
			ActiveDrag:   panel.ActiveDrag,
			ActiveScroll: panel.ActiveScroll,
			Crosshair:    panel.Crosshair != nil,
			Legend:       panel.Legend,
			XAxis:        panel.XAxis,
			Style:        panel.Style,
			Layers:       panel.Layers,
		}
		if !pv.Linked {
			pv.XRange = bounds(panel.XRange)
		}
		view.Panels = append(view.Panels, pv)
	}

	for _, row := range f.Rows {
		indexes := make([]int, 0, len(row))
		for _, panel := range row {
			indexes = append(indexes, positions[panel])
		}
		view.Rows = append(view.Rows, indexes)
	}

	if f.linkage != nil && f.linkage.Base() != nil && f.linkage.Autoscaler() != nil {
		view.Autoscale = &autoscaleView{
			Panel:   positions[f.linkage.Base()],
			Padding: f.linkage.Autoscaler().Padding(),
		}
	}

	return json.Marshal(view)
}

type page struct {
	Title    string
	Script   template.JS
	Figure   template.JS
	Endpoint string
}

// Render writes the self contained page of the figure. With an endpoint, range
// changes are relayed to the server; without, the page autoscales on its own.
func Render(w io.Writer, fig *Figure, endpoint string) error {
	script, err := chartScript()
	if err != nil {
		return err
	}

	data, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}

	return indexHTML.Execute(w, page{
		Title:    fig.Title,
		Script:   template.JS(script),
		Figure:   template.JS(data),
		Endpoint: endpoint,
	})
}

// Save writes the figure page into dir under its artifact name and returns
// the file path.
func Save(fig *Figure, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, fig.Artifact)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	defer file.Close()

	if err := Render(file, fig, ""); err != nil {
		return "", err
	}
	return path, file.Close()
}
