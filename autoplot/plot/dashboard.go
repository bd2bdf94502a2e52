package plot

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ezquant/autoplot/autoplot/model"
)

const (
	dashboardArtifact = "multibot-backtest-chart.html"
	dashboardTitle    = "Multi-Bot Backtest Results"
	gridPanelHeight   = 250
)

// BotResult is the backtest summary of one instrument.
type BotResult struct {
	Instrument string
	WinRate    float64
	Trades     int
	AvgWin     float64
	MaxWin     float64
	// Losses are magnitudes, zero or positive.
	AvgLoss float64
	MaxLoss float64
}

// InstrumentPL is the cumulative profit of one instrument, keyed by its own
// timestamps.
type InstrumentPL struct {
	Instrument string
	Time       []time.Time
	Profit     []float64
}

// Dashboard composes the fixed multi-instrument figure: account value on top,
// win rate, trade distribution and win/loss breakdown in one row, and the
// cumulative P/L of every instrument at the bottom. The two time panels are
// linked on the axis of candles.
func (c *Chart) Dashboard(candles []model.Candle, results []BotResult, nav []float64, cumulative []InstrumentPL) *Figure {
	frame := Normalize(candles)
	colors := Palette(len(results))
	instruments := lo.Map(results, func(r BotResult, _ int) string { return r.Instrument })

	navPanel := &Panel{
		Role:         RoleTop,
		Width:        c.width,
		Height:       c.topHeight,
		Tools:        c.Tools(),
		ActiveDrag:   "pan",
		ActiveScroll: "wheel_zoom",
	}
	navPanel.AddLayer(lineLayer(nav, "black", "Backtest Net Asset Value", 1))

	cplPanel := newLinePanel(navPanel, RoleBottom, c.topHeight, c.Tools())
	cplColors := Palette(len(cumulative))
	for i, pl := range cumulative {
		layer := lineLayer(nil, cplColors[i], pl.Instrument, 1)
		layer.Points = joinByDate(frame, pl.Time, pl.Profit)
		cplPanel.AddLayer(layer)
	}

	linker := NewLinker(c.policy)
	linkage := linker.Link(frame, []*Panel{navPanel, cplPanel}, dashboardTitle)

	winRate := c.policy.Apply(winRatePanel(results, instruments, colors))
	distribution := c.policy.Apply(distributionPanel(results, colors))
	breakdown := c.policy.Apply(breakdownPanel(results, instruments))
	breakdown.Legend.Location = "bottom_center"
	breakdown.Style.OutlineColor = ""

	fig := &Figure{
		ID:         uuid.NewString(),
		Title:      dashboardTitle,
		Artifact:   dashboardArtifact,
		SizingMode: "scale_width",
		Toolbar:    Toolbar{Location: "right"},
		XRange:     linkage.XRange,
		Crosshair:  linkage.Crosshair,
		linkage:    linkage,
	}

	top, bottom := linkage.Panels[0], linkage.Panels[1]
	fig.Panels = []*Panel{top, &winRate, &distribution, &breakdown, bottom}
	fig.Rows = [][]*Panel{{top}, {&winRate, &distribution, &breakdown}, {bottom}}

	return fig
}

// joinByDate places values on the frame axis by exact timestamp. Only matched
// rows become points, so consecutive values draw as one connected line.
func joinByDate(frame *AxisFrame, times []time.Time, values []float64) []Point {
	var points []Point
	for i, t := range times {
		if i >= len(values) {
			break
		}
		for _, index := range frame.Lookup(t) {
			points = append(points, Point{X: float64(index), Y: values[i]})
		}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].X < points[j].X })
	return points
}

func winRatePanel(results []BotResult, instruments, colors []string) Panel {
	panel := Panel{Title: "Bot win rate (%)", Role: RoleGrid, Height: gridPanelHeight, Tools: []string{"hover"}}
	panel.AddLayer(Layer{
		Kind:       LayerBars,
		Width:      0.9,
		Categories: instruments,
		Points:     LinePoints(lo.Map(results, func(r BotResult, _ int) float64 { return r.WinRate })),
		Colors:     colors,
		Tooltips:   []Tooltip{{Label: "@index", Format: "@win_rate%"}},
	})
	return panel
}

// distributionPanel splits a circle between instruments by their share of
// all trades.
func distributionPanel(results []BotResult, colors []string) Panel {
	panel := Panel{
		Title:  "Trade distribution",
		Role:   RoleGrid,
		Height: gridPanelHeight,
		Tools:  []string{"hover"},
		XRange: NewRange(-1, 1),
		YRange: NewRange(0, 2),
	}

	total := lo.Reduce(results, func(sum int, r BotResult, _ int) int { return sum + r.Trades }, 0)
	if total == 0 {
		return panel
	}

	wedges := make([]Wedge, 0, len(results))
	angle := 0.0
	for i, result := range results {
		sweep := float64(result.Trades) / float64(total) * 2 * math.Pi
		wedges = append(wedges, Wedge{
			Label:      result.Instrument,
			Value:      float64(result.Trades),
			StartAngle: angle,
			EndAngle:   angle + sweep,
			Color:      colors[i],
		})
		angle += sweep
	}

	panel.AddLayer(Layer{
		Kind:     LayerWedges,
		Label:    "instrument",
		Color:    "white",
		Wedges:   wedges,
		Tooltips: []Tooltip{{Label: "@instrument", Format: "@value"}},
	})
	return panel
}

// breakdownPanel stacks average and maximum wins above zero and losses below.
func breakdownPanel(results []BotResult, instruments []string) Panel {
	maxWin := lo.Max(lo.Map(results, func(r BotResult, _ int) float64 { return r.MaxWin }))
	maxLoss := lo.Max(lo.Map(results, func(r BotResult, _ int) float64 { return r.MaxLoss }))

	panel := Panel{
		Title:  "Win/Loss breakdown",
		Role:   RoleGrid,
		Height: gridPanelHeight,
		Tools:  []string{"hover"},
		YRange: NewRange(-1.2*maxLoss, 1.2*maxWin),
	}

	stack := func(label, color string, bottom, top func(BotResult) float64) Layer {
		return Layer{
			Kind:       LayerBars,
			Label:      label,
			Color:      "black",
			FillColor:  color,
			Width:      0.9,
			Categories: instruments,
			Bottom:     lo.Map(results, func(r BotResult, _ int) float64 { return bottom(r) }),
			Points:     LinePoints(lo.Map(results, func(r BotResult, _ int) float64 { return top(r) })),
			Tooltips: []Tooltip{
				{Label: "Instrument:", Format: "@instruments"},
				{Label: label, Format: fmt.Sprintf("@{%s}", label)},
			},
		}
	}

	zero := func(BotResult) float64 { return 0 }
	panel.AddLayer(
		stack("Average Win", "#008000", zero, func(r BotResult) float64 { return r.AvgWin }),
		stack("Max. Win", "#FFFFFF", func(r BotResult) float64 { return r.AvgWin }, func(r BotResult) float64 { return r.MaxWin }),
		stack("Average Loss", "#ff0000", zero, func(r BotResult) float64 { return -r.AvgLoss }),
		stack("Max. Loss", "#FFFFFF", func(r BotResult) float64 { return -r.AvgLoss }, func(r BotResult) float64 { return -r.MaxLoss }),
	)
	return panel
}
