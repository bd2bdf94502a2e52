package plot

import (
	"fmt"
	"strings"

	"github.com/StudioSol/set"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/strategy"
)

const (
	DefaultTools     = "pan,wheel_zoom,box_zoom,undo,redo,reset,save,crosshair"
	DefaultWidth     = 800
	DefaultHeight    = 400
	DefaultTopHeight = 150

	indiviewArtifact = "indiview-chart.html"
)

// Chart composes figures from candles, indicators and backtest results.
type Chart struct {
	maxOverlay   int
	maxBelow     int
	width        int
	height       int
	topHeight    int
	bottomHeight int
	tools        *set.LinkedHashSetString
	policy       StylePolicy
	padding      float64
	indicators   []Indicator
	strategy     strategy.Strategy
}

type Option func(*Chart)

// WithMaxOverlay sets how many overlay slots the base panel has (default 3)
func WithMaxOverlay(n int) Option {
	return func(chart *Chart) {
		chart.maxOverlay = n
	}
}

// WithMaxBelow sets how many sub-panels may be stacked below the base panel (default 2)
func WithMaxBelow(n int) Option {
	return func(chart *Chart) {
		chart.maxBelow = n
	}
}

// WithDimensions sets the pixel size of the candle panel
func WithDimensions(width, height int) Option {
	return func(chart *Chart) {
		chart.width = width
		chart.height = height
	}
}

func WithPanelHeights(top, bottom int) Option {
	return func(chart *Chart) {
		chart.topHeight = top
		chart.bottomHeight = bottom
	}
}

// WithTools replaces the default tool set
func WithTools(tools ...string) Option {
	return func(chart *Chart) {
		chart.tools = set.NewLinkedHashSetString(tools...)
	}
}

func WithStylePolicy(policy StylePolicy) Option {
	return func(chart *Chart) {
		chart.policy = policy
	}
}

// WithAutoscalePadding sets the share of the visible span added around the autoscaled price range
func WithAutoscalePadding(padding float64) Option {
	return func(chart *Chart) {
		chart.padding = padding
	}
}

// WithStrategyIndicators plots the indicators declared by the strategy
func WithStrategyIndicators(strategy strategy.Strategy) Option {
	return func(chart *Chart) {
		chart.strategy = strategy
	}
}

// WithCustomIndicators computes and plots extra indicators over the candles
func WithCustomIndicators(indicators ...Indicator) Option {
	return func(chart *Chart) {
		chart.indicators = append(chart.indicators, indicators...)
	}
}

func NewChart(options ...Option) (*Chart, error) {
	chart := &Chart{
		maxOverlay:   DefaultMaxOverlay,
		maxBelow:     DefaultMaxBelow,
		width:        DefaultWidth,
		height:       DefaultHeight,
		topHeight:    DefaultTopHeight,
		bottomHeight: DefaultBelowHeight,
		tools:        set.NewLinkedHashSetString(strings.Split(DefaultTools, ",")...),
		policy:       DefaultStylePolicy(),
		padding:      DefaultAutoscalePadding,
	}

	for _, option := range options {
		option(chart)
	}

	if chart.maxOverlay < 0 || chart.maxBelow < 0 {
		return nil, fmt.Errorf("invalid capacity: overlay=%d below=%d", chart.maxOverlay, chart.maxBelow)
	}
	if chart.width <= 0 || chart.height <= 0 || chart.topHeight <= 0 || chart.bottomHeight <= 0 {
		return nil, fmt.Errorf("invalid panel size: %dx%d", chart.width, chart.height)
	}

	return chart, nil
}

// AddTool appends an interaction tool to the ones every panel gets.
func (c *Chart) AddTool(name string) {
	c.tools.Add(strings.TrimSpace(name))
}

// Tools returns the tool names in insertion order.
func (c *Chart) Tools() []string {
	return c.tools.AsSlice()
}

// Backtest is the result of a backtest run, as the bookkeeping side hands it over.
type Backtest struct {
	Instrument      string
	Interval        string
	NAV             []float64
	CumulativePL    []float64
	Trades          []model.TradeRecord
	OpenTrades      []model.TradeRecord
	CancelledTrades []model.TradeRecord
	Indicators      []IndicatorSeries
}

// Inputs is everything plotted over the candles. With a Backtest, its
// indicators take the place of Indicators when it declares any.
type Inputs struct {
	Instrument string
	Indicators []IndicatorSeries
	Backtest   *Backtest
}

func (in Inputs) title() (title, artifact string) {
	if in.Backtest == nil {
		if in.Instrument != "" {
			return "IndiView - " + in.Instrument, indiviewArtifact
		}
		return "IndiView", indiviewArtifact
	}

	instrument := in.Instrument
	if instrument == "" {
		instrument = in.Backtest.Instrument
	}
	title = fmt.Sprintf("Backtest chart for %s (%s candles)", instrument, in.Backtest.Interval)
	return title, ArtifactName(instrument)
}

// ArtifactName is the file a backtest chart of instrument is saved as.
func ArtifactName(instrument string) string {
	if instrument == "" {
		return indiviewArtifact
	}
	return fmt.Sprintf("%s-backtest-chart.html", instrument)
}

// Plot composes the figure: candles, then the backtest equity panel and trade
// overlays, then the indicators, then links every panel together. It never
// fails; whatever cannot be placed is left out.
func (c *Chart) Plot(candles []model.Candle, in Inputs) *Figure {
	frame := Normalize(candles)
	title, artifact := in.title()
	tools := c.Tools()

	base := newCandlePanel(frame, RoleBase, c.width, c.height, tools)

	var top []*Panel
	indicators := append([]IndicatorSeries(nil), in.Indicators...)
	if bt := in.Backtest; bt != nil {
		if panel := c.equityPanel(base, bt); panel != nil {
			top = append(top, panel)
		}

		base.AddLayer(AlignTrades(frame, bt.Trades, model.TradeStatusClosed)...)
		if len(bt.CancelledTrades) > 0 {
			base.AddLayer(AlignTrades(frame, bt.CancelledTrades, model.TradeStatusCancelled)...)
		}
		if len(bt.OpenTrades) > 0 {
			base.AddLayer(AlignTrades(frame, bt.OpenTrades, model.TradeStatusOpen)...)
		}

		if len(bt.Indicators) > 0 {
			indicators = append([]IndicatorSeries(nil), bt.Indicators...)
		}
	}

	indicators = append(indicators, c.loadIndicators(frame, in.Instrument, candles)...)

	allocator := NewAllocator(c.maxOverlay, c.maxBelow, tools)
	allocator.BelowHeight = c.bottomHeight
	allocation := allocator.Allocate(frame, base, indicators)

	panels := append(append(top, base), allocation.Panels...)
	linker := NewLinker(c.policy)
	linker.Padding = c.padding

	return newFigure(title, artifact, linker.Link(frame, panels, title))
}

// equityPanel draws net asset value and cumulative P/L above the candles.
func (c *Chart) equityPanel(base *Panel, bt *Backtest) *Panel {
	if len(bt.NAV) == 0 && len(bt.CumulativePL) == 0 {
		return nil
	}

	panel := newLinePanel(base, RoleTop, c.topHeight, c.Tools())
	if len(bt.NAV) > 0 {
		layer := lineLayer(bt.NAV, "black", "Net Asset Value", 1)
		layer.Tooltips = valueTooltips("NAV")
		panel.AddLayer(layer)
	}
	if len(bt.CumulativePL) > 0 {
		layer := lineLayer(bt.CumulativePL, "black", "Cumulative P/L", 1)
		layer.Tooltips = valueTooltips("P/L")
		panel.AddLayer(layer)
	}
	return panel
}

// loadIndicators computes the strategy and custom indicators over candles.
func (c *Chart) loadIndicators(frame *AxisFrame, pair string, candles []model.Candle) []IndicatorSeries {
	if c.strategy == nil && len(c.indicators) == 0 {
		return nil
	}

	df := model.NewDataframe(pair, candles)

	var series []IndicatorSeries
	if c.strategy != nil {
		series = append(series, strategySeries(frame, c.strategy, df)...)
	}
	for _, indicator := range c.indicators {
		indicator.Load(df)
		series = append(series, indicator.Series())
	}
	return series
}
