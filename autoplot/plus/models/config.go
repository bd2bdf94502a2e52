package models

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"

	"github.com/ezquant/autoplot/autoplot/plot"
)

type Parameter struct {
	Name    string      `yaml:"name"`
	Type    string      `yaml:"type,omitempty"`
	Default interface{} `yaml:"default"`
}

type ChartConfig struct {
	MaxOverlay *int     `yaml:"max_overlay,omitempty"`
	MaxBelow   *int     `yaml:"max_below,omitempty"`
	Width      int      `yaml:"width,omitempty"`
	Height     int      `yaml:"height,omitempty"`
	TopHeight  int      `yaml:"top_height,omitempty"`
	Padding    float64  `yaml:"autoscale_padding,omitempty"`
	Tools      []string `yaml:"tools,flow,omitempty"`
}

// Instrument is one candle feed with its backtest trades.
type Instrument struct {
	Name    string `yaml:"name"`
	Candles string `yaml:"candles"`
	Trades  string `yaml:"trades,omitempty"`
}

type InputsConfig struct {
	Instrument  string       `yaml:"instrument"`
	Interval    string       `yaml:"interval"`
	Candles     string       `yaml:"candles"`
	Trades      string       `yaml:"trades,omitempty"`
	Database    string       `yaml:"database,omitempty"`
	Strategy    string       `yaml:"strategy,omitempty"`
	Parameters  []Parameter  `yaml:"parameters,omitempty"`
	Instruments []Instrument `yaml:"instruments,omitempty"`
	Balance     float64      `yaml:"initial_balance,omitempty"`
}

// Config drives the command line: how charts look, what is plotted and where
// the result goes.
type Config struct {
	Chart   ChartConfig  `yaml:"chart"`
	Inputs  InputsConfig `yaml:"inputs"`
	Output  string       `yaml:"output"`
	Archive string       `yaml:"archive,omitempty"`
}

// ReadConfig loads and validates the YAML config at path.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Inputs.Interval != "" {
		if _, err := str2duration.ParseDuration(c.Inputs.Interval); err != nil {
			return fmt.Errorf("invalid interval %q: %w", c.Inputs.Interval, err)
		}
	}
	if c.Chart.MaxOverlay != nil && *c.Chart.MaxOverlay < 0 {
		return fmt.Errorf("max_overlay must not be negative")
	}
	if c.Chart.MaxBelow != nil && *c.Chart.MaxBelow < 0 {
		return fmt.Errorf("max_below must not be negative")
	}
	if c.Chart.Padding < 0 {
		return fmt.Errorf("autoscale_padding must not be negative")
	}
	for _, instrument := range c.Inputs.Instruments {
		if instrument.Name == "" || instrument.Candles == "" {
			return fmt.Errorf("instrument needs a name and a candles file")
		}
	}
	return nil
}

// Save writes the config as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ChartOptions turns the chart section into chart options; unset values keep
// the chart defaults.
func (c *Config) ChartOptions() []plot.Option {
	var options []plot.Option
	chart := c.Chart

	if chart.MaxOverlay != nil {
		options = append(options, plot.WithMaxOverlay(*chart.MaxOverlay))
	}
	if chart.MaxBelow != nil {
		options = append(options, plot.WithMaxBelow(*chart.MaxBelow))
	}
	if chart.Width > 0 || chart.Height > 0 {
		width, height := plot.DefaultWidth, plot.DefaultHeight
		if chart.Width > 0 {
			width = chart.Width
		}
		if chart.Height > 0 {
			height = chart.Height
		}
		options = append(options, plot.WithDimensions(width, height))
	}
	if chart.TopHeight > 0 {
		options = append(options, plot.WithPanelHeights(chart.TopHeight, plot.DefaultBelowHeight))
	}
	if chart.Padding > 0 {
		options = append(options, plot.WithAutoscalePadding(chart.Padding))
	}
	if len(chart.Tools) > 0 {
		options = append(options, plot.WithTools(chart.Tools...))
	}
	return options
}

// Param returns the default of the named strategy parameter.
func (c *Config) Param(name string) (interface{}, bool) {
	for _, param := range c.Inputs.Parameters {
		if param.Name == name {
			return param.Default, true
		}
	}
	return nil, false
}

// IntParam returns the named parameter as an int, fallback when unset.
func (c *Config) IntParam(name string, fallback int) int {
	value, ok := c.Param(name)
	if !ok {
		return fallback
	}
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

// FloatParam returns the named parameter as a float64, fallback when unset.
func (c *Config) FloatParam(name string, fallback float64) float64 {
	value, ok := c.Param(name)
	if !ok {
		return fallback
	}
	switch v := value.(type) {
	case int:
		return float64(v)
	case float64:
		return v
	}
	return fallback
}
