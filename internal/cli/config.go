// Package cli holds the parts of the fractal command that do not need a
// window: configuration, logging setup, input decoding and the headless
// benchmark.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/fractal"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory when --config is not given.
const DefaultConfigFile = "fractal.toml"

// Config is the fractal.toml configuration.
type Config struct {
	// Iterations is the escape-time bound N.
	Iterations int `toml:"iterations"`

	// ColorModel is "hsv", "hcl" or "hsl".
	ColorModel string `toml:"color_model"`

	// Workers is the render worker count; 0 means one per CPU.
	Workers int `toml:"workers"`

	// BandRows is the number of pixel rows per render task.
	BandRows int `toml:"band_rows"`

	// Scale is the initial view scale.
	Scale float64 `toml:"scale"`

	Window WindowConfig `toml:"window"`
	Bench  BenchConfig  `toml:"bench"`
}

// WindowConfig configures the interactive explorer window.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`

	// ShowFPS prints the frame rate in the bottom-left corner.
	ShowFPS bool `toml:"show_fps"`

	// Async renders in the background so input never waits on a render.
	Async bool `toml:"async"`

	// Backdrop draws a dark box behind the readout.
	Backdrop bool `toml:"backdrop"`
}

// BenchConfig configures the headless benchmark.
type BenchConfig struct {
	Frames int `toml:"frames"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Iterations: fractal.DefaultMaxIterations,
		ColorModel: fractal.HSV.String(),
		Scale:      fractal.DefaultScale,
		Window: WindowConfig{
			Width:  800,
			Height: 400,
			Title:  "fractal",
		},
		Bench: BenchConfig{
			Frames: 240,
			Width:  800,
			Height: 400,
		},
	}
}

// LoadConfig reads path over the defaults. Keys that do not belong to the
// configuration are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Iterations < 1 {
		errs = append(errs, fmt.Errorf("iterations must be at least 1, got %d", c.Iterations))
	}
	if _, err := fractal.ParseColorModel(c.ColorModel); err != nil {
		errs = append(errs, err)
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %v", c.Scale))
	}
	if c.Window.Width < 2 || c.Window.Height < 1 {
		errs = append(errs, fmt.Errorf("window must be at least 2x1, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Bench.Frames < 1 {
		errs = append(errs, fmt.Errorf("bench frames must be at least 1, got %d", c.Bench.Frames))
	}
	return errors.Join(errs...)
}

// Options converts the configuration to fractal options.
func (c Config) Options() ([]fractal.Option, error) {
	model, err := fractal.ParseColorModel(c.ColorModel)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []fractal.Option{
		fractal.WithMaxIterations(c.Iterations),
		fractal.WithColorModel(model),
		fractal.WithWorkers(c.Workers),
		fractal.WithBandRows(c.BandRows),
		fractal.WithScale(c.Scale),
	}, nil
}
