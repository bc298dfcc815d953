package fractal

import "github.com/gogpu/fractal/internal/parallel"

// DefaultMaxIterations is the default escape-time bound N.
const DefaultMaxIterations = 50

// Option configures an App or Renderer during creation.
// Use functional options to customize behavior.
//
// Example:
//
//	// Defaults: 50 iterations, HSV palette, one worker per CPU
//	app := fractal.NewApp(800, 400)
//
//	// Deeper zooms need a higher iteration bound
//	app := fractal.NewApp(800, 400, fractal.WithMaxIterations(500), fractal.WithColorModel(fractal.HCL))
type Option func(*options)

// options holds optional configuration.
type options struct {
	maxIterations int
	colorModel    ColorModel
	workers       int
	bandRows      int
	scale         float64
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		maxIterations: DefaultMaxIterations,
		colorModel:    HSV,
		workers:       0, // GOMAXPROCS
		bandRows:      parallel.BandRows,
		scale:         DefaultScale,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxIterations sets the escape-time bound N. Values below 1 are raised
// to 1.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = max(n, 1)
	}
}

// WithColorModel selects the palette's color model.
func WithColorModel(m ColorModel) Option {
	return func(o *options) {
		o.colorModel = m
	}
}

// WithWorkers sets the number of render workers.
// Zero or negative uses GOMAXPROCS; 1 renders serially.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithBandRows sets how many pixel rows each render task covers.
// Zero or negative uses the default.
func WithBandRows(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = parallel.BandRows
		}
		o.bandRows = n
	}
}

// WithScale sets the initial (and reset) view scale. Non-positive values are
// ignored; others are clamped to [MinScale, MaxScale].
func WithScale(s float64) Option {
	return func(o *options) {
		if !(s > 0) {
			return
		}
		o.scale = min(max(s, MinScale), MaxScale)
	}
}
