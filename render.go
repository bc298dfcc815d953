package fractal

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gogpu/fractal/internal/parallel"
)

// Renderer produces panel buffers.
//
// Each call builds a fresh square Pixmap: the panel rows are split into
// bands, the bands are evaluated on a shared worker pool, and every pixel
// goes through the escape-time iteration and the palette. Renderer is safe
// for concurrent use; the Mandelbrot and Julia panels of a frame are
// typically rendered at the same time.
type Renderer struct {
	pool     *parallel.WorkerPool
	palette  Palette
	lut      []color.RGBA
	maxIter  int
	bandRows int
}

// NewRenderer creates a renderer. Close releases its workers.
func NewRenderer(opts ...Option) *Renderer {
	return newRenderer(buildOptions(opts))
}

func newRenderer(o options) *Renderer {
	p := Palette{Model: o.colorModel}
	return &Renderer{
		pool:     parallel.NewWorkerPool(o.workers),
		palette:  p,
		lut:      p.Table(o.maxIterations),
		maxIter:  o.maxIterations,
		bandRows: o.bandRows,
	}
}

// MaxIterations returns the escape-time bound N.
func (r *Renderer) MaxIterations() int {
	return r.maxIter
}

// Palette returns the palette used to color escape times.
func (r *Renderer) Palette() Palette {
	return r.palette
}

// Workers returns the number of render workers.
func (r *Renderer) Workers() int {
	return r.pool.Workers()
}

// Mandelbrot renders the Mandelbrot panel of v. The panel side is
// v.PanelSize(); pixel (x, y) shows c = v.PixelToComplex(x, y, side).
func (r *Renderer) Mandelbrot(ctx context.Context, v View) (*Pixmap, error) {
	panel := v.PanelSize()
	n := r.maxIter
	return r.render(ctx, "mandelbrot", panel, func(x, y int) int {
		c := v.PixelToComplex(float64(x), float64(y), panel)
		return Escape(c.Complex(), n)
	})
}

// Julia renders the Julia panel for the constant c. Pixel (x, y) starts the
// iteration at z₀ = JuliaPixelToComplex(x, y, panel).
func (r *Renderer) Julia(ctx context.Context, c Point, panel int) (*Pixmap, error) {
	panel = max(panel, 1)
	n := r.maxIter
	cc := c.Complex()
	return r.render(ctx, "julia", panel, func(x, y int) int {
		z0 := JuliaPixelToComplex(float64(x), float64(y), panel)
		return EscapeFrom(z0.Complex(), cc, n)
	})
}

// render evaluates escape for every pixel of a panel×panel buffer.
// A cancelled context abandons the buffer and returns the context error.
func (r *Renderer) render(ctx context.Context, kind string, panel int, escape func(x, y int) int) (*Pixmap, error) {
	start := time.Now()
	pm := NewPixmap(panel, panel)

	bands := parallel.SplitRows(panel, r.bandRows)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() {
			for y := b.Y0; y < b.Y1; y++ {
				row := pm.row(y)
				for x := range panel {
					setPixel(row, x, r.lut[escape(x, y)])
				}
			}
		}
	}

	if err := r.pool.ExecuteAll(ctx, work); err != nil {
		Logger().Warn("panel render abandoned", "panel", kind, "size", panel, "err", err)
		return nil, fmt.Errorf("fractal: render %s: %w", kind, err)
	}

	Logger().Debug("panel rendered",
		"panel", kind,
		"size", panel,
		"bands", len(bands),
		"elapsed", time.Since(start))
	return pm, nil
}

// Close stops the render workers. Renders must not be running.
func (r *Renderer) Close() {
	r.pool.Close()
}
