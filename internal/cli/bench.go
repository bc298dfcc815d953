package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/fractal"
)

// Script returns a deterministic input sequence for a width×height viewport.
//
// The sequence repeats four phases of equal length: a pointer sweep along the
// Mandelbrot panel diagonal (Julia renders only), a stepped zoom, a held pan
// and idle frames that are served from the cache.
func Script(width, height, frames int) []fractal.Input {
	if frames <= 0 {
		return nil
	}
	panel := fractal.NewView(width, height).PanelSize()
	phase := max(frames/4, 1)

	script := make([]fractal.Input, frames)
	ptr := fractal.Pointer{X: float64(panel) / 2, Y: float64(panel) / 2}
	for i := range script {
		in := fractal.Input{}
		step := i % phase
		switch (i / phase) % 4 {
		case 0:
			t := float64(step) / float64(phase)
			ptr = fractal.Pointer{X: t * float64(panel), Y: t * float64(panel)}
		case 1:
			in.ZoomIn = step%4 == 0
		case 2:
			in.PanLeft = true
			in.PanUp = step%2 == 0
		}
		in.Pointer = ptr
		script[i] = in
	}
	return script
}

// Report summarizes a benchmark run.
type Report struct {
	Frames  int
	Stats   fractal.CacheStats
	Elapsed time.Duration
	Slowest time.Duration
}

// Reused returns how many panel buffers were served from the cache.
func (r Report) Reused() uint64 {
	total := 2 * uint64(r.Frames)
	rendered := r.Stats.MandelbrotRenders + r.Stats.JuliaRenders
	if rendered > total {
		return 0
	}
	return total - rendered
}

// FPS returns the average frame rate.
func (r Report) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

// Bench drives app through script and reports the render work it caused.
func Bench(ctx context.Context, app *fractal.App, script []fractal.Input) (Report, error) {
	before := app.Stats()
	start := time.Now()

	var slowest time.Duration
	for i, in := range script {
		t := time.Now()
		if _, err := app.Frame(ctx, in); err != nil {
			return Report{}, fmt.Errorf("bench: frame %d: %w", i, err)
		}
		slowest = max(slowest, time.Since(t))
	}

	after := app.Stats()
	return Report{
		Frames: len(script),
		Stats: fractal.CacheStats{
			Frames:            after.Frames - before.Frames,
			MandelbrotRenders: after.MandelbrotRenders - before.MandelbrotRenders,
			JuliaRenders:      after.JuliaRenders - before.JuliaRenders,
		},
		Elapsed: time.Since(start),
		Slowest: slowest,
	}, nil
}

// Write prints the report for humans.
func (r Report) Write(w io.Writer) error {
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w,
		"frames              %d\n"+
			"mandelbrot renders  %d\n"+
			"julia renders       %d\n"+
			"buffers reused      %d\n"+
			"elapsed             %v\n"+
			"slowest frame       %v\n"+
			"frames per second   %.1f\n",
		r.Frames,
		r.Stats.MandelbrotRenders,
		r.Stats.JuliaRenders,
		r.Reused(),
		r.Elapsed.Round(time.Millisecond),
		r.Slowest.Round(time.Microsecond),
		r.FPS(),
	)
	return err
}
