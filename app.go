package fractal

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Errors returned by App.
var (
	// ErrClosed is returned by Frame and FrameAsync after Close.
	ErrClosed = errors.New("fractal: app closed")

	// ErrSuperseded is returned for a frame whose result was dropped
	// because a newer frame started before it finished.
	ErrSuperseded = errors.New("fractal: frame superseded")
)

// Frame is one displayable pair of panels.
//
// A Frame and its buffers are immutable once returned.
type Frame struct {
	// Mandelbrot is the Mandelbrot panel, Panel×Panel pixels.
	Mandelbrot *Pixmap

	// Julia is the Julia panel for C, Panel×Panel pixels.
	Julia *Pixmap

	// C is the Julia constant: the point under the pointer.
	C Point

	// Readout is the coordinate label for C.
	Readout string

	// Panel is the side of both panels in pixels.
	Panel int

	// Key identifies the inputs of both buffers.
	Key JuliaKey
}

// App is the explorer state: the view, the frame cache and the renderer.
//
// A host driver calls Frame (or FrameAsync) once per displayed frame with
// that frame's input. The most recent installed frame is always available
// through Current, from any goroutine.
type App struct {
	mu      sync.Mutex
	view    View
	pointer Pointer
	scale   float64 // reset scale
	gen     uint64  // last started frame
	shown   uint64  // last installed frame
	pending context.CancelFunc
	closed  bool

	renders  sync.WaitGroup
	cache    *FrameCache
	renderer *Renderer
	current  atomic.Pointer[Frame]
}

// NewApp creates an explorer for a width×height viewport.
func NewApp(width, height int, opts ...Option) *App {
	o := buildOptions(opts)

	v := NewView(width, height)
	v.Scale = o.scale

	a := &App{
		view:     v,
		scale:    o.scale,
		cache:    NewFrameCache(),
		renderer: newRenderer(o),
	}

	Logger().Info("app created",
		"width", width,
		"height", height,
		"iterations", o.maxIterations,
		"colorModel", o.colorModel.String(),
		"workers", a.renderer.Workers())
	return a
}

// frameJob is the state captured when a frame starts.
type frameJob struct {
	gen     uint64
	view    View
	pointer Pointer
}

// Frame applies one frame of input and returns the frame to display.
//
// Buffers whose inputs did not change are reused. Stale buffers are rendered
// concurrently and installed only if both succeed. If ctx is cancelled the
// error is returned, nothing is installed and the next Frame retries. Frame
// also cancels any FrameAsync still running.
func (a *App) Frame(ctx context.Context, in Input) (*Frame, error) {
	job, err := a.begin(in, nil)
	if err != nil {
		return nil, err
	}
	defer a.renders.Done()
	return a.run(ctx, job)
}

// FrameAsync applies one frame of input and renders it in the background.
//
// It returns immediately. The result is installed (and visible through
// Current) unless a newer frame starts first; the returned channel receives
// the outcome and is then closed.
func (a *App) FrameAsync(in Input) <-chan error {
	done := make(chan error, 1)

	ctx, cancel := context.WithCancel(context.Background())
	job, err := a.begin(in, cancel)
	if err != nil {
		cancel()
		done <- err
		close(done)
		return done
	}

	go func() {
		defer a.renders.Done()
		defer close(done)
		defer cancel()

		_, err := a.run(ctx, job)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrSuperseded) {
			Logger().Warn("background frame failed", "err", err)
		}
		done <- err
	}()
	return done
}

// begin applies input under the lock and captures the frame job.
// On success the caller owns one count of a.renders.
func (a *App) begin(in Input, cancel context.CancelFunc) (frameJob, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return frameJob{}, ErrClosed
	}
	if a.pending != nil {
		a.pending()
	}
	a.pending = cancel

	a.view.Apply(in)
	a.pointer = in.Pointer
	a.gen++
	a.renders.Add(1)

	return frameJob{gen: a.gen, view: a.view, pointer: a.pointer}, nil
}

// errReplan reports that an older frame replaced a buffer this frame planned
// to reuse.
var errReplan = errors.New("fractal: replan")

// run renders whatever the job needs and installs the result.
func (a *App) run(ctx context.Context, job frameJob) (*Frame, error) {
	mk := job.view.Key()
	jk := JuliaKey{Mandelbrot: mk, Pointer: job.pointer}
	c := job.view.JuliaConstant(job.pointer)

	for {
		f, err := a.renderAndInstall(ctx, job, mk, jk, c)
		if !errors.Is(err, errReplan) {
			return f, err
		}
		Logger().Debug("frame replanned", "frame", job.gen)
	}
}

func (a *App) renderAndInstall(ctx context.Context, job frameJob, mk MandelbrotKey, jk JuliaKey, c Point) (*Frame, error) {
	needMandel, needJulia := a.cache.Plan(mk, jk)
	Logger().Debug("frame planned",
		"frame", job.gen,
		"mandelbrot", needMandel,
		"julia", needJulia)

	var mandel, julia *Pixmap
	if needMandel || needJulia {
		g, gctx := errgroup.WithContext(ctx)
		if needMandel {
			g.Go(func() error {
				var err error
				mandel, err = a.renderer.Mandelbrot(gctx, job.view)
				return err
			})
		}
		if needJulia {
			g.Go(func() error {
				var err error
				julia, err = a.renderer.Julia(gctx, c, mk.Panel)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return a.install(job, mk, jk, c, mandel, julia)
}

// install commits freshly rendered buffers and publishes the frame, unless
// a newer frame was installed first.
func (a *App) install(job frameJob, mk MandelbrotKey, jk JuliaKey, c Point, mandel, julia *Pixmap) (*Frame, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if job.gen < a.shown {
		Logger().Debug("frame dropped", "frame", job.gen, "shown", a.shown)
		return nil, ErrSuperseded
	}
	if !a.cache.Commit(mk, jk, mandel, julia) {
		return nil, errReplan
	}
	a.shown = job.gen

	if cur := a.current.Load(); cur != nil && mandel == nil && julia == nil && cur.Key == jk {
		return cur, nil
	}

	m, j := a.cache.Buffers()
	f := &Frame{
		Mandelbrot: m,
		Julia:      j,
		C:          c,
		Readout:    c.Readout(),
		Panel:      mk.Panel,
		Key:        jk,
	}
	a.current.Store(f)
	return f, nil
}

// Current returns the most recently installed frame, or nil before the first
// frame completes.
func (a *App) Current() *Frame {
	return a.current.Load()
}

// View returns a copy of the current view.
func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// Resize updates the viewport. The next frame renders at the new panel size.
func (a *App) Resize(width, height int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.view.Width == width && a.view.Height == height {
		return
	}
	a.view.Resize(width, height)
	Logger().Debug("viewport resized", "width", width, "height", height, "panel", a.view.PanelSize())
}

// Reset restores the initial scale and a zero offset.
func (a *App) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view.Scale = a.scale
	a.view.Offset = Point{}
	Logger().Info("view reset", "scale", a.scale)
}

// Stats returns the frame cache counters.
func (a *App) Stats() CacheStats {
	return a.cache.Stats()
}

// MaxIterations returns the escape-time bound N.
func (a *App) MaxIterations() int {
	return a.renderer.MaxIterations()
}

// Close cancels any background frame, waits for running frames and stops
// the render workers. Close is safe to call multiple times.
func (a *App) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	if a.pending != nil {
		a.pending()
		a.pending = nil
	}
	a.mu.Unlock()

	a.renders.Wait()
	a.renderer.Close()
	Logger().Info("app closed")
}
