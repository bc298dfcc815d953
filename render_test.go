package fractal

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/fractal/internal/parallel"
)

func newTestRenderer(t testing.TB, opts ...Option) *Renderer {
	t.Helper()
	r := NewRenderer(opts...)
	t.Cleanup(r.Close)
	return r
}

// nearestPixel returns the panel pixel closest to p.
func nearestPixel(v View, p Point, panel int) (int, int) {
	fx, fy := v.ComplexToPixel(p, panel)
	x := min(max(int(fx+0.5), 0), panel-1)
	y := min(max(int(fy+0.5), 0), panel-1)
	return x, y
}

func TestRenderDefaultScene(t *testing.T) {
	r := newTestRenderer(t, WithWorkers(2))
	v := NewView(800, 400)

	pm, err := r.Mandelbrot(context.Background(), v)
	if err != nil {
		t.Fatalf("Mandelbrot: %v", err)
	}
	if pm.Width() != 400 || pm.Height() != 400 {
		t.Fatalf("size = %dx%d, want 400x400", pm.Width(), pm.Height())
	}

	black := color.RGBA{A: 255}

	x, y := nearestPixel(v, Pt(0, 0), 400)
	if got := pm.RGBAAt(x, y); got != black {
		t.Errorf("pixel (%d, %d) at c=0 = %v, want black", x, y, got)
	}

	x, y = nearestPixel(v, Pt(3, 0), 400)
	if got := pm.RGBAAt(x, y); got == black {
		t.Errorf("pixel (%d, %d) nearest c=3 is black, want escaped color", x, y)
	}
}

func TestRenderMatchesPerPixel(t *testing.T) {
	r := newTestRenderer(t, WithWorkers(3), WithMaxIterations(30), WithBandRows(5))
	v := View{Scale: 0.5, Offset: Pt(-0.6, 0.4), Width: 90, Height: 37}
	panel := v.PanelSize()

	pm, err := r.Mandelbrot(context.Background(), v)
	if err != nil {
		t.Fatalf("Mandelbrot: %v", err)
	}
	p := r.Palette()
	for y := range panel {
		for x := range panel {
			c := v.PixelToComplex(float64(x), float64(y), panel)
			want := p.Color(Escape(c.Complex(), 30), 30)
			if got := pm.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderSerialEqualsParallel(t *testing.T) {
	v := NewView(240, 120)
	c := Pt(-0.8, 0.156)

	serial := newTestRenderer(t, WithWorkers(1))
	wide := newTestRenderer(t, WithWorkers(4), WithBandRows(3))

	ctx := context.Background()
	m1, err := serial.Mandelbrot(ctx, v)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := wide.Mandelbrot(ctx, v)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m1.Data(), m2.Data()) {
		t.Error("Mandelbrot differs between serial and parallel renders")
	}

	j1, err := serial.Julia(ctx, c, 120)
	if err != nil {
		t.Fatal(err)
	}
	j2, err := wide.Julia(ctx, c, 120)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(j1.Data(), j2.Data()) {
		t.Error("Julia differs between serial and parallel renders")
	}
}

func TestRenderJulia(t *testing.T) {
	r := newTestRenderer(t, WithWorkers(2))
	pm, err := r.Julia(context.Background(), Pt(0, 0), 100)
	if err != nil {
		t.Fatalf("Julia: %v", err)
	}
	if pm.Width() != 100 || pm.Height() != 100 {
		t.Fatalf("size = %dx%d, want 100x100", pm.Width(), pm.Height())
	}

	// For c = 0 the unit disc is the filled Julia set.
	if got := pm.RGBAAt(50, 50); got != (color.RGBA{A: 255}) {
		t.Errorf("centre = %v, want black", got)
	}
	// The corner starts at z₀ = -2-2i, outside the escape radius.
	if got, want := pm.RGBAAt(0, 0), r.Palette().Color(0, r.MaxIterations()); got != want {
		t.Errorf("corner = %v, want %v", got, want)
	}
}

func TestRenderJuliaMinimumPanel(t *testing.T) {
	r := newTestRenderer(t, WithWorkers(1))
	pm, err := r.Julia(context.Background(), Pt(0, 0), 0)
	if err != nil {
		t.Fatal(err)
	}
	if pm.Width() != 1 || pm.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", pm.Width(), pm.Height())
	}
}

func TestRenderCancelled(t *testing.T) {
	r := newTestRenderer(t, WithWorkers(2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pm, err := r.Mandelbrot(ctx, NewView(200, 100))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if pm != nil {
		t.Error("cancelled render returned a buffer")
	}

	pm, err = r.Julia(ctx, Pt(0, 0), 100)
	if !errors.Is(err, context.Canceled) || pm != nil {
		t.Errorf("Julia = %v, %v; want nil, context.Canceled", pm, err)
	}
}

func TestRenderAfterClose(t *testing.T) {
	r := NewRenderer(WithWorkers(1))
	r.Close()
	_, err := r.Mandelbrot(context.Background(), NewView(20, 10))
	if !errors.Is(err, parallel.ErrPoolClosed) {
		t.Errorf("err = %v, want ErrPoolClosed", err)
	}
}

func TestRendererAccessors(t *testing.T) {
	r := newTestRenderer(t, WithWorkers(3), WithMaxIterations(77), WithColorModel(HSL))
	if r.Workers() != 3 {
		t.Errorf("Workers = %d, want 3", r.Workers())
	}
	if r.MaxIterations() != 77 {
		t.Errorf("MaxIterations = %d, want 77", r.MaxIterations())
	}
	if r.Palette().Model != HSL {
		t.Errorf("Palette model = %v, want hsl", r.Palette().Model)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkRenderMandelbrot(b *testing.B) {
	r := newTestRenderer(b)
	v := NewView(800, 400)
	ctx := context.Background()
	for b.Loop() {
		if _, err := r.Mandelbrot(ctx, v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderMandelbrotSerial(b *testing.B) {
	r := newTestRenderer(b, WithWorkers(1))
	v := NewView(800, 400)
	ctx := context.Background()
	for b.Loop() {
		if _, err := r.Mandelbrot(ctx, v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderJulia(b *testing.B) {
	r := newTestRenderer(b)
	ctx := context.Background()
	for b.Loop() {
		if _, err := r.Julia(ctx, Pt(-0.8, 0.156), 400); err != nil {
			b.Fatal(err)
		}
	}
}
