package fractal

import (
	"math"
	"testing"
)

const mapEpsilon = 1e-9

func TestPanelSize(t *testing.T) {
	tests := []struct {
		w, h int
		want int
	}{
		{800, 400, 400},
		{800, 300, 300},
		{1000, 2000, 500},
		{801, 600, 400},
		{1, 1, 1},
		{0, 0, 1},
		{-10, 50, 1},
	}
	for _, tt := range tests {
		v := NewView(tt.w, tt.h)
		if got := v.PanelSize(); got != tt.want {
			t.Errorf("PanelSize(%dx%d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestPixelToComplexDefaultView(t *testing.T) {
	v := NewView(800, 400)
	tests := []struct {
		px, py float64
		want   Point
	}{
		{0, 0, Pt(-2.5, -2)},
		{250, 200, Pt(0, 0)},
		{400, 400, Pt(1.5, 2)},
		{200, 100, Pt(-0.5, -1)},
	}
	for _, tt := range tests {
		got := v.PixelToComplex(tt.px, tt.py, 400)
		if math.Abs(got.Re-tt.want.Re) > mapEpsilon || math.Abs(got.Im-tt.want.Im) > mapEpsilon {
			t.Errorf("PixelToComplex(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
		}
	}
}

func TestMappingRoundTrip(t *testing.T) {
	views := []View{
		NewView(800, 400),
		{Scale: 0.001, Offset: Pt(-0.7435, 0.1314), Width: 640, Height: 480},
		{Scale: 64, Offset: Pt(10, -3), Width: 300, Height: 900},
	}
	for _, v := range views {
		panel := v.PanelSize()
		for _, px := range []float64{0, 1, 17.5, float64(panel) / 2, float64(panel - 1)} {
			for _, py := range []float64{0, 3, float64(panel) / 3, float64(panel - 1)} {
				p := v.PixelToComplex(px, py, panel)
				gx, gy := v.ComplexToPixel(p, panel)
				if math.Abs(gx-px) > 1e-6 || math.Abs(gy-py) > 1e-6 {
					t.Errorf("scale %v: round trip (%v, %v) -> %v -> (%v, %v)", v.Scale, px, py, p, gx, gy)
				}
			}
		}
	}
}

func TestJuliaPixelToComplex(t *testing.T) {
	tests := []struct {
		px, py float64
		panel  int
		want   Point
	}{
		{0, 0, 400, Pt(-2, -2)},
		{200, 200, 400, Pt(0, 0)},
		{300, 100, 400, Pt(1, -1)},
		{50, 50, 100, Pt(0, 0)},
	}
	for _, tt := range tests {
		if got := JuliaPixelToComplex(tt.px, tt.py, tt.panel); got != tt.want {
			t.Errorf("JuliaPixelToComplex(%v, %v, %d) = %v, want %v", tt.px, tt.py, tt.panel, got, tt.want)
		}
	}
}

func TestJuliaConstantUsesMandelbrotMapping(t *testing.T) {
	v := View{Scale: 2, Offset: Pt(0.5, -0.25), Width: 600, Height: 300}
	ptr := Pointer{X: 120, Y: 45}
	want := v.PixelToComplex(ptr.X, ptr.Y, v.PanelSize())
	if got := v.JuliaConstant(ptr); got != want {
		t.Errorf("JuliaConstant = %v, want %v", got, want)
	}
}

// =============================================================================
// Mutation Tests
// =============================================================================

func TestZoomMonotonic(t *testing.T) {
	v := NewView(800, 400)
	prev := v.Scale
	for range 10 {
		v.ZoomIn()
		if v.Scale >= prev {
			t.Fatalf("ZoomIn: scale %v not below %v", v.Scale, prev)
		}
		prev = v.Scale
	}
	for range 10 {
		v.ZoomOut()
		if v.Scale <= prev {
			t.Fatalf("ZoomOut: scale %v not above %v", v.Scale, prev)
		}
		prev = v.Scale
	}
	if v.Scale != DefaultScale {
		t.Errorf("10 in + 10 out: scale = %v, want %v", v.Scale, DefaultScale)
	}
}

func TestZoomClamps(t *testing.T) {
	v := View{Scale: MinScale * 1.5}
	v.ZoomIn()
	v.ZoomIn()
	if v.Scale != MinScale {
		t.Errorf("ZoomIn clamp: scale = %v, want %v", v.Scale, MinScale)
	}

	v.Scale = MaxScale / 1.5
	v.ZoomOut()
	v.ZoomOut()
	if v.Scale != MaxScale {
		t.Errorf("ZoomOut clamp: scale = %v, want %v", v.Scale, MaxScale)
	}
	if math.IsInf(v.Scale, 0) || v.Scale <= 0 {
		t.Errorf("scale left the finite positive range: %v", v.Scale)
	}
}

func TestPanStep(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Point
	}{
		{Left, Pt(-0.5, 0)},
		{Right, Pt(0.5, 0)},
		{Up, Pt(0, -0.5)},
		{Down, Pt(0, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			v := NewView(800, 400)
			v.Pan(tt.dir)
			if v.Offset != tt.want {
				t.Errorf("Pan(%v) offset = %v, want %v", tt.dir, v.Offset, tt.want)
			}
		})
	}
}

func TestPanSpeedHalvesWithZoom(t *testing.T) {
	v := NewView(800, 400)
	v.Pan(Right)
	first := v.Offset.Re

	v.ZoomIn()
	v.Pan(Right)
	second := v.Offset.Re - first

	if second != first/2 {
		t.Errorf("pan step after zoom in = %v, want %v", second, first/2)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		wantScale float64
		wantOff   Point
	}{
		{"idle", Input{}, 4, Pt(0, 0)},
		{"zoom in", Input{ZoomIn: true}, 2, Pt(0, 0)},
		{"zoom out", Input{ZoomOut: true}, 8, Pt(0, 0)},
		{"zoom out wins", Input{ZoomIn: true, ZoomOut: true}, 8, Pt(0, 0)},
		{"left wins", Input{PanLeft: true, PanRight: true}, 4, Pt(-0.5, 0)},
		{"up wins", Input{PanUp: true, PanDown: true}, 4, Pt(0, -0.5)},
		{"diagonal", Input{PanRight: true, PanDown: true}, 4, Pt(0.5, 0.5)},
		{"pan at zoomed scale", Input{ZoomIn: true, PanLeft: true}, 2, Pt(-0.25, 0)},
		{"pointer only", Input{Pointer: Pointer{X: 10, Y: 10}}, 4, Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(800, 400)
			v.Apply(tt.in)
			if v.Scale != tt.wantScale || v.Offset != tt.wantOff {
				t.Errorf("Apply = scale %v offset %v, want %v %v", v.Scale, v.Offset, tt.wantScale, tt.wantOff)
			}
		})
	}
}

func TestViewKey(t *testing.T) {
	a := NewView(800, 400)
	b := NewView(800, 400)
	if a.Key() != b.Key() {
		t.Fatal("identical views have different keys")
	}

	b.Resize(800, 300)
	if a.Key() == b.Key() {
		t.Error("panel change did not change key")
	}

	c := NewView(801, 400)
	if a.Key() != c.Key() {
		t.Error("viewport change that keeps the panel changed the key")
	}

	d := NewView(800, 400)
	d.Pan(Up)
	if a.Key() == d.Key() {
		t.Error("offset change did not change key")
	}
}
