package fractal

import "math"

// View constants.
const (
	// DefaultScale is the width of the complex plane spanned by a panel at
	// startup.
	DefaultScale = 4.0

	// BaseScale is the fixed span of the Julia panel.
	BaseScale = 4.0

	// HorizontalBias shifts the Mandelbrot panel left by Scale/HorizontalBias
	// so the set sits centred in its panel.
	HorizontalBias = 8.0

	// MoveSpeed is the pan step divisor: one step moves Scale/MoveSpeed.
	MoveSpeed = 8.0

	// MinScale bounds zooming in, where float64 stops resolving pixels.
	MinScale = 1e-13

	// MaxScale bounds zooming out.
	MaxScale = 1e6
)

// Direction is a pan direction.
type Direction uint8

// Pan directions. Up moves towards negative imaginary values because screen
// y grows downward.
const (
	Left Direction = iota
	Right
	Up
	Down
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Input is the decoded input of one frame.
//
// Zoom signals are edge-triggered: the driver sets them for the single frame
// in which the wheel moved. Pan signals are level-triggered and stay set
// while a key is held.
type Input struct {
	ZoomIn  bool
	ZoomOut bool

	PanLeft  bool
	PanRight bool
	PanUp    bool
	PanDown  bool

	// Pointer is the pointer position in window pixels. It may lie outside
	// the Mandelbrot panel.
	Pointer Pointer
}

// View is the navigable window onto the complex plane.
type View struct {
	// Scale is the width of the complex plane spanned by one panel. Always > 0.
	Scale float64

	// Offset translates the panel centre.
	Offset Point

	// Width and Height are the host viewport size in pixels.
	Width  int
	Height int
}

// NewView returns a view of the given viewport at DefaultScale with zero
// offset.
func NewView(width, height int) View {
	return View{Scale: DefaultScale, Width: width, Height: height}
}

// PanelSize returns the side of the square panels: half the viewport width
// or the full height, whichever is smaller, and at least 1.
func (v View) PanelSize() int {
	return max(1, min(v.Width/2, v.Height))
}

// PixelToComplex maps a pixel of a panel of the given side to the complex
// plane:
//
//	re = px/panel·scale − scale/2 − scale/HorizontalBias + offset.re
//	im = py/panel·scale − scale/2 + offset.im
func (v View) PixelToComplex(px, py float64, panel int) Point {
	s := float64(max(panel, 1))
	return Point{
		Re: px/s*v.Scale - v.Scale/2 - v.Scale/HorizontalBias + v.Offset.Re,
		Im: py/s*v.Scale - v.Scale/2 + v.Offset.Im,
	}
}

// ComplexToPixel is the inverse of PixelToComplex.
func (v View) ComplexToPixel(p Point, panel int) (px, py float64) {
	s := float64(max(panel, 1))
	px = (p.Re - v.Offset.Re + v.Scale/2 + v.Scale/HorizontalBias) / v.Scale * s
	py = (p.Im - v.Offset.Im + v.Scale/2) / v.Scale * s
	return px, py
}

// JuliaPixelToComplex maps a pixel of the Julia panel to its starting point
// z₀. The Julia panel always spans BaseScale around the origin.
func JuliaPixelToComplex(px, py float64, panel int) Point {
	s := float64(max(panel, 1))
	return Point{
		Re: px/s*BaseScale - BaseScale/2,
		Im: py/s*BaseScale - BaseScale/2,
	}
}

// ZoomIn halves the scale, stopping at MinScale.
func (v *View) ZoomIn() {
	v.Scale = math.Max(v.Scale/2, MinScale)
}

// ZoomOut doubles the scale, stopping at MaxScale.
func (v *View) ZoomOut() {
	v.Scale = math.Min(v.Scale*2, MaxScale)
}

// Pan moves the offset one step of Scale/MoveSpeed in the given direction.
func (v *View) Pan(d Direction) {
	step := v.Scale / MoveSpeed
	switch d {
	case Left:
		v.Offset.Re -= step
	case Right:
		v.Offset.Re += step
	case Up:
		v.Offset.Im -= step
	case Down:
		v.Offset.Im += step
	}
}

// Resize updates the viewport size.
func (v *View) Resize(width, height int) {
	v.Width, v.Height = width, height
}

// Apply updates the view from one frame of input: zoom first, then pan at
// the new scale. When opposing signals are both set ZoomOut beats ZoomIn,
// Left beats Right and Up beats Down.
func (v *View) Apply(in Input) {
	switch {
	case in.ZoomOut:
		v.ZoomOut()
	case in.ZoomIn:
		v.ZoomIn()
	}

	switch {
	case in.PanLeft:
		v.Pan(Left)
	case in.PanRight:
		v.Pan(Right)
	}
	switch {
	case in.PanUp:
		v.Pan(Up)
	case in.PanDown:
		v.Pan(Down)
	}
}

// Key returns the Mandelbrot cache key of the view.
func (v View) Key() MandelbrotKey {
	return MandelbrotKey{Scale: v.Scale, Offset: v.Offset, Panel: v.PanelSize()}
}

// JuliaConstant maps the pointer to the Julia constant c using the
// Mandelbrot panel's mapping, so c is the point under the pointer.
func (v View) JuliaConstant(p Pointer) Point {
	return v.PixelToComplex(p.X, p.Y, v.PanelSize())
}
