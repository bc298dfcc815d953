package fractal

import "strconv"

// Point is a point of the complex plane.
type Point struct {
	Re, Im float64
}

// Pt is a convenience function to create a Point.
func Pt(re, im float64) Point {
	return Point{Re: re, Im: im}
}

// PointOf converts a complex128 to a Point.
func PointOf(c complex128) Point {
	return Point{Re: real(c), Im: imag(c)}
}

// Complex returns p as a complex128.
func (p Point) Complex() complex128 {
	return complex(p.Re, p.Im)
}

// Readout formats p the way the explorer labels the selected constant:
// "c = {re} + {im}i", each part in shortest round-trip decimal form.
func (p Point) Readout() string {
	return "c = " + formatFloat(p.Re) + " + " + formatFloat(p.Im) + "i"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Pointer is a pointer position in window pixels. It may lie outside the
// Mandelbrot panel.
type Pointer struct {
	X, Y float64
}
