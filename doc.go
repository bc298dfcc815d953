// Package fractal renders the Mandelbrot set next to a pointer-linked Julia
// set for an interactive explorer.
//
// # Overview
//
// An App owns the view (zoom scale, pan offset, viewport) and the last
// rendered pair of panels. A frame driver feeds it one Input per displayed
// frame and shows whatever Frame it returns:
//
//	app := fractal.NewApp(800, 400)
//	defer app.Close()
//
//	f, err := app.Frame(ctx, fractal.Input{
//		ZoomIn:  true,
//		Pointer: fractal.Pointer{X: 150, Y: 200},
//	})
//
// Panels are only recomputed when something they depend on changes: the
// Mandelbrot panel on scale, offset or panel size, the Julia panel on those
// plus the pointer position. Identical consecutive frames reuse the buffers
// already rendered.
//
// # Coordinate System
//
// Pixel coordinates follow screen conventions: origin top-left, x right,
// y down. Panel pixel (px, py) maps to
//
//	re = px/panel*scale - scale/2 - scale/HorizontalBias + offset.re
//	im = py/panel*scale - scale/2 + offset.im
//
// so the imaginary axis grows downward on screen. The Julia panel uses the
// same mapping at BaseScale, without offset or bias.
//
// # Rendering
//
// Each pixel runs the escape-time iteration z ← z² + c, capped at the
// configured maximum, and the count is mapped to a hue. Rows are split into
// bands that a worker pool evaluates in parallel; a render whose context is
// cancelled is abandoned and never installed.
package fractal

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
