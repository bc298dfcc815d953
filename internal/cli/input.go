package cli

import "github.com/gogpu/fractal"

// Keys is the held state of the pan keys.
type Keys struct {
	Left, Right, Up, Down bool
}

// DecodeInput turns one tick of raw window input into a frame input.
// Wheel up (positive wheelY) zooms in and wheel down zooms out.
func DecodeInput(wheelY float64, keys Keys, cursorX, cursorY int) fractal.Input {
	return fractal.Input{
		ZoomIn:   wheelY > 0,
		ZoomOut:  wheelY < 0,
		PanLeft:  keys.Left,
		PanRight: keys.Right,
		PanUp:    keys.Up,
		PanDown:  keys.Down,
		Pointer:  fractal.Pointer{X: float64(cursorX), Y: float64(cursorY)},
	}
}

// Gate paces background frames: a new frame is submitted only once the
// previous one has finished. Zoom steps that arrive while a frame is in
// flight are held and applied, one step per frame, to the frames submitted
// after it. Pan keys and the pointer are levels and are read fresh each tick.
//
// The zero Gate is ready to use. Gate is not safe for concurrent use.
type Gate struct {
	inflight <-chan error
	zoom     int // pending zoom steps, positive in
}

// Submit offers one tick of input. If no frame is in flight it calls start
// with the input, merged with one held zoom step, and returns true.
// Otherwise the tick's zoom is held and Submit returns false.
func (g *Gate) Submit(in fractal.Input, start func(fractal.Input) <-chan error) bool {
	switch {
	case in.ZoomOut:
		g.zoom--
	case in.ZoomIn:
		g.zoom++
	}

	if g.inflight != nil {
		select {
		case <-g.inflight:
			g.inflight = nil
		default:
			return false
		}
	}

	in.ZoomIn, in.ZoomOut = g.zoom > 0, g.zoom < 0
	switch {
	case g.zoom > 0:
		g.zoom--
	case g.zoom < 0:
		g.zoom++
	}
	g.inflight = start(in)
	return true
}

// Pending returns the number of held zoom steps, positive for zooming in.
func (g *Gate) Pending() int {
	return g.zoom
}
