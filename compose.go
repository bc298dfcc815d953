package fractal

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/fractal/internal/overlay"
)

// Readout placement, in pixels. The readout starts at the left edge of the
// Julia panel with its baseline ReadoutBaseline pixels from the top.
const (
	ReadoutBaseline = 20
	ReadoutSize     = 16
)

// Compositor draws frames onto a destination image: the Mandelbrot panel at
// the left, the Julia panel to its right and the readout over the Julia
// panel.
//
// Compositor is safe for concurrent use.
type Compositor struct {
	label *overlay.Label

	// Background fills the area outside the panels.
	Background color.Color

	// Text is the readout color.
	Text color.Color

	// Backdrop, if not nil, is blended behind the readout.
	Backdrop color.Color
}

// NewCompositor creates a compositor that draws the readout in Go Regular.
func NewCompositor() (*Compositor, error) {
	l, err := overlay.New()
	if err != nil {
		return nil, fmt.Errorf("fractal: compositor: %w", err)
	}
	return &Compositor{
		label:      l,
		Background: color.Black,
		Text:       color.White,
	}, nil
}

// Size returns the extent covered by the panels of f.
func (c *Compositor) Size(f *Frame) image.Point {
	if f == nil {
		return image.Point{}
	}
	return image.Pt(2*f.Panel, f.Panel)
}

// Compose clears dst and draws f into it. A nil frame only clears.
func (c *Compositor) Compose(dst draw.Image, f *Frame) error {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(c.Background), image.Point{}, draw.Src)
	if f == nil {
		return nil
	}

	if f.Mandelbrot != nil {
		r := image.Rectangle{Min: b.Min, Max: b.Min.Add(f.Mandelbrot.Bounds().Size())}
		draw.Draw(dst, r, f.Mandelbrot.view(), image.Point{}, draw.Src)
	}
	if f.Julia != nil {
		at := b.Min.Add(image.Pt(f.Panel, 0))
		r := image.Rectangle{Min: at, Max: at.Add(f.Julia.Bounds().Size())}
		draw.Draw(dst, r, f.Julia.view(), image.Point{}, draw.Src)
	}

	x := float64(b.Min.X + f.Panel)
	y := float64(b.Min.Y + ReadoutBaseline)
	if c.Backdrop != nil {
		c.label.DrawBackdrop(dst, f.Readout, x, y, ReadoutSize, 2, c.Backdrop)
	}
	if err := c.label.Draw(dst, f.Readout, x, y, ReadoutSize, c.Text); err != nil {
		return fmt.Errorf("fractal: readout: %w", err)
	}
	return nil
}

// Close releases cached font faces.
func (c *Compositor) Close() {
	c.label.Close()
}
