package fractal

import (
	"image/color"

	icolor "github.com/gogpu/fractal/internal/color"
)

// ColorModel selects the cylindrical color model used to turn an escape
// time into a hue.
type ColorModel = icolor.Model

// Supported color models.
const (
	// HSV maps the hue at full saturation and value. This is the default.
	HSV = icolor.ModelHSV

	// HCL maps the hue at constant perceptual chroma and luminance.
	HCL = icolor.ModelHCL

	// HSL maps the hue at full saturation and lightness 0.5.
	HSL = icolor.ModelHSL
)

// ParseColorModel parses a color model name ("hsv", "hcl" or "hsl").
// An empty name selects HSV.
func ParseColorModel(s string) (ColorModel, error) {
	return icolor.ParseModel(s)
}

// Palette maps escape times to colors.
//
// An escape time i in [0, n) becomes the hue i/n·360° in the palette's color
// model; i >= n (the point never escaped) is opaque black. The mapping is
// deterministic and holds no state beyond the model.
type Palette struct {
	Model ColorModel
}

// Color returns the color for escape time i at iteration bound n.
func (p Palette) Color(i, n int) color.RGBA {
	if i >= n || n <= 0 {
		return toRGBA(icolor.Black)
	}
	if i < 0 {
		i = 0
	}
	hue := float64(i) / float64(n) * 360
	return toRGBA(icolor.Hue(p.Model, hue))
}

// Table returns the colors for every escape time in [0, n].
//
// Entry n is the interior color. Renderers index the table instead of
// converting colors per pixel.
func (p Palette) Table(n int) []color.RGBA {
	if n < 0 {
		n = 0
	}
	lut := make([]color.RGBA, n+1)
	for i := range lut {
		lut[i] = p.Color(i, n)
	}
	return lut
}

func toRGBA(c icolor.ColorU8) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
