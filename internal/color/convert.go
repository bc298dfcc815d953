package color

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Chroma and luminance used for ModelHCL. Chosen so most hues stay inside
// the sRGB gamut before clamping.
const (
	hclChroma    = 0.6
	hclLuminance = 0.65
)

// Hue converts a hue in degrees to an opaque, fully saturated color in
// model m. Hue is taken modulo 360.
func Hue(m Model, hue float64) ColorU8 {
	var c colorful.Color
	switch m {
	case ModelHCL:
		c = colorful.Hcl(hue, hclChroma, hclLuminance).Clamped()
	case ModelHSL:
		c = colorful.Hsl(normalize(hue), 1, 0.5)
	default:
		c = colorful.Hsv(normalize(hue), 1, 1)
	}
	return ColorU8{
		R: quantize(c.R),
		G: quantize(c.G),
		B: quantize(c.B),
		A: 255,
	}
}

// normalize maps h into [0, 360).
func normalize(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// quantize clamps v to [0,1] and truncates it to 8 bits.
func quantize(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
