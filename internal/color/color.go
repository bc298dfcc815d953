// Package color provides the cylindrical color models used to turn an
// escape-time hue into an 8-bit display color.
package color

import "fmt"

// Model represents a cylindrical color model.
type Model uint8

const (
	// ModelHSV is hue/saturation/value with S=1, V=1.
	ModelHSV Model = iota
	// ModelHCL is the perceptual CIE LCh(uv) model, clamped to the sRGB gamut.
	ModelHCL
	// ModelHSL is hue/saturation/lightness with S=1, L=0.5.
	ModelHSL
)

// String returns the configuration name of the model.
func (m Model) String() string {
	switch m {
	case ModelHSV:
		return "hsv"
	case ModelHCL:
		return "hcl"
	case ModelHSL:
		return "hsl"
	default:
		return fmt.Sprintf("Model(%d)", uint8(m))
	}
}

// ParseModel returns the model named s. The empty string selects ModelHSV.
func ParseModel(s string) (Model, error) {
	switch s {
	case "", "hsv":
		return ModelHSV, nil
	case "hcl":
		return ModelHCL, nil
	case "hsl":
		return ModelHSL, nil
	}
	return ModelHSV, fmt.Errorf("color: unknown model %q", s)
}

// ColorU8 represents a color with uint8 components in [0,255].
// Alpha is always linear (never gamma-encoded).
type ColorU8 struct {
	R, G, B, A uint8
}

// Black is opaque black.
var Black = ColorU8{A: 255}
