// Package overlay draws the coordinate readout over a composed frame.
//
// Glyphs are rasterized with golang.org/x/image/font (Go Regular by
// default). The backdrop box behind the text is sized from a HarfBuzz
// shaping pass (go-text/typesetting), which gives the exact advance and line
// bounds of the string at the requested size.
package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fractal/internal/cache"
)

// ErrFont is returned when font data cannot be parsed.
var ErrFont = errors.New("overlay: invalid font")

// maxFaces bounds the number of cached sizes.
const maxFaces = 8

// Metrics is the measured extent of a line of text, in pixels.
type Metrics struct {
	// Advance is the horizontal extent of the line.
	Advance float64
	// Ascent is the distance from the baseline to the top of the line.
	Ascent float64
	// Descent is the distance from the baseline to the bottom of the line.
	Descent float64
}

// Height returns Ascent + Descent.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Label renders single lines of text. Label is safe for concurrent use.
type Label struct {
	font  *opentype.Font
	shape *gtfont.Face
	lang  language.Language

	shapers sync.Pool
	faces   *cache.Cache[float64, font.Face]

	// drawMu serializes use of the cached faces, which keep scratch state.
	drawMu sync.Mutex
}

// New returns a Label using Go Regular.
func New() (*Label, error) {
	return NewFromTTF(goregular.TTF)
}

// NewFromTTF returns a Label using the given TrueType or OpenType data.
func NewFromTTF(data []byte) (*Label, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFont, err)
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFont, err)
	}

	l := &Label{
		font:  f,
		shape: face,
		lang:  language.NewLanguage("en"),
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
	l.faces = cache.New[float64, font.Face](maxFaces, func(_ float64, f font.Face) {
		_ = f.Close()
	})
	return l, nil
}

// face returns the rasterizing face for size, creating it on first use.
// Caller must hold l.drawMu.
func (l *Label) face(size float64) (font.Face, error) {
	if f, ok := l.faces.Get(size); ok {
		return f, nil
	}
	f, err := opentype.NewFace(l.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("overlay: face at %vpx: %w", size, err)
	}
	return l.faces.GetOrCreate(size, func() font.Face { return f }), nil
}

// Measure shapes s at size pixels and returns its extent.
func (l *Label) Measure(s string, size float64) Metrics {
	runes := []rune(s)
	if len(runes) == 0 || size <= 0 {
		return Metrics{}
	}

	shaper := l.shapers.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      l.shape,
		Size:      fixed.Int26_6(size * 64),
		Script:    language.Latin,
		Language:  l.lang,
	})
	l.shapers.Put(shaper)

	return Metrics{
		Advance: fixedToFloat(out.Advance),
		Ascent:  math.Abs(fixedToFloat(out.LineBounds.Ascent)),
		Descent: math.Abs(fixedToFloat(out.LineBounds.Descent)),
	}
}

// Draw draws s with its baseline origin at (x, y).
func (l *Label) Draw(dst draw.Image, s string, x, y, size float64, fg color.Color) error {
	if s == "" {
		return nil
	}
	l.drawMu.Lock()
	defer l.drawMu.Unlock()

	face, err := l.face(size)
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(s)
	return nil
}

// Box returns the rectangle covered by s drawn at baseline (x, y), grown by
// pad pixels on every side.
func (l *Label) Box(s string, x, y, size float64, pad int) image.Rectangle {
	m := l.Measure(s, size)
	if m.Advance == 0 {
		return image.Rectangle{}
	}
	r := image.Rect(
		int(math.Floor(x)),
		int(math.Floor(y-m.Ascent)),
		int(math.Ceil(x+m.Advance)),
		int(math.Ceil(y+m.Descent)),
	)
	return r.Inset(-pad)
}

// DrawBackdrop fills the box behind s with bg, blending over dst.
func (l *Label) DrawBackdrop(dst draw.Image, s string, x, y, size float64, pad int, bg color.Color) {
	r := l.Box(s, x, y, size, pad).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(bg), image.Point{}, draw.Over)
}

// Close releases cached faces. The Label remains usable.
func (l *Label) Close() {
	l.drawMu.Lock()
	defer l.drawMu.Unlock()
	l.faces.Clear()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
