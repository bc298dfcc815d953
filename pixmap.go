package fractal

import (
	"image"
	"image/color"
)

// Pixmap is a rectangular RGBA pixel buffer, 4 bytes per pixel, row-major.
//
// A renderer fills a fresh Pixmap and hands it over whole. Once a Pixmap is
// part of a Frame it is never written again, so it may be read from any
// goroutine.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
// Callers must not modify the data of an installed pixmap.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// setPixel stores c at column x of a row returned by row.
func setPixel(row []uint8, x int, c color.RGBA) {
	i := x * 4
	row[i+0] = c.R
	row[i+1] = c.G
	row[i+2] = c.B
	row[i+3] = c.A
}

// row returns the bytes of row y.
func (p *Pixmap) row(y int) []uint8 {
	stride := p.width * 4
	return p.data[y*stride : (y+1)*stride]
}

// RGBAAt returns the color of a single pixel.
// Out-of-range coordinates return transparent black.
func (p *Pixmap) RGBAAt(x, y int) color.RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// ToImage converts the pixmap to an image.RGBA.
// The result owns a copy of the pixel data.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// view returns an image.RGBA sharing the pixmap's storage.
func (p *Pixmap) view() *image.RGBA {
	return &image.RGBA{
		Pix:    p.data,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
// Every pixel is opaque, so RGBA and NRGBA agree.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
