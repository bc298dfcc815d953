// Package parallel provides the row-band fan-out used to evaluate panel
// pixels concurrently.
//
// A panel is split into horizontal bands of whole rows. Every band writes a
// disjoint slice of the destination buffer, so bands need no locking and can
// run in any order. A WorkerPool evaluates the bands and stops picking up new
// ones once the render's context is cancelled.
package parallel

import "errors"

// BandRows is the default number of pixel rows per band.
// 16 rows of a 400px panel is 25.6KB of RGBA output, small enough to keep
// the pool balanced when interior-heavy rows are slow.
const BandRows = 16

// ErrPoolClosed is returned by ExecuteAll after Close.
var ErrPoolClosed = errors.New("parallel: worker pool closed")

// Band is the half-open row range [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows splits height rows into bands of at most rows rows each.
// The last band is shorter when height is not divisible by rows.
// A non-positive rows value uses BandRows.
func SplitRows(height, rows int) []Band {
	if height <= 0 {
		return nil
	}
	if rows <= 0 {
		rows = BandRows
	}

	bands := make([]Band, 0, (height+rows-1)/rows)
	for y := 0; y < height; y += rows {
		bands = append(bands, Band{Y0: y, Y1: min(y+rows, height)})
	}
	return bands
}
