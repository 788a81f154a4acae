package internal

import (
	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/bitutil"
)

// Grid is a sampled module matrix. Bits holds dark modules; modules set in
// Unknown could not be sampled and their Bits value is meaningless.
type Grid struct {
	Size    int
	Bits    *bitutil.BitMatrix
	Unknown *bitutil.BitMatrix
	// Corners are the image positions of grid corners (0,0), (size,0),
	// (size,size) and (0,size).
	Corners [4]qrscan.Point
}

// NewGrid wraps module matrices. A nil unknown means every module was
// sampled.
func NewGrid(bits, unknown *bitutil.BitMatrix, corners [4]qrscan.Point) *Grid {
	if unknown == nil {
		unknown = bitutil.NewBitMatrix(bits.Height())
	}
	return &Grid{Size: bits.Height(), Bits: bits, Unknown: unknown, Corners: corners}
}

// Transpose returns the grid read as its mirror image.
func (g *Grid) Transpose() *Grid {
	return &Grid{
		Size:    g.Size,
		Bits:    g.Bits.Transpose(),
		Unknown: g.Unknown.Transpose(),
		Corners: [4]qrscan.Point{g.Corners[0], g.Corners[3], g.Corners[2], g.Corners[1]},
	}
}
