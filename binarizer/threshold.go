// Package binarizer converts grayscale images into black and white bitmaps.
package binarizer

import (
	"image"

	"github.com/ericlevine/qrscan/bitutil"
)

const (
	// windowDivisor sets the running-mean window to 1/windowDivisor of the
	// image width.
	windowDivisor = 8
	minWindow     = 1
	// bias is the percentage below the local mean a pixel must fall to be
	// black.
	bias = 5
)

// Threshold binarizes img with an adaptive local mean. Each row is scanned
// in both directions with exponential running averages whose state carries
// over from row to row, alternating the sweep direction on odd rows. A
// pixel is black when it is darker than bias percent under the sum of the
// two averages.
//
// Threshold never fails: empty and 1x1 images produce bitmaps of the same
// size.
func Threshold(img *image.Gray) *bitutil.BitMatrix {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := bitutil.NewBitMatrixWithSize(w, h)
	if w == 0 || h == 0 {
		return out
	}

	s := w / windowDivisor
	if s < minWindow {
		s = minWindow
	}
	rowAverage := make([]int, w)
	avgW, avgU := 0, 0
	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		clear(rowAverage)
		for x := 0; x < w; x++ {
			var fw, fu int
			if y&1 == 1 {
				fw, fu = x, w-1-x
			} else {
				fw, fu = w-1-x, x
			}
			avgW = avgW*(s-1)/s + int(row[fw])
			avgU = avgU*(s-1)/s + int(row[fu])
			rowAverage[fw] += avgW
			rowAverage[fu] += avgU
		}
		for x := 0; x < w; x++ {
			if int(row[x]) < rowAverage[x]*(100-bias)/(200*s) {
				out.Set(x, y)
			}
		}
	}
	return out
}
