package transform

import "github.com/ericlevine/qrscan/bitutil"

// cellOffsets are the sub-sample positions inside a module.
var cellOffsets = [3]float64{0.3, 0.5, 0.7}

// Vote samples the 3x3 sub-grid of module (x, y) and returns the number of
// black samples minus the number of white ones, and how many samples fell
// inside the image.
func Vote(image *bitutil.BitMatrix, t *Perspective, x, y int) (score, inside int) {
	for _, dv := range cellOffsets {
		for _, du := range cellOffsets {
			px, py, ok := t.Pixel(float64(x)+du, float64(y)+dv)
			if !ok || px < 0 || py < 0 || px >= image.Width() || py >= image.Height() {
				continue
			}
			inside++
			if image.Get(px, py) {
				score++
			} else {
				score--
			}
		}
	}
	return score, inside
}

// ReadCell samples the centre of module (x, y): 1 for black, -1 for
// white, 0 when it maps outside the image.
func ReadCell(image *bitutil.BitMatrix, t *Perspective, x, y int) int {
	px, py, ok := t.Pixel(float64(x)+0.5, float64(y)+0.5)
	if !ok || px < 0 || py < 0 || px >= image.Width() || py >= image.Height() {
		return 0
	}
	if image.Get(px, py) {
		return 1
	}
	return -1
}

// SampleGrid reads a size x size module grid through t. Each module takes
// the majority of its sub-samples, with ties going to the centre sample.
// Modules with no sample inside the image are set in unknown.
func SampleGrid(image *bitutil.BitMatrix, size int, t *Perspective) (bits, unknown *bitutil.BitMatrix) {
	bits = bitutil.NewBitMatrix(size)
	unknown = bitutil.NewBitMatrix(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			score, inside := Vote(image, t, x, y)
			switch {
			case inside == 0:
				unknown.Set(x, y)
			case score > 0:
				bits.Set(x, y)
			case score == 0 && ReadCell(image, t, x, y) > 0:
				bits.Set(x, y)
			}
		}
	}
	return bits, unknown
}
