package decoder

import (
	"fmt"
	"image"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/bitutil"
)

func bit(bits *bitutil.BitMatrix, x, y, acc int) int {
	acc <<= 1
	if bits.Get(x, y) {
		acc |= 1
	}
	return acc
}

// ReadFormatInformation reads both copies of the format field and decodes
// the closer one.
func ReadFormatInformation(bits *bitutil.BitMatrix) (*FormatInformation, error) {
	size := bits.Height()

	// Around the top-left finder: along row 8, then up column 8.
	copy1 := 0
	for x := 0; x < 6; x++ {
		copy1 = bit(bits, x, 8, copy1)
	}
	copy1 = bit(bits, 7, 8, copy1)
	copy1 = bit(bits, 8, 8, copy1)
	copy1 = bit(bits, 8, 7, copy1)
	for y := 5; y >= 0; y-- {
		copy1 = bit(bits, 8, y, copy1)
	}

	// Split between the bottom-left and top-right finders.
	copy2 := 0
	for y := size - 1; y >= size-7; y-- {
		copy2 = bit(bits, 8, y, copy2)
	}
	for x := size - 8; x < size; x++ {
		copy2 = bit(bits, x, 8, copy2)
	}

	fi := DecodeFormatInformation(copy1, copy2)
	if fi == nil {
		return nil, qrscan.ErrFormat
	}
	return fi, nil
}

// ReadVersion decodes the two 18-bit version fields of a grid of at least
// version 7. It returns the closer match, preferring the top-right copy on
// ties, and false when neither copy is within correction distance.
func ReadVersion(bits *bitutil.BitMatrix) (int, bool) {
	size := bits.Height()
	if size < 45 {
		return 0, false
	}

	// Top right: 3 wide by 6 tall.
	topRight := 0
	for y := 5; y >= 0; y-- {
		for x := size - 9; x >= size-11; x-- {
			topRight = bit(bits, x, y, topRight)
		}
	}
	// Bottom left: 6 wide by 3 tall.
	bottomLeft := 0
	for x := 5; x >= 0; x-- {
		for y := size - 9; y >= size-11; y-- {
			bottomLeft = bit(bits, x, y, bottomLeft)
		}
	}

	n1, d1 := DecodeVersionInformation(topRight)
	n2, d2 := DecodeVersionInformation(bottomLeft)
	switch {
	case n1 != 0 && (n2 == 0 || d1 <= d2):
		return n1, true
	case n2 != 0:
		return n2, true
	}
	return 0, false
}

// dataModules lists the codeword modules of a version in reading order:
// two-column strips from the right edge, alternating upward and downward,
// skipping the vertical timing column and all function modules.
func dataModules(v *Version) []image.Point {
	functionPattern := v.BuildFunctionPattern()
	size := v.Size()
	modules := make([]image.Point, 0, 8*v.TotalCodewords+7)
	readingUp := true
	for right := size - 1; right > 0; right -= 2 {
		if right == 6 {
			right--
		}
		for count := 0; count < size; count++ {
			y := count
			if readingUp {
				y = size - 1 - count
			}
			for col := 0; col < 2; col++ {
				x := right - col
				if !functionPattern.Get(x, y) {
					modules = append(modules, image.Pt(x, y))
				}
			}
		}
		readingUp = !readingUp
	}
	return modules
}

// ReadCodewords unmasks the grid and reads its codewords in placement
// order. A codeword containing any unknown module is listed in erasures.
// Trailing remainder bits are ignored. bits is not modified.
func ReadCodewords(bits, unknown *bitutil.BitMatrix, v *Version, fi *FormatInformation) (codewords []byte, erasures []int, err error) {
	if bits.Height() != v.Size() {
		return nil, nil, fmt.Errorf("qrcode/decoder: grid size %d for version %d", bits.Height(), v.Number)
	}
	modules := dataModules(v)
	if len(modules) < 8*v.TotalCodewords {
		return nil, nil, errDataUnderflow
	}

	codewords = make([]byte, v.TotalCodewords)
	for i := range codewords {
		var cw byte
		erased := false
		for _, m := range modules[8*i : 8*i+8] {
			cw <<= 1
			if bits.Get(m.X, m.Y) != DataMask(fi.Mask, m.Y, m.X) {
				cw |= 1
			}
			if unknown != nil && unknown.Get(m.X, m.Y) {
				erased = true
			}
		}
		codewords[i] = cw
		if erased {
			erasures = append(erasures, i)
		}
	}
	return codewords, erasures, nil
}
