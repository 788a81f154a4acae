// Package decoder reads the format, version and data content of a sampled
// QR Code module grid.
package decoder

import "github.com/ericlevine/qrscan"

// ECLevel is an error correction level, ordered L, M, Q, H.
type ECLevel int

const (
	ECLevelL ECLevel = iota // ~7% correction
	ECLevelM                // ~15% correction
	ECLevelQ                // ~25% correction
	ECLevelH                // ~30% correction
)

// formatBits is the 2-bit format field value, indexed by level.
var formatBits = [4]int{ECLevelL: 0x01, ECLevelM: 0x00, ECLevelQ: 0x03, ECLevelH: 0x02}

// Bits returns the 2-bit encoding of this level in the format field.
func (l ECLevel) Bits() int {
	return formatBits[l]
}

// Level returns the public name of the level.
func (l ECLevel) Level() qrscan.ECCLevel {
	switch l {
	case ECLevelL:
		return qrscan.ECCLevelL
	case ECLevelM:
		return qrscan.ECCLevelM
	case ECLevelQ:
		return qrscan.ECCLevelQ
	default:
		return qrscan.ECCLevelH
	}
}

func (l ECLevel) String() string {
	return string(l.Level())
}

// ECLevelForBits returns the level encoded by a 2-bit format field.
func ECLevelForBits(bits int) ECLevel {
	// Field values 0..3 are M, L, H, Q.
	return [4]ECLevel{ECLevelM, ECLevelL, ECLevelH, ECLevelQ}[bits&0x03]
}
