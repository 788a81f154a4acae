package decoder

import "github.com/ericlevine/qrscan"

// Mode is a 4-bit segment mode indicator.
type Mode int

const (
	ModeTerminator         Mode = 0x00
	ModeNumeric            Mode = 0x01
	ModeAlphanumeric       Mode = 0x02
	ModeStructuredAppend   Mode = 0x03
	ModeByte               Mode = 0x04
	ModeFNC1FirstPosition  Mode = 0x05
	ModeECI                Mode = 0x07
	ModeKanji              Mode = 0x08
	ModeFNC1SecondPosition Mode = 0x09
)

// characterCountBits holds the count field width for versions 1-9, 10-26
// and 27-40.
var characterCountBits = map[Mode][3]int{
	ModeNumeric:      {10, 12, 14},
	ModeAlphanumeric: {9, 11, 13},
	ModeByte:         {8, 16, 16},
	ModeKanji:        {8, 10, 12},
}

// ModeForBits returns the mode for a 4-bit indicator. Reserved values
// report false.
func ModeForBits(bits int) (Mode, bool) {
	switch m := Mode(bits); m {
	case ModeTerminator, ModeNumeric, ModeAlphanumeric, ModeStructuredAppend,
		ModeByte, ModeFNC1FirstPosition, ModeECI, ModeKanji, ModeFNC1SecondPosition:
		return m, true
	}
	return 0, false
}

// CharacterCountBits returns the width of the character count field for
// this mode in the given version, or 0 for modes without a count.
func (m Mode) CharacterCountBits(version int) int {
	widths, ok := characterCountBits[m]
	if !ok {
		return 0
	}
	switch {
	case version <= 9:
		return widths[0]
	case version <= 26:
		return widths[1]
	default:
		return widths[2]
	}
}

// Name returns the public name of a data-bearing mode, or
// qrscan.ModeUnknown.
func (m Mode) Name() qrscan.Mode {
	switch m {
	case ModeNumeric:
		return qrscan.ModeNumeric
	case ModeAlphanumeric:
		return qrscan.ModeAlnum
	case ModeByte:
		return qrscan.ModeByte
	case ModeKanji:
		return qrscan.ModeKanji
	}
	return qrscan.ModeUnknown
}
