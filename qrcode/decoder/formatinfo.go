package decoder

import "math/bits"

// formatInfoMask is XORed onto the BCH-coded format field.
const formatInfoMask = 0x5412

// maxFormatDistance is the largest Hamming distance corrected.
const maxFormatDistance = 3

// FormatInformation is the decoded 5-bit format field.
type FormatInformation struct {
	ECLevel ECLevel
	Mask    int
}

// formatInfoDecodeLookup pairs each masked 15-bit codeword with its 5 data
// bits.
var formatInfoDecodeLookup = [32][2]int{
	{0x5412, 0x00}, {0x5125, 0x01}, {0x5E7C, 0x02}, {0x5B4B, 0x03},
	{0x45F9, 0x04}, {0x40CE, 0x05}, {0x4F97, 0x06}, {0x4AA0, 0x07},
	{0x77C4, 0x08}, {0x72F3, 0x09}, {0x7DAA, 0x0A}, {0x789D, 0x0B},
	{0x662F, 0x0C}, {0x6318, 0x0D}, {0x6C41, 0x0E}, {0x6976, 0x0F},
	{0x1689, 0x10}, {0x13BE, 0x11}, {0x1CE7, 0x12}, {0x19D0, 0x13},
	{0x0762, 0x14}, {0x0255, 0x15}, {0x0D0C, 0x16}, {0x083B, 0x17},
	{0x355F, 0x18}, {0x3068, 0x19}, {0x3F31, 0x1A}, {0x3A06, 0x1B},
	{0x24B4, 0x1C}, {0x2183, 0x1D}, {0x2EDA, 0x1E}, {0x2BED, 0x1F},
}

func newFormatInformation(data int) *FormatInformation {
	return &FormatInformation{
		ECLevel: ECLevelForBits(data >> 3),
		Mask:    data & 0x07,
	}
}

// Bits returns the masked 15-bit codeword for f as it appears in a symbol.
func (f *FormatInformation) Bits() int {
	return formatInfoDecodeLookup[f.ECLevel.Bits()<<3|f.Mask][0]
}

// DecodeFormatInformation matches two masked copies of the format field
// against every valid codeword and returns the closest, within Hamming
// distance 3 of either copy. Ties go to the lowest data value. It returns
// nil when neither copy is close enough.
func DecodeFormatInformation(copy1, copy2 int) *FormatInformation {
	bestDistance := maxFormatDistance + 1
	bestData := -1
	for _, entry := range formatInfoDecodeLookup {
		target, data := entry[0], entry[1]
		for _, c := range [2]int{copy1, copy2} {
			if d := bits.OnesCount(uint(c ^ target)); d < bestDistance {
				bestDistance = d
				bestData = data
			}
		}
		if bestDistance == 0 {
			break
		}
	}
	if bestData < 0 {
		return nil
	}
	return newFormatInformation(bestData)
}
