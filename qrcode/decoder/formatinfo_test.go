package decoder

import (
	"math/bits"
	"testing"
)

func TestDecodeFormatInformationExact(t *testing.T) {
	for level := ECLevelL; level <= ECLevelH; level++ {
		for mask := 0; mask < 8; mask++ {
			want := FormatInformation{ECLevel: level, Mask: mask}
			code := want.Bits()
			fi := DecodeFormatInformation(code, code)
			if fi == nil || *fi != want {
				t.Errorf("%v mask %d: got %+v", level, mask, fi)
			}
		}
	}
}

func TestDecodeFormatInformationCorrects(t *testing.T) {
	want := FormatInformation{ECLevel: ECLevelQ, Mask: 5}
	code := want.Bits()
	tests := []struct {
		name         string
		copy1, copy2 int
	}{
		{"first copy damaged", code ^ 0x7, 0},
		{"second copy damaged", 0x7FFF, code ^ 0x4009},
		{"both damaged", code ^ 0x0300, code ^ 0x000C},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fi := DecodeFormatInformation(tt.copy1, tt.copy2)
			if fi == nil || *fi != want {
				t.Errorf("got %+v, want %+v", fi, want)
			}
		})
	}
}

func TestDecodeFormatInformationLevelBits(t *testing.T) {
	// The masked codeword of level M, mask 0 is the mask itself.
	fi := DecodeFormatInformation(formatInfoMask, formatInfoMask)
	if fi == nil || fi.ECLevel != ECLevelM || fi.Mask != 0 {
		t.Errorf("got %+v, want M mask 0", fi)
	}
}

func TestDecodeFormatInformationRejects(t *testing.T) {
	far := -1
	for x := 0; x < 1<<15 && far < 0; x++ {
		nearest := 15
		for _, entry := range formatInfoDecodeLookup {
			if d := bits.OnesCount(uint(x ^ entry[0])); d < nearest {
				nearest = d
			}
		}
		if nearest > maxFormatDistance {
			far = x
		}
	}
	if far < 0 {
		t.Skip("every 15-bit value is within 3 of a format codeword")
	}
	if fi := DecodeFormatInformation(far, far); fi != nil {
		t.Errorf("DecodeFormatInformation(%#x) = %+v, want nil", far, fi)
	}
}

func TestECLevelForBits(t *testing.T) {
	for level := ECLevelL; level <= ECLevelH; level++ {
		if got := ECLevelForBits(level.Bits()); got != level {
			t.Errorf("ECLevelForBits(%d) = %v, want %v", level.Bits(), got, level)
		}
	}
	if ECLevelL.String() != "L" || ECLevelH.String() != "H" {
		t.Error("level names")
	}
}
