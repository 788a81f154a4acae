package bitutil

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBitSourceReadBits(t *testing.T) {
	bs := NewBitSource([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	tests := []struct {
		n    int
		want int
	}{
		{1, 0},
		{6, 0},
		{1, 1},
		{8, 2},
		{10, 12},
		{14, 1029},
	}
	for _, tt := range tests {
		got, err := bs.ReadBits(tt.n)
		if err != nil {
			t.Fatalf("ReadBits(%d): %v", tt.n, err)
		}
		if got != tt.want {
			t.Errorf("ReadBits(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
	if bs.Available() != 0 {
		t.Errorf("Available = %d, want 0", bs.Available())
	}
}

func TestBitSourceUnderflow(t *testing.T) {
	bs := NewBitSource([]byte{0xFF})
	if _, err := bs.ReadBits(5); err != nil {
		t.Fatal(err)
	}
	_, err := bs.ReadBits(4)
	var bse *BitSourceError
	if !errors.As(err, &bse) {
		t.Fatalf("expected BitSourceError, got %v", err)
	}
	if bse.Available != 3 {
		t.Errorf("Available = %d, want 3", bse.Available)
	}
	if bs.Offset() != 5 {
		t.Errorf("failed read consumed bits: offset %d", bs.Offset())
	}
}

// Reading any sequence of field widths must reproduce the bit string.
func TestBitSourceConcatenation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("fields concatenate back to the source bits", prop.ForAll(
		func(data []byte, widths []int) bool {
			bs := NewBitSource(data)
			pos := 0
			for _, w := range widths {
				if w > bs.Available() {
					break
				}
				v, err := bs.ReadBits(w)
				if err != nil {
					return false
				}
				for i := 0; i < w; i++ {
					bit := (v >> uint(w-1-i)) & 1
					want := int(data[(pos+i)/8]>>uint(7-(pos+i)%8)) & 1
					if bit != want {
						return false
					}
				}
				pos += w
			}
			return bs.Offset() == pos && bs.Available() == 8*len(data)-pos
		},
		gen.SliceOf(gen.UInt8()),
		gen.SliceOf(gen.IntRange(1, 32)),
	))

	properties.TestingRun(t)
}
