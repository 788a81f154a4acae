package bitutil

import "fmt"

// BitSource reads big-endian bit fields from a byte slice. Bits are taken
// from the first byte first, most-significant bit first.
type BitSource struct {
	bytes []byte
	pos   int // next bit to read
}

// NewBitSource creates a new BitSource over bytes. The slice is not copied.
func NewBitSource(bytes []byte) *BitSource {
	return &BitSource{bytes: bytes}
}

// Offset returns the number of bits consumed so far.
func (bs *BitSource) Offset() int {
	return bs.pos
}

// ReadBits reads numBits bits (1 to 32) and returns them as the low bits
// of an int. Asking for more bits than remain is an error and consumes nothing.
func (bs *BitSource) ReadBits(numBits int) (int, error) {
	if numBits < 1 || numBits > 32 || numBits > bs.Available() {
		return 0, &BitSourceError{NumBits: numBits, Available: bs.Available()}
	}
	result := 0
	for numBits > 0 {
		byteIndex := bs.pos >> 3
		bitIndex := bs.pos & 7
		take := 8 - bitIndex
		if take > numBits {
			take = numBits
		}
		chunk := int(bs.bytes[byteIndex]>>uint(8-bitIndex-take)) & (1<<uint(take) - 1)
		result = result<<uint(take) | chunk
		bs.pos += take
		numBits -= take
	}
	return result, nil
}

// Available returns the number of bits that can still be read.
func (bs *BitSource) Available() int {
	return 8*len(bs.bytes) - bs.pos
}

// BitSourceError is returned when an invalid number of bits is requested.
type BitSourceError struct {
	NumBits   int
	Available int
}

func (e *BitSourceError) Error() string {
	return fmt.Sprintf("bitsource: cannot read %d bits, %d available", e.NumBits, e.Available)
}
