package decoder

import (
	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/bitutil"
	"github.com/ericlevine/qrscan/internal"
)

const alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// groupSeparator replaces a lone '%' in alphanumeric data under FNC1.
const groupSeparator = 0x1D

// DecodeBitStream parses corrected data codewords into segments. Parsing
// continues while at least four bits remain and stops at a terminator.
func DecodeBitStream(data []byte, version int) (*internal.DecoderResult, error) {
	bs := bitutil.NewBitSource(data)
	result := internal.NewDecoderResult()
	eci := 0
	fnc1 := false

	for bs.Available() >= 4 {
		modeBits, _ := bs.ReadBits(4)
		mode, ok := ModeForBits(modeBits)
		if !ok {
			return nil, errUnknownDataType
		}

		switch mode {
		case ModeTerminator:
			return result, nil
		case ModeFNC1FirstPosition:
			result.FNC1 = qrscan.FNC1First
			fnc1 = true
		case ModeFNC1SecondPosition:
			indicator, err := bs.ReadBits(8)
			if err != nil {
				return nil, errDataUnderflow
			}
			result.FNC1 = qrscan.FNC1Second
			result.AppIndicator = indicator
			fnc1 = true
		case ModeStructuredAppend:
			if bs.Available() < 16 {
				return nil, errDataUnderflow
			}
			index, _ := bs.ReadBits(4)
			total, _ := bs.ReadBits(4)
			parity, _ := bs.ReadBits(8)
			result.StructuredAppend = &qrscan.StructuredAppend{Index: index, Total: total + 1, Parity: byte(parity)}
		case ModeECI:
			value, err := parseECIValue(bs)
			if err != nil {
				return nil, err
			}
			if result.ECI == 0 {
				result.ECI = value
			}
			eci = value
		default:
			count, err := bs.ReadBits(mode.CharacterCountBits(version))
			if err != nil {
				return nil, errDataUnderflow
			}
			var payload []byte
			switch mode {
			case ModeNumeric:
				payload, err = decodeNumericSegment(bs, count)
			case ModeAlphanumeric:
				payload, err = decodeAlphanumericSegment(bs, count, fnc1)
			case ModeByte:
				payload, err = decodeByteSegment(bs, count)
			case ModeKanji:
				payload, err = decodeKanjiSegment(bs, count)
			}
			if err != nil {
				return nil, err
			}
			result.AddSegment(qrscan.Segment{Mode: mode.Name(), Count: count, ECI: eci, Data: payload})
		}
	}
	return result, nil
}

func decodeNumericSegment(bs *bitutil.BitSource, count int) ([]byte, error) {
	out := make([]byte, 0, count)
	for count > 0 {
		digits, width, limit := 3, 10, 1000
		switch count {
		case 2:
			digits, width, limit = 2, 7, 100
		case 1:
			digits, width, limit = 1, 4, 10
		}
		if bs.Available() < width {
			return nil, errDataUnderflow
		}
		value, _ := bs.ReadBits(width)
		if value >= limit {
			return nil, errInvalidNumeric
		}
		var group [3]byte
		for i := digits - 1; i >= 0; i-- {
			group[i] = byte('0' + value%10)
			value /= 10
		}
		out = append(out, group[:digits]...)
		count -= digits
	}
	return out, nil
}

func toAlphaNumericChar(value int) (byte, error) {
	if value >= len(alphanumericChars) {
		return 0, errInvalidAlnum
	}
	return alphanumericChars[value], nil
}

func decodeAlphanumericSegment(bs *bitutil.BitSource, count int, fnc1 bool) ([]byte, error) {
	out := make([]byte, 0, count)
	for count > 1 {
		if bs.Available() < 11 {
			return nil, errDataUnderflow
		}
		pair, _ := bs.ReadBits(11)
		c1, err := toAlphaNumericChar(pair / 45)
		if err != nil {
			return nil, err
		}
		c2, err := toAlphaNumericChar(pair % 45)
		if err != nil {
			return nil, err
		}
		out = append(out, c1, c2)
		count -= 2
	}
	if count == 1 {
		if bs.Available() < 6 {
			return nil, errDataUnderflow
		}
		value, _ := bs.ReadBits(6)
		c, err := toAlphaNumericChar(value)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if fnc1 {
		out = expandFNC1(out)
	}
	return out, nil
}

// expandFNC1 turns "%%" into '%' and a lone '%' into a group separator.
func expandFNC1(in []byte) []byte {
	out := in[:0]
	for i := 0; i < len(in); i++ {
		switch {
		case in[i] != '%':
			out = append(out, in[i])
		case i+1 < len(in) && in[i+1] == '%':
			out = append(out, '%')
			i++
		default:
			out = append(out, groupSeparator)
		}
	}
	return out
}

func decodeByteSegment(bs *bitutil.BitSource, count int) ([]byte, error) {
	if 8*count > bs.Available() {
		return nil, errDataUnderflow
	}
	out := make([]byte, count)
	for i := range out {
		v, _ := bs.ReadBits(8)
		out[i] = byte(v)
	}
	return out, nil
}

// decodeKanjiSegment expands 13-bit values into Shift_JIS byte pairs.
func decodeKanjiSegment(bs *bitutil.BitSource, count int) ([]byte, error) {
	if 13*count > bs.Available() {
		return nil, errDataUnderflow
	}
	out := make([]byte, 0, 2*count)
	for i := 0; i < count; i++ {
		v, _ := bs.ReadBits(13)
		sjis := (v/0xC0)<<8 | v%0xC0
		if sjis+0x8140 <= 0x9FFC {
			sjis += 0x8140
		} else {
			sjis += 0xC140
		}
		out = append(out, byte(sjis>>8), byte(sjis))
	}
	return out, nil
}

// parseECIValue reads a 1, 2 or 3 byte ECI designator.
func parseECIValue(bs *bitutil.BitSource) (int, error) {
	first, err := bs.ReadBits(8)
	if err != nil {
		return 0, errDataUnderflow
	}
	switch {
	case first&0x80 == 0:
		return first & 0x7F, nil
	case first&0xC0 == 0x80:
		second, err := bs.ReadBits(8)
		if err != nil {
			return 0, errDataUnderflow
		}
		return (first&0x3F)<<8 | second, nil
	case first&0xE0 == 0xC0:
		rest, err := bs.ReadBits(16)
		if err != nil {
			return 0, errDataUnderflow
		}
		return (first&0x1F)<<16 | rest, nil
	}
	return 0, errInvalidECI
}
