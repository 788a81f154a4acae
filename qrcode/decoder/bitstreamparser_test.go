package decoder

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ericlevine/qrscan"
)

// bitWriter assembles test streams MSB first.
type bitWriter struct {
	buf  []byte
	nbit int
}

func (w *bitWriter) write(v, n int) *bitWriter {
	for i := n - 1; i >= 0; i-- {
		if w.nbit%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.buf[len(w.buf)-1] |= 0x80 >> uint(w.nbit%8)
		}
		w.nbit++
	}
	return w
}

func (w *bitWriter) bytes() []byte { return w.buf }

func TestDecodeBitStreamSegments(t *testing.T) {
	tests := []struct {
		name    string
		version int
		stream  *bitWriter
		mode    qrscan.Mode
		want    []byte
	}{
		{
			name:    "numeric",
			version: 1,
			stream:  new(bitWriter).write(1, 4).write(8, 10).write(12, 10).write(345, 10).write(67, 7).write(0, 4),
			mode:    qrscan.ModeNumeric,
			want:    []byte("01234567"),
		},
		{
			name:    "numeric single trailing digit",
			version: 1,
			stream:  new(bitWriter).write(1, 4).write(4, 10).write(420, 10).write(7, 4),
			mode:    qrscan.ModeNumeric,
			want:    []byte("4207"),
		},
		{
			name:    "alphanumeric",
			version: 1,
			stream:  new(bitWriter).write(2, 4).write(5, 9).write(10*45+12, 11).write(41*45+4, 11).write(2, 6),
			mode:    qrscan.ModeAlnum,
			want:    []byte("AC-42"),
		},
		{
			name:    "byte",
			version: 1,
			stream:  new(bitWriter).write(4, 4).write(2, 8).write('h', 8).write('i', 8).write(0, 4),
			mode:    qrscan.ModeByte,
			want:    []byte("hi"),
		},
		{
			name:    "byte with 16-bit count",
			version: 10,
			stream:  new(bitWriter).write(4, 4).write(1, 16).write('x', 8),
			mode:    qrscan.ModeByte,
			want:    []byte("x"),
		},
		{
			name:    "kanji",
			version: 1,
			stream:  new(bitWriter).write(8, 4).write(2, 8).write(3487, 13).write(6826, 13),
			mode:    qrscan.ModeKanji,
			want:    []byte{0x93, 0x5F, 0xE4, 0xAA},
		},
		{
			name:    "mixed reports first segment",
			version: 1,
			stream:  new(bitWriter).write(1, 4).write(1, 10).write(9, 4).write(4, 4).write(1, 8).write('!', 8),
			mode:    qrscan.ModeNumeric,
			want:    []byte("9!"),
		},
		{
			name:    "terminator only",
			version: 1,
			stream:  new(bitWriter).write(0, 4).write(0xEC, 8),
			mode:    qrscan.ModeUnknown,
			want:    []byte{},
		},
		{
			name:    "stops with fewer than four bits left",
			version: 1,
			stream:  new(bitWriter).write(1, 4).write(2, 10).write(42, 7).write(0x7, 3),
			mode:    qrscan.ModeNumeric,
			want:    []byte("42"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DecodeBitStream(tt.stream.bytes(), tt.version)
			if err != nil {
				t.Fatalf("DecodeBitStream: %v", err)
			}
			if result.Mode != tt.mode {
				t.Errorf("mode = %v, want %v", result.Mode, tt.mode)
			}
			if !bytes.Equal(result.Data, tt.want) {
				t.Errorf("data = %q, want %q", result.Data, tt.want)
			}
		})
	}
}

func TestDecodeBitStreamHeaders(t *testing.T) {
	stream := new(bitWriter).
		write(3, 4).write(2, 4).write(3, 4).write(0xA5, 8). // structured append 3 of 4
		write(7, 4).write(26, 8).                           // ECI UTF-8
		write(4, 4).write(2, 8).write(0xC3, 8).write(0xA9, 8).
		write(0, 4)
	result, err := DecodeBitStream(stream.bytes(), 1)
	if err != nil {
		t.Fatalf("DecodeBitStream: %v", err)
	}
	sa := result.StructuredAppend
	if sa == nil || sa.Index != 2 || sa.Total != 4 || sa.Parity != 0xA5 {
		t.Errorf("structured append = %+v", sa)
	}
	if result.ECI != 26 || len(result.Segments) != 1 || result.Segments[0].ECI != 26 {
		t.Errorf("ECI = %d, segments = %+v", result.ECI, result.Segments)
	}
	sym := result.Symbol([4]qrscan.Point{})
	if got := sym.Text(); got != "é" {
		t.Errorf("Text() = %q, want %q", got, "é")
	}
}

func TestDecodeBitStreamECIWidths(t *testing.T) {
	tests := []struct {
		name   string
		stream *bitWriter
		want   int
	}{
		{"one byte", new(bitWriter).write(7, 4).write(0x1A, 8), 26},
		{"two bytes", new(bitWriter).write(7, 4).write(0x80|0x01, 8).write(0x02, 8), 0x0102},
		{"three bytes", new(bitWriter).write(7, 4).write(0xC0|0x01, 8).write(0x0203, 16), 0x010203},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DecodeBitStream(tt.stream.bytes(), 1)
			if err != nil {
				t.Fatalf("DecodeBitStream: %v", err)
			}
			if result.ECI != tt.want {
				t.Errorf("ECI = %#x, want %#x", result.ECI, tt.want)
			}
		})
	}
}

func TestDecodeBitStreamFNC1(t *testing.T) {
	// "A%B%%" under FNC1 first position: lone % is a group separator.
	stream := new(bitWriter).write(5, 4).
		write(2, 4).write(5, 9).
		write(10*45+38, 11).write(11*45+38, 11).write(38, 6).
		write(0, 4)
	result, err := DecodeBitStream(stream.bytes(), 1)
	if err != nil {
		t.Fatalf("DecodeBitStream: %v", err)
	}
	if result.FNC1 != qrscan.FNC1First {
		t.Errorf("FNC1 = %v", result.FNC1)
	}
	if want := []byte{'A', 0x1D, 'B', '%'}; !bytes.Equal(result.Data, want) {
		t.Errorf("data = %q, want %q", result.Data, want)
	}

	second := new(bitWriter).write(9, 4).write(37, 8).write(0, 4)
	result, err = DecodeBitStream(second.bytes(), 1)
	if err != nil {
		t.Fatalf("DecodeBitStream: %v", err)
	}
	if result.FNC1 != qrscan.FNC1Second || result.AppIndicator != 37 {
		t.Errorf("FNC1 = %v, indicator = %d", result.FNC1, result.AppIndicator)
	}
}

func TestDecodeBitStreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		stream *bitWriter
		want   error
	}{
		{"reserved mode", new(bitWriter).write(6, 4).write(0, 12), errUnknownDataType},
		{"hanzi is reserved", new(bitWriter).write(0xD, 4).write(0, 12), errUnknownDataType},
		{"numeric group too large", new(bitWriter).write(1, 4).write(3, 10).write(1000, 10), errInvalidNumeric},
		{"numeric pair too large", new(bitWriter).write(1, 4).write(2, 10).write(100, 7), errInvalidNumeric},
		{"alphanumeric out of range", new(bitWriter).write(2, 4).write(1, 9).write(45, 6), errInvalidAlnum},
		{"byte count exceeds stream", new(bitWriter).write(4, 4).write(9, 8).write('a', 8), errDataUnderflow},
		{"kanji count exceeds stream", new(bitWriter).write(8, 4).write(3, 8).write(1, 13), errDataUnderflow},
		{"truncated count", new(bitWriter).write(1, 4).write(1, 3), errDataUnderflow},
		{"truncated structured append", new(bitWriter).write(3, 4).write(0, 8), errDataUnderflow},
		{"invalid ECI designator", new(bitWriter).write(7, 4).write(0xE0, 8).write(0, 16), errInvalidECI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBitStream(tt.stream.bytes(), 1)
			if err != tt.want {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, qrscan.ErrData) {
				t.Error("segment errors must match ErrData")
			}
		})
	}
}
