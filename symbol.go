// Package qrscan locates and decodes QR Code symbols in raster images.
//
// The decoding pipeline lives in package qrcode; this package holds the
// result types, options and errors shared by every stage.
package qrscan

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ericlevine/qrscan/charset"
)

// Supported symbol versions.
const (
	VersionMin = 1
	VersionMax = 40
)

// ECCLevel is the error correction level of a symbol.
type ECCLevel string

const (
	ECCLevelL ECCLevel = "L"
	ECCLevelM ECCLevel = "M"
	ECCLevelQ ECCLevel = "Q"
	ECCLevelH ECCLevel = "H"
)

// Mode is the encoding mode of a data segment.
type Mode string

const (
	ModeNumeric Mode = "NUMERIC"
	ModeAlnum   Mode = "ALNUM"
	ModeByte    Mode = "BYTE"
	ModeKanji   Mode = "KANJI"
	// ModeUnknown is reported for symbols that carry no data segment.
	ModeUnknown Mode = "unknown"

	ModeAlphanumeric = ModeAlnum
)

// FNC1Mode records whether a symbol carries an FNC1 indicator.
type FNC1Mode int

const (
	FNC1None FNC1Mode = iota
	// FNC1First marks GS1 formatted data.
	FNC1First
	// FNC1Second marks data formatted to an industry specification named by
	// Symbol.AppIndicator.
	FNC1Second
)

// Point is a location in image coordinates.
type Point struct {
	X, Y float64
}

// Distance returns the distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Segment is one run of data decoded in a single mode.
type Segment struct {
	Mode Mode
	// Count is the character count from the segment header. For KANJI it is
	// the number of double-byte characters.
	Count int
	// ECI is the designator in effect for the segment, 0 when none was set.
	ECI  int
	Data []byte
}

// StructuredAppend identifies a symbol's place in a multi-symbol sequence.
type StructuredAppend struct {
	Index  int
	Total  int
	Parity byte
}

// Symbol is the decode result for one located symbol. When Err is set only
// Corners is meaningful, and it is zero if the candidate could not be
// sampled at all.
type Symbol struct {
	Version  int
	ECCLevel ECCLevel
	Mask     int
	// Mode is the mode of the first data segment, or ModeUnknown.
	Mode Mode
	Data []byte
	Err  error

	Segments         []Segment
	ECI              int
	StructuredAppend *StructuredAppend
	FNC1             FNC1Mode
	AppIndicator     int

	// Corners are the image positions of grid corners (0,0), (size,0),
	// (size,size) and (0,size).
	Corners         [4]Point
	ErrorsCorrected int
	Mirrored        bool
}

// Text projects the payload to UTF-8. BYTE segments are read in the
// character set named by their ECI designator; without one they are kept
// when valid UTF-8 and guessed otherwise. KANJI segments are Shift_JIS.
func (s *Symbol) Text() string {
	var b strings.Builder
	for _, seg := range s.Segments {
		switch seg.Mode {
		case ModeKanji:
			b.WriteString(charset.ECISJIS.Decode(seg.Data))
		case ModeByte:
			b.WriteString(byteText(seg))
		default:
			b.Write(seg.Data)
		}
	}
	return b.String()
}

func byteText(seg Segment) string {
	if seg.ECI != 0 {
		if eci, err := charset.GetECIByValue(seg.ECI); err == nil && eci != nil {
			return eci.Decode(seg.Data)
		}
	}
	if utf8.Valid(seg.Data) {
		return string(seg.Data)
	}
	return charset.GuessEncoding(seg.Data).Decode(seg.Data)
}
