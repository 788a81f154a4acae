package charset

import "golang.org/x/text/encoding/unicode"

// utf16BOM decodes UTF-16 text that starts with a byte order mark.
var utf16BOM = &ECI{Value: -1, Name: "UTF-16", GoName: "UTF-16", enc: unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)}

type utf8Guess struct {
	ok        bool
	pending   int
	multibyte int
}

func (g *utf8Guess) feed(b byte) {
	switch {
	case g.pending > 0:
		if b&0xC0 != 0x80 {
			g.ok = false
			return
		}
		g.pending--
	case b&0x80 == 0:
	case b&0xE0 == 0xC0:
		g.pending, g.multibyte = 1, g.multibyte+1
	case b&0xF0 == 0xE0:
		g.pending, g.multibyte = 2, g.multibyte+1
	case b&0xF8 == 0xF0:
		g.pending, g.multibyte = 3, g.multibyte+1
	default:
		g.ok = false
	}
}

type latin1Guess struct {
	ok        bool
	highOther int
}

func (g *latin1Guess) feed(b byte) {
	switch {
	case b > 0x7F && b < 0xA0:
		g.ok = false
	case b > 0x9F && (b < 0xC0 || b == 0xD7 || b == 0xF7):
		g.highOther++
	}
}

type sjisGuess struct {
	ok      bool
	pending int
	// katakana counts single-byte half-width katakana.
	katakana            int
	kanaRun, maxKanaRun int
	wideRun, maxWideRun int
}

func (g *sjisGuess) feed(b byte) {
	switch {
	case g.pending > 0:
		if b < 0x40 || b == 0x7F || b > 0xFC {
			g.ok = false
			return
		}
		g.pending--
	case b == 0x80 || b == 0xA0 || b > 0xEF:
		g.ok = false
	case b > 0xA0 && b < 0xE0:
		g.katakana++
		g.wideRun = 0
		g.kanaRun++
		g.maxKanaRun = max(g.maxKanaRun, g.kanaRun)
	case b > 0x7F:
		g.pending++
		g.kanaRun = 0
		g.wideRun++
		g.maxWideRun = max(g.maxWideRun, g.wideRun)
	default:
		g.kanaRun, g.wideRun = 0, 0
	}
}

// GuessEncoding picks the most plausible character set for a payload
// that carries no ECI designator. The candidates are UTF-8, Shift_JIS and
// ISO-8859-1; UTF-16 is chosen only when a byte order mark is present.
func GuessEncoding(data []byte) *ECI {
	if len(data) > 2 && (data[0] == 0xFE && data[1] == 0xFF || data[0] == 0xFF && data[1] == 0xFE) {
		return utf16BOM
	}

	u := utf8Guess{ok: true}
	l := latin1Guess{ok: true}
	s := sjisGuess{ok: true}
	for _, b := range data {
		if !u.ok && !l.ok && !s.ok {
			break
		}
		if u.ok {
			u.feed(b)
		}
		if l.ok {
			l.feed(b)
		}
		if s.ok {
			s.feed(b)
		}
	}
	u.ok = u.ok && u.pending == 0
	s.ok = s.ok && s.pending == 0

	bom := len(data) > 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF
	switch {
	case u.ok && (bom || u.multibyte > 0):
		return ECIUTF8
	case s.ok && (s.maxKanaRun >= 3 || s.maxWideRun >= 3):
		return ECISJIS
	case l.ok && s.ok:
		if s.maxKanaRun == 2 && s.katakana == 2 || l.highOther*10 >= len(data) {
			return ECISJIS
		}
		return ECIISO8859_1
	case l.ok:
		return ECIISO8859_1
	case s.ok:
		return ECISJIS
	}
	return ECIUTF8
}
