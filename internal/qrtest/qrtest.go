// Package qrtest renders reference QR Code symbols for tests.
package qrtest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/kortschak/qr/coding"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/bitutil"
)

var levels = map[qrscan.ECCLevel]coding.Level{
	qrscan.ECCLevelL: coding.L,
	qrscan.ECCLevelM: coding.M,
	qrscan.ECCLevelQ: coding.Q,
	qrscan.ECCLevelH: coding.H,
}

// Levels lists the error correction levels in L, M, Q, H order.
var Levels = []qrscan.ECCLevel{qrscan.ECCLevelL, qrscan.ECCLevelM, qrscan.ECCLevelQ, qrscan.ECCLevelH}

// Num, Alpha and Byte build segments for Encode.
func Num(s string) coding.Encoding   { return coding.Num(s) }
func Alpha(s string) coding.Encoding { return coding.Alpha(s) }
func Byte(s string) coding.Encoding  { return coding.String(s) }

// Kanji is a KANJI segment given as Shift_JIS double-byte characters.
type Kanji []byte

// Check implements coding.Encoding.
func (k Kanji) Check() error {
	if len(k)%2 != 0 {
		return fmt.Errorf("qrtest: odd kanji length %d", len(k))
	}
	for i := 0; i < len(k); i += 2 {
		c := int(k[i])<<8 | int(k[i+1])
		if !(c >= 0x8140 && c <= 0x9FFC) && !(c >= 0xE040 && c <= 0xEBBF) {
			return fmt.Errorf("qrtest: %#04x is not a kanji character", c)
		}
	}
	return nil
}

func kanjiCountBits(v coding.Version) int {
	switch {
	case v <= 9:
		return 8
	case v <= 26:
		return 10
	default:
		return 12
	}
}

// Bits implements coding.Encoding.
func (k Kanji) Bits(v coding.Version) int {
	return 4 + kanjiCountBits(v) + 13*len(k)/2
}

// Encode implements coding.Encoding.
func (k Kanji) Encode(b *coding.Bits, v coding.Version) {
	b.Write(8, 4)
	b.Write(uint(len(k)/2), kanjiCountBits(v))
	for i := 0; i < len(k); i += 2 {
		c := int(k[i])<<8 | int(k[i+1])
		if c <= 0x9FFC {
			c -= 0x8140
		} else {
			c -= 0xC140
		}
		b.Write(uint((c>>8)*0xC0+c&0xFF), 13)
	}
}

// Encode builds a symbol with an explicit version, level and mask.
func Encode(version int, level qrscan.ECCLevel, mask int, segments ...coding.Encoding) (*coding.Code, error) {
	plan, err := coding.NewPlan(coding.Version(version), levels[level], coding.Mask(mask))
	if err != nil {
		return nil, err
	}
	return plan.Encode(segments...)
}

// Matrix returns the modules of c, dark modules set.
func Matrix(c *coding.Code) *bitutil.BitMatrix {
	bm := bitutil.NewBitMatrix(c.Size)
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) {
				bm.Set(x, y)
			}
		}
	}
	return bm
}

// Render draws c with scale pixels per module inside a quiet zone of
// quiet modules.
func Render(c *coding.Code, scale, quiet int) *image.Gray {
	return RenderMatrix(Matrix(c), scale, quiet)
}

// RenderMatrix draws a module matrix, dark modules set, like Render.
func RenderMatrix(m *bitutil.BitMatrix, scale, quiet int) *image.Gray {
	side := (m.Width() + 2*quiet) * scale
	img := Canvas(side, side)
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if !m.Get(x, y) {
				continue
			}
			r := image.Rect(x+quiet, y+quiet, x+quiet+1, y+quiet+1)
			draw.Draw(img, image.Rect(r.Min.X*scale, r.Min.Y*scale, r.Max.X*scale, r.Max.Y*scale), image.Black, image.Point{}, draw.Src)
		}
	}
	return img
}

// Canvas returns a white image of the given size.
func Canvas(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

// Paste draws src onto dst with its top-left corner at at.
func Paste(dst draw.Image, src image.Image, at image.Point) {
	draw.Draw(dst, src.Bounds().Sub(src.Bounds().Min).Add(at), src, src.Bounds().Min, draw.Src)
}

// Rotate rotates img counter-clockwise by angle degrees on a white
// background.
func Rotate(img image.Image, angle float64) image.Image {
	return imaging.Rotate(img, angle, color.White)
}

// PNG encodes img.
func PNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Mirror flips img horizontally.
func Mirror(img image.Image) image.Image {
	return imaging.FlipH(img)
}
