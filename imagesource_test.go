package qrscan

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	img.Set(1, 0, color.NRGBA{G: 0xFF, A: 0xFF})
	img.Set(2, 0, color.NRGBA{B: 0xFF, A: 0xFF})
	img.Set(3, 0, color.NRGBA{A: 0}) // transparent
	img.Set(0, 1, color.NRGBA{A: 0xFF})
	img.Set(1, 1, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	return img
}

func TestToGrayLuminance(t *testing.T) {
	g := ToGray(testImage())
	want := []byte{
		(306*255 + 0x200) >> 10,
		(601*255 + 0x200) >> 10,
		(117*255 + 0x200) >> 10,
		0xFF,
		0,
		0xFF,
	}
	got := []byte{g.GrayAt(0, 0).Y, g.GrayAt(1, 0).Y, g.GrayAt(2, 0).Y, g.GrayAt(3, 0).Y, g.GrayAt(0, 1).Y, g.GrayAt(1, 1).Y}
	if !bytes.Equal(got, want) {
		t.Errorf("luminance = %v, want %v", got, want)
	}
}

func TestToGrayOffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 6, 6))
	src.SetGray(3, 4, color.Gray{Y: 99})
	sub := src.SubImage(image.Rect(2, 3, 5, 6)).(*image.Gray)
	g := ToGray(sub)
	if g.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Fatalf("bounds = %v", g.Bounds())
	}
	if g.GrayAt(1, 1).Y != 99 {
		t.Errorf("pixel not shifted to the origin")
	}
	if ToGray(src) != src {
		t.Error("a gray image at the origin should be returned as is")
	}
}

func TestLoadImageFormats(t *testing.T) {
	img := testImage()
	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, img) },
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, img, &jpeg.Options{Quality: 100}) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, img) },
		"tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, img, nil) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encode(&buf); err != nil {
				t.Fatal(err)
			}
			g, err := LoadImage(buf.Bytes(), nil)
			if err != nil {
				t.Fatalf("LoadImage: %v", err)
			}
			if g.Bounds().Dx() != 4 || g.Bounds().Dy() != 2 {
				t.Errorf("bounds = %v", g.Bounds())
			}
		})
	}
}

func TestLoadImageErrors(t *testing.T) {
	for _, data := range [][]byte{nil, {}, []byte("GIF89a truncated")} {
		_, err := LoadImage(data, nil)
		if !errors.Is(err, ErrImageLoad) {
			t.Errorf("%q: err = %v, want ErrImageLoad", data, err)
		}
		if err != nil && err.Error() != "failed to load image" {
			t.Errorf("%q: message = %q", data, err.Error())
		}
		var le *LoadError
		if !errors.As(err, &le) || le.Unwrap() == nil {
			t.Errorf("%q: no underlying cause", data)
		}
	}
}

func TestFitMaxDimension(t *testing.T) {
	big := image.NewGray(image.Rect(0, 0, 400, 200))
	g := Fit(big, &Options{MaxDimension: 100})
	if g.Bounds().Dx() != 100 || g.Bounds().Dy() != 50 {
		t.Errorf("fitted bounds = %v", g.Bounds())
	}
	if g := Fit(big, &Options{MaxDimension: 1000}); g.Bounds().Dx() != 400 {
		t.Errorf("small image resized to %v", g.Bounds())
	}
	if g := Fit(big, nil); g != big {
		t.Error("nil options changed the image")
	}
}

// withHeaderSize rewrites the IHDR dimensions of an encoded PNG, leaving
// the pixel data as it is.
func withHeaderSize(data []byte, w, h uint32) []byte {
	out := bytes.Clone(data)
	binary.BigEndian.PutUint32(out[16:], w)
	binary.BigEndian.PutUint32(out[20:], h)
	binary.BigEndian.PutUint32(out[29:], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestLoadImagePixelLimit(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatal(err)
	}
	small := buf.Bytes()
	huge := withHeaderSize(small, 1<<16, 1<<16)

	tests := []struct {
		name string
		data []byte
		opts *Options
		ok   bool
	}{
		{"default limit", small, nil, true},
		{"huge header", huge, nil, false},
		{"huge header with explicit limit", huge, &Options{MaxPixels: 1 << 20}, false},
		{"under explicit limit", small, &Options{MaxPixels: 100}, true},
		{"over explicit limit", small, &Options{MaxPixels: 99}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadImage(tt.data, tt.opts)
			if tt.ok {
				if err != nil {
					t.Fatalf("LoadImage: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrImageLoad) || !errors.Is(err, errImageTooLarge) {
				t.Errorf("err = %v, want a too-large load error", err)
			}
		})
	}
}

func TestPixelLimit(t *testing.T) {
	tests := []struct {
		opts *Options
		want int
	}{
		{nil, DefaultMaxPixels},
		{&Options{}, DefaultMaxPixels},
		{&Options{MaxPixels: 500}, 500},
		{&Options{MaxPixels: -1}, 0},
	}
	for _, tt := range tests {
		if got := tt.opts.PixelLimit(); got != tt.want {
			t.Errorf("PixelLimit(%+v) = %d, want %d", tt.opts, got, tt.want)
		}
	}
}
