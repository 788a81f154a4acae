package qrscan

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	errEmptyImage    = errors.New("empty image data")
	errImageTooLarge = errors.New("image too large")
)

// LoadImage decodes an encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP)
// into a grayscale pixel grid. Images whose header declares more pixels
// than opts allows are rejected before decoding. Any failure is a
// *LoadError.
func LoadImage(data []byte, opts *Options) (*image.Gray, error) {
	if len(data) == 0 {
		return nil, &LoadError{Err: errEmptyImage}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	if limit := opts.PixelLimit(); limit > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(limit) {
		return nil, &LoadError{Err: fmt.Errorf("%w: %dx%d exceeds %d pixels", errImageTooLarge, cfg.Width, cfg.Height, limit)}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return Fit(img, opts), nil
}

// Fit converts img to gray, first downsizing it when it exceeds
// opts.MaxDimension.
func Fit(img image.Image, opts *Options) *image.Gray {
	if opts != nil && opts.MaxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > opts.MaxDimension || b.Dy() > opts.MaxDimension {
			img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Box)
		}
	}
	return ToGray(img)
}

// ToGray converts img to 8-bit luminance using
// (306*R + 601*G + 117*B + 0x200) >> 10 on 8-bit components. Fully
// transparent pixels become white. A *image.Gray at the origin is
// returned as is.
func ToGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	if g, ok := img.(*image.Gray); ok && bounds.Min == (image.Point{}) {
		return g
	}
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+w], g.Pix[g.PixOffset(bounds.Min.X, bounds.Min.Y+y):])
		}
		return out
	}
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a == 0 {
				row[x] = 0xFF
				continue
			}
			r8, g8, b8 := r>>8, g>>8, b>>8
			row[x] = byte((306*r8 + 601*g8 + 117*b8 + 0x200) >> 10)
		}
	}
	return out
}
