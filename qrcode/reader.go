// Package qrcode locates and decodes every QR code symbol in an image.
package qrcode

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/binarizer"
	"github.com/ericlevine/qrscan/internal"
	"github.com/ericlevine/qrscan/qrcode/decoder"
	"github.com/ericlevine/qrscan/qrcode/detector"
)

// Reader decodes QR codes. It keeps no per-call state and may be used from
// several goroutines.
type Reader struct {
	dec  *decoder.Decoder
	opts *qrscan.Options
	log  *slog.Logger
}

// NewReader creates a Reader. opts may be nil.
func NewReader(opts *qrscan.Options) *Reader {
	dec := decoder.NewDecoder()
	dec.TryMirror = opts == nil || !opts.NoMirror
	return &Reader{dec: dec, opts: opts, log: opts.Log()}
}

// Decode is shorthand for NewReader(opts).Decode(data).
func Decode(data []byte, opts *qrscan.Options) ([]qrscan.Symbol, error) {
	return NewReader(opts).Decode(data)
}

// Decode loads an encoded image and decodes every symbol in it. The only
// whole-call error is a *qrscan.LoadError; failures of single symbols are
// carried in their Err field.
func (r *Reader) Decode(data []byte) ([]qrscan.Symbol, error) {
	return r.DecodeContext(context.Background(), data)
}

// DecodeContext is Decode with cancellation. Cancellation is checked
// between pipeline stages and between symbols.
func (r *Reader) DecodeContext(ctx context.Context, data []byte) ([]qrscan.Symbol, error) {
	img, err := qrscan.LoadImage(data, r.opts)
	if err != nil {
		r.log.Debug("image load failed", "bytes", len(data), "err", err)
		return nil, err
	}
	return r.decodeGray(ctx, img)
}

// DecodeImage decodes every symbol in an already decoded image.
func (r *Reader) DecodeImage(img image.Image) []qrscan.Symbol {
	symbols, _ := r.decodeGray(context.Background(), qrscan.Fit(img, r.opts))
	return symbols
}

// DecodeGray decodes every symbol in a grayscale image. img is not
// modified.
func (r *Reader) DecodeGray(img *image.Gray) []qrscan.Symbol {
	symbols, _ := r.decodeGray(context.Background(), img)
	return symbols
}

func (r *Reader) decodeGray(ctx context.Context, img *image.Gray) ([]qrscan.Symbol, error) {
	bits := binarizer.Threshold(img)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	det := detector.NewDetector(bits)
	candidates := det.Detect()
	r.log.Debug("detected",
		"width", bits.Width(), "height", bits.Height(),
		"regions", det.Regions().Len(),
		"finder_patterns", len(det.FinderPatterns()),
		"candidates", len(candidates))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.decodeAll(ctx, candidates)
}

// decodeAll decodes candidates in order, or with an indexed worker pool
// when more than one worker is configured. Results keep candidate order.
func (r *Reader) decodeAll(ctx context.Context, candidates []*detector.Candidate) ([]qrscan.Symbol, error) {
	symbols := make([]qrscan.Symbol, len(candidates))
	workers := min(r.opts.WorkerCount(), len(candidates))
	if workers <= 1 {
		for i, c := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			symbols[i] = r.decodeCandidate(i, c)
		}
		return symbols, nil
	}

	jobs := make(chan int, len(candidates))
	for i := range candidates {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				symbols[i] = r.decodeCandidate(i, candidates[i])
			}
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return symbols, nil
}

func (r *Reader) decodeCandidate(index int, c *detector.Candidate) qrscan.Symbol {
	log := r.log.With("candidate", index, "size", c.Size)
	grid, err := c.Sample(c.Size)
	if err != nil {
		log.Debug("candidate not sampled", "err", err)
		return qrscan.Symbol{Err: err}
	}
	sampled := grid
	grid, err = r.reconcileVersion(c, sampled)
	if err != nil {
		log.Debug("version not confirmed", "err", err)
		return qrscan.Symbol{Err: err, Corners: sampled.Corners}
	}

	result, err := r.dec.Decode(grid)
	if err != nil {
		log.Debug("candidate not decoded", "err", err)
		return qrscan.Symbol{Err: err, Corners: grid.Corners}
	}
	corners := grid.Corners
	if result.Mirrored {
		corners[1], corners[3] = corners[3], corners[1]
	}
	log.Debug("decoded",
		"version", result.Version,
		"ecc_level", result.ECLevel,
		"mask", result.Mask,
		"mode", result.Mode,
		"errors_corrected", result.ErrorsCorrected,
		"mirrored", result.Mirrored)
	return result.Symbol(corners)
}

// reconcileVersion checks the version fields of a grid sampled at the
// measured size. When they name another version the candidate is
// resampled at that size, and the fields must agree there.
func (r *Reader) reconcileVersion(c *detector.Candidate, grid *internal.Grid) (*internal.Grid, error) {
	version, ok := decoder.ReadVersion(grid.Bits)
	if !ok || version == c.Version() {
		return grid, nil
	}
	resampled, err := c.Sample(17 + 4*version)
	if err != nil {
		return nil, qrscan.ErrVersionMismatch
	}
	if confirmed, ok := decoder.ReadVersion(resampled.Bits); !ok || confirmed != version {
		return nil, qrscan.ErrVersionMismatch
	}
	return resampled, nil
}
