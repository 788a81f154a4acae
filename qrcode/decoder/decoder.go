package decoder

import (
	"errors"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/internal"
	"github.com/ericlevine/qrscan/reedsolomon"
)

// Decoder turns sampled module grids into decoded content. It holds no
// per-call state and may be shared between goroutines.
type Decoder struct {
	rsDecoder *reedsolomon.Decoder
	// TryMirror retries grids that fail to decode as mirror images.
	TryMirror bool
}

// NewDecoder creates a Decoder that retries mirror images.
func NewDecoder() *Decoder {
	return &Decoder{
		rsDecoder: reedsolomon.NewDecoder(reedsolomon.QRField),
		TryMirror: true,
	}
}

// Decode reads a grid whose size fixes its version. When the grid does
// not decode and TryMirror is set, its transpose is tried; if that fails
// too the first error is returned.
func (d *Decoder) Decode(grid *internal.Grid) (*internal.DecoderResult, error) {
	result, err := d.decode(grid)
	if err == nil || !d.TryMirror || !retryable(err) {
		return result, err
	}
	mirrored, merr := d.decode(grid.Transpose())
	if merr != nil {
		return nil, err
	}
	mirrored.Mirrored = true
	return mirrored, nil
}

func retryable(err error) bool {
	return errors.Is(err, qrscan.ErrFormat) || errors.Is(err, qrscan.ErrData)
}

func (d *Decoder) decode(grid *internal.Grid) (*internal.DecoderResult, error) {
	version, err := VersionForSize(grid.Size)
	if err != nil {
		return nil, qrscan.ErrUnlocatableGrid
	}
	fi, err := ReadFormatInformation(grid.Bits)
	if err != nil {
		return nil, err
	}
	raw, erasures, err := ReadCodewords(grid.Bits, grid.Unknown, version, fi)
	if err != nil {
		return nil, err
	}

	blocks := GetDataBlocks(raw, erasures, version, fi.ECLevel)
	data := make([]byte, 0, version.ECBlocksForLevel(fi.ECLevel).TotalDataCodewords())
	corrected := 0
	for i := range blocks {
		n, err := d.correctErrors(&blocks[i])
		if err != nil {
			return nil, err
		}
		corrected += n
		data = append(data, blocks[i].Codewords[:blocks[i].NumDataCodewords]...)
	}

	result, err := DecodeBitStream(data, version.Number)
	if err != nil {
		return nil, err
	}
	result.Version = version.Number
	result.ECLevel = fi.ECLevel.Level()
	result.Mask = fi.Mask
	result.ErrorsCorrected = corrected
	result.Erasures = len(erasures)
	return result, nil
}

// correctErrors runs Reed-Solomon correction on a block in place. Erasure
// hints are used first; when they do not lead to a codeword the block is
// retried without them.
func (d *Decoder) correctErrors(block *DataBlock) (int, error) {
	numECC := len(block.Codewords) - block.NumDataCodewords
	if len(block.Erasures) > 0 && len(block.Erasures) <= numECC {
		if n, err := d.rsDecoder.Decode(block.Codewords, numECC, block.Erasures); err == nil {
			return n, nil
		}
	}
	n, err := d.rsDecoder.Decode(block.Codewords, numECC, nil)
	if err != nil {
		return 0, errECCFailure
	}
	return n, nil
}
