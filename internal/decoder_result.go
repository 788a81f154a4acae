// Package internal holds the values passed between pipeline stages.
package internal

import "github.com/ericlevine/qrscan"

// DecoderResult is the content decoded from one module grid.
type DecoderResult struct {
	Version int
	ECLevel qrscan.ECCLevel
	Mask    int

	Data     []byte
	Segments []qrscan.Segment
	// Mode is the mode of the first data segment.
	Mode             qrscan.Mode
	ECI              int
	StructuredAppend *qrscan.StructuredAppend
	FNC1             qrscan.FNC1Mode
	AppIndicator     int

	ErrorsCorrected int
	Erasures        int
	Mirrored        bool
}

// NewDecoderResult creates a DecoderResult with no segments.
func NewDecoderResult() *DecoderResult {
	return &DecoderResult{Mode: qrscan.ModeUnknown, Data: []byte{}}
}

// AddSegment appends a data segment and its bytes to the payload.
func (d *DecoderResult) AddSegment(seg qrscan.Segment) {
	if len(d.Segments) == 0 {
		d.Mode = seg.Mode
	}
	d.Segments = append(d.Segments, seg)
	d.Data = append(d.Data, seg.Data...)
}

// Symbol converts the result into its public form.
func (d *DecoderResult) Symbol(corners [4]qrscan.Point) qrscan.Symbol {
	return qrscan.Symbol{
		Version:          d.Version,
		ECCLevel:         d.ECLevel,
		Mask:             d.Mask,
		Mode:             d.Mode,
		Data:             d.Data,
		Segments:         d.Segments,
		ECI:              d.ECI,
		StructuredAppend: d.StructuredAppend,
		FNC1:             d.FNC1,
		AppIndicator:     d.AppIndicator,
		Corners:          corners,
		ErrorsCorrected:  d.ErrorsCorrected,
		Mirrored:         d.Mirrored,
	}
}
