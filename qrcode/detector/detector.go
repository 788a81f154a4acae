// Package detector locates QR code symbols in binary images.
//
// Finder patterns are found by scanning rows for 1:1:3:1:1 run sequences
// and confirming the ring and stone regions behind them. Patterns are then
// grouped into candidates, each of which can be sampled into a module
// grid through a refined perspective transform.
package detector

import (
	"github.com/ericlevine/qrscan/bitutil"
	"github.com/ericlevine/qrscan/region"
)

// Detector finds symbol candidates in one binary image.
type Detector struct {
	image   *bitutil.BitMatrix
	regions *region.Map

	finders    []FinderPattern
	candidates []*Candidate
	done       bool
}

// NewDetector labels the regions of image. Dark pixels are set.
func NewDetector(image *bitutil.BitMatrix) *Detector {
	return &Detector{image: image, regions: region.Label(image)}
}

// Detect returns the candidates of the image in the order their top-left
// finder patterns were found, scanning top to bottom. A finder pattern
// belongs to at most one candidate. Repeated calls return the same
// candidates.
func (d *Detector) Detect() []*Candidate {
	if d.done {
		return d.candidates
	}
	d.done = true
	for y := 0; y < d.image.Height(); y++ {
		d.scanRow(y)
	}
	for i := range d.finders {
		d.group(i)
	}
	return d.candidates
}

// FinderPatterns returns the finder patterns found by Detect.
func (d *Detector) FinderPatterns() []FinderPattern { return d.finders }

// Regions returns the region labeling of the image.
func (d *Detector) Regions() *region.Map { return d.regions }

// Detect is shorthand for NewDetector(image).Detect().
func Detect(image *bitutil.BitMatrix) []*Candidate {
	return NewDetector(image).Detect()
}
