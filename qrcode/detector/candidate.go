package detector

import (
	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/internal"
	"github.com/ericlevine/qrscan/qrcode/decoder"
	"github.com/ericlevine/qrscan/region"
	"github.com/ericlevine/qrscan/transform"
)

// Candidate is a triple of finder patterns believed to belong to one
// symbol.
type Candidate struct {
	// Patterns are finder pattern ids: bottom-left, top-left, top-right.
	Patterns [3]int
	// Align is the image point taken as grid position (size-7, size-7).
	Align qrscan.Point
	// AlignRegion is the region of the alignment pattern centre, or
	// region.None when the edge intersection is used.
	AlignRegion int
	// Size is the grid size measured from the timing patterns.
	Size int

	det        *Detector
	edge       qrscan.Point
	hypotenuse qrscan.Point
}

// Version returns the version implied by the measured size.
func (c *Candidate) Version() int { return (c.Size - 17) / 4 }

// FinderPatterns returns the three patterns of the candidate in
// bottom-left, top-left, top-right order.
func (c *Candidate) FinderPatterns() [3]*FinderPattern {
	return [3]*FinderPattern{
		&c.det.finders[c.Patterns[0]],
		&c.det.finders[c.Patterns[1]],
		&c.det.finders[c.Patterns[2]],
	}
}

// Sample reads the candidate as a grid of the given size. Sizes other
// than the measured one are used to resample at a version read from the
// symbol itself. Sample does not modify the candidate.
func (c *Candidate) Sample(size int) (*internal.Grid, error) {
	t, err := c.Transform(size)
	if err != nil {
		return nil, err
	}
	bits, unknown := transform.SampleGrid(c.det.image, size, t)
	s := float64(size)
	corners := [4]qrscan.Point{t.Map(0, 0), t.Map(s, 0), t.Map(s, s), t.Map(0, s)}
	return internal.NewGrid(bits, unknown, corners), nil
}

// Transform returns the refined grid-to-image mapping for a grid of the
// given size.
func (c *Candidate) Transform(size int) (*transform.Perspective, error) {
	if _, err := decoder.VersionForSize(size); err != nil {
		return nil, qrscan.ErrUnlocatableGrid
	}
	align := c.edge
	switch {
	case size <= 21:
	case c.AlignRegion != region.None:
		align = c.Align
	case c.Size <= 21:
		if _, pt, found := c.det.findAlignment(c, c.edge); found {
			align = pt
		}
	}

	fps := c.FinderPatterns()
	rect := [4]qrscan.Point{fps[1].Corners[0], fps[2].Corners[0], align, fps[0].Corners[0]}
	t, ok := transform.NewPerspective(rect, float64(size-7), float64(size-7))
	if !ok {
		return nil, qrscan.ErrUnlocatableGrid
	}
	t = c.det.jiggle(t, size)
	if !t.Finite() {
		return nil, qrscan.ErrUnlocatableGrid
	}
	return t, nil
}

// jiggle refines t by coordinate search: each parameter is nudged up and
// down by 2% and kept where the fit improves, halving the step each pass.
func (d *Detector) jiggle(t *transform.Perspective, size int) *transform.Perspective {
	c := t.Params()
	best := d.fitness(t, size)
	var steps [transform.NumParams]float64
	for i := range steps {
		steps[i] = c[i] * 0.02
	}
	for pass := 0; pass < 5; pass++ {
		for i := 0; i < 2*transform.NumParams; i++ {
			j := i >> 1
			old := c[j]
			if i&1 == 1 {
				c[j] = old + steps[j]
			} else {
				c[j] = old - steps[j]
			}
			if score := d.fitness(transform.FromParams(c), size); score > best {
				best = score
			} else {
				c[j] = old
			}
		}
		for i := range steps {
			steps[i] *= 0.5
		}
	}
	return transform.FromParams(c)
}

func (d *Detector) cellFitness(t *transform.Perspective, x, y int) int {
	score, _ := transform.Vote(d.image, t, x, y)
	return score
}

func (d *Detector) ringFitness(t *transform.Perspective, cx, cy, radius int) int {
	score := 0
	for i := 0; i < radius*2; i++ {
		score += d.cellFitness(t, cx-radius+i, cy-radius)
		score += d.cellFitness(t, cx-radius, cy+radius-i)
		score += d.cellFitness(t, cx+radius, cy-radius+i)
		score += d.cellFitness(t, cx+radius-i, cy+radius)
	}
	return score
}

func (d *Detector) alignmentFitness(t *transform.Perspective, cx, cy int) int {
	return d.cellFitness(t, cx, cy) -
		d.ringFitness(t, cx, cy, 1) +
		d.ringFitness(t, cx, cy, 2)
}

func (d *Detector) finderFitness(t *transform.Perspective, x, y int) int {
	x += 3
	y += 3
	return d.cellFitness(t, x, y) +
		d.ringFitness(t, x, y, 1) -
		d.ringFitness(t, x, y, 2) +
		d.ringFitness(t, x, y, 3)
}

// fitness scores how well t lays the fixed patterns of a size x size grid
// over the image.
func (d *Detector) fitness(t *transform.Perspective, size int) int {
	score := 0
	for i := 0; i < size-14; i++ {
		expect := -1
		if i&1 == 1 {
			expect = 1
		}
		score += d.cellFitness(t, i+7, 6) * expect
		score += d.cellFitness(t, 6, i+7) * expect
	}

	score += d.finderFitness(t, 0, 0)
	score += d.finderFitness(t, size-7, 0)
	score += d.finderFitness(t, 0, size-7)

	v, err := decoder.VersionForSize(size)
	if err != nil {
		return score
	}
	centers := v.AlignmentPatternCenters
	for i := 1; i+1 < len(centers); i++ {
		score += d.alignmentFitness(t, 6, centers[i])
		score += d.alignmentFitness(t, centers[i], 6)
	}
	for i := 1; i < len(centers); i++ {
		for j := 1; j < len(centers); j++ {
			score += d.alignmentFitness(t, centers[i], centers[j])
		}
	}
	return score
}
