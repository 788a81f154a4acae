package detector

import (
	"image"
	"math"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/region"
	"github.com/ericlevine/qrscan/transform"
)

// maxFinderPatterns bounds the number of finder patterns kept per image.
const maxFinderPatterns = 64

// FinderPattern is one of the three concentric squares at the corners of a
// symbol. Ring is the outer dark square and Stone the dark centre.
type FinderPattern struct {
	Ring, Stone int
	// Corners are the outer corners of the ring in clockwise order. Once a
	// candidate claims the pattern, corner 0 is the outermost.
	Corners    [4]qrscan.Point
	Center     qrscan.Point
	ModuleSize float64
	// Candidate is the index of the candidate that claimed the pattern, or
	// region.None.
	Candidate int

	// local maps the 7x7 module frame of the pattern into the image.
	local *transform.Perspective
}

func (fp *FinderPattern) setCorners(corners [4]qrscan.Point) bool {
	t, ok := transform.NewPerspective(corners, 7, 7)
	if !ok {
		return false
	}
	fp.Corners = corners
	fp.local = t
	fp.Center = t.Map(3.5, 3.5)
	return true
}

// finderRatios reports whether five runs match 1:1:3:1:1. The module
// estimate is taken from the four outer runs, and each run may be off by
// three quarters of it.
func finderRatios(runs [5]int) bool {
	avg := (runs[0] + runs[1] + runs[3] + runs[4]) / 4
	tolerance := avg * 3 / 4
	for i, weight := range [5]int{1, 1, 3, 1, 1} {
		if runs[i] == 0 || runs[i] < weight*avg-tolerance || runs[i] > weight*avg+tolerance {
			return false
		}
	}
	return true
}

// scanRow looks for dark-light-dark-light-dark run sequences along row y.
func (d *Detector) scanRow(y int) {
	width := d.image.Width()
	stateCount := [5]int{}
	state := 0
	for x := 0; x < width; x++ {
		if d.image.Get(x, y) {
			if state&1 == 1 {
				state++
			}
			stateCount[state]++
			continue
		}
		if state&1 == 1 {
			stateCount[state]++
			continue
		}
		if state < 4 {
			state++
			stateCount[state]++
			continue
		}
		if finderRatios(stateCount) {
			d.testCapstone(x, y, stateCount)
		}
		stateCount[0] = stateCount[2]
		stateCount[1] = stateCount[3]
		stateCount[2] = stateCount[4]
		stateCount[3] = 1
		stateCount[4] = 0
		state = 3
	}
}

// testCapstone checks a run sequence ending just before x for the region
// structure of a finder pattern and records it.
func (d *Detector) testCapstone(x, y int, runs [5]int) {
	ringRight := d.regions.BlackAt(x-runs[4], y)
	stone := d.regions.BlackAt(x-runs[4]-runs[3]-runs[2], y)
	ringLeft := d.regions.BlackAt(x-runs[4]-runs[3]-runs[2]-runs[1]-runs[0], y)
	if ringLeft == region.None || ringRight == region.None || stone == region.None {
		return
	}
	if ringLeft != ringRight || ringLeft == stone {
		return
	}

	ringReg := d.regions.Region(ringLeft)
	stoneReg := d.regions.Region(stone)
	if ringReg.Capstone != region.None || stoneReg.Capstone != region.None {
		return
	}
	// An ideal pattern has a ratio of 9/24.
	ratio := stoneReg.Count * 100 / ringReg.Count
	if ratio < 10 || ratio > 70 {
		return
	}
	rb, sb := ringReg.Bounds, stoneReg.Bounds
	if rb.Min.X >= sb.Min.X || rb.Min.Y >= sb.Min.Y || rb.Max.X <= sb.Max.X || rb.Max.Y <= sb.Max.Y {
		return
	}
	if !d.verticalCheck(ringLeft, stone) {
		return
	}
	d.recordCapstone(ringLeft, stone)
}

// verticalCheck walks the column through the stone centroid and checks
// the ring-light-stone-light-ring runs for 1:1:3:1:1.
func (d *Detector) verticalCheck(ring, stone int) bool {
	c := d.regions.Region(stone).Centroid()
	cx, cy := int(math.Floor(c.X)), int(math.Floor(c.Y))
	if d.regions.At(cx, cy) != stone {
		return false
	}

	var runs [5]int
	is := func(y, id int) bool { return d.regions.At(cx, y) == id }
	light := func(y int) bool {
		id := d.regions.At(cx, y)
		return id != region.None && !d.regions.Region(id).Black
	}

	y := cy
	for is(y, stone) {
		runs[2]++
		y--
	}
	for light(y) {
		runs[1]++
		y--
	}
	for is(y, ring) {
		runs[0]++
		y--
	}
	y = cy + 1
	for is(y, stone) {
		runs[2]++
		y++
	}
	for light(y) {
		runs[3]++
		y++
	}
	for is(y, ring) {
		runs[4]++
		y++
	}
	return finderRatios(runs)
}

func (d *Detector) recordCapstone(ring, stone int) {
	if len(d.finders) >= maxFinderPatterns {
		return
	}
	ringReg := d.regions.Region(ring)
	stoneReg := d.regions.Region(stone)

	fp := FinderPattern{
		Ring:       ring,
		Stone:      stone,
		ModuleSize: math.Sqrt(float64(ringReg.Count+stoneReg.Count) / 33),
		Candidate:  region.None,
	}
	if !fp.setCorners(d.regionCorners(ring, stoneReg.Seed)) {
		return
	}
	ringReg.Capstone = len(d.finders)
	stoneReg.Capstone = len(d.finders)
	d.finders = append(d.finders, fp)
}

// regionCorners finds four extreme pixels of a region. Corner 0 is the
// pixel farthest from ref; the others maximise the projections onto the
// axes that direction defines, going clockwise.
func (d *Detector) regionCorners(id int, ref image.Point) [4]qrscan.Point {
	spans := d.regions.Spans(id)
	seed := d.regions.Region(id).Seed

	far, best := seed, -1
	for _, s := range spans {
		for _, x := range [2]int{s.Left, s.Right} {
			dx, dy := x-ref.X, s.Y-ref.Y
			if dd := dx*dx + dy*dy; dd > best {
				best = dd
				far = image.Pt(x, s.Y)
			}
		}
	}

	axis := far.Sub(ref)
	project := func(x, y int) [4]int {
		up := x*axis.X + y*axis.Y
		right := -x*axis.Y + y*axis.X
		return [4]int{up, right, -up, -right}
	}
	corners := [4]image.Point{seed, seed, seed, seed}
	scores := project(seed.X, seed.Y)
	for _, s := range spans {
		for _, x := range [2]int{s.Left, s.Right} {
			p := project(x, s.Y)
			for j := range p {
				if p[j] > scores[j] {
					scores[j] = p[j]
					corners[j] = image.Pt(x, s.Y)
				}
			}
		}
	}

	var out [4]qrscan.Point
	for i, c := range corners {
		out[i] = qrscan.Point{X: float64(c.X), Y: float64(c.Y)}
	}
	return out
}
