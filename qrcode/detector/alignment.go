package detector

import (
	"image"
	"math"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/region"
)

// findAlignment spirals out from estimate looking for a dark region of
// about one module's area, the centre of the bottom-right alignment
// pattern. It returns the region and its point nearest the top-left of
// the symbol.
func (d *Detector) findAlignment(c *Candidate, estimate qrscan.Point) (int, qrscan.Point, bool) {
	fa := &d.finders[c.Patterns[0]]
	fc := &d.finders[c.Patterns[2]]

	// One module step along each edge gives the area of a module.
	u, v := fa.local.Unmap(estimate)
	pa := fa.local.Map(u, v+1)
	u, v = fc.local.Unmap(estimate)
	pc := fc.local.Map(u+1, v)
	sizeEstimate := math.Abs((pa.X-estimate.X)*-(pc.Y-estimate.Y) + (pa.Y-estimate.Y)*(pc.X-estimate.X))
	if math.IsNaN(sizeEstimate) {
		return region.None, qrscan.Point{}, false
	}

	dx := [4]int{1, 0, -1, 0}
	dy := [4]int{0, -1, 0, 1}
	p := image.Pt(int(math.Round(estimate.X)), int(math.Round(estimate.Y)))
	step, dir := 1, 0
	for float64(step*step) < sizeEstimate*100 {
		for i := 0; i < step; i++ {
			if id := d.regions.BlackAt(p.X, p.Y); id != region.None {
				n := float64(d.regions.Region(id).Count)
				if n >= sizeEstimate/2 && n <= sizeEstimate*2 {
					return id, d.nearestToLine(id, c.hypotenuse), true
				}
			}
			p.X += dx[dir]
			p.Y += dy[dir]
		}
		dir = (dir + 1) % 4
		if dir&1 == 0 {
			step++
		}
	}
	return region.None, qrscan.Point{}, false
}

// nearestToLine returns the pixel of a region lying farthest toward the
// top-left side of a line with direction hd.
func (d *Detector) nearestToLine(id int, hd qrscan.Point) qrscan.Point {
	seed := d.regions.Region(id).Seed
	best := image.Pt(seed.X, seed.Y)
	score := -hd.Y*float64(seed.X) + hd.X*float64(seed.Y)
	for _, s := range d.regions.Spans(id) {
		for _, x := range [2]int{s.Left, s.Right} {
			if v := -hd.Y*float64(x) + hd.X*float64(s.Y); v < score {
				score = v
				best = image.Pt(x, s.Y)
			}
		}
	}
	return qrscan.Point{X: float64(best.X), Y: float64(best.Y)}
}
