package detector

import (
	"math"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/region"
)

// maxCandidates bounds the number of symbol candidates kept per image.
const maxCandidates = 16

type neighbour struct {
	index    int
	distance float64
}

// group tries to complete a symbol with finder pattern b at its top-left
// corner. Other unclaimed patterns that lie along an axis of b's frame
// are neighbours; the pair with the most similar distances wins.
func (d *Detector) group(b int) {
	fb := &d.finders[b]
	if fb.Candidate != region.None {
		return
	}

	var hlist, vlist []neighbour
	for j := range d.finders {
		fj := &d.finders[j]
		if j == b || fj.Candidate != region.None {
			continue
		}
		u, v := fb.local.Unmap(fj.Center)
		u = math.Abs(u - 3.5)
		v = math.Abs(v - 3.5)
		if u < 0.2*v {
			hlist = append(hlist, neighbour{j, v})
		}
		if v < 0.2*u {
			vlist = append(vlist, neighbour{j, u})
		}
	}
	if len(hlist) == 0 || len(vlist) == 0 {
		return
	}

	bestH, bestV := region.None, region.None
	bestScore := 0.0
	for _, hn := range hlist {
		for _, vn := range vlist {
			if !d.plausibleTriple(hn, b, vn) {
				continue
			}
			score := math.Abs(1 - hn.distance/vn.distance)
			if bestH == region.None || score < bestScore {
				bestH, bestV, bestScore = hn.index, vn.index, score
			}
		}
	}
	if bestH == region.None {
		return
	}
	d.recordCandidate(bestH, b, bestV)
}

// plausibleTriple checks that a, b and c could be the finder patterns of
// one symbol with b at the right angle.
func (d *Detector) plausibleTriple(hn neighbour, b int, vn neighbour) bool {
	if math.Max(hn.distance, vn.distance) > 3.5*math.Min(hn.distance, vn.distance) {
		return false
	}
	fa, fb, fc := &d.finders[hn.index], &d.finders[b], &d.finders[vn.index]

	ba := qrscan.Distance(fb.Center, fa.Center)
	bc := qrscan.Distance(fb.Center, fc.Center)
	hyp := math.Hypot(ba, bc)
	if ac := qrscan.Distance(fa.Center, fc.Center); ac < 0.7*hyp || ac > 1.4*hyp {
		return false
	}

	lo := math.Min(fa.ModuleSize, math.Min(fb.ModuleSize, fc.ModuleSize))
	hi := math.Max(fa.ModuleSize, math.Max(fb.ModuleSize, fc.ModuleSize))
	if hi > 2*lo {
		return false
	}

	fx := fa.Center.X + fc.Center.X - fb.Center.X
	fy := fa.Center.Y + fc.Center.Y - fb.Center.Y
	return fx >= 0 && fy >= 0 && fx < float64(d.image.Width()) && fy < float64(d.image.Height())
}

// recordCandidate orients the triple, measures the timing patterns and
// locates the fourth corner. On failure every pattern is released.
func (d *Detector) recordCandidate(a, b, c int) {
	if len(d.candidates) >= maxCandidates {
		return
	}

	h0 := d.finders[a].Center
	hd := qrscan.Point{X: d.finders[c].Center.X - h0.X, Y: d.finders[c].Center.Y - h0.Y}
	// A-B-C must run clockwise with B left of the hypotenuse.
	bc := d.finders[b].Center
	if (bc.X-h0.X)*-hd.Y+(bc.Y-h0.Y)*hd.X > 0 {
		a, c = c, a
		h0 = d.finders[a].Center
		hd = qrscan.Point{X: -hd.X, Y: -hd.Y}
	}

	index := len(d.candidates)
	cand := &Candidate{
		Patterns:    [3]int{a, b, c},
		AlignRegion: region.None,
		det:         d,
		hypotenuse:  hd,
	}
	ok := true
	for _, id := range cand.Patterns {
		fp := &d.finders[id]
		if !fp.setCorners(rotateCorners(fp.Corners, h0, hd)) {
			ok = false
		}
		fp.Candidate = index
	}

	if ok {
		ok = d.measureTiming(cand)
	}
	if ok {
		fa, fc := &d.finders[a], &d.finders[c]
		cand.edge, ok = lineIntersect(fa.Corners[0], fa.Corners[1], fc.Corners[0], fc.Corners[3])
	}
	if !ok {
		for _, id := range cand.Patterns {
			d.finders[id].Candidate = region.None
		}
		return
	}

	cand.Align = cand.edge
	if cand.Size > 21 {
		if id, pt, found := d.findAlignment(cand, cand.edge); found {
			cand.AlignRegion = id
			cand.Align = pt
		}
	}
	d.candidates = append(d.candidates, cand)
}

// rotateCorners cycles corners so that corner 0 is the one farthest from
// the hypotenuse on the side of the top-left pattern.
func rotateCorners(corners [4]qrscan.Point, h0, hd qrscan.Point) [4]qrscan.Point {
	best := 0
	bestScore := 0.0
	for j, p := range corners {
		score := (p.X-h0.X)*-hd.Y + (p.Y-h0.Y)*hd.X
		if j == 0 || score < bestScore {
			best, bestScore = j, score
		}
	}
	var out [4]qrscan.Point
	for j := range out {
		out[j] = corners[(j+best)%4]
	}
	return out
}

// measureTiming counts the light modules of the two timing patterns and
// derives the grid size from the longer count.
func (d *Detector) measureTiming(c *Candidate) bool {
	us := [3]float64{6.5, 6.5, 0.5}
	vs := [3]float64{0.5, 6.5, 6.5}
	var ends [3][2]int
	for i, id := range c.Patterns {
		x, y, ok := d.finders[id].local.Pixel(us[i], vs[i])
		if !ok {
			return false
		}
		ends[i] = [2]int{x, y}
	}
	hscan := d.timingScan(ends[1], ends[2])
	vscan := d.timingScan(ends[1], ends[0])
	scan := max(hscan, vscan)
	if scan < 0 {
		return false
	}
	size := scan*2 + 13
	version := (size - 15) / 4
	if version < qrscan.VersionMin || version > qrscan.VersionMax {
		return false
	}
	c.Size = version*4 + 17
	return true
}

// timingScan walks the line from p0 to p1 and counts light runs of at
// least two pixels that end in a dark pixel. It returns -1 when either end
// lies outside the image.
func (d *Detector) timingScan(p0, p1 [2]int) int {
	w, h := d.image.Width(), d.image.Height()
	for _, p := range [2][2]int{p0, p1} {
		if p[0] < 0 || p[1] < 0 || p[0] >= w || p[1] >= h {
			return -1
		}
	}

	x, y := p0[0], p0[1]
	n, dd := p1[0]-p0[0], p1[1]-p0[1]
	dom, nondom := &y, &x
	if abs(n) > abs(dd) {
		n, dd = dd, n
		dom, nondom = &x, &y
	}
	nondomStep, domStep := 1, 1
	if n < 0 {
		n, nondomStep = -n, -1
	}
	if dd < 0 {
		dd, domStep = -dd, -1
	}

	count, run, e := 0, 0, 0
	for i := 0; i <= dd; i++ {
		if x < 0 || y < 0 || x >= w || y >= h {
			break
		}
		if d.image.Get(x, y) {
			if run >= 2 {
				count++
			}
			run = 0
		} else {
			run++
		}
		e += n
		*dom += domStep
		if e >= dd {
			*nondom += nondomStep
			e -= dd
		}
	}
	return count
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// lineIntersect returns the intersection of the lines p0-p1 and q0-q1.
func lineIntersect(p0, p1, q0, q1 qrscan.Point) (qrscan.Point, bool) {
	a, b := -(p1.Y - p0.Y), p1.X-p0.X
	c, d := -(q1.Y - q0.Y), q1.X-q0.X
	e := a*p1.X + b*p1.Y
	f := c*q1.X + d*q1.Y
	det := a*d - b*c
	if det == 0 {
		return qrscan.Point{}, false
	}
	return qrscan.Point{X: (d*e - b*f) / det, Y: (-c*e + a*f) / det}, true
}
