// Package region labels the connected components of a binarized image.
//
// Components are 4-connected and cover both colours: every pixel belongs to
// exactly one region. Regions live in a flat slice indexed by id and keep
// their pixel spans in a shared arena, so no region points at another.
package region

import (
	"image"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/bitutil"
)

// None is the id returned where no region applies.
const None = -1

// Span is a horizontal run of pixels in one region, Left and Right
// inclusive.
type Span struct {
	Y, Left, Right int
}

// Region is one connected component.
type Region struct {
	ID    int
	Black bool
	// Bounds is the bounding box, Max exclusive.
	Bounds image.Rectangle
	Count  int
	// Seed is the first pixel of the region in raster order.
	Seed image.Point
	// Capstone is the index of the finder pattern that claimed the region,
	// or None.
	Capstone int

	sumX, sumY         int64
	spanStart, spanEnd int
}

// Centroid returns the mean pixel position, measured at pixel centres.
func (r *Region) Centroid() qrscan.Point {
	n := float64(r.Count)
	return qrscan.Point{
		X: float64(r.sumX)/n + 0.5,
		Y: float64(r.sumY)/n + 0.5,
	}
}

// Map is the labeling of one bitmap.
type Map struct {
	width, height int
	ids           []int32
	regions       []Region
	spans         []Span
}

// Label partitions bm into regions. Regions are numbered in the raster
// order of their seeds. The fill is iterative and visits each pixel a
// bounded number of times.
func Label(bm *bitutil.BitMatrix) *Map {
	w, h := bm.Width(), bm.Height()
	m := &Map{width: w, height: h, ids: make([]int32, w*h)}
	for i := range m.ids {
		m.ids[i] = None
	}

	var stack []image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.ids[y*w+x] != None {
				continue
			}
			stack = m.fill(bm, x, y, stack[:0])
		}
	}
	return m
}

func (m *Map) fill(bm *bitutil.BitMatrix, sx, sy int, stack []image.Point) []image.Point {
	id := len(m.regions)
	black := bm.Get(sx, sy)
	r := Region{
		ID:        id,
		Black:     black,
		Bounds:    image.Rect(sx, sy, sx+1, sy+1),
		Seed:      image.Pt(sx, sy),
		Capstone:  None,
		spanStart: len(m.spans),
	}

	unclaimed := func(x, y int) bool {
		return m.ids[y*m.width+x] == None && bm.Get(x, y) == black
	}

	stack = append(stack, image.Pt(sx, sy))
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !unclaimed(p.X, p.Y) {
			continue
		}
		left, right := p.X, p.X
		for left > 0 && unclaimed(left-1, p.Y) {
			left--
		}
		for right < m.width-1 && unclaimed(right+1, p.Y) {
			right++
		}
		row := m.ids[p.Y*m.width:]
		for x := left; x <= right; x++ {
			row[x] = int32(id)
		}
		m.spans = append(m.spans, Span{Y: p.Y, Left: left, Right: right})

		n := right - left + 1
		r.Count += n
		r.sumX += int64(left+right) * int64(n) / 2
		r.sumY += int64(n) * int64(p.Y)
		r.Bounds = r.Bounds.Union(image.Rect(left, p.Y, right+1, p.Y+1))

		for _, ny := range [2]int{p.Y - 1, p.Y + 1} {
			if ny < 0 || ny >= m.height {
				continue
			}
			inRun := false
			for x := left; x <= right; x++ {
				if unclaimed(x, ny) {
					if !inRun {
						stack = append(stack, image.Pt(x, ny))
						inRun = true
					}
				} else {
					inRun = false
				}
			}
		}
	}
	r.spanEnd = len(m.spans)
	m.regions = append(m.regions, r)
	return stack
}

// Width returns the width of the labeled bitmap.
func (m *Map) Width() int { return m.width }

// Height returns the height of the labeled bitmap.
func (m *Map) Height() int { return m.height }

// Len returns the number of regions.
func (m *Map) Len() int { return len(m.regions) }

// At returns the id of the region containing (x, y), or None when the
// point is outside the bitmap.
func (m *Map) At(x, y int) int {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return None
	}
	return int(m.ids[y*m.width+x])
}

// BlackAt returns the id of the black region containing (x, y), or None
// for white pixels and points outside the bitmap.
func (m *Map) BlackAt(x, y int) int {
	id := m.At(x, y)
	if id == None || !m.regions[id].Black {
		return None
	}
	return id
}

// Region returns the region with the given id. The pointer stays valid for
// the life of the Map.
func (m *Map) Region(id int) *Region {
	return &m.regions[id]
}

// Spans returns the pixel spans of a region in fill order.
func (m *Map) Spans(id int) []Span {
	r := &m.regions[id]
	return m.spans[r.spanStart:r.spanEnd]
}
