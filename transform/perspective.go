// Package transform provides the plane projective transforms used to map
// symbol grids onto image coordinates.
package transform

import (
	"math"

	"github.com/ericlevine/qrscan"
)

// NumParams is the number of free parameters of a Perspective.
const NumParams = 8

// Perspective maps grid coordinates (u, v) to image coordinates (x, y):
//
//	x = (c0*u + c1*v + c2) / (c6*u + c7*v + 1)
//	y = (c3*u + c4*v + c5) / (c6*u + c7*v + 1)
//
// Values are immutable.
type Perspective struct {
	c [NumParams]float64
}

// matrix is a homogeneous 3x3 transform in column-vector form: a point
// (x, y) maps to ((a11*x + a21*y + a31)/d, (a12*x + a22*y + a32)/d) with
// d = a13*x + a23*y + a33.
type matrix struct {
	a11, a12, a13 float64
	a21, a22, a23 float64
	a31, a32, a33 float64
}

// NewPerspective maps the rectangle (0,0)-(w,h) onto the quadrilateral
// rect, corner for corner: (0,0), (w,0), (w,h), (0,h). It reports false
// when the result is degenerate.
func NewPerspective(rect [4]qrscan.Point, w, h float64) (*Perspective, bool) {
	if w == 0 || h == 0 {
		return nil, false
	}
	sq := squareToQuadrilateral(rect)
	scale := &matrix{a11: 1 / w, a22: 1 / h, a33: 1}
	return fromMatrix(sq.times(scale))
}

// FromParams builds a Perspective from explicit parameters.
func FromParams(c [NumParams]float64) *Perspective {
	return &Perspective{c: c}
}

func fromMatrix(m *matrix) (*Perspective, bool) {
	if m.a33 == 0 {
		return nil, false
	}
	k := 1 / m.a33
	p := &Perspective{c: [NumParams]float64{
		m.a11 * k, m.a21 * k, m.a31 * k,
		m.a12 * k, m.a22 * k, m.a32 * k,
		m.a13 * k, m.a23 * k,
	}}
	return p, p.Finite()
}

func (p *Perspective) matrix() *matrix {
	c := &p.c
	return &matrix{
		a11: c[0], a21: c[1], a31: c[2],
		a12: c[3], a22: c[4], a32: c[5],
		a13: c[6], a23: c[7], a33: 1,
	}
}

// Params returns a copy of the parameters.
func (p *Perspective) Params() [NumParams]float64 { return p.c }

// Finite reports whether every parameter is a finite number.
func (p *Perspective) Finite() bool {
	for _, v := range p.c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Map projects grid coordinates into the image.
func (p *Perspective) Map(u, v float64) qrscan.Point {
	c := &p.c
	den := c[6]*u + c[7]*v + 1
	return qrscan.Point{
		X: (c[0]*u + c[1]*v + c[2]) / den,
		Y: (c[3]*u + c[4]*v + c[5]) / den,
	}
}

// Unmap projects an image point back into grid coordinates.
func (p *Perspective) Unmap(pt qrscan.Point) (u, v float64) {
	inv := p.matrix().adjoint()
	d := inv.a13*pt.X + inv.a23*pt.Y + inv.a33
	return (inv.a11*pt.X + inv.a21*pt.Y + inv.a31) / d,
		(inv.a12*pt.X + inv.a22*pt.Y + inv.a32) / d
}

// Pixel maps the grid point (u, v) and rounds it to the nearest pixel,
// halves to even. ok is false when the mapped point is not finite.
func (p *Perspective) Pixel(u, v float64) (x, y int, ok bool) {
	pt := p.Map(u, v)
	fx, fy := math.RoundToEven(pt.X), math.RoundToEven(pt.Y)
	if math.IsNaN(fx) || math.IsNaN(fy) || math.Abs(fx) > math.MaxInt32 || math.Abs(fy) > math.MaxInt32 {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// squareToQuadrilateral maps the unit square onto q.
func squareToQuadrilateral(q [4]qrscan.Point) *matrix {
	x0, y0 := q[0].X, q[0].Y
	x1, y1 := q[1].X, q[1].Y
	x2, y2 := q[2].X, q[2].Y
	x3, y3 := q[3].X, q[3].Y
	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3
	if dx3 == 0 && dy3 == 0 {
		return &matrix{
			a11: x1 - x0, a21: x2 - x1, a31: x0,
			a12: y1 - y0, a22: y2 - y1, a32: y0,
			a33: 1,
		}
	}
	dx1 := x1 - x2
	dx2 := x3 - x2
	dy1 := y1 - y2
	dy2 := y3 - y2
	den := dx1*dy2 - dx2*dy1
	a13 := (dx3*dy2 - dx2*dy3) / den
	a23 := (dx1*dy3 - dx3*dy1) / den
	return &matrix{
		a11: x1 - x0 + a13*x1, a21: x3 - x0 + a23*x3, a31: x0,
		a12: y1 - y0 + a13*y1, a22: y3 - y0 + a23*y3, a32: y0,
		a13: a13, a23: a23, a33: 1,
	}
}

// adjoint returns the transposed cofactor matrix, the inverse up to scale.
func (m *matrix) adjoint() *matrix {
	return &matrix{
		a11: m.a22*m.a33 - m.a23*m.a32,
		a21: m.a23*m.a31 - m.a21*m.a33,
		a31: m.a21*m.a32 - m.a22*m.a31,
		a12: m.a13*m.a32 - m.a12*m.a33,
		a22: m.a11*m.a33 - m.a13*m.a31,
		a32: m.a12*m.a31 - m.a11*m.a32,
		a13: m.a12*m.a23 - m.a13*m.a22,
		a23: m.a13*m.a21 - m.a11*m.a23,
		a33: m.a11*m.a22 - m.a12*m.a21,
	}
}

// times returns m composed with o; o applies first.
func (m *matrix) times(o *matrix) *matrix {
	return &matrix{
		a11: m.a11*o.a11 + m.a21*o.a12 + m.a31*o.a13,
		a21: m.a11*o.a21 + m.a21*o.a22 + m.a31*o.a23,
		a31: m.a11*o.a31 + m.a21*o.a32 + m.a31*o.a33,
		a12: m.a12*o.a11 + m.a22*o.a12 + m.a32*o.a13,
		a22: m.a12*o.a21 + m.a22*o.a22 + m.a32*o.a23,
		a32: m.a12*o.a31 + m.a22*o.a32 + m.a32*o.a33,
		a13: m.a13*o.a11 + m.a23*o.a12 + m.a33*o.a13,
		a23: m.a13*o.a21 + m.a23*o.a22 + m.a33*o.a23,
		a33: m.a13*o.a31 + m.a23*o.a32 + m.a33*o.a33,
	}
}
