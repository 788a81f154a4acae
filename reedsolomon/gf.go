// Package reedsolomon implements Reed-Solomon error correction over GF(256)
// as used by QR Code symbols.
package reedsolomon

import "fmt"

// Field is GF(256) generated by a primitive polynomial, with exp/log tables
// for multiplication. Fields are immutable once built and safe to share.
type Field struct {
	exp           [512]byte // doubled so products never need a modulo
	log           [256]int
	zero          *Poly
	one           *Poly
	primitive     int
	generatorBase int
}

// QRField is the QR Code field x^8 + x^4 + x^3 + x^2 + 1 with generator base 0.
var QRField = NewField(0x011D, 0)

// NewField builds GF(256) from the given primitive polynomial.
func NewField(primitive, generatorBase int) *Field {
	f := &Field{primitive: primitive, generatorBase: generatorBase}
	x := 1
	for i := 0; i < 255; i++ {
		f.exp[i] = byte(x)
		f.log[x] = i
		x <<= 1
		if x >= 256 {
			x ^= primitive
		}
	}
	for i := 255; i < len(f.exp); i++ {
		f.exp[i] = f.exp[i-255]
	}
	f.zero = newPoly(f, []byte{0})
	f.one = newPoly(f, []byte{1})
	return f
}

// Zero returns the zero polynomial.
func (f *Field) Zero() *Poly { return f.zero }

// One returns the one polynomial.
func (f *Field) One() *Poly { return f.one }

// Monomial returns coefficient * x^degree.
func (f *Field) Monomial(degree int, coefficient byte) *Poly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return f.zero
	}
	c := make([]byte, degree+1)
	c[0] = coefficient
	return newPoly(f, c)
}

// Exp returns alpha^a for a >= 0.
func (f *Field) Exp(a int) byte {
	return f.exp[a%255]
}

// Log returns the discrete logarithm of a, which must be non-zero.
func (f *Field) Log(a byte) int {
	if a == 0 {
		panic("reedsolomon: log(0)")
	}
	return f.log[a]
}

// Inverse returns the multiplicative inverse of a, which must be non-zero.
func (f *Field) Inverse(a byte) byte {
	if a == 0 {
		panic("reedsolomon: inverse(0)")
	}
	return f.exp[255-f.log[a]]
}

// Multiply returns a * b.
func (f *Field) Multiply(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[f.log[a]+f.log[b]]
}

// GeneratorBase returns the power of alpha of the first generator root.
func (f *Field) GeneratorBase() int { return f.generatorBase }

func (f *Field) String() string {
	return fmt.Sprintf("GF(0x%x,256)", f.primitive)
}
