package reedsolomon

// Poly is a polynomial over a Field. Instances are immutable.
// Coefficients are ordered from highest degree to lowest.
type Poly struct {
	field        *Field
	coefficients []byte
}

func newPoly(field *Field, coefficients []byte) *Poly {
	if len(coefficients) == 0 {
		panic("reedsolomon: empty coefficients")
	}
	first := 0
	for first < len(coefficients)-1 && coefficients[first] == 0 {
		first++
	}
	c := make([]byte, len(coefficients)-first)
	copy(c, coefficients[first:])
	return &Poly{field: field, coefficients: c}
}

// Degree returns the degree of the polynomial; the zero polynomial has degree 0.
func (p *Poly) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p *Poly) IsZero() bool {
	return p.coefficients[0] == 0
}

// Coefficient returns the coefficient of x^degree.
func (p *Poly) Coefficient(degree int) byte {
	return p.coefficients[len(p.coefficients)-1-degree]
}

// EvaluateAt evaluates p at a using Horner's rule.
func (p *Poly) EvaluateAt(a byte) byte {
	if a == 0 {
		return p.Coefficient(0)
	}
	var result byte
	for _, c := range p.coefficients {
		result = p.field.Multiply(a, result) ^ c
	}
	return result
}

// Add returns p + other. Addition and subtraction coincide in GF(2^8).
func (p *Poly) Add(other *Poly) *Poly {
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}
	small, large := p.coefficients, other.coefficients
	if len(small) > len(large) {
		small, large = large, small
	}
	sum := make([]byte, len(large))
	diff := len(large) - len(small)
	copy(sum, large[:diff])
	for i := diff; i < len(large); i++ {
		sum[i] = small[i-diff] ^ large[i]
	}
	return newPoly(p.field, sum)
}

// Multiply returns p * other.
func (p *Poly) Multiply(other *Poly) *Poly {
	if p.IsZero() || other.IsZero() {
		return p.field.zero
	}
	product := make([]byte, len(p.coefficients)+len(other.coefficients)-1)
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			product[i+j] ^= p.field.Multiply(a, b)
		}
	}
	return newPoly(p.field, product)
}

// Scale returns p * scalar.
func (p *Poly) Scale(scalar byte) *Poly {
	switch scalar {
	case 0:
		return p.field.zero
	case 1:
		return p
	}
	product := make([]byte, len(p.coefficients))
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, scalar)
	}
	return newPoly(p.field, product)
}

// MultiplyByMonomial returns p * coefficient * x^degree.
func (p *Poly) MultiplyByMonomial(degree int, coefficient byte) *Poly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return p.field.zero
	}
	product := make([]byte, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return newPoly(p.field, product)
}

// Truncate returns p mod x^degree.
func (p *Poly) Truncate(degree int) *Poly {
	if degree <= 0 {
		return p.field.zero
	}
	if p.Degree() < degree {
		return p
	}
	return newPoly(p.field, p.coefficients[len(p.coefficients)-degree:])
}

// Divide returns the quotient and remainder of p / other.
func (p *Poly) Divide(other *Poly) (quotient, remainder *Poly) {
	if other.IsZero() {
		panic("reedsolomon: divide by zero")
	}
	quotient = p.field.zero
	remainder = p
	inverseLead := p.field.Inverse(other.Coefficient(other.Degree()))
	for remainder.Degree() >= other.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - other.Degree()
		scale := p.field.Multiply(remainder.Coefficient(remainder.Degree()), inverseLead)
		quotient = quotient.Add(p.field.Monomial(degreeDiff, scale))
		remainder = remainder.Add(other.MultiplyByMonomial(degreeDiff, scale))
	}
	return quotient, remainder
}
