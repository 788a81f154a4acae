package reedsolomon

// Encoder computes Reed-Solomon check codewords. Symbol generation is not a
// feature of this module; the encoder exists so corrupted blocks can be
// produced and verified in tests and diagnostics.
type Encoder struct {
	field *Field
}

// NewEncoder creates a new Encoder for the given field.
func NewEncoder(field *Field) *Encoder {
	return &Encoder{field: field}
}

// generator returns prod(x - alpha^(i+base)) for i in [0, degree).
func (e *Encoder) generator(degree int) *Poly {
	g := e.field.one
	for i := 0; i < degree; i++ {
		g = g.Multiply(newPoly(e.field, []byte{1, e.field.Exp(i + e.field.GeneratorBase())}))
	}
	return g
}

// Encode returns data followed by numECC check codewords.
func (e *Encoder) Encode(data []byte, numECC int) []byte {
	if numECC <= 0 {
		panic("reedsolomon: no error correction bytes")
	}
	if len(data) == 0 {
		panic("reedsolomon: no data bytes provided")
	}
	info := newPoly(e.field, data).MultiplyByMonomial(numECC, 1)
	_, remainder := info.Divide(e.generator(numECC))
	out := make([]byte, len(data)+numECC)
	copy(out, data)
	check := remainder.coefficients
	if remainder.IsZero() {
		check = nil
	}
	copy(out[len(out)-len(check):], check)
	return out
}
