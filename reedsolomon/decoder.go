package reedsolomon

import "errors"

// ErrReedSolomon indicates a block that could not be corrected.
var ErrReedSolomon = errors.New("reedsolomon: decoding error")

// Decoder performs Reed-Solomon error and erasure correction.
// A Decoder holds no mutable state and may be shared between goroutines.
type Decoder struct {
	field *Field
}

// NewDecoder creates a new Decoder for the given field.
func NewDecoder(field *Field) *Decoder {
	return &Decoder{field: field}
}

// Decode corrects received in place and returns the number of codewords
// changed. numECC is the number of error-correction codewords at the end of
// received. erasures lists positions known to be unreliable; pass nil when
// there are none. Correction succeeds while 2*errors + erasures <= numECC.
func (d *Decoder) Decode(received []byte, numECC int, erasures []int) (int, error) {
	n := len(received)
	if numECC <= 0 || numECC >= n || n > 255 {
		return 0, ErrReedSolomon
	}
	syndrome, ok := d.syndromes(received, numECC)
	if ok {
		return 0, nil
	}
	if len(erasures) > numECC {
		return 0, ErrReedSolomon
	}

	gamma, err := d.erasureLocator(n, erasures)
	if err != nil {
		return 0, err
	}
	modified := syndrome.Multiply(gamma).Truncate(numECC)
	sigma, omega, err := d.runEuclideanAlgorithm(d.field.Monomial(numECC, 1), modified, gamma, numECC, len(erasures))
	if err != nil {
		return 0, err
	}
	locations, err := d.findErrorLocations(sigma)
	if err != nil {
		return 0, err
	}
	magnitudes := d.findErrorMagnitudes(omega, locations)

	corrected := make([]byte, n)
	copy(corrected, received)
	changed := 0
	for i, loc := range locations {
		position := n - 1 - d.field.Log(loc)
		if position < 0 {
			return 0, ErrReedSolomon
		}
		if magnitudes[i] != 0 {
			changed++
		}
		corrected[position] ^= magnitudes[i]
	}
	// A locator that does not yield a codeword means more errata than capacity.
	if _, ok := d.syndromes(corrected, numECC); !ok {
		return 0, ErrReedSolomon
	}
	copy(received, corrected)
	return changed, nil
}

// syndromes returns S(x) with S_i = r(alpha^(i+base)) as the coefficient of
// x^i, and whether every syndrome is zero.
func (d *Decoder) syndromes(received []byte, numECC int) (*Poly, bool) {
	poly := newPoly(d.field, received)
	coefficients := make([]byte, numECC)
	clean := true
	for i := 0; i < numECC; i++ {
		eval := poly.EvaluateAt(d.field.Exp(i + d.field.GeneratorBase()))
		coefficients[numECC-1-i] = eval
		if eval != 0 {
			clean = false
		}
	}
	return newPoly(d.field, coefficients), clean
}

// erasureLocator builds Gamma(x) = prod(1 + X_k x) for the erased positions.
func (d *Decoder) erasureLocator(n int, erasures []int) (*Poly, error) {
	gamma := d.field.one
	seen := make(map[int]bool, len(erasures))
	for _, pos := range erasures {
		if pos < 0 || pos >= n || seen[pos] {
			return nil, ErrReedSolomon
		}
		seen[pos] = true
		gamma = gamma.Multiply(newPoly(d.field, []byte{d.field.Exp(n - 1 - pos), 1}))
	}
	return gamma, nil
}

// runEuclideanAlgorithm solves the key equation sigma*S = omega mod x^R.
// The cofactor sequence starts from gamma, so sigma is the errata locator
// with the erasure locator as a factor.
func (d *Decoder) runEuclideanAlgorithm(a, b, gamma *Poly, R, numErasures int) (sigma, omega *Poly, err error) {
	rLast := a
	r := b
	tLast := d.field.zero
	t := gamma

	for 2*r.Degree() >= R+numErasures {
		rLastLast := rLast
		tLastLast := tLast
		rLast = r
		tLast = t

		if rLast.IsZero() {
			return nil, nil, ErrReedSolomon
		}
		q, rem := rLastLast.Divide(rLast)
		r = rem
		t = q.Multiply(tLast).Add(tLastLast)

		if r.Degree() >= rLast.Degree() && !r.IsZero() {
			return nil, nil, ErrReedSolomon
		}
	}

	sigmaAtZero := t.Coefficient(0)
	if sigmaAtZero == 0 {
		return nil, nil, ErrReedSolomon
	}
	inverse := d.field.Inverse(sigmaAtZero)
	return t.Scale(inverse), r.Scale(inverse), nil
}

// findErrorLocations runs a Chien search over every non-zero field element.
func (d *Decoder) findErrorLocations(locator *Poly) ([]byte, error) {
	numErrors := locator.Degree()
	if numErrors == 0 {
		return nil, ErrReedSolomon
	}
	if numErrors == 1 {
		return []byte{locator.Coefficient(1)}, nil
	}
	result := make([]byte, 0, numErrors)
	for i := 1; i < 256 && len(result) < numErrors; i++ {
		if locator.EvaluateAt(byte(i)) == 0 {
			result = append(result, d.field.Inverse(byte(i)))
		}
	}
	if len(result) != numErrors {
		return nil, ErrReedSolomon
	}
	return result, nil
}

// findErrorMagnitudes applies Forney's formula.
func (d *Decoder) findErrorMagnitudes(evaluator *Poly, locations []byte) []byte {
	result := make([]byte, len(locations))
	for i, xi := range locations {
		xiInverse := d.field.Inverse(xi)
		var denominator byte = 1
		for j, xj := range locations {
			if i != j {
				denominator = d.field.Multiply(denominator, 1^d.field.Multiply(xj, xiInverse))
			}
		}
		if denominator == 0 {
			// Repeated root; leave it to the syndrome check to reject.
			continue
		}
		result[i] = d.field.Multiply(evaluator.EvaluateAt(xiInverse), d.field.Inverse(denominator))
		if d.field.GeneratorBase() != 0 {
			result[i] = d.field.Multiply(result[i], xiInverse)
		}
	}
	return result
}
