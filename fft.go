package polyrat

import (
	"math"
	"math/big"
	"math/cmplx"
	"strings"

	"github.com/njchilds90/polyrat/logger"
	"github.com/pkg/errors"
)

// ============================================================
// Convolution — direct and FFT polynomial products
// ============================================================

// MulMode selects how polynomial products are computed.
type MulMode int

const (
	// MulExact always uses direct O(n²) convolution.
	MulExact MulMode = iota
	// MulAuto uses the FFT for large products whose coefficients fit the
	// float64 mantissa, and falls back to direct convolution otherwise.
	MulAuto
	// MulFFT always uses the FFT; accuracy failures reach the caller.
	MulFFT
)

const (
	DefaultFFTThreshold = 32
	DefaultFFTTolerance = 1e-4
)

// 2^52: products below this survive a round trip through float64.
const fftSafeMagnitude = 1 << 52

func (m MulMode) String() string {
	switch m {
	case MulAuto:
		return "auto"
	case MulFFT:
		return "fft"
	}
	return "exact"
}

func ParseMulMode(s string) (MulMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact", "direct":
		return MulExact, nil
	case "auto":
		return MulAuto, nil
	case "fft":
		return MulFFT, nil
	}
	return MulExact, errors.Wrapf(ErrTypeMismatch, "unknown multiply mode %q", s)
}

// Multiplier picks the convolution path for Poly.Mul. The zero value is
// the exact direct path.
type Multiplier struct {
	Mode      MulMode
	Threshold int
	Tolerance float64
}

func (m Multiplier) threshold() int {
	if m.Threshold <= 0 {
		return DefaultFFTThreshold
	}
	return m.Threshold
}

func (m Multiplier) tolerance() float64 {
	if m.Tolerance <= 0 {
		return DefaultFFTTolerance
	}
	return m.Tolerance
}

func (m Multiplier) convolve(p, o Poly) (map[int]Rat, error) {
	switch m.Mode {
	case MulFFT:
		return m.fftTerms(p, o)
	case MulAuto:
		if !m.worthFFT(p) || !m.worthFFT(o) {
			return directTerms(p, o), nil
		}
		a, b := p.dense(), o.dense()
		if !fftSafe(a, b) {
			return directTerms(p, o), nil
		}
		logger.Debugf("polyrat: fft product of degrees %d and %d", len(a)-1, len(b)-1)
		terms, err := m.fftTerms(p, o)
		if errors.Is(err, ErrNumericAccuracy) {
			logger.Verbosef("polyrat: fft product fell back to direct convolution: %s", err.Error())
			return directTerms(p, o), nil
		}
		return terms, err
	}
	return directTerms(p, o), nil
}

// worthFFT reports whether p has at least threshold terms and fills more
// than half of its dense layout. Sparse operands stay on the direct path
// so that x^n never allocates a degree-sized vector.
func (m Multiplier) worthFFT(p Poly) bool {
	n := 0
	for _, c := range p.coeffs {
		if !c.IsZero() {
			n++
		}
	}
	return n >= m.threshold() && 2*n > p.Degree()
}

func (m Multiplier) fftTerms(p, o Poly) (map[int]Rat, error) {
	c, err := FFTConvolve(p.dense(), o.dense(), m.tolerance())
	if err != nil {
		return nil, err
	}
	terms := make(map[int]Rat, len(c))
	for d, v := range c {
		terms[d] = v
	}
	return terms, nil
}

// directTerms accumulates c1*c2 at d1+d2 for every pair of stored terms.
func directTerms(p, o Poly) map[int]Rat {
	terms := make(map[int]Rat, len(p.coeffs)+len(o.coeffs))
	for d1, c1 := range p.coeffs {
		if c1.IsZero() {
			continue
		}
		for d2, c2 := range o.coeffs {
			if c2.IsZero() {
				continue
			}
			terms[d1+d2] = terms[d1+d2].Add(c1.Mul(c2))
		}
	}
	return terms
}

// DirectConvolve is the exact O(n²) product of two coefficient vectors.
func DirectConvolve(a, b []Rat) []Rat {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]Rat, len(a)+len(b)-1)
	for i, x := range a {
		if x.IsZero() {
			continue
		}
		for j, y := range b {
			out[i+j] = out[i+j].Add(x.Mul(y))
		}
	}
	return out
}

// FFTConvolve multiplies two coefficient vectors through a radix-2 FFT.
// Both vectors are first scaled to integers, so each output coefficient must
// land within tol of an integer with an imaginary residue below tol;
// otherwise the result is rejected with ErrNumericAccuracy.
func FFTConvolve(a, b []Rat, tol float64) ([]Rat, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}
	if tol <= 0 {
		tol = DefaultFFTTolerance
	}
	ia, sa := integerVector(a)
	ib, sb := integerVector(b)
	if !fftSafeInts(ia, ib) {
		return nil, errors.Wrap(ErrNumericAccuracy, "coefficients exceed float64 precision")
	}

	n := 1
	for n < len(a)+len(b) {
		n <<= 1
	}
	fa, fb := make([]complex128, n), make([]complex128, n)
	for i, v := range ia {
		f, _ := new(big.Float).SetInt(v).Float64()
		fa[i] = complex(f, 0)
	}
	for i, v := range ib {
		f, _ := new(big.Float).SetInt(v).Float64()
		fb[i] = complex(f, 0)
	}
	fa, fb = fft(fa, false), fft(fb, false)
	for i := range fa {
		fa[i] *= fb[i]
	}
	prod := fft(fa, true)

	scale := new(big.Int).Mul(sa, sb)
	out := make([]Rat, len(a)+len(b)-1)
	for k := range out {
		v := prod[k] / complex(float64(n), 0)
		re, im := real(v), imag(v)
		rounded := math.Round(re)
		if math.Abs(re-rounded) > tol || math.Abs(im) > tol {
			return nil, errors.Wrapf(ErrNumericAccuracy, "coefficient %d is %v", k, v)
		}
		num, _ := new(big.Float).SetFloat64(rounded).Int(nil)
		out[k] = ratFrac(num, scale)
	}
	return out, nil
}

// fft is the recursive radix-2 transform; len(x) must be a power of two.
// The inverse is left unnormalized.
func fft(x []complex128, inverse bool) []complex128 {
	n := len(x)
	if n <= 1 {
		return append([]complex128(nil), x...)
	}
	even, odd := make([]complex128, n/2), make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i], odd[i] = x[2*i], x[2*i+1]
	}
	even, odd = fft(even, inverse), fft(odd, inverse)
	sign := -1.0
	if inverse {
		sign = 1
	}
	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		t := cmplx.Rect(1, sign*2*math.Pi*float64(k)/float64(n)) * odd[k]
		out[k] = even[k] + t
		out[k+n/2] = even[k] - t
	}
	return out
}

// integerVector scales v by the lcm of its denominators.
func integerVector(v []Rat) ([]*big.Int, *big.Int) {
	scale := big.NewInt(1)
	for _, c := range v {
		if !c.IsZero() {
			scale = LCMInt(scale, c.rat().Denom())
		}
	}
	out := make([]*big.Int, len(v))
	for i, c := range v {
		n := new(big.Int).Mul(c.rat().Num(), scale)
		out[i] = n.Quo(n, c.rat().Denom())
	}
	return out, scale
}

func fftSafe(a, b []Rat) bool {
	ia, _ := integerVector(a)
	ib, _ := integerVector(b)
	return fftSafeInts(ia, ib)
}

// fftSafeInts bounds every output coefficient by max|a|·max|b|·min(len).
func fftSafeInts(a, b []*big.Int) bool {
	bound := new(big.Int).Mul(maxAbs(a), maxAbs(b))
	bound.Mul(bound, big.NewInt(int64(min(len(a), len(b)))))
	return bound.Cmp(big.NewInt(fftSafeMagnitude)) < 0
}

func maxAbs(v []*big.Int) *big.Int {
	m := new(big.Int)
	for _, x := range v {
		if ax := new(big.Int).Abs(x); ax.Cmp(m) > 0 {
			m = ax
		}
	}
	return m
}
