package polyrat

import (
	"math"
	"math/big"
	"sort"

	"github.com/pkg/errors"
)

// ============================================================
// Poly — sparse univariate polynomial with rational coefficients
// ============================================================

// DefaultSymbol names the variable of polynomials built from bare scalars.
const DefaultSymbol = "x"

// Poly maps degree to coefficient. The degree-0 entry is always present, so
// the zero polynomial is exactly {0: 0}; every other stored entry is nonzero.
// A Poly is never modified after construction.
type Poly struct {
	coeffs map[int]Rat
	symbol string
}

// Term is one degree/coefficient pair of a polynomial.
type Term struct {
	Degree int
	Coeff  Rat
}

func newPoly(terms map[int]Rat, symbol string) Poly {
	out := make(map[int]Rat, len(terms)+1)
	out[0] = Rat{}
	for deg, c := range terms {
		if deg != 0 && c.IsZero() {
			continue
		}
		out[deg] = c
	}
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return Poly{coeffs: out, symbol: symbol}
}

// NewPoly builds a polynomial from scalar coefficients. Degrees must be
// non-negative; coefficients must be Int, Float or Rat.
func NewPoly(coeffs map[int]Operand, symbol string) (Poly, error) {
	terms := make(map[int]Rat, len(coeffs))
	for deg, op := range coeffs {
		if deg < 0 {
			return Poly{}, errors.Wrapf(ErrTypeMismatch, "negative degree %d", deg)
		}
		c, err := scalarOf(op, DefaultApproxBound)
		if err != nil {
			return Poly{}, errors.Wrapf(err, "coefficient of degree %d", deg)
		}
		terms[deg] = c
	}
	return newPoly(terms, symbol), nil
}

// Monomial is c·symbol^deg. A negative degree is ErrTypeMismatch.
func Monomial(c Rat, deg int, symbol string) (Poly, error) {
	if deg < 0 {
		return Poly{}, errors.Wrapf(ErrTypeMismatch, "negative degree %d", deg)
	}
	return monomial(c, deg, symbol), nil
}

func monomial(c Rat, deg int, symbol string) Poly { return newPoly(map[int]Rat{deg: c}, symbol) }

func Constant(c Rat, symbol string) Poly { return newPoly(map[int]Rat{0: c}, symbol) }

func (p Poly) Symbol() string {
	if p.symbol == "" {
		return DefaultSymbol
	}
	return p.symbol
}

// Degree is the largest degree with a nonzero coefficient, or -1 for the
// zero polynomial.
func (p Poly) Degree() int {
	deg := -1
	for d, c := range p.coeffs {
		if d > deg && !c.IsZero() {
			deg = d
		}
	}
	return deg
}

func (p Poly) Coeff(deg int) Rat { return p.coeffs[deg] }

func (p Poly) LeadingCoeff() Rat {
	if d := p.Degree(); d >= 0 {
		return p.coeffs[d]
	}
	return Rat{}
}

func (p Poly) IsZero() bool     { return p.Degree() < 0 }
func (p Poly) IsConstant() bool { return p.Degree() <= 0 }

// Coeffs returns a copy of the coefficient map, including the degree-0 key.
func (p Poly) Coeffs() map[int]Rat {
	out := make(map[int]Rat, len(p.coeffs)+1)
	out[0] = Rat{}
	for d, c := range p.coeffs {
		out[d] = c
	}
	return out
}

// Terms lists the nonzero terms by descending degree.
func (p Poly) Terms() []Term {
	terms := make([]Term, 0, len(p.coeffs))
	for d, c := range p.coeffs {
		if !c.IsZero() {
			terms = append(terms, Term{Degree: d, Coeff: c})
		}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Degree > terms[j].Degree })
	return terms
}

func (p Poly) Equal(o Poly) bool {
	if p.Degree() != o.Degree() {
		return false
	}
	if !p.IsConstant() && p.Symbol() != o.Symbol() {
		return false
	}
	for d, c := range p.coeffs {
		if !c.Equal(o.coeffs[d]) {
			return false
		}
	}
	for d, c := range o.coeffs {
		if !c.Equal(p.coeffs[d]) {
			return false
		}
	}
	return true
}

// unifySymbol picks the symbol of a binary result. Constants take the
// symbol of the other operand.
func unifySymbol(a, b Poly) (string, error) {
	switch {
	case a.IsConstant():
		return b.Symbol(), nil
	case b.IsConstant():
		return a.Symbol(), nil
	case a.Symbol() != b.Symbol():
		return "", errors.Wrapf(ErrTypeMismatch, "polynomials in %s and %s", a.Symbol(), b.Symbol())
	}
	return a.Symbol(), nil
}

func (p Poly) Add(o Poly) (Poly, error) {
	sym, err := unifySymbol(p, o)
	if err != nil {
		return Poly{}, err
	}
	terms := p.Coeffs()
	for d, c := range o.coeffs {
		terms[d] = terms[d].Add(c)
	}
	return newPoly(terms, sym), nil
}

func (p Poly) Sub(o Poly) (Poly, error) { return p.Add(o.Neg()) }

func (p Poly) Neg() Poly { return p.Scale(RatInt(-1)) }

func (p Poly) Scale(k Rat) Poly {
	terms := make(map[int]Rat, len(p.coeffs))
	for d, c := range p.coeffs {
		terms[d] = c.Mul(k)
	}
	return newPoly(terms, p.Symbol())
}

func (p Poly) AddScalar(k Rat) Poly {
	terms := p.Coeffs()
	terms[0] = terms[0].Add(k)
	return newPoly(terms, p.Symbol())
}

// Mul multiplies two polynomials using m to pick the convolution path.
func (p Poly) Mul(o Poly, m Multiplier) (Poly, error) {
	sym, err := unifySymbol(p, o)
	if err != nil {
		return Poly{}, err
	}
	if p.IsZero() || o.IsZero() {
		return newPoly(nil, sym), nil
	}
	terms, err := m.convolve(p, o)
	if err != nil {
		return Poly{}, err
	}
	return newPoly(terms, sym), nil
}

// Pow raises p to a non-negative power by square-and-multiply.
func (p Poly) Pow(n int, m Multiplier) (Poly, error) {
	if n < 0 {
		return Poly{}, errors.Wrapf(ErrInvalidExponent, "(%s)^%d", p, n)
	}
	out := Constant(RatInt(1), p.Symbol())
	base := p
	for n > 0 {
		var err error
		if n&1 == 1 {
			out, err = out.Mul(base, m)
			if err != nil {
				return Poly{}, err
			}
		}
		n >>= 1
		if n == 0 {
			break
		}
		base, err = base.Mul(base, m)
		if err != nil {
			return Poly{}, err
		}
	}
	return out, nil
}

// Evaluate substitutes x for the symbol using Horner's rule.
func (p Poly) Evaluate(x Rat) Rat {
	deg := p.Degree()
	if deg < 0 {
		return Rat{}
	}
	acc := p.coeffs[deg]
	for d := deg - 1; d >= 0; d-- {
		acc = acc.Mul(x).Add(p.coeffs[d])
	}
	return acc
}

// Content is gcd(numerators)/lcm(denominators) of the nonzero coefficients;
// it is positive, or zero for the zero polynomial.
func (p Poly) Content() Rat {
	if n, d, ok := p.smallContent(); ok {
		if n == 0 {
			return Rat{}
		}
		return Rat{val: big.NewRat(n, d)}
	}
	num, den := new(big.Int), big.NewInt(1)
	for _, c := range p.coeffs {
		if c.IsZero() {
			continue
		}
		num = GCDInt(num, c.rat().Num())
		den = LCMInt(den, c.rat().Denom())
	}
	if num.Sign() == 0 {
		return Rat{}
	}
	return ratFrac(num, den)
}

// smallContent computes Content in machine integers while every
// coefficient fits in an int64.
func (p Poly) smallContent() (num, den int64, ok bool) {
	den = 1
	for _, c := range p.coeffs {
		if c.IsZero() {
			continue
		}
		n, d := c.rat().Num(), c.rat().Denom()
		if !n.IsInt64() || !d.IsInt64() || n.Int64() == math.MinInt64 {
			return 0, 0, false
		}
		num = gcdSmall(num, n.Int64())
		if den, ok = lcmSmall(den, d.Int64()); !ok {
			return 0, 0, false
		}
	}
	return num, den, true
}

// PrimitivePart divides out the content and makes the leading coefficient
// positive, leaving coprime integer coefficients.
func (p Poly) PrimitivePart() Poly {
	if p.IsZero() {
		return p
	}
	k, _ := RatInt(1).Quo(p.Content())
	if p.LeadingCoeff().Sign() < 0 {
		k = k.Neg()
	}
	return p.Scale(k)
}

// dense lays the coefficients out by degree, up to Degree().
func (p Poly) dense() []Rat {
	out := make([]Rat, p.Degree()+1)
	for d, c := range p.coeffs {
		if d < len(out) {
			out[d] = c
		}
	}
	return out
}
