package polyrat

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// ============================================================
// Euclidean division and GCD
// ============================================================

func gcdSmall[T constraints.Integer](a, b T) T {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lcmSmall reports false when the result does not fit in an int64.
func lcmSmall[T constraints.Signed](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	g := gcdSmall(a, b)
	q := a / g
	if q < 0 {
		q = -q
	}
	if b < 0 {
		b = -b
	}
	if int64(q) > math.MaxInt64/int64(b) {
		return 0, false
	}
	return q * b, true
}

// GCDInt is the classic Euclidean algorithm on |a| and |b|.
func GCDInt(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x, y = y, x.Rem(x, y)
	}
	return x
}

// LCMInt is |a*b| / gcd(a, b), or zero when either is zero.
func LCMInt(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := GCDInt(a, b)
	out := new(big.Int).Quo(new(big.Int).Abs(a), g)
	return out.Mul(out, new(big.Int).Abs(b))
}

// gcdRat extends gcd to rationals: gcd of numerators over lcm of denominators.
func gcdRat(a, b Rat) Rat {
	switch {
	case a.IsZero():
		return b.Abs()
	case b.IsZero():
		return a.Abs()
	}
	num := GCDInt(a.rat().Num(), b.rat().Num())
	den := LCMInt(a.rat().Denom(), b.rat().Denom())
	return ratFrac(num, den)
}

// DivMod divides a by b, returning quotient and remainder with
// deg(r) < deg(b). Each step cancels the leading term of the running
// remainder, so the loop ends after at most deg(a)-deg(b)+1 steps.
func DivMod(a, b Poly) (q, r Poly, err error) {
	sym, err := unifySymbol(a, b)
	if err != nil {
		return Poly{}, Poly{}, err
	}
	if b.IsZero() {
		return Poly{}, Poly{}, errors.Wrapf(ErrDivisionByZero, "(%s) / 0", a)
	}
	exact := Multiplier{}
	q, r = newPoly(nil, sym), a
	db, lb := b.Degree(), b.LeadingCoeff()
	for !r.IsZero() && r.Degree() >= db {
		k, _ := r.LeadingCoeff().Quo(lb)
		m := monomial(k, r.Degree()-db, sym)
		if q, err = q.Add(m); err != nil {
			return Poly{}, Poly{}, err
		}
		mb, err := m.Mul(b, exact)
		if err != nil {
			return Poly{}, Poly{}, err
		}
		if r, err = r.Sub(mb); err != nil {
			return Poly{}, Poly{}, err
		}
	}
	return q, newPoly(r.coeffs, sym), nil
}

// GCD returns the greatest common divisor of a and b, normalized as
// gcd(content(a), content(b)) times the primitive part of the Euclidean
// result. The result does not depend on argument order, GCD(a, 0) equals a
// whenever a has a positive leading coefficient, and for constants it is
// the integer gcd (GCD(12, 18) == 6).
func GCD(a, b Poly) (Poly, error) {
	sym, err := unifySymbol(a, b)
	if err != nil {
		return Poly{}, err
	}
	c := gcdRat(a.Content(), b.Content())
	x, y := a, b
	for !y.IsZero() {
		if x.Degree() < y.Degree() {
			x, y = y, x
			continue
		}
		_, r, err := DivMod(x, y)
		if err != nil {
			return Poly{}, err
		}
		x, y = y, r
	}
	return newPoly(x.PrimitivePart().Scale(c).coeffs, sym), nil
}
