package polyrat

import (
	"github.com/pkg/errors"
)

// ============================================================
// Fraction — reduced quotient of two polynomials
// ============================================================

// Fraction is num/den with integer and rational operands stored as constant
// polynomials. After NewFraction the operands share no non-constant factor,
// have coprime integer coefficients, and den has a positive leading
// coefficient. The zero value is the zero fraction.
type Fraction struct {
	num, den Poly
}

// NewFraction reduces num/den. A zero numerator yields the zero fraction.
func NewFraction(num, den Poly) (Fraction, error) {
	sym, err := unifySymbol(num, den)
	if err != nil {
		return Fraction{}, err
	}
	if den.IsZero() {
		return Fraction{}, errors.Wrapf(ErrDivisionByZero, "(%s) / 0", num)
	}
	if num.IsZero() {
		return Fraction{num: newPoly(nil, sym), den: Constant(RatInt(1), sym)}, nil
	}

	g, err := GCD(num, den)
	if err != nil {
		return Fraction{}, err
	}
	if !g.IsConstant() {
		if num, _, err = DivMod(num, g); err != nil {
			return Fraction{}, err
		}
		if den, _, err = DivMod(den, g); err != nil {
			return Fraction{}, err
		}
	}

	// Multiplying by lcm(denominators)/gcd(numerators) over both operands
	// leaves integer coefficients with joint content 1.
	k, err := RatInt(1).Quo(gcdRat(num.Content(), den.Content()))
	if err != nil {
		return Fraction{}, err
	}
	if den.LeadingCoeff().Sign() < 0 {
		k = k.Neg()
	}
	return Fraction{num: newPoly(num.Scale(k).coeffs, sym), den: newPoly(den.Scale(k).coeffs, sym)}, nil
}

// FractionOf reduces a/b for scalar or polynomial operands.
func FractionOf(a, b Operand) (Fraction, error) {
	num, err := polyOf(a)
	if err != nil {
		return Fraction{}, err
	}
	den, err := polyOf(b)
	if err != nil {
		return Fraction{}, err
	}
	return NewFraction(num, den)
}

func (f Fraction) Numerator() Poly { return f.num }

func (f Fraction) Denominator() Poly {
	if f.den.IsZero() {
		return Constant(RatInt(1), f.num.Symbol())
	}
	return f.den
}

func (f Fraction) IsZero() bool { return f.num.IsZero() }

func (f Fraction) Symbol() string {
	if f.num.IsConstant() {
		return f.Denominator().Symbol()
	}
	return f.num.Symbol()
}

// IsProper reports deg(num) < deg(den).
func (f Fraction) IsProper() bool { return f.num.Degree() < f.Denominator().Degree() }

func (f Fraction) Equal(o Fraction) bool {
	return f.num.Equal(o.num) && f.Denominator().Equal(o.Denominator())
}

func (f Fraction) Neg() Fraction { return Fraction{num: f.num.Neg(), den: f.Denominator()} }

func (f Fraction) Add(o Fraction) (Fraction, error) {
	ad, err := f.num.Mul(o.Denominator(), Multiplier{})
	if err != nil {
		return Fraction{}, err
	}
	bc, err := o.num.Mul(f.Denominator(), Multiplier{})
	if err != nil {
		return Fraction{}, err
	}
	num, err := ad.Add(bc)
	if err != nil {
		return Fraction{}, err
	}
	den, err := f.Denominator().Mul(o.Denominator(), Multiplier{})
	if err != nil {
		return Fraction{}, err
	}
	return NewFraction(num, den)
}

func (f Fraction) Sub(o Fraction) (Fraction, error) { return f.Add(o.Neg()) }

func (f Fraction) Mul(o Fraction) (Fraction, error) {
	num, err := f.num.Mul(o.num, Multiplier{})
	if err != nil {
		return Fraction{}, err
	}
	den, err := f.Denominator().Mul(o.Denominator(), Multiplier{})
	if err != nil {
		return Fraction{}, err
	}
	return NewFraction(num, den)
}

func (f Fraction) Quo(o Fraction) (Fraction, error) {
	if o.IsZero() {
		return Fraction{}, errors.Wrapf(ErrDivisionByZero, "(%s) / 0", f)
	}
	return f.Mul(Fraction{num: o.Denominator(), den: o.num})
}

// Evaluate returns num(x)/den(x), or ErrPole when den(x) is zero.
func (f Fraction) Evaluate(x Rat) (Rat, error) {
	den := f.Denominator().Evaluate(x)
	if den.IsZero() {
		return Rat{}, errors.Wrapf(ErrPole, "%s at %s = %s", f, f.Symbol(), x)
	}
	return f.num.Evaluate(x).Quo(den)
}
