package polyrat

import (
	"fmt"

	"github.com/pkg/errors"
)

// ============================================================
// Operand — the closed set of things operators accept
// ============================================================

// Operand is implemented by Int, Float, Rat, Poly, Fraction and Value only.
type Operand interface {
	operand()
}

// Int is a machine integer operand.
type Int int64

// Float is converted to an exact rational by the bounded approximation
// search before use.
type Float float64

func (Int) operand()      {}
func (Float) operand()    {}
func (Rat) operand()      {}
func (Poly) operand()     {}
func (Fraction) operand() {}
func (Value) operand()    {}

// ============================================================
// Value — normal form: polynomial part + proper fraction
// ============================================================

// Kind is the canonical variant of a Value.
type Kind int

const (
	KindInteger Kind = iota
	KindRational
	KindPolynomial
	KindFraction
	KindMixed
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindRational:
		return "rational"
	case KindPolynomial:
		return "polynomial"
	case KindFraction:
		return "fraction"
	case KindMixed:
		return "mixed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is poly + rem where rem is zero or a reduced proper fraction.
// Every rational function has exactly one such decomposition.
type Value struct {
	poly Poly
	rem  Fraction
}

// Variable is the monomial 1·symbol^1.
func Variable(symbol string) Value {
	return Value{poly: monomial(RatInt(1), 1, symbol)}
}

func (v Value) Poly() Poly          { return newPoly(v.poly.coeffs, v.poly.Symbol()) }
func (v Value) Remainder() Fraction { return v.rem }
func (v Value) IsZero() bool        { return v.poly.IsZero() && v.rem.IsZero() }

func (v Value) Symbol() string {
	if v.poly.IsConstant() && !v.rem.IsZero() {
		return v.rem.Symbol()
	}
	return v.poly.Symbol()
}

func (v Value) Kind() Kind {
	switch {
	case !v.rem.IsZero() && v.poly.IsZero():
		return KindFraction
	case !v.rem.IsZero():
		return KindMixed
	case !v.poly.IsConstant():
		return KindPolynomial
	case v.poly.Coeff(0).IsInt():
		return KindInteger
	}
	return KindRational
}

// Scalar returns the value when it is a pure number.
func (v Value) Scalar() (Rat, bool) {
	if k := v.Kind(); k == KindInteger || k == KindRational {
		return v.poly.Coeff(0), true
	}
	return Rat{}, false
}

func (v Value) Equal(o Value) bool { return v.poly.Equal(o.poly) && v.rem.Equal(o.rem) }

// asFraction folds the normal form back into one quotient N/D.
func (v Value) asFraction() (num, den Poly, err error) {
	den = v.rem.Denominator()
	num, err = v.poly.Mul(den, Multiplier{})
	if err != nil {
		return Poly{}, Poly{}, err
	}
	num, err = num.Add(v.rem.num)
	return num, den, err
}

// normalize is the single canonicalization step: reduce num/den, then split
// it into a polynomial quotient and a proper remainder fraction.
func normalize(num, den Poly) (Value, error) {
	f, err := NewFraction(num, den)
	if err != nil {
		return Value{}, err
	}
	q, r, err := DivMod(f.num, f.Denominator())
	if err != nil {
		return Value{}, err
	}
	rem, err := NewFraction(r, f.Denominator())
	if err != nil {
		return Value{}, err
	}
	return Value{poly: q, rem: rem}, nil
}

// ============================================================
// Engine — operators over Operands
// ============================================================

// Options configures an Engine.
type Options struct {
	Multiply     MulMode
	FFTThreshold int
	FFTTolerance float64
	ApproxBound  int64
}

func DefaultOptions() Options {
	return Options{
		Multiply:     MulExact,
		FFTThreshold: DefaultFFTThreshold,
		FFTTolerance: DefaultFFTTolerance,
		ApproxBound:  DefaultApproxBound,
	}
}

// Engine applies the arithmetic operators under fixed Options. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	if opts.ApproxBound <= 0 {
		opts.ApproxBound = DefaultApproxBound
	}
	return &Engine{opts: opts}
}

func (e *Engine) Options() Options { return e.opts }

func (e *Engine) multiplier() Multiplier {
	return Multiplier{Mode: e.opts.Multiply, Threshold: e.opts.FFTThreshold, Tolerance: e.opts.FFTTolerance}
}

// Lift converts any operand into its normal form.
func (e *Engine) Lift(op Operand) (Value, error) {
	switch v := op.(type) {
	case Int:
		return Value{poly: Constant(RatInt(int64(v)), "")}, nil
	case Float:
		r, err := Approximate(float64(v), e.opts.ApproxBound)
		if err != nil {
			return Value{}, err
		}
		return Value{poly: Constant(r, "")}, nil
	case Rat:
		return Value{poly: Constant(v, "")}, nil
	case Poly:
		return Value{poly: newPoly(v.coeffs, v.Symbol())}, nil
	case Fraction:
		return normalize(v.num, v.Denominator())
	case Value:
		return v, nil
	}
	return Value{}, errors.Wrapf(ErrTypeMismatch, "unsupported operand %T", op)
}

func (e *Engine) lift2(a, b Operand) (Value, Value, error) {
	va, err := e.Lift(a)
	if err != nil {
		return Value{}, Value{}, err
	}
	vb, err := e.Lift(b)
	if err != nil {
		return Value{}, Value{}, err
	}
	return va, vb, nil
}

func (e *Engine) Add(a, b Operand) (Value, error) {
	va, vb, err := e.lift2(a, b)
	if err != nil {
		return Value{}, err
	}
	if va.rem.IsZero() && vb.rem.IsZero() {
		p, err := va.poly.Add(vb.poly)
		return Value{poly: p}, err
	}
	na, da, err := va.asFraction()
	if err != nil {
		return Value{}, err
	}
	nb, db, err := vb.asFraction()
	if err != nil {
		return Value{}, err
	}
	left, err := na.Mul(db, Multiplier{})
	if err != nil {
		return Value{}, err
	}
	right, err := nb.Mul(da, Multiplier{})
	if err != nil {
		return Value{}, err
	}
	num, err := left.Add(right)
	if err != nil {
		return Value{}, err
	}
	den, err := da.Mul(db, Multiplier{})
	if err != nil {
		return Value{}, err
	}
	return normalize(num, den)
}

func (e *Engine) Sub(a, b Operand) (Value, error) {
	nb, err := e.Neg(b)
	if err != nil {
		return Value{}, err
	}
	return e.Add(a, nb)
}

func (e *Engine) Neg(a Operand) (Value, error) {
	v, err := e.Lift(a)
	if err != nil {
		return Value{}, err
	}
	return Value{poly: v.poly.Neg(), rem: v.rem.Neg()}, nil
}

func (e *Engine) Mul(a, b Operand) (Value, error) {
	va, vb, err := e.lift2(a, b)
	if err != nil {
		return Value{}, err
	}
	if va.rem.IsZero() && vb.rem.IsZero() {
		p, err := va.poly.Mul(vb.poly, e.multiplier())
		return Value{poly: p}, err
	}
	na, da, err := va.asFraction()
	if err != nil {
		return Value{}, err
	}
	nb, db, err := vb.asFraction()
	if err != nil {
		return Value{}, err
	}
	num, err := na.Mul(nb, Multiplier{})
	if err != nil {
		return Value{}, err
	}
	den, err := da.Mul(db, Multiplier{})
	if err != nil {
		return Value{}, err
	}
	return normalize(num, den)
}

// Quo divides a by b. Between polynomials the result is the Euclidean
// quotient plus remainder/b.
func (e *Engine) Quo(a, b Operand) (Value, error) {
	va, vb, err := e.lift2(a, b)
	if err != nil {
		return Value{}, err
	}
	if vb.IsZero() {
		return Value{}, errors.Wrapf(ErrDivisionByZero, "(%s) / 0", va)
	}
	if va.rem.IsZero() && vb.rem.IsZero() {
		q, r, err := DivMod(va.poly, vb.poly)
		if err != nil {
			return Value{}, err
		}
		rem, err := NewFraction(r, vb.poly)
		if err != nil {
			return Value{}, err
		}
		return Value{poly: q, rem: rem}, nil
	}
	na, da, err := va.asFraction()
	if err != nil {
		return Value{}, err
	}
	nb, db, err := vb.asFraction()
	if err != nil {
		return Value{}, err
	}
	num, err := na.Mul(db, Multiplier{})
	if err != nil {
		return Value{}, err
	}
	den, err := da.Mul(nb, Multiplier{})
	if err != nil {
		return Value{}, err
	}
	return normalize(num, den)
}

// Rem is the Euclidean remainder of a by b; both must be polynomials or
// scalars.
func (e *Engine) Rem(a, b Operand) (Value, error) {
	va, vb, err := e.lift2(a, b)
	if err != nil {
		return Value{}, err
	}
	if !va.rem.IsZero() || !vb.rem.IsZero() {
		return Value{}, errors.Wrapf(ErrTypeMismatch, "(%s) %% (%s) needs polynomial operands", va, vb)
	}
	_, r, err := DivMod(va.poly, vb.poly)
	if err != nil {
		return Value{}, err
	}
	return Value{poly: r}, nil
}

// Pow raises a to a non-negative integer power. x^0 is 1.
func (e *Engine) Pow(a, exp Operand) (Value, error) {
	n, err := e.exponent(exp)
	if err != nil {
		return Value{}, err
	}
	va, err := e.Lift(a)
	if err != nil {
		return Value{}, err
	}
	if va.rem.IsZero() {
		p, err := va.poly.Pow(n, e.multiplier())
		return Value{poly: p}, err
	}
	num, den, err := va.asFraction()
	if err != nil {
		return Value{}, err
	}
	if num, err = num.Pow(n, Multiplier{}); err != nil {
		return Value{}, err
	}
	if den, err = den.Pow(n, Multiplier{}); err != nil {
		return Value{}, err
	}
	return normalize(num, den)
}

func (e *Engine) exponent(exp Operand) (int, error) {
	v, err := e.Lift(exp)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidExponent, "exponent: %s", err.Error())
	}
	if v.Kind() != KindInteger {
		return 0, errors.Wrapf(ErrInvalidExponent, "exponent %s is not an integer", v)
	}
	n := v.poly.Coeff(0).Num()
	if n.Sign() < 0 || !n.IsInt64() || n.Int64() > int64(^uint32(0)>>1) {
		return 0, errors.Wrapf(ErrInvalidExponent, "exponent %s", n)
	}
	return int(n.Int64()), nil
}

// Evaluate substitutes point for the symbol. A point where the remainder's
// denominator vanishes fails with ErrPole.
func (e *Engine) Evaluate(v, point Operand) (Rat, error) {
	val, err := e.Lift(v)
	if err != nil {
		return Rat{}, err
	}
	x, err := scalarOf(point, e.opts.ApproxBound)
	if err != nil {
		return Rat{}, err
	}
	out := val.poly.Evaluate(x)
	if val.rem.IsZero() {
		return out, nil
	}
	r, err := val.rem.Evaluate(x)
	if err != nil {
		return Rat{}, err
	}
	return out.Add(r), nil
}

// GCD of two polynomial or scalar operands.
func (e *Engine) GCD(a, b Operand) (Value, error) {
	va, vb, err := e.lift2(a, b)
	if err != nil {
		return Value{}, err
	}
	if !va.rem.IsZero() || !vb.rem.IsZero() {
		return Value{}, errors.Wrapf(ErrTypeMismatch, "gcd(%s, %s) needs polynomial operands", va, vb)
	}
	g, err := GCD(va.poly, vb.poly)
	return Value{poly: g}, err
}

// scalarOf extracts a number from a scalar operand.
func scalarOf(op Operand, bound int64) (Rat, error) {
	switch v := op.(type) {
	case Int:
		return RatInt(int64(v)), nil
	case Float:
		return Approximate(float64(v), bound)
	case Rat:
		return v, nil
	case Poly:
		if v.IsConstant() {
			return v.Coeff(0), nil
		}
	case Value:
		if r, ok := v.Scalar(); ok {
			return r, nil
		}
	}
	return Rat{}, errors.Wrapf(ErrTypeMismatch, "%v is not a number", op)
}

// polyOf extracts a polynomial from a scalar or remainder-free operand.
func polyOf(op Operand) (Poly, error) {
	switch v := op.(type) {
	case Poly:
		return v, nil
	case Value:
		if v.rem.IsZero() {
			return v.poly, nil
		}
	case Fraction:
		if v.Denominator().IsConstant() {
			k, err := RatInt(1).Quo(v.Denominator().Coeff(0))
			if err != nil {
				return Poly{}, err
			}
			return v.num.Scale(k), nil
		}
	default:
		r, err := scalarOf(op, DefaultApproxBound)
		if err != nil {
			return Poly{}, err
		}
		return Constant(r, ""), nil
	}
	return Poly{}, errors.Wrapf(ErrTypeMismatch, "%v is not a polynomial", op)
}

// ============================================================
// Package-level operators (exact engine)
// ============================================================

var std = NewEngine(DefaultOptions())

func Lift(a Operand) (Value, error)          { return std.Lift(a) }
func Add(a, b Operand) (Value, error)        { return std.Add(a, b) }
func Sub(a, b Operand) (Value, error)        { return std.Sub(a, b) }
func Mul(a, b Operand) (Value, error)        { return std.Mul(a, b) }
func Quo(a, b Operand) (Value, error)        { return std.Quo(a, b) }
func Rem(a, b Operand) (Value, error)        { return std.Rem(a, b) }
func Pow(a, exp Operand) (Value, error)      { return std.Pow(a, exp) }
func Neg(a Operand) (Value, error)           { return std.Neg(a) }
func Evaluate(v, point Operand) (Rat, error) { return std.Evaluate(v, point) }
func GCDOf(a, b Operand) (Value, error)      { return std.GCD(a, b) }

// Add and the other Value operators run on the package's exact engine and
// ignore any configured Engine; call the Engine methods to use its Options.
func (v Value) Add(o Operand) (Value, error) { return std.Add(v, o) }
func (v Value) Sub(o Operand) (Value, error) { return std.Sub(v, o) }
func (v Value) Mul(o Operand) (Value, error) { return std.Mul(v, o) }
func (v Value) Quo(o Operand) (Value, error) { return std.Quo(v, o) }
func (v Value) Rem(o Operand) (Value, error) { return std.Rem(v, o) }
func (v Value) Pow(n int) (Value, error)     { return std.Pow(v, Int(n)) }
func (v Value) Neg() Value                   { return Value{poly: v.poly.Neg(), rem: v.rem.Neg()} }
