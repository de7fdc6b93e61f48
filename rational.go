package polyrat

import (
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ============================================================
// Rat — exact rational number
// ============================================================

// DefaultApproxBound caps numerator and denominator in Approximate.
const DefaultApproxBound = 1000

// DefaultEpsilon is the tolerance used by ApproxEqual when none is given.
const DefaultEpsilon = 1e-20

const approxTolerance = 1e-19

// Rat is an immutable rational in lowest terms with a positive denominator.
// The zero value is 0.
type Rat struct{ val *big.Rat }

func NewRat(num, den int64) (Rat, error) {
	if den == 0 {
		return Rat{}, errors.Wrapf(ErrDivisionByZero, "rational %d/0", num)
	}
	return Rat{val: big.NewRat(num, den)}, nil
}

func RatInt(n int64) Rat { return Rat{val: new(big.Rat).SetInt64(n)} }

// RatFromBig copies r.
func RatFromBig(r *big.Rat) Rat { return Rat{val: new(big.Rat).Set(r)} }

func RatFromInt(n *big.Int) Rat { return Rat{val: new(big.Rat).SetInt(n)} }

func ratFrac(num, den *big.Int) Rat { return Rat{val: new(big.Rat).SetFrac(num, den)} }

// ParseRat reads "p/q", an integer or a decimal literal such as "-0.125".
func ParseRat(s string) (Rat, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return Rat{}, errors.Wrapf(ErrConversion, "invalid rational %q", s)
		}
		return Rat{val: r}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rat{}, errors.Wrapf(ErrConversion, "invalid number %q: %s", s, err.Error())
	}
	return ratFromDecimal(d), nil
}

func ratFromDecimal(d decimal.Decimal) Rat {
	r := new(big.Rat).SetInt(d.Coefficient())
	exp := int64(d.Exponent())
	if exp == 0 {
		return Rat{val: r}
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(abs64(exp)), nil)
	if exp > 0 {
		return Rat{val: r.Mul(r, new(big.Rat).SetInt(scale))}
	}
	return Rat{val: r.Quo(r, new(big.Rat).SetInt(scale))}
}

// Approximate finds the fraction n/d with n, d <= bound that matches f.
// The search walks n/d from 1/1 toward |f| one step at a time and fails
// with ErrConversion once either term passes bound. Whole floats convert
// exactly regardless of bound.
func Approximate(f float64, bound int64) (Rat, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rat{}, errors.Wrapf(ErrConversion, "cannot convert %v", f)
	}
	if f == math.Trunc(f) {
		return Rat{val: new(big.Rat).SetFloat64(f)}, nil
	}
	if bound <= 0 {
		bound = DefaultApproxBound
	}
	target := math.Abs(f)
	n, d := int64(1), int64(1)
	for math.Abs(target-float64(n)/float64(d)) > approxTolerance {
		if n > bound || d > bound {
			return Rat{}, errors.Wrapf(ErrConversion, "%v has no fraction with terms up to %d", f, bound)
		}
		if float64(n)/float64(d) < target {
			n++
		} else {
			d++
		}
	}
	if f < 0 {
		n = -n
	}
	return Rat{val: big.NewRat(n, d)}, nil
}

func (r Rat) rat() *big.Rat {
	if r.val == nil {
		return new(big.Rat)
	}
	return r.val
}

func (r Rat) Add(o Rat) Rat { return Rat{val: new(big.Rat).Add(r.rat(), o.rat())} }
func (r Rat) Sub(o Rat) Rat { return Rat{val: new(big.Rat).Sub(r.rat(), o.rat())} }
func (r Rat) Mul(o Rat) Rat { return Rat{val: new(big.Rat).Mul(r.rat(), o.rat())} }
func (r Rat) Neg() Rat      { return Rat{val: new(big.Rat).Neg(r.rat())} }
func (r Rat) Abs() Rat      { return Rat{val: new(big.Rat).Abs(r.rat())} }

func (r Rat) Quo(o Rat) (Rat, error) {
	if o.IsZero() {
		return Rat{}, errors.Wrapf(ErrDivisionByZero, "%s / 0", r)
	}
	return Rat{val: new(big.Rat).Quo(r.rat(), o.rat())}, nil
}

// Pow raises r to an integer power with |n| <= MaxInt32; negative powers
// invert.
func (r Rat) Pow(n int) (Rat, error) {
	if n < -math.MaxInt32 || n > math.MaxInt32 {
		return Rat{}, errors.Wrapf(ErrInvalidExponent, "%s^%d", r, n)
	}
	base := r.rat()
	if n < 0 {
		if r.IsZero() {
			return Rat{}, errors.Wrapf(ErrDivisionByZero, "0^%d", n)
		}
		base = new(big.Rat).Inv(base)
		n = -n
	}
	e := big.NewInt(int64(n))
	num := new(big.Int).Exp(base.Num(), e, nil)
	den := new(big.Int).Exp(base.Denom(), e, nil)
	return ratFrac(num, den), nil
}

func (r Rat) Cmp(o Rat) int    { return r.rat().Cmp(o.rat()) }
func (r Rat) Equal(o Rat) bool { return r.Cmp(o) == 0 }
func (r Rat) Sign() int        { return r.rat().Sign() }
func (r Rat) IsZero() bool     { return r.Sign() == 0 }
func (r Rat) IsOne() bool      { return r.IsInt() && r.rat().Num().Cmp(big.NewInt(1)) == 0 }
func (r Rat) IsInt() bool      { return r.rat().IsInt() }
func (r Rat) Num() *big.Int    { return new(big.Int).Set(r.rat().Num()) }
func (r Rat) Den() *big.Int    { return new(big.Int).Set(r.rat().Denom()) }
func (r Rat) Big() *big.Rat    { return new(big.Rat).Set(r.rat()) }

func (r Rat) Float64() float64 {
	f, _ := r.rat().Float64()
	return f
}

// ApproxEqual compares through float64 with tolerance eps. It is not exact:
// distinct rationals closer than eps compare equal.
func (r Rat) ApproxEqual(o Rat, eps float64) bool {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	return math.Abs(r.Float64()-o.Float64()) <= eps
}

func (r Rat) String() string {
	if r.IsInt() {
		return r.rat().Num().String()
	}
	return r.rat().RatString()
}

// DecimalString renders r rounded to places decimal digits.
func (r Rat) DecimalString(places int32) string {
	num := decimal.NewFromBigInt(r.rat().Num(), 0)
	den := decimal.NewFromBigInt(r.rat().Denom(), 0)
	return num.DivRound(den, places).StringFixed(places)
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
