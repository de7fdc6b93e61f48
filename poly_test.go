package polyrat_test

import (
	"math/big"
	"testing"

	"github.com/njchilds90/polyrat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// px builds a polynomial in x from coefficients in ascending degree.
func px(t *testing.T, coeffs ...int64) polyrat.Poly {
	return psym(t, "x", coeffs...)
}

func psym(t *testing.T, symbol string, coeffs ...int64) polyrat.Poly {
	m := make(map[int]polyrat.Operand, len(coeffs))
	for d, c := range coeffs {
		m[d] = polyrat.Int(c)
	}
	p, err := polyrat.NewPoly(m, symbol)
	require.NoError(t, err)
	return p
}

func TestPolyConstruction(t *testing.T) {
	assert := assert.New(t)

	p := px(t, -1, 0, 1)
	assert.Equal(2, p.Degree())
	assert.Equal("x^2 - 1", p.String())
	assert.Equal("1", p.LeadingCoeff().String())
	terms := p.Terms()
	require.Len(t, terms, 2)
	assert.Equal(2, terms[0].Degree)
	assert.Equal(0, terms[1].Degree)
	assert.Equal("-1", terms[1].Coeff.String())

	zero := px(t)
	assert.True(zero.IsZero())
	assert.Equal(-1, zero.Degree())
	_, ok := zero.Coeffs()[0]
	assert.True(ok)
	assert.Len(zero.Coeffs(), 1)

	half, err := polyrat.NewPoly(map[int]polyrat.Operand{1: polyrat.Float(0.5), 0: rat(t, 2, 3)}, "")
	assert.NoError(err)
	assert.Equal("(1/2)x + 2/3", half.String())
	assert.Equal(polyrat.DefaultSymbol, half.Symbol())

	_, err = polyrat.NewPoly(map[int]polyrat.Operand{-1: polyrat.Int(1)}, "x")
	assert.ErrorIs(err, polyrat.ErrTypeMismatch)
	_, err = polyrat.Monomial(polyrat.RatInt(5), -3, "x")
	assert.ErrorIs(err, polyrat.ErrTypeMismatch)
	m, err := polyrat.Monomial(polyrat.RatInt(5), 3, "x")
	assert.NoError(err)
	assert.Equal("5x^3", m.String())
	_, err = polyrat.NewPoly(map[int]polyrat.Operand{1: px(t, 0, 1)}, "x")
	assert.ErrorIs(err, polyrat.ErrTypeMismatch)

	// Zero coefficients above degree 0 are not stored.
	sparse, err := polyrat.NewPoly(map[int]polyrat.Operand{5: polyrat.Int(0), 1: polyrat.Int(3)}, "x")
	assert.NoError(err)
	assert.Equal(1, sparse.Degree())
	assert.Len(sparse.Coeffs(), 2)
}

func TestPolyArithmetic(t *testing.T) {
	assert := assert.New(t)

	a, b := px(t, 1, 1), px(t, -1, 1)
	sum, err := a.Add(b)
	assert.NoError(err)
	assert.Equal("2x", sum.String())

	diff, err := a.Sub(a)
	assert.NoError(err)
	assert.True(diff.IsZero())

	prod, err := a.Mul(b, polyrat.Multiplier{})
	assert.NoError(err)
	assert.True(prod.Equal(px(t, -1, 0, 1)))

	assert.Equal("-x - 1", a.Neg().String())
	assert.Equal("(3/2)x + 3/2", a.Scale(rat(t, 3, 2)).String())
	assert.Equal("x + 5", a.AddScalar(polyrat.RatInt(4)).String())

	sq, err := a.Pow(2, polyrat.Multiplier{})
	assert.NoError(err)
	assert.Equal("x^2 + 2x + 1", sq.String())
	one, err := a.Pow(0, polyrat.Multiplier{})
	assert.NoError(err)
	assert.Equal("1", one.String())
	_, err = a.Pow(-1, polyrat.Multiplier{})
	assert.ErrorIs(err, polyrat.ErrInvalidExponent)

	p, err := px(t, 1, -2, 1).Pow(5, polyrat.Multiplier{})
	assert.NoError(err)
	assert.Equal(10, p.Degree())
	assert.Equal("-252", p.Coeff(5).String())
}

func TestPolySymbols(t *testing.T) {
	assert := assert.New(t)

	x, y := px(t, 0, 1), psym(t, "y", 0, 1)
	_, err := x.Add(y)
	assert.ErrorIs(err, polyrat.ErrTypeMismatch)
	_, err = x.Mul(y, polyrat.Multiplier{})
	assert.ErrorIs(err, polyrat.ErrTypeMismatch)

	// Constants adopt the symbol of the other operand.
	c := px(t, 3)
	s, err := c.Add(y)
	assert.NoError(err)
	assert.Equal("y", s.Symbol())
	assert.Equal("y + 3", s.String())
	assert.True(px(t, 3).Equal(psym(t, "y", 3)))
	assert.False(x.Equal(y))
}

func TestPolyEvaluate(t *testing.T) {
	assert := assert.New(t)

	p := px(t, -1, 0, 1)
	assert.Equal("8", p.Evaluate(polyrat.RatInt(3)).String())
	assert.Equal("-3/4", p.Evaluate(rat(t, 1, 2)).String())
	assert.Equal("0", px(t).Evaluate(polyrat.RatInt(9)).String())
	assert.Equal("7", px(t, 7).Evaluate(polyrat.RatInt(9)).String())
}

func TestPolyContent(t *testing.T) {
	assert := assert.New(t)

	p, err := polyrat.NewPoly(map[int]polyrat.Operand{1: rat(t, 1, 2), 0: rat(t, 1, 3)}, "x")
	require.NoError(t, err)
	assert.Equal("1/6", p.Content().String())
	assert.Equal("3x + 2", p.PrimitivePart().String())

	n := px(t, -4, -2)
	assert.Equal("2", n.Content().String())
	assert.Equal("x + 2", n.PrimitivePart().String())
	assert.True(px(t).Content().IsZero())

	// Coefficients beyond int64 take the big.Int path.
	huge := new(big.Int).Lsh(big.NewInt(3), 70)
	m, err := polyrat.Monomial(polyrat.RatFromInt(huge), 2, "x")
	require.NoError(t, err)
	b := m.AddScalar(polyrat.RatFromInt(new(big.Int).Lsh(big.NewInt(6), 70)))
	assert.Equal(polyrat.RatFromInt(huge).String(), b.Content().String())
	assert.Equal("x^2 + 2", b.PrimitivePart().String())
}
