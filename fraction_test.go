package polyrat_test

import (
	"math/rand"
	"testing"

	"github.com/njchilds90/polyrat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFractionReduce(t *testing.T) {
	assert := assert.New(t)

	f, err := polyrat.NewFraction(px(t, -1, 0, 1), px(t, -1, 1))
	assert.NoError(err)
	assert.Equal("x + 1", f.Numerator().String())
	assert.Equal("1", f.Denominator().String())

	f, err = polyrat.NewFraction(px(t, 0, 2), px(t, 0, 0, 4))
	assert.NoError(err)
	assert.Equal("1/(2x)", f.String())
	assert.True(f.IsProper())

	half, err := polyrat.NewPoly(map[int]polyrat.Operand{1: rat(t, 1, 2)}, "x")
	require.NoError(t, err)
	f, err = polyrat.NewFraction(half, polyrat.Constant(rat(t, 1, 3), "x"))
	assert.NoError(err)
	assert.Equal("3x", f.Numerator().String())
	assert.Equal("2", f.Denominator().String())

	f, err = polyrat.NewFraction(px(t, 1), px(t, 0, -1))
	assert.NoError(err)
	assert.Equal("-1", f.Numerator().String())
	assert.Equal("x", f.Denominator().String())
	assert.Equal("-1/x", f.String())

	f, err = polyrat.NewFraction(px(t), px(t, 1, 1))
	assert.NoError(err)
	assert.True(f.IsZero())
	assert.Equal("1", f.Denominator().String())

	_, err = polyrat.NewFraction(px(t, 1), px(t))
	assert.ErrorIs(err, polyrat.ErrDivisionByZero)
	_, err = polyrat.NewFraction(px(t, 0, 1), psym(t, "y", 0, 1))
	assert.ErrorIs(err, polyrat.ErrTypeMismatch)

	var zero polyrat.Fraction
	assert.True(zero.IsZero())
	assert.Equal("1", zero.Denominator().String())
}

func TestFractionIdempotent(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(13))

	for i := 0; i < 30; i++ {
		f, err := polyrat.NewFraction(randomPoly(rng, rng.Intn(5)), randomPoly(rng, rng.Intn(5)))
		require.NoError(err)
		again, err := polyrat.NewFraction(f.Numerator(), f.Denominator())
		require.NoError(err)
		require.True(f.Equal(again), "%s != %s", f, again)
		require.True(f.Denominator().LeadingCoeff().Sign() > 0)

		g, err := polyrat.GCD(f.Numerator(), f.Denominator())
		require.NoError(err)
		require.True(g.IsConstant())
		for _, term := range append(f.Numerator().Terms(), f.Denominator().Terms()...) {
			require.True(term.Coeff.IsInt())
		}
	}
}

func TestFractionArithmetic(t *testing.T) {
	assert := assert.New(t)

	a, err := polyrat.FractionOf(polyrat.Int(1), px(t, 0, 1))
	require.NoError(t, err)
	b, err := polyrat.FractionOf(polyrat.Int(1), px(t, 1, 1))
	require.NoError(t, err)

	sum, err := a.Add(b)
	assert.NoError(err)
	assert.Equal("(2x + 1)/(x^2 + x)", sum.String())

	diff, err := a.Sub(a)
	assert.NoError(err)
	assert.True(diff.IsZero())

	prod, err := a.Mul(b)
	assert.NoError(err)
	assert.Equal("1/(x^2 + x)", prod.String())

	quo, err := a.Quo(b)
	assert.NoError(err)
	assert.Equal("(x + 1)/x", quo.String())
	_, err = a.Quo(polyrat.Fraction{})
	assert.ErrorIs(err, polyrat.ErrDivisionByZero)

	assert.Equal("-1/x", a.Neg().String())

	v, err := a.Evaluate(polyrat.RatInt(4))
	assert.NoError(err)
	assert.Equal("1/4", v.String())
	_, err = a.Evaluate(polyrat.Rat{})
	assert.ErrorIs(err, polyrat.ErrPole)

	_, err = polyrat.FractionOf(px(t, 1), polyrat.Int(0))
	assert.ErrorIs(err, polyrat.ErrDivisionByZero)
	_, err = polyrat.FractionOf(polyrat.Float(0.5), px(t, 0, 1))
	assert.NoError(err)
}
