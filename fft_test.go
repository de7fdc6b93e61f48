package polyrat_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/njchilds90/polyrat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVector(rng *rand.Rand, n int) []polyrat.Rat {
	out := make([]polyrat.Rat, n)
	for i := range out {
		out[i], _ = polyrat.NewRat(rng.Int63n(41)-20, rng.Int63n(5)+1)
	}
	return out
}

func TestParseMulMode(t *testing.T) {
	assert := assert.New(t)

	for in, want := range map[string]polyrat.MulMode{
		"":       polyrat.MulExact,
		"exact":  polyrat.MulExact,
		"Direct": polyrat.MulExact,
		"auto":   polyrat.MulAuto,
		" FFT ":  polyrat.MulFFT,
	} {
		m, err := polyrat.ParseMulMode(in)
		assert.NoError(err, in)
		assert.Equal(want, m, in)
	}
	_, err := polyrat.ParseMulMode("karatsuba")
	assert.ErrorIs(err, polyrat.ErrTypeMismatch)
	assert.Equal("auto", polyrat.MulAuto.String())
	assert.Equal("exact", polyrat.MulExact.String())
}

func TestFFTMatchesDirect(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 40; i++ {
		a := randomVector(rng, rng.Intn(32)+1)
		b := randomVector(rng, rng.Intn(32)+1)
		require.Less(len(a)+len(b)-2, 64)

		direct := polyrat.DirectConvolve(a, b)
		fast, err := polyrat.FFTConvolve(a, b, 0)
		require.NoError(err)
		require.Len(fast, len(direct))
		for k := range direct {
			require.True(direct[k].Equal(fast[k]), "coefficient %d: %s != %s", k, direct[k], fast[k])
		}
	}

	out, err := polyrat.FFTConvolve(nil, randomVector(rng, 3), 0)
	require.NoError(err)
	require.Nil(out)
}

func TestFFTAccuracy(t *testing.T) {
	assert := assert.New(t)

	huge := polyrat.RatFromInt(new(big.Int).Lsh(big.NewInt(1), 60))
	a := []polyrat.Rat{huge, polyrat.RatInt(1)}
	_, err := polyrat.FFTConvolve(a, a, 0)
	assert.ErrorIs(err, polyrat.ErrNumericAccuracy)

	m, err := polyrat.Monomial(huge, 1, "x")
	assert.NoError(err)
	x := m.AddScalar(polyrat.RatInt(1))
	_, err = x.Mul(x, polyrat.Multiplier{Mode: polyrat.MulFFT})
	assert.ErrorIs(err, polyrat.ErrNumericAccuracy)

	// Auto mode falls back to the exact product.
	auto := polyrat.Multiplier{Mode: polyrat.MulAuto, Threshold: 2}
	p, err := x.Mul(x, auto)
	assert.NoError(err)
	exact, err := x.Mul(x, polyrat.Multiplier{})
	assert.NoError(err)
	assert.True(p.Equal(exact))
}

func TestEngineMultiplyModes(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(5))

	exact := polyrat.NewEngine(polyrat.DefaultOptions())
	fft := polyrat.NewEngine(polyrat.Options{Multiply: polyrat.MulFFT})
	auto := polyrat.NewEngine(polyrat.Options{Multiply: polyrat.MulAuto, FFTThreshold: 8})
	require.Equal(polyrat.MulFFT, fft.Options().Multiply)
	require.Equal(int64(polyrat.DefaultApproxBound), fft.Options().ApproxBound)

	for i := 0; i < 10; i++ {
		a := randomPoly(rng, rng.Intn(30))
		b := randomPoly(rng, rng.Intn(30))
		want, err := exact.Mul(a, b)
		require.NoError(err)
		got, err := fft.Mul(a, b)
		require.NoError(err)
		require.True(want.Equal(got), "fft: %s != %s", want, got)
		got, err = auto.Mul(a, b)
		require.NoError(err)
		require.True(want.Equal(got), "auto: %s != %s", want, got)

		want, err = exact.Pow(a, polyrat.Int(3))
		require.NoError(err)
		got, err = auto.Pow(a, polyrat.Int(3))
		require.NoError(err)
		require.True(want.Equal(got))
	}
}

func TestAutoModeSparseOperands(t *testing.T) {
	require := require.New(t)

	x := polyrat.Variable("x")
	for _, threshold := range []int{1, 8} {
		auto := polyrat.NewEngine(polyrat.Options{Multiply: polyrat.MulAuto, FFTThreshold: threshold})
		high, err := auto.Pow(x, polyrat.Int(1<<30))
		require.NoError(err)
		require.Equal(1<<30, high.Poly().Degree())

		p, err := auto.Mul(high, x.Poly().AddScalar(polyrat.RatInt(1)))
		require.NoError(err)
		require.Equal(1<<30+1, p.Poly().Degree())
		require.True(p.Poly().Coeff(1<<30).IsOne())
		require.True(p.Poly().Coeff(1<<30 + 1).IsOne())
	}
}
