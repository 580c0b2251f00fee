package estimate

import (
	"math"
	"testing"

	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/linsolve"
	"github.com/stretchr/testify/require"
)

func TestExpKnownCurve(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	want := ExpParams{A: 2, B: 3, C: 0.5}
	y := eval(want.Eval, x)

	got, err := Exp(x, y)
	require.NoError(t, err)
	require.InDelta(t, 2, got.A, 1e-4)
	require.InDelta(t, 3, got.B, 1e-4)
	require.InDelta(t, 0.5, got.C, 1e-4)
}

func TestExpWithoutGridCorrection(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	want := ExpParams{A: 2, B: 3, C: 0.5}
	y := eval(want.Eval, x)

	got, err := Exp(x, y, WithGridCorrection(false))
	require.NoError(t, err)
	// plain trapezoid sums underestimate the rate by about 2% at h·c = 0.5
	require.InDelta(t, 0.5, got.C, 0.02)
	require.Greater(t, math.Abs(got.C-0.5), 1e-3)
}

func TestExpRoundTrip(t *testing.T) {
	r := newRand()
	x := grid(0, 0.25, 21)

	for i := range 50 {
		want := ExpParams{
			A: -5 + 10*r.Float64(),
			B: math.Copysign(0.5+4.5*r.Float64(), r.Float64()-0.5),
			C: math.Copysign(0.1+0.9*r.Float64(), r.Float64()-0.5),
		}
		y := eval(want.Eval, x)

		got, err := Exp(x, y)
		require.NoError(t, err, "case %d: %+v", i, want)
		requireClose(t, want.A, got.A, 1e-6, "case %d: %+v", i, want)
		requireClose(t, want.B, got.B, 1e-6, "case %d: %+v", i, want)
		requireClose(t, want.C, got.C, 1e-6, "case %d: %+v", i, want)
	}
}

func TestExpNonUniformGrid(t *testing.T) {
	x := make([]float64, 200)
	for i := range x {
		u := float64(i) / float64(len(x)-1)
		x[i] = 4 * u * u
	}
	want := ExpParams{A: -1, B: 0.5, C: 0.8}
	y := eval(want.Eval, x)

	got, err := Exp(x, y)
	require.NoError(t, err)
	require.InDelta(t, want.A, got.A, 1e-2)
	require.InDelta(t, want.B, got.B, 1e-2)
	require.InDelta(t, want.C, got.C, 1e-3)
}

func TestExpDecay(t *testing.T) {
	x := grid(0, 0.1, 31)
	want := ExpParams{A: 1, B: 5, C: -1.5}
	y := eval(want.Eval, x)

	for _, s := range []linsolve.Solver{linsolve.QR{}, linsolve.SVD{}} {
		got, err := Exp(x, y, WithSolver(s))
		require.NoError(t, err)
		requireClose(t, want.A, got.A, 1e-8)
		requireClose(t, want.B, got.B, 1e-8)
		requireClose(t, want.C, got.C, 1e-8)
	}
}

func TestExpIdempotent(t *testing.T) {
	r := newRand()
	x := grid(-1, 0.05, 81)
	y := addNoise(r, eval(ExpParams{A: 0.5, B: 2, C: 0.7}.Eval, x), 0.05)

	first, err := Exp(x, y)
	require.NoError(t, err)

	second, err := Exp(x, eval(first.Eval, x))
	require.NoError(t, err)
	requireClose(t, first.A, second.A, 1e-6)
	requireClose(t, first.B, second.B, 1e-6)
	requireClose(t, first.C, second.C, 1e-6)
}

func TestExpOrderInvariance(t *testing.T) {
	r := newRand()
	x := randomAbscissae(r, 0, 3, 100)
	y := addNoise(r, eval(ExpParams{A: 1, B: 1, C: 1}.Eval, x), 0.1)

	base, err := Exp(x, y)
	require.NoError(t, err)

	for range 5 {
		xs, ys := shuffled(r, x, y)
		got, err := Exp(xs, ys)
		require.NoError(t, err)
		require.Equal(t, base, got)
	}
}

func TestExpNoiseMonotonicity(t *testing.T) {
	want := ExpParams{A: 1, B: 2, C: 0.6}
	x := grid(0, 0.02, 151)
	clean := eval(want.Eval, x)

	noise := []float64{0.3, 0.1, 0.01, 0}
	errsByNoise := make([]float64, len(noise))
	for i, sigma := range noise {
		r := newRand()
		for range 30 {
			got, err := Exp(x, addNoise(r, clean, sigma))
			require.NoError(t, err)
			errsByNoise[i] += math.Abs(got.C - want.C)
		}
	}

	for i := 1; i < len(noise); i++ {
		require.Less(t, errsByNoise[i], errsByNoise[i-1], "noise %g vs %g", noise[i], noise[i-1])
	}
}

func TestExpErrors(t *testing.T) {
	_, err := Exp([]float64{0, 1}, []float64{1, 2})
	require.ErrorIs(t, err, errs.ErrUnderdeterminedSystem)

	_, err = Exp([]float64{0, 1, 2}, []float64{1, 2})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	_, err = Exp([]float64{0, 1, math.Inf(1)}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrNonFinite)

	// the integral of a constant is collinear with x
	x := grid(0, 1, 10)
	_, err = Exp(x, eval(func(float64) float64 { return 3 }, x))
	require.ErrorIs(t, err, errs.ErrIllConditioned)
}

func TestPow(t *testing.T) {
	x := make([]float64, 30)
	for i := range x {
		x[i] = 0.5 * math.Pow(1.1, float64(i))
	}

	tests := []struct {
		name string
		want PowParams
	}{
		{"growth", PowParams{A: 1, B: 2, C: 1.5}},
		{"decay", PowParams{A: 3, B: -1, C: -0.7}},
		{"sqrt", PowParams{A: 0, B: 4, C: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pow(x, eval(tt.want.Eval, x))
			require.NoError(t, err)
			requireClose(t, tt.want.A, got.A, 1e-6)
			requireClose(t, tt.want.B, got.B, 1e-6)
			requireClose(t, tt.want.C, got.C, 1e-6)
		})
	}
}

func TestPowInvalidDomain(t *testing.T) {
	_, err := Pow([]float64{-1, 1, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrInvalidDomain)

	_, err = Pow([]float64{0, 1, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrInvalidDomain)
}

func weibullSamples(p WeibullParams, xp []float64) (t, f []float64) {
	t = make([]float64, len(xp))
	f = make([]float64, len(xp))
	for i, v := range xp {
		f[i] = -math.Expm1(-math.Exp(v))
		t[i] = p.Mu + p.Beta*math.Exp(v/p.Alpha)
	}

	return t, f
}

func TestWeibullCDF(t *testing.T) {
	tests := []struct {
		name string
		want WeibullParams
	}{
		{"rayleigh", WeibullParams{Alpha: 2, Beta: 3, Mu: 1}},
		{"exponential", WeibullParams{Alpha: 1, Beta: 0.5, Mu: 0}},
		{"shifted", WeibullParams{Alpha: 3.5, Beta: 10, Mu: -4}},
	}

	xp := grid(-2, 0.1, 41)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, fs := weibullSamples(tt.want, xp)

			got, err := WeibullCDF(ts, fs)
			require.NoError(t, err)
			requireClose(t, tt.want.Alpha, got.Alpha, 1e-6)
			requireClose(t, tt.want.Beta, got.Beta, 1e-6)
			requireClose(t, tt.want.Mu, got.Mu, 1e-6)

			for i, v := range ts {
				require.InDelta(t, fs[i], got.Eval(v), 1e-6)
			}
		})
	}
}

// Evenly spaced probabilities crowd the transformed abscissae in the upper
// tail, so no grid correction applies and the trapezoid bias remains.
func TestWeibullCDFUniformProbabilities(t *testing.T) {
	want := WeibullParams{Alpha: 1.5, Beta: 2, Mu: 0.5}

	tests := []struct {
		n   int
		tol float64
	}{
		{20, 3e-3},
		{100, 1e-3},
	}

	for _, tt := range tests {
		fs := make([]float64, tt.n)
		ts := make([]float64, tt.n)
		for i := range fs {
			fs[i] = float64(i+1) / float64(tt.n+1)
			ts[i] = want.Mu + want.Beta*math.Pow(-math.Log1p(-fs[i]), 1/want.Alpha)
		}

		got, err := WeibullCDF(ts, fs)
		require.NoError(t, err)
		require.InDelta(t, want.Alpha, got.Alpha, tt.tol, "n=%d", tt.n)
		require.InDelta(t, want.Beta, got.Beta, tt.tol, "n=%d", tt.n)
		require.InDelta(t, want.Mu, got.Mu, tt.tol, "n=%d", tt.n)
	}
}

func TestWeibullCDFOrderInvariance(t *testing.T) {
	r := newRand()
	ts, fs := weibullSamples(WeibullParams{Alpha: 1.5, Beta: 2, Mu: 0.5}, grid(-3, 0.1, 50))

	base, err := WeibullCDF(ts, fs)
	require.NoError(t, err)

	for range 3 {
		st, sf := shuffled(r, ts, fs)
		got, err := WeibullCDF(st, sf)
		require.NoError(t, err)
		require.Equal(t, base, got)
	}
}

func TestWeibullCDFErrors(t *testing.T) {
	_, err := WeibullCDF([]float64{1, 2, 3}, []float64{0, 0.5, 0.9})
	require.ErrorIs(t, err, errs.ErrInvalidDomain)

	_, err = WeibullCDF([]float64{1, 2, 3}, []float64{0.1, 0.5, 1})
	require.ErrorIs(t, err, errs.ErrInvalidDomain)

	_, err = WeibullCDF([]float64{1, 2}, []float64{0.1, 0.5})
	require.ErrorIs(t, err, errs.ErrUnderdeterminedSystem)

	// samples that shrink as F grows cannot come from a Weibull distribution
	ts, fs := weibullSamples(WeibullParams{Alpha: 2, Beta: 3, Mu: 1}, grid(-2, 0.1, 41))
	for i := range ts {
		ts[i] = -ts[i]
	}
	_, err = WeibullCDF(ts, fs)
	require.ErrorIs(t, err, errs.ErrNonPhysicalFit)
}

func TestWeibullParamsEval(t *testing.T) {
	p := WeibullParams{Alpha: 1, Beta: 1, Mu: 0}
	require.Zero(t, p.Eval(-1))
	require.Zero(t, p.Eval(0))
	require.InDelta(t, 1-math.Exp(-1), p.Eval(1), 1e-15)
}
