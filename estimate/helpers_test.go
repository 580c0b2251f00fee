package estimate

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(20240601, 7))
}

func grid(start, step float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = start + float64(i)*step
	}

	return x
}

func randomAbscissae(r *rand.Rand, lo, hi float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = lo + (hi-lo)*r.Float64()
	}
	slices.Sort(x)

	return x
}

func eval(f func(float64) float64, x []float64) []float64 {
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = f(v)
	}

	return y
}

func addNoise(r *rand.Rand, y []float64, sigma float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v + sigma*r.NormFloat64()
	}

	return out
}

// shuffled returns x and y permuted by the same random permutation.
func shuffled(r *rand.Rand, x, y []float64) ([]float64, []float64) {
	perm := r.Perm(len(x))
	xs := make([]float64, len(x))
	ys := make([]float64, len(y))
	for i, j := range perm {
		xs[i] = x[j]
		ys[i] = y[j]
	}

	return xs, ys
}

// requireClose checks got against want with a tolerance relative to
// max(1, |want|).
func requireClose(t *testing.T, want, got, tol float64, msgAndArgs ...any) {
	t.Helper()
	require.InDelta(t, want, got, tol*math.Max(1, math.Abs(want)), msgAndArgs...)
}
