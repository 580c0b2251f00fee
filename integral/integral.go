// Package integral implements the cumulative trapezoidal sums every
// integral-equation estimator is built on.
//
// For samples (x_k, y_k) sorted by ascending x, the first-order sequence is
//
//	S_0 = 0
//	S_k = S_{k-1} + 0.5*(g_k*y_k + g_{k-1}*y_{k-1})*(x_k - x_{k-1})
//
// which approximates the integral of g(u)*y(u) from x_0 to x_k. The
// second-order sequence SS applies the same recurrence to S with g ≡ 1.
//
// Summation is strictly left to right, so results are bit-for-bit
// reproducible for a given input order. Sequences with fewer than two
// points have no segment to accumulate and are all zero.
//
// All functions panic when the input lengths differ; callers validate
// sample sets before building integrals.
package integral

import "math"

// Cumulative returns the first-order cumulative trapezoidal sum of y over x.
//
// Parameters:
//   - x: Abscissae, sorted ascending
//   - y: Ordinates, same length as x
//
// Returns:
//   - []float64: New slice S with len(x) elements and S[0] = 0
func Cumulative(x, y []float64) []float64 {
	dst := make([]float64, len(x))
	CumulativeTo(dst, x, y, nil)

	return dst
}

// Weighted returns the cumulative trapezoidal sum of g*y over x.
//
// A nil g is treated as all ones, making Weighted(x, y, nil) identical to
// Cumulative(x, y).
func Weighted(x, y, g []float64) []float64 {
	dst := make([]float64, len(x))
	CumulativeTo(dst, x, y, g)

	return dst
}

// CumulativeTo writes the cumulative trapezoidal sum of g*y over x into dst
// and returns it. dst must have the same length as x; it may alias neither
// x nor g, but may alias y.
func CumulativeTo(dst, x, y, g []float64) []float64 {
	n := len(x)
	if len(y) != n || len(dst) != n || (g != nil && len(g) != n) {
		panic("integral: mismatched slice lengths")
	}
	if n == 0 {
		return dst
	}

	prev := y[0]
	if g != nil {
		prev *= g[0]
	}
	dst[0] = 0
	for k := 1; k < n; k++ {
		cur := y[k]
		if g != nil {
			cur *= g[k]
		}
		dst[k] = dst[k-1] + 0.5*(cur+prev)*(x[k]-x[k-1])
		prev = cur
	}

	return dst
}

// Second returns the first- and second-order cumulative sums of y over x.
//
// Returns:
//   - s: Cumulative(x, y)
//   - ss: Cumulative(x, s)
func Second(x, y []float64) (s, ss []float64) {
	s = Cumulative(x, y)
	ss = Cumulative(x, s)

	return s, ss
}

// UniformStep reports whether x is a uniformly spaced ascending grid.
//
// The grid is uniform when every step deviates from the mean step by at most
// tol times the mean step. The mean step (x[n-1]-x[0])/(n-1) is returned
// alongside the verdict; grids with fewer than two points or a non-positive
// mean step are never uniform.
func UniformStep(x []float64, tol float64) (h float64, ok bool) {
	n := len(x)
	if n < 2 {
		return 0, false
	}

	h = (x[n-1] - x[0]) / float64(n-1)
	if !(h > 0) || math.IsInf(h, 0) {
		return 0, false
	}

	limit := tol * h
	for k := 1; k < n; k++ {
		if math.Abs((x[k]-x[k-1])-h) > limit {
			return h, false
		}
	}

	return h, true
}
