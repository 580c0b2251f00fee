// Package special abstracts the error function and its inverse behind a
// capability interface so estimators can switch numeric backends without
// touching their own logic.
//
// Every backend must be accurate to at least 8 significant digits for the
// forward function on the whole real line and for the inverse on (-1, 1).
package special

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Functions provides the error function and its inverse.
type Functions interface {
	// Erf returns the error function of x.
	Erf(x float64) float64
	// Erfinv returns the inverse error function of x.
	// It returns ±Inf at ±1 and NaN outside [-1, 1].
	Erfinv(x float64) float64
}

// Stdlib is the backend built on the math package.
type Stdlib struct{}

var _ Functions = Stdlib{}

// Erf implements Functions.
func (Stdlib) Erf(x float64) float64 { return math.Erf(x) }

// Erfinv implements Functions.
func (Stdlib) Erfinv(x float64) float64 { return math.Erfinv(x) }

// Gonum is the backend built on the standard normal distribution of
// gonum's distuv package, using erf(x) = 2Φ(x√2) - 1.
type Gonum struct{}

var _ Functions = Gonum{}

// Erf implements Functions.
func (Gonum) Erf(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	if x < 0 {
		return -(2*distuv.UnitNormal.CDF(-x*math.Sqrt2) - 1)
	}

	return 2*distuv.UnitNormal.CDF(x*math.Sqrt2) - 1
}

// Erfinv implements Functions.
func (Gonum) Erfinv(x float64) float64 {
	switch {
	case math.IsNaN(x), x < -1, x > 1:
		return math.NaN()
	case x == 1:
		return math.Inf(1)
	case x == -1:
		return math.Inf(-1)
	case x < 0:
		return -distuv.UnitNormal.Quantile((1-x)/2) / math.Sqrt2
	}

	return distuv.UnitNormal.Quantile((1+x)/2) / math.Sqrt2
}

// Default returns the backend used when none is configured.
func Default() Functions {
	return Stdlib{}
}
