package estimate

import (
	"fmt"
	"math"

	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/integral"
)

// ExpParams describes y = A + B·exp(C·x).
type ExpParams struct {
	A float64
	B float64
	C float64
}

// Eval returns the model value at x.
func (p ExpParams) Eval(x float64) float64 {
	return p.A + p.B*math.Exp(p.C*x)
}

// PowParams describes y = A + B·x^C.
type PowParams struct {
	A float64
	B float64
	C float64
}

// Eval returns the model value at x. It is NaN for x < 0 unless C is an integer.
func (p PowParams) Eval(x float64) float64 {
	return p.A + p.B*math.Pow(x, p.C)
}

// WeibullParams describes the shifted Weibull CDF
// F(t) = 1 - exp(-((t-Mu)/Beta)^Alpha) for t > Mu, and 0 otherwise.
type WeibullParams struct {
	Alpha float64 // shape
	Beta  float64 // scale
	Mu    float64 // location
}

// Eval returns the cumulative probability at t.
func (p WeibullParams) Eval(t float64) float64 {
	if t <= p.Mu {
		return 0
	}

	return -math.Expm1(-math.Pow((t-p.Mu)/p.Beta, p.Alpha))
}

// rateStage is the outcome of the integral stage of the exponential fit.
type rateStage struct {
	raw  float64 // rate as regressed
	rate float64 // rate after the grid correction
}

// Exp estimates the parameters of y = a + b·exp(c·x).
//
// The first stage regresses y - y₁ on x - x₁ and the cumulative integral S,
// whose coefficient is c. The second stage regresses y on 1 and exp(c·x).
//
// Parameters:
//   - x: Abscissae, in any order
//   - y: Ordinates, same length as x, at least 3 points
//   - opts: Estimator options
//
// Returns:
//   - ExpParams: Estimated a, b and c
//   - error: Input, solver or non-physical fit error
func Exp(x, y []float64, opts ...Option) (ExpParams, error) {
	const name = "exp"

	cfg, err := buildConfig(opts)
	if err != nil {
		return ExpParams{}, err
	}

	xs, ys, err := prepare(name, &cfg, x, y, 3)
	if err != nil {
		return ExpParams{}, err
	}

	return fitExp(name, &cfg, xs, ys)
}

// Pow estimates the parameters of y = a + b·x^c by fitting an exponential
// in ln x.
//
// Parameters:
//   - x: Strictly positive abscissae, in any order
//   - y: Ordinates, same length as x, at least 3 points
//   - opts: Estimator options
//
// Returns:
//   - PowParams: Estimated a, b and c
//   - error: ErrInvalidDomain for x ≤ 0, or an input, solver or
//     non-physical fit error
func Pow(x, y []float64, opts ...Option) (PowParams, error) {
	const name = "pow"

	cfg, err := buildConfig(opts)
	if err != nil {
		return PowParams{}, err
	}

	xs, ys, err := prepare(name, &cfg, x, y, 3)
	if err != nil {
		return PowParams{}, err
	}

	lx := make([]float64, len(xs))
	for i, v := range xs {
		if !(v > 0) {
			return PowParams{}, stageErr(name, "input", "positive abscissae",
				fmt.Errorf("%w: x = %g must be positive", errs.ErrInvalidDomain, v))
		}
		lx[i] = math.Log(v)
	}

	p, err := fitExp(name, &cfg, lx, ys)
	if err != nil {
		return PowParams{}, err
	}

	return PowParams(p), nil
}

// WeibullCDF estimates the parameters of a shifted Weibull distribution
// from cumulative probabilities.
//
// The substitution x = ln(-ln(1-F)) turns t(F) = μ + β·exp(x/α) into an
// exponential in x.
//
// Parameters:
//   - t: Sample values, same length as f
//   - f: Cumulative probabilities strictly inside (0, 1), at least 3 points
//   - opts: Estimator options; WithSorted refers to the order of f
//
// Returns:
//   - WeibullParams: Estimated shape, scale and location
//   - error: ErrInvalidDomain for probabilities outside (0, 1),
//     ErrNonPhysicalFit when shape or scale is not positive, or an input or
//     solver error
func WeibullCDF(t, f []float64, opts ...Option) (WeibullParams, error) {
	const name = "weibull-cdf"

	cfg, err := buildConfig(opts)
	if err != nil {
		return WeibullParams{}, err
	}

	fs, ts, err := prepare(name, &cfg, f, t, 3)
	if err != nil {
		return WeibullParams{}, err
	}

	xs := make([]float64, len(fs))
	for i, v := range fs {
		if !(v > 0 && v < 1) {
			return WeibullParams{}, stageErr(name, "input", "probability range",
				fmt.Errorf("%w: F = %g is outside (0, 1)", errs.ErrInvalidDomain, v))
		}
		xs[i] = math.Log(-math.Log1p(-v))
	}

	p, err := fitExp(name, &cfg, xs, ts)
	if err != nil {
		return WeibullParams{}, err
	}

	if !(p.C > 0) || !(p.B > 0) {
		return WeibullParams{}, nonPhysical(name, "amplitude", "positive shape and scale", "rate %g and scale %g", p.C, p.B)
	}

	return WeibullParams{Alpha: 1 / p.C, Beta: p.B, Mu: p.A}, nil
}

// fitExp runs both exponential stages on validated, sorted samples.
func fitExp(name string, cfg *Config, xs, ys []float64) (ExpParams, error) {
	rs, err := expRate(name, cfg, xs, ys)
	if err != nil {
		return ExpParams{}, err
	}

	return expAmplitude(name, cfg, xs, ys, rs)
}

func expRate(name string, cfg *Config, xs, ys []float64) (rateStage, error) {
	n := len(xs)
	s := integral.Cumulative(xs, ys)

	a := newDesign(n, 2)
	b := make([]float64, n)
	for k := range n {
		a.Set(k, 0, xs[k]-xs[0])
		a.Set(k, 1, s[k])
		b[k] = ys[k] - ys[0]
	}

	theta, err := solveStage(name, "integral", cfg.Solver, a, b)
	if err != nil {
		return rateStage{}, err
	}

	rs := rateStage{raw: theta[1], rate: theta[1]}
	if h, ok := gridStep(cfg, xs); ok {
		c, ok := correctRate(rs.raw, h)
		if !ok {
			return rateStage{}, nonPhysical(name, "integral", "grid correction", "rate %g is unreachable with step %g", rs.raw, h)
		}
		rs.rate = c
	}

	if rs.rate == 0 {
		return rateStage{}, nonPhysical(name, "integral", "non-zero rate", "data has no exponential component")
	}

	return rs, nil
}

func expAmplitude(name string, cfg *Config, xs, ys []float64, rs rateStage) (ExpParams, error) {
	n := len(xs)
	a := newDesign(n, 2)
	for k := range n {
		e := math.Exp(rs.rate * xs[k])
		if math.IsInf(e, 0) {
			a.release()
			return ExpParams{}, stageErr(name, "amplitude", "finite basis",
				fmt.Errorf("%w: exp(%g·%g) overflows", errs.ErrIllConditioned, rs.rate, xs[k]))
		}
		a.Set(k, 0, 1)
		a.Set(k, 1, e)
	}

	theta, err := solveStage(name, "amplitude", cfg.Solver, a, ys)
	if err != nil {
		return ExpParams{}, err
	}

	p := ExpParams{A: theta[0], B: theta[1], C: rs.rate}
	if err := checkFinite(name, "amplitude", []string{"a", "b", "c"}, p.A, p.B, p.C); err != nil {
		return ExpParams{}, err
	}

	return p, nil
}
