package estimate

import (
	"fmt"
	"math"

	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/integral"
)

// GaussParams describes a normal distribution.
type GaussParams struct {
	Mu    float64
	Sigma float64
}

// Eval returns the probability density at x.
func (p GaussParams) Eval(x float64) float64 {
	z := (x - p.Mu) / p.Sigma

	return math.Exp(-z*z/2) / (p.Sigma * math.Sqrt(2*math.Pi))
}

// CDF returns the cumulative probability at x.
func (p GaussParams) CDF(x float64) float64 {
	return 0.5 * (1 + math.Erf((x-p.Mu)/(p.Sigma*math.Sqrt2)))
}

// GaussPDF estimates the mean and standard deviation of a Gaussian curve.
//
// The samples satisfy y' = -(x-μ)/σ² · y. Integrating once gives the linear
// model y - y₁ = A·S + B·T with S = ∫y dx and T = ∫x·y dx, from which
// σ = √(-1/B) and μ = -A/B. The amplitude of the curve does not affect the
// result.
//
// Parameters:
//   - x: Abscissae, in any order
//   - y: Ordinates, same length as x, at least 3 points
//   - opts: Estimator options
//
// Returns:
//   - GaussParams: Estimated mean and standard deviation
//   - error: ErrNonPhysicalFit when the data implies a non-positive variance,
//     or an input or solver error
func GaussPDF(x, y []float64, opts ...Option) (GaussParams, error) {
	const name = "gauss-pdf"

	cfg, err := buildConfig(opts)
	if err != nil {
		return GaussParams{}, err
	}

	xs, ys, err := prepare(name, &cfg, x, y, 3)
	if err != nil {
		return GaussParams{}, err
	}

	n := len(xs)
	s := integral.Cumulative(xs, ys)
	t := integral.Weighted(xs, ys, xs)

	a := newDesign(n, 2)
	b := make([]float64, n)
	for k := range n {
		a.Set(k, 0, s[k])
		a.Set(k, 1, t[k])
		b[k] = ys[k] - ys[0]
	}

	theta, err := solveStage(name, "integral", cfg.Solver, a, b)
	if err != nil {
		return GaussParams{}, err
	}

	if !(theta[1] < 0) {
		return GaussParams{}, nonPhysical(name, "integral", "negative curvature", "B = %g implies non-positive variance", theta[1])
	}

	p := GaussParams{
		Mu:    -theta[0] / theta[1],
		Sigma: math.Sqrt(-1 / theta[1]),
	}
	if err := checkFinite(name, "integral", []string{"mu", "sigma"}, p.Mu, p.Sigma); err != nil {
		return GaussParams{}, err
	}

	return p, nil
}

// GaussCDF estimates the mean and standard deviation of a Gaussian
// cumulative distribution.
//
// The probabilities are linearized through the inverse error function,
// erfinv(2y - 1) = (x - μ)/(σ√2), and fitted with a straight line.
//
// Parameters:
//   - x: Abscissae, in any order
//   - y: Cumulative probabilities strictly inside (0, 1), at least 2 points
//   - opts: Estimator options
//
// Returns:
//   - GaussParams: Estimated mean and standard deviation
//   - error: ErrInvalidDomain for probabilities outside (0, 1),
//     ErrNonPhysicalFit for a non-increasing fit, or an input or solver error
func GaussCDF(x, y []float64, opts ...Option) (GaussParams, error) {
	const name = "gauss-cdf"

	cfg, err := buildConfig(opts)
	if err != nil {
		return GaussParams{}, err
	}

	xs, ys, err := prepare(name, &cfg, x, y, 2)
	if err != nil {
		return GaussParams{}, err
	}

	n := len(xs)
	a := newDesign(n, 2)
	b := make([]float64, n)
	for k := range n {
		if !(ys[k] > 0 && ys[k] < 1) {
			a.release()
			return GaussParams{}, stageErr(name, "input", "probability range",
				fmt.Errorf("%w: y = %g is outside (0, 1)", errs.ErrInvalidDomain, ys[k]))
		}
		a.Set(k, 0, xs[k])
		a.Set(k, 1, 1)
		b[k] = cfg.Special.Erfinv(2*ys[k] - 1)
	}

	theta, err := solveStage(name, "linearized", cfg.Solver, a, b)
	if err != nil {
		return GaussParams{}, err
	}

	if !(theta[0] > 0) {
		return GaussParams{}, nonPhysical(name, "linearized", "positive slope", "A = %g implies a non-increasing distribution", theta[0])
	}

	p := GaussParams{
		Mu:    -theta[1] / theta[0],
		Sigma: 1 / (math.Sqrt2 * theta[0]),
	}
	if err := checkFinite(name, "linearized", []string{"mu", "sigma"}, p.Mu, p.Sigma); err != nil {
		return GaussParams{}, err
	}

	return p, nil
}
