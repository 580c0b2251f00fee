package estimate

import (
	"fmt"
	"math"

	"github.com/arloliu/guess/errs"
	"gonum.org/v1/gonum/floats"
)

// NSphereParams describes the hypersphere |x - Center| = Radius.
type NSphereParams struct {
	Center []float64
	Radius float64
}

// Eval returns the signed distance of point from the sphere surface,
// negative inside.
func (p NSphereParams) Eval(point []float64) float64 {
	return floats.Distance(point, p.Center, 2) - p.Radius
}

// NSphere fits a hypersphere to points in D dimensions.
//
// Expanding |x - c|² = r² gives the linear system 2c·x + (r² - |c|²) = |x|²,
// which is solved for c and r² - |c|² in one least-squares step.
//
// Parameters:
//   - points: Point coordinates, one row of D ≥ 1 values per point, at least
//     D+1 points
//   - opts: Estimator options
//
// Returns:
//   - NSphereParams: Estimated center and radius
//   - error: ErrNonPhysicalFit when the implied squared radius is not
//     positive, or an input or solver error
func NSphere(points [][]float64, opts ...Option) (NSphereParams, error) {
	const name = "nsphere"

	cfg, err := buildConfig(opts)
	if err != nil {
		return NSphereParams{}, err
	}

	dim, err := validatePoints(name, points, len(points))
	if err != nil {
		return NSphereParams{}, err
	}
	if len(points) < dim+1 {
		return NSphereParams{}, stageErr(name, "input", "point count",
			fmt.Errorf("%w: %d points in %d dimensions, need at least %d", errs.ErrUnderdeterminedSystem, len(points), dim, dim+1))
	}

	n := len(points)
	a := newDesign(n, dim+1)
	b := make([]float64, n)
	for k, p := range points {
		for i, v := range p {
			a.Set(k, i, v)
		}
		a.Set(k, dim, 1)
		b[k] = floats.Dot(p, p)
	}

	theta, err := solveStage(name, "linear", cfg.Solver, a, b)
	if err != nil {
		return NSphereParams{}, err
	}

	center := make([]float64, dim)
	floats.ScaleTo(center, 0.5, theta[:dim])
	r2 := theta[dim] + floats.Dot(center, center)
	if !(r2 > 0) {
		return NSphereParams{}, nonPhysical(name, "linear", "positive squared radius", "r² = %g", r2)
	}

	p := NSphereParams{Center: center, Radius: math.Sqrt(r2)}
	if err := checkFinite(name, "linear", []string{"radius"}, p.Radius); err != nil {
		return NSphereParams{}, err
	}

	return p, nil
}
