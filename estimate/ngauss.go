package estimate

import (
	"fmt"
	"math"

	"github.com/arloliu/guess/errs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Weighting computes per-sample regression weights for the N-D Gaussian
// estimator from the strictly positive samples. A non-positive weight
// removes the sample.
type Weighting func(values []float64) []float64

// ValueWeights weighs each sample by its value, countering the noise
// amplification of the logarithm at small values.
func ValueWeights(values []float64) []float64 {
	return append([]float64(nil), values...)
}

// UniformWeights weighs every sample equally.
func UniformWeights(values []float64) []float64 {
	w := make([]float64, len(values))
	for i := range w {
		w[i] = 1
	}

	return w
}

// NoiseWeights returns the weighting for samples with additive noise of
// amplitude noise: w = 1/ln((y+N)/(y-N)) for y > N, and 0 otherwise.
// A non-positive noise uses the population standard deviation of the
// values instead.
func NoiseWeights(noise float64) Weighting {
	return func(values []float64) []float64 {
		n := noise
		if n <= 0 {
			n = stat.PopStdDev(values, nil)
		}

		w := make([]float64, len(values))
		for i, v := range values {
			if v > n {
				w[i] = 1 / math.Log((v+n)/(v-n))
			}
		}

		return w
	}
}

// NGaussParams describes α·exp(-½(x-μ)ᵀΣ⁻¹(x-μ)).
type NGaussParams struct {
	Amplitude  float64
	Mean       []float64
	Covariance *mat.SymDense
	// Precision is the inverse of Covariance.
	Precision *mat.SymDense
}

// Dim returns the number of dimensions.
func (p NGaussParams) Dim() int {
	return len(p.Mean)
}

// Eval returns the model value at point, which must have Dim coordinates.
func (p NGaussParams) Eval(point []float64) float64 {
	d := make([]float64, len(point))
	floats.SubTo(d, point, p.Mean)
	v := mat.NewVecDense(len(d), d)

	return p.Amplitude * math.Exp(-0.5*mat.Inner(v, p.Precision, v))
}

// NGauss estimates an N-dimensional Gaussian from scattered samples.
//
// ln(y) is a quadratic form in x, so a weighted linear regression on all
// pairwise products x_i·x_j, the coordinates and a constant recovers the
// precision matrix, the mean and the amplitude. Samples with y ≤ 0 or a
// non-positive weight are ignored.
//
// Parameters:
//   - points: Sample coordinates, one row of D ≥ 1 values per sample
//   - values: Sample values, one per row of points
//   - opts: Estimator options; WithWeighting, WithWeights and WithScaling
//     apply here
//
// Returns:
//   - NGaussParams: Estimated amplitude, mean and covariance
//   - error: ErrUnderdeterminedSystem with fewer than (D+1)(D+2)/2 usable
//     samples, ErrNonPhysicalFit when the precision matrix is not positive
//     definite, or an input or solver error
func NGauss(points [][]float64, values []float64, opts ...Option) (NGaussParams, error) {
	const name = "ngauss"

	cfg, err := buildConfig(opts)
	if err != nil {
		return NGaussParams{}, err
	}

	dim, err := validatePoints(name, points, len(values))
	if err != nil {
		return NGaussParams{}, err
	}
	for i, v := range values {
		if !isFinite(v) {
			return NGaussParams{}, stageErr(name, "input", "finite values",
				fmt.Errorf("%w: value %d is %v", errs.ErrNonFinite, i, v))
		}
	}
	if cfg.Weights != nil && len(cfg.Weights) != len(values) {
		return NGaussParams{}, stageErr(name, "input", "weight count",
			fmt.Errorf("%w: %d weights for %d samples", errs.ErrLengthMismatch, len(cfg.Weights), len(values)))
	}

	pts, ys, ws, err := maskSamples(name, &cfg, points, values)
	if err != nil {
		return NGaussParams{}, err
	}

	cols := (dim + 1) * (dim + 2) / 2
	if len(ys) < cols {
		return NGaussParams{}, stageErr(name, "input", "usable samples",
			fmt.Errorf("%w: %d usable samples, need at least %d", errs.ErrUnderdeterminedSystem, len(ys), cols))
	}

	var offset, scale []float64
	if cfg.Scaling {
		offset, scale, err = axisScaling(name, pts, dim)
		if err != nil {
			return NGaussParams{}, err
		}
	}

	a := newDesign(len(ys), cols)
	b := make([]float64, len(ys))
	row := make([]float64, dim)
	for k, p := range pts {
		copy(row, p)
		if scale != nil {
			for i := range row {
				row[i] = (row[i] - offset[i]) / scale[i]
			}
		}

		w := ws[k]
		c := 0
		for i := range dim {
			for j := i; j < dim; j++ {
				a.Set(k, c, w*row[i]*row[j])
				c++
			}
		}
		for i := range dim {
			a.Set(k, c, w*row[i])
			c++
		}
		a.Set(k, c, w)
		b[k] = w * math.Log(ys[k])
	}

	theta, err := solveStage(name, "quadratic", cfg.Solver, a, b)
	if err != nil {
		return NGaussParams{}, err
	}

	p, err := ngaussFromQuadratic(name, theta, dim)
	if err != nil {
		return NGaussParams{}, err
	}

	if scale != nil {
		p.unscale(offset, scale)
	}

	return p, nil
}

// NGaussGrid estimates an N-dimensional Gaussian from values sampled on the
// integer grid of the given row-major shape, so that values[k] belongs to
// the multi-index of k. Axis scaling is enabled by default.
func NGaussGrid(values []float64, shape []int, opts ...Option) (NGaussParams, error) {
	const name = "ngauss"

	if len(shape) == 0 {
		return NGaussParams{}, stageErr(name, "input", "grid shape",
			fmt.Errorf("%w: empty shape", errs.ErrInvalidDomain))
	}

	total := 1
	for _, s := range shape {
		if s <= 0 {
			return NGaussParams{}, stageErr(name, "input", "grid shape",
				fmt.Errorf("%w: non-positive extent %d", errs.ErrInvalidDomain, s))
		}
		total *= s
	}
	if total != len(values) {
		return NGaussParams{}, stageErr(name, "input", "grid size",
			fmt.Errorf("%w: shape %v holds %d values, got %d", errs.ErrLengthMismatch, shape, total, len(values)))
	}

	dim := len(shape)
	coords := make([]float64, total*dim)
	points := make([][]float64, total)
	for k := range total {
		p := coords[k*dim : (k+1)*dim : (k+1)*dim]
		rem := k
		for i := dim - 1; i >= 0; i-- {
			p[i] = float64(rem % shape[i])
			rem /= shape[i]
		}
		points[k] = p
	}

	return NGauss(points, values, append([]Option{WithScaling(true)}, opts...)...)
}

func validatePoints(name string, points [][]float64, n int) (int, error) {
	if len(points) != n {
		return 0, stageErr(name, "input", "equal lengths",
			fmt.Errorf("%w: %d points vs %d values", errs.ErrLengthMismatch, len(points), n))
	}
	if n == 0 {
		return 0, stageErr(name, "input", "point count",
			fmt.Errorf("%w: no samples", errs.ErrUnderdeterminedSystem))
	}

	dim := len(points[0])
	if dim == 0 {
		return 0, stageErr(name, "input", "dimension",
			fmt.Errorf("%w: points have no coordinates", errs.ErrInvalidDomain))
	}
	for i, p := range points {
		if len(p) != dim {
			return 0, stageErr(name, "input", "dimension",
				fmt.Errorf("%w: point %d has %d coordinates, want %d", errs.ErrLengthMismatch, i, len(p), dim))
		}
		for _, v := range p {
			if !isFinite(v) {
				return 0, stageErr(name, "input", "finite values",
					fmt.Errorf("%w: point %d is %v", errs.ErrNonFinite, i, p))
			}
		}
	}

	return dim, nil
}

// maskSamples drops samples with non-positive values and then those with
// non-positive weights.
func maskSamples(name string, cfg *Config, points [][]float64, values []float64) ([][]float64, []float64, []float64, error) {
	pts := make([][]float64, 0, len(values))
	ys := make([]float64, 0, len(values))
	var given []float64
	for i, v := range values {
		if v > 0 {
			pts = append(pts, points[i])
			ys = append(ys, v)
			if cfg.Weights != nil {
				given = append(given, cfg.Weights[i])
			}
		}
	}

	ws := given
	if cfg.Weights == nil {
		ws = cfg.Weighting(ys)
		if len(ws) != len(ys) {
			return nil, nil, nil, stageErr(name, "weighting", "weight count",
				fmt.Errorf("%w: weighting returned %d weights for %d samples", errs.ErrLengthMismatch, len(ws), len(ys)))
		}
	}

	kept := 0
	for i := range ys {
		if ws[i] > 0 {
			pts[kept], ys[kept], ws[kept] = pts[i], ys[i], ws[i]
			kept++
		}
	}

	return pts[:kept], ys[:kept], ws[:kept], nil
}

// axisScaling returns per-axis offset and half-range mapping each axis of
// points onto [-1, 1].
func axisScaling(name string, points [][]float64, dim int) ([]float64, []float64, error) {
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	copy(lo, points[0])
	copy(hi, points[0])
	for _, p := range points[1:] {
		for i, v := range p {
			lo[i] = math.Min(lo[i], v)
			hi[i] = math.Max(hi[i], v)
		}
	}

	offset := make([]float64, dim)
	scale := make([]float64, dim)
	for i := range dim {
		offset[i] = (hi[i] + lo[i]) / 2
		scale[i] = (hi[i] - lo[i]) / 2
		if scale[i] == 0 {
			return nil, nil, stageErr(name, "scaling", "axis extent",
				fmt.Errorf("%w: all samples share coordinate %g on axis %d", errs.ErrIllConditioned, lo[i], i))
		}
	}

	return offset, scale, nil
}

func ngaussFromQuadratic(name string, theta []float64, dim int) (NGaussParams, error) {
	prec := mat.NewSymDense(dim, nil)
	c := 0
	for i := range dim {
		for j := i; j < dim; j++ {
			if i == j {
				prec.SetSym(i, i, -2*theta[c])
			} else {
				prec.SetSym(i, j, -theta[c])
			}
			c++
		}
	}
	q := mat.NewVecDense(dim, append([]float64(nil), theta[c:c+dim]...))
	r := theta[c+dim]

	var chol mat.Cholesky
	if ok := chol.Factorize(prec); !ok {
		return NGaussParams{}, nonPhysical(name, "quadratic", "positive definite precision", "quadratic form is not negative definite")
	}

	cov := mat.NewSymDense(dim, nil)
	if err := chol.InverseTo(cov); err != nil {
		return NGaussParams{}, stageErr(name, "quadratic", "precision inverse", fmt.Errorf("%w: %v", errs.ErrIllConditioned, err))
	}

	mu := mat.NewVecDense(dim, nil)
	mu.MulVec(cov, q)

	p := NGaussParams{
		Amplitude:  math.Exp(r + 0.5*mat.Inner(mu, prec, mu)),
		Mean:       mu.RawVector().Data,
		Covariance: cov,
		Precision:  prec,
	}
	if err := checkFinite(name, "quadratic", []string{"amplitude"}, p.Amplitude); err != nil {
		return NGaussParams{}, err
	}
	for i, m := range p.Mean {
		if err := checkFinite(name, "quadratic", []string{fmt.Sprintf("mean[%d]", i)}, m); err != nil {
			return NGaussParams{}, err
		}
	}

	return p, nil
}

// unscale maps a fit made on normalized axes back to the original axes.
func (p *NGaussParams) unscale(offset, scale []float64) {
	dim := p.Dim()
	for i := range dim {
		p.Mean[i] = p.Mean[i]*scale[i] + offset[i]
		for j := i; j < dim; j++ {
			p.Covariance.SetSym(i, j, p.Covariance.At(i, j)*scale[i]*scale[j])
			p.Precision.SetSym(i, j, p.Precision.At(i, j)/(scale[i]*scale[j]))
		}
	}
}
