package regression

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/estimate"
	"github.com/arloliu/guess/internal/options"
)

// Fit fits a single model family to the sample and scores it.
//
// The estimator of the family produces the coefficients, which are then
// evaluated over the sample to compute R² and RMSE.
//
// Parameters:
//   - mt: The model family to fit
//   - x: Abscissae of the sample
//   - y: Ordinates of the sample
//   - opts: Options forwarded to the estimator
//
// Returns:
//   - *Model: Fitted model with coefficients, R², RMSE, formula and estimator
//   - error: The estimator error, or errs.ErrUnknownModel for an unsupported family
//
// Example:
//
//	model, err := regression.Fit(regression.ModelTypeExponential, x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Formula, model.RSquared)
func Fit(mt ModelType, x, y []float64, opts ...estimate.Option) (*Model, error) {
	estimator, err := fitEstimator(mt, x, y, opts)
	if err != nil {
		return nil, err
	}

	r2, rmse := calculateStats(x, y, estimator)

	return &Model{
		Type:         mt,
		Coefficients: estimator.Coefficients(),
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula(estimator),
		Estimator:    estimator,
	}, nil
}

// Analyze fits every candidate family and ranks the fitted models.
//
// Families whose estimator fails are recorded in Result.Failures and do not
// take part in the ranking. Models are ranked by R² with the highest value
// selected as the best fit.
//
// Parameters:
//   - x: Abscissae of the sample
//   - y: Ordinates of the sample
//   - opts: Analysis options (candidate families, estimator options)
//
// Returns:
//   - *Result: Analysis result with best-fit model and all candidate models
//   - error: Option error, or the joined estimator errors if every family failed
//
// Example:
//
//	result, err := regression.Analyze(x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := result.BestFit.Estimator.Estimate(2.5)
func Analyze(x, y []float64, opts ...AnalyzeOption) (*Result, error) {
	cfg, err := options.Build(defaultAnalyzeConfig(), opts...)
	if err != nil {
		return nil, err
	}

	result := &Result{
		AllModels: make([]*Model, 0, len(cfg.Models)),
		Failures:  make(map[ModelType]error),
	}

	var failures []error
	for _, mt := range cfg.Models {
		model, err := Fit(mt, x, y, cfg.EstimateOptions...)
		if err != nil {
			result.Failures[mt] = err
			failures = append(failures, fmt.Errorf("%s: %w", mt, err))

			continue
		}
		result.AllModels = append(result.AllModels, model)
	}

	if len(result.AllModels) == 0 {
		return nil, errors.Join(failures...)
	}

	// Sort models by R² (best first), stable to keep candidate order on ties
	slices.SortStableFunc(result.AllModels, func(a, b *Model) int {
		if a.RSquared > b.RSquared {
			return -1
		}
		if a.RSquared < b.RSquared {
			return 1
		}

		return 0
	})
	result.BestFit = result.AllModels[0]

	return result, nil
}

func fitEstimator(mt ModelType, x, y []float64, opts []estimate.Option) (Estimator, error) {
	switch mt {
	case ModelTypeExponential:
		p, err := estimate.Exp(x, y, opts...)
		if err != nil {
			return nil, err
		}

		return NewExponentialEstimator(p), nil
	case ModelTypePower:
		p, err := estimate.Pow(x, y, opts...)
		if err != nil {
			return nil, err
		}

		return NewPowerEstimator(p), nil
	case ModelTypeGaussPDF:
		p, err := estimate.GaussPDF(x, y, opts...)
		if err != nil {
			return nil, err
		}

		return NewGaussPDFEstimator(densityScale(p, x, y), p), nil
	case ModelTypeGaussCDF:
		p, err := estimate.GaussCDF(x, y, opts...)
		if err != nil {
			return nil, err
		}

		return NewGaussCDFEstimator(p), nil
	case ModelTypeWeibullCDF:
		p, err := estimate.WeibullCDF(x, y, opts...)
		if err != nil {
			return nil, err
		}

		return NewWeibullCDFEstimator(p), nil
	case ModelTypeSinusoid:
		p, err := estimate.Sin(x, y, opts...)
		if err != nil {
			return nil, err
		}

		return NewSinusoidEstimator(p), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownModel, mt)
	}
}

// densityScale returns the least-squares amplitude k of y ≈ k·pdf(x).
//
// The density estimator recovers only μ and σ; the amplitude of an
// unnormalized bell curve is the projection of y onto the unit density.
func densityScale(p estimate.GaussParams, x, y []float64) float64 {
	f := make([]float64, len(x))
	for i, xi := range x {
		f[i] = p.Eval(xi)
	}

	norm := floats.Dot(f, f)
	if norm == 0 {
		return 1
	}

	return floats.Dot(y, f) / norm
}

func formula(e Estimator) string {
	c := e.Coefficients()
	switch e.Type() {
	case ModelTypeExponential:
		return fmt.Sprintf("y = %.6g + %.6g * exp(%.6g * x)", c[0], c[1], c[2])
	case ModelTypePower:
		return fmt.Sprintf("y = %.6g + %.6g * x^%.6g", c[0], c[1], c[2])
	case ModelTypeGaussPDF:
		return fmt.Sprintf("y = %.6g * N(x; μ=%.6g, σ=%.6g)", c[0], c[1], c[2])
	case ModelTypeGaussCDF:
		return fmt.Sprintf("y = Φ((x - %.6g) / %.6g)", c[0], c[1])
	case ModelTypeWeibullCDF:
		return fmt.Sprintf("y = 1 - exp(-((x - %.6g) / %.6g)^%.6g)", c[2], c[1], c[0])
	case ModelTypeSinusoid:
		return fmt.Sprintf("y = %.6g + %.6g * sin(%.6g * x) + %.6g * cos(%.6g * x)", c[0], c[1], c[3], c[2], c[3])
	default:
		return "unknown"
	}
}

// calculateStats calculates R² and RMSE in a single pass.
//
// Formula: R² = 1 - (SS_res / SS_tot), RMSE = √(SS_res / n)
//
// Parameters:
//   - x: Input values
//   - y: Observed values
//   - e: The fitted curve
//
// Returns:
//   - r2: Coefficient of determination (0 when y is constant)
//   - rmse: Root mean square error
func calculateStats(x, y []float64, e Estimator) (r2, rmse float64) {
	n := len(x)
	if n == 0 {
		return 0, 0
	}

	meanY := 0.0
	for _, yi := range y {
		meanY += yi
	}
	meanY /= float64(n)

	ssTot := 0.0 // Total sum of squares
	ssRes := 0.0 // Residual sum of squares

	for i := 0; i < n; i++ {
		yi := y[i]
		residual := yi - e.Estimate(x[i])

		ssTot += (yi - meanY) * (yi - meanY)
		ssRes += residual * residual
	}

	if ssTot == 0 {
		r2 = 0
	} else {
		r2 = 1.0 - (ssRes / ssTot)
	}
	rmse = math.Sqrt(ssRes / float64(n))

	return r2, rmse
}
