package regression

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/estimate"
)

// ModelType represents the family of a fitted curve.
type ModelType int

const (
	// ModelTypeExponential represents y = a + b·exp(c·x)
	ModelTypeExponential ModelType = iota
	// ModelTypePower represents y = a + b·x^c
	ModelTypePower
	// ModelTypeGaussPDF represents y = k·N(x; μ, σ)
	ModelTypeGaussPDF
	// ModelTypeGaussCDF represents y = Φ((x-μ)/σ)
	ModelTypeGaussCDF
	// ModelTypeWeibullCDF represents y = 1 - exp(-((x-μ)/β)^α)
	ModelTypeWeibullCDF
	// ModelTypeSinusoid represents y = a + b·sin(ωx) + c·cos(ωx)
	ModelTypeSinusoid
)

// modelTypeNames maps ModelType to their string representations.
var modelTypeNames = map[ModelType]string{
	ModelTypeExponential: "exponential",
	ModelTypePower:       "power",
	ModelTypeGaussPDF:    "gauss-pdf",
	ModelTypeGaussCDF:    "gauss-cdf",
	ModelTypeWeibullCDF:  "weibull-cdf",
	ModelTypeSinusoid:    "sinusoid",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// modelTypeFromString maps string names to ModelType.
var modelTypeFromString = map[string]ModelType{
	"exponential": ModelTypeExponential,
	"power":       ModelTypePower,
	"gauss-pdf":   ModelTypeGaussPDF,
	"gauss-cdf":   ModelTypeGaussCDF,
	"weibull-cdf": ModelTypeWeibullCDF,
	"sinusoid":    ModelTypeSinusoid,
}

// ModelTypeFromString returns the ModelType for a given string name.
// Returns ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	if modelType, exists := modelTypeFromString[strings.ToLower(name)]; exists {
		return modelType
	}

	return ModelType(-1)
}

// ModelTypes returns every supported model type in declaration order.
func ModelTypes() []ModelType {
	return []ModelType{
		ModelTypeExponential,
		ModelTypePower,
		ModelTypeGaussPDF,
		ModelTypeGaussCDF,
		ModelTypeWeibullCDF,
		ModelTypeSinusoid,
	}
}

// newEmptyEstimator creates an empty estimator for the given ModelType.
func newEmptyEstimator(modelType ModelType) Estimator {
	switch modelType {
	case ModelTypeExponential:
		return NewExponentialEstimator(estimate.ExpParams{})
	case ModelTypePower:
		return NewPowerEstimator(estimate.PowParams{})
	case ModelTypeGaussPDF:
		return NewGaussPDFEstimator(0, estimate.GaussParams{})
	case ModelTypeGaussCDF:
		return NewGaussCDFEstimator(estimate.GaussParams{})
	case ModelTypeWeibullCDF:
		return NewWeibullCDFEstimator(estimate.WeibullParams{})
	case ModelTypeSinusoid:
		return NewSinusoidEstimator(estimate.SinParams{})
	default:
		return nil
	}
}

// Estimator evaluates a fitted curve.
type Estimator interface {
	// Estimate evaluates the curve at x.
	Estimate(x float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns a copy of the model coefficients.
	Coefficients() []float64
	// SetCoefficients updates the coefficients of the model.
	// The number of coefficients must match the model's expected count:
	//   - 2 coefficients: gauss-cdf
	//   - 3 coefficients: exponential, power, gauss-pdf, weibull-cdf
	//   - 4 coefficients: sinusoid
	SetCoefficients(coeffs []float64) error
}

func checkCoefficients(mt ModelType, coeffs []float64, want int) error {
	if len(coeffs) != want {
		return fmt.Errorf("%s model expects exactly %d coefficients, got %d", mt, want, len(coeffs))
	}

	return nil
}

// ExponentialEstimator implements y = a + b·exp(c·x) with coefficients [a, b, c].
type ExponentialEstimator struct {
	p estimate.ExpParams
}

// NewExponentialEstimator creates an exponential estimator from fitted parameters.
func NewExponentialEstimator(p estimate.ExpParams) *ExponentialEstimator {
	return &ExponentialEstimator{p: p}
}

// Estimate evaluates the curve at x.
func (e *ExponentialEstimator) Estimate(x float64) float64 { return e.p.Eval(x) }

// Type returns the model type.
func (e *ExponentialEstimator) Type() ModelType { return ModelTypeExponential }

// Coefficients returns [a, b, c].
func (e *ExponentialEstimator) Coefficients() []float64 {
	return []float64{e.p.A, e.p.B, e.p.C}
}

// SetCoefficients updates [a, b, c].
func (e *ExponentialEstimator) SetCoefficients(coeffs []float64) error {
	if err := checkCoefficients(ModelTypeExponential, coeffs, 3); err != nil {
		return err
	}
	e.p = estimate.ExpParams{A: coeffs[0], B: coeffs[1], C: coeffs[2]}

	return nil
}

// Params returns the underlying parameters.
func (e *ExponentialEstimator) Params() estimate.ExpParams { return e.p }

// PowerEstimator implements y = a + b·x^c with coefficients [a, b, c].
type PowerEstimator struct {
	p estimate.PowParams
}

// NewPowerEstimator creates a power-law estimator from fitted parameters.
func NewPowerEstimator(p estimate.PowParams) *PowerEstimator {
	return &PowerEstimator{p: p}
}

// Estimate evaluates the curve at x.
func (e *PowerEstimator) Estimate(x float64) float64 { return e.p.Eval(x) }

// Type returns the model type.
func (e *PowerEstimator) Type() ModelType { return ModelTypePower }

// Coefficients returns [a, b, c].
func (e *PowerEstimator) Coefficients() []float64 {
	return []float64{e.p.A, e.p.B, e.p.C}
}

// SetCoefficients updates [a, b, c].
func (e *PowerEstimator) SetCoefficients(coeffs []float64) error {
	if err := checkCoefficients(ModelTypePower, coeffs, 3); err != nil {
		return err
	}
	e.p = estimate.PowParams{A: coeffs[0], B: coeffs[1], C: coeffs[2]}

	return nil
}

// Params returns the underlying parameters.
func (e *PowerEstimator) Params() estimate.PowParams { return e.p }

// GaussPDFEstimator implements y = k·N(x; μ, σ) with coefficients [k, μ, σ].
type GaussPDFEstimator struct {
	scale float64
	p     estimate.GaussParams
}

// NewGaussPDFEstimator creates a scaled Gaussian density estimator.
func NewGaussPDFEstimator(scale float64, p estimate.GaussParams) *GaussPDFEstimator {
	return &GaussPDFEstimator{scale: scale, p: p}
}

// Estimate evaluates the curve at x.
func (e *GaussPDFEstimator) Estimate(x float64) float64 { return e.scale * e.p.Eval(x) }

// Type returns the model type.
func (e *GaussPDFEstimator) Type() ModelType { return ModelTypeGaussPDF }

// Coefficients returns [k, μ, σ].
func (e *GaussPDFEstimator) Coefficients() []float64 {
	return []float64{e.scale, e.p.Mu, e.p.Sigma}
}

// SetCoefficients updates [k, μ, σ].
func (e *GaussPDFEstimator) SetCoefficients(coeffs []float64) error {
	if err := checkCoefficients(ModelTypeGaussPDF, coeffs, 3); err != nil {
		return err
	}
	e.scale = coeffs[0]
	e.p = estimate.GaussParams{Mu: coeffs[1], Sigma: coeffs[2]}

	return nil
}

// Params returns the underlying distribution parameters.
func (e *GaussPDFEstimator) Params() estimate.GaussParams { return e.p }

// GaussCDFEstimator implements y = Φ((x-μ)/σ) with coefficients [μ, σ].
type GaussCDFEstimator struct {
	p estimate.GaussParams
}

// NewGaussCDFEstimator creates a Gaussian CDF estimator.
func NewGaussCDFEstimator(p estimate.GaussParams) *GaussCDFEstimator {
	return &GaussCDFEstimator{p: p}
}

// Estimate evaluates the curve at x.
func (e *GaussCDFEstimator) Estimate(x float64) float64 { return e.p.CDF(x) }

// Type returns the model type.
func (e *GaussCDFEstimator) Type() ModelType { return ModelTypeGaussCDF }

// Coefficients returns [μ, σ].
func (e *GaussCDFEstimator) Coefficients() []float64 {
	return []float64{e.p.Mu, e.p.Sigma}
}

// SetCoefficients updates [μ, σ].
func (e *GaussCDFEstimator) SetCoefficients(coeffs []float64) error {
	if err := checkCoefficients(ModelTypeGaussCDF, coeffs, 2); err != nil {
		return err
	}
	e.p = estimate.GaussParams{Mu: coeffs[0], Sigma: coeffs[1]}

	return nil
}

// Params returns the underlying distribution parameters.
func (e *GaussCDFEstimator) Params() estimate.GaussParams { return e.p }

// WeibullCDFEstimator implements the shifted Weibull CDF with coefficients [α, β, μ].
type WeibullCDFEstimator struct {
	p estimate.WeibullParams
}

// NewWeibullCDFEstimator creates a Weibull CDF estimator.
func NewWeibullCDFEstimator(p estimate.WeibullParams) *WeibullCDFEstimator {
	return &WeibullCDFEstimator{p: p}
}

// Estimate evaluates the curve at x.
func (e *WeibullCDFEstimator) Estimate(x float64) float64 { return e.p.Eval(x) }

// Type returns the model type.
func (e *WeibullCDFEstimator) Type() ModelType { return ModelTypeWeibullCDF }

// Coefficients returns [α, β, μ].
func (e *WeibullCDFEstimator) Coefficients() []float64 {
	return []float64{e.p.Alpha, e.p.Beta, e.p.Mu}
}

// SetCoefficients updates [α, β, μ].
func (e *WeibullCDFEstimator) SetCoefficients(coeffs []float64) error {
	if err := checkCoefficients(ModelTypeWeibullCDF, coeffs, 3); err != nil {
		return err
	}
	e.p = estimate.WeibullParams{Alpha: coeffs[0], Beta: coeffs[1], Mu: coeffs[2]}

	return nil
}

// Params returns the underlying distribution parameters.
func (e *WeibullCDFEstimator) Params() estimate.WeibullParams { return e.p }

// SinusoidEstimator implements y = a + b·sin(ωx) + c·cos(ωx) with
// coefficients [a, b, c, ω].
type SinusoidEstimator struct {
	p estimate.SinParams
}

// NewSinusoidEstimator creates a sinusoid estimator.
func NewSinusoidEstimator(p estimate.SinParams) *SinusoidEstimator {
	return &SinusoidEstimator{p: p}
}

// Estimate evaluates the curve at x.
func (e *SinusoidEstimator) Estimate(x float64) float64 { return e.p.Eval(x) }

// Type returns the model type.
func (e *SinusoidEstimator) Type() ModelType { return ModelTypeSinusoid }

// Coefficients returns [a, b, c, ω].
func (e *SinusoidEstimator) Coefficients() []float64 {
	return []float64{e.p.A, e.p.B, e.p.C, e.p.Omega}
}

// SetCoefficients updates [a, b, c, ω].
func (e *SinusoidEstimator) SetCoefficients(coeffs []float64) error {
	if err := checkCoefficients(ModelTypeSinusoid, coeffs, 4); err != nil {
		return err
	}
	e.p = estimate.SinParams{A: coeffs[0], B: coeffs[1], C: coeffs[2], Omega: coeffs[3]}

	return nil
}

// Params returns the underlying parameters.
func (e *SinusoidEstimator) Params() estimate.SinParams { return e.p }

// NewEstimator creates a new estimator by name and coefficients.
//
// This function provides a factory method for recreating estimators from
// stored coefficients, e.g. after reading a Model back from a database.
//
// Parameters:
//   - name: The model name (case-insensitive), one of the ModelType strings
//   - coeffs: The model coefficients, in the order documented on the
//     matching estimator type
//
// Returns:
//   - Estimator: The created estimator instance
//   - error: errs.ErrUnknownModel for an invalid name, or a coefficient count error
//
// Example:
//
//	est, err := regression.NewEstimator("exponential", []float64{2, 3, 0.5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := est.Estimate(1.5)
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	modelType := ModelTypeFromString(name)
	if modelType == ModelType(-1) {
		var supportedTypes []string
		for _, modelTypeName := range modelTypeNames {
			supportedTypes = append(supportedTypes, modelTypeName)
		}
		slices.Sort(supportedTypes)

		return nil, fmt.Errorf("%w: %s. Supported types: %s", errs.ErrUnknownModel, name, strings.Join(supportedTypes, ", "))
	}

	estimator := newEmptyEstimator(modelType)
	if err := estimator.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return estimator, nil
}
