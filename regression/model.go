package regression

import "fmt"

// Model represents a fitted curve model with metadata and the concrete estimator.
//
// A Model contains all the information needed to understand and use a fitted
// model. It includes the mathematical formula, goodness-of-fit metrics, and a
// concrete estimator for evaluating the curve.
//
// Fields:
//   - Type: The model family (exponential, power, gauss-pdf, ...)
//   - Coefficients: The fitted parameters of the model
//   - RSquared: Coefficient of determination (higher is better, 1 is a perfect fit)
//   - RMSE: Root mean square error (lower is better)
//   - Formula: Human-readable mathematical formula
//   - Estimator: Concrete implementation for evaluating the curve
type Model struct {
	// Type is the model family.
	Type ModelType
	// Coefficients contains the model coefficients, ordered as documented on
	// the estimator of each family.
	Coefficients []float64
	// RSquared is the coefficient of determination.
	RSquared float64
	// RMSE is the root mean square error.
	RMSE float64
	// Formula is a human-readable representation of the model.
	Formula string
	// Estimator is the concrete estimator implementation.
	Estimator Estimator
}

// String returns a string representation of the model.
//
// Returns:
//   - string: Formatted model information
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4f, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}

// Result represents the result of an analysis over several model families.
//
// A Result contains the best-fit model selected by the highest R² value and
// all successfully fitted candidates for comparison, together with the
// families that could not be fitted and why.
//
// Fields:
//   - BestFit: The model with the highest R² value
//   - AllModels: All fitted models ranked by R² (best first)
//   - Failures: Estimator errors of the families that could not be fitted
type Result struct {
	// BestFit is the best-fit model (highest R²).
	BestFit *Model
	// AllModels contains all candidate models ranked by R² (best first).
	AllModels []*Model
	// Failures maps each family that failed to its estimator error.
	Failures map[ModelType]error
}

// String returns a string representation of the result.
//
// Returns:
//   - string: Formatted result information
func (r *Result) String() string {
	if r.BestFit == nil {
		return "Result{BestFit: nil}"
	}

	return fmt.Sprintf("Result{BestFit: %s, TotalModels: %d, Failed: %d}",
		r.BestFit, len(r.AllModels), len(r.Failures))
}
