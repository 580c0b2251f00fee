// Package regression fits, scores and ranks closed-form curve models.
//
// Each model family is backed by an estimator from package estimate. Fit runs
// one estimator and scores the resulting curve over the sample; Analyze runs
// every candidate family, records the families that cannot be fitted, and ranks
// the rest by the coefficient of determination.
//
// # Usage Patterns
//
// ## Single Family
//
//	model, err := regression.Fit(regression.ModelTypeSinusoid, x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Formula, model.RSquared)
//
// ## Model Comparison
//
//	result, err := regression.Analyze(x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, model := range result.AllModels {
//	    fmt.Printf("%s: R²=%.4f, Formula=%s\n", model.Type, model.RSquared, model.Formula)
//	}
//	for mt, err := range result.Failures {
//	    fmt.Printf("%s: %v\n", mt, err)
//	}
//
// ## Stored Models
//
// Coefficients can be persisted and turned back into an estimator:
//
//	est, err := regression.NewEstimator(model.Type.String(), model.Coefficients)
//
// # Model Types
//
//   - **exponential**: y = a + b·exp(c·x)
//   - **power**: y = a + b·x^c
//   - **gauss-pdf**: y = k·N(x; μ, σ)
//   - **gauss-cdf**: y = Φ((x-μ)/σ)
//   - **weibull-cdf**: y = 1 - exp(-((x-μ)/β)^α)
//   - **sinusoid**: y = a + b·sin(ωx) + c·cos(ωx)
package regression
