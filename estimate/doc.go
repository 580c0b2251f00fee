// Package estimate computes closed-form initial guesses for nonlinear curve
// fits by linearizing the model through an integral equation.
//
// Each estimator turns a nonlinear model into one or more linear
// least-squares problems by integrating the differential equation the model
// satisfies, replacing the exact integrals with cumulative trapezoidal sums
// of the data. No starting point and no iteration are needed, so the result
// is a good seed for an iterative optimizer, or an answer in its own right
// when the data is clean.
//
// # Estimators
//
//   - GaussPDF: y = N(x; μ, σ), any amplitude
//   - GaussCDF: y = Φ((x-μ)/σ)
//   - Exp: y = a + b·exp(c·x)
//   - Pow: y = a + b·x^c
//   - WeibullCDF: F(t) = 1 - exp(-((t-μ)/β)^α)
//   - Sin: y = a + b·sin(ωx) + c·cos(ωx)
//   - NGauss, NGaussGrid: N-dimensional Gaussian α·exp(-½(x-μ)ᵀΣ⁻¹(x-μ))
//   - NSphere: hypersphere center and radius
//
// One-dimensional estimators sort a copy of their input by abscissa, so any
// permutation of the sample pairs gives the same answer; inputs are never
// modified.
//
// # Uniform grids
//
// On an equally spaced grid the trapezoid rule integrates exponentials and
// sinusoids exactly up to a known factor. Exp, Pow, WeibullCDF and Sin undo
// that factor in closed form, so exact samples on a uniform grid round-trip
// to machine precision. WithGridCorrection(false) restores the plain
// trapezoid estimate.
//
// # Errors
//
// Failures are reported as *StageError values wrapping a sentinel from the
// errs package:
//
//	p, err := estimate.Sin(x, y)
//	if errors.Is(err, errs.ErrNonPhysicalFit) {
//	    // data does not oscillate
//	}
//
// # Example
//
//	x := []float64{0, 1, 2, 3, 4}
//	y := []float64{5, 6.946, 10.155, 15.445, 24.167}
//	p, err := estimate.Exp(x, y)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("y = %.3f + %.3f·exp(%.3f·x)\n", p.A, p.B, p.C)
package estimate
