// Package guess computes closed-form initial guesses for non-linear curve fits.
//
// Non-linear least-squares optimizers need a starting point. The estimators of
// this module produce one without iteration: each model is rewritten as a
// linear relation between the samples and their cumulative integrals, solved
// by ordinary least squares, and converted back to model parameters.
//
// # Core Features
//
//   - Exponential, power-law, Weibull CDF, Gaussian PDF/CDF and sinusoid estimators
//   - N-dimensional Gaussian surfaces and n-sphere fits
//   - Exact recovery on uniformly spaced samples
//   - Typed errors (errs.ErrNonPhysicalFit, ...) carrying the failing stage
//   - Model ranking by R², parallel batch fitting and a compact sample-set container
//
// # Basic Usage
//
//	import "github.com/arloliu/guess"
//
//	model, err := guess.Fit(guess.ModelExponential, x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Formula)
//
//	result, err := guess.Analyze(x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.BestFit)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the estimate,
// regression, dataset and batch packages. For fine-grained control over the
// individual estimators use the estimate package directly.
package guess

import (
	"context"

	"github.com/arloliu/guess/batch"
	"github.com/arloliu/guess/dataset"
	"github.com/arloliu/guess/estimate"
	"github.com/arloliu/guess/internal/hash"
	"github.com/arloliu/guess/regression"
)

// Model families accepted by Fit and RunBatch.
const (
	ModelExponential = regression.ModelTypeExponential
	ModelPower       = regression.ModelTypePower
	ModelGaussPDF    = regression.ModelTypeGaussPDF
	ModelGaussCDF    = regression.ModelTypeGaussCDF
	ModelWeibullCDF  = regression.ModelTypeWeibullCDF
	ModelSinusoid    = regression.ModelTypeSinusoid
)

// Fit fits one model family to the sample.
//
// Parameters:
//   - mt: The model family
//   - x, y: Sample columns of equal length
//   - opts: Estimator options (solver, grid correction, ...)
//
// Returns:
//   - *regression.Model: Fitted model with coefficients, R², RMSE and an estimator
//   - error: The estimator error, see package errs
func Fit(mt regression.ModelType, x, y []float64, opts ...estimate.Option) (*regression.Model, error) {
	return regression.Fit(mt, x, y, opts...)
}

// Analyze fits every model family and ranks the successful fits by R².
//
// Returns:
//   - *regression.Result: Best fit, ranked candidates and per-family failures
//   - error: Joined estimator errors if no family could be fitted
func Analyze(x, y []float64, opts ...regression.AnalyzeOption) (*regression.Result, error) {
	return regression.Analyze(x, y, opts...)
}

// NewDatasetEncoder creates a sample-set container encoder.
//
// The default encoder is little-endian with Zstd payload compression.
func NewDatasetEncoder(opts ...dataset.EncoderOption) (*dataset.Encoder, error) {
	return dataset.NewEncoder(opts...)
}

// NewDatasetDecoder validates an encoded container and prepares it for reading.
func NewDatasetDecoder(data []byte) (*dataset.Decoder, error) {
	return dataset.NewDecoder(data)
}

// RunBatch fits every job in parallel and returns the outcomes in job order.
func RunBatch(ctx context.Context, jobs []batch.Job, opts ...batch.Option) ([]batch.Outcome, error) {
	return batch.Run(ctx, jobs, opts...)
}

// SetID computes the 64-bit identifier of a sample set name.
//
// It uses xxHash64, the same hash stored in dataset index entries and
// reported in batch outcomes.
func SetID(name string) uint64 {
	return hash.ID(name)
}
