package estimate

import (
	"fmt"
	"math"

	"github.com/arloliu/guess/errs"
)

// StageError reports which estimator stage and which check failed.
//
// It wraps one of the errs sentinels, so both styles work:
//
//	if errors.Is(err, errs.ErrNonPhysicalFit) { ... }
//
//	var se *estimate.StageError
//	if errors.As(err, &se) {
//	    log.Printf("stage %s failed: %s", se.Stage, se.Check)
//	}
type StageError struct {
	// Estimator names the estimator, e.g. "sin".
	Estimator string
	// Stage names the failing stage, e.g. "integral" or "input".
	Stage string
	// Check describes the violated precondition.
	Check string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s estimator, %s stage, %s: %v", e.Estimator, e.Stage, e.Check, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(estimator, stage, check string, err error) *StageError {
	return &StageError{Estimator: estimator, Stage: stage, Check: check, Err: err}
}

func nonPhysical(estimator, stage, check string, format string, args ...any) *StageError {
	return stageErr(estimator, stage, check, fmt.Errorf("%w: "+format, append([]any{errs.ErrNonPhysicalFit}, args...)...))
}

// checkFinite converts NaN or infinite parameters into ErrNonPhysicalFit.
func checkFinite(estimator, stage string, names []string, values ...float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nonPhysical(estimator, stage, "finite parameters", "%s = %v", names[i], v)
		}
	}

	return nil
}
