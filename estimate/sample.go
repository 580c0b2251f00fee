package estimate

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/internal/pool"
	"github.com/arloliu/guess/linsolve"
	"gonum.org/v1/gonum/mat"
)

// prepare validates a sample set and returns it sorted by key.
//
// The returned slices never alias the inputs unless cfg.Sorted is set, in
// which case the inputs are returned as-is. Ties in key are broken by the
// other column so that any permutation of the input pairs yields the same
// order.
func prepare(estimator string, cfg *Config, key, other []float64, minPoints int) ([]float64, []float64, error) {
	if len(key) != len(other) {
		return nil, nil, stageErr(estimator, "input", "equal lengths",
			fmt.Errorf("%w: %d vs %d values", errs.ErrLengthMismatch, len(key), len(other)))
	}
	if len(key) < minPoints {
		return nil, nil, stageErr(estimator, "input", "point count",
			fmt.Errorf("%w: %d points, need at least %d", errs.ErrUnderdeterminedSystem, len(key), minPoints))
	}
	for i := range key {
		if !isFinite(key[i]) || !isFinite(other[i]) {
			return nil, nil, stageErr(estimator, "input", "finite values",
				fmt.Errorf("%w: point %d is (%v, %v)", errs.ErrNonFinite, i, key[i], other[i]))
		}
	}

	if cfg.Sorted {
		return key, other, nil
	}

	idx, cleanup := pool.GetIntSlice(len(key))
	defer cleanup()
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(i, j int) int {
		if c := cmp.Compare(key[i], key[j]); c != 0 {
			return c
		}

		return cmp.Compare(other[i], other[j])
	})

	k := make([]float64, len(key))
	o := make([]float64, len(other))
	for i, j := range idx {
		k[i] = key[j]
		o[i] = other[j]
	}

	return k, o, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// design is a pooled design matrix for one regression stage.
type design struct {
	*mat.Dense
	release func()
}

func newDesign(rows, cols int) design {
	data, cleanup := pool.GetFloat64Slice(rows * cols)

	return design{Dense: mat.NewDense(rows, cols, data), release: cleanup}
}

// solveStage runs one linear least-squares stage and releases the design matrix.
func solveStage(estimator, stage string, solver linsolve.Solver, a design, b []float64) ([]float64, error) {
	defer a.release()

	theta, err := solver.Solve(a.Dense, b)
	if err != nil {
		return nil, stageErr(estimator, stage, "linear solve", err)
	}
	if _, cols := a.Dims(); len(theta) != cols {
		return nil, stageErr(estimator, stage, "linear solve",
			fmt.Errorf("%w: solver returned %d coefficients for %d columns", errs.ErrIllConditioned, len(theta), cols))
	}

	return theta, nil
}
