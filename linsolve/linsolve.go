// Package linsolve provides the dense least-squares solvers used by the
// estimators.
//
// A Solver receives an n×m design matrix and a length-n target and returns the
// length-m least-squares solution. Singular or numerically rank-deficient
// systems are reported with an error wrapping errs.ErrIllConditioned, and
// systems with fewer rows than columns with errs.ErrUnderdeterminedSystem.
//
// Two backends are provided, both built on gonum:
//
//   - QR: Householder QR factorization, rejects systems whose condition number
//     exceeds a tolerance. This is the default.
//   - SVD: Thin singular value decomposition with a relative rank cutoff.
//
// Solvers are stateless values and safe for concurrent use.
package linsolve

import (
	"fmt"
	"math"

	"github.com/arloliu/guess/errs"
	"gonum.org/v1/gonum/mat"
)

// DefaultCondTolerance is the largest condition number QR accepts when no
// explicit tolerance is configured.
const DefaultCondTolerance = 1e12

// DefaultRCond is the relative singular value cutoff SVD uses when no explicit
// cutoff is configured.
const DefaultRCond = 1e-12

// Solver solves dense linear least-squares problems a·θ ≈ b.
type Solver interface {
	// Solve returns θ minimizing ||a·θ - b||₂.
	//
	// Implementations must not modify a or b.
	Solve(a *mat.Dense, b []float64) ([]float64, error)
}

// ConditionError reports a system rejected for its conditioning.
type ConditionError struct {
	// Cond is the estimated condition number, +Inf for exactly singular systems.
	Cond float64
	// Tolerance is the limit that was exceeded.
	Tolerance float64
}

// Error implements the error interface.
func (e *ConditionError) Error() string {
	return fmt.Sprintf("%s: condition number %g exceeds %g", errs.ErrIllConditioned, e.Cond, e.Tolerance)
}

// Unwrap returns errs.ErrIllConditioned.
func (e *ConditionError) Unwrap() error {
	return errs.ErrIllConditioned
}

// QR solves least-squares problems through a QR factorization.
type QR struct {
	// CondTolerance is the largest accepted condition number.
	// Zero selects DefaultCondTolerance.
	CondTolerance float64
}

var _ Solver = QR{}

// Solve implements Solver.
func (s QR) Solve(a *mat.Dense, b []float64) ([]float64, error) {
	rows, cols, err := checkDims(a, b)
	if err != nil {
		return nil, err
	}

	tol := s.CondTolerance
	if tol <= 0 {
		tol = DefaultCondTolerance
	}

	var qr mat.QR
	qr.Factorize(a)
	if cond := qr.Cond(); !(cond <= tol) {
		return nil, &ConditionError{Cond: cond, Tolerance: tol}
	}

	theta := mat.NewVecDense(cols, nil)
	if err := qr.SolveVecTo(theta, false, mat.NewVecDense(rows, b)); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIllConditioned, err)
	}

	return finite(theta.RawVector().Data)
}

// SVD solves least-squares problems through a thin singular value
// decomposition, returning the minimum-norm solution.
type SVD struct {
	// RCond is the relative cutoff: singular values below RCond times the
	// largest one count as zero. Zero selects DefaultRCond.
	RCond float64
}

var _ Solver = SVD{}

// Solve implements Solver. Systems whose numerical rank is below the column
// count are rejected rather than silently regularized.
func (s SVD) Solve(a *mat.Dense, b []float64) ([]float64, error) {
	rows, cols, err := checkDims(a, b)
	if err != nil {
		return nil, err
	}

	rcond := s.RCond
	if rcond <= 0 {
		rcond = DefaultRCond
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: SVD factorization failed", errs.ErrIllConditioned)
	}

	values := svd.Values(nil)
	rank := 0
	for _, v := range values {
		if v > rcond*values[0] {
			rank++
		}
	}
	if rank < cols {
		cond := math.Inf(1)
		if values[len(values)-1] > 0 {
			cond = values[0] / values[len(values)-1]
		}

		return nil, &ConditionError{Cond: cond, Tolerance: 1 / rcond}
	}

	theta := mat.NewVecDense(cols, nil)
	svd.SolveVecTo(theta, mat.NewVecDense(rows, b), rank)

	return finite(theta.RawVector().Data)
}

// Default returns the solver used when none is configured.
func Default() Solver {
	return QR{CondTolerance: DefaultCondTolerance}
}

func checkDims(a *mat.Dense, b []float64) (rows, cols int, err error) {
	rows, cols = a.Dims()
	if rows != len(b) {
		return 0, 0, fmt.Errorf("%w: matrix has %d rows, target has %d", errs.ErrLengthMismatch, rows, len(b))
	}
	if rows < cols {
		return 0, 0, fmt.Errorf("%w: %d equations for %d unknowns", errs.ErrUnderdeterminedSystem, rows, cols)
	}

	return rows, cols, nil
}

func finite(theta []float64) ([]float64, error) {
	for i, v := range theta {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: coefficient %d is not finite", errs.ErrIllConditioned, i)
		}
	}

	return theta, nil
}
