package linsolve

import (
	"errors"
	"testing"

	"github.com/arloliu/guess/errs"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func solvers() map[string]Solver {
	return map[string]Solver{
		"QR":  QR{},
		"SVD": SVD{},
	}
}

func TestSolveExact(t *testing.T) {
	// y = 2 + 3x sampled exactly
	a := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
	})
	b := []float64{2, 5, 8, 11}

	for name, s := range solvers() {
		t.Run(name, func(t *testing.T) {
			theta, err := s.Solve(a, b)
			require.NoError(t, err)
			require.InDeltaSlice(t, []float64{2, 3}, theta, 1e-12)
		})
	}
}

func TestSolveLeastSquares(t *testing.T) {
	a := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
	})
	b := []float64{1.5, 1.5, 3.5, 3.5}

	for name, s := range solvers() {
		t.Run(name, func(t *testing.T) {
			theta, err := s.Solve(a, b)
			require.NoError(t, err)
			require.InDeltaSlice(t, []float64{1.3, 0.8}, theta, 1e-12)
		})
	}
}

func TestSolveDoesNotModifyInputs(t *testing.T) {
	data := []float64{1, 0, 1, 1, 1, 2}
	a := mat.NewDense(3, 2, append([]float64(nil), data...))
	b := []float64{1, 2, 3}

	for name, s := range solvers() {
		t.Run(name, func(t *testing.T) {
			_, err := s.Solve(a, b)
			require.NoError(t, err)
			require.Equal(t, data, a.RawMatrix().Data)
			require.Equal(t, []float64{1, 2, 3}, b)
		})
	}
}

func TestSolveSingular(t *testing.T) {
	// Second column duplicates the first.
	a := mat.NewDense(3, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
	})
	b := []float64{1, 2, 3}

	for name, s := range solvers() {
		t.Run(name, func(t *testing.T) {
			_, err := s.Solve(a, b)
			require.ErrorIs(t, err, errs.ErrIllConditioned)

			var condErr *ConditionError
			require.True(t, errors.As(err, &condErr))
		})
	}
}

func TestSolveTolerance(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{
		1, 1,
		1, 1 + 1e-6,
		1, 1 - 1e-6,
	})
	b := []float64{1, 2, 3}

	_, err := QR{}.Solve(a, b)
	require.NoError(t, err)

	_, err = QR{CondTolerance: 10}.Solve(a, b)
	require.ErrorIs(t, err, errs.ErrIllConditioned)

	_, err = SVD{RCond: 1e-3}.Solve(a, b)
	require.ErrorIs(t, err, errs.ErrIllConditioned)
}

func TestSolveDimensionErrors(t *testing.T) {
	for name, s := range solvers() {
		t.Run(name, func(t *testing.T) {
			_, err := s.Solve(mat.NewDense(1, 2, []float64{1, 2}), []float64{1})
			require.ErrorIs(t, err, errs.ErrUnderdeterminedSystem)

			_, err = s.Solve(mat.NewDense(2, 1, []float64{1, 2}), []float64{1})
			require.ErrorIs(t, err, errs.ErrLengthMismatch)
		})
	}
}

func TestDefault(t *testing.T) {
	require.Equal(t, QR{CondTolerance: DefaultCondTolerance}, Default())
}
