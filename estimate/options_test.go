package estimate

import (
	"testing"

	"github.com/arloliu/guess/linsolve"
	"github.com/arloliu/guess/special"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, linsolve.Default(), cfg.Solver)
	require.Equal(t, special.Default(), cfg.Special)
	require.False(t, cfg.Sorted)
	require.True(t, cfg.GridCorrection)
	require.Equal(t, DefaultUniformTolerance, cfg.UniformTolerance)
	require.NotNil(t, cfg.Weighting)
	require.Nil(t, cfg.Weights)
	require.False(t, cfg.Scaling)
}

func TestBuildConfig(t *testing.T) {
	cfg, err := buildConfig([]Option{
		WithSolver(linsolve.SVD{RCond: 1e-10}),
		WithSpecial(special.Gonum{}),
		WithSorted(true),
		WithGridCorrection(false),
		WithUniformTolerance(1e-6),
		WithWeights([]float64{1, 2}),
		WithScaling(true),
	})
	require.NoError(t, err)
	require.Equal(t, linsolve.SVD{RCond: 1e-10}, cfg.Solver)
	require.Equal(t, special.Gonum{}, cfg.Special)
	require.True(t, cfg.Sorted)
	require.False(t, cfg.GridCorrection)
	require.Equal(t, 1e-6, cfg.UniformTolerance)
	require.Equal(t, []float64{1, 2}, cfg.Weights)
	require.True(t, cfg.Scaling)
}

func TestBuildConfigRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"nil solver", WithSolver(nil)},
		{"nil special", WithSpecial(nil)},
		{"nil weighting", WithWeighting(nil)},
		{"negative tolerance", WithUniformTolerance(-1)},
		{"tolerance of one", WithUniformTolerance(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildConfig([]Option{tt.opt})
			require.Error(t, err)
		})
	}
}

func TestSortedOptionSkipsSort(t *testing.T) {
	x := grid(0, 0.25, 21)
	y := eval(ExpParams{A: 1, B: 2, C: 0.3}.Eval, x)

	sorted, err := Exp(x, y, WithSorted(true))
	require.NoError(t, err)

	def, err := Exp(x, y)
	require.NoError(t, err)
	require.Equal(t, def, sorted)
}
