package estimate

import (
	"errors"

	"github.com/arloliu/guess/internal/options"
	"github.com/arloliu/guess/linsolve"
	"github.com/arloliu/guess/special"
)

// DefaultUniformTolerance is the relative step spread under which a grid is
// treated as uniformly spaced by the grid correction.
const DefaultUniformTolerance = 1e-9

// Config holds the settings shared by all estimators.
//
// The zero value is not usable; configurations are built from
// DefaultConfig through Option values.
type Config struct {
	// Solver solves every linear least-squares stage.
	Solver linsolve.Solver
	// Special provides erf and its inverse.
	Special special.Functions
	// Sorted asserts that the input is already ascending in the sort key,
	// skipping the sort. Unsorted input with Sorted set produces wrong results.
	Sorted bool
	// GridCorrection enables the closed-form trapezoid bias correction on
	// uniformly spaced grids.
	GridCorrection bool
	// UniformTolerance is the relative step spread accepted as uniform.
	UniformTolerance float64

	// Weighting selects the N-D Gaussian weighting policy. Ignored by the
	// other estimators.
	Weighting Weighting
	// Weights, when non-nil, are explicit N-D Gaussian weights, one per
	// sample. They take precedence over Weighting.
	Weights []float64
	// Scaling maps every N-D Gaussian axis onto [-1, 1] before solving.
	Scaling bool
}

// Option configures an estimator call.
type Option = options.Option[*Config]

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Solver:           linsolve.Default(),
		Special:          special.Default(),
		GridCorrection:   true,
		UniformTolerance: DefaultUniformTolerance,
		Weighting:        ValueWeights,
	}
}

// WithSolver sets the linear least-squares backend.
func WithSolver(s linsolve.Solver) Option {
	return options.New(func(cfg *Config) error {
		if s == nil {
			return errors.New("solver must not be nil")
		}
		cfg.Solver = s

		return nil
	})
}

// WithSpecial sets the error function backend.
func WithSpecial(f special.Functions) Option {
	return options.New(func(cfg *Config) error {
		if f == nil {
			return errors.New("special function backend must not be nil")
		}
		cfg.Special = f

		return nil
	})
}

// WithSorted declares whether the input is already sorted ascending.
//
// For WeibullCDF the sort key is the probability column; for every other
// one-dimensional estimator it is x.
func WithSorted(sorted bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Sorted = sorted
	})
}

// WithGridCorrection enables or disables the uniform-grid trapezoid correction.
func WithGridCorrection(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.GridCorrection = enabled
	})
}

// WithUniformTolerance sets the relative step spread accepted as uniform.
func WithUniformTolerance(tol float64) Option {
	return options.New(func(cfg *Config) error {
		if !(tol >= 0 && tol < 1) {
			return errors.New("uniform tolerance must be in [0, 1)")
		}
		cfg.UniformTolerance = tol

		return nil
	})
}

// WithWeighting sets the N-D Gaussian weighting policy.
func WithWeighting(w Weighting) Option {
	return options.New(func(cfg *Config) error {
		if w == nil {
			return errors.New("weighting must not be nil")
		}
		cfg.Weighting = w

		return nil
	})
}

// WithWeights sets explicit N-D Gaussian weights, one per sample.
func WithWeights(w []float64) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Weights = w
	})
}

// WithScaling enables the N-D Gaussian axis normalization.
func WithScaling(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Scaling = enabled
	})
}

func buildConfig(opts []Option) (Config, error) {
	return options.Build(DefaultConfig(), opts...)
}
