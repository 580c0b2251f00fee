package regression

import (
	"errors"
	"slices"

	"github.com/arloliu/guess/estimate"
	"github.com/arloliu/guess/internal/options"
)

// AnalyzeConfig holds the configuration of an analysis.
type AnalyzeConfig struct {
	// Models lists the candidate families, in the order they are tried.
	Models []ModelType
	// EstimateOptions are passed to every estimator.
	EstimateOptions []estimate.Option
}

// defaultAnalyzeConfig returns the default config (every model family, default estimator options).
func defaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		Models: ModelTypes(),
	}
}

// AnalyzeOption is a functional option for AnalyzeConfig.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithModels restricts the candidate families.
func WithModels(models ...ModelType) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		if len(models) == 0 {
			return errors.New("at least one model type is required")
		}
		for _, mt := range models {
			if _, ok := modelTypeNames[mt]; !ok {
				return errors.New("unknown model type: " + mt.String())
			}
		}
		cfg.Models = slices.Clone(models)

		return nil
	})
}

// WithEstimateOptions sets the options passed to every estimator.
func WithEstimateOptions(opts ...estimate.Option) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.EstimateOptions = opts
	})
}
