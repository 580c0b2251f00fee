package batch

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/arloliu/guess/estimate"
	"github.com/arloliu/guess/internal/options"
)

// Config holds the configuration of a batch run.
type Config struct {
	// Concurrency is the maximum number of jobs fitted at the same time.
	Concurrency int
	// Logger receives job lifecycle events.
	Logger *zerolog.Logger
	// EstimateOptions are passed to every estimator.
	EstimateOptions []estimate.Option
}

func defaultConfig() Config {
	nop := zerolog.Nop()

	return Config{
		Concurrency: runtime.GOMAXPROCS(0),
		Logger:      &nop,
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithConcurrency sets the maximum number of concurrent jobs (default GOMAXPROCS).
func WithConcurrency(n int) Option {
	return options.New(func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}
		cfg.Concurrency = n

		return nil
	})
}

// WithLogger sets the logger of the run (default zerolog.Nop).
func WithLogger(logger *zerolog.Logger) Option {
	return options.New(func(cfg *Config) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		cfg.Logger = logger

		return nil
	})
}

// WithEstimateOptions sets the options passed to every estimator.
func WithEstimateOptions(opts ...estimate.Option) Option {
	return options.NoError(func(cfg *Config) {
		cfg.EstimateOptions = opts
	})
}
