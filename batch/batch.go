// Package batch fits many independent sample sets in parallel.
//
// Estimators are pure and share no state, so every sample set is fitted as
// an independent task on a bounded worker pool. Results are returned in job
// order; a failing job is recorded in its Outcome and does not stop the run.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/arloliu/guess/dataset"
	"github.com/arloliu/guess/internal/hash"
	"github.com/arloliu/guess/internal/options"
	"github.com/arloliu/guess/regression"
)

// Job is a single sample set to fit.
type Job struct {
	Name  string
	Model regression.ModelType
	X     []float64
	Y     []float64
}

// Outcome is the result of a Job.
type Outcome struct {
	// Name is the job name.
	Name string
	// ID is the xxHash64 of the name.
	ID uint64
	// Fingerprint is the xxHash64 of the sample columns.
	Fingerprint uint64
	// Model is the fitted model, nil when Err is set.
	Model *regression.Model
	// Err is the estimator error, the context error for jobs that never ran,
	// or an error wrapping pond.ErrPanic when the fit panicked.
	Err error
	// Duration is the time spent fitting.
	Duration time.Duration
}

// Failed returns the number of outcomes with an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for i := range outcomes {
		if outcomes[i].Err != nil {
			n++
		}
	}

	return n
}

// Run fits every job on a worker pool.
//
// Parameters:
//   - ctx: Cancelling ctx stops submitting new jobs; running jobs finish
//   - jobs: The sample sets to fit
//   - opts: Concurrency, logger and estimator options
//
// Returns:
//   - []Outcome: One outcome per job, in job order
//   - error: Option error, or ctx.Err() when the run was cancelled
func Run(ctx context.Context, jobs []Job, opts ...Option) ([]Outcome, error) {
	cfg, err := options.Build(defaultConfig(), opts...)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	logger.Info().
		Int("jobs", len(jobs)).
		Int("concurrency", cfg.Concurrency).
		Msg("Starting batch fit")

	start := time.Now()
	outcomes := make([]Outcome, len(jobs))
	tasks := make([]pond.Task, len(jobs))
	pool := pond.NewPool(cfg.Concurrency)

	for i, job := range jobs {
		if ctx.Err() != nil {
			outcomes[i] = skipped(ctx, job)
			continue
		}

		tasks[i] = pool.Submit(func() {
			outcomes[i] = fit(ctx, &cfg, job)
		})
	}

	pool.StopAndWait()

	// A panicking fit leaves its outcome unset; pond reports it through the task.
	for i, task := range tasks {
		if task == nil {
			continue
		}
		if err := task.Wait(); err != nil {
			outcomes[i] = panicked(&cfg, jobs[i], err)
		}
	}

	logger.Info().
		Int("jobs", len(jobs)).
		Int("failed", Failed(outcomes)).
		Dur("duration", time.Since(start)).
		Msg("Batch fit completed")

	if err := ctx.Err(); err != nil {
		return outcomes, err
	}

	return outcomes, nil
}

// RunDataset fits every sample set of an encoded dataset with model mt.
//
// Parameters:
//   - ctx: Cancellation context, see Run
//   - data: A container produced by dataset.Encoder
//   - mt: The model family fitted to every set
//   - opts: Concurrency, logger and estimator options
//
// Returns:
//   - []Outcome: One outcome per set, in container order
//   - error: Decoding error, option error or ctx.Err()
func RunDataset(ctx context.Context, data []byte, mt regression.ModelType, opts ...Option) ([]Outcome, error) {
	dec, err := dataset.NewDecoder(data)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	jobs := make([]Job, 0, dec.Len())
	for set := range dec.All() {
		jobs = append(jobs, Job{Name: set.Name, Model: mt, X: set.X, Y: set.Y})
	}

	return Run(ctx, jobs, opts...)
}

func skipped(ctx context.Context, job Job) Outcome {
	return Outcome{
		Name: job.Name,
		ID:   hash.ID(job.Name),
		Err:  ctx.Err(),
	}
}

func panicked(cfg *Config, job Job, err error) Outcome {
	out := Outcome{
		Name:        job.Name,
		ID:          hash.ID(job.Name),
		Fingerprint: hash.Fingerprint(job.X, job.Y),
		Err:         err,
	}

	cfg.Logger.Error().
		Err(err).
		Str("set", job.Name).
		Uint64("set_id", out.ID).
		Str("model", job.Model.String()).
		Msg("Sample set fit panicked")

	return out
}

func fit(ctx context.Context, cfg *Config, job Job) Outcome {
	if ctx.Err() != nil {
		return skipped(ctx, job)
	}

	out := Outcome{
		Name:        job.Name,
		ID:          hash.ID(job.Name),
		Fingerprint: hash.Fingerprint(job.X, job.Y),
	}

	setLogger := cfg.Logger.With().
		Str("set", job.Name).
		Uint64("set_id", out.ID).
		Str("model", job.Model.String()).
		Logger()

	start := time.Now()
	out.Model, out.Err = regression.Fit(job.Model, job.X, job.Y, cfg.EstimateOptions...)
	out.Duration = time.Since(start)

	if out.Err != nil {
		setLogger.Warn().
			Err(out.Err).
			Dur("duration", out.Duration).
			Msg("Failed to fit sample set")

		return out
	}

	setLogger.Debug().
		Float64("r2", out.Model.RSquared).
		Dur("duration", out.Duration).
		Msg("Fitted sample set")

	return out
}
