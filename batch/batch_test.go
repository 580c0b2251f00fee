package batch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/alitto/pond/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/guess/dataset"
	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/estimate"
	"github.com/arloliu/guess/internal/hash"
	"github.com/arloliu/guess/regression"
)

func expJob(name string, c float64) Job {
	x := make([]float64, 30)
	y := make([]float64, len(x))
	for i := range x {
		x[i] = 0.1 * float64(i)
		y[i] = 2 + 3*math.Exp(c*x[i])
	}

	return Job{Name: name, Model: regression.ModelTypeExponential, X: x, Y: y}
}

func testJobs(n int) []Job {
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = expJob(fmt.Sprintf("job-%d", i), 0.1+0.05*float64(i))
	}

	return jobs
}

func TestRun(t *testing.T) {
	jobs := testJobs(20)
	// constant data cannot be fitted
	jobs[7].Y = make([]float64, len(jobs[7].X))
	for i := range jobs[7].Y {
		jobs[7].Y[i] = 1
	}

	outcomes, err := Run(context.Background(), jobs, WithConcurrency(4))
	require.NoError(t, err)
	require.Len(t, outcomes, len(jobs))
	require.Equal(t, 1, Failed(outcomes))

	for i, out := range outcomes {
		require.Equal(t, jobs[i].Name, out.Name)
		require.Equal(t, hash.ID(jobs[i].Name), out.ID)
		require.Equal(t, hash.Fingerprint(jobs[i].X, jobs[i].Y), out.Fingerprint)

		if i == 7 {
			require.ErrorIs(t, out.Err, errs.ErrIllConditioned)
			require.Nil(t, out.Model)

			continue
		}

		require.NoError(t, out.Err)
		require.InDelta(t, 0.1+0.05*float64(i), out.Model.Coefficients[2], 1e-6)
	}
}

func TestRunMatchesSequentialFit(t *testing.T) {
	jobs := testJobs(8)

	outcomes, err := Run(context.Background(), jobs, WithConcurrency(3),
		WithEstimateOptions(estimate.WithGridCorrection(false)))
	require.NoError(t, err)

	for i, job := range jobs {
		want, err := regression.Fit(job.Model, job.X, job.Y, estimate.WithGridCorrection(false))
		require.NoError(t, err)
		require.Equal(t, want.Coefficients, outcomes[i].Model.Coefficients)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := testJobs(5)
	outcomes, err := Run(ctx, jobs)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, outcomes, len(jobs))

	for i, out := range outcomes {
		require.Equal(t, jobs[i].Name, out.Name)
		require.ErrorIs(t, out.Err, context.Canceled)
		require.Nil(t, out.Model)
	}
	require.Equal(t, len(jobs), Failed(outcomes))
}

type shortSolver struct{}

func (shortSolver) Solve(*mat.Dense, []float64) ([]float64, error) {
	return []float64{1}, nil
}

type panicSolver struct{}

func (panicSolver) Solve(*mat.Dense, []float64) ([]float64, error) {
	panic("solver exploded")
}

func TestRunShortSolution(t *testing.T) {
	jobs := testJobs(3)

	outcomes, err := Run(context.Background(), jobs, WithEstimateOptions(estimate.WithSolver(shortSolver{})))
	require.NoError(t, err)
	require.Equal(t, len(jobs), Failed(outcomes))

	for i, out := range outcomes {
		require.Equal(t, jobs[i].Name, out.Name)
		require.ErrorIs(t, out.Err, errs.ErrIllConditioned)
		require.Nil(t, out.Model)
	}
}

func TestRunPanickingFit(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	jobs := testJobs(3)
	outcomes, err := Run(context.Background(), jobs,
		WithLogger(&logger),
		WithConcurrency(2),
		WithEstimateOptions(estimate.WithSolver(panicSolver{})),
	)
	require.NoError(t, err)
	require.Equal(t, len(jobs), Failed(outcomes))

	for i, out := range outcomes {
		require.Equal(t, jobs[i].Name, out.Name)
		require.Equal(t, hash.ID(jobs[i].Name), out.ID)
		require.Equal(t, hash.Fingerprint(jobs[i].X, jobs[i].Y), out.Fingerprint)
		require.ErrorIs(t, out.Err, pond.ErrPanic)
		require.Contains(t, out.Err.Error(), "solver exploded")
		require.Nil(t, out.Model)
	}
	require.Contains(t, buf.String(), "Sample set fit panicked")
}

func TestRunEmpty(t *testing.T) {
	outcomes, err := Run(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, outcomes)
}

func TestRunOptionErrors(t *testing.T) {
	_, err := Run(context.Background(), nil, WithConcurrency(0))
	require.Error(t, err)

	_, err = Run(context.Background(), nil, WithLogger(nil))
	require.Error(t, err)
}

func TestRunLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	jobs := []Job{expJob("good", 0.3), {Name: "bad", Model: regression.ModelTypeExponential, X: []float64{1}, Y: []float64{1}}}
	_, err := Run(context.Background(), jobs, WithLogger(&logger), WithConcurrency(1))
	require.NoError(t, err)

	bySet := map[string]map[string]any{}
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var event map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		if set, ok := event["set"].(string); ok {
			bySet[set] = event
		}
	}

	require.Contains(t, bySet, "good")
	require.Equal(t, "debug", bySet["good"]["level"])
	require.Equal(t, "exponential", bySet["good"]["model"])
	require.Contains(t, bySet["good"], "set_id")
	require.Contains(t, bySet["good"], "duration")

	require.Contains(t, bySet, "bad")
	require.Equal(t, "warn", bySet["bad"]["level"])
	require.Contains(t, bySet["bad"]["error"], "underdetermined")
}

func TestRunDataset(t *testing.T) {
	jobs := testJobs(4)

	enc, err := dataset.NewEncoder()
	require.NoError(t, err)
	for _, job := range jobs {
		require.NoError(t, enc.Add(job.Name, job.X, job.Y))
	}
	data, err := enc.Finish()
	require.NoError(t, err)

	outcomes, err := RunDataset(context.Background(), data, regression.ModelTypeExponential, WithConcurrency(2))
	require.NoError(t, err)
	require.Len(t, outcomes, len(jobs))
	for i, out := range outcomes {
		require.Equal(t, jobs[i].Name, out.Name)
		require.NoError(t, out.Err)
		require.InDelta(t, 3.0, out.Model.Coefficients[1], 1e-6)
	}

	_, err = RunDataset(context.Background(), data[:10], regression.ModelTypeExponential)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}
