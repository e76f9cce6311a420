package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gojs/internal/logging"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files on a bounded errgroup, one goroutine per file
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
//
// A file that fails to lint is recorded in its FileOutcome and does not stop
// the others.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	// Discover files.
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	// Determine job count.
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("linting files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
	)

	// Get pipeline options from config.
	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)

	// Each goroutine owns one slot, so the result keeps discovery order.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.process(groupCtx, path, opts.Config, pipelineOpts)
			done[i] = true
			return nil
		})
	}
	waitErr := group.Wait()

	for i := range files {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	// Check for context error.
	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}

	return result, nil
}

// process lints one file through the pipeline.
func (r *Runner) process(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts lint.PipelineOptions,
) FileOutcome {
	outcome := FileOutcome{Path: path}

	pr, err := r.Pipeline.ProcessFile(ctx, path, cfg, opts)
	if err != nil {
		logging.FromContext(ctx).Debug("file failed",
			logging.FieldPath, path,
			logging.FieldError, err,
		)
		outcome.Error = err
	} else {
		outcome.Result = pr
	}
	return outcome
}
