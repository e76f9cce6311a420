package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gojs/internal/logging"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/fix"
	"github.com/yaklabco/gojs/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop. Rules that keep producing edits for
// each other stop here instead of looping forever.
const DefaultMaxFixPasses = 10

var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult is what happened to one source file.
type PipelineResult struct {
	// FileResult holds the findings of the last lint pass, after any fixes.
	*FileResult

	Path string

	// Original is the file as read from disk. It is nil for ProcessContent.
	Original *fsutil.Snapshot

	Modified        bool
	ModifiedContent []byte

	// Diff is set in dry-run mode when fixes changed the source.
	Diff *fix.Diff

	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	FixPasses         int
	TotalEditsApplied int
}

// Summary is a one-word or short description of the outcome.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls the fix and write steps.
type PipelineOptions struct {
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// StrictRaceDetection hashes the file before writing instead of trusting
	// size and mtime alone.
	StrictRaceDetection bool

	// ReParseAfterFix drops fixes whose output no longer parses.
	ReParseAfterFix bool

	// MaxFixPasses of 0 means DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions lints without fixing.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		ReParseAfterFix:     true,
	}
}

// PipelineOptionsFromConfig maps the resolved config onto pipeline options.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	opts.Fix = cfg.Fix
	opts.DryRun = cfg.DryRun
	opts.Backup = BackupConfigFromConfig(cfg)
	return opts
}

// BackupConfigFromConfig honours both the backups table and --no-backups.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// Pipeline lints a file, applies fixes in memory and writes the result back
// only if the file did not change underneath it.
type Pipeline struct {
	Engine *Engine
}

func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path, lints and fixes it, and writes the fixed source
// atomically unless opts.DryRun is set.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.process(ctx, path, snap.Content(), cfg, opts)
	if err != nil || !result.Modified || opts.DryRun {
		if result != nil {
			result.Original = snap
		}
		return result, err
	}
	result.Original = snap

	changed, err := snap.Changed(ctx, opts.StrictRaceDetection)
	if err != nil {
		return nil, err
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	result.BackupCreated, err = fsutil.CreateBackup(ctx, snap, opts.Backup)
	if err != nil {
		return nil, err
	}
	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return result, nil
}

// ProcessContent runs the same lint and fix steps on content already in
// memory. Nothing is written.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	return p.process(ctx, path, content, cfg, opts)
}

func (p *Pipeline) process(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}
	ctx = logging.WithFile(ctx, path)

	content, err := p.fixLoop(ctx, path, original, cfg, opts, result)
	if err != nil {
		return nil, err
	}
	if !result.Modified {
		return result, nil
	}

	if opts.ReParseAfterFix {
		if _, err := p.Engine.Parse(ctx, path, content); err != nil {
			result.Skipped = true
			result.SkipReason = fmt.Sprintf("re-parse failed: %v", err)
			result.Modified = false
			return result, nil
		}
	}

	result.ModifiedContent = content
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
	}
	return result, nil
}

// fixLoop lints content and, in fix mode, applies the accepted edits and lints
// again until a pass yields no edits or the pass limit is hit.
func (p *Pipeline) fixLoop(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
	result *PipelineResult,
) ([]byte, error) {
	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	for range maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = fileResult

		if !opts.Fix || len(fileResult.Edits) == 0 {
			break
		}
		content = fix.ApplyEdits(content, fileResult.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fileResult.Edits)
		result.Modified = true
	}

	if result.FixPasses > 0 {
		logging.FromContext(ctx).Debug("applied fixes", logging.FieldPasses, result.FixPasses)
	}
	return content, nil
}

func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}
