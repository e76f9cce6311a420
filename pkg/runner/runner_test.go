package runner_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/fix"
	"github.com/yaklabco/gojs/pkg/lint"
	"github.com/yaklabco/gojs/pkg/runner"
	"github.com/yaklabco/gojs/pkg/semantic"
)

// debuggerRule reports debugger statements and deletes them when fixing.
type debuggerRule struct {
	lint.BaseRule
}

func newDebuggerRule() *debuggerRule {
	return &debuggerRule{BaseRule: lint.NewBaseRule("test/debugger", "reports debugger", nil, true)}
}

func (r *debuggerRule) Run(node *semantic.Node, ctx *lint.Context) {
	stmt, ok := node.Kind.(*ast.DebuggerStatement)
	if !ok {
		return
	}
	ctx.DiagnosticWithFix(
		lint.NewDiagnostic("debugger", stmt.Span).Build(),
		func(f lint.RuleFixer) fix.CompositeFix { return f.Delete(stmt.Span) },
	)
}

// countingRule counts the files it sees.
type countingRule struct {
	lint.BaseRule
	count *atomic.Int32
}

func (r *countingRule) RunOnce(*lint.Context) {
	r.count.Add(1)
}

func newRunner(rules ...lint.Rule) *runner.Runner {
	registry := lint.NewRegistry()
	for _, rule := range rules {
		registry.Register(rule)
	}
	return runner.New(lint.NewPipeline(lint.NewEngine(registry)))
}

func writeSources(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewEngine(lint.NewRegistry()))
	lintRunner := runner.New(pipeline)

	if lintRunner.Pipeline != pipeline {
		t.Error("Pipeline not set correctly")
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	result, err := newRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 0 {
		t.Errorf("FilesDiscovered = %d, want 0", result.Stats.FilesDiscovered)
	}
	if len(result.Files) != 0 {
		t.Errorf("len(Files) = %d, want 0", len(result.Files))
	}
}

func TestRunner_Run_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSources(t, dir, map[string]string{"test.js": "let x = 1;\n"})

	result, err := newRunner(newDebuggerRule()).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 1 {
		t.Errorf("FilesDiscovered = %d, want 1", result.Stats.FilesDiscovered)
	}
	if result.Stats.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1", result.Stats.FilesProcessed)
	}
	if result.HasIssues() {
		t.Error("clean file should have no issues")
	}
}

func TestRunner_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a.js", "b.js", "c.mjs", "d.cjs", "e.js"} {
		files[name] = "const name = '" + name + "';\n"
	}
	writeSources(t, dir, files)

	var count atomic.Int32
	rule := &countingRule{BaseRule: lint.NewBaseRule("test/count", "", nil, false), count: &count}

	result, err := newRunner(rule).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Jobs:       3,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != len(files) {
		t.Errorf("FilesDiscovered = %d, want %d", result.Stats.FilesDiscovered, len(files))
	}
	if result.Stats.FilesProcessed != len(files) {
		t.Errorf("FilesProcessed = %d, want %d", result.Stats.FilesProcessed, len(files))
	}
	if int(count.Load()) != len(files) {
		t.Errorf("rule ran on %d files, want %d", count.Load(), len(files))
	}
}

func TestRunner_Run_WithDiagnostics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSources(t, dir, map[string]string{
		"clean.js": "let x = 1;\n",
		"dirty.js": "debugger;\ndebugger;\n",
	})

	cfg := config.NewConfig()
	cfg.Rules["test/debugger"] = config.RuleConfig{Severity: config.SeverityError}

	result, err := newRunner(newDebuggerRule()).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.DiagnosticsTotal != 2 {
		t.Errorf("DiagnosticsTotal = %d, want 2", result.Stats.DiagnosticsTotal)
	}
	if result.Stats.FilesWithIssues != 1 {
		t.Errorf("FilesWithIssues = %d, want 1", result.Stats.FilesWithIssues)
	}
	if result.Stats.DiagnosticsBySeverity["error"] != 2 {
		t.Errorf("error count = %d, want 2", result.Stats.DiagnosticsBySeverity["error"])
	}
	if !result.HasFailures() {
		t.Error("HasFailures() should be true")
	}

	// Files come back in path order.
	if filepath.Base(result.Files[0].Path) != "clean.js" || filepath.Base(result.Files[1].Path) != "dirty.js" {
		t.Errorf("unexpected order: %s, %s", result.Files[0].Path, result.Files[1].Path)
	}
}

func TestRunner_Run_ParseErrorIsolated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSources(t, dir, map[string]string{
		"bad.js":  "function (\n",
		"good.js": "debugger;\n",
	})

	result, err := newRunner(newDebuggerRule()).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesErrored != 1 {
		t.Errorf("FilesErrored = %d, want 1", result.Stats.FilesErrored)
	}
	if !errors.Is(result.Files[0].Error, lint.ErrParseFailure) {
		t.Errorf("bad.js error = %v, want ErrParseFailure", result.Files[0].Error)
	}
	if result.Stats.DiagnosticsTotal != 1 {
		t.Errorf("DiagnosticsTotal = %d, want 1", result.Stats.DiagnosticsTotal)
	}
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{}
	for i := range 20 {
		files[fmt.Sprintf("f%02d.js", i)] = "let a;\n" + strings.Repeat("debugger;\n", i%4)
	}
	writeSources(t, dir, files)

	run := func(jobs int) *runner.Result {
		result, err := newRunner(newDebuggerRule()).Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Config:     config.NewConfig(),
		})
		if err != nil {
			t.Fatalf("Run(jobs=%d) error = %v", jobs, err)
		}
		return result
	}

	serial := run(1)
	parallel := run(8)

	if len(serial.Files) != len(parallel.Files) {
		t.Fatalf("file count differs: %d vs %d", len(serial.Files), len(parallel.Files))
	}
	for i := range serial.Files {
		s, p := serial.Files[i], parallel.Files[i]
		if s.Path != p.Path {
			t.Errorf("file[%d] path %s vs %s", i, s.Path, p.Path)
		}
		if len(s.Result.Findings) != len(p.Result.Findings) {
			t.Errorf("%s: %d vs %d findings", s.Path, len(s.Result.Findings), len(p.Result.Findings))
		}
	}
	if serial.Stats.DiagnosticsTotal != parallel.Stats.DiagnosticsTotal {
		t.Errorf("DiagnosticsTotal %d vs %d", serial.Stats.DiagnosticsTotal, parallel.Stats.DiagnosticsTotal)
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSources(t, dir, map[string]string{"a.js": "a();\n", "b.js": "b();\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunner_Run_WithFixes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSources(t, dir, map[string]string{"fix.js": "debugger;\nrun();\n"})

	cfg := config.NewConfig()
	cfg.Fix = true

	result, err := newRunner(newDebuggerRule()).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesModified != 1 {
		t.Errorf("FilesModified = %d, want 1", result.Stats.FilesModified)
	}
	if result.Stats.DiagnosticsFixed != 1 {
		t.Errorf("DiagnosticsFixed = %d, want 1", result.Stats.DiagnosticsFixed)
	}

	got, err := os.ReadFile(filepath.Join(dir, "fix.js"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "\nrun();\n" {
		t.Errorf("content = %q", got)
	}
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSources(t, dir, map[string]string{"fix.js": "debugger;\nrun();\n"})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true

	result, err := newRunner(newDebuggerRule()).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesModified != 0 {
		t.Errorf("FilesModified = %d, want 0 in dry-run", result.Stats.FilesModified)
	}

	got, err := os.ReadFile(filepath.Join(dir, "fix.js"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "debugger;\nrun();\n" {
		t.Errorf("dry-run modified the file: %q", got)
	}

	if len(result.Files) != 1 || result.Files[0].Result.Diff == nil {
		t.Error("expected diff in dry-run mode")
	}
}

func TestResult_HasFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		want   bool
	}{
		{
			name:   "nil result",
			result: nil,
			want:   false,
		},
		{
			name: "no errors",
			result: &runner.Result{
				Stats: runner.Stats{
					DiagnosticsBySeverity: map[string]int{"warning": 5},
				},
			},
			want: false,
		},
		{
			name: "with errors",
			result: &runner.Result{
				Stats: runner.Stats{
					DiagnosticsBySeverity: map[string]int{"error": 1, "warning": 5},
				},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.result.HasFailures()
			if got != tt.want {
				t.Errorf("HasFailures() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResult_HasIssues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		want   bool
	}{
		{
			name:   "nil result",
			result: nil,
			want:   false,
		},
		{
			name: "no issues",
			result: &runner.Result{
				Stats: runner.Stats{DiagnosticsTotal: 0},
			},
			want: false,
		},
		{
			name: "with issues",
			result: &runner.Result{
				Stats: runner.Stats{DiagnosticsTotal: 3},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.result.HasIssues()
			if got != tt.want {
				t.Errorf("HasIssues() = %v, want %v", got, tt.want)
			}
		})
	}
}
