package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/pkg/analysis"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/fix"
	"github.com/yaklabco/gojs/pkg/lint"
	"github.com/yaklabco/gojs/pkg/lint/rules"
	"github.com/yaklabco/gojs/pkg/reporter"
	"github.com/yaklabco/gojs/pkg/runner"
)

const testSource = "function f() {\n  debugger;\n  return x;\n}\n"

// createTestResult builds a result for src/app.js with one fixable warning
// and one error.
func createTestResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{{
			Path: "/work/src/app.js",
			Result: &lint.PipelineResult{
				FileResult: &lint.FileResult{
					Path:   "/work/src/app.js",
					Source: []byte(testSource),
					Findings: []lint.Finding{
						{
							RuleID:      "eslint/no-debugger",
							RuleName:    "no-debugger",
							Message:     "eslint(no-debugger): `debugger` statement is not allowed",
							Severity:    config.SeverityWarning,
							StartLine:   2,
							StartColumn: 3,
							EndLine:     2,
							EndColumn:   12,
							Fixable:     true,
							FixEdits:    []fix.TextEdit{{StartOffset: 17, EndOffset: 26}},
						},
						{
							RuleID:      "eslint/no-undef",
							RuleName:    "no-undef",
							Message:     "eslint(no-undef): 'x' is not defined.",
							Severity:    config.SeverityError,
							StartLine:   3,
							StartColumn: 10,
							EndLine:     3,
							EndColumn:   11,
						},
					},
				},
			},
		}},
		Stats: runner.Stats{
			FilesDiscovered:       1,
			FilesProcessed:        1,
			FilesWithIssues:       1,
			DiagnosticsTotal:      2,
			DiagnosticsFixable:    1,
			DiagnosticsBySeverity: map[string]int{"error": 1, "warning": 1},
		},
	}
}

func testOptions(buf *bytes.Buffer, format reporter.Format) reporter.Options {
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = format
	opts.Color = "never"
	opts.WorkingDir = "/work"
	return opts
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "sarif", want: reporter.FormatSARIF},
		{input: "diff", want: reporter.FormatDiff},
		{input: "summary", want: reporter.FormatSummary},
		{input: "table", wantErr: true},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormats_AreValid(t *testing.T) {
	t.Parallel()

	for _, format := range reporter.Formats() {
		assert.True(t, format.IsValid(), format.String())
	}
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range append(reporter.Formats(), "") {
		var buf bytes.Buffer
		rep, err := reporter.New(testOptions(&buf, format))
		require.NoError(t, err, format)
		assert.NotNil(t, rep)
	}

	var buf bytes.Buffer
	rep, err := reporter.New(testOptions(&buf, "xml"))
	require.Error(t, err)
	assert.Nil(t, rep)
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := reporter.NewTextReporter(testOptions(&buf, reporter.FormatText)).Report(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No files to check")
}

func TestTextReporter_WithFindings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := reporter.NewTextReporter(testOptions(&buf, reporter.FormatText)).
		Report(context.Background(), createTestResult())

	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "src/app.js (2 issues)")
	assert.Contains(t, out, "src/app.js:2:3  warning")
	assert.Contains(t, out, "(no-debugger)")
	assert.Contains(t, out, "2 |   debugger;")
	assert.Contains(t, out, "|   ^^^^^^^^^")
	assert.Contains(t, out, "3 |   return x;")
	assert.Contains(t, out, "2 issues (1 error, 1 warning) in 1 file, 1 fixable")
}

func TestTextReporter_Options(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := testOptions(&buf, reporter.FormatText)
	opts.ShowContext = false
	opts.ShowSummary = false
	opts.GroupByFile = false
	opts.RuleFormat = config.RuleFormatID

	_, err := reporter.NewTextReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "(eslint/no-debugger)")
	assert.NotContains(t, out, "|", "no code frame")
	assert.NotContains(t, out, "(2 issues)", "no file header")
	assert.NotContains(t, out, "fixable", "no summary")
}

func TestTextReporter_FileErrors(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/bad.js", Error: errors.New("permission denied")},
			{Path: "/work/raced.js", Result: &lint.PipelineResult{Skipped: true, SkipReason: "file changed during processing"}},
		},
		Stats: runner.Stats{DiagnosticsBySeverity: map[string]int{}},
	}

	var buf bytes.Buffer
	_, err := reporter.NewTextReporter(testOptions(&buf, reporter.FormatText)).Report(context.Background(), result)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "bad.js: error: permission denied")
	assert.Contains(t, buf.String(), "raced.js: skipped: file changed during processing")
}

func TestTextReporter_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := reporter.NewTextReporter(testOptions(&buf, reporter.FormatText)).Report(ctx, createTestResult())
	require.ErrorIs(t, err, context.Canceled)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(testOptions(&buf, reporter.FormatJSON))
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var report analysis.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, analysis.ReportVersion, report.Version)
	require.Len(t, report.Findings, 2)
	assert.Equal(t, "src/app.js", report.Findings[0].FilePath)
	assert.Equal(t, "no-debugger", report.Findings[0].RuleName)
	assert.True(t, report.Findings[0].Fixable)
	assert.Equal(t, 2, report.Totals.Issues)
	assert.Equal(t, 1, report.Totals.FilesWithIssues)
	assert.Contains(t, buf.String(), `"ruleId": "eslint/no-undef"`)
}

func TestJSONReporter_EmptyAndCompact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := testOptions(&buf, reporter.FormatJSON)
	opts.Compact = true
	rep, err := reporter.New(opts)
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), nil)
	require.NoError(t, err)

	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, `"findings":[]`)
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	var buf bytes.Buffer
	opts := testOptions(&buf, reporter.FormatSARIF)
	opts.Registry = registry
	opts.ToolVersion = "1.2.3"

	count, err := reporter.NewSARIFReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, "gojs", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "no-debugger", run.Tool.Driver.Rules[0].Name)
	assert.NotContains(t, run.Tool.Driver.Rules[0].ShortDescription.Text, "eslint(no-debugger)",
		"registry descriptions replace messages")

	require.Len(t, run.Results, 2)
	debugger := run.Results[0]
	assert.Equal(t, "warning", debugger.Level)
	assert.Equal(t, "src/app.js", debugger.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 2, debugger.Locations[0].PhysicalLocation.Region.StartLine)

	require.Len(t, debugger.Fixes, 1)
	replacement := debugger.Fixes[0].ArtifactChanges[0].Replacements[0]
	require.NotNil(t, replacement.DeletedRegion.ByteOffset)
	assert.Equal(t, 17, *replacement.DeletedRegion.ByteOffset)
	assert.Equal(t, 9, *replacement.DeletedRegion.ByteLength)

	assert.Equal(t, "error", run.Results[1].Level)
	assert.Empty(t, run.Results[1].Fixes)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	original := []byte(testSource)
	modified := []byte("function f() {\n  \n  return x;\n}\n")
	result := createTestResult()
	result.Files[0].Result.Diff = fix.GenerateDiff("/work/src/app.js", original, modified)

	var buf bytes.Buffer
	count, err := reporter.NewDiffReporter(testOptions(&buf, reporter.FormatDiff)).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/src/app.js b/src/app.js")
	assert.Contains(t, out, "--- a/src/app.js")
	assert.Contains(t, out, "-  debugger;")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)")
}

func TestDiffReporter_NoDiffs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(testOptions(&buf, reporter.FormatDiff))

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, buf.String())

	count, err = rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSummaryFormat_ThroughFacade(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(testOptions(&buf, reporter.FormatSummary))
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Contains(t, buf.String(), "Rules Summary")
	assert.Contains(t, buf.String(), "src/app.js")
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()

	assert.NotNil(t, opts.Writer)
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.ShowSummary)
	assert.True(t, opts.GroupByFile)
	assert.Equal(t, config.RuleFormatName, opts.RuleFormat)
	assert.Equal(t, reporter.SummaryOrderRules, opts.SummaryOrder)
}
