package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gojs/internal/ui/pretty"
	"github.com/yaklabco/gojs/pkg/runner"
)

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stats      runner.Stats
		contains   []string
		notContain []string
	}{
		{
			name: "errors",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       3,
				DiagnosticsTotal:      15,
				DiagnosticsBySeverity: map[string]int{"error": 5, "warning": 10},
			},
			contains: []string{"Summary", "Files checked:", "Files with issues:", "Errors:", "Warnings:", "Lint failed with errors"},
		},
		{
			name: "warnings only",
			stats: runner.Stats{
				FilesProcessed:        2,
				FilesWithIssues:       1,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[string]int{"warning": 1},
			},
			contains:   []string{"Lint completed with warnings"},
			notContain: []string{"Errors:"},
		},
		{
			name:       "clean",
			stats:      runner.Stats{FilesProcessed: 5, DiagnosticsBySeverity: map[string]int{}},
			contains:   []string{"Lint passed"},
			notContain: []string{"Files with issues:"},
		},
		{
			name: "modified and skipped",
			stats: runner.Stats{
				FilesProcessed:        4,
				FilesModified:         2,
				FilesSkipped:          1,
				DiagnosticsBySeverity: map[string]int{},
			},
			contains: []string{"Files modified:", "Files skipped:"},
		},
		{
			name:     "errored files fail the run",
			stats:    runner.Stats{FilesProcessed: 1, FilesErrored: 1, DiagnosticsBySeverity: map[string]int{}},
			contains: []string{"Files failed:", "Lint failed with errors"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := pretty.NewStyles(false).FormatSummary(tt.stats)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContain {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no issues",
			stats: runner.Stats{FilesProcessed: 5, DiagnosticsBySeverity: map[string]int{}},
			want:  "No issues found (5 files checked)\n",
		},
		{
			name: "mixed severities",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       3,
				DiagnosticsTotal:      12,
				DiagnosticsFixable:    8,
				DiagnosticsBySeverity: map[string]int{"error": 4, "warning": 8},
			},
			want: "12 issues (4 errors, 8 warnings) in 3 files, 8 fixable\n",
		},
		{
			name: "singular words",
			stats: runner.Stats{
				FilesProcessed:        1,
				FilesWithIssues:       1,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[string]int{"warning": 1},
			},
			want: "1 issue (1 warning) in 1 file\n",
		},
		{
			name: "fixes applied with nothing left",
			stats: runner.Stats{
				FilesProcessed:        3,
				FilesModified:         2,
				DiagnosticsFixed:      7,
				DiagnosticsBySeverity: map[string]int{},
			},
			want: "No issues found (3 files checked), 7 fixed in 2 files\n",
		},
		{
			name: "failed files",
			stats: runner.Stats{
				FilesProcessed:        1,
				FilesErrored:          1,
				DiagnosticsBySeverity: map[string]int{},
			},
			want: "No issues found (1 file checked), 1 file failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, pretty.NewStyles(false).FormatSummaryOneLine(tt.stats))
		})
	}
}
