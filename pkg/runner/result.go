package runner

import (
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
)

// FileOutcome is one linted file: either a pipeline result or the error that
// stopped it.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats are the totals printed under the report.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int
	FilesWithIssues int
	FilesModified   int

	DiagnosticsTotal   int
	DiagnosticsFixable int
	DiagnosticsFixed   int

	// DiagnosticsBySeverity is keyed by "error" and "warning".
	DiagnosticsBySeverity map[string]int
}

// Result holds every file outcome, sorted by path, plus the totals.
type Result struct {
	Files  []FileOutcome
	Stats  Stats
	Errors []error
}

// HasFailures reports an error-severity finding anywhere in the run.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports any finding at all.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	pr := outcome.Result
	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case pr == nil:
		return
	}

	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	r.Stats.DiagnosticsFixed += pr.TotalEditsApplied

	if pr.FileResult == nil || len(pr.Findings) == 0 {
		return
	}
	r.Stats.FilesWithIssues++
	r.Stats.DiagnosticsTotal += len(pr.Findings)
	r.Stats.DiagnosticsFixable += pr.FixableCount()
	for _, f := range pr.Findings {
		severity := f.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.DiagnosticsBySeverity[string(severity)]++
	}
}
