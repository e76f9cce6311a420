package analysis

import "time"

// Report contains pre-computed views of lint results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Findings is the flat list for detailed output.
	Findings []FindingEntry `json:"findings"`

	// ByFile groups findings by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups findings by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Failures lists files that could not be linted.
	Failures []FileFailure `json:"failures,omitempty"`

	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// FindingEntry is a single finding with its display path resolved.
type FindingEntry struct {
	FilePath    string     `json:"filePath"`
	RuleID      string     `json:"ruleId"`
	RuleName    string     `json:"ruleName"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	Help        string     `json:"help,omitempty"`
	StartLine   int        `json:"startLine"`
	StartColumn int        `json:"startColumn"`
	EndLine     int        `json:"endLine"`
	EndColumn   int        `json:"endColumn"`
	Fixable     bool       `json:"fixable"`
	Fixes       []FixEntry `json:"fixes,omitempty"`
}

// FileFailure records a file that errored before linting finished.
type FileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// FixEntry represents a text edit fix.
type FixEntry struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	FilesModified   int `json:"filesModified"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Fixable         int `json:"fixable"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Fixable  int      `json:"fixable"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`

	// Display is the identifier formatted per Options.RuleFormat.
	Display string `json:"display"`

	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
