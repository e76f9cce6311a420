// Package analysis aggregates a lint run into per-file and per-rule views.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
	"github.com/yaklabco/gojs/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// accumulator holds temporary state during analysis.
type accumulator struct {
	opts      Options
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAccumulator(opts Options) *accumulator {
	return &accumulator{
		opts:      opts,
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

func (acc *accumulator) file(path string) *FileAnalysis {
	if _, ok := acc.fileMap[path]; !ok {
		acc.fileMap[path] = &FileAnalysis{Path: path}
		acc.fileRules[path] = make(map[string]bool)
	}
	return acc.fileMap[path]
}

func (acc *accumulator) rule(ruleID, ruleName string) *RuleAnalysis {
	if _, ok := acc.ruleMap[ruleID]; !ok {
		acc.ruleMap[ruleID] = &RuleAnalysis{
			RuleID:   ruleID,
			RuleName: ruleName,
			Display:  config.FormatRuleID(acc.opts.RuleFormat, ruleID, ruleName),
		}
		acc.ruleFiles[ruleID] = make(map[string]bool)
	}
	return acc.ruleMap[ruleID]
}

// add folds one finding into the totals and both groupings.
func (acc *accumulator) add(path string, finding *lint.Finding, totals *Totals) {
	fa := acc.file(path)
	ra := acc.rule(finding.RuleID, finding.RuleName)

	totals.Issues++
	fa.Issues++
	ra.Issues++

	switch finding.Severity {
	case config.SeverityError:
		totals.Errors++
		fa.Errors++
		ra.Errors++
	default:
		totals.Warnings++
		fa.Warnings++
		ra.Warnings++
	}

	if finding.Fixable {
		totals.Fixable++
		fa.Fixable++
		ra.Fixable = true
	}

	acc.fileRules[path][finding.RuleID] = true
	acc.ruleFiles[finding.RuleID][path] = true
}

func newFindingEntry(path string, finding *lint.Finding) FindingEntry {
	severity := string(finding.Severity)
	if severity == "" {
		severity = string(config.SeverityWarning)
	}
	entry := FindingEntry{
		FilePath:    path,
		RuleID:      finding.RuleID,
		RuleName:    finding.RuleName,
		Severity:    severity,
		Message:     finding.Message,
		Help:        finding.Help,
		StartLine:   finding.StartLine,
		StartColumn: finding.StartColumn,
		EndLine:     finding.EndLine,
		EndColumn:   finding.EndColumn,
		Fixable:     finding.Fixable,
	}
	for _, edit := range finding.FixEdits {
		entry.Fixes = append(entry.Fixes, FixEntry{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return entry
}

func (acc *accumulator) byRule() []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(acc.ruleMap))
	for ruleID, ra := range acc.ruleMap {
		for f := range acc.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	slices.SortStableFunc(result, func(left, right RuleAnalysis) int {
		return compareCounts(acc.opts, left.RuleID, right.RuleID,
			counts{left.Issues, left.Errors, left.Warnings},
			counts{right.Issues, right.Errors, right.Warnings})
	})
	return result
}

func (acc *accumulator) byFile() []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range acc.fileMap {
		if fa.Issues == 0 {
			continue
		}
		for r := range acc.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	slices.SortStableFunc(result, func(left, right FileAnalysis) int {
		return compareCounts(acc.opts, left.Path, right.Path,
			counts{left.Issues, left.Errors, left.Warnings},
			counts{right.Issues, right.Errors, right.Warnings})
	})
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the findings to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	acc := newAccumulator(opts)

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Failures = append(report.Failures, FileFailure{Path: displayPath, Error: file.Error.Error()})
			continue
		}
		if file.Result == nil {
			continue
		}
		if file.Result.Written {
			report.Totals.FilesModified++
		}
		if file.Result.FileResult == nil {
			continue
		}
		if len(file.Result.Findings) > 0 {
			report.Totals.FilesWithIssues++
		}

		for i := range file.Result.Findings {
			finding := &file.Result.Findings[i]
			acc.add(displayPath, finding, &report.Totals)
			if opts.IncludeFindings {
				report.Findings = append(report.Findings, newFindingEntry(displayPath, finding))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = acc.byRule()
	}
	if opts.IncludeByFile {
		report.ByFile = acc.byFile()
	}

	return report
}

type counts struct {
	issues, errors, warnings int
}

// compareCounts orders two groups per opts. Ties fall back to the key so
// output is stable across runs.
func compareCounts(opts Options, leftKey, rightKey string, left, right counts) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
		// Alphabetical sorting is always ascending.
		return cmp.Compare(leftKey, rightKey)
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(right.errors, left.errors),
			cmp.Compare(right.warnings, left.warnings),
			cmp.Compare(right.issues, left.issues),
		)
	default:
		result = cmp.Compare(left.issues, right.issues)
		if opts.SortDesc {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(leftKey, rightKey))
}
