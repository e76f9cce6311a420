package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/gojs/internal/ui/pretty"
	"github.com/yaklabco/gojs/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	ruleColWidth      = 40 // Width of the rule name column.
	fileColWidth      = 60 // Width of the file path column (wider for relative paths).
	numColWidth       = 7  // Width of numeric columns.
	warnColWidth      = 8  // Width of warnings column.
	fixableColWidth   = 8  // Width of fixable column.
	maxRuleNameLength = 38 // Maximum characters for rule name before truncation.
	maxFilePathLength = 58 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	r.renderFailures(report.Failures)

	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	// Determine order
	if r.opts.SummaryOrder == SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
		r.renderRuleTable(report.ByRule)
	} else {
		r.renderRuleTable(report.ByRule)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("-", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Fixable", fixableColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("-", tableWidth)))

	// Rows
	for _, rule := range rules {
		ruleName := rule.Display
		if ruleName == "" {
			ruleName = rule.RuleID
		}
		if len(ruleName) > maxRuleNameLength {
			ruleName = ruleName[:maxRuleNameLength-3] + "..."
		}

		// Pad first, then style
		paddedName := padRight(ruleName, ruleColWidth)
		var styledName string
		switch {
		case rule.Errors > 0:
			styledName = r.styles.TableErrorRow.Render(paddedName)
		case rule.Warnings > 0:
			styledName = r.styles.TableWarnRow.Render(paddedName)
		default:
			styledName = paddedName
		}

		fixable := padLeft("", fixableColWidth)
		if rule.Fixable {
			fixable = r.styles.Success.Render(padLeft("yes", fixableColWidth))
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			styledName,
			padLeft(strconv.Itoa(rule.Issues), numColWidth),
			padLeft(strconv.Itoa(rule.Errors), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			fixable,
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("-", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("-", tableWidth)))

	// Rows
	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "..." + path[len(path)-(maxFilePathLength-3):]
		}

		// Pad first, then style
		paddedPath := padRight(path, fileColWidth)
		var styledPath string
		switch {
		case file.Errors > 0:
			styledPath = r.styles.TableErrorRow.Render(paddedPath)
		case file.Warnings > 0:
			styledPath = r.styles.TableWarnRow.Render(paddedPath)
		default:
			styledPath = paddedPath
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			styledPath,
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	line := fmt.Sprintf("%d %s", totals.Issues, pluralWord(totals.Issues, "issue"))

	var bySeverity []string
	if totals.Errors > 0 {
		bySeverity = append(bySeverity, r.styles.Error.Render(fmt.Sprintf("%d %s", totals.Errors, pluralWord(totals.Errors, "error"))))
	}
	if totals.Warnings > 0 {
		bySeverity = append(bySeverity, r.styles.Warning.Render(fmt.Sprintf("%d %s", totals.Warnings, pluralWord(totals.Warnings, "warning"))))
	}
	if len(bySeverity) > 0 {
		line += " (" + strings.Join(bySeverity, ", ") + ")"
	}
	line += fmt.Sprintf(" in %d %s", totals.FilesWithIssues, pluralWord(totals.FilesWithIssues, "file"))
	if totals.Fixable > 0 {
		line += ", " + r.styles.Success.Render(fmt.Sprintf("%d fixable", totals.Fixable))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}

func (r *SummaryRenderer) renderFailures(failures []analysis.FileFailure) {
	for _, failure := range failures {
		fmt.Fprintf(r.out, "%s: %s\n",
			r.styles.FilePath.Render(failure.Path),
			r.styles.Error.Render("error: "+failure.Error),
		)
	}
}

func pluralWord(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
