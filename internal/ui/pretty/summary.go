package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gojs/pkg/runner"
)

const summaryDividerWidth = 40

// plural returns "n word" with an "s" appended unless n is one.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file"))))
	} else {
		var bySeverity []string
		if errors := stats.DiagnosticsBySeverity["error"]; errors > 0 {
			bySeverity = append(bySeverity, s.Error.Render(plural(errors, "error")))
		}
		if warnings := stats.DiagnosticsBySeverity["warning"]; warnings > 0 {
			bySeverity = append(bySeverity, s.Warning.Render(plural(warnings, "warning")))
		}

		total := plural(stats.DiagnosticsTotal, "issue")
		if len(bySeverity) > 0 {
			total += " (" + strings.Join(bySeverity, ", ") + ")"
		}
		parts = append(parts, total+" in "+plural(stats.FilesWithIssues, "file"))

		if stats.DiagnosticsFixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
		}
	}

	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %s",
			stats.DiagnosticsFixed, plural(stats.FilesModified, "file"))))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "file")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	builder.WriteString("\n")

	row("Total issues", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	if errors := stats.DiagnosticsBySeverity["error"]; errors > 0 {
		row("  Errors", s.Error.Render(strconv.Itoa(errors)))
	}
	if warnings := stats.DiagnosticsBySeverity["warning"]; warnings > 0 {
		row("  Warnings", s.Warning.Render(strconv.Itoa(warnings)))
	}
	builder.WriteString("\n")

	switch {
	case stats.DiagnosticsBySeverity["error"] > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.DiagnosticsBySeverity["warning"] > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
