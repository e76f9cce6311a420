package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
)

const (
	// maxFrameLines caps how many lines of a multi-line span are shown.
	maxFrameLines = 3
	tabWidth      = 4
)

// Source gives the code frame access to the linted text.
type Source interface {
	SourceLine(line int) string
}

// FormatFinding formats a finding for terminal output. When source is
// non-nil a code frame with the reported span underlined follows the
// headline.
func (s *Styles) FormatFinding(path string, finding *lint.Finding, source Source, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", path, finding.StartLine, finding.StartColumn)
	rule := config.FormatRuleID(ruleFormat, finding.RuleID, finding.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		s.Location.Render(location),
		s.FormatSeverity(finding.Severity),
		s.Message.Render(finding.Message),
		s.RuleID.Render("("+rule+")"),
	)

	if source != nil {
		builder.WriteString(s.FormatCodeFrame(finding, source))
	}

	if finding.Help != "" {
		builder.WriteString("    " + s.Help.Render("help:") + " " + finding.Help + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatCodeFrame renders the lines a finding covers with a gutter and an
// underline beneath the reported columns of the first line.
func (s *Styles) FormatCodeFrame(finding *lint.Finding, source Source) string {
	first := finding.StartLine
	if first < 1 {
		return ""
	}
	last := max(finding.EndLine, first)
	last = min(last, first+maxFrameLines-1)

	gutterWidth := len(strconv.Itoa(last))
	blankGutter := "    " + strings.Repeat(" ", gutterWidth) + " " + s.Gutter.Render("|")

	var builder strings.Builder
	for line := first; line <= last; line++ {
		text := source.SourceLine(line)
		if line == first && text == "" && finding.EndLine <= first {
			return ""
		}
		fmt.Fprintf(&builder, "    %s %s %s\n",
			s.Gutter.Render(fmt.Sprintf("%*d", gutterWidth, line)),
			s.Gutter.Render("|"),
			s.SourceLine.Render(expandTabs(text)),
		)

		if line != first {
			continue
		}
		pad, width := underlineExtent(text, finding)
		underline := strings.Repeat(" ", pad) + s.Underline.Render(strings.Repeat("^", width))
		if text := primaryLabelText(finding); text != "" {
			underline += " " + s.Label.Render(text)
		}
		builder.WriteString(blankGutter + " " + underline + "\n")
	}

	if finding.EndLine > last {
		builder.WriteString(blankGutter + " " + s.Dim.Render("...") + "\n")
	}
	return builder.String()
}

// underlineExtent returns the display offset and width of the underline
// for the first line of a finding. Columns count runes; display width
// accounts for wide characters and expanded tabs.
func underlineExtent(text string, finding *lint.Finding) (int, int) {
	runes := []rune(text)
	start := clamp(finding.StartColumn-1, 0, len(runes))
	end := len(runes)
	if finding.EndLine == finding.StartLine {
		end = clamp(finding.EndColumn-1, start, len(runes))
	}

	pad := uniseg.StringWidth(expandTabs(string(runes[:start])))
	width := uniseg.StringWidth(expandTabs(string(runes[start:end])))
	return pad, max(width, 1)
}

func primaryLabelText(finding *lint.Finding) string {
	for _, label := range finding.Labels {
		if label.Primary {
			return label.Text
		}
	}
	return ""
}

func expandTabs(text string) string {
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		word := "issues"
		if issueCount == 1 {
			word = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, word))
	}
	return header
}
