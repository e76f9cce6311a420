// Package pretty provides Lipgloss-based styled output for lint findings.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Finding components
	FilePath lipgloss.Style
	Location lipgloss.Style
	RuleID   lipgloss.Style
	Message  lipgloss.Style
	Help     lipgloss.Style

	// Code frame
	Gutter     lipgloss.Style
	SourceLine lipgloss.Style
	Underline  lipgloss.Style
	Label      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle   lipgloss.Style
	SummaryValue   lipgloss.Style
	Success        lipgloss.Style
	Failure        lipgloss.Style
	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	red := lipgloss.Color("9")
	yellow := lipgloss.Color("11")
	green := lipgloss.Color("10")
	grey := lipgloss.Color("8")

	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(yellow).Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true).Underline(true),
		Location: lipgloss.NewStyle().Foreground(grey),
		RuleID:   lipgloss.NewStyle().Foreground(grey),
		Message:  lipgloss.NewStyle(),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		Gutter:     lipgloss.NewStyle().Foreground(grey),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Underline:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(green),
		DiffRemove:  lipgloss.NewStyle().Foreground(red),
		DiffContext: lipgloss.NewStyle().Foreground(grey),

		SummaryTitle:   lipgloss.NewStyle().Bold(true),
		SummaryValue:   lipgloss.NewStyle(),
		Success:        lipgloss.NewStyle().Foreground(green).Bold(true),
		Failure:        lipgloss.NewStyle().Foreground(red).Bold(true),
		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableErrorRow:  lipgloss.NewStyle().Foreground(red),
		TableWarnRow:   lipgloss.NewStyle().Foreground(yellow),
		TableSeparator: lipgloss.NewStyle().Foreground(grey),

		Dim:  lipgloss.NewStyle().Foreground(grey),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		FilePath:       plain,
		Location:       plain,
		RuleID:         plain,
		Message:        plain,
		Help:           plain,
		Gutter:         plain,
		SourceLine:     plain,
		Underline:      plain,
		Label:          plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableErrorRow:  plain,
		TableWarnRow:   plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
