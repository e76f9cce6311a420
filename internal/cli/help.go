package cli

import (
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gojs/internal/ui/pretty"
)

// defaultHelpWidth is used when the output is not a terminal.
const defaultHelpWidth = 100

const usageTemplate = `{{heading "Usage:"}}
{{- if .Runnable}}
  {{command .UseLine}}{{end}}
{{- if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}
{{- if gt (len .Aliases) 0}}

{{heading "Aliases:"}}
  {{dim (join .Aliases ", ")}}{{end}}
{{- if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}{{end}}
{{- if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{command (rpad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{command (print .CommandPath " [command] --help")}}" for more about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{trim .}}

{{end}}` + usageTemplate

// HelpFormatter renders cobra help and usage with lipgloss colors, wrapping
// flag descriptions at the terminal width.
type HelpFormatter struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
	width   int
}

// NewHelpFormatter picks colors for colorMode as seen from writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{width: terminalWidth(writer)}
	if pretty.IsColorEnabled(colorMode, writer) {
		h.heading = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
		h.command = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		h.flag = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		h.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}
	return h
}

func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultHelpWidth
}

// ApplyToCommand installs the templates on cmd. Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := template.FuncMap{
		"heading": h.heading.Render,
		"command": h.command.Render,
		"dim":     h.dim.Render,
		"flags":   h.flagUsages,
		"join":    strings.Join,
		"trim":    trimTrailingSpace,
		"rpad": func(s string, n int) string {
			if len(s) >= n {
				return s
			}
			return s + strings.Repeat(" ", n-len(s))
		},
	}
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return usage.Execute(c.OutOrStderr(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// flagColumn splits a pflag usage line into its indent, the flag names with
// their value type, and the description.
var flagColumn = regexp.MustCompile(`^(\s*)(\S.*?)(\s{2,})(\S.*)$`)

func (h *HelpFormatter) flagUsages(set interface{ FlagUsagesWrapped(int) string }) string {
	lines := strings.Split(strings.TrimRight(set.FlagUsagesWrapped(h.width), "\n"), "\n")
	for i, line := range lines {
		m := flagColumn.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lines[i] = m[1] + h.flagNames(m[2]) + m[3] + m[4]
	}
	return strings.Join(lines, "\n")
}

// flagNames colors "-f, --file string" as flags and a dimmed value type.
func (h *HelpFormatter) flagNames(names string) string {
	fields := strings.Fields(names)
	for i, f := range fields {
		if name, ok := strings.CutSuffix(f, ","); ok && strings.HasPrefix(name, "-") {
			fields[i] = h.flag.Render(name) + ","
		} else if strings.HasPrefix(f, "-") {
			fields[i] = h.flag.Render(f)
		} else {
			fields[i] = h.dim.Render(f)
		}
	}
	return strings.Join(fields, " ")
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
