package lint

import (
	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/config"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic with its primary label at span.
func NewDiagnostic(message string, span ast.Span) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			Message: message,
			Labels:  []Label{{Span: span, Primary: true}},
		},
	}
}

// WithHelp sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.diag.Help = help
	return b
}

// WithLabel sets the text of the primary label.
func (b *DiagnosticBuilder) WithLabel(text string) *DiagnosticBuilder {
	b.diag.Labels[0].Text = text
	return b
}

// WithSecondaryLabel adds a non-primary label.
func (b *DiagnosticBuilder) WithSecondaryLabel(span ast.Span, text string) *DiagnosticBuilder {
	b.diag.Labels = append(b.diag.Labels, Label{Span: span, Text: text})
	return b
}

// WithSeverity sets the severity. The context overrides it with the
// configured severity when the diagnostic is reported.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
