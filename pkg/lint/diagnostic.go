package lint

import (
	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/fix"
)

// Label marks a span of source with optional text.
type Label struct {
	Span    ast.Span
	Text    string
	Primary bool
}

// Diagnostic is a single lint issue as a rule reports it.
type Diagnostic struct {
	// RuleName is filled in by the context from the running rule.
	RuleName string

	Message  string
	Severity config.Severity

	// Help is an optional hint on how to resolve the issue.
	Help string

	// Labels holds the primary span first, then any secondary spans.
	Labels []Label
}

// Span returns the primary label's span, or the first label's span when
// none is marked primary.
func (d Diagnostic) Span() ast.Span {
	for _, l := range d.Labels {
		if l.Primary {
			return l.Span
		}
	}
	if len(d.Labels) > 0 {
		return d.Labels[0].Span
	}
	return ast.Span{}
}

// Message is a diagnostic paired with the normalized fix that resolves it.
type Message struct {
	Diagnostic
	Fix *fix.TextEdit
}

// HasFix returns true if this message carries a fix.
func (m *Message) HasFix() bool {
	return m.Fix != nil
}
