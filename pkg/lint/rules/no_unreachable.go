package rules

import (
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
)

const noUnreachableDocs = `### What it does

Disallows statements that can never run because they follow a
` + "`return`" + `, ` + "`throw`" + `, ` + "`break`" + ` or ` + "`continue`" + `, or an infinite loop.

### Example

` + "```javascript" + `
// Failing
function foo() {
  return true;
  console.log("done");
}
` + "```" + `
`

// NoUnreachableRule reports statements the control flow graph never reaches.
type NoUnreachableRule struct {
	lint.BaseRule
}

// NewNoUnreachableRule creates a new no-unreachable rule.
func NewNoUnreachableRule() *NoUnreachableRule {
	return &NoUnreachableRule{
		BaseRule: lint.NewBaseRule(
			"eslint/no-unreachable",
			"Disallow unreachable code after return, throw, continue, and break statements",
			[]string{"correctness", "cfg"},
			false,
		),
	}
}

// Docs returns the rule documentation in markdown.
func (r *NoUnreachableRule) Docs() string {
	return noUnreachableDocs
}

// DefaultSeverity is error.
func (r *NoUnreachableRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// RunOnce reports each outermost unreachable statement.
func (r *NoUnreachableRule) RunOnce(ctx *lint.Context) {
	nodes := ctx.Nodes()
	for _, id := range ctx.CFG().Unreachable() {
		ctx.Diagnostic(lint.NewDiagnostic(
			"eslint(no-unreachable): Unreachable code.",
			nodes.Get(id).Kind.GetSpan(),
		).Build())
	}
}
