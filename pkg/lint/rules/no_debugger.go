package rules

import (
	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/fix"
	"github.com/yaklabco/gojs/pkg/lint"
	"github.com/yaklabco/gojs/pkg/semantic"
)

const noDebuggerDocs = `### What it does

Disallows ` + "`debugger`" + ` statements.

### Why is this bad?

A ` + "`debugger`" + ` statement pauses execution when developer tools are open.
It should not ship to production.

### Example

` + "```javascript" + `
// Failing
function isTruthy(x) {
  debugger;
  return Boolean(x);
}
` + "```" + `
`

// NoDebuggerRule reports debugger statements.
type NoDebuggerRule struct {
	lint.BaseRule
}

// NewNoDebuggerRule creates a new no-debugger rule.
func NewNoDebuggerRule() *NoDebuggerRule {
	return &NoDebuggerRule{
		BaseRule: lint.NewBaseRule(
			"eslint/no-debugger",
			"Disallow the use of debugger",
			[]string{"correctness"},
			true,
		),
	}
}

// Docs returns the rule documentation in markdown.
func (r *NoDebuggerRule) Docs() string {
	return noDebuggerDocs
}

// Run reports a debugger statement and removes it when fixing.
func (r *NoDebuggerRule) Run(node *semantic.Node, ctx *lint.Context) {
	stmt, ok := node.Kind.(*ast.DebuggerStatement)
	if !ok {
		return
	}

	inList := false
	if parent, ok := ctx.Nodes().Parent(node.ID); ok {
		inList = isStatementList(parent.Kind)
	}

	ctx.DiagnosticWithFix(
		lint.NewDiagnostic("eslint(no-debugger): `debugger` statement is not allowed", stmt.Span).Build(),
		func(f lint.RuleFixer) fix.CompositeFix {
			if inList {
				return f.Delete(stmt.Span)
			}
			// A statement position such as `if (a) debugger;` needs a body.
			return f.Replace(stmt.Span, "{}")
		},
	)
}

// isStatementList reports whether n holds a list of statements, so a child
// statement can be removed without leaving a hole.
func isStatementList(n ast.Node) bool {
	switch n.(type) {
	case *ast.Program, *ast.BlockStatement, *ast.FunctionBody, *ast.SwitchCase, *ast.StaticBlock:
		return true
	}
	return false
}
