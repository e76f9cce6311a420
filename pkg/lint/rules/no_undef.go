package rules

import (
	"fmt"

	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
	"github.com/yaklabco/gojs/pkg/semantic"
)

const noUndefDocs = `### What it does

Disallows the use of undeclared variables, unless they are configured in
` + "`globals`" + ` or provided by an enabled ` + "`env`" + `.

### Options

- ` + "`typeof`" + ` (default false): also report identifiers used as the operand
  of ` + "`typeof`" + `.

### Example

` + "```javascript" + `
// Failing
const a = someFunction();
b = 10;

// Passing with env: { browser: true }
window.alert("hi");
` + "```" + `
`

// NoUndefRule reports references that resolve to no declaration.
type NoUndefRule struct {
	lint.BaseRule
}

// NewNoUndefRule creates a new no-undef rule.
func NewNoUndefRule() *NoUndefRule {
	return &NoUndefRule{
		BaseRule: lint.NewBaseRule(
			"eslint/no-undef",
			"Disallow the use of undeclared variables",
			[]string{"correctness", "scope"},
			false,
		),
	}
}

// Docs returns the rule documentation in markdown.
func (r *NoUndefRule) Docs() string {
	return noUndefDocs
}

// DefaultSeverity is error; an undefined name is a runtime ReferenceError.
func (r *NoUndefRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// RunOnce walks the unresolved references in source order.
func (r *NoUndefRule) RunOnce(ctx *lint.Context) {
	checkTypeof := ctx.OptionBool("typeof", false)
	globals := ctx.Globals()

	for _, ref := range ctx.Symbols().References() {
		if ref.IsResolved() {
			continue
		}
		if g, ok := globals[ref.Name]; ok && g.IsEnabled() {
			continue
		}
		if ctx.EnvContainsVar(ref.Name) {
			continue
		}
		if ref.Name == "arguments" && ctx.Scopes().InFunction(ref.Scope) {
			continue
		}
		if !checkTypeof && isTypeofOperand(ctx, ref.Node) {
			continue
		}

		ctx.Diagnostic(lint.NewDiagnostic(
			fmt.Sprintf("eslint(no-undef): '%s' is not defined.", ref.Name),
			ref.Span,
		).Build())
	}
}

func isTypeofOperand(ctx *lint.Context, id semantic.NodeID) bool {
	parent, ok := ctx.Nodes().Parent(id)
	if !ok {
		return false
	}
	unary, ok := parent.Kind.(*ast.UnaryExpression)
	return ok && unary.Operator == ast.UnaryTypeof
}
