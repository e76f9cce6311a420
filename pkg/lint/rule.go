// Package lint provides the per-file lint context, the rule registry and the
// engine that drives rules over a parsed file.
package lint

import (
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/semantic"
)

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule, including its plugin
	// prefix (e.g., "eslint/no-debugger", "jsdoc/implements-on-classes").
	ID() string

	// Name returns the rule name without the plugin prefix.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["correctness"]).
	Tags() []string

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Run is called for every node of the file in source order.
	//
	// Rules report through ctx and never return errors: a violation is a
	// diagnostic, not a failure.
	Run(node *semantic.Node, ctx *Context)

	// RunOnce is called once per file after the node walk.
	RunOnce(ctx *Context)
}

// Documented is implemented by rules that ship long-form markdown docs.
type Documented interface {
	Docs() string
}

// Plugin returns the plugin prefix of a rule ID ("eslint" for "eslint/no-debugger").
func Plugin(ruleID string) string {
	for i := len(ruleID) - 1; i >= 0; i-- {
		if ruleID[i] == '/' {
			return ruleID[:i]
		}
	}
	return ""
}
