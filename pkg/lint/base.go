package lint

import (
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/semantic"
)

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
// Use NewBaseRule or a struct literal with field names.
type BaseRule struct {
	id      string   // Unique identifier (e.g., "eslint/no-debugger")
	name    string   // Name without the plugin prefix
	desc    string   // Detailed description
	tags    []string // Categorization tags
	fixable bool     // Whether the rule can auto-fix
}

// NewBaseRule creates a BaseRule with the given properties. The name is
// derived from id by dropping the plugin prefix.
func NewBaseRule(id, desc string, tags []string, fixable bool) BaseRule {
	name := id
	if plugin := Plugin(id); plugin != "" {
		name = id[len(plugin)+1:]
	}
	return BaseRule{
		id:      id,
		name:    name,
		desc:    desc,
		tags:    tags,
		fixable: fixable,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the rule name without the plugin prefix.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
// Override this method to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// CanFix returns whether this rule can auto-fix issues.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// Run does nothing. Rules that inspect nodes override it.
func (r *BaseRule) Run(*semantic.Node, *Context) {}

// RunOnce does nothing. Rules that inspect the whole file override it.
func (r *BaseRule) RunOnce(*Context) {}
