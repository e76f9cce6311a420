package lint

import (
	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/fix"
	"github.com/yaklabco/gojs/pkg/semantic"
)

const diagnosticsInitialCapacity = 128

// Context is the per-file facade through which rules read the semantic model
// and the configuration, and report diagnostics.
//
// The With methods return a derived copy. Every copy derived from the same
// NewContext call appends to one diagnostics slice, so a driver can hand each
// rule its own derived context and collect everything from the root. A
// Context is not safe for concurrent use.
type Context struct {
	semantic          *semantic.Semantic
	diagnostics       *[]Message
	disableDirectives *DisableDirectives
	fix               bool
	filePath          string
	config            *config.Config
	currentRuleName   string
	severity          config.Severity
	options           []any
}

// NewContext creates the context for one file. It panics when sem was built
// without a control flow graph, since rules depend on it.
func NewContext(filePath string, sem *semantic.Semantic) *Context {
	if sem.CFG() == nil {
		panic("lint: NewContext requires a semantic model built with a control flow graph")
	}
	diagnostics := make([]Message, 0, diagnosticsInitialCapacity)
	return &Context{
		semantic:          sem,
		diagnostics:       &diagnostics,
		disableDirectives: BuildDisableDirectives(sem.SourceText(), sem.Comments()),
		filePath:          filePath,
		config:            config.NewConfig(),
		severity:          config.SeverityWarning,
	}
}

// WithFix enables or disables automatic fixes.
func (c *Context) WithFix(enabled bool) *Context {
	derived := *c
	derived.fix = enabled
	return &derived
}

// WithConfig sets the resolved configuration. A nil config keeps the current one.
func (c *Context) WithConfig(cfg *config.Config) *Context {
	derived := *c
	if cfg != nil {
		derived.config = cfg
	}
	return &derived
}

// WithRuleName sets the rule that reports through the derived context.
func (c *Context) WithRuleName(name string) *Context {
	derived := *c
	derived.currentRuleName = name
	return &derived
}

// WithSeverity sets the severity every reported diagnostic takes.
func (c *Context) WithSeverity(severity config.Severity) *Context {
	derived := *c
	derived.severity = severity
	return &derived
}

// WithOptions sets the running rule's configured options.
func (c *Context) WithOptions(options []any) *Context {
	derived := *c
	derived.options = options
	return &derived
}

// Diagnostic reports a violation without a fix.
func (c *Context) Diagnostic(d Diagnostic) {
	c.addDiagnostic(Message{Diagnostic: d})
}

// DiagnosticWithFix reports a violation and offers a fix. fixer is only
// called when fixing is enabled; a fix that is empty or whose edits overlap
// is dropped and the diagnostic is reported alone.
func (c *Context) DiagnosticWithFix(d Diagnostic, fixer func(RuleFixer) fix.CompositeFix) {
	if !c.fix {
		c.Diagnostic(d)
		return
	}
	msg := Message{Diagnostic: d}
	if edit, ok := fixer(RuleFixer{ctx: c}).Normalize(c.SourceText()); ok {
		msg.Fix = &edit
	}
	c.addDiagnostic(msg)
}

func (c *Context) addDiagnostic(msg Message) {
	if c.disableDirectives.Contains(c.currentRuleName, msg.Span()) {
		return
	}
	if msg.Severity != c.severity {
		msg.Severity = c.severity
	}
	msg.RuleName = c.currentRuleName
	*c.diagnostics = append(*c.diagnostics, msg)
}

// IntoMessages returns every message reported through this context or any
// context derived from the same root.
func (c *Context) IntoMessages() []Message {
	return *c.diagnostics
}

// Semantic returns the semantic model.
func (c *Context) Semantic() *semantic.Semantic { return c.semantic }

// CFG returns the control flow graph. It is never nil.
func (c *Context) CFG() *semantic.ControlFlowGraph { return c.semantic.CFG() }

// Nodes returns the node arena.
func (c *Context) Nodes() *semantic.Nodes { return c.semantic.Nodes() }

// Scopes returns the scope tree.
func (c *Context) Scopes() *semantic.ScopeTree { return c.semantic.Scopes() }

// Symbols returns the symbol table.
func (c *Context) Symbols() *semantic.SymbolTable { return c.semantic.Symbols() }

// ModuleRecord returns the file's imports and exports.
func (c *Context) ModuleRecord() *semantic.ModuleRecord { return c.semantic.ModuleRecord() }

// JSDoc returns the JSDoc index.
func (c *Context) JSDoc() *semantic.JSDocFinder { return c.semantic.JSDoc() }

// DisableDirectives returns the disable-directive index.
func (c *Context) DisableDirectives() *DisableDirectives { return c.disableDirectives }

// SourceText returns the file's source.
func (c *Context) SourceText() string { return c.semantic.SourceText() }

// SourceRange returns the source text covered by span.
func (c *Context) SourceRange(span ast.Span) string {
	return span.SourceText(c.semantic.SourceText())
}

// FilePath returns the path of the file being linted.
func (c *Context) FilePath() string { return c.filePath }

// Settings returns plugin settings.
func (c *Context) Settings() *config.Settings { return &c.config.Settings }

// Globals returns the configured globals.
func (c *Context) Globals() map[string]config.GlobalValue { return c.config.Globals }

// Env returns the configured environments.
func (c *Context) Env() map[string]bool { return c.config.Env }

// Rules returns the configured rules.
func (c *Context) Rules() map[string]config.RuleConfig { return c.config.Rules }

// IsFixEnabled reports whether fixes are requested.
func (c *Context) IsFixEnabled() bool { return c.fix }

// RuleName returns the rule reporting through this context.
func (c *Context) RuleName() string { return c.currentRuleName }

// Severity returns the severity diagnostics take.
func (c *Context) Severity() config.Severity { return c.severity }

// EnvContainsVar reports whether name is a builtin global or is defined by
// any enabled environment.
func (c *Context) EnvContainsVar(name string) bool {
	if hasKey(globals["builtin"], name) {
		return true
	}
	for env, enabled := range c.config.Env {
		if !enabled {
			continue
		}
		if vars, ok := globals[env]; ok && hasKey(vars, name) {
			return true
		}
	}
	return false
}

func hasKey(m map[string]bool, key string) bool {
	_, ok := m[key]
	return ok
}

// Option returns a rule option from the first option object, or the default
// if not set.
func (c *Context) Option(key string, defaultValue any) any {
	if len(c.options) == 0 {
		return defaultValue
	}
	opts, ok := c.options[0].(map[string]any)
	if !ok {
		return defaultValue
	}
	if v, ok := opts[key]; ok {
		return v
	}
	return defaultValue
}

// OptionBool returns a boolean rule option, or the default.
func (c *Context) OptionBool(key string, defaultValue bool) bool {
	if b, ok := c.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// OptionString returns a string rule option, or the default.
func (c *Context) OptionString(key string, defaultValue string) string {
	if s, ok := c.Option(key, defaultValue).(string); ok {
		return s
	}
	return defaultValue
}

// OptionStringSlice returns a string list rule option, or the default.
func (c *Context) OptionStringSlice(key string, defaultValue []string) []string {
	switch v := c.Option(key, defaultValue).(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
