package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/fix"
	"github.com/yaklabco/gojs/pkg/jsparse"
	"github.com/yaklabco/gojs/pkg/lint"
	"github.com/yaklabco/gojs/pkg/semantic"
)

// debuggerRule reports debugger statements and deletes them when fixing.
type debuggerRule struct {
	lint.BaseRule
}

func newDebuggerRule() *debuggerRule {
	return &debuggerRule{BaseRule: lint.NewBaseRule("test/debugger", "reports debugger", nil, true)}
}

func (r *debuggerRule) Run(node *semantic.Node, ctx *lint.Context) {
	stmt, ok := node.Kind.(*ast.DebuggerStatement)
	if !ok {
		return
	}
	ctx.DiagnosticWithFix(
		lint.NewDiagnostic("debugger", stmt.Span).Build(),
		func(f lint.RuleFixer) fix.CompositeFix { return f.Delete(stmt.Span) },
	)
}

// fileRule reports once per file at the first statement.
type fileRule struct {
	lint.BaseRule
}

func (r *fileRule) RunOnce(ctx *lint.Context) {
	body := ctx.Semantic().Program().Body
	if len(body) == 0 {
		return
	}
	ctx.Diagnostic(lint.NewDiagnostic("file", body[0].GetSpan()).WithHelp("help text").Build())
}

// rewriteRule replaces every identifier named "a" with "alpha".
type rewriteRule struct {
	lint.BaseRule
}

func (r *rewriteRule) Run(node *semantic.Node, ctx *lint.Context) {
	ident, ok := node.Kind.(*ast.IdentifierReference)
	if !ok || ident.Name != "a" {
		return
	}
	ctx.DiagnosticWithFix(
		lint.NewDiagnostic("rename", ident.Span).Build(),
		func(f lint.RuleFixer) fix.CompositeFix { return f.Replace(ident.Span, "alpha") },
	)
}

func newRegistry(rules ...lint.Rule) *lint.Registry {
	registry := lint.NewRegistry()
	for _, r := range rules {
		registry.Register(r)
	}
	return registry
}

func TestEngine_LintFile_Basic(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(newDebuggerRule()))

	result, err := engine.LintFile(context.Background(), "test.js", []byte("let x = 1;\n"), config.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, "test.js", result.Path)
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFixes())
}

func TestEngine_LintFile_ParseError(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(lint.NewRegistry())

	_, err := engine.LintFile(context.Background(), "test.js", []byte("let = ;"), config.NewConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, jsparse.ErrSyntax), "got %v", err)
}

func TestEngine_LintFile_Findings(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(
		newDebuggerRule(),
		&fileRule{BaseRule: lint.NewBaseRule("test/file", "", nil, false)},
	))

	source := "let x = 1;\n  debugger;\n"
	result, err := engine.LintFile(context.Background(), "src/a.js", []byte(source), config.NewConfig())
	require.NoError(t, err)
	require.Len(t, result.Findings, 2)

	// Node pass first, then the once pass.
	dbg := result.Findings[0]
	assert.Equal(t, "test/debugger", dbg.RuleID)
	assert.Equal(t, "debugger", dbg.RuleName)
	assert.Equal(t, "src/a.js", dbg.FilePath)
	assert.Equal(t, 2, dbg.StartLine)
	assert.Equal(t, 3, dbg.StartColumn)
	assert.Equal(t, 2, dbg.EndLine)
	assert.Equal(t, 12, dbg.EndColumn)
	assert.Equal(t, config.SeverityWarning, dbg.Severity)
	assert.False(t, dbg.HasFix(), "fix mode is off")
	assert.True(t, dbg.Fixable, "the rule can fix even when fixing is off")

	file := result.Findings[1]
	assert.Equal(t, "test/file", file.RuleID)
	assert.Equal(t, "help text", file.Help)
	assert.False(t, file.Fixable)
	assert.Equal(t, 1, file.StartLine)
	assert.Equal(t, 1, file.StartColumn)

	assert.Equal(t, "  debugger;", result.SourceLine(2))
	assert.Empty(t, result.SourceLine(9))
}

func TestEngine_LintFile_SeverityFromConfig(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(newDebuggerRule()))

	cfg := config.NewConfig()
	cfg.Rules["debugger"] = config.RuleConfig{Severity: config.SeverityError}

	result, err := engine.LintFile(context.Background(), "test.js", []byte("debugger;"), cfg)
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, config.SeverityError, result.Findings[0].Severity)

	cfg.Rules["debugger"] = config.RuleConfig{Severity: config.SeverityOff}
	result, err = engine.LintFile(context.Background(), "test.js", []byte("debugger;"), cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
}

func TestEngine_LintFile_DisableDirective(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(newDebuggerRule()))

	source := "// eslint-disable-next-line test/debugger\ndebugger;\ndebugger;\n"
	result, err := engine.LintFile(context.Background(), "test.js", []byte(source), config.NewConfig())
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, 3, result.Findings[0].StartLine)
}

func TestEngine_LintFile_WithFixes(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(newDebuggerRule()))

	cfg := config.NewConfig()
	cfg.Fix = true

	source := "debugger;\nfoo();\n"
	result, err := engine.LintFile(context.Background(), "test.js", []byte(source), cfg)
	require.NoError(t, err)
	require.True(t, result.HasFixes())
	assert.Equal(t, 1, result.FixableCount())
	assert.Equal(t, "\nfoo();\n", string(fix.ApplyEdits([]byte(source), result.Edits)))
}

func TestEngine_LintFile_EditConflicts(t *testing.T) {
	t.Parallel()

	wide := &wideRule{BaseRule: lint.NewBaseRule("test/wide", "", nil, true)}
	engine := lint.NewEngine(newRegistry(newDebuggerRule(), wide))

	cfg := config.NewConfig()
	cfg.Fix = true

	result, err := engine.LintFile(context.Background(), "test.js", []byte("debugger;"), cfg)
	require.NoError(t, err)
	assert.Len(t, result.Findings, 2)
	assert.Len(t, result.Edits, 1)
	assert.True(t, result.EditConflicts)
	assert.Len(t, result.SkippedEdits, 1)
}

// wideRule rewrites the whole program, overlapping every other fix.
type wideRule struct {
	lint.BaseRule
}

func (r *wideRule) RunOnce(ctx *lint.Context) {
	span := ctx.Semantic().Program().Span
	ctx.DiagnosticWithFix(
		lint.NewDiagnostic("wide", span).Build(),
		func(f lint.RuleFixer) fix.CompositeFix { return f.Replace(span, "/* replaced */") },
	)
}

func TestEngine_LintFile_ContextCancellation(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(newDebuggerRule()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.LintFile(ctx, "test.js", []byte("debugger;"), config.NewConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileResult_Methods(t *testing.T) {
	t.Parallel()

	result := &lint.FileResult{
		Findings: []lint.Finding{
			{RuleID: "a"},
			{RuleID: "b", Fixable: true, FixEdits: []fix.TextEdit{{StartOffset: 0, EndOffset: 1}}},
		},
		Edits: []fix.TextEdit{{StartOffset: 0, EndOffset: 1}},
	}

	assert.True(t, result.HasIssues())
	assert.True(t, result.HasFixes())
	assert.Equal(t, 2, result.IssueCount())
	assert.Equal(t, 1, result.FixableCount())

	empty := &lint.FileResult{}
	assert.False(t, empty.HasIssues())
	assert.False(t, empty.HasFixes())
}
