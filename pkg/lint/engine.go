package lint

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/gojs/internal/logging"
	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/fix"
	"github.com/yaklabco/gojs/pkg/jsparse"
	"github.com/yaklabco/gojs/pkg/semantic"
	"github.com/yaklabco/gojs/pkg/sourcemap"
)

// Finding is a reported message placed in its file: rule identity, 1-based
// positions and the fix edits, ready for reporters.
type Finding struct {
	// RuleID is the identifier of the rule that produced this finding.
	RuleID string

	// RuleName is the rule name without the plugin prefix.
	RuleName string

	Message  string
	Help     string
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Span is the primary byte range.
	Span ast.Span

	// StartLine and StartColumn are 1-based; columns count characters.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	Labels []Label

	// Fixable is set when the rule can fix this kind of problem. FixEdits are
	// only computed when fixing is enabled, so it may be set while they are empty.
	Fixable bool

	// FixEdits contains the text edits to fix this issue (may be empty).
	FixEdits []fix.TextEdit
}

// HasFix returns true if this finding has associated fix edits.
func (f *Finding) HasFix() bool {
	return len(f.FixEdits) > 0
}

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Path is the linted file.
	Path string

	// Source is the content that was linted.
	Source []byte

	// Findings contains all issues found, in report order.
	Findings []Finding

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or --fix was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits that were skipped due to conflicts.
	// When multiple edits overlap, earlier edits (by start position) take precedence.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped due to conflicts.
	EditConflicts bool
}

// HasIssues returns true if any findings were reported.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Findings) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of findings.
func (fr *FileResult) IssueCount() int {
	return len(fr.Findings)
}

// FixableCount returns the number of findings a fix run could address.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Findings {
		if fr.Findings[i].Fixable {
			count++
		}
	}
	return count
}

// SourceLine returns the 1-based line of the linted source, without its terminator.
func (fr *FileResult) SourceLine(line int) string {
	lines := sourcemap.NewLineIndex(string(fr.Source))
	if line < 1 || line > lines.LineCount() {
		return ""
	}
	start := int(lines.LineStart(line - 1))
	end := len(fr.Source)
	if line < lines.LineCount() {
		end = int(lines.LineStart(line))
	}
	text := string(fr.Source[start:end])
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return text
}

// Engine coordinates parsing, semantic analysis and rule execution.
type Engine struct {
	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{
		Registry: registry,
	}
}

// Parse parses content as the JavaScript file at path.
func (e *Engine) Parse(ctx context.Context, path string, content []byte) (*ast.Program, error) {
	program, err := jsparse.Parse(ctx, string(content), jsparse.Options{
		SourceType: jsparse.SourceTypeFromPath(path),
	})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return program, nil
}

// LintFile parses and lints a single file.
//
// Every enabled rule gets a context derived from one root, so findings come
// back in the order rules reported them: per node, rules in ID order, then the
// RunOnce pass.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	program, err := e.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	sem := semantic.Build(program, semantic.Options{CFG: true})
	resolved := ResolveRules(e.Registry, cfg)

	logging.FromContext(ctx).Debug("linting file",
		logging.FieldRules, len(resolved),
		logging.FieldNodes, sem.Nodes().Len(),
	)

	root := NewContext(path, sem).WithConfig(cfg)
	contexts := make([]*Context, len(resolved))
	for i, rr := range resolved {
		contexts[i] = root.
			WithRuleName(rr.Rule.ID()).
			WithSeverity(rr.Severity).
			WithFix(rr.AutoFix).
			WithOptions(rr.Options())
	}

	for node := range sem.Nodes().All() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("linting cancelled: %w", err)
		}
		for i, rr := range resolved {
			rr.Rule.Run(node, contexts[i])
		}
	}
	for i, rr := range resolved {
		rr.Rule.RunOnce(contexts[i])
	}

	return e.buildResult(path, content, root.IntoMessages()), nil
}

func (e *Engine) buildResult(path string, content []byte, messages []Message) *FileResult {
	result := &FileResult{
		Path:   path,
		Source: content,
	}

	source := string(content)
	lines := sourcemap.NewLineIndex(source)
	position := func(offset uint32) (int, int) {
		offset = min(offset, uint32(len(source)))
		line := lines.Line(offset)
		column := utf8.RuneCountInString(source[lines.LineStart(line):offset])
		return line + 1, column + 1
	}

	var allEdits []fix.TextEdit
	for i := range messages {
		msg := &messages[i]
		span := msg.Span()

		finding := Finding{
			RuleID:   msg.RuleName,
			RuleName: msg.RuleName,
			Message:  msg.Message,
			Help:     msg.Help,
			Severity: msg.Severity,
			FilePath: path,
			Span:     span,
			Labels:   msg.Labels,
		}
		if rule, ok := e.Registry.GetByID(msg.RuleName); ok {
			finding.RuleName = rule.Name()
			finding.Fixable = rule.CanFix()
		}
		finding.StartLine, finding.StartColumn = position(span.Start)
		finding.EndLine, finding.EndColumn = position(span.End)

		if msg.Fix != nil {
			finding.Fixable = true
			finding.FixEdits = []fix.TextEdit{*msg.Fix}
			allEdits = append(allEdits, *msg.Fix)
		}
		result.Findings = append(result.Findings, finding)
	}

	// Validate and prepare edits, merging deletions and filtering conflicts.
	if len(allEdits) > 0 {
		accepted, skipped, _, err := fix.PrepareEditsFiltered(allEdits, content)
		if err != nil {
			// Validation error (not conflicts - those are filtered).
			// Still include findings but clear edits.
			result.EditConflicts = true
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	return result
}
