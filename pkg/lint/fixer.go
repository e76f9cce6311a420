package lint

import (
	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/fix"
)

// RuleFixer builds the edits of a fix. It is only handed to a fix callback
// when the context has fixing enabled.
type RuleFixer struct {
	ctx *Context
}

// Noop returns the empty fix.
func (f RuleFixer) Noop() fix.CompositeFix {
	return fix.None()
}

// Delete removes the text covered by span.
func (f RuleFixer) Delete(span ast.Span) fix.CompositeFix {
	return fix.Single(f.edit(span, ""))
}

// Replace replaces the text covered by span.
func (f RuleFixer) Replace(span ast.Span, text string) fix.CompositeFix {
	return fix.Single(f.edit(span, text))
}

// ReplaceWith replaces the text covered by target with the source text
// covered by replacement.
func (f RuleFixer) ReplaceWith(target, replacement ast.Span) fix.CompositeFix {
	return f.Replace(target, f.ctx.SourceRange(replacement))
}

// InsertTextBefore inserts text where span starts.
func (f RuleFixer) InsertTextBefore(span ast.Span, text string) fix.CompositeFix {
	return fix.Single(f.edit(ast.NewSpan(span.Start, span.Start), text))
}

// InsertTextAfter inserts text where span ends.
func (f RuleFixer) InsertTextAfter(span ast.Span, text string) fix.CompositeFix {
	return fix.Single(f.edit(ast.NewSpan(span.End, span.End), text))
}

// Edit returns a single edit for use with fix.Multiple.
func (f RuleFixer) Edit(span ast.Span, text string) fix.TextEdit {
	return f.edit(span, text)
}

func (f RuleFixer) edit(span ast.Span, text string) fix.TextEdit {
	return fix.TextEdit{
		StartOffset: int(span.Start),
		EndOffset:   int(span.End),
		NewText:     text,
	}
}
