package semantic

import (
	"sort"
	"strings"

	"github.com/yaklabco/gojs/pkg/ast"
)

// JSDoc is a parsed `/** ... */` block.
type JSDoc struct {
	Span    ast.Span
	comment string
	tags    []JSDocTag
}

// JSDocTagKind is the `@name` part of a tag. Span includes the `@`.
type JSDocTagKind struct {
	Span ast.Span
	Name string
}

// JSDocTag is one block tag and the text that follows it.
type JSDocTag struct {
	Span ast.Span
	Kind JSDocTagKind
	Body string
}

// Comment returns the description that precedes the first tag.
func (j JSDoc) Comment() string {
	return j.comment
}

// Tags returns the block tags in source order.
func (j JSDoc) Tags() []JSDocTag {
	return j.tags
}

func parseJSDoc(source string, span ast.Span) JSDoc {
	doc := JSDoc{Span: span}
	base := span.Start + 3
	end := max(span.End-2, base)
	text := source[base:end]

	type mark struct{ at, nameEnd int }
	var marks []mark
	lineStart := true
	for i := 0; i < len(text); i++ {
		switch ch := text[i]; {
		case ch == '\n':
			lineStart = true
		case ch == '@' && lineStart:
			j := i + 1
			for j < len(text) && !isTagTerminator(text[j]) {
				j++
			}
			if j > i+1 {
				marks = append(marks, mark{at: i, nameEnd: j})
			}
			lineStart = false
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '*':
		default:
			lineStart = false
		}
	}

	descEnd := len(text)
	if len(marks) > 0 {
		descEnd = marks[0].at
	}
	doc.comment = cleanJSDocText(text[:descEnd])

	for k, m := range marks {
		bodyEnd := len(text)
		if k+1 < len(marks) {
			bodyEnd = marks[k+1].at
		}
		raw := text[m.nameEnd:bodyEnd]
		tagEnd := m.nameEnd + len(strings.TrimRight(raw, " \t\r\n*"))
		doc.tags = append(doc.tags, JSDocTag{
			Span: ast.NewSpan(base+uint32(m.at), base+uint32(tagEnd)),
			Kind: JSDocTagKind{
				Span: ast.NewSpan(base+uint32(m.at), base+uint32(m.nameEnd)),
				Name: text[m.at+1 : m.nameEnd],
			},
			Body: cleanJSDocText(raw),
		})
	}

	return doc
}

func isTagTerminator(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '{', '*':
		return true
	}
	return false
}

// cleanJSDocText drops the leading `*` gutter from every line and trims the result.
func cleanJSDocText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// JSDocFinder maps nodes to the doc blocks written directly before them.
type JSDocFinder struct {
	attached    map[NodeID][]JSDoc
	notAttached []JSDoc
}

// GetAllByNode returns every doc block attached to node, in source order.
func (f *JSDocFinder) GetAllByNode(id NodeID) ([]JSDoc, bool) {
	docs, ok := f.attached[id]
	return docs, ok
}

// GetOneByNode returns the doc block nearest to node.
func (f *JSDocFinder) GetOneByNode(id NodeID) (JSDoc, bool) {
	docs, ok := f.attached[id]
	if !ok {
		return JSDoc{}, false
	}
	return docs[len(docs)-1], true
}

// NotAttached returns doc blocks that precede no documentable node.
func (f *JSDocFinder) NotAttached() []JSDoc {
	return f.notAttached
}

// All returns every doc block in the program.
func (f *JSDocFinder) All() []JSDoc {
	all := make([]JSDoc, 0, len(f.notAttached))
	for _, docs := range f.attached {
		all = append(all, docs...)
	}
	all = append(all, f.notAttached...)
	sort.Slice(all, func(i, j int) bool { return all[i].Span.Start < all[j].Span.Start })
	return all
}

// buildJSDoc attaches each doc block to the outermost documentable node that
// follows it with only whitespace or other comments in between.
func buildJSDoc(program *ast.Program, nodes *Nodes) *JSDocFinder {
	source := program.SourceText
	f := &JSDocFinder{attached: make(map[NodeID][]JSDoc)}

	comments := program.Comments
	claimed := make([]bool, len(comments))
	hasDoc := false
	for _, c := range comments {
		if c.IsJSDoc(source) {
			hasDoc = true
			break
		}
	}
	if !hasDoc {
		return f
	}

	for node := range nodes.All() {
		if !isDocumentable(node.Kind) {
			continue
		}
		start := node.Kind.GetSpan().Start
		i := sort.Search(len(comments), func(i int) bool { return comments[i].Span.End > start }) - 1

		var docs []JSDoc
		boundary := start
		for ; i >= 0; i-- {
			c := comments[i]
			if claimed[i] || strings.TrimSpace(source[c.Span.End:boundary]) != "" {
				break
			}
			if c.IsJSDoc(source) {
				docs = append(docs, parseJSDoc(source, c.Span))
				claimed[i] = true
			}
			boundary = c.Span.Start
		}
		if len(docs) == 0 {
			continue
		}
		for l, r := 0, len(docs)-1; l < r; l, r = l+1, r-1 {
			docs[l], docs[r] = docs[r], docs[l]
		}
		f.attached[node.ID] = docs
	}

	for i, c := range comments {
		if !claimed[i] && c.IsJSDoc(source) {
			f.notAttached = append(f.notAttached, parseJSDoc(source, c.Span))
		}
	}
	return f
}

func isDocumentable(n ast.Node) bool {
	switch n.(type) {
	case *ast.Program:
		return false
	case ast.Statement:
		return true
	case *ast.Function, *ast.Class, *ast.ArrowFunctionExpression, *ast.MethodDefinition,
		*ast.PropertyDefinition, *ast.ObjectProperty, *ast.ParenthesizedExpression,
		*ast.StaticBlock:
		return true
	}
	return false
}
