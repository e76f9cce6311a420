package codegen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tidwall/btree"

	"github.com/yaklabco/gojs/pkg/ast"
)

var annotationMarkers = []string{
	"@__PURE__",
	"#__PURE__",
	"@__NO_SIDE_EFFECTS__",
	"#__NO_SIDE_EFFECTS__",
	"@vite-ignore",
	"webpack",
}

// IsAnnotationComment reports whether a comment carries a tool directive that
// changes how bundlers and minifiers treat the following code.
func IsAnnotationComment(c ast.Comment, source string) bool {
	if c.Kind != ast.CommentBlock {
		return false
	}
	body := strings.TrimLeft(c.Content(source), " \t*")
	for _, marker := range annotationMarkers {
		if strings.HasPrefix(body, marker) {
			return true
		}
	}
	return false
}

// commentsMap holds leading comments keyed by the offset of the token they precede.
// Consecutive comments separated only by whitespace share an offset.
type commentsMap struct {
	source string
	tree   btree.Map[uint32, []ast.Comment]
}

func newCommentsMap(source string, comments []ast.Comment) *commentsMap {
	m := &commentsMap{source: source}

	attach := uint32(len(source))
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		next := skipWhitespace(source, c.Span.End)
		if i+1 < len(comments) && next == comments[i+1].Span.Start {
			next = attach
		}
		attach = next

		existing, _ := m.tree.Get(attach)
		m.tree.Set(attach, append([]ast.Comment{c}, existing...))
	}
	return m
}

func skipWhitespace(source string, offset uint32) uint32 {
	i := int(offset)
	for i < len(source) {
		r, size := utf8.DecodeRuneInString(source[i:])
		if r != '\uFEFF' && !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return uint32(i)
}

// has reports whether any comment attaches at offset.
func (m *commentsMap) has(offset uint32) bool {
	_, ok := m.tree.Get(offset)
	return ok
}

// hasAnnotation reports whether an annotation comment attaches at offset.
func (m *commentsMap) hasAnnotation(offset uint32) bool {
	list, _ := m.tree.Get(offset)
	for _, c := range list {
		if IsAnnotationComment(c, m.source) {
			return true
		}
	}
	return false
}

// take removes and returns the comments at offset for which keep returns true.
func (m *commentsMap) take(offset uint32, keep func(ast.Comment) bool) []ast.Comment {
	list, ok := m.tree.Get(offset)
	if !ok {
		return nil
	}

	var taken, rest []ast.Comment
	for _, c := range list {
		if keep(c) {
			taken = append(taken, c)
		} else {
			rest = append(rest, c)
		}
	}

	if len(rest) == 0 {
		m.tree.Delete(offset)
	} else {
		m.tree.Set(offset, rest)
	}
	return taken
}
