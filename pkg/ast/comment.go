package ast

import "strings"

// CommentKind distinguishes line comments from block comments.
type CommentKind uint8

const (
	// CommentLine is a `// ...` comment.
	CommentLine CommentKind = iota
	// CommentBlock is a `/* ... */` comment.
	CommentBlock
)

// Comment is a source comment. Span covers the delimiters.
type Comment struct {
	Kind CommentKind
	Span Span
}

// Text returns the comment including its delimiters.
func (c Comment) Text(source string) string {
	return c.Span.SourceText(source)
}

// Content returns the comment body without delimiters.
func (c Comment) Content(source string) string {
	text := c.Text(source)
	switch c.Kind {
	case CommentLine:
		return strings.TrimPrefix(text, "//")
	default:
		text = strings.TrimPrefix(text, "/*")
		return strings.TrimSuffix(text, "*/")
	}
}

// IsJSDoc reports whether the comment is a `/** ... */` documentation block.
func (c Comment) IsJSDoc(source string) bool {
	if c.Kind != CommentBlock {
		return false
	}
	text := c.Text(source)
	return strings.HasPrefix(text, "/**") && text != "/**/" && !strings.HasPrefix(text, "/***")
}
