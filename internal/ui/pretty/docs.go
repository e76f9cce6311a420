package pretty

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FormatDocs renders rule documentation written in markdown for a terminal.
// Headings are emphasized, code blocks are indented and list items keep their
// markers. Inline markup other than code spans and strong text is dropped.
func (s *Styles) FormatDocs(markdown string) string {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	r := &docsRenderer{styles: s, source: source}
	// The walker callback never fails.
	_ = gast.Walk(doc, r.visit)

	return strings.TrimRight(r.out.String(), "\n") + "\n"
}

type docsRenderer struct {
	styles *Styles
	source []byte
	out    strings.Builder
}

func (r *docsRenderer) visit(node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}

	switch n := node.(type) {
	case *gast.Heading:
		r.out.WriteString(r.styles.SummaryTitle.Render(r.inline(n)) + "\n\n")
		return gast.WalkSkipChildren, nil

	case *gast.Paragraph:
		r.out.WriteString(r.inline(n) + "\n\n")
		return gast.WalkSkipChildren, nil

	case *gast.FencedCodeBlock, *gast.CodeBlock:
		lines := n.Lines()
		for i := range lines.Len() {
			line := lines.At(i)
			code := strings.TrimRight(string(line.Value(r.source)), "\n")
			r.out.WriteString("    " + r.styles.Dim.Render(code) + "\n")
		}
		r.out.WriteString("\n")
		return gast.WalkSkipChildren, nil

	case *gast.List:
		r.list(n)
		r.out.WriteString("\n")
		return gast.WalkSkipChildren, nil

	case *gast.ThematicBreak:
		r.out.WriteString(r.styles.Dim.Render("---") + "\n\n")
		return gast.WalkSkipChildren, nil
	}

	return gast.WalkContinue, nil
}

func (r *docsRenderer) list(list *gast.List) {
	index := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "-"
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d.", index)
			index++
		}
		var parts []string
		for block := item.FirstChild(); block != nil; block = block.NextSibling() {
			parts = append(parts, r.inline(block))
		}
		r.out.WriteString("  " + marker + " " + strings.Join(parts, " ") + "\n")
	}
}

// inline flattens the inline children of node to styled text.
func (r *docsRenderer) inline(node gast.Node) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *gast.Text:
			b.Write(c.Segment.Value(r.source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gast.String:
			b.Write(c.Value)
		case *gast.CodeSpan:
			b.WriteString(r.styles.Help.Render(r.inline(c)))
		case *gast.Emphasis:
			if c.Level >= 2 {
				b.WriteString(r.styles.Bold.Render(r.inline(c)))
			} else {
				b.WriteString(r.inline(c))
			}
		default:
			b.WriteString(r.inline(c))
		}
	}
	return strings.TrimSpace(b.String())
}
