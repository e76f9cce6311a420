// Package jsparse parses JavaScript source into the ast package's syntax tree.
//
// Parsing is delegated to tree-sitter's JavaScript grammar; this package lowers
// the concrete syntax tree into typed nodes, cooks literals and collects comments.
package jsparse

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/yaklabco/gojs/pkg/ast"
)

// Sentinel errors.
var (
	// ErrSyntax is wrapped by every SyntaxError.
	ErrSyntax = errors.New("syntax error")
	// ErrUnsupportedSyntax reports well-formed input outside the supported dialect,
	// such as JSX.
	ErrUnsupportedSyntax = errors.New("unsupported syntax")
	// ErrInvalidEncoding reports source text that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("source is not valid UTF-8")
)

// SourceType selects how top-level code is interpreted.
type SourceType uint8

const (
	// SourceUnknown treats the file as a module when it contains import or export
	// statements.
	SourceUnknown SourceType = iota
	// SourceScript parses a classic script.
	SourceScript
	// SourceModule parses an ECMAScript module.
	SourceModule
)

// SourceTypeFromPath infers the source type from a file extension.
func SourceTypeFromPath(path string) SourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mjs":
		return SourceModule
	case ".cjs":
		return SourceScript
	}
	return SourceUnknown
}

// Options configures Parse.
type Options struct {
	SourceType SourceType
}

// SyntaxError describes the first malformed region of the input.
type SyntaxError struct {
	Offset  uint32
	Line    int // 1-based
	Column  int // 1-based, in bytes
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Parse parses source and returns its syntax tree with comments attached.
func Parse(ctx context.Context, source string, opts Options) (*ast.Program, error) {
	if !utf8.ValidString(source) {
		return nil, ErrInvalidEncoding
	}

	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	src := []byte(source)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxErrorAt(source, firstError(root))
	}

	c := &converter{source: source}
	program := c.program(root)
	if c.err != nil {
		return nil, c.err
	}

	switch opts.SourceType {
	case SourceModule:
		program.IsModule = true
	case SourceScript:
		program.IsModule = false
	}
	return program, nil
}

// firstError returns the first error or missing node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child != nil && (child.HasError() || child.IsMissing()) {
			return firstError(child)
		}
	}
	return n
}

func syntaxErrorAt(source string, n *sitter.Node) *SyntaxError {
	offset := n.StartByte()
	line, column := lineColumn(source, offset)

	message := "unexpected token"
	switch {
	case n.IsMissing():
		message = fmt.Sprintf("expected %q", n.Type())
	case offset >= uint32(len(source)):
		message = "unexpected end of input"
	case n.EndByte() > offset:
		text := source[offset:min(n.EndByte(), uint32(len(source)))]
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		if len(text) > 20 {
			text = text[:20]
		}
		message = fmt.Sprintf("unexpected %q", text)
	}
	return &SyntaxError{Offset: offset, Line: line, Column: column, Message: message}
}

func lineColumn(source string, offset uint32) (int, int) {
	before := source[:min(int(offset), len(source))]
	line := strings.Count(before, "\n") + 1
	column := len(before) - strings.LastIndexByte(before, '\n')
	return line, column
}
