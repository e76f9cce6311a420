// Package codegen prints a JavaScript syntax tree back to source text, either
// readable or minified, with optional source maps.
//
// The printer never fails. Parenthesization follows operator precedence and the
// few grammar positions where a leading token would be read differently, and
// spacing between adjacent tokens is inserted only where tokens would otherwise
// merge.
package codegen

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/sourcemap"
)

// ctxFlags restrict which expressions may appear unparenthesized at a position.
type ctxFlags uint8

const (
	// forbidIn is set inside the init clause of a for statement.
	forbidIn ctxFlags = 1 << iota
	// forbidCall is set on the callee of a new expression.
	forbidCall
)

// Codegen holds the output buffer and formatting state for one Build call.
type Codegen struct {
	options Options
	mangler Mangler

	source    string
	comments  *commentsMap
	sourcemap *sourcemap.Builder

	// Mappings wait here until the next non-whitespace byte is written, so a
	// segment never points at separating spaces or indentation.
	pendingMappings []pendingMapping

	printComments    bool
	printAnnotations bool

	code   []byte
	indent int
	quote  byte

	needsSemicolon bool

	prevOp        Operator
	prevOpEnd     int
	prevRegExpEnd int

	needSpaceBeforeDot     int
	printNextIndentAsSpace bool

	startOfStmt          int
	startOfArrowExpr     int
	startOfDefaultExport int

	startOfAnnotationComment uint32
	hasPendingAnnotation     bool

	binaryExprStack []binaryFrame
}

// New creates a code generator.
func New(opts Options) *Codegen {
	return &Codegen{options: opts}
}

// WithMangler makes identifier emission use the mangler's names.
func (p *Codegen) WithMangler(m Mangler) *Codegen {
	p.mangler = m
	return p
}

// Build prints program and returns the code and, when enabled, the source map.
func (p *Codegen) Build(program *ast.Program) Result {
	p.reset(program)
	p.printProgram(program)

	result := Result{Code: string(p.code)}
	if p.sourcemap != nil {
		result.Map = p.sourcemap.Build()
	}
	return result
}

func (p *Codegen) reset(program *ast.Program) {
	p.source = program.SourceText
	p.comments = newCommentsMap(program.SourceText, program.Comments)
	p.sourcemap = nil
	p.pendingMappings = p.pendingMappings[:0]
	if p.options.SourceMapPath != "" {
		p.sourcemap = sourcemap.NewBuilder(p.options.SourceMapPath, program.SourceText)
	}

	p.printComments = p.options.printComments()
	p.printAnnotations = p.options.printAnnotationComments()

	p.code = make([]byte, 0, len(program.SourceText))
	p.indent = 0
	p.quote = '"'
	if p.options.SingleQuote {
		p.quote = '\''
	}
	p.needsSemicolon = false
	p.prevOp = Operator{}
	p.prevOpEnd = -1
	p.prevRegExpEnd = -1
	p.needSpaceBeforeDot = -1
	p.printNextIndentAsSpace = false
	p.startOfStmt = -1
	p.startOfArrowExpr = -1
	p.startOfDefaultExport = -1
	p.hasPendingAnnotation = false
	p.binaryExprStack = p.binaryExprStack[:0]
}

func (p *Codegen) printByte(b byte) {
	if len(p.pendingMappings) > 0 && !isLayoutByte(b) {
		p.flushMappings()
	}
	p.code = append(p.code, b)
}

func (p *Codegen) printStr(s string) {
	if len(p.pendingMappings) > 0 {
		i := 0
		for i < len(s) && isLayoutByte(s[i]) {
			i++
		}
		if i < len(s) {
			p.code = append(p.code, s[:i]...)
			p.flushMappings()
			s = s[i:]
		}
	}
	p.code = append(p.code, s...)
}

func isLayoutByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

func (p *Codegen) printSoftSpace() {
	if !p.options.Minify {
		p.printByte(' ')
	}
}

func (p *Codegen) printHardSpace() {
	p.printByte(' ')
}

func (p *Codegen) printSoftNewline() {
	if !p.options.Minify {
		p.printByte('\n')
	}
}

func (p *Codegen) printHardNewline() {
	p.printByte('\n')
}

func (p *Codegen) printSemicolon() {
	p.printByte(';')
}

func (p *Codegen) printComma() {
	p.printByte(',')
}

func (p *Codegen) printColon() {
	p.printByte(':')
}

func (p *Codegen) printEqual() {
	p.printByte('=')
}

func (p *Codegen) printEllipsis() {
	p.printStr("...")
}

func (p *Codegen) indentIn() {
	if !p.options.Minify {
		p.indent++
	}
}

func (p *Codegen) indentOut() {
	if !p.options.Minify {
		p.indent--
	}
}

func (p *Codegen) printIndent() {
	if p.options.Minify {
		return
	}
	if p.printNextIndentAsSpace {
		p.printHardSpace()
		p.printNextIndentAsSpace = false
		return
	}
	for range p.indent {
		p.printByte('\t')
	}
}

func (p *Codegen) printSemicolonAfterStatement() {
	if p.options.Minify {
		p.needsSemicolon = true
	} else {
		p.printStr(";\n")
	}
}

func (p *Codegen) printSemicolonIfNeeded() {
	if p.needsSemicolon {
		p.printSemicolon()
		p.needsSemicolon = false
	}
}

// printKeyword prints a keyword or contextual keyword, separated from a preceding
// identifier character.
func (p *Codegen) printKeyword(keyword string) {
	p.printSpaceBeforeIdentifier()
	p.printStr(keyword)
}

func (p *Codegen) printSpaceBeforeIdentifier() {
	if len(p.code) == 0 {
		return
	}
	if p.prevRegExpEnd == len(p.code) {
		p.printHardSpace()
		return
	}
	r, _ := utf8.DecodeLastRune(p.code)
	if isIdentifierPart(r) {
		p.printHardSpace()
	}
}

func isIdentifierPart(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '$':
		return true
	case r < utf8.RuneSelf:
		return false
	case r == '\u200C' || r == '\u200D':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r) || unicode.Is(unicode.Nl, r)
}

func (p *Codegen) printSpaceBeforeOperator(next Operator) {
	if p.prevOpEnd != len(p.code) || p.prevOp.IsZero() {
		return
	}
	var before byte
	if n := len(p.code); n >= 2 {
		before = p.code[n-2]
	}
	if needsSpaceBetween(p.prevOp, next, before) {
		p.printHardSpace()
	}
}

// printOperator prints a punctuator operator and records it for adjacency checks.
func (p *Codegen) printOperator(op Operator) {
	p.printSpaceBeforeOperator(op)
	p.printStr(op.String())
	p.prevOp = op
	p.prevOpEnd = len(p.code)
}

func (p *Codegen) wrap(cond bool, body func()) {
	if cond {
		p.printByte('(')
	}
	body()
	if cond {
		p.printByte(')')
	}
}

func (p *Codegen) wrapQuote(body func(quote byte)) {
	p.printByte(p.quote)
	body(p.quote)
	p.printByte(p.quote)
}

func (p *Codegen) printCurlyBraces(span ast.Span, singleLine bool, body func()) {
	p.addSourceMapping(span.Start)
	p.printByte('{')
	if !singleLine {
		p.printSoftNewline()
		p.indentIn()
	}
	body()
	if !singleLine {
		p.printTrailingComments(span)
		p.indentOut()
		p.printIndent()
	}
	p.addSourceMappingEnd(span)
	p.printByte('}')
}

func (p *Codegen) printBlockStart(position uint32) {
	p.addSourceMapping(position)
	p.printByte('{')
	p.printSoftNewline()
	p.indentIn()
}

func (p *Codegen) printBlockEnd(position uint32) {
	p.indentOut()
	p.printIndent()
	p.addSourceMapping(position)
	p.printByte('}')
}

// printBody prints the body of an if, else, loop, with or label.
func (p *Codegen) printBody(s ast.Statement, needSpace bool, flags ctxFlags) {
	switch body := s.(type) {
	case *ast.BlockStatement:
		p.printSoftSpace()
		p.printBlockStatement(body, flags)
		p.printSoftNewline()
	case *ast.EmptyStatement:
		p.addSourceMapping(body.Start)
		p.printSemicolon()
		p.printSoftNewline()
	default:
		if needSpace && p.options.Minify {
			p.printHardSpace()
		}
		p.printNextIndentAsSpace = true
		p.printStatement(s, flags)
	}
}

func (p *Codegen) printBlockStatement(block *ast.BlockStatement, flags ctxFlags) {
	p.printCurlyBraces(block.Span, len(block.Body) == 0, func() {
		p.printStatementList(block.Body, flags)
	})
	p.needsSemicolon = false
}

func (p *Codegen) printStatementList(list []ast.Statement, flags ctxFlags) {
	for _, s := range list {
		p.printSemicolonIfNeeded()
		p.printStatement(s, flags)
	}
}

// printList prints items separated by commas. Comments written before an item
// stay in front of it.
func printList[T ast.Node](p *Codegen, items []T, each func(T)) {
	for i, item := range items {
		if i > 0 {
			p.printComma()
			p.printSoftSpace()
		}
		p.printInlineComments(item.GetSpan().Start)
		each(item)
	}
}

// printLeadingComments prints comments attached at start, one per line.
func (p *Codegen) printLeadingComments(start uint32) {
	if !p.printComments {
		return
	}
	pending := p.hasPendingAnnotation && p.startOfAnnotationComment == start
	comments := p.comments.take(start, func(c ast.Comment) bool {
		return !pending || !IsAnnotationComment(c, p.source)
	})
	for _, c := range comments {
		p.printIndent()
		p.printStr(c.Text(p.source))
		p.printHardNewline()
	}
}

// printInlineComments prints the comments attached at start without leaving the
// current line, except that a line comment must end one.
func (p *Codegen) printInlineComments(start uint32) {
	if !p.printComments || !p.comments.has(start) {
		return
	}
	comments := p.comments.take(start, func(c ast.Comment) bool {
		return !IsAnnotationComment(c, p.source)
	})
	for _, c := range comments {
		p.printStr(c.Text(p.source))
		if c.Kind == ast.CommentLine {
			p.printHardNewline()
			p.printIndent()
		} else {
			p.printHardSpace()
		}
	}
}

// printTrailingComments prints comments left before the closing brace of span.
func (p *Codegen) printTrailingComments(span ast.Span) {
	if span.End == 0 {
		return
	}
	p.printLeadingComments(span.End - 1)
}

// printAnnotationComments prints annotation comments attached at start inline.
func (p *Codegen) printAnnotationComments(start uint32) {
	if !p.printAnnotations {
		return
	}
	comments := p.comments.take(start, func(c ast.Comment) bool {
		return IsAnnotationComment(c, p.source)
	})
	if len(comments) == 0 {
		return
	}

	n := len(p.code)
	for _, c := range comments {
		p.printStr(c.Text(p.source))
		p.printHardSpace()
	}

	// The expression still begins the statement for wrapping purposes.
	if p.startOfStmt == n {
		p.startOfStmt = len(p.code)
	}
	if p.startOfArrowExpr == n {
		p.startOfArrowExpr = len(p.code)
	}
	if p.startOfDefaultExport == n {
		p.startOfDefaultExport = len(p.code)
	}
}

// printPendingAnnotation prints an annotation deferred from an export keyword.
func (p *Codegen) printPendingAnnotation() {
	if !p.hasPendingAnnotation {
		return
	}
	p.hasPendingAnnotation = false
	p.printAnnotationComments(p.startOfAnnotationComment)
}

func (p *Codegen) referenceName(ref *ast.IdentifierReference) string {
	if p.mangler != nil && ref.ReferenceID != 0 {
		if name, ok := p.mangler.ReferenceName(ref.ReferenceID); ok {
			return name
		}
	}
	return ref.Name
}

func (p *Codegen) bindingName(ident *ast.BindingIdentifier) string {
	if p.mangler != nil && ident.SymbolID != 0 {
		if name, ok := p.mangler.SymbolName(ident.SymbolID); ok {
			return name
		}
	}
	return ident.Name
}

type pendingMapping struct {
	original uint32
	name     string
	named    bool
}

func (p *Codegen) addSourceMapping(position uint32) {
	if p.sourcemap != nil {
		p.pendingMappings = append(p.pendingMappings, pendingMapping{original: position})
	}
}

func (p *Codegen) addSourceMappingEnd(span ast.Span) {
	if p.sourcemap != nil && span.End > span.Start {
		p.pendingMappings = append(p.pendingMappings, pendingMapping{original: span.End - 1})
	}
}

func (p *Codegen) addSourceMappingForName(span ast.Span, name string) {
	if p.sourcemap != nil {
		p.pendingMappings = append(p.pendingMappings, pendingMapping{original: span.Start, name: name, named: true})
	}
}

// flushMappings records every pending mapping at the current end of output.
func (p *Codegen) flushMappings() {
	for _, m := range p.pendingMappings {
		if m.named {
			p.sourcemap.AddNamedMapping(p.code, m.original, m.name)
		} else {
			p.sourcemap.AddMapping(p.code, m.original)
		}
	}
	p.pendingMappings = p.pendingMappings[:0]
}
