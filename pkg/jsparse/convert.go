package jsparse

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/gojs/pkg/ast"
)

// converter lowers a tree-sitter concrete syntax tree into ast nodes. The first
// unsupported construct is recorded in err; conversion continues with
// placeholders so callers only check err once.
type converter struct {
	source string
	err    error
}

func (c *converter) span(n *sitter.Node) ast.Span {
	return ast.NewSpan(n.StartByte(), n.EndByte())
}

func (c *converter) text(n *sitter.Node) string {
	return c.source[n.StartByte():n.EndByte()]
}

func (c *converter) fail(n *sitter.Node, format string, args ...any) {
	if c.err != nil {
		return
	}
	line, column := lineColumn(c.source, n.StartByte())
	c.err = fmt.Errorf("%w: %d:%d: %s", ErrUnsupportedSyntax, line, column, fmt.Sprintf(format, args...))
}

// children returns the named children of n, skipping comments.
func children(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := range count {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstChild(n *sitter.Node) *sitter.Node {
	if list := children(n); len(list) > 0 {
		return list[0]
	}
	return nil
}

// hasToken reports whether n has an anonymous child spelled tok.
func hasToken(n *sitter.Node, tok string) bool {
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == tok {
			return true
		}
	}
	return false
}

func (c *converter) program(root *sitter.Node) *ast.Program {
	program := &ast.Program{
		Span:       ast.NewSpan(0, uint32(len(c.source))),
		SourceText: c.source,
	}

	for _, child := range children(root) {
		if child.Type() == "hash_bang_line" {
			program.Hashbang = strings.TrimPrefix(c.text(child), "#!")
			continue
		}
		s := c.statement(child)
		if s == nil {
			continue
		}
		switch s.(type) {
		case *ast.ImportDeclaration, *ast.ExportNamedDeclaration, *ast.ExportDefaultDeclaration, *ast.ExportAllDeclaration:
			program.IsModule = true
		}
		program.Body = append(program.Body, s)
	}

	program.Comments = c.comments(root)
	return program
}

// comments collects comment nodes in document order.
func (c *converter) comments(root *sitter.Node) []ast.Comment {
	var out []ast.Comment
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type() == "comment" {
			kind := ast.CommentBlock
			if strings.HasPrefix(c.text(n), "//") {
				kind = ast.CommentLine
			}
			out = append(out, ast.Comment{Kind: kind, Span: c.span(n)})
			continue
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			if child := n.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return out
}

func (c *converter) statement(n *sitter.Node) ast.Statement {
	span := c.span(n)

	switch n.Type() {
	case "expression_statement":
		return &ast.ExpressionStatement{Span: span, Expression: c.expression(firstChild(n))}

	case "empty_statement":
		return &ast.EmptyStatement{Span: span}

	case "statement_block":
		return c.block(n)

	case "variable_declaration":
		return c.variableDeclaration(n, ast.VariableVar)

	case "lexical_declaration":
		kind := ast.VariableLet
		if k := n.ChildByFieldName("kind"); k != nil && c.text(k) == "const" {
			kind = ast.VariableConst
		}
		return c.variableDeclaration(n, kind)

	case "function_declaration", "generator_function_declaration":
		return c.function(n, ast.FunctionDeclaration)

	case "class_declaration":
		return c.class(n, ast.ClassDeclaration)

	case "if_statement":
		s := &ast.IfStatement{
			Span:       span,
			Test:       c.condition(n.ChildByFieldName("condition")),
			Consequent: c.statement(n.ChildByFieldName("consequence")),
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if alt.Type() == "else_clause" {
				alt = firstChild(alt)
			}
			s.Alternate = c.statement(alt)
		}
		return s

	case "for_statement":
		return &ast.ForStatement{
			Span:   span,
			Init:   c.forInit(n.ChildByFieldName("initializer")),
			Test:   c.clauseExpression(n.ChildByFieldName("condition")),
			Update: c.clauseExpression(n.ChildByFieldName("increment")),
			Body:   c.statement(n.ChildByFieldName("body")),
		}

	case "for_in_statement":
		return c.forIn(n)

	case "while_statement":
		return &ast.WhileStatement{
			Span: span,
			Test: c.condition(n.ChildByFieldName("condition")),
			Body: c.statement(n.ChildByFieldName("body")),
		}

	case "do_statement":
		return &ast.DoWhileStatement{
			Span: span,
			Body: c.statement(n.ChildByFieldName("body")),
			Test: c.condition(n.ChildByFieldName("condition")),
		}

	case "return_statement":
		s := &ast.ReturnStatement{Span: span}
		if arg := firstChild(n); arg != nil {
			s.Argument = c.expression(arg)
		}
		return s

	case "throw_statement":
		return &ast.ThrowStatement{Span: span, Argument: c.expression(firstChild(n))}

	case "break_statement":
		return &ast.BreakStatement{Span: span, Label: c.label(n.ChildByFieldName("label"))}

	case "continue_statement":
		return &ast.ContinueStatement{Span: span, Label: c.label(n.ChildByFieldName("label"))}

	case "debugger_statement":
		return &ast.DebuggerStatement{Span: span}

	case "with_statement":
		return &ast.WithStatement{
			Span:   span,
			Object: c.condition(n.ChildByFieldName("object")),
			Body:   c.statement(n.ChildByFieldName("body")),
		}

	case "switch_statement":
		return c.switchStatement(n)

	case "labeled_statement":
		return &ast.LabeledStatement{
			Span:  span,
			Label: c.label(n.ChildByFieldName("label")),
			Body:  c.statement(n.ChildByFieldName("body")),
		}

	case "try_statement":
		return c.tryStatement(n)

	case "import_statement":
		return c.importDeclaration(n)

	case "export_statement":
		return c.exportDeclaration(n)
	}

	c.fail(n, "unexpected %s", n.Type())
	return &ast.EmptyStatement{Span: span}
}

func (c *converter) block(n *sitter.Node) *ast.BlockStatement {
	return &ast.BlockStatement{Span: c.span(n), Body: c.statements(children(n))}
}

func (c *converter) statements(nodes []*sitter.Node) []ast.Statement {
	out := make([]ast.Statement, 0, len(nodes))
	for _, child := range nodes {
		out = append(out, c.statement(child))
	}
	return out
}

func (c *converter) label(n *sitter.Node) *ast.LabelIdentifier {
	if n == nil {
		return nil
	}
	return &ast.LabelIdentifier{Span: c.span(n), Name: c.text(n)}
}

// condition converts the parenthesized head of if, while, do and with.
func (c *converter) condition(n *sitter.Node) ast.Expression {
	if n != nil && n.Type() == "parenthesized_expression" {
		return c.expression(firstChild(n))
	}
	return c.expression(n)
}

func (c *converter) variableDeclaration(n *sitter.Node, kind ast.VariableKind) *ast.VariableDeclaration {
	decl := &ast.VariableDeclaration{Span: c.span(n), Kind: kind}
	for _, child := range children(n) {
		if child.Type() != "variable_declarator" {
			continue
		}
		declarator := &ast.VariableDeclarator{
			Span: c.span(child),
			Kind: kind,
			ID:   c.bindingPattern(child.ChildByFieldName("name")),
		}
		if value := child.ChildByFieldName("value"); value != nil {
			declarator.Init = c.expression(value)
		}
		decl.Declarations = append(decl.Declarations, declarator)
	}
	return decl
}

// forInit converts the first clause of a for statement, which older and newer
// grammars shape differently.
func (c *converter) forInit(n *sitter.Node) ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "variable_declaration", "lexical_declaration":
		return c.statement(n)
	}
	return c.clauseExpression(n)
}

func (c *converter) clauseExpression(n *sitter.Node) ast.Expression {
	if n == nil || !n.IsNamed() {
		return nil
	}
	switch n.Type() {
	case "empty_statement":
		return nil
	case "expression_statement":
		return c.expression(firstChild(n))
	}
	return c.expression(n)
}

func (c *converter) forIn(n *sitter.Node) ast.Statement {
	span := c.span(n)
	left := n.ChildByFieldName("left")

	var target ast.Node
	if kind := n.ChildByFieldName("kind"); kind != nil {
		vk := ast.VariableVar
		switch c.text(kind) {
		case "let":
			vk = ast.VariableLet
		case "const":
			vk = ast.VariableConst
		}
		target = &ast.VariableDeclaration{
			Span: ast.NewSpan(kind.StartByte(), left.EndByte()),
			Kind: vk,
			Declarations: []*ast.VariableDeclarator{{
				Span: c.span(left),
				Kind: vk,
				ID:   c.bindingPattern(left),
			}},
		}
	} else {
		target = c.assignmentTarget(left)
	}

	right := c.expression(n.ChildByFieldName("right"))
	body := c.statement(n.ChildByFieldName("body"))

	isOf := hasToken(n, "of")
	if op := n.ChildByFieldName("operator"); op != nil {
		isOf = c.text(op) == "of"
	}
	if isOf {
		return &ast.ForOfStatement{Span: span, Await: hasToken(n, "await"), Left: target, Right: right, Body: body}
	}
	return &ast.ForInStatement{Span: span, Left: target, Right: right, Body: body}
}

func (c *converter) switchStatement(n *sitter.Node) *ast.SwitchStatement {
	s := &ast.SwitchStatement{Span: c.span(n), Discriminant: c.condition(n.ChildByFieldName("value"))}

	body := n.ChildByFieldName("body")
	if body == nil {
		return s
	}
	for _, clause := range children(body) {
		sc := &ast.SwitchCase{Span: c.span(clause)}
		stmts := children(clause)
		if clause.Type() == "switch_case" {
			value := clause.ChildByFieldName("value")
			sc.Test = c.expression(value)
			if len(stmts) > 0 && stmts[0].StartByte() == value.StartByte() {
				stmts = stmts[1:]
			}
		}
		sc.Consequent = c.statements(stmts)
		s.Cases = append(s.Cases, sc)
	}
	return s
}

func (c *converter) tryStatement(n *sitter.Node) *ast.TryStatement {
	s := &ast.TryStatement{Span: c.span(n), Block: c.block(n.ChildByFieldName("body"))}

	if handler := n.ChildByFieldName("handler"); handler != nil {
		clause := &ast.CatchClause{Span: c.span(handler), Body: c.block(handler.ChildByFieldName("body"))}
		if param := handler.ChildByFieldName("parameter"); param != nil {
			clause.Param = c.bindingPattern(param)
		}
		s.Handler = clause
	}
	if finalizer := n.ChildByFieldName("finalizer"); finalizer != nil {
		s.Finalizer = c.block(finalizer.ChildByFieldName("body"))
	}
	return s
}

func (c *converter) importDeclaration(n *sitter.Node) *ast.ImportDeclaration {
	decl := &ast.ImportDeclaration{Span: c.span(n)}
	if source := n.ChildByFieldName("source"); source != nil {
		decl.Source = c.stringLiteral(source)
	}

	for _, child := range children(n) {
		switch child.Type() {
		case "import_clause":
			decl.Specifiers = c.importClause(child)
		case "import_attribute":
			c.fail(child, "import attributes are not supported")
		}
	}
	return decl
}

func (c *converter) importClause(n *sitter.Node) []ast.ImportSpecifierKind {
	specifiers := make([]ast.ImportSpecifierKind, 0, 1)
	for _, child := range children(n) {
		switch child.Type() {
		case "identifier":
			specifiers = append(specifiers, &ast.ImportDefaultSpecifier{
				Span:  c.span(child),
				Local: c.bindingIdentifier(child),
			})
		case "namespace_import":
			specifiers = append(specifiers, &ast.ImportNamespaceSpecifier{
				Span:  c.span(child),
				Local: c.bindingIdentifier(firstChild(child)),
			})
		case "named_imports":
			for _, spec := range children(child) {
				if spec.Type() != "import_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				local := name
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = alias
				}
				specifiers = append(specifiers, &ast.ImportSpecifier{
					Span:     c.span(spec),
					Imported: c.moduleExportName(name, false),
					Local:    c.bindingIdentifier(local),
				})
			}
		}
	}
	return specifiers
}

// moduleExportName converts an import or export name. Local names of an export
// without a source clause refer to bindings and become references.
func (c *converter) moduleExportName(n *sitter.Node, reference bool) ast.ModuleExportName {
	switch n.Type() {
	case "string":
		return c.stringLiteral(n)
	}
	if reference {
		return &ast.IdentifierReference{Span: c.span(n), Name: c.text(n)}
	}
	return &ast.IdentifierName{Span: c.span(n), Name: c.text(n)}
}

func (c *converter) exportDeclaration(n *sitter.Node) ast.Statement {
	span := c.span(n)

	var source *ast.StringLiteral
	if s := n.ChildByFieldName("source"); s != nil {
		source = c.stringLiteral(s)
	}

	if hasToken(n, "default") {
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			return &ast.ExportDefaultDeclaration{Span: span, Declaration: c.statement(decl)}
		}
		value := c.expression(n.ChildByFieldName("value"))
		switch v := value.(type) {
		case *ast.Function:
			v.Kind = ast.FunctionDeclaration
		case *ast.Class:
			v.Kind = ast.ClassDeclaration
		}
		return &ast.ExportDefaultDeclaration{Span: span, Declaration: value}
	}

	if decl := n.ChildByFieldName("declaration"); decl != nil {
		return &ast.ExportNamedDeclaration{Span: span, Declaration: c.statement(decl)}
	}

	for _, child := range children(n) {
		switch child.Type() {
		case "export_clause":
			export := &ast.ExportNamedDeclaration{Span: span, Source: source, Specifiers: []*ast.ExportSpecifier{}}
			for _, spec := range children(child) {
				if spec.Type() != "export_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				exported := name
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					exported = alias
				}
				export.Specifiers = append(export.Specifiers, &ast.ExportSpecifier{
					Span:     c.span(spec),
					Local:    c.moduleExportName(name, source == nil),
					Exported: c.moduleExportName(exported, false),
				})
			}
			return export
		case "namespace_export":
			return &ast.ExportAllDeclaration{
				Span:     span,
				Exported: c.moduleExportName(firstChild(child), false),
				Source:   source,
			}
		}
	}

	if hasToken(n, "*") {
		return &ast.ExportAllDeclaration{Span: span, Source: source}
	}

	c.fail(n, "unexpected export form")
	return &ast.EmptyStatement{Span: span}
}
