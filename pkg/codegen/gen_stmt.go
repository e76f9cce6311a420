package codegen

import (
	"fmt"

	"github.com/yaklabco/gojs/pkg/ast"
)

func (p *Codegen) printProgram(program *ast.Program) {
	if program.Hashbang != "" {
		p.printStr("#!")
		p.printStr(program.Hashbang)
		p.printHardNewline()
	}
	p.printStatementList(program.Body, 0)
	p.printLeadingComments(uint32(len(p.source)))
}

func (p *Codegen) printStatement(s ast.Statement, flags ctxFlags) {
	if export, ok := s.(*ast.ExportNamedDeclaration); ok && export.Declaration != nil {
		p.deferExportAnnotation(export.Start)
	}
	if export, ok := s.(*ast.ExportDefaultDeclaration); ok {
		p.deferExportAnnotation(export.Start)
	}
	p.printLeadingComments(s.GetSpan().Start)

	switch n := s.(type) {
	case *ast.BlockStatement:
		p.printIndent()
		p.printBlockStatement(n, flags)
		p.printSoftNewline()

	case *ast.EmptyStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printSemicolon()
		p.printSoftNewline()

	case *ast.ExpressionStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.startOfStmt = len(p.code)
		p.printExpr(n.Expression, ast.LLowest, 0)
		p.printSemicolonAfterStatement()

	case *ast.IfStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printIf(n, flags)

	case *ast.ForStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("for")
		p.printSoftSpace()
		p.printByte('(')
		if n.Init != nil {
			p.printForInit(n.Init)
		}
		p.printSemicolon()
		if n.Test != nil {
			p.printSoftSpace()
			p.printExpr(n.Test, ast.LLowest, 0)
		}
		p.printSemicolon()
		if n.Update != nil {
			p.printSoftSpace()
			p.printExpr(n.Update, ast.LLowest, 0)
		}
		p.printByte(')')
		p.printBody(n.Body, false, flags)

	case *ast.ForInStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("for")
		p.printSoftSpace()
		p.printByte('(')
		p.printForInit(n.Left)
		p.printSoftSpace()
		p.printKeyword("in")
		p.printSoftSpace()
		p.printExpr(n.Right, ast.LLowest, 0)
		p.printByte(')')
		p.printBody(n.Body, false, flags)

	case *ast.ForOfStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("for")
		if n.Await {
			p.printHardSpace()
			p.printStr("await")
		}
		p.printSoftSpace()
		p.printByte('(')
		if ref, ok := n.Left.(*ast.IdentifierReference); ok && (ref.Name == "async" || ref.Name == "let") {
			p.wrap(true, func() { p.printForInit(n.Left) })
		} else {
			p.printForInit(n.Left)
		}
		p.printSoftSpace()
		p.printKeyword("of")
		p.printSoftSpace()
		p.printExpr(n.Right, ast.LComma, 0)
		p.printByte(')')
		p.printBody(n.Body, false, flags)

	case *ast.WhileStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("while")
		p.printSoftSpace()
		p.printByte('(')
		p.printExpr(n.Test, ast.LLowest, 0)
		p.printByte(')')
		p.printBody(n.Body, false, flags)

	case *ast.DoWhileStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("do")
		if block, ok := n.Body.(*ast.BlockStatement); ok {
			p.printSoftSpace()
			p.printBlockStatement(block, flags)
			p.printSoftSpace()
		} else {
			p.printBody(n.Body, true, flags)
			p.printSemicolonIfNeeded()
			p.printIndent()
		}
		p.printKeyword("while")
		p.printSoftSpace()
		p.printByte('(')
		p.printExpr(n.Test, ast.LLowest, 0)
		p.printByte(')')
		p.printSemicolonAfterStatement()

	case *ast.ContinueStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("continue")
		if n.Label != nil {
			p.printHardSpace()
			p.printStr(n.Label.Name)
		}
		p.printSemicolonAfterStatement()

	case *ast.BreakStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("break")
		if n.Label != nil {
			p.printHardSpace()
			p.printStr(n.Label.Name)
		}
		p.printSemicolonAfterStatement()

	case *ast.ReturnStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("return")
		if n.Argument != nil {
			p.printSoftSpace()
			p.printExpr(n.Argument, ast.LLowest, 0)
		}
		p.printSemicolonAfterStatement()

	case *ast.ThrowStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("throw")
		p.printSoftSpace()
		p.printExpr(n.Argument, ast.LLowest, 0)
		p.printSemicolonAfterStatement()

	case *ast.WithStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("with")
		p.printSoftSpace()
		p.printByte('(')
		p.printExpr(n.Object, ast.LLowest, 0)
		p.printByte(')')
		p.printBody(n.Body, false, flags)

	case *ast.SwitchStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printSwitch(n, flags)

	case *ast.LabeledStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printSpaceBeforeIdentifier()
		p.printStr(n.Label.Name)
		p.printColon()
		p.printBody(n.Body, false, flags)

	case *ast.TryStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printTry(n, flags)

	case *ast.DebuggerStatement:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("debugger")
		p.printSemicolonAfterStatement()

	case *ast.VariableDeclaration:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printVariableDeclaration(n, 0)
		p.printSemicolonAfterStatement()

	case *ast.Function:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printFunction(n, flags)
		p.printSoftNewline()

	case *ast.Class:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printClass(n)
		p.printSoftNewline()

	case *ast.ImportDeclaration:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printImport(n)

	case *ast.ExportNamedDeclaration:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printExportNamed(n)

	case *ast.ExportDefaultDeclaration:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printExportDefault(n)

	case *ast.ExportAllDeclaration:
		p.addSourceMapping(n.Start)
		p.printIndent()
		p.printKeyword("export")
		p.printSoftSpace()
		p.printByte('*')
		if n.Exported != nil {
			p.printSoftSpace()
			p.printKeyword("as")
			p.printHardSpace()
			p.printModuleExportName(n.Exported)
		}
		p.printSoftSpace()
		p.printKeyword("from")
		p.printSoftSpace()
		p.printStringLiteral(n.Source)
		p.printSemicolonAfterStatement()

	default:
		panic(fmt.Sprintf("codegen: unexpected statement %T", s))
	}
}

func (p *Codegen) deferExportAnnotation(start uint32) {
	if p.printAnnotations && p.comments.hasAnnotation(start) {
		p.startOfAnnotationComment = start
		p.hasPendingAnnotation = true
	}
}

func (p *Codegen) printIf(n *ast.IfStatement, flags ctxFlags) {
	p.printKeyword("if")
	p.printSoftSpace()
	p.printByte('(')
	p.printExpr(n.Test, ast.LLowest, 0)
	p.printByte(')')

	switch consequent := n.Consequent.(type) {
	case *ast.BlockStatement:
		p.printSoftSpace()
		p.printBlockStatement(consequent, flags)
		if n.Alternate != nil {
			p.printSoftSpace()
		} else {
			p.printSoftNewline()
		}
	default:
		if n.Alternate != nil && wrapToAvoidAmbiguousElse(consequent) {
			span := consequent.GetSpan()
			p.printSoftSpace()
			p.printBlockStart(span.Start)
			p.printStatement(consequent, flags)
			p.needsSemicolon = false
			p.printBlockEnd(span.End)
			p.printSoftSpace()
		} else {
			p.printBody(consequent, false, flags)
			if n.Alternate != nil {
				p.printSemicolonIfNeeded()
				p.printIndent()
			}
		}
	}

	if n.Alternate == nil {
		return
	}
	p.printKeyword("else")
	switch alternate := n.Alternate.(type) {
	case *ast.BlockStatement:
		p.printSoftSpace()
		p.printBlockStatement(alternate, flags)
		p.printSoftNewline()
	case *ast.IfStatement:
		p.printHardSpace()
		p.printLeadingComments(alternate.Start)
		p.addSourceMapping(alternate.Start)
		p.printIf(alternate, flags)
	default:
		p.printBody(alternate, true, flags)
	}
}

// wrapToAvoidAmbiguousElse reports whether s ends in an if statement without an
// else, which would capture a following else.
func wrapToAvoidAmbiguousElse(s ast.Statement) bool {
	for {
		switch n := s.(type) {
		case *ast.IfStatement:
			if n.Alternate == nil {
				return true
			}
			s = n.Alternate
		case *ast.ForStatement:
			s = n.Body
		case *ast.ForInStatement:
			s = n.Body
		case *ast.ForOfStatement:
			s = n.Body
		case *ast.WhileStatement:
			s = n.Body
		case *ast.WithStatement:
			s = n.Body
		case *ast.LabeledStatement:
			s = n.Body
		default:
			return false
		}
	}
}

func (p *Codegen) printForInit(init ast.Node) {
	switch n := init.(type) {
	case *ast.VariableDeclaration:
		p.printVariableDeclaration(n, forbidIn)
	case ast.Expression:
		p.printExpr(n, ast.LLowest, forbidIn)
	}
}

func (p *Codegen) printSwitch(n *ast.SwitchStatement, flags ctxFlags) {
	p.printKeyword("switch")
	p.printSoftSpace()
	p.printByte('(')
	p.printExpr(n.Discriminant, ast.LLowest, 0)
	p.printByte(')')
	p.printSoftSpace()
	p.printCurlyBraces(n.Span, len(n.Cases) == 0, func() {
		for _, c := range n.Cases {
			p.printSemicolonIfNeeded()
			p.printLeadingComments(c.Start)
			p.addSourceMapping(c.Start)
			p.printIndent()
			if c.Test != nil {
				p.printKeyword("case")
				p.printSoftSpace()
				p.printExpr(c.Test, ast.LLowest, 0)
			} else {
				p.printKeyword("default")
			}
			p.printColon()

			if len(c.Consequent) == 1 {
				if block, ok := c.Consequent[0].(*ast.BlockStatement); ok {
					p.printSoftSpace()
					p.printBlockStatement(block, flags)
					p.printSoftNewline()
					continue
				}
			}

			p.printSoftNewline()
			p.indentIn()
			p.printStatementList(c.Consequent, flags)
			p.indentOut()
		}
	})
	p.needsSemicolon = false
	p.printSoftNewline()
}

func (p *Codegen) printTry(n *ast.TryStatement, flags ctxFlags) {
	p.printKeyword("try")
	p.printSoftSpace()
	p.printBlockStatement(n.Block, flags)
	if n.Handler != nil {
		p.printSoftSpace()
		p.addSourceMapping(n.Handler.Start)
		p.printKeyword("catch")
		if n.Handler.Param != nil {
			p.printSoftSpace()
			p.printByte('(')
			p.printBindingPattern(n.Handler.Param)
			p.printByte(')')
		}
		p.printSoftSpace()
		p.printBlockStatement(n.Handler.Body, flags)
	}
	if n.Finalizer != nil {
		p.printSoftSpace()
		p.printKeyword("finally")
		p.printSoftSpace()
		p.printBlockStatement(n.Finalizer, flags)
	}
	p.printSoftNewline()
}

func (p *Codegen) printVariableDeclaration(n *ast.VariableDeclaration, flags ctxFlags) {
	p.printKeyword(n.Kind.String())
	p.printSoftSpace()
	for i, d := range n.Declarations {
		if i > 0 {
			p.printComma()
			p.printSoftSpace()
		}
		p.addSourceMapping(d.Start)
		if i == 0 {
			p.printPendingAnnotation()
		}
		p.printBindingPattern(d.ID)
		if d.Init != nil {
			p.printSoftSpace()
			p.printEqual()
			p.printSoftSpace()
			p.printExpr(d.Init, ast.LComma, flags&forbidIn)
		}
	}
}

func (p *Codegen) printImport(n *ast.ImportDeclaration) {
	p.printKeyword("import")
	if n.Specifiers == nil {
		p.printSoftSpace()
		p.printStringLiteral(n.Source)
		p.printSemicolonAfterStatement()
		return
	}

	p.printSoftSpace()
	var named []*ast.ImportSpecifier
	wrote := false
	for _, spec := range n.Specifiers {
		switch s := spec.(type) {
		case *ast.ImportDefaultSpecifier:
			p.printBindingIdentifier(s.Local)
			wrote = true
		case *ast.ImportNamespaceSpecifier:
			if wrote {
				p.printComma()
				p.printSoftSpace()
			}
			p.printByte('*')
			p.printSoftSpace()
			p.printKeyword("as")
			p.printHardSpace()
			p.printBindingIdentifier(s.Local)
			wrote = true
		case *ast.ImportSpecifier:
			named = append(named, s)
		}
	}

	if len(named) > 0 || !wrote {
		if wrote {
			p.printComma()
			p.printSoftSpace()
		}
		p.printByte('{')
		for i, s := range named {
			if i > 0 {
				p.printComma()
			}
			p.printSoftSpace()
			p.printModuleExportName(s.Imported)
			local := p.bindingName(s.Local)
			if local != ast.ModuleExportNameString(s.Imported) || isStringName(s.Imported) {
				p.printHardSpace()
				p.printStr("as")
				p.printHardSpace()
				p.printBindingIdentifier(s.Local)
			}
		}
		if len(named) > 0 {
			p.printSoftSpace()
		}
		p.printByte('}')
	}

	p.printSoftSpace()
	p.printKeyword("from")
	p.printSoftSpace()
	p.printStringLiteral(n.Source)
	p.printSemicolonAfterStatement()
}

func isStringName(name ast.ModuleExportName) bool {
	_, ok := name.(*ast.StringLiteral)
	return ok
}

func (p *Codegen) printModuleExportName(name ast.ModuleExportName) {
	switch n := name.(type) {
	case *ast.IdentifierName:
		p.addSourceMappingForName(n.Span, n.Name)
		p.printSpaceBeforeIdentifier()
		p.printStr(n.Name)
	case *ast.IdentifierReference:
		p.printIdentifierReference(n)
	case *ast.StringLiteral:
		p.printStringLiteral(n)
	}
}

func (p *Codegen) moduleExportNameText(name ast.ModuleExportName) string {
	if ref, ok := name.(*ast.IdentifierReference); ok {
		return p.referenceName(ref)
	}
	return ast.ModuleExportNameString(name)
}

func (p *Codegen) printExportNamed(n *ast.ExportNamedDeclaration) {
	p.printKeyword("export")

	if n.Declaration != nil {
		p.printHardSpace()
		switch decl := n.Declaration.(type) {
		case *ast.VariableDeclaration:
			p.addSourceMapping(decl.Start)
			p.printVariableDeclaration(decl, 0)
			p.printSemicolonAfterStatement()
		case *ast.Function:
			p.printPendingAnnotation()
			p.addSourceMapping(decl.Start)
			p.printFunction(decl, 0)
			p.printSoftNewline()
		case *ast.Class:
			p.printPendingAnnotation()
			p.addSourceMapping(decl.Start)
			p.printClass(decl)
			p.printSoftNewline()
		}
		p.hasPendingAnnotation = false
		return
	}

	p.printSoftSpace()
	p.printByte('{')
	for i, spec := range n.Specifiers {
		if i > 0 {
			p.printComma()
		}
		p.printSoftSpace()
		p.addSourceMapping(spec.Start)
		p.printModuleExportName(spec.Local)
		if p.moduleExportNameText(spec.Local) != ast.ModuleExportNameString(spec.Exported) || isStringName(spec.Exported) != isStringName(spec.Local) {
			p.printHardSpace()
			p.printStr("as")
			p.printHardSpace()
			p.printModuleExportName(spec.Exported)
		}
	}
	if len(n.Specifiers) > 0 {
		p.printSoftSpace()
	}
	p.printByte('}')
	if n.Source != nil {
		p.printSoftSpace()
		p.printKeyword("from")
		p.printSoftSpace()
		p.printStringLiteral(n.Source)
	}
	p.printSemicolonAfterStatement()
}

func (p *Codegen) printExportDefault(n *ast.ExportDefaultDeclaration) {
	p.printKeyword("export")
	p.printHardSpace()
	p.printStr("default")

	switch decl := n.Declaration.(type) {
	case *ast.Function:
		if decl.Kind == ast.FunctionDeclaration {
			p.printHardSpace()
			p.printPendingAnnotation()
			p.addSourceMapping(decl.Start)
			p.printFunction(decl, 0)
			p.printSoftNewline()
			return
		}
	case *ast.Class:
		if decl.Kind == ast.ClassDeclaration {
			p.printHardSpace()
			p.printPendingAnnotation()
			p.addSourceMapping(decl.Start)
			p.printClass(decl)
			p.printSoftNewline()
			return
		}
	}

	p.printSoftSpace()
	p.startOfDefaultExport = len(p.code)
	p.printPendingAnnotation()
	p.printExpr(n.Declaration.(ast.Expression), ast.LComma, 0)
	p.printSemicolonAfterStatement()
}
