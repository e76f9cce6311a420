package codegen

import "github.com/yaklabco/gojs/pkg/ast"

func (p *Codegen) printFunction(fn *ast.Function, _ ctxFlags) {
	if fn.Async {
		p.printKeyword("async")
		p.printHardSpace()
	}
	p.printKeyword("function")
	if fn.Generator {
		p.printByte('*')
		p.printSoftSpace()
	}
	if fn.ID != nil {
		if !fn.Generator {
			p.printHardSpace()
		}
		p.printBindingIdentifier(fn.ID)
	}
	p.printFunctionSignature(fn)
}

// printMethodPrefix prints the async and generator markers of a method.
func (p *Codegen) printMethodPrefix(fn *ast.Function) {
	if fn.Async {
		p.printKeyword("async")
		p.printSoftSpace()
	}
	if fn.Generator {
		p.printByte('*')
	}
}

// printFunctionSignature prints the parameter list and body shared by functions
// and methods.
func (p *Codegen) printFunctionSignature(fn *ast.Function) {
	p.printFormalParameters(fn.Params)
	p.printSoftSpace()
	p.printFunctionBody(fn.Body)
}

func (p *Codegen) printFormalParameters(params *ast.FormalParameters) {
	p.printByte('(')
	if params != nil {
		printList(p, params.Items, p.printBindingPattern)
		if params.Rest != nil {
			if len(params.Items) > 0 {
				p.printComma()
				p.printSoftSpace()
			}
			p.printRestElement(params.Rest)
		}
	}
	p.printByte(')')
}

func (p *Codegen) printFunctionBody(body *ast.FunctionBody) {
	if body == nil {
		p.printStr("{}")
		return
	}
	p.printCurlyBraces(body.Span, len(body.Statements) == 0, func() {
		p.printStatementList(body.Statements, 0)
	})
	p.needsSemicolon = false
}

func (p *Codegen) printClass(class *ast.Class) {
	p.printKeyword("class")
	if class.ID != nil {
		p.printHardSpace()
		p.printBindingIdentifier(class.ID)
	}
	if class.SuperClass != nil {
		p.printSoftSpace()
		p.printKeyword("extends")
		p.printSoftSpace()
		p.printExpr(class.SuperClass, ast.LNew-1, 0)
	}
	p.printSoftSpace()

	body := class.Body
	p.printCurlyBraces(body.Span, len(body.Elements) == 0, func() {
		for _, el := range body.Elements {
			p.printSemicolonIfNeeded()
			p.printLeadingComments(el.GetSpan().Start)
			p.addSourceMapping(el.GetSpan().Start)
			p.printIndent()
			p.printClassElement(el)
		}
	})
	p.needsSemicolon = false
}

func (p *Codegen) printClassElement(el ast.ClassElement) {
	switch n := el.(type) {
	case *ast.MethodDefinition:
		if n.Static {
			p.printKeyword("static")
			p.printSoftSpace()
		}
		switch n.Kind {
		case ast.MethodGet:
			p.printKeyword("get")
			p.printSoftSpace()
		case ast.MethodSet:
			p.printKeyword("set")
			p.printSoftSpace()
		default:
			p.printMethodPrefix(n.Value)
		}
		p.printPropertyKey(n.Key, n.Computed)
		p.printFunctionSignature(n.Value)
		p.printSoftNewline()

	case *ast.PropertyDefinition:
		if n.Static {
			p.printKeyword("static")
			p.printSoftSpace()
		}
		p.printPropertyKey(n.Key, n.Computed)
		if n.Value != nil {
			p.printSoftSpace()
			p.printEqual()
			p.printSoftSpace()
			p.printExpr(n.Value, ast.LComma, 0)
		}
		p.printSemicolonAfterStatement()

	case *ast.StaticBlock:
		p.printKeyword("static")
		p.printSoftSpace()
		p.printCurlyBraces(n.Span, len(n.Body) == 0, func() {
			p.printStatementList(n.Body, 0)
		})
		p.needsSemicolon = false
		p.printSoftNewline()
	}
}

func (p *Codegen) printBindingPattern(pattern ast.BindingPattern) {
	switch n := pattern.(type) {
	case *ast.BindingIdentifier:
		p.printBindingIdentifier(n)

	case *ast.ObjectPattern:
		p.addSourceMapping(n.Start)
		p.printByte('{')
		for i, prop := range n.Properties {
			if i > 0 {
				p.printComma()
			}
			p.printSoftSpace()
			p.printBindingProperty(prop)
		}
		if n.Rest != nil {
			if len(n.Properties) > 0 {
				p.printComma()
			}
			p.printSoftSpace()
			p.printRestElement(n.Rest)
		}
		if len(n.Properties) > 0 || n.Rest != nil {
			p.printSoftSpace()
		}
		p.printByte('}')

	case *ast.ArrayPattern:
		p.addSourceMapping(n.Start)
		p.printByte('[')
		for i, el := range n.Elements {
			if i > 0 {
				p.printComma()
				p.printSoftSpace()
			}
			if el != nil {
				p.printBindingPattern(el)
			}
		}
		if n.Rest != nil {
			if len(n.Elements) > 0 {
				p.printComma()
				p.printSoftSpace()
			}
			p.printRestElement(n.Rest)
		} else if k := len(n.Elements); k > 0 && n.Elements[k-1] == nil {
			p.printComma()
		}
		p.printByte(']')

	case *ast.AssignmentPattern:
		p.printBindingPattern(n.Left)
		p.printSoftSpace()
		p.printEqual()
		p.printSoftSpace()
		p.printExpr(n.Right, ast.LComma, 0)
	}
}

func (p *Codegen) printRestElement(rest *ast.RestElement) {
	p.addSourceMapping(rest.Start)
	p.printEllipsis()
	p.printBindingPattern(rest.Argument)
}

func (p *Codegen) printBindingProperty(prop *ast.BindingProperty) {
	p.addSourceMapping(prop.Start)
	if prop.Shorthand && !prop.Computed {
		if name, ok := ast.PropertyKeyName(prop.Key); ok {
			switch v := prop.Value.(type) {
			case *ast.BindingIdentifier:
				if p.bindingName(v) == name {
					p.printBindingIdentifier(v)
					return
				}
			case *ast.AssignmentPattern:
				if ident, isIdent := v.Left.(*ast.BindingIdentifier); isIdent && p.bindingName(ident) == name {
					p.printBindingPattern(v)
					return
				}
			}
		}
	}
	p.printPropertyKey(prop.Key, prop.Computed)
	p.printColon()
	p.printSoftSpace()
	p.printBindingPattern(prop.Value)
}
