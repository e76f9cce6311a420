package codegen

import (
	"fmt"

	"github.com/yaklabco/gojs/pkg/ast"
)

// printExpr prints e, wrapping it in parentheses when its precedence is lower
// than level or when flags forbid its leading token.
func (p *Codegen) printExpr(e ast.Expression, level ast.Level, flags ctxFlags) {
	switch n := e.(type) {
	case *ast.IdentifierReference:
		p.printIdentifierReference(n)

	case *ast.BooleanLiteral:
		p.addSourceMapping(n.Start)
		if n.Value {
			p.printKeyword("true")
		} else {
			p.printKeyword("false")
		}

	case *ast.NullLiteral:
		p.addSourceMapping(n.Start)
		p.printKeyword("null")

	case *ast.NumericLiteral:
		p.addSourceMapping(n.Start)
		p.printNumber(n, level)

	case *ast.BigIntLiteral:
		p.addSourceMapping(n.Start)
		p.printSpaceBeforeIdentifier()
		p.printStr(n.Raw)

	case *ast.StringLiteral:
		p.printStringLiteral(n)

	case *ast.RegExpLiteral:
		p.addSourceMapping(n.Start)
		if len(p.code) > 0 && p.code[len(p.code)-1] == '/' {
			p.printHardSpace()
		}
		p.printByte('/')
		p.printStr(n.Pattern)
		p.printByte('/')
		p.printStr(n.Flags)
		p.prevRegExpEnd = len(p.code)

	case *ast.TemplateLiteral:
		p.printTemplateLiteral(n)

	case *ast.ThisExpression:
		p.addSourceMapping(n.Start)
		p.printKeyword("this")

	case *ast.Super:
		p.addSourceMapping(n.Start)
		p.printKeyword("super")

	case *ast.ArrayExpression:
		p.addSourceMapping(n.Start)
		p.printByte('[')
		printList(p, n.Elements, p.printArrayElement)
		if k := len(n.Elements); k > 0 {
			if _, hole := n.Elements[k-1].(*ast.Elision); hole {
				p.printComma()
			}
		}
		p.printByte(']')

	case *ast.Elision:

	case *ast.SpreadElement:
		p.addSourceMapping(n.Start)
		p.printEllipsis()
		p.printExpr(n.Argument, ast.LComma, 0)

	case *ast.ObjectExpression:
		wrap := p.startOfStmt == len(p.code) || p.startOfArrowExpr == len(p.code)
		p.wrap(wrap, func() { p.printObjectExpression(n) })

	case *ast.ParenthesizedExpression:
		p.printByte('(')
		p.printExpr(n.Expression, ast.LLowest, 0)
		p.printByte(')')

	case *ast.SequenceExpression:
		wrap := level >= ast.LComma || p.startOfStmt == len(p.code) || p.startOfArrowExpr == len(p.code)
		p.wrap(wrap, func() {
			if wrap {
				flags &^= forbidIn
			}
			for i, item := range n.Expressions {
				if i > 0 {
					p.printComma()
					p.printSoftSpace()
				}
				p.printExpr(item, ast.LComma, flags&forbidIn)
			}
		})

	case *ast.UnaryExpression:
		p.wrap(level >= ast.LPrefix, func() {
			p.addSourceMapping(n.Start)
			if n.Operator.IsKeyword() {
				p.printKeyword(n.Operator.String())
				p.printSoftSpace()
			} else {
				p.printOperator(UnaryOp(n.Operator))
			}
			p.printExpr(n.Argument, ast.LPrefix-1, 0)
		})

	case *ast.UpdateExpression:
		if n.Prefix {
			p.wrap(level >= ast.LPrefix, func() {
				p.addSourceMapping(n.Start)
				p.printOperator(UpdateOp(n.Operator))
				p.printExpr(n.Argument, ast.LPrefix-1, 0)
			})
		} else {
			p.wrap(level >= ast.LPostfix, func() {
				p.printExpr(n.Argument, ast.LPostfix-1, 0)
				p.printOperator(UpdateOp(n.Operator))
			})
		}

	case *ast.BinaryExpression:
		p.printBinaryExpression(n, level, flags)

	case *ast.AssignmentExpression:
		_, objectLeft := n.Left.(*ast.ObjectExpression)
		wrap := level >= ast.LAssign ||
			(objectLeft && (p.startOfStmt == len(p.code) || p.startOfArrowExpr == len(p.code)))
		p.wrap(wrap, func() {
			if wrap {
				flags &^= forbidIn
			}
			p.printExpr(n.Left, ast.LAssign, flags&forbidIn)
			p.printSoftSpace()
			p.printStr(n.Operator.String())
			p.printSoftSpace()
			p.printExpr(n.Right, ast.LAssign-1, flags&forbidIn)
		})

	case *ast.ConditionalExpression:
		wrap := level >= ast.LConditional
		p.wrap(wrap, func() {
			if wrap {
				flags &^= forbidIn
			}
			p.printExpr(n.Test, ast.LConditional, flags&forbidIn)
			p.printSoftSpace()
			p.printByte('?')
			p.printSoftSpace()
			p.printExpr(n.Consequent, ast.LYield, 0)
			p.printSoftSpace()
			p.printColon()
			p.printSoftSpace()
			p.printExpr(n.Alternate, ast.LYield, flags&forbidIn)
		})

	case *ast.CallExpression:
		p.printCallExpression(n, level, flags)

	case *ast.NewExpression:
		p.printNewExpression(n, level)

	case *ast.StaticMemberExpression:
		p.printExpr(n.Object, ast.LPostfix, flags&forbidCall)
		p.printMemberDot(n.Optional)
		p.addSourceMappingForName(n.Property.Span, n.Property.Name)
		p.printStr(n.Property.Name)

	case *ast.ComputedMemberExpression:
		if ref, ok := n.Object.(*ast.IdentifierReference); ok && ref.Name == "let" && p.startOfStmt == len(p.code) {
			// "let[" at statement start begins a lexical declaration.
			p.wrap(true, func() { p.printIdentifierReference(ref) })
		} else {
			p.printExpr(n.Object, ast.LPostfix, flags&forbidCall)
		}
		if n.Optional {
			p.printStr("?.")
		}
		p.printByte('[')
		p.printExpr(n.Expression, ast.LLowest, 0)
		p.printByte(']')

	case *ast.PrivateFieldExpression:
		p.printExpr(n.Object, ast.LPostfix, flags&forbidCall)
		p.printMemberDot(n.Optional)
		p.addSourceMappingForName(n.Field.Span, n.Field.Name)
		p.printByte('#')
		p.printStr(n.Field.Name)

	case *ast.TaggedTemplateExpression:
		p.printExpr(n.Tag, ast.LPostfix, flags&forbidCall)
		p.printTemplateLiteral(n.Quasi)

	case *ast.AwaitExpression:
		p.wrap(level >= ast.LPrefix, func() {
			p.addSourceMapping(n.Start)
			p.printKeyword("await")
			p.printSoftSpace()
			p.printExpr(n.Argument, ast.LPrefix-1, 0)
		})

	case *ast.YieldExpression:
		p.wrap(level >= ast.LAssign, func() {
			p.addSourceMapping(n.Start)
			p.printKeyword("yield")
			if n.Delegate {
				p.printByte('*')
			}
			if n.Argument != nil {
				p.printSoftSpace()
				p.printExpr(n.Argument, ast.LYield, 0)
			}
		})

	case *ast.MetaProperty:
		p.addSourceMapping(n.Start)
		p.printKeyword(n.Meta.Name)
		p.printByte('.')
		p.printStr(n.Property.Name)

	case *ast.ImportExpression:
		p.wrap(level >= ast.LNew || flags&forbidCall != 0, func() {
			p.addSourceMapping(n.Start)
			p.printKeyword("import")
			p.printByte('(')
			p.printExpr(n.Source, ast.LComma, 0)
			p.printByte(')')
		})

	case *ast.Function:
		p.printAnnotationComments(n.Start)
		wrap := p.startOfStmt == len(p.code) || p.startOfDefaultExport == len(p.code)
		p.wrap(wrap, func() {
			p.addSourceMapping(n.Start)
			p.printFunction(n, 0)
		})

	case *ast.ArrowFunctionExpression:
		p.printArrowFunction(n, level, flags)

	case *ast.Class:
		wrap := p.startOfStmt == len(p.code) || p.startOfDefaultExport == len(p.code)
		p.wrap(wrap, func() {
			p.addSourceMapping(n.Start)
			p.printClass(n)
		})

	default:
		panic(fmt.Sprintf("codegen: unexpected expression %T", e))
	}
}

func (p *Codegen) printIdentifierReference(ref *ast.IdentifierReference) {
	p.addSourceMappingForName(ref.Span, ref.Name)
	p.printSpaceBeforeIdentifier()
	p.printStr(p.referenceName(ref))
}

func (p *Codegen) printBindingIdentifier(ident *ast.BindingIdentifier) {
	p.addSourceMappingForName(ident.Span, ident.Name)
	p.printSpaceBeforeIdentifier()
	p.printStr(p.bindingName(ident))
}

func (p *Codegen) printMemberDot(optional bool) {
	if optional {
		p.printStr("?.")
		return
	}
	if p.needSpaceBeforeDot == len(p.code) {
		p.printHardSpace()
	}
	p.printByte('.')
}

func (p *Codegen) printArrayElement(el ast.Expression) {
	if _, hole := el.(*ast.Elision); hole {
		return
	}
	p.printExpr(el, ast.LComma, 0)
}

func (p *Codegen) printArguments(args []ast.Expression) {
	p.printByte('(')
	printList(p, args, func(arg ast.Expression) {
		p.printExpr(arg, ast.LComma, 0)
	})
	p.printByte(')')
}

func (p *Codegen) printCallExpression(n *ast.CallExpression, level ast.Level, flags ctxFlags) {
	annotated := p.printAnnotations && p.comments.hasAnnotation(n.Start)
	wrap := level >= ast.LNew || flags&forbidCall != 0 || (annotated && level >= ast.LPostfix)
	p.wrap(wrap, func() {
		p.printAnnotationComments(n.Start)
		p.addSourceMapping(n.Start)
		p.printExpr(n.Callee, ast.LPostfix, 0)
		if n.Optional {
			p.printStr("?.")
		}
		p.printArguments(n.Arguments)
	})
}

func (p *Codegen) printNewExpression(n *ast.NewExpression, level ast.Level) {
	annotated := p.printAnnotations && p.comments.hasAnnotation(n.Start)
	wrap := level >= ast.LCall || (annotated && level >= ast.LPostfix)
	p.wrap(wrap, func() {
		p.printAnnotationComments(n.Start)
		p.addSourceMapping(n.Start)
		p.printKeyword("new")
		p.printSoftSpace()
		p.printExpr(n.Callee, ast.LNew, forbidCall)
		p.printArguments(n.Arguments)
	})
}

func (p *Codegen) printTemplateLiteral(n *ast.TemplateLiteral) {
	p.addSourceMapping(n.Start)
	p.printByte('`')
	for i, quasi := range n.Quasis {
		p.printStr(quasi.Raw)
		if i < len(n.Expressions) {
			p.printStr("${")
			p.printExpr(n.Expressions[i], ast.LLowest, 0)
			p.printByte('}')
		}
	}
	p.printByte('`')
}

func (p *Codegen) printObjectExpression(n *ast.ObjectExpression) {
	p.addSourceMapping(n.Start)
	p.printByte('{')
	for i, prop := range n.Properties {
		if i > 0 {
			p.printComma()
		}
		p.printSoftSpace()
		switch prop := prop.(type) {
		case *ast.SpreadElement:
			p.addSourceMapping(prop.Start)
			p.printEllipsis()
			p.printExpr(prop.Argument, ast.LComma, 0)
		case *ast.ObjectProperty:
			p.printObjectProperty(prop)
		}
	}
	if len(n.Properties) > 0 {
		p.printSoftSpace()
	}
	p.addSourceMappingEnd(n.Span)
	p.printByte('}')
}

func (p *Codegen) printObjectProperty(prop *ast.ObjectProperty) {
	p.addSourceMapping(prop.Start)

	if fn, ok := prop.Value.(*ast.Function); ok && (prop.Method || prop.Kind != ast.PropertyInit) {
		switch prop.Kind {
		case ast.PropertyGet:
			p.printKeyword("get")
			p.printSoftSpace()
		case ast.PropertySet:
			p.printKeyword("set")
			p.printSoftSpace()
		default:
			p.printMethodPrefix(fn)
		}
		p.printPropertyKey(prop.Key, prop.Computed)
		p.printFunctionSignature(fn)
		return
	}

	if prop.Shorthand && !prop.Computed {
		if p.printShorthandValue(prop.Key, prop.Value) {
			return
		}
	}

	p.printPropertyKey(prop.Key, prop.Computed)
	p.printColon()
	p.printSoftSpace()
	p.printExpr(prop.Value, ast.LComma, 0)
}

// printShorthandValue prints a shorthand property when the emitted name still
// matches the key, reporting false when the key must be written out.
func (p *Codegen) printShorthandValue(key ast.PropertyKey, value ast.Expression) bool {
	name, ok := ast.PropertyKeyName(key)
	if !ok {
		return false
	}
	switch v := value.(type) {
	case *ast.IdentifierReference:
		if p.referenceName(v) != name {
			return false
		}
		p.printIdentifierReference(v)
		return true
	case *ast.AssignmentExpression:
		ref, isRef := v.Left.(*ast.IdentifierReference)
		if !isRef || p.referenceName(ref) != name {
			return false
		}
		p.printIdentifierReference(ref)
		p.printSoftSpace()
		p.printEqual()
		p.printSoftSpace()
		p.printExpr(v.Right, ast.LComma, 0)
		return true
	}
	return false
}

func (p *Codegen) printPropertyKey(key ast.PropertyKey, computed bool) {
	if computed {
		p.printByte('[')
		p.printExpr(key.(ast.Expression), ast.LComma, 0)
		p.printByte(']')
		return
	}
	switch k := key.(type) {
	case *ast.IdentifierName:
		p.addSourceMappingForName(k.Span, k.Name)
		p.printSpaceBeforeIdentifier()
		p.printStr(k.Name)
	case *ast.PrivateIdentifier:
		p.addSourceMappingForName(k.Span, k.Name)
		p.printByte('#')
		p.printStr(k.Name)
	case *ast.StringLiteral:
		p.printStringLiteral(k)
	case *ast.NumericLiteral:
		p.addSourceMapping(k.Start)
		p.printNumber(k, ast.LLowest)
	case ast.Expression:
		p.printExpr(k, ast.LComma, 0)
	}
}

func (p *Codegen) printArrowFunction(n *ast.ArrowFunctionExpression, level ast.Level, flags ctxFlags) {
	p.printAnnotationComments(n.Start)
	p.wrap(level >= ast.LAssign, func() {
		p.addSourceMapping(n.Start)
		if n.Async {
			p.printKeyword("async")
			p.printSoftSpace()
		}

		if ident, ok := singleIdentifierParam(n.Params); ok {
			p.printBindingIdentifier(ident)
		} else {
			p.printFormalParameters(n.Params)
		}

		p.printSoftSpace()
		p.printStr("=>")
		p.printSoftSpace()

		if n.Expression && len(n.Body.Statements) == 1 {
			if stmt, ok := n.Body.Statements[0].(*ast.ExpressionStatement); ok {
				p.startOfArrowExpr = len(p.code)
				p.printExpr(stmt.Expression, ast.LComma, flags&forbidIn)
				return
			}
		}
		p.printFunctionBody(n.Body)
	})
}

func singleIdentifierParam(params *ast.FormalParameters) (*ast.BindingIdentifier, bool) {
	if params == nil || params.Rest != nil || len(params.Items) != 1 {
		return nil, false
	}
	ident, ok := params.Items[0].(*ast.BindingIdentifier)
	return ident, ok
}
