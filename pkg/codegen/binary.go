package codegen

import "github.com/yaklabco/gojs/pkg/ast"

// binaryFrame is one pending binary expression on the left spine of a chain.
type binaryFrame struct {
	e          *ast.BinaryExpression
	level      ast.Level
	flags      ctxFlags
	wrap       bool
	leftLevel  ast.Level
	rightLevel ast.Level
}

// printBinaryExpression prints a chain of binary expressions without recursing
// down the left spine, so long chains such as a+b+c+... do not grow the Go stack.
func (p *Codegen) printBinaryExpression(e *ast.BinaryExpression, level ast.Level, flags ctxFlags) {
	base := len(p.binaryExprStack)

	var left ast.Expression = e
	for {
		be, ok := left.(*ast.BinaryExpression)
		if !ok {
			break
		}
		frame := p.prepareBinary(be, level, flags)
		p.binaryExprStack = append(p.binaryExprStack, frame)
		if frame.wrap {
			p.printByte('(')
			flags &^= forbidIn
		}

		left = be.Left
		level = frame.leftLevel
		flags &= forbidIn
	}

	p.printExpr(left, level, flags)

	for len(p.binaryExprStack) > base {
		last := len(p.binaryExprStack) - 1
		frame := p.binaryExprStack[last]
		p.binaryExprStack = p.binaryExprStack[:last]
		p.finishBinary(frame)
	}
}

func (p *Codegen) prepareBinary(e *ast.BinaryExpression, level ast.Level, flags ctxFlags) binaryFrame {
	prec := e.Operator.Precedence()
	frame := binaryFrame{
		e:          e,
		level:      level,
		flags:      flags,
		wrap:       level >= prec || (e.Operator == ast.BinaryIn && flags&forbidIn != 0),
		leftLevel:  prec - 1,
		rightLevel: prec - 1,
	}

	if e.Operator.IsRightAssociative() {
		frame.leftLevel = prec
	} else {
		frame.rightLevel = prec
	}

	switch e.Operator {
	case ast.BinaryNullishCoalescing:
		// "??" cannot be mixed with "||" or "&&" without parentheses.
		if isLogicalAndOr(e.Left) {
			frame.leftLevel = ast.LPrefix
		}
		if isLogicalAndOr(e.Right) {
			frame.rightLevel = ast.LPrefix
		}
	case ast.BinaryExponential:
		// "-x ** y" is a syntax error.
		if needsParensAsExponentBase(e.Left) {
			frame.leftLevel = ast.LCall
		}
	case ast.BinaryLogicalOr, ast.BinaryLogicalAnd:
		if isNullish(e.Left) {
			frame.leftLevel = ast.LPrefix
		}
		if isNullish(e.Right) {
			frame.rightLevel = ast.LPrefix
		}
	}
	return frame
}

func (p *Codegen) finishBinary(frame binaryFrame) {
	e := frame.e
	p.printSoftSpace()
	if e.Operator.IsKeyword() {
		p.printKeyword(e.Operator.String())
	} else {
		p.printOperator(BinaryOp(e.Operator))
	}
	p.printSoftSpace()

	flags := frame.flags
	if frame.wrap {
		flags &^= forbidIn
	}
	p.printExpr(e.Right, frame.rightLevel, flags&forbidIn)

	if frame.wrap {
		p.printByte(')')
	}
}

func isLogicalAndOr(e ast.Expression) bool {
	be, ok := e.(*ast.BinaryExpression)
	return ok && (be.Operator == ast.BinaryLogicalOr || be.Operator == ast.BinaryLogicalAnd)
}

func isNullish(e ast.Expression) bool {
	be, ok := e.(*ast.BinaryExpression)
	return ok && be.Operator == ast.BinaryNullishCoalescing
}

func needsParensAsExponentBase(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.UnaryExpression, *ast.AwaitExpression:
		return true
	case *ast.NumericLiteral:
		return n.Value < 0
	}
	return false
}
