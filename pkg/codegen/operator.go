package codegen

import (
	"strings"

	"github.com/yaklabco/gojs/pkg/ast"
)

type operatorKind uint8

const (
	operatorBinary operatorKind = iota + 1
	operatorUnary
	operatorUpdate
)

// Operator is the lexical key of an emitted operator. Prefix and postfix updates
// share a key because both print the same token.
type Operator struct {
	kind  operatorKind
	value uint8
}

// BinaryOp wraps a binary operator.
func BinaryOp(op ast.BinaryOperator) Operator {
	return Operator{kind: operatorBinary, value: uint8(op)}
}

// UnaryOp wraps a unary operator.
func UnaryOp(op ast.UnaryOperator) Operator {
	return Operator{kind: operatorUnary, value: uint8(op)}
}

// UpdateOp wraps an update operator.
func UpdateOp(op ast.UpdateOperator) Operator {
	return Operator{kind: operatorUpdate, value: uint8(op)}
}

// IsZero reports whether o holds no operator.
func (o Operator) IsZero() bool {
	return o.kind == 0
}

func (o Operator) String() string {
	switch o.kind {
	case operatorBinary:
		return ast.BinaryOperator(o.value).String()
	case operatorUnary:
		return ast.UnaryOperator(o.value).String()
	case operatorUpdate:
		return ast.UpdateOperator(o.value).String()
	}
	return ""
}

var (
	opAdd = BinaryOp(ast.BinaryAddition)
	opSub = BinaryOp(ast.BinarySubtraction)
	opPos = UnaryOp(ast.UnaryPlus)
	opNeg = UnaryOp(ast.UnaryNegation)
	opNot = UnaryOp(ast.UnaryLogicalNot)
	opInc = UpdateOp(ast.UpdateIncrement)
	opDec = UpdateOp(ast.UpdateDecrement)
)

// needsSpaceBetween reports whether prev immediately followed by next would fuse
// into a different token. before is the byte preceding prev in the output, or 0.
func needsSpaceBetween(prev, next Operator, before byte) bool {
	switch {
	case (prev == opAdd || prev == opPos) && (next == opAdd || next == opPos || next == opInc):
		// "+ +x" and "+ ++x" must not become "++"
		return true
	case (prev == opSub || prev == opNeg) && (next == opSub || next == opNeg || next == opDec):
		return true
	case prev == opDec && strings.HasPrefix(next.String(), ">"):
		// "x-- >y" and "x-- >>y" must not start with "-->"
		return true
	case prev == opNot && next == opDec && before == '<':
		// "<! --" must not become "<!--"
		return true
	}
	return false
}
