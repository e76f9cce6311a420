package ast

// Level is an operator precedence level. Higher binds tighter.
type Level uint8

// Precedence levels, lowest to highest.
const (
	LLowest Level = iota
	LComma
	LSpread
	LYield
	LAssign
	LConditional
	LNullishCoalescing
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponentiation
	LPrefix
	LPostfix
	LNew
	LCall
	LMember
)

// BinaryOperator covers arithmetic, relational, bitwise and logical binary operators.
type BinaryOperator uint8

const (
	BinaryEquality BinaryOperator = iota
	BinaryInequality
	BinaryStrictEquality
	BinaryStrictInequality
	BinaryLessThan
	BinaryLessEqualThan
	BinaryGreaterThan
	BinaryGreaterEqualThan
	BinaryAddition
	BinarySubtraction
	BinaryMultiplication
	BinaryDivision
	BinaryRemainder
	BinaryExponential
	BinaryShiftLeft
	BinaryShiftRight
	BinaryShiftRightZeroFill
	BinaryBitwiseOr
	BinaryBitwiseXor
	BinaryBitwiseAnd
	BinaryIn
	BinaryInstanceof
	BinaryLogicalOr
	BinaryLogicalAnd
	BinaryNullishCoalescing
)

type binaryInfo struct {
	text      string
	level     Level
	isKeyword bool
}

var binaryTable = [...]binaryInfo{
	BinaryEquality:           {"==", LEquals, false},
	BinaryInequality:         {"!=", LEquals, false},
	BinaryStrictEquality:     {"===", LEquals, false},
	BinaryStrictInequality:   {"!==", LEquals, false},
	BinaryLessThan:           {"<", LCompare, false},
	BinaryLessEqualThan:      {"<=", LCompare, false},
	BinaryGreaterThan:        {">", LCompare, false},
	BinaryGreaterEqualThan:   {">=", LCompare, false},
	BinaryAddition:           {"+", LAdd, false},
	BinarySubtraction:        {"-", LAdd, false},
	BinaryMultiplication:     {"*", LMultiply, false},
	BinaryDivision:           {"/", LMultiply, false},
	BinaryRemainder:          {"%", LMultiply, false},
	BinaryExponential:        {"**", LExponentiation, false},
	BinaryShiftLeft:          {"<<", LShift, false},
	BinaryShiftRight:         {">>", LShift, false},
	BinaryShiftRightZeroFill: {">>>", LShift, false},
	BinaryBitwiseOr:          {"|", LBitwiseOr, false},
	BinaryBitwiseXor:         {"^", LBitwiseXor, false},
	BinaryBitwiseAnd:         {"&", LBitwiseAnd, false},
	BinaryIn:                 {"in", LCompare, true},
	BinaryInstanceof:         {"instanceof", LCompare, true},
	BinaryLogicalOr:          {"||", LLogicalOr, false},
	BinaryLogicalAnd:         {"&&", LLogicalAnd, false},
	BinaryNullishCoalescing:  {"??", LNullishCoalescing, false},
}

// String returns the operator's source text.
func (op BinaryOperator) String() string { return binaryTable[op].text }

// Precedence returns the operator's precedence level.
func (op BinaryOperator) Precedence() Level { return binaryTable[op].level }

// IsKeyword reports whether the operator is spelled as a keyword (`in`, `instanceof`).
func (op BinaryOperator) IsKeyword() bool { return binaryTable[op].isKeyword }

// IsRightAssociative reports whether a chain of op groups from the right.
func (op BinaryOperator) IsRightAssociative() bool { return op == BinaryExponential }

// IsLogical reports whether op short-circuits.
func (op BinaryOperator) IsLogical() bool {
	return op == BinaryLogicalOr || op == BinaryLogicalAnd || op == BinaryNullishCoalescing
}

// BinaryOperatorFromString looks up a binary operator by its source text.
func BinaryOperatorFromString(text string) (BinaryOperator, bool) {
	for i, info := range binaryTable {
		if info.text == text {
			return BinaryOperator(i), true
		}
	}
	return 0, false
}

// AssignmentOperator is `=` or a compound assignment.
type AssignmentOperator uint8

const (
	Assign AssignmentOperator = iota
	AssignAddition
	AssignSubtraction
	AssignMultiplication
	AssignDivision
	AssignRemainder
	AssignExponential
	AssignShiftLeft
	AssignShiftRight
	AssignShiftRightZeroFill
	AssignBitwiseOr
	AssignBitwiseXor
	AssignBitwiseAnd
	AssignLogicalAnd
	AssignLogicalOr
	AssignLogicalNullish
)

var assignmentText = [...]string{
	Assign:                   "=",
	AssignAddition:           "+=",
	AssignSubtraction:        "-=",
	AssignMultiplication:     "*=",
	AssignDivision:           "/=",
	AssignRemainder:          "%=",
	AssignExponential:        "**=",
	AssignShiftLeft:          "<<=",
	AssignShiftRight:         ">>=",
	AssignShiftRightZeroFill: ">>>=",
	AssignBitwiseOr:          "|=",
	AssignBitwiseXor:         "^=",
	AssignBitwiseAnd:         "&=",
	AssignLogicalAnd:         "&&=",
	AssignLogicalOr:          "||=",
	AssignLogicalNullish:     "??=",
}

func (op AssignmentOperator) String() string { return assignmentText[op] }

// AssignmentOperatorFromString looks up an assignment operator by its source text.
func AssignmentOperatorFromString(text string) (AssignmentOperator, bool) {
	for i, t := range assignmentText {
		if t == text {
			return AssignmentOperator(i), true
		}
	}
	return 0, false
}

// UnaryOperator is a prefix operator other than ++ and --.
type UnaryOperator uint8

const (
	UnaryNegation UnaryOperator = iota
	UnaryPlus
	UnaryLogicalNot
	UnaryBitwiseNot
	UnaryTypeof
	UnaryVoid
	UnaryDelete
)

var unaryText = [...]string{
	UnaryNegation:   "-",
	UnaryPlus:       "+",
	UnaryLogicalNot: "!",
	UnaryBitwiseNot: "~",
	UnaryTypeof:     "typeof",
	UnaryVoid:       "void",
	UnaryDelete:     "delete",
}

func (op UnaryOperator) String() string { return unaryText[op] }

// IsKeyword reports whether the operator is spelled as a keyword.
func (op UnaryOperator) IsKeyword() bool {
	return op == UnaryTypeof || op == UnaryVoid || op == UnaryDelete
}

// UnaryOperatorFromString looks up a unary operator by its source text.
func UnaryOperatorFromString(text string) (UnaryOperator, bool) {
	for i, t := range unaryText {
		if t == text {
			return UnaryOperator(i), true
		}
	}
	return 0, false
}

// UpdateOperator is ++ or --.
type UpdateOperator uint8

const (
	UpdateIncrement UpdateOperator = iota
	UpdateDecrement
)

func (op UpdateOperator) String() string {
	if op == UpdateIncrement {
		return "++"
	}
	return "--"
}
