package ast

// Node is implemented by every syntax tree node.
type Node interface {
	GetSpan() Span
}

// Statement is a node that may appear in a statement list.
type Statement interface {
	Node
	stmtNode()
}

// Expression is a node that produces a value. Every expression may also be a
// computed property key.
type Expression interface {
	Node
	exprNode()
	propertyKeyNode()
}

// BindingPattern is a declaration target: identifier, destructuring or default.
type BindingPattern interface {
	Node
	patternNode()
}

// PropertyKey is the key of an object property, class member or destructuring property.
// Expressions are keys too; IdentifierName and PrivateIdentifier are static keys.
type PropertyKey interface {
	Node
	propertyKeyNode()
}

// ModuleExportName names an import or export binding.
type ModuleExportName interface {
	Node
	moduleExportNameNode()
}

// ClassElement is a member of a class body.
type ClassElement interface {
	Node
	classElementNode()
}

// ObjectPropertyKind is an entry of an object literal: *ObjectProperty or *SpreadElement.
type ObjectPropertyKind interface {
	Node
	objectPropertyNode()
}

// ImportSpecifierKind is one of the import clause forms.
type ImportSpecifierKind interface {
	Node
	importSpecifierNode()
}

type stmt struct{}

func (stmt) stmtNode() {}

type expr struct{}

func (expr) exprNode()        {}
func (expr) propertyKeyNode() {}

// Program is the root of a parsed source file.
type Program struct {
	Span
	SourceText string
	Hashbang   string
	IsModule   bool
	Body       []Statement
	Comments   []Comment
}

// ---------------------------------------------------------------------------
// Identifiers

// ReferenceID identifies a resolved reference. Zero means unset.
type ReferenceID uint32

// SymbolID identifies a declared symbol. Zero means unset.
type SymbolID uint32

// IdentifierReference is an identifier used as a value.
type IdentifierReference struct {
	Span
	expr
	Name        string
	ReferenceID ReferenceID
}

func (*IdentifierReference) moduleExportNameNode() {}

// BindingIdentifier is an identifier that declares a symbol.
type BindingIdentifier struct {
	Span
	Name     string
	SymbolID SymbolID
}

func (*BindingIdentifier) patternNode() {}

// IdentifierName is a property name or other non-binding identifier.
type IdentifierName struct {
	Span
	Name string
}

func (*IdentifierName) propertyKeyNode()      {}
func (*IdentifierName) moduleExportNameNode() {}

// PrivateIdentifier is a `#name` class member key. Name excludes the hash.
type PrivateIdentifier struct {
	Span
	Name string
}

func (*PrivateIdentifier) propertyKeyNode() {}

// LabelIdentifier names a labeled statement.
type LabelIdentifier struct {
	Span
	Name string
}

// ---------------------------------------------------------------------------
// Literals

type BooleanLiteral struct {
	Span
	expr
	Value bool
}

type NullLiteral struct {
	Span
	expr
}

// NumericLiteral keeps its source text in Raw when parsed.
type NumericLiteral struct {
	Span
	expr
	Value float64
	Raw   string
}

// BigIntLiteral holds the source text including the trailing `n`.
type BigIntLiteral struct {
	Span
	expr
	Raw string
}

// StringLiteral holds the cooked string value.
type StringLiteral struct {
	Span
	expr
	Value string
}

func (*StringLiteral) moduleExportNameNode() {}

type RegExpLiteral struct {
	Span
	expr
	Pattern string
	Flags   string
}

// TemplateLiteral interleaves Quasis with Expressions; len(Quasis) == len(Expressions)+1.
type TemplateLiteral struct {
	Span
	expr
	Quasis      []*TemplateElement
	Expressions []Expression
}

// TemplateElement is a raw template chunk between substitutions.
type TemplateElement struct {
	Span
	Raw  string
	Tail bool
}

// ---------------------------------------------------------------------------
// Expressions

type ThisExpression struct {
	Span
	expr
}

type Super struct {
	Span
	expr
}

// ArrayExpression elements may be *Elision or *SpreadElement.
type ArrayExpression struct {
	Span
	expr
	Elements []Expression
}

// Elision is a hole in an array literal.
type Elision struct {
	Span
	expr
}

type SpreadElement struct {
	Span
	expr
	Argument Expression
}

func (*SpreadElement) objectPropertyNode() {}

type ObjectExpression struct {
	Span
	expr
	Properties []ObjectPropertyKind
}

// PropertyKind distinguishes plain, getter and setter object properties.
type PropertyKind uint8

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

type ObjectProperty struct {
	Span
	Kind      PropertyKind
	Key       PropertyKey
	Value     Expression
	Method    bool
	Shorthand bool
	Computed  bool
}

func (*ObjectProperty) objectPropertyNode() {}

// ParenthesizedExpression is kept only where parentheses change meaning, such as
// around an optional chain that is then accessed.
type ParenthesizedExpression struct {
	Span
	expr
	Expression Expression
}

type SequenceExpression struct {
	Span
	expr
	Expressions []Expression
}

type UnaryExpression struct {
	Span
	expr
	Operator UnaryOperator
	Argument Expression
}

type UpdateExpression struct {
	Span
	expr
	Operator UpdateOperator
	Prefix   bool
	Argument Expression
}

type BinaryExpression struct {
	Span
	expr
	Left     Expression
	Operator BinaryOperator
	Right    Expression
}

// AssignmentExpression targets are expressions; destructuring assignment uses
// ArrayExpression and ObjectExpression on the left.
type AssignmentExpression struct {
	Span
	expr
	Operator AssignmentOperator
	Left     Expression
	Right    Expression
}

type ConditionalExpression struct {
	Span
	expr
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

type CallExpression struct {
	Span
	expr
	Callee    Expression
	Arguments []Expression
	Optional  bool
}

type NewExpression struct {
	Span
	expr
	Callee    Expression
	Arguments []Expression
}

// StaticMemberExpression is `object.property`.
type StaticMemberExpression struct {
	Span
	expr
	Object   Expression
	Property *IdentifierName
	Optional bool
}

// ComputedMemberExpression is `object[expression]`.
type ComputedMemberExpression struct {
	Span
	expr
	Object     Expression
	Expression Expression
	Optional   bool
}

// PrivateFieldExpression is `object.#field`.
type PrivateFieldExpression struct {
	Span
	expr
	Object   Expression
	Field    *PrivateIdentifier
	Optional bool
}

type TaggedTemplateExpression struct {
	Span
	expr
	Tag   Expression
	Quasi *TemplateLiteral
}

type AwaitExpression struct {
	Span
	expr
	Argument Expression
}

type YieldExpression struct {
	Span
	expr
	Delegate bool
	Argument Expression
}

// MetaProperty is `new.target` or `import.meta`.
type MetaProperty struct {
	Span
	expr
	Meta     *IdentifierName
	Property *IdentifierName
}

// ImportExpression is a dynamic `import(source)`.
type ImportExpression struct {
	Span
	expr
	Source Expression
}

// ---------------------------------------------------------------------------
// Functions and classes

// FunctionKind tells declarations from expressions.
type FunctionKind uint8

const (
	FunctionDeclaration FunctionKind = iota
	FunctionExpression
)

// Function is a function declaration or expression, and the value of class methods.
type Function struct {
	Span
	stmt
	expr
	Kind      FunctionKind
	ID        *BindingIdentifier
	Async     bool
	Generator bool
	Params    *FormalParameters
	Body      *FunctionBody
}

// FormalParameters items hold defaults as *AssignmentPattern.
type FormalParameters struct {
	Span
	Items []BindingPattern
	Rest  *RestElement
}

type FunctionBody struct {
	Span
	Statements []Statement
}

// ArrowFunctionExpression with Expression set has a body made of a single
// *ExpressionStatement holding the returned expression.
type ArrowFunctionExpression struct {
	Span
	expr
	Async      bool
	Expression bool
	Params     *FormalParameters
	Body       *FunctionBody
}

// ClassKind tells declarations from expressions.
type ClassKind uint8

const (
	ClassDeclaration ClassKind = iota
	ClassExpression
)

type Class struct {
	Span
	stmt
	expr
	Kind       ClassKind
	ID         *BindingIdentifier
	SuperClass Expression
	Body       *ClassBody
}

type ClassBody struct {
	Span
	Elements []ClassElement
}

// MethodKind is the flavor of a class method.
type MethodKind uint8

const (
	MethodMethod MethodKind = iota
	MethodGet
	MethodSet
	MethodConstructor
)

type MethodDefinition struct {
	Span
	Kind     MethodKind
	Static   bool
	Computed bool
	Key      PropertyKey
	Value    *Function
}

func (*MethodDefinition) classElementNode() {}

type PropertyDefinition struct {
	Span
	Static   bool
	Computed bool
	Key      PropertyKey
	Value    Expression
}

func (*PropertyDefinition) classElementNode() {}

type StaticBlock struct {
	Span
	Body []Statement
}

func (*StaticBlock) classElementNode() {}

// ---------------------------------------------------------------------------
// Patterns

type ObjectPattern struct {
	Span
	Properties []*BindingProperty
	Rest       *RestElement
}

func (*ObjectPattern) patternNode() {}

type BindingProperty struct {
	Span
	Key       PropertyKey
	Value     BindingPattern
	Shorthand bool
	Computed  bool
}

// ArrayPattern elements are nil for holes.
type ArrayPattern struct {
	Span
	Elements []BindingPattern
	Rest     *RestElement
}

func (*ArrayPattern) patternNode() {}

type RestElement struct {
	Span
	Argument BindingPattern
}

type AssignmentPattern struct {
	Span
	Left  BindingPattern
	Right Expression
}

func (*AssignmentPattern) patternNode() {}

// ---------------------------------------------------------------------------
// Statements

type BlockStatement struct {
	Span
	stmt
	Body []Statement
}

type EmptyStatement struct {
	Span
	stmt
}

type ExpressionStatement struct {
	Span
	stmt
	Expression Expression
}

type IfStatement struct {
	Span
	stmt
	Test       Expression
	Consequent Statement
	Alternate  Statement
}

// ForStatement Init is nil, a *VariableDeclaration or an Expression.
type ForStatement struct {
	Span
	stmt
	Init   Node
	Test   Expression
	Update Expression
	Body   Statement
}

// ForInStatement Left is a *VariableDeclaration or an assignment target expression.
type ForInStatement struct {
	Span
	stmt
	Left  Node
	Right Expression
	Body  Statement
}

type ForOfStatement struct {
	Span
	stmt
	Await bool
	Left  Node
	Right Expression
	Body  Statement
}

type WhileStatement struct {
	Span
	stmt
	Test Expression
	Body Statement
}

type DoWhileStatement struct {
	Span
	stmt
	Body Statement
	Test Expression
}

type ContinueStatement struct {
	Span
	stmt
	Label *LabelIdentifier
}

type BreakStatement struct {
	Span
	stmt
	Label *LabelIdentifier
}

type ReturnStatement struct {
	Span
	stmt
	Argument Expression
}

type WithStatement struct {
	Span
	stmt
	Object Expression
	Body   Statement
}

type SwitchStatement struct {
	Span
	stmt
	Discriminant Expression
	Cases        []*SwitchCase
}

// SwitchCase with a nil Test is the default clause.
type SwitchCase struct {
	Span
	Test       Expression
	Consequent []Statement
}

type LabeledStatement struct {
	Span
	stmt
	Label *LabelIdentifier
	Body  Statement
}

type ThrowStatement struct {
	Span
	stmt
	Argument Expression
}

type TryStatement struct {
	Span
	stmt
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

// CatchClause Param is nil for `catch {}`.
type CatchClause struct {
	Span
	Param BindingPattern
	Body  *BlockStatement
}

type DebuggerStatement struct {
	Span
	stmt
}

// VariableKind is var, let or const.
type VariableKind uint8

const (
	VariableVar VariableKind = iota
	VariableLet
	VariableConst
)

func (k VariableKind) String() string {
	switch k {
	case VariableLet:
		return "let"
	case VariableConst:
		return "const"
	default:
		return "var"
	}
}

type VariableDeclaration struct {
	Span
	stmt
	Kind         VariableKind
	Declarations []*VariableDeclarator
}

type VariableDeclarator struct {
	Span
	Kind VariableKind
	ID   BindingPattern
	Init Expression
}

// ---------------------------------------------------------------------------
// Modules

// ImportDeclaration with nil Specifiers is a bare `import "source"`.
type ImportDeclaration struct {
	Span
	stmt
	Specifiers []ImportSpecifierKind
	Source     *StringLiteral
}

type ImportSpecifier struct {
	Span
	Imported ModuleExportName
	Local    *BindingIdentifier
}

func (*ImportSpecifier) importSpecifierNode() {}

type ImportDefaultSpecifier struct {
	Span
	Local *BindingIdentifier
}

func (*ImportDefaultSpecifier) importSpecifierNode() {}

type ImportNamespaceSpecifier struct {
	Span
	Local *BindingIdentifier
}

func (*ImportNamespaceSpecifier) importSpecifierNode() {}

// ExportNamedDeclaration carries either a Declaration or Specifiers.
type ExportNamedDeclaration struct {
	Span
	stmt
	Declaration Statement
	Specifiers  []*ExportSpecifier
	Source      *StringLiteral
}

type ExportSpecifier struct {
	Span
	Local    ModuleExportName
	Exported ModuleExportName
}

// ExportDefaultDeclaration Declaration is a *Function, *Class or any Expression.
type ExportDefaultDeclaration struct {
	Span
	stmt
	Declaration Node
}

type ExportAllDeclaration struct {
	Span
	stmt
	Exported ModuleExportName
	Source   *StringLiteral
}

// ModuleExportNameString returns the name an export or import specifier refers to.
func ModuleExportNameString(name ModuleExportName) string {
	switch n := name.(type) {
	case *IdentifierName:
		return n.Name
	case *IdentifierReference:
		return n.Name
	case *StringLiteral:
		return n.Value
	}
	return ""
}
