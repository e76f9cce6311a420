package ast

// Visitor is called by Walk for each node. If Visit returns a non-nil visitor w,
// Walk visits each child of node with w, then calls w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree rooted at node in depth-first source order.
func Walk(v Visitor, node Node) {
	if isNilNode(node) {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkStatements(v, n.Body)

	// Statements
	case *BlockStatement:
		walkStatements(v, n.Body)
	case *ExpressionStatement:
		Walk(v, n.Expression)
	case *IfStatement:
		Walk(v, n.Test)
		Walk(v, n.Consequent)
		walkOptional(v, n.Alternate)
	case *ForStatement:
		walkOptional(v, n.Init)
		walkOptional(v, n.Test)
		walkOptional(v, n.Update)
		Walk(v, n.Body)
	case *ForInStatement:
		Walk(v, n.Left)
		Walk(v, n.Right)
		Walk(v, n.Body)
	case *ForOfStatement:
		Walk(v, n.Left)
		Walk(v, n.Right)
		Walk(v, n.Body)
	case *WhileStatement:
		Walk(v, n.Test)
		Walk(v, n.Body)
	case *DoWhileStatement:
		Walk(v, n.Body)
		Walk(v, n.Test)
	case *ContinueStatement:
		if n.Label != nil {
			Walk(v, n.Label)
		}
	case *BreakStatement:
		if n.Label != nil {
			Walk(v, n.Label)
		}
	case *ReturnStatement:
		walkOptional(v, n.Argument)
	case *WithStatement:
		Walk(v, n.Object)
		Walk(v, n.Body)
	case *SwitchStatement:
		Walk(v, n.Discriminant)
		for _, c := range n.Cases {
			Walk(v, c)
		}
	case *SwitchCase:
		walkOptional(v, n.Test)
		walkStatements(v, n.Consequent)
	case *LabeledStatement:
		Walk(v, n.Label)
		Walk(v, n.Body)
	case *ThrowStatement:
		Walk(v, n.Argument)
	case *TryStatement:
		Walk(v, n.Block)
		if n.Handler != nil {
			Walk(v, n.Handler)
		}
		if n.Finalizer != nil {
			Walk(v, n.Finalizer)
		}
	case *CatchClause:
		walkOptional(v, n.Param)
		Walk(v, n.Body)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			Walk(v, d)
		}
	case *VariableDeclarator:
		Walk(v, n.ID)
		walkOptional(v, n.Init)

	// Modules
	case *ImportDeclaration:
		for _, s := range n.Specifiers {
			Walk(v, s)
		}
		Walk(v, n.Source)
	case *ImportSpecifier:
		Walk(v, n.Imported)
		Walk(v, n.Local)
	case *ImportDefaultSpecifier:
		Walk(v, n.Local)
	case *ImportNamespaceSpecifier:
		Walk(v, n.Local)
	case *ExportNamedDeclaration:
		walkOptional(v, n.Declaration)
		for _, s := range n.Specifiers {
			Walk(v, s)
		}
		if n.Source != nil {
			Walk(v, n.Source)
		}
	case *ExportSpecifier:
		Walk(v, n.Local)
		if n.Exported != n.Local {
			Walk(v, n.Exported)
		}
	case *ExportDefaultDeclaration:
		Walk(v, n.Declaration)
	case *ExportAllDeclaration:
		walkOptional(v, n.Exported)
		Walk(v, n.Source)

	// Functions and classes
	case *Function:
		if n.ID != nil {
			Walk(v, n.ID)
		}
		Walk(v, n.Params)
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *FormalParameters:
		for _, p := range n.Items {
			Walk(v, p)
		}
		if n.Rest != nil {
			Walk(v, n.Rest)
		}
	case *FunctionBody:
		walkStatements(v, n.Statements)
	case *ArrowFunctionExpression:
		Walk(v, n.Params)
		Walk(v, n.Body)
	case *Class:
		if n.ID != nil {
			Walk(v, n.ID)
		}
		walkOptional(v, n.SuperClass)
		Walk(v, n.Body)
	case *ClassBody:
		for _, e := range n.Elements {
			Walk(v, e)
		}
	case *MethodDefinition:
		Walk(v, n.Key)
		Walk(v, n.Value)
	case *PropertyDefinition:
		Walk(v, n.Key)
		walkOptional(v, n.Value)
	case *StaticBlock:
		walkStatements(v, n.Body)

	// Patterns
	case *ObjectPattern:
		for _, p := range n.Properties {
			Walk(v, p)
		}
		if n.Rest != nil {
			Walk(v, n.Rest)
		}
	case *BindingProperty:
		if !n.Shorthand {
			Walk(v, n.Key)
		}
		Walk(v, n.Value)
	case *ArrayPattern:
		for _, e := range n.Elements {
			walkOptional(v, e)
		}
		if n.Rest != nil {
			Walk(v, n.Rest)
		}
	case *RestElement:
		Walk(v, n.Argument)
	case *AssignmentPattern:
		Walk(v, n.Left)
		Walk(v, n.Right)

	// Expressions
	case *TemplateLiteral:
		for i, q := range n.Quasis {
			Walk(v, q)
			if i < len(n.Expressions) {
				Walk(v, n.Expressions[i])
			}
		}
	case *ArrayExpression:
		walkExpressions(v, n.Elements)
	case *SpreadElement:
		Walk(v, n.Argument)
	case *ObjectExpression:
		for _, p := range n.Properties {
			Walk(v, p)
		}
	case *ObjectProperty:
		if !n.Shorthand {
			Walk(v, n.Key)
		}
		Walk(v, n.Value)
	case *ParenthesizedExpression:
		Walk(v, n.Expression)
	case *SequenceExpression:
		walkExpressions(v, n.Expressions)
	case *UnaryExpression:
		Walk(v, n.Argument)
	case *UpdateExpression:
		Walk(v, n.Argument)
	case *BinaryExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *AssignmentExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *ConditionalExpression:
		Walk(v, n.Test)
		Walk(v, n.Consequent)
		Walk(v, n.Alternate)
	case *CallExpression:
		Walk(v, n.Callee)
		walkExpressions(v, n.Arguments)
	case *NewExpression:
		Walk(v, n.Callee)
		walkExpressions(v, n.Arguments)
	case *StaticMemberExpression:
		Walk(v, n.Object)
		Walk(v, n.Property)
	case *ComputedMemberExpression:
		Walk(v, n.Object)
		Walk(v, n.Expression)
	case *PrivateFieldExpression:
		Walk(v, n.Object)
		Walk(v, n.Field)
	case *TaggedTemplateExpression:
		Walk(v, n.Tag)
		Walk(v, n.Quasi)
	case *AwaitExpression:
		Walk(v, n.Argument)
	case *YieldExpression:
		walkOptional(v, n.Argument)
	case *MetaProperty:
		Walk(v, n.Meta)
		Walk(v, n.Property)
	case *ImportExpression:
		Walk(v, n.Source)
	}

	v.Visit(nil)
}

func walkStatements(v Visitor, list []Statement) {
	for _, s := range list {
		Walk(v, s)
	}
}

func walkExpressions(v Visitor, list []Expression) {
	for _, e := range list {
		walkOptional(v, e)
	}
}

func walkOptional(v Visitor, node Node) {
	if !isNilNode(node) {
		Walk(v, node)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree calling f for each node. If f returns true, Inspect
// descends into the node's children; it calls f(nil) after the children.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
