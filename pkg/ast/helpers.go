package ast

func isNilNode(node Node) bool {
	return node == nil
}

// WithoutParentheses strips ParenthesizedExpression wrappers.
func WithoutParentheses(e Expression) Expression {
	for {
		p, ok := e.(*ParenthesizedExpression)
		if !ok {
			return e
		}
		e = p.Expression
	}
}

// IsFunctionLike reports whether e is a function or arrow function expression.
func IsFunctionLike(e Expression) bool {
	switch e.(type) {
	case *Function, *ArrowFunctionExpression:
		return true
	}
	return false
}

// IsMemberExpression reports whether e is a static, computed or private member access.
func IsMemberExpression(e Expression) bool {
	switch e.(type) {
	case *StaticMemberExpression, *ComputedMemberExpression, *PrivateFieldExpression:
		return true
	}
	return false
}

// IsOptionalChain reports whether e is part of an optional chain that has not been
// closed by parentheses.
func IsOptionalChain(e Expression) bool {
	for {
		switch n := e.(type) {
		case *CallExpression:
			if n.Optional {
				return true
			}
			e = n.Callee
		case *StaticMemberExpression:
			if n.Optional {
				return true
			}
			e = n.Object
		case *ComputedMemberExpression:
			if n.Optional {
				return true
			}
			e = n.Object
		case *PrivateFieldExpression:
			if n.Optional {
				return true
			}
			e = n.Object
		default:
			return false
		}
	}
}

// PropertyKeyName returns the static name of a property key, if it has one.
func PropertyKeyName(key PropertyKey) (string, bool) {
	switch k := key.(type) {
	case *IdentifierName:
		return k.Name, true
	case *PrivateIdentifier:
		return "#" + k.Name, true
	case *StringLiteral:
		return k.Value, true
	case *IdentifierReference:
		return k.Name, true
	}
	return "", false
}

// BoundNames calls f for every binding identifier declared by pattern.
func BoundNames(pattern BindingPattern, f func(*BindingIdentifier)) {
	switch p := pattern.(type) {
	case *BindingIdentifier:
		f(p)
	case *ObjectPattern:
		for _, prop := range p.Properties {
			BoundNames(prop.Value, f)
		}
		if p.Rest != nil {
			BoundNames(p.Rest.Argument, f)
		}
	case *ArrayPattern:
		for _, el := range p.Elements {
			if el != nil {
				BoundNames(el, f)
			}
		}
		if p.Rest != nil {
			BoundNames(p.Rest.Argument, f)
		}
	case *AssignmentPattern:
		BoundNames(p.Left, f)
	}
}
