package jsparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/gojs/pkg/ast"
)

func (c *converter) expression(n *sitter.Node) ast.Expression {
	if n == nil {
		return &ast.NullLiteral{}
	}
	span := c.span(n)

	switch n.Type() {
	case "parenthesized_expression":
		inner := c.expression(firstChild(n))
		if ast.IsOptionalChain(inner) {
			return &ast.ParenthesizedExpression{Span: span, Expression: inner}
		}
		return inner

	case "identifier", "undefined":
		return &ast.IdentifierReference{Span: span, Name: c.text(n)}

	case "this":
		return &ast.ThisExpression{Span: span}

	case "super":
		return &ast.Super{Span: span}

	case "true":
		return &ast.BooleanLiteral{Span: span, Value: true}

	case "false":
		return &ast.BooleanLiteral{Span: span, Value: false}

	case "null":
		return &ast.NullLiteral{Span: span}

	case "number":
		raw := c.text(n)
		if strings.HasSuffix(raw, "n") {
			return &ast.BigIntLiteral{Span: span, Raw: raw}
		}
		value, ok := parseNumber(raw)
		if !ok {
			c.fail(n, "invalid number %q", raw)
		}
		return &ast.NumericLiteral{Span: span, Value: value, Raw: raw}

	case "string":
		return c.stringLiteral(n)

	case "template_string":
		return c.templateLiteral(n)

	case "regex":
		re := &ast.RegExpLiteral{Span: span}
		if pattern := n.ChildByFieldName("pattern"); pattern != nil {
			re.Pattern = c.text(pattern)
		}
		if flags := n.ChildByFieldName("flags"); flags != nil {
			re.Flags = c.text(flags)
		}
		return re

	case "array":
		return c.array(n)

	case "object":
		return c.object(n)

	case "function_expression", "function", "generator_function":
		return c.function(n, ast.FunctionExpression)

	case "arrow_function":
		return c.arrowFunction(n)

	case "class":
		return c.class(n, ast.ClassExpression)

	case "call_expression":
		return c.call(n)

	case "new_expression":
		ne := &ast.NewExpression{Span: span, Callee: c.expression(n.ChildByFieldName("constructor"))}
		if args := n.ChildByFieldName("arguments"); args != nil {
			ne.Arguments = c.arguments(args)
		}
		return ne

	case "member_expression":
		object := c.expression(n.ChildByFieldName("object"))
		optional := n.ChildByFieldName("optional_chain") != nil
		property := n.ChildByFieldName("property")
		if property.Type() == "private_property_identifier" {
			return &ast.PrivateFieldExpression{
				Span:     span,
				Object:   object,
				Field:    &ast.PrivateIdentifier{Span: c.span(property), Name: strings.TrimPrefix(c.text(property), "#")},
				Optional: optional,
			}
		}
		return &ast.StaticMemberExpression{
			Span:     span,
			Object:   object,
			Property: &ast.IdentifierName{Span: c.span(property), Name: c.text(property)},
			Optional: optional,
		}

	case "subscript_expression":
		return &ast.ComputedMemberExpression{
			Span:       span,
			Object:     c.expression(n.ChildByFieldName("object")),
			Expression: c.expression(n.ChildByFieldName("index")),
			Optional:   n.ChildByFieldName("optional_chain") != nil,
		}

	case "assignment_expression":
		return &ast.AssignmentExpression{
			Span:     span,
			Operator: ast.Assign,
			Left:     c.assignmentTarget(n.ChildByFieldName("left")),
			Right:    c.expression(n.ChildByFieldName("right")),
		}

	case "augmented_assignment_expression":
		operator := n.ChildByFieldName("operator")
		op, ok := ast.AssignmentOperatorFromString(c.text(operator))
		if !ok {
			c.fail(operator, "unknown assignment operator %q", c.text(operator))
		}
		return &ast.AssignmentExpression{
			Span:     span,
			Operator: op,
			Left:     c.assignmentTarget(n.ChildByFieldName("left")),
			Right:    c.expression(n.ChildByFieldName("right")),
		}

	case "binary_expression":
		left := n.ChildByFieldName("left")
		if left.Type() == "private_property_identifier" {
			c.fail(left, "private brand checks are not supported")
		}
		operator := n.ChildByFieldName("operator")
		op, ok := ast.BinaryOperatorFromString(c.text(operator))
		if !ok {
			c.fail(operator, "unknown binary operator %q", c.text(operator))
		}
		return &ast.BinaryExpression{
			Span:     span,
			Left:     c.expression(left),
			Operator: op,
			Right:    c.expression(n.ChildByFieldName("right")),
		}

	case "unary_expression":
		operator := n.ChildByFieldName("operator")
		op, ok := ast.UnaryOperatorFromString(c.text(operator))
		if !ok {
			c.fail(operator, "unknown unary operator %q", c.text(operator))
		}
		return &ast.UnaryExpression{
			Span:     span,
			Operator: op,
			Argument: c.expression(n.ChildByFieldName("argument")),
		}

	case "update_expression":
		operator := n.ChildByFieldName("operator")
		op := ast.UpdateIncrement
		if c.text(operator) == "--" {
			op = ast.UpdateDecrement
		}
		return &ast.UpdateExpression{
			Span:     span,
			Operator: op,
			Prefix:   operator.StartByte() == n.StartByte(),
			Argument: c.assignmentTarget(n.ChildByFieldName("argument")),
		}

	case "ternary_expression":
		return &ast.ConditionalExpression{
			Span:       span,
			Test:       c.expression(n.ChildByFieldName("condition")),
			Consequent: c.expression(n.ChildByFieldName("consequence")),
			Alternate:  c.expression(n.ChildByFieldName("alternative")),
		}

	case "sequence_expression":
		seq := &ast.SequenceExpression{Span: span}
		c.flattenSequence(n, seq)
		return seq

	case "await_expression":
		return &ast.AwaitExpression{Span: span, Argument: c.expression(firstChild(n))}

	case "yield_expression":
		y := &ast.YieldExpression{Span: span, Delegate: hasToken(n, "*")}
		if arg := firstChild(n); arg != nil {
			y.Argument = c.expression(arg)
		}
		return y

	case "spread_element":
		return &ast.SpreadElement{Span: span, Argument: c.expression(firstChild(n))}

	case "meta_property":
		meta, property, _ := strings.Cut(c.text(n), ".")
		meta = strings.TrimSpace(meta)
		property = strings.TrimSpace(property)
		start := n.StartByte()
		end := n.EndByte()
		return &ast.MetaProperty{
			Span:     span,
			Meta:     &ast.IdentifierName{Span: ast.NewSpan(start, start+uint32(len(meta))), Name: meta},
			Property: &ast.IdentifierName{Span: ast.NewSpan(end-uint32(len(property)), end), Name: property},
		}
	}

	if strings.HasPrefix(n.Type(), "jsx_") {
		c.fail(n, "JSX is not supported")
	} else {
		c.fail(n, "unexpected %s", n.Type())
	}
	return &ast.NullLiteral{Span: span}
}

func (c *converter) flattenSequence(n *sitter.Node, seq *ast.SequenceExpression) {
	for _, child := range children(n) {
		if child.Type() == "sequence_expression" {
			c.flattenSequence(child, seq)
			continue
		}
		seq.Expressions = append(seq.Expressions, c.expression(child))
	}
}

func (c *converter) stringLiteral(n *sitter.Node) *ast.StringLiteral {
	raw := c.text(n)
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	return &ast.StringLiteral{Span: c.span(n), Value: cookString(raw)}
}

// templateLiteral splits the template source at its substitutions; quasis keep
// their raw text.
func (c *converter) templateLiteral(n *sitter.Node) *ast.TemplateLiteral {
	tpl := &ast.TemplateLiteral{Span: c.span(n)}

	chunkStart := n.StartByte() + 1
	for _, child := range children(n) {
		if child.Type() != "template_substitution" {
			continue
		}
		tpl.Quasis = append(tpl.Quasis, &ast.TemplateElement{
			Span: ast.NewSpan(chunkStart, child.StartByte()),
			Raw:  c.source[chunkStart:child.StartByte()],
		})
		tpl.Expressions = append(tpl.Expressions, c.expression(firstChild(child)))
		chunkStart = child.EndByte()
	}

	end := n.EndByte() - 1
	tpl.Quasis = append(tpl.Quasis, &ast.TemplateElement{
		Span: ast.NewSpan(chunkStart, end),
		Raw:  c.source[chunkStart:end],
		Tail: true,
	})
	return tpl
}

// array converts an array literal, recording holes as Elision nodes.
func (c *converter) array(n *sitter.Node) *ast.ArrayExpression {
	arr := &ast.ArrayExpression{Span: c.span(n), Elements: []ast.Expression{}}

	expectElement := true
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		switch {
		case !child.IsNamed() && child.Type() == ",":
			if expectElement {
				arr.Elements = append(arr.Elements, &ast.Elision{Span: ast.NewSpan(child.StartByte(), child.StartByte())})
			}
			expectElement = true
		case child.IsNamed():
			arr.Elements = append(arr.Elements, c.expression(child))
			expectElement = false
		}
	}
	return arr
}

func (c *converter) object(n *sitter.Node) *ast.ObjectExpression {
	obj := &ast.ObjectExpression{Span: c.span(n), Properties: []ast.ObjectPropertyKind{}}

	for _, child := range children(n) {
		span := c.span(child)
		switch child.Type() {
		case "pair":
			key, computed := c.propertyKey(child.ChildByFieldName("key"))
			obj.Properties = append(obj.Properties, &ast.ObjectProperty{
				Span:     span,
				Kind:     ast.PropertyInit,
				Key:      key,
				Value:    c.expression(child.ChildByFieldName("value")),
				Computed: computed,
			})
		case "shorthand_property_identifier":
			obj.Properties = append(obj.Properties, &ast.ObjectProperty{
				Span:      span,
				Kind:      ast.PropertyInit,
				Key:       &ast.IdentifierName{Span: span, Name: c.text(child)},
				Value:     &ast.IdentifierReference{Span: span, Name: c.text(child)},
				Shorthand: true,
			})
		case "spread_element":
			obj.Properties = append(obj.Properties, c.expression(child).(*ast.SpreadElement))
		case "method_definition":
			kind, static := methodKind(child)
			if static {
				c.fail(child, "static method in object literal")
			}
			key, computed := c.propertyKey(child.ChildByFieldName("name"))
			prop := &ast.ObjectProperty{
				Span:     span,
				Key:      key,
				Value:    c.methodFunction(child),
				Method:   kind == ast.MethodMethod,
				Computed: computed,
			}
			switch kind {
			case ast.MethodGet:
				prop.Kind = ast.PropertyGet
			case ast.MethodSet:
				prop.Kind = ast.PropertySet
			}
			obj.Properties = append(obj.Properties, prop)
		default:
			c.fail(child, "unexpected %s in object literal", child.Type())
		}
	}
	return obj
}

func (c *converter) call(n *sitter.Node) ast.Expression {
	span := c.span(n)
	callee := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")

	if callee.Type() == "import" {
		list := c.arguments(args)
		if len(list) != 1 {
			c.fail(n, "import() with options is not supported")
			return &ast.NullLiteral{Span: span}
		}
		return &ast.ImportExpression{Span: span, Source: list[0]}
	}

	if args.Type() == "template_string" {
		return &ast.TaggedTemplateExpression{
			Span:  span,
			Tag:   c.expression(callee),
			Quasi: c.templateLiteral(args),
		}
	}

	return &ast.CallExpression{
		Span:      span,
		Callee:    c.expression(callee),
		Arguments: c.arguments(args),
		Optional:  n.ChildByFieldName("optional_chain") != nil,
	}
}

func (c *converter) arguments(n *sitter.Node) []ast.Expression {
	list := children(n)
	out := make([]ast.Expression, 0, len(list))
	for _, child := range list {
		out = append(out, c.expression(child))
	}
	return out
}

func (c *converter) function(n *sitter.Node, kind ast.FunctionKind) *ast.Function {
	fn := &ast.Function{
		Span:      c.span(n),
		Kind:      kind,
		Async:     hasToken(n, "async"),
		Generator: hasToken(n, "*"),
		Params:    c.formalParameters(n.ChildByFieldName("parameters")),
		Body:      c.functionBody(n.ChildByFieldName("body")),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		fn.ID = c.bindingIdentifier(name)
	}
	return fn
}

// methodFunction builds the function value of a method. It spans the whole
// method so that annotations and diagnostics anchored on the method find it.
func (c *converter) methodFunction(n *sitter.Node) *ast.Function {
	return &ast.Function{
		Span:      c.span(n),
		Kind:      ast.FunctionExpression,
		Async:     hasToken(n, "async"),
		Generator: hasToken(n, "*"),
		Params:    c.formalParameters(n.ChildByFieldName("parameters")),
		Body:      c.functionBody(n.ChildByFieldName("body")),
	}
}

func (c *converter) formalParameters(n *sitter.Node) *ast.FormalParameters {
	params := &ast.FormalParameters{Items: []ast.BindingPattern{}}
	if n == nil {
		return params
	}
	params.Span = c.span(n)
	for _, child := range children(n) {
		if child.Type() == "rest_pattern" {
			params.Rest = c.restElement(child)
			continue
		}
		params.Items = append(params.Items, c.bindingPattern(child))
	}
	return params
}

func (c *converter) functionBody(n *sitter.Node) *ast.FunctionBody {
	if n == nil {
		return nil
	}
	return &ast.FunctionBody{Span: c.span(n), Statements: c.statements(children(n))}
}

func (c *converter) arrowFunction(n *sitter.Node) *ast.ArrowFunctionExpression {
	arrow := &ast.ArrowFunctionExpression{Span: c.span(n), Async: hasToken(n, "async")}

	if param := n.ChildByFieldName("parameter"); param != nil {
		arrow.Params = &ast.FormalParameters{
			Span:  c.span(param),
			Items: []ast.BindingPattern{c.bindingIdentifier(param)},
		}
	} else {
		arrow.Params = c.formalParameters(n.ChildByFieldName("parameters"))
	}

	body := n.ChildByFieldName("body")
	if body.Type() == "statement_block" {
		arrow.Body = c.functionBody(body)
		return arrow
	}

	value := c.expression(body)
	arrow.Expression = true
	arrow.Body = &ast.FunctionBody{
		Span:       c.span(body),
		Statements: []ast.Statement{&ast.ExpressionStatement{Span: c.span(body), Expression: value}},
	}
	return arrow
}

func (c *converter) class(n *sitter.Node, kind ast.ClassKind) *ast.Class {
	class := &ast.Class{Span: c.span(n), Kind: kind}
	if name := n.ChildByFieldName("name"); name != nil {
		class.ID = c.bindingIdentifier(name)
	}

	for _, child := range children(n) {
		switch child.Type() {
		case "class_heritage":
			class.SuperClass = c.expression(firstChild(child))
		case "decorator":
			c.fail(child, "decorators are not supported")
		}
	}

	body := n.ChildByFieldName("body")
	class.Body = &ast.ClassBody{Span: c.span(body), Elements: []ast.ClassElement{}}
	for _, member := range children(body) {
		if el := c.classElement(member); el != nil {
			class.Body.Elements = append(class.Body.Elements, el)
		}
	}
	return class
}

func (c *converter) classElement(n *sitter.Node) ast.ClassElement {
	span := c.span(n)

	switch n.Type() {
	case "method_definition":
		kind, static := methodKind(n)
		key, computed := c.propertyKey(n.ChildByFieldName("name"))
		if kind == ast.MethodMethod && !static && !computed {
			if name, ok := ast.PropertyKeyName(key); ok && name == "constructor" {
				kind = ast.MethodConstructor
			}
		}
		return &ast.MethodDefinition{
			Span:     span,
			Kind:     kind,
			Static:   static,
			Computed: computed,
			Key:      key,
			Value:    c.methodFunction(n),
		}

	case "field_definition", "public_field_definition":
		key, computed := c.propertyKey(n.ChildByFieldName("property"))
		def := &ast.PropertyDefinition{
			Span:     span,
			Static:   hasToken(n, "static"),
			Computed: computed,
			Key:      key,
		}
		if value := n.ChildByFieldName("value"); value != nil {
			def.Value = c.expression(value)
		}
		return def

	case "class_static_block":
		block := n.ChildByFieldName("body")
		return &ast.StaticBlock{Span: span, Body: c.statements(children(block))}
	}

	if n.Type() == "decorator" {
		c.fail(n, "decorators are not supported")
	} else {
		c.fail(n, "unexpected %s in class body", n.Type())
	}
	return nil
}

// methodKind reads the modifier tokens of a method definition.
func methodKind(n *sitter.Node) (ast.MethodKind, bool) {
	kind := ast.MethodMethod
	switch {
	case hasToken(n, "get"):
		kind = ast.MethodGet
	case hasToken(n, "set"):
		kind = ast.MethodSet
	}
	return kind, hasToken(n, "static")
}

// propertyKey converts a property name and reports whether it is computed.
func (c *converter) propertyKey(n *sitter.Node) (ast.PropertyKey, bool) {
	span := c.span(n)
	switch n.Type() {
	case "property_identifier", "identifier", "shorthand_property_identifier_pattern", "shorthand_property_identifier":
		return &ast.IdentifierName{Span: span, Name: c.text(n)}, false
	case "private_property_identifier":
		return &ast.PrivateIdentifier{Span: span, Name: strings.TrimPrefix(c.text(n), "#")}, false
	case "computed_property_name":
		return c.expression(firstChild(n)), true
	}
	return c.expression(n), false
}

func (c *converter) bindingIdentifier(n *sitter.Node) *ast.BindingIdentifier {
	return &ast.BindingIdentifier{Span: c.span(n), Name: c.text(n)}
}

func (c *converter) bindingPattern(n *sitter.Node) ast.BindingPattern {
	span := c.span(n)

	switch n.Type() {
	case "identifier", "undefined", "shorthand_property_identifier_pattern":
		return c.bindingIdentifier(n)

	case "assignment_pattern", "object_assignment_pattern":
		return &ast.AssignmentPattern{
			Span:  span,
			Left:  c.bindingPattern(n.ChildByFieldName("left")),
			Right: c.expression(n.ChildByFieldName("right")),
		}

	case "object_pattern":
		pattern := &ast.ObjectPattern{Span: span, Properties: []*ast.BindingProperty{}}
		for _, child := range children(n) {
			childSpan := c.span(child)
			switch child.Type() {
			case "shorthand_property_identifier_pattern":
				pattern.Properties = append(pattern.Properties, &ast.BindingProperty{
					Span:      childSpan,
					Key:       &ast.IdentifierName{Span: childSpan, Name: c.text(child)},
					Value:     c.bindingIdentifier(child),
					Shorthand: true,
				})
			case "object_assignment_pattern":
				left := child.ChildByFieldName("left")
				key, _ := c.propertyKey(left)
				pattern.Properties = append(pattern.Properties, &ast.BindingProperty{
					Span:      childSpan,
					Key:       key,
					Value:     c.bindingPattern(child),
					Shorthand: left.Type() == "shorthand_property_identifier_pattern",
				})
			case "pair_pattern":
				key, computed := c.propertyKey(child.ChildByFieldName("key"))
				pattern.Properties = append(pattern.Properties, &ast.BindingProperty{
					Span:     childSpan,
					Key:      key,
					Value:    c.bindingPattern(child.ChildByFieldName("value")),
					Computed: computed,
				})
			case "rest_pattern":
				pattern.Rest = c.restElement(child)
			default:
				c.fail(child, "unexpected %s in object pattern", child.Type())
			}
		}
		return pattern

	case "array_pattern":
		pattern := &ast.ArrayPattern{Span: span, Elements: []ast.BindingPattern{}}
		expectElement := true
		for i := range int(n.ChildCount()) {
			child := n.Child(i)
			if child == nil || child.Type() == "comment" {
				continue
			}
			switch {
			case !child.IsNamed() && child.Type() == ",":
				if expectElement {
					pattern.Elements = append(pattern.Elements, nil)
				}
				expectElement = true
			case child.Type() == "rest_pattern":
				pattern.Rest = c.restElement(child)
				expectElement = false
			case child.IsNamed():
				pattern.Elements = append(pattern.Elements, c.bindingPattern(child))
				expectElement = false
			}
		}
		return pattern
	}

	c.fail(n, "unexpected %s in binding pattern", n.Type())
	return &ast.BindingIdentifier{Span: span}
}

func (c *converter) restElement(n *sitter.Node) *ast.RestElement {
	return &ast.RestElement{Span: c.span(n), Argument: c.bindingPattern(firstChild(n))}
}

// assignmentTarget converts the left side of an assignment. Destructuring
// targets are kept in their expression shapes: object and array literals,
// with defaults as assignments and rest as spread.
func (c *converter) assignmentTarget(n *sitter.Node) ast.Expression {
	span := c.span(n)

	switch n.Type() {
	case "shorthand_property_identifier_pattern":
		return &ast.IdentifierReference{Span: span, Name: c.text(n)}

	case "assignment_pattern", "object_assignment_pattern":
		return &ast.AssignmentExpression{
			Span:     span,
			Operator: ast.Assign,
			Left:     c.assignmentTarget(n.ChildByFieldName("left")),
			Right:    c.expression(n.ChildByFieldName("right")),
		}

	case "rest_pattern":
		return &ast.SpreadElement{Span: span, Argument: c.assignmentTarget(firstChild(n))}

	case "object_pattern":
		obj := &ast.ObjectExpression{Span: span, Properties: []ast.ObjectPropertyKind{}}
		for _, child := range children(n) {
			childSpan := c.span(child)
			switch child.Type() {
			case "shorthand_property_identifier_pattern":
				obj.Properties = append(obj.Properties, &ast.ObjectProperty{
					Span:      childSpan,
					Key:       &ast.IdentifierName{Span: childSpan, Name: c.text(child)},
					Value:     c.assignmentTarget(child),
					Shorthand: true,
				})
			case "object_assignment_pattern":
				left := child.ChildByFieldName("left")
				key, _ := c.propertyKey(left)
				obj.Properties = append(obj.Properties, &ast.ObjectProperty{
					Span:      childSpan,
					Key:       key,
					Value:     c.assignmentTarget(child),
					Shorthand: left.Type() == "shorthand_property_identifier_pattern",
				})
			case "pair_pattern":
				key, computed := c.propertyKey(child.ChildByFieldName("key"))
				obj.Properties = append(obj.Properties, &ast.ObjectProperty{
					Span:     childSpan,
					Key:      key,
					Value:    c.assignmentTarget(child.ChildByFieldName("value")),
					Computed: computed,
				})
			case "rest_pattern":
				obj.Properties = append(obj.Properties, c.assignmentTarget(child).(*ast.SpreadElement))
			default:
				c.fail(child, "unexpected %s in object pattern", child.Type())
			}
		}
		return obj

	case "array_pattern":
		arr := &ast.ArrayExpression{Span: span, Elements: []ast.Expression{}}
		expectElement := true
		for i := range int(n.ChildCount()) {
			child := n.Child(i)
			if child == nil || child.Type() == "comment" {
				continue
			}
			switch {
			case !child.IsNamed() && child.Type() == ",":
				if expectElement {
					arr.Elements = append(arr.Elements, &ast.Elision{Span: ast.NewSpan(child.StartByte(), child.StartByte())})
				}
				expectElement = true
			case child.IsNamed():
				arr.Elements = append(arr.Elements, c.assignmentTarget(child))
				expectElement = false
			}
		}
		return arr
	}

	return c.expression(n)
}
