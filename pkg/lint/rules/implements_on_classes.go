package rules

import (
	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/lint"
	"github.com/yaklabco/gojs/pkg/semantic"
)

const implementsOnClassesDocs = `### What it does

Reports an issue with any non-constructor function using ` + "`@implements`" + `.

### Why is this bad?

Constructor functions should be marked with ` + "`@class`" + ` or ` + "`@constructor`" + `,
or written as an ES6 class.

### Example

` + "```javascript" + `
// Passing
class Foo {
  /**
   * @implements {SomeClass}
   */
  constructor() {}
}
/**
 * @implements {SomeClass}
 * @class
 */
function quux () {}

// Failing
/**
 * @implements {SomeClass}
 */
function quux () {}
` + "```" + `
`

// ImplementsOnClassesRule reports @implements on functions that are not
// documented as constructors.
type ImplementsOnClassesRule struct {
	lint.BaseRule
}

// NewImplementsOnClassesRule creates a new implements-on-classes rule.
func NewImplementsOnClassesRule() *ImplementsOnClassesRule {
	return &ImplementsOnClassesRule{
		BaseRule: lint.NewBaseRule(
			"jsdoc/implements-on-classes",
			"Reports @implements on non-constructor functions",
			[]string{"jsdoc", "correctness"},
			false,
		),
	}
}

// Docs returns the rule documentation in markdown.
func (r *ImplementsOnClassesRule) Docs() string {
	return implementsOnClassesDocs
}

// Run checks the JSDoc attached to each function definition.
func (r *ImplementsOnClassesRule) Run(node *semantic.Node, ctx *lint.Context) {
	def, ok := functionDefinitionNode(node, ctx.Nodes())
	if !ok {
		return
	}
	docs, ok := ctx.JSDoc().GetAllByNode(def.ID)
	if !ok {
		return
	}

	settings := ctx.Settings().JSDoc
	implementsTag := settings.ResolveTagName("implements")
	classTag := settings.ResolveTagName("class")
	constructorTag := settings.ResolveTagName("constructor")

	var implementsSpan ast.Span
	implementsFound, constructorFound := false, false
	for _, doc := range docs {
		for _, tag := range doc.Tags() {
			name := tag.Kind.Name
			if name == implementsTag {
				implementsSpan = tag.Kind.Span
				implementsFound = true
			}
			if name == classTag || name == constructorTag {
				constructorFound = true
			}
		}
	}

	if implementsFound && !constructorFound {
		ctx.Diagnostic(lint.NewDiagnostic(
			"eslint-plugin-jsdoc(implements-on-classes): `@implements` used on a non-constructor function",
			implementsSpan,
		).WithHelp("Add `@class` tag or use ES6 class syntax.").Build())
	}
}

// functionDefinitionNode returns the node a function's JSDoc attaches to.
// Declarations carry their own docs; function and arrow expressions are
// documented on the enclosing variable declaration. Methods are not targets.
func functionDefinitionNode(node *semantic.Node, nodes *semantic.Nodes) (*semantic.Node, bool) {
	switch fn := node.Kind.(type) {
	case *ast.Function:
		if fn.Kind == ast.FunctionDeclaration {
			return node, true
		}
	case *ast.ArrowFunctionExpression:
	default:
		return nil, false
	}

	for parent := range nodes.Ancestors(node.ID) {
		switch parent.Kind.(type) {
		case *ast.VariableDeclarator, *ast.ParenthesizedExpression:
			continue
		case *ast.VariableDeclaration:
			return parent, true
		}
		return nil, false
	}
	return nil, false
}
