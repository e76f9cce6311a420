package semantic

import "github.com/yaklabco/gojs/pkg/ast"

// builder walks the tree once, filling the node arena, scope tree and symbol
// table. References are resolved after the walk so hoisted declarations bind
// regardless of order.
type builder struct {
	nodes   *Nodes
	scopes  *ScopeTree
	symbols *SymbolTable
	stack   []frame
	scope   ScopeID
}

type frame struct {
	node      NodeID
	prevScope ScopeID
	pushed    bool
}

func (b *builder) Visit(n ast.Node) ast.Visitor {
	if n == nil {
		top := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		if top.pushed {
			b.scope = top.prevScope
		}
		return nil
	}

	var parent NodeID
	if len(b.stack) > 0 {
		parent = b.stack[len(b.stack)-1].node
	}
	id := b.nodes.add(n, parent, b.scope)
	f := frame{node: id, prevScope: b.scope}

	b.declareOuter(n, id)
	if flags, ok := scopeFlagsFor(n); ok {
		if len(b.stack) == 0 {
			b.scope = b.scopes.add(0, flags, id)
		} else {
			b.scope = b.scopes.add(b.scope, flags, id)
		}
		f.pushed = true
	}
	b.declareInner(n, id)

	if ref, ok := n.(*ast.IdentifierReference); ok {
		b.reference(ref, id, parent)
	}

	b.stack = append(b.stack, f)
	return b
}

func scopeFlagsFor(n ast.Node) (ScopeFlags, bool) {
	switch n.(type) {
	case *ast.Program:
		return ScopeTop, true
	case *ast.Function:
		return ScopeFunction, true
	case *ast.ArrowFunctionExpression:
		return ScopeArrow, true
	case *ast.Class:
		return ScopeClass, true
	case *ast.StaticBlock:
		return ScopeStaticBlock, true
	case *ast.CatchClause:
		return ScopeCatch, true
	case *ast.BlockStatement, *ast.ForStatement, *ast.ForInStatement, *ast.ForOfStatement, *ast.SwitchStatement:
		return ScopeBlock, true
	}
	return 0, false
}

// declareOuter binds names that belong to the scope enclosing n.
func (b *builder) declareOuter(n ast.Node, id NodeID) {
	switch n := n.(type) {
	case *ast.Function:
		if n.Kind == ast.FunctionDeclaration && n.ID != nil {
			b.declare(b.scope, n.ID, SymbolFunction, id)
		}
	case *ast.Class:
		if n.Kind == ast.ClassDeclaration && n.ID != nil {
			b.declare(b.scope, n.ID, SymbolClass, id)
		}
	case *ast.VariableDeclarator:
		target := b.scope
		flags := SymbolVar
		switch n.Kind {
		case ast.VariableLet:
			flags = SymbolLet
		case ast.VariableConst:
			flags = SymbolConst
		default:
			target = b.scopes.VarScope(b.scope)
		}
		ast.BoundNames(n.ID, func(ident *ast.BindingIdentifier) {
			b.declare(target, ident, flags, id)
		})
	case *ast.ImportSpecifier:
		b.declare(0, n.Local, SymbolImport, id)
	case *ast.ImportDefaultSpecifier:
		b.declare(0, n.Local, SymbolImport, id)
	case *ast.ImportNamespaceSpecifier:
		b.declare(0, n.Local, SymbolImport, id)
	}
}

// declareInner binds names that live in the scope n just opened.
func (b *builder) declareInner(n ast.Node, id NodeID) {
	switch n := n.(type) {
	case *ast.Function:
		if n.Kind == ast.FunctionExpression && n.ID != nil {
			b.declare(b.scope, n.ID, SymbolFunction, id)
		}
		b.declareParams(n.Params, id)
	case *ast.ArrowFunctionExpression:
		b.declareParams(n.Params, id)
	case *ast.Class:
		if n.Kind == ast.ClassExpression && n.ID != nil {
			b.declare(b.scope, n.ID, SymbolClass, id)
		}
	case *ast.CatchClause:
		if n.Param != nil {
			ast.BoundNames(n.Param, func(ident *ast.BindingIdentifier) {
				b.declare(b.scope, ident, SymbolCatchParameter, id)
			})
		}
	}
}

func (b *builder) declareParams(params *ast.FormalParameters, id NodeID) {
	if params == nil {
		return
	}
	declare := func(ident *ast.BindingIdentifier) {
		b.declare(b.scope, ident, SymbolParameter, id)
	}
	for _, item := range params.Items {
		ast.BoundNames(item, declare)
	}
	if params.Rest != nil {
		ast.BoundNames(params.Rest.Argument, declare)
	}
}

func (b *builder) declare(scope ScopeID, ident *ast.BindingIdentifier, flags SymbolFlags, node NodeID) {
	bindings := b.scopes.Get(scope).Bindings
	if existing, ok := bindings[ident.Name]; ok {
		ident.SymbolID = existing
		return
	}
	symbol := b.symbols.addSymbol(Symbol{
		Name:  ident.Name,
		Span:  ident.Span,
		Flags: flags,
		Scope: scope,
		Node:  node,
	})
	bindings[ident.Name] = symbol
	ident.SymbolID = symbol
}

func (b *builder) reference(ref *ast.IdentifierReference, id, parent NodeID) {
	flags := ReferenceRead
	switch p := b.nodes.Get(parent).Kind.(type) {
	case *ast.AssignmentExpression:
		if p.Left == ref {
			flags = ReferenceWrite
			if p.Operator != ast.Assign {
				flags |= ReferenceRead
			}
		}
	case *ast.UpdateExpression:
		flags = ReferenceRead | ReferenceWrite
	case *ast.ForInStatement:
		if p.Left == ref {
			flags = ReferenceWrite
		}
	case *ast.ForOfStatement:
		if p.Left == ref {
			flags = ReferenceWrite
		}
	}

	ref.ReferenceID = b.symbols.addReference(Reference{
		Name:  ref.Name,
		Span:  ref.Span,
		Node:  id,
		Scope: b.scope,
		Flags: flags,
	})
}

func (b *builder) resolveReferences() {
	b.symbols.unresolved = make(map[string][]ast.ReferenceID)
	for i := range b.symbols.references {
		ref := &b.symbols.references[i]
		symbol, ok := b.scopes.FindBinding(ref.Scope, ref.Name)
		if !ok {
			b.symbols.unresolved[ref.Name] = append(b.symbols.unresolved[ref.Name], ref.ID)
			continue
		}
		ref.Symbol = symbol
		sym := b.symbols.Symbol(symbol)
		sym.References = append(sym.References, ref.ID)
	}
}
