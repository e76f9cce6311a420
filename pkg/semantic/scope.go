package semantic

import "github.com/yaklabco/gojs/pkg/ast"

// ScopeID indexes the scope tree. The program scope is always 0.
type ScopeID uint32

// ScopeFlags describe what introduced a scope.
type ScopeFlags uint8

const (
	ScopeTop ScopeFlags = 1 << iota
	ScopeFunction
	ScopeArrow
	ScopeBlock
	ScopeCatch
	ScopeClass
	ScopeStaticBlock
)

// IsVarScope reports whether var declarations hoist to this scope.
func (f ScopeFlags) IsVarScope() bool {
	return f&(ScopeTop|ScopeFunction|ScopeArrow|ScopeStaticBlock) != 0
}

// Scope is one lexical environment.
type Scope struct {
	ID       ScopeID
	Parent   ScopeID
	Flags    ScopeFlags
	Node     NodeID
	Bindings map[string]ast.SymbolID
}

// ScopeTree holds every scope of a program.
type ScopeTree struct {
	scopes []Scope
}

func (t *ScopeTree) add(parent ScopeID, flags ScopeFlags, node NodeID) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, Scope{
		ID:       id,
		Parent:   parent,
		Flags:    flags,
		Node:     node,
		Bindings: make(map[string]ast.SymbolID),
	})
	return id
}

// Len returns the number of scopes.
func (t *ScopeTree) Len() int {
	return len(t.scopes)
}

// Root returns the program scope.
func (t *ScopeTree) Root() *Scope {
	return &t.scopes[0]
}

// Get returns the scope with the given id.
func (t *ScopeTree) Get(id ScopeID) *Scope {
	return &t.scopes[id]
}

// ParentOf returns the enclosing scope of id, or false for the root.
func (t *ScopeTree) ParentOf(id ScopeID) (*Scope, bool) {
	if id == 0 {
		return nil, false
	}
	return &t.scopes[t.scopes[id].Parent], true
}

// VarScope returns the nearest scope at or above id that var declarations hoist to.
func (t *ScopeTree) VarScope(id ScopeID) ScopeID {
	for id != 0 && !t.scopes[id].Flags.IsVarScope() {
		id = t.scopes[id].Parent
	}
	return id
}

// FindBinding resolves name from scope id outwards.
func (t *ScopeTree) FindBinding(id ScopeID, name string) (ast.SymbolID, bool) {
	for {
		scope := &t.scopes[id]
		if symbol, ok := scope.Bindings[name]; ok {
			return symbol, true
		}
		if id == 0 {
			return 0, false
		}
		id = scope.Parent
	}
}

// InFunction reports whether scope id sits inside a non-arrow function, where
// `arguments` is implicitly bound.
func (t *ScopeTree) InFunction(id ScopeID) bool {
	for {
		flags := t.scopes[id].Flags
		if flags&ScopeFunction != 0 {
			return true
		}
		if id == 0 {
			return false
		}
		id = t.scopes[id].Parent
	}
}
