package semantic

import "github.com/yaklabco/gojs/pkg/ast"

// SymbolFlags describe how a symbol was declared.
type SymbolFlags uint16

const (
	SymbolVar SymbolFlags = 1 << iota
	SymbolLet
	SymbolConst
	SymbolFunction
	SymbolClass
	SymbolParameter
	SymbolCatchParameter
	SymbolImport
)

// Symbol is a declared binding.
type Symbol struct {
	ID         ast.SymbolID
	Name       string
	Span       ast.Span
	Flags      SymbolFlags
	Scope      ScopeID
	Node       NodeID
	References []ast.ReferenceID
}

// ReferenceFlags tell reads from writes.
type ReferenceFlags uint8

const (
	ReferenceRead ReferenceFlags = 1 << iota
	ReferenceWrite
)

// Reference is one use of an identifier.
type Reference struct {
	ID     ast.ReferenceID
	Name   string
	Span   ast.Span
	Node   NodeID
	Scope  ScopeID
	Symbol ast.SymbolID
	Flags  ReferenceFlags
}

// IsResolved reports whether the reference binds to a declared symbol.
func (r *Reference) IsResolved() bool {
	return r.Symbol != 0
}

// SymbolTable holds symbols and references. Ids start at 1 so the zero value
// on syntax nodes means unresolved.
type SymbolTable struct {
	symbols    []Symbol
	references []Reference
	unresolved map[string][]ast.ReferenceID
}

func (t *SymbolTable) addSymbol(sym Symbol) ast.SymbolID {
	sym.ID = ast.SymbolID(len(t.symbols) + 1)
	t.symbols = append(t.symbols, sym)
	return sym.ID
}

func (t *SymbolTable) addReference(ref Reference) ast.ReferenceID {
	ref.ID = ast.ReferenceID(len(t.references) + 1)
	t.references = append(t.references, ref)
	return ref.ID
}

// Len returns the number of symbols.
func (t *SymbolTable) Len() int {
	return len(t.symbols)
}

// Symbol returns the symbol with the given id.
func (t *SymbolTable) Symbol(id ast.SymbolID) *Symbol {
	return &t.symbols[id-1]
}

// Symbols returns every symbol in declaration order.
func (t *SymbolTable) Symbols() []Symbol {
	return t.symbols
}

// Reference returns the reference with the given id.
func (t *SymbolTable) Reference(id ast.ReferenceID) *Reference {
	return &t.references[id-1]
}

// References returns every reference in source order.
func (t *SymbolTable) References() []Reference {
	return t.references
}

// Unresolved returns the references that bind to no declaration, keyed by name.
func (t *SymbolTable) Unresolved() map[string][]ast.ReferenceID {
	return t.unresolved
}
