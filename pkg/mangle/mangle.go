// Package mangle assigns short names to local bindings for minified output.
package mangle

import (
	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/semantic"
)

// Options controls which bindings are renamed.
type Options struct {
	// TopLevel also renames program-level bindings that are not exported.
	TopLevel bool
}

// Mangler maps symbols to their new names. It satisfies codegen.Mangler.
type Mangler struct {
	symbols *semantic.SymbolTable
	names   map[ast.SymbolID]string
}

// Build computes names for sem. Scopes that can see each other never share a
// name; sibling scopes reuse the same short names. A direct reference to eval
// disables renaming entirely, since evaluated code may name any binding.
func Build(sem *semantic.Semantic, opts Options) *Mangler {
	m := &Mangler{
		symbols: sem.Symbols(),
		names:   make(map[ast.SymbolID]string),
	}
	unresolved := sem.Symbols().Unresolved()
	if _, ok := unresolved["eval"]; ok {
		return m
	}

	reserved := make(map[string]struct{}, len(keywords)+len(unresolved))
	for _, kw := range keywords {
		reserved[kw] = struct{}{}
	}
	for name := range unresolved {
		reserved[name] = struct{}{}
	}

	module := sem.ModuleRecord()
	byScope := make(map[semantic.ScopeID][]ast.SymbolID)
	for _, sym := range sem.Symbols().Symbols() {
		if !renamable(sym, module, opts) {
			reserved[sym.Name] = struct{}{}
			continue
		}
		byScope[sym.Scope] = append(byScope[sym.Scope], sym.ID)
	}

	gen := &nameGenerator{reserved: reserved}
	scopes := sem.Scopes()
	next := make([]int, scopes.Len())
	for id := range scopes.Len() {
		scope := scopes.Get(semantic.ScopeID(id))
		slot := 0
		if id != 0 {
			slot = next[scope.Parent]
		}
		for _, symbol := range byScope[scope.ID] {
			m.names[symbol] = gen.name(slot)
			slot++
		}
		next[id] = slot
	}
	return m
}

func renamable(sym semantic.Symbol, module *semantic.ModuleRecord, opts Options) bool {
	if sym.Scope != 0 {
		return true
	}
	if !opts.TopLevel {
		return false
	}
	for _, entry := range module.LocalExportEntries {
		if entry.LocalName == sym.Name {
			return false
		}
	}
	return true
}

// SymbolName returns the new name of a declared binding.
func (m *Mangler) SymbolName(id ast.SymbolID) (string, bool) {
	name, ok := m.names[id]
	return name, ok
}

// ReferenceName returns the new name of the binding a reference resolves to.
func (m *Mangler) ReferenceName(id ast.ReferenceID) (string, bool) {
	if id == 0 || int(id) > len(m.symbols.References()) {
		return "", false
	}
	ref := m.symbols.Reference(id)
	if !ref.IsResolved() {
		return "", false
	}
	return m.SymbolName(ref.Symbol)
}

// Len returns the number of renamed symbols.
func (m *Mangler) Len() int {
	return len(m.names)
}

// nameGenerator yields the shortest identifiers in a fixed order, skipping
// reserved words and names that must stay visible.
type nameGenerator struct {
	reserved map[string]struct{}
	slots    []string
	counter  int
}

func (g *nameGenerator) name(slot int) string {
	for len(g.slots) <= slot {
		candidate := base54(g.counter)
		g.counter++
		if _, taken := g.reserved[candidate]; taken {
			continue
		}
		g.slots = append(g.slots, candidate)
	}
	return g.slots[slot]
}

const (
	leadingChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ$_"
	trailingChars = leadingChars + "0123456789"
)

// base54 numbers identifiers bijectively: a..Z, $, _ then aa, ba, ...
func base54(n int) string {
	out := []byte{leadingChars[n%len(leadingChars)]}
	n /= len(leadingChars)
	for n > 0 {
		n--
		out = append(out, trailingChars[n%len(trailingChars)])
		n /= len(trailingChars)
	}
	return string(out)
}

var keywords = []string{
	"as", "do", "if", "in", "is", "of",
	"for", "let", "new", "try", "var",
	"case", "else", "enum", "eval", "null", "this", "true", "void", "with",
	"await", "break", "catch", "class", "const", "false", "super", "throw", "while", "yield",
	"delete", "export", "import", "public", "return", "static", "switch", "typeof",
	"default", "extends", "finally", "package", "private",
	"continue", "debugger", "function", "arguments", "interface", "protected",
	"implements", "instanceof", "undefined", "NaN", "Infinity",
}
