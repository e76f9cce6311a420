// Package semantic builds the analysis a linter needs on top of a syntax tree:
// a node arena with parent links, the scope tree, the symbol table, the module
// record, doc comment attachment and an optional reachability graph.
package semantic

import "github.com/yaklabco/gojs/pkg/ast"

// Options controls which optional analyses Build runs.
type Options struct {
	// CFG builds the control flow graph used by reachability rules.
	CFG bool
}

// Semantic is the result of analyzing one program.
type Semantic struct {
	program *ast.Program
	nodes   *Nodes
	scopes  *ScopeTree
	symbols *SymbolTable
	module  *ModuleRecord
	jsdoc   *JSDocFinder
	cfg     *ControlFlowGraph
}

// Build analyzes program. It writes symbol and reference ids back onto the
// identifier nodes of the tree.
func Build(program *ast.Program, opts Options) *Semantic {
	b := &builder{
		nodes:   newNodes(len(program.SourceText) / 4),
		scopes:  &ScopeTree{},
		symbols: &SymbolTable{},
	}
	ast.Walk(b, program)
	b.resolveReferences()

	s := &Semantic{
		program: program,
		nodes:   b.nodes,
		scopes:  b.scopes,
		symbols: b.symbols,
		module:  buildModuleRecord(program),
		jsdoc:   buildJSDoc(program, b.nodes),
	}
	if opts.CFG {
		s.cfg = buildCFG(program, b.nodes)
	}
	return s
}

// SourceText returns the analyzed source.
func (s *Semantic) SourceText() string { return s.program.SourceText }

// Program returns the analyzed tree.
func (s *Semantic) Program() *ast.Program { return s.program }

// Nodes returns the node arena.
func (s *Semantic) Nodes() *Nodes { return s.nodes }

// Scopes returns the scope tree.
func (s *Semantic) Scopes() *ScopeTree { return s.scopes }

// Symbols returns the symbol table.
func (s *Semantic) Symbols() *SymbolTable { return s.symbols }

// ModuleRecord returns the import and export summary.
func (s *Semantic) ModuleRecord() *ModuleRecord { return s.module }

// JSDoc returns the doc comment finder.
func (s *Semantic) JSDoc() *JSDocFinder { return s.jsdoc }

// CFG returns the control flow graph, or nil when it was not requested.
func (s *Semantic) CFG() *ControlFlowGraph { return s.cfg }

// Comments returns every comment in the program.
func (s *Semantic) Comments() []ast.Comment { return s.program.Comments }

// IsReferenceTo reports whether the reference with id binds to symbol.
func (s *Semantic) IsReferenceTo(id ast.ReferenceID, symbol ast.SymbolID) bool {
	if id == 0 {
		return false
	}
	return s.symbols.Reference(id).Symbol == symbol
}
