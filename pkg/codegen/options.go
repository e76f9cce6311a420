package codegen

import (
	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/sourcemap"
)

// Options controls the shape of generated code.
type Options struct {
	// SingleQuote selects ' instead of " as the string delimiter.
	SingleQuote bool

	// Minify strips insignificant whitespace, indentation and trailing newlines and
	// only emits semicolons where a statement would otherwise merge with the next.
	Minify bool

	// Comments emits ordinary comments.
	Comments bool

	// AnnotationComments emits annotation comments such as /* #__PURE__ */ even when
	// Comments is false.
	AnnotationComments bool

	// SourceMapPath enables source map generation; it names the original file in
	// the map's sources list.
	SourceMapPath string
}

// DefaultOptions returns readable output with comments preserved.
func DefaultOptions() Options {
	return Options{Comments: true}
}

// MinifyOptions returns options for the smallest output.
func MinifyOptions() Options {
	return Options{Minify: true}
}

// printComments reports whether ordinary comments are emitted.
func (o Options) printComments() bool {
	return !o.Minify && o.Comments
}

// printAnnotationComments reports whether annotation comments are emitted.
func (o Options) printAnnotationComments() bool {
	return !o.Minify && (o.Comments || o.AnnotationComments)
}

// Mangler supplies renamed identifiers keyed by resolved reference or symbol.
type Mangler interface {
	ReferenceName(id ast.ReferenceID) (string, bool)
	SymbolName(id ast.SymbolID) (string, bool)
}

// Result is the output of Build.
type Result struct {
	Code string
	Map  *sourcemap.SourceMap
}
