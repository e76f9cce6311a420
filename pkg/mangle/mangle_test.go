package mangle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/pkg/codegen"
	"github.com/yaklabco/gojs/pkg/jsparse"
	"github.com/yaklabco/gojs/pkg/mangle"
	"github.com/yaklabco/gojs/pkg/semantic"
)

func minify(t *testing.T, source string, opts mangle.Options) string {
	t.Helper()
	program, err := jsparse.Parse(context.Background(), source, jsparse.Options{})
	require.NoError(t, err)
	sem := semantic.Build(program, semantic.Options{})
	m := mangle.Build(sem, opts)
	return codegen.New(codegen.MinifyOptions()).WithMangler(m).Build(program).Code
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		opts   mangle.Options
		want   string
	}{
		{
			name:   "parameters renamed",
			source: "function f(longName) { return longName; }",
			want:   "function f(a){return a}",
		},
		{
			name:   "outer names stay visible",
			source: "var a = 1; function f(b) { return a + b; }",
			want:   "var a=1;function f(b){return a+b}",
		},
		{
			name:   "globals are never shadowed",
			source: "function f(first) { return first + a; }",
			want:   "function f(b){return b+a}",
		},
		{
			name:   "sibling scopes reuse names",
			source: "function f(one) { return one; } function g(two) { return two; }",
			want:   "function f(a){return a}function g(a){return a}",
		},
		{
			name:   "nested scopes get distinct names",
			source: "function f(outer) { { let inner = outer; return inner; } }",
			want:   "function f(a){{let b=a;return b}}",
		},
		{
			name:   "eval disables renaming",
			source: "function f(longName) { eval(s); return longName; }",
			want:   "function f(longName){eval(s);return longName}",
		},
		{
			name:   "top level is kept by default",
			source: "var longName = 1;",
			want:   "var longName=1",
		},
		{
			name:   "top level renamed on request",
			source: "var longName = 1; longName;",
			opts:   mangle.Options{TopLevel: true},
			want:   "var a=1;a",
		},
		{
			name:   "exports are kept",
			source: "export const kept = 1; const other = kept;",
			opts:   mangle.Options{TopLevel: true},
			want:   "export const kept=1;const a=kept",
		},
		{
			name:   "shorthand property expands",
			source: "function f(value) { return { value }; }",
			want:   "function f(a){return{value:a}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, minify(t, tt.source, tt.opts))
		})
	}
}

func TestBuild_UnresolvedReferencesKeepNames(t *testing.T) {
	t.Parallel()

	program, err := jsparse.Parse(context.Background(), "function f(x) { return y; }", jsparse.Options{})
	require.NoError(t, err)
	sem := semantic.Build(program, semantic.Options{})
	m := mangle.Build(sem, mangle.Options{})

	assert.Equal(t, 1, m.Len())
	for _, ref := range sem.Symbols().References() {
		_, ok := m.ReferenceName(ref.ID)
		assert.False(t, ok, ref.Name)
	}
}
