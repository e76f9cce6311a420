package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/pkg/config"
)

func TestNoUnreachableRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDiags int
	}{
		{name: "plain return", input: "function f() { return 1; }\n", wantDiags: 0},
		{name: "after return", input: "function f() { return 1; foo(); }\n", wantDiags: 1},
		{name: "after throw", input: "function f() { throw 1; a(); b(); }\n", wantDiags: 2},
		{name: "hoisted declarations", input: "function f() { return g(); function g() {} var x; }\n", wantDiags: 0},
		{name: "initialized var", input: "function f() { return; var x = 1; }\n", wantDiags: 1},
		{name: "after infinite loop", input: "while (true) {}\nbar();\n", wantDiags: 1},
		{name: "loop with break", input: "while (true) { break; }\nbar();\n", wantDiags: 0},
		{name: "both branches return", input: "function f(a) { if (a) { return 1; } else { return 2; } done(); }\n", wantDiags: 1},
		{name: "one branch returns", input: "function f(a) { if (a) { return 1; } done(); }\n", wantDiags: 0},
		{name: "nested dead block reports once", input: "function f() { return; { a(); b(); } }\n", wantDiags: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, NewNoUnreachableRule(), tt.input, nil)
			assert.Len(t, result.Findings, tt.wantDiags)
		})
	}
}

func TestNoUnreachableRule_Diagnostic(t *testing.T) {
	src := "function f() {\n  return 1;\n  foo();\n}\n"
	result := lintSource(t, NewNoUnreachableRule(), src, nil)
	require.Len(t, result.Findings, 1)

	f := result.Findings[0]
	assert.Equal(t, "eslint(no-unreachable): Unreachable code.", f.Message)
	assert.Equal(t, "foo();", src[f.Span.Start:f.Span.End])
	assert.Equal(t, 3, f.StartLine)
	assert.Equal(t, config.SeverityError, f.Severity)
}
