package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoDebuggerRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDiags int
	}{
		{name: "clean", input: "var test = { debugger: 1 }; test.debugger;\n", wantDiags: 0},
		{name: "top level", input: "debugger;\n", wantDiags: 1},
		{name: "in function", input: "function f() { debugger; }\n", wantDiags: 1},
		{name: "several", input: "debugger;\nif (a) debugger;\n", wantDiags: 2},
		{name: "disabled", input: "// eslint-disable-next-line no-debugger\ndebugger;\n", wantDiags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, NewNoDebuggerRule(), tt.input, nil)
			assert.Len(t, result.Findings, tt.wantDiags)
		})
	}
}

func TestNoDebuggerRule_Diagnostic(t *testing.T) {
	result := lintSource(t, NewNoDebuggerRule(), "let a;\n  debugger;\n", nil)
	require.Len(t, result.Findings, 1)

	f := result.Findings[0]
	assert.Equal(t, "eslint(no-debugger): `debugger` statement is not allowed", f.Message)
	assert.Equal(t, "eslint/no-debugger", f.RuleID)
	assert.Equal(t, "no-debugger", f.RuleName)
	assert.Equal(t, 2, f.StartLine)
	assert.Equal(t, 3, f.StartColumn)
	assert.False(t, f.HasFix(), "fixes are only attached when fixing is on")
}

func TestNoDebuggerRule_Fix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "statement list",
			input: "debugger;\nfoo();\n",
			want:  "\nfoo();\n",
		},
		{
			name:  "function body",
			input: "function f() { debugger; }",
			want:  "function f() {  }",
		},
		{
			name:  "statement position keeps a body",
			input: "if (a) debugger;\n",
			want:  "if (a) {}\n",
		},
		{
			name:  "switch case",
			input: "switch (a) { case 1: debugger; }",
			want:  "switch (a) { case 1:  }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixSource(t, NewNoDebuggerRule(), tt.input))
		})
	}
}
