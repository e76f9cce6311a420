package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/internal/cli"
	"github.com/yaklabco/gojs/pkg/analysis"
	"github.com/yaklabco/gojs/pkg/sourcemap"
)

// testScriptWithIssues has a debugger statement on line 2 (no-debugger,
// warning) and an undeclared name on line 3 (no-undef, error).
const testScriptWithIssues = "function f() {\n  debugger;\n  return missing;\n}\nf();\n"

// testScriptWithDebugger only triggers no-debugger.
const testScriptWithDebugger = "function f() {\n  debugger;\n  return 1;\n}\nf();\n"

// runCLI executes the root command with args and returns its output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFixture writes content to name under dir and returns the path.
func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// emptyConfig isolates a run from any project configuration.
func emptyConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeFixture(t, dir, ".gojsrc.yaml", "env:\n  es2022: true\n")
}

func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithDebugger)
	cfgFile := emptyConfig(t, tmpDir)

	tests := []struct {
		name           string
		ruleFormat     string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "format name shows rule name only",
			ruleFormat:     "name",
			wantContains:   []string{"allowed  (no-debugger)"},
			wantNotContain: []string{"(eslint/no-debugger)"},
		},
		{
			name:         "format id shows rule ID",
			ruleFormat:   "id",
			wantContains: []string{"(eslint/no-debugger)"},
		},
		{
			name:         "format combined shows plugin and name",
			ruleFormat:   "combined",
			wantContains: []string{"allowed  (eslint(no-debugger))"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t,
				"lint",
				"--config", cfgFile,
				"--rule-format", tt.ruleFormat,
				"--no-context",
				"--color", "never",
				jsFile,
			)
			require.NoError(t, err, "warnings alone do not fail the run")

			for _, want := range tt.wantContains {
				assert.Contains(t, stdout, want,
					"output should contain %q for rule-format=%s", want, tt.ruleFormat)
			}
			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, stdout, notWant,
					"output should not contain %q for rule-format=%s", notWant, tt.ruleFormat)
			}
		})
	}
}

func TestIntegration_ErrorsFailTheRun(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithIssues)

	stdout, _, err := runCLI(t, "lint", "--config", emptyConfig(t, tmpDir), "--color", "never", jsFile)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Contains(t, stdout, "'missing' is not defined.")
	assert.Contains(t, stdout, "`debugger` statement is not allowed")
}

func TestIntegration_StrictFailsOnWarnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithDebugger)
	cfgFile := emptyConfig(t, tmpDir)

	_, _, err := runCLI(t, "lint", "--config", cfgFile, "--color", "never", jsFile)
	require.NoError(t, err)

	_, _, err = runCLI(t, "lint", "--config", cfgFile, "--color", "never", "--strict", jsFile)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
}

func TestIntegration_ConfigRuleKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config string
	}{
		{name: "rule name", config: "rules:\n  no-debugger: off\n"},
		{name: "rule ID", config: "rules:\n  eslint/no-debugger: off\n"},
		{name: "numeric severity", config: "rules:\n  no-debugger: 0\n"},
		{name: "json", config: `{"rules": {"no-debugger": "off"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithDebugger)
			name := ".gojsrc.yaml"
			if strings.HasPrefix(tt.config, "{") {
				name = ".gojsrc.json"
			}
			cfgFile := writeFixture(t, tmpDir, name, tt.config)

			stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--no-context", "--color", "never", jsFile)
			require.NoError(t, err)
			assert.NotContains(t, stdout, "no-debugger", "disabled rule should not appear in output")
		})
	}
}

func TestIntegration_RuleFlagOverridesConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithIssues)
	cfgFile := writeFixture(t, tmpDir, ".gojsrc.yaml", "rules:\n  no-undef: error\n")

	stdout, _, err := runCLI(t,
		"lint",
		"--config", cfgFile,
		"--rule", "no-undef=warn",
		"--format", "json",
		jsFile,
	)
	require.NoError(t, err, "no-undef was downgraded to a warning")

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	for _, finding := range report.Findings {
		assert.Equal(t, "warning", finding.Severity, finding.RuleID)
	}
}

func TestIntegration_GlobalsAndEnvs(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", "process.exit(app.code);\n")
	cfgFile := emptyConfig(t, tmpDir)

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--color", "never", "--no-context", jsFile)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Contains(t, stdout, "'process' is not defined.")
	assert.Contains(t, stdout, "'app' is not defined.")

	stdout, _, err = runCLI(t,
		"lint",
		"--config", cfgFile,
		"--env", "node",
		"--global", "app",
		"--color", "never",
		jsFile,
	)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "is not defined")
}

func TestIntegration_DisableDirective(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	content := "// eslint-disable-next-line no-undef\nmissing();\nalsoMissing();\n"
	jsFile := writeFixture(t, tmpDir, "app.js", content)

	stdout, _, err := runCLI(t, "lint", "--config", emptyConfig(t, tmpDir), "--format", "json", jsFile)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Findings, 1)
	assert.Equal(t, 3, report.Findings[0].StartLine)
	assert.Equal(t, "eslint/no-undef", report.Findings[0].RuleID)
}

func TestIntegration_JSONOutputIncludesBothIDAndName(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithDebugger)

	stdout, _, err := runCLI(t, "lint", "--config", emptyConfig(t, tmpDir), "--format", "json", jsFile)
	require.NoError(t, err)

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Findings, 1)

	finding := report.Findings[0]
	assert.Equal(t, "eslint/no-debugger", finding.RuleID)
	assert.Equal(t, "no-debugger", finding.RuleName)
	assert.Equal(t, 2, finding.StartLine)
	assert.Equal(t, 3, finding.StartColumn)
	assert.True(t, finding.Fixable)
	assert.Equal(t, 1, report.Totals.Warnings)
}

func TestIntegration_EnableDisableByID(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithIssues)

	stdout, _, err := runCLI(t,
		"lint",
		"--config", emptyConfig(t, tmpDir),
		"--disable", "eslint/no-undef",
		"--format", "json",
		jsFile,
	)
	require.NoError(t, err)

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	for _, finding := range report.Findings {
		assert.NotEqual(t, "eslint/no-undef", finding.RuleID)
	}
	assert.NotEmpty(t, report.Findings)
}

func TestIntegration_FixRemovesDebugger(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithDebugger)

	_, _, err := runCLI(t,
		"lint",
		"--config", emptyConfig(t, tmpDir),
		"--fix",
		"--no-backups",
		"--color", "never",
		jsFile,
	)
	require.NoError(t, err)

	fixed, err := os.ReadFile(jsFile)
	require.NoError(t, err)
	assert.NotContains(t, string(fixed), "debugger")
	assert.Contains(t, string(fixed), "return 1;")
}

func TestIntegration_DryRunLeavesFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithDebugger)

	stdout, _, err := runCLI(t,
		"lint",
		"--config", emptyConfig(t, tmpDir),
		"--fix",
		"--dry-run",
		"--format", "diff",
		"--color", "never",
		jsFile,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "-  debugger;")

	unchanged, err := os.ReadFile(jsFile)
	require.NoError(t, err)
	assert.Equal(t, testScriptWithDebugger, string(unchanged))
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "a.js", testScriptWithIssues)
	writeFixture(t, tmpDir, "lib/b.js", testScriptWithDebugger)
	cfgFile := emptyConfig(t, tmpDir)

	for _, order := range []string{"rules", "files"} {
		t.Run(order, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t,
				"lint",
				"--config", cfgFile,
				"--format", "summary",
				"--summary-order", order,
				"--color", "never",
				tmpDir,
			)
			require.ErrorIs(t, err, cli.ErrLintIssuesFound)

			rulesAt := strings.Index(stdout, "Rules Summary")
			filesAt := strings.Index(stdout, "Files Summary")
			require.GreaterOrEqual(t, rulesAt, 0, stdout)
			require.GreaterOrEqual(t, filesAt, 0, stdout)
			if order == "rules" {
				assert.Less(t, rulesAt, filesAt)
			} else {
				assert.Less(t, filesAt, rulesAt)
			}
			assert.Contains(t, stdout, "no-debugger")
		})
	}
}

func TestIntegration_SARIFFormat(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithIssues)

	stdout, _, err := runCLI(t, "lint", "--config", emptyConfig(t, tmpDir), "--format", "sarif", jsFile)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	var output map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.Equal(t, "2.1.0", output["version"])
	assert.Contains(t, stdout, "eslint/no-undef")
}

func TestIntegration_InvalidRuleFlag(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", testScriptWithDebugger)

	_, _, err := runCLI(t, "lint", "--config", emptyConfig(t, tmpDir), "--rule", "no-undef", jsFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected name=severity")
}

func TestIntegration_RulesCommandWithFormat(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "rules", "--format", "json")
	require.NoError(t, err)

	var rules []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	require.NotEmpty(t, rules)

	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule["id"].(string))
	}
	assert.Contains(t, ids, "jsdoc/implements-on-classes")

	stdout, _, err = runCLI(t, "rules", "--rule-format", "id")
	require.NoError(t, err)
	assert.Contains(t, stdout, "eslint/no-unreachable")
}

func TestIntegration_RulesExplain(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"no-debugger", "eslint/no-debugger"} {
		stdout, _, err := runCLI(t, "rules", "explain", "--color", "never", key)
		require.NoError(t, err, key)
		assert.Contains(t, stdout, "eslint/no-debugger")
		assert.Contains(t, stdout, "Fixable: yes")
		assert.Contains(t, stdout, "What it does")
		assert.Contains(t, stdout, "    function isTruthy(x) {")
		assert.NotContains(t, stdout, "```")
	}

	_, _, err := runCLI(t, "rules", "explain", "no-such-rule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rule")
}

func TestIntegration_Print(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", "const greeting = \"hi\";\nconsole.log((1 + 2) * 3, greeting);\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "pretty",
			args: []string{"print", jsFile},
			want: "const greeting = \"hi\";\nconsole.log((1 + 2) * 3, greeting);\n",
		},
		{
			name: "minify with single quotes",
			args: []string{"print", "--minify", "--single-quote", jsFile},
			want: "const greeting='hi';console.log((1+2)*3,greeting)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestIntegration_PrintMangle(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js",
		"function outer() {\n  let counter = 0;\n  return counter + 1;\n}\nouter();\n")

	stdout, _, err := runCLI(t, "print", "--minify", "--mangle", jsFile)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "counter")
	assert.Contains(t, stdout, "outer", "top-level names are kept without --toplevel")
}

func TestIntegration_PrintSourceMapFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", "let a = 1;\nlet b = a + 1;\n")
	outFile := filepath.Join(tmpDir, "out.js")

	_, _, err := runCLI(t, "print", "--minify", "--source-map", "file", "-o", outFile, jsFile)
	require.NoError(t, err)

	code, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(code), "\n//# sourceMappingURL=out.js.map\n"), string(code))

	data, err := os.ReadFile(outFile + ".map")
	require.NoError(t, err)
	sm, err := sourcemap.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 3, sm.Version)
	assert.Equal(t, []string{jsFile}, sm.Sources)
}

func TestIntegration_PrintSourceMapInline(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", "let a = 1;\n")

	stdout, _, err := runCLI(t, "print", "--source-map", "inline", jsFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "//# sourceMappingURL=data:application/json;")
}

func TestIntegration_PrintErrors(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	badFile := writeFixture(t, tmpDir, "bad.js", "let = ;\n")
	goodFile := writeFixture(t, tmpDir, "good.js", "let a;\n")

	_, _, err := runCLI(t, "print", badFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")

	_, _, err = runCLI(t, "print", "--source-map", "file", goodFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires --output")

	_, _, err = runCLI(t, "print", "--source-type", "jsx", goodFile)
	require.Error(t, err)
}

func TestIntegration_PrintDumpAST(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	jsFile := writeFixture(t, tmpDir, "app.js", "debugger;\n")

	stdout, _, err := runCLI(t, "print", "--dump-ast", jsFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ast.DebuggerStatement")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		args   []string
		check  func(t *testing.T, content string)
	}{
		{
			format: "yaml",
			check: func(t *testing.T, content string) {
				t.Helper()
				assert.Contains(t, content, "# gojs configuration")
				assert.Contains(t, content, "eslint/no-debugger: warning")
			},
		},
		{
			format: "toml",
			check: func(t *testing.T, content string) {
				t.Helper()
				assert.Contains(t, content, `[rules."eslint/no-debugger"]`)
			},
		},
		{
			format: "json",
			args:   []string{"--pack", "jsdoc"},
			check: func(t *testing.T, content string) {
				t.Helper()
				assert.Contains(t, content, `"eslint/no-undef": "off"`)
				assert.Contains(t, content, `"jsdoc/implements-on-classes": "warning"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			output := filepath.Join(t.TempDir(), ".gojsrc."+tt.format)
			args := append([]string{"init", "--format", tt.format, "--output", output}, tt.args...)
			_, _, err := runCLI(t, args...)
			require.NoError(t, err)

			content, err := os.ReadFile(output)
			require.NoError(t, err)
			tt.check(t, string(content))

			_, _, err = runCLI(t, "init", "--format", tt.format, "--output", output)
			require.Error(t, err, "existing file needs --force")
		})
	}

	_, _, err := runCLI(t, "init", "--pack", "nope", "--output", filepath.Join(t.TempDir(), "x.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown pack")
}

func TestIntegration_Migrate(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	input := writeFixture(t, tmpDir, ".eslintrc.json",
		`{"extends": "eslint:recommended", "env": {"node": true}, "rules": {"no-debugger": "off"}}`)
	output := filepath.Join(tmpDir, ".gojsrc.yaml")

	_, _, err := runCLI(t, "migrate", "--output", output, input)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Migrated from: .eslintrc.json")
	// yaml.v3 quotes off so YAML 1.1 readers do not take it for a boolean.
	assert.Contains(t, string(content), `eslint/no-debugger: "off"`)
	assert.Contains(t, string(content), "node: true")

	jsFile := writeFixture(t, tmpDir, "app.js", "debugger;\nprocess.exit(0);\n")
	stdout, _, err := runCLI(t, "lint", "--config", output, "--color", "never", jsFile)
	require.NoError(t, err, stdout)

	script := writeFixture(t, tmpDir, "eslint.config.js", "export default [];\n")
	_, _, err = runCLI(t, "migrate", "--output", filepath.Join(tmpDir, "other.yaml"), script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration not supported")
}
