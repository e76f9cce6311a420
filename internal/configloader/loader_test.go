package configloader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
	_ "github.com/yaklabco/gojs/pkg/lint/rules" // Register rules
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: ".gojsrc.yaml",
			content: `
rules:
  no-debugger: "off"
globals:
  jQuery: readonly
env:
  node: true
`,
		},
		{
			name:    "json",
			file:    ".gojsrc.json",
			content: `{"rules": {"no-debugger": 0}, "globals": {"jQuery": "readonly"}, "env": {"node": true}}`,
		},
		{
			name: "toml",
			file: ".gojsrc.toml",
			content: `
[rules]
no-debugger = "off"

[globals]
jQuery = "readonly"

[env]
node = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, tt.file), tt.content)

			result, err := Load(context.Background(), isolatedOptions(tmpDir))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			rule, ok := result.Config.Rules["eslint/no-debugger"]
			if !ok {
				t.Fatalf("rule name not normalized to its ID: %v", result.Config.Rules)
			}
			if rule.Severity != config.SeverityOff {
				t.Errorf("expected severity off, got %q", rule.Severity)
			}
			if got, _ := result.Config.Global("jQuery"); got != config.GlobalReadonly {
				t.Errorf("expected jQuery readonly, got %q", got)
			}
			if !result.Config.Env["node"] {
				t.Error("expected node env enabled")
			}
			if len(result.LoadedFrom) != 1 {
				t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
			}
		})
	}
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, ".gojsrc.yml"), "rules:\n  no-undef: warn\n")

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Paths.Project != filepath.Join(root, ".gojsrc.yml") {
		t.Errorf("unexpected project path %q", result.Paths.Project)
	}
	if result.Config.Rules["eslint/no-undef"].Severity != config.SeverityWarning {
		t.Errorf("expected no-undef at warning, got %+v", result.Config.Rules)
	}
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, ".gojsrc.yaml"), "rules: {}\n")

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("search crossed the repository root: %q", path)
	}
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gojsrc.yaml"), "rules:\n  no-undef: error\n  no-debugger: error\n")
	customPath := filepath.Join(tmpDir, "custom.yaml")
	writeFile(t, customPath, "rules:\n  eslint/no-undef: \"off\"\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := result.Config.Rules["eslint/no-undef"].Severity; got != config.SeverityOff {
		t.Errorf("explicit config should win, got %q", got)
	}
	if got := result.Config.Rules["eslint/no-debugger"].Severity; got != config.SeverityError {
		t.Errorf("project rule should survive, got %q", got)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("unexpected load order %v", result.LoadedFrom)
	}
}

func TestLoad_RuleNameOverridesEarlierID(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gojsrc.yaml"), "rules:\n  eslint/no-undef: error\n")
	customPath := filepath.Join(tmpDir, "custom.yaml")
	writeFile(t, customPath, "rules:\n  no-undef: \"off\"\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = customPath

	// Map order must not decide which layer wins.
	for range 20 {
		result, err := Load(context.Background(), opts)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got := result.Config.Rules["eslint/no-undef"].Severity; got != config.SeverityOff {
			t.Fatalf("explicit config should win, got %q", got)
		}
		if _, ok := result.Config.Rules["no-undef"]; ok {
			t.Fatal("short rule name should be rewritten to its ID")
		}
	}
}

func TestNormalizeRuleKeys_SameLayerDuplicates(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Rules: map[string]config.RuleConfig{
		"no-undef":        {Severity: config.SeverityError},
		"eslint/no-undef": {Severity: config.SeverityOff},
		"unknown/rule":    {Severity: config.SeverityWarning},
	}}
	result := &LoadResult{}

	normalizeRuleKeys(cfg, lint.DefaultRegistry, result)

	if got := cfg.Rules["eslint/no-undef"].Severity; got != config.SeverityOff {
		t.Errorf("the key spelled as the rule ID should win, got %q", got)
	}
	if _, ok := cfg.Rules["unknown/rule"]; !ok {
		t.Error("unknown keys are kept for validation to report")
	}
	if len(cfg.Rules) != 2 {
		t.Errorf("expected 2 rules, got %v", cfg.Rules)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `using "eslint/no-undef"`) {
		t.Errorf("expected one duplicate warning, got %v", result.Warnings)
	}
}

func TestLoad_CLIConfigWins(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gojsrc.yaml"), "ignore:\n  - dist/**\n")

	cli := &config.Config{Format: config.FormatJSON, Jobs: 3, Ignore: []string{"build/**"}}
	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = cli

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Format != config.FormatJSON || result.Config.Jobs != 3 {
		t.Errorf("CLI scalars not applied: %+v", result.Config)
	}
	if len(result.Config.Ignore) != 1 || result.Config.Ignore[0] != "build/**" {
		t.Errorf("CLI ignore should replace file ignore, got %v", result.Config.Ignore)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gojsrc.yaml"), "rules:\n  no-undef: sometimes\n")

	if _, err := Load(context.Background(), isolatedOptions(tmpDir)); err == nil {
		t.Fatal("expected error for invalid severity")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t.TempDir())
	opts.CLIConfig = &config.Config{Jobs: -1}

	_, err := Load(context.Background(), opts)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "jobs") {
		t.Errorf("error should name the field, got %v", err)
	}
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gojsrc.yaml"), "rules:\n  no-such-rule: error\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "no-such-rule") {
		t.Errorf("expected unknown rule warning, got %v", result.Warnings)
	}
}

func TestLoad_ESLintConfigNonInteractive(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".eslintrc.json"), `{"rules": {"no-undef": "error"}}`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Paths.ESLint == "" {
		t.Fatal("eslintrc not discovered")
	}
	if result.MigrationPerformed {
		t.Error("migration must not run without a terminal")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "gojs migrate") {
		t.Errorf("expected migrate hint, got %v", result.Warnings)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOJS_FIX", "true")
	t.Setenv("GOJS_DRY_RUN", "1")
	t.Setenv("GOJS_JOBS", "4")
	t.Setenv("GOJS_FORMAT", "sarif")
	t.Setenv("GOJS_RULE_FORMAT", "combined")
	t.Setenv("GOJS_BACKUPS_MODE", "none")
	t.Setenv("GOJS_IGNORE", "dist/**, vendor/** ,")
	t.Setenv("GOJS_ENV", "node,mocha")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if !cfg.Fix || !cfg.DryRun {
		t.Error("expected fix and dry run enabled")
	}
	if cfg.Jobs != 4 {
		t.Errorf("expected 4 jobs, got %d", cfg.Jobs)
	}
	if cfg.Format != config.FormatSARIF {
		t.Errorf("expected sarif, got %q", cfg.Format)
	}
	if cfg.RuleFormat != config.RuleFormatCombined {
		t.Errorf("expected combined, got %q", cfg.RuleFormat)
	}
	if cfg.Backups.Mode != "none" {
		t.Errorf("expected backup mode none, got %q", cfg.Backups.Mode)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[1] != "vendor/**" {
		t.Errorf("unexpected ignore %v", cfg.Ignore)
	}
	if !cfg.Env["node"] || !cfg.Env["mocha"] {
		t.Errorf("unexpected env %v", cfg.Env)
	}
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("GOJS_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	if err == nil || !strings.Contains(err.Error(), "GOJS_JOBS") {
		t.Fatalf("expected error naming GOJS_JOBS, got %v", err)
	}
}

func TestGetEnvVarName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"dryRun":       "GOJS_DRY_RUN",
		"backups.mode": "GOJS_BACKUPS_MODE",
		"noBackups":    "GOJS_NO_BACKUPS",
		"rules":        "",
	}
	for field, want := range tests {
		if got := GetEnvVarName(field); got != want {
			t.Errorf("GetEnvVarName(%q) = %q, want %q", field, got, want)
		}
	}
	if len(ListEnvVars()) != len(EnvVarNames()) {
		t.Error("ListEnvVars and EnvVarNames disagree")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	autoFix := false
	base := &config.Config{
		Rules: map[string]config.RuleConfig{
			"eslint/no-undef": {Severity: config.SeverityError, Options: []any{map[string]any{"typeof": true}}},
		},
		Globals: map[string]config.GlobalValue{"a": config.GlobalReadonly},
		Ignore:  []string{"dist/**"},
	}
	override := &config.Config{
		Rules: map[string]config.RuleConfig{
			"eslint/no-undef":    {AutoFix: &autoFix},
			"eslint/no-debugger": {Severity: config.SeverityOff},
		},
		Globals: map[string]config.GlobalValue{"b": config.GlobalWritable},
	}

	got := MergeAll(base, override)

	undef := got.Rules["eslint/no-undef"]
	if undef.Severity != config.SeverityError || len(undef.Options) != 1 || undef.AutoFix == nil {
		t.Errorf("rule fields not merged: %+v", undef)
	}
	if got.Rules["eslint/no-debugger"].Severity != config.SeverityOff {
		t.Error("new rule missing")
	}
	if len(got.Globals) != 2 {
		t.Errorf("globals not merged: %v", got.Globals)
	}
	if len(got.Ignore) != 1 {
		t.Errorf("nil override slice must keep base, got %v", got.Ignore)
	}
	if len(base.Globals) != 1 {
		t.Error("merge mutated its input")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      *config.Config
		errors   int
		warnings int
	}{
		{name: "defaults", cfg: config.NewConfig()},
		{name: "bad format", cfg: &config.Config{Format: "table"}, errors: 1},
		{name: "bad rule format", cfg: &config.Config{RuleFormat: "long"}, errors: 1},
		{name: "bad backup mode", cfg: &config.Config{Backups: config.BackupsConfig{Mode: "xdg"}}, errors: 1},
		{name: "bad glob", cfg: &config.Config{Ignore: []string{"src/[a"}}, errors: 1},
		{name: "bad extension", cfg: &config.Config{Extensions: []string{"js"}}, errors: 1},
		{name: "bad global", cfg: &config.Config{Globals: map[string]config.GlobalValue{"x": "maybe"}}, errors: 1},
		{name: "unknown env", cfg: &config.Config{Env: map[string]bool{"nowhere": true}}, warnings: 1},
		{
			name:     "unknown rule",
			cfg:      &config.Config{Rules: map[string]config.RuleConfig{"x/y": {Severity: config.SeverityError}}},
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tt.cfg)
			if len(result.Errors) != tt.errors || len(result.Warnings) != tt.warnings {
				t.Errorf("got %d errors, %d warnings: %v", len(result.Errors), len(result.Warnings), result.AllMessages())
			}
		})
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{Jobs: -2}, ".gojsrc.yaml")
	if result.Valid() {
		t.Fatal("expected invalid")
	}
	if !strings.HasPrefix(result.Errors[0].Error(), ".gojsrc.yaml: jobs: ") {
		t.Errorf("unexpected message %q", result.Errors[0].Error())
	}
}

func TestNormalizeRuleID(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no-undef":                                  "eslint/no-undef",
		"eslint/no-undef":                           "eslint/no-undef",
		"jsdoc/implements-on-classes":               "jsdoc/implements-on-classes",
		"implements-on-classes":                     "jsdoc/implements-on-classes",
		"eslint-plugin-jsdoc/implements-on-classes": "jsdoc/implements-on-classes",
		"react/jsx-key":                             "",
		"no-such-rule":                              "",
	}
	for key, want := range tests {
		if got := NormalizeRuleID(lint.DefaultRegistry, key); got != want {
			t.Errorf("NormalizeRuleID(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestPromptMigration(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{"\n": true, "y\n": true, "YES\n": true, "n\n": false, "no": false}
	for input, want := range tests {
		var out bytes.Buffer
		got, err := promptMigration(&out, strings.NewReader(input), "/p/.eslintrc.json")
		if err != nil {
			t.Fatalf("promptMigration(%q) error = %v", input, err)
		}
		if got != want {
			t.Errorf("promptMigration(%q) = %v, want %v", input, got, want)
		}
		if !strings.Contains(out.String(), "Found .eslintrc.json") {
			t.Errorf("unexpected prompt %q", out.String())
		}
	}
}
