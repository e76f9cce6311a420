package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
	"github.com/yaklabco/gojs/pkg/lint/rules"
)

// MigrationResult contains the result of converting an eslint config.
type MigrationResult struct {
	// Config is the converted configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original eslint config.
	SourcePath string
}

// unsupportedKeys are eslintrc keys with no equivalent here.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unsupportedKeys = []string{
	"overrides",
	"parser",
	"parserOptions",
	"plugins",
	"processor",
	"noInlineConfig",
	"reportUnusedDisableDirectives",
}

// ConvertESLintConfig converts an eslintrc file to a gojs configuration.
// Keys that have no equivalent are dropped with a warning.
func ConvertESLintConfig(path string) (*MigrationResult, error) {
	if IsScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; please create a .gojsrc.yaml manually", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if IsYAMLConfig(path) {
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	} else if err := parseJSONC(content, &raw); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	return convertRaw(path, raw, lint.DefaultRegistry), nil
}

func convertRaw(path string, raw map[string]any, registry *lint.Registry) *MigrationResult {
	result := &MigrationResult{
		SourcePath: path,
		Config:     config.NewConfig(),
	}
	cfg := result.Config

	delete(raw, "root")
	delete(raw, "$schema")

	// Packs go first so explicit rules override them.
	convertExtends(cfg, raw["extends"], result)
	delete(raw, "extends")

	if ruleMap, ok := raw["rules"].(map[string]any); ok {
		for key, value := range ruleMap {
			convertRule(cfg, registry, key, value, result)
		}
	}
	delete(raw, "rules")

	if globals, ok := raw["globals"].(map[string]any); ok {
		for name, value := range globals {
			parsed, err := config.ParseGlobalValue(fmt.Sprint(value))
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("globals.%s: %v; skipping", name, err))
				continue
			}
			cfg.Globals[name] = parsed
		}
	}
	delete(raw, "globals")

	if envs, ok := raw["env"].(map[string]any); ok {
		for name, value := range envs {
			if on, ok := value.(bool); ok {
				cfg.Env[name] = on
			}
		}
	}
	delete(raw, "env")

	if settings, ok := raw["settings"]; ok {
		if err := remarshal(settings, &cfg.Settings); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("settings: %v; skipping", err))
		}
	}
	delete(raw, "settings")

	cfg.Ignore = stringList(raw["ignorePatterns"])
	delete(raw, "ignorePatterns")

	for _, key := range unsupportedKeys {
		if _, ok := raw[key]; ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%q is not supported; skipping", key))
			delete(raw, key)
		}
	}

	leftover := make([]string, 0, len(raw))
	for key := range raw {
		leftover = append(leftover, key)
	}
	slices.Sort(leftover)
	for _, key := range leftover {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown key %q; skipping", key))
	}

	slices.Sort(result.Warnings)
	return result
}

func convertExtends(cfg *config.Config, value any, result *MigrationResult) {
	for _, name := range stringList(value) {
		packName, ok := PackForExtends(name)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("extends %q has no built-in equivalent; merge its rules manually", name))
			continue
		}
		if pack := rules.PackByName(packName); pack != nil {
			pack.Apply(cfg)
		}
	}
}

func convertRule(cfg *config.Config, registry *lint.Registry, key string, value any, result *MigrationResult) {
	ruleID := NormalizeRuleID(registry, key)
	if ruleID == "" {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown rule %q; skipping", key))
		return
	}

	var ruleCfg config.RuleConfig
	if err := remarshal(value, &ruleCfg); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("rules.%s: %v; skipping", key, err))
		return
	}
	cfg.Rules[ruleID] = ruleCfg
}

// remarshal decodes a generic value into target through JSON, so the
// config types' own unmarshalers apply.
func remarshal(value, target any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// stringList accepts a string or a list of strings.
func stringList(value any) []string {
	switch typed := value.(type) {
	case string:
		return []string{typed}
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// parseJSONC parses JSON that may contain comments.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	if err := json.Unmarshal(stripJSONComments(content), target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments from JSON content.
func stripJSONComments(content []byte) []byte {
	var result []byte
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inSingleComment {
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
			continue
		}

		if inMultiComment {
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
			result = append(result, char)
			continue
		}

		if char == '/' && idx+1 < len(content) {
			switch content[idx+1] {
			case '/':
				inSingleComment = true
				idx++
				continue
			case '*':
				inMultiComment = true
				idx++
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# gojs configuration
# Migrated from: %s
`, filepath.Base(sourcePath))
}

// CanMigrate returns true if the config file can be migrated.
func CanMigrate(path string) bool {
	return !IsScriptConfig(path)
}

// GetMigrationWarning returns a warning message for files that cannot be migrated.
func GetMigrationWarning(path string) string {
	if IsScriptConfig(path) {
		return fmt.Sprintf("JavaScript config file (%s) cannot be converted automatically; "+
			"create a .gojsrc.yaml manually or run 'gojs init'", filepath.Base(path))
	}
	return ""
}

// IsYAMLConfig returns true if the path is a YAML config file.
func IsYAMLConfig(path string) bool {
	format, err := config.FileFormatForPath(path)
	return err == nil && format == config.FileFormatYAML
}
