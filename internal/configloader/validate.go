package configloader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.eslint/no-undef").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatSARIF:   true,
	config.FormatDiff:    true,
	config.FormatSummary: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownRuleFormats = map[config.RuleFormat]bool{
	config.RuleFormatName:     true,
	config.RuleFormatID:       true,
	config.RuleFormatCombined: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: text, json, sarif, diff, summary", cfg.Format)
	}
	if cfg.RuleFormat != "" && !knownRuleFormats[cfg.RuleFormat] {
		result.addError("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}
	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateRules(cfg, result)
	validateGlobals(cfg, result)
	validateEnvs(cfg, result)
	validateIgnorePatterns(cfg, result)
	validateExtensions(cfg, result)

	return result
}

// validateRules checks rule configurations for errors and warnings.
func validateRules(cfg *config.Config, result *ValidationResult) {
	registry := lint.DefaultRegistry

	for ruleID, ruleCfg := range cfg.Rules {
		if _, exists := registry.Get(ruleID); !exists {
			result.addWarning("rules."+ruleID, ruleID, "unknown rule %q; it will be ignored", ruleID)
		}
		if ruleCfg.Severity != "" && !ruleCfg.Severity.IsValid() {
			result.addError("rules."+ruleID+".severity", ruleCfg.Severity,
				"invalid severity %q; must be one of: off, warn, error", ruleCfg.Severity)
		}
	}
}

func validateGlobals(cfg *config.Config, result *ValidationResult) {
	for name, value := range cfg.Globals {
		if _, err := config.ParseGlobalValue(string(value)); err != nil {
			result.addError("globals."+name, value,
				"invalid global %q; must be one of: readonly, writable, off", value)
		}
	}
}

func validateEnvs(cfg *config.Config, result *ValidationResult) {
	for name := range cfg.Env {
		if _, known := lint.EnvGlobals(name); !known {
			result.addWarning("env."+name, name, "unknown environment %q; it defines no globals", name)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext,
				"invalid extension %q; must start with a dot, e.g. .js", ext)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
