package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/yaklabco/gojs/pkg/config"
)

// envVarPrefix is the prefix for all gojs environment variables.
const envVarPrefix = "GOJS_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envField is a config field that can be set from the environment. The
// variable name is derived from the field path, so "backups.mode" is read
// from GOJS_BACKUPS_MODE.
type envField struct {
	field       string
	typ         envFieldType
	description string
}

//nolint:gochecknoglobals // Read-only lookup table.
var envFields = []envField{
	{field: "fix", typ: envTypeBool, description: "Enable auto-fix: true or false"},
	{field: "dryRun", typ: envTypeBool, description: "Dry-run mode: true or false"},
	{field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	{field: "format", typ: envTypeString, description: "Output format: text, json, sarif, diff, or summary"},
	{field: "ruleFormat", typ: envTypeString, description: "Rule identifier style: name, id, or combined"},
	{field: "backups.enabled", typ: envTypeBool, description: "Enable backups when fixing: true or false"},
	{field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
	{field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore globs"},
	{field: "extensions", typ: envTypeSlice, description: "Comma-separated list of file extensions to lint"},
	{field: "env", typ: envTypeSlice, description: "Comma-separated list of environments to enable"},
	{field: "noBackups", typ: envTypeBool, description: "Disable backups: true or false"},
}

// envVarFor converts a field path to its environment variable name.
func envVarFor(field string) string {
	return envVarPrefix + strcase.ToScreamingSnake(field)
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOJS_ (e.g., GOJS_DRY_RUN).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, field := range envFields {
		envVar := envVarFor(field.field)
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, field, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, field envField, value, envVar string) error {
	switch field.typ {
	case envTypeString:
		return setStringField(cfg, field.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, field.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, field.field, i)
	case envTypeSlice:
		return setSliceField(cfg, field.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "ruleFormat":
		cfg.RuleFormat = config.RuleFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "fix":
		cfg.Fix = value
	case "dryRun":
		cfg.DryRun = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "noBackups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	case "env":
		if cfg.Env == nil {
			cfg.Env = make(map[string]bool, len(value))
		}
		for _, name := range value {
			cfg.Env[name] = true
		}
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config
// field, or "" when the field cannot be set from the environment.
func GetEnvVarName(field string) string {
	for _, f := range envFields {
		if f.field == field {
			return envVarFor(f.field)
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envFields))
	for _, f := range envFields {
		vars[envVarFor(f.field)] = f.description
	}
	return vars
}

// EnvVarNames returns the supported environment variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envFields))
	for _, f := range envFields {
		names = append(names, envVarFor(f.field))
	}
	slices.Sort(names)
	return names
}
