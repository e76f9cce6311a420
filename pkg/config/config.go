// Package config defines the lint configuration: rule severities, plugin settings,
// declared globals and enabled environments.
// These types are pure data structures; discovery and merging live in configloader.
package config

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidSeverity reports a rule severity that is not off, warn or error.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrInvalidGlobal reports a global that is not readonly, writable or off.
	ErrInvalidGlobal = errors.New("invalid global value")

	// ErrInvalidRuleConfig reports a rule entry of the wrong shape.
	ErrInvalidRuleConfig = errors.New("invalid rule configuration")
)

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Mode    string `json:"mode" yaml:"mode" toml:"mode"` // "sidecar", "xdg", etc.
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "implements-on-classes"
	RuleFormatID       RuleFormat = "id"       // "jsdoc/implements-on-classes"
	RuleFormatCombined RuleFormat = "combined" // "eslint-plugin-jsdoc(implements-on-classes)"
)

// DefaultExtensions are the file extensions linted when none are configured.
func DefaultExtensions() []string {
	return []string{".js", ".mjs", ".cjs"}
}

// Config is the root configuration structure.
type Config struct {
	// Rules maps rule names to their severity and options.
	Rules map[string]RuleConfig `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`

	// Settings holds plugin-scoped data such as settings.jsdoc.
	Settings Settings `json:"settings" yaml:"settings,omitempty" toml:"settings"`

	// Globals declares variables that exist without a binding in the file.
	Globals map[string]GlobalValue `json:"globals,omitempty" yaml:"globals,omitempty" toml:"globals,omitempty"`

	// Env enables predefined global sets such as browser or node.
	Env map[string]bool `json:"env,omitempty" yaml:"env,omitempty" toml:"env,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Extensions lists the file extensions that are linted.
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `json:"backups" yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `json:"-" yaml:"-" toml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `json:"-" yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `json:"-" yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `json:"-" yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `json:"-" yaml:"-" toml:"-"`

	// EnableRules contains rule names to explicitly enable.
	EnableRules []string `json:"-" yaml:"-" toml:"-"`

	// DisableRules contains rule names to explicitly disable.
	DisableRules []string `json:"-" yaml:"-" toml:"-"`

	// FixRules limits auto-fixing to specific rules.
	FixRules []string `json:"-" yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `json:"-" yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      make(map[string]RuleConfig),
		Globals:    make(map[string]GlobalValue),
		Env:        make(map[string]bool),
		Extensions: DefaultExtensions(),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// EnabledEnvs returns the names of enabled environments, sorted.
func (c *Config) EnabledEnvs() []string {
	var envs []string
	for name, on := range c.Env {
		if on {
			envs = append(envs, name)
		}
	}
	slices.Sort(envs)
	return envs
}

// Global reports how name is declared in globals, if at all.
func (c *Config) Global(name string) (GlobalValue, bool) {
	value, ok := c.Globals[name]
	return value, ok
}
