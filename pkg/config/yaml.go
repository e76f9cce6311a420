package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	// Marshal to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	// Prepend header
	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	cfg.ensureMaps()
	return cfg, nil
}

// ensureMaps initializes nil maps so callers can index without checks.
func (c *Config) ensureMaps() {
	if c.Rules == nil {
		c.Rules = make(map[string]RuleConfig)
	}
	if c.Globals == nil {
		c.Globals = make(map[string]GlobalValue)
	}
	if c.Env == nil {
		c.Env = make(map[string]bool)
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	// Use YAML round-trip for deep copy of serializable fields
	yamlBytes, err := c.ToYAML()
	if err != nil {
		// Fallback to manual deep copy on error
		return c.deepCopy()
	}

	clone, err := FromYAML(yamlBytes)
	if err != nil {
		// Fallback to manual deep copy on error
		return c.deepCopy()
	}

	// Copy CLI-only fields that aren't serialized to YAML
	c.copyCLIFields(clone)

	return clone
}

// copyCLIFields copies CLI-only fields (yaml:"-") to the target config.
func (c *Config) copyCLIFields(target *Config) {
	target.Fix = c.Fix
	target.DryRun = c.DryRun
	target.Format = c.Format
	target.RuleFormat = c.RuleFormat
	target.Jobs = c.Jobs
	target.NoBackups = c.NoBackups

	// Deep copy CLI-only slices
	target.EnableRules = slices.Clone(c.EnableRules)
	target.DisableRules = slices.Clone(c.DisableRules)
	target.FixRules = slices.Clone(c.FixRules)
}

// deepCopy creates a manual deep copy of the configuration.
// This is used as a fallback when YAML round-trip fails.
func (c *Config) deepCopy() *Config {
	clone := &Config{
		Settings:   c.Settings.clone(),
		Backups:    c.Backups, // BackupsConfig only has value types
		Fix:        c.Fix,
		DryRun:     c.DryRun,
		Format:     c.Format,
		RuleFormat: c.RuleFormat,
		Jobs:       c.Jobs,
		NoBackups:  c.NoBackups,
	}

	clone.Ignore = slices.Clone(c.Ignore)
	clone.Extensions = slices.Clone(c.Extensions)
	clone.EnableRules = slices.Clone(c.EnableRules)
	clone.DisableRules = slices.Clone(c.DisableRules)
	clone.FixRules = slices.Clone(c.FixRules)
	clone.Globals = maps.Clone(c.Globals)
	clone.Env = maps.Clone(c.Env)

	// Deep copy Rules map
	if c.Rules != nil {
		clone.Rules = make(map[string]RuleConfig, len(c.Rules))
		for k, v := range c.Rules {
			clone.Rules[k] = v.clone()
		}
	}

	return clone
}

// clone creates a deep copy of a RuleConfig.
func (rc RuleConfig) clone() RuleConfig {
	clone := RuleConfig{Severity: rc.Severity}

	if rc.AutoFix != nil {
		autoFix := *rc.AutoFix
		clone.AutoFix = &autoFix
	}

	// Note: nested maps/slices inside options are not deep copied
	clone.Options = slices.Clone(rc.Options)

	return clone
}

func (s Settings) clone() Settings {
	return Settings{
		JSDoc: JSDocSettings{
			TagNamePreference: maps.Clone(s.JSDoc.TagNamePreference),
			IgnorePrivate:     s.JSDoc.IgnorePrivate,
			IgnoreInternal:    s.JSDoc.IgnoreInternal,
		},
		Extra: maps.Clone(s.Extra),
	}
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
