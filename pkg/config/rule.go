package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// RuleConfig holds per-rule configuration. In files it is written either as a
// bare severity ("warn", 1) or as [severity, options...]; the expanded mapping
// form is also accepted.
type RuleConfig struct {
	Severity Severity `json:"severity" yaml:"severity" toml:"severity"`
	AutoFix  *bool    `json:"auto_fix,omitempty" yaml:"auto_fix,omitempty" toml:"auto_fix,omitempty"`
	Options  []any    `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// ruleConfigFields decodes the mapping form without recursing into the custom unmarshalers.
type ruleConfigFields struct {
	Severity string `json:"severity" yaml:"severity" toml:"severity"`
	AutoFix  *bool  `json:"auto_fix,omitempty" yaml:"auto_fix,omitempty" toml:"auto_fix,omitempty"`
	Options  []any  `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

func (f ruleConfigFields) toRuleConfig() (RuleConfig, error) {
	if f.Severity == "" {
		return RuleConfig{AutoFix: f.AutoFix, Options: f.Options}, nil
	}
	severity, err := ParseSeverity(f.Severity)
	if err != nil {
		return RuleConfig{}, err
	}
	return RuleConfig{Severity: severity, AutoFix: f.AutoFix, Options: f.Options}, nil
}

// Enabled reports whether the rule runs.
func (rc RuleConfig) Enabled() bool {
	return rc.Severity.Enabled()
}

// OptionMap returns the first option when it is an object, the usual shape of
// rule options.
func (rc RuleConfig) OptionMap() map[string]any {
	if len(rc.Options) == 0 {
		return nil
	}
	m, _ := rc.Options[0].(map[string]any)
	return m
}

func (rc RuleConfig) isShorthand() bool {
	return rc.AutoFix == nil && len(rc.Options) == 0
}

// UnmarshalYAML accepts a severity scalar, a [severity, options...] sequence
// or a mapping.
func (rc *RuleConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			*rc = RuleConfig{}
			return nil
		}
		severity, err := ParseSeverity(node.Value)
		if err != nil {
			return err
		}
		*rc = RuleConfig{Severity: severity}
		return nil

	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return fmt.Errorf("%w: empty list", ErrInvalidRuleConfig)
		}
		severity, err := ParseSeverity(node.Content[0].Value)
		if err != nil {
			return err
		}
		out := RuleConfig{Severity: severity}
		for _, item := range node.Content[1:] {
			var option any
			if err := item.Decode(&option); err != nil {
				return fmt.Errorf("decode rule option: %w", err)
			}
			out.Options = append(out.Options, option)
		}
		*rc = out
		return nil

	case yaml.MappingNode:
		var fields ruleConfigFields
		if err := node.Decode(&fields); err != nil {
			return fmt.Errorf("decode rule: %w", err)
		}
		out, err := fields.toRuleConfig()
		if err != nil {
			return err
		}
		*rc = out
		return nil
	}
	return fmt.Errorf("%w: line %d", ErrInvalidRuleConfig, node.Line)
}

// MarshalYAML writes the shorthand form when there is nothing but a severity.
func (rc RuleConfig) MarshalYAML() (any, error) {
	if rc.isShorthand() {
		return string(rc.Severity), nil
	}
	return ruleConfigFields{Severity: string(rc.Severity), AutoFix: rc.AutoFix, Options: rc.Options}, nil
}

// UnmarshalJSON accepts a severity string or number, an array or an object.
func (rc *RuleConfig) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var fields ruleConfigFields
		if err := json.Unmarshal(data, &fields); err != nil {
			return fmt.Errorf("decode rule: %w", err)
		}
		out, err := fields.toRuleConfig()
		if err != nil {
			return err
		}
		*rc = out
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode rule: %w", err)
	}
	return rc.fromAny(raw)
}

// MarshalJSON writes a bare severity or a [severity, options...] array.
func (rc RuleConfig) MarshalJSON() ([]byte, error) {
	if rc.isShorthand() {
		return json.Marshal(string(rc.Severity))
	}
	if rc.AutoFix != nil {
		return json.Marshal(ruleConfigFields{Severity: string(rc.Severity), AutoFix: rc.AutoFix, Options: rc.Options})
	}
	return json.Marshal(append([]any{string(rc.Severity)}, rc.Options...))
}

// UnmarshalTOML accepts the same shapes as the JSON form.
func (rc *RuleConfig) UnmarshalTOML(data any) error {
	return rc.fromAny(data)
}

func (rc *RuleConfig) fromAny(raw any) error {
	switch v := raw.(type) {
	case []any:
		if len(v) == 0 {
			return fmt.Errorf("%w: empty list", ErrInvalidRuleConfig)
		}
		severity, err := severityFromAny(v[0])
		if err != nil {
			return err
		}
		*rc = RuleConfig{Severity: severity, Options: v[1:]}
		if len(rc.Options) == 0 {
			rc.Options = nil
		}
		return nil

	case map[string]any:
		out := RuleConfig{}
		severity, err := severityFromAny(v["severity"])
		if err != nil {
			return err
		}
		out.Severity = severity
		if autoFix, ok := v["auto_fix"].(bool); ok {
			out.AutoFix = &autoFix
		}
		if options, ok := v["options"].([]any); ok && len(options) > 0 {
			out.Options = options
		}
		*rc = out
		return nil
	}

	severity, err := severityFromAny(raw)
	if err != nil {
		return err
	}
	*rc = RuleConfig{Severity: severity}
	return nil
}
