package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalValue declares how a configured global may be used.
type GlobalValue string

const (
	GlobalReadonly GlobalValue = "readonly"
	GlobalWritable GlobalValue = "writable"
	GlobalOff      GlobalValue = "off"
)

// ParseGlobalValue accepts readonly, writable and off, the legacy spellings
// readable and writeable, and the legacy booleans (true is writable).
func ParseGlobalValue(s string) (GlobalValue, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "readonly", "readable", "false":
		return GlobalReadonly, nil
	case "writable", "writeable", "true":
		return GlobalWritable, nil
	case "off":
		return GlobalOff, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGlobal, s)
}

// IsEnabled reports whether the global is declared at all.
func (g GlobalValue) IsEnabled() bool {
	return g != GlobalOff
}

// UnmarshalYAML accepts strings and booleans.
func (g *GlobalValue) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseGlobalValue(node.Value)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// UnmarshalJSON accepts strings and booleans.
func (g *GlobalValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode global: %w", err)
	}
	return g.UnmarshalTOML(raw)
}

// UnmarshalTOML accepts strings and booleans.
func (g *GlobalValue) UnmarshalTOML(data any) error {
	var parsed GlobalValue
	var err error
	switch v := data.(type) {
	case string:
		parsed, err = ParseGlobalValue(v)
	case bool:
		parsed = GlobalReadonly
		if v {
			parsed = GlobalWritable
		}
	default:
		err = fmt.Errorf("%w: %v", ErrInvalidGlobal, data)
	}
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Settings is the plugin-scoped settings object. Keys other than jsdoc are
// kept verbatim in Extra.
type Settings struct {
	JSDoc JSDocSettings  `json:"jsdoc" yaml:"jsdoc,omitempty" toml:"jsdoc"`
	Extra map[string]any `json:"-" yaml:",inline" toml:"-"`
}

// UnmarshalJSON splits the jsdoc key from the rest.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	out := Settings{}
	for key, value := range raw {
		if key == "jsdoc" {
			if err := json.Unmarshal(value, &out.JSDoc); err != nil {
				return fmt.Errorf("decode settings.jsdoc: %w", err)
			}
			continue
		}
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("decode settings.%s: %w", key, err)
		}
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		out.Extra[key] = v
	}
	*s = out
	return nil
}

// MarshalJSON writes jsdoc alongside the extra keys.
func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+1)
	for key, value := range s.Extra {
		out[key] = value
	}
	out["jsdoc"] = s.JSDoc
	return json.Marshal(out)
}

// JSDocSettings configures the jsdoc rules.
type JSDocSettings struct {
	// TagNamePreference renames or blocks tags, keyed by the default tag name.
	TagNamePreference map[string]TagNamePreference `json:"tagNamePreference,omitempty" yaml:"tagNamePreference,omitempty" toml:"tagNamePreference,omitempty"`
	IgnorePrivate     bool                         `json:"ignorePrivate,omitempty" yaml:"ignorePrivate,omitempty" toml:"ignorePrivate,omitempty"`
	IgnoreInternal    bool                         `json:"ignoreInternal,omitempty" yaml:"ignoreInternal,omitempty" toml:"ignoreInternal,omitempty"`
}

// ResolveTagName returns the tag name the project uses for the default name.
func (s JSDocSettings) ResolveTagName(name string) string {
	if pref, ok := s.TagNamePreference[name]; ok && pref.Replacement != "" {
		return pref.Replacement
	}
	return name
}

// TagNamePreference is written as a replacement name, as false to block the
// tag, or as {message, replacement}.
type TagNamePreference struct {
	Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty" toml:"replacement,omitempty"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
	Blocked     bool   `json:"-" yaml:"-" toml:"-"`
}

type tagNamePreferenceFields struct {
	Replacement string `json:"replacement" yaml:"replacement"`
	Message     string `json:"message" yaml:"message"`
}

// UnmarshalYAML accepts a string, false, or a mapping.
func (p *TagNamePreference) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var fields tagNamePreferenceFields
		if err := node.Decode(&fields); err != nil {
			return fmt.Errorf("decode tag preference: %w", err)
		}
		*p = TagNamePreference{Replacement: fields.Replacement, Message: fields.Message}
		return nil
	}
	if node.Tag == "!!bool" {
		*p = TagNamePreference{Blocked: node.Value == "false"}
		return nil
	}
	*p = TagNamePreference{Replacement: node.Value}
	return nil
}

// MarshalYAML writes the most compact form that round trips.
func (p TagNamePreference) MarshalYAML() (any, error) {
	return p.compact(), nil
}

// MarshalJSON writes the most compact form that round trips.
func (p TagNamePreference) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.compact())
}

func (p TagNamePreference) compact() any {
	switch {
	case p.Blocked:
		return false
	case p.Message == "":
		return p.Replacement
	}
	return tagNamePreferenceFields{Replacement: p.Replacement, Message: p.Message}
}

// UnmarshalJSON accepts a string, false, or an object.
func (p *TagNamePreference) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode tag preference: %w", err)
	}
	return p.UnmarshalTOML(raw)
}

// UnmarshalTOML accepts a string, false, or a table.
func (p *TagNamePreference) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*p = TagNamePreference{Replacement: v}
	case bool:
		*p = TagNamePreference{Blocked: !v}
	case map[string]any:
		replacement, _ := v["replacement"].(string)
		message, _ := v["message"].(string)
		*p = TagNamePreference{Replacement: replacement, Message: message}
	default:
		return fmt.Errorf("unsupported tag preference %v", data)
	}
	return nil
}
