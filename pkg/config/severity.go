package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityOff     Severity = "off"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ParseSeverity accepts the spellings used by eslint style configs:
// "off", "warn", "error", their aliases, and 0, 1, 2.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "allow", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarning, nil
	case "error", "deny", "2":
		return SeverityError, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
}

func severityFromInt(n int64) (Severity, error) {
	return ParseSeverity(strconv.FormatInt(n, 10))
}

// IsValid reports whether s is one of the canonical severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityOff, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// Enabled reports whether a rule at this severity runs.
func (s Severity) Enabled() bool {
	return s == SeverityWarning || s == SeverityError
}

// UnmarshalYAML accepts any spelling ParseSeverity accepts.
func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseSeverity(node.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalJSON accepts a string or a number.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode severity: %w", err)
	}
	parsed, err := severityFromAny(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalTOML accepts a string or an integer.
func (s *Severity) UnmarshalTOML(data any) error {
	parsed, err := severityFromAny(data)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func severityFromAny(v any) (Severity, error) {
	switch v := v.(type) {
	case string:
		return ParseSeverity(v)
	case float64:
		return severityFromInt(int64(v))
	case int64:
		return severityFromInt(v)
	case int:
		return severityFromInt(int64(v))
	}
	return "", fmt.Errorf("%w: %v", ErrInvalidSeverity, v)
}
