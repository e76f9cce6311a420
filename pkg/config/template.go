package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, only rules enabled by default are listed.
	Full bool

	// Format is the output format: "json", "yaml" or "toml".
	Format FileFormat

	// IncludeRules is a list of rule IDs to include.
	// If empty, all rules are included.
	IncludeRules []string

	// Rules overrides the default entry of the listed rules, as a pack does.
	// Overridden rules are always listed.
	Rules map[string]RuleConfig
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the lint package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	rules := selectRules(opts)

	cfg := &Config{
		Rules:  make(map[string]RuleConfig, len(rules)),
		Env:    map[string]bool{"browser": true, "es2022": true},
		Ignore: []string{"node_modules/**", "dist/**"},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
	}
	for _, rule := range rules {
		severity := rule.Severity
		if !rule.Enabled {
			severity = SeverityOff
		}
		cfg.Rules[rule.ID] = RuleConfig{Severity: severity}
		if override, ok := opts.Rules[rule.ID]; ok {
			cfg.Rules[rule.ID] = override
		}
	}

	switch opts.Format {
	case FileFormatYAML:
		return yamlTemplate(cfg, rules, opts.Full)
	case FileFormatTOML:
		var buf bytes.Buffer
		buf.WriteString(commentHeader())
		buf.WriteString("\n")
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return cfg.ToJSON()
	}
}

// selectRules returns the rules a template lists, sorted by ID.
func selectRules(opts TemplateOptions) []RuleInfo {
	rules := getRuleInfos()

	if len(opts.IncludeRules) > 0 {
		includeSet := make(map[string]bool)
		for _, id := range opts.IncludeRules {
			includeSet[id] = true
		}
		filtered := make([]RuleInfo, 0)
		for _, r := range rules {
			if includeSet[r.ID] {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	} else if !opts.Full {
		filtered := make([]RuleInfo, 0)
		for _, r := range rules {
			if _, overridden := opts.Rules[r.ID]; r.Enabled || overridden {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})
	return rules
}

// yamlTemplate writes the config with a documented rules section.
func yamlTemplate(cfg *Config, rules []RuleInfo, documented bool) ([]byte, error) {
	rulesSection := cfg.Rules
	cfg.Rules = nil
	body, err := cfg.ToYAMLWithHeader(commentHeader())
	cfg.Rules = rulesSection
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(body)
	buf.WriteString("\n# Severity is off, warn or error (or 0, 1, 2).\n")
	buf.WriteString("# Options follow the severity: rule: [error, {option: value}]\n")
	buf.WriteString("rules:\n")
	for _, rule := range rules {
		if documented {
			fmt.Fprintf(&buf, "\n  # %s\n", wrapComment(rule.Description, commentWrapWidth))
			if len(rule.Tags) > 0 {
				fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
			}
			if rule.CanFix {
				buf.WriteString("  # Auto-fix: yes\n")
			}
		}
		fmt.Fprintf(&buf, "  %s: %s\n", rule.ID, cfg.Rules[rule.ID].Severity)
	}
	return buf.Bytes(), nil
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}
	return nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

func commentHeader() string {
	return DefaultTemplateHeader() + "\n"
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gojs configuration
# See: https://github.com/yaklabco/gojs`
}
