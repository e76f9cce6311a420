package rules

import "github.com/yaklabco/gojs/pkg/config"

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points
// for .gojsrc files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "recommended", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// RecommendedPack returns the correctness rules at their usual severity.
func RecommendedPack() Pack {
	return Pack{
		Name:        "recommended",
		Description: "Correctness rules: debugger statements, undefined names, dead code",
		Rules: map[string]config.RuleConfig{
			"eslint/no-debugger":    enabled(config.SeverityWarning),
			"eslint/no-undef":       enabled(config.SeverityError),
			"eslint/no-unreachable": enabled(config.SeverityError),
		},
	}
}

// StrictPack returns every built-in rule as an error.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every rule as an error, including JSDoc checks",
		Rules: map[string]config.RuleConfig{
			"eslint/no-debugger":          enabled(config.SeverityError),
			"eslint/no-undef":             enabled(config.SeverityError),
			"eslint/no-unreachable":       enabled(config.SeverityError),
			"jsdoc/implements-on-classes": enabled(config.SeverityError),
		},
	}
}

// JSDocPack returns documentation checks only.
func JSDocPack() Pack {
	return Pack{
		Name:        "jsdoc",
		Description: "JSDoc pack: documentation tag checks, other rules off",
		Rules: map[string]config.RuleConfig{
			"eslint/no-debugger":          enabled(config.SeverityOff),
			"eslint/no-undef":             enabled(config.SeverityOff),
			"eslint/no-unreachable":       enabled(config.SeverityOff),
			"jsdoc/implements-on-classes": enabled(config.SeverityWarning),
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		RecommendedPack(),
		StrictPack(),
		JSDocPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// Apply copies the pack's rule settings into cfg, replacing existing entries.
func (p Pack) Apply(cfg *config.Config) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig, len(p.Rules))
	}
	for id, rc := range p.Rules {
		cfg.Rules[id] = rc
	}
}

// enabled creates a RuleConfig with the given severity.
func enabled(sev config.Severity) config.RuleConfig {
	return config.RuleConfig{Severity: sev}
}
