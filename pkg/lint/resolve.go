package lint

import "github.com/yaklabco/gojs/pkg/config"

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// AutoFix indicates whether auto-fix is enabled for this rule.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// Options returns the configured rule options, if any.
func (rr ResolvedRule) Options() []any {
	if rr.Config == nil {
		return nil
	}
	return rr.Config.Options
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
		Config:   nil,
	}

	if cfg == nil {
		return rr
	}

	// Apply rule-specific config. Keys may omit the plugin prefix.
	if ruleCfg, ok := lookupRuleConfig(cfg.Rules, rule.ID()); ok {
		rr.Config = &ruleCfg

		if ruleCfg.Severity != "" {
			rr.Enabled = ruleCfg.Enabled()
			if rr.Enabled {
				rr.Severity = ruleCfg.Severity
			}
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	// Explicit enable/disable from the CLI wins over files.
	if matchesAny(rule.ID(), cfg.EnableRules) {
		rr.Enabled = true
	}
	if matchesAny(rule.ID(), cfg.DisableRules) {
		rr.Enabled = false
	}

	// Apply fix-rules filter from CLI.
	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && matchesAny(rule.ID(), cfg.FixRules)
	}

	// Disable auto-fix if --fix is not set.
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}

// lookupRuleConfig finds the entry for ruleID, preferring an exact key over
// one written without the plugin prefix.
func lookupRuleConfig(rules map[string]config.RuleConfig, ruleID string) (config.RuleConfig, bool) {
	if rc, ok := rules[ruleID]; ok {
		return rc, true
	}
	for key, rc := range rules {
		if RuleNameMatches(ruleID, key) {
			return rc, true
		}
	}
	return config.RuleConfig{}, false
}

func matchesAny(ruleID string, names []string) bool {
	for _, name := range names {
		if RuleNameMatches(ruleID, name) {
			return true
		}
	}
	return false
}
