package config

import "strings"

// FormatRuleID formats a rule identifier based on the given format.
// Rule IDs are "plugin/name"; core rules have no plugin prefix.
// Falls back to ID if name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	// Fall back to ID if name is empty
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatCombined:
		plugin, _, found := strings.Cut(ruleID, "/")
		if !found || plugin == "eslint" {
			return "eslint(" + ruleName + ")"
		}
		return "eslint-plugin-" + plugin + "(" + ruleName + ")"
	case RuleFormatName:
		return ruleName
	default:
		// Default to name format
		return ruleName
	}
}
