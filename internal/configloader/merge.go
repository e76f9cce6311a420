package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/gojs/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so a layer can only switch these on.
	if override.Fix {
		result.Fix = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Rules = mergeRules(base.Rules, override.Rules)
	result.Globals = mergeMap(base.Globals, override.Globals)
	result.Env = mergeMap(base.Env, override.Env)
	result.Settings = mergeSettings(base.Settings, override.Settings)

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.EnableRules != nil {
		result.EnableRules = slices.Clone(override.EnableRules)
	}
	if override.DisableRules != nil {
		result.DisableRules = slices.Clone(override.DisableRules)
	}
	if override.FixRules != nil {
		result.FixRules = slices.Clone(override.FixRules)
	}

	return &result
}

// mergeMap copies base and lays override on top. Both inputs are left untouched.
func mergeMap[V any](base, override map[string]V) map[string]V {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]V, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// mergeRules performs deep merge of rule configurations.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeRuleConfig merges individual rule configurations. Options replace
// rather than merge, as a rule entry in eslint does.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Severity != "" {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}
	if override.Options != nil {
		result.Options = slices.Clone(override.Options)
	}

	return result
}

// mergeSettings merges plugin settings key by key.
func mergeSettings(base, override config.Settings) config.Settings {
	result := config.Settings{
		JSDoc: config.JSDocSettings{
			TagNamePreference: mergeMap(base.JSDoc.TagNamePreference, override.JSDoc.TagNamePreference),
			IgnorePrivate:     base.JSDoc.IgnorePrivate || override.JSDoc.IgnorePrivate,
			IgnoreInternal:    base.JSDoc.IgnoreInternal || override.JSDoc.IgnoreInternal,
		},
		Extra: mergeMap(base.Extra, override.Extra),
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
