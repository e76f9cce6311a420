package configloader

import (
	"strings"

	"github.com/yaklabco/gojs/pkg/lint"
)

// pluginPrefixes maps the plugin names eslint configs use to the prefix of
// our rule IDs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var pluginPrefixes = map[string]string{
	"eslint-plugin-jsdoc": "jsdoc",
	"jsdoc":               "jsdoc",
}

// extendsPacks maps shareable eslint configs to the built-in rule pack that
// approximates them.
//
//nolint:gochecknoglobals // Read-only lookup table.
var extendsPacks = map[string]string{
	"eslint:recommended":             "recommended",
	"eslint:all":                     "strict",
	"plugin:jsdoc/recommended":       "jsdoc",
	"plugin:jsdoc/recommended-error": "jsdoc",
}

// NormalizeRuleID converts a rule key from an eslint config to its canonical
// rule ID. Core rules are written without a prefix ("no-undef"); plugin rules
// carry the plugin name ("jsdoc/implements-on-classes"). Returns "" when the
// key names no registered rule.
func NormalizeRuleID(registry *lint.Registry, key string) string {
	if id, _, ok := registry.Resolve(key); ok {
		return id
	}

	plugin, name, hasPlugin := strings.Cut(key, "/")
	if !hasPlugin {
		if id, _, ok := registry.Resolve("eslint/" + key); ok {
			return id
		}
		return ""
	}

	prefix, ok := pluginPrefixes[strings.TrimPrefix(plugin, "@")]
	if !ok {
		return ""
	}
	if id, _, ok := registry.Resolve(prefix + "/" + name); ok {
		return id
	}
	return ""
}

// PackForExtends returns the rule pack standing in for a shareable config.
func PackForExtends(name string) (string, bool) {
	pack, ok := extendsPacks[name]
	return pack, ok
}
