package rules

import "github.com/yaklabco/gojs/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// eslint core
	registry.Register(NewNoDebuggerRule())
	registry.Register(NewNoUndefRule())
	registry.Register(NewNoUnreachableRule())

	// eslint-plugin-jsdoc
	registry.Register(NewImplementsOnClassesRule())
}

// RegisterLegacyAliases registers the plugin-qualified names eslint configs
// use for rules whose canonical ID carries a short plugin prefix. For example:
//   - "eslint-plugin-jsdoc/implements-on-classes" -> jsdoc/implements-on-classes.
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("eslint-plugin-jsdoc/implements-on-classes", "jsdoc/implements-on-classes")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
}
