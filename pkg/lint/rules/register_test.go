package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/pkg/lint"
)

func TestRegisterAll(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	assert.Equal(t, []string{
		"eslint/no-debugger",
		"eslint/no-undef",
		"eslint/no-unreachable",
		"jsdoc/implements-on-classes",
	}, registry.IDs())

	rule, ok := registry.GetByID("eslint/no-debugger")
	require.True(t, ok)
	assert.Equal(t, "no-debugger", rule.Name())
	assert.True(t, rule.CanFix())

	rule, ok = registry.GetByName("implements-on-classes")
	require.True(t, ok)
	assert.Equal(t, "jsdoc/implements-on-classes", rule.ID())
}

func TestRegisterLegacyAliases(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)
	RegisterLegacyAliases(registry)

	tests := []struct {
		name         string
		alias        string
		expectID     string
		expectExists bool
	}{
		{
			name:         "plugin-qualified name",
			alias:        "eslint-plugin-jsdoc/implements-on-classes",
			expectID:     "jsdoc/implements-on-classes",
			expectExists: true,
		},
		{
			name:         "bare name",
			alias:        "no-undef",
			expectID:     "eslint/no-undef",
			expectExists: true,
		},
		{
			name:         "full ID",
			alias:        "eslint/no-unreachable",
			expectID:     "eslint/no-unreachable",
			expectExists: true,
		},
		{
			name:         "nonexistent alias returns not found",
			alias:        "nonexistent-alias",
			expectExists: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, _, ok := registry.Resolve(tt.alias)

			if !tt.expectExists {
				assert.False(t, ok, "alias %q should not exist", tt.alias)
				return
			}

			require.True(t, ok, "alias %q should exist", tt.alias)
			assert.Equal(t, tt.expectID, id)
		})
	}
}

func TestDefaultRegistryHasAllRules(t *testing.T) {
	rules := lint.DefaultRegistry.Rules()
	assert.Len(t, rules, 4)

	for _, rule := range rules {
		documented, ok := rule.(lint.Documented)
		require.True(t, ok, "%s should have docs", rule.ID())
		assert.NotEmpty(t, documented.Docs())
	}
}
