package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Rules map", func(t *testing.T) {
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"no-debugger": {
					Severity: config.SeverityError,
					Options:  []any{map[string]any{"style": "dash"}},
				},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		// Verify the rule config values are copied
		require.Contains(t, clone.Rules, "no-debugger")
		assert.Equal(t, config.SeverityError, clone.Rules["no-debugger"].Severity)
		assert.Equal(t, "dash", clone.Rules["no-debugger"].OptionMap()["style"])

		// Verify modifying clone doesn't affect original
		clone.Rules["no-debugger"] = config.RuleConfig{Severity: config.SeverityWarning}
		assert.Equal(t, config.SeverityError, original.Rules["no-debugger"].Severity)
	})

	t.Run("deep copies globals, env and settings", func(t *testing.T) {
		original := config.NewConfig()
		original.Globals["jQuery"] = config.GlobalReadonly
		original.Env["browser"] = true
		original.Settings.JSDoc.TagNamePreference = map[string]config.TagNamePreference{
			"class":   {Replacement: "constructor"},
			"private": {Blocked: true},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, config.GlobalReadonly, clone.Globals["jQuery"])
		assert.True(t, clone.Env["browser"])
		assert.Equal(t, "constructor", clone.Settings.JSDoc.ResolveTagName("class"))
		assert.True(t, clone.Settings.JSDoc.TagNamePreference["private"].Blocked)

		clone.Globals["jQuery"] = config.GlobalOff
		assert.Equal(t, config.GlobalReadonly, original.Globals["jQuery"])
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		original := &config.Config{
			Ignore: []string{"dist/**", "vendor/**"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.Ignore, clone.Ignore)

		// Verify modifying clone doesn't affect original
		clone.Ignore[0] = "changed"
		assert.Equal(t, "dist/**", original.Ignore[0])
	})

	t.Run("preserves all fields", func(t *testing.T) {
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"no-undef": {Severity: config.SeverityError},
			},
			Ignore:       []string{"*.min.js"},
			Extensions:   []string{".js"},
			Backups:      config.BackupsConfig{Enabled: true, Mode: "sidecar"},
			Fix:          true,
			DryRun:       true,
			Format:       config.FormatJSON,
			RuleFormat:   config.RuleFormatCombined,
			Jobs:         4,
			EnableRules:  []string{"no-undef", "no-debugger"},
			DisableRules: []string{"no-unreachable"},
			FixRules:     []string{"no-debugger"},
			NoBackups:    true,
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.Rules, clone.Rules)
		assert.Equal(t, original.Extensions, clone.Extensions)
		assert.Equal(t, original.Backups, clone.Backups)
		assert.Equal(t, original.Fix, clone.Fix)
		assert.Equal(t, original.DryRun, clone.DryRun)
		assert.Equal(t, original.Format, clone.Format)
		assert.Equal(t, original.RuleFormat, clone.RuleFormat)
		assert.Equal(t, original.Jobs, clone.Jobs)
		assert.Equal(t, original.NoBackups, clone.NoBackups)

		// Verify slices are copied
		assert.Equal(t, original.EnableRules, clone.EnableRules)
		assert.Equal(t, original.DisableRules, clone.DisableRules)
		assert.Equal(t, original.FixRules, clone.FixRules)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("rules use the shorthand form", func(t *testing.T) {
		cfg := &config.Config{
			Rules: map[string]config.RuleConfig{
				"no-debugger": {Severity: config.SeverityWarning},
			},
			Env: map[string]bool{"node": true},
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "no-debugger: warning")
		assert.Contains(t, string(data), "node: true")
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
rules:
  no-debugger: warn
  no-undef: 2
  jsdoc/implements-on-classes: [error, {ignore: true}]
  no-unreachable:
    severity: off
globals:
  jQuery: readonly
  legacy: true
env:
  browser: true
settings:
  jsdoc:
    tagNamePreference:
      class: constructor
  custom:
    key: value
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)

		assert.Equal(t, config.SeverityWarning, cfg.Rules["no-debugger"].Severity)
		assert.Equal(t, config.SeverityError, cfg.Rules["no-undef"].Severity)

		implements := cfg.Rules["jsdoc/implements-on-classes"]
		assert.Equal(t, config.SeverityError, implements.Severity)
		assert.Equal(t, true, implements.OptionMap()["ignore"])

		assert.False(t, cfg.Rules["no-unreachable"].Enabled())
		assert.Equal(t, config.GlobalReadonly, cfg.Globals["jQuery"])
		assert.Equal(t, config.GlobalWritable, cfg.Globals["legacy"])
		assert.Equal(t, []string{"browser"}, cfg.EnabledEnvs())
		assert.Equal(t, "constructor", cfg.Settings.JSDoc.ResolveTagName("class"))
		assert.Equal(t, "implements", cfg.Settings.JSDoc.ResolveTagName("implements"))
		assert.Contains(t, cfg.Settings.Extra, "custom")
	})

	t.Run("rejects unknown severity", func(t *testing.T) {
		_, err := config.FromYAML([]byte("rules:\n  no-debugger: loud\n"))
		require.ErrorIs(t, err, config.ErrInvalidSeverity)
	})

	t.Run("initializes empty maps", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`ignore: ["dist/**"]`))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Rules)
		assert.NotNil(t, cfg.Globals)
		assert.NotNil(t, cfg.Env)
	})
}
