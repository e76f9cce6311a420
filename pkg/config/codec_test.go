package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/pkg/config"
)

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    config.Severity
		wantErr bool
	}{
		{in: "off", want: config.SeverityOff},
		{in: "allow", want: config.SeverityOff},
		{in: "0", want: config.SeverityOff},
		{in: "warn", want: config.SeverityWarning},
		{in: "Warning", want: config.SeverityWarning},
		{in: "1", want: config.SeverityWarning},
		{in: "error", want: config.SeverityError},
		{in: "deny", want: config.SeverityError},
		{in: "2", want: config.SeverityError},
		{in: "3", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseSeverity(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrInvalidSeverity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromJSON(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromJSON([]byte(`{
  "rules": {
    "no-debugger": "error",
    "no-undef": 1,
    "jsdoc/implements-on-classes": ["warn", {"ignore": true}],
    "no-unreachable": {"severity": "off", "auto_fix": false}
  },
  "globals": {"jQuery": "readonly", "legacy": false, "gone": "off"},
  "env": {"node": true, "browser": false},
  "settings": {
    "jsdoc": {"tagNamePreference": {"implements": "extends", "private": false}},
    "react": {"version": "18"}
  }
}`))
	require.NoError(t, err)

	assert.Equal(t, config.SeverityError, cfg.Rules["no-debugger"].Severity)
	assert.Equal(t, config.SeverityWarning, cfg.Rules["no-undef"].Severity)
	assert.Len(t, cfg.Rules["jsdoc/implements-on-classes"].Options, 1)
	require.NotNil(t, cfg.Rules["no-unreachable"].AutoFix)
	assert.False(t, *cfg.Rules["no-unreachable"].AutoFix)

	assert.Equal(t, config.GlobalReadonly, cfg.Globals["legacy"])
	assert.False(t, cfg.Globals["gone"].IsEnabled())
	assert.Equal(t, []string{"node"}, cfg.EnabledEnvs())

	jsdoc := cfg.Settings.JSDoc
	assert.Equal(t, "extends", jsdoc.ResolveTagName("implements"))
	assert.True(t, jsdoc.TagNamePreference["private"].Blocked)
	assert.Equal(t, "private", jsdoc.ResolveTagName("private"))
	assert.Equal(t, map[string]any{"version": "18"}, cfg.Settings.Extra["react"])
}

func TestFromJSON_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.FromJSON([]byte(`{"globals": {"a": "sometimes"}}`))
	require.ErrorIs(t, err, config.ErrInvalidGlobal)

	_, err = config.FromJSON([]byte(`{"rules": {"a": []}}`))
	require.ErrorIs(t, err, config.ErrInvalidRuleConfig)

	cfg, err := config.FromJSON(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Rules)
}

func TestToJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Rules["no-debugger"] = config.RuleConfig{Severity: config.SeverityError}
	original.Rules["no-undef"] = config.RuleConfig{
		Severity: config.SeverityWarning,
		Options:  []any{map[string]any{"typeof": true}},
	}
	original.Globals["jQuery"] = config.GlobalWritable

	data, err := original.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"no-debugger": "error"`)

	parsed, err := config.FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, original.Rules, parsed.Rules)
	assert.Equal(t, original.Globals, parsed.Globals)
}

func TestFromTOML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromTOML([]byte(`
ignore = ["dist/**"]

[rules]
no-debugger = "warn"
no-undef = 2
"jsdoc/implements-on-classes" = ["error", { ignore = true }]

[globals]
jQuery = "readonly"
legacy = true

[env]
browser = true

[settings.jsdoc.tagNamePreference]
class = "constructor"
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"dist/**"}, cfg.Ignore)
	assert.Equal(t, config.SeverityWarning, cfg.Rules["no-debugger"].Severity)
	assert.Equal(t, config.SeverityError, cfg.Rules["no-undef"].Severity)
	assert.Equal(t, true, cfg.Rules["jsdoc/implements-on-classes"].OptionMap()["ignore"])
	assert.Equal(t, config.GlobalWritable, cfg.Globals["legacy"])
	assert.True(t, cfg.Env["browser"])
	assert.Equal(t, "constructor", cfg.Settings.JSDoc.ResolveTagName("class"))
}

func TestFileFormatForPath(t *testing.T) {
	t.Parallel()

	tests := map[string]config.FileFormat{
		".gojsrc.yaml": config.FileFormatYAML,
		".gojsrc.yml":  config.FileFormatYAML,
		".gojsrc.json": config.FileFormatJSON,
		".gojsrc":      config.FileFormatJSON,
		"gojs.TOML":    config.FileFormatTOML,
	}
	for path, want := range tests {
		got, err := config.FileFormatForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := config.FileFormatForPath("config.ini")
	require.ErrorIs(t, err, config.ErrUnknownFileFormat)
}
