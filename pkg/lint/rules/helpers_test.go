package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/fix"
	"github.com/yaklabco/gojs/pkg/lint"
)

// lintSource runs a single rule over src and returns the file result.
func lintSource(t *testing.T, rule lint.Rule, src string, cfg *config.Config) *lint.FileResult {
	t.Helper()

	if cfg == nil {
		cfg = config.NewConfig()
	}
	registry := lint.NewRegistry()
	registry.Register(rule)

	result, err := lint.NewEngine(registry).LintFile(context.Background(), "test.js", []byte(src), cfg)
	require.NoError(t, err)
	return result
}

// fixSource runs a single rule with fixing on and applies the accepted edits.
func fixSource(t *testing.T, rule lint.Rule, src string) string {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Fix = true
	result := lintSource(t, rule, src, cfg)
	return string(fix.ApplyEdits([]byte(src), result.Edits))
}
