package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for name, rendered := range map[string]string{
		"bold":      styles.Bold.Render("x"),
		"error":     styles.Error.Render("x"),
		"underline": styles.Underline.Render("x"),
		"help":      styles.Help.Render("x"),
	} {
		assert.Equal(t, "x", rendered, name)
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss drops ANSI codes when no TTY is detected, so only check
	// that every style still renders its input.
	for _, rendered := range []string{
		styles.Error.Render("x"),
		styles.Warning.Render("x"),
		styles.FilePath.Render("x"),
		styles.Gutter.Render("x"),
		styles.Label.Render("x"),
		styles.DiffHunk.Render("x"),
		styles.TableWarnRow.Render("x"),
	} {
		assert.Contains(t, rendered, "x")
	}
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "buffers are not terminals")
	assert.False(t, pretty.IsColorEnabled("", &buf))
	assert.False(t, pretty.IsColorEnabled("unknown", &buf))
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}
