package logging_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{" DEBUG ", log.DebugLevel},
		{"Warning", log.WarnLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logging.ParseLevel(tt.level))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(&buf, "warn")
	require.NotNil(t, logger)

	logger.Info("suppressed")
	logger.Warn("slow file", logging.FieldPath, "src/app.js")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "slow file")
	assert.Contains(t, out, "src/app.js")
}

// The default logger is process state, so these tests do not run in parallel.

func TestSetDefault(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.New(&bytes.Buffer{}, "error")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())
}

func TestSetLevel(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	logging.SetDefault(logging.New(&bytes.Buffer{}, "info"))

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}
