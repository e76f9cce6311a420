package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gojs/internal/logging"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // a nil context must fall back to the default logger
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))

	logger := logging.New(&bytes.Buffer{}, "debug")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
}

func TestWithFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	ctx := logging.WithFile(logging.WithLogger(context.Background(), logger), "src/app.js")
	logging.FromContext(ctx).Debug("linting file", logging.FieldRules, 3)

	out := buf.String()
	assert.Contains(t, out, "linting file")
	assert.Contains(t, out, "path=src/app.js")
	assert.Contains(t, out, "rules=3")
}
