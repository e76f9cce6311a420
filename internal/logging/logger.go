// Package logging holds the process-wide charmbracelet/log logger and carries
// it through contexts.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// EnvLogLevel names the environment variable that sets the default level.
const EnvLogLevel = "GOJS_LOG_LEVEL"

//nolint:gochecknoglobals // one logger per process
var (
	defaultOnce   sync.Once
	defaultLogger *log.Logger
)

// New returns a logger that writes to w at level, without timestamps.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// ParseLevel accepts the charmbracelet level names plus "warning".
// Anything else, including the empty string, means info.
func ParseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return log.WarnLevel
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the process logger, writing to stderr at $GOJS_LOG_LEVEL.
func Default() *log.Logger {
	defaultOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = New(os.Stderr, os.Getenv(EnvLogLevel))
		}
	})
	return defaultLogger
}

// SetDefault replaces the process logger.
func SetDefault(logger *log.Logger) {
	defaultOnce.Do(func() {})
	defaultLogger = logger
}

// SetLevel changes the level of the process logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
