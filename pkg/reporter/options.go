package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// SummaryOrder controls which table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext prints a code frame under each finding.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile groups findings under a per-file header (text format).
	GroupByFile bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder SummaryOrder

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// Registry supplies rule metadata for SARIF output. Optional.
	Registry *lint.Registry

	// ToolVersion is reported as the SARIF driver version.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: SummaryOrderRules,
		ToolVersion:  "dev",
	}
}
