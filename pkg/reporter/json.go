package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/gojs/pkg/analysis"
)

// JSONRenderer writes the analysis report as a single JSON document.
type JSONRenderer struct {
	out     io.Writer
	compact bool
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{out: opts.Writer, compact: opts.Compact}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Findings == nil {
		// Consumers expect an array even when the run is clean.
		report.Findings = []analysis.FindingEntry{}
	}

	encoder := json.NewEncoder(r.out)
	if !r.compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
