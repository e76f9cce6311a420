package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gojs/internal/ui/pretty"
	"github.com/yaklabco/gojs/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		total += r.writeFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// writeFile prints one file's findings and returns how many were printed.
func (r *TextReporter) writeFile(file runner.FileOutcome) int {
	path := relativeTo(r.opts.WorkingDir, file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}
	if file.Result == nil {
		return 0
	}
	if file.Result.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Warning.Render(file.Result.Summary()),
		)
	}
	if file.Result.FileResult == nil || len(file.Result.Findings) == 0 {
		return 0
	}

	var source pretty.Source
	if r.opts.ShowContext {
		source = file.Result.FileResult
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Result.Findings)))
	}
	for i := range file.Result.Findings {
		fmt.Fprint(r.bw, r.styles.FormatFinding(path, &file.Result.Findings[i], source, r.opts.RuleFormat))
	}
	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}

	return len(file.Result.Findings)
}
