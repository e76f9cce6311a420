package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gojs/internal/ui/pretty"
	"github.com/yaklabco/gojs/pkg/fix"
	"github.com/yaklabco/gojs/pkg/runner"
)

// DiffReporter prints the pending fixes of a dry run as git-style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. The count it returns is the number of files
// with pending changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		files++
		additions += file.Result.Diff.Additions
		deletions += file.Result.Diff.Deletions
		r.writeDiff(file.Result.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}

	return files, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := filepath.ToSlash(relativeTo(r.opts.WorkingDir, diff.Path))
	path = strings.TrimPrefix(path, "/")

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(hunk.Header()))

		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+"+line.Content))
			case fix.DiffLineRemove:
				fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("-"+line.Content))
			default:
				fmt.Fprintln(r.bw, r.styles.DiffContext.Render(" "+line.Content))
			}
		}
	}

	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pluralWord(files, "file"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pluralWord(additions, "insertion"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pluralWord(deletions, "deletion"))))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}
