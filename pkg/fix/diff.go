package fix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines kept around each change.
const contextLines = 3

// Diff is a line diff between a file's content before and after fixing.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int

	before []string
	after  []string
}

// DiffHunk is one group of nearby changes. Starts are 1-based line numbers.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is a line of a hunk without its +, - or space prefix.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind tells context, added and removed lines apart.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// GenerateDiff compares original and modified line by line. It returns nil when
// they hold the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	before, after := splitLines(original), splitLines(modified)
	groups := difflib.NewMatcher(before, after).GetGroupedOpCodes(contextLines)

	d := &Diff{Path: path, before: before, after: after}
	for _, group := range groups {
		if onlyEqual(group) {
			continue
		}
		first, last := group[0], group[len(group)-1]
		hunk := DiffHunk{
			OriginalStart: first.I1 + 1,
			OriginalCount: last.I2 - first.I1,
			ModifiedStart: first.J1 + 1,
			ModifiedCount: last.J2 - first.J1,
		}
		for _, op := range group {
			if op.Tag == 'e' {
				hunk.Lines = appendLines(hunk.Lines, DiffLineContext, before[op.I1:op.I2])
				continue
			}
			if op.Tag == 'r' || op.Tag == 'd' {
				hunk.Lines = appendLines(hunk.Lines, DiffLineRemove, before[op.I1:op.I2])
				d.Deletions += op.I2 - op.I1
			}
			if op.Tag == 'r' || op.Tag == 'i' {
				hunk.Lines = appendLines(hunk.Lines, DiffLineAdd, after[op.J1:op.J2])
				d.Additions += op.J2 - op.J1
			}
		}
		d.Hunks = append(d.Hunks, hunk)
	}

	if len(d.Hunks) == 0 {
		return nil
	}
	return d
}

func onlyEqual(group []difflib.OpCode) bool {
	for _, op := range group {
		if op.Tag != 'e' {
			return false
		}
	}
	return true
}

func appendLines(lines []DiffLine, kind DiffLineKind, content []string) []DiffLine {
	for _, c := range content {
		lines = append(lines, DiffLine{Kind: kind, Content: c})
	}
	return lines
}

// Header returns the hunk's "@@ -a,b +c,d @@" line. A single-line range omits
// its count and an empty range starts at the line before it.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%s +%s @@",
		unifiedRange(h.OriginalStart, h.OriginalCount),
		unifiedRange(h.ModifiedStart, h.ModifiedCount))
}

func unifiedRange(start, count int) string {
	switch count {
	case 0:
		return strconv.Itoa(start-1) + ",0"
	case 1:
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "," + strconv.Itoa(count)
}

// GitHeader returns the "diff --git" line for the diff's path.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return "diff --git a/" + path + " b/" + path
}

// String renders the diff in unified format, without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminated(d.before),
		B:        terminated(d.after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	})
	if err != nil {
		return ""
	}
	return text
}

// FullString is String preceded by the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content on newlines. A final newline does not start a line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func terminated(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}
