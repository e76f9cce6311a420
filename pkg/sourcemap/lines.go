package sourcemap

import (
	"sort"
	"unicode/utf8"
)

// LineIndex converts byte offsets in a source text into zero-based line numbers and
// UTF-16 columns. The line table is computed once; column lookups resume from the
// previous query when moving forward on the same line.
type LineIndex struct {
	source     string
	lineStarts []uint32

	lastLine   int
	lastOffset uint32
	lastColumn int
}

// NewLineIndex scans source for JavaScript line terminators.
func NewLineIndex(source string) *LineIndex {
	starts := []uint32{0}
	for i := 0; i < len(source); {
		c := source[i]
		switch {
		case c == '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				i++
			}
			i++
			starts = append(starts, uint32(i))
		case c == '\n':
			i++
			starts = append(starts, uint32(i))
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(source[i:])
			i += size
			if r == '\u2028' || r == '\u2029' {
				starts = append(starts, uint32(i))
			}
		default:
			i++
		}
	}
	return &LineIndex{source: source, lineStarts: starts, lastLine: -1}
}

// LineCount returns the number of lines in the source.
func (li *LineIndex) LineCount() int {
	return len(li.lineStarts)
}

// LineStart returns the byte offset at which line begins.
func (li *LineIndex) LineStart(line int) uint32 {
	return li.lineStarts[line]
}

// Line returns the zero-based line containing offset.
func (li *LineIndex) Line(offset uint32) int {
	return sort.Search(len(li.lineStarts), func(i int) bool {
		return li.lineStarts[i] > offset
	}) - 1
}

// Position returns the zero-based line and UTF-16 column of offset.
func (li *LineIndex) Position(offset uint32) (int, int) {
	offset = min(offset, uint32(len(li.source)))
	line := li.Line(offset)

	from, column := li.lineStarts[line], 0
	if line == li.lastLine && offset >= li.lastOffset {
		from, column = li.lastOffset, li.lastColumn
	}
	column += utf16Len(li.source[from:offset])

	li.lastLine, li.lastOffset, li.lastColumn = line, offset, column
	return line, column
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
