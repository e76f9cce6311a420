package fix

import (
	"slices"
	"strings"
)

// CompositeFix is the result of a rule fixer: no edit, one edit, or several
// edits that must be applied together.
type CompositeFix struct {
	edits []TextEdit
}

// None is the empty fix.
func None() CompositeFix {
	return CompositeFix{}
}

// Single wraps one edit.
func Single(edit TextEdit) CompositeFix {
	return CompositeFix{edits: []TextEdit{edit}}
}

// Multiple groups edits that only make sense together.
func Multiple(edits ...TextEdit) CompositeFix {
	return CompositeFix{edits: edits}
}

// IsEmpty reports whether the fix changes nothing.
func (c CompositeFix) IsEmpty() bool {
	return len(c.edits) == 0
}

// Edits returns the edits in the order they were added.
func (c CompositeFix) Edits() []TextEdit {
	return c.edits
}

// Normalize folds the fix into a single edit over source spanning from the
// first edit's start to the last edit's end, with the untouched text between
// edits copied from source. It reports false for an empty fix, for edits that
// overlap and for edits outside source.
func (c CompositeFix) Normalize(source string) (TextEdit, bool) {
	switch len(c.edits) {
	case 0:
		return TextEdit{}, false
	case 1:
		e := c.edits[0]
		if e.StartOffset < 0 || e.StartOffset > e.EndOffset || e.EndOffset > len(source) {
			return TextEdit{}, false
		}
		return e, true
	}

	edits := slices.Clone(c.edits)
	SortEdits(edits)

	start := edits[0].StartOffset
	if start < 0 {
		return TextEdit{}, false
	}
	cursor := start
	var text strings.Builder
	for _, e := range edits {
		if e.StartOffset < cursor || e.EndOffset < e.StartOffset || e.EndOffset > len(source) {
			return TextEdit{}, false
		}
		text.WriteString(source[cursor:e.StartOffset])
		text.WriteString(e.NewText)
		cursor = e.EndOffset
	}

	return TextEdit{StartOffset: start, EndOffset: cursor, NewText: text.String()}, true
}
