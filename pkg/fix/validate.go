package fix

import (
	"cmp"
	"fmt"
	"slices"
	"unicode/utf8"
)

// ValidationError reports an edit that cannot be applied to the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks every edit against content: the range must lie inside it
// and both ends must fall on character boundaries, since spans are byte offsets
// into UTF-8 source.
func ValidateEdits(edits []TextEdit, content []byte) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > len(content):
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, len(content)),
			}
		case !onBoundary(content, edit.StartOffset), !onBoundary(content, edit.EndOffset):
			return &ValidationError{Edit: edit, Message: "offset splits a multi-byte character"}
		}
	}
	return nil
}

func onBoundary(content []byte, offset int) bool {
	return offset == len(content) || utf8.RuneStart(content[offset])
}

// SortEdits orders edits by start offset, then end offset. Edits at the same
// position keep their relative order, so insertions stay in report order.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(cmp.Compare(a.StartOffset, b.StartOffset), cmp.Compare(a.EndOffset, b.EndOffset))
	})
}

// ResolveConflicts walks sorted edits and drops those that overlap an earlier
// one. Overlapping deletions and exact duplicates are folded into one edit
// instead; merged counts the edits folded that way.
func ResolveConflicts(sorted []TextEdit) (accepted, skipped []TextEdit, merged int) {
	if len(sorted) == 0 {
		return nil, nil, 0
	}

	current := sorted[0]
	for _, edit := range sorted[1:] {
		switch {
		case edit == current:
			merged++
		case edit.StartOffset >= current.EndOffset:
			accepted = append(accepted, current)
			current = edit
		case edit.NewText == "" && current.NewText == "":
			current.StartOffset = min(current.StartOffset, edit.StartOffset)
			current.EndOffset = max(current.EndOffset, edit.EndOffset)
			merged++
		default:
			skipped = append(skipped, edit)
		}
	}
	return append(accepted, current), skipped, merged
}

// PrepareEditsFiltered validates edits against content, sorts them and resolves
// overlaps. Only validation fails; conflicting edits come back as skipped.
func PrepareEditsFiltered(edits []TextEdit, content []byte) (accepted, skipped []TextEdit, merged int, err error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}
	if err := ValidateEdits(edits, content); err != nil {
		return nil, nil, 0, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)
	accepted, skipped, merged = ResolveConflicts(sorted)
	return accepted, skipped, merged, nil
}
