package fix

// ApplyEdits returns content with edits applied. Edits must come from
// PrepareEditsFiltered: sorted and non-overlapping.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, e := range edits {
		size += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	out := make([]byte, 0, size)
	cursor := 0
	for _, e := range edits {
		out = append(out, content[cursor:e.StartOffset]...)
		out = append(out, e.NewText...)
		cursor = e.EndOffset
	}
	return append(out, content[cursor:]...)
}
