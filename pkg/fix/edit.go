// Package fix applies the text edits that lint rules attach to diagnostics:
// validation against the source, conflict resolution, application and diffs.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) of a file with NewText.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}
