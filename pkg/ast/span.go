// Package ast defines the JavaScript syntax tree shared by the parser, the semantic
// analyzer, the code generator and the linter.
package ast

// Span is a half-open [Start, End) range of byte offsets into the original source.
type Span struct {
	Start uint32
	End   uint32
}

// NewSpan creates a span covering [start, end).
func NewSpan(start, end uint32) Span {
	return Span{Start: start, End: end}
}

// GetSpan returns the span itself. Nodes embed Span to satisfy Node.
func (s Span) GetSpan() Span {
	return s
}

// Size returns the number of bytes covered by the span.
func (s Span) Size() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start >= s.End
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// ContainsOffset reports whether offset lies within [Start, End).
func (s Span) ContainsOffset(offset uint32) bool {
	return s.Start <= offset && offset < s.End
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// SourceText returns the slice of source covered by the span, clamped to the source.
func (s Span) SourceText(source string) string {
	end := min(int(s.End), len(source))
	start := min(int(s.Start), end)
	return source[start:end]
}
