package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gojs/pkg/fix"
)

func TestCompositeFix_Normalize(t *testing.T) {
	t.Parallel()

	source := "let a = b + c;"

	tests := []struct {
		name   string
		fix    fix.CompositeFix
		want   fix.TextEdit
		wantOK bool
	}{
		{
			name: "none",
			fix:  fix.None(),
		},
		{
			name:   "single",
			fix:    fix.Single(fix.TextEdit{StartOffset: 4, EndOffset: 5, NewText: "x"}),
			want:   fix.TextEdit{StartOffset: 4, EndOffset: 5, NewText: "x"},
			wantOK: true,
		},
		{
			name: "multiple edits fill the gap from source",
			fix: fix.Multiple(
				fix.TextEdit{StartOffset: 12, EndOffset: 13, NewText: "d"},
				fix.TextEdit{StartOffset: 8, EndOffset: 9, NewText: "e"},
			),
			want:   fix.TextEdit{StartOffset: 8, EndOffset: 13, NewText: "e + d"},
			wantOK: true,
		},
		{
			name: "inserts at the same offset keep order",
			fix: fix.Multiple(
				fix.TextEdit{StartOffset: 0, EndOffset: 0, NewText: "/* a */"},
				fix.TextEdit{StartOffset: 0, EndOffset: 3, NewText: "var"},
			),
			want:   fix.TextEdit{StartOffset: 0, EndOffset: 3, NewText: "/* a */var"},
			wantOK: true,
		},
		{
			name: "overlap is rejected",
			fix: fix.Multiple(
				fix.TextEdit{StartOffset: 0, EndOffset: 5, NewText: ""},
				fix.TextEdit{StartOffset: 4, EndOffset: 6, NewText: ""},
			),
		},
		{
			name: "out of range is rejected",
			fix:  fix.Single(fix.TextEdit{StartOffset: 10, EndOffset: 99}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.fix.Normalize(source)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, len(tt.fix.Edits()) == 0, tt.fix.IsEmpty())
			}
		})
	}
}
