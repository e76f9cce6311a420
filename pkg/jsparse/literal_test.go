package jsparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCookString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "abc", want: "abc"},
		{name: "simple escapes", raw: `a\nb\tc\\d\'e`, want: "a\nb\tc\\d'e"},
		{name: "hex escape", raw: `\x41`, want: "A"},
		{name: "unicode escape", raw: `\u0041`, want: "A"},
		{name: "code point escape", raw: `\u{1F600}`, want: "\U0001F600"},
		{name: "surrogate pair", raw: `\uD83D\uDE00`, want: "\U0001F600"},
		{name: "lone surrogate", raw: `\uD800`, want: "\xed\xa0\x80"},
		{name: "nul", raw: `\0`, want: "\x00"},
		{name: "legacy octal", raw: `\101`, want: "A"},
		{name: "line continuation", raw: "a\\\nb", want: "ab"},
		{name: "crlf continuation", raw: "a\\\r\nb", want: "ab"},
		{name: "identity escape", raw: `\q`, want: "q"},
		{name: "malformed hex is kept literally", raw: `\xZZ`, want: "xZZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cookString(tt.raw))
		})
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{raw: "0", want: 0, ok: true},
		{raw: "1.5", want: 1.5, ok: true},
		{raw: ".5", want: 0.5, ok: true},
		{raw: "1e3", want: 1000, ok: true},
		{raw: "1_000", want: 1000, ok: true},
		{raw: "0xFF", want: 255, ok: true},
		{raw: "0o17", want: 15, ok: true},
		{raw: "0b101", want: 5, ok: true},
		{raw: "017", want: 15, ok: true},
		{raw: "019", want: 19, ok: true},
		{raw: "0x", ok: false},
		{raw: "0b2", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, ok := parseNumber(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0)
			}
		})
	}
}
