package codegen

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gojs/pkg/ast"
)

const hexDigits = "0123456789abcdef"

func (p *Codegen) printStringLiteral(s *ast.StringLiteral) {
	p.addSourceMapping(s.Start)
	p.printQuotedString(s.Value)
}

func (p *Codegen) printQuotedString(value string) {
	p.wrapQuote(func(quote byte) {
		p.code = appendEscaped(p.code, value, quote)
	})
}

// QuoteString returns value as a JavaScript string literal delimited by quote.
func QuoteString(value string, quote byte) string {
	buf := make([]byte, 0, len(value)+2)
	buf = append(buf, quote)
	buf = appendEscaped(buf, value, quote)
	buf = append(buf, quote)
	return string(buf)
}

// appendEscaped escapes value for a string literal delimited by quote. Value may
// hold lone surrogates encoded as three-byte sequences, which are written as
// \u escapes.
func appendEscaped(buf []byte, value string, quote byte) []byte {
	for i := 0; i < len(value); {
		c := value[i]
		switch c {
		case quote:
			buf = append(buf, '\\', quote)
		case '\\':
			buf = append(buf, '\\', '\\')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		case '\b':
			buf = append(buf, '\\', 'b')
		case '\v':
			buf = append(buf, '\\', 'v')
		case '\f':
			buf = append(buf, '\\', 'f')
		case 0:
			if i+1 < len(value) && value[i+1] >= '0' && value[i+1] <= '9' {
				buf = append(buf, `\x00`...)
			} else {
				buf = append(buf, '\\', '0')
			}
		default:
			switch {
			case c < 0x20:
				buf = append(buf, '\\', 'x', hexDigits[c>>4], hexDigits[c&0xF])
			case c < utf8.RuneSelf:
				buf = append(buf, c)
			case c == 0xED && i+2 < len(value) && value[i+1] >= 0xA0 && value[i+1] <= 0xBF:
				// A surrogate half has no valid UTF-8 encoding.
				code := rune(0xD000) | rune(value[i+1]&0x3F)<<6 | rune(value[i+2]&0x3F)
				buf = appendUnicodeEscape(buf, code)
				i += 3
				continue
			default:
				r, size := utf8.DecodeRuneInString(value[i:])
				switch {
				case r == utf8.RuneError && size == 1:
					buf = appendUnicodeEscape(buf, utf8.RuneError)
				case r == '\u2028' || r == '\u2029' || r == '\uFEFF':
					buf = appendUnicodeEscape(buf, r)
				default:
					buf = append(buf, value[i:i+size]...)
				}
				i += size
				continue
			}
		}
		i++
	}
	return buf
}

func appendUnicodeEscape(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigits[(r>>12)&0xF], hexDigits[(r>>8)&0xF], hexDigits[(r>>4)&0xF], hexDigits[r&0xF])
}

func (p *Codegen) printNumber(n *ast.NumericLiteral, level ast.Level) {
	value := n.Value
	switch {
	case math.IsNaN(value):
		p.printKeyword("NaN")
		return
	case math.IsInf(value, 0):
		p.wrap(value < 0 && level >= ast.LPrefix, func() {
			if value < 0 {
				p.printOperator(opNeg)
			}
			p.printKeyword("Infinity")
		})
		return
	}

	if value < 0 || (value == 0 && math.Signbit(value)) {
		p.wrap(level >= ast.LPrefix, func() {
			p.printOperator(opNeg)
			p.printNumberText(formatNumber(-value, p.options.Minify))
		})
		return
	}

	text := n.Raw
	if p.options.Minify || text == "" {
		text = formatNumber(value, p.options.Minify)
	}
	p.printNumberText(text)
}

func (p *Codegen) printNumberText(text string) {
	p.printSpaceBeforeIdentifier()
	p.printStr(text)
	if strings.Trim(text, "0123456789_") == "" {
		p.needSpaceBeforeDot = len(p.code)
	}
}

// formatNumber renders a non-negative finite number the way ECMAScript's
// Number::toString does, or in its shortest equivalent form when minify is set.
func formatNumber(value float64, minify bool) string {
	var text string
	if value == 0 {
		text = "0"
	} else if value >= 1e21 || value < 1e-6 {
		text = strconv.FormatFloat(value, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(text, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		if sign == "-" || !minify {
			exp = sign + exp
		}
		text = mantissa + "e" + exp
	} else {
		text = strconv.FormatFloat(value, 'f', -1, 64)
	}

	if !minify {
		return text
	}

	if strings.HasPrefix(text, "0.") {
		text = text[1:]
	}
	if !strings.ContainsAny(text, ".e") {
		trimmed := strings.TrimRight(text, "0")
		if zeros := len(text) - len(trimmed); zeros >= 3 {
			text = trimmed + "e" + strconv.Itoa(zeros)
		}
	}
	return text
}
