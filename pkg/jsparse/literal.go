package jsparse

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// cookString decodes the escape sequences in the body of a string literal or
// template chunk. Lone surrogates are kept as their three-byte encodings so
// the printer can write them back as \u escapes.
func cookString(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			i++
			continue
		}

		i++
		c = raw[i]
		i++
		switch c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'v':
			sb.WriteByte('\v')
		case 'f':
			sb.WriteByte('\f')
		case '\r':
			// Line continuation.
			if i < len(raw) && raw[i] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if value, ok := parseHex(raw, i, 2); ok {
				sb.WriteRune(rune(value))
				i += 2
			} else {
				sb.WriteByte('x')
			}
		case 'u':
			code, next, ok := parseUnicodeEscape(raw, i)
			if !ok {
				sb.WriteByte('u')
				continue
			}
			i = next
			if code >= 0xD800 && code <= 0xDBFF && strings.HasPrefix(raw[i:], `\u`) {
				if low, after, lowOK := parseUnicodeEscape(raw, i+2); lowOK && low >= 0xDC00 && low <= 0xDFFF {
					sb.WriteRune((code-0xD800)<<10 + (low - 0xDC00) + 0x10000)
					i = after
					continue
				}
			}
			writeCodePoint(&sb, code)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			// \0 and legacy octal escapes.
			value := rune(c - '0')
			for n := 1; n < 3 && i < len(raw) && raw[i] >= '0' && raw[i] <= '7'; n++ {
				next := value*8 + rune(raw[i]-'0')
				if next > 0xFF {
					break
				}
				value = next
				i++
			}
			sb.WriteRune(value)
		default:
			if c >= utf8.RuneSelf {
				r, size := utf8.DecodeRuneInString(raw[i-1:])
				i += size - 1
				if r == '\u2028' || r == '\u2029' {
					continue
				}
				sb.WriteRune(r)
				continue
			}
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func parseHex(s string, at, n int) (rune, bool) {
	if at+n > len(s) {
		return 0, false
	}
	value, err := strconv.ParseUint(s[at:at+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(value), true
}

// parseUnicodeEscape parses the part of a \u escape after the "u".
func parseUnicodeEscape(s string, at int) (rune, int, bool) {
	if at < len(s) && s[at] == '{' {
		end := strings.IndexByte(s[at:], '}')
		if end < 2 {
			return 0, at, false
		}
		value, err := strconv.ParseUint(s[at+1:at+end], 16, 32)
		if err != nil || value > utf8.MaxRune {
			return 0, at, false
		}
		return rune(value), at + end + 1, true
	}
	value, ok := parseHex(s, at, 4)
	return value, at + 4, ok
}

// writeCodePoint writes code, encoding surrogate halves the way WTF-8 does.
func writeCodePoint(sb *strings.Builder, code rune) {
	if code >= 0xD800 && code <= 0xDFFF {
		sb.WriteByte(byte(0xE0 | code>>12))
		sb.WriteByte(byte(0x80 | (code>>6)&0x3F))
		sb.WriteByte(byte(0x80 | code&0x3F))
		return
	}
	sb.WriteRune(code)
}

// parseNumber evaluates a numeric literal, including separators, radix prefixes
// and legacy octal forms.
func parseNumber(raw string) (float64, bool) {
	text := strings.ReplaceAll(raw, "_", "")
	lower := strings.ToLower(text)

	switch {
	case strings.HasPrefix(lower, "0x"):
		return parseRadix(lower[2:], 16)
	case strings.HasPrefix(lower, "0o"):
		return parseRadix(lower[2:], 8)
	case strings.HasPrefix(lower, "0b"):
		return parseRadix(lower[2:], 2)
	case len(lower) > 1 && lower[0] == '0' && isDigits(lower[1:]):
		if strings.ContainsAny(lower, "89") {
			break
		}
		return parseRadix(lower[1:], 8)
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func parseRadix(digits string, base float64) (float64, bool) {
	if digits == "" {
		return 0, false
	}
	var value float64
	for i := range len(digits) {
		var d float64
		switch c := digits[i]; {
		case c >= '0' && c <= '9':
			d = float64(c - '0')
		case c >= 'a' && c <= 'f':
			d = float64(c-'a') + 10
		default:
			return 0, false
		}
		if d >= base {
			return 0, false
		}
		value = value*base + d
	}
	return value, true
}

func isDigits(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
