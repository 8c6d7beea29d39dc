/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package parse

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// stringValue returns the cooked value of a quoted string or template
// literal, as it appears in source including its delimiters.
func stringValue(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	return unescape(body)
}

// unescape decodes JavaScript escape sequences. Malformed sequences are
// kept verbatim.
func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}

		c := s[i+1]
		i += 2
		switch c {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			r, n := parseOctal(s, i-1)
			b.WriteRune(r)
			i += n - 1
		case '\n':
			// line continuation
		case '\r':
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case 'x':
			if r, ok := parseHex(s, i, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteString(`\x`)
			}
		case 'u':
			r, n := parseUnicode(s, i)
			if n == 0 {
				b.WriteString(`\u`)
				break
			}
			i += n
			if utf16.IsSurrogate(r) {
				if r2, n2 := parseUnicodeEscape(s, i); n2 > 0 {
					if pair := utf16.DecodeRune(r, r2); pair != utf8.RuneError {
						r = pair
						i += n2
					}
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// parseUnicode decodes the part of a \u escape after the "u", either four
// hex digits or a braced code point. It returns the number of bytes read,
// or 0 if the escape is malformed.
func parseUnicode(s string, i int) (rune, int) {
	if i < len(s) && s[i] == '{' {
		end := strings.IndexByte(s[i:], '}')
		if end < 2 {
			return 0, 0
		}
		v, err := strconv.ParseUint(s[i+1:i+end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0
		}
		return rune(v), end + 1
	}
	if r, ok := parseHex(s, i, 4); ok {
		return r, 4
	}
	return 0, 0
}

// parseUnicodeEscape decodes a complete \uXXXX escape starting at i.
func parseUnicodeEscape(s string, i int) (rune, int) {
	if i+1 >= len(s) || s[i] != '\\' || s[i+1] != 'u' {
		return 0, 0
	}
	r, n := parseUnicode(s, i+2)
	if n == 0 {
		return 0, 0
	}
	return r, n + 2
}

func parseHex(s string, i, digits int) (rune, bool) {
	if i+digits > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[i:i+digits], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// parseOctal decodes a legacy octal escape starting at i: up to three
// digits when the first is 0-3, up to two otherwise, as sloppy-mode
// JavaScript reads them. It returns the code point and digits consumed.
func parseOctal(s string, i int) (rune, int) {
	limit := 2
	if s[i] <= '3' {
		limit = 3
	}
	var r rune
	n := 0
	for n < limit && i+n < len(s) && s[i+n] >= '0' && s[i+n] <= '7' {
		r = r*8 + rune(s[i+n]-'0')
		n++
	}
	return r, n
}
