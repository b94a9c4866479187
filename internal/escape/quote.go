// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

const hexDigit = "0123456789abcdef"

// Quote renders src as a double-quoted JSON string, escaping control
// characters, quotation marks, and backslashes.
func Quote(src mem.RO) string {
	var buf strings.Builder
	buf.Grow(src.Len() + 2)
	buf.WriteByte('"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch {
		case r == '\\' || r == '"':
			buf.WriteByte('\\')
			buf.WriteByte(byte(r))
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				buf.WriteByte('\\')
				buf.WriteByte(b)
			} else {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigit[r>>4])
				buf.WriteByte(hexDigit[r&15])
			}
		case r == utf8.RuneError && n == 1:
			buf.WriteString(`\ufffd`) // invalid UTF-8
		case r == '\u2028' || r == '\u2029':
			buf.WriteString(`\u202`)
			buf.WriteByte(hexDigit[r&15])
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
