// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles escape sequences in JSON string content.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unescape decodes the escape sequences in src, which is the content of a
// JSON string without its enclosing quotation marks.
//
// Invalid escapes are replaced by the Unicode replacement rune. A UTF-16
// surrogate pair written as two \u escapes decodes to a single rune.
// Unescape reports an error for an incomplete escape sequence.
func Unescape(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	putRune := func(r rune) { dec = utf8.AppendRune(dec, r) }
	for i >= 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex(src.SliceTo(4))
			src = src.SliceFrom(4)
			if err != nil {
				putRune(utf8.RuneError)
				break
			}
			if utf16.IsSurrogate(v) && src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
				if lo, err := parseHex(src.Slice(2, 6)); err == nil {
					if p := utf16.DecodeRune(v, lo); p != utf8.RuneError {
						putRune(p)
						src = src.SliceFrom(6)
						break
					}
				}
			}
			putRune(v)
		default:
			putRune(utf8.RuneError)
		}
		i = mem.IndexByte(src, '\\')
	}
	return mem.Append(dec, src), nil
}

func parseHex(data mem.RO) (rune, error) {
	var v rune
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
