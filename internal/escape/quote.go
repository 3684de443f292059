// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of strings for JSON output.
package escape

import (
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

var hexDigit = []byte("0123456789abcdef")

// AppendQuoted appends the JSON string encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice.
// Invalid UTF-8 sequences are replaced by the Unicode replacement rune.
func AppendQuoted(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)

		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
			}
		case r == '\\' || r == '"':
			dst = append(dst, '\\', byte(r))
		case r < utf8.RuneSelf:
			dst = append(dst, byte(r))
		case r == utf8.RuneError:
			dst = append(dst, `\ufffd`...)
		case r == '\u2028':
			dst = append(dst, `\u2028`...)
		case r == '\u2029':
			dst = append(dst, `\u2029`...)
		default:
			dst = utf8.AppendRune(dst, r)
		}
	}
	return append(dst, '"')
}

// Quote returns the JSON string encoding of s, with quotation marks.
func Quote(s string) string { return string(AppendQuoted(nil, mem.S(s))) }
