// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/troy/internal/escape"
	"go4.org/mem"
)

// JSON renders n as compact JSON text. Mapping keys are sorted, and an
// undefined node renders as null.
func (n *Node) JSON() string { return string(jsonFormatter{}.append(nil, n, 0)) }

// WriteJSON writes n to w as JSON text with each element of a non-empty
// container on its own line, indented by two spaces per level.
func WriteJSON(w io.Writer, n *Node) error {
	out := jsonFormatter{indent: "  "}.append(nil, n, 0)
	_, err := w.Write(append(out, '\n'))
	return err
}

// A jsonFormatter renders nodes as JSON. If indent is empty the output is
// compact.
type jsonFormatter struct{ indent string }

func (f jsonFormatter) newline(buf []byte, depth int) []byte {
	if f.indent == "" {
		return buf
	}
	buf = append(buf, '\n')
	return append(buf, strings.Repeat(f.indent, depth)...)
}

func (f jsonFormatter) append(buf []byte, n *Node, depth int) []byte {
	switch n.Type() {
	case Int:
		return strconv.AppendInt(buf, n.ival, 10)
	case Float:
		return strconv.AppendFloat(buf, n.fval, 'g', -1, 64)
	case String:
		return escape.AppendQuoted(buf, mem.S(n.sval))
	case Sequence:
		if n.Len() == 0 {
			return append(buf, "[]"...)
		}
		buf = append(buf, '[')
		for i, elt := range n.Elements() {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = f.newline(buf, depth+1)
			buf = f.append(buf, elt, depth+1)
		}
		buf = f.newline(buf, depth)
		return append(buf, ']')
	case Mapping:
		if n.Len() == 0 {
			return append(buf, "{}"...)
		}
		buf = append(buf, '{')
		first := true
		for key, val := range n.Entries() {
			if !first {
				buf = append(buf, ',')
			}
			first = false
			buf = f.newline(buf, depth+1)
			buf = escape.AppendQuoted(buf, mem.S(key))
			buf = append(buf, ':')
			if f.indent != "" {
				buf = append(buf, ' ')
			}
			buf = f.append(buf, val, depth+1)
		}
		buf = f.newline(buf, depth)
		return append(buf, '}')
	}
	return append(buf, "null"...)
}
