// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package troy

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
)

// A Position describes the line number and column offset of a location in
// source text. The zero Position means the location is unknown.
type Position struct {
	Line   int // line number, 1-based
	Column int // column offset, 1-based
}

// IsValid reports whether p describes a known location.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.Column <= 0 {
		return strconv.Itoa(p.Line)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// lineRE matches the location prefix of parser messages such as
// "yaml: line 3: ..." and "hujson: line 1, column 9: ...".
var lineRE = regexp.MustCompile(`\bline (\d+)(?:, column (\d+))?`)

// messagePos recovers a Position from the text of a parser error whose
// library reports its location only in the message. The column is zero if
// the message does not include one.
func messagePos(err error) Position {
	m := lineRE.FindStringSubmatch(err.Error())
	if m == nil {
		return Position{}
	}
	line, _ := strconv.Atoi(m[1])
	col, _ := strconv.Atoi(m[2])
	return Position{Line: line, Column: col}
}

// offsetPos converts a 0-based byte offset into src to a Position.
func offsetPos(src []byte, offset int) Position {
	if offset < 0 || offset > len(src) {
		return Position{}
	}
	head := src[:offset]
	line := bytes.Count(head, []byte("\n")) + 1
	col := offset - bytes.LastIndexByte(head, '\n')
	return Position{Line: line, Column: col}
}
