// Package tpath implements a minimal JSONPath-style expression language for
// selecting nodes from a document tree.
package tpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" value "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"
 value = name
 value = INDEX ["," INDEX ...]
 value = [INDEX] ":" [INDEX]

  WORD = RE `[\w-]+`
 QTEXT = RE `[^']*`
 INDEX = RE `-?\d+`
*/

// An Expr is a parsed path expression.
type Expr []Step

// Parse parses s as a path expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", len(s)-len(t), err)
		}
		steps = append(steps, step)
		t = rest
	}
	return steps, nil
}

// MustParse parses s as a path expression, and panics if it is invalid.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("tpath: invalid expression %q: %v", s, err))
	}
	return e
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member, Recur:
			if s.Quoted {
				fmt.Fprintf(&buf, "%s'%s'", s.Op, s.Name)
			} else {
				fmt.Fprint(&buf, s.Op, s.Name)
			}

		case Index:
			parts := make([]string, len(s.Indices))
			for i, v := range s.Indices {
				parts[i] = strconv.Itoa(v)
			}
			fmt.Fprintf(&buf, "[%s]", strings.Join(parts, ","))

		case Slice:
			fmt.Fprintf(&buf, "[%s:%s]", boundText(s.Lo), boundText(s.Hi))

		case Select:
			if s.Quoted {
				fmt.Fprintf(&buf, "['%s']", s.Name)
			} else {
				fmt.Fprintf(&buf, "[%s]", s.Name)
			}
		}
	}
	return buf.String()
}

func boundText(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		name, quoted, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid ..name: %w", err)
		}
		return Step{Op: Recur, Name: name, Quoted: quoted}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		name, quoted, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid .name: %w", err)
		}
		return Step{Op: Member, Name: name, Quoted: quoted}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		out, u, err := parseValue(t)
		if err != nil {
			return Step{}, t, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return Step{}, u, errors.New("missing close bracket")
		}
		return out, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseName(s string) (name string, quoted bool, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return "*", false, t, nil
	}
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return m[1], false, s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return m[1], true, s[len(m[0]):], nil
	}
	return "", false, s, errors.New("invalid name")
}

func parseValue(s string) (_ Step, rest string, _ error) {
	lo, rest, hasLo := parseInt(s)
	if u, ok := strings.CutPrefix(rest, ":"); ok {
		hi, u, hasHi := parseInt(u)
		out := Step{Op: Slice}
		if hasLo {
			out.Lo = &lo
		}
		if hasHi {
			out.Hi = &hi
		}
		return out, u, nil
	}
	if hasLo {
		out := Step{Op: Index, Indices: []int{lo}}
		for {
			u, ok := strings.CutPrefix(rest, ",")
			if !ok {
				break
			}
			v, u, ok := parseInt(u)
			if !ok {
				return Step{}, u, errors.New("invalid index list")
			}
			out.Indices = append(out.Indices, v)
			rest = u
		}
		return out, rest, nil
	}
	if name, quoted, rest, err := parseName(s); err == nil {
		return Step{Op: Select, Name: name, Quoted: quoted}, rest, nil
	}
	return Step{}, s, fmt.Errorf("invalid value: %q", s)
}

func parseInt(s string) (int, string, bool) {
	m := indexRE.FindString(s)
	if m == "" {
		return 0, s, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, s, false
	}
	return v, s[len(m):], true
}

var (
	wordRE  = regexp.MustCompile(`^([\w-]+)`)
	indexRE = regexp.MustCompile(`^-?\d+`)
	quoteRE = regexp.MustCompile(`^'([^']*)'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Member            // member lookup (.name)
	Recur             // recursive descent (..name)
	Select            // bracketed member lookup ([name])
	Index             // sequence index lookup ([N,...])
	Slice             // sequence slice ([lo:hi])
)

var opText = map[Op]string{
	Invalid: "invalid",
	Member:  ".",
	Recur:   "..",
	Select:  "select",
	Index:   "index",
	Slice:   "slice",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a path expression.
type Step struct {
	Op      Op
	Name    string // for Member, Recur, Select; "*" matches all children
	Quoted  bool   // whether Name was written in quotes
	Indices []int  // for Index
	Lo, Hi  *int   // for Slice; nil means unbounded
}

// wildcard reports whether s matches every child of a node.
func (s Step) wildcard() bool { return s.Name == "*" && !s.Quoted }
