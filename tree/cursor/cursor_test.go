// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/troy"
	"github.com/creachadair/troy/tree"
	"github.com/creachadair/troy/tree/cursor"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func mustParse(t *testing.T) *tree.Node {
	t.Helper()
	b := troy.HuJSON
	root, err := tree.Parse(strings.NewReader(testJSON), &tree.Options{Backend: &b})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root
}

func index(t *testing.T, n *tree.Node, i int) *tree.Node {
	t.Helper()
	v, err := n.Index(i)
	if err != nil {
		t.Fatalf("Index(%d): %v", i, err)
	}
	return v
}

func TestCursor(t *testing.T) {
	v := mustParse(t)

	tests := []struct {
		name string
		path []any
		want *tree.Node
		fail bool
	}{
		{"NilInput", nil, v, false},
		{"NilElement", []any{nil, "y", nil}, v.Find("y"), false},
		{"NoMatch", []any{"nonesuch"}, v, true},
		{"WrongType", []any{"o", "key"}, v.Find("o"), true},
		{"BadElement", []any{3.5}, v, true},

		{"ArrayPos", []any{"list", 1}, index(t, v.Find("list"), 1), false},
		{"ArrayNeg", []any{"list", -1}, index(t, v.Find("list"), 1), false},
		{"ArrayNegFirst", []any{"list", -2, "x"}, index(t, v.Find("list"), 0).Find("x"), false},
		{"ArrayRange", []any{"o", 25}, v.Find("o"), true},
		{"ArrayRangeNeg", []any{"o", -3}, v.Find("o"), true},
		{"ObjPath", []any{"xyz", "d"}, v.Find("xyz").Find("d"), false},

		// Keys in order are d, p, q.
		{"ObjIndex", []any{"xyz", 1}, v.Find("xyz").Find("p"), false},
		{"ObjIndexNeg", []any{"xyz", -1}, v.Find("xyz").Find("q"), false},
		{"ObjRange", []any{"xyz", 3}, v.Find("xyz"), true},
		{"ScalarIndex", []any{"y", "hello", 0}, v.Find("y").Find("hello"), true},

		{"FuncArray", []any{"o", lastElement}, index(t, v.Find("o"), 1), false},
		{"FuncThenKey", []any{"list", lastElement, "x"}, index(t, v.Find("list"), 1).Find("x"), false},
		{"FuncWrong", []any{"xyz", "d", lastElement}, v.Find("xyz").Find("d"), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got %v, want error", tc.path, c.Value())
			}
			if got := c.Value(); got != tc.want {
				t.Errorf("Down %+v: got %v, want %v", tc.path, got, tc.want)
			} else if err == nil {
				t.Logf("Found %s OK", got.JSON())
			}
		})
	}
}

func TestCursorNavigation(t *testing.T) {
	v := mustParse(t)
	c := cursor.New(v)
	if !c.AtOrigin() || c.Origin() != v {
		t.Fatalf("New: cursor not at origin")
	}

	c.Down("list", 0, "x")
	if c.Err() != nil {
		t.Fatalf("Down: unexpected error: %v", c.Err())
	}
	if got := c.Value().Int(); got != 1 {
		t.Errorf("Value: got %v, want Int(1)", c.Value())
	}
	path := c.Path()
	if len(path) != 4 || path[0] != v {
		t.Fatalf("Path: got %v, want 4 nodes from the origin", path)
	}
	for i := 1; i < len(path); i++ {
		if path[i].Parent() != path[i-1] {
			t.Errorf("Path[%d] parent is %v, want %v", i, path[i].Parent(), path[i-1])
		}
	}

	// Down continues from the current location.
	c.Up().Up()
	if got := c.Value(); got != v.Find("list") {
		t.Errorf("Up: got %v, want list", got)
	}
	if got := c.Down(1, "x").Value().Int(); got != 2 {
		t.Errorf("Down from list: got %v, want Int(2)", c.Value())
	}

	c.Down("nonesuch")
	if c.Err() == nil {
		t.Error("Down: got nil error for missing key")
	}
	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Errorf("Reset: at origin %v, error %v", c.AtOrigin(), c.Err())
	}
	c.Up() // no effect at origin
	if !c.AtOrigin() {
		t.Error("Up at origin moved the cursor")
	}
}

func TestPath(t *testing.T) {
	v := mustParse(t)
	got, err := cursor.Path(v, "y", "hello")
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	}
	if s, _ := got.Str(); s != "there" {
		t.Errorf("Path: got %v, want String(there)", got)
	}

	got, err = cursor.Path(v, "o", 7)
	if got != nil || troy.KindOf(err) != troy.IndexError {
		t.Errorf("Path: got %v, %v; want index error", got, err)
	} else {
		t.Logf("Got expected error: %v", err)
	}
}

func lastElement(n *tree.Node) (*tree.Node, error) {
	if !n.IsSequence() {
		return nil, errors.New("not a sequence")
	}
	return n.Index(n.Len() - 1)
}
