// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over a finished document tree.
package cursor

import (
	"fmt"

	"github.com/creachadair/troy/tree"
)

// Path traverses a sequential path into the structure of root where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving
// its value.
func Path(root *tree.Node, path ...any) (*tree.Node, error) {
	c := New(root).Down(path...)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Value(), nil
}

// A Cursor is a pointer that navigates into the structure of a tree.
type Cursor struct {
	org *tree.Node
	stk []*tree.Node
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin *tree.Node) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin node of c.
func (c *Cursor) Origin() *tree.Node { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current node under the cursor.
func (c *Cursor) Value() *tree.Node {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of nodes from the origin to the current
// location in c.
func (c *Cursor) Path() []*tree.Node {
	return append([]*tree.Node{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current node, where path elements are either strings (denoting mapping
// keys), integers (denoting offsets into sequences), functions (see below),
// or nil. If the path is valid, the node reached is returned. If the path
// cannot be completely consumed, traversal stops and an error is recorded.
// Use Err to recover the error.
//
// If a path element is a string, the corresponding node must be a mapping,
// and the string resolves the value stored under that key.
//
// If a path element is an integer, the corresponding node must be a sequence
// or mapping. For a sequence, the integer is an index as for Node.Index; for
// a mapping, it selects a value in key order. Negative indices count
// backward from the end (-1 is last, -2 second last). An error is reported
// if the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next node in the sequence. The function must have a signature
//
//	func(*tree.Node) (*tree.Node, error)
//
// If the function reports an error, traversal stops and the error is
// recorded. A nil path element is ignored.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if !cur.IsMapping() {
				return c.setErrorf("cannot traverse %v with %q", cur.Type(), t)
			}
			next := cur.Find(t)
			if next == nil {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(next)

		case int:
			switch {
			case cur.IsSequence():
				next, err := cur.Index(fixBound(cur.Len(), t))
				if err != nil {
					c.err = err
					return c
				}
				cur = c.push(next)
			case cur.IsMapping():
				i := fixBound(cur.Len(), t)
				if i < 0 || i >= cur.Len() {
					return c.setErrorf("mapping index %d out of bounds (n=%d)", t, cur.Len())
				}
				cur = c.push(cur.Find(cur.Keys()[i]))
			default:
				return c.setErrorf("cannot traverse %v with %v", cur.Type(), t)
			}

		case func(*tree.Node) (*tree.Node, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		case nil:
			// Do nothing.

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(n *tree.Node) *tree.Node { c.stk = append(c.stk, n); return n }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) int {
	if i < 0 {
		return i + n
	}
	return i
}
