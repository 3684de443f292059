// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package tree defines a generic document tree, and a builder that constructs
// trees from a stream of troy events.
//
// A tree is made of *Node values. Each node is a scalar (an integer, a
// floating-point number, or a string) or a container (a sequence or a
// string-keyed mapping) that owns its children. Scalar types are inferred
// from the text of scalar events (see Classify).
//
// Trees are constructed by a Builder, and are read-only once the builder has
// finished. The only operation that modifies a finished tree is Delete.
package tree

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/creachadair/troy"
)

// Type is the type of a Node.
type Type byte

// Constants defining the valid Type values.
const (
	Undefined Type = iota // not yet classified
	Int                   // integer
	Float                 // floating-point number
	String                // string
	Sequence              // ordered sequence of nodes
	Mapping               // mapping from string keys to nodes
)

var typeStr = [...]string{
	Undefined: "undef",
	Int:       "integer",
	Float:     "float",
	String:    "string",
	Sequence:  "sequence",
	Mapping:   "map",
}

// String returns a human-readable name for t. Values other than the defined
// constants render as "undef".
func (t Type) String() string {
	v := int(t)
	if v >= len(typeStr) {
		return typeStr[Undefined]
	}
	return typeStr[v]
}

// A Node is a single value in a document tree. The zero value is an
// Undefined node. A nil *Node is treated as Undefined by all accessors.
type Node struct {
	typ  Type
	ival int64
	fval float64
	sval string
	seq  seqStore
	fmap mapStore

	parent *Node // enclosing container; not owned
	pos    troy.Position
}

// Type reports the type of n.
func (n *Node) Type() Type {
	if n == nil {
		return Undefined
	}
	return n.typ
}

// IsUndefined reports whether n has not been classified.
func (n *Node) IsUndefined() bool { return n.Type() == Undefined }

// IsInt reports whether n is an integer.
func (n *Node) IsInt() bool { return n.Type() == Int }

// IsFloat reports whether n is a floating-point number.
func (n *Node) IsFloat() bool { return n.Type() == Float }

// IsString reports whether n is a string.
func (n *Node) IsString() bool { return n.Type() == String }

// IsSequence reports whether n is a sequence.
func (n *Node) IsSequence() bool { return n.Type() == Sequence }

// IsMapping reports whether n is a mapping.
func (n *Node) IsMapping() bool { return n.Type() == Mapping }

// Int returns the value of an integer node, or 0 if n is not an integer.
func (n *Node) Int() int64 {
	if n.IsInt() {
		return n.ival
	}
	return 0
}

// Float returns the value of a floating-point node, or 0 if n is not a
// floating-point number.
func (n *Node) Float() float64 {
	if n.IsFloat() {
		return n.fval
	}
	return 0
}

// Str returns the value of a string node and true, or "", false if n is not
// a string.
func (n *Node) Str() (string, bool) {
	if n.IsString() {
		return n.sval, true
	}
	return "", false
}

// Len reports the number of elements of a sequence or entries of a mapping.
// It returns 0 for all other nodes.
func (n *Node) Len() int {
	switch n.Type() {
	case Sequence:
		return n.seq.len()
	case Mapping:
		return len(n.fmap)
	}
	return 0
}

// Index returns the element of a sequence at offset i, 0-based. It reports an
// error of kind troy.IndexError if n is not a sequence or i is out of range.
func (n *Node) Index(i int) (*Node, error) {
	if !n.IsSequence() {
		return nil, troy.Errorf(troy.IndexError, n.Pos(), "cannot index %v node", n.Type())
	}
	if i < 0 || i >= n.seq.len() {
		return nil, troy.Errorf(troy.IndexError, n.Pos(), "index %d out of range (n=%d)", i, n.seq.len())
	}
	return n.seq.at(i), nil
}

// Find returns the value of the mapping entry with the given key, or nil if
// n is not a mapping or has no such key.
func (n *Node) Find(key string) *Node {
	if !n.IsMapping() {
		return nil
	}
	return n.fmap[key]
}

// Keys returns the keys of a mapping in lexicographic order, or nil if n is
// not a mapping.
func (n *Node) Keys() []string {
	if !n.IsMapping() {
		return nil
	}
	return slices.Sorted(maps.Keys(n.fmap))
}

// Elements returns an iterator over the offsets and elements of a sequence.
// It yields nothing if n is not a sequence.
func (n *Node) Elements() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		if !n.IsSequence() {
			return
		}
		for i := range n.seq.len() {
			if !yield(i, n.seq.at(i)) {
				return
			}
		}
	}
}

// Entries returns an iterator over the entries of a mapping, in key order.
// It yields nothing if n is not a mapping.
func (n *Node) Entries() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for _, key := range n.Keys() {
			if !yield(key, n.fmap[key]) {
				return
			}
		}
	}
}

// Parent returns the container enclosing n, or nil if n is a root.
// The parent link is for diagnostics only and does not own n.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Pos reports the source location of the event that created n, if known.
func (n *Node) Pos() troy.Position {
	if n == nil {
		return troy.Position{}
	}
	return n.pos
}

// Interface converts n into a plain Go value: int64, float64, string,
// []any, or map[string]any. An undefined node converts to nil.
func (n *Node) Interface() any {
	switch n.Type() {
	case Int:
		return n.ival
	case Float:
		return n.fval
	case String:
		return n.sval
	case Sequence:
		out := make([]any, n.seq.len())
		for i, elt := range n.Elements() {
			out[i] = elt.Interface()
		}
		return out
	case Mapping:
		out := make(map[string]any, len(n.fmap))
		for key, val := range n.fmap {
			out[key] = val.Interface()
		}
		return out
	}
	return nil
}

func (n *Node) String() string {
	switch n.Type() {
	case Int:
		return fmt.Sprintf("Int(%d)", n.ival)
	case Float:
		return fmt.Sprintf("Float(%g)", n.fval)
	case String:
		return fmt.Sprintf("String(%q)", n.sval)
	case Sequence:
		return fmt.Sprintf("Sequence(len=%d)", n.Len())
	case Mapping:
		return fmt.Sprintf("Mapping(len=%d)", n.Len())
	}
	return "Undefined"
}

// Delete releases the tree rooted at n, children before their parents,
// leaving each released node Undefined with no storage. Deleting a node that
// has already been deleted, or a nil node, does nothing.
//
// Only a root can be deleted: Delete does nothing if n has a parent, so a
// finished tree cannot be released piecewise.
func (n *Node) Delete() {
	if n == nil || n.parent != nil {
		return
	}
	n.free()
}

// free releases n and every node it owns, whether or not n has a parent.
func (n *Node) free() {
	// Collect nodes so that every parent precedes its children, then release
	// them in reverse.
	order := []*Node{n}
	for i := 0; i < len(order); i++ {
		order = order[i].appendChildren(order)
	}
	for i := len(order) - 1; i >= 0; i-- {
		order[i].release()
	}
}

func (n *Node) appendChildren(dst []*Node) []*Node {
	switch n.typ {
	case Sequence:
		for i := range n.seq.len() {
			dst = append(dst, n.seq.at(i))
		}
	case Mapping:
		for _, v := range n.fmap {
			dst = append(dst, v)
		}
	}
	return dst
}

// release resets n to the zero state without visiting its children.
func (n *Node) release() { *n = Node{} }

// Builder-only mutations follow. A node may be promoted from Undefined
// exactly once; containers are filled only while their tree is under
// construction.

// promote sets the type of an undefined node to t with an empty value.
func (n *Node) promote(t Type) {
	if n.typ != Undefined {
		panic(fmt.Sprintf("tree: promote %v node to %v", n.typ, t))
	}
	n.typ = t
	if t == Mapping {
		n.fmap = make(mapStore)
	}
}

// setScalar promotes an undefined node to the scalar value of v.
func (n *Node) setScalar(v *Node) {
	n.promote(v.typ)
	n.ival, n.fval, n.sval = v.ival, v.fval, v.sval
}

// add appends v to a sequence and makes n its parent.
func (n *Node) add(v *Node) {
	v.parent = n
	n.seq.add(v)
}

// set inserts v as the value of key in a mapping, and makes n its parent.
// Any previous value for key is deleted.
func (n *Node) set(key string, v *Node) {
	v.parent = n
	n.fmap.set(key, v)
}
