package tpath

import (
	"github.com/creachadair/troy/tree"
)

// Eval evaluates e starting from root, and returns the matching nodes in
// document order. Mapping children are visited in key order. Steps that do
// not apply to a node, such as a key lookup on a sequence or an index that
// is out of range, contribute no matches.
func Eval(root *tree.Node, e Expr) []*tree.Node {
	if root == nil {
		return nil
	}
	cur := []*tree.Node{root}
	for _, step := range e {
		var next []*tree.Node
		for _, n := range cur {
			next = step.apply(n, next)
		}
		if len(next) == 0 {
			return nil
		}
		cur = next
	}
	return cur
}

// EvalString parses s and evaluates it starting from root.
func EvalString(root *tree.Node, s string) ([]*tree.Node, error) {
	e, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return Eval(root, e), nil
}

// apply appends to out the nodes selected by s from n.
func (s Step) apply(n *tree.Node, out []*tree.Node) []*tree.Node {
	switch s.Op {
	case Member, Select:
		if s.wildcard() {
			return appendChildren(out, n)
		}
		if v := n.Find(s.Name); v != nil {
			out = append(out, v)
		}

	case Recur:
		for _, d := range descendants(n) {
			if s.wildcard() {
				if d != n {
					out = append(out, d)
				}
			} else if v := d.Find(s.Name); v != nil {
				out = append(out, v)
			}
		}

	case Index:
		if !n.IsSequence() {
			break
		}
		for _, i := range s.Indices {
			if i < 0 {
				i += n.Len()
			}
			if v, err := n.Index(i); err == nil {
				out = append(out, v)
			}
		}

	case Slice:
		if !n.IsSequence() {
			break
		}
		lo, hi := bound(s.Lo, 0, n.Len()), bound(s.Hi, n.Len(), n.Len())
		for i := lo; i < hi; i++ {
			v, _ := n.Index(i)
			out = append(out, v)
		}
	}
	return out
}

// bound resolves an optional slice bound against a sequence of length n,
// clamping the result to [0, n].
func bound(p *int, dflt, n int) int {
	if p == nil {
		return dflt
	}
	v := *p
	if v < 0 {
		v += n
	}
	return max(0, min(v, n))
}

func appendChildren(out []*tree.Node, n *tree.Node) []*tree.Node {
	switch n.Type() {
	case tree.Sequence:
		for _, v := range n.Elements() {
			out = append(out, v)
		}
	case tree.Mapping:
		for _, v := range n.Entries() {
			out = append(out, v)
		}
	}
	return out
}

// descendants returns n and all the nodes beneath it in pre-order.
func descendants(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	stk := []*tree.Node{n}
	for len(stk) > 0 {
		cur := stk[len(stk)-1]
		stk = stk[:len(stk)-1]
		out = append(out, cur)

		// Push children in reverse so they are visited in order.
		kids := appendChildren(nil, cur)
		for i := len(kids) - 1; i >= 0; i-- {
			stk = append(stk, kids[i])
		}
	}
	return out
}
