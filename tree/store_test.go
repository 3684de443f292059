// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"testing"

	"github.com/creachadair/mds/mtest"
)

func TestSeqStoreGrowth(t *testing.T) {
	var s seqStore
	if s.len() != 0 || s.cap() != 0 {
		t.Fatalf("Empty store: len=%d cap=%d", s.len(), s.cap())
	}
	wantCap := []int{2, 2, 4, 4, 8, 8, 8, 8, 16}
	for i, want := range wantCap {
		s.add(Classify("x"))
		if s.len() != i+1 {
			t.Errorf("After %d adds: len=%d", i+1, s.len())
		}
		if s.cap() != want {
			t.Errorf("After %d adds: cap=%d, want %d", i+1, s.cap(), want)
		}
	}
}

func TestMapStoreOverwrite(t *testing.T) {
	m := &Node{}
	m.promote(Mapping)

	first := &Node{}
	first.promote(Sequence)
	child := Classify("1")
	first.add(child)
	m.set("k", first)

	second := Classify("second")
	m.set("k", second)

	if got := m.Find("k"); got != second {
		t.Errorf("Find(k) = %v, want %v", got, second)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	// The displaced value and its children are released.
	if !first.IsUndefined() || first.Len() != 0 || first.Parent() != nil {
		t.Errorf("Displaced value not released: %v", first)
	}
	if !child.IsUndefined() || child.Parent() != nil {
		t.Errorf("Displaced child not released: %v", child)
	}

	// Re-setting the same node does not release it.
	m.set("k", second)
	if s, ok := second.Str(); !ok || s != "second" {
		t.Errorf("Re-set value was released: %v", second)
	}
}

func TestPromoteOnce(t *testing.T) {
	n := &Node{}
	n.promote(Sequence)
	mtest.MustPanic(t, func() { n.promote(Mapping) })
	mtest.MustPanic(t, func() { n.setScalar(Classify("1")) })
}

func TestDeleteTwice(t *testing.T) {
	root := &Node{}
	root.promote(Mapping)
	seq := &Node{}
	seq.promote(Sequence)
	root.set("a", seq)
	leaf := Classify("text")
	seq.add(leaf)

	root.Delete()
	for _, n := range []*Node{root, seq, leaf} {
		if !n.IsUndefined() || n.Len() != 0 || n.Parent() != nil {
			t.Errorf("After Delete: %v is not released", n)
		}
	}
	if s, ok := leaf.Str(); ok || s != "" {
		t.Errorf("After Delete: leaf text %q, %v", s, ok)
	}

	// A second deletion is a no-op.
	root.Delete()
	if !root.IsUndefined() {
		t.Errorf("After second Delete: %v", root)
	}

	var nilNode *Node
	nilNode.Delete()
}

func TestDeleteChild(t *testing.T) {
	root := &Node{}
	root.promote(Sequence)
	child := &Node{}
	child.promote(Mapping)
	root.add(child)
	leaf := Classify("7")
	child.set("k", leaf)

	// Deleting a node that has a parent leaves the tree intact.
	child.Delete()
	if !child.IsMapping() || child.Len() != 1 || child.Parent() != root {
		t.Errorf("After child Delete: %v, parent %v", child, child.Parent())
	}
	if v, err := root.Index(0); err != nil || v != child {
		t.Errorf("Index(0) = %v, %v; want %v", v, err, child)
	}
	if got := leaf.Int(); got != 7 {
		t.Errorf("Leaf value: got %d, want 7", got)
	}

	root.Delete()
	for _, n := range []*Node{root, child, leaf} {
		if !n.IsUndefined() {
			t.Errorf("After root Delete: %v is not released", n)
		}
	}
}
