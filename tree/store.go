// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

// minSeqCap is the capacity of a sequence when its first element is added.
const minSeqCap = 2

// A seqStore holds the elements of a sequence. The capacity of the store is
// len(items), tracked separately from the count n of live elements; the
// capacity doubles whenever the store is full.
type seqStore struct {
	items []*Node
	n     int
}

func (s *seqStore) len() int { return s.n }

func (s *seqStore) cap() int { return len(s.items) }

func (s *seqStore) at(i int) *Node { return s.items[i] }

func (s *seqStore) add(v *Node) {
	if s.n == len(s.items) {
		grown := make([]*Node, max(2*len(s.items), minSeqCap))
		copy(grown, s.items[:s.n])
		s.items = grown
	}
	s.items[s.n] = v
	s.n++
}

// A mapStore holds the entries of a mapping. Keys are unique.
type mapStore map[string]*Node

// set stores v under key, deleting the value it replaces (if any).
func (m mapStore) set(key string, v *Node) {
	if old, ok := m[key]; ok && old != v {
		old.free()
	}
	m[key] = v
}
