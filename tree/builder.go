// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"errors"
	"io"

	"github.com/creachadair/troy"
)

// ErrNoDocument is reported by a Builder when the event stream ended without
// containing a document.
var ErrNoDocument = errors.New("no document in stream")

// Phases of a build, in order.
const (
	phaseInit     = iota // waiting for StreamStart
	phaseStream          // in the stream, no document yet
	phaseDocument        // inside the first document
	phaseDone            // first document complete
	phaseEnd             // StreamEnd seen
)

// A Builder constructs a document tree from a stream of events.
//
// A Builder maintains an explicit stack of open containers rather than
// recursing, so the depth of nesting it can handle is limited only by
// memory. Only the first document of a stream is supported: a second
// document, or an alias, causes the build to fail.
//
// If any event is rejected, the partial tree constructed so far is deleted
// and every subsequent call to Handle or Result reports the same error.
type Builder struct {
	stk   []*Node
	key   *troy.Event // pending mapping key
	root  *Node
	phase int
	err   error
}

// NewBuilder constructs a new empty Builder.
func NewBuilder() *Builder { return new(Builder) }

// Build reads events from src and constructs a tree from them.  It returns
// the root of the first document in the stream, or ErrNoDocument if the
// stream contains no documents. In case of error, no partial tree is
// returned.
func Build(src troy.Source) (*Node, error) {
	b := NewBuilder()
	for b.phase != phaseEnd {
		ev, err := src.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, b.fail(err)
		}
		if err := b.Handle(ev); err != nil {
			return nil, err
		}
	}
	return b.Result()
}

// Result reports the root of the completed tree. It reports an error if the
// build failed or the stream has not yet ended, and ErrNoDocument if the
// stream ended without a document. Calling Result before StreamEnd abandons
// the build.
func (b *Builder) Result() (*Node, error) {
	if b.err != nil {
		return nil, b.err
	} else if b.phase != phaseEnd {
		return nil, b.fail(troy.Errorf(troy.StructuralError, troy.Position{},
			"event stream ended before %v", troy.StreamEnd))
	} else if b.root == nil {
		return nil, ErrNoDocument
	}
	return b.root, nil
}

// Handle processes a single event. If Handle reports an error, the build has
// failed and the partial tree has been deleted.
func (b *Builder) Handle(ev troy.Event) error {
	if b.err != nil {
		return b.err
	}
	var err error
	switch ev.Type {
	case troy.StreamStart:
		err = b.streamStart(ev)
	case troy.StreamEnd:
		err = b.streamEnd(ev)
	case troy.DocumentStart:
		err = b.documentStart(ev)
	case troy.DocumentEnd:
		err = b.documentEnd(ev)
	case troy.Scalar:
		err = b.scalar(ev)
	case troy.SequenceStart:
		err = b.open(ev, Sequence)
	case troy.MappingStart:
		err = b.open(ev, Mapping)
	case troy.SequenceEnd:
		err = b.close(ev, Sequence)
	case troy.MappingEnd:
		err = b.close(ev, Mapping)
	case troy.Alias:
		err = troy.EventError(troy.UnsupportedError, ev, "alias %q is not supported", ev.Value)
	default:
		err = troy.EventError(troy.StructuralError, ev, "unknown event type %d", ev.Type)
	}
	if err != nil {
		return b.fail(err)
	}
	return nil
}

func (b *Builder) streamStart(ev troy.Event) error {
	if b.phase != phaseInit {
		return b.unexpected(ev)
	}
	b.phase = phaseStream
	return nil
}

func (b *Builder) streamEnd(ev troy.Event) error {
	switch b.phase {
	case phaseStream, phaseDone:
		b.phase = phaseEnd
		return nil
	case phaseDocument:
		return troy.EventError(troy.StructuralError, ev, "stream ended inside a document")
	}
	return b.unexpected(ev)
}

func (b *Builder) documentStart(ev troy.Event) error {
	switch b.phase {
	case phaseStream:
		b.root = &Node{pos: ev.Pos}
		b.push(b.root)
		b.phase = phaseDocument
		return nil
	case phaseDone:
		return troy.EventError(troy.UnsupportedError, ev, "multiple documents are not supported")
	}
	return b.unexpected(ev)
}

func (b *Builder) documentEnd(ev troy.Event) error {
	if b.phase != phaseDocument {
		return b.unexpected(ev)
	}
	if len(b.stk) != 0 {
		top := b.top()
		if top == b.root && top.IsUndefined() {
			return troy.EventError(troy.StructuralError, ev, "document has no content")
		}
		return troy.EventError(troy.StructuralError, ev,
			"unterminated %v at %v (depth %d)", top.Type(), top.Pos(), len(b.stk))
	}
	b.phase = phaseDone
	return nil
}

func (b *Builder) scalar(ev troy.Event) error {
	top, err := b.requireOpen(ev)
	if err != nil {
		return err
	}
	switch top.typ {
	case Undefined:
		// The document consists of this single scalar.
		top.setScalar(Classify(ev.Value))
		top.pos = ev.Pos
		b.pop()

	case Sequence:
		top.add(b.newScalar(ev))

	case Mapping:
		if b.key == nil {
			key := ev
			b.key = &key
		} else {
			top.set(b.key.Value, b.newScalar(ev))
			b.key = nil
		}

	default:
		return troy.EventError(troy.StructuralError, ev, "scalar inside %v node", top.typ)
	}
	return nil
}

func (b *Builder) open(ev troy.Event, t Type) error {
	top, err := b.requireOpen(ev)
	if err != nil {
		return err
	}
	switch top.typ {
	case Undefined:
		// The root is a container; it remains on the stack as the active frame.
		top.promote(t)
		top.pos = ev.Pos

	case Sequence:
		child := b.newContainer(ev, t)
		top.add(child)
		b.push(child)

	case Mapping:
		if b.key == nil {
			return troy.EventError(troy.UnsupportedError, ev, "%v used as a mapping key", t)
		}
		child := b.newContainer(ev, t)
		top.set(b.key.Value, child)
		b.key = nil
		b.push(child)

	default:
		return troy.EventError(troy.StructuralError, ev, "%v inside %v node", ev.Type, top.typ)
	}
	return nil
}

func (b *Builder) close(ev troy.Event, t Type) error {
	if b.phase != phaseDocument {
		return b.unexpected(ev)
	} else if len(b.stk) == 0 {
		return troy.EventError(troy.StructuralError, ev, "%v with no open %v", ev.Type, t)
	}
	top := b.top()
	if top.typ != t {
		return troy.EventError(troy.StructuralError, ev, "%v does not match open %v", ev.Type, top.typ)
	}
	if t == Mapping && b.key != nil {
		return troy.EventError(troy.StructuralError, ev, "mapping key %q has no value", b.key.Value)
	}
	b.pop()
	return nil
}

// requireOpen reports the container at the top of the stack, or an error if
// there is none.
func (b *Builder) requireOpen(ev troy.Event) (*Node, error) {
	if b.phase != phaseDocument {
		return nil, b.unexpected(ev)
	} else if len(b.stk) == 0 {
		return nil, troy.EventError(troy.StructuralError, ev, "%v after the document root is complete", ev.Type)
	}
	return b.top(), nil
}

func (b *Builder) newScalar(ev troy.Event) *Node {
	n := Classify(ev.Value)
	n.pos = ev.Pos
	return n
}

func (b *Builder) newContainer(ev troy.Event, t Type) *Node {
	n := &Node{pos: ev.Pos}
	n.promote(t)
	return n
}

func (b *Builder) unexpected(ev troy.Event) error {
	return troy.EventError(troy.StructuralError, ev, "unexpected %v", ev.Type)
}

// fail records err as the result of the build, and deletes the partial tree.
func (b *Builder) fail(err error) error {
	b.err = err
	b.root.Delete()
	b.root, b.stk, b.key = nil, nil, nil
	return err
}

func (b *Builder) top() *Node { return b.stk[len(b.stk)-1] }

func (b *Builder) pop() *Node {
	last := b.top()
	b.stk = b.stk[:len(b.stk)-1]
	return last
}

func (b *Builder) push(n *Node) { b.stk = append(b.stk, n) }
