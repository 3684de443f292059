// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package troy

import (
	"io"

	"gopkg.in/yaml.v3"
)

// A nodeSource decodes YAML documents one at a time with a yaml.v3 decoder
// and reports the structure of each document as events. A document is not
// decoded until the events of the previous document have been consumed.
type nodeSource struct {
	in  *trackingReader
	dec *yaml.Decoder

	started, ended bool
	queue          emitter
	pos            int
	err            error
}

func newNodeSource(r io.Reader) *nodeSource {
	in := &trackingReader{r: r}
	return &nodeSource{in: in, dec: yaml.NewDecoder(in)}
}

func (s *nodeSource) Next() (Event, error) {
	for s.pos >= len(s.queue.evs) {
		if s.err != nil {
			return Event{}, s.err
		} else if s.ended {
			return Event{}, io.EOF
		}
		s.queue.evs, s.pos = s.queue.evs[:0], 0
		s.fill()
	}
	ev := s.queue.evs[s.pos]
	s.pos++
	return ev, nil
}

// fill queues the events for the next document, or the end of the stream.
func (s *nodeSource) fill() {
	if !s.started {
		s.started = true
		s.queue.emit(StreamStart, "", Position{})
		return
	}
	var doc yaml.Node
	err := s.dec.Decode(&doc)
	if err == io.EOF {
		s.ended = true
		s.queue.emit(StreamEnd, "", Position{})
		return
	} else if s.in.err != nil {
		s.err = Errorf(IOError, Position{}, "reading input: %w", s.in.err)
		return
	} else if err != nil {
		s.err = Errorf(SourceError, messagePos(err), "%w", err)
		return
	}
	s.walk(&doc)
}

func (s *nodeSource) walk(n *yaml.Node) {
	pos := Position{Line: n.Line, Column: n.Column}
	switch n.Kind {
	case yaml.DocumentNode:
		s.queue.emit(DocumentStart, "", pos)
		if len(n.Content) == 0 {
			s.queue.emit(Scalar, "", pos)
		}
		for _, c := range n.Content {
			s.walk(c)
		}
		s.queue.emit(DocumentEnd, "", pos)

	case yaml.SequenceNode:
		s.queue.emit(SequenceStart, "", pos)
		for _, c := range n.Content {
			s.walk(c)
		}
		s.queue.emit(SequenceEnd, "", pos)

	case yaml.MappingNode:
		// Content holds alternating keys and values.
		s.queue.emit(MappingStart, "", pos)
		for _, c := range n.Content {
			s.walk(c)
		}
		s.queue.emit(MappingEnd, "", pos)

	case yaml.AliasNode:
		s.queue.emit(Alias, n.Value, pos)

	default:
		s.queue.emit(Scalar, n.Value, pos)
	}
}
