// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package troy

import (
	"fmt"
	"io"

	"github.com/creachadair/troy/internal/escape"
)

// EventType is the type of a structural event in a document stream.
type EventType byte

// Constants defining the valid EventType values.
const (
	Invalid       EventType = iota // invalid event
	StreamStart                    // start of the input stream
	StreamEnd                      // end of the input stream
	DocumentStart                  // start of a document
	DocumentEnd                    // end of a document
	Alias                          // reference to an anchored node
	Scalar                         // a scalar value
	SequenceStart                  // start of a sequence
	SequenceEnd                    // end of a sequence
	MappingStart                   // start of a mapping
	MappingEnd                     // end of a mapping
)

var eventStr = [...]string{
	Invalid:       "invalid event",
	StreamStart:   "stream start",
	StreamEnd:     "stream end",
	DocumentStart: "document start",
	DocumentEnd:   "document end",
	Alias:         "alias",
	Scalar:        "scalar",
	SequenceStart: "sequence start",
	SequenceEnd:   "sequence end",
	MappingStart:  "mapping start",
	MappingEnd:    "mapping end",
}

func (t EventType) String() string {
	v := int(t)
	if v >= len(eventStr) {
		return eventStr[Invalid]
	}
	return eventStr[v]
}

// An Event is a single structural event reported by a Source.
type Event struct {
	Type  EventType
	Value string   // scalar text (Scalar) or anchor name (Alias)
	Pos   Position // location of the event in the source, if known
}

func (e Event) String() string {
	switch e.Type {
	case Scalar, Alias:
		return fmt.Sprintf("%v %s", e.Type, escape.Quote(e.Value))
	default:
		return e.Type.String()
	}
}

// A Source delivers a sequence of events, one at a time. After the StreamEnd
// event has been delivered, Next reports io.EOF. Any other error indicates
// an I/O or parse failure in the underlying input.
type Source interface {
	Next() (Event, error)
}

// FromEvents returns a Source that delivers the given events in order.
func FromEvents(evs ...Event) Source { return &listSource{evs: evs} }

type listSource struct {
	evs []Event
	pos int
}

func (s *listSource) Next() (Event, error) {
	if s.pos >= len(s.evs) {
		return Event{}, io.EOF
	}
	ev := s.evs[s.pos]
	s.pos++
	return ev, nil
}

// Drain reads events from src and calls f for each, until src is exhausted or
// an error occurs. If f reports an error, Drain stops and returns that error.
func Drain(src Source, f func(Event) error) error {
	for {
		ev, err := src.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := f(ev); err != nil {
			return err
		}
	}
}
