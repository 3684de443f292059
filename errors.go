// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package troy

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the errors reported while reading events or building
// and navigating a document tree.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	NoError          ErrorKind = iota // not an *Error
	IOError                           // the input could not be opened or read
	SourceError                       // the event source rejected the input
	StructuralError                   // an event arrived in an invalid state
	UnsupportedError                  // the input uses an unsupported feature
	IndexError                        // a sequence index was out of range
)

var kindStr = [...]string{
	NoError:          "no error",
	IOError:          "I/O error",
	SourceError:      "parse error",
	StructuralError:  "structural error",
	UnsupportedError: "unsupported feature",
	IndexError:       "index out of range",
}

func (k ErrorKind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[NoError]
	}
	return kindStr[v]
}

// Error is the concrete type of errors reported by event sources and by the
// tree builder.
type Error struct {
	Kind    ErrorKind
	Pos     Position // location of the failure, if known
	Event   *Event   // the offending event, if any
	Message string

	err error
}

// Errorf constructs an *Error of the given kind with a formatted message.
// As with fmt.Errorf, an argument formatted with %w is wrapped.
func Errorf(kind ErrorKind, pos Position, msg string, args ...any) *Error {
	werr := fmt.Errorf(msg, args...)
	return &Error{Kind: kind, Pos: pos, Message: werr.Error(), err: errors.Unwrap(werr)}
}

// EventError constructs an *Error of the given kind attributed to ev.
func EventError(kind ErrorKind, ev Event, msg string, args ...any) *Error {
	e := Errorf(kind, ev.Pos, msg, args...)
	e.Event = &ev
	return e
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("at %s: %v: %s", e.Pos, e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }

// KindOf reports the kind of the first *Error in the chain of err, or
// NoError if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NoError
}
