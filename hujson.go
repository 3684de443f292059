// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package troy

import (
	"github.com/tailscale/hujson"
)

// loadHuJSON parses src as a single HuJSON (JWCC) value and flattens it into
// events. Object member names are reported as scalar keys.
func loadHuJSON(src []byte) ([]Event, error) {
	var e emitter
	e.emit(StreamStart, "", Position{})
	if isBlank(src) {
		e.emit(StreamEnd, "", Position{})
		return e.evs, nil
	}

	v, err := hujson.Parse(src)
	if err != nil {
		return nil, Errorf(SourceError, messagePos(err), "%w", err)
	}
	w := hujsonWalker{emitter: &e, src: src}
	pos := w.pos(v)
	e.emit(DocumentStart, "", pos)
	w.walk(v)
	e.emit(DocumentEnd, "", pos)
	e.emit(StreamEnd, "", Position{})
	return e.evs, nil
}

type hujsonWalker struct {
	*emitter
	src []byte
}

func (w hujsonWalker) pos(v hujson.Value) Position { return offsetPos(w.src, v.StartOffset) }

func (w hujsonWalker) walk(v hujson.Value) {
	pos := w.pos(v)
	switch t := v.Value.(type) {
	case *hujson.Object:
		w.emit(MappingStart, "", pos)
		for _, m := range t.Members {
			w.walk(m.Name)
			w.walk(m.Value)
		}
		w.emit(MappingEnd, "", pos)

	case *hujson.Array:
		w.emit(SequenceStart, "", pos)
		for _, elt := range t.Elements {
			w.walk(elt)
		}
		w.emit(SequenceEnd, "", pos)

	case hujson.Literal:
		// String literals are unquoted; other literals keep their text.
		w.emit(Scalar, t.String(), pos)
	}
}
