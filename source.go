// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package troy

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// A Backend selects the parser used to produce events from source text.
type Backend byte

// Constants defining the supported backends.
const (
	YAML   Backend = iota // YAML, via github.com/goccy/go-yaml
	YAMLv3                // YAML, via gopkg.in/yaml.v3
	HuJSON                // JSON with comments and trailing commas, via github.com/tailscale/hujson
)

var backendStr = [...]string{
	YAML:   "yaml",
	YAMLv3: "yaml.v3",
	HuJSON: "hujson",
}

func (b Backend) String() string {
	if int(b) >= len(backendStr) {
		return fmt.Sprintf("Backend(%d)", b)
	}
	return backendStr[b]
}

// ParseBackend returns the backend with the given name.
func ParseBackend(name string) (Backend, error) {
	for i, s := range backendStr {
		if strings.EqualFold(name, s) {
			return Backend(i), nil
		}
	}
	return 0, fmt.Errorf("unknown backend %q", name)
}

// NewSource constructs a Source that reads text from r and reports its
// structure as events, using the specified backend. Input is not consumed
// until the first call to Next.
func NewSource(r io.Reader, b Backend) (Source, error) {
	switch b {
	case YAML:
		return &bufferedSource{r: r, load: loadYAML}, nil
	case YAMLv3:
		return newNodeSource(r), nil
	case HuJSON:
		return &bufferedSource{r: r, load: loadHuJSON}, nil
	default:
		return nil, fmt.Errorf("unknown backend %v", b)
	}
}

// A bufferedSource reads its entire input on first use and converts it to a
// slice of events with a backend-specific load function.
type bufferedSource struct {
	r    io.Reader
	load func([]byte) ([]Event, error)

	loaded bool
	evs    []Event
	pos    int
	err    error
}

func (s *bufferedSource) Next() (Event, error) {
	if !s.loaded {
		s.loaded = true
		src, err := io.ReadAll(s.r)
		if err != nil {
			s.err = Errorf(IOError, Position{}, "reading input: %w", err)
		} else {
			s.evs, s.err = s.load(src)
		}
	}
	if s.err != nil {
		return Event{}, s.err
	} else if s.pos >= len(s.evs) {
		return Event{}, io.EOF
	}
	ev := s.evs[s.pos]
	s.pos++
	return ev, nil
}

// An emitter accumulates events.
type emitter struct{ evs []Event }

func (e *emitter) emit(t EventType, value string, pos Position) {
	e.evs = append(e.evs, Event{Type: t, Value: value, Pos: pos})
}

// isBlank reports whether src contains only whitespace.
func isBlank(src []byte) bool { return len(bytes.TrimSpace(src)) == 0 }

// A trackingReader records the first non-EOF error reported by its
// underlying reader, so that read failures can be told apart from parse
// failures reported by a decoder that consumes the reader.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(data []byte) (int, error) {
	nr, err := t.r.Read(data)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return nr, err
}
