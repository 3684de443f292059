// Package testutil defines support code for unit tests.
package testutil

import "github.com/creachadair/troy"

// Shorthand event values for constructing test streams.
var (
	MapStart = troy.Event{Type: troy.MappingStart}
	MapEnd   = troy.Event{Type: troy.MappingEnd}
	SeqStart = troy.Event{Type: troy.SequenceStart}
	SeqEnd   = troy.Event{Type: troy.SequenceEnd}
	DocStart = troy.Event{Type: troy.DocumentStart}
	DocEnd   = troy.Event{Type: troy.DocumentEnd}
)

// S returns a scalar event with the given text.
func S(text string) troy.Event { return troy.Event{Type: troy.Scalar, Value: text} }

// A returns an alias event for the given anchor name.
func A(name string) troy.Event { return troy.Event{Type: troy.Alias, Value: name} }

// Stream returns a complete event stream for a single document whose body
// is the given events.
func Stream(body ...troy.Event) []troy.Event {
	evs := []troy.Event{{Type: troy.StreamStart}, DocStart}
	evs = append(evs, body...)
	return append(evs, DocEnd, troy.Event{Type: troy.StreamEnd})
}

// Raw returns a stream holding exactly the given events between StreamStart
// and StreamEnd, with no document markers added.
func Raw(evs ...troy.Event) []troy.Event {
	out := []troy.Event{{Type: troy.StreamStart}}
	out = append(out, evs...)
	return append(out, troy.Event{Type: troy.StreamEnd})
}

// Strings returns the string form of each of the given events, for
// comparing event types and values without regard to positions.
func Strings(evs []troy.Event) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.String()
	}
	return out
}
