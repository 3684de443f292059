// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package troy reports the structure of YAML and JSON-like documents as a
// stream of events.
//
// # Events
//
// An Event describes one structural step in a document stream:
//
//	Event type     | Description
//	-------------- | -------------------------------------------------
//	StreamStart    | start of the input
//	DocumentStart  | start of a document
//	MappingStart   | start of a mapping; keys and values alternate
//	SequenceStart  | start of a sequence
//	Scalar         | a scalar value; Value holds its text
//	Alias          | a reference to an anchored node; Value is its name
//	SequenceEnd    | end of the most-recently-started sequence
//	MappingEnd     | end of the most-recently-started mapping
//	DocumentEnd    | end of the current document
//	StreamEnd      | end of the input
//
// # Sources
//
// A Source delivers events one at a time. Construct a source from an
// io.Reader with NewSource, and call its Next method until it reports io.EOF:
//
//	src, err := troy.NewSource(input, troy.YAML)
//	if err != nil {
//	   log.Fatalf("NewSource: %v", err)
//	}
//	for {
//	   ev, err := src.Next()
//	   if err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Fatalf("Next: %v", err)
//	   }
//	   log.Printf("Event: %v", ev)
//	}
//
// The Backend selects the parser that produces events: YAML uses
// github.com/goccy/go-yaml, YAMLv3 uses gopkg.in/yaml.v3, and HuJSON uses
// github.com/tailscale/hujson for JSON with comments and trailing commas.
//
// # Errors
//
// Errors reported by sources and by consumers of events have concrete type
// *troy.Error, whose Kind classifies the failure. Use KindOf to recover the
// kind from a wrapped error.
//
// See package [github.com/creachadair/troy/tree] to construct a document
// tree from a stream of events.
package troy
