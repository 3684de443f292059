// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/creachadair/troy"
	"github.com/creachadair/troy/internal/escape"
	"github.com/spf13/cobra"
)

func newEventsCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "events <file>",
		Short: "Print the event stream for a document",
		Long: `Print the events reported by the parser backend for the input,
one per line, indented by nesting depth.

Example:
  troy events config.yaml
  troy events --backend yaml.v3 - < config.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closer, err := s.source(cmd, args[0])
			if err != nil {
				return err
			}
			defer closer()

			out := cmd.OutOrStdout()
			p := s.palette(out)
			var depth, count int
			err = troy.Drain(src, func(ev troy.Event) error {
				if isClose(ev.Type) {
					depth--
				}
				count++
				_, err := fmt.Fprintln(out, formatEvent(p, ev, depth))
				if isOpen(ev.Type) {
					depth++
				}
				return err
			})
			s.log.Debug("events done", "count", count)
			return err
		},
	}
}

func isOpen(t troy.EventType) bool {
	switch t {
	case troy.StreamStart, troy.DocumentStart, troy.SequenceStart, troy.MappingStart:
		return true
	}
	return false
}

func isClose(t troy.EventType) bool {
	switch t {
	case troy.StreamEnd, troy.DocumentEnd, troy.SequenceEnd, troy.MappingEnd:
		return true
	}
	return false
}

// formatEvent renders ev as a single line of output at the given depth.
func formatEvent(p palette, ev troy.Event, depth int) string {
	var sb strings.Builder
	sb.WriteString(p.pos("%-8s", ev.Pos))
	sb.WriteString(strings.Repeat("  ", max(depth, 0)))
	sb.WriteString(p.kind("%s", ev.Type))
	switch ev.Type {
	case troy.Scalar:
		sb.WriteString(" " + p.value("%s", escape.Quote(ev.Value)))
	case troy.Alias:
		sb.WriteString(" " + p.key("*%s", ev.Value))
	}
	return sb.String()
}
