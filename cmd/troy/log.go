// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// newLogger returns a text logger writing to w without timestamps. If
// verbose is true, debug messages are included.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// useColor reports whether output to w should be colorized.
func (s *settings) useColor(w io.Writer) bool {
	switch s.color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// A palette colorizes the parts of program output. The zero palette leaves
// text unchanged.
type palette struct {
	pos, kind, value, key func(string, ...any) string
	added, removed        func(string, ...any) string
}

func plain(format string, args ...any) string { return fmt.Sprintf(format, args...) }

func (s *settings) palette(w io.Writer) palette {
	if !s.useColor(w) {
		return palette{
			pos: plain, kind: plain, value: plain, key: plain,
			added: plain, removed: plain,
		}
	}
	newColor := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return palette{
		pos:   newColor(color.FgHiBlack),
		kind:  newColor(color.FgCyan, color.Bold),
		value: newColor(color.FgGreen),
		key:   newColor(color.FgYellow),

		added:   newColor(color.FgGreen),
		removed: newColor(color.FgRed),
	}
}
