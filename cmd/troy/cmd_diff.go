// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/troy/tree"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

// errDiffer is reported by the diff command when its inputs differ.
var errDiffer = errors.New("documents differ")

func newDiffCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <file1> <file2>",
		Short: "Compare the trees of two documents",
		Long: `Build the trees for two inputs and print a line diff of their JSON
renderings. Because scalars are classified and keys are sorted, documents
that differ only in layout, quoting, or key order compare equal.

The command fails if the documents differ.

Example:
  troy diff old.yaml new.yaml
  troy diff config.yaml config.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text [2]string
			for i, name := range args {
				root, err := s.load(cmd, name)
				if err != nil {
					return err
				}
				var buf bytes.Buffer
				err = tree.WriteJSON(&buf, root)
				root.Delete()
				if err != nil {
					return err
				}
				text[i] = buf.String()
			}
			out := cmd.OutOrStdout()
			if !writeDiff(out, s.palette(out), text[0], text[1]) {
				s.log.Debug("documents are equal")
				return nil
			}
			return errDiffer
		},
	}
}

// writeDiff writes a line diff from a to b to w, and reports whether any
// lines differ.
func writeDiff(w io.Writer, p palette, a, b string) bool {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	changed := false
	for _, d := range diffs {
		var mark string
		var paint func(string, ...any) string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			mark, paint, changed = "+", p.added, true
		case diffmatchpatch.DiffDelete:
			mark, paint, changed = "-", p.removed, true
		default:
			mark, paint = " ", p.pos
		}
		for line := range strings.Lines(d.Text) {
			fmt.Fprint(w, paint("%s %s", mark, line))
		}
	}
	return changed
}
