// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/creachadair/troy/tree"
	"github.com/spf13/cobra"
)

func newDumpCmd(s *settings) *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the tree for a document as JSON",
		Long: `Build the tree for the input and print it as JSON. Scalars are
rendered according to their classified types, and mapping keys are sorted.

Example:
  troy dump config.yaml
  troy dump --compact data.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := s.load(cmd, args[0])
			if err != nil {
				return err
			}
			defer root.Delete()

			s.log.Debug("loaded tree", "type", root.Type(), "len", root.Len())
			if compact {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), root.JSON())
				return err
			}
			return tree.WriteJSON(cmd.OutOrStdout(), root)
		},
	}
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "Print compact JSON on one line")
	return cmd
}
