// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program troy reads YAML and HuJSON documents and inspects the trees built
// from them.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/creachadair/troy"
	"github.com/creachadair/troy/tree"
	"github.com/spf13/cobra"
)

// settings holds the values of the global flags.
type settings struct {
	backend string
	verbose bool
	color   string
	log     *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var s settings
	root := &cobra.Command{
		Use:   "troy",
		Short: "Build and inspect document trees from YAML and HuJSON",
		Long: `troy reads a single YAML or HuJSON document, builds a tree from it,
and reports its events, structure, or selected values.

Input is read from the named file, or from stdin if the name is "-".
The backend is chosen from the file extension unless --backend is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if s.backend != "" {
				if _, err := troy.ParseBackend(s.backend); err != nil {
					return err
				}
			}
			switch s.color {
			case "auto", "always", "never":
			default:
				return fmt.Errorf("invalid --color value %q", s.color)
			}
			s.log = newLogger(cmd.ErrOrStderr(), s.verbose)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&s.backend, "backend", "b", "",
		`Parser backend ("yaml", "yaml.v3", or "hujson")`)
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&s.color, "color", "auto",
		`Colorize output ("auto", "always", or "never")`)

	root.AddCommand(
		newEventsCmd(&s),
		newDumpCmd(&s),
		newGetCmd(&s),
		newDiffCmd(&s),
	)
	return root
}

// options returns the tree options for the selected backend, or nil to
// choose by file extension.
func (s *settings) options() *tree.Options {
	if s.backend == "" {
		return nil
	}
	b, err := troy.ParseBackend(s.backend)
	if err != nil {
		return nil
	}
	return &tree.Options{Backend: &b}
}

// source opens an event source for the named input.
func (s *settings) source(cmd *cobra.Command, name string) (troy.Source, func() error, error) {
	b := troy.YAML
	if opts := s.options(); opts != nil {
		b = *opts.Backend
	} else if name != "-" {
		b = tree.BackendFor(name)
	}
	s.log.Debug("reading events", "input", name, "backend", b)
	r, closer, err := openInput(cmd, name)
	if err != nil {
		return nil, nil, err
	}
	src, err := troy.NewSource(r, b)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return src, closer, nil
}

// load builds the tree for the named input.
func (s *settings) load(cmd *cobra.Command, name string) (*tree.Node, error) {
	s.log.Debug("loading tree", "input", name, "backend", s.backend)
	if name == "-" {
		return tree.Parse(cmd.InOrStdin(), s.options())
	}
	return tree.ParseFile(name, s.options())
}

func openInput(cmd *cobra.Command, name string) (io.Reader, func() error, error) {
	if name == "-" {
		return cmd.InOrStdin(), func() error { return nil }, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, troy.Errorf(troy.IOError, troy.Position{}, "open: %w", err)
	}
	return f, f.Close, nil
}
