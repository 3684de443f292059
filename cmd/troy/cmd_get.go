// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/troy/tree"
	"github.com/creachadair/troy/tree/cursor"
	"github.com/creachadair/troy/tree/tpath"
	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func newGetCmd(s *settings) *cobra.Command {
	var raw bool
	var code string
	cmd := &cobra.Command{
		Use:   "get <file> [path]",
		Short: "Print values selected from a document",
		Long: `Build the tree for the input and print the values selected by path.

A path beginning with "$" is a path expression such as "$.items[0].name"
or "$..name", and every match is printed. Otherwise the path is a list of
keys and indices separated by "/", such as "items/-1/name", and exactly one
value is selected.

With --expr, the expression is evaluated with the document bound to "doc"
and the result is printed as YAML. The function path(p) returns the values
matching the path expression p.

Example:
  troy get config.yaml '$.servers[*].host'
  troy get config.yaml servers/0/port
  troy get config.yaml --expr 'len(doc.servers) > 2'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 2) == (code != "") {
				return errors.New("specify exactly one of a path or --expr")
			}
			root, err := s.load(cmd, args[0])
			if err != nil {
				return err
			}
			defer root.Delete()

			out := cmd.OutOrStdout()
			if code != "" {
				s.log.Debug("evaluating expression", "expr", code)
				v, err := evalExpr(root, code)
				if err != nil {
					return err
				}
				return writeYAML(out, v)
			}
			ns, err := selectPath(root, args[1])
			if err != nil {
				return err
			}
			s.log.Debug("selected", "path", args[1], "matches", len(ns))
			for _, n := range ns {
				if err := writeValue(out, n, raw); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "Print string values without quotes")
	cmd.Flags().StringVarP(&code, "expr", "e", "", "Evaluate an expression over the document")
	return cmd
}

// selectPath returns the nodes of root selected by path. A path starting
// with "$" is a path expression; otherwise it is a "/"-separated list of
// keys and indices.
func selectPath(root *tree.Node, path string) ([]*tree.Node, error) {
	if strings.HasPrefix(path, "$") {
		ns, err := tpath.EvalString(root, path)
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", path, err)
		}
		return ns, nil
	}
	n, err := cursor.Path(root, splitPath(path)...)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", path, err)
	}
	return []*tree.Node{n}, nil
}

// splitPath splits a "/"-separated path into cursor path elements. Segments
// that parse as integers are indices; other segments are keys.
func splitPath(path string) []any {
	var elts []any
	for seg := range strings.SplitSeq(path, "/") {
		if seg == "" {
			continue
		}
		if v, err := strconv.Atoi(seg); err == nil {
			elts = append(elts, v)
		} else {
			elts = append(elts, seg)
		}
	}
	return elts
}

func writeValue(w io.Writer, n *tree.Node, raw bool) error {
	if s, ok := n.Str(); ok && raw {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	_, err := fmt.Fprintln(w, n.JSON())
	return err
}

// evalExpr evaluates code with the value of root bound to "doc".
func evalExpr(root *tree.Node, code string) (any, error) {
	env := map[string]any{"doc": root.Interface()}
	prg, err := expr.Compile(code,
		expr.Env(env),
		expr.Function("path", func(params ...any) (any, error) {
			ns, err := tpath.EvalString(root, params[0].(string))
			if err != nil {
				return nil, err
			}
			out := make([]any, len(ns))
			for i, n := range ns {
				out[i] = n.Interface()
			}
			return out, nil
		}, new(func(string) []any)),
	)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	v, err := expr.Run(prg, env)
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	return v, nil
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
