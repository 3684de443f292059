// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/troy"
	"github.com/google/go-cmp/cmp"
)

// run executes the command line args with the given stdin, and returns the
// text written to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	if errOut.Len() != 0 {
		t.Logf("stderr:\n%s", errOut.String())
	}
	return out.String(), err
}

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		t.Fatalf("Write %q: %v", name, err)
	}
	return path
}

func TestCommands(t *testing.T) {
	doc := writeFile(t, "doc.yaml", "a: [1, 2, {b: 3}]\nname: demo\n")

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"DumpCompact", "", []string{"dump", "--compact", doc},
			`{"a":[1,2,{"b":3}],"name":"demo"}` + "\n"},
		{"DumpIndent", "", []string{"dump", doc},
			"{\n  \"a\": [\n    1,\n    2,\n    {\n      \"b\": 3\n    }\n  ],\n  \"name\": \"demo\"\n}\n"},
		{"DumpStdin", `{"x": [true,], // ok
}`, []string{"dump", "-c", "--backend", "hujson", "-"}, `{"x":["true"]}` + "\n"},

		{"GetPathExpr", "", []string{"get", doc, "$.a[*]"}, "1\n2\n{\"b\":3}\n"},
		{"GetCursor", "", []string{"get", doc, "a/-1/b"}, "3\n"},
		{"GetQuoted", "", []string{"get", doc, "name"}, "\"demo\"\n"},
		{"GetRaw", "", []string{"get", "--raw", doc, "$.name"}, "demo\n"},
		{"GetNoMatch", "", []string{"get", doc, "$.nonesuch"}, ""},
		{"GetExpr", "", []string{"get", doc, "--expr", "len(doc.a)"}, "3\n"},
		{"GetExprPath", "", []string{"get", doc, "-e", `path("$..b")`}, "- 3\n"},
		{"GetExprBool", "", []string{"get", doc, "-e", `doc.name == "demo"`}, "true\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := run(t, tc.stdin, tc.args...)
			if err != nil {
				t.Fatalf("Run %q: unexpected error: %v", tc.args, err)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Run %q: output (-got, +want):\n%s", tc.args, diff)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	doc := writeFile(t, "doc.yaml", "a: [1, 2]\n")
	alias := writeFile(t, "alias.yaml", "x: &a 1\ny: *a\n")

	tests := []struct {
		name string
		args []string
		kind troy.ErrorKind
	}{
		{"BadBackend", []string{"dump", "--backend", "toml", doc}, troy.NoError},
		{"BadColor", []string{"events", "--color", "plaid", doc}, troy.NoError},
		{"Missing", []string{"dump", filepath.Join(t.TempDir(), "nonesuch.yaml")}, troy.IOError},
		{"MissingEvents", []string{"events", filepath.Join(t.TempDir(), "nonesuch.yaml")}, troy.IOError},
		{"Alias", []string{"dump", alias}, troy.UnsupportedError},
		{"PathAndExpr", []string{"get", doc, "a", "--expr", "1"}, troy.NoError},
		{"NeitherPathNorExpr", []string{"get", doc}, troy.NoError},
		{"BadPath", []string{"get", doc, "$.["}, troy.NoError},
		{"BadIndex", []string{"get", doc, "a/5"}, troy.IndexError},
		{"BadExpr", []string{"get", doc, "-e", "doc.a +"}, troy.NoError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, "", tc.args...)
			if err == nil {
				t.Fatalf("Run %q: got nil error", tc.args)
			}
			if got := troy.KindOf(err); got != tc.kind {
				t.Errorf("Run %q: got %v (%v), want %v", tc.args, got, err, tc.kind)
			} else {
				t.Logf("Got expected error: %v", err)
			}
		})
	}
}

func TestEvents(t *testing.T) {
	doc := writeFile(t, "doc.json", `{"k": [1]}`)
	got, err := run(t, "", "events", "--color", "never", doc)
	if err != nil {
		t.Fatalf("Run events: unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	want := []string{
		"stream start",
		"  document start",
		"    mapping start",
		`      scalar "k"`,
		"      sequence start",
		`        scalar "1"`,
		"      sequence end",
		"    mapping end",
		"  document end",
		"stream end",
	}
	if len(lines) != len(want) {
		t.Fatalf("Got %d lines, want %d:\n%s", len(lines), len(want), got)
	}
	for i, line := range lines {
		// Each line begins with an 8-column position field.
		if len(line) < 8 || line[8:] != want[i] {
			t.Errorf("Line %d: got %q, want %q after the position", i+1, line, want[i])
		}
	}
}

func TestFormatEvent(t *testing.T) {
	p := (&settings{color: "never"}).palette(nil)
	tests := []struct {
		ev    troy.Event
		depth int
		want  string
	}{
		{troy.Event{Type: troy.StreamStart}, 0, "-       stream start"},
		{troy.Event{Type: troy.Scalar, Value: "a\"b", Pos: troy.Position{Line: 3, Column: 14}}, 2,
			`3:14        scalar "a\"b"`},
		{troy.Event{Type: troy.Alias, Value: "x", Pos: troy.Position{Line: 12, Column: 1}}, 1,
			"12:1      alias *x"},
		{troy.Event{Type: troy.MappingEnd}, -1, "-       mapping end"},
	}
	for _, tc := range tests {
		if got := formatEvent(p, tc.ev, tc.depth); got != tc.want {
			t.Errorf("formatEvent(%v, %d):\n got %q\nwant %q", tc.ev, tc.depth, got, tc.want)
		}
	}
}

func TestDiff(t *testing.T) {
	a := writeFile(t, "a.yaml", "# config\nname: demo\nlist:\n  - 1\n  - x\n")
	b := writeFile(t, "b.json", `{"list": [1, "x"], "name": "demo"}`)
	c := writeFile(t, "c.yaml", "name: demo\nlist: [1, y]\n")

	if out, err := run(t, "", "diff", a, b); err != nil {
		t.Errorf("Diff equal documents: unexpected error: %v\n%s", err, out)
	}

	out, err := run(t, "", "diff", "--color", "never", a, c)
	if !errors.Is(err, errDiffer) {
		t.Fatalf("Diff: got %v, want %v", err, errDiffer)
	}
	for _, want := range []string{`-     "x"`, `+     "y"`, `    "name": "demo"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Diff output missing %q:\n%s", want, out)
		}
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		input string
		want  []any
	}{
		{"", nil},
		{"a", []any{"a"}},
		{"/a//b/", []any{"a", "b"}},
		{"items/-1/name", []any{"items", -1, "name"}},
		{"0/1x", []any{0, "1x"}},
	}
	for _, tc := range tests {
		if diff := cmp.Diff(splitPath(tc.input), tc.want); diff != "" {
			t.Errorf("splitPath(%q) (-got, +want):\n%s", tc.input, diff)
		}
	}
}
