// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/creachadair/troy"
)

// Options control how Parse and ParseFile read their input. A nil *Options
// is ready for use and provides default values.
type Options struct {
	// Backend selects the parser used to generate events. If unset, Parse
	// uses troy.YAML, and ParseFile chooses based on the file extension.
	Backend *troy.Backend
}

func (o *Options) backend(path string) troy.Backend {
	if o != nil && o.Backend != nil {
		return *o.Backend
	}
	return BackendFor(path)
}

// BackendFor reports the default backend for a file with the given path:
// troy.HuJSON for the extensions .json, .hujson, and .jwcc, otherwise
// troy.YAML.
func BackendFor(path string) troy.Backend {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".hujson", ".jwcc":
		return troy.HuJSON
	}
	return troy.YAML
}

// Parse reads a document from r and returns the root of its tree.
// Only the first document in the input is supported.
func Parse(r io.Reader, opts *Options) (*Node, error) {
	src, err := troy.NewSource(r, opts.backend(""))
	if err != nil {
		return nil, err
	}
	return Build(src)
}

// ParseFile reads a document from the named file and returns the root of its
// tree. The file is closed before ParseFile returns.
func ParseFile(path string, opts *Options) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, troy.Errorf(troy.IOError, troy.Position{}, "open: %w", err)
	}
	defer f.Close()

	src, err := troy.NewSource(f, opts.backend(path))
	if err != nil {
		return nil, err
	}
	root, err := Build(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
