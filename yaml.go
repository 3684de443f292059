// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package troy

import (
	"errors"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// loadYAML parses src as a YAML stream and flattens its syntax tree into
// events.
func loadYAML(src []byte) ([]Event, error) {
	var e emitter
	e.emit(StreamStart, "", Position{})
	if isBlank(src) {
		e.emit(StreamEnd, "", Position{})
		return e.evs, nil
	}

	f, err := parser.ParseBytes(src, 0)
	if err != nil {
		return nil, Errorf(SourceError, yamlErrorPos(err), "%w", err)
	}
	w := yamlWalker{emitter: &e}
	for _, doc := range f.Docs {
		// A stream holding only comments has no document.
		if len(f.Docs) == 1 && doc.Start == nil && isEmptyBody(doc.Body) {
			break
		}
		pos := tokenPos(doc.Start)
		if !pos.IsValid() && doc.Body != nil {
			pos = tokenPos(doc.Body.GetToken())
		}
		e.emit(DocumentStart, "", pos)
		if err := w.walk(doc.Body, pos); err != nil {
			return nil, err
		}
		e.emit(DocumentEnd, "", tokenPos(doc.End))
	}
	e.emit(StreamEnd, "", Position{})
	return e.evs, nil
}

func isEmptyBody(n ast.Node) bool {
	if n == nil {
		return true
	}
	_, ok := n.(*ast.CommentGroupNode)
	return ok
}

type yamlWalker struct{ *emitter }

// walk emits the events for n. The parent position is used for implicit
// values that have no token of their own.
func (w yamlWalker) walk(n ast.Node, parent Position) error {
	if n == nil {
		w.emit(Scalar, "", parent)
		return nil
	}
	pos := tokenPos(n.GetToken())
	if !pos.IsValid() {
		pos = parent
	}
	switch t := n.(type) {
	case *ast.MappingNode:
		w.emit(MappingStart, "", pos)
		for _, mv := range t.Values {
			if err := w.walkPair(mv); err != nil {
				return err
			}
		}
		w.emit(MappingEnd, "", pos)

	case *ast.MappingValueNode:
		// A single key-value pair not wrapped in a mapping node.
		w.emit(MappingStart, "", pos)
		if err := w.walkPair(t); err != nil {
			return err
		}
		w.emit(MappingEnd, "", pos)

	case *ast.SequenceNode:
		w.emit(SequenceStart, "", pos)
		for _, v := range t.Values {
			if err := w.walk(v, pos); err != nil {
				return err
			}
		}
		w.emit(SequenceEnd, "", pos)

	case *ast.AnchorNode:
		return w.walk(t.Value, pos)

	case *ast.TagNode:
		return w.walk(t.Value, pos)

	case *ast.MappingKeyNode:
		return w.walk(t.Value, pos)

	case *ast.AliasNode:
		w.emit(Alias, tokenText(t.Value), pos)

	case *ast.CommentGroupNode:
		w.emit(Scalar, "", pos)

	case *ast.StringNode:
		w.emit(Scalar, t.Value, pos)

	case *ast.LiteralNode:
		var text string
		if t.Value != nil {
			text = t.Value.Value
		}
		w.emit(Scalar, text, pos)

	case *ast.NullNode:
		// An implicit null ("a:" or a bare "-") has no text of its own.
		var text string
		if tk := t.GetToken(); tk != nil && tk.Type != token.ImplicitNullType {
			text = strings.TrimSpace(tk.Origin)
		}
		w.emit(Scalar, text, pos)

	case ast.ScalarNode:
		w.emit(Scalar, tokenText(t), pos)

	default:
		return Errorf(SourceError, pos, "unsupported YAML node %v", n.Type())
	}
	return nil
}

func (w yamlWalker) walkPair(mv *ast.MappingValueNode) error {
	pos := tokenPos(mv.GetToken())
	if err := w.walk(mv.Key, pos); err != nil {
		return err
	}
	return w.walk(mv.Value, pos)
}

func tokenText(n ast.Node) string {
	if n == nil {
		return ""
	}
	if tk := n.GetToken(); tk != nil {
		return tk.Value
	}
	return ""
}

// yamlErrorPos returns the location of the token that caused err, if any.
func yamlErrorPos(err error) Position {
	var te interface{ GetToken() *token.Token }
	if errors.As(err, &te) {
		return tokenPos(te.GetToken())
	}
	return Position{}
}

func tokenPos(tk *token.Token) Position {
	if tk == nil || tk.Position == nil {
		return Position{}
	}
	return Position{Line: tk.Position.Line, Column: tk.Position.Column}
}
