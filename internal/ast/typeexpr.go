package ast

import (
	"strings"

	"strcheck/internal/source"
	"strcheck/internal/token"
)

// TypeExpr is a syntactic type reference. Exactly one of Predef, Name or Var is set.
type TypeExpr struct {
	Span source.Span
	// Predef holds the keyword for builtin types (object, string, int, ...).
	Predef token.Kind
	// Name is the dotted name split into segments, e.g. ["System", "Console"].
	Name []string
	Var  bool
	// Rank counts trailing "[]" pairs.
	Rank int
}

func (t TypeExpr) IsValid() bool {
	return t.Var || t.Predef != token.Invalid || len(t.Name) > 0
}

// String renders the type as written, normalised to single dots.
func (t TypeExpr) String() string {
	var sb strings.Builder
	switch {
	case t.Var:
		sb.WriteString("var")
	case t.Predef != token.Invalid:
		sb.WriteString(t.Predef.String())
	default:
		sb.WriteString(strings.Join(t.Name, "."))
	}
	for range t.Rank {
		sb.WriteString("[]")
	}
	return sb.String()
}

// Elem returns the type with one array rank removed.
func (t TypeExpr) Elem() TypeExpr {
	if t.Rank > 0 {
		t.Rank--
	}
	return t
}
