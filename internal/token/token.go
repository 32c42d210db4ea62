package token

import (
	"strcheck/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal, including true/false/null.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, StringLit, CharLit, InterpStringLit, KwTrue, KwFalse, KwNull:
		return true
	}
	return false
}

func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsIdent reports whether the token is an identifier with the given text.
func (t Token) IsIdent(text string) bool {
	return t.Kind == Ident && t.Text == text
}
