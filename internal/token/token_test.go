package token_test

import (
	"testing"

	"strcheck/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		want token.Kind
		ok   bool
	}{
		{"class", token.KwClass, true},
		{"string", token.KwString, true},
		{"String", token.Invalid, false},
		{"var", token.Invalid, false},
		{"get", token.Invalid, false},
	}
	for _, tt := range tests {
		k, ok := token.LookupKeyword(tt.text)
		if ok != tt.ok || (ok && k != tt.want) {
			t.Errorf("LookupKeyword(%q) = %v,%v want %v,%v", tt.text, k, ok, tt.want, tt.ok)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.KwNamespace:     "namespace",
		token.FatArrow:        "=>",
		token.InterpStringLit: "InterpStringLit",
		token.QuestionDot:     "?.",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

func TestKindClasses(t *testing.T) {
	for _, k := range []token.Kind{token.KwObject, token.KwString, token.KwDecimal, token.KwVoid} {
		if !k.IsPredefinedType() {
			t.Errorf("%v should be a predefined type", k)
		}
	}
	if token.KwClass.IsPredefinedType() {
		t.Errorf("class is not a predefined type")
	}
	for _, k := range []token.Kind{token.KwPublic, token.KwOverride, token.KwStatic} {
		if !k.IsModifier() {
			t.Errorf("%v should be a modifier", k)
		}
	}
	if !(token.Token{Kind: token.KwNull}).IsLiteral() {
		t.Errorf("null should be a literal")
	}
	if (token.Token{Kind: token.Ident}).IsLiteral() {
		t.Errorf("identifier is not a literal")
	}
}
