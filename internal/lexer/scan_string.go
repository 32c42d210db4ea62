package lexer

import (
	"strcheck/internal/diag"
	"strcheck/internal/token"
)

// scanString: "..." с escape-последовательностями; перевод строки внутри — ошибка.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '\\':
			lx.scanEscape()
		case '\n':
			return lx.invalid(diag.LexUnterminatedString, start, "newline in string literal")
		default:
			lx.bumpRune()
		}
	}
	return lx.invalid(diag.LexUnterminatedString, start, "unterminated string literal")
}

// scanVerbatimString: @"..." где "" означает кавычку, переводы строк разрешены.
func (lx *Lexer) scanVerbatimString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '"' {
			if lx.cursor.PeekAt(1) == '"' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
		lx.bumpRune()
	}
	return lx.invalid(diag.LexUnterminatedString, start, "unterminated verbatim string literal")
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	switch lx.cursor.Peek() {
	case '\\':
		lx.scanEscape()
	case '\'', '\n', 0:
		return lx.invalid(diag.LexUnterminatedChar, start, "empty character literal")
	default:
		lx.bumpRune()
	}
	if !lx.cursor.Eat('\'') {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.cursor.Eat('\'')
		return lx.invalid(diag.LexUnterminatedChar, start, "character literal must contain exactly one character")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
}

// scanEscape consumes a backslash escape and reports unknown forms.
func (lx *Lexer) scanEscape() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	b := lx.cursor.Bump()
	switch b {
	case '\'', '"', '\\', '0', 'a', 'b', 'f', 'n', 'r', 't', 'v':
		return
	case 'x':
		n := 0
		for n < 4 && isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if n > 0 {
			return
		}
	case 'u', 'U':
		want := 4
		if b == 'U' {
			want = 8
		}
		n := 0
		for n < want && isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if n == want {
			return
		}
	}
	lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid escape sequence")
}
