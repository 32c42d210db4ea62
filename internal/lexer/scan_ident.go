package lexer

import (
	"golang.org/x/text/unicode/norm"

	"strcheck/internal/diag"
	"strcheck/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор (в т.ч. @verbatim) и проверяет ключевые слова.
// Идентификатор с префиксом '@' никогда не ключевое слово.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	verbatim := lx.cursor.Eat('@')

	ascii := true
	r, sz := lx.peekRune()
	switch {
	case sz == 0:
		return lx.invalid(diag.LexUnknownChar, start, "expected identifier")
	case r < utf8RuneSelf:
		if !isIdentStartByte(byte(r)) {
			lx.cursor.Bump()
			return lx.invalid(diag.LexUnknownChar, start, "unexpected character")
		}
		lx.cursor.Bump()
	default:
		if !isIdentStartRune(r) {
			lx.bumpRune()
			return lx.invalid(diag.LexUnknownChar, start, "unexpected character")
		}
		ascii = false
		lx.bumpRune()
	}

	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) || lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		ascii = false
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}
	if verbatim {
		// @class — идентификатор class
		return token.Token{Kind: token.Ident, Span: sp, Text: text[1:]}
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
