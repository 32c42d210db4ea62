package lexer

import (
	"strcheck/internal/diag"
	"strcheck/internal/token"
)

// scanNumber распознаёт целые (десятичные, 0x, 0b) и вещественные литералы.
// Суффиксы u/l/ul у целых; f/d/m у вещественных. Целое с суффиксом f/d/m
// становится RealLit ("1m" — decimal).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.digits(isHex) {
				return lx.invalid(diag.LexBadNumber, start, "expected hexadecimal digits after '0x'")
			}
			lx.integerSuffix()
			return lx.finishNumber(start, kind)
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.digits(func(b byte) bool { return b == '0' || b == '1' }) {
				return lx.invalid(diag.LexBadNumber, start, "expected binary digits after '0b'")
			}
			lx.integerSuffix()
			return lx.finishNumber(start, kind)
		}
	}

	lx.digits(isDec)
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.RealLit
		lx.cursor.Bump()
		lx.digits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !lx.digits(isDec) {
			lx.cursor.Reset(mark)
			lx.cursor.Bump()
			return lx.invalid(diag.LexBadNumber, start, "expected exponent digits")
		}
		kind = token.RealLit
	}

	switch lx.cursor.Peek() {
	case 'f', 'F', 'd', 'D', 'm', 'M':
		lx.cursor.Bump()
		kind = token.RealLit
	default:
		if kind == token.IntLit {
			lx.integerSuffix()
		}
	}
	return lx.finishNumber(start, kind)
}

// digits consumes a run of digits accepted by ok, allowing '_' separators.
func (lx *Lexer) digits(ok func(byte) bool) bool {
	seen := false
	for {
		b := lx.cursor.Peek()
		switch {
		case ok(b):
			seen = true
		case b == '_' && seen:
		default:
			return seen
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) integerSuffix() {
	switch lx.cursor.Peek() {
	case 'u', 'U':
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == 'l' || b == 'L' {
			lx.cursor.Bump()
		}
	case 'l', 'L':
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == 'u' || b == 'U' {
			lx.cursor.Bump()
		}
	}
}

func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	// "12abc" — буквы сразу за числом
	if b := lx.cursor.Peek(); isIdentStartByte(b) {
		for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		return lx.invalid(diag.LexBadNumber, start, "invalid numeric literal suffix")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
