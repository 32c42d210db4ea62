package lexer

import (
	"strcheck/internal/diag"
	"strcheck/internal/source"
	"strcheck/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	hold   []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// SetRange restricts lexing to [start, limit); used for interpolation holes.
func (lx *Lexer) SetRange(start, limit uint32) {
	if limit > lx.cursor.Limit {
		limit = lx.cursor.Limit
	}
	lx.cursor.Off = start
	lx.cursor.Limit = limit
}

// All lexes to the end and returns every significant token followed by EOF.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, lx.cursor.Limit/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next возвращает следующий значимый токен; после EOF всегда EOF.
func (lx *Lexer) Next() token.Token {
	lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.takeHold()}
	}

	var tok token.Token
	ch := lx.cursor.Peek()
	switch {
	case ch == '$' && lx.interpolatedAhead():
		tok = lx.scanInterpolated()
	case ch == '@' && lx.cursor.PeekAt(1) == '"':
		tok = lx.scanVerbatimString()
	case ch == '@' && lx.cursor.PeekAt(1) == '$' && lx.cursor.PeekAt(2) == '"':
		tok = lx.scanInterpolated()
	case ch == '@' && (isIdentStartByte(lx.cursor.PeekAt(1)) || lx.cursor.PeekAt(1) >= utf8RuneSelf):
		tok = lx.scanIdentOrKeyword()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch), ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	tok.Leading = lx.takeHold()
	return tok
}

func (lx *Lexer) interpolatedAhead() bool {
	next := lx.cursor.PeekAt(1)
	return next == '"' || (next == '@' && lx.cursor.PeekAt(2) == '"')
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := lx.hold
	lx.hold = nil
	return out
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) invalid(code diag.Code, start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
