package lexer

import (
	"strcheck/internal/diag"
	"strcheck/internal/token"
)

// collectLeadingTrivia пропускает пробелы, переводы строк, комментарии и
// строки препроцессора. Trivia сохраняются только при Options.KeepTrivia.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		kind := token.TriviaSpace
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			for {
				c := lx.cursor.Peek()
				if c != ' ' && c != '\t' && c != '\r' && c != '\f' && c != '\v' {
					break
				}
				lx.cursor.Bump()
			}
		case b == '\n':
			kind = token.TriviaNewline
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
		case b == '#':
			kind = token.TriviaPreprocessor
			lx.skipLine()
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			kind = token.TriviaLineComment
			if lx.cursor.PeekAt(2) == '/' {
				kind = token.TriviaDocLine
			}
			lx.skipLine()
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			kind = token.TriviaBlockComment
			lx.skipBlockComment()
		default:
			return
		}
		if lx.opts.KeepTrivia {
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
		}
	}
}

func (lx *Lexer) skipLine() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

// C# block comments do not nest.
func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
}
