package lexer

import (
	"strcheck/internal/diag"
	"strcheck/internal/token"
)

var twoByteOps = []struct {
	a, b byte
	kind token.Kind
}{
	{'=', '>', token.FatArrow},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'+', '=', token.PlusAssign},
	{'-', '=', token.MinusAssign},
	{'+', '+', token.PlusPlus},
	{'-', '-', token.MinusMinus},
	{'?', '?', token.QQ},
	{'*', '=', token.StarAssign},
	{'/', '=', token.SlashAssign},
	{'%', '=', token.PercentAssign},
	{'&', '=', token.AmpAssign},
	{'|', '=', token.PipeAssign},
	{'^', '=', token.CaretAssign},
}

var oneByteOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
}

// scanOperatorOrPunct: сначала двухсимвольные, затем односимвольные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	b0, b1 := lx.cursor.Peek(), lx.cursor.PeekAt(1)
	// "?." но не "? .5"
	if b0 == '?' && b1 == '.' && !isDec(lx.cursor.PeekAt(2)) {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return emit(token.QuestionDot)
	}
	for _, op := range twoByteOps {
		if b0 == op.a && b1 == op.b {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return emit(op.kind)
		}
	}
	if k, ok := oneByteOps[b0]; ok {
		lx.cursor.Bump()
		return emit(k)
	}
	lx.bumpRune()
	return lx.invalid(diag.LexUnknownChar, start, "unexpected character")
}
