package parser

import (
	"bytes"

	"strcheck/internal/ast"
	"strcheck/internal/token"
)

// parseType parses a type reference without reporting; callers decide how to
// diagnose a missing type. Generic arguments are skipped, nullable '?' dropped.
func (p *Parser) parseType() (ast.TypeExpr, bool) {
	start := p.peek()
	var t ast.TypeExpr
	switch {
	case start.Kind.IsPredefinedType():
		p.advance()
		t.Predef = start.Kind
	case start.Kind == token.Ident:
		t.Name = append(t.Name, p.advance().Text)
		// алиас global::System.Console
		if p.at(token.Colon) && p.peekN(1).Kind == token.Colon && p.peekN(2).Kind == token.Ident {
			p.advance()
			p.advance()
			t.Name[0] = p.advance().Text
		}
		if p.at(token.Lt) {
			p.skipAngles()
		}
		for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
			p.advance()
			t.Name = append(t.Name, p.advance().Text)
			if p.at(token.Lt) {
				p.skipAngles()
			}
		}
		if len(t.Name) == 1 && t.Name[0] == "var" {
			t.Name, t.Var = nil, true
		}
	case start.Kind == token.LParen:
		// кортеж (int, string) — моделируем как ValueTuple
		p.skipBalanced(token.LParen, token.RParen)
		t.Name = []string{"System", "ValueTuple"}
	default:
		return ast.TypeExpr{}, false
	}
	if p.at(token.Question) && p.nullableAhead() {
		p.advance()
	}
	for p.at(token.LBracket) && (p.peekN(1).Kind == token.RBracket || p.peekN(1).Kind == token.Comma) {
		p.advance()
		for p.eat(token.Comma) {
		}
		p.advance()
		t.Rank++
	}
	t.Span = start.Span.Cover(p.lastSpan)
	return t, true
}

// nullableAhead tells "T?" from the conditional operator by what follows '?'.
func (p *Parser) nullableAhead() bool {
	switch p.peekN(1).Kind {
	case token.Ident, token.LBracket, token.RParen, token.Comma, token.Gt, token.RBracket:
		return true
	}
	return false
}

// skipTypeArgs skips an optional "<...>" after a name, as in aliases of
// generic types.
func (p *Parser) skipTypeArgs() {
	if p.at(token.Lt) {
		p.skipAngles()
	}
}

// skipAngles consumes a balanced "<...>" made only of type-ish tokens. On
// anything else it restores the position and returns false.
func (p *Parser) skipAngles() bool {
	save, saveSpan := p.pos, p.lastSpan
	depth := 0
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.Lt:
			depth++
		case tok.Kind == token.Gt:
			depth--
		case tok.Kind == token.Ident, tok.Kind == token.Dot, tok.Kind == token.Comma,
			tok.Kind == token.Question, tok.Kind == token.LBracket, tok.Kind == token.RBracket,
			tok.Kind == token.LParen, tok.Kind == token.RParen,
			tok.Kind.IsPredefinedType(), tok.Kind == token.KwIn:
		default:
			p.pos, p.lastSpan = save, saveSpan
			return false
		}
		p.advance()
		if depth == 0 {
			return true
		}
	}
}

// scanLocalDecl reports whether a local variable declaration "T name ..."
// starts at the current token; the position is left unchanged.
func (p *Parser) scanLocalDecl() bool {
	save, saveSpan := p.pos, p.lastSpan
	defer func() { p.pos, p.lastSpan = save, saveSpan }()
	if p.at(token.KwVoid) {
		return false
	}
	if _, ok := p.parseType(); !ok {
		return false
	}
	if !p.at(token.Ident) {
		return false
	}
	switch p.peekN(1).Kind {
	case token.Assign, token.Semicolon, token.Comma, token.KwIn:
		return true
	}
	// отсутствующая ';' после объявления: "T x" и затем следующий оператор
	return p.peekN(1).Span.Start > p.peek().Span.End && p.newlineBefore(p.pos+1)
}

// newlineBefore reports whether a line break separates token i from its predecessor.
func (p *Parser) newlineBefore(i int) bool {
	if i <= 0 || i >= len(p.toks) {
		return true
	}
	tok := p.toks[i]
	if tok.Kind == token.EOF || tok.Kind == token.RBrace {
		return true
	}
	return bytes.IndexByte(p.file.Content[p.toks[i-1].Span.End:tok.Span.Start], '\n') >= 0
}
