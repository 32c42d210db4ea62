package parser

import (
	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/lexer"
	"strcheck/internal/source"
	"strcheck/internal/token"
)

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.peek()
	e := p.b.Exprs
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return e.NewLiteral(tok.Span, ast.LitInt, tok.Text)
	case token.RealLit:
		p.advance()
		return e.NewLiteral(tok.Span, ast.LitReal, tok.Text)
	case token.StringLit:
		p.advance()
		return e.NewLiteral(tok.Span, ast.LitString, tok.Text)
	case token.CharLit:
		p.advance()
		return e.NewLiteral(tok.Span, ast.LitChar, tok.Text)
	case token.KwTrue, token.KwFalse:
		p.advance()
		return e.NewLiteral(tok.Span, ast.LitBool, tok.Text)
	case token.KwNull:
		p.advance()
		return e.NewLiteral(tok.Span, ast.LitNull, tok.Text)
	case token.InterpStringLit:
		p.advance()
		return p.parseInterpolated(tok)
	case token.Ident:
		if tok.Text == "throw" && p.startsOperand(p.peekN(1)) {
			// throw-выражение: x ?? throw new E()
			p.advance()
			return p.parseUnary()
		}
		p.advance()
		id := e.NewIdent(tok.Span, tok.Text)
		p.skipCallTypeArgs()
		return id
	case token.KwThis:
		p.advance()
		return e.NewThis(tok.Span)
	case token.KwBase:
		p.advance()
		return e.NewBase(tok.Span)
	case token.KwTypeof:
		p.advance()
		open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after typeof")
		if !ok {
			return e.NewTypeOf(tok.Span, ast.TypeExpr{})
		}
		t, ok := p.parseType()
		if !ok {
			p.err(diag.SynExpectType, "expected type")
		}
		p.closeParen(open.Span)
		return e.NewTypeOf(p.spanFrom(tok.Span), t)
	case token.KwNew:
		return p.parseNew()
	case token.LParen:
		return p.parseParenthesized()
	}
	if tok.Kind.IsPredefinedType() {
		p.advance()
		return e.NewPredefType(tok.Span, tok.Kind)
	}
	p.err(diag.SynExpectExpression, "expected expression, found "+describe(tok))
	return ast.NoExprID
}

// parseParenthesized parses "(e)" and tuples "(a, b)"; tuples are modelled as
// creation of System.ValueTuple.
func (p *Parser) parseParenthesized() ast.ExprID {
	open := p.advance()
	inner := p.parseExpr()
	if !p.at(token.Comma) {
		p.closeParen(open.Span)
		return p.b.Exprs.NewGroup(p.spanFrom(open.Span), inner)
	}
	elems := []ast.ExprID{inner}
	for p.eat(token.Comma) {
		elems = append(elems, p.parseExpr())
	}
	p.closeParen(open.Span)
	sp := p.spanFrom(open.Span)
	return p.b.Exprs.NewNew(sp, ast.NewExpr{
		Type:    ast.TypeExpr{Span: sp, Name: []string{"System", "ValueTuple"}},
		Args:    elems,
		HasArgs: true,
	})
}

// parseNew handles object creation, typed and implicitly typed arrays,
// target-typed new(...) and anonymous objects.
func (p *Parser) parseNew() ast.ExprID {
	start := p.advance().Span
	e := p.b.Exprs

	switch p.peek().Kind {
	case token.LBracket:
		// new[] { ... } / new[,] { ... }
		p.skipBalanced(token.LBracket, token.RBracket)
		if !p.at(token.LBrace) {
			p.err(diag.SynUnexpectedToken, "expected array initializer")
			return e.NewImplicitArray(p.spanFrom(start), nil)
		}
		elems := p.parseInitList()
		return e.NewImplicitArray(p.spanFrom(start), elems)
	case token.LBrace:
		init := p.parseInitList()
		return e.NewNew(p.spanFrom(start), ast.NewExpr{Init: init, HasInit: true})
	case token.LParen:
		n := ast.NewExpr{Args: p.parseArgs(token.LParen, token.RParen), HasArgs: true}
		if p.at(token.LBrace) {
			n.Init, n.HasInit = p.parseInitList(), true
		}
		return e.NewNew(p.spanFrom(start), n)
	}

	t, ok := p.parseType()
	if !ok {
		p.err(diag.SynExpectType, "expected type after 'new'")
		return ast.NoExprID
	}
	if p.at(token.LBracket) {
		an := ast.ArrayNewExpr{Elem: t, Sizes: p.parseArgs(token.LBracket, token.RBracket)}
		for p.at(token.LBracket) && (p.peekN(1).Kind == token.RBracket || p.peekN(1).Kind == token.Comma) {
			p.skipBalanced(token.LBracket, token.RBracket)
			an.Elem.Rank++
		}
		if p.at(token.LBrace) {
			an.Init, an.HasInit = p.parseInitList(), true
		}
		return e.NewArrayNew(p.spanFrom(start), an)
	}
	if t.Rank > 0 {
		an := ast.ArrayNewExpr{Elem: t.Elem()}
		if p.at(token.LBrace) {
			an.Init, an.HasInit = p.parseInitList(), true
		} else {
			p.err(diag.SynUnexpectedToken, "expected array initializer")
		}
		return e.NewArrayNew(p.spanFrom(start), an)
	}

	n := ast.NewExpr{Type: t}
	if p.at(token.LParen) {
		n.Args, n.HasArgs = p.parseArgs(token.LParen, token.RParen), true
	}
	if p.at(token.LBrace) {
		n.Init, n.HasInit = p.parseInitList(), true
	}
	if !n.HasArgs && !n.HasInit {
		p.err(diag.SynUnexpectedToken, "expected '(' or '{' after type in object creation")
	}
	return e.NewNew(p.spanFrom(start), n)
}

// parseInitList parses "{ a, b = c, [k] = v, { x, y } }". Nested braces of
// collection initialisers are flattened; index initialisers keep only the value.
func (p *Parser) parseInitList() []ast.ExprID {
	open := p.advance()
	var out []ast.ExprID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch {
		case p.at(token.LBrace):
			out = append(out, p.parseInitList()...)
		case p.at(token.LBracket):
			p.skipBalanced(token.LBracket, token.RBracket)
			if p.eat(token.Assign) {
				out = append(out, p.parseVarInit(ast.TypeExpr{}))
			}
		case p.at(token.Ident) && p.peekN(1).Kind == token.Assign && p.peekN(2).Kind == token.LBrace:
			// Prop = { ... } — вложенный инициализатор
			p.advance()
			p.advance()
			out = append(out, p.parseInitList()...)
		default:
			el := p.parseExpr()
			if !el.IsValid() {
				p.advanceAtLeastOnce(func() bool { return p.at(token.Comma) || p.at(token.RBrace) })
			} else {
				out = append(out, el)
			}
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.closeBrace(open.Span)
	return out
}

// parseInterpolated splits the literal into text runs and holes and parses
// every hole at its real offsets, so nested diagnostics point into the literal.
func (p *Parser) parseInterpolated(tok token.Token) ast.ExprID {
	in := lexer.SplitInterpolated(p.file, tok.Span.Start, tok.Span.End)
	data := ast.InterpExpr{Verbatim: in.Verbatim, Parts: make([]ast.InterpPart, 0, len(in.Segments))}
	for _, seg := range in.Segments {
		part := ast.InterpPart{Hole: seg.Hole, Span: seg.Span, Align: seg.Align, Format: seg.Format}
		if seg.Hole && !seg.Span.Empty() {
			part.Expr = p.parseHole(seg.Span)
		}
		data.Parts = append(data.Parts, part)
	}
	return p.b.Exprs.NewInterp(tok.Span, data)
}

func (p *Parser) parseHole(sp source.Span) ast.ExprID {
	sub := p.subParser(sp.Start, sp.End)
	id := sub.parseExpr()
	if !sub.at(token.EOF) {
		sub.err(diag.SynBadInterpolation, "unexpected "+describe(sub.peek())+" in interpolation hole")
	}
	return id
}
