package parser

import (
	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/source"
	"strcheck/internal/token"
)

// parseMember parses one member declaration of the type named owner. Fields
// with several declarators yield several members.
func (p *Parser) parseMember(owner string) []ast.MemberID {
	start := p.peek().Span
	p.skipAttributes()
	mods := p.parseModifiers()

	if kind, ok := declKind(p.peek().Kind); ok {
		p.advance()
		return []ast.MemberID{p.nestedMember(start, p.parseTypeBody(start, mods, kind))}
	}
	if p.atIdent("record") && p.peekN(1).Kind == token.Ident {
		p.advance()
		return []ast.MemberID{p.nestedMember(start, p.parseTypeBody(start, mods, ast.TypeClass))}
	}

	switch {
	case p.at(token.Ident) && p.peek().Text == owner && p.peekN(1).Kind == token.LParen:
		return []ast.MemberID{p.parseCtor(start, mods)}
	case p.atIdent("event"), p.atIdent("implicit"), p.atIdent("explicit"), p.atIdent("delegate"), p.at(token.Tilde):
		p.skipMember()
		return nil
	case p.at(token.RBrace), p.at(token.EOF):
		return nil
	}

	typ, ok := p.parseType()
	if !ok {
		p.err(diag.SynUnexpectedMember, "expected member declaration, found "+describe(p.peek()))
		p.skipMember()
		return nil
	}
	// индексаторы и операторы не участвуют в анализе
	if p.at(token.KwThis) || p.atIdent("operator") {
		p.skipMember()
		return nil
	}

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name")
	if !ok {
		p.skipMember()
		return nil
	}
	// явная реализация интерфейса: string IFoo.Bar()
	for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
		p.advance()
		name = p.advance()
	}
	if p.at(token.Lt) {
		p.skipAngles()
	}

	m := ast.Member{Name: name.Text, NameSpan: name.Span, Modifiers: mods, Type: typ}
	switch {
	case p.at(token.LParen):
		m.Kind = ast.MemberMethod
		m.Params = p.parseParams()
		p.skipConstraints()
		p.parseBody(&m)
	case p.at(token.LBrace):
		m.Kind = ast.MemberProperty
		m.Accessors = p.parseAccessors()
		if p.eat(token.Assign) {
			m.Init = p.parseExpr()
			p.expectSemicolon()
		}
	case p.at(token.FatArrow):
		m.Kind = ast.MemberProperty
		p.advance()
		m.ExprBody = p.parseExpr()
		p.expectSemicolon()
	default:
		return p.parseFieldDecls(start, m)
	}
	m.Span = p.spanFrom(start)
	return []ast.MemberID{p.b.NewMember(m)}
}

func (p *Parser) nestedMember(start source.Span, item ast.ItemID) ast.MemberID {
	m := ast.Member{Kind: ast.MemberNested, Nested: item, Span: p.spanFrom(start)}
	if td, ok := p.b.Items.Type(item); ok {
		m.Name, m.NameSpan, m.Modifiers = td.Name, td.NameSpan, td.Modifiers
	}
	return p.b.NewMember(m)
}

func (p *Parser) parseFieldDecls(start source.Span, m ast.Member) []ast.MemberID {
	m.Kind = ast.MemberField
	var out []ast.MemberID
	for {
		if p.eat(token.Assign) {
			m.Init = p.parseVarInit(m.Type)
		}
		m.Span = p.spanFrom(start)
		out = append(out, p.b.NewMember(m))
		if !p.eat(token.Comma) {
			break
		}
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name")
		if !ok {
			break
		}
		m.Name, m.NameSpan, m.Init = name.Text, name.Span, ast.NoExprID
	}
	p.expectSemicolon()
	return out
}

func (p *Parser) parseCtor(start source.Span, mods ast.Modifiers) ast.MemberID {
	name := p.advance()
	m := ast.Member{Kind: ast.MemberCtor, Name: name.Text, NameSpan: name.Span, Modifiers: mods}
	m.Params = p.parseParams()
	if p.eat(token.Colon) {
		// : base(...) / : this(...) хранится как вызов в Init
		kw := p.peek()
		var target ast.ExprID
		switch kw.Kind {
		case token.KwBase:
			p.advance()
			target = p.b.Exprs.NewBase(kw.Span)
		case token.KwThis:
			p.advance()
			target = p.b.Exprs.NewThis(kw.Span)
		default:
			p.err(diag.SynUnexpectedToken, "expected 'base' or 'this' in constructor initializer")
		}
		if target.IsValid() && p.at(token.LParen) {
			args := p.parseArgs(token.LParen, token.RParen)
			m.Init = p.b.Exprs.NewCall(p.spanFrom(kw.Span), target, args)
		}
	}
	p.parseBody(&m)
	m.Span = p.spanFrom(start)
	return p.b.NewMember(m)
}

// parseBody parses "{ ... }", "=> expr;" or a bare ';'.
func (p *Parser) parseBody(m *ast.Member) {
	switch {
	case p.at(token.LBrace):
		m.Body = p.parseBlock()
	case p.eat(token.FatArrow):
		m.ExprBody = p.parseExpr()
		p.expectSemicolon()
	default:
		p.expectSemicolon()
	}
}

// skipMember skips a member we do not model, including its body.
func (p *Parser) skipMember() {
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
			if p.at(token.Assign) {
				continue
			}
			p.eat(token.Semicolon)
			return
		case token.LParen:
			p.skipBalanced(token.LParen, token.RParen)
		case token.LBracket:
			p.skipBalanced(token.LBracket, token.RBracket)
		default:
			p.advance()
		}
	}
}

var paramModifiers = map[string]bool{"ref": true, "out": true, "params": true, "scoped": true}

func (p *Parser) parseParams() []ast.Param {
	open := p.advance()
	var out []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		p.skipAttributes()
		for p.at(token.KwThis) || p.at(token.KwIn) || (p.at(token.Ident) && paramModifiers[p.peek().Text] && p.peekN(1).Kind != token.Comma && p.peekN(1).Kind != token.RParen) {
			p.advance()
		}
		typ, ok := p.parseType()
		if !ok {
			p.err(diag.SynExpectType, "expected parameter type")
			p.advanceAtLeastOnce(func() bool { return p.at(token.Comma) || p.at(token.RParen) })
			if !p.eat(token.Comma) {
				break
			}
			continue
		}
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if ok {
			out = append(out, ast.Param{Name: name.Text, Span: name.Span, Type: typ})
		}
		if p.eat(token.Assign) {
			p.parseExpr()
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.closeParen(open.Span)
	return out
}

func (p *Parser) closeParen(open source.Span) {
	if p.eat(token.RParen) {
		return
	}
	diag.ReportError(p.reporter(), diag.SynUnclosedParen, p.diagSpan(), "expected ')'").
		WithNote(open, "opened here").Emit()
	*p.errs++
}

// parseAccessors parses "{ get; set; }" style accessor lists.
func (p *Parser) parseAccessors() []ast.StmtID {
	open := p.advance()
	var out []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.skipAttributes()
		p.parseModifiers()
		tok := p.peek()
		if tok.Kind != token.Ident || (tok.Text != "get" && tok.Text != "set" && tok.Text != "init") {
			p.err(diag.SynUnexpectedMember, "expected 'get', 'set' or 'init' accessor")
			p.skipMember()
			continue
		}
		p.advance()
		switch {
		case p.at(token.LBrace):
			out = append(out, p.parseBlock())
		case p.eat(token.FatArrow):
			e := p.parseExpr()
			out = append(out, p.b.Stmts.NewExpr(p.b.Exprs.Span(e), e))
			p.expectSemicolon()
		default:
			p.expectSemicolon()
		}
	}
	p.closeBrace(open.Span)
	return out
}
