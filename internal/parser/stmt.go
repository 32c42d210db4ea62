package parser

import (
	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/source"
	"strcheck/internal/token"
)

func (p *Parser) parseBlock() ast.StmtID {
	open := p.advance()
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if st := p.parseStmt(); st.IsValid() {
			stmts = append(stmts, st)
		}
		if p.pos == before {
			p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.peek()))
			p.advance()
		}
	}
	p.closeBrace(open.Span)
	return p.b.Stmts.NewBlock(p.spanFrom(open.Span), stmts)
}

// parseStmt returns NoStmtID for statements that carry nothing to analyse
// (break, continue, labels).
func (p *Parser) parseStmt() ast.StmtID {
	tok := p.peek()
	s := p.b.Stmts
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return s.NewEmpty(tok.Span)
	case token.KwReturn:
		p.advance()
		var value ast.ExprID
		if !p.at(token.Semicolon) && !p.at(token.RBrace) {
			value = p.parseExpr()
		}
		p.expectSemicolon()
		return s.NewReturn(p.spanFrom(tok.Span), value)
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		p.advance()
		cond := p.parseParenCond()
		body := p.parseEmbedded()
		return s.NewWhile(p.spanFrom(tok.Span), ast.WhileStmt{Cond: cond, Body: body})
	case token.KwFor:
		return p.parseFor()
	case token.KwForeach:
		return p.parseForeach()
	case token.KwConst:
		p.advance()
		return p.parseLocal(tok.Span, true)
	case token.Ident:
		if st, ok := p.parseContextualStmt(tok); ok {
			return st
		}
	}
	if tok.Kind.IsModifier() && tok.Kind != token.KwNew {
		// локальные функции и static/readonly внутри метода не моделируются
		p.syncStmt()
		return ast.NoStmtID
	}
	if p.scanLocalDecl() {
		return p.parseLocal(tok.Span, false)
	}
	e := p.parseExpr()
	if !e.IsValid() {
		p.syncStmt()
		return ast.NoStmtID
	}
	p.expectSemicolon()
	return s.NewExpr(p.spanFrom(tok.Span), e)
}

// parseContextualStmt handles statements introduced by contextual keywords,
// which the lexer delivers as identifiers.
func (p *Parser) parseContextualStmt(tok token.Token) (ast.StmtID, bool) {
	s := p.b.Stmts
	next := p.peekN(1).Kind
	switch tok.Text {
	case "break", "continue":
		if next != token.Semicolon {
			return ast.NoStmtID, false
		}
		p.advance()
		p.advance()
		return ast.NoStmtID, true
	case "goto":
		p.syncStmt()
		return ast.NoStmtID, true
	case "throw":
		p.advance()
		if p.eat(token.Semicolon) {
			return ast.NoStmtID, true
		}
		e := p.parseExpr()
		p.expectSemicolon()
		return s.NewExpr(p.spanFrom(tok.Span), e), true
	case "yield":
		if next != token.KwReturn && !p.peekN(1).IsIdent("break") {
			return ast.NoStmtID, false
		}
		p.advance()
		if p.peek().IsIdent("break") {
			p.advance()
			p.expectSemicolon()
			return ast.NoStmtID, true
		}
		p.advance()
		e := p.parseExpr()
		p.expectSemicolon()
		return s.NewExpr(p.spanFrom(tok.Span), e), true
	case "do":
		if next != token.LBrace && next != token.Ident {
			return ast.NoStmtID, false
		}
		p.advance()
		body := p.parseEmbedded()
		var cond ast.ExprID
		if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"); ok {
			cond = p.parseParenCond()
			p.expectSemicolon()
		}
		return s.NewWhile(p.spanFrom(tok.Span), ast.WhileStmt{Cond: cond, Body: body}), true
	case "try":
		if next != token.LBrace {
			return ast.NoStmtID, false
		}
		p.advance()
		return p.parseTry(tok), true
	case "lock", "using", "fixed", "checked", "unchecked", "unsafe":
		return p.parseGuarded(tok)
	case "switch":
		if next != token.LParen {
			return ast.NoStmtID, false
		}
		return p.parseSwitch(tok), true
	}
	// метка: name:
	if next == token.Colon && p.peekN(2).Kind != token.Colon {
		p.advance()
		p.advance()
		return p.parseStmt(), true
	}
	return ast.NoStmtID, false
}

// parseGuarded parses lock(...) / using(...) / checked {...} and
// "using var x = ...;" into a block of the header and the body.
func (p *Parser) parseGuarded(tok token.Token) (ast.StmtID, bool) {
	next := p.peekN(1).Kind
	s := p.b.Stmts
	if tok.Text == "using" && next != token.LParen {
		if !p.peekN(1).IsIdent("var") && next != token.Ident && !next.IsPredefinedType() {
			return ast.NoStmtID, false
		}
		p.advance()
		return p.parseLocal(tok.Span, false), true
	}
	switch next {
	case token.LParen:
		p.advance()
		open := p.advance()
		var header ast.StmtID
		if p.scanLocalDecl() {
			header = p.parseLocalNoSemi(p.peek().Span, false)
		} else if e := p.parseExpr(); e.IsValid() {
			header = s.NewExpr(p.b.Exprs.Span(e), e)
		}
		p.closeParen(open.Span)
		body := p.parseEmbedded()
		return s.NewBlock(p.spanFrom(tok.Span), nonEmpty(header, body)), true
	case token.LBrace:
		p.advance()
		return p.parseBlock(), true
	}
	return ast.NoStmtID, false
}

func (p *Parser) parseTry(tok token.Token) ast.StmtID {
	parts := []ast.StmtID{p.parseBlock()}
	for p.atIdent("catch") {
		p.advance()
		if p.at(token.LParen) {
			p.skipBalanced(token.LParen, token.RParen)
		}
		if p.atIdent("when") {
			p.advance()
			if c := p.parseParenCond(); c.IsValid() {
				parts = append(parts, p.b.Stmts.NewExpr(p.b.Exprs.Span(c), c))
			}
		}
		if p.at(token.LBrace) {
			parts = append(parts, p.parseBlock())
		}
	}
	if p.atIdent("finally") {
		p.advance()
		if p.at(token.LBrace) {
			parts = append(parts, p.parseBlock())
		}
	}
	return p.b.Stmts.NewBlock(p.spanFrom(tok.Span), parts)
}

// parseSwitch keeps the governing expression and every section's statements;
// case labels are skipped.
func (p *Parser) parseSwitch(tok token.Token) ast.StmtID {
	p.advance()
	var parts []ast.StmtID
	if e := p.parseParenCond(); e.IsValid() {
		parts = append(parts, p.b.Stmts.NewExpr(p.b.Exprs.Span(e), e))
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after switch")
	if !ok {
		return p.b.Stmts.NewBlock(p.spanFrom(tok.Span), parts)
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.atIdent("case") || (p.atIdent("default") && p.peekN(1).Kind == token.Colon) {
			for !p.at(token.Colon) && !p.at(token.EOF) && !p.at(token.RBrace) {
				if p.at(token.LParen) {
					p.skipBalanced(token.LParen, token.RParen)
					continue
				}
				p.advance()
			}
			p.eat(token.Colon)
			continue
		}
		before := p.pos
		if st := p.parseStmt(); st.IsValid() {
			parts = append(parts, st)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.closeBrace(open.Span)
	return p.b.Stmts.NewBlock(p.spanFrom(tok.Span), parts)
}

func nonEmpty(ids ...ast.StmtID) []ast.StmtID {
	out := make([]ast.StmtID, 0, len(ids))
	for _, id := range ids {
		if id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

func (p *Parser) parseIf() ast.StmtID {
	start := p.advance().Span
	st := ast.IfStmt{Cond: p.parseParenCond()}
	st.Then = p.parseEmbedded()
	if p.eat(token.KwElse) {
		st.Else = p.parseEmbedded()
	}
	return p.b.Stmts.NewIf(p.spanFrom(start), st)
}

func (p *Parser) parseParenCond() ast.ExprID {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return ast.NoExprID
	}
	cond := p.parseExpr()
	p.closeParen(open.Span)
	return cond
}

// parseEmbedded parses the body of if/while/for; a missing body yields NoStmtID.
func (p *Parser) parseEmbedded() ast.StmtID {
	if p.at(token.RBrace) || p.at(token.EOF) {
		p.err(diag.SynUnexpectedToken, "expected statement")
		return ast.NoStmtID
	}
	return p.parseStmt()
}

func (p *Parser) parseFor() ast.StmtID {
	start := p.advance().Span
	var st ast.ForStmt
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after for")
	if !ok {
		p.syncStmt()
		return ast.NoStmtID
	}
	if !p.at(token.Semicolon) {
		if p.scanLocalDecl() {
			st.Init = append(st.Init, p.parseLocalNoSemi(p.peek().Span, false))
		} else {
			for {
				e := p.parseExpr()
				st.Init = append(st.Init, p.b.Stmts.NewExpr(p.b.Exprs.Span(e), e))
				if !p.eat(token.Comma) {
					break
				}
			}
		}
	}
	p.expectSemicolon()
	if !p.at(token.Semicolon) {
		st.Cond = p.parseExpr()
	}
	p.expectSemicolon()
	for !p.at(token.RParen) && !p.at(token.EOF) {
		st.Step = append(st.Step, p.parseExpr())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.closeParen(open.Span)
	st.Body = p.parseEmbedded()
	return p.b.Stmts.NewFor(p.spanFrom(start), st)
}

func (p *Parser) parseForeach() ast.StmtID {
	start := p.advance().Span
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after foreach")
	if !ok {
		p.syncStmt()
		return ast.NoStmtID
	}
	var st ast.ForeachStmt
	typ, ok := p.parseType()
	if !ok {
		p.err(diag.SynExpectType, "expected loop variable type")
	}
	st.Type = typ
	if name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected loop variable name"); ok {
		st.Name, st.NameSpan = name.Text, name.Span
	}
	if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in'"); ok {
		st.Coll = p.parseExpr()
	}
	p.closeParen(open.Span)
	st.Body = p.parseEmbedded()
	return p.b.Stmts.NewForeach(p.spanFrom(start), st)
}

func (p *Parser) parseLocal(start source.Span, isConst bool) ast.StmtID {
	id := p.parseLocalNoSemi(start, isConst)
	p.expectSemicolon()
	if st := p.b.Stmts.Get(id); st != nil {
		st.Span = p.spanFrom(start)
	}
	return id
}

func (p *Parser) parseLocalNoSemi(start source.Span, isConst bool) ast.StmtID {
	typ, ok := p.parseType()
	if !ok {
		p.err(diag.SynExpectType, "expected type")
	}
	loc := ast.LocalStmt{Type: typ, Const: isConst}
	for {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name")
		if !ok {
			break
		}
		d := ast.Declarator{Name: name.Text, Span: name.Span}
		if p.eat(token.Assign) {
			d.Init = p.parseVarInit(typ)
		}
		loc.Decls = append(loc.Decls, d)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.b.Stmts.NewLocal(p.spanFrom(start), loc)
}

// parseVarInit parses an initializer; a bare "{ ... }" becomes an array of the declared type.
func (p *Parser) parseVarInit(declared ast.TypeExpr) ast.ExprID {
	if !p.at(token.LBrace) {
		return p.parseExpr()
	}
	start := p.peek().Span
	elems := p.parseInitList()
	if declared.Rank > 0 {
		return p.b.Exprs.NewArrayNew(p.spanFrom(start), ast.ArrayNewExpr{Elem: declared.Elem(), Init: elems, HasInit: true})
	}
	return p.b.Exprs.NewImplicitArray(p.spanFrom(start), elems)
}
