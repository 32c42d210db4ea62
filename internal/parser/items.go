package parser

import (
	"strings"

	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/source"
	"strcheck/internal/token"
)

func (p *Parser) parseCompilationUnit(id ast.FileID) {
	f := p.b.File(id)
	f.Usings = p.parseUsings()
	for !p.at(token.EOF) {
		if p.atNamespace() {
			f.Items = append(f.Items, p.parseNamespace())
			continue
		}
		if item, ok := p.parseTypeDecl(); ok {
			f.Items = append(f.Items, item)
			continue
		}
		p.err(diag.SynUnexpectedTopLevel, "expected namespace or type declaration, found "+describe(p.peek()))
		p.recoverTopLevel()
	}
}

func (p *Parser) atNamespace() bool {
	return p.at(token.KwNamespace)
}

// parseUsings собирает using-директивы; алиасы и "using static" сохраняются по целевому имени.
func (p *Parser) parseUsings() []ast.Using {
	var out []ast.Using
	for {
		start := p.peek().Span
		switch {
		case p.atIdent("global") && p.peekN(1).Kind == token.KwUsing:
			p.advance()
		case p.at(token.KwUsing) && p.peekN(1).Kind != token.LParen:
		default:
			return out
		}
		p.advance()
		p.eat(token.KwStatic)
		if p.at(token.Ident) && p.peekN(1).Kind == token.Assign {
			p.advance()
			p.advance()
		}
		name, ok := p.parseDottedName()
		if !ok {
			p.syncStmt()
			continue
		}
		p.skipTypeArgs()
		p.expectSemicolon()
		out = append(out, ast.Using{Name: name, Span: p.spanFrom(start)})
	}
}

func (p *Parser) parseDottedName() (string, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier")
	if !ok {
		return "", false
	}
	parts := []string{tok.Text}
	for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
		p.advance()
		parts = append(parts, p.advance().Text)
	}
	return strings.Join(parts, "."), true
}

func (p *Parser) parseNamespace() ast.ItemID {
	start := p.advance().Span
	nameStart := p.peek().Span
	name, _ := p.parseDottedName()
	ns := ast.NamespaceItem{Name: name, NameSpan: p.spanFrom(nameStart)}

	if p.eat(token.Semicolon) {
		ns.FileScoped = true
		ns.Usings = p.parseUsings()
		for !p.at(token.EOF) {
			if item, ok := p.parseTypeDecl(); ok {
				ns.Items = append(ns.Items, item)
				continue
			}
			p.err(diag.SynUnexpectedTopLevel, "expected type declaration, found "+describe(p.peek()))
			p.recoverTopLevel()
		}
		return p.b.Items.NewNamespace(p.spanFrom(start), ns)
	}

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after namespace name"); !ok {
		return p.b.Items.NewNamespace(p.spanFrom(start), ns)
	}
	ns.Usings = p.parseUsings()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.atNamespace() {
			ns.Items = append(ns.Items, p.parseNamespace())
			continue
		}
		if item, ok := p.parseTypeDecl(); ok {
			ns.Items = append(ns.Items, item)
			continue
		}
		p.err(diag.SynUnexpectedTopLevel, "expected namespace or type declaration, found "+describe(p.peek()))
		p.recoverTopLevel()
	}
	p.closeBrace(start)
	return p.b.Items.NewNamespace(p.spanFrom(start), ns)
}

func (p *Parser) closeBrace(open source.Span) {
	if p.eat(token.RBrace) {
		return
	}
	diag.ReportError(p.reporter(), diag.SynUnclosedBrace, p.lastSpan.ZeroAt(), "expected '}'").
		WithNote(open, "block starts here").Emit()
	*p.errs++
}

func (p *Parser) reporter() diag.Reporter {
	if p.opts.Reporter == nil || (p.opts.MaxErrors != 0 && *p.errs >= p.opts.MaxErrors) {
		return diag.NopReporter{}
	}
	return p.opts.Reporter
}

// recoverTopLevel skips until something that can start a declaration.
func (p *Parser) recoverTopLevel() {
	p.advanceAtLeastOnce(func() bool {
		k := p.peek().Kind
		return k == token.KwNamespace || k == token.KwClass || k == token.KwStruct ||
			k == token.KwInterface || k == token.KwEnum || k == token.RBrace || k.IsModifier()
	})
}

func (p *Parser) advanceAtLeastOnce(stop func() bool) {
	if p.at(token.LBrace) {
		p.skipBalanced(token.LBrace, token.RBrace)
	} else {
		p.advance()
	}
	for !p.at(token.EOF) && !stop() {
		if p.at(token.LBrace) {
			p.skipBalanced(token.LBrace, token.RBrace)
			continue
		}
		p.advance()
	}
}

func (p *Parser) skipAttributes() {
	for p.at(token.LBracket) {
		p.skipBalanced(token.LBracket, token.RBracket)
	}
}

var modifierBits = map[token.Kind]ast.Modifiers{
	token.KwPublic:    ast.ModPublic,
	token.KwPrivate:   ast.ModPrivate,
	token.KwProtected: ast.ModProtected,
	token.KwInternal:  ast.ModInternal,
	token.KwStatic:    ast.ModStatic,
	token.KwReadonly:  ast.ModReadonly,
	token.KwConst:     ast.ModConst,
	token.KwOverride:  ast.ModOverride,
	token.KwVirtual:   ast.ModVirtual,
	token.KwAbstract:  ast.ModAbstract,
	token.KwSealed:    ast.ModSealed,
	token.KwPartial:   ast.ModPartial,
	token.KwNew:       ast.ModNew,
}

// contextual modifiers that are plain identifiers in the token set
var softModifiers = map[string]bool{
	"async": true, "extern": true, "unsafe": true, "volatile": true, "required": true, "file": true,
}

func (p *Parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for {
		tok := p.peek()
		if bit, ok := modifierBits[tok.Kind]; ok {
			// new(...) / new T — это выражение, а не модификатор
			if tok.Kind == token.KwNew && !p.modifierNewAhead() {
				return mods
			}
			mods |= bit
			p.advance()
			continue
		}
		if tok.Kind == token.Ident && softModifiers[tok.Text] && p.startsDeclAfterSoft() {
			p.advance()
			continue
		}
		return mods
	}
}

func (p *Parser) modifierNewAhead() bool {
	next := p.peekN(1).Kind
	return next.IsModifier() || next == token.KwClass || next == token.KwStruct ||
		next == token.KwInterface || next == token.KwEnum || next == token.KwVoid ||
		next.IsPredefinedType() || (next == token.Ident && p.peekN(2).Kind == token.Ident)
}

func (p *Parser) startsDeclAfterSoft() bool {
	next := p.peekN(1)
	return next.Kind == token.Ident || next.Kind.IsModifier() || next.Kind.IsPredefinedType() ||
		next.Kind == token.KwClass || next.Kind == token.KwStruct
}

func declKind(k token.Kind) (ast.TypeDeclKind, bool) {
	switch k {
	case token.KwClass:
		return ast.TypeClass, true
	case token.KwStruct:
		return ast.TypeStruct, true
	case token.KwInterface:
		return ast.TypeInterface, true
	case token.KwEnum:
		return ast.TypeEnum, true
	}
	return 0, false
}

// parseTypeDecl parses attributes, modifiers and a class/struct/interface/enum
// declaration. It consumes nothing and returns false when none starts here.
func (p *Parser) parseTypeDecl() (ast.ItemID, bool) {
	save, saveSpan := p.pos, p.lastSpan
	start := p.peek().Span
	p.skipAttributes()
	mods := p.parseModifiers()
	// record class / record struct
	if p.atIdent("record") {
		switch p.peekN(1).Kind {
		case token.KwClass, token.KwStruct:
			p.advance()
		case token.Ident:
			p.advance()
			return p.parseTypeBody(start, mods, ast.TypeClass), true
		}
	}
	kind, ok := declKind(p.peek().Kind)
	if !ok {
		p.pos, p.lastSpan = save, saveSpan
		return ast.NoItemID, false
	}
	p.advance()
	return p.parseTypeBody(start, mods, kind), true
}

func (p *Parser) parseTypeBody(start source.Span, mods ast.Modifiers, kind ast.TypeDeclKind) ast.ItemID {
	ti := ast.TypeItem{Kind: kind, Modifiers: mods}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name")
	if ok {
		ti.Name, ti.NameSpan = name.Text, name.Span
	}
	p.skipTypeParams()
	// primary constructor parameters of records and classes
	if p.at(token.LParen) {
		p.skipBalanced(token.LParen, token.RParen)
	}
	if p.eat(token.Colon) {
		for {
			if kind == ast.TypeEnum {
				// enum E : byte — базовый целочисленный тип нас не интересует
				p.parseType()
			} else if t, ok := p.parseType(); ok {
				ti.Bases = append(ti.Bases, t)
			}
			if p.at(token.LParen) {
				p.skipBalanced(token.LParen, token.RParen)
			}
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	p.skipConstraints()

	if p.eat(token.Semicolon) {
		return p.b.Items.NewType(p.spanFrom(start), ti)
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start type body")
	if !ok {
		return p.b.Items.NewType(p.spanFrom(start), ti)
	}
	self := ast.TypeExpr{Span: ti.NameSpan, Name: []string{ti.Name}}
	if kind == ast.TypeEnum {
		ti.Members = p.parseEnumMembers(self)
	} else {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			before := p.pos
			ti.Members = append(ti.Members, p.parseMember(ti.Name)...)
			if p.pos == before {
				p.advance()
			}
		}
	}
	p.closeBrace(open.Span)
	p.eat(token.Semicolon)
	return p.b.Items.NewType(p.spanFrom(start), ti)
}

// skipTypeParams skips "<T, U>" after a declared name.
func (p *Parser) skipTypeParams() {
	if p.at(token.Lt) {
		p.skipAngles()
	}
}

// skipConstraints skips "where T : ..." clauses up to the body.
func (p *Parser) skipConstraints() {
	for p.atIdent("where") {
		for !p.at(token.EOF) && !p.at(token.LBrace) && !p.at(token.Semicolon) && !p.at(token.FatArrow) {
			if p.at(token.LParen) {
				p.skipBalanced(token.LParen, token.RParen)
				continue
			}
			p.advance()
			if p.atIdent("where") {
				break
			}
		}
	}
}

func (p *Parser) parseEnumMembers(self ast.TypeExpr) []ast.MemberID {
	var out []ast.MemberID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.skipAttributes()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected enum member name")
		if !ok {
			p.advanceAtLeastOnce(func() bool { return p.at(token.Comma) || p.at(token.RBrace) })
			p.eat(token.Comma)
			continue
		}
		m := ast.Member{
			Kind:      ast.MemberField,
			Name:      name.Text,
			NameSpan:  name.Span,
			Modifiers: ast.ModPublic | ast.ModStatic | ast.ModConst,
			Type:      self,
		}
		if p.eat(token.Assign) {
			m.Init = p.parseExpr()
		}
		m.Span = p.spanFrom(name.Span)
		out = append(out, p.b.NewMember(m))
		if !p.eat(token.Comma) {
			break
		}
	}
	return out
}
