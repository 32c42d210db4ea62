package parser

import (
	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/token"
)

// Binary precedences; higher binds tighter.
const (
	precNone = iota
	precCoalesce
	precOrOr
	precAndAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
)

type binaryInfo struct {
	op   ast.BinaryOp
	prec int
}

var binaryOps = map[token.Kind]binaryInfo{
	token.QQ:      {ast.OpCoalesce, precCoalesce},
	token.OrOr:    {ast.OpOrOr, precOrOr},
	token.AndAnd:  {ast.OpAndAnd, precAndAnd},
	token.Pipe:    {ast.OpBitOr, precBitOr},
	token.Caret:   {ast.OpBitXor, precBitXor},
	token.Amp:     {ast.OpBitAnd, precBitAnd},
	token.EqEq:    {ast.OpEq, precEquality},
	token.BangEq:  {ast.OpNe, precEquality},
	token.Lt:      {ast.OpLt, precRelational},
	token.LtEq:    {ast.OpLe, precRelational},
	token.Gt:      {ast.OpGt, precRelational},
	token.GtEq:    {ast.OpGe, precRelational},
	token.Plus:    {ast.OpAdd, precAdditive},
	token.Minus:   {ast.OpSub, precAdditive},
	token.Star:    {ast.OpMul, precMultiplicative},
	token.Slash:   {ast.OpDiv, precMultiplicative},
	token.Percent: {ast.OpMod, precMultiplicative},
}

var assignOps = map[token.Kind]ast.BinaryOp{
	token.Assign:        ast.OpAssign,
	token.PlusAssign:    ast.OpAddAssign,
	token.MinusAssign:   ast.OpSubAssign,
	token.StarAssign:    ast.OpMulAssign,
	token.SlashAssign:   ast.OpDivAssign,
	token.PercentAssign: ast.OpModAssign,
	token.AmpAssign:     ast.OpAndAssign,
	token.PipeAssign:    ast.OpOrAssign,
	token.CaretAssign:   ast.OpXorAssign,
}

// parseExpr parses a full expression including assignment and lambdas.
// It reports and returns NoExprID when no expression starts here.
func (p *Parser) parseExpr() ast.ExprID {
	if p.lambdaAhead() {
		return p.parseLambda()
	}
	left := p.parseConditional()
	if op, ok := assignOps[p.peek().Kind]; ok && left.IsValid() {
		p.advance()
		right := p.parseExpr()
		return p.b.Exprs.NewBinary(p.spanFrom(p.b.Exprs.Span(left)), op, left, right)
	}
	return left
}

func (p *Parser) parseConditional() ast.ExprID {
	cond := p.parseBinary(precCoalesce)
	if !cond.IsValid() || !p.at(token.Question) {
		return cond
	}
	p.advance()
	then := p.parseExpr()
	var els ast.ExprID
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); ok {
		els = p.parseExpr()
	}
	return p.b.Exprs.NewConditional(p.spanFrom(p.b.Exprs.Span(cond)), cond, then, els)
}

func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	left := p.parseUnary()
	if !left.IsValid() {
		return left
	}
	for {
		tok := p.peek()
		// is / as связывают как операторы сравнения
		if tok.Kind == token.Ident && (tok.Text == "is" || tok.Text == "as") && precRelational >= minPrec {
			left = p.parseTypeTest(left)
			continue
		}
		info, ok := binaryOps[tok.Kind]
		if !ok || info.prec < minPrec {
			return left
		}
		p.advance()
		next := info.prec + 1
		if info.op == ast.OpCoalesce {
			next = info.prec
		}
		right := p.parseBinary(next)
		left = p.b.Exprs.NewBinary(p.spanFrom(p.b.Exprs.Span(left)), info.op, left, right)
		if !right.IsValid() {
			return left
		}
	}
}

func (p *Parser) parseTypeTest(left ast.ExprID) ast.ExprID {
	kw := p.advance()
	start := p.b.Exprs.Span(left)
	if kw.Text == "as" {
		t, ok := p.parseType()
		if !ok {
			p.err(diag.SynExpectType, "expected type after 'as'")
		}
		return p.b.Exprs.NewAs(p.spanFrom(start), left, t)
	}
	is := ast.IsExpr{Value: left}
	if p.atIdent("not") {
		p.advance()
	}
	switch {
	case p.at(token.KwNull), p.peek().IsLiteral():
		p.advance()
	case p.at(token.LBrace):
		p.skipBalanced(token.LBrace, token.RBrace)
	default:
		t, ok := p.parseType()
		if !ok {
			p.err(diag.SynExpectType, "expected type or pattern after 'is'")
		}
		is.Type = t
		if p.at(token.LBrace) {
			p.skipBalanced(token.LBrace, token.RBrace)
		}
		if p.at(token.Ident) {
			name := p.advance()
			is.Name, is.NameSpan = name.Text, name.Span
		}
	}
	return p.b.Exprs.NewIs(p.spanFrom(start), is)
}

func (p *Parser) parseUnary() ast.ExprID {
	tok := p.peek()
	var op ast.UnaryOp
	switch tok.Kind {
	case token.Minus:
		op = ast.UnaryNeg
	case token.Plus:
		op = ast.UnaryPlus
	case token.Bang:
		op = ast.UnaryNot
	case token.Tilde:
		op = ast.UnaryBitNot
	case token.PlusPlus:
		op = ast.UnaryPreInc
	case token.MinusMinus:
		op = ast.UnaryPreDec
	case token.LParen:
		if cast, ok := p.tryCast(); ok {
			return cast
		}
		return p.parsePostfix(p.parsePrimary())
	case token.Ident:
		// await e: значение задачи не моделируется, остаётся само выражение
		if tok.Text == "await" && p.startsOperand(p.peekN(1)) {
			p.advance()
			return p.parseUnary()
		}
		return p.parsePostfix(p.parsePrimary())
	default:
		return p.parsePostfix(p.parsePrimary())
	}
	p.advance()
	operand := p.parseUnary()
	return p.b.Exprs.NewUnary(p.spanFrom(tok.Span), op, operand)
}

// startsOperand reports whether tok can begin a primary expression.
func (p *Parser) startsOperand(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.IntLit, token.RealLit, token.StringLit, token.CharLit, token.InterpStringLit,
		token.KwTrue, token.KwFalse, token.KwNull, token.KwThis, token.KwBase, token.KwNew,
		token.KwTypeof, token.LParen, token.Bang, token.Tilde:
		return true
	}
	return tok.Kind.IsPredefinedType()
}

var contextualOperators = map[string]bool{"is": true, "as": true, "switch": true, "with": true}

// tryCast recognises "(T)x". A predefined type in parentheses is always a
// cast; a named type only when the next token starts an operand.
func (p *Parser) tryCast() (ast.ExprID, bool) {
	save, saveSpan := p.pos, p.lastSpan
	open := p.advance()
	t, ok := p.parseType()
	if !ok || t.Var || !p.at(token.RParen) {
		p.pos, p.lastSpan = save, saveSpan
		return ast.NoExprID, false
	}
	next := p.peekN(1)
	cast := p.startsOperand(next)
	if t.Predef == token.Invalid && t.Rank == 0 && (next.Kind == token.LParen || next.Kind == token.Bang) {
		// (a)(b) и (a)!b неоднозначны; считаем группой, кроме квалифицированных имён
		cast = len(t.Name) > 1
	}
	if next.Kind == token.Ident && contextualOperators[next.Text] {
		cast = false
	}
	if t.Predef != token.Invalid && (next.Kind == token.Minus || next.Kind == token.Plus) {
		cast = true
	}
	if !cast {
		p.pos, p.lastSpan = save, saveSpan
		return ast.NoExprID, false
	}
	p.advance()
	value := p.parseUnary()
	return p.b.Exprs.NewCast(p.spanFrom(open.Span), t, value), true
}

func (p *Parser) parsePostfix(target ast.ExprID) ast.ExprID {
	if !target.IsValid() {
		return target
	}
	e := p.b.Exprs
	for {
		start := e.Span(target)
		tok := p.peek()
		switch tok.Kind {
		case token.Dot, token.QuestionDot:
			p.advance()
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name")
			if !ok {
				return target
			}
			p.skipCallTypeArgs()
			target = e.NewMember(p.spanFrom(start), ast.MemberExpr{
				Target:      target,
				Name:        name.Text,
				NameSpan:    name.Span,
				Conditional: tok.Kind == token.QuestionDot,
			})
		case token.LParen:
			args := p.parseArgs(token.LParen, token.RParen)
			target = e.NewCall(p.spanFrom(start), target, args)
		case token.LBracket:
			args := p.parseArgs(token.LBracket, token.RBracket)
			target = e.NewIndex(p.spanFrom(start), target, args)
		case token.PlusPlus, token.MinusMinus:
			p.advance()
			op := ast.UnaryPostInc
			if tok.Kind == token.MinusMinus {
				op = ast.UnaryPostDec
			}
			target = e.NewUnary(p.spanFrom(start), op, target)
		case token.Bang:
			// x! — null-forgiving, тип не меняется
			switch p.peekN(1).Kind {
			case token.Dot, token.QuestionDot, token.RParen, token.Semicolon, token.Comma, token.LBracket, token.RBracket:
				p.advance()
				continue
			}
			return target
		default:
			return target
		}
	}
}

// skipCallTypeArgs skips "<T>" in M<T>(...) when it really is a type argument list.
func (p *Parser) skipCallTypeArgs() {
	if !p.at(token.Lt) {
		return
	}
	save, saveSpan := p.pos, p.lastSpan
	if p.skipAngles() && (p.at(token.LParen) || p.at(token.Dot)) {
		return
	}
	p.pos, p.lastSpan = save, saveSpan
}

// parseArgs parses a parenthesised or bracketed argument list. Argument
// names, ref/out/in and out-variable declarations are dropped; every argument
// yields exactly one entry so positions stay aligned.
func (p *Parser) parseArgs(open, closing token.Kind) []ast.ExprID {
	openTok := p.advance()
	var args []ast.ExprID
	for !p.at(closing) && !p.at(token.EOF) {
		if p.at(token.Ident) && p.peekN(1).Kind == token.Colon && p.peekN(2).Kind != token.Colon {
			p.advance()
			p.advance()
		}
		for p.at(token.KwIn) || p.atIdent("ref") || p.atIdent("out") || p.atIdent("params") {
			if p.peekN(1).Kind == token.Comma || p.peekN(1).Kind == closing {
				break
			}
			p.advance()
		}
		var arg ast.ExprID
		if p.scanDeclExpr() {
			start := p.peek().Span
			p.parseType()
			name := p.advance()
			arg = p.b.Exprs.NewIdent(start.Cover(name.Span), name.Text)
		} else {
			arg = p.parseExpr()
		}
		args = append(args, arg)
		if !arg.IsValid() {
			if p.at(token.Semicolon) || p.at(token.RBrace) || p.at(token.EOF) {
				break
			}
			p.advanceAtLeastOnce(func() bool {
				return p.at(token.Comma) || p.at(closing) || p.at(token.Semicolon) || p.at(token.RBrace)
			})
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if open == token.LParen {
		p.closeParen(openTok.Span)
	} else if !p.eat(closing) {
		diag.ReportError(p.reporter(), diag.SynUnclosedBracket, p.diagSpan(), "expected ']'").
			WithNote(openTok.Span, "opened here").Emit()
		*p.errs++
	}
	return args
}

// scanDeclExpr matches "T name" followed by ',' or ')' (out var x).
func (p *Parser) scanDeclExpr() bool {
	save, saveSpan := p.pos, p.lastSpan
	defer func() { p.pos, p.lastSpan = save, saveSpan }()
	if _, ok := p.parseType(); !ok || !p.at(token.Ident) {
		return false
	}
	next := p.peekN(1).Kind
	return next == token.Comma || next == token.RParen
}

// lambdaAhead matches "x =>", "async x =>" and "(...) =>".
func (p *Parser) lambdaAhead() bool {
	i := 0
	if p.atIdent("async") && (p.peekN(1).Kind == token.Ident || p.peekN(1).Kind == token.LParen) {
		i = 1
	}
	tok := p.peekN(i)
	if tok.Kind == token.Ident {
		return p.peekN(i+1).Kind == token.FatArrow
	}
	if tok.Kind != token.LParen {
		return false
	}
	depth := 0
	for j := i; ; j++ {
		switch p.peekN(j).Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return p.peekN(j+1).Kind == token.FatArrow
			}
		case token.EOF, token.Semicolon, token.LBrace, token.RBrace:
			return false
		}
	}
}

func (p *Parser) parseLambda() ast.ExprID {
	start := p.peek().Span
	if p.atIdent("async") && p.peekN(1).Kind != token.FatArrow {
		p.advance()
	}
	var lam ast.LambdaExpr
	if p.at(token.Ident) {
		name := p.advance()
		lam.Params = []ast.Param{{Name: name.Text, Span: name.Span}}
	} else {
		lam.Params = p.parseLambdaParams()
	}
	p.advance() // =>
	if p.at(token.LBrace) {
		lam.Block = p.parseBlock()
	} else {
		lam.Body = p.parseExpr()
	}
	return p.b.Exprs.NewLambda(p.spanFrom(start), lam)
}

func (p *Parser) parseLambdaParams() []ast.Param {
	open := p.advance()
	var out []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		for p.atIdent("ref") || p.atIdent("out") || p.at(token.KwIn) {
			p.advance()
		}
		if p.at(token.Ident) && (p.peekN(1).Kind == token.Comma || p.peekN(1).Kind == token.RParen) {
			name := p.advance()
			out = append(out, ast.Param{Name: name.Text, Span: name.Span})
		} else if t, ok := p.parseType(); ok {
			if name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name"); ok {
				out = append(out, ast.Param{Name: name.Text, Span: name.Span, Type: t})
			}
		} else {
			p.err(diag.SynExpectIdentifier, "expected lambda parameter")
			p.advanceAtLeastOnce(func() bool { return p.at(token.Comma) || p.at(token.RParen) })
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.closeParen(open.Span)
	return out
}
