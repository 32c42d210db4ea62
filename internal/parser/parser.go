package parser

import (
	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/lexer"
	"strcheck/internal/source"
	"strcheck/internal/token"
)

type Options struct {
	// MaxErrors stops reporting (not parsing) after this many errors; 0 means no limit.
	MaxErrors uint
	Reporter  diag.Reporter
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser — состояние парсера на один файл (или одну дыру интерполяции).
type Parser struct {
	toks     []token.Token
	pos      int
	b        *ast.Builder
	file     *source.File
	opts     Options
	errs     *uint
	lastSpan source.Span
}

// ParseFile lexes and parses a whole compilation unit into b.
func ParseFile(file *source.File, b *ast.Builder, opts Options) Result {
	var errs uint
	p := newParser(file, b, opts, &errs, lexer.New(file, lexer.Options{Reporter: opts.Reporter}))
	id := b.NewFile(source.Span{File: file.ID, Start: 0, End: p.endOffset()})
	p.parseCompilationUnit(id)
	return Result{File: id, Errors: errs}
}

// ParseExpr parses the expression in [start, end) of file; used for
// interpolation holes and tests. Trailing tokens are reported.
func ParseExpr(file *source.File, b *ast.Builder, opts Options, start, end uint32) (ast.ExprID, uint) {
	var errs uint
	top := &Parser{file: file, b: b, opts: opts, errs: &errs}
	p := top.subParser(start, end)
	id := p.parseExpr()
	if !p.at(token.EOF) {
		p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.peek()))
	}
	return id, errs
}

func newParser(file *source.File, b *ast.Builder, opts Options, errs *uint, lx *lexer.Lexer) *Parser {
	return &Parser{
		toks:     lx.All(),
		b:        b,
		file:     file,
		opts:     opts,
		errs:     errs,
		lastSpan: source.Span{File: file.ID},
	}
}

// subParser lexes [start, end) of the same file into a parser sharing the
// builder and the error counter.
func (p *Parser) subParser(start, end uint32) *Parser {
	lx := lexer.New(p.file, lexer.Options{Reporter: p.opts.Reporter})
	lx.SetRange(start, end)
	sub := newParser(p.file, p.b, p.opts, p.errs, lx)
	sub.lastSpan = source.Span{File: p.file.ID, Start: start, End: start}
	return sub
}

func (p *Parser) endOffset() uint32 {
	return p.toks[len(p.toks)-1].Span.End
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

// peekN смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atIdent(text string) bool {
	return p.peek().IsIdent(text)
}

// advance — съедает токен и обновляет lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect reports at the current token when k is missing and does not consume anything.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// expectSemicolon reports a missing ';' right after the previous token, as C# compilers do.
func (p *Parser) expectSemicolon() bool {
	if p.eat(token.Semicolon) {
		return true
	}
	p.report(diag.SynExpectSemicolon, p.lastSpan.ZeroAt(), "expected ';'")
	return false
}

func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return p.lastSpan.ZeroAt()
	}
	return tok.Span
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	*p.errs++
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors != 0 && *p.errs > p.opts.MaxErrors {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}

// spanFrom covers from start to the end of the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// skipBalanced consumes an opening token through its matching closer.
func (p *Parser) skipBalanced(open, closing token.Kind) {
	if !p.eat(open) {
		return
	}
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.advance().Kind {
		case open:
			depth++
		case closing:
			depth--
		}
	}
}

// syncStmt skips to the next plausible statement boundary.
func (p *Parser) syncStmt() {
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace:
			return
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
			return
		}
		p.advance()
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	}
	return "'" + tok.Text + "'"
}
