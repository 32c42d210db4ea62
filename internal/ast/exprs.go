package ast

import (
	"strcheck/internal/source"
	"strcheck/internal/token"
)

// Exprs manages allocation of expressions; payloads live in per-kind arenas.
type Exprs struct {
	Arena          *Arena[Expr]
	Idents         *Arena[IdentExpr]
	Literals       *Arena[LitExpr]
	Interps        *Arena[InterpExpr]
	Binaries       *Arena[BinaryExpr]
	Unaries        *Arena[UnaryExpr]
	Conditionals   *Arena[ConditionalExpr]
	Members        *Arena[MemberExpr]
	Calls          *Arena[CallExpr]
	Indices        *Arena[IndexExpr]
	News           *Arena[NewExpr]
	ArrayNews      *Arena[ArrayNewExpr]
	ImplicitArrays *Arena[ImplicitArrayExpr]
	Groups         *Arena[GroupExpr]
	PredefTypes    *Arena[PredefTypeExpr]
	TypeOfs        *Arena[TypeOfExpr]
	Casts          *Arena[CastExpr]
	Ises           *Arena[IsExpr]
	Lambdas        *Arena[LambdaExpr]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:          NewArena[Expr](capHint),
		Idents:         NewArena[IdentExpr](capHint),
		Literals:       NewArena[LitExpr](capHint),
		Interps:        NewArena[InterpExpr](small),
		Binaries:       NewArena[BinaryExpr](capHint),
		Unaries:        NewArena[UnaryExpr](small),
		Conditionals:   NewArena[ConditionalExpr](small),
		Members:        NewArena[MemberExpr](capHint),
		Calls:          NewArena[CallExpr](capHint),
		Indices:        NewArena[IndexExpr](small),
		News:           NewArena[NewExpr](small),
		ArrayNews:      NewArena[ArrayNewExpr](small),
		ImplicitArrays: NewArena[ImplicitArrayExpr](small),
		Groups:         NewArena[GroupExpr](small),
		PredefTypes:    NewArena[PredefTypeExpr](small),
		TypeOfs:        NewArena[TypeOfExpr](small),
		Casts:          NewArena[CastExpr](small),
		Ises:           NewArena[IsExpr](small),
		Lambdas:        NewArena[LambdaExpr](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// Span returns the span of id or an empty span for NoExprID.
func (e *Exprs) Span(id ExprID) source.Span {
	if expr := e.Get(id); expr != nil {
		return expr.Span
	}
	return source.Span{}
}

func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(IdentExpr{Name: name}))
}

func (e *Exprs) Ident(id ExprID) (*IdentExpr, bool) {
	p, ok := e.payload(id, ExprIdent)
	return e.Idents.Get(p), ok
}

func (e *Exprs) NewLiteral(span source.Span, kind LitKind, raw string) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(LitExpr{Kind: kind, Raw: raw}))
}

func (e *Exprs) Literal(id ExprID) (*LitExpr, bool) {
	p, ok := e.payload(id, ExprLit)
	return e.Literals.Get(p), ok
}

func (e *Exprs) NewInterp(span source.Span, data InterpExpr) ExprID {
	return e.new(ExprInterp, span, e.Interps.Allocate(data))
}

func (e *Exprs) Interp(id ExprID) (*InterpExpr, bool) {
	p, ok := e.payload(id, ExprInterp)
	return e.Interps.Get(p), ok
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(BinaryExpr{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*BinaryExpr, bool) {
	p, ok := e.payload(id, ExprBinary)
	return e.Binaries.Get(p), ok
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(UnaryExpr{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*UnaryExpr, bool) {
	p, ok := e.payload(id, ExprUnary)
	return e.Unaries.Get(p), ok
}

func (e *Exprs) NewConditional(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprConditional, span, e.Conditionals.Allocate(ConditionalExpr{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) Conditional(id ExprID) (*ConditionalExpr, bool) {
	p, ok := e.payload(id, ExprConditional)
	return e.Conditionals.Get(p), ok
}

func (e *Exprs) NewMember(span source.Span, data MemberExpr) ExprID {
	return e.new(ExprMember, span, e.Members.Allocate(data))
}

func (e *Exprs) Member(id ExprID) (*MemberExpr, bool) {
	p, ok := e.payload(id, ExprMember)
	return e.Members.Get(p), ok
}

func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(CallExpr{Target: target, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*CallExpr, bool) {
	p, ok := e.payload(id, ExprCall)
	return e.Calls.Get(p), ok
}

func (e *Exprs) NewIndex(span source.Span, target ExprID, args []ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(IndexExpr{Target: target, Args: args}))
}

func (e *Exprs) Index(id ExprID) (*IndexExpr, bool) {
	p, ok := e.payload(id, ExprIndex)
	return e.Indices.Get(p), ok
}

func (e *Exprs) NewNew(span source.Span, data NewExpr) ExprID {
	return e.new(ExprNew, span, e.News.Allocate(data))
}

func (e *Exprs) New(id ExprID) (*NewExpr, bool) {
	p, ok := e.payload(id, ExprNew)
	return e.News.Get(p), ok
}

func (e *Exprs) NewArrayNew(span source.Span, data ArrayNewExpr) ExprID {
	return e.new(ExprArrayNew, span, e.ArrayNews.Allocate(data))
}

func (e *Exprs) ArrayNew(id ExprID) (*ArrayNewExpr, bool) {
	p, ok := e.payload(id, ExprArrayNew)
	return e.ArrayNews.Get(p), ok
}

func (e *Exprs) NewImplicitArray(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprImplicitArray, span, e.ImplicitArrays.Allocate(ImplicitArrayExpr{Elems: elems}))
}

func (e *Exprs) ImplicitArray(id ExprID) (*ImplicitArrayExpr, bool) {
	p, ok := e.payload(id, ExprImplicitArray)
	return e.ImplicitArrays.Get(p), ok
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	return e.new(ExprGroup, span, e.Groups.Allocate(GroupExpr{Inner: inner}))
}

func (e *Exprs) Group(id ExprID) (*GroupExpr, bool) {
	p, ok := e.payload(id, ExprGroup)
	return e.Groups.Get(p), ok
}

func (e *Exprs) NewThis(span source.Span) ExprID {
	return e.new(ExprThis, span, 0)
}

func (e *Exprs) NewBase(span source.Span) ExprID {
	return e.new(ExprBase, span, 0)
}

func (e *Exprs) NewPredefType(span source.Span, kw token.Kind) ExprID {
	return e.new(ExprPredefType, span, e.PredefTypes.Allocate(PredefTypeExpr{Keyword: kw}))
}

func (e *Exprs) PredefType(id ExprID) (*PredefTypeExpr, bool) {
	p, ok := e.payload(id, ExprPredefType)
	return e.PredefTypes.Get(p), ok
}

func (e *Exprs) NewTypeOf(span source.Span, t TypeExpr) ExprID {
	return e.new(ExprTypeOf, span, e.TypeOfs.Allocate(TypeOfExpr{Type: t}))
}

func (e *Exprs) TypeOf(id ExprID) (*TypeOfExpr, bool) {
	p, ok := e.payload(id, ExprTypeOf)
	return e.TypeOfs.Get(p), ok
}

func (e *Exprs) NewCast(span source.Span, t TypeExpr, value ExprID) ExprID {
	return e.new(ExprCast, span, e.Casts.Allocate(CastExpr{Type: t, Value: value}))
}

func (e *Exprs) NewAs(span source.Span, value ExprID, t TypeExpr) ExprID {
	return e.new(ExprCast, span, e.Casts.Allocate(CastExpr{Type: t, Value: value, As: true}))
}

func (e *Exprs) Cast(id ExprID) (*CastExpr, bool) {
	p, ok := e.payload(id, ExprCast)
	return e.Casts.Get(p), ok
}

func (e *Exprs) NewIs(span source.Span, data IsExpr) ExprID {
	return e.new(ExprIs, span, e.Ises.Allocate(data))
}

func (e *Exprs) Is(id ExprID) (*IsExpr, bool) {
	p, ok := e.payload(id, ExprIs)
	return e.Ises.Get(p), ok
}

func (e *Exprs) NewLambda(span source.Span, data LambdaExpr) ExprID {
	return e.new(ExprLambda, span, e.Lambdas.Allocate(data))
}

func (e *Exprs) Lambda(id ExprID) (*LambdaExpr, bool) {
	p, ok := e.payload(id, ExprLambda)
	return e.Lambdas.Get(p), ok
}

// Unparen strips any number of enclosing parentheses.
func (e *Exprs) Unparen(id ExprID) ExprID {
	for {
		g, ok := e.Group(id)
		if !ok {
			return id
		}
		id = g.Inner
	}
}
