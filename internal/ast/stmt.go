package ast

import (
	"strcheck/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtLocal
	StmtExpr
	StmtReturn
	StmtIf
	StmtWhile
	StmtFor
	StmtForeach
	StmtEmpty
)

var stmtKindNames = [...]string{
	StmtBlock:   "Block",
	StmtLocal:   "Local",
	StmtExpr:    "Expr",
	StmtReturn:  "Return",
	StmtIf:      "If",
	StmtWhile:   "While",
	StmtFor:     "For",
	StmtForeach: "Foreach",
	StmtEmpty:   "Empty",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

type Declarator struct {
	Name string
	Span source.Span
	Init ExprID
}

type LocalStmt struct {
	Type  TypeExpr
	Const bool
	Decls []Declarator
}

type ExprStmt struct {
	Expr ExprID
}

type ReturnStmt struct {
	Value ExprID
}

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

type ForStmt struct {
	Init []StmtID
	Cond ExprID
	Step []ExprID
	Body StmtID
}

type ForeachStmt struct {
	Type     TypeExpr
	Name     string
	NameSpan source.Span
	Coll     ExprID
	Body     StmtID
}

type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[BlockStmt]
	Locals   *Arena[LocalStmt]
	Exprs    *Arena[ExprStmt]
	Returns  *Arena[ReturnStmt]
	Ifs      *Arena[IfStmt]
	Whiles   *Arena[WhileStmt]
	Fors     *Arena[ForStmt]
	Foreachs *Arena[ForeachStmt]
}

func NewStmts(capHint uint) *Stmts {
	small := capHint/4 + 1
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[BlockStmt](small),
		Locals:   NewArena[LocalStmt](small),
		Exprs:    NewArena[ExprStmt](capHint),
		Returns:  NewArena[ReturnStmt](small),
		Ifs:      NewArena[IfStmt](small),
		Whiles:   NewArena[WhileStmt](small),
		Fors:     NewArena[ForStmt](small),
		Foreachs: NewArena[ForeachStmt](small),
	}
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) new(kind StmtKind, sp source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: sp, Payload: PayloadID(payload)}))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(sp source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, sp, s.Blocks.Allocate(BlockStmt{Stmts: stmts}))
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	p, ok := s.payload(id, StmtBlock)
	return s.Blocks.Get(p), ok
}

func (s *Stmts) NewLocal(sp source.Span, data LocalStmt) StmtID {
	return s.new(StmtLocal, sp, s.Locals.Allocate(data))
}

func (s *Stmts) Local(id StmtID) (*LocalStmt, bool) {
	p, ok := s.payload(id, StmtLocal)
	return s.Locals.Get(p), ok
}

func (s *Stmts) NewExpr(sp source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, sp, s.Exprs.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	p, ok := s.payload(id, StmtExpr)
	return s.Exprs.Get(p), ok
}

func (s *Stmts) NewReturn(sp source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, sp, s.Returns.Allocate(ReturnStmt{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	p, ok := s.payload(id, StmtReturn)
	return s.Returns.Get(p), ok
}

func (s *Stmts) NewIf(sp source.Span, data IfStmt) StmtID {
	return s.new(StmtIf, sp, s.Ifs.Allocate(data))
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	p, ok := s.payload(id, StmtIf)
	return s.Ifs.Get(p), ok
}

func (s *Stmts) NewWhile(sp source.Span, data WhileStmt) StmtID {
	return s.new(StmtWhile, sp, s.Whiles.Allocate(data))
}

func (s *Stmts) While(id StmtID) (*WhileStmt, bool) {
	p, ok := s.payload(id, StmtWhile)
	return s.Whiles.Get(p), ok
}

func (s *Stmts) NewFor(sp source.Span, data ForStmt) StmtID {
	return s.new(StmtFor, sp, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*ForStmt, bool) {
	p, ok := s.payload(id, StmtFor)
	return s.Fors.Get(p), ok
}

func (s *Stmts) NewForeach(sp source.Span, data ForeachStmt) StmtID {
	return s.new(StmtForeach, sp, s.Foreachs.Allocate(data))
}

func (s *Stmts) Foreach(id StmtID) (*ForeachStmt, bool) {
	p, ok := s.payload(id, StmtForeach)
	return s.Foreachs.Get(p), ok
}

func (s *Stmts) NewEmpty(sp source.Span) StmtID {
	return s.new(StmtEmpty, sp, 0)
}
