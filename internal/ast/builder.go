package ast

import (
	"strcheck/internal/source"
)

type Hints struct{ Files, Items, Members, Stmts, Exprs uint }

// Builder owns every arena of one parse. A Builder is mutated only by the
// parser; afterwards all consumers treat it as read-only.
type Builder struct {
	Files   *Arena[File]
	Items   *Items
	Members *Arena[Member]
	Stmts   *Stmts
	Exprs   *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 4
	}
	if hints.Items == 0 {
		hints.Items = 1 << 5
	}
	if hints.Members == 0 {
		hints.Members = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 9
	}
	return &Builder{
		Files:   NewArena[File](hints.Files),
		Items:   NewItems(hints.Items),
		Members: NewArena[Member](hints.Members),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
	}
}

// File is one compilation unit.
type File struct {
	Span   source.Span
	Usings []Using
	Items  []ItemID
}

type Using struct {
	Name string
	Span source.Span
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return FileID(b.Files.Allocate(File{Span: sp}))
}

func (b *Builder) File(id FileID) *File {
	return b.Files.Get(uint32(id))
}

func (b *Builder) Member(id MemberID) *Member {
	return b.Members.Get(uint32(id))
}

func (b *Builder) NewMember(m Member) MemberID {
	return MemberID(b.Members.Allocate(m))
}
