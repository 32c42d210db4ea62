package ast

import (
	"strcheck/internal/source"
)

type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberMethod
	MemberCtor
	MemberProperty
	// MemberNested wraps a nested type declaration.
	MemberNested
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "Field"
	case MemberMethod:
		return "Method"
	case MemberCtor:
		return "Ctor"
	case MemberProperty:
		return "Property"
	case MemberNested:
		return "Nested"
	}
	return "Member(?)"
}

type Param struct {
	Name string
	Span source.Span
	Type TypeExpr
}

// Member is a declaration inside a type body. Fields with several declarators
// produce one Member each.
type Member struct {
	Kind      MemberKind
	Span      source.Span
	Name      string
	NameSpan  source.Span
	Modifiers Modifiers
	// Type is the field/property type or method return type; unset for constructors.
	Type   TypeExpr
	Params []Param
	// Body is a block statement; ExprBody holds "=> expr" bodies and Init field/property initialisers.
	Body     StmtID
	ExprBody ExprID
	Init     ExprID
	// Accessors holds get/set bodies of a property, when written out.
	Accessors []StmtID
	Nested    ItemID
}
