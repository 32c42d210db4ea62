package ast

import (
	"strcheck/internal/source"
)

type ItemKind uint8

const (
	ItemNamespace ItemKind = iota
	ItemType
)

type TypeDeclKind uint8

const (
	TypeClass TypeDeclKind = iota
	TypeStruct
	TypeInterface
	TypeEnum
)

func (k TypeDeclKind) String() string {
	switch k {
	case TypeStruct:
		return "struct"
	case TypeInterface:
		return "interface"
	case TypeEnum:
		return "enum"
	}
	return "class"
}

// Modifiers is a bit set of declaration modifiers.
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModPrivate
	ModProtected
	ModInternal
	ModStatic
	ModReadonly
	ModConst
	ModOverride
	ModVirtual
	ModAbstract
	ModSealed
	ModPartial
	ModNew
)

func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type NamespaceItem struct {
	Name       string
	NameSpan   source.Span
	FileScoped bool
	Usings     []Using
	Items      []ItemID
}

type TypeItem struct {
	Kind      TypeDeclKind
	Name      string
	NameSpan  source.Span
	Modifiers Modifiers
	Bases     []TypeExpr
	Members   []MemberID
}

type Items struct {
	Arena      *Arena[Item]
	Namespaces *Arena[NamespaceItem]
	Types      *Arena[TypeItem]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena:      NewArena[Item](capHint),
		Namespaces: NewArena[NamespaceItem](capHint),
		Types:      NewArena[TypeItem](capHint),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewNamespace(sp source.Span, data NamespaceItem) ItemID {
	payload := i.Namespaces.Allocate(data)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemNamespace, Span: sp, Payload: PayloadID(payload)}))
}

func (i *Items) Namespace(id ItemID) (*NamespaceItem, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemNamespace {
		return nil, false
	}
	return i.Namespaces.Get(uint32(it.Payload)), true
}

func (i *Items) NewType(sp source.Span, data TypeItem) ItemID {
	payload := i.Types.Allocate(data)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemType, Span: sp, Payload: PayloadID(payload)}))
}

func (i *Items) Type(id ItemID) (*TypeItem, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemType {
		return nil, false
	}
	return i.Types.Get(uint32(it.Payload)), true
}
