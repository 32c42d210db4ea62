package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type; expressions the binder cannot type get it.
const NoTypeID TypeID = 0

// Kind enumerates the kinds of types the binder models.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindClass
	KindStruct
	KindInterface
	KindEnum
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsNominal reports whether types of kind k carry NominalInfo.
func (k Kind) IsNominal() bool {
	return k == KindClass || k == KindStruct || k == KindInterface || k == KindEnum
}

// Type is a compact descriptor. Nominal types keep their metadata in a side
// table addressed by Payload; arrays are structural over Elem.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}

// MakeArray describes a single-dimensional array of elem.
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}
