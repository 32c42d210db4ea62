package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs of the library types the binder and the rules refer to.
type Builtins struct {
	Void      TypeID
	Object    TypeID
	ValueType TypeID
	String    TypeID
	Bool      TypeID
	Char      TypeID
	Byte      TypeID
	Short     TypeID
	Int       TypeID
	Long      TypeID
	Float     TypeID
	Double    TypeID
	Decimal   TypeID

	Array         TypeID
	Enum          TypeID
	Type          TypeID
	Exception     TypeID
	StringBuilder TypeID
	Console       TypeID
	TextWriter    TypeID
	StreamWriter  TypeID
	StringWriter  TypeID
	DateTime      TypeID
	Guid          TypeID
}

// Interner provides stable TypeIDs. Structural descriptors (arrays) are
// deduplicated; every nominal registration yields a fresh type.
type Interner struct {
	types     []Type
	index     map[typeKey]TypeID
	nominals  []NominalInfo
	qualified map[string]TypeID
	keywords  map[string]TypeID
	builtins  Builtins
}

// NewInterner constructs an interner seeded with the base class library subset.
func NewInterner() *Interner {
	in := &Interner{
		index:     make(map[typeKey]TypeID, 64),
		qualified: make(map[string]TypeID, 64),
		keywords:  make(map[string]TypeID, 16),
	}
	in.nominals = append(in.nominals, NominalInfo{}) // 0 — невалидный слот
	in.internRaw(Type{Kind: KindInvalid})
	in.seedLibrary()
	return in
}

// Builtins returns TypeIDs for library types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided structural descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Len returns the number of interned types including the invalid sentinel.
func (in *Interner) Len() int {
	return len(in.types)
}

// ArrayOf returns the single-dimensional array type of elem.
func (in *Interner) ArrayOf(elem TypeID) TypeID {
	if elem == NoTypeID {
		return NoTypeID
	}
	return in.Intern(MakeArray(elem))
}

// ArrayElem returns the element type of an array, or NoTypeID.
func (in *Interner) ArrayElem(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArray {
		return NoTypeID
	}
	return tt.Elem
}

// KindOf returns the kind of id; KindInvalid for unknown ids.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

type typeKey Type
