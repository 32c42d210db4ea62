package types

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"strcheck/internal/source"
)

// NominalInfo stores metadata for a class, struct, interface or enum.
type NominalInfo struct {
	Name      string
	Namespace string
	// Outer is the enclosing type for nested declarations.
	Outer TypeID
	// Keyword is the C# alias of a library type ("object", "int"), if any.
	Keyword    string
	Decl       source.Span
	Base       TypeID
	Interfaces []TypeID
	Members    []Member
	// Library marks types seeded by the interner rather than declared in source.
	Library bool
}

// RegisterNominal allocates a new nominal type. The qualified name is indexed
// for FindQualified; a later registration with the same name does not replace it.
func (in *Interner) RegisterNominal(kind Kind, info NominalInfo) TypeID {
	if !kind.IsNominal() {
		panic(fmt.Sprintf("types: RegisterNominal with %v", kind))
	}
	slot, err := safecast.Conv[uint32](len(in.nominals))
	if err != nil {
		panic(fmt.Errorf("len(nominals) overflow: %w", err))
	}
	info.Members = append([]Member(nil), info.Members...)
	in.nominals = append(in.nominals, info)
	id := in.internRaw(Type{Kind: kind, Payload: slot})
	qn := in.QualifiedName(id)
	if _, exists := in.qualified[qn]; !exists {
		in.qualified[qn] = id
	}
	if info.Keyword != "" {
		in.keywords[info.Keyword] = id
	}
	return id
}

// Nominal returns the metadata of a nominal type.
func (in *Interner) Nominal(id TypeID) (*NominalInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || !tt.Kind.IsNominal() || int(tt.Payload) >= len(in.nominals) {
		return nil, false
	}
	return &in.nominals[tt.Payload], true
}

// SetBase records the base class of a nominal type.
func (in *Interner) SetBase(id, base TypeID) {
	if info, ok := in.Nominal(id); ok {
		info.Base = base
	}
}

// AddInterface appends an implemented (or, for interfaces, inherited) interface.
func (in *Interner) AddInterface(id, iface TypeID) {
	if info, ok := in.Nominal(id); ok {
		info.Interfaces = append(info.Interfaces, iface)
	}
}

// QualifiedName returns Namespace.Outer.Name for nominal types. Nested types
// carry the namespace of their outermost type.
func (in *Interner) QualifiedName(id TypeID) string {
	info, ok := in.Nominal(id)
	if !ok {
		return ""
	}
	parts := []string{info.Name}
	outer := info.Outer
	for depth := 0; outer != NoTypeID && depth < maxNesting; depth++ {
		oi, ok := in.Nominal(outer)
		if !ok {
			break
		}
		parts = append(parts, oi.Name)
		outer = oi.Outer
	}
	if info.Namespace != "" {
		parts = append(parts, info.Namespace)
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".")
}

// maxNesting bounds walks over Outer and Base chains.
const maxNesting = 256

// FindQualified looks a nominal type up by its fully qualified name.
func (in *Interner) FindQualified(name string) (TypeID, bool) {
	id, ok := in.qualified[name]
	return id, ok
}

// FindKeyword resolves a predefined type keyword such as "int" or "object".
func (in *Interner) FindKeyword(kw string) (TypeID, bool) {
	id, ok := in.keywords[kw]
	return id, ok
}

// IsLibrary reports whether id is a library type seeded by the interner.
func (in *Interner) IsLibrary(id TypeID) bool {
	info, ok := in.Nominal(id)
	return ok && info.Library
}
