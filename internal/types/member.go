package types

import "strcheck/internal/source"

type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberProperty
	MemberMethod
	MemberCtor
)

func (k MemberKind) String() string {
	switch k {
	case MemberProperty:
		return "property"
	case MemberMethod:
		return "method"
	case MemberCtor:
		return "constructor"
	}
	return "field"
}

// Member is a declared member of a nominal type. Type is the field/property
// type or the method return type.
type Member struct {
	Name   string
	Kind   MemberKind
	Type   TypeID
	Static bool
	// Arity is the parameter count of methods; -1 means variadic or unknown.
	Arity int
	Decl  source.Span
}

// AddMember declares m on the nominal type id.
func (in *Interner) AddMember(id TypeID, m Member) {
	if info, ok := in.Nominal(id); ok {
		info.Members = append(info.Members, m)
	}
}

// DeclaresMember reports whether id itself (not an ancestor) declares a member
// called name. Only nominal types declare members.
func (in *Interner) DeclaresMember(id TypeID, name string) bool {
	_, ok := in.ownMember(id, name, -1)
	return ok
}

// ownMember finds a member of id by name; arity < 0 accepts any overload.
func (in *Interner) ownMember(id TypeID, name string, arity int) (Member, bool) {
	info, ok := in.Nominal(id)
	if !ok {
		return Member{}, false
	}
	var fallback Member
	found := false
	for _, m := range info.Members {
		if m.Name != name || m.Kind == MemberCtor {
			continue
		}
		if arity < 0 || m.Arity < 0 || m.Arity == arity || m.Kind != MemberMethod {
			return m, true
		}
		if !found {
			fallback, found = m, true
		}
	}
	return fallback, found
}

// LookupMember resolves name on id the way member access does: own members
// first, then the base chain; interfaces search inherited interfaces and
// finally object. Arrays look into System.Array. arity < 0 accepts any overload.
func (in *Interner) LookupMember(id TypeID, name string, arity int) (Member, TypeID, bool) {
	seen := make(map[TypeID]bool, 8)
	var walk func(t TypeID, depth int) (Member, TypeID, bool)
	walk = func(t TypeID, depth int) (Member, TypeID, bool) {
		if t == NoTypeID || seen[t] || depth > maxNesting {
			return Member{}, NoTypeID, false
		}
		seen[t] = true
		if m, ok := in.ownMember(t, name, arity); ok {
			return m, t, true
		}
		if in.KindOf(t) == KindInterface {
			info, _ := in.Nominal(t)
			for _, up := range info.Interfaces {
				if m, owner, ok := walk(up, depth+1); ok {
					return m, owner, ok
				}
			}
			return Member{}, NoTypeID, false
		}
		return walk(in.Base(t), depth+1)
	}
	if m, owner, ok := walk(id, 0); ok {
		return m, owner, true
	}
	if in.KindOf(id) == KindInterface {
		return walk(in.builtins.Object, 0)
	}
	return Member{}, NoTypeID, false
}
