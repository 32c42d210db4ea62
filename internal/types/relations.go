package types

// Base returns the direct base type: the declared base of classes, ValueType
// for structs, System.Enum for enums and System.Array for arrays. Interfaces,
// object and void have none.
func (in *Interner) Base(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return NoTypeID
	}
	switch tt.Kind {
	case KindArray:
		return in.builtins.Array
	case KindClass, KindStruct, KindEnum:
		info, _ := in.Nominal(id)
		return info.Base
	}
	return NoTypeID
}

// IsReference reports whether values of id are references: classes,
// interfaces, arrays, string and object. Structs and enums are values.
func (in *Interner) IsReference(id TypeID) bool {
	switch in.KindOf(id) {
	case KindClass, KindInterface, KindArray:
		return true
	}
	return false
}

// DerivesFrom reports whether id is ancestor or has it on its base chain.
func (in *Interner) DerivesFrom(id, ancestor TypeID) bool {
	if id == NoTypeID || ancestor == NoTypeID {
		return false
	}
	for depth := 0; id != NoTypeID && depth < maxNesting; depth++ {
		if id == ancestor {
			return true
		}
		id = in.Base(id)
	}
	return false
}

// Implements reports whether id or one of its ancestors lists iface,
// directly or through interface inheritance.
func (in *Interner) Implements(id, iface TypeID) bool {
	seen := make(map[TypeID]bool)
	var walk func(t TypeID) bool
	walk = func(t TypeID) bool {
		if t == NoTypeID || seen[t] {
			return false
		}
		seen[t] = true
		if t == iface {
			return true
		}
		if info, ok := in.Nominal(t); ok {
			for _, up := range info.Interfaces {
				if walk(up) {
					return true
				}
			}
		}
		return walk(in.Base(t))
	}
	return walk(id)
}

// numeric promotion ranks; zero means not numeric
func (in *Interner) numericRank(id TypeID) int {
	b := in.builtins
	switch id {
	case b.Byte:
		return 1
	case b.Short:
		return 2
	case b.Char:
		return 2
	case b.Int:
		return 3
	case b.Long:
		return 4
	case b.Float:
		return 5
	case b.Double:
		return 6
	case b.Decimal:
		return 7
	}
	return 0
}

// IsNumeric reports whether id is a builtin numeric type (char included).
func (in *Interner) IsNumeric(id TypeID) bool {
	return id != NoTypeID && in.numericRank(id) > 0
}

// Promote applies binary numeric promotion: both operands widen to the larger
// type and never below int. Enums keep their type for enum ± integer.
func (in *Interner) Promote(a, b TypeID) TypeID {
	if in.KindOf(a) == KindEnum && in.IsNumeric(b) {
		return a
	}
	if in.KindOf(b) == KindEnum && in.IsNumeric(a) {
		return b
	}
	ra, rb := in.numericRank(a), in.numericRank(b)
	if ra == 0 || rb == 0 || a == NoTypeID || b == NoTypeID {
		return NoTypeID
	}
	out := a
	if rb > ra {
		out = b
	}
	if in.numericRank(out) < in.numericRank(in.builtins.Int) {
		out = in.builtins.Int
	}
	return out
}

// CommonType picks the best common type of array initialiser elements: the
// one every other element converts to. NoTypeID elements are ignored; when
// nothing fits, object is returned.
func (in *Interner) CommonType(elems []TypeID) TypeID {
	var known []TypeID
	for _, t := range elems {
		if t != NoTypeID {
			known = append(known, t)
		}
	}
	if len(known) == 0 {
		return NoTypeID
	}
	for _, cand := range known {
		ok := true
		for _, t := range known {
			if !in.ConvertsTo(t, cand) {
				ok = false
				break
			}
		}
		if ok {
			return cand
		}
	}
	return in.builtins.Object
}

// ConvertsTo is a conservative implicit-conversion check: identity, widening
// numerics, base chain and implemented interfaces, anything to object.
func (in *Interner) ConvertsTo(from, to TypeID) bool {
	switch {
	case from == to:
		return true
	case to == in.builtins.Object:
		return from != in.builtins.Void
	case in.IsNumeric(from) && in.IsNumeric(to):
		switch {
		case to == in.builtins.Char:
			return false
		case from == in.builtins.Char:
			return in.numericRank(to) >= in.numericRank(in.builtins.Int)
		}
		return in.numericRank(from) <= in.numericRank(to)
	case in.KindOf(to) == KindInterface:
		return in.Implements(from, to)
	}
	return in.DerivesFrom(from, to)
}
