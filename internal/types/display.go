package types

// Display renders id for diagnostics: keywords for aliased library types,
// fully qualified names otherwise, "T[]" for arrays.
func (in *Interner) Display(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindVoid:
		return "void"
	case KindArray:
		return in.Display(tt.Elem) + "[]"
	}
	info, ok := in.Nominal(id)
	if !ok {
		return "?"
	}
	if info.Keyword != "" {
		return info.Keyword
	}
	return in.QualifiedName(id)
}
