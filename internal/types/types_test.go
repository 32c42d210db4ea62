package types

import "testing"

func TestBuiltinsSeeded(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Object == NoTypeID || b.String == NoTypeID || b.Console == NoTypeID {
		t.Fatalf("builtins not initialized: %+v", b)
	}
	tests := []struct {
		kw   string
		want TypeID
	}{
		{"object", b.Object},
		{"string", b.String},
		{"int", b.Int},
		{"decimal", b.Decimal},
		{"void", b.Void},
	}
	for _, tt := range tests {
		got, ok := in.FindKeyword(tt.kw)
		if !ok || got != tt.want {
			t.Errorf("FindKeyword(%q) = %v, %v", tt.kw, got, ok)
		}
	}
	if id, ok := in.FindQualified("System.IO.TextWriter"); !ok || id != b.TextWriter {
		t.Errorf("FindQualified(System.IO.TextWriter) = %v, %v", id, ok)
	}
}

func TestArraysAreDeduplicated(t *testing.T) {
	in := NewInterner()
	s := in.Builtins().String
	a1, a2 := in.ArrayOf(s), in.ArrayOf(s)
	if a1 != a2 {
		t.Fatalf("array types should be deduplicated")
	}
	if in.ArrayElem(a1) != s {
		t.Errorf("ArrayElem = %v", in.ArrayElem(a1))
	}
	if in.Base(a1) != in.Builtins().Array {
		t.Errorf("array base should be System.Array")
	}
	if in.ArrayOf(NoTypeID) != NoTypeID {
		t.Errorf("array of unknown must stay unknown")
	}
}

func TestQualifiedNamesAndDisplay(t *testing.T) {
	in := NewInterner()
	outer := in.RegisterNominal(KindClass, NominalInfo{Name: "Program", Namespace: "ConsoleApplication1", Base: in.Builtins().Object})
	inner := in.RegisterNominal(KindClass, NominalInfo{Name: "NotConvertableToString", Namespace: "ConsoleApplication1", Outer: outer})
	global := in.RegisterNominal(KindStruct, NominalInfo{Name: "Money"})

	tests := []struct {
		id   TypeID
		want string
	}{
		{inner, "ConsoleApplication1.Program.NotConvertableToString"},
		{global, "Money"},
		{in.ArrayOf(inner), "ConsoleApplication1.Program.NotConvertableToString[]"},
		{in.Builtins().Int, "int"},
		{in.Builtins().Console, "System.Console"},
		{in.ArrayOf(in.Builtins().Object), "object[]"},
	}
	for _, tt := range tests {
		if got := in.Display(tt.id); got != tt.want {
			t.Errorf("Display = %q, want %q", got, tt.want)
		}
	}
	if id, ok := in.FindQualified("ConsoleApplication1.Program.NotConvertableToString"); !ok || id != inner {
		t.Errorf("nested type not indexed by qualified name")
	}
}

func TestBaseChainAndReferences(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	cls := in.RegisterNominal(KindClass, NominalInfo{Name: "C", Base: b.Object})
	st := in.RegisterNominal(KindStruct, NominalInfo{Name: "S", Base: b.ValueType})
	iface := in.RegisterNominal(KindInterface, NominalInfo{Name: "I"})

	if !in.IsReference(cls) || in.IsReference(st) || !in.IsReference(iface) || !in.IsReference(b.String) {
		t.Errorf("reference classification wrong")
	}
	if in.IsReference(b.Int) {
		t.Errorf("int is a value type")
	}
	if in.Base(iface) != NoTypeID || in.Base(b.Object) != NoTypeID {
		t.Errorf("interfaces and object have no base")
	}
	if !in.DerivesFrom(b.StreamWriter, b.TextWriter) || in.DerivesFrom(b.TextWriter, b.StreamWriter) {
		t.Errorf("DerivesFrom wrong for writers")
	}
	in.AddInterface(cls, iface)
	if !in.Implements(cls, iface) || !in.ConvertsTo(cls, iface) {
		t.Errorf("class should implement interface")
	}
}

func TestMemberLookup(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	base := in.RegisterNominal(KindClass, NominalInfo{Name: "Base", Base: b.Object})
	in.AddMember(base, Member{Name: "ToString", Kind: MemberMethod, Type: b.String})
	derived := in.RegisterNominal(KindClass, NominalInfo{Name: "Derived", Base: base})
	iface := in.RegisterNominal(KindInterface, NominalInfo{Name: "I"})

	if in.DeclaresMember(derived, "ToString") {
		t.Errorf("Derived does not declare ToString itself")
	}
	m, owner, ok := in.LookupMember(derived, "ToString", 0)
	if !ok || owner != base || m.Type != b.String {
		t.Errorf("LookupMember via base: %+v %v %v", m, owner, ok)
	}
	if _, owner, ok := in.LookupMember(iface, "GetHashCode", 0); !ok || owner != b.Object {
		t.Errorf("interfaces fall back to object members")
	}
	if m, _, ok := in.LookupMember(b.Console, "Out", -1); !ok || m.Type != b.TextWriter {
		t.Errorf("Console.Out: %+v", m)
	}
	if _, _, ok := in.LookupMember(derived, "Missing", -1); ok {
		t.Errorf("unexpected member")
	}
}

func TestNumericPromotion(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	tests := []struct {
		a, b, want TypeID
	}{
		{b.Int, b.Int, b.Int},
		{b.Byte, b.Short, b.Int},
		{b.Int, b.Long, b.Long},
		{b.Int, b.Double, b.Double},
		{b.Char, b.Char, b.Int},
		{b.Int, b.String, NoTypeID},
	}
	for _, tt := range tests {
		if got := in.Promote(tt.a, tt.b); got != tt.want {
			t.Errorf("Promote(%s, %s) = %s, want %s", in.Display(tt.a), in.Display(tt.b), in.Display(got), in.Display(tt.want))
		}
	}
}

func TestCommonType(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	base := in.RegisterNominal(KindClass, NominalInfo{Name: "Base", Base: b.Object})
	derived := in.RegisterNominal(KindClass, NominalInfo{Name: "Derived", Base: base})
	tests := []struct {
		name  string
		elems []TypeID
		want  TypeID
	}{
		{"same", []TypeID{derived, derived}, derived},
		{"widen to base", []TypeID{derived, base}, base},
		{"numeric", []TypeID{b.Int, b.Long}, b.Long},
		{"unrelated", []TypeID{b.String, b.Int}, b.Object},
		{"unknown ignored", []TypeID{NoTypeID, derived}, derived},
		{"nothing known", []TypeID{NoTypeID}, NoTypeID},
	}
	for _, tt := range tests {
		if got := in.CommonType(tt.elems); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, in.Display(got), in.Display(tt.want))
		}
	}
}
