package lint

import (
	"testing"

	"strcheck/internal/types"
)

func TestClassifier(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	plain := in.RegisterNominal(types.KindClass, types.NominalInfo{Name: "Plain", Namespace: "N", Base: b.Object})
	overriding := in.RegisterNominal(types.KindClass, types.NominalInfo{Name: "Overriding", Namespace: "N", Base: b.Object})
	in.AddMember(overriding, types.Member{Name: "ToString", Kind: types.MemberMethod, Type: b.String})
	derived := in.RegisterNominal(types.KindClass, types.NominalInfo{Name: "Derived", Namespace: "N", Base: overriding})
	grand := in.RegisterNominal(types.KindClass, types.NominalInfo{Name: "Grand", Namespace: "N", Base: derived})
	value := in.RegisterNominal(types.KindStruct, types.NominalInfo{Name: "Money", Namespace: "N", Base: b.ValueType})
	iface := in.RegisterNominal(types.KindInterface, types.NominalInfo{Name: "IShow", Namespace: "N"})
	in.AddMember(iface, types.Member{Name: "ToString", Kind: types.MemberMethod, Type: b.String})

	c := NewClassifier(in)
	tests := []struct {
		name string
		t    types.TypeID
		want bool
	}{
		{"unknown", types.NoTypeID, false},
		{"object", b.Object, false},
		{"value root", b.ValueType, false},
		{"string", b.String, false},
		{"int", b.Int, false},
		{"plain class", plain, true},
		{"overriding class", overriding, false},
		{"inherits override", derived, false},
		{"two levels down", grand, false},
		{"struct without override", value, true},
		{"interface declaring ToString", iface, false},
		{"array of plain", in.ArrayOf(plain), true},
		{"object array", in.ArrayOf(b.Object), true},
	}
	for _, tt := range tests {
		if got := c.LacksOverriddenConversion(tt.t); got != tt.want {
			t.Errorf("%s: LacksOverriddenConversion = %v, want %v", tt.name, got, tt.want)
		}
	}

	if !c.IsObjectArray(in.ArrayOf(b.Object)) || c.IsObjectArray(in.ArrayOf(plain)) || c.IsObjectArray(b.Object) {
		t.Errorf("IsObjectArray misclassifies")
	}
	if !c.IsText(b.String) || c.IsText(types.NoTypeID) || !c.IsRootObject(b.Object) || !c.IsValueRoot(b.ValueType) {
		t.Errorf("root and text checks misclassify")
	}
}

func TestClassifierStopsOnCycles(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	a := in.RegisterNominal(types.KindClass, types.NominalInfo{Name: "A", Base: b.Object})
	c := in.RegisterNominal(types.KindClass, types.NominalInfo{Name: "C", Base: a})
	in.SetBase(a, c)
	if NewClassifier(in).LacksOverriddenConversion(a) {
		t.Errorf("a cyclic hierarchy should not be reported")
	}
}

func TestLookupRules(t *testing.T) {
	for _, name := range []string{"format-argument", "STR4003", "str4003"} {
		d, ok := Lookup(name)
		if !ok || d.ID != RuleFormatArg {
			t.Errorf("Lookup(%q) = %v, %v", name, d.ID, ok)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Errorf("unknown rule found")
	}
	all := Descriptors()
	if len(all) != 5 {
		t.Fatalf("want 5 descriptors, got %d", len(all))
	}
	for i, d := range all {
		if d.Category != "Naming" || d.Code.ID() != "STR400"+string(rune('1'+i)) {
			t.Errorf("descriptor %d: %+v", i, d)
		}
		if det := detectors[d.ID]; det == nil {
			t.Errorf("no detector for %s", d.ID)
		}
	}
}
