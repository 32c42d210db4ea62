package parser

import (
	"strings"
	"testing"

	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/source"
	"strcheck/internal/testkit"
)

func parseSource(t *testing.T, src string) (*ast.Builder, ast.FileID, *source.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("Test0.cs", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(100)
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile(file, b, Options{Reporter: diag.BagReporter{Bag: bag}})
	return b, res.File, file, bag
}

// typeNamed finds a type declaration by simple name anywhere in the file.
func typeNamed(b *ast.Builder, file ast.FileID, name string) *ast.TypeItem {
	var found *ast.TypeItem
	var visit func(id ast.ItemID)
	visit = func(id ast.ItemID) {
		if ns, ok := b.Items.Namespace(id); ok {
			for _, it := range ns.Items {
				visit(it)
			}
			return
		}
		td, ok := b.Items.Type(id)
		if !ok {
			return
		}
		if td.Name == name {
			found = td
		}
		for _, m := range td.Members {
			if mem := b.Member(m); mem.Kind == ast.MemberNested {
				visit(mem.Nested)
			}
		}
	}
	for _, it := range b.File(file).Items {
		visit(it)
	}
	return found
}

func collectKinds(b *ast.Builder, file ast.FileID) []ast.ExprKind {
	var out []ast.ExprKind
	b.WalkExprs(file, func(_ ast.ExprID, e *ast.Expr) bool {
		out = append(out, e.Kind)
		return true
	})
	return out
}

func TestParseNestedDeclarations(t *testing.T) {
	src := `
using System;
using static System.Math;

namespace ConsoleApplication1.Inner
{
    struct Money {
        public decimal amount;
        public string currency, symbol;
    }
    class Program : Base, IThing
    {
        static void Main(string[] args)
        {
        }

        class NotConvertableToString
        {
        }

        interface IConvertableToString
        {
            public string ToString();
        }
    }
}`
	b, fid, _, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	f := b.File(fid)
	if len(f.Usings) != 2 || f.Usings[0].Name != "System" || f.Usings[1].Name != "System.Math" {
		t.Fatalf("usings: %+v", f.Usings)
	}
	ns, ok := b.Items.Namespace(f.Items[0])
	if !ok || ns.Name != "ConsoleApplication1.Inner" {
		t.Fatalf("namespace: %+v", ns)
	}

	money := typeNamed(b, fid, "Money")
	if money == nil || money.Kind != ast.TypeStruct {
		t.Fatalf("Money: %+v", money)
	}
	if len(money.Members) != 3 {
		t.Fatalf("Money members = %d, want 3 (one per declarator)", len(money.Members))
	}
	if m := b.Member(money.Members[2]); m.Name != "symbol" || m.Type.Predef == 0 {
		t.Errorf("third field: %+v", m)
	}

	prog := typeNamed(b, fid, "Program")
	if prog == nil || len(prog.Bases) != 2 || prog.Bases[0].String() != "Base" {
		t.Fatalf("Program: %+v", prog)
	}
	main := b.Member(prog.Members[0])
	if main.Kind != ast.MemberMethod || main.Name != "Main" || !main.Modifiers.Has(ast.ModStatic) {
		t.Fatalf("Main: %+v", main)
	}
	if len(main.Params) != 1 || main.Params[0].Type.String() != "string[]" {
		t.Errorf("Main params: %+v", main.Params)
	}

	iface := typeNamed(b, fid, "IConvertableToString")
	if iface == nil || iface.Kind != ast.TypeInterface || len(iface.Members) != 1 {
		t.Fatalf("interface: %+v", iface)
	}
	if m := b.Member(iface.Members[0]); m.Name != "ToString" || m.Body.IsValid() {
		t.Errorf("interface member: %+v", m)
	}
}

func TestParseGenericUsingAlias(t *testing.T) {
	src := "using X = N.List<int>;\nusing Map = N.Dictionary<string, N.List<int>>;\nclass C { }\n"
	b, fid, _, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	f := b.File(fid)
	if len(f.Usings) != 2 || f.Usings[0].Name != "N.List" || f.Usings[1].Name != "N.Dictionary" {
		t.Fatalf("usings: %+v", f.Usings)
	}
	if typeNamed(b, fid, "C") == nil {
		t.Fatalf("class after aliases was not parsed")
	}
}

func TestParseFileScopedNamespaceAndEnum(t *testing.T) {
	src := "namespace App;\nenum Color : byte { Red, Green = 2, }\nclass C { Color c = Color.Red; }\n"
	b, fid, _, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	ns, ok := b.Items.Namespace(b.File(fid).Items[0])
	if !ok || !ns.FileScoped || len(ns.Items) != 2 {
		t.Fatalf("namespace: %+v", ns)
	}
	color := typeNamed(b, fid, "Color")
	if color.Kind != ast.TypeEnum || len(color.Members) != 2 || len(color.Bases) != 0 {
		t.Fatalf("enum: %+v", color)
	}
	if m := b.Member(color.Members[1]); m.Type.String() != "Color" || !m.Init.IsValid() {
		t.Errorf("enum member: %+v", m)
	}
}

func TestParseExpressionShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []ast.ExprKind
	}{
		{
			name: "concatenation",
			body: `string str = "" + new NotConvertableToString();`,
			want: []ast.ExprKind{ast.ExprBinary, ast.ExprLit, ast.ExprNew},
		},
		{
			name: "explicit call",
			body: `string str = new X().ToString();`,
			want: []ast.ExprKind{ast.ExprCall, ast.ExprMember, ast.ExprNew},
		},
		{
			name: "format with implicit array",
			body: `string str = string.Format("{0}", new [] { new X() });`,
			want: []ast.ExprKind{ast.ExprCall, ast.ExprMember, ast.ExprPredefType, ast.ExprLit, ast.ExprImplicitArray, ast.ExprNew},
		},
		{
			name: "typed array",
			body: `object[] array = new object[] { new object() };`,
			want: []ast.ExprKind{ast.ExprArrayNew, ast.ExprNew},
		},
		{
			name: "object initializer",
			body: `System.Console.WriteLine("{0}", new Money { amount = 3.50m, currency = "$" });`,
			want: []ast.ExprKind{
				ast.ExprCall, ast.ExprMember, ast.ExprMember, ast.ExprIdent, ast.ExprLit,
				ast.ExprNew, ast.ExprBinary, ast.ExprIdent, ast.ExprLit, ast.ExprBinary, ast.ExprIdent, ast.ExprLit,
			},
		},
		{
			name: "cast and group",
			body: `var a = (object)x + (y);`,
			want: []ast.ExprKind{ast.ExprBinary, ast.ExprCast, ast.ExprIdent, ast.ExprGroup, ast.ExprIdent},
		},
		{
			name: "conditional and coalesce",
			body: `var a = b ? c ?? d : e;`,
			want: []ast.ExprKind{ast.ExprConditional, ast.ExprIdent, ast.ExprBinary, ast.ExprIdent, ast.ExprIdent, ast.ExprIdent},
		},
		{
			name: "lambda with block",
			body: `Run(x => { Use(x); });`,
			want: []ast.ExprKind{ast.ExprCall, ast.ExprIdent, ast.ExprLambda, ast.ExprCall, ast.ExprIdent, ast.ExprIdent},
		},
		{
			name: "is and as",
			body: `if (o is Foo f && (o as Foo) != null) { }`,
			want: []ast.ExprKind{
				ast.ExprBinary, ast.ExprIs, ast.ExprIdent, ast.ExprBinary, ast.ExprGroup, ast.ExprCast, ast.ExprIdent, ast.ExprLit,
			},
		},
		{
			name: "generic call",
			body: `var l = Make<int>(1);`,
			want: []ast.ExprKind{ast.ExprCall, ast.ExprIdent, ast.ExprLit},
		},
		{
			name: "compound assignment",
			body: `x *= 2; y |= 1;`,
			want: []ast.ExprKind{ast.ExprBinary, ast.ExprIdent, ast.ExprLit, ast.ExprBinary, ast.ExprIdent, ast.ExprLit},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "class P { void M() { " + tt.body + " } }"
			b, fid, _, bag := parseSource(t, src)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %+v", bag.Items())
			}
			got := collectKinds(b, fid)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestInterpolationHolesUseFileOffsets(t *testing.T) {
	src := "class P { void M() { string s = $\"a {value,5:x} b {other}\"; } }"
	b, fid, file, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	var idents []string
	b.WalkExprs(fid, func(id ast.ExprID, e *ast.Expr) bool {
		if e.Kind == ast.ExprIdent {
			idents = append(idents, file.Text(e.Span))
		}
		return true
	})
	if strings.Join(idents, ",") != "value,other" {
		t.Fatalf("hole identifiers by span: %v", idents)
	}
}

func TestMissingSemicolonRecovers(t *testing.T) {
	src := `
namespace ConsoleApplication1
{
    class Program
    {
        static void Main(string[] args)
        {
            var notConvertable = new NotConvertableToString()
            string str = $"{notConvertable}";
        }
    }
}`
	b, fid, file, bag := parseSource(t, src)
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynExpectSemicolon {
		t.Fatalf("diagnostics: %+v", items)
	}
	pos := file.Position(items[0].Primary.Start)
	if pos.Line != 8 || pos.Col != 62 {
		t.Errorf("missing ';' reported at %d:%d, want 8:62", pos.Line, pos.Col)
	}
	// второй оператор всё равно разобран
	var sawInterp bool
	b.WalkExprs(fid, func(_ ast.ExprID, e *ast.Expr) bool {
		sawInterp = sawInterp || e.Kind == ast.ExprInterp
		return true
	})
	if !sawInterp {
		t.Error("statement after the missing ';' was not parsed")
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unclosed brace", "class C { void M() { ", diag.SynUnclosedBrace},
		{"top level junk", "42;", diag.SynUnexpectedTopLevel},
		{"bad member", "class C { + }", diag.SynUnexpectedMember},
		{"missing expression", "class C { void M() { var x = ; } }", diag.SynExpectExpression},
		{"unclosed paren", "class C { void M() { F(1; } }", diag.SynUnclosedParen},
		{"bad hole", `class C { string s = $"{a b}"; }`, diag.SynBadInterpolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, bag := parseSource(t, tt.src)
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					return
				}
			}
			t.Fatalf("want %v, got %+v", tt.code, bag.Items())
		})
	}
}

func TestMaxErrorsLimitsReports(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.cs", []byte("class C { void M() { var a = ; var b = ; var c = ; } }"))
	bag := diag.NewBag(0)
	res := ParseFile(fs.Get(id), ast.NewBuilder(ast.Hints{}), Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 2 {
		t.Fatalf("reported %d, want 2", bag.Len())
	}
	if res.Errors < 2 {
		t.Errorf("Errors = %d", res.Errors)
	}
}

func TestParseExprStandalone(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("e.cs", []byte("xx a.b(c, d) yy"))
	b := ast.NewBuilder(ast.Hints{})
	e, errs := ParseExpr(fs.Get(id), b, Options{}, 3, 12)
	if errs != 0 {
		t.Fatalf("errs = %d", errs)
	}
	call, ok := b.Exprs.Call(e)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("not a two-argument call: %+v", b.Exprs.Get(e))
	}
}

func TestSpanInvariants(t *testing.T) {
	sources := []string{
		"namespace App.Core\n{\n    using System;\n    public class Outer\n    {\n        class Inner { public int X; }\n        string M(int a) => $\"{a,4:x} {new Inner()}\";\n    }\n}\n",
		"namespace App;\n\nenum Color { Red, Green }\nstruct P { public override string ToString() { return \"p\"; } }\n",
		"class Broken\n{\n    void M()\n    {\n        var s = \"a\" + ;\n    }\n}\n",
	}
	for i, src := range sources {
		b, file, sf, _ := parseSource(t, src)
		if err := testkit.CheckSpanInvariants(b, file, sf); err != nil {
			t.Errorf("source %d: %v", i, err)
		}
	}
}
