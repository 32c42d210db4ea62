package sema

import (
	"testing"

	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/parser"
	"strcheck/internal/source"
)

type checked struct {
	b    *ast.Builder
	file *source.File
	fid  ast.FileID
	res  Result
	bag  *diag.Bag
}

func check(t *testing.T, src string) checked {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("Test0.cs", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(0)
	b := ast.NewBuilder(ast.Hints{})
	pr := parser.ParseFile(file, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if pr.Errors != 0 {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	res := Check(b, pr.File, Options{Reporter: diag.BagReporter{Bag: bag}})
	return checked{b: b, file: file, fid: pr.File, res: res, bag: bag}
}

// typeOfText returns the display of the first expression whose source text is text.
func (c checked) typeOfText(t *testing.T, text string) string {
	t.Helper()
	var found ast.ExprID
	c.b.WalkExprs(c.fid, func(id ast.ExprID, e *ast.Expr) bool {
		if !found.IsValid() && c.file.Text(e.Span) == text {
			found = id
		}
		return true
	})
	if !found.IsValid() {
		t.Fatalf("no expression %q", text)
	}
	tid := c.res.TypeOf(found)
	if tid == 0 {
		return "<unknown>"
	}
	return c.res.TypeInterner.Display(tid)
}

func (c checked) codes() []diag.Code {
	var out []diag.Code
	for _, d := range c.bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

const programSrc = `
using System.Text;

namespace ConsoleApplication1
{
    struct Money {
        public decimal amount;
        public string currency;
    }
    enum Color { Red, Green }
    interface IConvertableToString
    {
        public string ToString();
    }
    class Base { public override string ToString() { return "b"; } }
    class Program : Base, IConvertableToString
    {
        static int counter = 1;
        Money Cash { get; set; }

        static void Main(string[] args)
        {
            var notConvertable = new NotConvertableToString();
            var items = new [] { new NotConvertableToString() };
            object[] array = new object[] { new object() };
            var mixed = new [] { 1, 2L };
            var sb = new StringBuilder();
            foreach (var arg in args) { Use(arg); }
            string s = "" + notConvertable;
            var n = counter + 2.5;
            var c = Color.Red;
            IConvertableToString obj = new Program();
            var m = new Money { amount = 3.50m, currency = "$" };
            var maybe = args.Length > 0 ? null : notConvertable;
        }

        static void Use(string s) { }

        class NotConvertableToString
        {
        }
    }
}`

func TestExpressionTypes(t *testing.T) {
	c := check(t, programSrc)
	tests := []struct {
		text string
		want string
	}{
		{"new NotConvertableToString()", "ConsoleApplication1.Program.NotConvertableToString"},
		{"new [] { new NotConvertableToString() }", "ConsoleApplication1.Program.NotConvertableToString[]"},
		{"new object[] { new object() }", "object[]"},
		{"new [] { 1, 2L }", "long[]"},
		{"new StringBuilder()", "System.Text.StringBuilder"},
		{"arg", "string"},
		{`"" + notConvertable`, "string"},
		{"notConvertable", "ConsoleApplication1.Program.NotConvertableToString"},
		{"counter + 2.5", "double"},
		{"Color.Red", "ConsoleApplication1.Color"},
		{"new Program()", "ConsoleApplication1.Program"},
		{"new Money { amount = 3.50m, currency = \"$\" }", "ConsoleApplication1.Money"},
		{"amount", "decimal"},
		{"args.Length", "int"},
		{"args.Length > 0", "bool"},
		{"args.Length > 0 ? null : notConvertable", "ConsoleApplication1.Program.NotConvertableToString"},
		{"null", "<unknown>"},
		{"Use(arg)", "<unknown>"},
	}
	for _, tt := range tests {
		if got := c.typeOfText(t, tt.text); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestHierarchy(t *testing.T) {
	c := check(t, programSrc)
	in := c.res.TypeInterner
	prog, ok := in.FindQualified("ConsoleApplication1.Program")
	if !ok {
		t.Fatal("Program not declared")
	}
	base, _ := in.FindQualified("ConsoleApplication1.Base")
	iface, _ := in.FindQualified("ConsoleApplication1.IConvertableToString")
	if in.Base(prog) != base {
		t.Errorf("Program base = %s", in.Display(in.Base(prog)))
	}
	if !in.Implements(prog, iface) {
		t.Errorf("Program should implement the interface")
	}
	money, _ := in.FindQualified("ConsoleApplication1.Money")
	if in.Base(money) != in.Builtins().ValueType {
		t.Errorf("struct base = %s", in.Display(in.Base(money)))
	}
	color, _ := in.FindQualified("ConsoleApplication1.Color")
	if in.Base(color) != in.Builtins().Enum {
		t.Errorf("enum base = %s", in.Display(in.Base(color)))
	}
	if !in.DeclaresMember(iface, "ToString") {
		t.Errorf("interface ToString not declared")
	}
	if len(c.bag.Items()) != 0 {
		t.Errorf("unexpected diagnostics: %+v", c.bag.Items())
	}
}

func TestQualifiedLibraryAccess(t *testing.T) {
	src := `class P { void M() { System.Console.Out.Write("x"); Console.WriteLine(1); var w = new System.IO.StringWriter(); string f = string.Format("{0}", 1); } }`
	c := check(t, src)
	tests := []struct{ text, want string }{
		{"System.Console", "System.Console"},
		{"System.Console.Out", "System.IO.TextWriter"},
		{"Console", "System.Console"},
		{"new System.IO.StringWriter()", "System.IO.StringWriter"},
		{"string", "string"},
		{`string.Format("{0}", 1)`, "string"},
		{"System", "<unknown>"},
	}
	for _, tt := range tests {
		if got := c.typeOfText(t, tt.text); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestSemanticDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want diag.Code
	}{
		{"duplicate type", "class A {} class A {}", diag.SemaDuplicateType},
		{"unresolved", "class A { Missing m; }", diag.SemaUnresolvedType},
		{"struct inherits", "class B {} struct S : B {}", diag.SemaStructInherits},
		{"base not class", "struct S {} class C : S {}", diag.SemaBaseNotClass},
		{"cycle", "class A : B {} class B : A {}", diag.SemaCyclicBase},
		{"duplicate local", "class A { void M(int x) { var x = 1; } }", diag.SemaDuplicateLocal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := check(t, tt.src)
			for _, code := range c.codes() {
				if code == tt.want {
					return
				}
			}
			t.Fatalf("want %v, got %v", tt.want, c.codes())
		})
	}
}

func TestPartialTypesShareIdentity(t *testing.T) {
	c := check(t, "partial class A { int x; } partial class A { string y; }")
	if len(c.bag.Items()) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", c.bag.Items())
	}
	in := c.res.TypeInterner
	a, _ := in.FindQualified("A")
	if !in.DeclaresMember(a, "x") || !in.DeclaresMember(a, "y") {
		t.Errorf("members of both parts should land on one type")
	}
}

func TestCheckFilesSharesDeclarations(t *testing.T) {
	fs := source.NewFileSet()
	b := ast.NewBuilder(ast.Hints{})
	var files []ast.FileID
	for i, src := range []string{
		"namespace N { class User { void M() { var w = new Widget(); } } }",
		"namespace N { class Widget {} }",
	} {
		id := fs.AddVirtual([]string{"a.cs", "b.cs"}[i], []byte(src))
		files = append(files, parser.ParseFile(fs.Get(id), b, parser.Options{}).File)
	}
	bag := diag.NewBag(0)
	res := CheckFiles(b, files, Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	var found bool
	b.WalkExprs(files[0], func(id ast.ExprID, e *ast.Expr) bool {
		if e.Kind == ast.ExprNew {
			found = res.TypeInterner.Display(res.TypeOf(id)) == "N.Widget"
		}
		return true
	})
	if !found {
		t.Error("type from the second file was not resolved")
	}
}
