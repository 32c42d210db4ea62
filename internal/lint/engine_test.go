package lint_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/lint"
	"strcheck/internal/parser"
	"strcheck/internal/sema"
	"strcheck/internal/source"
)

// program wraps statements in the Main method of ConsoleApplication1.Program;
// the first statement lands on line 8, column 13.
func program(stmts, nested string) string {
	return "\nnamespace ConsoleApplication1\n{\n    class Program\n    {\n" +
		"        static void Main(string[] args)\n        {\n" +
		stmts + "\n        }\n" + nested + "    }\n}"
}

const (
	notConvertable = `
        class NotConvertableToString
        {
        }
`
	convertable = `
        class ConvertableToString
        {
            public override string ToString()
            {
                return "value";
            }
        }
`
	convertableSubclass = convertable + `
        class ConvertableToStringSubclass : ConvertableToString
        {
        }

        class ConvertableToStringGrandchild : ConvertableToStringSubclass
        {
        }
`
	notConvertableName = "ConsoleApplication1.Program.NotConvertableToString"
)

func lintSource(t *testing.T, src string, opts lint.Options) string {
	t.Helper()
	fs, diags, err := runEngine(context.Background(), src, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return diag.FormatGoldenDiagnostics(diags, fs, false)
}

func runEngine(ctx context.Context, src string, opts lint.Options) (*source.FileSet, []diag.Diagnostic, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("Test0.cs", []byte(src))
	b := ast.NewBuilder(ast.Hints{})
	// синтаксические ошибки не мешают анализу
	pr := parser.ParseFile(fs.Get(id), b, parser.Options{})
	res := sema.Check(b, pr.File, sema.Options{})
	bag := diag.NewBag(0)
	err := lint.New(opts).Run(ctx, res.Unit(pr.File), diag.BagReporter{Bag: bag})
	return fs, bag.Items(), err
}

func warning(code string, line, col int, msg string) string {
	return fmt.Sprintf("warning %s Test0.cs:%d:%d %s", code, line, col, msg)
}

func implicitMsg(typ string) string {
	return "Expression of type '" + typ + "' will be implicitly converted to a string, but does not override ToString()"
}

func explicitMsg(typ string) string {
	return "Calling ToString() on object of type '" + typ + "' but it does not override ToString()"
}

func convertedMsg(typ string) string {
	return "Expression of type '" + typ + "' will be converted to a string, but does not override ToString()"
}

func TestEngineScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{name: "empty source", src: ""},
		{
			name: "object on the right",
			src:  program(`            string str = "" + new object();`, ""),
		},
		{
			name: "object on the left",
			src:  program(`            string str = new object() + "";`, ""),
		},
		{
			name: "integer",
			src:  program(`            string str = "" + 0;`, ""),
		},
		{
			name: "concatenation without override",
			src:  program(`            string str = "" + new NotConvertableToString();`, notConvertable),
			want: []string{warning("STR4001", 8, 31, implicitMsg(notConvertableName))},
		},
		{
			name: "column counts UTF-16 units",
			src:  program(`            string str = "héllo" + new NotConvertableToString();`, notConvertable),
			want: []string{warning("STR4001", 8, 36, implicitMsg(notConvertableName))},
		},
		{
			name: "concatenation with override",
			src:  program(`            string str = "" + new ConvertableToString();`, convertable),
		},
		{
			name: "override on the base class",
			src: program(`            string str = "" + new ConvertableToStringSubclass();`, convertable+`
        class ConvertableToStringSubclass : ConvertableToString
        {
        }
`),
		},
		{
			name: "explicit call with inherited override",
			src:  program(`            string str = new ConvertableToStringGrandchild().ToString();`, convertableSubclass),
		},
		{
			name: "format argument with inherited override",
			src:  program(`            string str = string.Format("{0}", new ConvertableToStringSubclass());`, convertableSubclass),
		},
		{
			name: "interpolation with inherited override",
			src:  program("            var c = new ConvertableToStringGrandchild();\n            string str = $\"{c}\";", convertableSubclass),
		},
		{
			name: "output argument with inherited override",
			src:  program(`            Console.WriteLine("{0} {1}", new ConvertableToStringSubclass(), new ConvertableToStringGrandchild());`, convertableSubclass),
		},
		{
			name: "explicit call on class",
			src:  program(`            string str = new NotConvertableToString().ToString();`, notConvertable),
			want: []string{warning("STR4002", 8, 26, explicitMsg(notConvertableName))},
		},
		{
			name: "explicit call on struct",
			src: program(`            string str = new NotConvertableToString().ToString();`, `
        struct NotConvertableToString
        {
        }
`),
			want: []string{warning("STR4002", 8, 26, explicitMsg(notConvertableName))},
		},
		{
			name: "explicit call with override",
			src:  program(`            string str = new ConvertableToString().ToString();`, convertable),
		},
		{
			name: "explicit call through interface declaring ToString",
			src: program("            IConvertableToString obj = new ConvertableToString();\n            string str = obj.ToString();", `
        interface IConvertableToString
        {
            public string ToString();
        }
`+convertable),
		},
		{
			name: "explicit call on object",
			src:  program(`            string str = new object().ToString();`, ""),
		},
		{
			name: "interpolation after a missing semicolon",
			src:  program("            var notConvertable = new NotConvertableToString()\n            string str = $\"{notConvertable}\";", notConvertable),
			want: []string{warning("STR4004", 9, 29, convertedMsg(notConvertableName))},
		},
		{
			name: "interpolation with override",
			src:  program("            var convertable = new ConvertableToString()\n            string str = $\"{convertable}\";", convertable),
		},
		{
			name: "format argument",
			src:  program(`            string str = string.Format("{0}", new NotConvertableToString());`, notConvertable),
			want: []string{warning("STR4003", 8, 47, explicitMsg(notConvertableName))},
		},
		{
			name: "format argument with override",
			src:  program(`            string str = string.Format("{0}", new ConvertableToString());`, convertable),
		},
		{
			name: "format implicit array with override",
			src:  program(`            string str = string.Format("{0}", new [] { new ConvertableToString() });`, convertable),
		},
		{
			name: "format implicit array without override",
			src:  program(`            string str = string.Format("{0}", new [] { new NotConvertableToString() });`, notConvertable),
			want: []string{warning("STR4003", 8, 56, explicitMsg(notConvertableName))},
		},
		{
			name: "format object array",
			src:  program("            object[] array = new object[] { new object() };\n            string str = string.Format(\"{0}\", array);", ""),
		},
		{
			name: "format with several loose arguments",
			src:  program(`            string str = string.Format("{0} {1}", new NotConvertableToString(), new NotConvertableToString());`, notConvertable),
			want: []string{
				warning("STR4003", 8, 51, explicitMsg(notConvertableName)),
				warning("STR4003", 8, 81, explicitMsg(notConvertableName)),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lintSource(t, tt.src, lint.Options{})
			if want := strings.Join(tt.want, "\n"); got != want {
				t.Fatalf("diagnostics mismatch:\nwant:\n%s\ngot:\n%s", want, got)
			}
		})
	}
}

const moneySrc = `
namespace ConsoleApplication1
{
    struct Money {
        public decimal amount;
        public string currency;
    }
    class Program
    {
        static void Main(string[] args)
        {
            %s
        }
    }
    class Price
    {
        public override string ToString() => "1.00";
    }
    class Discount : Price
    {
    }
}`

func TestOutputCalls(t *testing.T) {
	moneyMsg := convertedMsg("ConsoleApplication1.Money")
	tests := []struct {
		name string
		stmt string
		want []string
	}{
		{
			name: "TextWriter.Write",
			stmt: `System.Console.Out.Write("I need about {0}", new Money { amount = 3.50m, currency = "$" });`,
			want: []string{warning("STR4005", 12, 58, moneyMsg)},
		},
		{
			name: "Console.WriteLine",
			stmt: `System.Console.WriteLine("I need about {0}", new Money { amount = 3.50m, currency = "$" });`,
			want: []string{warning("STR4005", 12, 58, moneyMsg)},
		},
		{
			name: "single value is the template",
			stmt: `Console.WriteLine(new Money());`,
		},
		{
			name: "single object array",
			stmt: `object[] arr = new object[] { new Money() }; Console.WriteLine(arr);`,
		},
		{
			name: "implicit array",
			stmt: `Console.WriteLine("{0}", new [] { new Money() });`,
			want: []string{warning("STR4005", 12, 47, moneyMsg)},
		},
		{
			name: "argument with override",
			stmt: `Console.WriteLine("{0}", new Price());`,
		},
		{
			name: "argument with inherited override",
			stmt: `System.Console.Out.WriteLine("{0} {1}", new Discount(), new Money());`,
			want: []string{warning("STR4005", 12, 69, moneyMsg)},
		},
		{
			name: "derived writer",
			stmt: `var w = new System.IO.StringWriter(); w.Write("{0}", new Money());`,
			want: []string{warning("STR4005", 12, 66, moneyMsg)},
		},
		{
			name: "object array is opaque",
			stmt: `Console.WriteLine("{0}", new object[] { new Money() });`,
		},
		{
			name: "string and numbers",
			stmt: `Console.WriteLine("{0} {1}", "x", 42);`,
		},
		{
			name: "unrelated Write",
			stmt: `Money m = new Money(); m.Write("{0}", m);`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := strings.Replace(moneySrc, "%s", tt.stmt, 1)
			got := lintSource(t, src, lint.Options{})
			if want := strings.Join(tt.want, "\n"); got != want {
				t.Fatalf("diagnostics mismatch:\nwant:\n%s\ngot:\n%s", want, got)
			}
		})
	}
}

func TestShapesOutsideTheRules(t *testing.T) {
	tests := []struct {
		name  string
		stmts string
		want  []string
	}{
		{
			name:  "struct concatenation is not a reference conversion",
			stmts: `            var c = "" + new Point();`,
		},
		{
			name:  "array concatenation",
			stmts: `            var c = "" + new NotConvertableToString[1];`,
			want:  []string{warning("STR4001", 8, 26, implicitMsg(notConvertableName+"[]"))},
		},
		{
			name:  "enum conversion",
			stmts: `            var c = "" + Color.Red + Color.Red.ToString();`,
		},
		{
			name:  "unknown type",
			stmts: `            var c = "" + Missing.Value + new Missing().ToString();`,
		},
		{
			name:  "ToString with arguments",
			stmts: `            var c = new NotConvertableToString().ToString("x");`,
		},
		{
			name:  "null",
			stmts: `            var c = "" + null;`,
		},
	}
	nested := notConvertable + `
        struct Point { public int X; }
        enum Color { Red }
`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lintSource(t, program(tt.stmts, nested), lint.Options{})
			if want := strings.Join(tt.want, "\n"); got != want {
				t.Fatalf("diagnostics mismatch:\nwant:\n%s\ngot:\n%s", want, got)
			}
		})
	}
}

const mixedSrc = `
namespace ConsoleApplication1
{
    class Program
    {
        static void Main(string[] args)
        {
            var x = new NotConvertableToString();
            string a = "" + x;
            string b = x.ToString();
            string c = string.Format("{0}", x);
            string d = $"{x}";
            Console.Write("{0}", x);
        }

        class NotConvertableToString
        {
        }
    }
}`

func TestParallelMatchesSequential(t *testing.T) {
	seq := lintSource(t, mixedSrc, lint.Options{})
	par := lintSource(t, mixedSrc, lint.Options{Parallel: true})
	if seq != par {
		t.Fatalf("parallel output differs:\n%s\n---\n%s", seq, par)
	}
	if n := strings.Count(seq, "\n") + 1; n != 5 {
		t.Fatalf("want 5 findings, got %d:\n%s", n, seq)
	}
	for _, code := range []string{"STR4001", "STR4002", "STR4003", "STR4004", "STR4005"} {
		if !strings.Contains(seq, code) {
			t.Errorf("missing %s in\n%s", code, seq)
		}
	}
}

func TestReportOrderFollowsDetectors(t *testing.T) {
	_, diags, err := runEngine(context.Background(), mixedSrc, lint.Options{Parallel: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []diag.Code{
		diag.StrImplicitConcatenation, diag.StrExplicitConversion, diag.StrFormatArgument,
		diag.StrInterpolationArgument, diag.StrOutputArgument,
	}
	if len(diags) != len(want) {
		t.Fatalf("want %d diagnostics, got %d", len(want), len(diags))
	}
	for i, d := range diags {
		if d.Code != want[i] || d.Severity != diag.SevWarning {
			t.Errorf("diagnostic %d: %v %v", i, d.Code, d.Severity)
		}
	}
}

func TestDisabledRules(t *testing.T) {
	opts := lint.Options{Disabled: []string{"explicit-conversion", "STR4004", "no-such-rule"}}
	got := lintSource(t, mixedSrc, opts)
	if strings.Contains(got, "STR4002") || strings.Contains(got, "STR4004") {
		t.Fatalf("disabled rules reported:\n%s", got)
	}
	rules := lint.New(opts).Rules()
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, string(r.ID))
	}
	if want := "implicit-concatenation,format-argument,output-argument"; strings.Join(ids, ",") != want {
		t.Errorf("Rules() = %v", ids)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, parallel := range []bool{false, true} {
		_, diags, err := runEngine(ctx, mixedSrc, lint.Options{Parallel: parallel})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("parallel=%v: want context.Canceled, got %v", parallel, err)
		}
		if len(diags) != 0 {
			t.Errorf("parallel=%v: cancelled run reported %d diagnostics", parallel, len(diags))
		}
	}
}

// cancelOnReport cancels the run as soon as the first finding arrives.
type cancelOnReport struct {
	bag    *diag.Bag
	cancel context.CancelFunc
}

func (r cancelOnReport) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	diag.BagReporter{Bag: r.bag}.Report(code, sev, primary, msg, notes)
	r.cancel()
}

func TestCancellationBetweenPasses(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("Test0.cs", []byte(mixedSrc))
	b := ast.NewBuilder(ast.Hints{})
	pr := parser.ParseFile(fs.Get(id), b, parser.Options{})
	res := sema.Check(b, pr.File, sema.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bag := diag.NewBag(0)
	err := lint.New(lint.Options{}).Run(ctx, res.Unit(pr.File), cancelOnReport{bag: bag, cancel: cancel})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	// the first pass is flushed whole, later passes never start
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.StrImplicitConcatenation {
		t.Fatalf("want only the concatenation finding, got %+v", items)
	}
}
