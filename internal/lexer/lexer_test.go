package lexer_test

import (
	"testing"

	"strcheck/internal/diag"
	"strcheck/internal/lexer"
	"strcheck/internal/source"
	"strcheck/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("Test0.cs", []byte(src)))
	bag := diag.NewBag(0)
	lx := lexer.New(f, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag, f
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{
			name: "declaration",
			src:  `string str = "" + new NotConvertable();`,
			want: []token.Kind{token.KwString, token.Ident, token.Assign, token.StringLit, token.Plus,
				token.KwNew, token.Ident, token.LParen, token.RParen, token.Semicolon, token.EOF},
		},
		{
			name: "member call",
			src:  `System.Console.Out.WriteLine("{0}", x);`,
			want: []token.Kind{token.Ident, token.Dot, token.Ident, token.Dot, token.Ident, token.Dot, token.Ident,
				token.LParen, token.StringLit, token.Comma, token.Ident, token.RParen, token.Semicolon, token.EOF},
		},
		{
			name: "operators",
			src:  `a => b == c != d <= e >= f && g || h += i -= j ?? k ?. l ++ --`,
			want: []token.Kind{token.Ident, token.FatArrow, token.Ident, token.EqEq, token.Ident, token.BangEq,
				token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident, token.AndAnd, token.Ident,
				token.OrOr, token.Ident, token.PlusAssign, token.Ident, token.MinusAssign, token.Ident,
				token.QQ, token.Ident, token.QuestionDot, token.Ident, token.PlusPlus, token.MinusMinus, token.EOF},
		},
		{
			name: "comments and preprocessor",
			src:  "#region x\n// line\n/* block */ class /// doc\n A",
			want: []token.Kind{token.KwClass, token.Ident, token.EOF},
		},
		{
			name: "verbatim identifier and strings",
			src:  `@class @"a ""b"" c" 'x' '\n'`,
			want: []token.Kind{token.Ident, token.StringLit, token.CharLit, token.CharLit, token.EOF},
		},
		{
			name: "interpolated",
			src:  `$"{a}" $@"{b}" @$"{c}"`,
			want: []token.Kind{token.InterpStringLit, token.InterpStringLit, token.InterpStringLit, token.EOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag, _ := lexAll(t, tt.src)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %+v", bag.Items())
			}
			got := kinds(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"1_000", token.IntLit},
		{"0xFF", token.IntLit},
		{"0b1010", token.IntLit},
		{"10UL", token.IntLit},
		{"3.50m", token.RealLit},
		{"1m", token.RealLit},
		{"2.5f", token.RealLit},
		{"1e-3", token.RealLit},
		{".5", token.RealLit},
	}
	for _, tt := range tests {
		toks, bag, _ := lexAll(t, tt.src)
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics %+v", tt.src, bag.Items())
			continue
		}
		if toks[0].Kind != tt.kind || toks[0].Text != tt.src {
			t.Errorf("%q: got %v %q", tt.src, toks[0].Kind, toks[0].Text)
		}
	}

	toks, _, _ := lexAll(t, "1.ToString()")
	if toks[0].Kind != token.IntLit || toks[1].Kind != token.Dot {
		t.Errorf("member access on integer literal lexed as %v %v", toks[0].Kind, toks[1].Kind)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"\"abc\n\"", diag.LexUnterminatedString},
		{"\"abc", diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{`"\q"`, diag.LexBadEscape},
		{"''", diag.LexUnterminatedChar},
		{"12abc", diag.LexBadNumber},
		{"`", diag.LexUnknownChar},
		{`$"{a"`, diag.LexUnterminatedInterpolated},
	}
	for _, tt := range tests {
		_, bag, _ := lexAll(t, tt.src)
		if bag.Len() == 0 {
			t.Errorf("%q: expected %s, got nothing", tt.src, tt.code.ID())
			continue
		}
		if got := bag.Items()[0].Code; got != tt.code {
			t.Errorf("%q: got %s, want %s", tt.src, got.ID(), tt.code.ID())
		}
	}
}

func TestSplitInterpolated(t *testing.T) {
	src := `$"a {{x}} {value,-5:N2} and {Call(1, "}")} {(b ? c : d)}"`
	toks, bag, f := lexAll(t, src)
	if bag.Len() != 0 || toks[0].Kind != token.InterpStringLit {
		t.Fatalf("lex failed: %v %+v", toks[0].Kind, bag.Items())
	}
	in := lexer.SplitInterpolated(f, toks[0].Span.Start, toks[0].Span.End)
	if !in.Closed || in.End != toks[0].Span.End {
		t.Fatalf("split not closed: %+v", in)
	}
	holes := in.Holes()
	want := []struct{ expr, align, format string }{
		{"value", "-5", "N2"},
		{`Call(1, "}")`, "", ""},
		{"(b ? c : d)", "", ""},
	}
	if len(holes) != len(want) {
		t.Fatalf("got %d holes, want %d", len(holes), len(want))
	}
	for i, h := range holes {
		if got := f.Text(h.Span); got != want[i].expr {
			t.Errorf("hole %d expr = %q, want %q", i, got, want[i].expr)
		}
		if got := f.Text(h.Align); got != want[i].align {
			t.Errorf("hole %d align = %q, want %q", i, got, want[i].align)
		}
		if got := f.Text(h.Format); got != want[i].format {
			t.Errorf("hole %d format = %q, want %q", i, got, want[i].format)
		}
	}
}

func TestInterpolatedHoleOffsets(t *testing.T) {
	src := "\n            string str = $\"{notConvertable}\";"
	toks, _, f := lexAll(t, src)
	var lit token.Token
	for _, tk := range toks {
		if tk.Kind == token.InterpStringLit {
			lit = tk
		}
	}
	holes := lexer.SplitInterpolated(f, lit.Span.Start, lit.Span.End).Holes()
	if len(holes) != 1 {
		t.Fatalf("want one hole, got %d", len(holes))
	}
	pos := f.Position(holes[0].Span.Start)
	if pos.Line != 2 || pos.Col != 29 {
		t.Errorf("hole at %d:%d, want 2:29", pos.Line, pos.Col)
	}
}

func TestIdentifierNormalization(t *testing.T) {
	// "é" as e + combining acute accent
	toks, bag, _ := lexAll(t, "cafe\u0301")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.Ident || toks[0].Text != "caf\u00e9" {
		t.Errorf("got %v %q, want NFC identifier", toks[0].Kind, toks[0].Text)
	}
}

func TestKeepTrivia(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.cs", []byte("// hi\nclass")))
	toks := lexer.New(f, lexer.Options{KeepTrivia: true}).All()
	if len(toks[0].Leading) != 2 {
		t.Fatalf("leading trivia = %d, want 2", len(toks[0].Leading))
	}
	if toks[0].Leading[0].Kind != token.TriviaLineComment || toks[0].Leading[1].Kind != token.TriviaNewline {
		t.Errorf("unexpected trivia kinds %v %v", toks[0].Leading[0].Kind, toks[0].Leading[1].Kind)
	}
}
