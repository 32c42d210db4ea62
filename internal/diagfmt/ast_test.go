package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"strcheck/internal/ast"
	"strcheck/internal/lexer"
	"strcheck/internal/parser"
	"strcheck/internal/source"
)

const astSample = `using System;
namespace N
{
    class P : Base
    {
        void M() { var s = "" + x; }
    }
}
`

func parseSample(t *testing.T) (*source.FileSet, *ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte(astSample))
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs.Get(id), b, parser.Options{})
	return fs, b, res.File
}

func TestASTPretty(t *testing.T) {
	fs, b, file := parseSample(t)
	var buf bytes.Buffer
	opts := ASTOpts{ExprType: func(id ast.ExprID) string {
		if e := b.Exprs.Get(id); e != nil && e.Kind == ast.ExprBinary {
			return "string"
		}
		return ""
	}}
	if err := FormatASTPretty(&buf, b, file, fs, opts); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"File (span: 1:1-",
		`├─ Using "System"`,
		`└─ Namespace "N"`,
		`TypeDecl class "P"`,
		`Member Method "M" : void`,
		`Stmt Local : var`,
		`Declarator "s"`,
		`Binary + : string`,
		`Lit "\"\""`,
		`Ident "x"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump lacks %q:\n%s", want, out)
		}
	}
}

func TestASTJSON(t *testing.T) {
	_, b, file := parseSample(t)
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, b, file, ASTOpts{}); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if root.Type != "File" || len(root.Children) != 2 || root.Children[1].Type != "Namespace" {
		t.Fatalf("unexpected root: %+v", root)
	}
	if _, err := BuildAST(b, 99, ASTOpts{}); err == nil {
		t.Errorf("missing file should fail")
	}
}

func TestTokensDump(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cs", []byte("a + 1;"))
	toks := lexer.New(fs.Get(id), lexer.Options{}).All()
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 || !strings.Contains(lines[0], `"a" at 1:1-1:2`) {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
	buf.Reset()
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil || len(out) != 5 {
		t.Fatalf("unexpected JSON tokens: %v %d", err, len(out))
	}
	if out[2].Start.Col != 5 || out[2].Text != "1" {
		t.Errorf("unexpected literal token: %+v", out[2])
	}
}
