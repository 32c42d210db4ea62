package diagfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"strcheck/internal/ast"
	"strcheck/internal/source"
)

// ASTNodeOutput is one node of the syntax dump, shared by the pretty and
// JSON renderers.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// ASTOpts configures the syntax dump.
type ASTOpts struct {
	// ExprType, when set, annotates expressions with their static type.
	ExprType func(ast.ExprID) string
}

var errNoFile = errors.New("file not found")

// FormatASTPretty prints the tree with ├─/└─ markers and resolved spans.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet, opts ASTOpts) error {
	root, err := BuildAST(builder, fileID, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s (span: %s)\n", root.Type, formatSpan(root.Span, fs)) //nolint:errcheck
	writeChildren(w, root.Children, fs, "")
	return nil
}

// FormatASTJSON writes the tree as indented JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID, opts ASTOpts) error {
	root, err := BuildAST(builder, fileID, opts)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func writeChildren(w io.Writer, children []ASTNodeOutput, fs *source.FileSet, prefix string) {
	for i, child := range children {
		marker, childPrefix := "├─ ", prefix+"│  "
		if i == len(children)-1 {
			marker, childPrefix = "└─ ", prefix+"   "
		}
		fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, marker, nodeLabel(&child), formatSpan(child.Span, fs)) //nolint:errcheck
		writeChildren(w, child.Children, fs, childPrefix)
	}
}

func nodeLabel(n *ASTNodeOutput) string {
	var sb strings.Builder
	sb.WriteString(n.Type)
	if n.Kind != "" {
		sb.WriteString(" ")
		sb.WriteString(n.Kind)
	}
	if n.Text != "" {
		fmt.Fprintf(&sb, " %q", n.Text)
	}
	if t, ok := n.Fields["type"]; ok {
		fmt.Fprintf(&sb, " : %v", t)
	}
	return sb.String()
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil || fs.Get(span.File) == nil {
		return fmt.Sprintf("%d..%d", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// BuildAST converts the file into the dump tree.
func BuildAST(builder *ast.Builder, fileID ast.FileID, opts ASTOpts) (ASTNodeOutput, error) {
	if builder == nil {
		return ASTNodeOutput{}, errNoFile
	}
	file := builder.File(fileID)
	if file == nil {
		return ASTNodeOutput{}, errNoFile
	}
	d := astDumper{b: builder, opts: opts}
	root := ASTNodeOutput{Type: "File", Span: file.Span}
	for _, u := range file.Usings {
		root.Children = append(root.Children, ASTNodeOutput{Type: "Using", Span: u.Span, Text: u.Name})
	}
	for _, it := range file.Items {
		root.Children = append(root.Children, d.item(it))
	}
	return root, nil
}

type astDumper struct {
	b    *ast.Builder
	opts ASTOpts
}

func (d *astDumper) item(id ast.ItemID) ASTNodeOutput {
	it := d.b.Items.Get(id)
	if it == nil {
		return ASTNodeOutput{Type: "<nil>"}
	}
	if ns, ok := d.b.Items.Namespace(id); ok {
		n := ASTNodeOutput{Type: "Namespace", Span: it.Span, Text: ns.Name}
		if ns.FileScoped {
			n.Kind = "file-scoped"
		}
		for _, u := range ns.Usings {
			n.Children = append(n.Children, ASTNodeOutput{Type: "Using", Span: u.Span, Text: u.Name})
		}
		for _, child := range ns.Items {
			n.Children = append(n.Children, d.item(child))
		}
		return n
	}
	td, _ := d.b.Items.Type(id)
	n := ASTNodeOutput{Type: "TypeDecl", Kind: td.Kind.String(), Span: it.Span, Text: td.Name}
	if len(td.Bases) > 0 {
		bases := make([]string, 0, len(td.Bases))
		for _, b := range td.Bases {
			bases = append(bases, b.String())
		}
		n.Fields = map[string]any{"bases": bases}
	}
	for _, m := range td.Members {
		n.Children = append(n.Children, d.member(m))
	}
	return n
}

func (d *astDumper) member(id ast.MemberID) ASTNodeOutput {
	m := d.b.Member(id)
	if m == nil {
		return ASTNodeOutput{Type: "<nil>"}
	}
	if m.Kind == ast.MemberNested {
		return d.item(m.Nested)
	}
	n := ASTNodeOutput{Type: "Member", Kind: m.Kind.String(), Span: m.Span, Text: m.Name}
	if m.Type.IsValid() {
		n.Fields = map[string]any{"type": m.Type.String()}
	}
	for _, p := range m.Params {
		n.Children = append(n.Children, ASTNodeOutput{
			Type:   "Param",
			Span:   p.Span,
			Text:   p.Name,
			Fields: map[string]any{"type": p.Type.String()},
		})
	}
	n.Children = d.appendExpr(n.Children, m.Init)
	n.Children = d.appendExpr(n.Children, m.ExprBody)
	n.Children = d.appendStmt(n.Children, m.Body)
	for _, acc := range m.Accessors {
		n.Children = d.appendStmt(n.Children, acc)
	}
	return n
}

func (d *astDumper) appendStmt(dst []ASTNodeOutput, id ast.StmtID) []ASTNodeOutput {
	if !id.IsValid() {
		return dst
	}
	return append(dst, d.stmt(id))
}

func (d *astDumper) appendExpr(dst []ASTNodeOutput, id ast.ExprID) []ASTNodeOutput {
	if !id.IsValid() {
		return dst
	}
	return append(dst, d.expr(id))
}

func (d *astDumper) stmt(id ast.StmtID) ASTNodeOutput {
	s := d.b.Stmts
	st := s.Get(id)
	if st == nil {
		return ASTNodeOutput{Type: "<nil>"}
	}
	n := ASTNodeOutput{Type: "Stmt", Kind: st.Kind.String(), Span: st.Span}
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := s.Block(id)
		for _, c := range blk.Stmts {
			n.Children = d.appendStmt(n.Children, c)
		}
	case ast.StmtLocal:
		loc, _ := s.Local(id)
		n.Fields = map[string]any{"type": loc.Type.String()}
		if loc.Const {
			n.Fields["const"] = true
		}
		for _, decl := range loc.Decls {
			dn := ASTNodeOutput{Type: "Declarator", Span: decl.Span, Text: decl.Name}
			dn.Children = d.appendExpr(dn.Children, decl.Init)
			n.Children = append(n.Children, dn)
		}
	case ast.StmtExpr:
		es, _ := s.Expr(id)
		n.Children = d.appendExpr(n.Children, es.Expr)
	case ast.StmtReturn:
		ret, _ := s.Return(id)
		n.Children = d.appendExpr(n.Children, ret.Value)
	case ast.StmtIf:
		is, _ := s.If(id)
		n.Children = d.appendExpr(n.Children, is.Cond)
		n.Children = d.appendStmt(n.Children, is.Then)
		n.Children = d.appendStmt(n.Children, is.Else)
	case ast.StmtWhile:
		ws, _ := s.While(id)
		n.Children = d.appendExpr(n.Children, ws.Cond)
		n.Children = d.appendStmt(n.Children, ws.Body)
	case ast.StmtFor:
		fs, _ := s.For(id)
		for _, init := range fs.Init {
			n.Children = d.appendStmt(n.Children, init)
		}
		n.Children = d.appendExpr(n.Children, fs.Cond)
		for _, step := range fs.Step {
			n.Children = d.appendExpr(n.Children, step)
		}
		n.Children = d.appendStmt(n.Children, fs.Body)
	case ast.StmtForeach:
		fe, _ := s.Foreach(id)
		n.Text = fe.Name
		n.Fields = map[string]any{"type": fe.Type.String()}
		n.Children = d.appendExpr(n.Children, fe.Coll)
		n.Children = d.appendStmt(n.Children, fe.Body)
	}
	return n
}

func (d *astDumper) expr(id ast.ExprID) ASTNodeOutput {
	e := d.b.Exprs
	ex := e.Get(id)
	if ex == nil {
		return ASTNodeOutput{Type: "<nil>"}
	}
	n := ASTNodeOutput{Type: ex.Kind.String(), Span: ex.Span}
	switch ex.Kind {
	case ast.ExprIdent:
		ident, _ := e.Ident(id)
		n.Text = ident.Name
	case ast.ExprLit:
		lit, _ := e.Literal(id)
		n.Text = lit.Raw
	case ast.ExprBinary:
		bin, _ := e.Binary(id)
		n.Kind = bin.Op.String()
	case ast.ExprUnary:
		un, _ := e.Unary(id)
		n.Kind = un.Op.String()
	case ast.ExprMember:
		m, _ := e.Member(id)
		n.Text = m.Name
		if m.Conditional {
			n.Kind = "?."
		}
	case ast.ExprNew:
		nw, _ := e.New(id)
		n.Text = nw.Type.String()
	case ast.ExprArrayNew:
		an, _ := e.ArrayNew(id)
		n.Text = an.Elem.String()
	case ast.ExprPredefType:
		pt, _ := e.PredefType(id)
		n.Text = pt.Keyword.String()
	case ast.ExprTypeOf:
		to, _ := e.TypeOf(id)
		n.Text = to.Type.String()
	case ast.ExprCast:
		c, _ := e.Cast(id)
		n.Text = c.Type.String()
		if c.As {
			n.Kind = "as"
		}
	case ast.ExprIs:
		is, _ := e.Is(id)
		n.Text = is.Type.String()
	}
	if d.opts.ExprType != nil {
		if t := d.opts.ExprType(id); t != "" {
			if n.Fields == nil {
				n.Fields = map[string]any{}
			}
			n.Fields["type"] = t
		}
	}
	for _, child := range e.AppendChildren(nil, id) {
		n.Children = append(n.Children, d.expr(child))
	}
	if lam, ok := e.Lambda(id); ok {
		n.Children = d.appendStmt(n.Children, lam.Block)
	}
	return n
}
