package ast

// ExprVisitor is called for every expression in pre-order; returning false
// skips the children of that expression.
type ExprVisitor func(id ExprID, expr *Expr) bool

// WalkExprs visits every expression reachable from file in source order:
// field and property initialisers, member bodies, statements and nested types.
func (b *Builder) WalkExprs(file FileID, visit ExprVisitor) {
	f := b.File(file)
	if f == nil || visit == nil {
		return
	}
	w := walker{b: b, visit: visit}
	for _, it := range f.Items {
		w.item(it)
	}
}

type walker struct {
	b     *Builder
	visit ExprVisitor
}

func (w *walker) item(id ItemID) {
	if ns, ok := w.b.Items.Namespace(id); ok {
		for _, it := range ns.Items {
			w.item(it)
		}
		return
	}
	if td, ok := w.b.Items.Type(id); ok {
		for _, m := range td.Members {
			w.member(m)
		}
	}
}

func (w *walker) member(id MemberID) {
	m := w.b.Member(id)
	if m == nil {
		return
	}
	if m.Kind == MemberNested {
		w.item(m.Nested)
		return
	}
	w.expr(m.Init)
	w.expr(m.ExprBody)
	w.stmt(m.Body)
	for _, acc := range m.Accessors {
		w.stmt(acc)
	}
}

func (w *walker) stmt(id StmtID) {
	st := w.b.Stmts.Get(id)
	if st == nil {
		return
	}
	s := w.b.Stmts
	switch st.Kind {
	case StmtBlock:
		blk, _ := s.Block(id)
		for _, child := range blk.Stmts {
			w.stmt(child)
		}
	case StmtLocal:
		loc, _ := s.Local(id)
		for _, d := range loc.Decls {
			w.expr(d.Init)
		}
	case StmtExpr:
		es, _ := s.Expr(id)
		w.expr(es.Expr)
	case StmtReturn:
		ret, _ := s.Return(id)
		w.expr(ret.Value)
	case StmtIf:
		ifs, _ := s.If(id)
		w.expr(ifs.Cond)
		w.stmt(ifs.Then)
		w.stmt(ifs.Else)
	case StmtWhile:
		ws, _ := s.While(id)
		w.expr(ws.Cond)
		w.stmt(ws.Body)
	case StmtFor:
		fs, _ := s.For(id)
		for _, init := range fs.Init {
			w.stmt(init)
		}
		w.expr(fs.Cond)
		for _, step := range fs.Step {
			w.expr(step)
		}
		w.stmt(fs.Body)
	case StmtForeach:
		fe, _ := s.Foreach(id)
		w.expr(fe.Coll)
		w.stmt(fe.Body)
	}
}

func (w *walker) expr(id ExprID) {
	e := w.b.Exprs.Get(id)
	if e == nil || !w.visit(id, e) {
		return
	}
	for _, child := range w.b.Exprs.AppendChildren(nil, id) {
		w.expr(child)
	}
	if lam, ok := w.b.Exprs.Lambda(id); ok {
		w.stmt(lam.Block)
	}
}

// AppendChildren appends the direct sub-expressions of id to dst in source order.
func (e *Exprs) AppendChildren(dst []ExprID, id ExprID) []ExprID {
	expr := e.Get(id)
	if expr == nil {
		return dst
	}
	push := func(ids ...ExprID) {
		for _, c := range ids {
			if c.IsValid() {
				dst = append(dst, c)
			}
		}
	}
	switch expr.Kind {
	case ExprInterp:
		in, _ := e.Interp(id)
		push(in.Holes()...)
	case ExprBinary:
		bin, _ := e.Binary(id)
		push(bin.Left, bin.Right)
	case ExprUnary:
		un, _ := e.Unary(id)
		push(un.Operand)
	case ExprConditional:
		c, _ := e.Conditional(id)
		push(c.Cond, c.Then, c.Else)
	case ExprMember:
		m, _ := e.Member(id)
		push(m.Target)
	case ExprCall:
		call, _ := e.Call(id)
		push(call.Target)
		push(call.Args...)
	case ExprIndex:
		idx, _ := e.Index(id)
		push(idx.Target)
		push(idx.Args...)
	case ExprNew:
		n, _ := e.New(id)
		push(n.Args...)
		push(n.Init...)
	case ExprArrayNew:
		an, _ := e.ArrayNew(id)
		push(an.Sizes...)
		push(an.Init...)
	case ExprImplicitArray:
		ia, _ := e.ImplicitArray(id)
		push(ia.Elems...)
	case ExprGroup:
		g, _ := e.Group(id)
		push(g.Inner)
	case ExprCast:
		c, _ := e.Cast(id)
		push(c.Value)
	case ExprIs:
		is, _ := e.Is(id)
		push(is.Value)
	case ExprLambda:
		lam, _ := e.Lambda(id)
		push(lam.Body)
	}
	return dst
}
