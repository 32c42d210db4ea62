package sema

import (
	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/source"
	"strcheck/internal/types"
)

// bindBodies types initialisers and bodies of every member of d.
func (tc *typeChecker) bindBodies(d *typeDecl) {
	tc.cur = d
	defer func() { tc.cur = nil }()
	for _, mid := range d.node.Members {
		m := tc.builder.Member(mid)
		if m == nil || m.Kind == ast.MemberNested {
			continue
		}
		tc.scopes.reset()
		tc.scopes.push(true)
		for _, p := range m.Params {
			tc.declareLocal(p.Name, tc.resolveType(p.Type, d), p.Span)
		}
		var memberType types.TypeID
		if m.Kind == ast.MemberField || m.Kind == ast.MemberProperty {
			memberType = tc.resolveTypeQuiet(m.Type, d)
		}
		if d.node.Kind == ast.TypeEnum {
			memberType = d.id
		}
		tc.bindExpect(m.Init, memberType)
		tc.bindExpr(m.ExprBody)
		tc.bindStmt(m.Body)
		for _, acc := range m.Accessors {
			// value — неявный параметр сеттера
			tc.scopes.push(true)
			tc.scopes.declare("value", memberType, m.NameSpan)
			tc.bindStmt(acc)
			tc.scopes.pop()
		}
		tc.scopes.pop()
	}
}

// resolveTypeQuiet resolves a type already reported during member declaration.
func (tc *typeChecker) resolveTypeQuiet(te ast.TypeExpr, d *typeDecl) types.TypeID {
	saved := tc.reporter
	tc.reporter = diag.NopReporter{}
	defer func() { tc.reporter = saved }()
	return tc.resolveType(te, d)
}

func (tc *typeChecker) declareLocal(name string, t types.TypeID, sp source.Span) {
	if prev, dup := tc.scopes.declare(name, t, sp); dup {
		diag.ReportError(tc.reporter, diag.SemaDuplicateLocal, sp,
			"a local or parameter named '"+name+"' is already declared in this scope").
			WithNote(prev.span, "previous declaration").Emit()
	}
}

func (tc *typeChecker) bindStmt(id ast.StmtID) {
	st := tc.builder.Stmts.Get(id)
	if st == nil {
		return
	}
	s := tc.builder.Stmts
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := s.Block(id)
		tc.scopes.push(false)
		for _, child := range blk.Stmts {
			tc.bindStmt(child)
		}
		tc.scopes.pop()
	case ast.StmtLocal:
		loc, _ := s.Local(id)
		tc.bindLocal(loc)
	case ast.StmtExpr:
		es, _ := s.Expr(id)
		tc.bindExpr(es.Expr)
	case ast.StmtReturn:
		ret, _ := s.Return(id)
		tc.bindExpr(ret.Value)
	case ast.StmtIf:
		ifs, _ := s.If(id)
		tc.bindExpr(ifs.Cond)
		tc.bindEmbedded(ifs.Then)
		tc.bindEmbedded(ifs.Else)
	case ast.StmtWhile:
		ws, _ := s.While(id)
		tc.bindExpr(ws.Cond)
		tc.bindEmbedded(ws.Body)
	case ast.StmtFor:
		fs, _ := s.For(id)
		tc.scopes.push(false)
		for _, init := range fs.Init {
			tc.bindStmt(init)
		}
		tc.bindExpr(fs.Cond)
		for _, step := range fs.Step {
			tc.bindExpr(step)
		}
		tc.bindEmbedded(fs.Body)
		tc.scopes.pop()
	case ast.StmtForeach:
		fe, _ := s.Foreach(id)
		coll := tc.bindExpr(fe.Coll)
		elem := tc.elementType(coll)
		if !fe.Type.Var {
			elem = tc.resolveType(fe.Type, tc.cur)
		}
		tc.scopes.push(false)
		tc.declareLocal(fe.Name, elem, fe.NameSpan)
		tc.bindEmbedded(fe.Body)
		tc.scopes.pop()
	}
}

// bindEmbedded binds an embedded statement in its own scope so declarations
// in "if (x) var y = ...;" do not leak.
func (tc *typeChecker) bindEmbedded(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	tc.scopes.push(false)
	tc.bindStmt(id)
	tc.scopes.pop()
}

func (tc *typeChecker) bindLocal(loc *ast.LocalStmt) {
	declared := types.NoTypeID
	if !loc.Type.Var {
		declared = tc.resolveType(loc.Type, tc.cur)
	}
	for _, d := range loc.Decls {
		t := declared
		init := tc.bindExpect(d.Init, declared)
		if loc.Type.Var {
			t = init
		}
		tc.declareLocal(d.Name, t, d.Span)
	}
}

// elementType is the iteration type of foreach over t: array elements and
// the characters of a string. Other collections are not modelled.
func (tc *typeChecker) elementType(t types.TypeID) types.TypeID {
	if t == tc.builtins.String {
		return tc.builtins.Char
	}
	return tc.types.ArrayElem(t)
}
