package sema

import (
	"strcheck/internal/ast"
	"strcheck/internal/types"
)

func (tc *typeChecker) bindExpr(id ast.ExprID) types.TypeID {
	return tc.bindExpect(id, types.NoTypeID)
}

// bindExpect types id; expected feeds target-typed forms such as new(...).
func (tc *typeChecker) bindExpect(id ast.ExprID, expected types.TypeID) types.TypeID {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return types.NoTypeID
	}
	return tc.record(id, tc.typeExpr(id, expr, expected))
}

func (tc *typeChecker) typeExpr(id ast.ExprID, expr *ast.Expr, expected types.TypeID) types.TypeID {
	e := tc.builder.Exprs
	b := tc.builtins
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := e.Ident(id)
		return tc.typeIdent(id, ident.Name)
	case ast.ExprLit:
		lit, _ := e.Literal(id)
		return tc.literalType(lit)
	case ast.ExprInterp:
		in, _ := e.Interp(id)
		for _, h := range in.Holes() {
			tc.bindExpr(h)
		}
		return b.String
	case ast.ExprBinary:
		bin, _ := e.Binary(id)
		return tc.typeBinary(bin)
	case ast.ExprUnary:
		un, _ := e.Unary(id)
		return tc.typeUnary(un)
	case ast.ExprConditional:
		c, _ := e.Conditional(id)
		tc.bindExpr(c.Cond)
		return tc.unify(tc.bindExpect(c.Then, expected), tc.bindExpect(c.Else, expected))
	case ast.ExprMember:
		return tc.typeMember(id)
	case ast.ExprCall:
		call, _ := e.Call(id)
		return tc.typeCall(call)
	case ast.ExprIndex:
		idx, _ := e.Index(id)
		target := tc.bindExpr(idx.Target)
		for _, a := range idx.Args {
			tc.bindExpr(a)
		}
		return tc.elementType(target)
	case ast.ExprNew:
		n, _ := e.New(id)
		return tc.typeNew(n, expected)
	case ast.ExprArrayNew:
		an, _ := e.ArrayNew(id)
		elem := tc.resolveType(an.Elem, tc.cur)
		for _, s := range an.Sizes {
			tc.bindExpr(s)
		}
		for _, el := range an.Init {
			tc.bindExpect(el, elem)
		}
		return tc.types.ArrayOf(elem)
	case ast.ExprImplicitArray:
		ia, _ := e.ImplicitArray(id)
		elems := make([]types.TypeID, 0, len(ia.Elems))
		for _, el := range ia.Elems {
			elems = append(elems, tc.bindExpr(el))
		}
		common := tc.types.CommonType(elems)
		if common == types.NoTypeID && len(ia.Elems) > 0 {
			common = b.Object
		}
		return tc.types.ArrayOf(common)
	case ast.ExprGroup:
		g, _ := e.Group(id)
		return tc.bindExpect(g.Inner, expected)
	case ast.ExprThis:
		if tc.cur == nil {
			return types.NoTypeID
		}
		return tc.cur.id
	case ast.ExprBase:
		if tc.cur == nil {
			return types.NoTypeID
		}
		return tc.types.Base(tc.cur.id)
	case ast.ExprPredefType:
		pt, _ := e.PredefType(id)
		t, _ := tc.types.FindKeyword(pt.Keyword.String())
		return t
	case ast.ExprTypeOf:
		to, _ := e.TypeOf(id)
		tc.resolveType(to.Type, tc.cur)
		return b.Type
	case ast.ExprCast:
		c, _ := e.Cast(id)
		tc.bindExpr(c.Value)
		return tc.resolveType(c.Type, tc.cur)
	case ast.ExprIs:
		is, _ := e.Is(id)
		tc.bindExpr(is.Value)
		if is.Type.IsValid() {
			t := tc.resolveType(is.Type, tc.cur)
			if is.Name != "" {
				tc.declareLocal(is.Name, t, is.NameSpan)
			}
		}
		return b.Bool
	case ast.ExprLambda:
		lam, _ := e.Lambda(id)
		tc.scopes.push(true)
		for _, p := range lam.Params {
			tc.declareLocal(p.Name, tc.resolveType(p.Type, tc.cur), p.Span)
		}
		tc.bindExpr(lam.Body)
		tc.bindStmt(lam.Block)
		tc.scopes.pop()
		return types.NoTypeID
	}
	return types.NoTypeID
}

// typeIdent resolves a simple name: locals and parameters, members of the
// current type and its enclosing types, type names, then namespaces.
func (tc *typeChecker) typeIdent(id ast.ExprID, name string) types.TypeID {
	if l, ok := tc.scopes.lookup(name); ok {
		return l.typ
	}
	for d := tc.cur; d != nil; d = d.outer {
		if m, _, ok := tc.types.LookupMember(d.id, name, -1); ok {
			if m.Kind == types.MemberMethod {
				return types.NoTypeID
			}
			return m.Type
		}
	}
	if t := tc.lookupTypeName([]string{name}, tc.cur, declNS(tc.cur), declUsings(tc.cur)); t != types.NoTypeID {
		return t
	}
	if full, ok := tc.lookupNamespace(name); ok {
		tc.nsExprs[id] = full
	}
	return types.NoTypeID
}

// typeMember types "target.name". A namespace target extends the namespace or
// names a type; a type target may name a nested type.
func (tc *typeChecker) typeMember(id ast.ExprID) types.TypeID {
	m, _ := tc.builder.Exprs.Member(id)
	target := tc.bindExpr(m.Target)
	if ns, ok := tc.nsExprs[tc.builder.Exprs.Unparen(m.Target)]; ok {
		full := ns + "." + m.Name
		if t, ok := tc.types.FindQualified(full); ok {
			return t
		}
		if tc.namespaces[full] {
			tc.nsExprs[id] = full
		}
		return types.NoTypeID
	}
	if target == types.NoTypeID {
		return types.NoTypeID
	}
	if tc.types.KindOf(target).IsNominal() {
		if nested, ok := tc.types.FindQualified(tc.types.QualifiedName(target) + "." + m.Name); ok {
			return nested
		}
	}
	mem, _, ok := tc.types.LookupMember(target, m.Name, -1)
	if !ok || mem.Kind == types.MemberMethod {
		return types.NoTypeID
	}
	return mem.Type
}

// typeCall types invocations. Method return types come from member lookup on
// the receiver (or on the enclosing types for simple names).
func (tc *typeChecker) typeCall(call *ast.CallExpr) types.TypeID {
	e := tc.builder.Exprs
	arity := len(call.Args)
	ret := types.NoTypeID
	target := e.Unparen(call.Target)
	var kind ast.ExprKind
	if t := e.Get(target); t != nil {
		kind = t.Kind
	}
	switch {
	case kind == ast.ExprMember:
		m, _ := e.Member(target)
		recv := tc.bindExpr(m.Target)
		if recv != types.NoTypeID {
			if mem, _, ok := tc.types.LookupMember(recv, m.Name, arity); ok && mem.Kind == types.MemberMethod {
				ret = mem.Type
			}
		}
	case kind == ast.ExprIdent:
		ident, _ := e.Ident(target)
		if _, isLocal := tc.scopes.lookup(ident.Name); isLocal {
			break
		}
		if ident.Name == "nameof" {
			ret = tc.builtins.String
			break
		}
		for d := tc.cur; d != nil; d = d.outer {
			if mem, _, ok := tc.types.LookupMember(d.id, ident.Name, arity); ok && mem.Kind == types.MemberMethod {
				ret = mem.Type
				break
			}
		}
	default:
		tc.bindExpr(call.Target)
	}
	for _, a := range call.Args {
		tc.bindExpr(a)
	}
	return ret
}

// typeNew types object creation and binds constructor arguments and
// initialisers. Object-initialiser assignments resolve their left side as a
// member of the created type.
func (tc *typeChecker) typeNew(n *ast.NewExpr, expected types.TypeID) types.TypeID {
	created := expected
	if n.Type.IsValid() {
		created = tc.resolveType(n.Type, tc.cur)
	} else if !n.HasArgs {
		created = types.NoTypeID // анонимный объект
	}
	for _, a := range n.Args {
		tc.bindExpr(a)
	}
	e := tc.builder.Exprs
	for _, el := range n.Init {
		bin, ok := e.Binary(el)
		if !ok || bin.Op != ast.OpAssign {
			tc.bindExpr(el)
			continue
		}
		ident, ok := e.Ident(bin.Left)
		if !ok {
			tc.bindExpr(el)
			continue
		}
		memberType := types.NoTypeID
		if created != types.NoTypeID {
			if mem, _, ok := tc.types.LookupMember(created, ident.Name, -1); ok && mem.Kind != types.MemberMethod {
				memberType = mem.Type
			}
		}
		tc.record(bin.Left, memberType)
		tc.record(el, memberType)
		tc.bindExpect(bin.Right, memberType)
	}
	return created
}

// unify picks the type of a conditional: equal types, the known side when
// the other is unknown (null), or the side the other converts to.
func (tc *typeChecker) unify(a, b types.TypeID) types.TypeID {
	switch {
	case a == b:
		return a
	case a == types.NoTypeID:
		return b
	case b == types.NoTypeID:
		return a
	case tc.types.ConvertsTo(a, b):
		return b
	case tc.types.ConvertsTo(b, a):
		return a
	}
	return types.NoTypeID
}
