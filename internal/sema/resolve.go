package sema

import (
	"strings"

	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/token"
	"strcheck/internal/types"
)

// resolveType resolves a type written inside the body of d (d may be nil for
// top-level contexts). Unresolved names are reported as info and yield NoTypeID.
func (tc *typeChecker) resolveType(te ast.TypeExpr, d *typeDecl) types.TypeID {
	return tc.resolveTypeAt(te, d, declNS(d), declUsings(d))
}

// resolveBaseType resolves a base-list entry of d; the base list is looked up
// from the scope enclosing d, not from d itself.
func (tc *typeChecker) resolveBaseType(te ast.TypeExpr, d *typeDecl) types.TypeID {
	return tc.resolveTypeAt(te, d.outer, d.ns, d.usings)
}

func declNS(d *typeDecl) string {
	if d == nil {
		return ""
	}
	return d.ns
}

func declUsings(d *typeDecl) []string {
	if d == nil {
		return nil
	}
	return d.usings
}

func (tc *typeChecker) resolveTypeAt(te ast.TypeExpr, at *typeDecl, ns string, usings []string) types.TypeID {
	if !te.IsValid() || te.Var {
		return types.NoTypeID
	}
	var t types.TypeID
	if te.Predef != token.Invalid {
		t, _ = tc.types.FindKeyword(te.Predef.String())
	} else {
		t = tc.lookupTypeName(te.Name, at, ns, usings)
		if t == types.NoTypeID {
			diag.ReportInfo(tc.reporter, diag.SemaUnresolvedType, te.Span,
				"type '"+strings.Join(te.Name, ".")+"' is not known; expressions of this type are not checked").Emit()
			return types.NoTypeID
		}
	}
	for range te.Rank {
		t = tc.types.ArrayOf(t)
	}
	return t
}

// lookupTypeName resolves a dotted type name: nested types of the enclosing
// types first, then the namespace chain, the global namespace and usings.
func (tc *typeChecker) lookupTypeName(segs []string, at *typeDecl, ns string, usings []string) types.TypeID {
	if len(segs) == 0 {
		return types.NoTypeID
	}
	name := strings.Join(segs, ".")
	for d := at; d != nil; d = d.outer {
		if t, ok := tc.types.FindQualified(tc.types.QualifiedName(d.id) + "." + name); ok {
			return t
		}
	}
	for n := ns; ; {
		if t, ok := tc.types.FindQualified(joinNS(n, name)); ok {
			return t
		}
		if n == "" {
			break
		}
		if i := strings.LastIndexByte(n, '.'); i >= 0 {
			n = n[:i]
		} else {
			n = ""
		}
	}
	for _, u := range usings {
		if t, ok := tc.types.FindQualified(u + "." + name); ok {
			return t
		}
	}
	for _, u := range tc.implicit {
		if t, ok := tc.types.FindQualified(u + "." + name); ok {
			return t
		}
	}
	return types.NoTypeID
}

// lookupNamespace reports whether name, relative to the namespace chain of
// the current context, is a known namespace; it returns the absolute name.
func (tc *typeChecker) lookupNamespace(name string) (string, bool) {
	for n := declNS(tc.cur); n != ""; {
		if full := n + "." + name; tc.namespaces[full] {
			return full, true
		}
		i := strings.LastIndexByte(n, '.')
		if i < 0 {
			break
		}
		n = n[:i]
	}
	if tc.namespaces[name] {
		return name, true
	}
	return "", false
}
