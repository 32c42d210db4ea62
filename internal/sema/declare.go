package sema

import (
	"strings"

	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/types"
)

type typeDecl struct {
	item ast.ItemID
	node *ast.TypeItem
	id   types.TypeID
	// ns is the namespace of the outermost enclosing type.
	ns     string
	usings []string
	outer  *typeDecl
}

func joinNS(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "." + name
}

func (tc *typeChecker) addNamespace(name string) {
	for name != "" {
		tc.namespaces[name] = true
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			return
		}
		name = name[:i]
	}
}

func (tc *typeChecker) declareItem(id ast.ItemID, ns string, usings []string, outer *typeDecl) {
	if nsItem, ok := tc.builder.Items.Namespace(id); ok {
		full := joinNS(ns, nsItem.Name)
		tc.addNamespace(full)
		inner := usings
		if len(nsItem.Usings) > 0 {
			inner = append(append([]string(nil), usings...), usingNames(nsItem.Usings)...)
		}
		for _, child := range nsItem.Items {
			tc.declareItem(child, full, inner, outer)
		}
		return
	}
	node, ok := tc.builder.Items.Type(id)
	if !ok || node.Name == "" {
		return
	}

	kind := nominalKind(node.Kind)
	info := types.NominalInfo{Name: node.Name, Namespace: ns, Decl: node.NameSpan}
	if outer != nil {
		info.Outer = outer.id
	}
	qualified := joinNS(ns, node.Name)
	if outer != nil {
		qualified = tc.types.QualifiedName(outer.id) + "." + node.Name
	}

	d := &typeDecl{item: id, node: node, ns: ns, usings: usings, outer: outer}
	if prev, exists := tc.types.FindQualified(qualified); exists && !tc.types.IsLibrary(prev) {
		prevInfo, _ := tc.types.Nominal(prev)
		if node.Modifiers.Has(ast.ModPartial) && tc.types.KindOf(prev) == kind {
			// partial: все части делят один тип
			d.id = prev
		} else {
			diag.ReportError(tc.reporter, diag.SemaDuplicateType, node.NameSpan,
				"type '"+qualified+"' is already declared").
				WithNote(prevInfo.Decl, "previous declaration").Emit()
			return
		}
	} else {
		d.id = tc.types.RegisterNominal(kind, info)
	}

	tc.decls = append(tc.decls, d)
	tc.byItem[id] = d
	tc.result.Decls[id] = d.id
	for _, mid := range node.Members {
		if m := tc.builder.Member(mid); m != nil && m.Kind == ast.MemberNested {
			tc.declareItem(m.Nested, ns, usings, d)
		}
	}
}

func usingNames(us []ast.Using) []string {
	out := make([]string, 0, len(us))
	for _, u := range us {
		out = append(out, u.Name)
	}
	return out
}

func nominalKind(k ast.TypeDeclKind) types.Kind {
	switch k {
	case ast.TypeStruct:
		return types.KindStruct
	case ast.TypeInterface:
		return types.KindInterface
	case ast.TypeEnum:
		return types.KindEnum
	}
	return types.KindClass
}

// resolveHierarchy sets default bases, resolves base lists and breaks cycles.
func (tc *typeChecker) resolveHierarchy() {
	b := tc.builtins
	for _, d := range tc.decls {
		info, _ := tc.types.Nominal(d.id)
		if info.Base == types.NoTypeID {
			switch tc.types.KindOf(d.id) {
			case types.KindClass:
				info.Base = b.Object
			case types.KindStruct:
				info.Base = b.ValueType
			case types.KindEnum:
				info.Base = b.Enum
			}
		}
		explicitBase := false
		for _, te := range d.node.Bases {
			bt := tc.resolveBaseType(te, d)
			if bt == types.NoTypeID {
				continue
			}
			switch tc.types.KindOf(bt) {
			case types.KindInterface:
				tc.types.AddInterface(d.id, bt)
				continue
			case types.KindArray:
				tc.reportBase(diag.SemaBaseNotClass, te, "array type '"+tc.types.Display(bt)+"' cannot be a base type")
				continue
			}
			switch tc.types.KindOf(d.id) {
			case types.KindStruct:
				tc.reportBase(diag.SemaStructInherits, te, "struct '"+d.node.Name+"' cannot inherit from '"+tc.types.Display(bt)+"'")
			case types.KindInterface:
				tc.reportBase(diag.SemaBaseNotClass, te, "interface '"+d.node.Name+"' can only inherit interfaces")
			case types.KindClass:
				switch {
				case tc.types.KindOf(bt) != types.KindClass:
					tc.reportBase(diag.SemaBaseNotClass, te, "'"+tc.types.Display(bt)+"' is not a class")
				case explicitBase:
					tc.reportBase(diag.SemaBaseNotClass, te, "class '"+d.node.Name+"' cannot have multiple base classes")
				default:
					explicitBase = true
					info.Base = bt
				}
			}
		}
	}
	for _, d := range tc.decls {
		if tc.inCycle(d.id) {
			diag.ReportError(tc.reporter, diag.SemaCyclicBase, d.node.NameSpan,
				"circular base type dependency involving '"+tc.types.QualifiedName(d.id)+"'").Emit()
			tc.types.SetBase(d.id, b.Object)
		}
	}
}

func (tc *typeChecker) reportBase(code diag.Code, te ast.TypeExpr, msg string) {
	diag.ReportError(tc.reporter, code, te.Span, msg).Emit()
}

func (tc *typeChecker) inCycle(id types.TypeID) bool {
	seen := map[types.TypeID]bool{id: true}
	for t := tc.types.Base(id); t != types.NoTypeID; t = tc.types.Base(t) {
		if t == id {
			return true
		}
		if seen[t] {
			return false
		}
		seen[t] = true
	}
	return false
}

// declareMembers records fields, properties, methods and constructors on the
// nominal types so member access can be typed before bodies are bound.
func (tc *typeChecker) declareMembers() {
	for _, d := range tc.decls {
		isEnum := d.node.Kind == ast.TypeEnum
		for _, mid := range d.node.Members {
			m := tc.builder.Member(mid)
			if m == nil || m.Kind == ast.MemberNested {
				continue
			}
			mem := types.Member{
				Name:   m.Name,
				Static: m.Modifiers.Has(ast.ModStatic) || m.Modifiers.Has(ast.ModConst),
				Decl:   m.NameSpan,
				Arity:  len(m.Params),
			}
			switch m.Kind {
			case ast.MemberField:
				mem.Kind = types.MemberField
			case ast.MemberProperty:
				mem.Kind = types.MemberProperty
			case ast.MemberMethod:
				mem.Kind = types.MemberMethod
			case ast.MemberCtor:
				mem.Kind = types.MemberCtor
			}
			switch {
			case isEnum:
				mem.Type = d.id
			case m.Kind != ast.MemberCtor:
				mem.Type = tc.resolveType(m.Type, d)
			}
			tc.types.AddMember(d.id, mem)
		}
	}
}
