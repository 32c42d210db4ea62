package ast

import (
	"testing"

	"strcheck/internal/source"
)

func sp(a, b uint32) source.Span { return source.Span{Start: a, End: b} }

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 {
		t.Fatalf("Allocate returned %d", id)
	}
	if a.Get(2) != nil {
		t.Errorf("out of range index must be nil")
	}
}

func TestWalkExprsPreOrder(t *testing.T) {
	b := NewBuilder(Hints{})
	e := b.Exprs

	// "" + new T()  inside  Console.WriteLine($"{x}")
	lit := e.NewLiteral(sp(0, 2), LitString, `""`)
	newT := e.NewNew(sp(5, 12), NewExpr{Type: TypeExpr{Name: []string{"T"}}, HasArgs: true})
	add := e.NewBinary(sp(0, 12), OpAdd, lit, newT)

	x := e.NewIdent(sp(30, 31), "x")
	interp := e.NewInterp(sp(27, 33), InterpExpr{Parts: []InterpPart{{Hole: true, Span: sp(30, 31), Expr: x}}})
	console := e.NewIdent(sp(14, 21), "Console")
	member := e.NewMember(sp(14, 31), MemberExpr{Target: console, Name: "WriteLine"})
	call := e.NewCall(sp(14, 34), member, []ExprID{interp})

	body := b.Stmts.NewBlock(sp(0, 40), []StmtID{
		b.Stmts.NewLocal(sp(0, 13), LocalStmt{Type: TypeExpr{Var: true}, Decls: []Declarator{{Name: "s", Init: add}}}),
		b.Stmts.NewExpr(sp(14, 35), call),
	})
	m := b.NewMember(Member{Kind: MemberMethod, Name: "Main", Body: body})
	typ := b.Items.NewType(sp(0, 50), TypeItem{Name: "Program", Members: []MemberID{m}})
	ns := b.Items.NewNamespace(sp(0, 60), NamespaceItem{Name: "App", Items: []ItemID{typ}})
	file := b.NewFile(sp(0, 60))
	b.File(file).Items = append(b.File(file).Items, ns)

	var got []ExprKind
	b.WalkExprs(file, func(_ ExprID, expr *Expr) bool {
		got = append(got, expr.Kind)
		return true
	})
	want := []ExprKind{ExprBinary, ExprLit, ExprNew, ExprCall, ExprMember, ExprIdent, ExprInterp, ExprIdent}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d: %v, want %v", i, got[i], want[i])
		}
	}

	var pruned int
	b.WalkExprs(file, func(_ ExprID, expr *Expr) bool {
		pruned++
		return expr.Kind != ExprCall
	})
	if pruned != 4 {
		t.Errorf("pruned walk visited %d nodes, want 4", pruned)
	}
}

func TestUnparenAndTypeExpr(t *testing.T) {
	b := NewBuilder(Hints{})
	inner := b.Exprs.NewIdent(sp(2, 3), "a")
	outer := b.Exprs.NewGroup(sp(0, 5), b.Exprs.NewGroup(sp(1, 4), inner))
	if b.Exprs.Unparen(outer) != inner {
		t.Errorf("Unparen did not reach the identifier")
	}

	te := TypeExpr{Name: []string{"System", "Object"}, Rank: 2}
	if te.String() != "System.Object[][]" {
		t.Errorf("String = %q", te.String())
	}
	if te.Elem().Rank != 1 {
		t.Errorf("Elem rank = %d", te.Elem().Rank)
	}
}
