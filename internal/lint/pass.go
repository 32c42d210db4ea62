package lint

import (
	"fmt"

	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/types"
)

// pass is one detector run over one unit. Findings are buffered so that
// concurrent passes can be flushed in detector order.
type pass struct {
	rule  *Descriptor
	unit  Unit
	exprs *ast.Exprs
	ts    TypeSystem
	cls   *Classifier
	found []diag.Diagnostic
}

// report records expr as a stringification site of type t.
func (p *pass) report(expr ast.ExprID, t types.TypeID) {
	msg := fmt.Sprintf(p.rule.Message, p.ts.Display(t))
	p.found = append(p.found, diag.New(p.rule.Severity, p.rule.Code, p.exprs.Span(expr), msg))
}

// checkSite reports expr when its type falls back to the default ToString.
func (p *pass) checkSite(expr ast.ExprID) {
	if t := p.unit.TypeOf(expr); p.cls.LacksOverriddenConversion(t) {
		p.report(expr, t)
	}
}

// checkVariadic classifies the trailing arguments of a params object[] call.
// A single object[] argument is opaque and skipped; a single new[]{...}
// argument is checked element by element; otherwise every argument after the
// template is checked.
func (p *pass) checkVariadic(args []ast.ExprID) {
	if len(args) < 2 {
		return
	}
	if len(args) == 2 {
		if p.cls.IsObjectArray(p.unit.TypeOf(args[1])) {
			return
		}
		if arr, ok := p.exprs.ImplicitArray(args[1]); ok {
			for _, el := range arr.Elems {
				p.checkSite(el)
			}
			return
		}
	}
	for _, a := range args[1:] {
		p.checkSite(a)
	}
}

// memberCall splits "recv.Name(args)".
func (p *pass) memberCall(id ast.ExprID) (*ast.CallExpr, *ast.MemberExpr, bool) {
	call, ok := p.exprs.Call(id)
	if !ok {
		return nil, nil, false
	}
	m, ok := p.exprs.Member(p.exprs.Unparen(call.Target))
	if !ok || m.Name == "" {
		return nil, nil, false
	}
	return call, m, true
}
