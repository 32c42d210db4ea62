package lint

import (
	"strcheck/internal/ast"
	"strcheck/internal/types"
)

// detector inspects one expression; it is called for every node of the unit.
type detector func(p *pass, id ast.ExprID, e *ast.Expr)

var detectors = map[RuleID]detector{
	RuleConcatenation: detectConcatenation,
	RuleExplicitCall:  detectExplicitCall,
	RuleFormatArg:     detectFormatArgs,
	RuleInterpolation: detectInterpolation,
	RuleOutputArg:     detectOutputArgs,
}

// "text" + x, x + "text"
func detectConcatenation(p *pass, id ast.ExprID, e *ast.Expr) {
	if e.Kind != ast.ExprBinary {
		return
	}
	bin, ok := p.exprs.Binary(id)
	if !ok || bin.Op != ast.OpAdd {
		return
	}
	left, right := p.unit.TypeOf(bin.Left), p.unit.TypeOf(bin.Right)
	switch {
	case p.cls.IsText(left) && p.concatenated(right):
		p.report(bin.Right, right)
	case p.cls.IsText(right) && p.concatenated(left):
		p.report(bin.Left, left)
	}
}

func (p *pass) concatenated(t types.TypeID) bool {
	return p.ts.IsReference(t) && p.cls.LacksOverriddenConversion(t)
}

// x.ToString() with a string result; the whole call is reported.
func detectExplicitCall(p *pass, id ast.ExprID, e *ast.Expr) {
	if e.Kind != ast.ExprCall {
		return
	}
	call, m, ok := p.memberCall(id)
	if !ok || m.Name != conversionMember || len(call.Args) != 0 {
		return
	}
	if !p.cls.IsText(p.unit.TypeOf(id)) {
		return
	}
	recv := p.unit.TypeOf(m.Target)
	if p.cls.LacksOverriddenConversion(recv) {
		p.report(id, recv)
	}
}

// string.Format(template, args...)
func detectFormatArgs(p *pass, id ast.ExprID, e *ast.Expr) {
	if e.Kind != ast.ExprCall {
		return
	}
	call, m, ok := p.memberCall(id)
	if !ok || m.Name != "Format" || !p.cls.IsText(p.unit.TypeOf(m.Target)) {
		return
	}
	p.checkVariadic(call.Args)
}

// $"...{x}..."
func detectInterpolation(p *pass, id ast.ExprID, e *ast.Expr) {
	if e.Kind != ast.ExprInterp {
		return
	}
	in, ok := p.exprs.Interp(id)
	if !ok {
		return
	}
	for _, h := range in.Holes() {
		p.checkSite(h)
	}
}

// Console.Write*/TextWriter.Write*(template, args...); a lone argument is
// the template itself.
func detectOutputArgs(p *pass, id ast.ExprID, e *ast.Expr) {
	if e.Kind != ast.ExprCall {
		return
	}
	call, m, ok := p.memberCall(id)
	if !ok || (m.Name != "Write" && m.Name != "WriteLine") {
		return
	}
	if !p.isTextSink(p.unit.TypeOf(m.Target)) {
		return
	}
	p.checkVariadic(call.Args)
}

func (p *pass) isTextSink(t types.TypeID) bool {
	if t == types.NoTypeID {
		return false
	}
	b := p.ts.Builtins()
	return t == b.Console || t == b.TextWriter || p.ts.DerivesFrom(t, b.TextWriter)
}
