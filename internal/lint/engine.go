package lint

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/trace"
)

// Options select the rules an Engine runs.
type Options struct {
	// Disabled lists rule ids or codes ("format-argument", "STR4003").
	// Unknown names are ignored; callers validate them with Lookup.
	Disabled []string
	// Parallel runs the detectors of one unit concurrently. Output order
	// does not change.
	Parallel bool
}

// Engine runs the enabled detectors over units. It holds no per-unit
// state and is safe for concurrent use.
type Engine struct {
	opts  Options
	rules []*Descriptor
}

func New(opts Options) *Engine {
	off := make(map[RuleID]bool, len(opts.Disabled))
	for _, name := range opts.Disabled {
		if d, ok := Lookup(name); ok {
			off[d.ID] = true
		}
	}
	e := &Engine{opts: opts}
	for i := range descriptors {
		if !off[descriptors[i].ID] {
			e.rules = append(e.rules, &descriptors[i])
		}
	}
	return e
}

// Rules returns the descriptors of the enabled rules in detector order.
func (e *Engine) Rules() []Descriptor {
	out := make([]Descriptor, 0, len(e.rules))
	for _, d := range e.rules {
		out = append(out, *d)
	}
	return out
}

// Run reports every finding of unit to r. Cancellation is checked before each
// detector pass; findings of finished passes are still reported and
// ctx.Err() is returned.
func (e *Engine) Run(ctx context.Context, unit Unit, r diag.Reporter) error {
	if unit == nil || unit.Syntax() == nil || len(e.rules) == 0 {
		return ctx.Err()
	}
	if r == nil {
		r = diag.NopReporter{}
	}
	ts := unit.Types()
	cls := NewClassifier(ts)
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	passes := make([]*pass, len(e.rules))
	for i, d := range e.rules {
		passes[i] = &pass{rule: d, unit: unit, exprs: unit.Syntax().Exprs, ts: ts, cls: cls}
	}

	if !e.opts.Parallel {
		for _, p := range passes {
			if err := ctx.Err(); err != nil {
				return err
			}
			runPass(tracer, parent, p)
			flush(r, p.found)
		}
		return nil
	}

	done := make([]bool, len(passes))
	var g errgroup.Group
	for i, p := range passes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			runPass(tracer, parent, p)
			done[i] = true
			return nil
		})
	}
	err := g.Wait()
	for i, p := range passes {
		if done[i] {
			flush(r, p.found)
		}
	}
	return err
}

func runPass(tracer trace.Tracer, parent uint64, p *pass) {
	span := trace.Begin(tracer, trace.ScopeFile, "lint:"+string(p.rule.ID), parent)
	det := detectors[p.rule.ID]
	p.unit.Syntax().WalkExprs(p.unit.File(), func(id ast.ExprID, e *ast.Expr) bool {
		det(p, id, e)
		return true
	})
	span.Attr("findings", strconv.Itoa(len(p.found))).End("")
}

func flush(r diag.Reporter, found []diag.Diagnostic) {
	for _, d := range found {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}
