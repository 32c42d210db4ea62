// Package testkit holds checks shared by parser and driver tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"strcheck/internal/ast"
	"strcheck/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed file:
// the file span lies within the content, every declaration lies within its
// parent (file, namespace or type), and no expression span is inverted or
// leaves the file span.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.File(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End < f.Span.Start || f.Span.End > lenContent {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}

	c := spanChecker{b: b, file: sf.ID}
	for _, it := range f.Items {
		if err := c.item(it, f.Span); err != nil {
			return err
		}
	}

	b.WalkExprs(fileID, func(id ast.ExprID, e *ast.Expr) bool {
		if err != nil {
			return false
		}
		switch {
		case e.Span.File != sf.ID:
			err = fmt.Errorf("expr %d span file mismatch: got=%d want=%d", id, e.Span.File, sf.ID)
		case e.Span.End < e.Span.Start:
			err = fmt.Errorf("expr %d has inverted span %v", id, e.Span)
		case !f.Span.Contains(e.Span):
			err = fmt.Errorf("expr %d span %v is outside file span %v", id, e.Span, f.Span)
		}
		return err == nil
	})
	return err
}

type spanChecker struct {
	b    *ast.Builder
	file source.FileID
}

func (c spanChecker) within(what string, sp, parent source.Span) error {
	if sp.File != c.file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, c.file)
	}
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", what, sp)
	}
	if !parent.Contains(sp) {
		return fmt.Errorf("%s span %v is outside %v", what, sp, parent)
	}
	return nil
}

func (c spanChecker) item(id ast.ItemID, parent source.Span) error {
	item := c.b.Items.Get(id)
	if item == nil {
		return fmt.Errorf("nil item for id=%d", id)
	}
	if err := c.within("item", item.Span, parent); err != nil {
		return err
	}
	if ns, ok := c.b.Items.Namespace(id); ok {
		for _, child := range ns.Items {
			if err := c.item(child, item.Span); err != nil {
				return err
			}
		}
		return nil
	}
	td, ok := c.b.Items.Type(id)
	if !ok {
		return nil
	}
	for _, mid := range td.Members {
		m := c.b.Member(mid)
		if m == nil {
			return fmt.Errorf("nil member for id=%d in %s", mid, td.Name)
		}
		if err := c.within("member "+m.Name, m.Span, item.Span); err != nil {
			return err
		}
		if m.Kind == ast.MemberNested {
			if err := c.item(m.Nested, m.Span); err != nil {
				return err
			}
		}
	}
	return nil
}
