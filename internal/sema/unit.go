package sema

import (
	"strcheck/internal/ast"
	"strcheck/internal/lint"
	"strcheck/internal/types"
)

// FileUnit is the read-only view of one bound file that the lint engine runs on.
type FileUnit struct {
	res  *Result
	file ast.FileID
}

var _ lint.Unit = FileUnit{}

// Unit returns the lint view of file. The Result must outlive the unit.
func (r *Result) Unit(file ast.FileID) FileUnit {
	return FileUnit{res: r, file: file}
}

func (u FileUnit) Syntax() *ast.Builder { return u.res.Builder }

func (u FileUnit) File() ast.FileID { return u.file }

func (u FileUnit) TypeOf(expr ast.ExprID) types.TypeID { return u.res.TypeOf(expr) }

func (u FileUnit) Types() lint.TypeSystem { return u.res.TypeInterner }
