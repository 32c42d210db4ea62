// Package lint finds places where a value is turned into text although its
// type never overrides ToString.
//
// The engine is read-only with respect to the syntax tree and the type
// model it receives; every detector answers from the unit alone.
package lint

import (
	"strcheck/internal/ast"
	"strcheck/internal/types"
)

// Unit is one bound source file.
type Unit interface {
	Syntax() *ast.Builder
	File() ast.FileID
	// TypeOf returns the static type of expr or types.NoTypeID when unknown.
	TypeOf(expr ast.ExprID) types.TypeID
	Types() TypeSystem
}

// TypeSystem is the part of the type model detectors query.
type TypeSystem interface {
	Builtins() types.Builtins
	Base(t types.TypeID) types.TypeID
	// DeclaresMember looks at t's own members only.
	DeclaresMember(t types.TypeID, name string) bool
	IsReference(t types.TypeID) bool
	ArrayElem(t types.TypeID) types.TypeID
	DerivesFrom(t, ancestor types.TypeID) bool
	Display(t types.TypeID) string
}

var _ TypeSystem = (*types.Interner)(nil)
