package sema

import (
	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/types"
)

// Options configure the binder.
type Options struct {
	Reporter diag.Reporter
	Types    *types.Interner
	// ImplicitUsings are namespaces imported into every file, as SDK-style
	// projects do. Nil means System and System.IO; an empty slice disables them.
	ImplicitUsings []string
}

// Result stores semantic artefacts produced by the binder.
type Result struct {
	Builder      *ast.Builder
	TypeInterner *types.Interner
	// ExprTypes holds the static type of every expression the binder could
	// type; missing entries mean "unknown".
	ExprTypes map[ast.ExprID]types.TypeID
	// Decls maps each type declaration to its nominal type.
	Decls map[ast.ItemID]types.TypeID
}

// TypeOf returns the recorded type of expr or NoTypeID.
func (r *Result) TypeOf(expr ast.ExprID) types.TypeID {
	if r == nil {
		return types.NoTypeID
	}
	return r.ExprTypes[expr]
}

var defaultImplicitUsings = []string{"System", "System.IO"}

// Check binds a single file.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	return CheckFiles(builder, []ast.FileID{fileID}, opts)
}

// CheckFiles binds several files of one builder as a single compilation, so
// types declared in one file are visible in all others.
func CheckFiles(builder *ast.Builder, files []ast.FileID, opts Options) Result {
	res := Result{
		Builder:   builder,
		ExprTypes: make(map[ast.ExprID]types.TypeID),
		Decls:     make(map[ast.ItemID]types.TypeID),
	}
	if opts.Types != nil {
		res.TypeInterner = opts.Types
	} else {
		res.TypeInterner = types.NewInterner()
	}
	if builder == nil || len(files) == 0 {
		return res
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	implicit := opts.ImplicitUsings
	if implicit == nil {
		implicit = defaultImplicitUsings
	}

	tc := typeChecker{
		builder:    builder,
		files:      files,
		reporter:   reporter,
		types:      res.TypeInterner,
		builtins:   res.TypeInterner.Builtins(),
		result:     &res,
		implicit:   implicit,
		byItem:     make(map[ast.ItemID]*typeDecl),
		namespaces: map[string]bool{"System": true, "System.IO": true, "System.Text": true},
		nsExprs:    make(map[ast.ExprID]string),
	}
	tc.run()
	return res
}

type typeChecker struct {
	builder  *ast.Builder
	files    []ast.FileID
	reporter diag.Reporter
	types    *types.Interner
	builtins types.Builtins
	result   *Result
	implicit []string

	decls  []*typeDecl
	byItem map[ast.ItemID]*typeDecl
	// namespaces holds every known namespace and each of its dotted prefixes.
	namespaces map[string]bool
	// nsExprs records identifier and member expressions that name a namespace.
	nsExprs map[ast.ExprID]string

	// состояние тела текущего члена
	cur    *typeDecl
	scopes scopeStack
}

func (tc *typeChecker) run() {
	for _, f := range tc.files {
		file := tc.builder.File(f)
		if file == nil {
			continue
		}
		usings := make([]string, 0, len(file.Usings))
		for _, u := range file.Usings {
			usings = append(usings, u.Name)
		}
		for _, item := range file.Items {
			tc.declareItem(item, "", usings, nil)
		}
	}
	tc.resolveHierarchy()
	tc.declareMembers()
	for _, d := range tc.decls {
		tc.bindBodies(d)
	}
}

func (tc *typeChecker) record(id ast.ExprID, t types.TypeID) types.TypeID {
	if t == tc.builtins.Void {
		// выражение типа void не имеет значения
		t = types.NoTypeID
	}
	if id.IsValid() && t != types.NoTypeID {
		tc.result.ExprTypes[id] = t
	}
	return t
}
