package driver

import (
	"fortio.org/safecast"

	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/parser"
	"strcheck/internal/sema"
	"strcheck/internal/source"
)

type ParseOptions struct {
	MaxDiagnostics int
	// Bind runs semantic analysis so the dump can show expression types.
	Bind bool
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
	Sema    *sema.Result // nil unless Bind
}

// Parse parses the file at path on its own, without the project config.
func Parse(path string, opts ParseOptions) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseFile(fs, id, opts)
}

// ParseSource parses in-memory content registered as name.
func ParseSource(name string, content []byte, opts ParseOptions) (*ParseResult, error) {
	fs := source.NewFileSet()
	return parseFile(fs, fs.AddVirtual(name, content), opts)
}

func parseFile(fs *source.FileSet, id source.FileID, opts ParseOptions) (*ParseResult, error) {
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	res := &ParseResult{
		FileSet: fs,
		File:    fs.Get(id),
		Builder: ast.NewBuilder(ast.Hints{Files: 1}),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	reporter := diag.BagReporter{Bag: res.Bag}
	res.FileID = parser.ParseFile(res.File, res.Builder, parser.Options{Reporter: reporter, MaxErrors: maxErrors}).File
	if opts.Bind {
		s := sema.Check(res.Builder, res.FileID, sema.Options{Reporter: reporter})
		res.Sema = &s
	}
	return res, nil
}
