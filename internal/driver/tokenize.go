package driver

import (
	"strcheck/internal/diag"
	"strcheck/internal/lexer"
	"strcheck/internal/source"
	"strcheck/internal/token"
)

type TokenizeOptions struct {
	MaxDiagnostics int
	// Trivia keeps comments and whitespace attached to tokens.
	Trivia bool
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path. Lexer errors land in the result bag;
// only a read failure is returned as an error.
func Tokenize(path string, opts TokenizeOptions) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(fs, id, opts), nil
}

// TokenizeSource lexes in-memory content registered as name.
func TokenizeSource(name string, content []byte, opts TokenizeOptions) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(fs, fs.AddVirtual(name, content), opts)
}

func tokenizeFile(fs *source.FileSet, id source.FileID, opts TokenizeOptions) *TokenizeResult {
	res := &TokenizeResult{FileSet: fs, File: fs.Get(id), Bag: diag.NewBag(opts.MaxDiagnostics)}
	res.Tokens = lexer.New(res.File, lexer.Options{
		Reporter:   diag.BagReporter{Bag: res.Bag},
		KeepTrivia: opts.Trivia,
	}).All()
	return res
}
