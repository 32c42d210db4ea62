package lexer

import (
	"strcheck/internal/diag"
	"strcheck/internal/source"
)

type Options struct {
	// Reporter may be nil; errors are then dropped and lexing continues.
	Reporter diag.Reporter
	// KeepTrivia attaches comments and whitespace to tokens as Leading.
	KeepTrivia bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
