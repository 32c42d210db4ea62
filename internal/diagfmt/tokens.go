package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"strcheck/internal/source"
	"strcheck/internal/token"
)

// TokenOutput is one token of a tokenize dump.
type TokenOutput struct {
	Kind    string         `json:"kind"`
	Text    string         `json:"text,omitempty"`
	Span    source.Span    `json:"span"`
	Start   source.LineCol `json:"start"`
	End     source.LineCol `json:"end"`
	Leading []string       `json:"leading,omitempty"`
}

// TokenDump converts tokens up to and including EOF.
func TokenDump(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		t := TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span}
		t.Start, t.End = fs.Resolve(tok.Span)
		for _, tr := range tok.Leading {
			t.Leading = append(t.Leading, tr.Kind.String())
		}
		out = append(out, t)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty пишет по строке на токен:
//
//	1: Ident           "a" at 1:1-1:2
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var b strings.Builder
	for i, t := range TokenDump(tokens, fs) {
		fmt.Fprintf(&b, "%3d: %-15s", i+1, t.Kind)
		if t.Text != "" {
			fmt.Fprintf(&b, " %q", t.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", t.Start.Line, t.Start.Col, t.End.Line, t.End.Col)
		if len(t.Leading) > 0 {
			b.WriteString(" (leading: " + strings.Join(t.Leading, ", ") + ")")
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(TokenDump(tokens, fs))
}
