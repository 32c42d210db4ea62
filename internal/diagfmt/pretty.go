package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"strcheck/internal/diag"
	"strcheck/internal/source"
)

type palette struct {
	err, warn, info, note, path, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и заметки.
// Порядок как в bag.Items(); сортировку делает вызывающий.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w) //nolint:errcheck
		}
		prettyOne(w, &d, fs, opts, p)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n%s %d more diagnostics not shown\n", p.note.Sprint("note:"), n) //nolint:errcheck
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(strings.ToUpper(d.Severity.Label())), d.Code.ID(), d.Message) //nolint:errcheck
		return
	}
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n", //nolint:errcheck
		p.path.Sprintf("%s:%d:%d", displayPath(fs, f, opts.PathMode), start.Line, start.Col),
		p.severity(d.Severity).Sprint(strings.ToUpper(d.Severity.Label())),
		p.bold.Sprint(d.Code.ID()),
		d.Message,
	)
	excerpt(w, f, start, end, opts, p)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		if nf == nil {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg) //nolint:errcheck
			continue
		}
		ns, ne := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), //nolint:errcheck
			p.path.Sprintf("%s:%d:%d", displayPath(fs, nf, opts.PathMode), ns.Line, ns.Col), n.Msg)
		excerpt(w, nf, ns, ne, PrettyOpts{Width: opts.Width}, p)
	}
}

// excerpt печатает строки вокруг start с подчёркиванием. Многострочный span
// подчёркивается до конца первой строки.
func excerpt(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts, p palette) {
	if start.Line == 0 {
		return
	}
	ctx := max(opts.Context, 0)
	first := uint32(1)
	if start.Line > uint32(ctx) {
		first = start.Line - uint32(ctx)
	}
	last := min(start.Line+uint32(ctx), f.LineCount())
	gw := len(strconv.FormatUint(uint64(last), 10))

	fmt.Fprintf(w, "%s %s\n", strings.Repeat(" ", gw), p.gutter.Sprint("|")) //nolint:errcheck
	for ln := first; ln <= last; ln++ {
		text := expandTabs(f.GetLine(ln))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, opts.Width, "…")
		}
		fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprintf("%*d", gw, ln), p.gutter.Sprint("|"), text) //nolint:errcheck
		if ln != start.Line {
			continue
		}
		line := f.GetLine(ln)
		pad := columnWidth(line, start.Col)
		span := 1
		if end.Line == start.Line && end.Col > start.Col {
			span = columnWidth(line, end.Col) - pad
		} else if end.Line > start.Line {
			span = runewidth.StringWidth(expandTabs(line)) - pad
		}
		span = max(span, 1)
		marker := "^" + strings.Repeat("~", span-1)
		fmt.Fprintf(w, "%s %s %s%s\n", strings.Repeat(" ", gw), p.gutter.Sprint("|"), //nolint:errcheck
			strings.Repeat(" ", pad), p.caret.Sprint(marker))
	}
}

// columnWidth — ширина на экране префикса строки до 1-based колонки col
// (в единицах UTF-16, как в source.LineCol).
func columnWidth(line string, col uint32) int {
	if col <= 1 {
		return 0
	}
	n := source.UTF16Prefix(line, int(col)-1)
	return runewidth.StringWidth(expandTabs(line[:n]))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
