package diag

import (
	"fmt"
	"sort"
	"strings"

	"strcheck/internal/source"
)

type lineEntry struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders one line per diagnostic as
// "<severity> <CODE> <path>:<line>:<col> <message>", sorted deterministically.
// Notes are rendered as extra "note" lines when includeNotes is set.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatLines(diags, fs, includeNotes, source.PathRelative)
}

// FormatShortDiagnostics is the CLI "short" format; pathMode picks how paths are printed.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool, pathMode string) string {
	return formatLines(diags, fs, includeNotes, pathMode)
}

func formatLines(diags []Diagnostic, fs *source.FileSet, includeNotes bool, pathMode string) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	entries := make([]lineEntry, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if e, ok := resolveEntry(fs, d.Primary, pathMode); ok {
			e.Severity = d.Severity.Label()
			e.Code = d.Code.ID()
			e.Message = sanitizeMessage(d.Message)
			entries = append(entries, e)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if e, ok := resolveEntry(fs, n.Span, pathMode); ok {
				e.Severity = "note"
				e.Code = d.Code.ID()
				e.Message = sanitizeMessage(n.Msg)
				entries = append(entries, e)
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})

	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s %s:%d:%d %s", e.Severity, e.Code, e.Path, e.Line, e.Column, e.Message)
	}
	return sb.String()
}

func resolveEntry(fs *source.FileSet, span source.Span, pathMode string) (lineEntry, bool) {
	f := fs.Get(span.File)
	if f == nil {
		return lineEntry{}, false
	}
	start := f.Position(span.Start)
	path := strings.TrimPrefix(f.FormatPath(pathMode, fs.BaseDir()), "./")
	return lineEntry{Path: path, Line: start.Line, Column: start.Col}, true
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
