package diag

import "strcheck/internal/source"

// DedupReporter drops a report identical to an earlier one (code, severity,
// primary span and message; notes are ignored). Parser recovery can hit the
// same token more than once.
type DedupReporter struct {
	next Reporter
	seen map[reportKey]struct{}
}

type reportKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[reportKey]struct{}{}}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.next == nil {
		return
	}
	k := reportKey{code, sev, primary, msg}
	if _, dup := r.seen[k]; !dup {
		r.seen[k] = struct{}{}
		r.next.Report(code, sev, primary, msg, notes)
	}
}
