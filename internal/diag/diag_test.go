package diag

import (
	"testing"

	"strcheck/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("Test0.cs", []byte("class A\n{\n}\n"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     StrImplicitConcatenation,
			Message:  "second",
			Primary:  source.Span{File: file, Start: 8, End: 9},
		},
		{
			Severity: SevError,
			Code:     SynExpectSemicolon,
			Message:  "first line\nwrapped",
			Primary:  source.Span{File: file, Start: 0, End: 5},
			Notes:    []Note{{Span: source.Span{File: file, Start: 10, End: 11}, Msg: "closing brace"}},
		},
	}

	want := "error SYN2002 Test0.cs:1:1 first line wrapped\n" +
		"warning STR4001 Test0.cs:2:1 second\n" +
		"note SYN2002 Test0.cs:3:1 closing brace"
	if got := FormatGoldenDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected golden output:\nwant:\n%s\ngot:\n%s", want, got)
	}
	if got := FormatGoldenDiagnostics(nil, fs, true); got != "" {
		t.Errorf("empty input should render empty string, got %q", got)
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	b := NewBag(3)
	sp := func(start uint32) source.Span { return source.Span{Start: start, End: start + 1} }
	b.Add(New(SevWarning, StrExplicitConversion, sp(20), "b"))
	b.Add(New(SevError, SynUnexpectedToken, sp(5), "a"))
	b.Add(New(SevWarning, StrExplicitConversion, sp(20), "b"))
	if b.Add(New(SevInfo, ObsTimings, sp(0), "over")) {
		t.Fatalf("bag accepted a diagnostic past its limit")
	}
	if b.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", b.Dropped())
	}

	b.Dedup()
	b.Sort()
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("len after dedup = %d, want 2", len(items))
	}
	if items[0].Code != SynUnexpectedToken || items[1].Code != StrExplicitConversion {
		t.Errorf("unexpected order: %v, %v", items[0].Code, items[1].Code)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Errorf("expected both errors and warnings")
	}

	b.Filter(func(d Diagnostic) bool { return d.Code.IsLint() })
	if b.Len() != 1 || b.HasErrors() {
		t.Errorf("Filter kept %d items", b.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	rb := ReportWarning(BagReporter{Bag: bag}, StrOutputArgument, source.Span{}, "msg").
		WithNote(source.Span{Start: 1, End: 2}, "here")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit stored %d diagnostics, want 1", bag.Len())
	}
	if got := bag.Items()[0]; got.Severity != SevWarning || len(got.Notes) != 1 {
		t.Errorf("unexpected diagnostic %+v", got)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		r.Report(StrFormatArgument, SevWarning, source.Span{Start: 4, End: 9}, "same", nil)
	}
	r.Report(StrFormatArgument, SevWarning, source.Span{Start: 4, End: 9}, "other", nil)
	if bag.Len() != 2 {
		t.Errorf("DedupReporter forwarded %d, want 2", bag.Len())
	}
}

func TestSeverityNames(t *testing.T) {
	if SevWarning.Label() != "warning" || SevError.String() != "ERROR" || Severity(9).Label() != "info" {
		t.Errorf("unexpected severity names")
	}
	if SevWarning.Escalate() != SevError || SevInfo.Escalate() != SevInfo {
		t.Errorf("Escalate only promotes warnings")
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexBadNumber:       "LEX1004",
		SynExpectSemicolon: "SYN2002",
		SemaUnresolvedType: "SEM3002",
		StrOutputArgument:  "STR4005",
		IOLoadFileError:    "IO5001",
		CfgUnknownRule:     "CFG6002",
		ObsTimings:         "OBS7001",
		Code(42):           "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("Code(%d).ID() = %q, want %q", c, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unknown code title = %q", Code(9999).Title())
	}
}
