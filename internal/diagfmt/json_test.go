package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"strcheck/internal/diag"
)

func TestJSONBasic(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("unexpected count: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Severity != "warning" || d.Code != "STR4001" || d.Rule != "implicit-concatenation" || d.Location.File != "Test0.cs" {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
	if d.Location.StartLine != 3 || d.Location.StartCol != 14 || d.Location.EndCol != 21 {
		t.Errorf("unexpected location: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "declared here" {
		t.Errorf("unexpected notes: %+v", d.Notes)
	}
}

func TestJSONWithoutPositionsAndLimit(t *testing.T) {
	fs, bag := sampleBag(t)
	bag.Add(bag.Items()[0])
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 2 || len(out.Diagnostics) != 1 {
		t.Fatalf("Max not applied: %+v", out)
	}
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartByte == 0 {
		t.Errorf("positions should be omitted: %+v", loc)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Errorf("notes should be omitted")
	}
}

func TestJSONRuleOnlyForLintCodes(t *testing.T) {
	fs, bag := sampleBag(t)
	bag.Add(diag.New(diag.SevError, diag.SynExpectSemicolon, bag.Items()[0].Primary, "expected ';'"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if len(out.Diagnostics) != 2 {
		t.Fatalf("unexpected count: %+v", out)
	}
	for _, d := range out.Diagnostics {
		switch d.Code {
		case "STR4001":
			if d.Rule != "implicit-concatenation" {
				t.Errorf("lint finding without rule: %+v", d)
			}
		default:
			if d.Rule != "" {
				t.Errorf("syntax error carries rule %q", d.Rule)
			}
		}
	}
}
