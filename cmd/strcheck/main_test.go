package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"strcheck/internal/diagfmt"
	"strcheck/internal/lint"
	"strcheck/internal/observ"
	"strcheck/internal/project"
)

const sampleSrc = `class Money
{
    public int Amount;
}

class Program
{
    static string M()
    {
        return "total: " + new Money();
    }
}
`

// resetFlags returns every flag of the tree to its default; the command
// variables are package globals shared between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.ExecuteContext(context.Background())
	traceCleanup()
	return out.String(), errOut.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Program.cs"), []byte(sampleSrc), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    switchMode
		wantErr bool
	}{
		{"", switchAuto, false},
		{"auto", switchAuto, false},
		{" ON ", switchOn, false},
		{"off", switchOff, false},
		{"sometimes", switchAuto, true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("readUIMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("readUIMode(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if _, err := parseSwitch("color", "always"); err == nil || !strings.Contains(err.Error(), "--color") {
		t.Errorf("parseSwitch error = %v", err)
	}
	if !shouldUseTUI(switchOn, nil) || shouldUseTUI(switchOff, nil) {
		t.Errorf("explicit ui modes ignored")
	}
}

func TestCheckShortFormat(t *testing.T) {
	dir := writeSample(t)
	out, _, err := execute(t, "", "check", "--ui", "off", "--no-cache", "--format", "short", "--path-mode", "basename", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := "warning STR4001 Program.cs:10:28 Expression of type 'Money' will be implicitly converted to a string, but does not override ToString()"
	if !strings.Contains(out, want) {
		t.Fatalf("missing finding:\nwant: %s\ngot:\n%s", want, out)
	}
}

func TestCheckExitStatus(t *testing.T) {
	dir := writeSample(t)
	_, _, err := execute(t, "", "check", "--ui", "off", "--no-cache", "--warnings-as-errors", "--format", "short", dir)
	if !errors.Is(err, errFindings) {
		t.Fatalf("want errFindings, got %v", err)
	}

	out, _, err := execute(t, "", "check", "--ui", "off", "--no-cache", "--disable", "implicit-concatenation", dir)
	if err != nil {
		t.Fatalf("check with disabled rule: %v", err)
	}
	if !strings.Contains(out, "1 file checked: 0 errors, 0 warnings") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	if _, _, err := execute(t, "", "check", "--ui", "off", "--disable", "nope", dir); err == nil || errors.Is(err, errFindings) {
		t.Errorf("unknown rule accepted: %v", err)
	}
}

func TestCheckJSONFromStdin(t *testing.T) {
	out, _, err := execute(t, sampleSrc, "check", "--ui", "off", "--format", "json", "-")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var payload diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if payload.Count != 1 || payload.Diagnostics[0].Code != "STR4001" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCheckHonoursConfig(t *testing.T) {
	dir := writeSample(t)
	cfg := "[rules]\ndisable = [\"STR4001\"]\n"
	if err := os.WriteFile(filepath.Join(dir, project.ConfigFileName), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "", "check", "--ui", "off", "--no-cache", "--format", "short", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if strings.Contains(out, "STR4001") {
		t.Errorf("rule disabled in %s still reported:\n%s", project.ConfigFileName, out)
	}
}

func TestRulesJSON(t *testing.T) {
	out, _, err := execute(t, "", "rules", "--format", "json")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	var rules []ruleJSON
	if err := json.Unmarshal([]byte(out), &rules); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(rules) != 5 || rules[0].Code != "STR4001" || rules[4].ID != "output-argument" {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}

func TestRulesText(t *testing.T) {
	var buf bytes.Buffer
	if err := renderRulesText(&buf, lint.Descriptors()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "SEVERITY") {
		t.Errorf("header missing:\n%s", out)
	}
	for _, d := range lint.Descriptors() {
		if !strings.Contains(out, d.Code.ID()) || !strings.Contains(out, string(d.ID)) {
			t.Errorf("rule %s missing:\n%s", d.ID, out)
		}
	}
}

func TestInitWritesConfigOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	out, _, err := execute(t, "", "init", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, project.ConfigFileName) {
		t.Errorf("unexpected output %q", out)
	}
	if _, _, err := project.Load(dir); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if _, _, err := execute(t, "", "init", dir); err == nil {
		t.Errorf("second init must fail")
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "", "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "strcheck" || payload.GitCommit == "" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestSummaryAndWatchFilters(t *testing.T) {
	if got := plural(1, "file", "files"); got != "file" {
		t.Errorf("plural(1) = %q", got)
	}
	for path, want := range map[string]bool{
		"src/A.cs":       true,
		"src/B.CS":       true,
		"strcheck.toml":  true,
		"README.md":      false,
		"obj/project.cs": true,
	} {
		if got := watchedFile(path); got != want {
			t.Errorf("watchedFile(%q) = %v", path, got)
		}
	}
	if !skippedDir("/x/bin") || skippedDir("/x/src") {
		t.Errorf("skippedDir misclassifies")
	}
}

func TestPrintTimings(t *testing.T) {
	var buf bytes.Buffer
	printTimings(&buf, observ.Report{
		TotalMS: 3,
		Phases: []observ.PhaseReport{
			{Name: "parse", DurationMS: 1, Note: "files=2"},
			{Name: "lint", DurationMS: 2, Count: 2},
		},
	})
	want := "parse       1.0 ms  (files=2)\nlint        2.0 ms  x2\ntotal       3.0 ms\n"
	if buf.String() != want {
		t.Errorf("printTimings:\n%q\nwant\n%q", buf.String(), want)
	}
	printTimings(io.Discard, observ.Report{})
}

func TestTokenizeStdin(t *testing.T) {
	out, _, err := execute(t, `s = "x";`, "tokenize", "--format", "json", "-")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var toks []diagfmt.TokenOutput
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatal(err)
	}
	if len(toks) != 5 || toks[2].Kind != "StringLit" || toks[2].Start.Col != 5 {
		t.Errorf("unexpected tokens: %+v", toks)
	}

	_, errOut, err := execute(t, `s = "x`, "tokenize", "-")
	if !errors.Is(err, errFindings) || !strings.Contains(errOut, "LEX") {
		t.Errorf("unterminated string: err=%v stderr=%q", err, errOut)
	}
}

func TestParseStdinJSON(t *testing.T) {
	out, _, err := execute(t, sampleSrc, "parse", "--format", "json", "--types", "-")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var root diagfmt.ASTNodeOutput
	if err := json.Unmarshal([]byte(out), &root); err != nil {
		t.Fatal(err)
	}
	if root.Type != "File" || len(root.Children) == 0 {
		t.Errorf("unexpected root: %+v", root)
	}
	if _, _, err := execute(t, "", "parse", "--format", "yaml", "-"); err == nil {
		t.Errorf("unknown format accepted")
	}
}
