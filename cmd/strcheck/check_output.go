package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"strcheck/internal/diag"
	"strcheck/internal/diagfmt"
	"strcheck/internal/driver"
	"strcheck/internal/observ"
	"strcheck/internal/version"
)

func renderCheck(cmd *cobra.Command, out io.Writer, res *driver.CheckResult, flags checkFlags) error {
	switch flags.format {
	case "pretty":
		color, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		// тайминги печатаем таблицей в stderr, а не диагностикой
		res.Bag.Filter(func(d diag.Diagnostic) bool { return d.Code != diag.ObsTimings })
		diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     color,
			Context:   flags.context,
			PathMode:  flags.pathMode,
			ShowNotes: true,
		})
		if !flags.quiet {
			if res.Bag.Len() > 0 {
				fmt.Fprintln(out) //nolint:errcheck
			}
			fmt.Fprintln(out, summaryLine(res)) //nolint:errcheck
		}
		if flags.timings && res.Timings != nil {
			printTimings(cmd.ErrOrStderr(), *res.Timings)
		}
		return nil
	case "short":
		text := diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, true, flags.pathMode.String())
		if text == "" {
			return nil
		}
		_, err := io.WriteString(out, text+"\n")
		return err
	case "json":
		return diagfmt.JSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         flags.pathMode,
			IncludeNotes:     true,
		})
	case "sarif":
		return diagfmt.Sarif(out, res.Bag, res.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "strcheck",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	}
	return fmt.Errorf("unknown format %q", flags.format)
}

// summaryLine counts findings by severity, e.g.
// "3 files checked (1 cached): 0 errors, 2 warnings".
func summaryLine(res *driver.CheckResult) string {
	var errs, warns int
	for _, d := range res.Bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	s := fmt.Sprintf("%d %s checked", len(res.Files), plural(len(res.Files), "file", "files"))
	if res.CacheHits > 0 {
		s += fmt.Sprintf(" (%d cached)", res.CacheHits)
	}
	return fmt.Sprintf("%s: %d %s, %d %s", s,
		errs, plural(errs, "error", "errors"),
		warns, plural(warns, "warning", "warnings"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func printTimings(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	for _, p := range report.Phases {
		fmt.Fprintf(out, "%-6s %8.1f ms", p.Name, p.DurationMS) //nolint:errcheck
		if p.Count > 1 {
			fmt.Fprintf(out, "  x%d", p.Count) //nolint:errcheck
		}
		if p.Note != "" {
			fmt.Fprintf(out, "  (%s)", p.Note) //nolint:errcheck
		}
		fmt.Fprintln(out) //nolint:errcheck
	}
	fmt.Fprintf(out, "%-6s %8.1f ms\n", "total", report.TotalMS) //nolint:errcheck
}
