package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"strcheck/internal/diagfmt"
	"strcheck/internal/driver"
	"strcheck/internal/lint"
	"strcheck/internal/project"
	"strcheck/internal/trace"
	"strcheck/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Check C# sources for ToString() conversions without override",
	Long: `Check parses every C# file under the given paths (default: the current
directory) as one compilation and reports values that are converted to a string
although their type inherits the default ToString(). Use "-" to read one file
from stdin.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max files linted in parallel (0=auto)")
	checkCmd.Flags().StringSlice("disable", nil, "rule ids or codes to disable (repeatable)")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop every cached result before checking")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("watch", false, "re-check when sources change")
	checkCmd.Flags().String("config", "", "use this strcheck.toml instead of searching for one")
	checkCmd.Flags().Int("context", 0, "lines of source context around each diagnostic")
	checkCmd.Flags().Bool("parallel-rules", false, "run the rules of one file concurrently")
	addProfileFlags(checkCmd)
}

// checkFlags holds the parsed command line of check.
type checkFlags struct {
	format           string
	jobs             int
	jobsSet          bool
	disable          []string
	warningsAsErrors bool
	pathMode         diagfmt.PathMode
	noCache          bool
	clearCache       bool
	ui               switchMode
	watch            bool
	configPath       string
	context          int
	parallelRules    bool
	maxDiagnostics   int
	maxSet           bool
	quiet            bool
	timings          bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var (
		f   checkFlags
		err error
	)
	flags := cmd.Flags()
	if f.format, err = flags.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	f.format = strings.ToLower(f.format)
	switch f.format {
	case "pretty", "short", "json", "sarif":
	default:
		return f, fmt.Errorf("unknown format %q (expected pretty|short|json|sarif)", f.format)
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.jobs < 0 {
		return f, fmt.Errorf("--jobs must not be negative (got %d)", f.jobs)
	}
	f.jobsSet = flags.Changed("jobs")
	if f.disable, err = flags.GetStringSlice("disable"); err != nil {
		return f, fmt.Errorf("failed to get disable flag: %w", err)
	}
	for _, name := range f.disable {
		if _, ok := lint.Lookup(name); !ok {
			return f, fmt.Errorf("unknown rule %q (see strcheck rules)", name)
		}
	}
	if f.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if f.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return f, err
	}
	if f.noCache, err = flags.GetBool("no-cache"); err != nil {
		return f, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if f.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return f, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.watch, err = flags.GetBool("watch"); err != nil {
		return f, fmt.Errorf("failed to get watch flag: %w", err)
	}
	if f.configPath, err = flags.GetString("config"); err != nil {
		return f, fmt.Errorf("failed to get config flag: %w", err)
	}
	if f.context, err = flags.GetInt("context"); err != nil {
		return f, fmt.Errorf("failed to get context flag: %w", err)
	}
	if f.parallelRules, err = flags.GetBool("parallel-rules"); err != nil {
		return f, fmt.Errorf("failed to get parallel-rules flag: %w", err)
	}

	root := cmd.Root().PersistentFlags()
	if f.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return f, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	f.maxSet = root.Changed("max-diagnostics")
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if f.timings, err = root.GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return f, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	stdin := len(args) == 1 && args[0] == "-"
	if stdin && flags.watch {
		return errors.New("--watch cannot read from stdin")
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	var cache *driver.DiskCache
	if !flags.noCache && !stdin {
		cache, err = driver.OpenDiskCache("strcheck")
		if err != nil {
			// без кэша проверка всё равно работает
			if !flags.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "strcheck: cache disabled: %v\n", err)
			}
			cache = nil
		}
	}
	if flags.clearCache && cache != nil {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	ctx := cmd.Context()
	if stdin {
		res, err := checkStdin(ctx, cmd.InOrStdin(), flags)
		if res != nil {
			if rerr := renderCheck(cmd, cmd.OutOrStdout(), res, flags); rerr != nil {
				return rerr
			}
		}
		if err != nil {
			return err
		}
		return exitStatus(res)
	}

	res, err := checkOnce(ctx, cmd, args, flags, cache)
	if err != nil && !flags.watch {
		return err
	}
	if !flags.watch {
		return exitStatus(res)
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "strcheck: %v\n", err)
	}
	return watchLoop(ctx, cmd, args, flags, cache)
}

// checkPlan is the resolved input of one check run.
type checkPlan struct {
	files []string
	opts  driver.CheckOptions
}

// resolveOptions merges strcheck.toml found from start with the command
// line; flags win over the file, and --disable adds to [rules].disable.
func resolveOptions(start string, flags checkFlags, cache *driver.DiskCache) (project.Config, driver.CheckOptions, error) {
	var (
		manifest *project.Manifest
		cfg      project.Config
		err      error
	)
	if flags.configPath != "" {
		manifest, err = project.LoadFile(flags.configPath)
		if err != nil {
			return cfg, driver.CheckOptions{}, err
		}
		cfg = manifest.Config
	} else {
		manifest, cfg, err = project.Load(start)
		if err != nil {
			return cfg, driver.CheckOptions{}, err
		}
	}

	if flags.jobsSet {
		cfg.Check.Jobs = flags.jobs
	}
	if flags.maxSet || !manifest.Defined("check", "max-diagnostics") {
		cfg.Check.MaxDiagnostics = flags.maxDiagnostics
	}
	cfg.Rules.Disable = append(append([]string(nil), cfg.Rules.Disable...), flags.disable...)
	cfg.Check.WarningsAsErrors = flags.warningsAsErrors || cfg.Check.WarningsAsErrors

	opts := driver.CheckOptions{
		Jobs:             cfg.Check.Jobs,
		MaxDiagnostics:   cfg.Check.MaxDiagnostics,
		Disabled:         cfg.Rules.Disable,
		WarningsAsErrors: cfg.Check.WarningsAsErrors,
		ParallelRules:    flags.parallelRules,
		Cache:            cache,
		Timings:          flags.timings,
		Manifest:         manifest,
	}
	if manifest != nil {
		opts.BaseDir = manifest.Root
	}
	return cfg, opts, nil
}

func planCheck(roots []string, flags checkFlags, cache *driver.DiskCache) (*checkPlan, error) {
	cfg, opts, err := resolveOptions(roots[0], flags, cache)
	if err != nil {
		return nil, err
	}
	files, err := driver.CollectFiles(roots, cfg.Check.Include, cfg.Check.Exclude)
	if err != nil {
		return nil, err
	}
	return &checkPlan{files: files, opts: opts}, nil
}

func checkOnce(ctx context.Context, cmd *cobra.Command, roots []string, flags checkFlags, cache *driver.DiskCache) (*driver.CheckResult, error) {
	plan, err := planCheck(roots, flags, cache)
	if err != nil {
		return nil, err
	}
	trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "plan", fmt.Sprintf("files=%d", len(plan.files)))

	var res *driver.CheckResult
	if flags.format == "pretty" && !flags.quiet && shouldUseTUI(flags.ui, os.Stderr) {
		res, err = ui.RunCheck(ctx, cmd.ErrOrStderr(), "strcheck "+strings.Join(roots, " "), plan.files, plan.opts)
	} else {
		res, err = driver.Check(ctx, plan.files, &plan.opts)
	}
	if res != nil {
		if rerr := renderCheck(cmd, cmd.OutOrStdout(), res, flags); rerr != nil {
			return res, rerr
		}
	}
	return res, err
}

func checkStdin(ctx context.Context, in io.Reader, flags checkFlags) (*driver.CheckResult, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	_, opts, err := resolveOptions(".", flags, nil)
	if err != nil {
		return nil, err
	}
	return driver.CheckSource(ctx, "<stdin>", content, &opts)
}

// exitStatus maps the findings to errFindings when any error was reported.
func exitStatus(res *driver.CheckResult) error {
	if res != nil && res.Bag.HasErrors() {
		return errFindings
	}
	return nil
}
