package driver

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"strcheck/internal/ast"
	"strcheck/internal/diag"
	"strcheck/internal/lint"
	"strcheck/internal/observ"
	"strcheck/internal/parser"
	"strcheck/internal/project"
	"strcheck/internal/sema"
	"strcheck/internal/source"
	"strcheck/internal/trace"
	"strcheck/internal/version"
)

// CheckOptions configure one check run.
type CheckOptions struct {
	// Jobs limits files linted in parallel; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps each file's bag; 0 means no limit.
	MaxDiagnostics   int
	Disabled         []string
	WarningsAsErrors bool
	// ParallelRules runs the detectors of one file concurrently.
	ParallelRules bool
	// Cache may be nil.
	Cache    *DiskCache
	Progress ProgressSink
	Timings  bool
	// Manifest is the strcheck.toml in effect; its unknown rule names are
	// reported as warnings.
	Manifest *project.Manifest
	// BaseDir is used for relative paths in output; "" means the working directory.
	BaseDir string
}

// FileResult holds the diagnostics of one checked file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Cached bool
}

// CheckResult is the outcome of Check.
type CheckResult struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Bag holds every diagnostic of every file, sorted.
	Bag       *diag.Bag
	CacheHits int
	Timings   *observ.Report
}

// Check lints paths as one compilation: every file is parsed and bound
// together so types declared in one file are known in all others, then the
// files are linted in parallel. On cancellation the partial result is
// returned together with ctx.Err().
func Check(ctx context.Context, paths []string, opts *CheckOptions) (*CheckResult, error) {
	if opts == nil {
		opts = &CheckOptions{}
	}
	fs := newFileSet(opts.BaseDir)
	timer := newTimer(opts.Timings)

	loadLap := timer.Begin("load")
	ids := make([]source.FileID, 0, len(paths))
	loadErrs := make(map[source.FileID]error)
	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := fs.Load(path)
		if err != nil {
			// пустой файл-заглушка, чтобы диагностика указывала на путь
			id = fs.Add(path, nil, source.FileVirtual)
			loadErrs[id] = err
		}
		ids = append(ids, id)
	}
	loadLap.End(fmt.Sprintf("files=%d", len(ids)))

	return run(ctx, fs, ids, loadErrs, opts, timer)
}

// CheckSource lints in-memory content registered under name (stdin, editors).
func CheckSource(ctx context.Context, name string, content []byte, opts *CheckOptions) (*CheckResult, error) {
	if opts == nil {
		opts = &CheckOptions{}
	}
	fs := newFileSet(opts.BaseDir)
	id := fs.AddVirtual(name, content)
	return run(ctx, fs, []source.FileID{id}, nil, opts, newTimer(opts.Timings))
}

func newFileSet(base string) *source.FileSet {
	if base == "" {
		return source.NewFileSet()
	}
	return source.NewFileSetWithBase(base)
}

func newTimer(enabled bool) *observ.Timer {
	if !enabled {
		return nil
	}
	return observ.NewTimer()
}

type fileState struct {
	file    *source.File
	bag     *diag.Bag
	key     project.Digest
	cached  bool
	loadErr error
	astFile ast.FileID
}

func run(ctx context.Context, fs *source.FileSet, ids []source.FileID, loadErrs map[source.FileID]error, opts *CheckOptions, timer *observ.Timer) (*CheckResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	engine := lint.New(lint.Options{Disabled: opts.Disabled, Parallel: opts.ParallelRules})
	states := make([]*fileState, len(ids))
	for i, id := range ids {
		states[i] = &fileState{file: fs.Get(id), bag: diag.NewBag(opts.MaxDiagnostics), loadErr: loadErrs[id]}
	}

	computeKeys(states, engine, opts.MaxDiagnostics)
	hits := lookupCache(fs, opts, states)

	var err error
	if hits < countLoaded(states) {
		err = analyze(ctx, fs, states, engine, opts, timer)
	}

	result := &CheckResult{FileSet: fs, Bag: diag.NewBag(0), CacheHits: hits}
	for _, st := range states {
		if st.loadErr != nil {
			st.bag.Add(diag.New(diag.SevError, diag.IOLoadFileError,
				source.Span{File: st.file.ID}, "failed to load file: "+st.loadErr.Error()))
			emit(opts.Progress, Event{File: st.file.Path, Stage: StageLoad, Status: StatusError, Err: st.loadErr})
		}
		st.bag.Sort()
		result.Files = append(result.Files, FileResult{Path: st.file.Path, FileID: st.file.ID, Bag: st.bag, Cached: st.cached})
		result.Bag.Merge(st.bag)
	}
	if opts.Manifest != nil {
		reportConfig(fs, opts.Manifest, result.Bag)
	}
	if opts.WarningsAsErrors {
		result.Bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			d.Severity = d.Severity.Escalate()
			return d
		})
	}
	result.Bag.Sort()

	if timer != nil {
		report := timer.Report()
		result.Timings = &report
		appendTimingDiagnostic(result.Bag, timingPayload{Kind: "check", TotalMS: report.TotalMS, Phases: report.Phases})
	}
	span.Attr("files", strconv.Itoa(len(states))).
		Attr("cache_hits", strconv.Itoa(hits)).
		Attr("diagnostics", strconv.Itoa(result.Bag.Len())).
		End("")
	return result, err
}

func countLoaded(states []*fileState) int {
	n := 0
	for _, st := range states {
		if st.loadErr == nil {
			n++
		}
	}
	return n
}

// computeKeys derives per-file cache keys. Every file of the compilation
// contributes to every key, since a type declared in one file changes how
// expressions in another are classified. The bag cap is part of the key: a
// payload stored under a small cap is truncated.
func computeKeys(states []*fileState, engine *lint.Engine, maxDiagnostics int) {
	rules := make([]string, 0, 5)
	for _, d := range engine.Rules() {
		rules = append(rules, string(d.ID))
	}
	compilation := []project.Digest{
		project.StringDigest(strings.Join(rules, ",")),
		project.StringDigest("max-diagnostics=" + strconv.Itoa(max(maxDiagnostics, 0))),
	}
	sorted := slices.Clone(states)
	slices.SortFunc(sorted, func(a, b *fileState) int { return strings.Compare(a.file.Path, b.file.Path) })
	for _, st := range sorted {
		compilation = append(compilation, project.StringDigest(st.file.Path), st.file.Hash)
	}
	base := project.Combine(project.StringDigest(version.Fingerprint()), compilation...)
	for _, st := range states {
		st.key = project.Combine(base, project.StringDigest(st.file.Path))
	}
}

func lookupCache(fs *source.FileSet, opts *CheckOptions, states []*fileState) int {
	if opts.Cache == nil {
		return 0
	}
	hits := 0
	for _, st := range states {
		if st.loadErr != nil {
			continue
		}
		var payload FilePayload
		ok, err := opts.Cache.Get(st.key, &payload)
		if err != nil || !ok || payload.Hash != st.file.Hash {
			continue
		}
		restorePayload(fs, st.file, &payload, st.bag)
		st.cached = true
		hits++
		emit(opts.Progress, Event{File: st.file.Path, Stage: StageLint, Status: StatusDone, Cached: true, Findings: st.bag.Len()})
	}
	return hits
}

// analyze parses and binds every loaded file, then lints the files that
// were not restored from the cache.
func analyze(ctx context.Context, fs *source.FileSet, states []*fileState, engine *lint.Engine, opts *CheckOptions, timer *observ.Timer) error {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return fmt.Errorf("max diagnostics: %w", err)
	}

	builder := ast.NewBuilder(ast.Hints{Files: uint(len(states))})
	parseLap := timer.Begin("parse")
	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", parent)
	var astFiles []ast.FileID
	router := fileRouter{}
	for _, st := range states {
		if st.loadErr != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			parseSpan.End("cancelled")
			return err
		}
		var reporter diag.Reporter = diag.NopReporter{}
		if !st.cached {
			reporter = diag.NewDedupReporter(diag.BagReporter{Bag: st.bag})
			router[st.file.ID] = st.bag
			emit(opts.Progress, Event{File: st.file.Path, Stage: StageParse, Status: StatusWorking})
		}
		fileSpan := trace.Begin(tracer, trace.ScopeFile, "parse:"+st.file.Path, parseSpan.ID())
		res := parser.ParseFile(st.file, builder, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
		fileSpan.Attr("errors", strconv.FormatUint(uint64(res.Errors), 10)).End("")
		st.astFile = res.File
		astFiles = append(astFiles, res.File)
	}
	parseSpan.End("")
	parseLap.End(fmt.Sprintf("files=%d", len(astFiles)))

	emit(opts.Progress, Event{Stage: StageBind, Status: StatusWorking})
	bindLap := timer.Begin("bind")
	bindSpan := trace.Begin(tracer, trace.ScopePass, "bind", parent)
	semaRes := sema.CheckFiles(builder, astFiles, sema.Options{Reporter: router})
	bindSpan.Attr("types", strconv.Itoa(len(semaRes.Decls))).End("")
	bindLap.End(fmt.Sprintf("exprs=%d", len(semaRes.ExprTypes)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	lintSpan := trace.Begin(tracer, trace.ScopePass, "lint", parent)
	defer lintSpan.End("")
	lintCtx := trace.WithSpanContext(ctx, trace.SpanContext{SpanID: lintSpan.ID()})

	g, gctx := errgroup.WithContext(lintCtx)
	g.SetLimit(jobs)
	for _, st := range states {
		if st.loadErr != nil || st.cached {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(opts.Progress, Event{File: st.file.Path, Stage: StageLint, Status: StatusWorking})
			start := time.Now()
			// диагностики парсера уже лежат в st.bag; у каждой горутины свой bag
			runErr := engine.Run(gctx, semaRes.Unit(st.astFile), diag.BagReporter{Bag: st.bag})
			elapsed := time.Since(start)
			timer.Add("lint", elapsed)
			if runErr != nil {
				emit(opts.Progress, Event{File: st.file.Path, Stage: StageLint, Status: StatusError, Err: runErr, Elapsed: elapsed})
				return runErr
			}
			if putErr := opts.Cache.Put(st.key, toPayload(fs, st.file, st.bag)); putErr != nil {
				trace.Point(tracer, trace.ScopeFile, "cache:put", putErr.Error())
			}
			emit(opts.Progress, Event{File: st.file.Path, Stage: StageLint, Status: StatusDone, Elapsed: elapsed, Findings: st.bag.Len()})
			return nil
		})
	}
	return g.Wait()
}

// fileRouter sends binder diagnostics to the bag of the file they point
// into; diagnostics for files restored from the cache are dropped.
type fileRouter map[source.FileID]*diag.Bag

func (r fileRouter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if bag, ok := r[primary.File]; ok {
		diag.BagReporter{Bag: bag}.Report(code, sev, primary, msg, notes)
	}
}
