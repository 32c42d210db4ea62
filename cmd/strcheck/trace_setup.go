package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"strcheck/internal/trace"
)

func addTraceFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("trace", "", "write trace events to a file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")
}

// traceConfig reads the --trace* flags into a tracer config.
func traceConfig(flags *pflag.FlagSet) (trace.Config, error) {
	var (
		cfg                 trace.Config
		level, mode, format string
		errs                []error
	)
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	var err error
	cfg.OutputPath, err = flags.GetString("trace")
	collect(err)
	level, err = flags.GetString("trace-level")
	collect(err)
	mode, err = flags.GetString("trace-mode")
	collect(err)
	format, err = flags.GetString("trace-format")
	collect(err)
	cfg.RingSize, err = flags.GetInt("trace-ring-size")
	collect(err)
	cfg.Heartbeat, err = flags.GetDuration("trace-heartbeat")
	collect(err)
	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}

	if cfg.Level, err = trace.ParseLevel(level); err != nil {
		return cfg, err
	}
	// --trace без уровня включает фазы
	if cfg.Level == trace.LevelOff && cfg.OutputPath != "" && !flags.Changed("trace-level") {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(mode); err != nil {
		return cfg, err
	}
	cfg.Format, err = trace.ParseFormat(format)
	return cfg, err
}

var activeTracer trace.Tracer

// setupTracing installs the tracer described by the flags into the command
// context. The returned cleanup stops the heartbeat, dumps a ring-only
// tracer to stderr and closes the output.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, err := traceConfig(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, fmt.Errorf("trace flags: %w", err)
	}
	if cfg.Level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	activeTracer = tracer

	var hb *trace.Heartbeat
	if cfg.Heartbeat > 0 {
		hb = trace.StartHeartbeat(tracer, cfg.Heartbeat)
	}
	stderr := cmd.ErrOrStderr()
	return func() {
		activeTracer = nil
		if hb != nil {
			hb.Stop()
		}
		if cfg.Mode == trace.ModeRing {
			dumpRing(tracer, cfg.Format)
		}
		if err := errors.Join(tracer.Flush(), tracer.Close()); err != nil {
			fmt.Fprintf(stderr, "trace: %v\n", err) //nolint:errcheck
		}
	}, nil
}

// dumpTraceOnPanic prints the last ring events to stderr and re-panics.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if activeTracer != nil {
		fmt.Fprintf(os.Stderr, "panic: %v\nlast trace events:\n", r) //nolint:errcheck
		dumpRing(activeTracer, trace.FormatText)
	}
	panic(r)
}

func dumpRing(t trace.Tracer, format trace.Format) {
	ring := trace.FindRing(t)
	if ring == nil {
		return
	}
	if format == trace.FormatAuto {
		format = trace.FormatText
	}
	if err := ring.Dump(os.Stderr, format); err != nil {
		fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err) //nolint:errcheck
	}
}
