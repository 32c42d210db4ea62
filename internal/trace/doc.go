// Package trace is the logging layer of strcheck.
//
// Events are spans (begin/end pairs) and points, tagged with a scope that
// says how coarse they are. A level filters scopes:
//
//   - LevelOff: nothing
//   - LevelError: only the ring dump written on a crash
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file work and detector passes
//   - LevelDebug: everything
//
// Tracers are carried through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// Enable from the command line:
//
//	strcheck check --trace=- --trace-level=detail src/
package trace
