// Package diag defines the diagnostic model shared by every pipeline phase.
//
// A Diagnostic carries a severity, a numeric Code with a stable string form,
// a short message, the primary source.Span and optional notes. Phases emit
// through a Reporter; BagReporter collects into a Bag which supports sorting,
// deduplication and limits.
//
// Package diag performs no IO and no rendering; internal/diagfmt owns output
// formats and internal/driver decides which bags reach the user.
package diag
