// Package logging assembles structured slog loggers and formatting helpers used
// across gifmaker.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// tags every record of a run with its session ID, and can tee a JSON copy of
// the run into a per-run log file. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool.
package logging
