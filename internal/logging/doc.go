// Package logging assembles structured slog loggers and formatting helpers used
// across boothvpm.
//
// It owns the console and JSON handlers, the fan-out that copies console
// output into the JSON log file under the data directory, and context-aware
// helpers that tag log lines with the item being packaged and the correlation
// ID of the CLI invocation. A no-op logger is provided for tests and for
// library callers that pass nil.
package logging
