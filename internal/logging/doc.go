// Package logging assembles structured slog loggers and formatting helpers used
// across pdfmatch.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so workflow code can tag log
// lines with run IDs and source names. The package also provides a no-op
// logger for tests and for callers that do not care about output.
package logging
