// Package logging assembles the structured slog loggers used across cueline.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so pipeline code can tag log lines
// with run identifiers and phase names. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
