// Package logging assembles structured slog loggers and formatting helpers used
// across curator.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and injects run, sub-topic and video identifiers carried on a
// context so pipeline code can log with InfoContext and friends without
// threading fields by hand. The package also provides a no-op logger for tests
// and daily log file retention.
package logging
