// Package logging constructs the slog loggers used across fwarchive.
//
// It supports a human-oriented console format and a JSON format, fans output
// out to stdout and a log file when a log directory is configured, and
// provides small helpers (component loggers, attribute constructors, a no-op
// logger) so packages do not depend on slog handler details.
package logging
