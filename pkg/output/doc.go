// Package output controls how the results of gobarman commands are rendered.
//
// Command code never prints directly. It talks to a Controller (usually the
// package-level default) which formats messages, tracks whether an error has
// occurred during the run, mirrors messages to the zerolog logger, and
// dispatches command lifecycle calls to the active Writer.
//
// A Writer renders severity messages and per-command results. The default
// ConsoleWriter prints human-readable text to the standard streams. The
// JSONWriter accumulates results and emits a single machine-readable
// document on Close. The NagiosWriter is silent during the run and prints a
// single monitoring-plugin status line on Close; it is deliberately not in
// the writer registry and must be installed explicitly.
//
// Exactly one writer is active at a time. Replacing it closes the previous
// writer first, so close-time aggregation always runs.
package output
