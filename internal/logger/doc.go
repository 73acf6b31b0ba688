// Package logger provides logging facilities for the filelock tool.
//
// This package implements a small logging layer on top of log/slog. Debug
// lines go to an optional log file as slog text records, while user-facing
// messages are printed to stdout/stderr with a short prefix.
//
// # Core Components
//
// - Logger: The logging interface used by the command-line tool
// - DefaultLogger: Standard implementation that writes to console and/or file
//
// # Message Types
//
// - Info: debug information, log file only
// - Warning: log file, echoed to stderr in verbose mode
// - Error: log file, always echoed to stderr
// - InfoToUser: log file, echoed to stdout in verbose mode
// - WarningToUser: log file, always echoed to stderr
// - Success: log file, always echoed to stdout
// - StatusMessage: stdout only, never logged
//
// # Usage
//
//	log := logger.New(cfg.Debug, cfg.LogFile, cfg.Verbose)
//	defer log.Close()
//
//	lk := lock.New(path, lock.WithLogger(log))
//
// The lock package only depends on common.Logger, so any DefaultLogger can be
// handed to it directly.
//
// # Console Output
//
// When stdout is a terminal, user lines carry emoji prefixes (ℹ️, ⚠️, ❌, ✅).
// When output is redirected to a file or pipe the prefixes become plain words
// (info:, warning:, error:, ok:) so scripts can grep them.
//
// # Thread Safety
//
// DefaultLogger is safe for concurrent use by multiple goroutines.
package logger
