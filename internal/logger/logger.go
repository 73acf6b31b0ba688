package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/term"
)

// Logger defines the common logging interface used throughout the application.
// It provides a standardized way to emit log messages at different levels of importance,
// with a clear separation between internal (debug) logs and user-facing messages.
type Logger interface {
	// Info logs an informational message for debugging purposes.
	// These messages are only written to the log file.
	Info(format string, args ...interface{})

	// Warning logs a warning message for debugging purposes.
	// They are written to the log file and echoed to the user in verbose mode.
	Warning(format string, args ...interface{})

	// Error logs an error message. Errors are always shown on stderr.
	Error(format string, args ...interface{})

	// InfoToUser logs an informational message intended for users.
	InfoToUser(format string, args ...interface{})

	// WarningToUser logs a warning message intended for users.
	WarningToUser(format string, args ...interface{})

	// Success logs a success message to the user.
	Success(format string, args ...interface{})

	// StatusMessage prints a status line to the user without logging it.
	StatusMessage(format string, args ...interface{})

	// Close flushes and closes the log file, if any.
	Close() error
}

// prefixes used for user-facing lines
type prefixes struct {
	info, warning, err, success string
}

var (
	emojiPrefixes = prefixes{info: "ℹ️  ", warning: "⚠️  ", err: "❌ ", success: "✅ "}
	plainPrefixes = prefixes{info: "info: ", warning: "warning: ", err: "error: ", success: "ok: "}
)

// DefaultLogger provides structured logging capability and implements the Logger interface
type DefaultLogger struct {
	mu      sync.Mutex
	logger  *slog.Logger
	enabled bool
	logFile string
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
	prefix  prefixes
	file    *os.File // Store file handle for closing
}

// New creates a new Logger writing user messages to the process's stdout and stderr
func New(enabled bool, logFile string, verbose bool) *DefaultLogger {
	return NewWithOutput(enabled, logFile, verbose, os.Stdout, os.Stderr)
}

// NewWithOutput creates a DefaultLogger with custom output writers.
// Emoji prefixes are dropped when stdout is a file that is not a terminal.
func NewWithOutput(enabled bool, logFile string, verbose bool, stdout, stderr io.Writer) *DefaultLogger {
	var logger *slog.Logger

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	pfx := emojiPrefixes
	if !decorated(stdout) {
		pfx = plainPrefixes
	}

	var file *os.File

	if enabled {
		logDir := filepath.Dir(logFile)
		if logDir != "." {
			err := os.MkdirAll(logDir, 0755)
			if err != nil {
				_, _ = fmt.Fprintf(stderr, "%sFailed to create log directory: %v\n", pfx.warning, err)
			}
		}

		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			file = f
			logger = slog.New(slog.NewTextHandler(f, opts))
			logger.Info("filelock debug logging started", "pid", os.Getpid())
		} else {
			// Fallback to standard logger
			logger = slog.New(slog.NewTextHandler(stderr, opts))
			_, _ = fmt.Fprintf(stderr, "%sFailed to open log file: %v, using stderr instead\n", pfx.warning, err)
		}
	} else {
		logger = slog.New(slog.NewTextHandler(stderr, opts))
	}

	return &DefaultLogger{
		logger:  logger,
		enabled: enabled,
		logFile: logFile,
		verbose: verbose,
		stdout:  stdout,
		stderr:  stderr,
		prefix:  pfx,
		file:    file,
	}
}

// decorated reports whether user-facing output to w should carry emoji prefixes.
func decorated(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}

// Info logs an informational message (file only)
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled {
		return
	}

	l.logger.Info(fmt.Sprintf(format, args...))
}

// InfoToUser logs an informational message to both file and stdout
func (l *DefaultLogger) InfoToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Info(msg)
	}

	if l.verbose {
		_, _ = fmt.Fprintf(l.stdout, "%s%s\n", l.prefix.info, msg)
	}
}

// Success logs a success message to both file and stdout
func (l *DefaultLogger) Success(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Info(msg)
	}

	_, _ = fmt.Fprintf(l.stdout, "%s%s\n", l.prefix.success, msg)
}

// Warning logs a warning message
func (l *DefaultLogger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Warn(msg)
	}

	if l.verbose {
		_, _ = fmt.Fprintf(l.stderr, "%s%s\n", l.prefix.warning, msg)
	}
}

// WarningToUser logs a warning message to both file and stderr
func (l *DefaultLogger) WarningToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Warn(msg)
	}

	_, _ = fmt.Fprintf(l.stderr, "%s%s\n", l.prefix.warning, msg)
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Error(msg)
	}

	// Always show errors to the user regardless of debug status
	_, _ = fmt.Fprintf(l.stderr, "%s%s\n", l.prefix.err, msg)
}

// StatusMessage prints a status message to stdout only (no logging)
func (l *DefaultLogger) StatusMessage(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintln(l.stdout, fmt.Sprintf(format, args...))
}

// Close ensures any buffered data is written and closes open log file handles
func (l *DefaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	// Sync ensures any buffered data is flushed to disk before closing
	if err := l.file.Sync(); err != nil {
		_ = l.file.Close()
		l.file = nil
		return err
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// SetStdout sets a custom writer for user-facing stdout messages only.
// NOTE: This does not affect where structured log messages from slog are directed.
func (l *DefaultLogger) SetStdout(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout = w
}

// SetStderr sets a custom writer for user-facing stderr messages only.
// NOTE: This does not affect where structured log messages from slog are directed.
func (l *DefaultLogger) SetStderr(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stderr = w
}
