package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors that can be used with errors.Is() for error type checking
var (
	// ErrTimeout indicates the lock could not be acquired before the wait bound elapsed
	ErrTimeout = errors.New("timed out waiting for lock")

	// ErrLockAcquisitionFailure indicates a lock file could not be created for a reason other than contention
	ErrLockAcquisitionFailure = errors.New("failed to acquire lock")

	// ErrCommandFailed indicates a command run under the lock returned an error
	ErrCommandFailed = errors.New("command failed")

	// ErrInvalidConfiguration indicates an invalid or conflicting user configuration
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// New creates a new error with the given message.
// This is a convenience function that wraps errors.New.
func New(message string) error {
	return errors.New(message)
}

// Errorf creates a new formatted error.
// This is a convenience function that wraps fmt.Errorf.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Wrap wraps an error with a message for better context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message for better context.
func Wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether target is in err's chain.
// This is a convenience function that wraps errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience function that wraps errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is a convenience function that wraps errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// TimeoutError is returned when a lock could not be acquired within its wait bound.
// It matches ErrTimeout with errors.Is.
type TimeoutError struct {
	LockFile string
	Timeout  time.Duration
	Waited   time.Duration
}

// Error implements the error interface, naming the contended lock file.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for lock %s (timeout %s)",
		e.Waited.Round(time.Millisecond), e.LockFile, e.Timeout)
}

// Is makes errors.Is(err, ErrTimeout) true for any *TimeoutError.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NewTimeoutError creates a new TimeoutError with the given parameters.
func NewTimeoutError(lockFile string, timeout, waited time.Duration) *TimeoutError {
	return &TimeoutError{
		LockFile: lockFile,
		Timeout:  timeout,
		Waited:   waited,
	}
}

// LockError represents an error that occurred when interacting with file locks.
// It includes the lock file path, process ID if available, and underlying error.
type LockError struct {
	LockFile string
	PID      int
	Err      error
}

// Error implements the error interface with details about the lock file and process.
func (e *LockError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("lock error with file %s (PID: %d): %v", e.LockFile, e.PID, e.Err)
	}
	return fmt.Sprintf("lock error with file %s: %v", e.LockFile, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *LockError) Unwrap() error {
	return e.Err
}

// NewLockError creates a new LockError with the given parameters.
func NewLockError(lockFile string, pid int, err error) *LockError {
	return &LockError{
		LockFile: lockFile,
		PID:      pid,
		Err:      err,
	}
}

// CommandError represents a failure of a command executed while a lock was held.
// ExitCode is -1 when the command never started or was killed by a signal.
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int
	Err      error
}

// Error implements the error interface with the command line and exit status.
func (e *CommandError) Error() string {
	line := e.Command
	if len(e.Args) > 0 {
		line = line + " " + strings.Join(e.Args, " ")
	}
	if e.ExitCode >= 0 {
		return fmt.Sprintf("command %q exited with status %d: %v", line, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("command %q failed: %v", line, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError with the given parameters.
func NewCommandError(command string, args []string, exitCode int, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Args:     args,
		ExitCode: exitCode,
		Err:      err,
	}
}

// ConfigError represents an error in the application configuration.
// It includes the parameter name, its value if available, and the underlying error.
type ConfigError struct {
	Parameter string
	Value     interface{}
	Err       error
}

// Error implements the error interface with details about the invalid configuration.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("configuration error for %s = %v: %v", e.Parameter, e.Value, e.Err)
	}
	return fmt.Sprintf("configuration error for %s: %v", e.Parameter, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError with the given parameters.
func NewConfigError(parameter string, value interface{}, err error) *ConfigError {
	return &ConfigError{
		Parameter: parameter,
		Value:     value,
		Err:       err,
	}
}
