// Package filelock provides cross-process advisory file locks
//
// filelock serializes work between processes on one machine through a lock
// file. A process holds the lock while the file exists: the file is created
// with an atomic create-exclusive open and removed on release. Contended
// callers poll until the file is gone or their timeout elapses.
//
// # Quick Start
//
//	# Run a command while holding a lock, waiting up to 5 seconds for it
//	filelock run /tmp/deploy.lock -- ./deploy.sh
//
//	# Wait forever instead
//	filelock run --timeout -1s /tmp/deploy.lock -- ./deploy.sh
//
//	# See who holds what
//	filelock status /tmp/deploy.lock
//	filelock list /var/run/myapp
//
// # Key Features
//
//   - Reentrant: nested acquisitions on one Lock share a single hold
//   - Bounded Waiting: timeout per call, zero for a single attempt, negative to wait forever
//   - Exit Safety: scoped handles and With release on every return path, including panics
//   - Scripting: stable exit codes, 75 when the lock stays contended
//
// # Library Usage
//
//	l := lock.New("/tmp/shared-locks/build.lock")
//	h, err := l.Acquire(lock.WithTimeout(10 * time.Second))
//	if err != nil {
//	    return err
//	}
//	defer h.Release()
//
// # Module Structure
//
// The module is organized into these packages:
//
//   - cmd/filelock: Command-line interface
//   - internal/lock: The reentrant file lock
//   - internal/fsutil: Directory creation and path helpers used by the lock
//   - internal/retry: Backoff between acquisition attempts
//   - internal/watch: Waiting for a lock file to disappear
//   - internal/scan: Finding lock files under a directory
//   - internal/runner: Running commands under a lock
//   - internal/config: Configuration file, environment and flag handling
//   - internal/logger: Logging facilities
//   - internal/errors: Error handling utilities
//   - internal/constants: Exit codes and fixed values
//
// # Exit Codes
//
//	0    success
//	1    failure without a more specific code
//	64   invalid flags, arguments or configuration
//	75   timed out waiting for the lock
//	130  interrupted by a signal
//
// A command run under the lock that exits non-zero passes its status through.
//
// # Limitations
//
// The lock is advisory: only cooperating processes that use the same lock
// file are excluded. It is not a distributed lock; network filesystems that
// do not honor exclusive create are unsupported. A process killed while
// holding the lock leaves the file behind until it is removed with
// "filelock release --force".
//
// # Implementation Notes
//
// The command handles signals (SIGINT, SIGTERM and SIGHUP) by canceling the
// running command, and removes the lock file itself if the command does not
// stop within a short grace period.
package filelock
