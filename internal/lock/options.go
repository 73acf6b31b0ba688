package lock

import (
	"time"

	"github.com/bashhack/filelock/internal/common"
	"github.com/bashhack/filelock/internal/fsutil"
)

// Option configures a Lock at construction
type Option func(*Lock)

// WithDefaultTimeout sets the wait bound used when Acquire is called without
// WithTimeout. A negative value waits forever.
func WithDefaultTimeout(d time.Duration) Option {
	return func(l *Lock) {
		l.defaultTimeout = d
	}
}

// WithLogger routes the lock's debug lines to logger
func WithLogger(logger common.Logger) Option {
	return func(l *Lock) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDirEnsurer replaces the collaborator that creates the lock file's parent directory
func WithDirEnsurer(d fsutil.DirEnsurer) Option {
	return func(l *Lock) {
		if d != nil {
			l.dirs = d
		}
	}
}

type acquireConfig struct {
	timeout         time.Duration
	pollInterval    time.Duration
	maxPollInterval time.Duration
}

// AcquireOption configures a single Acquire call
type AcquireOption func(*acquireConfig)

// WithTimeout bounds how long Acquire waits. Zero makes a single attempt;
// a negative value waits forever.
func WithTimeout(d time.Duration) AcquireOption {
	return func(c *acquireConfig) {
		c.timeout = d
	}
}

// WithPollInterval sets the wait between creation attempts.
// Non-positive values fall back to DefaultPollInterval.
func WithPollInterval(d time.Duration) AcquireOption {
	return func(c *acquireConfig) {
		c.pollInterval = d
	}
}

// WithBackoff doubles the poll interval after every failed attempt, up to max.
func WithBackoff(max time.Duration) AcquireOption {
	return func(c *acquireConfig) {
		c.maxPollInterval = max
	}
}
