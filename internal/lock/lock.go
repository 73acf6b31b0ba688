package lock

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bashhack/filelock/internal/common"
	"github.com/bashhack/filelock/internal/errors"
	"github.com/bashhack/filelock/internal/fsutil"
	"github.com/bashhack/filelock/internal/retry"
)

const (
	// DefaultTimeout bounds Acquire when no WithTimeout option is given
	DefaultTimeout = 5 * time.Second

	// DefaultPollInterval is the wait between creation attempts
	DefaultPollInterval = 50 * time.Millisecond

	// WaitForever can be passed to WithTimeout or WithDefaultTimeout to disable the bound
	WaitForever time.Duration = -1
)

// createFlags make creation of the lock file fail if it already exists
const createFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL | os.O_TRUNC

// Lock is a reentrant advisory lock keyed by the existence of a file.
// One Lock value is one holder: nested or concurrent Acquire calls on the
// same value share the hold, while distinct Lock values (in this or another
// process) exclude each other.
type Lock struct {
	path           string
	id             string
	defaultTimeout time.Duration
	logger         common.Logger
	dirs           fsutil.DirEnsurer

	mu    sync.Mutex
	file  *os.File // non-nil iff held
	count int
}

// New creates a Lock for the lock file at path. Nothing touches the
// filesystem until Acquire is called.
func New(path string, opts ...Option) *Lock {
	l := &Lock{
		path:           path,
		id:             uuid.NewString(),
		defaultTimeout: DefaultTimeout,
		logger:         common.NopLogger{},
		dirs:           fsutil.Local{},
	}
	for _, opt := range opts {
		opt(l)
	}

	// Dropping a held Lock without releasing it would leak the lock file.
	runtime.SetFinalizer(l, (*Lock).ForceRelease)

	return l
}

// Path returns the path of the lock file
func (l *Lock) Path() string {
	return l.path
}

// ID returns the identifier used for this holder in log lines
func (l *Lock) ID() string {
	return l.id
}

// IsLocked reports whether this Lock currently holds the lock file
func (l *Lock) IsLocked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file != nil
}

// Acquire is AcquireContext with a background context.
func (l *Lock) Acquire(opts ...AcquireOption) (*Handle, error) {
	return l.AcquireContext(context.Background(), opts...)
}

// AcquireContext blocks until the lock is held, the timeout elapses or ctx is done.
//
// A timeout returns a *errors.TimeoutError. Creation failures other than
// contention (permissions, a file where the directory should be) are returned
// at once as a *errors.LockError matching errors.ErrLockAcquisitionFailure.
// Each successful call must be paired with exactly one Handle.Release.
func (l *Lock) AcquireContext(ctx context.Context, opts ...AcquireOption) (*Handle, error) {
	cfg := acquireConfig{
		timeout:      l.defaultTimeout,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.pollInterval <= 0 {
		cfg.pollInterval = DefaultPollInterval
	}

	// Reserve our place in the hold count before waiting.
	l.mu.Lock()
	l.count++
	l.mu.Unlock()

	start := time.Now()
	for attempt := 0; ; attempt++ {
		held, err := l.tryAcquire()
		if err != nil {
			l.unreserve()
			return nil, err
		}
		if held {
			l.logger.Info("Lock %s acquired on %s", l.id, l.path)
			return &Handle{lock: l}, nil
		}

		waited := time.Since(start)
		if cfg.timeout >= 0 && waited > cfg.timeout {
			l.unreserve()
			l.logger.Info("Timeout on acquiring lock %s on %s after %s", l.id, l.path, waited)
			return nil, errors.NewTimeoutError(l.path, cfg.timeout, waited)
		}

		delay := cfg.pollInterval
		if cfg.maxPollInterval > 0 {
			delay = retry.CalculateBackoff(attempt, cfg.pollInterval, cfg.maxPollInterval)
		}
		if cfg.timeout >= 0 {
			// Do not oversleep the deadline by more than a tick.
			if remaining := cfg.timeout - waited + time.Millisecond; delay > remaining {
				delay = remaining
			}
		}

		l.logger.Info("Lock %s not acquired on %s, waiting %s ...", l.id, l.path, delay)
		if err := sleep(ctx, delay); err != nil {
			l.unreserve()
			return nil, errors.NewLockError(l.path, os.Getpid(), errors.Wrap(err, "stopped waiting for lock"))
		}
	}
}

// tryAcquire makes one attempt to create the lock file. It reports true when
// this Lock holds the file afterwards, whether created now or earlier.
func (l *Lock) tryAcquire() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return true, nil
	}

	l.logger.Info("Attempting to acquire lock %s on %s", l.id, l.path)

	if err := fsutil.EnsureParentDir(l.dirs, l.path); err != nil {
		return false, errors.NewLockError(l.path, os.Getpid(),
			errors.Errorf("%w: %w", errors.ErrLockAcquisitionFailure, err))
	}

	f, err := os.OpenFile(l.path, createFlags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, errors.NewLockError(l.path, os.Getpid(),
			errors.Errorf("%w: failed to create lock file: %w", errors.ErrLockAcquisitionFailure, err))
	}

	l.file = f
	// A forced release can zero the count while callers are still waiting.
	if l.count < 1 {
		l.count = 1
	}
	return true, nil
}

// unreserve gives back a reservation taken by an Acquire that failed
func (l *Lock) unreserve() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count > 0 {
		l.count--
	}
}

// Release drops one hold. When the last hold is dropped the lock file is
// closed and deleted. Releasing a Lock that is not held does nothing.
func (l *Lock) Release() {
	l.release(false)
}

// ForceRelease deletes the lock file regardless of outstanding nested holds.
// It is meant for shutdown and cleanup paths.
func (l *Lock) ForceRelease() {
	l.release(true)
}

// Close force-releases the lock. It always returns nil and exists so a Lock
// can be handed to code that expects an io.Closer.
func (l *Lock) Close() error {
	l.ForceRelease()
	return nil
}

func (l *Lock) release(force bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	l.count--
	if l.count > 0 && !force {
		return
	}

	l.logger.Info("Attempting to release lock %s on %s", l.id, l.path)

	// Cleanup is best effort: the lock is ours until the handle is closed,
	// and a stale file left behind is visible and recoverable.
	if err := l.file.Close(); err != nil {
		l.logger.Warning("Failed to close lock file %s: %v", l.path, err)
	}
	l.file = nil
	l.count = 0

	if err := fsutil.Remove(l.path); err != nil {
		l.logger.Warning("Failed to remove lock file %s: %v", l.path, err)
	}

	l.logger.Info("Lock %s released on %s", l.id, l.path)
}

// With runs fn while holding the lock and releases it on every exit path,
// including a panic inside fn.
func (l *Lock) With(fn func() error, opts ...AcquireOption) error {
	h, err := l.Acquire(opts...)
	if err != nil {
		return err
	}
	defer h.Release()

	return fn()
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
