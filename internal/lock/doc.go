// Package lock provides a reentrant, cross-process advisory file lock.
//
// The lock is the existence of a file. Acquiring creates the file with
// O_CREATE|O_EXCL, which the filesystem guarantees to fail if the file is
// already there, so exactly one contender wins each race. Releasing closes
// the file and deletes it. The file's contents are never read or written.
//
// # Core Components
//
// - Lock: one holder of a lock path, reusable across any number of cycles
// - Handle: the scoped result of a successful Acquire
// - Info / Inspect: look at a lock file without taking it
//
// # Usage
//
//	lk := lock.New("/var/lock/pipeline/stash.lock")
//
//	h, err := lk.Acquire(lock.WithTimeout(10 * time.Second))
//	if err != nil {
//	    if errors.Is(err, errors.ErrTimeout) {
//	        // someone else holds it; retry later or give up
//	    }
//	    return err
//	}
//	defer h.Release()
//
// or, for a function-shaped critical section:
//
//	err := lk.With(func() error {
//	    return updateStash()
//	})
//
// # Reentrancy
//
// A Lock keeps a hold count. Nested Acquire calls on the same Lock return
// immediately without touching the filesystem, and the file is only removed
// when every Handle has been released. Goroutines that share a Lock value
// share its hold; give each independent holder its own Lock.
//
// # Waiting
//
// Acquire polls every DefaultPollInterval (or WithPollInterval) until the
// timeout elapses. WithBackoff makes the interval grow exponentially.
// The default timeout is DefaultTimeout; WaitForever disables it. There is no
// fairness between waiters: whoever retries first after a release wins.
//
// # Errors
//
// - *errors.TimeoutError (errors.ErrTimeout): the wait bound elapsed
// - *errors.LockError wrapping errors.ErrLockAcquisitionFailure: the file
// could not be created for a reason other than contention; not retried
// - *errors.LockError wrapping context.Canceled or DeadlineExceeded:
// AcquireContext's context ended first
//
// Release never fails. A lock file that is already gone, or that cannot be
// removed, is logged and otherwise ignored.
//
// # Cleanup
//
// Go has no destructors. Always release handles with defer, and call Close
// (or ForceRelease) at shutdown. As a last resort a finalizer force-releases a
// Lock that is garbage collected while still held, but finalizers are not
// guaranteed to run before the process exits.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package lock
