// Package watch waits for lock files to disappear without holding them.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bashhack/filelock/internal/common"
	"github.com/bashhack/filelock/internal/fsutil"
)

// DefaultPollInterval is how often the lock file is re-checked even when no
// filesystem event arrives. Events are an optimization; the poll is the guarantee.
const DefaultPollInterval = 250 * time.Millisecond

// WaitForRemoval blocks until path no longer exists or ctx is done.
// It returns nil as soon as the file is gone, and ctx.Err() otherwise.
//
// The parent directory is watched with fsnotify so removal is noticed
// immediately. If the directory cannot be watched (missing, unsupported
// filesystem, inotify limits) it falls back to polling alone.
func WaitForRemoval(ctx context.Context, path string, pollInterval time.Duration, logger common.Logger) error {
	if logger == nil {
		logger = common.NopLogger{}
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	if !fsutil.Exists(path) {
		return nil
	}

	var events <-chan fsnotify.Event
	var errs <-chan error

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warning("File watching unavailable, polling %s: %v", path, err)
	} else {
		defer func() {
			_ = fsWatcher.Close()
		}()

		if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
			logger.Warning("Cannot watch %s, polling instead: %v", filepath.Dir(path), err)
		} else {
			events = fsWatcher.Events
			errs = fsWatcher.Errors
		}
	}

	// The file may have gone between the first check and the watch being set up.
	if !fsutil.Exists(path) {
		return nil
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				logger.Info("Lock file %s removed (%s)", path, event.Op)
				if !fsutil.Exists(path) {
					return nil
				}
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warning("File watcher error for %s: %v", path, err)

		case <-ticker.C:
			if !fsutil.Exists(path) {
				return nil
			}
		}
	}
}
