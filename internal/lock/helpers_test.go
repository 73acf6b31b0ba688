package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// recordingLogger collects every message written through common.Logger
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingLogger) record(level, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, level+": "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Info(format string, args ...interface{}) {
	r.record("info", format, args...)
}
func (r *recordingLogger) Warning(format string, args ...interface{}) {
	r.record("warning", format, args...)
}
func (r *recordingLogger) Error(format string, args ...interface{}) {
	r.record("error", format, args...)
}
func (r *recordingLogger) InfoToUser(format string, args ...interface{}) {
	r.record("info", format, args...)
}
func (r *recordingLogger) WarningToUser(format string, args ...interface{}) {
	r.record("warning", format, args...)
}
func (r *recordingLogger) Success(format string, args ...interface{}) {
	r.record("success", format, args...)
}
func (r *recordingLogger) StatusMessage(format string, args ...interface{}) {
	r.record("status", format, args...)
}

func (r *recordingLogger) contains(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// countingDirs counts creation attempts and can be told to fail.
// Without an injected error it creates the directory like fsutil.Local.
type countingDirs struct {
	calls atomic.Int64
	err   error
}

func (c *countingDirs) EnsureDir(dir string) error {
	c.calls.Add(1)
	if c.err != nil {
		return c.err
	}
	return os.MkdirAll(dir, 0755)
}

func lockPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "shared-locks", "simple.lock")
}
