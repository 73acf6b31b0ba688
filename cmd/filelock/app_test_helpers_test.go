package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bashhack/filelock/internal/config"
	"github.com/bashhack/filelock/internal/fsutil"
)

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	mu sync.Mutex

	InfoCalled          bool
	InfoToUserCalled    bool
	WarningCalled       bool
	WarningToUserCalled bool
	ErrorCalled         bool
	SuccessCalled       bool
	StatusCalled        bool
	LastMessage         string
	Messages            []string
}

func (m *MockLogger) record(flag *bool, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*flag = true
	m.LastMessage = fmt.Sprintf(format, args...)
	m.Messages = append(m.Messages, m.LastMessage)
}

// Info logs an info message
func (m *MockLogger) Info(format string, args ...interface{}) {
	m.record(&m.InfoCalled, format, args...)
}

// Warning logs a warning message
func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.record(&m.WarningCalled, format, args...)
}

// Error logs an error message
func (m *MockLogger) Error(format string, args ...interface{}) {
	m.record(&m.ErrorCalled, format, args...)
}

// InfoToUser logs an info message to the user
func (m *MockLogger) InfoToUser(format string, args ...interface{}) {
	m.record(&m.InfoToUserCalled, format, args...)
}

// WarningToUser logs a warning message to the user
func (m *MockLogger) WarningToUser(format string, args ...interface{}) {
	m.record(&m.WarningToUserCalled, format, args...)
}

// Success logs a success message
func (m *MockLogger) Success(format string, args ...interface{}) {
	m.record(&m.SuccessCalled, format, args...)
}

// StatusMessage logs a status message
func (m *MockLogger) StatusMessage(format string, args ...interface{}) {
	m.record(&m.StatusCalled, format, args...)
}

// Contains reports whether any recorded message contains substr
func (m *MockLogger) Contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.Messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// MockExecutor implements runner.CommandExecutor for testing
type MockExecutor struct {
	Err      error
	Called   bool
	Name     string
	Args     []string
	LockPath string

	// LockHeld records whether the lock file existed while the command ran
	LockHeld bool

	// Block makes Execute wait for the context to end
	Block bool
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args []string) error {
	m.Called = true
	m.Name = name
	m.Args = args
	if m.LockPath != "" {
		m.LockHeld = fsutil.Exists(m.LockPath)
	}
	if m.Block {
		<-ctx.Done()
		return ctx.Err()
	}
	return m.Err
}

// fixedNow is the clock used by tests that check ages
var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

// NewTestApp creates an App with a mock logger and executor, isolated from
// the user's config file and FILELOCK_* environment.
func NewTestApp(t *testing.T) (*App, *MockLogger, *MockExecutor) {
	t.Helper()
	isolateEnvironment(t)

	mockLogger := &MockLogger{}
	mockExecutor := &MockExecutor{}

	cfg := config.New()
	cfg.LogFile = "/dev/null"
	cfg.PollInterval = 5 * time.Millisecond

	app := NewApp(AppOptions{
		Config:   cfg,
		Logger:   mockLogger,
		Executor: mockExecutor,
		Exit:     func(int) {},
		Now:      func() time.Time { return fixedNow },
	})
	return app, mockLogger, mockExecutor
}

// isolateEnvironment keeps host configuration out of a test
func isolateEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	for _, key := range []string{"CONFIG", "TIMEOUT", "POLL_INTERVAL", "MAX_POLL_INTERVAL", "VERBOSE", "DEBUG", "LOG_FILE", "PATTERN"} {
		// t.Setenv restores the original value after the test
		t.Setenv(config.EnvPrefix+key, "")
		_ = os.Unsetenv(config.EnvPrefix + key)
	}
}
