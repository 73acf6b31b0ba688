package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "test.log")

	logger := New(false, logFile, true)
	if logger == nil {
		t.Fatal("Expected non-nil logger with debug disabled")
	}

	if _, err := os.Stat(logFile); err == nil {
		t.Error("Expected no log file to be created when debug is disabled")
	}

	logger = New(true, logFile, true)
	if logger == nil {
		t.Fatal("Expected non-nil logger with debug enabled")
	}
	defer func() {
		if err := logger.Close(); err != nil {
			t.Logf("Failed to close logger: %v", err)
		}
	}()

	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("Expected log file to be created when debug is enabled: %v", err)
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if !strings.Contains(string(content), "filelock debug logging started") {
		t.Error("Expected initial message to be logged")
	}
}

func TestNew_CreatesLogDirectory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "logs", "filelock.log")

	logger := NewWithOutput(true, logFile, false, &bytes.Buffer{}, &bytes.Buffer{})
	defer func() {
		_ = logger.Close()
	}()

	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("Expected log file in nested directory to be created: %v", err)
	}
}

func TestLogging(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	stderr := &bytes.Buffer{}
	logger := NewWithOutput(true, logFile, true, &bytes.Buffer{}, stderr)

	logger.Info("Test info message")
	logger.Warning("Test warning message")
	logger.Error("Test error message")

	if err := logger.Close(); err != nil {
		t.Fatalf("Failed to close logger: %v", err)
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)

	for _, want := range []string{"Test info message", "Test warning message", "Test error message"} {
		if !strings.Contains(logContent, want) {
			t.Errorf("Expected %q to be logged", want)
		}
	}

	if strings.Contains(stderr.String(), "Test info message") {
		t.Error("Info should not be echoed to the user")
	}
	if !strings.Contains(stderr.String(), "Test error message") {
		t.Error("Error should always be echoed to stderr")
	}

	if err := os.Remove(logFile); err != nil && !os.IsNotExist(err) {
		t.Logf("Failed to remove log file: %v", err)
	}

	disabled := NewWithOutput(false, logFile, true, &bytes.Buffer{}, &bytes.Buffer{})
	disabled.Info("This should not be logged")
	disabled.Warning("This should not be logged")
	disabled.Error("This should not be logged")

	if _, err := os.Stat(logFile); err == nil {
		t.Error("Expected no log file to be created when debug is disabled")
	}
}

func TestWarning_RespectsVerbose(t *testing.T) {
	tests := map[string]struct {
		verbose  bool
		expected bool
	}{
		"Verbose": {verbose: true, expected: true},
		"Quiet":   {verbose: false, expected: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			stderr := &bytes.Buffer{}
			logger := NewWithOutput(false, "", tc.verbose, &bytes.Buffer{}, stderr)

			logger.Warning("stale lock %s", "a.lock")

			got := strings.Contains(stderr.String(), "stale lock a.lock")
			if got != tc.expected {
				t.Errorf("Expected warning shown=%v, got %v (output %q)", tc.expected, got, stderr.String())
			}
		})
	}
}

func TestDecorated(t *testing.T) {
	if !decorated(&bytes.Buffer{}) {
		t.Error("Expected in-memory writers to be decorated")
	}

	f, err := os.CreateTemp(t.TempDir(), "out-*")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if decorated(f) {
		t.Error("Expected regular files not to be decorated")
	}

	logger := NewWithOutput(false, "", true, f, f)
	logger.Success("done")
	logger.Error("broken")

	content, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.Contains(string(content), "ok: done") || !strings.Contains(string(content), "error: broken") {
		t.Errorf("Expected plain prefixes, got %q", string(content))
	}
}

func TestSetOutputs(t *testing.T) {
	logger := NewWithOutput(false, "", true, &bytes.Buffer{}, &bytes.Buffer{})

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	logger.SetStdout(stdout)
	logger.SetStderr(stderr)

	logger.StatusMessage("held")
	logger.Error("failed")

	if stdout.String() != "held\n" {
		t.Errorf("Expected status on replaced stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "failed") {
		t.Errorf("Expected error on replaced stderr, got %q", stderr.String())
	}
}
