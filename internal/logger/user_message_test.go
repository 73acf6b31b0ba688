package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUserMessages(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	stdoutBuf := &bytes.Buffer{}
	stderrBuf := &bytes.Buffer{}

	logger := NewWithOutput(true, logFile, true, stdoutBuf, stderrBuf)
	defer func() {
		_ = logger.Close()
	}()

	t.Run("InfoToUser", func(t *testing.T) {
		stdoutBuf.Reset()
		logger.InfoToUser("Test info to user: %s", "message")
		output := stdoutBuf.String()

		if !strings.Contains(output, "Test info to user: message") {
			t.Errorf("InfoToUser did not produce expected output, got: %s", output)
		}

		content, err := os.ReadFile(logFile)
		if err != nil {
			t.Fatalf("Failed to read log file: %v", err)
		}

		if !strings.Contains(string(content), "Test info to user: message") {
			t.Error("InfoToUser message was not written to log file")
		}
	})

	t.Run("Success", func(t *testing.T) {
		stdoutBuf.Reset()
		logger.Success("Success message: %s", "completed")
		output := stdoutBuf.String()

		if !strings.Contains(output, "✅") || !strings.Contains(output, "Success message: completed") {
			t.Errorf("Success did not produce expected output, got: %s", output)
		}

		content, err := os.ReadFile(logFile)
		if err != nil {
			t.Fatalf("Failed to read log file: %v", err)
		}

		if !strings.Contains(string(content), "Success message: completed") {
			t.Error("Success message was not written to log file")
		}
	})

	t.Run("WarningToUser", func(t *testing.T) {
		stderrBuf.Reset()
		logger.WarningToUser("Warning to user: %s", "be careful")
		output := stderrBuf.String()

		if !strings.Contains(output, "Warning to user: be careful") {
			t.Errorf("WarningToUser did not produce expected output, got: %s", output)
		}

		content, err := os.ReadFile(logFile)
		if err != nil {
			t.Fatalf("Failed to read log file: %v", err)
		}

		if !strings.Contains(string(content), "Warning to user: be careful") {
			t.Error("WarningToUser message was not written to log file")
		}
	})

	t.Run("StatusMessage", func(t *testing.T) {
		stdoutBuf.Reset()
		logger.StatusMessage("Status: %s", "in progress")
		output := stdoutBuf.String()

		if output != "Status: in progress\n" {
			t.Errorf("StatusMessage did not produce expected output, got: %q", output)
		}

		content, err := os.ReadFile(logFile)
		if err != nil {
			t.Fatalf("Failed to read log file: %v", err)
		}

		if strings.Contains(string(content), "Status: in progress") {
			t.Error("StatusMessage should not write to log file")
		}
	})

	t.Run("Quiet suppresses InfoToUser only", func(t *testing.T) {
		quiet := NewWithOutput(false, "", false, stdoutBuf, stderrBuf)

		stdoutBuf.Reset()
		quiet.InfoToUser("hidden info")
		quiet.Success("visible success")
		quiet.StatusMessage("visible status")

		output := stdoutBuf.String()
		if strings.Contains(output, "hidden info") {
			t.Errorf("InfoToUser should be suppressed in quiet mode, got: %s", output)
		}
		if !strings.Contains(output, "visible success") || !strings.Contains(output, "visible status") {
			t.Errorf("Success and StatusMessage should always print, got: %s", output)
		}
	})

	t.Run("With debug disabled", func(t *testing.T) {
		otherLog := filepath.Join(t.TempDir(), "disabled.log")

		disabledLogger := NewWithOutput(false, otherLog, true, stdoutBuf, stderrBuf)

		stdoutBuf.Reset()
		stderrBuf.Reset()
		disabledLogger.InfoToUser("Info with logging disabled")
		disabledLogger.Success("Success with logging disabled")
		disabledLogger.WarningToUser("Warning with logging disabled")
		disabledLogger.StatusMessage("Status with logging disabled")

		output := stdoutBuf.String() + stderrBuf.String()
		if !strings.Contains(output, "Info with logging disabled") ||
			!strings.Contains(output, "Success with logging disabled") ||
			!strings.Contains(output, "Warning with logging disabled") ||
			!strings.Contains(output, "Status with logging disabled") {
			t.Errorf("User messages not printed with logging disabled, got: %s", output)
		}

		if _, err := os.Stat(otherLog); err == nil {
			t.Error("Expected no log file to be created when debug is disabled")
		}
	})
}
