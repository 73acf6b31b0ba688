// Package runner executes commands on behalf of the filelock tool while a lock is held.
package runner

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/bashhack/filelock/internal/errors"
)

// CommandExecutor defines an interface for executing commands
type CommandExecutor interface {
	// Execute runs a command to completion
	Execute(ctx context.Context, name string, args []string) error
}

// ExecExecutor is the default implementation of CommandExecutor
// that delegates to the os/exec package
type ExecExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecExecutor creates an ExecExecutor wired to the process's standard streams
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Execute implements CommandExecutor.Execute. Failures are returned as
// *errors.CommandError wrapping errors.ErrCommandFailed, carrying the exit code.
func (e *ExecExecutor) Execute(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return errors.NewCommandError(name, args, exitCode, errors.Wrap(errors.ErrCommandFailed, err.Error()))
}
