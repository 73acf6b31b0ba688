package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bashhack/filelock/internal/common"
	"github.com/bashhack/filelock/internal/config"
	"github.com/bashhack/filelock/internal/constants"
	"github.com/bashhack/filelock/internal/errors"
	"github.com/bashhack/filelock/internal/fsutil"
	"github.com/bashhack/filelock/internal/lock"
	"github.com/bashhack/filelock/internal/logger"
	"github.com/bashhack/filelock/internal/runner"
	"github.com/bashhack/filelock/internal/scan"
	"github.com/bashhack/filelock/internal/watch"
)

// Logger alias to common.Logger
type Logger = common.Logger

// AppOptions contains app configuration and dependencies
type AppOptions struct {
	// Required
	Config *config.Config

	// Optional components
	Logger   Logger
	Executor runner.CommandExecutor

	// I/O dependencies
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	Exit func(code int)
	Now  func() time.Time
}

// App is the main filelock application
type App struct {
	Config   *config.Config
	Logger   Logger
	Executor runner.CommandExecutor

	// I/O streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	exit func(code int)
	now  func() time.Time

	// lock is set by run so signal cleanup can drop it
	mu          sync.Mutex
	lock        *lock.Lock
	initialized bool
}

// NewDefaultApp creates an App with standard dependencies
func NewDefaultApp(versionInfo config.VersionInfo) *App {
	cfg := config.New()
	cfg.VersionInfo = versionInfo

	return NewApp(AppOptions{
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Exit:   os.Exit,
		Now:    time.Now,
	})
}

// NewApp creates an App with custom dependencies
func NewApp(opts AppOptions) *App {
	if opts.Config == nil {
		panic("Config is required in AppOptions")
	}

	app := &App{
		Config:   opts.Config,
		Logger:   opts.Logger,
		Executor: opts.Executor,
		Stdin:    opts.Stdin,
		Stdout:   opts.Stdout,
		Stderr:   opts.Stderr,
		exit:     opts.Exit,
		now:      opts.Now,
	}

	// Set defaults for nil dependencies
	if app.Stdin == nil {
		app.Stdin = os.Stdin
	}
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	if app.now == nil {
		app.now = time.Now
	}

	return app
}

// Initialize validates the configuration and sets up components not
// provided during construction. It is safe to call more than once.
func (a *App) Initialize() error {
	if a.initialized {
		return nil
	}

	if err := a.Config.Finalize(); err != nil {
		// Config.Finalize() already returns a properly wrapped error
		if errors.Is(err, errors.ErrInvalidConfiguration) {
			return err
		}
		return errors.Wrap(errors.ErrInvalidConfiguration, err.Error())
	}

	if a.Logger == nil {
		a.Logger = logger.NewWithOutput(a.Config.Debug, a.Config.LogFile, a.Config.Verbose, a.Stdout, a.Stderr)
	}

	if a.Executor == nil {
		executor := runner.NewExecExecutor()
		executor.Stdin, executor.Stdout, executor.Stderr = a.Stdin, a.Stdout, a.Stderr
		a.Executor = executor
	}

	if a.Config.ConfigFile != "" {
		a.Logger.Info("Loaded configuration from %s", a.Config.ConfigFile)
	}

	a.initialized = true
	return nil
}

// acquireOptions translates the configured wait policy into lock options
func (a *App) acquireOptions() []lock.AcquireOption {
	opts := []lock.AcquireOption{lock.WithPollInterval(a.Config.PollInterval)}
	if a.Config.MaxPollInterval > 0 {
		opts = append(opts, lock.WithBackoff(a.Config.MaxPollInterval))
	}
	return opts
}

// RunLocked acquires the configured lock, runs the command while holding it,
// and releases the lock however the command ends.
func (a *App) RunLocked(ctx context.Context, name string, args []string) error {
	if err := a.Initialize(); err != nil {
		return err
	}

	l := lock.New(a.Config.LockPath,
		lock.WithDefaultTimeout(a.Config.Timeout),
		lock.WithLogger(a.Logger),
	)
	a.mu.Lock()
	a.lock = l
	a.mu.Unlock()

	a.Logger.InfoToUser("Waiting for lock %s", a.Config.LockPath)
	h, err := l.AcquireContext(ctx, a.acquireOptions()...)
	if err != nil {
		return err
	}
	defer h.Release()

	a.Logger.InfoToUser("Lock acquired, running %s", name)
	if err := a.Executor.Execute(ctx, name, args); err != nil {
		// A killed child reports no exit status; keep the interruption visible.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Join(err, ctxErr)
		}
		return err
	}

	a.Logger.Info("Command %s finished while holding %s", name, a.Config.LockPath)
	return nil
}

// Status reports whether the configured lock file exists and for how long
func (a *App) Status() error {
	if err := a.Initialize(); err != nil {
		return err
	}

	info, err := lock.Inspect(a.Config.LockPath)
	if err != nil {
		return errors.NewLockError(a.Config.LockPath, 0, err)
	}

	if !info.Exists {
		a.Logger.StatusMessage("%s: free", info.Path)
		return nil
	}

	a.Logger.StatusMessage("%s: held since %s (%s)",
		info.Path,
		info.ModTime.Format(time.RFC3339),
		humanize.RelTime(info.ModTime, a.now(), "ago", "from now"))
	return nil
}

// ReleaseLock removes the configured lock file out-of-band. The process
// running this command never holds the lock, so --force is required.
func (a *App) ReleaseLock() error {
	if err := a.Initialize(); err != nil {
		return err
	}

	if !a.Config.Force {
		return errors.NewConfigError(config.FlagForce, false,
			errors.Wrap(errors.ErrInvalidConfiguration, "refusing to remove a lock held by another process without --force"))
	}

	info, err := lock.Inspect(a.Config.LockPath)
	if err != nil {
		return errors.NewLockError(a.Config.LockPath, 0, err)
	}
	if !info.Exists {
		a.Logger.WarningToUser("%s is not held, nothing to release", a.Config.LockPath)
		return nil
	}

	if err := fsutil.Remove(a.Config.LockPath); err != nil {
		return errors.NewLockError(a.Config.LockPath, 0, err)
	}

	a.Logger.Success("Removed %s (created %s)", a.Config.LockPath,
		humanize.RelTime(info.ModTime, a.now(), "ago", "from now"))
	return nil
}

// Wait blocks until the configured lock file disappears or the timeout elapses
func (a *App) Wait(ctx context.Context) error {
	if err := a.Initialize(); err != nil {
		return err
	}

	timeout := a.Config.Timeout
	if timeout >= 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := a.now()
	a.Logger.InfoToUser("Waiting for %s to be released", a.Config.LockPath)

	err := watch.WaitForRemoval(ctx, a.Config.LockPath, a.Config.PollInterval, a.Logger)
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(a.Config.LockPath, timeout, a.now().Sub(start))
	}
	if err != nil {
		return err
	}

	a.Logger.Success("%s is free", a.Config.LockPath)
	return nil
}

// List prints every lock file under the configured root with its age
func (a *App) List() error {
	if err := a.Initialize(); err != nil {
		return err
	}

	infos, err := scan.Find(a.Config.Root, a.Config.Pattern)
	if errors.Is(err, scan.ErrInvalidPattern) {
		return errors.NewConfigError(config.FlagPattern, a.Config.Pattern, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		a.Logger.InfoToUser("No lock files matching %s under %s", a.Config.Pattern, a.Config.Root)
		return nil
	}

	now := a.now()
	for _, info := range infos {
		name := info.Path
		if rel, err := filepath.Rel(a.Config.Root, info.Path); err == nil {
			name = rel
		}
		a.Logger.StatusMessage("%s\t%s", name, humanize.RelTime(info.ModTime, now, "ago", "from now"))
	}
	a.Logger.InfoToUser("%s held under %s", pluralLocks(len(infos)), a.Config.Root)
	return nil
}

func pluralLocks(n int) string {
	if n == 1 {
		return "1 lock file"
	}
	return fmt.Sprintf("%s lock files", humanize.Comma(int64(n)))
}

// ShowVersion displays version information
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "%s %s (%s) built on %s\n",
		constants.AppName,
		a.Config.VersionInfo.Version,
		a.Config.VersionInfo.Commit,
		a.Config.VersionInfo.Date)
}

// Close releases resources held by the App
func (a *App) Close() error {
	var errs []error

	// Drop a lock left behind by an interrupted run
	a.mu.Lock()
	l := a.lock
	a.lock = nil
	a.mu.Unlock()
	if l != nil {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if c, ok := a.Logger.(io.Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "❌ Failed to close logger: %v\n", err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CleanupOnSignal releases the lock when the process is being torn down
func (a *App) CleanupOnSignal() {
	if err := a.Close(); err != nil {
		_, _ = fmt.Fprintf(a.Stderr, "❌ Error during cleanup: %v\n", err)
	}
}

// ExitCode maps an error returned by a command to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return constants.ExitOK
	}

	if errors.Is(err, errors.ErrTimeout) {
		return constants.ExitTimeout
	}

	var cmdErr *errors.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}

	if errors.Is(err, errors.ErrInvalidConfiguration) {
		return constants.ExitUsage
	}

	if errors.Is(err, context.Canceled) {
		return constants.ExitInterrupted
	}

	return constants.ExitFailure
}
