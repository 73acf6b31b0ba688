package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bashhack/filelock/internal/config"
	"github.com/bashhack/filelock/internal/constants"
	"github.com/bashhack/filelock/internal/errors"
)

// NewRootCommand builds the filelock command tree bound to app
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   constants.AppName,
		Short: "Cross-process advisory file locks for shell scripts",
		Long: "filelock serializes work across processes by atomically creating a lock file.\n" +
			"The lock is held while the file exists and released by removing it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.AddGlobalFlags(root.PersistentFlags())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewConfigError("flags", nil, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	})

	root.AddCommand(
		newRunCommand(app),
		newStatusCommand(app),
		newReleaseCommand(app),
		newWaitCommand(app),
		newListCommand(app),
		newVersionCommand(app),
	)
	return root
}

// load merges every configuration source for the invoked command
func load(app *App, cmd *cobra.Command) error {
	return app.Config.Load(cmd.Flags())
}

// usageArgs marks argument count errors as usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.NewConfigError("arguments", nil, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
		}
		return nil
	}
}

func newRunCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <lockfile> [--] <command> [args...]",
		Short: "Run a command while holding a lock",
		Long: "Acquire the lock, run the command, and release the lock however the command ends.\n" +
			"Exits 75 if the lock stays contended past --timeout, otherwise with the command's status.",
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(app, cmd); err != nil {
				return err
			}
			command := args[1:]
			if command[0] == "--" {
				command = command[1:]
			}
			if len(command) == 0 {
				return errors.NewConfigError("arguments", nil, errors.Wrap(errors.ErrInvalidConfiguration, "missing command to run"))
			}
			app.Config.LockPath = args[0]
			return app.RunLocked(cmd.Context(), command[0], command[1:])
		},
	}
	// Everything after the command name belongs to the command.
	cmd.Flags().SetInterspersed(false)
	config.AddAcquireFlags(cmd.Flags())
	return cmd
}

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <lockfile>",
		Short: "Show whether a lock is held",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(app, cmd); err != nil {
				return err
			}
			app.Config.LockPath = args[0]
			return app.Status()
		},
	}
}

func newReleaseCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release --force <lockfile>",
		Short: "Remove a stale lock file",
		Long:  "Remove a lock file left behind by a process that died while holding it.",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(app, cmd); err != nil {
				return err
			}
			app.Config.LockPath = args[0]
			return app.ReleaseLock()
		},
	}
	config.AddReleaseFlags(cmd.Flags())
	return cmd
}

func newWaitCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait <lockfile>",
		Short: "Block until a lock is released",
		Long:  "Block until the lock file disappears, without acquiring it. Exits 75 on timeout.",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(app, cmd); err != nil {
				return err
			}
			app.Config.LockPath = args[0]
			return app.Wait(cmd.Context())
		},
	}
	config.AddAcquireFlags(cmd.Flags())
	return cmd
}

func newListCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [root]",
		Short: "List lock files under a directory",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(app, cmd); err != nil {
				return err
			}
			if len(args) == 1 {
				app.Config.Root = args[0]
			}
			return app.List()
		},
	}
	config.AddListFlags(cmd.Flags())
	return cmd
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowVersion()
		},
	}
}

// Execute runs the command line in args and returns the process exit code
func (a *App) Execute(ctx context.Context, args []string) int {
	root := NewRootCommand(a)
	root.SetArgs(args)
	root.SetIn(a.Stdin)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		if a.Logger != nil {
			a.Logger.Error("%v", err)
		} else {
			_, _ = fmt.Fprintf(a.Stderr, "❌ Error: %v\n", err)
		}
	}

	if closeErr := a.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return ExitCode(err)
}
