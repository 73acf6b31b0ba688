package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bashhack/filelock/internal/config"
	"github.com/bashhack/filelock/internal/constants"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// shutdownGrace is how long a signalled command may take to stop on its own
const shutdownGrace = 5 * time.Second

func main() {
	versionInfo := config.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	app := NewDefaultApp(versionInfo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		select {
		case sig := <-c:
			_, _ = fmt.Fprintf(app.Stderr, "\nReceived signal %v, stopping filelock...\n", sig)
		case <-done:
			return
		}

		// Cancel the context so waiting stops and the child is killed
		cancel()

		// If the command doesn't unwind within the grace period, drop the lock and exit
		select {
		case <-done:
		case <-time.After(shutdownGrace):
			app.CleanupOnSignal()
			app.exit(constants.ExitInterrupted)
		}
	}()

	code := app.Execute(ctx, os.Args[1:])
	close(done)
	cancel()
	app.exit(code)
}
