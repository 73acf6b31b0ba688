package lock

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	helperEnv        = "FILELOCK_TEST_HELPER"
	helperLockEnv    = "FILELOCK_TEST_LOCK"
	helperCounterEnv = "FILELOCK_TEST_COUNTER"
	helperCyclesEnv  = "FILELOCK_TEST_CYCLES"
)

// TestHelperProcess is not a real test. It is the body of the worker
// processes started by TestMultiprocessLocking.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	cycles, err := strconv.Atoi(os.Getenv(helperCyclesEnv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad cycle count: %v\n", err)
		os.Exit(2)
	}

	lk := New(os.Getenv(helperLockEnv), WithDefaultTimeout(WaitForever))
	counter := os.Getenv(helperCounterEnv)

	for i := 0; i < cycles; i++ {
		err := lk.With(func() error {
			if !lk.IsLocked() {
				return fmt.Errorf("cycle %d: lock not held", i)
			}
			return bumpCounter(counter)
		}, WithPollInterval(time.Millisecond))
		if err != nil {
			fmt.Fprintf(os.Stderr, "worker %d: %v\n", os.Getpid(), err)
			os.Exit(1)
		}
	}

	os.Exit(0)
}

func TestMultiprocessLocking(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping multi-process test in short mode")
	}
	t.Parallel()

	const (
		processes = 8
		cycles    = 64
	)

	dir := t.TempDir()
	lockFile := filepath.Join(dir, "shared-locks", "simple.lock")
	counter := filepath.Join(dir, "counter")

	var g errgroup.Group
	for i := 0; i < processes; i++ {
		cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
		cmd.Env = append(os.Environ(),
			helperEnv+"=1",
			helperLockEnv+"="+lockFile,
			helperCounterEnv+"="+counter,
			helperCyclesEnv+"="+strconv.Itoa(cycles),
		)

		g.Go(func() error {
			out, err := cmd.CombinedOutput()
			if err != nil {
				return fmt.Errorf("worker failed: %v\n%s", err, out)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if got := readCounter(t, counter); got != processes*cycles {
		t.Errorf("Expected counter %d, got %d (lost updates across processes)", processes*cycles, got)
	}

	if _, err := os.Stat(lockFile); !os.IsNotExist(err) {
		t.Error("Expected no lock file to remain after all workers exit")
	}
}
