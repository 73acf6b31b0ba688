package lock

import (
	"os"
	"time"

	"github.com/bashhack/filelock/internal/fsutil"
)

// Info describes a lock file as seen on disk, without taking the lock
type Info struct {
	Path    string
	Exists  bool
	ModTime time.Time
}

// Age is how long the lock file has existed as of now; zero if it does not exist
func (i Info) Age(now time.Time) time.Duration {
	if !i.Exists {
		return 0
	}
	if age := now.Sub(i.ModTime); age > 0 {
		return age
	}
	return 0
}

// Inspect reports whether the lock file at path exists and when it was created.
// A missing file is not an error.
func Inspect(path string) (Info, error) {
	info := Info{Path: path}

	mtime, err := fsutil.ModTime(path)
	if err != nil {
		if os.IsNotExist(err) {
			return info, nil
		}
		return info, err
	}

	info.Exists = true
	info.ModTime = mtime
	return info, nil
}
