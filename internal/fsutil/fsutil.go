// Package fsutil holds the small set of local filesystem operations the lock
// and the command-line tool need: ensuring directories, existence checks,
// tolerant removal and locator parsing.
package fsutil

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/bashhack/filelock/internal/errors"
)

// DirEnsurer creates a directory, including any missing parents.
// Implementations must succeed when the directory already exists.
type DirEnsurer interface {
	EnsureDir(dir string) error
}

// Local implements DirEnsurer against the local filesystem
type Local struct {
	// Perm is the permission used for new directories; zero means 0755
	Perm os.FileMode
}

// EnsureDir implements DirEnsurer.EnsureDir
func (l Local) EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}

	perm := l.Perm
	if perm == 0 {
		perm = 0755
	}

	if err := os.MkdirAll(dir, perm); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}
	return nil
}

// EnsureParentDir makes sure the directory holding path exists
func EnsureParentDir(d DirEnsurer, path string) error {
	return d.EnsureDir(filepath.Dir(path))
}

// Exists reports whether path exists. Errors other than "not exist" count as existing,
// since the entry is evidently there even if it cannot be inspected.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !os.IsNotExist(err)
}

// Remove deletes path. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ModTime returns the modification time of path
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// LocalPath converts a locator into a filesystem path. Plain paths are returned
// unchanged; file:// URLs are reduced to their path. Any other scheme is rejected.
func LocalPath(locator string) (string, error) {
	u, err := url.Parse(locator)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// single-letter schemes are Windows drive letters
		return locator, nil
	}
	if u.Scheme != "file" {
		return "", errors.Errorf("unsupported locator scheme %q in %s: lock files must be local", u.Scheme, locator)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", errors.Errorf("remote host %q in %s: lock files must be local", u.Host, locator)
	}
	return u.Path, nil
}
