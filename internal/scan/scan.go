// Package scan finds lock files under a directory tree.
package scan

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/bashhack/filelock/internal/errors"
	"github.com/bashhack/filelock/internal/lock"
)

// DefaultPattern matches lock files at any depth
const DefaultPattern = "**/*.lock"

// ErrInvalidPattern is returned by Find for patterns doublestar cannot parse
var ErrInvalidPattern = doublestar.ErrBadPattern

// Find returns every file under root matching pattern, sorted by path.
// Patterns use doublestar syntax and are relative to root.
func Find(root, pattern string) ([]lock.Info, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Wrapf(ErrInvalidPattern, "invalid pattern %q", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", root)
	}
	sort.Strings(matches)

	infos := make([]lock.Info, 0, len(matches))
	for _, m := range matches {
		info, err := lock.Inspect(filepath.Join(root, filepath.FromSlash(m)))
		if err != nil {
			return nil, err
		}
		// Released between the glob and the stat.
		if !info.Exists {
			continue
		}
		infos = append(infos, info)
	}

	return infos, nil
}
