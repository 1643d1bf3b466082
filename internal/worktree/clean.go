package worktree

import (
	"log/slog"

	"github.com/rhyn0/oxide-git/internal/objects"
	"gopkg.in/src-d/go-billy.v4"
)

// Cleaner empties the working tree ahead of a full restore.
type Cleaner struct {
	fs     billy.Filesystem
	ignore *IgnoreMatcher
}

func NewCleaner(fs billy.Filesystem, ignore *IgnoreMatcher) *Cleaner {
	if ignore == nil {
		ignore = metadataOnly
	}
	return &Cleaner{
		fs:     fs,
		ignore: ignore,
	}
}

// Clean removes every non-ignored file below dir, then every directory left
// empty. Directories still holding ignored files are kept.
func (c *Cleaner) Clean(dir string) error {
	return c.clean(cleanDir(dir))
}

func (c *Cleaner) clean(dir string) error {
	infos, err := c.fs.ReadDir(dir)
	if err != nil {
		return &objects.IOError{Op: "readdir", Path: dir, Err: err}
	}

	for _, info := range infos {
		relPath := joinRel(dir, info.Name())
		if c.ignore.Match(relPath) {
			continue
		}

		if !info.IsDir() {
			if err := c.fs.Remove(relPath); err != nil {
				return &objects.IOError{Op: "remove", Path: relPath, Err: err}
			}
			continue
		}

		if err := c.clean(relPath); err != nil {
			return err
		}
		if err := c.fs.Remove(relPath); err != nil {
			slog.Debug("Keeping non-empty directory",
				"path", relPath,
				"error", err)
		}
	}
	return nil
}
