package repository

import (
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/internal/objects"
	"github.com/rhyn0/oxide-git/utils"
	"gopkg.in/src-d/go-billy.v4"
)

// Head is the single mutable ref: the id of the current commit, or unset
// before the first commit.
type Head struct {
	fs billy.Filesystem // rooted at the metadata directory
}

func NewHead(fs billy.Filesystem) *Head {
	return &Head{
		fs: fs,
	}
}

// Read returns the current commit id. ok is false while HEAD is unset, which
// covers both a missing and a blank HEAD file.
func (h *Head) Read() (hash string, ok bool, err error) {
	content, err := objects.ReadFile(h.fs, constants.Head)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &objects.IOError{Op: "read", Path: constants.Head, Err: err}
	}

	hash = strings.TrimSpace(string(content))
	if hash == "" {
		return "", false, nil
	}
	if !utils.IsValidHash(hash) {
		return "", false, errors.Wrapf(objects.ErrInvalidHash, "HEAD holds %q", hash)
	}
	return hash, true, nil
}

// Update points HEAD at hash. The last writer wins.
func (h *Head) Update(hash string) error {
	if !utils.IsValidHash(hash) {
		return errors.Wrapf(objects.ErrInvalidHash, "%q", hash)
	}

	if err := writeFileAtomic(h.fs, constants.Head, []byte(hash+"\n"), constants.TempHeadPrefix); err != nil {
		return err
	}

	slog.Debug("Updated HEAD",
		"hash", hash)
	return nil
}

// writeFileAtomic writes content next to name and renames it into place, so
// readers see either the old or the new file.
func writeFileAtomic(fs billy.Filesystem, name string, content []byte, tempPrefix string) error {
	dir := fs.Join(name, "..")

	tmp, err := fs.TempFile(dir, tempPrefix)
	if err != nil {
		return &objects.IOError{Op: "create", Path: dir, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		removeTemp(fs, tmpName)
		return &objects.IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		removeTemp(fs, tmpName)
		return &objects.IOError{Op: "close", Path: tmpName, Err: err}
	}
	if err := fs.Rename(tmpName, name); err != nil {
		removeTemp(fs, tmpName)
		return &objects.IOError{Op: "rename", Path: name, Err: err}
	}
	return nil
}

func removeTemp(fs billy.Filesystem, name string) {
	if err := fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to remove temporary file",
			"path", name,
			"error", err)
	}
}
