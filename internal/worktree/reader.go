package worktree

import (
	"log/slog"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/internal/objects"
	"gopkg.in/src-d/go-billy.v4"
)

// FileEntry is a blob reachable from a tree, addressed by its slash separated
// path relative to the tree root.
type FileEntry struct {
	Path string
	Hash string
	Mode objects.FileMode
}

// Reader restores trees into the working tree.
type Reader struct {
	fs    billy.Filesystem
	store *objects.ObjectStore
}

func NewReader(fs billy.Filesystem, store *objects.ObjectStore) *Reader {
	return &Reader{
		fs:    fs,
		store: store,
	}
}

// Flatten walks treeHash recursively and lists every blob in tree order.
func (r *Reader) Flatten(treeHash string) ([]FileEntry, error) {
	var files []FileEntry
	if err := r.flatten(treeHash, "", &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *Reader) flatten(treeHash, prefix string, files *[]FileEntry) error {
	tree, err := r.store.ReadTree(treeHash)
	if err != nil {
		return err
	}

	for _, entry := range tree.Entries() {
		entryPath := path.Join(prefix, entry.Name())
		if entry.IsDirectory() {
			if err := r.flatten(entry.Hash(), entryPath, files); err != nil {
				return err
			}
			continue
		}
		*files = append(*files, FileEntry{
			Path: entryPath,
			Hash: entry.Hash(),
			Mode: entry.Mode(),
		})
	}
	return nil
}

// ReadTree writes every blob of treeHash into the working tree, creating
// parent directories as needed. Files outside the tree are left alone; callers
// replacing the whole working tree clean it first.
func (r *Reader) ReadTree(treeHash string) error {
	files, err := r.Flatten(treeHash)
	if err != nil {
		return err
	}

	for _, file := range files {
		if dir := path.Dir(file.Path); dir != "." {
			if err := r.fs.MkdirAll(dir, constants.DirPerms); err != nil && !errors.Is(err, os.ErrExist) {
				return &objects.IOError{Op: "mkdir", Path: dir, Err: err}
			}
		}

		blob, err := r.store.ReadBlob(file.Hash)
		if err != nil {
			return errors.Wrapf(err, "failed to restore %s", file.Path)
		}

		if err := r.writeFile(file.Path, blob.Content(), file.Mode.Perm()); err != nil {
			return err
		}
	}

	slog.Debug("Restored tree",
		"hash", treeHash,
		"files", len(files))
	return nil
}

// chmoder is implemented by files backed by the OS, where OpenFile is
// subject to the process umask.
type chmoder interface {
	Chmod(mode os.FileMode) error
}

// writeFile replaces name with content. The file is recreated so perm applies
// even when name already exists.
func (r *Reader) writeFile(name string, content []byte, perm os.FileMode) error {
	if err := r.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &objects.IOError{Op: "remove", Path: name, Err: err}
	}

	f, err := r.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return &objects.IOError{Op: "create", Path: name, Err: err}
	}

	if c, ok := f.(chmoder); ok {
		if err := c.Chmod(perm); err != nil {
			f.Close()
			return &objects.IOError{Op: "chmod", Path: name, Err: err}
		}
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return &objects.IOError{Op: "write", Path: name, Err: err}
	}
	if err := f.Close(); err != nil {
		return &objects.IOError{Op: "close", Path: name, Err: err}
	}
	return nil
}
