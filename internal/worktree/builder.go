package worktree

import (
	"log/slog"
	"path"

	"github.com/rhyn0/oxide-git/internal/objects"
	"gopkg.in/src-d/go-billy.v4"
)

// Builder snapshots a directory of the working tree into tree and blob objects.
type Builder struct {
	fs     billy.Filesystem
	store  *objects.ObjectStore
	ignore *IgnoreMatcher
}

func NewBuilder(fs billy.Filesystem, store *objects.ObjectStore, ignore *IgnoreMatcher) *Builder {
	if ignore == nil {
		ignore = metadataOnly
	}
	return &Builder{
		fs:     fs,
		store:  store,
		ignore: ignore,
	}
}

// WriteTree stores dir (relative to the working tree root, "." for the root)
// depth first and returns the id of its tree object.
func (b *Builder) WriteTree(dir string) (string, error) {
	tree, err := b.writeTree(cleanDir(dir))
	if err != nil {
		return "", err
	}
	return tree.Hash(), nil
}

func (b *Builder) writeTree(dir string) (*objects.Tree, error) {
	infos, err := b.fs.ReadDir(dir)
	if err != nil {
		return nil, &objects.IOError{Op: "readdir", Path: dir, Err: err}
	}

	entries := make([]objects.TreeEntry, 0, len(infos))
	for _, info := range infos {
		relPath := joinRel(dir, info.Name())
		if b.ignore.Match(relPath) {
			slog.Debug("Skipping ignored path",
				"path", relPath)
			continue
		}

		var entry *objects.TreeEntry
		switch {
		case info.IsDir():
			subtree, err := b.writeTree(relPath)
			if err != nil {
				return nil, err
			}
			entry, err = objects.NewTreeEntry(objects.ModeDirectory, info.Name(), subtree.Hash())
			if err != nil {
				return nil, err
			}
		case info.Mode().IsRegular():
			blob, err := objects.NewBlobFromFile(b.fs, relPath)
			if err != nil {
				return nil, &objects.IOError{Op: "read", Path: relPath, Err: err}
			}
			if err := b.store.Store(blob); err != nil {
				return nil, err
			}
			entry, err = objects.NewTreeEntry(objects.FileModeFromPerm(info.Mode()), info.Name(), blob.Hash())
			if err != nil {
				return nil, err
			}
		default:
			slog.Debug("Skipping unsupported file type",
				"path", relPath,
				"mode", info.Mode().String())
			continue
		}

		entries = append(entries, *entry)
	}

	objects.SortTreeEntries(entries)

	tree, err := objects.NewTree(entries)
	if err != nil {
		return nil, err
	}
	if err := b.store.Store(tree); err != nil {
		return nil, err
	}

	slog.Debug("Wrote tree",
		"path", dir,
		"hash", tree.Hash(),
		"entries", len(entries))
	return tree, nil
}

func cleanDir(dir string) string {
	if dir == "" {
		return "."
	}
	return path.Clean(dir)
}

// joinRel joins slash separated relative paths, keeping the root as ".".
func joinRel(dir, name string) string {
	if dir == "." {
		return name
	}
	return path.Join(dir, name)
}
