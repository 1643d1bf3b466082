package repository

import (
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/internal/objects"
	"github.com/rhyn0/oxide-git/internal/worktree"
	"github.com/rhyn0/oxide-git/utils"
)

// WriteTree snapshots the whole working tree and returns the root tree id.
func (r *Repository) WriteTree() (string, error) {
	return r.WriteTreeAt(".")
}

// WriteTreeAt snapshots dir, a slash separated path relative to the working
// tree root. Ignore patterns still match against root relative paths.
func (r *Repository) WriteTreeAt(dir string) (string, error) {
	dir = path.Clean(dir)
	if path.IsAbs(dir) || dir == ".." || strings.HasPrefix(dir, "../") {
		return "", errors.Errorf("%s is outside the working tree", dir)
	}
	if dir != "." && r.ignore.Match(dir) {
		return "", errors.Errorf("%s is ignored", dir)
	}
	return worktree.NewBuilder(r.worktree, r.store, r.ignore).WriteTree(dir)
}

// CommitTree stores a commit of treeHash with the given parents, signed with
// the configured identity at when. HEAD is not touched.
func (r *Repository) CommitTree(treeHash string, parentHashes []string, message []byte, when time.Time) (string, error) {
	if _, err := r.store.Get(treeHash, utils.TreeObjectType); err != nil {
		return "", errors.Wrap(err, "invalid tree")
	}
	for _, parent := range parentHashes {
		if _, err := r.store.Get(parent, utils.CommitObjectType); err != nil {
			return "", errors.Wrap(err, "invalid parent")
		}
	}

	signature := r.config.Signature(when)
	commit, err := objects.NewCommit(treeHash, parentHashes, signature, signature, message)
	if err != nil {
		return "", err
	}

	if err := r.store.Store(commit); err != nil {
		return "", errors.Wrap(err, "failed to store commit")
	}
	return commit.Hash(), nil
}

// Commit snapshots the working tree and records it on top of HEAD. HEAD moves
// only after the commit object is stored.
func (r *Repository) Commit(message []byte, when time.Time) (string, error) {
	treeHash, err := r.WriteTree()
	if err != nil {
		return "", errors.Wrap(err, "failed to write tree")
	}

	current, ok, err := r.head.Read()
	if err != nil {
		return "", err
	}

	var parents []string
	if ok {
		parents = []string{current}
	}

	commitHash, err := r.CommitTree(treeHash, parents, message, when)
	if err != nil {
		return "", err
	}

	if err := r.head.Update(commitHash); err != nil {
		return "", err
	}

	slog.Debug("Created commit",
		"hash", commitHash,
		"tree", treeHash,
		"parents", len(parents))
	return commitHash, nil
}

// ReadTree replaces the working tree with treeHash: every non-ignored file is
// removed, then the tree is written out. The whole tree is resolved before
// anything is deleted.
func (r *Repository) ReadTree(treeHash string) error {
	reader := worktree.NewReader(r.worktree, r.store)

	files, err := reader.Flatten(treeHash)
	if err != nil {
		return err
	}
	for _, file := range files {
		if !r.store.Exists(file.Hash) {
			return errors.Wrapf(objects.ErrNotFound, "blob %s for %s", file.Hash, file.Path)
		}
	}

	if err := worktree.NewCleaner(r.worktree, r.ignore).Clean("."); err != nil {
		return errors.Wrap(err, "failed to clean working tree")
	}

	return reader.ReadTree(treeHash)
}

// Checkout restores the tree of commitHash and then points HEAD at it.
func (r *Repository) Checkout(commitHash string) error {
	commit, err := r.store.ReadCommit(commitHash)
	if err != nil {
		return err
	}

	if err := r.ReadTree(commit.TreeHash()); err != nil {
		return errors.Wrapf(err, "failed to restore commit %s", commitHash)
	}

	if err := r.head.Update(commitHash); err != nil {
		return err
	}

	slog.Debug("Checked out commit",
		"hash", commitHash,
		"tree", commit.TreeHash())
	return nil
}

// Log follows first parents from start, or from HEAD when start is empty.
// The newest commit comes first; an unset HEAD yields no commits.
func (r *Repository) Log(start string) ([]*objects.Commit, error) {
	if start == "" {
		current, ok, err := r.head.Read()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		start = current
	}

	var history []*objects.Commit
	for hash := start; hash != ""; {
		commit, err := r.store.ReadCommit(hash)
		if err != nil {
			return nil, err
		}
		history = append(history, commit)

		hash = ""
		if parents := commit.ParentHashes(); len(parents) > 0 {
			hash = parents[0]
		}
	}
	return history, nil
}
