package repository

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/internal/objects"
	"github.com/rhyn0/oxide-git/internal/worktree"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/util"
)

// ErrNotRepository is returned when the working tree has no metadata directory.
var ErrNotRepository = errors.New("not an ogit repository")

// Repository binds a working tree to its object store, HEAD and config.
type Repository struct {
	worktree billy.Filesystem
	meta     billy.Filesystem
	store    *objects.ObjectStore
	head     *Head
	config   *Config
	ignore   *worktree.IgnoreMatcher
}

// InitRepository creates .ogit with an empty object store and a default
// config inside wt. HEAD stays unset until the first commit.
func InitRepository(wt billy.Filesystem) error {
	if err := checkRepositoryDoesNotExist(wt); err != nil {
		return err
	}

	// Track if initialization of ogit directories and files was successful.
	// Anything created before a failure is removed again.
	var initSuccess bool
	defer func() {
		if !initSuccess {
			cleanupRepository(wt)
		}
	}()

	if err := wt.MkdirAll(constants.Ogit, constants.DirPerms); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", constants.Ogit)
	}

	meta, err := wt.Chroot(constants.Ogit)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", constants.Ogit)
	}

	if err := objects.NewObjectStore(meta).Init(); err != nil {
		return errors.Wrap(err, "failed to create object store")
	}

	if err := DefaultConfig().Save(meta); err != nil {
		return errors.Wrap(err, "failed to create config file")
	}

	initSuccess = true
	return nil
}

func checkRepositoryDoesNotExist(wt billy.Filesystem) error {
	_, err := wt.Stat(constants.Ogit)

	// If path doesn't exist there is no error
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return errors.Wrap(err, "failed to check repository path")
	}

	return errors.Wrapf(objects.ErrAlreadyExists, "repository at %s", wt.Join(wt.Root(), constants.Ogit))
}

// Removes the entire .ogit directory if it exists
func cleanupRepository(wt billy.Filesystem) {
	if _, err := wt.Stat(constants.Ogit); err == nil {
		slog.Debug("Cleaning up partial repository initialization",
			"path", constants.Ogit)

		if err := util.RemoveAll(wt, constants.Ogit); err != nil {
			slog.Warn("Failed to cleanup repository directory",
				"path", constants.Ogit,
				"error", err)
		} else {
			slog.Debug("Successfully cleaned up repository directory",
				"path", constants.Ogit)
		}
	}
}

// Open binds an initialized working tree. ignorePatterns are raw ignore file lines.
func Open(wt billy.Filesystem, ignorePatterns []string) (*Repository, error) {
	info, err := wt.Stat(constants.Ogit)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, errors.Wrapf(ErrNotRepository, "no %s directory in %s", constants.Ogit, wt.Root())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to check repository path")
	}

	meta, err := wt.Chroot(constants.Ogit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", constants.Ogit)
	}

	config, err := LoadConfig(meta)
	if err != nil {
		return nil, err
	}

	ignore, err := worktree.NewIgnoreMatcher(ignorePatterns)
	if err != nil {
		return nil, err
	}

	return &Repository{
		worktree: wt,
		meta:     meta,
		store:    objects.NewObjectStore(meta),
		head:     NewHead(meta),
		config:   config,
		ignore:   ignore,
	}, nil
}

// OpenWithIgnoreFile opens wt using the patterns of the ignore file named in its config.
func OpenWithIgnoreFile(wt billy.Filesystem) (*Repository, error) {
	repo, err := Open(wt, nil)
	if err != nil {
		return nil, err
	}

	patterns, err := worktree.ReadIgnoreFile(wt, repo.config.IgnoreFile)
	if err != nil {
		return nil, err
	}

	repo.ignore, err = worktree.NewIgnoreMatcher(patterns)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *Repository) Store() *objects.ObjectStore {
	return r.store
}

func (r *Repository) Head() *Head {
	return r.head
}

func (r *Repository) Config() *Config {
	return r.config
}

// Worktree returns the filesystem rooted at the working tree.
func (r *Repository) Worktree() billy.Filesystem {
	return r.worktree
}
