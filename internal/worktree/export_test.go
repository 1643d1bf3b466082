package worktree

import (
	"os"
	"testing"

	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/internal/objects"
	"github.com/rhyn0/oxide-git/testutils"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/memfs"
)

// newTestWorktree returns an in-memory working tree with an initialized store under .ogit.
func newTestWorktree(t *testing.T) (billy.Filesystem, *objects.ObjectStore) {
	t.Helper()

	wt := memfs.New()
	return wt, newStoreIn(t, wt)
}

// newStoreIn initializes an object store in the metadata directory of wt.
func newStoreIn(t *testing.T, wt billy.Filesystem) *objects.ObjectStore {
	t.Helper()

	meta, err := wt.Chroot(constants.Ogit)
	if err != nil {
		t.Fatalf("Failed to chroot into %s: %v", constants.Ogit, err)
	}
	store := objects.NewObjectStore(meta)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to init object store: %v", err)
	}
	return store
}

// newTestMatcher compiles patterns and fails the test on error.
func newTestMatcher(t *testing.T, patterns ...string) *IgnoreMatcher {
	t.Helper()

	matcher, err := NewIgnoreMatcher(patterns)
	if err != nil {
		t.Fatalf("Failed to compile ignore patterns %q: %v", patterns, err)
	}
	return matcher
}

// writeTestTree snapshots the root of wt and fails the test on error.
func writeTestTree(t *testing.T, wt billy.Filesystem, store *objects.ObjectStore, ignore *IgnoreMatcher) string {
	t.Helper()

	hash, err := NewBuilder(wt, store, ignore).WriteTree(".")
	if err != nil {
		t.Fatalf("Failed to write tree: %v", err)
	}
	return hash
}

// assertPerm checks the permission bits of name on fs.
func assertPerm(t *testing.T, fs billy.Filesystem, name string, expected os.FileMode) {
	t.Helper()

	info, err := fs.Stat(name)
	if err != nil {
		t.Fatalf("Failed to stat %s: %v", name, err)
	}
	if info.Mode().Perm() != expected {
		t.Errorf("Permissions of %s = %o, want %o", name, info.Mode().Perm(), expected)
	}
}

// populateSample writes a small project layout into wt.
func populateSample(t *testing.T, wt billy.Filesystem) {
	t.Helper()

	testutils.WriteFile(t, wt, "README.md", []byte("# Project\n"), 0644)
	testutils.WriteFile(t, wt, "run.sh", []byte("#!/bin/sh\necho hi\n"), 0755)
	testutils.WriteFile(t, wt, "src/main.go", []byte("package main\n"), 0644)
	testutils.WriteFile(t, wt, "src/lib/util.go", []byte("package lib\n"), 0644)
}
