package repository

import (
	"testing"
	"time"

	"github.com/rhyn0/oxide-git/testutils"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/memfs"
)

// newTestRepository initializes and opens a repository over an in-memory working tree.
func newTestRepository(t *testing.T, ignorePatterns ...string) (*Repository, billy.Filesystem) {
	t.Helper()

	wt := memfs.New()
	return initAndOpen(t, wt, ignorePatterns), wt
}

// newDiskRepository initializes and opens a repository in a temporary directory.
func newDiskRepository(t *testing.T, ignorePatterns ...string) (*Repository, billy.Filesystem) {
	t.Helper()

	wt, _ := testutils.SetupTestWorktree(t)
	return initAndOpen(t, wt, ignorePatterns), wt
}

func initAndOpen(t *testing.T, wt billy.Filesystem, ignorePatterns []string) *Repository {
	t.Helper()

	if err := InitRepository(wt); err != nil {
		t.Fatalf("InitRepository failed: %v", err)
	}
	repo, err := Open(wt, ignorePatterns)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return repo
}

// testTime returns a fixed instant in a zone offset by the given seconds.
func testTime(offset int) time.Time {
	return time.Unix(1700000000, 0).In(time.FixedZone("", offset))
}

// commitTest commits the working tree and fails the test on error.
func commitTest(t *testing.T, repo *Repository, message string) string {
	t.Helper()

	hash, err := repo.Commit([]byte(message), testTime(0))
	if err != nil {
		t.Fatalf("Commit %q failed: %v", message, err)
	}
	return hash
}

// assertHead checks HEAD points at expected.
func assertHead(t *testing.T, repo *Repository, expected string) {
	t.Helper()

	hash, ok, err := repo.Head().Read()
	if err != nil {
		t.Fatalf("Failed to read HEAD: %v", err)
	}
	if !ok {
		t.Fatalf("Expected HEAD to point at %s, but it is unset", expected)
	}
	if hash != expected {
		t.Errorf("Expected HEAD %s, got %s", expected, hash)
	}
}
