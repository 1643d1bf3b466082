package objects

import (
	"testing"
	"time"

	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/testutils"
	"github.com/rhyn0/oxide-git/utils"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/memfs"
)

// assertBlobHash verifies blob hash matches expected value for given content.
func assertBlobHash(t *testing.T, blob *Blob, content []byte) {
	t.Helper()

	expectedHash, err := utils.ComputeHash(content, utils.BlobObjectType)
	if err != nil {
		t.Fatalf("Hash computation failed: %v", err)
	}

	if blob.Hash() != expectedHash {
		t.Fatalf("Expected hash [%s], got [%s]", expectedHash, blob.Hash())
	}
}

// assertBlobContent verifies blob stores exact content and correct size.
func assertBlobContent(t *testing.T, blob *Blob, expectedContent []byte) {
	t.Helper()

	if blob.Size() != len(expectedContent) {
		t.Fatalf("Expected size %d, got %d", len(expectedContent), blob.Size())
	}

	if string(blob.Content()) != string(expectedContent) {
		t.Fatalf("Expected content [%q], got [%q]", expectedContent, blob.Content())
	}
}

// newTestStore returns an initialized store backed by an in-memory metadata directory.
func newTestStore(t *testing.T) (*ObjectStore, billy.Filesystem) {
	t.Helper()

	fs := memfs.New()
	store := NewObjectStore(fs)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to init object store: %v", err)
	}

	return store, fs
}

// newDiskStore returns an initialized store rooted in a temporary directory on disk.
func newDiskStore(t *testing.T) (*ObjectStore, string) {
	t.Helper()

	fs, root := testutils.SetupTestWorktree(t)
	store := NewObjectStore(fs)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to init object store: %v", err)
	}

	return store, root
}

// createTreeEntry creates tree entry and fails test on error.
func createTreeEntry(t *testing.T, mode FileMode, name, hash string) TreeEntry {
	t.Helper()

	entry, err := NewTreeEntry(mode, name, hash)
	if err != nil {
		t.Fatalf("Failed to create tree entry: %v", err)
	}

	return *entry
}

// createTree creates tree from entries and fails test on error.
func createTree(t *testing.T, entries []TreeEntry) *Tree {
	t.Helper()

	tree, err := NewTree(entries)
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	return tree
}

// createAndStoreTree creates tree from entries, stores it, and returns tree.
func createAndStoreTree(t *testing.T, store *ObjectStore, entries []TreeEntry) *Tree {
	t.Helper()

	tree := createTree(t, entries)
	if err := store.Store(tree); err != nil {
		t.Fatalf("Failed to store tree: %v", err)
	}

	return tree
}

// assertTreeEntryEqual verifies two tree entries match.
func assertTreeEntryEqual(t *testing.T, actual, expected TreeEntry) {
	t.Helper()

	if actual.Name() != expected.Name() {
		t.Errorf("Entry name mismatch: expected %s, got %s", expected.Name(), actual.Name())
	}
	if actual.Hash() != expected.Hash() {
		t.Errorf("Entry hash mismatch: expected %s, got %s", expected.Hash(), actual.Hash())
	}
	if actual.Mode() != expected.Mode() {
		t.Errorf("Entry mode mismatch: expected %s, got %s", expected.Mode(), actual.Mode())
	}
	if actual.Type() != expected.Type() {
		t.Errorf("Entry type mismatch: expected %s, got %s", expected.Type(), actual.Type())
	}
}

// createTestSignature returns a signature truncated to the second in the given zone.
func createTestSignature(name, email string, location *time.Location) Signature {
	return Signature{
		Name:  name,
		Email: email,
		When:  time.Now().In(location).Truncate(time.Second),
	}
}

// createAndStoreInitialCommit creates initial commit, stores it, and returns commit.
func createAndStoreInitialCommit(t *testing.T, store *ObjectStore) *Commit {
	t.Helper()

	author := createTestSignature(testutils.RandomString(10), testutils.RandomString(20), time.UTC)
	commit, err := NewInitialCommit(testutils.RandomHash(), author, []byte(testutils.RandomString(50)))
	if err != nil {
		t.Fatalf("Failed to create initial commit: %v", err)
	}

	if err := store.Store(commit); err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	return commit
}

// createAndStoreCommit creates commit, stores it, and returns commit.
func createAndStoreCommit(t *testing.T, parentHash string, store *ObjectStore) *Commit {
	t.Helper()

	author := createTestSignature(testutils.RandomString(10), testutils.RandomString(20), time.UTC)
	commit, err := NewCommit(testutils.RandomHash(), []string{parentHash}, author, author, []byte(testutils.RandomString(50)))
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	if err := store.Store(commit); err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	return commit
}

// assertSignatureEqual verifies identity and timestamp (to the second and offset) match.
func assertSignatureEqual(t *testing.T, actual, expected Signature) {
	t.Helper()

	if actual.String() != expected.String() {
		t.Errorf("Expected identity [%s], got [%s]", expected.String(), actual.String())
	}
	if actual.When.Unix() != expected.When.Unix() {
		t.Errorf("Expected timestamp [%d], got [%d]", expected.When.Unix(), actual.When.Unix())
	}
	_, expectedOffset := expected.When.Zone()
	_, actualOffset := actual.When.Zone()
	if actualOffset != expectedOffset {
		t.Errorf("Expected UTC offset [%d], got [%d]", expectedOffset, actualOffset)
	}
}

// objectFilePath returns the path of a stored object relative to the metadata directory.
func objectFilePath(hash string) string {
	_, rel := utils.ObjectPath(hash)
	return constants.Objects + "/" + rel
}
