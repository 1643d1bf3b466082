package testutils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rhyn0/oxide-git/internal/constants"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"
	"gopkg.in/src-d/go-billy.v4/util"
)

// RandomString generates a random hex string of n bytes
func RandomString(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// RandomHash generates a random 40-character SHA-1 hash
func RandomHash() string {
	return RandomString(constants.HashByteLength)
}

// SetupTestWorktree creates a temporary directory and returns an OS backed filesystem rooted at it.
func SetupTestWorktree(t *testing.T) (billy.Filesystem, string) {
	t.Helper()

	root := t.TempDir()
	return osfs.New(root), root
}

// CreateTestFile creates a file with given content in the specified directory.
// Returns the full path to the created file.
func CreateTestFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(filePath), constants.DirPerms); err != nil {
		t.Fatalf("Failed to create parent of test file %s: %v", filename, err)
	}
	if err := os.WriteFile(filePath, content, constants.FilePerms); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}

	return filePath
}

// WriteFile creates filename (and its parents) on fs with content and perm.
func WriteFile(t *testing.T, fs billy.Filesystem, filename string, content []byte, perm os.FileMode) {
	t.Helper()

	if dir := filepath.Dir(filename); dir != "." {
		if err := fs.MkdirAll(dir, constants.DirPerms); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
	if err := util.WriteFile(fs, filename, content, perm); err != nil {
		t.Fatalf("Failed to write %s: %v", filename, err)
	}
}

// ReadFile returns the content of filename on fs, failing the test if it cannot be read.
func ReadFile(t *testing.T, fs billy.Filesystem, filename string) []byte {
	t.Helper()

	f, err := fs.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", filename, err)
	}
	return content
}

// AssertFileContent checks that filename on fs holds exactly expected.
func AssertFileContent(t *testing.T, fs billy.Filesystem, filename string, expected []byte) {
	t.Helper()

	if content := ReadFile(t, fs, filename); string(content) != string(expected) {
		t.Errorf("Content of %s = %q, want %q", filename, content, expected)
	}
}

// AssertPathMissing checks that filename does not exist on fs.
func AssertPathMissing(t *testing.T, fs billy.Filesystem, filename string) {
	t.Helper()

	if _, err := fs.Stat(filename); err == nil {
		t.Errorf("Expected %s to NOT exist", filename)
	}
}

// AssertFileExists checks that a file exists at the given path.
// Fails the test if the file doesn't exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected file to exist at %s", path)
	}
}

// AssertFileNotExists checks that a file does NOT exist at the given path.
// Fails the test if the file exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to NOT exist at %s", path)
	}
}

// AssertDirExists checks that a directory exists at the given path.
// Fails the test if the directory doesn't exist.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected directory to exist at %s", path)
		return
	}
	if err != nil {
		t.Errorf("Failed to stat directory %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory, but it's a file", path)
	}
}

// AssertRepositoryStructure validates the .ogit directory structure.
// Verifies objects/ and config exist and that HEAD is not set yet.
func AssertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()

	ogitDir := filepath.Join(repoPath, constants.Ogit)
	AssertDirExists(t, ogitDir)
	AssertDirExists(t, filepath.Join(ogitDir, constants.Objects))
	AssertFileExists(t, filepath.Join(ogitDir, constants.Config))
	AssertFileNotExists(t, filepath.Join(ogitDir, constants.Head))
}
