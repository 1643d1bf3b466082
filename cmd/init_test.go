package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/internal/objects"
	"github.com/rhyn0/oxide-git/testutils"
)

// TestInitCommand_Success verifies successful repository initialization in current directory.
func TestInitCommand_Success(t *testing.T) {
	repoPath := t.TempDir()
	changeToRepoDir(t, repoPath)

	// Create a new root command for testing
	testRootCmd := createTestRootCmd(initCmd)
	stdout := captureStdout(testRootCmd)

	// Execute init command
	testRootCmd.SetArgs([]string{constants.InitCmdName})
	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("Init command failed: %v", err)
	}

	// Verify output message
	expectedMsg := "Initialized empty ogit repository in ./.ogit/\n"
	if !strings.Contains(stdout.String(), expectedMsg) {
		t.Errorf("Expected output to contain %q, got: %s", expectedMsg, stdout.String())
	}

	testutils.AssertRepositoryStructure(t, repoPath)
}

// TestInitCommand_WithDirectory_Success verifies initialization with explicit directory path.
func TestInitCommand_WithDirectory_Success(t *testing.T) {
	repoPath := t.TempDir()
	targetDirectory := filepath.Join(repoPath, "my-project")

	mustExecute(t, initCmd, targetDirectory)

	testutils.AssertRepositoryStructure(t, targetDirectory)
}

// TestInitCommand_AlreadyExists verifies error when repository already exists.
func TestInitCommand_AlreadyExists(t *testing.T) {
	repoPath := t.TempDir()

	// Initialize once
	mustExecute(t, initCmd, repoPath)

	// Try to initialize again
	_, err := executeCommand(t, initCmd, repoPath)
	if err == nil {
		t.Fatal("Expected error when repository already exists")
	}

	if !errors.Is(err, objects.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}

	expectedErrorMsg := "failed to initialize repository - repository at "
	if !strings.Contains(err.Error(), expectedErrorMsg) {
		t.Errorf("Expected error to contain %q, got: %q", expectedErrorMsg, err.Error())
	}
}

// TestInitCommand_TooManyArguments verifies the argument limit.
func TestInitCommand_TooManyArguments(t *testing.T) {
	_, err := executeCommand(t, initCmd, "dir1", "dir2")
	if err == nil {
		t.Fatal("Expected error for too many arguments")
	}

	expectedErrorMsg := fmt.Sprintf("%s command accepts at most 1 arg(s), received 2", constants.InitCmdName)
	if !strings.Contains(err.Error(), expectedErrorMsg) {
		t.Errorf("Expected error to contain %q, got: %q", expectedErrorMsg, err.Error())
	}
}

// TestInitCommand_Fail verifies cleanup on initialization failure.
func TestInitCommand_Fail(t *testing.T) {
	repoPath := t.TempDir()

	// Mock os.MkdirAll to fail after first call
	mockError := errors.New("mocked mkdir failure")
	callCount := 0
	patches := gomonkey.ApplyFunc(os.MkdirAll, func(path string, perm os.FileMode) error {
		callCount++
		if callCount > 1 {
			return mockError
		}
		// Let first call succeed (creates .ogit directory)
		return os.Mkdir(path, perm)
	})
	defer patches.Reset()

	_, err := executeCommand(t, initCmd, repoPath)
	if err == nil {
		t.Fatal("Expected error since InitRepository mocked to fail")
	}

	if !errors.Is(err, mockError) {
		t.Errorf("Expected error to wrap the mock error %v, but got: %v", mockError, err)
	}

	// Verify cleanup was called
	testutils.AssertFileNotExists(t, filepath.Join(repoPath, constants.Ogit))
}
