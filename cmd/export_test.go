package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/internal/objects"
	"github.com/rhyn0/oxide-git/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/src-d/go-billy.v4/osfs"
)

// createTestRootCmd creates fresh root command with the given subcommand.
// Flags of the subcommand are reset since they are bound to package variables.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	resetFlags(cmd)

	testRootCmd := &cobra.Command{Use: "ogit"}
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if slice, ok := f.Value.(pflag.SliceValue); ok {
			slice.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

// captureStdout returns command stdout output as string.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as string.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// executeCommand runs cmd under a fresh root with args and an empty stdin and
// returns its stdout.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	return executeCommandWithInput(t, cmd, "", args...)
}

// executeCommandWithInput is executeCommand with stdin set to input.
func executeCommandWithInput(t *testing.T, cmd *cobra.Command, input string, args ...string) (string, error) {
	t.Helper()

	testRootCmd := createTestRootCmd(cmd)
	stdout := captureStdout(testRootCmd)
	captureStderr(testRootCmd)
	testRootCmd.SetIn(strings.NewReader(input))

	testRootCmd.SetArgs(append([]string{cmd.Name()}, args...))
	err := testRootCmd.Execute()
	return stdout.String(), err
}

// mustExecute runs cmd and fails the test on error. Returns trimmed stdout.
func mustExecute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()

	out, err := executeCommand(t, cmd, args...)
	if err != nil {
		t.Fatalf("%s %v failed: %v", cmd.Name(), args, err)
	}
	return strings.TrimSpace(out)
}

// changeToRepoDir changes working directory to repo path and registers cleanup.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("Failed to change to directory %s: %v", repoPath, err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}

// setupInitializedRepo initializes a repository in a temp directory and changes into it.
func setupInitializedRepo(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	if err := repository.InitRepository(osfs.New(repoPath)); err != nil {
		t.Fatalf("Failed to initialize repository: %v", err)
	}
	changeToRepoDir(t, repoPath)
	return repoPath
}

// openTestStore opens the object store of the repository at repoPath.
func openTestStore(repoPath string) *objects.ObjectStore {
	return objects.NewObjectStore(osfs.New(filepath.Join(repoPath, constants.Ogit)))
}

// readHead returns the trimmed content of HEAD, or "" when it does not exist.
func readHead(t *testing.T, repoPath string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(repoPath, constants.Ogit, constants.Head))
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("Failed to read HEAD: %v", err)
	}
	return strings.TrimSpace(string(content))
}
