package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var writeTreeCmd = &cobra.Command{
	Use:   "write-tree [directory]",
	Short: "Store the working tree as tree objects and print the root tree id",
	Long: `Snapshot every file of the working tree into blob and tree objects.
Paths matched by the ignore file and the .ogit directory are left out.

With a directory argument only that directory is stored and the id of its tree is printed.

Examples:
  ogit write-tree
  ogit write-tree src`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runWriteTree,
}

func init() {
	rootCmd.AddCommand(writeTreeCmd)
}

func runWriteTree(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		if dir, err = relativeToRepoRoot(args[0]); err != nil {
			return err
		}
	}

	treeHash, err := repo.WriteTreeAt(dir)
	if err != nil {
		return fmt.Errorf("failed to write tree - %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), treeHash)
	return nil
}

// relativeToRepoRoot turns a path given on the command line into a slash
// separated path relative to the repository root.
func relativeToRepoRoot(name string) (string, error) {
	root, err := findRepoRoot()
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s - %w", name, err)
	}

	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s - %w", name, err)
	}
	return filepath.ToSlash(rel), nil
}
