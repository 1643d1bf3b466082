package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var readTreeCmd = &cobra.Command{
	Use:   "read-tree <tree>",
	Short: "Replace the working tree with the content of a tree object",
	Long: `Remove every file that is not ignored from the working tree, then write out the given tree.
HEAD is not changed.`,
	SilenceUsage: true,
	Args:         exactArgs(1, "tree"),
	RunE:         runReadTree,
}

func init() {
	rootCmd.AddCommand(readTreeCmd)
}

func runReadTree(_ *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	if err := repo.ReadTree(args[0]); err != nil {
		return fmt.Errorf("failed to read tree %s - %w", args[0], err)
	}
	return nil
}
