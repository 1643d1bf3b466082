package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var commitTreeCmd = &cobra.Command{
	Use:   "commit-tree <tree> [-p <parent>]... [-m <message>]",
	Short: "Create a commit object for a tree without moving HEAD",
	Long: `Create a commit of an existing tree object and print its id.
The author and committer come from the [user] section of .ogit/config.
Without -m the message is read from stdin.

Examples:
  ogit commit-tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904 -m "Empty snapshot"
  ogit commit-tree <tree> -p <parent> -m "Follow up"
  echo "From stdin" | ogit commit-tree <tree>`,
	SilenceUsage: true,
	Args:         exactArgs(1, "tree"),
	RunE:         runCommitTree,
}

var (
	commitTreeParents []string
	commitTreeMessage string
)

func init() {
	rootCmd.AddCommand(commitTreeCmd)

	commitTreeCmd.Flags().StringArrayVarP(&commitTreeParents, "parent", "p", nil, "Parent commit id (repeatable)")
	commitTreeCmd.Flags().StringVarP(&commitTreeMessage, "message", "m", "", "Commit message")
}

func runCommitTree(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	message, err := readMessage(cmd, commitTreeMessage)
	if err != nil {
		return err
	}

	commitHash, err := repo.CommitTree(args[0], commitTreeParents, message, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create commit - %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), commitHash)
	return nil
}
