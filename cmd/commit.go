package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit [-m <message>]",
	Short: "Record a snapshot of the working tree on top of HEAD",
	Long: `Write the working tree as a tree object, create a commit whose parent is the current HEAD
(none for the first commit) and move HEAD to it.
Without -m the message is read from stdin.`,
	SilenceUsage: true,
	Args:         exactArgs(0, "none"),
	RunE:         runCommit,
}

var commitMessage string

func init() {
	rootCmd.AddCommand(commitCmd)

	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "Commit message")
}

func runCommit(cmd *cobra.Command, _ []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	message, err := readMessage(cmd, commitMessage)
	if err != nil {
		return err
	}

	commitHash, err := repo.Commit(message, time.Now())
	if err != nil {
		return fmt.Errorf("failed to commit - %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), commitHash)
	return nil
}
