package cmd

import (
	"fmt"

	"github.com/rhyn0/oxide-git/internal/objects"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [commit]",
	Short: "Show the commit history",
	Long: `Walk first parents from the given commit, or from HEAD, and print each commit newest first.
Nothing is printed before the first commit.`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	start := ""
	if len(args) > 0 {
		start = args[0]
	}

	history, err := repo.Log(start)
	if err != nil {
		return fmt.Errorf("failed to read history - %w", err)
	}

	out := cmd.OutOrStdout()
	for i, commit := range history {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, objects.FormatLog(commit))
	}
	return nil
}
