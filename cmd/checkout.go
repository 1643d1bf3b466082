package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <commit>",
	Short: "Restore the working tree of a commit and move HEAD to it",
	Long: `Replace the working tree with the tree of the given commit, then point HEAD at the commit.
Ignored files are kept. HEAD is left untouched when the restore fails.`,
	SilenceUsage: true,
	Args:         exactArgs(1, "commit"),
	RunE:         runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	if err := repo.Checkout(args[0]); err != nil {
		return fmt.Errorf("failed to checkout %s - %w", args[0], err)
	}

	cmd.Printf("HEAD is now at %s\n", args[0])
	return nil
}
