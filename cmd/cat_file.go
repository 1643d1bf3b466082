package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-t | -s | -p) <object>",
	Short: "Show the type, size or content of a stored object",
	Long: `Read an object from .ogit/objects and print one property of it.

Examples:
  # Print the object type (blob, tree or commit)
  ogit cat-file -t 95d09f2b10159347eece71399a7e2e907ea3df4f

  # Print the payload size in bytes
  ogit cat-file -s 95d09f2b10159347eece71399a7e2e907ea3df4f

  # Print the payload
  ogit cat-file -p 95d09f2b10159347eece71399a7e2e907ea3df4f`,
	SilenceUsage: true,
	Args:         exactArgs(1, "object"),
	RunE:         runCatFile,
}

var (
	catTypeFlag   bool
	catSizeFlag   bool
	catPrettyFlag bool
)

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&catTypeFlag, "type", "t", false, "Show the object type")
	catFileCmd.Flags().BoolVarP(&catSizeFlag, "size", "s", false, "Show the object size")
	catFileCmd.Flags().BoolVarP(&catPrettyFlag, "pretty", "p", false, "Show the object content")
	catFileCmd.MarkFlagsMutuallyExclusive("type", "size", "pretty")
	catFileCmd.MarkFlagsOneRequired("type", "size", "pretty")
}

func runCatFile(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	object, err := repo.Store().Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to read object %s - %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	switch {
	case catTypeFlag:
		fmt.Fprintln(out, object.Type())
	case catSizeFlag:
		fmt.Fprintln(out, object.Size())
	default:
		if _, err := out.Write(object.Content()); err != nil {
			return err
		}
	}
	return nil
}
