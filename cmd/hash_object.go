package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/rhyn0/oxide-git/internal/objects"
	"github.com/spf13/cobra"
	"gopkg.in/src-d/go-billy.v4/osfs"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <filepath>",
	Short: "Compute object hash and optionally create and store a blob from a file",
	Long: `Compute the object hash (SHA-1 hash) for a file's content.
Optionally write the resulting object's blob into the objects folder.

Examples:
  # Compute hash without storing
  ogit hash-object myfile.txt

  # Compute hash and store in .ogit/objects
  ogit hash-object -w myfile.txt`,
	SilenceUsage: true,
	Args:         exactArgs(1, "filepath"),
	RunE:         runHashObject,
}

var writeFlag bool

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	// Add flag using Cobra's flag system
	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the objects folder")
}

// runHashObject computes hash and optionally stores blob object.
func runHashObject(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	// The file may live outside any repository unless -w is given.
	blob, err := objects.NewBlobFromFile(osfs.New(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to read file %s - %w", args[0], err)
	}

	// Print hash to stdout
	fmt.Fprintln(cmd.OutOrStdout(), blob.Hash())

	if writeFlag {
		repo, err := openRepository()
		if err != nil {
			return err
		}

		if err := repo.Store().Store(blob); err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
	}

	return nil
}
