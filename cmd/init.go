package cmd

import (
	"fmt"

	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/internal/repository"
	"github.com/rhyn0/oxide-git/utils"
	"github.com/spf13/cobra"
	"gopkg.in/src-d/go-billy.v4/osfs"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new ogit repository",
	Long: `The 'init' command sets up a new ogit repository in the current directory.
It creates a .ogit directory with an empty object store and a default config file.
HEAD stays unset until the first commit.
If a repository already exists, the command will not overwrite existing data.`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// runInit executes repository initialization at specified or current directory.
func runInit(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	if err := repository.InitRepository(osfs.New(dirPath)); err != nil {
		return fmt.Errorf("failed to initialize repository - %w", err)
	}

	cmd.Printf("Initialized empty ogit repository in %s\n", utils.BuildDirPath(dirPath, constants.Ogit))
	return nil
}
