package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/internal/repository"
	"github.com/spf13/cobra"
	"gopkg.in/src-d/go-billy.v4/osfs"
)

// rootCmd defines the base command for the ogit CLI.
// All subcommands (init, commit, checkout etc.) register under this root.
var rootCmd = &cobra.Command{
	Use:   "ogit",
	Short: "A minimal content-addressable version control system",
	Long: `Ogit is a minimal version control system. It stores blobs, trees and commits
in a content-addressable object store under .ogit and keeps a single linear history behind HEAD.`,
	PersistentPreRun: configureLogging,
}

var verboseFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print debug logs to stderr")
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configureLogging(cmd *cobra.Command, _ []string) {
	level := slog.LevelWarn
	if verboseFlag {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
}

// exactArgs validates command receives exactly n positional arguments.
// enables usage printing in case of error
func exactArgs(n int, name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command requires exactly %d argument (%s), received %d", cmd.Name(), n, name, len(args))
		}
		return nil
	}
}

// maximumArgs validates command receives at most n positional arguments.
func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command accepts at most %d arg(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// readMessage returns the --message value, or all of stdin when the flag
// was not given.
func readMessage(cmd *cobra.Command, message string) ([]byte, error) {
	if cmd.Flags().Changed("message") {
		return []byte(message), nil
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read message from stdin - %w", err)
	}
	return content, nil
}

// findRepoRoot locates .ogit directory by walking up directory tree.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		ogitPath := filepath.Join(dir, constants.Ogit)
		if info, err := os.Stat(ogitPath); err == nil && info.IsDir() {
			return dir, nil
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding .ogit
			return "", fmt.Errorf("%s directory not found", constants.Ogit)
		}
		dir = parent
	}
}

// openRepository opens the repository enclosing the current directory,
// honoring the ignore file named in its config.
func openRepository() (*repository.Repository, error) {
	root, err := findRepoRoot()
	if err != nil {
		return nil, err
	}

	repo, err := repository.OpenWithIgnoreFile(osfs.New(root))
	if err != nil {
		return nil, fmt.Errorf("failed to open repository - %w", err)
	}
	return repo, nil
}
