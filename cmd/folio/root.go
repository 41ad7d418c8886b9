package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// defaultEnvFile is loaded before the configuration when it exists.
const defaultEnvFile = ".env"

// NewRootCmd creates the root command for folio.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Build and preview a personal portfolio site",
		Long: `folio builds and previews a personal portfolio site.

It regenerates the JSON index of blog posts from the posts directory,
looks up the GitHub repositories shown in the projects section, and
serves a local preview of the portfolio, blog and post pages.

Settings are read from folio.yaml (current directory, then the XDG config
directory) and can be overridden with FOLIO_* environment variables, for
example FOLIO_GITHUB_USERNAME. A .env file in the current directory is
loaded first.`,
		Version:           getVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadEnvFile,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: folio.yaml in current or XDG config directory)")
	cmd.PersistentFlags().String("env-file", defaultEnvFile, "Environment file loaded before the configuration")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")

	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewProjectsCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// loadEnvFile loads the --env-file into the process environment. Variables
// that are already set win. A missing file is not an error.
func loadEnvFile(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("env-file")
	if err != nil || path == "" {
		return nil //nolint:nilerr // flag is optional on commands that do not inherit it
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
