package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/folio/internal/config"
)

//go:embed templates/folio.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a folio.yaml configuration file",
		Long: `Init writes a commented folio.yaml to the current directory.

The generated file includes:
- The GitHub account and featured repositories for the projects section
- Where posts live and how their metadata is extracted
- The portfolio page content: about, skills, contact and theme colors

Examples:
  # Create folio.yaml in the current directory
  folio init

  # Create the file in the XDG config directory
  folio init -o ~/.config/folio/folio.yaml

  # Overwrite an existing file
  folio init -f

  # Write every default value for a given GitHub user, without comments
  folio init -u octocat`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")
	cmd.Flags().StringP("username", "u", "",
		"Write the default configuration for this GitHub user instead of the commented template")

	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	username, err := cmd.Flags().GetString("username")
	if err != nil {
		return err
	}

	if username != "" {
		cfg := config.NewConfig()
		cfg.GitHub.Username = username
		cfg.Site.Personal.GitHub = cfg.ProfileLink()
		if err := cfg.Save(outputPath); err != nil {
			return fmt.Errorf("failed to write configuration file: %w", err)
		}
	} else if err := writeTemplate(outputPath); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to set:")
	fmt.Fprintln(out, "  - github.username and the featured repositories")
	fmt.Fprintln(out, "  - the about, skills and contact sections")
	fmt.Fprintln(out, "Then run 'folio build' and 'folio serve'.")

	return nil
}

// writeTemplate writes the embedded commented configuration to path.
func writeTemplate(path string) error {
	content, err := configTemplate.ReadFile("templates/folio.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}
