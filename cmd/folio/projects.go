package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/folio/internal/report"
)

// NewProjectsCmd creates the projects command.
func NewProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects [username]",
		Short: "Show the GitHub projects the portfolio would display",
		Long: `Projects looks up the repositories for the projects section and prints them
together with the indexed posts.

Repositories are taken from the first lookup that returns any:
  1. pinned repositories (GitHub GraphQL API)
  2. the featured repositories listed in the configuration
  3. the most recently updated repositories

The username defaults to github.username from the configuration.

Examples:
  # Show projects for the configured user
  folio projects

  # Show projects for another user as Markdown
  folio projects octocat --markdown

  # Write a JSON report
  folio projects --json -o reports/projects.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProjectsCmd,
	}

	addReportFlags(cmd)

	return cmd
}

func runProjectsCmd(cmd *cobra.Command, args []string) error {
	opts, err := getReportOptions(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.GitHub.Username = args[0]
	}
	if err := cfg.RequireUsername(); err != nil {
		return fmt.Errorf("%w (pass a username or set github.username)", err)
	}
	logger := newLogger(cmd, cfg)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	fetcher := newFetcher(cfg, logger)
	logger.Debug("looking up projects", "user", cfg.GitHub.Username, "tiers", fetcher.TierNames())
	res, fetchErr := fetcher.Fetch(ctx, cfg.GitHub.Username)

	index, err := readIndex(cfg)
	if err != nil {
		logger.Warn("post index unavailable", "error", err)
	}

	listing := report.NewListing(cfg.GitHub.Username, res.Tier, res.Repos, index)
	if fetchErr != nil {
		listing.Error = fetchErr.Error()
	}
	if err := writeReport(cmd, opts, listing); err != nil {
		return err
	}
	return fetchErr
}
