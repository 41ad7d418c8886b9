package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/folio/internal/report"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Regenerate the blog post index",
		Long: `Build scans the posts directory and rewrites the JSON post index.

Every post file contributes one entry: the title is taken from the first
<h1> (or <h2>), the date from <meta name="date" content="...">, and the
description from the first <p>. Files without a title or date fall back to
the file name and the file's modification date. Entries are sorted newest
first.

Examples:
  # Rebuild posts/index.json
  folio build

  # Rebuild and list the indexed posts
  folio build --report`,
		Args: cobra.NoArgs,
		RunE: runBuildCmd,
	}

	cmd.Flags().BoolP("report", "r", false, "Print the indexed posts after building")

	return cmd
}

func runBuildCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	builder, err := newBuilder(cfg, logger)
	if err != nil {
		return err
	}
	n, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s with %d posts.\n", builder.IndexPath(), n)

	showReport, err := cmd.Flags().GetBool("report")
	if err != nil {
		return err
	}
	if !showReport {
		return nil
	}

	index, err := readIndex(cfg)
	if err != nil {
		return err
	}
	_, err = report.NewSimpleWriter(cmd.OutOrStdout()).Write(report.NewListing("", "", nil, index))
	return err
}
