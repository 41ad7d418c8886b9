package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/folio/internal/config"
	"github.com/nao1215/folio/internal/github"
	"github.com/nao1215/folio/internal/log"
	"github.com/nao1215/folio/internal/model"
	"github.com/nao1215/folio/internal/posts"
	"github.com/nao1215/folio/internal/report"
	"github.com/nao1215/folio/internal/source"
)

// loadConfig loads the configuration for cmd. Without --config the usual
// locations are searched and defaults are used when no file exists; an
// explicit --config path must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	path := config.FindConfigFile(explicit)
	if path == "" && explicit != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicit)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns the logger for cmd. Logs go to stderr so that reports
// on stdout stay machine readable.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	return log.NewLogger(cmd.ErrOrStderr(), log.Options{Verbose: cfg.Verbose, JSON: jsonLogs})
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// newBuilder returns the post index builder described by cfg.
func newBuilder(cfg *config.Config, logger *slog.Logger) (*posts.Builder, error) {
	extractor, err := posts.NewExtractor(cfg.Posts.Extractor)
	if err != nil {
		return nil, err
	}
	return posts.NewBuilder(cfg.Posts.DirPath(),
		posts.WithIndexName(cfg.Posts.Index),
		posts.WithURLPrefix(cfg.Posts.URLPrefix()),
		posts.WithExtensions(cfg.Posts.Extensions...),
		posts.WithExtractor(extractor),
		posts.WithLogger(logger),
	), nil
}

// newFetcher returns the three-tier project fetcher described by cfg.
func newFetcher(cfg *config.Config, logger *slog.Logger) *github.Fetcher {
	client := github.NewClient(
		github.WithAPIURL(cfg.GitHub.APIURL),
		github.WithGraphQLURL(cfg.GitHub.GraphQLURL),
		github.WithUserAgent(cfg.GitHub.UserAgent),
		github.WithTimeout(cfg.GitHub.Timeout),
		github.WithClientLogger(logger),
	)
	return github.NewFetcher(client, cfg.GitHub.Featured, cfg.GitHub.Limit, cfg.GitHub.Concurrency,
		github.WithLogger(logger))
}

// newRemoteSource returns the HTTP source for posts.remote_url. It shares
// the GitHub request timeout.
func newRemoteSource(cfg *config.Config) (*source.HTTP, error) {
	return source.NewHTTP(cfg.Posts.RemoteURL, &http.Client{Timeout: cfg.GitHub.Timeout})
}

// readIndex returns the post index on disk, or an empty index when it has
// not been built yet.
func readIndex(cfg *config.Config) (model.PostIndex, error) {
	data, err := os.ReadFile(cfg.Posts.IndexPath())
	if errors.Is(err, os.ErrNotExist) {
		return model.PostIndex{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read post index: %w", err)
	}
	index, err := posts.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse post index %s: %w", cfg.Posts.IndexPath(), err)
	}
	return index, nil
}

// reportOptions selects the report format and destination.
type reportOptions struct {
	json     bool
	markdown bool
	output   string
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

func getReportOptions(cmd *cobra.Command) (reportOptions, error) {
	var opts reportOptions
	var err error
	if opts.json, err = cmd.Flags().GetBool("json"); err != nil {
		return opts, err
	}
	if opts.markdown, err = cmd.Flags().GetBool("markdown"); err != nil {
		return opts, err
	}
	if opts.output, err = cmd.Flags().GetString("output"); err != nil {
		return opts, err
	}
	if opts.json && opts.markdown {
		return opts, config.ErrConflictingReportFormats
	}
	return opts, nil
}

// writeReport outputs the listing in the requested format, to the output
// file when one is given and to stdout otherwise. With an output file, a
// plain text summary still goes to stdout.
func writeReport(cmd *cobra.Command, opts reportOptions, l *report.Listing) error {
	l.Version = getVersion()
	verbose, _ := cmd.Flags().GetBool("verbose")

	var output io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		dir := filepath.Dir(opts.output)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(opts.output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case opts.json:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case opts.markdown:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(verbose))
	}
	if opts.output != "" {
		w = report.NewMultiWriter(w, report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(verbose)))
	}
	_, err := w.Write(l)
	return err
}
