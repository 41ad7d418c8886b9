package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/folio/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local preview of the site",
		Long: `Serve rebuilds the post index and starts a local preview server for the
portfolio, blog and post pages. Post files are served without caching.

With --watch the posts directory is watched and the index is rebuilt
after changes settle.

Examples:
  # Preview on http://127.0.0.1:8080
  folio serve

  # Rebuild the index while writing posts
  folio serve --watch --addr :3000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", server.DefaultAddr, "Address to listen on")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild the post index when posts change")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

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
	logger.Info("built post index", "path", builder.IndexPath(), "posts", n)

	if cfg.GitHub.Username == "" {
		logger.Warn("github.username is not set; the projects section will show an error card")
	}

	opts := []server.Option{server.WithLogger(logger)}
	if cfg.Posts.RemoteURL != "" {
		src, err := newRemoteSource(cfg)
		if err != nil {
			return err
		}
		logger.Info("reading posts from remote site", "url", cfg.Posts.RemoteURL)
		opts = append(opts, server.WithSource(src))
	}

	fetcher := newFetcher(cfg, logger)
	logger.Info("project sources", "tiers", fetcher.TierNames())

	srv := server.New(cfg, fetcher, builder, opts...)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return srv.ListenAndServe(ctx, addr)
	})
	if watch {
		eg.Go(func() error {
			return srv.Watch(ctx)
		})
	}
	return ignoreCanceled(eg.Wait())
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
