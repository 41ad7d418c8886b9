package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nao1215/folio/internal/config"
	"github.com/nao1215/folio/internal/log"
	"github.com/nao1215/folio/internal/posts"
	"github.com/nao1215/folio/internal/render"
	"github.com/nao1215/folio/internal/source"
)

const (
	// DefaultAddr is the listen address used when none is given.
	DefaultAddr = "127.0.0.1:8080"

	// shutdownTimeout bounds graceful shutdown after the context ends.
	shutdownTimeout = 5 * time.Second
)

// Server serves the portfolio preview.
type Server struct {
	cfg      *config.Config
	fetcher  render.RepoFetcher
	builder  *posts.Builder
	src      source.Source
	logger   *slog.Logger
	blog     *render.BlogList
	post     *render.Post
	projects *render.Projects
	pages    *pages
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Default: a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets where the post index and posts are read from.
// Default: the posts root directory on disk.
func WithSource(src source.Source) Option {
	return func(s *Server) {
		if src != nil {
			s.src = src
		}
	}
}

// New creates a Server for cfg. fetcher supplies the project cards and
// builder rebuilds the post index in Watch.
func New(cfg *config.Config, fetcher render.RepoFetcher, builder *posts.Builder, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		fetcher: fetcher,
		builder: builder,
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.src == nil {
		s.src = source.NewDir(cfg.Posts.Root)
	}
	withLogger := render.WithLogger(s.logger)
	s.blog = render.NewBlogList(s.src, cfg.Posts.IndexURL(), "/post", withLogger)
	s.post = render.NewPost(s.src, cfg.Posts.URLPrefix(), withLogger)
	s.projects = render.NewProjects(cfg.GitHub.Limit, cfg.GitHub.ProfileURL, withLogger)
	s.pages = newPages(cfg.Site)
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(recoverer(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handleIndex)
	r.Get("/blog", s.handleBlog)
	r.Get("/blog.html", s.handleBlog)
	r.Get("/post", s.handlePost)
	r.Get("/post.html", s.handlePost)

	r.Route("/partials", func(r chi.Router) {
		r.Get("/projects", s.handleProjectsPartial)
		r.Get("/posts", s.handlePostsPartial)
	})

	r.Handle("/static/*", staticHandler())

	prefix := "/" + s.cfg.Posts.URLPrefix()
	r.Handle(prefix+"/*", http.StripPrefix(prefix, noCache(http.Dir(s.cfg.Posts.DirPath()))))

	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("serving preview", "url", "http://"+ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
