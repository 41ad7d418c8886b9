package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nao1215/folio/internal/debounce"
)

// WatchDelay is the quiet period after the last change before the post
// index is rebuilt.
const WatchDelay = 500 * time.Millisecond

// ErrNoBuilder is returned by Watch when the server has no index builder.
var ErrNoBuilder = errors.New("no post index builder configured")

// Watch rebuilds the post index whenever a post in the posts directory is
// created, written, removed or renamed, until ctx is done. Changes to the
// index file itself are ignored. Rebuild failures are logged and watching
// continues.
func (s *Server) Watch(ctx context.Context) error {
	return s.watch(ctx, WatchDelay, nil)
}

// watch is Watch with a configurable delay. rebuilt, when non-nil, receives
// the outcome of every rebuild.
func (s *Server) watch(ctx context.Context, delay time.Duration, rebuilt chan<- error) error {
	if s.builder == nil {
		return ErrNoBuilder
	}
	dir := s.builder.Dir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create posts directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	rebuild := debounce.New(delay, func() {
		n, err := s.builder.Build(ctx)
		if err != nil {
			s.logger.Error("failed to rebuild post index", "dir", dir, "error", err)
		} else {
			s.logger.Info("rebuilt post index", "path", s.builder.IndexPath(), "posts", n)
		}
		if rebuilt != nil {
			select {
			case rebuilt <- err:
			case <-ctx.Done():
			}
		}
	})
	defer rebuild.Stop()

	s.logger.Info("watching posts", "dir", dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(event) {
				continue
			}
			s.logger.Debug("post changed", "file", event.Name, "op", event.Op.String())
			rebuild.Trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}

// relevant reports whether event changes the set or content of posts.
// A removed or renamed file no longer has a known type, so only its name
// is checked.
func (s *Server) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return s.builder.Accepts(filepath.Base(event.Name))
}
