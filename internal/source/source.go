// Package source loads site content (the post index and post files) for the
// renderers. Every load bypasses caches: HTTP requests carry no-cache
// headers and directory reads go straight to disk.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
)

var (
	// ErrNetwork marks a failed load: the request was rejected, the file is
	// missing, or the server answered with a non-success status.
	ErrNetwork = errors.New("content unavailable")

	// ErrInvalidName is returned for names that are not clean relative
	// slash-separated paths, e.g. "../secret" or "/etc/passwd".
	ErrInvalidName = errors.New("invalid content name")
)

// StatusError describes a non-success HTTP response. It matches ErrNetwork
// under errors.Is.
type StatusError struct {
	Name string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s: status %d", ErrNetwork, e.Name, e.Code)
}

// Is reports whether target is ErrNetwork.
func (e *StatusError) Is(target error) bool {
	return target == ErrNetwork
}

// Source loads a named piece of content relative to the site root.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Dir loads content from a directory tree.
type Dir struct {
	fsys fs.FS
}

// NewDir returns a Source rooted at the directory root.
func NewDir(root string) *Dir {
	return &Dir{fsys: os.DirFS(root)}
}

// NewFS returns a Source over an arbitrary file system, e.g. fstest.MapFS.
func NewFS(fsys fs.FS) *Dir {
	return &Dir{fsys: fsys}
}

// Fetch implements Source.
func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %w: %q", ErrNetwork, ErrInvalidName, name)
	}
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return data, nil
}

// HTTP loads content from a web server.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP returns a Source that resolves names against baseURL.
// A nil client uses http.DefaultClient.
func NewHTTP(baseURL string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{base: u, client: client}, nil
}

// Fetch implements Source.
func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %w: %q", ErrNetwork, ErrInvalidName, name)
	}
	// name is a path, never a URL: '#', '?' and ':' are file name characters.
	target := h.base.ResolveReference(&url.URL{Path: name})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Name: name, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return data, nil
}
