package posts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nao1215/folio/internal/log"
	"github.com/nao1215/folio/internal/model"
)

// reservedName is the base name that never counts as a post, so that an
// index.html landing page can live next to the posts.
const reservedName = "index"

// The index and its directory are served to browsers, so they are readable
// by everyone.
const (
	dirPerm   fs.FileMode = 0o755
	indexPerm fs.FileMode = 0o644
)

// Builder regenerates the post index for one posts directory.
type Builder struct {
	// dir is the posts directory on disk.
	dir string

	// indexName is the index file name inside dir.
	indexName string

	// urlPrefix is prepended to file names to form PostRecord.Path.
	urlPrefix string

	// extensions lists accepted post extensions, lower case with a leading dot.
	extensions []string

	extractor Extractor
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithIndexName sets the index file name. Default: "index.json".
func WithIndexName(name string) Option {
	return func(b *Builder) { b.indexName = name }
}

// WithURLPrefix sets the site-relative directory used in PostRecord.Path.
// Default: "posts".
func WithURLPrefix(prefix string) Option {
	return func(b *Builder) { b.urlPrefix = strings.Trim(prefix, "/") }
}

// WithExtensions sets the accepted post extensions. Default: ".html".
func WithExtensions(exts ...string) Option {
	return func(b *Builder) {
		b.extensions = b.extensions[:0]
		for _, e := range exts {
			b.extensions = append(b.extensions, strings.ToLower(e))
		}
	}
}

// WithExtractor sets the metadata extractor. Default: RegexExtractor.
func WithExtractor(e Extractor) Option {
	return func(b *Builder) { b.extractor = e }
}

// WithLogger sets the logger. Default: a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a Builder for the posts directory dir.
func NewBuilder(dir string, opts ...Option) *Builder {
	b := &Builder{
		dir:        dir,
		indexName:  "index.json",
		urlPrefix:  "posts",
		extensions: []string{".html"},
		extractor:  RegexExtractor{},
		logger:     log.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// IndexPath returns the location of the index file.
func (b *Builder) IndexPath() string {
	return filepath.Join(b.dir, b.indexName)
}

// Dir returns the posts directory.
func (b *Builder) Dir() string {
	return b.dir
}

// Accepts reports whether a file called name would be indexed.
func (b *Builder) Accepts(name string) bool {
	if name == b.indexName {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !b.accepted(ext) {
		return false
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) != reservedName
}

func (b *Builder) accepted(ext string) bool {
	for _, e := range b.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Collect scans the posts directory and returns the sorted index without
// writing it. The directory is created when missing.
// An unreadable directory yields an empty index; an unreadable post is an error.
func (b *Builder) Collect(ctx context.Context) (model.PostIndex, error) {
	if _, err := os.Stat(b.dir); errors.Is(err, fs.ErrNotExist) {
		b.logger.Warn("No posts directory found. Creating one.", "dir", b.dir)
	}
	if err := os.MkdirAll(b.dir, dirPerm); err != nil { //nolint:gosec // public site directory
		return nil, fmt.Errorf("create posts directory %s: %w", b.dir, err)
	}

	entries, err := os.ReadDir(b.dir)
	if err != nil {
		b.logger.Warn("posts directory is unreadable, indexing zero posts", "dir", b.dir, "error", err)
		entries = nil
	}

	index := make(model.PostIndex, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !b.Accepts(entry.Name()) {
			continue
		}

		record, err := b.record(entry)
		if err != nil {
			return nil, err
		}
		index = append(index, record)
	}

	index.Sort()
	return index, nil
}

// record reads one post and builds its PostRecord.
func (b *Builder) record(entry fs.DirEntry) (model.PostRecord, error) {
	name := entry.Name()

	content, err := os.ReadFile(filepath.Join(b.dir, name)) //nolint:gosec // posts live in the configured directory
	if err != nil {
		return model.PostRecord{}, fmt.Errorf("%w %s: %w", ErrReadPost, name, err)
	}
	info, err := entry.Info()
	if err != nil {
		return model.PostRecord{}, fmt.Errorf("%w %s: %w", ErrReadPost, name, err)
	}
	markup, err := ToHTML(name, content)
	if err != nil {
		return model.PostRecord{}, fmt.Errorf("%w %s: %w", ErrReadPost, name, err)
	}

	meta := b.extractor.Extract(string(markup))
	id := strings.TrimSuffix(name, filepath.Ext(name))

	record := model.PostRecord{
		File:        name,
		ID:          id,
		Title:       id,
		Date:        info.ModTime().UTC().Format("2006-01-02"),
		Description: meta.Description,
		Path:        path.Join(b.urlPrefix, name),
	}
	if meta.Title != nil && *meta.Title != "" {
		record.Title = *meta.Title
	}
	if meta.Date != nil && *meta.Date != "" {
		record.Date = *meta.Date
	}

	b.logger.Debug("indexed post", "file", name, "title", record.Title, "date", record.Date)
	return record, nil
}

// Build scans the posts directory, writes the index file and returns the
// number of posts written. An existing index is overwritten.
func (b *Builder) Build(ctx context.Context) (int, error) {
	index, err := b.Collect(ctx)
	if err != nil {
		return 0, err
	}

	data, err := Encode(index)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteIndex, err)
	}
	if err := os.WriteFile(b.IndexPath(), data, indexPerm); err != nil { //nolint:gosec // public site file
		return 0, fmt.Errorf("%w: %w", ErrWriteIndex, err)
	}
	// WriteFile keeps the mode of an existing file and applies the umask.
	if err := os.Chmod(b.IndexPath(), indexPerm); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteIndex, err)
	}

	b.logger.Debug("wrote post index", "path", b.IndexPath(), "posts", len(index))
	return len(index), nil
}

// Encode serializes an index as two-space indented JSON. HTML characters in
// titles and descriptions are written as-is rather than \u-escaped. An empty
// index encodes as [].
func Encode(index model.PostIndex) ([]byte, error) {
	if index == nil {
		index = model.PostIndex{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(index); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses an index produced by Encode.
func Decode(data []byte) (model.PostIndex, error) {
	var index model.PostIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	return index, nil
}
