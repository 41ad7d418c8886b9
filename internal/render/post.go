package render

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"path"

	"github.com/nao1215/folio/internal/posts"
	"github.com/nao1215/folio/internal/source"
	"github.com/nao1215/folio/internal/view"
)

// Content shown by Post when the post cannot be loaded.
const (
	MsgPostNotFound = "Post Not Found"

	postUnavailable template.HTML = "<p>Unable to load post.</p>"
)

// QueryFile is the query parameter naming the post to show.
const QueryFile = "file"

// Post renders a single post file into a title and a body region.
type Post struct {
	src source.Source
	dir string
	settings
}

// NewPost returns a Post that loads files below dir from src.
func NewPost(src source.Source, dir string, opts ...Option) *Post {
	return &Post{src: src, dir: dir, settings: newSettings(opts)}
}

// Render shows the post named by the file query parameter. Without one it
// leaves both regions untouched and returns ErrMissingInput.
//
// The title is the text of the first h1 or h2 in the post, or the decoded
// file name when the post has neither. The body is the post markup as is;
// Markdown posts are converted to HTML first.
func (p *Post) Render(ctx context.Context, query url.Values, title, body view.Region) error {
	file := query.Get(QueryFile)
	if file == "" {
		return ErrMissingInput
	}

	markup, err := p.load(ctx, file)
	if err != nil {
		p.logger.Warn("failed to load post", "file", file, "error", err)
		title.SetText(MsgPostNotFound)
		body.Render(postUnavailable)
		return err
	}

	heading, ok := posts.FirstHeading(markup)
	if !ok {
		heading = decodedName(file)
	}
	title.SetText(heading)
	body.Render(template.HTML(markup)) //nolint:gosec // post files are same-origin site content
	return nil
}

func (p *Post) load(ctx context.Context, file string) (string, error) {
	if !fs.ValidPath(file) {
		return "", fmt.Errorf("%w: %w: %q", ErrLoad, source.ErrInvalidName, file)
	}
	name := path.Join(p.dir, file)

	data, err := p.src.Fetch(ctx, name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLoad, err)
	}
	data, err = posts.ToHTML(file, data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParse, err)
	}
	return string(data), nil
}

// decodedName percent-decodes a file name, returning it unchanged when it
// is not valid percent-encoding.
func decodedName(file string) string {
	if s, err := url.PathUnescape(file); err == nil {
		return s
	}
	return file
}
