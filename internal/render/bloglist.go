package render

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/nao1215/folio/internal/model"
	"github.com/nao1215/folio/internal/posts"
	"github.com/nao1215/folio/internal/source"
	"github.com/nao1215/folio/internal/view"
)

// Messages shown by BlogList instead of cards.
const (
	MsgPostsUnavailable = "Unable to load posts."
	MsgNoPosts          = "No posts published yet."
)

// DefaultViewer is the post viewer page the Read More links point to.
const DefaultViewer = "post.html"

// BlogList renders the post index as a list of summary cards.
type BlogList struct {
	src    source.Source
	index  string
	viewer string
	settings
}

// NewBlogList returns a BlogList that reads the index at indexPath from src
// and links every card to viewer. An empty viewer uses DefaultViewer.
func NewBlogList(src source.Source, indexPath, viewer string, opts ...Option) *BlogList {
	if viewer == "" {
		viewer = DefaultViewer
	}
	return &BlogList{
		src:      src,
		index:    indexPath,
		viewer:   viewer,
		settings: newSettings(opts),
	}
}

type postCard struct {
	Title       string
	Date        string
	Description string
	Link        string
}

// Render fetches the index and replaces region's content. A failed fetch or
// a malformed index leaves only MsgPostsUnavailable in region and returns
// the cause. An empty index shows MsgNoPosts.
func (b *BlogList) Render(ctx context.Context, region view.Region) error {
	index, err := b.load(ctx)
	if err != nil {
		b.logger.Warn("failed to load post index", "path", b.index, "error", err)
		region.SetText(MsgPostsUnavailable)
		return err
	}
	if len(index) == 0 {
		region.SetText(MsgNoPosts)
		return nil
	}

	data := make([]postCard, 0, len(index))
	for _, p := range index {
		data = append(data, postCard{
			Title:       p.Title,
			Date:        p.Date,
			Description: p.Description,
			Link:        b.Link(p.File),
		})
	}

	markup, err := execute("post-cards", data)
	if err != nil {
		region.SetText(MsgPostsUnavailable)
		return err
	}
	region.Render(markup)
	return nil
}

func (b *BlogList) load(ctx context.Context) (model.PostIndex, error) {
	data, err := b.src.Fetch(ctx, b.index)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	index, err := posts.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, b.index, err)
	}
	return index, nil
}

// Link returns the viewer URL for a post file. The file name is
// percent-encoded the way browsers encode a URI component, so spaces
// become %20.
func (b *BlogList) Link(file string) string {
	return b.viewer + "?file=" + escapeComponent(file)
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
