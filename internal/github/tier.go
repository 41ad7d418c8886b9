package github

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/folio/internal/log"
	"github.com/nao1215/folio/internal/model"
)

// Tier is one source of repositories in the fallback chain.
type Tier interface {
	// Fetch returns the repositories this tier knows about for username.
	// An empty result with a nil error means "nothing here, try the next tier".
	Fetch(ctx context.Context, username string) ([]model.RepoRecord, error)

	// Name identifies the tier in logs and reports.
	Name() string
}

// Tier names as reported in Result.Tier.
const (
	TierPinned   = "pinned"
	TierFeatured = "featured"
	TierRecent   = "recent"
)

// PinnedTier asks the GraphQL API for pinned repositories.
type PinnedTier struct {
	client *Client
	limit  int
}

// NewPinnedTier creates a PinnedTier requesting limit items.
func NewPinnedTier(c *Client, limit int) *PinnedTier {
	return &PinnedTier{client: c, limit: limit}
}

// Name implements Tier.
func (t *PinnedTier) Name() string { return TierPinned }

// Fetch implements Tier.
func (t *PinnedTier) Fetch(ctx context.Context, username string) ([]model.RepoRecord, error) {
	return t.client.Pinned(ctx, username, t.limit)
}

// FeaturedTier looks up a fixed list of repository names, one request per
// name, all in flight at once (or at most concurrency at a time).
type FeaturedTier struct {
	client      *Client
	names       []string
	concurrency int
	logger      *slog.Logger
}

// NewFeaturedTier creates a FeaturedTier for names. concurrency <= 0 means
// no limit. A nil logger discards.
func NewFeaturedTier(c *Client, names []string, concurrency int, logger *slog.Logger) *FeaturedTier {
	if logger == nil {
		logger = log.Discard()
	}
	return &FeaturedTier{client: c, names: names, concurrency: concurrency, logger: logger}
}

// Name implements Tier.
func (t *FeaturedTier) Name() string { return TierFeatured }

// Fetch implements Tier. It never fails: a lookup error only removes that
// name from the result, which keeps the configured name order.
func (t *FeaturedTier) Fetch(ctx context.Context, username string) ([]model.RepoRecord, error) {
	found := make([]*model.RepoRecord, len(t.names))

	// Lookups return nil to the group so one failure never cancels the rest.
	var g errgroup.Group
	if t.concurrency > 0 {
		g.SetLimit(t.concurrency)
	}
	for i, name := range t.names {
		g.Go(func() error {
			repo, err := t.client.Repo(ctx, username, name)
			if err != nil {
				t.logger.Warn("featured repository lookup failed", "repo", name, "error", err)
				return nil
			}
			found[i] = &repo
			return nil
		})
	}
	_ = g.Wait()

	out := make([]model.RepoRecord, 0, len(found))
	for _, r := range found {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// RecentTier lists the user's most recently updated repositories.
type RecentTier struct {
	client *Client
	limit  int
}

// NewRecentTier creates a RecentTier returning at most limit repositories.
func NewRecentTier(c *Client, limit int) *RecentTier {
	return &RecentTier{client: c, limit: limit}
}

// Name implements Tier.
func (t *RecentTier) Name() string { return TierRecent }

// Fetch implements Tier.
func (t *RecentTier) Fetch(ctx context.Context, username string) ([]model.RepoRecord, error) {
	return t.client.Recent(ctx, username, t.limit)
}
