package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/folio/internal/log"
	"github.com/nao1215/folio/internal/model"
)

// Result is the outcome of a successful Fetch.
type Result struct {
	// Tier names the tier that produced Repos.
	Tier string `json:"tier"`

	// Repos in the order the tier returned them.
	Repos []model.RepoRecord `json:"repos"`
}

// Fetcher runs tiers in order until one returns repositories.
type Fetcher struct {
	tiers  []Tier
	logger *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLogger sets the logger used for tier failures.
func WithLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = l }
}

// WithTiers replaces the default tier chain.
func WithTiers(tiers ...Tier) FetcherOption {
	return func(f *Fetcher) { f.tiers = tiers }
}

// NewFetcher creates a Fetcher with the standard chain: pinned, featured,
// recent. limit is the number of repositories requested from the pinned and
// recent tiers.
func NewFetcher(c *Client, featured []string, limit, concurrency int, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{logger: log.Discard()}
	for _, opt := range opts {
		opt(f)
	}
	if f.tiers == nil {
		f.tiers = []Tier{
			NewPinnedTier(c, limit),
			NewFeaturedTier(c, featured, concurrency, f.logger),
			NewRecentTier(c, limit),
		}
	}
	return f
}

// TierNames returns the tier names in execution order.
func (f *Fetcher) TierNames() []string {
	names := make([]string, len(f.tiers))
	for i, t := range f.tiers {
		names[i] = t.Name()
	}
	return names
}

// Fetch returns the repositories of the first tier that yields any.
// A tier that fails or returns nothing hands over to the next one.
// If the last tier succeeds with zero repositories the result is empty and
// the error is nil; if it fails, Fetch returns ErrAllTiersFailed joined with
// every tier's error.
func (f *Fetcher) Fetch(ctx context.Context, username string) (Result, error) {
	if strings.TrimSpace(username) == "" {
		return Result{}, ErrNoUsername
	}

	errs := []error{ErrAllTiersFailed}
	for i, tier := range f.tiers {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		last := i == len(f.tiers)-1
		repos, err := tier.Fetch(ctx, username)
		switch {
		case err != nil:
			f.logger.Warn("project tier failed", "tier", tier.Name(), "user", username, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", tier.Name(), err))
		case len(repos) == 0 && last:
			f.logger.Info("no projects found", "tier", tier.Name(), "user", username)
			return Result{Tier: tier.Name(), Repos: []model.RepoRecord{}}, nil
		case len(repos) == 0:
			f.logger.Debug("project tier returned nothing", "tier", tier.Name(), "user", username)
			errs = append(errs, fmt.Errorf("%s: %w", tier.Name(), ErrNoRecords))
		default:
			f.logger.Debug("project tier succeeded", "tier", tier.Name(), "repos", len(repos))
			return Result{Tier: tier.Name(), Repos: repos}, nil
		}
	}
	return Result{}, errors.Join(errs...)
}
