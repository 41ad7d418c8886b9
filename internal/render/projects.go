package render

import (
	"context"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nao1215/folio/internal/github"
	"github.com/nao1215/folio/internal/model"
	"github.com/nao1215/folio/internal/view"
)

const (
	// DefaultProjectLimit is the number of project cards shown.
	DefaultProjectLimit = 6

	// MsgNoDescription replaces an empty repository description.
	MsgNoDescription = "No description available"

	// DefaultProfileBase is prefixed to the username in the failure card link.
	DefaultProfileBase = "https://github.com"

	cardDelayStep = 100
	updatedLayout = "Jan 2, 2006"
)

// RepoFetcher loads the repositories shown as project cards.
// *github.Fetcher implements it.
type RepoFetcher interface {
	Fetch(ctx context.Context, username string) (github.Result, error)
}

// Projects renders GitHub repositories as project cards.
type Projects struct {
	limit       int
	profileBase string
	settings
}

// NewProjects returns a Projects renderer showing at most limit cards.
// A limit of zero or less uses DefaultProjectLimit.
func NewProjects(limit int, profileBase string, opts ...Option) *Projects {
	if limit <= 0 {
		limit = DefaultProjectLimit
	}
	if profileBase == "" {
		profileBase = DefaultProfileBase
	}
	return &Projects{
		limit:       limit,
		profileBase: strings.TrimSuffix(profileBase, "/"),
		settings:    newSettings(opts),
	}
}

type projectCard struct {
	Name        string
	Title       string
	RepoURL     string
	Homepage    string
	Description string
	Language    string
	Updated     string
	Relative    string
	Delay       int
}

// Skeletons fills region with placeholder cards shown while loading.
func (p *Projects) Skeletons(region view.Region) {
	markup, err := execute("project-skeletons", make([]struct{}, p.limit))
	if err != nil {
		p.logger.Error("failed to render skeletons", "error", err)
		return
	}
	region.Render(markup)
}

// Render shows repos as cards, most recently updated first, up to the limit.
// repos is not modified.
func (p *Projects) Render(region view.Region, repos []model.RepoRecord) error {
	sorted := slices.Clone(repos)
	model.SortByUpdated(sorted)
	if len(sorted) > p.limit {
		sorted = sorted[:p.limit]
	}

	now := p.now()
	data := make([]projectCard, 0, len(sorted))
	for i, r := range sorted {
		card := projectCard{
			Name:        r.Name,
			Title:       r.DisplayName(),
			RepoURL:     r.HTMLURL,
			Description: r.Description,
			Language:    r.Language,
			Delay:       i * cardDelayStep,
		}
		if card.Description == "" {
			card.Description = MsgNoDescription
		}
		if r.HasHomepage() {
			card.Homepage = strings.TrimSpace(r.HomepageURL)
		}
		if !r.UpdatedAt.IsZero() {
			card.Updated = r.UpdatedAt.Format(updatedLayout)
			card.Relative = humanize.RelTime(r.UpdatedAt, now, "ago", "from now")
		}
		data = append(data, card)
	}

	markup, err := execute("project-cards", data)
	if err != nil {
		return err
	}
	region.Render(markup)
	return nil
}

// Failure replaces region's content with an error card linking to the
// user's GitHub profile.
func (p *Projects) Failure(region view.Region, username string) {
	markup, err := execute("project-error", p.ProfileLink(username))
	if err != nil {
		p.logger.Error("failed to render project error card", "error", err)
		region.SetText("Unable to Load Projects")
		return
	}
	region.Render(markup)
}

// ProfileLink returns the GitHub profile URL of username.
func (p *Projects) ProfileLink(username string) string {
	return p.profileBase + "/" + username
}

// Load shows skeletons in region, fetches the repositories and replaces the
// skeletons with cards, or with the failure card when every lookup failed.
// It returns the fetch result so callers can report which tier answered.
func (p *Projects) Load(ctx context.Context, f RepoFetcher, username string, region view.Region) (github.Result, error) {
	p.Skeletons(region)

	res, err := f.Fetch(ctx, username)
	if err != nil {
		p.logger.Warn("failed to load projects", "user", username, "error", err)
		p.Failure(region, username)
		return res, err
	}

	p.logger.Debug("loaded projects", "user", username, "tier", res.Tier, "count", len(res.Repos))
	if err := p.Render(region, res.Repos); err != nil {
		p.Failure(region, username)
		return res, err
	}
	return res, nil
}
