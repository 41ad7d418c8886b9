package report

import (
	"slices"
	"time"

	"github.com/nao1215/folio/internal/model"
)

// Listing is everything a report describes.
type Listing struct {
	// Version is the folio version that produced the listing.
	Version string `json:"version,omitempty"`

	// Username is the GitHub account the projects belong to.
	Username string `json:"username,omitempty"`

	// Tier names the lookup that supplied Repos: pinned, featured or recent.
	// Empty when projects were not fetched.
	Tier string `json:"tier,omitempty"`

	// Generated is when the listing was assembled.
	Generated time.Time `json:"generated"`

	// Repos are the repositories in display order.
	Repos []model.RepoRecord `json:"repos"`

	// Posts is the post index in display order.
	Posts model.PostIndex `json:"posts"`

	// Error describes why projects could not be loaded.
	Error string `json:"error,omitempty"`
}

// NewListing returns a Listing stamped with the current time. Repos are
// copied and sorted the way the projects section shows them.
func NewListing(username, tier string, repos []model.RepoRecord, posts model.PostIndex) *Listing {
	sorted := slices.Clone(repos)
	model.SortByUpdated(sorted)
	if sorted == nil {
		sorted = []model.RepoRecord{}
	}
	if posts == nil {
		posts = model.PostIndex{}
	}
	return &Listing{
		Username:  username,
		Tier:      tier,
		Generated: time.Now().UTC(),
		Repos:     sorted,
		Posts:     posts,
	}
}

// Languages counts repositories per primary language, in order of first
// appearance. Repositories without a language are counted as "Other".
func (l *Listing) Languages() ([]string, map[string]int) {
	var order []string
	counts := make(map[string]int)
	for _, r := range l.Repos {
		lang := r.Language
		if lang == "" {
			lang = "Other"
		}
		if counts[lang] == 0 {
			order = append(order, lang)
		}
		counts[lang]++
	}
	return order, counts
}

// hasProjects reports whether the listing came from a project lookup.
// Post-only listings built by the index builder carry no username or tier.
func (l *Listing) hasProjects() bool {
	return l.Username != "" || l.Tier != "" || l.Error != "" || len(l.Repos) > 0
}
