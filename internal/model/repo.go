package model

import (
	"slices"
	"strings"
	"time"
)

// RepoRecord is a GitHub repository normalized from any of the three
// lookup APIs (GraphQL pinned items, single repository, recent repositories).
// Records are built fresh for every fetch and never persisted.
type RepoRecord struct {
	// Name is the repository name, unique within one fetch.
	Name string `json:"name"`

	// Description may be empty.
	Description string `json:"description"`

	// HTMLURL is the repository page on github.com.
	HTMLURL string `json:"htmlUrl"`

	// HomepageURL is the project homepage. Empty when unset.
	HomepageURL string `json:"homepageUrl"`

	// Language is the primary language. Empty when GitHub did not detect one.
	Language string `json:"language"`

	// UpdatedAt is the last update time reported by GitHub.
	UpdatedAt time.Time `json:"updatedAt"`
}

// nameSeparators lists the characters shown as spaces in DisplayName.
var nameSeparators = strings.NewReplacer("-", " ", "_", " ")

// DisplayName returns Name with separator characters replaced by spaces.
// "my-cool_repo" becomes "my cool repo".
func (r RepoRecord) DisplayName() string {
	return nameSeparators.Replace(r.Name)
}

// HasHomepage reports whether the repository has a non-blank homepage URL.
func (r RepoRecord) HasHomepage() bool {
	return strings.TrimSpace(r.HomepageURL) != ""
}

// SortByUpdated sorts repos by UpdatedAt, most recent first.
// Repositories updated at the same instant keep their relative order.
func SortByUpdated(repos []RepoRecord) {
	slices.SortStableFunc(repos, func(a, b RepoRecord) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}
