package github

import (
	"time"

	"github.com/nao1215/folio/internal/model"
)

// restRepo is the subset of the REST repository object folio uses.
// GitHub sends null for unset description, homepage and language; null
// decodes to the zero value.
type restRepo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Homepage    string    `json:"homepage"`
	Language    string    `json:"language"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r restRepo) record() model.RepoRecord {
	return model.RepoRecord{
		Name:        r.Name,
		Description: r.Description,
		HTMLURL:     r.HTMLURL,
		HomepageURL: r.Homepage,
		Language:    r.Language,
		UpdatedAt:   r.UpdatedAt,
	}
}
