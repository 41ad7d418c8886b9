package github

import (
	"fmt"
	"strings"
	"time"

	"github.com/nao1215/folio/internal/model"
)

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// pinnedQuery builds the pinned repositories query for the given page size.
func pinnedQuery(first int) string {
	return fmt.Sprintf(`query($login: String!) {
  user(login: $login) {
    pinnedItems(first: %d, types: REPOSITORY) {
      nodes {
        ... on Repository {
          name
          description
          url
          homepageUrl
          primaryLanguage { name }
          updatedAt
        }
      }
    }
  }
}`, first)
}

type pinnedResponse struct {
	Data struct {
		User *struct {
			PinnedItems struct {
				Nodes []pinnedNode `json:"nodes"`
			} `json:"pinnedItems"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type pinnedNode struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	HomepageURL     string `json:"homepageUrl"`
	PrimaryLanguage *struct {
		Name string `json:"name"`
	} `json:"primaryLanguage"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// records normalizes the response. GraphQL errors are reported only when
// no user data came back; partial data wins.
func (r pinnedResponse) records() ([]model.RepoRecord, error) {
	if r.Data.User == nil {
		if len(r.Errors) > 0 {
			msgs := make([]string, len(r.Errors))
			for i, e := range r.Errors {
				msgs[i] = e.Message
			}
			return nil, fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(msgs, "; "))
		}
		return nil, nil
	}

	nodes := r.Data.User.PinnedItems.Nodes
	out := make([]model.RepoRecord, 0, len(nodes))
	for _, n := range nodes {
		// Non-repository pins (gists) arrive as empty objects.
		if n.Name == "" {
			continue
		}
		rec := model.RepoRecord{
			Name:        n.Name,
			Description: n.Description,
			HTMLURL:     n.URL,
			HomepageURL: n.HomepageURL,
			UpdatedAt:   n.UpdatedAt,
		}
		if n.PrimaryLanguage != nil {
			rec.Language = n.PrimaryLanguage.Name
		}
		out = append(out, rec)
	}
	return out, nil
}
