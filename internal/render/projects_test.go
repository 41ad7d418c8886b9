package render_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/folio/internal/github"
	"github.com/nao1215/folio/internal/model"
	"github.com/nao1215/folio/internal/render"
	"github.com/nao1215/folio/internal/view"
)

var fixedNow = time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func repoAt(name string, daysAgo int) model.RepoRecord {
	return model.RepoRecord{
		Name:      name,
		HTMLURL:   "https://github.com/octocat/" + name,
		UpdatedAt: fixedNow.AddDate(0, 0, -daysAgo),
	}
}

func cardTitles(markup string) []string {
	var titles []string
	const open = `<h3 class="project-title">`
	for rest := markup; ; {
		i := strings.Index(rest, open)
		if i < 0 {
			return titles
		}
		rest = rest[i+len(open):]
		j := strings.Index(rest, "</h3>")
		titles = append(titles, rest[:j])
		rest = rest[j:]
	}
}

func TestProjectsRenderOrderAndLimit(t *testing.T) {
	t.Parallel()

	var repos []model.RepoRecord
	for i := range 8 {
		// repo-0 is the oldest, repo-7 the newest.
		repos = append(repos, repoAt(fmt.Sprintf("repo-%d", i), 10-i))
	}
	before := append([]model.RepoRecord(nil), repos...)

	var region view.Buffer
	if err := render.NewProjects(0, "", render.WithClock(clock)).Render(&region, repos); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := []string{"repo 7", "repo 6", "repo 5", "repo 4", "repo 3", "repo 2"}
	if diff := cmp.Diff(want, cardTitles(string(region.HTML()))); diff != "" {
		t.Errorf("card titles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, repos); diff != "" {
		t.Errorf("input slice was modified (-want +got):\n%s", diff)
	}
}

func TestProjectsRenderCard(t *testing.T) {
	t.Parallel()

	repos := []model.RepoRecord{
		{
			Name:        "my-cool_repo",
			Description: "Does <things>",
			HTMLURL:     "https://github.com/octocat/my-cool_repo",
			HomepageURL: "https://example.com",
			Language:    "Go",
			UpdatedAt:   fixedNow.AddDate(0, 0, -2),
		},
		{
			Name:      "bare",
			HTMLURL:   "https://github.com/octocat/bare",
			UpdatedAt: fixedNow.AddDate(0, 0, -30),
		},
	}

	var region view.Buffer
	if err := render.NewProjects(6, "", render.WithClock(clock)).Render(&region, repos); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := string(region.HTML())

	for _, want := range []string{
		`<h3 class="project-title">my cool repo</h3>`,
		"Does &lt;things&gt;",
		`href="https://github.com/octocat/my-cool_repo"`,
		`href="https://example.com"`,
		`<span class="tech-tag">Go</span>`,
		"Updated Mar 4, 2025",
		`title="2 days ago"`,
		"animation-delay: 0ms",
		"animation-delay: 100ms",
		render.MsgNoDescription,
		"Updated Feb 4, 2025",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if n := strings.Count(got, "fa-external-link-alt"); n != 1 {
		t.Errorf("homepage links = %d, want 1", n)
	}
	if n := strings.Count(got, `class="tech-tag"`); n != 3 {
		t.Errorf("tech tags = %d, want 3", n)
	}
}

func TestProjectsSkeletonsAndFailure(t *testing.T) {
	t.Parallel()

	p := render.NewProjects(6, "https://github.com/")

	var region view.Buffer
	p.Skeletons(&region)
	if n := strings.Count(string(region.HTML()), "project-card skeleton"); n != 6 {
		t.Errorf("skeleton cards = %d, want 6", n)
	}

	p.Failure(&region, "octocat")
	got := string(region.HTML())
	if strings.Contains(got, "skeleton") {
		t.Error("failure card did not replace the skeletons")
	}
	for _, want := range []string{"Unable to Load Projects", `href="https://github.com/octocat"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

type stubFetcher struct {
	res github.Result
	err error
}

func (s stubFetcher) Fetch(context.Context, string) (github.Result, error) {
	return s.res, s.err
}

func TestProjectsLoad(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		f := stubFetcher{res: github.Result{Tier: github.TierRecent, Repos: []model.RepoRecord{repoAt("site", 1)}}}
		var region view.Buffer
		res, err := render.NewProjects(6, "", render.WithClock(clock)).Load(context.Background(), f, "octocat", &region)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if res.Tier != github.TierRecent {
			t.Errorf("tier = %q, want %q", res.Tier, github.TierRecent)
		}
		if diff := cmp.Diff([]string{"site"}, cardTitles(string(region.HTML()))); diff != "" {
			t.Errorf("card titles mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("all tiers failed", func(t *testing.T) {
		t.Parallel()

		f := stubFetcher{err: github.ErrAllTiersFailed}
		var region view.Buffer
		_, err := render.NewProjects(6, "").Load(context.Background(), f, "octocat", &region)
		if !errors.Is(err, github.ErrAllTiersFailed) {
			t.Fatalf("Load() error = %v, want %v", err, github.ErrAllTiersFailed)
		}
		if !strings.Contains(string(region.HTML()), "Unable to Load Projects") {
			t.Errorf("failure card not shown: %s", region.HTML())
		}
	})

	t.Run("empty result", func(t *testing.T) {
		t.Parallel()

		var region view.Buffer
		_, err := render.NewProjects(6, "").Load(context.Background(), stubFetcher{}, "octocat", &region)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if strings.Contains(string(region.HTML()), "project-card") {
			t.Errorf("expected no cards, got %s", region.HTML())
		}
	})
}
