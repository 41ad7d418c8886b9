package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/folio/internal/model"
)

var generated = time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)

func testListing() *Listing {
	l := NewListing("octocat", "featured", []model.RepoRecord{
		{
			Name:      "old-tool",
			HTMLURL:   "https://github.com/octocat/old-tool",
			Language:  "Go",
			UpdatedAt: generated.AddDate(0, -2, 0),
		},
		{
			Name:        "new_site",
			Description: "Personal site",
			HTMLURL:     "https://github.com/octocat/new_site",
			HomepageURL: "https://octocat.dev",
			UpdatedAt:   generated.AddDate(0, 0, -3),
		},
	}, model.PostIndex{
		{File: "b.html", ID: "b", Title: "Tips & Tricks", Date: "2025-03-01", Path: "posts/b.html"},
		{File: "a.html", ID: "a", Title: "Hello", Date: "2025-01-01", Path: "posts/a.html"},
	})
	l.Generated = generated
	return l
}

func TestNewListing(t *testing.T) {
	t.Parallel()

	t.Run("sorts repos newest first", func(t *testing.T) {
		t.Parallel()

		l := testListing()
		got := []string{l.Repos[0].Name, l.Repos[1].Name}
		if diff := cmp.Diff([]string{"new_site", "old-tool"}, got); diff != "" {
			t.Errorf("repo order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil inputs become empty", func(t *testing.T) {
		t.Parallel()

		l := NewListing("", "", nil, nil)
		if l.Repos == nil || l.Posts == nil {
			t.Error("expected non-nil empty slices")
		}
	})

	t.Run("languages", func(t *testing.T) {
		t.Parallel()

		order, counts := testListing().Languages()
		if diff := cmp.Diff([]string{"Other", "Go"}, order); diff != "" {
			t.Errorf("language order mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(map[string]int{"Other": 1, "Go": 1}, counts); diff != "" {
			t.Errorf("language counts mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes projects and posts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(testListing()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"PROJECTS (octocat)",
			"Source: featured",
			"new site",
			"updated 3 days ago",
			"https://octocat.dev",
			"POSTS",
			"2025-03-01  Tips & Tricks",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
		if strings.Contains(output, "Personal site") {
			t.Error("description should only be shown in verbose mode")
		}
	})

	t.Run("verbose adds details", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(testListing()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Personal site", "posts/b.html"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected verbose output to contain %q", want)
			}
		}
	})

	t.Run("error and empty", func(t *testing.T) {
		t.Parallel()

		l := NewListing("octocat", "", nil, nil)
		l.Error = "all project lookups failed"

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(l); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Unable to load projects: all project lookups failed", "No posts published yet"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("round trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(testListing()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got Listing
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if diff := cmp.Diff(testListing(), &got); diff != "" {
			t.Errorf("listing mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("pretty print keeps HTML characters", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(testListing()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "\n  \"username\": \"octocat\"") {
			t.Errorf("expected indented output\n%s", output)
		}
		if !strings.Contains(output, "Tips & Tricks") {
			t.Error("expected & to be written as-is")
		}
		if !strings.HasSuffix(output, "}\n") {
			t.Error("expected trailing newline")
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(testListing()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Portfolio Report",
			"## Projects",
			"[new site](https://github.com/octocat/new_site)",
			"featured lookup supplied the list",
			"```mermaid",
			"## Posts",
			"`b.html`",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
	})

	t.Run("pinned source has no notice", func(t *testing.T) {
		t.Parallel()

		l := testListing()
		l.Tier = "pinned"

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(l); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "lookup supplied the list") {
			t.Error("did not expect a fallback notice")
		}
	})

	t.Run("no posts", func(t *testing.T) {
		t.Parallel()

		l := testListing()
		l.Posts = model.PostIndex{}

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(l); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No posts published yet") {
			t.Error("expected empty posts tip")
		}
	})
}

type failingWriter struct{}

func (failingWriter) Write(*Listing) (int, error) { return 0, errors.New("disk full") }

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		n, err := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b)).Write(testListing())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != a.Len()+b.Len() {
			t.Errorf("n = %d, want %d", n, a.Len()+b.Len())
		}
	})

	t.Run("stops on error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, err := NewMultiWriter(failingWriter{}, NewSimpleWriter(&buf)).Write(testListing())
		if err == nil {
			t.Fatal("expected error")
		}
		if buf.Len() != 0 {
			t.Error("writer after the failing one should not run")
		}
	})
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "short", max: 10, want: "short"},
		{in: "exactly10!", max: 10, want: "exactly10!"},
		{in: "this is too long", max: 10, want: "this is..."},
		{in: "日本語のテキスト", max: 5, want: "日本..."},
		{in: "abcdef", max: 2, want: "ab"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSimpleWriterPostsOnly(t *testing.T) {
	t.Parallel()

	l := NewListing("", "", nil, testListing().Posts)
	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf).Write(l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "PROJECTS") {
		t.Errorf("post-only listing should not have a projects section\n%s", output)
	}
	if !strings.Contains(output, "Tips & Tricks") {
		t.Errorf("expected posts in output\n%s", output)
	}
}
