package render_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/nao1215/folio/internal/render"
	"github.com/nao1215/folio/internal/source"
	"github.com/nao1215/folio/internal/view"
)

const indexPath = "posts/index.json"

func siteFS(files map[string]string) source.Source {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return source.NewFS(fsys)
}

func TestBlogListRender(t *testing.T) {
	t.Parallel()

	src := siteFS(map[string]string{
		indexPath: `[
  {"file": "hello world.html", "id": "hello world", "title": "Hello <b>World</b> & Friends", "date": "2025-03-01", "description": "First <script>post</script>", "path": "posts/hello world.html"},
  {"file": "second.html", "id": "second", "title": "Second", "date": "2025-02-01", "description": "", "path": "posts/second.html"}
]`,
	})

	var region view.Buffer
	if err := render.NewBlogList(src, indexPath, "").Render(context.Background(), &region); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := string(region.HTML())

	for _, want := range []string{
		"Hello &lt;b&gt;World&lt;/b&gt; &amp; Friends",
		"First &lt;script&gt;post&lt;/script&gt;",
		"2025-03-01",
		`href="post.html?file=hello%20world.html"`,
		`href="post.html?file=second.html"`,
		"Read More",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "<script>") {
		t.Error("description markup was not escaped")
	}
	if strings.Index(got, "Hello") > strings.Index(got, "Second") {
		t.Error("cards are not in index order")
	}
	if n := strings.Count(got, `class="project-card"`); n != 2 {
		t.Errorf("card count = %d, want 2", n)
	}
}

func TestBlogListRenderMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		want    string
		wantErr error
	}{
		{
			name:    "missing index",
			files:   map[string]string{},
			want:    render.MsgPostsUnavailable,
			wantErr: source.ErrNetwork,
		},
		{
			name:    "malformed index",
			files:   map[string]string{indexPath: `{"not": "an array"`},
			want:    render.MsgPostsUnavailable,
			wantErr: render.ErrParse,
		},
		{
			name:  "empty index",
			files: map[string]string{indexPath: "[]\n"},
			want:  render.MsgNoPosts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var region view.Buffer
			err := render.NewBlogList(siteFS(tt.files), indexPath, "").Render(context.Background(), &region)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Render() error = %v, want %v", err, tt.wantErr)
			}
			if got := region.Text(); got != tt.want {
				t.Errorf("region text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlogListRenderHTTPNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	src, err := source.NewHTTP(srv.URL, srv.Client())
	if err != nil {
		t.Fatal(err)
	}

	var region view.Buffer
	err = render.NewBlogList(src, indexPath, "").Render(context.Background(), &region)

	var se *source.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("Render() error = %v, want a 404 status error", err)
	}
	if got := region.Text(); got != render.MsgPostsUnavailable {
		t.Errorf("region text = %q, want %q", got, render.MsgPostsUnavailable)
	}
	if strings.Contains(string(region.HTML()), "project-card") {
		t.Error("failure must not render cards")
	}
}

func TestBlogListLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		viewer string
		file   string
		want   string
	}{
		{viewer: "", file: "post.html", want: "post.html?file=post.html"},
		{viewer: "/post", file: "a b.html", want: "/post?file=a%20b.html"},
		{viewer: "/post", file: "q&a.html", want: "/post?file=q%26a.html"},
		{viewer: "post.html", file: "café.html", want: "post.html?file=caf%C3%A9.html"},
	}
	for _, tt := range tests {
		b := render.NewBlogList(siteFS(nil), indexPath, tt.viewer)
		if got := b.Link(tt.file); got != tt.want {
			t.Errorf("Link(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}
