package posts

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/folio/internal/model"
)

func writePost(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func readIndex(t *testing.T, b *Builder) model.PostIndex {
	t.Helper()
	data, err := os.ReadFile(b.IndexPath())
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	idx, err := Decode(data)
	if err != nil {
		t.Fatalf("decode index: %v", err)
	}
	return idx
}

func TestBuilderBuild(t *testing.T) {
	t.Parallel()

	t.Run("builds the documented example record", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePost(t, dir, "hello.html", `<h1>Hello World</h1><meta name="date" content="2024-03-01"><p>First post.</p>`)

		b := NewBuilder(dir)
		n, err := b.Build(t.Context())
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if n != 1 {
			t.Fatalf("Build() = %d, want 1", n)
		}

		want := model.PostIndex{{
			File:        "hello.html",
			ID:          "hello",
			Title:       "Hello World",
			Date:        "2024-03-01",
			Description: "First post.",
			Path:        "posts/hello.html",
		}}
		if diff := cmp.Diff(want, readIndex(t, b)); diff != "" {
			t.Errorf("index mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("falls back to file name and modification date", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := writePost(t, dir, "untitled.html", `<div>no metadata</div>`)
		mtime := time.Date(2022, 7, 14, 23, 30, 0, 0, time.UTC)
		if err := os.Chtimes(p, mtime, mtime); err != nil {
			t.Fatal(err)
		}

		b := NewBuilder(dir)
		if _, err := b.Build(t.Context()); err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		idx := readIndex(t, b)
		if len(idx) != 1 {
			t.Fatalf("expected 1 record, got %d", len(idx))
		}
		got := idx[0]
		if got.Title != "untitled" {
			t.Errorf("title = %q, want untitled", got.Title)
		}
		if got.Date != "2022-07-14" {
			t.Errorf("date = %q, want 2022-07-14", got.Date)
		}
		if got.Description != "" {
			t.Errorf("description = %q, want empty", got.Description)
		}
	})

	t.Run("skips index, other extensions and directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePost(t, dir, "index.html", `<h1>Landing</h1>`)
		writePost(t, dir, "notes.txt", `<h1>Notes</h1>`)
		writePost(t, dir, "post.html", `<h1>Post</h1>`)
		if err := os.Mkdir(filepath.Join(dir, "drafts.html"), 0o750); err != nil {
			t.Fatal(err)
		}

		b := NewBuilder(dir)
		n, err := b.Build(t.Context())
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Build() = %d, want 1", n)
		}
		if idx := readIndex(t, b); idx[0].File != "post.html" {
			t.Errorf("unexpected record %+v", idx[0])
		}
	})

	t.Run("sorts by date descending with scan order ties", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePost(t, dir, "a.html", `<meta name="date" content="2024-01-01">`)
		writePost(t, dir, "b.html", `<meta name="date" content="2024-05-01">`)
		writePost(t, dir, "c.html", `<meta name="date" content="2024-01-01">`)

		b := NewBuilder(dir)
		if _, err := b.Build(t.Context()); err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		idx := readIndex(t, b)
		got := []string{idx[0].File, idx[1].File, idx[2].File}
		if diff := cmp.Diff([]string{"b.html", "a.html", "c.html"}, got); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
		if !idx.IsSorted() {
			t.Error("index is not sorted")
		}
	})

	t.Run("creates a missing directory and writes an empty array", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "site", "posts")
		b := NewBuilder(dir)

		n, err := b.Build(t.Context())
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if n != 0 {
			t.Errorf("Build() = %d, want 0", n)
		}
		data, err := os.ReadFile(b.IndexPath())
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "[]\n" {
			t.Errorf("index = %q, want []", data)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePost(t, dir, "one.html", `<h1>One & Two</h1><p>a <b>&lt;tag&gt;</b></p>`)
		writePost(t, dir, "two.html", `<h2>Two</h2>`)

		b := NewBuilder(dir)
		if _, err := b.Build(t.Context()); err != nil {
			t.Fatal(err)
		}
		first, err := os.ReadFile(b.IndexPath())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := b.Build(t.Context()); err != nil {
			t.Fatal(err)
		}
		second, err := os.ReadFile(b.IndexPath())
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("index changed between runs:\n%s\n---\n%s", first, second)
		}
		if !bytes.Contains(first, []byte(`"One & Two"`)) {
			t.Errorf("expected HTML characters to be written unescaped:\n%s", first)
		}
	})

	t.Run("honours prefix, index name and markdown posts", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePost(t, dir, "intro.md", "# Markdown Intro\n\nA *short* intro.\n")

		b := NewBuilder(dir,
			WithURLPrefix("/blog/entries/"),
			WithIndexName("manifest.json"),
			WithExtensions(".html", ".MD"),
			WithExtractor(HTMLExtractor{}),
		)
		if _, err := b.Build(t.Context()); err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if filepath.Base(b.IndexPath()) != "manifest.json" {
			t.Errorf("IndexPath() = %q", b.IndexPath())
		}

		idx := readIndex(t, b)
		if len(idx) != 1 {
			t.Fatalf("expected 1 record, got %d", len(idx))
		}
		want := model.PostRecord{
			File:        "intro.md",
			ID:          "intro",
			Title:       "Markdown Intro",
			Date:        idx[0].Date,
			Description: "A short intro.",
			Path:        "blog/entries/intro.md",
		}
		if diff := cmp.Diff(want, idx[0]); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("honours a cancelled context", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePost(t, dir, "a.html", `<h1>A</h1>`)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		if _, err := NewBuilder(dir).Build(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestBuilderAccepts(t *testing.T) {
	t.Parallel()

	b := NewBuilder(t.TempDir(), WithExtensions(".html", ".md"))

	tests := []struct {
		name string
		want bool
	}{
		{name: "post.html", want: true},
		{name: "POST.HTML", want: true},
		{name: "post.md", want: true},
		{name: "index.html", want: false},
		{name: "index.md", want: false},
		{name: "index.json", want: false},
		{name: "image.png", want: false},
		{name: "indexing.html", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := b.Accepts(tt.name); got != tt.want {
				t.Errorf("Accepts(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	data, err := Encode(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Encode(nil) = %q, want []", data)
	}

	if _, err := Decode([]byte(`{"not":"an array"}`)); err == nil {
		t.Error("expected error decoding an object")
	}
}

func TestBuilderIndexIsPublic(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	dir := t.TempDir()
	b := NewBuilder(dir)

	// A private leftover index must become readable again.
	if err := os.WriteFile(b.IndexPath(), []byte("[]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(t.Context()); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	info, err := os.Stat(b.IndexPath())
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o644 {
		t.Errorf("index mode = %v, want %v", got, os.FileMode(0o644))
	}
}
