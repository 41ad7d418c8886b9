package posts

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md renders Markdown posts. Raw HTML in Markdown is kept because posts
// are trusted same-origin content, e.g. a <meta name="date"> line.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// IsMarkdown reports whether name is a Markdown post.
func IsMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// ToHTML returns the HTML form of a post. HTML posts are returned unchanged;
// Markdown posts are rendered with goldmark.
func ToHTML(name string, content []byte) ([]byte, error) {
	if !IsMarkdown(name) {
		return content, nil
	}
	var buf bytes.Buffer
	if err := md.Convert(content, &buf); err != nil {
		return nil, fmt.Errorf("render markdown %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
