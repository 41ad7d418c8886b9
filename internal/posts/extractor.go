package posts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/folio/internal/model"
)

// Metadata is what an Extractor finds in one post.
// A nil Title or Date means the post does not declare one.
type Metadata struct {
	Title       *string
	Date        *string
	Description string
}

// Extractor pulls Metadata out of a post's full HTML text.
type Extractor interface {
	Extract(html string) Metadata
}

// NewExtractor returns the extractor registered under name ("regex" or "html").
// An empty name selects the regex extractor.
func NewExtractor(name string) (Extractor, error) {
	switch name {
	case "", "regex":
		return RegexExtractor{}, nil
	case "html":
		return HTMLExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtractor, name)
	}
}

var (
	h1Pattern   = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)
	h2Pattern   = regexp.MustCompile(`(?i)<h2[^>]*>([^<]+)</h2>`)
	datePattern = regexp.MustCompile(`(?i)<meta\s+name=["']date["']\s+content=["']([^"']+)["']`)
	paraPattern = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

// RegexExtractor finds metadata with regular expressions.
//
// Headings must be a single run of text between the opening and closing
// tag: "<h1>Hello <em>World</em></h1>" yields no title. The date is read
// only from a meta tag whose name attribute comes before its content
// attribute.
type RegexExtractor struct{}

// Extract implements Extractor.
func (RegexExtractor) Extract(html string) Metadata {
	var meta Metadata

	m := h1Pattern.FindStringSubmatch(html)
	if m == nil {
		m = h2Pattern.FindStringSubmatch(html)
	}
	if m != nil {
		title := strings.TrimSpace(m[1])
		meta.Title = &title
	}

	if m := datePattern.FindStringSubmatch(html); m != nil {
		date := strings.TrimSpace(m[1])
		meta.Date = &date
	}

	if m := paraPattern.FindStringSubmatch(html); m != nil {
		meta.Description = truncate(strings.TrimSpace(tagPattern.ReplaceAllString(m[1], "")))
	}

	return meta
}

// truncate cuts s to model.MaxDescriptionLength characters.
func truncate(s string) string {
	r := []rune(s)
	if len(r) <= model.MaxDescriptionLength {
		return s
	}
	return string(r[:model.MaxDescriptionLength])
}
