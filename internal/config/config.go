package config

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths and the
	// environment variable prefix.
	AppName = "folio"

	// EnvPrefix is the prefix of environment variables that override
	// configuration keys. FOLIO_GITHUB_USERNAME maps to github.username.
	EnvPrefix = "FOLIO_"

	// DefaultAPIURL is the GitHub REST API root.
	DefaultAPIURL = "https://api.github.com"

	// DefaultGraphQLURL is the GitHub GraphQL endpoint.
	DefaultGraphQLURL = "https://api.github.com/graphql"

	// DefaultProfileURL is prefixed to the username for profile links.
	DefaultProfileURL = "https://github.com"

	// DefaultProjectLimit is how many project cards are shown.
	DefaultProjectLimit = 6

	// DefaultUserAgent identifies folio in requests to the GitHub API.
	// GitHub rejects API requests without a User-Agent.
	DefaultUserAgent = "folio (+https://github.com/nao1215/folio)"

	// DefaultSiteRoot is the directory the site is served from.
	DefaultSiteRoot = "."

	// DefaultPostsDir is the posts directory relative to the site root.
	DefaultPostsDir = "posts"

	// DefaultIndexName is the post index file written into the posts directory.
	DefaultIndexName = "index.json"

	// ExtractorRegex selects the pattern based metadata extractor.
	ExtractorRegex = "regex"

	// ExtractorHTML selects the markup parser based metadata extractor.
	ExtractorHTML = "html"
)

// Config holds every folio setting.
// It is loaded from the YAML file, then overridden by FOLIO_* variables,
// and finally by CLI flags. Components receive the parts they need at
// construction instead of reading global state.
type Config struct {
	// GitHub configures the project fetcher.
	GitHub GitHubConfig `yaml:"github" koanf:"github"`

	// Posts configures the post index builder and the blog renderers.
	Posts PostsConfig `yaml:"posts" koanf:"posts"`

	// Site holds the static portfolio content.
	Site SiteConfig `yaml:"site" koanf:"site"`

	// Verbose enables debug logging. It is only set from the CLI.
	Verbose bool `yaml:"-" koanf:"-"`
}

// GitHubConfig configures access to the GitHub API.
type GitHubConfig struct {
	// Username is the GitHub account whose projects are shown.
	Username string `yaml:"username" koanf:"username"`

	// Featured lists repository names looked up when pinned items are
	// unavailable. Order is preserved on the page. "owner/name" entries
	// refer to repositories outside the user's account.
	Featured []string `yaml:"featured" koanf:"featured"`

	// APIURL is the REST API root.
	APIURL string `yaml:"api_url" koanf:"api_url"`

	// GraphQLURL is the GraphQL endpoint.
	GraphQLURL string `yaml:"graphql_url" koanf:"graphql_url"`

	// ProfileURL is the web root used for the profile link on the error card.
	ProfileURL string `yaml:"profile_url" koanf:"profile_url"`

	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`

	// Concurrency caps parallel featured-repository lookups. Zero means unlimited.
	Concurrency int `yaml:"concurrency" koanf:"concurrency"`

	// Limit is the number of projects requested and rendered.
	Limit int `yaml:"limit" koanf:"limit"`

	// UserAgent is sent with every API request.
	UserAgent string `yaml:"user_agent" koanf:"user_agent"`
}

// PostsConfig configures where posts live and how they are indexed.
type PostsConfig struct {
	// Root is the site root directory.
	Root string `yaml:"root" koanf:"root"`

	// Dir is the posts directory relative to Root.
	Dir string `yaml:"dir" koanf:"dir"`

	// Index is the file name of the JSON post index inside Dir.
	Index string `yaml:"index" koanf:"index"`

	// Extensions lists accepted post file extensions.
	Extensions []string `yaml:"extensions" koanf:"extensions"`

	// Extractor selects the metadata extractor: "regex" or "html".
	Extractor string `yaml:"extractor" koanf:"extractor"`

	// RemoteURL is the root of a deployed copy of the site. When set, the
	// preview server reads the index and posts from it over HTTP instead of
	// from Root.
	RemoteURL string `yaml:"remote_url,omitempty" koanf:"remote_url"`
}

// DirPath returns the posts directory on disk.
func (p PostsConfig) DirPath() string {
	return filepath.Join(p.Root, p.Dir)
}

// IndexPath returns the index file location on disk.
func (p PostsConfig) IndexPath() string {
	return filepath.Join(p.DirPath(), p.Index)
}

// URLPrefix returns the posts directory as a slash separated path relative
// to the site root, as used in PostRecord.Path.
func (p PostsConfig) URLPrefix() string {
	return path.Clean(filepath.ToSlash(p.Dir))
}

// IndexURL returns the index location relative to the site root.
func (p PostsConfig) IndexURL() string {
	return path.Join(p.URLPrefix(), p.Index)
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL:     DefaultAPIURL,
			GraphQLURL: DefaultGraphQLURL,
			ProfileURL: DefaultProfileURL,
			Limit:      DefaultProjectLimit,
			UserAgent:  DefaultUserAgent,
		},
		Posts: PostsConfig{
			Root:       DefaultSiteRoot,
			Dir:        DefaultPostsDir,
			Index:      DefaultIndexName,
			Extensions: []string{".html"},
			Extractor:  ExtractorRegex,
		},
		Site: DefaultSite(),
	}
}

// XDGConfigDir returns the XDG config directory for folio.
// On Linux: ~/.config/folio
// On macOS: ~/Library/Application Support/folio
// On Windows: %APPDATA%\folio
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks if the configuration is valid.
// It returns the first problem found, wrapping one of the sentinel errors.
// The GitHub username is not checked here because the build step does not
// need it; see RequireUsername.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Posts.Dir) == "" {
		return ErrInvalidPostsDir
	}

	if c.Posts.Index == "" || strings.ContainsAny(c.Posts.Index, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidIndexName, c.Posts.Index)
	}

	for _, ext := range c.Posts.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
	}

	switch c.Posts.Extractor {
	case ExtractorRegex, ExtractorHTML:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExtractor, c.Posts.Extractor)
	}

	if c.Posts.RemoteURL != "" {
		u, err := url.Parse(c.Posts.RemoteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidRemoteURL, c.Posts.RemoteURL)
		}
	}

	if c.GitHub.Limit <= 0 {
		return ErrInvalidLimit
	}

	if c.GitHub.Concurrency < 0 {
		return ErrInvalidConcurrency
	}

	if c.GitHub.Timeout < 0 {
		return ErrInvalidTimeout
	}

	for _, color := range []string{c.Site.Theme.Primary, c.Site.Theme.Secondary, c.Site.Theme.Accent} {
		if color != "" && !hexColor.MatchString(color) {
			return fmt.Errorf("%w: %q", ErrInvalidColor, color)
		}
	}

	return nil
}

// RequireUsername returns ErrNoUsername when no GitHub username is set.
func (c *Config) RequireUsername() error {
	if strings.TrimSpace(c.GitHub.Username) == "" {
		return ErrNoUsername
	}
	return nil
}

// ProfileLink returns the GitHub profile URL of the configured user.
func (c *Config) ProfileLink() string {
	return strings.TrimRight(c.GitHub.ProfileURL, "/") + "/" + c.GitHub.Username
}
