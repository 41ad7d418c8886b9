package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and the loader so callers
// can branch with errors.Is() while still printing a readable message.
var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrNoUsername is returned when a command needs the GitHub username and
	// neither the config file nor FOLIO_GITHUB_USERNAME provides one.
	ErrNoUsername = errors.New("no GitHub username configured: set github.username or FOLIO_GITHUB_USERNAME")

	// ErrInvalidPostsDir is returned when posts.dir is empty.
	ErrInvalidPostsDir = errors.New("invalid posts directory: must not be empty")

	// ErrInvalidIndexName is returned when posts.index is empty or contains a path separator.
	// The index always lives directly inside the posts directory.
	ErrInvalidIndexName = errors.New("invalid index file name: must be a bare file name")

	// ErrInvalidExtension is returned when a posts.extensions entry does not start with a dot.
	ErrInvalidExtension = errors.New("invalid post extension: must start with '.'")

	// ErrUnknownExtractor is returned when posts.extractor is neither "regex" nor "html".
	ErrUnknownExtractor = errors.New("unknown metadata extractor: must be regex or html")

	// ErrInvalidRemoteURL is returned when posts.remote_url is not an http(s) URL.
	ErrInvalidRemoteURL = errors.New("invalid remote url: must be an http or https URL")

	// ErrInvalidLimit is returned when github.limit is not positive.
	ErrInvalidLimit = errors.New("invalid project limit: must be positive")

	// ErrInvalidConcurrency is returned when github.concurrency is negative.
	// Zero means "one goroutine per featured repository".
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be non-negative")

	// ErrInvalidTimeout is returned when github.timeout is negative.
	// Zero disables the client timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidColor is returned when a theme color is not a hex color such as "#6366f1".
	ErrInvalidColor = errors.New("invalid theme color: must be a hex color like #6366f1")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
