package posts

import "errors"

var (
	// ErrUnknownExtractor is returned by NewExtractor for an unsupported name.
	ErrUnknownExtractor = errors.New("unknown metadata extractor")

	// ErrReadPost wraps the failure that aborted a build.
	ErrReadPost = errors.New("failed to read post")

	// ErrWriteIndex wraps a failure to write the index file.
	ErrWriteIndex = errors.New("failed to write post index")
)
