package render

import "errors"

var (
	// ErrLoad is returned when content could not be fetched.
	ErrLoad = errors.New("failed to load content")

	// ErrParse is returned when fetched content is malformed.
	ErrParse = errors.New("failed to parse content")

	// ErrMissingInput is returned when a required query parameter is absent.
	ErrMissingInput = errors.New("missing input")

	// ErrTemplate is returned when a card template fails to execute.
	ErrTemplate = errors.New("failed to render template")
)
