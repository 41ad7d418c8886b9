package github

import (
	"errors"
	"fmt"
)

var (
	// ErrAllTiersFailed is returned by Fetcher.Fetch when no tier produced
	// repositories. It is joined with the error of every tier.
	ErrAllTiersFailed = errors.New("all project sources failed")

	// ErrNoRecords marks a tier that succeeded with zero repositories.
	ErrNoRecords = errors.New("no repositories returned")

	// ErrRateLimited is returned when GitHub reports an exhausted rate limit.
	// The request is not retried.
	ErrRateLimited = errors.New("github rate limit exceeded")

	// ErrUnexpectedStatus matches every StatusError.
	ErrUnexpectedStatus = errors.New("unexpected status from github")

	// ErrDecode is returned when a response body is not the expected JSON.
	ErrDecode = errors.New("malformed github response")

	// ErrGraphQL is returned when the GraphQL API answers with errors and no data.
	ErrGraphQL = errors.New("github graphql error")

	// ErrNoUsername is returned when Fetch is called without a username.
	ErrNoUsername = errors.New("github username is empty")
)

// StatusError describes a non-2xx response from GitHub.
type StatusError struct {
	Method string
	URL    string
	Code   int
	// Body is the start of the response body, for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// Is reports whether target is ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
