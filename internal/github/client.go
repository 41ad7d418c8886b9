package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/folio/internal/log"
	"github.com/nao1215/folio/internal/model"
)

const (
	defaultAPIURL     = "https://api.github.com"
	defaultGraphQLURL = "https://api.github.com/graphql"
	defaultUserAgent  = "folio"

	// maxErrorBody caps how much of an error response is kept in StatusError.
	maxErrorBody = 512
)

// Client talks to the GitHub REST and GraphQL APIs without credentials.
type Client struct {
	httpClient *http.Client
	apiURL     string
	graphqlURL string
	userAgent  string
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client. Tests pass httptest's client here.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.httpClient = c }
}

// WithAPIURL sets the REST API root, e.g. an httptest server URL.
func WithAPIURL(u string) ClientOption {
	return func(cl *Client) { cl.apiURL = strings.TrimRight(u, "/") }
}

// WithGraphQLURL sets the GraphQL endpoint.
func WithGraphQLURL(u string) ClientOption {
	return func(cl *Client) { cl.graphqlURL = u }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) { cl.userAgent = ua }
}

// WithTimeout sets a per-request timeout on the default HTTP client.
// Zero leaves requests unbounded. It has no effect after WithHTTPClient.
func WithTimeout(d time.Duration) ClientOption {
	return func(cl *Client) {
		if cl.httpClient == nil {
			cl.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithClientLogger sets the logger.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) { cl.logger = l }
}

// NewClient creates a Client. With no options it targets api.github.com
// with http.DefaultClient semantics and no timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		apiURL:     defaultAPIURL,
		graphqlURL: defaultGraphQLURL,
		userAgent:  defaultUserAgent,
		logger:     log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

// do sends one request and decodes a 2xx JSON body into out.
// A non-nil body is sent as JSON.
func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("github request", "method", method, "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("failed to close response body", "error", cerr)
		}
	}()

	if isRateLimited(resp) {
		return fmt.Errorf("%w: resets at %s", ErrRateLimited, rateLimitReset(resp).Format(time.RFC3339))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: method,
			URL:    target,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return false
	}
	return resp.Header.Get("X-RateLimit-Remaining") == "0"
}

func rateLimitReset(resp *http.Response) time.Time {
	ts, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

// Repo looks up one repository. name may be "repo" (owned by username)
// or "owner/repo".
func (c *Client) Repo(ctx context.Context, username, name string) (model.RepoRecord, error) {
	owner, repo := username, name
	if o, r, ok := strings.Cut(name, "/"); ok {
		owner, repo = o, r
	}
	target := fmt.Sprintf("%s/repos/%s/%s", c.apiURL, url.PathEscape(owner), url.PathEscape(repo))

	var r restRepo
	if err := c.do(ctx, http.MethodGet, target, nil, &r); err != nil {
		return model.RepoRecord{}, err
	}
	return r.record(), nil
}

// Recent lists the user's most recently updated repositories, at most limit.
func (c *Client) Recent(ctx context.Context, username string, limit int) ([]model.RepoRecord, error) {
	q := url.Values{}
	q.Set("sort", "updated")
	q.Set("per_page", strconv.Itoa(limit))
	target := fmt.Sprintf("%s/users/%s/repos?%s", c.apiURL, url.PathEscape(username), q.Encode())

	var repos []restRepo
	if err := c.do(ctx, http.MethodGet, target, nil, &repos); err != nil {
		return nil, err
	}
	if len(repos) > limit {
		repos = repos[:limit]
	}
	out := make([]model.RepoRecord, len(repos))
	for i, r := range repos {
		out[i] = r.record()
	}
	return out, nil
}

// Pinned returns up to limit pinned repositories of username.
func (c *Client) Pinned(ctx context.Context, username string, limit int) ([]model.RepoRecord, error) {
	req := graphqlRequest{
		Query:     pinnedQuery(limit),
		Variables: map[string]any{"login": username},
	}

	var resp pinnedResponse
	if err := c.do(ctx, http.MethodPost, c.graphqlURL, req, &resp); err != nil {
		return nil, err
	}
	return resp.records()
}
