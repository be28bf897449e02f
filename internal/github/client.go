package github

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"repoqa/internal/errs"
)

const defaultConcurrency = 3

// Options configures a Client.
type Options struct {
	// BaseURL overrides the API endpoint (GitHub Enterprise or tests).
	BaseURL string
	// Token is used when a call does not carry its own token.
	Token string
	// Concurrency bounds parallel blob downloads. Defaults to 3.
	Concurrency int
	// Filter selects the files to download. Defaults to NewFilter().
	Filter *Filter
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Client wraps the GitHub REST API.
type Client struct {
	httpClient  *http.Client
	baseURL     *url.URL
	token       string
	concurrency int
	filter      *Filter
}

// NewClient creates a new GitHub client.
func NewClient(opts Options) (*Client, error) {
	c := &Client{
		httpClient:  opts.HTTPClient,
		token:       opts.Token,
		concurrency: opts.Concurrency,
		filter:      opts.Filter,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.concurrency <= 0 {
		c.concurrency = defaultConcurrency
	}
	if c.filter == nil {
		c.filter = NewFilter()
	}
	if opts.BaseURL != "" {
		raw := opts.BaseURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		c.baseURL = u
	}
	return c, nil
}

// api returns a go-github client authenticated with token, falling back to the configured token.
func (c *Client) api(token string) *gh.Client {
	client := gh.NewClient(c.httpClient)
	if token == "" {
		token = c.token
	}
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if c.baseURL != nil {
		client.BaseURL = c.baseURL
	}
	return client
}

// classify maps a go-github error onto the error taxonomy. notFound is used for 404.
func classify(err error, notFound error) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	var respErr *gh.ErrorResponse

	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return errs.Kind(errs.ErrRateLimited, err)
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return errs.Kind(notFound, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errs.Kind(errs.ErrAccessDenied, err)
		case http.StatusTooManyRequests:
			return errs.Kind(errs.ErrRateLimited, err)
		}
	}
	return errs.Kind(errs.ErrExternalService, err)
}

func isNotFound(err error) bool {
	var respErr *gh.ErrorResponse
	return errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound
}
