package jobsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fetcher retrieves the raw job list for one user.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchUserJobs(ctx context.Context, username string) ([]RawJob, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the job API over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
	requestID func() string
}

// ClientOptions tunes a Client. The zero value is usable.
type ClientOptions struct {
	// Token, when set, is sent as a bearer Authorization header.
	Token     string
	Timeout   time.Duration
	UserAgent string
}

const (
	defaultAPIURL    = "http://127.0.0.1:8080"
	defaultUserAgent = "jobpanel/0.1"
	requestTimeout   = 5 * time.Second
	jobListPath      = "/api/dps/job/list"
)

// StatusError reports an HTTP error status returned by the API.
type StatusError struct {
	Path      string
	Code      int
	RequestID string
}

func (e *StatusError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
	}
	return fmt.Sprintf("api %s returned status %d (request %s)", e.Path, e.Code, e.RequestID)
}

// NewClient builds a Client for the API rooted at apiURL.
func NewClient(apiURL string, opts ClientOptions) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	agent := strings.TrimSpace(opts.UserAgent)
	if agent == "" {
		agent = defaultUserAgent
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: agent,
		token:     strings.TrimSpace(opts.Token),
		requestID: uuid.NewString,
	}, nil
}

// FetchUserJobs lists every job submitted by username. An empty list is not
// an error.
func (c *Client) FetchUserJobs(ctx context.Context, username string) ([]RawJob, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("username", strings.TrimSpace(username))
	rel := &url.URL{Path: jobListPath, RawQuery: values.Encode()}

	var payload jobListResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return flattenJobs(payload.Response.Jobs), nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + rel.Path
	reqURL.RawQuery = rel.RawQuery
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	requestID := c.requestID()
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.Path, Code: resp.StatusCode, RequestID: requestID}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
