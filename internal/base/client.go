// Package base provides the HTTP transport shared by the Reddit API clients.
//
// The transport formats request URLs against a base URL, sends GET and form-encoded
// POST requests, and turns network failures and non-2xx answers into
// *errors.TransportError values. It makes exactly one attempt per call.
package base

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apierrors "github.com/olgasafonova/reddit-wiki-mcp-server/internal/errors"
	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/infra"
	"github.com/olgasafonova/reddit-wiki-mcp-server/metrics"
	"github.com/olgasafonova/reddit-wiki-mcp-server/tracing"
)

const (
	// DefaultBaseURL is the cookie/modhash authenticated Reddit host
	DefaultBaseURL = "https://www.reddit.com"

	// OAuthBaseURL is the host for bearer-token authenticated requests
	OAuthBaseURL = "https://oauth.reddit.com"

	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the client to Reddit
	DefaultUserAgent = "reddit-wiki-mcp-server/1.0"

	// MaxConcurrentRequests limits parallel API calls
	MaxConcurrentRequests = 5

	// maxResponseSize caps how much of a response body is read
	maxResponseSize = 10 << 20
)

// Client is the HTTP transport for the Reddit API.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *slog.Logger
	UserAgent      string
	CircuitBreaker *infra.CircuitBreaker
	Semaphore      chan struct{}
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithUserAgent sets the User-Agent header sent on every request
func WithUserAgent(ua string) ClientOption {
	return func(client *Client) {
		if ua != "" {
			client.UserAgent = ua
		}
	}
}

// WithCircuitBreaker replaces the default circuit breaker
func WithCircuitBreaker(cb *infra.CircuitBreaker) ClientOption {
	return func(client *Client) {
		client.CircuitBreaker = cb
	}
}

// NewClient creates a transport for baseURL. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		HTTPClient:     newHTTPClient(DefaultTimeout),
		Logger:         slog.Default(),
		UserAgent:      DefaultUserAgent,
		CircuitBreaker: infra.NewCircuitBreaker(),
		Semaphore:      make(chan struct{}, MaxConcurrentRequests),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.CircuitBreaker.OnOpen(func() {
		metrics.CircuitBreakerOpens.Inc()
		c.Logger.Warn("Reddit API circuit breaker opened")
	})

	return c
}

// CircuitBreakerStats returns the current circuit breaker state
func (c *Client) CircuitBreakerStats() infra.CircuitBreakerStats {
	return c.CircuitBreaker.Stats()
}

// Request describes a single API call
type Request struct {
	Method string
	Path   string     // path relative to BaseURL, e.g. /r/golang/wiki/pages.json
	Query  url.Values // appended to the URL when non-empty
	Form   url.Values // sent as an x-www-form-urlencoded body when Method is POST
}

// URL returns the absolute request URL. path is escaped, so names containing
// ?, # or % stay inside the path.
func (c *Client) URL(path string, query url.Values) string {
	ref := url.URL{Path: path, RawQuery: query.Encode()}
	return c.BaseURL + ref.String()
}

// Get performs a GET request and returns the response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// PostForm performs a form-encoded POST request and returns the response body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Form: form})
}

// Do performs req once. Non-2xx statuses and network failures are returned as
// *errors.TransportError; the body of a 2xx response is returned unparsed.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	reqURL := c.URL(req.Path, req.Query)
	endpoint := EndpointLabel(req.Path)

	ctx, span := tracing.StartSpan(ctx, "reddit.api "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("reddit.endpoint", endpoint),
		))
	defer span.End()

	fail := func(err error) ([]byte, error) {
		tracing.Finish(span, err)
		return nil, err
	}

	if !c.CircuitBreaker.Allow() {
		stats := c.CircuitBreaker.Stats()
		return fail(&apierrors.TransportError{
			Method: req.Method,
			URL:    reqURL,
			Err: &infra.ErrCircuitOpen{
				State:    stats.State,
				RetryAt:  stats.RetryAt,
				Failures: stats.ConsecutiveFails,
			},
		})
	}

	if err := c.acquireSlot(ctx); err != nil {
		return fail(&apierrors.TransportError{Method: req.Method, URL: reqURL, Err: err})
	}
	defer c.releaseSlot()

	var body io.Reader
	if req.Method == http.MethodPost && req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, reqURL, body)
	if err != nil {
		return fail(&apierrors.TransportError{Method: req.Method, URL: reqURL, Err: fmt.Errorf("failed to create request: %w", err)})
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.UserAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		metrics.RecordAPICall(req.Method, endpoint, time.Since(start).Seconds(), 0)
		c.recordFailure(ctx)
		c.Logger.Warn("Reddit API request failed",
			"method", req.Method,
			"endpoint", endpoint,
			"error", err)
		return fail(&apierrors.TransportError{Method: req.Method, URL: reqURL, Err: err})
	}

	respBody, err := readAndClose(resp)
	duration := time.Since(start)
	metrics.RecordAPICall(req.Method, endpoint, duration.Seconds(), resp.StatusCode)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if err != nil {
		c.recordFailure(ctx)
		return fail(&apierrors.TransportError{
			Method:     req.Method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response: %w", err),
		})
	}

	c.Logger.Debug("Reddit API request",
		"method", req.Method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds())

	if resp.StatusCode >= 500 {
		c.CircuitBreaker.RecordFailure()
	} else {
		// Client errors don't indicate service issues
		c.CircuitBreaker.RecordSuccess()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(&apierrors.TransportError{
			Method:     req.Method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 200),
		})
	}

	tracing.Finish(span, nil)
	return respBody, nil
}

// recordFailure counts a failed request against the circuit breaker unless the
// caller's context ended it.
func (c *Client) recordFailure(ctx context.Context) {
	if ctx.Err() != nil {
		c.CircuitBreaker.RecordAbandoned()
		return
	}
	c.CircuitBreaker.RecordFailure()
}

// acquireSlot blocks until a request slot is available or ctx is done
func (c *Client) acquireSlot(ctx context.Context) error {
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	default:
	}

	metrics.RateLimitWaits.Inc()
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context canceled while waiting for request slot: %w", ctx.Err())
	}
}

func (c *Client) releaseSlot() {
	<-c.Semaphore
}

// EndpointLabel reduces a request path to its endpoint template so that metric
// labels stay bounded: subreddit names become {r} and wiki page names become {p}.
func EndpointLabel(path string) string {
	segs := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segs) >= 2 && segs[0] == "r" {
		segs[1] = "{r}"
	}

	for i, s := range segs {
		if s != "wiki" || (i > 0 && segs[i-1] == "api") {
			continue
		}
		rest := segs[i+1:]
		if len(rest) == 0 {
			break
		}
		switch {
		case rest[0] == "pages.json" || rest[0] == "revisions.json":
			// fixed endpoints
		case (rest[0] == "settings" || rest[0] == "revisions" || rest[0] == "discussions") && len(rest) > 1:
			segs = append(segs[:i+2], "{p}.json")
		default:
			segs = append(segs[:i+1], "{p}.json")
		}
		break
	}

	return "/" + strings.Join(segs, "/")
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	_ = resp.Body.Close()
	return body, err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// newHTTPClient creates an HTTP client with connection reuse settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
