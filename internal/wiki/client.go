// Package wiki is a typed client for a subreddit's wiki.
//
// Every operation maps to one Reddit endpoint. Reads decode the JSON response into
// plain values; writes return only an error and succeed on any 2xx status.
// Failures are passed through as *errors.TransportError or *errors.DecodeError
// without retries.
package wiki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	apierrors "github.com/olgasafonova/reddit-wiki-mcp-server/internal/errors"
	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/listing"
	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/session"
	"github.com/olgasafonova/reddit-wiki-mcp-server/metrics"
	"github.com/olgasafonova/reddit-wiki-mcp-server/tracing"
)

// Transport sends requests to the Reddit API. *base.Client satisfies it.
type Transport interface {
	listing.Fetcher
	PostForm(ctx context.Context, path string, form url.Values) ([]byte, error)
}

// Client accesses the wiki of a single subreddit.
type Client struct {
	transport Transport
	identity  session.IdentityProvider
	subreddit string
	logger    *slog.Logger
	pageSize  int
}

// Option configures the Client
type Option func(*Client)

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithPageSize sets the limit sent with listing requests. Zero leaves it to Reddit.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// NewClient creates a wiki client bound to subreddit. The identity is asked for
// the modhash on every write.
func NewClient(transport Transport, identity session.IdentityProvider, subreddit string, opts ...Option) *Client {
	if identity == nil {
		identity = session.Static("")
	}
	c := &Client{
		transport: transport,
		identity:  identity,
		subreddit: subreddit,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subreddit returns the subreddit the client is bound to.
func (c *Client) Subreddit() string {
	return c.subreddit
}

// ForSubreddit returns a client for another subreddit sharing the same transport and identity.
func (c *Client) ForSubreddit(name string) *Client {
	clone := *c
	clone.subreddit = name
	return &clone
}

func (c *Client) withPageSize(n int) *Client {
	clone := *c
	clone.pageSize = n
	return &clone
}

// getData performs a GET and decodes the "data" field of the response into v.
func (c *Client) getData(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.transport.Get(ctx, path, query)
	if err != nil {
		return err
	}

	var t thing
	if err := json.Unmarshal(body, &t); err != nil {
		return apierrors.NewDecodeError(path, err)
	}
	if len(t.Data) == 0 || bytes.Equal(t.Data, []byte("null")) {
		return apierrors.NewDecodeError(path, fmt.Errorf("response has no data field"))
	}
	if err := json.Unmarshal(t.Data, v); err != nil {
		return apierrors.NewDecodeError(path, err)
	}
	return nil
}

// post sends a mutating request. The modhash is read from the identity at call time.
func (c *Client) post(ctx context.Context, operation, path, page string, form url.Values) error {
	ctx, span := tracing.StartSpan(ctx, "wiki."+operation)
	defer span.End()
	tracing.AddWikiAttributes(span, c.subreddit, page)

	form.Set("uh", c.identity.Modhash())

	start := time.Now()
	_, err := c.transport.PostForm(ctx, path, form)
	metrics.RecordEdit(operation, err == nil)
	tracing.Finish(span, err)
	if err != nil {
		c.logger.Warn("Wiki write failed",
			"operation", operation,
			"subreddit", c.subreddit,
			"page", page,
			"error", err)
		return err
	}

	c.logger.Info("Wiki write succeeded",
		"operation", operation,
		"subreddit", c.subreddit,
		"page", page,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// NormalizeSubreddit strips surrounding whitespace, an "r/" or "/r/" prefix and
// a trailing slash from a subreddit name.
func NormalizeSubreddit(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "/")
	name = strings.TrimPrefix(name, "r/")
	return strings.TrimSuffix(name, "/")
}
