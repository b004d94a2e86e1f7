// Package listing implements lazy, cursor-paginated Reddit listings.
//
// A Listing is bound to a path and an item decoder. Nothing is fetched until the
// listing is iterated, and every iteration starts again from the first page.
package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/url"
	"strconv"

	apierrors "github.com/olgasafonova/reddit-wiki-mcp-server/internal/errors"
)

// Fetcher performs a GET request and returns the raw response body.
// *base.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// Decoder turns one listing child into an item.
type Decoder[T any] func(raw json.RawMessage) (T, error)

// Page is one page of a listing.
type Page[T any] struct {
	Items  []T
	After  string
	Before string
}

// Listing is a restartable sequence of T backed by a paginated endpoint.
type Listing[T any] struct {
	fetcher Fetcher
	path    string
	limit   int
	decode  Decoder[T]
}

// Option configures a Listing
type Option[T any] func(*Listing[T])

// WithLimit sets the page size sent as the limit query parameter.
func WithLimit[T any](n int) Option[T] {
	return func(l *Listing[T]) {
		if n > 0 {
			l.limit = n
		}
	}
}

// WithDecoder replaces the default item decoder.
func WithDecoder[T any](d Decoder[T]) Option[T] {
	return func(l *Listing[T]) {
		if d != nil {
			l.decode = d
		}
	}
}

// New creates a listing over path. No request is made until the listing is read.
func New[T any](fetcher Fetcher, path string, opts ...Option[T]) *Listing[T] {
	l := &Listing[T]{
		fetcher: fetcher,
		path:    path,
		decode:  DecodeChild[T],
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the endpoint path the listing reads from.
func (l *Listing[T]) Path() string {
	return l.path
}

type envelope struct {
	Kind string `json:"kind"`
	Data struct {
		After    string            `json:"after"`
		Before   string            `json:"before"`
		Children []json.RawMessage `json:"children"`
	} `json:"data"`
}

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// DecodeChild decodes a child that is either a {"kind","data"} thing or a bare object.
func DecodeChild[T any](raw json.RawMessage) (T, error) {
	var item T

	var th thing
	if err := json.Unmarshal(raw, &th); err == nil && th.Kind != "" && isObject(th.Data) {
		raw = th.Data
	}

	if err := json.Unmarshal(raw, &item); err != nil {
		return item, err
	}
	return item, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// Page fetches the page that follows the cursor after. An empty cursor is the first page.
func (l *Listing[T]) Page(ctx context.Context, after string) (*Page[T], error) {
	query := url.Values{}
	if after != "" {
		query.Set("after", after)
	}
	if l.limit > 0 {
		query.Set("limit", strconv.Itoa(l.limit))
	}

	body, err := l.fetcher.Get(ctx, l.path, query)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apierrors.NewDecodeError(l.path, err)
	}
	if env.Kind != "" && env.Kind != "Listing" {
		return nil, apierrors.NewDecodeError(l.path, fmt.Errorf("unexpected kind %q, want Listing", env.Kind))
	}

	page := &Page[T]{
		Items:  make([]T, 0, len(env.Data.Children)),
		After:  env.Data.After,
		Before: env.Data.Before,
	}
	for i, child := range env.Data.Children {
		item, err := l.decode(child)
		if err != nil {
			return nil, apierrors.NewDecodeError(l.path, fmt.Errorf("child %d: %w", i, err))
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}

// All returns an iterator over every item of the listing. Each call walks the
// pages again from the start. Iteration stops at the first error, which is yielded
// with a zero item.
func (l *Listing[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		after := ""
		for {
			page, err := l.Page(ctx, after)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
			if page.After == "" || len(page.Items) == 0 || page.After == after {
				return
			}
			after = page.After
		}
	}
}

// Collect reads up to max items. A max of zero or less reads the whole listing.
func (l *Listing[T]) Collect(ctx context.Context, max int) ([]T, error) {
	var items []T
	for item, err := range l.All(ctx) {
		if err != nil {
			return items, err
		}
		items = append(items, item)
		if max > 0 && len(items) >= max {
			break
		}
	}
	return items, nil
}
