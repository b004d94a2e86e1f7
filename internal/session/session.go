package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	apierrors "github.com/olgasafonova/reddit-wiki-mcp-server/internal/errors"
)

// MePath is the endpoint that reports the logged-in account and its modhash.
const MePath = "/api/me.json"

// Fetcher performs a GET request and returns the raw response body.
type Fetcher interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// Session tracks the logged-in account. It is safe for concurrent use.
type Session struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu      sync.RWMutex
	modhash string
	name    string
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithModhash seeds the session with a known modhash.
func WithModhash(modhash string) Option {
	return func(s *Session) {
		s.modhash = modhash
	}
}

// New creates a session that loads its identity through fetcher.
func New(fetcher Fetcher, opts ...Option) *Session {
	s := &Session{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type meResponse struct {
	Kind string `json:"kind"`
	Data struct {
		Name    string `json:"name"`
		Modhash string `json:"modhash"`
	} `json:"data"`
}

// Refresh reloads the account name and modhash from /api/me.json.
func (s *Session) Refresh(ctx context.Context) error {
	body, err := s.fetcher.Get(ctx, MePath, nil)
	if err != nil {
		return err
	}

	var me meResponse
	if err := json.Unmarshal(body, &me); err != nil {
		return apierrors.NewDecodeError(MePath, err)
	}
	if me.Data.Name == "" {
		return apierrors.NewDecodeError(MePath, fmt.Errorf("response carries no account; not logged in"))
	}

	s.mu.Lock()
	s.modhash = me.Data.Modhash
	s.name = me.Data.Name
	s.mu.Unlock()

	s.logger.Info("Reddit session refreshed", "user", me.Data.Name)
	return nil
}

// Modhash returns the current modhash, or "" before the first Refresh.
func (s *Session) Modhash() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modhash
}

// Name returns the logged-in account name.
func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}
