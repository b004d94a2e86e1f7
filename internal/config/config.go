// Package config loads server settings from the environment.
package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/base"
	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/session"
	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/wiki"
)

// Config holds Reddit connection and server settings
type Config struct {
	// Subreddit the wiki client is bound to (without the r/ prefix)
	Subreddit string

	// BaseURL is the API host. Defaults to www.reddit.com, or oauth.reddit.com with OAuth credentials
	BaseURL string

	// UserAgent identifies the client to Reddit
	UserAgent string

	// Timeout for API requests
	Timeout time.Duration

	// Modhash is a static identity token for cookie sessions (optional)
	Modhash string

	// SessionCookie is a reddit_session cookie; the modhash is then loaded from /api/me.json
	SessionCookie string

	// OAuth script-app credentials (optional, for editing)
	ClientID     string
	ClientSecret string
	Username     string
	Password     string

	// MetricsAddr, when set, serves Prometheus metrics on this address
	MetricsAddr string

	// LogLevel for the server logger
	LogLevel slog.Level
}

// LoadEnvFile adds the variables in a dotenv file to the environment.
// Variables already set win over the file. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	subreddit := wiki.NormalizeSubreddit(os.Getenv("REDDIT_SUBREDDIT"))
	if subreddit == "" {
		return nil, errors.New("REDDIT_SUBREDDIT environment variable is required")
	}

	timeout := base.DefaultTimeout
	if t := os.Getenv("REDDIT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			timeout = d
		}
	}

	userAgent := os.Getenv("REDDIT_USER_AGENT")
	if userAgent == "" {
		userAgent = base.DefaultUserAgent
	}

	cfg := &Config{
		Subreddit:     subreddit,
		BaseURL:       os.Getenv("REDDIT_BASE_URL"),
		UserAgent:     userAgent,
		Timeout:       timeout,
		Modhash:       os.Getenv("REDDIT_MODHASH"),
		SessionCookie: os.Getenv("REDDIT_SESSION"),
		ClientID:      os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret:  os.Getenv("REDDIT_CLIENT_SECRET"),
		Username:      os.Getenv("REDDIT_USERNAME"),
		Password:      os.Getenv("REDDIT_PASSWORD"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
		LogLevel:      parseLevel(os.Getenv("LOG_LEVEL")),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = base.DefaultBaseURL
		if cfg.HasOAuth() {
			cfg.BaseURL = base.OAuthBaseURL
		}
	}

	return cfg, nil
}

// CanWrite returns true if any identity usable for wiki writes is configured
func (c *Config) CanWrite() bool {
	return c.HasOAuth() || c.SessionCookie != "" || c.Modhash != ""
}

// HasOAuth returns true if OAuth script-app credentials are configured
func (c *Config) HasOAuth() bool {
	return c.OAuth().Enabled()
}

// OAuth returns the OAuth settings derived from the configuration
func (c *Config) OAuth() session.OAuthConfig {
	return session.OAuthConfig{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Username:     c.Username,
		Password:     c.Password,
		UserAgent:    c.UserAgent,
		Scopes:       []string{"identity", "read", "wikiread", "wikiedit", "modwiki"},
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
