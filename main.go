// Reddit Wiki MCP Server - A Model Context Protocol server for subreddit wikis
// Provides tools for reading, auditing, and editing Reddit wiki pages
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/base"
	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/config"
	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/session"
	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/wiki"
	"github.com/olgasafonova/reddit-wiki-mcp-server/tools"
	"github.com/olgasafonova/reddit-wiki-mcp-server/tracing"
)

const (
	ServerName    = "reddit-wiki-mcp-server"
	ServerVersion = "1.0.0"
)

const instructions = `Reddit Wiki MCP Server provides tools for subreddit wikis.

Read tools list pages, fetch page content at any revision, and show page settings.
History tools list revisions per page or across the wiki, and posts discussing a page.
Write tools edit pages, change settings, hide or revert revisions, and manage editors;
they are only available when credentials are configured.

Every tool accepts an optional "subreddit" argument; without it the configured
REDDIT_SUBREDDIT is used.

Configure via environment variables:
- REDDIT_SUBREDDIT: Subreddit whose wiki is served (required)
- REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET, REDDIT_USERNAME, REDDIT_PASSWORD: OAuth script app (for editing)
- REDDIT_SESSION or REDDIT_MODHASH: cookie session alternative (for editing)`

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatalf("Failed to read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// stdout carries the MCP protocol, so logs go to stderr
	logger := newLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		return fmt.Errorf("tracing setup failed: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	if cfg.MetricsAddr != "" {
		metricsServer := startMetricsServer(cfg.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	client, err := newWikiClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	server := newServer(client, cfg.CanWrite(), logger)

	logger.Info("Starting Reddit Wiki MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"subreddit", cfg.Subreddit,
		"base_url", cfg.BaseURL,
		"oauth", cfg.HasOAuth(),
		"writes_enabled", cfg.CanWrite(),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newLogger creates a text logger writing to w at the given level.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newWikiClient builds the transport and identity for the configured credentials.
// OAuth takes precedence over a cookie session, which takes precedence over a static modhash.
func newWikiClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*wiki.Client, error) {
	return newWikiClientWithOAuth(ctx, cfg, cfg.OAuth(), logger)
}

func newWikiClientWithOAuth(ctx context.Context, cfg *config.Config, oauthCfg session.OAuthConfig, logger *slog.Logger) (*wiki.Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	var identity session.IdentityProvider = session.Static(cfg.Modhash)

	switch {
	case cfg.HasOAuth():
		oauthCfg.HTTPClient = httpClient
		oauthClient, err := session.NewOAuthHTTPClient(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		httpClient = oauthClient
		// Bearer-authenticated requests carry no modhash
		identity = session.Static("")

	case cfg.SessionCookie != "":
		jar, err := sessionCookieJar(cfg.BaseURL, cfg.SessionCookie)
		if err != nil {
			return nil, err
		}
		httpClient.Jar = jar
	}

	transport := base.NewClient(cfg.BaseURL,
		base.WithHTTPClient(httpClient),
		base.WithLogger(logger),
		base.WithUserAgent(cfg.UserAgent),
	)

	if cfg.SessionCookie != "" && !cfg.HasOAuth() {
		s := session.New(transport, session.WithLogger(logger), session.WithModhash(cfg.Modhash))
		if err := s.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("failed to load Reddit session: %w", err)
		}
		identity = s
	}

	return wiki.NewClient(transport, identity, cfg.Subreddit, wiki.WithLogger(logger)), nil
}

// sessionCookieJar returns a jar holding the reddit_session cookie for baseURL.
func sessionCookieJar(baseURL, cookie string) (http.CookieJar, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDDIT_BASE_URL: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	jar.SetCookies(u, []*http.Cookie{{Name: "reddit_session", Value: cookie, Path: "/"}})
	return jar, nil
}

// newServer creates the MCP server. Without write credentials only read-only tools are exposed.
func newServer(client *wiki.Client, writable bool, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: instructions,
	})

	registry := tools.NewHandlerRegistry(client, logger)
	if writable {
		registry.RegisterAll(server)
	} else {
		logger.Info("No Reddit credentials configured, registering read-only tools")
		registry.Register(server, tools.ReadOnlyTools())
	}
	return server
}

// startMetricsServer serves Prometheus metrics on addr in the background.
func startMetricsServer(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()

	logger.Info("Serving Prometheus metrics", "addr", addr)
	return srv
}
