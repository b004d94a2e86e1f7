package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/base"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REDDIT_SUBREDDIT", "REDDIT_BASE_URL", "REDDIT_USER_AGENT", "REDDIT_TIMEOUT",
		"REDDIT_MODHASH", "REDDIT_SESSION", "REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "REDDIT_USERNAME",
		"REDDIT_PASSWORD", "METRICS_ADDR", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_RequiresSubreddit(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error without REDDIT_SUBREDDIT")
	}
}

func TestLoad_NormalizesSubreddit(t *testing.T) {
	for _, raw := range []string{"golang", "r/golang", "/r/golang", "/r/golang/", "  r/golang  "} {
		t.Run(raw, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("REDDIT_SUBREDDIT", raw)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Subreddit != "golang" {
				t.Errorf("Subreddit = %q, want golang", cfg.Subreddit)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDDIT_SUBREDDIT", "r/golang")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Subreddit != "golang" {
		t.Errorf("Subreddit = %q, want golang", cfg.Subreddit)
	}
	if cfg.BaseURL != base.DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.UserAgent != base.DefaultUserAgent {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.Timeout != base.DefaultTimeout {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.HasOAuth() {
		t.Error("HasOAuth() = true without credentials")
	}
	if cfg.CanWrite() {
		t.Error("CanWrite() = true without any identity")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDDIT_SUBREDDIT", "golang")
	t.Setenv("REDDIT_BASE_URL", "http://localhost:8080")
	t.Setenv("REDDIT_USER_AGENT", "custom/2.0")
	t.Setenv("REDDIT_TIMEOUT", "5s")
	t.Setenv("REDDIT_MODHASH", "mh")
	t.Setenv("METRICS_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.UserAgent != "custom/2.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Modhash != "mh" {
		t.Errorf("Modhash = %q", cfg.Modhash)
	}
	if !cfg.CanWrite() {
		t.Error("CanWrite() = false with a modhash")
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDDIT_SUBREDDIT", "golang")
	t.Setenv("REDDIT_TIMEOUT", "soon")
	t.Setenv("LOG_LEVEL", "loud")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timeout != base.DefaultTimeout {
		t.Errorf("Timeout = %v, want default", cfg.Timeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoad_OAuthSelectsOAuthHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDDIT_SUBREDDIT", "golang")
	t.Setenv("REDDIT_CLIENT_ID", "id")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")
	t.Setenv("REDDIT_USERNAME", "wikimod")
	t.Setenv("REDDIT_PASSWORD", "pw")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.HasOAuth() {
		t.Fatal("HasOAuth() = false")
	}
	if cfg.BaseURL != base.OAuthBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, base.OAuthBaseURL)
	}
	oauth := cfg.OAuth()
	if oauth.ClientID != "id" || oauth.UserAgent != base.DefaultUserAgent {
		t.Errorf("OAuth() = %+v", oauth)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDDIT_USER_AGENT", "from-env/1.0")
	t.Cleanup(func() { _ = os.Unsetenv("REDDIT_WIKI_DOTENV_ONLY") })

	path := filepath.Join(t.TempDir(), ".env")
	content := "REDDIT_WIKI_DOTENV_ONLY=yes\nREDDIT_USER_AGENT=from-file/1.0\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("REDDIT_WIKI_DOTENV_ONLY"); got != "yes" {
		t.Errorf("REDDIT_WIKI_DOTENV_ONLY = %q, want yes", got)
	}
	if got := os.Getenv("REDDIT_USER_AGENT"); got != "from-env/1.0" {
		t.Errorf("REDDIT_USER_AGENT = %q, existing variable was overridden", got)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}
