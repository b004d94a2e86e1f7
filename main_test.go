package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/config"
	"github.com/olgasafonova/reddit-wiki-mcp-server/tools"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn message not logged")
	}
}

func TestNewWikiClient_StaticModhash(t *testing.T) {
	var uh string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		uh = r.PostForm.Get("uh")
		if got := r.Header.Get("User-Agent"); got != "test-agent/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
	}))
	defer server.Close()

	cfg := &config.Config{
		Subreddit: "golang",
		BaseURL:   server.URL,
		UserAgent: "test-agent/1.0",
		Timeout:   5 * time.Second,
		Modhash:   "static-mh",
	}
	client, err := newWikiClient(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("newWikiClient: %v", err)
	}
	if client.Subreddit() != "golang" {
		t.Errorf("Subreddit() = %q", client.Subreddit())
	}

	if err := client.HideRevision(context.Background(), "faq", "r1"); err != nil {
		t.Fatalf("HideRevision: %v", err)
	}
	if uh != "static-mh" {
		t.Errorf("uh = %q, want static-mh", uh)
	}
}

func TestNewWikiClient_SessionCookie(t *testing.T) {
	var uh string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/me.json", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("reddit_session")
		if err != nil || c.Value != "cookie-value" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"kind":"t2","data":{"name":"wikimod","modhash":"fresh-mh"}}`)
	})
	mux.HandleFunc("/r/golang/api/wiki/revert", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		uh = r.PostForm.Get("uh")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := &config.Config{
		Subreddit:     "golang",
		BaseURL:       server.URL,
		Timeout:       5 * time.Second,
		SessionCookie: "cookie-value",
	}
	client, err := newWikiClient(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("newWikiClient: %v", err)
	}

	if err := client.RevertPage(context.Background(), "faq", "r1"); err != nil {
		t.Fatalf("RevertPage: %v", err)
	}
	if uh != "fresh-mh" {
		t.Errorf("uh = %q, want fresh-mh", uh)
	}
}

func TestNewWikiClient_SessionRefreshFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	cfg := &config.Config{
		Subreddit:     "golang",
		BaseURL:       server.URL,
		Timeout:       5 * time.Second,
		SessionCookie: "expired",
	}
	if _, err := newWikiClient(context.Background(), cfg, quietLogger()); err == nil {
		t.Fatal("expected error for rejected session")
	}
}

func TestNewWikiClient_OAuth(t *testing.T) {
	var auth string
	mux := http.NewServeMux()
	mux.HandleFunc("/r/golang/wiki/pages.json", func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"kind":"wikipagelisting","data":["index"]}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"bearer","expires_in":3600}`)
	}))
	defer tokenServer.Close()

	cfg := &config.Config{
		Subreddit:    "golang",
		BaseURL:      server.URL,
		Timeout:      5 * time.Second,
		ClientID:     "id",
		ClientSecret: "secret",
		Username:     "wikimod",
		Password:     "pw",
	}

	// The token endpoint is fixed in production; point it at the test server.
	oauthCfg := cfg.OAuth()
	oauthCfg.TokenURL = tokenServer.URL
	client, err := newWikiClientWithOAuth(context.Background(), cfg, oauthCfg, quietLogger())
	if err != nil {
		t.Fatalf("newWikiClient: %v", err)
	}

	names, err := client.PageNames(context.Background())
	if err != nil {
		t.Fatalf("PageNames: %v", err)
	}
	if len(names) != 1 || names[0] != "index" {
		t.Errorf("names = %v", names)
	}
	if auth != "Bearer tok" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestNewServer_ToolSets(t *testing.T) {
	tests := []struct {
		name     string
		writable bool
		want     int
	}{
		{"read-only", false, len(tools.ReadOnlyTools())},
		{"writable", true, len(tools.AllTools)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Subreddit: "golang", BaseURL: "http://127.0.0.1:0", Timeout: time.Second}
			client, err := newWikiClient(context.Background(), cfg, quietLogger())
			if err != nil {
				t.Fatalf("newWikiClient: %v", err)
			}
			server := newServer(client, tt.writable, quietLogger())

			ctx := context.Background()
			serverTransport, clientTransport := mcp.NewInMemoryTransports()
			if _, err := server.Connect(ctx, serverTransport, nil); err != nil {
				t.Fatalf("server connect: %v", err)
			}
			cs, err := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0.0.1"}, nil).Connect(ctx, clientTransport, nil)
			if err != nil {
				t.Fatalf("client connect: %v", err)
			}
			defer cs.Close()

			res, err := cs.ListTools(ctx, nil)
			if err != nil {
				t.Fatalf("ListTools: %v", err)
			}
			if len(res.Tools) != tt.want {
				t.Errorf("tools = %d, want %d", len(res.Tools), tt.want)
			}
		})
	}
}

func TestStartMetricsServer(t *testing.T) {
	srv := startMetricsServer("127.0.0.1:0", quietLogger())
	defer func() { _ = srv.Shutdown(context.Background()) }()

	if srv.Handler == nil {
		t.Fatal("metrics server has no handler")
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "reddit_wiki_mcp") {
		t.Error("metrics output lacks the reddit_wiki_mcp namespace")
	}
}

func TestSessionCookieJar(t *testing.T) {
	jar, err := sessionCookieJar("https://www.reddit.com", "abc")
	if err != nil {
		t.Fatalf("sessionCookieJar: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "https://www.reddit.com/api/me.json", nil)
	cookies := jar.Cookies(req.URL)
	if len(cookies) != 1 || cookies[0].Name != "reddit_session" || cookies[0].Value != "abc" {
		t.Errorf("cookies = %v", cookies)
	}
}
