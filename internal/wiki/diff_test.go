package wiki

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/base"
	apierrors "github.com/olgasafonova/reddit-wiki-mcp-server/internal/errors"
	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/session"
)

// newVersionedServer serves the faq page with content keyed by the v parameter.
func newVersionedServer(t *testing.T, contents map[string]string, calls *atomic.Int32) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		content, ok := contents[r.URL.Query().Get("v")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprintf(w, `{"kind":"wikipage","data":{"content_md":%q,"may_revise":true}}`, content)
	}))
	t.Cleanup(server.Close)
	return NewClient(base.NewClient(server.URL), session.Static(""), "golang")
}

func TestDiffRevisions(t *testing.T) {
	var calls atomic.Int32
	c := newVersionedServer(t, map[string]string{
		"r1": "# FAQ\n\nRule one\n",
		"":   "# FAQ\n\nRule one\nRule two\n",
	}, &calls)

	diff, err := c.DiffRevisions(context.Background(), "faq", "r1", "")
	if err != nil {
		t.Fatalf("DiffRevisions: %v", err)
	}

	for _, want := range []string{"--- faq@r1", "+++ faq@current", "+Rule two"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff lacks %q:\n%s", want, diff)
		}
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("requests = %d, want 2", n)
	}
}

func TestDiffRevisions_Identical(t *testing.T) {
	var calls atomic.Int32
	c := newVersionedServer(t, map[string]string{"a": "same\n", "b": "same\n"}, &calls)

	diff, err := c.DiffRevisions(context.Background(), "faq", "a", "b")
	if err != nil {
		t.Fatalf("DiffRevisions: %v", err)
	}
	if diff != "" {
		t.Errorf("diff = %q, want empty", diff)
	}
}

func TestDiffRevisions_MissingRevision(t *testing.T) {
	var calls atomic.Int32
	c := newVersionedServer(t, map[string]string{"": "current\n"}, &calls)

	_, err := c.DiffRevisions(context.Background(), "faq", "gone", "")
	if apierrors.StatusCode(err) != http.StatusNotFound {
		t.Errorf("expected 404 transport error, got %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}

func TestDiffRevisionsMCP(t *testing.T) {
	var calls atomic.Int32
	c := newVersionedServer(t, map[string]string{"r1": "old\n", "": "new\n"}, &calls)

	res, err := c.DiffRevisionsMCP(context.Background(), DiffRevisionsArgs{Page: "faq", From: "r1"})
	if err != nil {
		t.Fatalf("DiffRevisionsMCP: %v", err)
	}
	if !res.Changed || res.To != "current" || res.Subreddit != "golang" {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(res.Diff, "-old") || !strings.Contains(res.Diff, "+new") {
		t.Errorf("diff = %q", res.Diff)
	}
}

func TestRevisionLabel(t *testing.T) {
	if got := revisionLabel("faq", ""); got != "faq@current" {
		t.Errorf("got %q", got)
	}
	if got := revisionLabel("config/sidebar", "abc"); got != "config/sidebar@abc" {
		t.Errorf("got %q", got)
	}
}
