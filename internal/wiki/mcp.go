package wiki

import (
	"context"
	"fmt"
	"time"

	"github.com/vartanbeno/go-reddit/v2/reddit"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// ListPagesMCP is the MCP wrapper for PageNames
func (c *Client) ListPagesMCP(ctx context.Context, args ListPagesArgs) (ListPagesResult, error) {
	cl := c.forArgs(args.Subreddit)
	names, err := cl.PageNames(ctx)
	if err != nil {
		return ListPagesResult{}, err
	}
	if names == nil {
		names = []string{}
	}
	return ListPagesResult{Subreddit: cl.subreddit, Pages: names, Count: len(names)}, nil
}

// GetPageMCP is the MCP wrapper for Page
func (c *Client) GetPageMCP(ctx context.Context, args GetPageArgs) (GetPageResult, error) {
	cl := c.forArgs(args.Subreddit)
	page, err := cl.Page(ctx, args.Page, args.Version)
	if err != nil {
		return GetPageResult{}, err
	}

	result := GetPageResult{
		Subreddit:    cl.subreddit,
		Page:         args.Page,
		Content:      page.ContentMarkdown,
		RevisionID:   page.RevisionID,
		RevisionDate: formatTimestamp(page.RevisionDate),
		RevisionBy:   accountName(page.RevisionBy),
		MayRevise:    page.MayRevise,
	}
	if args.HTML {
		result.ContentHTML = page.ContentHTML
	}
	return result, nil
}

// GetPageSettingsMCP is the MCP wrapper for PageSettings
func (c *Client) GetPageSettingsMCP(ctx context.Context, args GetPageSettingsArgs) (PageSettingsResult, error) {
	cl := c.forArgs(args.Subreddit)
	settings, err := cl.PageSettings(ctx, args.Page)
	if err != nil {
		return PageSettingsResult{}, err
	}

	editors := make([]string, 0, len(settings.Editors))
	for _, e := range settings.Editors {
		editors = append(editors, e.Name)
	}

	return PageSettingsResult{
		Subreddit: cl.subreddit,
		Page:      args.Page,
		PermLevel: settings.PermLevel.String(),
		Listed:    settings.Listed,
		Editors:   editors,
	}, nil
}

// DiffRevisionsMCP is the MCP wrapper for DiffRevisions
func (c *Client) DiffRevisionsMCP(ctx context.Context, args DiffRevisionsArgs) (DiffResult, error) {
	cl := c.forArgs(args.Subreddit)
	diff, err := cl.DiffRevisions(ctx, args.Page, args.From, args.To)
	if err != nil {
		return DiffResult{}, err
	}

	to := args.To
	if to == "" {
		to = "current"
	}
	return DiffResult{
		Subreddit: cl.subreddit,
		Page:      args.Page,
		From:      args.From,
		To:        to,
		Changed:   diff != "",
		Diff:      diff,
	}, nil
}

// SetPageSettingsMCP is the MCP wrapper for SetPageSettings
func (c *Client) SetPageSettingsMCP(ctx context.Context, args SetPageSettingsArgs) (WriteResult, error) {
	level, err := ParsePermLevel(args.PermLevel)
	if err != nil {
		return WriteResult{}, err
	}

	cl := c.forArgs(args.Subreddit)
	if err := cl.SetPageSettings(ctx, args.Page, WikiPageSettings{PermLevel: level, Listed: args.Listed}); err != nil {
		return WriteResult{}, err
	}
	return cl.writeResult(args.Page, fmt.Sprintf("settings updated: perm_level=%s listed=%t", level, args.Listed)), nil
}

// GetPageRevisionsMCP is the MCP wrapper for PageRevisions
func (c *Client) GetPageRevisionsMCP(ctx context.Context, args GetPageRevisionsArgs) (RevisionsResult, error) {
	limit := normalizeLimit(args.Limit)
	cl := c.forArgs(args.Subreddit).withPageSize(limit)

	revs, err := cl.PageRevisions(args.Page).Collect(ctx, limit)
	if err != nil {
		return RevisionsResult{}, err
	}
	summaries := summarizeRevisions(revs)
	return RevisionsResult{Subreddit: cl.subreddit, Page: args.Page, Revisions: summaries, Count: len(summaries)}, nil
}

// GetRevisionsMCP is the MCP wrapper for Revisions
func (c *Client) GetRevisionsMCP(ctx context.Context, args GetRevisionsArgs) (RevisionsResult, error) {
	limit := normalizeLimit(args.Limit)
	cl := c.forArgs(args.Subreddit).withPageSize(limit)

	revs, err := cl.Revisions().Collect(ctx, limit)
	if err != nil {
		return RevisionsResult{}, err
	}
	summaries := summarizeRevisions(revs)
	return RevisionsResult{Subreddit: cl.subreddit, Revisions: summaries, Count: len(summaries)}, nil
}

// GetPageDiscussionsMCP is the MCP wrapper for PageDiscussions
func (c *Client) GetPageDiscussionsMCP(ctx context.Context, args GetPageDiscussionsArgs) (DiscussionsResult, error) {
	limit := normalizeLimit(args.Limit)
	cl := c.forArgs(args.Subreddit).withPageSize(limit)

	posts, err := cl.PageDiscussions(args.Page).Collect(ctx, limit)
	if err != nil {
		return DiscussionsResult{}, err
	}

	summaries := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, summarizePost(p))
	}
	return DiscussionsResult{Subreddit: cl.subreddit, Page: args.Page, Posts: summaries, Count: len(summaries)}, nil
}

// EditPageMCP is the MCP wrapper for EditPage. Empty previous or reason are not sent.
func (c *Client) EditPageMCP(ctx context.Context, args EditPageArgs) (WriteResult, error) {
	opts := &EditOptions{}
	if args.Previous != "" {
		opts.Previous = String(args.Previous)
	}
	if args.Reason != "" {
		opts.Reason = String(args.Reason)
	}

	cl := c.forArgs(args.Subreddit)
	if err := cl.EditPage(ctx, args.Page, args.Content, opts); err != nil {
		return WriteResult{}, err
	}
	return cl.writeResult(args.Page, fmt.Sprintf("page saved (%d bytes)", len(args.Content))), nil
}

// HideRevisionMCP is the MCP wrapper for HideRevision
func (c *Client) HideRevisionMCP(ctx context.Context, args HideRevisionArgs) (WriteResult, error) {
	cl := c.forArgs(args.Subreddit)
	if err := cl.HideRevision(ctx, args.Page, args.Revision); err != nil {
		return WriteResult{}, err
	}
	return cl.writeResult(args.Page, "visibility toggled for revision "+args.Revision), nil
}

// RevertPageMCP is the MCP wrapper for RevertPage
func (c *Client) RevertPageMCP(ctx context.Context, args RevertPageArgs) (WriteResult, error) {
	cl := c.forArgs(args.Subreddit)
	if err := cl.RevertPage(ctx, args.Page, args.Revision); err != nil {
		return WriteResult{}, err
	}
	return cl.writeResult(args.Page, "page reverted to revision "+args.Revision), nil
}

// SetPageEditorMCP is the MCP wrapper for SetPageEditor
func (c *Client) SetPageEditorMCP(ctx context.Context, args SetPageEditorArgs) (WriteResult, error) {
	cl := c.forArgs(args.Subreddit)
	if err := cl.SetPageEditor(ctx, args.Page, args.Username, args.Allow); err != nil {
		return WriteResult{}, err
	}
	msg := "removed editor " + args.Username
	if args.Allow {
		msg = "added editor " + args.Username
	}
	return cl.writeResult(args.Page, msg), nil
}

// forArgs returns the client for an optional subreddit override.
func (c *Client) forArgs(subreddit string) *Client {
	name := NormalizeSubreddit(subreddit)
	if name == "" || name == c.subreddit {
		return c
	}
	return c.ForSubreddit(name)
}

func (c *Client) writeResult(page, msg string) WriteResult {
	return WriteResult{Success: true, Subreddit: c.subreddit, Page: page, Message: msg}
}

func normalizeLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultListLimit
	case n > MaxListLimit:
		return MaxListLimit
	default:
		return n
	}
}

func summarizeRevisions(revs []WikiPageRevision) []RevisionSummary {
	out := make([]RevisionSummary, 0, len(revs))
	for _, r := range revs {
		out = append(out, RevisionSummary{
			ID:        r.ID,
			Page:      r.Page,
			Author:    accountName(r.Author),
			Reason:    r.Reason,
			Timestamp: formatTimestamp(r.Timestamp),
			Hidden:    r.Hidden,
		})
	}
	return out
}

func summarizePost(p reddit.Post) PostSummary {
	return PostSummary{
		ID:        p.ID,
		Title:     p.Title,
		Author:    p.Author,
		Permalink: p.Permalink,
		URL:       p.URL,
		Score:     p.Score,
		Created:   formatTimestamp(p.Created),
	}
}

func accountName(a *Account) string {
	if a == nil {
		return ""
	}
	return a.Name
}

func formatTimestamp(ts *reddit.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
