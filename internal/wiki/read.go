package wiki

import (
	"context"
	"net/url"

	"github.com/vartanbeno/go-reddit/v2/reddit"

	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/listing"
)

// PageNames lists the names of the subreddit's wiki pages in the order Reddit returns them.
func (c *Client) PageNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getData(ctx, c.path(pagesURL), nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Page fetches a wiki page. An empty version returns the current revision and
// sends no v parameter; otherwise v is sent verbatim.
func (c *Client) Page(ctx context.Context, page, version string) (*WikiPage, error) {
	var query url.Values
	if version != "" {
		query = url.Values{"v": {version}}
	}

	var p WikiPage
	if err := c.getData(ctx, c.path(pageURL, page), query, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PageSettings fetches the settings of a wiki page.
func (c *Client) PageSettings(ctx context.Context, page string) (*WikiPageSettings, error) {
	var s WikiPageSettings
	if err := c.getData(ctx, c.path(pageSettingsURL, page), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// PageRevisions returns the edit history of one page. Nothing is fetched until
// the listing is read.
func (c *Client) PageRevisions(page string) *listing.Listing[WikiPageRevision] {
	return listing.New(c.transport, c.path(pageRevisionsURL, page), listing.WithLimit[WikiPageRevision](c.pageSize))
}

// Revisions returns the edit history of every page in the subreddit wiki.
func (c *Client) Revisions() *listing.Listing[WikiPageRevision] {
	return listing.New(c.transport, c.path(revisionsURL), listing.WithLimit[WikiPageRevision](c.pageSize))
}

// PageDiscussions returns the posts that link to a wiki page.
func (c *Client) PageDiscussions(page string) *listing.Listing[reddit.Post] {
	return listing.New(c.transport, c.path(pageDiscussionsURL, page), listing.WithLimit[reddit.Post](c.pageSize))
}
