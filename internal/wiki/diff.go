package wiki

import (
	"context"
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// DiffRevisions returns a unified diff of a page's markdown between two revisions.
// An empty revision means the current one. Identical contents yield "".
func (c *Client) DiffRevisions(ctx context.Context, page, from, to string) (string, error) {
	before, err := c.Page(ctx, page, from)
	if err != nil {
		return "", err
	}
	after, err := c.Page(ctx, page, to)
	if err != nil {
		return "", err
	}
	return unifiedDiff(revisionLabel(page, from), revisionLabel(page, to), before.ContentMarkdown, after.ContentMarkdown), nil
}

func unifiedDiff(fromName, toName, before, after string) string {
	edits := myers.ComputeEdits(span.URIFromPath(fromName), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, before, edits))
}

func revisionLabel(page, revision string) string {
	if revision == "" {
		return page + "@current"
	}
	return page + "@" + revision
}
