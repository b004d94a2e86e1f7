package wiki

import "fmt"

// Endpoint templates. The first placeholder is the subreddit, the second the page name.
const (
	pagesURL           = "/r/%s/wiki/pages.json"
	pageURL            = "/r/%s/wiki/%s.json"
	pageSettingsURL    = "/r/%s/wiki/settings/%s.json"
	revisionsURL       = "/r/%s/wiki/revisions.json"
	pageRevisionsURL   = "/r/%s/wiki/revisions/%s.json"
	pageDiscussionsURL = "/r/%s/wiki/discussions/%s.json"
	editURL            = "/r/%s/api/wiki/edit"
	hideURL            = "/r/%s/api/wiki/hide"
	revertURL          = "/r/%s/api/wiki/revert"
	allowEditorAddURL  = "/r/%s/api/wiki/alloweditor/add"
	allowEditorDelURL  = "/r/%s/api/wiki/alloweditor/del"
)

// path substitutes the bound subreddit and any further arguments into tmpl.
// Names are inserted verbatim; escaping is left to the transport.
func (c *Client) path(tmpl string, args ...any) string {
	return fmt.Sprintf(tmpl, append([]any{c.subreddit}, args...)...)
}
