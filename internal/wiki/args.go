package wiki

// Listing limits for MCP tools
const (
	DefaultListLimit = 25
	MaxListLimit     = 100
)

// ListPagesArgs contains parameters for listing wiki pages
type ListPagesArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
}

// ListPagesResult is the result of listing wiki pages
type ListPagesResult struct {
	Subreddit string   `json:"subreddit"`
	Pages     []string `json:"pages"`
	Count     int      `json:"count"`
}

// GetPageArgs contains parameters for fetching a page
type GetPageArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Page      string `json:"page" jsonschema:"Wiki page name, e.g. index or config/sidebar"`
	Version   string `json:"version,omitempty" jsonschema:"Revision ID to fetch; omit for the current revision"`
	HTML      bool   `json:"html,omitempty" jsonschema:"Also return the rendered HTML (default: false)"`
}

// GetPageResult is the result of fetching a page
type GetPageResult struct {
	Subreddit    string `json:"subreddit"`
	Page         string `json:"page"`
	Content      string `json:"content"`
	ContentHTML  string `json:"content_html,omitempty"`
	RevisionID   string `json:"revision_id,omitempty"`
	RevisionDate string `json:"revision_date,omitempty"`
	RevisionBy   string `json:"revision_by,omitempty"`
	MayRevise    bool   `json:"may_revise"`
}

// GetPageSettingsArgs contains parameters for fetching page settings
type GetPageSettingsArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Page      string `json:"page" jsonschema:"Wiki page name"`
}

// PageSettingsResult describes a page's settings
type PageSettingsResult struct {
	Subreddit string   `json:"subreddit"`
	Page      string   `json:"page"`
	PermLevel string   `json:"perm_level"`
	Listed    bool     `json:"listed"`
	Editors   []string `json:"editors,omitempty"`
}

// SetPageSettingsArgs contains parameters for changing page settings
type SetPageSettingsArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Page      string `json:"page" jsonschema:"Wiki page name"`
	PermLevel string `json:"perm_level" jsonschema:"Who may edit: subreddit_wiki, approved_editors or mods_only"`
	Listed    bool   `json:"listed" jsonschema:"Whether the page appears in the page list"`
}

// GetPageRevisionsArgs contains parameters for a page's revision history
type GetPageRevisionsArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Page      string `json:"page" jsonschema:"Wiki page name"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum revisions to return (default 25, max 100)"`
}

// GetRevisionsArgs contains parameters for the subreddit-wide revision history
type GetRevisionsArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum revisions to return (default 25, max 100)"`
}

// RevisionsResult is a list of revisions
type RevisionsResult struct {
	Subreddit string            `json:"subreddit"`
	Page      string            `json:"page,omitempty"`
	Revisions []RevisionSummary `json:"revisions"`
	Count     int               `json:"count"`
}

// RevisionSummary is a compact revision representation
type RevisionSummary struct {
	ID        string `json:"id"`
	Page      string `json:"page,omitempty"`
	Author    string `json:"author,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Hidden    bool   `json:"hidden,omitempty"`
}

// DiffRevisionsArgs contains parameters for comparing two revisions of a page
type DiffRevisionsArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Page      string `json:"page" jsonschema:"Wiki page name"`
	From      string `json:"from" jsonschema:"Older revision ID"`
	To        string `json:"to,omitempty" jsonschema:"Newer revision ID (defaults to the current revision)"`
}

// DiffResult is a unified diff between two revisions
type DiffResult struct {
	Subreddit string `json:"subreddit"`
	Page      string `json:"page"`
	From      string `json:"from"`
	To        string `json:"to"`
	Changed   bool   `json:"changed"`
	Diff      string `json:"diff,omitempty"`
}

// GetPageDiscussionsArgs contains parameters for posts discussing a page
type GetPageDiscussionsArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Page      string `json:"page" jsonschema:"Wiki page name"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum posts to return (default 25, max 100)"`
}

// DiscussionsResult is a list of posts discussing a page
type DiscussionsResult struct {
	Subreddit string        `json:"subreddit"`
	Page      string        `json:"page"`
	Posts     []PostSummary `json:"posts"`
	Count     int           `json:"count"`
}

// PostSummary is a compact post representation
type PostSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Permalink string `json:"permalink,omitempty"`
	URL       string `json:"url,omitempty"`
	Score     int    `json:"score"`
	Created   string `json:"created,omitempty"`
}

// EditPageArgs contains parameters for editing a page
type EditPageArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Page      string `json:"page" jsonschema:"Wiki page name; created if it does not exist"`
	Content   string `json:"content" jsonschema:"New page content in Markdown"`
	Previous  string `json:"previous,omitempty" jsonschema:"Revision ID the edit is based on, to detect conflicting edits"`
	Reason    string `json:"reason,omitempty" jsonschema:"Edit summary shown in the page history"`
}

// HideRevisionArgs contains parameters for hiding a revision
type HideRevisionArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Page      string `json:"page" jsonschema:"Wiki page name"`
	Revision  string `json:"revision" jsonschema:"Revision ID to hide or unhide"`
}

// RevertPageArgs contains parameters for reverting a page
type RevertPageArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Page      string `json:"page" jsonschema:"Wiki page name"`
	Revision  string `json:"revision" jsonschema:"Revision ID to restore"`
}

// SetPageEditorArgs contains parameters for granting or revoking edit access
type SetPageEditorArgs struct {
	Subreddit string `json:"subreddit,omitempty" jsonschema:"Subreddit name without r/ (defaults to the configured subreddit)"`
	Page      string `json:"page" jsonschema:"Wiki page name"`
	Username  string `json:"username" jsonschema:"Reddit username without u/"`
	Allow     bool   `json:"allow" jsonschema:"true to add the user as an editor, false to remove them"`
}

// WriteResult is the result of a mutating wiki operation
type WriteResult struct {
	Success   bool   `json:"success"`
	Subreddit string `json:"subreddit"`
	Page      string `json:"page"`
	Message   string `json:"message"`
}
