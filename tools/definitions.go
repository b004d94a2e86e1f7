package tools

// AllTools contains all tool specifications for the Reddit wiki MCP server.
// Tool descriptions follow a structured format for LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
//
// Every tool accepts an optional "subreddit" that overrides the configured one.
var AllTools = []ToolSpec{
	// ==========================================================================
	// READ TOOLS
	// ==========================================================================
	{
		Name:     "reddit_wiki_list_pages",
		Method:   "ListPages",
		Title:    "List Wiki Pages",
		Category: "read",
		Description: `List the names of all wiki pages in a subreddit.

USE WHEN: User asks "what wiki pages exist", "show the wiki index", or needs a page name before reading it.

PARAMETERS:
- subreddit: Subreddit name (optional, defaults to the configured one)

RETURNS: Page names in the order Reddit lists them.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "reddit_wiki_get_page",
		Method:   "GetPage",
		Title:    "Get Wiki Page",
		Category: "read",
		Description: `Read the content of a wiki page, optionally at an older revision.

USE WHEN: User says "show the FAQ", "what does the rules page say", "read config/sidebar".

NOT FOR: Edit history (use reddit_wiki_get_page_revisions).

PARAMETERS:
- page: Page name, e.g. index or config/sidebar (required)
- version: Revision ID (optional, defaults to the current revision)
- html: Include rendered HTML (default false)

RETURNS: Markdown content, revision ID, revision date and author, and whether you may edit it.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "reddit_wiki_get_page_settings",
		Method:   "GetPageSettings",
		Title:    "Get Wiki Page Settings",
		Category: "read",
		Description: `Read who may edit a wiki page and whether it is listed.

USE WHEN: User asks "who can edit this page", "is the page hidden", "list approved editors".

PARAMETERS:
- page: Page name (required)

RETURNS: Permission level (subreddit_wiki, approved_editors, mods_only), listed flag and editor names.

NOTE: Requires moderator access.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// HISTORY TOOLS
	// ==========================================================================
	{
		Name:     "reddit_wiki_get_page_revisions",
		Method:   "GetPageRevisions",
		Title:    "Get Page Revisions",
		Category: "history",
		Description: `List the edit history of one wiki page, newest first.

USE WHEN: User asks "who changed the FAQ", "show recent edits to rules", or needs a revision ID to revert to.

NOT FOR: Changes across all pages (use reddit_wiki_get_revisions).

PARAMETERS:
- page: Page name (required)
- limit: Max revisions (default 25, max 100)

RETURNS: Revision IDs, authors, reasons, timestamps and hidden flags.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "reddit_wiki_get_revisions",
		Method:   "GetRevisions",
		Title:    "Get Recent Wiki Changes",
		Category: "history",
		Description: `List recent edits across every page of the subreddit wiki, newest first.

USE WHEN: User asks "what changed in the wiki recently", "audit wiki activity".

NOT FOR: History of a single known page (use reddit_wiki_get_page_revisions).

PARAMETERS:
- limit: Max revisions (default 25, max 100)

RETURNS: Revision IDs with page names, authors, reasons and timestamps.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "reddit_wiki_get_page_discussions",
		Method:   "GetPageDiscussions",
		Title:    "Get Page Discussions",
		Category: "history",
		Description: `List Reddit posts that link to a wiki page.

USE WHEN: User asks "where is this page being discussed", "which posts reference the FAQ".

PARAMETERS:
- page: Page name (required)
- limit: Max posts (default 25, max 100)

RETURNS: Post IDs, titles, authors, scores and permalinks.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "reddit_wiki_diff_revisions",
		Method:   "DiffRevisions",
		Title:    "Diff Wiki Revisions",
		Category: "history",
		Description: `Show what changed on a wiki page between two revisions as a unified diff.

USE WHEN: User asks "what changed in this edit", "compare the FAQ to last week's version", or before reverting.

NOT FOR: Listing revision IDs (use reddit_wiki_get_page_revisions first).

PARAMETERS:
- page: Page name (required)
- from: Older revision ID (required)
- to: Newer revision ID (optional, defaults to the current revision)

RETURNS: A unified diff of the page markdown, empty when the revisions match.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WRITE TOOLS
	// ==========================================================================
	{
		Name:     "reddit_wiki_edit_page",
		Method:   "EditPage",
		Title:    "Edit Wiki Page",
		Category: "write",
		Description: `Replace the content of a wiki page, creating it if it does not exist.

USE WHEN: User says "update the FAQ", "create a wiki page", "fix the typo on rules".

PARAMETERS:
- page: Page name (required)
- content: Full new Markdown content (required)
- previous: Revision ID the edit is based on (optional, rejects the edit if the page changed since)
- reason: Edit summary (optional)

WARNING: The whole page is replaced. Read it with reddit_wiki_get_page first and pass its revision_id as previous.

RETURNS: Confirmation message.`,
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:     "reddit_wiki_set_page_settings",
		Method:   "SetPageSettings",
		Title:    "Set Wiki Page Settings",
		Category: "moderation",
		Description: `Change who may edit a wiki page and whether it is listed.

USE WHEN: User says "lock the rules page to mods", "hide this page from the index".

PARAMETERS:
- page: Page name (required)
- perm_level: subreddit_wiki, approved_editors or mods_only (required)
- listed: Whether the page appears in the page list (required)

RETURNS: Confirmation message.

NOTE: Requires moderator access.`,
		ReadOnly:    false,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:     "reddit_wiki_hide_revision",
		Method:   "HideRevision",
		Title:    "Hide Wiki Revision",
		Category: "moderation",
		Description: `Toggle whether a revision is hidden from the page history.

USE WHEN: User says "hide that vandalism edit", "unhide revision X".

PARAMETERS:
- page: Page name (required)
- revision: Revision ID (required)

WARNING: Calling twice un-hides the revision again.

RETURNS: Confirmation message.

NOTE: Requires moderator access.`,
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  false,
		OpenWorld:   true,
	},
	{
		Name:     "reddit_wiki_revert_page",
		Method:   "RevertPage",
		Title:    "Revert Wiki Page",
		Category: "moderation",
		Description: `Restore a wiki page to an earlier revision.

USE WHEN: User says "undo the last edit", "roll the FAQ back to yesterday's version".

PARAMETERS:
- page: Page name (required)
- revision: Revision ID to restore (required, see reddit_wiki_get_page_revisions)

RETURNS: Confirmation message.

NOTE: Requires moderator access.`,
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:     "reddit_wiki_set_page_editor",
		Method:   "SetPageEditor",
		Title:    "Set Wiki Page Editor",
		Category: "moderation",
		Description: `Grant or revoke a user's permission to edit a specific wiki page.

USE WHEN: User says "let u/alice edit the FAQ", "remove bob as an editor of rules".

PARAMETERS:
- page: Page name (required)
- username: Reddit username without u/ (required)
- allow: true to add, false to remove (required)

RETURNS: Confirmation message.

NOTE: Requires moderator access.`,
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
}
