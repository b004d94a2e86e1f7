package wiki

import (
	"context"
	"net/url"
	"strconv"
)

// SetPageSettings updates the permission level and listed flag of a page.
// Editors are managed with SetPageEditor and are not sent.
func (c *Client) SetPageSettings(ctx context.Context, page string, settings WikiPageSettings) error {
	form := url.Values{}
	form.Set("page", page)
	form.Set("permlevel", strconv.Itoa(int(settings.PermLevel)))
	form.Set("listed", strconv.FormatBool(settings.Listed))

	return c.post(ctx, "settings", c.path(pageSettingsURL, page), page, form)
}

// EditPage replaces the content of a page, creating it if needed.
// Optional fields in opts are sent only when set.
func (c *Client) EditPage(ctx context.Context, page, content string, opts *EditOptions) error {
	form := url.Values{}
	form.Set("page", page)
	form.Set("content", content)

	if opts != nil {
		if opts.Previous != nil {
			form.Set("previous", *opts.Previous)
		}
		if opts.Reason != nil {
			form.Set("reason", *opts.Reason)
		}
	}

	return c.post(ctx, "edit", c.path(editURL), page, form)
}

// HideRevision toggles the visibility of a revision in the page history.
func (c *Client) HideRevision(ctx context.Context, page, revision string) error {
	return c.post(ctx, "hide", c.path(hideURL), page, revisionForm(page, revision))
}

// RevertPage restores a page to the given revision.
func (c *Client) RevertPage(ctx context.Context, page, revision string) error {
	return c.post(ctx, "revert", c.path(revertURL), page, revisionForm(page, revision))
}

// SetPageEditor allows (allow=true) or disallows a user to edit a page.
func (c *Client) SetPageEditor(ctx context.Context, page, username string, allow bool) error {
	endpoint, op := allowEditorDelURL, "editor_del"
	if allow {
		endpoint, op = allowEditorAddURL, "editor_add"
	}

	form := url.Values{}
	form.Set("page", page)
	form.Set("username", username)

	return c.post(ctx, op, c.path(endpoint), page, form)
}

func revisionForm(page, revision string) url.Values {
	form := url.Values{}
	form.Set("page", page)
	form.Set("revision", revision)
	return form
}
