package wiki

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vartanbeno/go-reddit/v2/reddit"
)

// PermLevel controls who may edit a wiki page.
type PermLevel int

const (
	// PermSubredditWiki uses the subreddit's wiki permissions
	PermSubredditWiki PermLevel = 0
	// PermApprovedEditors allows only approved wiki contributors
	PermApprovedEditors PermLevel = 1
	// PermModsOnly allows only moderators
	PermModsOnly PermLevel = 2
)

var permLevelNames = map[PermLevel]string{
	PermSubredditWiki:   "subreddit_wiki",
	PermApprovedEditors: "approved_editors",
	PermModsOnly:        "mods_only",
}

func (p PermLevel) String() string {
	if name, ok := permLevelNames[p]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(p)) + ")"
}

// ParsePermLevel accepts a level name (subreddit_wiki, approved_editors, mods_only)
// or its numeric value.
func ParsePermLevel(s string) (PermLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for level, name := range permLevelNames {
		if s == name || s == strconv.Itoa(int(level)) {
			return level, nil
		}
	}
	return 0, fmt.Errorf("invalid permission level %q: use subreddit_wiki, approved_editors or mods_only", s)
}

// Account is a Reddit user referenced from wiki data.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts either a bare account object or a {"kind":"t2","data":{...}} thing.
func (a *Account) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}

	var th struct {
		Kind string          `json:"kind"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &th); err == nil && th.Kind != "" && len(th.Data) > 0 {
		b = th.Data
	}

	type plain Account
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = Account(p)
	return nil
}

// WikiPage is a wiki page at its current or a historical revision.
type WikiPage struct {
	ContentMarkdown string            `json:"content_md"`
	ContentHTML     string            `json:"content_html"`
	MayRevise       bool              `json:"may_revise"`
	RevisionID      string            `json:"revision_id"`
	RevisionDate    *reddit.Timestamp `json:"revision_date"`
	RevisionBy      *Account          `json:"revision_by"`
}

// WikiPageSettings is the page-level wiki configuration.
type WikiPageSettings struct {
	PermLevel PermLevel `json:"permlevel"`
	Listed    bool      `json:"listed"`
	Editors   []Account `json:"editors,omitempty"`
}

// WikiPageRevision is one entry of a page's edit history.
type WikiPageRevision struct {
	ID        string            `json:"id"`
	Page      string            `json:"page"`
	Reason    string            `json:"reason"`
	Timestamp *reddit.Timestamp `json:"timestamp"`
	Author    *Account          `json:"author"`
	Hidden    bool              `json:"revision_hidden"`
}

// EditOptions holds the optional fields of an edit. Nil fields are left out of the request.
type EditOptions struct {
	// Previous is the revision the edit is based on, for conflict detection
	Previous *string
	// Reason is the edit summary
	Reason *string
}

// String returns a pointer to s, for EditOptions fields.
func String(s string) *string {
	return &s
}

// thing is Reddit's {"kind","data"} response wrapper.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}
