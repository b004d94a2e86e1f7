package wiki

import (
	"encoding/json"
	"testing"
)

func TestPermLevel_String(t *testing.T) {
	tests := []struct {
		level PermLevel
		want  string
	}{
		{PermSubredditWiki, "subreddit_wiki"},
		{PermApprovedEditors, "approved_editors"},
		{PermModsOnly, "mods_only"},
		{PermLevel(7), "unknown(7)"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParsePermLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    PermLevel
		wantErr bool
	}{
		{"subreddit_wiki", PermSubredditWiki, false},
		{"Approved_Editors", PermApprovedEditors, false},
		{" mods_only ", PermModsOnly, false},
		{"2", PermModsOnly, false},
		{"0", PermSubredditWiki, false},
		{"everyone", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePermLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Account
	}{
		{"thing", `{"kind":"t2","data":{"id":"u1","name":"alice"}}`, Account{ID: "u1", Name: "alice"}},
		{"bare", `{"id":"u2","name":"bob"}`, Account{ID: "u2", Name: "bob"}},
		{"null", `null`, Account{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Account
			if err := json.Unmarshal([]byte(tt.raw), &a); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if a != tt.want {
				t.Errorf("got %+v, want %+v", a, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	p := String("abc")
	if p == nil || *p != "abc" {
		t.Errorf("String() = %v", p)
	}
}
