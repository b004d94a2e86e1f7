// Package session supplies the identity used to authorise wiki writes.
//
// Reddit's cookie-authenticated API expects the current user's modhash in the
// "uh" field of every mutating request. An IdentityProvider is asked for it at
// call time, so a refreshed session is picked up without rebuilding clients.
package session

// IdentityProvider yields the modhash sent as "uh" on mutating requests.
type IdentityProvider interface {
	Modhash() string
}

// Static is an IdentityProvider with a fixed modhash. It is also used for OAuth
// sessions, where Reddit ignores the field and an empty value is sent.
type Static string

// Modhash returns the fixed token.
func (s Static) Modhash() string {
	return string(s)
}
