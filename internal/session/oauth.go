package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// TokenURL is Reddit's OAuth2 token endpoint.
const TokenURL = "https://www.reddit.com/api/v1/access_token"

// OAuthConfig holds the credentials of a Reddit "script" application.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
	Scopes       []string

	// TokenURL overrides the token endpoint. Defaults to TokenURL.
	TokenURL string

	// HTTPClient is the base client for token and API requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Enabled reports whether enough credentials are set to request a token.
func (c OAuthConfig) Enabled() bool {
	return c.ClientID != "" && c.Username != "" && c.Password != ""
}

// NewOAuthHTTPClient exchanges the script-app credentials for a token using the
// password grant and returns a client that authorises every request with it.
// Requests made through the client should target https://oauth.reddit.com.
func NewOAuthHTTPClient(ctx context.Context, cfg OAuthConfig) (*http.Client, error) {
	if !cfg.Enabled() {
		return nil, errors.New("oauth: client id, username and password are required")
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = TokenURL
	}

	base := cfg.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	// Reddit rejects token requests without a descriptive User-Agent.
	withUA := &http.Client{
		Timeout:   base.Timeout,
		Transport: &userAgentTransport{ua: cfg.UserAgent, next: base.Transport},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, withUA)

	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	// Reddit's password grant issues no refresh token, so an expired token is
	// replaced by running the grant again.
	src := &passwordTokenSource{
		ctx:      context.WithoutCancel(ctx),
		conf:     conf,
		username: cfg.Username,
		password: cfg.Password,
	}
	tok, err := src.Token()
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src))
	client.Timeout = base.Timeout
	return client, nil
}

type passwordTokenSource struct {
	ctx      context.Context
	conf     *oauth2.Config
	username string
	password string
}

func (s *passwordTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.conf.PasswordCredentialsToken(s.ctx, s.username, s.password)
	if err != nil {
		return nil, fmt.Errorf("oauth: token request failed: %w", err)
	}
	return tok, nil
}

type userAgentTransport struct {
	ua   string
	next http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	if t.ua == "" || req.Header.Get("User-Agent") != "" {
		return next.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.ua)
	return next.RoundTrip(req)
}
