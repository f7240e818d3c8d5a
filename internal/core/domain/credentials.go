package domain

import "time"

// Credentials is the single session credential record.
// It is populated atomically on a successful token exchange and
// cleared in full on logout; there is never a partially written record.
type Credentials struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// Expiry is the absolute instant the access token expires,
	// computed from issuance time plus the server-provided lifetime.
	Expiry time.Time `json:"expiry,omitempty"`
	// UserID is resolved from a secondary identity lookup after token
	// issuance. It may be empty when that lookup failed; callers must
	// treat "authenticated without user id" as a distinct state.
	UserID string `json:"user_id,omitempty"`
	// OAuthState is the single-use anti-CSRF nonce bound to the
	// authorization attempt that produced this record.
	OAuthState string `json:"oauth_state,omitempty"`
}

// IsAuthenticated reports whether an authenticated session exists.
// A session counts as authenticated when both a user id and an access
// token are present; expiry is handled by the refresh path, not here.
func (c *Credentials) IsAuthenticated() bool {
	return c.UserID != "" && c.AccessToken != ""
}

// HasUserID reports whether the identity lookup succeeded.
func (c *Credentials) HasUserID() bool {
	return c.UserID != ""
}

// IsExpired returns true if the access token has expired.
func (c *Credentials) IsExpired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Now().After(c.Expiry)
}

// NeedsRefresh returns true if the access token is expired and a
// refresh token is available to mint a new one.
func (c *Credentials) NeedsRefresh() bool {
	return c.IsExpired() && c.RefreshToken != ""
}
