package driven

import (
	"context"
	"time"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

// TokenGrant is the result of a token exchange or refresh.
type TokenGrant struct {
	// AccessToken is the bearer token for API access.
	AccessToken string
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string
	// Expiry is the absolute expiration instant, computed from the
	// server-provided lifetime at issuance time.
	Expiry time.Time
}

// PendingCode is a (code, state) pair surfaced by the code-by-state
// side channel once the user completes authorization in the browser.
type PendingCode struct {
	Code  string
	State string
}

// AuthGateway talks to the OAuth endpoints of the backend. The add-in
// sandbox the original client ran in could not receive a redirect
// callback, so authorization completion is observed by polling
// LookupCode rather than by serving the redirect locally.
type AuthGateway interface {
	// AuthCodeURL builds the authorization URL for the given anti-CSRF
	// state and client platform.
	AuthCodeURL(state string, platform domain.Platform) string

	// LookupCode asks the code-by-state endpoint whether an
	// authorization code has been issued for state. Returns nil when no
	// code is available yet.
	LookupCode(ctx context.Context, state string) (*PendingCode, error)

	// Exchange swaps an authorization code for tokens. Non-OK responses
	// surface as *domain.TokenExchangeError.
	Exchange(ctx context.Context, code string) (*TokenGrant, error)

	// Refresh mints a new token grant from a refresh token.
	Refresh(ctx context.Context, refreshToken string) (*TokenGrant, error)

	// ResolveUserID resolves the user id owning the access token.
	// Callers treat failure as non-fatal.
	ResolveUserID(ctx context.Context, accessToken string) (string, error)
}
