package driving

import (
	"context"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

// AuthService runs the OAuth authorization-code flow and manages the
// session credentials. At most one authentication attempt is live at a
// time; starting a second supersedes the first.
type AuthService interface {
	// Authenticate runs one end-to-end flow: authorization page, code
	// polling, token exchange, identity lookup. The outcome is always a
	// structured result, never a bare error, so callers can render a
	// specific message per failure kind.
	Authenticate(ctx context.Context) domain.AuthResult

	// Cancel aborts any in-flight attempt. No-op when idle.
	Cancel()

	// Logout clears the session credentials entirely.
	Logout()

	// IsAuthenticated reports whether a fully usable session exists:
	// an access token plus a resolved user id.
	IsAuthenticated() bool

	// HasSession reports whether any session exists, including the
	// degraded "authenticated without user id" state left behind when
	// the identity lookup failed.
	HasSession() bool

	// UserID returns the resolved user id, empty when absent.
	UserID() string

	// AccessToken returns a valid access token, refreshing an expired
	// one when a refresh token is available.
	AccessToken(ctx context.Context) (string, error)

	// Phase reports the controller's current state machine position.
	Phase() domain.AuthPhase
}
