package domain

// Platform identifies where the client runs. It is forwarded to the
// authorization endpoint so the server can shape the consent page.
type Platform string

const (
	// PlatformWeb is a browser-hosted client.
	PlatformWeb Platform = "web"
	// PlatformDesktop is a native client.
	PlatformDesktop Platform = "desktop"
)

// AuthPhase is the auth flow controller's position in its state machine.
//
//	Idle -> PopupOpening -> Polling -> {CodeReceived | PopupClosed | Cancelled}
//	CodeReceived -> Exchanging -> {Authenticated | ExchangeFailed}
type AuthPhase int

const (
	// AuthIdle means no flow is in progress.
	AuthIdle AuthPhase = iota
	// AuthPopupOpening means the authorization page is being opened.
	AuthPopupOpening
	// AuthPolling means the code-by-state endpoint is being polled.
	AuthPolling
	// AuthCodeReceived means a matching (code, state) pair arrived.
	AuthCodeReceived
	// AuthExchanging means the code is being exchanged for tokens.
	AuthExchanging
	// AuthAuthenticated is the terminal success phase.
	AuthAuthenticated
	// AuthFailed is the terminal failure phase.
	AuthFailed
)

// String returns the string representation of the phase.
func (p AuthPhase) String() string {
	switch p {
	case AuthIdle:
		return "idle"
	case AuthPopupOpening:
		return "popup_opening"
	case AuthPolling:
		return "polling"
	case AuthCodeReceived:
		return "code_received"
	case AuthExchanging:
		return "exchanging"
	case AuthAuthenticated:
		return "authenticated"
	case AuthFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AuthResult is the structured outcome of one authentication attempt.
// Failures are reported here rather than thrown so the UI can render a
// specific message per failure kind.
type AuthResult struct {
	// Success is true when the flow reached Authenticated.
	Success bool
	// UserID is the resolved user id; may be empty on success when the
	// identity lookup failed (a degraded but usable session).
	UserID string
	// AccessToken is the bearer token on success.
	AccessToken string
	// Err is the terminal failure, nil on success.
	Err error
}
