package domain

import "strconv"

// Entitlement is a snapshot of the user's premium flag and remaining
// credit balance. It is derived, not stored: each poll recomputes it
// from the server.
type Entitlement struct {
	// Premium is true for paid accounts with unlimited generation.
	Premium bool
	// Credits is the remaining generation credit balance.
	Credits int
}

// CanGenerate reports whether the generate action should be enabled.
// Premium implies unlimited generation regardless of the numeric
// balance, including zero or negative values.
func (e Entitlement) CanGenerate() bool {
	return e.Premium || e.Credits > 0
}

// DisplayCredits returns the balance for display: the unlimited symbol
// for premium accounts, otherwise the numeric balance clamped at zero.
func (e Entitlement) DisplayCredits() string {
	if e.Premium {
		return "unlimited"
	}
	if e.Credits < 0 {
		return "0"
	}
	return strconv.Itoa(e.Credits)
}

// EntitlementStatus classifies what the entitlement poller should
// render for the current tick.
type EntitlementStatus int

const (
	// EntitlementSignedOut means no authenticated session exists;
	// the UI shows a sign-in affordance and no network calls are made.
	EntitlementSignedOut EntitlementStatus = iota
	// EntitlementUserIDMissing means a session exists but the identity
	// lookup never resolved a user id. Distinct error state; the lookup
	// is not retried automatically.
	EntitlementUserIDMissing
	// EntitlementError means the last poll failed; generation is
	// disabled until a later tick succeeds.
	EntitlementError
	// EntitlementReady means the snapshot is current and consistent.
	EntitlementReady
)

// String returns the string representation of the status.
func (s EntitlementStatus) String() string {
	switch s {
	case EntitlementSignedOut:
		return "signed_out"
	case EntitlementUserIDMissing:
		return "user_id_missing"
	case EntitlementError:
		return "error"
	case EntitlementReady:
		return "ready"
	default:
		return "unknown"
	}
}

// EntitlementState is what the poller publishes to subscribers: a
// status plus, when ready, the snapshot it derived.
type EntitlementState struct {
	Status      EntitlementStatus
	Entitlement Entitlement
}

// CanGenerate reports whether the generate action is enabled for this
// state. Only a ready state can enable generation.
func (s EntitlementState) CanGenerate() bool {
	return s.Status == EntitlementReady && s.Entitlement.CanGenerate()
}
