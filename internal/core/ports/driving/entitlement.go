package driving

import (
	"context"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

// EntitlementMonitor keeps a current entitlement state by polling the
// backend on a fixed cadence. It is a cancellable task: Start launches
// the loop, Stop tears it down without leaking the ticker.
type EntitlementMonitor interface {
	// Start launches the polling loop. It polls once immediately, then
	// on every tick until Stop is called or ctx is cancelled.
	Start(ctx context.Context)

	// Stop terminates the loop. Safe to call when not running.
	Stop()

	// Refresh requests one immediate out-of-band poll, used after any
	// credential change. Non-blocking.
	Refresh()

	// State returns the most recently published state.
	State() domain.EntitlementState

	// Updates returns the channel on which new states are published.
	Updates() <-chan domain.EntitlementState
}

// PurchaseWatch is one purchase-completion watch session. Exactly one
// outcome is delivered, then the channel is closed.
type PurchaseWatch interface {
	// Outcome delivers the single terminal outcome of the session.
	Outcome() <-chan domain.PurchaseOutcome

	// Cancel terminates the session early. Safe to call repeatedly.
	Cancel()
}

// PurchaseService opens the purchase surface and watches for the
// resulting entitlement change.
type PurchaseService interface {
	// BeginPurchase opens the pricing page for the given plan and
	// returns a watch that resolves when the purchase takes effect,
	// times out, or is cancelled.
	BeginPurchase(ctx context.Context, plan domain.PurchasePlan) (PurchaseWatch, error)
}
