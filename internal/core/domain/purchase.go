package domain

import "fmt"

// PurchasePlan is the pricing-page plan code for a purchase surface.
type PurchasePlan int

const (
	// PlanPremium is the premium subscription pricing page.
	PlanPremium PurchasePlan = 15
	// PlanCredits is the credit top-up pricing page.
	PlanCredits PurchasePlan = 16
)

// PurchaseBaseline captures the entitlement at the moment the purchase
// page was opened. The watcher compares later polls against it.
type PurchaseBaseline struct {
	Credits int
	Premium bool
}

// PurchaseOutcomeKind classifies how a purchase watch session ended.
type PurchaseOutcomeKind int

const (
	// PurchasePremiumActivated means the premium flag flipped on.
	PurchasePremiumActivated PurchaseOutcomeKind = iota
	// PurchaseCreditsAdded means the credit balance increased.
	PurchaseCreditsAdded
	// PurchaseTimedOut means no change was observed before the deadline.
	PurchaseTimedOut
	// PurchaseCancelled means the watch was cancelled explicitly.
	PurchaseCancelled
)

// PurchaseOutcome is the single terminal result of a purchase watch
// session. Exactly one outcome is produced per session.
type PurchaseOutcome struct {
	Kind PurchaseOutcomeKind
	// CreditsAdded is the literal delta over the baseline balance.
	// Only meaningful for PurchaseCreditsAdded.
	CreditsAdded int
}

// Message returns the user-facing notification for this outcome.
func (o PurchaseOutcome) Message() string {
	switch o.Kind {
	case PurchasePremiumActivated:
		return "Premium status activated successfully!"
	case PurchaseCreditsAdded:
		if o.CreditsAdded == 1 {
			return "Credits added successfully! (1 credit added)"
		}
		return fmt.Sprintf("Credits added successfully! (%d credits added)", o.CreditsAdded)
	case PurchaseTimedOut:
		return "Purchase status check timed out. Please refresh if you completed the purchase."
	case PurchaseCancelled:
		return "Purchase check cancelled. Please refresh if you completed the purchase."
	default:
		return ""
	}
}

// Completed reports whether the outcome represents a detected purchase.
func (o PurchaseOutcome) Completed() bool {
	return o.Kind == PurchasePremiumActivated || o.Kind == PurchaseCreditsAdded
}
