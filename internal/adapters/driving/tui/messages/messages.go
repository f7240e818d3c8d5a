// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/multiplewords/studio-cli/internal/core/domain"
)

// EntitlementUpdated carries a fresh entitlement snapshot from the
// background poller.
type EntitlementUpdated struct {
	State domain.EntitlementState
}

// AuthCompleted carries the result of an authentication flow.
type AuthCompleted struct {
	Result domain.AuthResult
}

// GenerationCompleted carries the result of one generation.
type GenerationCompleted struct {
	Record *domain.GenerationRecord
	Err    error
}

// PromptEnhanced carries an enhanced prompt back to the input.
type PromptEnhanced struct {
	Prompt string
	Err    error
}

// PurchaseResolved carries the terminal outcome of a purchase watch,
// or the error that prevented the watch from starting.
type PurchaseResolved struct {
	Outcome domain.PurchaseOutcome
	Err     error
}
