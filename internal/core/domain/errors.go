package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Authentication errors.

	// ErrPopupBlocked indicates the browser refused to open the
	// authorization page. Recoverable via the manual fallback flow.
	ErrPopupBlocked = errors.New("popup was blocked")

	// ErrAuthCancelled indicates the user cancelled the flow.
	ErrAuthCancelled = errors.New("authentication cancelled by user")

	// ErrStateMismatch indicates the returned state did not match the
	// stored one. Treated as a possible CSRF attempt; never retried.
	ErrStateMismatch = errors.New("state mismatch - possible CSRF attack")

	// ErrPopupClosed indicates the authorization window was closed
	// before the flow completed.
	ErrPopupClosed = errors.New("authentication window was closed")

	// ErrCodeAlreadyUsed indicates the authorization code was already
	// exchanged. Benign when a credential record already exists.
	ErrCodeAlreadyUsed = errors.New("authorization code has already been used")

	// ErrUserIDLookupFailed indicates the identity lookup after token
	// issuance failed. Non-fatal: the session degrades to "no user id".
	ErrUserIDLookupFailed = errors.New("user id lookup failed")

	// ErrNoRefreshToken indicates a refresh was requested with no
	// refresh token stored.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrNotAuthenticated indicates an operation that needs a session
	// was invoked without one.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Entitlement errors.

	// ErrInsufficientCredits indicates a non-premium account with no
	// remaining balance tried to generate.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrPurchaseWatchTimeout indicates no balance change was observed
	// within the purchase watch deadline.
	ErrPurchaseWatchTimeout = errors.New("purchase status check timed out")
)

// TokenExchangeError is a structured token endpoint failure carrying
// the HTTP status and response body for diagnostics.
type TokenExchangeError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed: status %d: %s", e.Status, e.Body)
}

// APIError is a non-OK response from the entitlement or generation
// endpoints.
type APIError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed: status %d: %s", e.Status, e.Body)
}
