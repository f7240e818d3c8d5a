// Package domain defines the core business entities for the Studio CLI.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Credentials: The session credential record (tokens, expiry, user id)
//   - Entitlement: Premium flag plus remaining credit balance
//   - PurchaseBaseline / PurchaseOutcome: purchase-watch session types
//   - GenerationRequest / GenerationRecord: generation and local history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
