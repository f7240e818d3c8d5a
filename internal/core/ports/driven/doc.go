// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CredentialsStore: Session credential persistence
//   - AuthGateway: Authorization URL, code lookup, token exchange/refresh
//   - EntitlementClient: Premium flag and credit balance lookups
//   - Browser: Opens the authorization and purchase pages
//   - Prompter: Manual fallback when the browser cannot be opened
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - GenerationClient: Media generation and prompt enhancement
//   - DocumentInserter: Writes generated media into the target document
//   - HistoryStore: Local generation history
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
