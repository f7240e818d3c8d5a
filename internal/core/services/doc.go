// Package services implements the core business logic behind the
// driving ports: the OAuth authorization-code flow, session credential
// lifecycle, entitlement polling, purchase-completion watching and
// generation orchestration.
//
// Services depend only on domain types and driven ports; all I/O goes
// through adapters injected at construction time.
package services
