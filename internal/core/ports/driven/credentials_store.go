package driven

import "github.com/multiplewords/studio-cli/internal/core/domain"

// CredentialsStore holds the single active credential record for the
// session. Implementations must replace the whole record on Save and
// remove every field on Clear so concurrent readers never observe a
// partially written record.
type CredentialsStore interface {
	// Save stores the record, replacing any existing one atomically.
	Save(creds domain.Credentials)

	// Get returns a copy of the current record. The second return is
	// false when no record exists.
	Get() (domain.Credentials, bool)

	// Clear removes the record entirely.
	Clear()
}
