// Package memory provides in-memory driven adapters. The credentials
// store here backs a single process; the file store composes it with
// on-disk persistence so sessions survive across CLI invocations.
package memory

import (
	"sync"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore holds the session credentials in memory.
type CredentialsStore struct {
	mu    sync.RWMutex
	creds domain.Credentials
	set   bool
}

// NewCredentialsStore creates an empty credentials store.
func NewCredentialsStore() *CredentialsStore {
	return &CredentialsStore{}
}

// Save replaces the stored record atomically.
func (s *CredentialsStore) Save(creds domain.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	s.set = true
}

// Get returns the stored record, and whether one has been saved.
func (s *CredentialsStore) Get() (domain.Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, s.set
}

// Clear removes every credential field.
func (s *CredentialsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = domain.Credentials{}
	s.set = false
}
