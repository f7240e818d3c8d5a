// Package file persists the session credentials as a JSON file in the
// studio config directory, so every CLI invocation shares one session
// until logout removes it.
package file

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/multiplewords/studio-cli/internal/adapters/driven/storage/memory"
	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
	"github.com/multiplewords/studio-cli/internal/logger"
)

var _ driven.CredentialsStore = (*CredentialsStore)(nil)

const sessionFileName = "session.json"

// CredentialsStore is a file-backed session store. Reads are served
// from an in-memory copy loaded at startup; Save and Clear write
// through to disk.
type CredentialsStore struct {
	mu    sync.Mutex
	cache *memory.CredentialsStore
	path  string
}

// NewCredentialsStore creates a store rooted at configDir. If
// configDir is empty, defaults to ~/.studio. A session file left by a
// previous invocation is loaded eagerly.
func NewCredentialsStore(configDir string) (*CredentialsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".studio")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &CredentialsStore{
		cache: memory.NewCredentialsStore(),
		path:  filepath.Join(configDir, sessionFileName),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CredentialsStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var creds domain.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		// An unreadable session file means signed out, not a broken
		// CLI. Drop it so the next login starts clean.
		logger.Warn("discarding corrupt session file: %v", err)
		return os.Remove(s.path)
	}
	s.cache.Save(creds)
	return nil
}

// Save replaces the stored record atomically and persists it.
func (s *CredentialsStore) Save(creds domain.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Save(creds)
	data, err := json.Marshal(creds)
	if err != nil {
		logger.Warn("persisting session: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		logger.Warn("persisting session: %v", err)
	}
}

// Get returns a copy of the current record.
func (s *CredentialsStore) Get() (domain.Credentials, bool) {
	return s.cache.Get()
}

// Clear removes the record and deletes the session file.
func (s *CredentialsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Clear()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("removing session file: %v", err)
	}
}
