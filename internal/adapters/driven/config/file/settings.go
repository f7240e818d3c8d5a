// Package file stores the application settings as a TOML file in the
// studio config directory, with environment overrides and hot reload.
package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
	"github.com/multiplewords/studio-cli/internal/logger"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

const settingsFileName = "config.toml"

// SettingsStore is a TOML-backed settings store. Values resolve in
// order: built-in defaults, then config.toml, then STUDIO_* environment
// variables.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	settings domain.AppSettings
}

// NewSettingsStore creates a store rooted at configDir. If configDir
// is empty, defaults to ~/.studio.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
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

	s := &SettingsStore{
		filePath: filepath.Join(configDir, settingsFileName),
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Settings returns the current configuration.
func (s *SettingsStore) Settings() domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Save persists the configuration to disk.
func (s *SettingsStore) Save(settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

// Watch reloads the settings whenever the config file changes and
// passes the fresh copy to onChange. Blocks until ctx is cancelled.
func (s *SettingsStore) Watch(ctx context.Context, onChange func(domain.AppSettings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace the file on save, which
	// would invalidate a watch on the file itself.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return err
	}

	// Debounce: a single editor save produces several events.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.filePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(100 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("settings watch: %v", err)
		case <-pending:
			pending = nil
			if err := s.reload(); err != nil {
				logger.Warn("settings reload: %v", err)
				continue
			}
			onChange(s.Settings())
		}
	}
}

// reload rebuilds the settings from defaults, file and environment.
func (s *SettingsStore) reload() error {
	settings := domain.DefaultAppSettings()

	data, err := os.ReadFile(s.filePath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &settings); err != nil {
			return err
		}
	case os.IsNotExist(err):
		// First run: defaults only.
	default:
		return err
	}

	applyEnvOverrides(&settings)

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}

// applyEnvOverrides layers STUDIO_* variables over the settings. A
// .env file in the working directory is honoured when present.
func applyEnvOverrides(settings *domain.AppSettings) {
	_ = godotenv.Load()

	overrides := []struct {
		env    string
		target *string
	}{
		{"STUDIO_CLIENT_ID", &settings.OAuth.ClientID},
		{"STUDIO_AUTH_URL", &settings.OAuth.AuthURL},
		{"STUDIO_TOKEN_URL", &settings.OAuth.TokenURL},
		{"STUDIO_REDIRECT_URI", &settings.OAuth.RedirectURI},
		{"STUDIO_CODE_BY_STATE_URL", &settings.OAuth.CodeByStateURL},
		{"STUDIO_USER_LOOKUP_URL", &settings.OAuth.UserLookupURL},
		{"STUDIO_ACCOUNT_BASE_URL", &settings.API.AccountBaseURL},
		{"STUDIO_MEDIA_BASE_URL", &settings.API.MediaBaseURL},
		{"STUDIO_PRICING_BASE_URL", &settings.API.PricingBaseURL},
		{"STUDIO_OUTPUT_DIR", &settings.Generation.OutputDir},
	}
	for _, o := range overrides {
		if val := os.Getenv(o.env); val != "" {
			*o.target = val
		}
	}
}
