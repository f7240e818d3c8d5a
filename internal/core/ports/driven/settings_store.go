package driven

import (
	"context"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

// SettingsStore loads and persists the application configuration.
type SettingsStore interface {
	// Settings returns the current configuration.
	Settings() domain.AppSettings

	// Save persists the configuration.
	Save(settings domain.AppSettings) error

	// Watch invokes onChange whenever the backing configuration
	// changes, until ctx is cancelled.
	Watch(ctx context.Context, onChange func(domain.AppSettings)) error
}
