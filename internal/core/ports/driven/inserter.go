package driven

import (
	"context"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

// DocumentInserter places generated media into the user's document.
// One implementation exists per target kind; core services never
// branch on the target, they only call this capability.
type DocumentInserter interface {
	// Insert writes the media and returns where it landed.
	Insert(ctx context.Context, kind domain.MediaKind, data []byte, name string) (string, error)
}

// HistoryStore persists the local generation history.
type HistoryStore interface {
	// Add appends one record.
	Add(ctx context.Context, rec domain.GenerationRecord) error

	// List returns the most recent records, newest first.
	List(ctx context.Context, limit int) ([]domain.GenerationRecord, error)
}
