package driving

import (
	"context"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

// GenerationService orchestrates prompt enhancement, media generation
// and insertion into the target document.
type GenerationService interface {
	// Generate submits a prompt, downloads the result, inserts it into
	// the document and records it in history. Cancellable via ctx.
	Generate(ctx context.Context, prompt string, kind domain.MediaKind) (*domain.GenerationRecord, error)

	// Enhance rewrites a prompt into a richer one.
	Enhance(ctx context.Context, prompt string) (string, error)

	// History returns recent generation records, newest first.
	History(ctx context.Context, limit int) ([]domain.GenerationRecord, error)
}
