package driven

import (
	"context"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

// GenerationClient submits generation and prompt-enhancement requests
// to the backend.
type GenerationClient interface {
	// Generate submits one generation request and returns the media
	// location on success.
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)

	// EnhancePrompt rewrites a prompt into a richer one.
	EnhancePrompt(ctx context.Context, prompt string) (string, error)

	// Download fetches the generated media bytes.
	Download(ctx context.Context, mediaURL string) ([]byte, error)
}
