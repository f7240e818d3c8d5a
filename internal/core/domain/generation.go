package domain

import "time"

// MediaKind identifies what the generation backend produces.
type MediaKind string

const (
	// MediaImage is an AI-generated image.
	MediaImage MediaKind = "image"
	// MediaMusic is an AI-generated music clip.
	MediaMusic MediaKind = "music"
)

// Valid reports whether the kind is one the backend supports.
func (k MediaKind) Valid() bool {
	return k == MediaImage || k == MediaMusic
}

// GenerationRequest describes one generation submission.
type GenerationRequest struct {
	// Prompt is the user's text prompt.
	Prompt string
	// Kind selects image or music generation.
	Kind MediaKind
	// UserID identifies the account the credits are drawn from.
	UserID string
	// Premium is forwarded to the backend as the isPro flag.
	Premium bool
}

// GenerationResult is the backend's answer to a generation request.
type GenerationResult struct {
	// MediaURL is where the generated media can be downloaded.
	MediaURL string
	// Message is an optional backend-provided status message.
	Message string
}

// GenerationRecord is one entry in the local generation history.
type GenerationRecord struct {
	// ID is the unique identifier (UUID).
	ID string
	// Kind is the media kind that was generated.
	Kind MediaKind
	// Prompt is the prompt the media was generated from.
	Prompt string
	// MediaURL is the backend URL of the result.
	MediaURL string
	// InsertedPath is where the media was written locally, if it was.
	InsertedPath string
	// CreatedAt is when the generation completed.
	CreatedAt time.Time
}
