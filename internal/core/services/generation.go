package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
	"github.com/multiplewords/studio-cli/internal/core/ports/driving"
	"github.com/multiplewords/studio-cli/internal/logger"
)

var _ driving.GenerationService = (*GenerationService)(nil)

// GenerationService orchestrates one generation end to end: entitlement
// check, backend call, media download, document insertion and history.
type GenerationService struct {
	client   driven.GenerationClient
	auth     driving.AuthService
	monitor  driving.EntitlementMonitor
	inserter driven.DocumentInserter
	history  driven.HistoryStore
}

// NewGenerationService creates a generation service. The history store
// may be nil, in which case records are not persisted.
func NewGenerationService(
	client driven.GenerationClient,
	auth driving.AuthService,
	monitor driving.EntitlementMonitor,
	inserter driven.DocumentInserter,
	history driven.HistoryStore,
) *GenerationService {
	return &GenerationService{
		client:   client,
		auth:     auth,
		monitor:  monitor,
		inserter: inserter,
		history:  history,
	}
}

// Generate runs one generation for the signed-in user.
func (s *GenerationService) Generate(ctx context.Context, prompt string, kind domain.MediaKind) (*domain.GenerationRecord, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: empty prompt", domain.ErrInvalidInput)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown media kind %q", domain.ErrInvalidInput, kind)
	}
	if !s.auth.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	userID := s.auth.UserID()
	if userID == "" {
		return nil, domain.ErrUserIDLookupFailed
	}

	state := s.monitor.State()
	if state.Status == domain.EntitlementReady && !state.Entitlement.CanGenerate() {
		return nil, domain.ErrInsufficientCredits
	}

	result, err := s.client.Generate(ctx, domain.GenerationRequest{
		Prompt:  prompt,
		Kind:    kind,
		UserID:  userID,
		Premium: state.Entitlement.Premium,
	})
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", kind, err)
	}

	data, err := s.client.Download(ctx, result.MediaURL)
	if err != nil {
		return nil, fmt.Errorf("downloading media: %w", err)
	}

	rec := domain.GenerationRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		Prompt:    prompt,
		MediaURL:  result.MediaURL,
		CreatedAt: time.Now().UTC(),
	}

	name := mediaFileName(rec.ID, result.MediaURL)
	inserted, err := s.inserter.Insert(ctx, kind, data, name)
	if err != nil {
		return nil, fmt.Errorf("inserting media: %w", err)
	}
	rec.InsertedPath = inserted

	if s.history != nil {
		if err := s.history.Add(ctx, rec); err != nil {
			// History is advisory: the media already landed in the
			// document, so a failed write must not fail the call.
			logger.Warn("recording generation history: %v", err)
		}
	}

	// Non-premium generations consume credits; pull the new balance
	// without waiting for the next tick.
	if !state.Entitlement.Premium {
		s.monitor.Refresh()
	}

	return &rec, nil
}

// Enhance rewrites a prompt using the backend enhancement endpoint.
func (s *GenerationService) Enhance(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("%w: empty prompt", domain.ErrInvalidInput)
	}
	if !s.auth.IsAuthenticated() {
		return "", domain.ErrNotAuthenticated
	}
	return s.client.EnhancePrompt(ctx, prompt)
}

// History returns recent generation records, newest first.
func (s *GenerationService) History(ctx context.Context, limit int) ([]domain.GenerationRecord, error) {
	if s.history == nil {
		return nil, domain.ErrNotImplemented
	}
	if limit <= 0 {
		limit = 20
	}
	return s.history.List(ctx, limit)
}

// mediaFileName derives a stable local name for a downloaded asset,
// preserving the URL's extension when it has one.
func mediaFileName(id, mediaURL string) string {
	ext := path.Ext(mediaURL)
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".png"
	}
	return id + ext
}
