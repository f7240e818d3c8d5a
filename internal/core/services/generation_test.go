package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

// --- Mock implementations for generation testing ---

// genMockClient implements driven.GenerationClient.
type genMockClient struct {
	result      *domain.GenerationResult
	generateErr error
	enhanced    string
	enhanceErr  error
	media       []byte
	downloadErr error

	lastRequest domain.GenerationRequest
}

func (c *genMockClient) Generate(_ context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	c.lastRequest = req
	if c.generateErr != nil {
		return nil, c.generateErr
	}
	return c.result, nil
}

func (c *genMockClient) EnhancePrompt(_ context.Context, _ string) (string, error) {
	if c.enhanceErr != nil {
		return "", c.enhanceErr
	}
	return c.enhanced, nil
}

func (c *genMockClient) Download(_ context.Context, _ string) ([]byte, error) {
	if c.downloadErr != nil {
		return nil, c.downloadErr
	}
	return c.media, nil
}

// genMockInserter implements driven.DocumentInserter.
type genMockInserter struct {
	insertErr error
	lastKind  domain.MediaKind
	lastData  []byte
	lastName  string
}

func (i *genMockInserter) Insert(_ context.Context, kind domain.MediaKind, data []byte, name string) (string, error) {
	i.lastKind = kind
	i.lastData = data
	i.lastName = name
	if i.insertErr != nil {
		return "", i.insertErr
	}
	return "/doc/media/" + name, nil
}

// genMockHistory implements driven.HistoryStore.
type genMockHistory struct {
	addErr  error
	records []domain.GenerationRecord
}

func (h *genMockHistory) Add(_ context.Context, rec domain.GenerationRecord) error {
	if h.addErr != nil {
		return h.addErr
	}
	h.records = append(h.records, rec)
	return nil
}

func (h *genMockHistory) List(_ context.Context, limit int) ([]domain.GenerationRecord, error) {
	if limit > len(h.records) {
		limit = len(h.records)
	}
	out := make([]domain.GenerationRecord, 0, limit)
	for i := len(h.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.records[i])
	}
	return out, nil
}

func readyMonitor(premium bool, credits int) *purchaseMockMonitor {
	return &purchaseMockMonitor{state: domain.EntitlementState{
		Status:      domain.EntitlementReady,
		Entitlement: domain.Entitlement{Premium: premium, Credits: credits},
	}}
}

func TestGenerate_Success(t *testing.T) {
	client := &genMockClient{
		result: &domain.GenerationResult{MediaURL: "https://cdn.example.com/out/img.png"},
		media:  []byte{0x89, 0x50},
	}
	auth := &entMockAuth{authenticated: true, userID: "user-42"}
	monitor := readyMonitor(false, 5)
	inserter := &genMockInserter{}
	history := &genMockHistory{}
	svc := NewGenerationService(client, auth, monitor, inserter, history)

	rec, err := svc.Generate(context.Background(), "  a fox in snow  ", domain.MediaImage)

	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "a fox in snow", rec.Prompt, "prompt should be trimmed")
	assert.Equal(t, domain.MediaImage, rec.Kind)
	assert.Equal(t, "https://cdn.example.com/out/img.png", rec.MediaURL)
	assert.Equal(t, "/doc/media/"+rec.ID+".png", rec.InsertedPath)
	assert.False(t, rec.CreatedAt.IsZero())

	assert.Equal(t, "user-42", client.lastRequest.UserID)
	assert.False(t, client.lastRequest.Premium)
	assert.Equal(t, []byte{0x89, 0x50}, inserter.lastData)

	require.Len(t, history.records, 1)
	assert.Equal(t, rec.ID, history.records[0].ID)

	assert.Equal(t, 1, monitor.refreshes(), "credit consumption must refresh the balance")
}

func TestGenerate_PremiumSkipsRefresh(t *testing.T) {
	client := &genMockClient{
		result: &domain.GenerationResult{MediaURL: "https://cdn.example.com/out/img.png"},
		media:  []byte{1},
	}
	auth := &entMockAuth{authenticated: true, userID: "user-42"}
	monitor := readyMonitor(true, 0)
	svc := NewGenerationService(client, auth, monitor, &genMockInserter{}, nil)

	rec, err := svc.Generate(context.Background(), "a fox", domain.MediaImage)

	require.NoError(t, err)
	assert.True(t, client.lastRequest.Premium)
	assert.NotNil(t, rec)
	assert.Equal(t, 0, monitor.refreshes(), "unlimited plans consume no credits")
}

func TestGenerate_ValidationFailures(t *testing.T) {
	auth := &entMockAuth{authenticated: true, userID: "user-42"}
	svc := NewGenerationService(&genMockClient{}, auth, readyMonitor(false, 5), &genMockInserter{}, nil)

	tests := []struct {
		name   string
		prompt string
		kind   domain.MediaKind
	}{
		{name: "empty prompt", prompt: "", kind: domain.MediaImage},
		{name: "whitespace prompt", prompt: "   ", kind: domain.MediaImage},
		{name: "unknown kind", prompt: "a fox", kind: domain.MediaKind("video")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.prompt, tt.kind)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGenerate_RequiresAuthentication(t *testing.T) {
	svc := NewGenerationService(&genMockClient{}, &entMockAuth{}, readyMonitor(false, 5), &genMockInserter{}, nil)

	_, err := svc.Generate(context.Background(), "a fox", domain.MediaImage)

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestGenerate_RequiresUserID(t *testing.T) {
	auth := &entMockAuth{authenticated: true, userID: ""}
	svc := NewGenerationService(&genMockClient{}, auth, readyMonitor(false, 5), &genMockInserter{}, nil)

	_, err := svc.Generate(context.Background(), "a fox", domain.MediaImage)

	assert.ErrorIs(t, err, domain.ErrUserIDLookupFailed)
}

func TestGenerate_InsufficientCredits(t *testing.T) {
	auth := &entMockAuth{authenticated: true, userID: "user-42"}
	svc := NewGenerationService(&genMockClient{}, auth, readyMonitor(false, 0), &genMockInserter{}, nil)

	_, err := svc.Generate(context.Background(), "a fox", domain.MediaImage)

	assert.ErrorIs(t, err, domain.ErrInsufficientCredits)
}

func TestGenerate_BackendFailure(t *testing.T) {
	client := &genMockClient{generateErr: &domain.APIError{Status: 500, Body: "boom"}}
	auth := &entMockAuth{authenticated: true, userID: "user-42"}
	svc := NewGenerationService(client, auth, readyMonitor(false, 5), &genMockInserter{}, nil)

	_, err := svc.Generate(context.Background(), "a fox", domain.MediaImage)

	var apiErr *domain.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestGenerate_DownloadFailure(t *testing.T) {
	client := &genMockClient{
		result:      &domain.GenerationResult{MediaURL: "https://cdn.example.com/out/img.png"},
		downloadErr: errors.New("cdn unreachable"),
	}
	auth := &entMockAuth{authenticated: true, userID: "user-42"}
	inserter := &genMockInserter{}
	svc := NewGenerationService(client, auth, readyMonitor(false, 5), inserter, nil)

	_, err := svc.Generate(context.Background(), "a fox", domain.MediaImage)

	assert.Error(t, err)
	assert.Nil(t, inserter.lastData, "failed download must not reach the document")
}

func TestGenerate_HistoryFailureIsNonFatal(t *testing.T) {
	client := &genMockClient{
		result: &domain.GenerationResult{MediaURL: "https://cdn.example.com/out/img.png"},
		media:  []byte{1},
	}
	auth := &entMockAuth{authenticated: true, userID: "user-42"}
	history := &genMockHistory{addErr: errors.New("disk full")}
	svc := NewGenerationService(client, auth, readyMonitor(false, 5), &genMockInserter{}, history)

	rec, err := svc.Generate(context.Background(), "a fox", domain.MediaImage)

	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestEnhance(t *testing.T) {
	client := &genMockClient{enhanced: "a cinematic fox in fresh snow, golden hour"}
	auth := &entMockAuth{authenticated: true, userID: "user-42"}
	svc := NewGenerationService(client, auth, readyMonitor(false, 5), &genMockInserter{}, nil)

	enhanced, err := svc.Enhance(context.Background(), "a fox")

	require.NoError(t, err)
	assert.Equal(t, "a cinematic fox in fresh snow, golden hour", enhanced)
}

func TestEnhance_EmptyPrompt(t *testing.T) {
	svc := NewGenerationService(&genMockClient{}, &entMockAuth{authenticated: true}, readyMonitor(false, 5), &genMockInserter{}, nil)

	_, err := svc.Enhance(context.Background(), "  ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEnhance_RequiresAuthentication(t *testing.T) {
	svc := NewGenerationService(&genMockClient{}, &entMockAuth{}, readyMonitor(false, 5), &genMockInserter{}, nil)

	_, err := svc.Enhance(context.Background(), "a fox")

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestHistory(t *testing.T) {
	history := &genMockHistory{records: []domain.GenerationRecord{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}}
	svc := NewGenerationService(&genMockClient{}, &entMockAuth{}, readyMonitor(false, 5), &genMockInserter{}, history)

	records, err := svc.History(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c", records[0].ID, "newest first")
}

func TestHistory_WithoutStore(t *testing.T) {
	svc := NewGenerationService(&genMockClient{}, &entMockAuth{}, readyMonitor(false, 5), &genMockInserter{}, nil)

	_, err := svc.History(context.Background(), 10)

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestMediaFileName(t *testing.T) {
	tests := []struct {
		name     string
		mediaURL string
		want     string
	}{
		{name: "png", mediaURL: "https://cdn.example.com/a/b.png", want: "id.png"},
		{name: "mp3", mediaURL: "https://cdn.example.com/a/b.mp3", want: "id.mp3"},
		{name: "query string", mediaURL: "https://cdn.example.com/a/b.jpg?sig=abc", want: "id.jpg"},
		{name: "no extension", mediaURL: "https://cdn.example.com/a/b", want: "id.png"},
		{name: "overlong extension", mediaURL: "https://cdn.example.com/a/b.abcdef", want: "id.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mediaFileName("id", tt.mediaURL))
		})
	}
}
