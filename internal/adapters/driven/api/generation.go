package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
)

// Ensure GenerationClient implements the interface.
var _ driven.GenerationClient = (*GenerationClient)(nil)

// maxMediaBytes bounds a single downloaded asset.
const maxMediaBytes = 64 << 20

// GenerationClient submits generation and enhancement requests to the
// media backend.
type GenerationClient struct {
	http *http.Client

	mu           sync.RWMutex
	mediaBaseURL string
}

// NewGenerationClient creates a client from API settings.
func NewGenerationClient(settings domain.APISettings) *GenerationClient {
	return &GenerationClient{
		http:         newHTTPClient(),
		mediaBaseURL: settings.MediaBaseURL,
	}
}

// Reconfigure swaps the backend base URL after a settings reload.
func (c *GenerationClient) Reconfigure(settings domain.APISettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mediaBaseURL = settings.MediaBaseURL
}

func (c *GenerationClient) baseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mediaBaseURL
}

// Generate submits one generation request and returns the media URL.
func (c *GenerationClient) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	form := url.Values{}
	if req.Premium {
		form.Set("isPro", "1")
	} else {
		form.Set("isPro", "0")
	}
	form.Set("user_id", req.UserID)
	form.Set("prompt", req.Prompt)

	var payload struct {
		Status         int    `json:"status"`
		Msg            string `json:"msg"`
		Message        string `json:"message"`
		GeneratedImage struct {
			ImageURL string `json:"image_url"`
		} `json:"generated_image"`
		GeneratedMusic struct {
			MusicURL string `json:"music_url"`
		} `json:"generated_music"`
	}

	endpoint := c.baseURL() + generationPath(req.Kind)
	if err := postForm(ctx, c.http, endpoint, form, &payload); err != nil {
		return nil, err
	}

	mediaURL := payload.GeneratedImage.ImageURL
	if mediaURL == "" {
		mediaURL = payload.GeneratedMusic.MusicURL
	}
	if payload.Status != 1 || mediaURL == "" {
		msg := payload.Msg
		if msg == "" {
			msg = payload.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("generation rejected with status %d", payload.Status)
		}
		return nil, &domain.APIError{Status: http.StatusOK, Body: msg}
	}

	return &domain.GenerationResult{MediaURL: mediaURL, Message: payload.Msg}, nil
}

// EnhancePrompt rewrites a prompt into a richer one.
func (c *GenerationClient) EnhancePrompt(ctx context.Context, prompt string) (string, error) {
	form := url.Values{}
	form.Set("prompt", prompt)

	var payload struct {
		Status         string `json:"status"`
		EnhancedPrompt string `json:"enhanced_prompt"`
	}

	endpoint := c.baseURL() + "/mwvideos/api/enhance_ai_image_prompt"
	if err := postForm(ctx, c.http, endpoint, form, &payload); err != nil {
		return "", err
	}
	if payload.Status != "success" || strings.TrimSpace(payload.EnhancedPrompt) == "" {
		return "", &domain.APIError{Status: http.StatusOK, Body: "enhancement rejected"}
	}
	return payload.EnhancedPrompt, nil
}

// Download fetches the generated media bytes.
func (c *GenerationClient) Download(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.APIError{Status: resp.StatusCode, Body: "media download failed"}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes))
	if err != nil {
		return nil, fmt.Errorf("read media: %w", err)
	}
	return data, nil
}

func generationPath(kind domain.MediaKind) string {
	if kind == domain.MediaMusic {
		return "/mwvideos/api/generate_music"
	}
	return "/mwvideos/api/generate_image"
}
