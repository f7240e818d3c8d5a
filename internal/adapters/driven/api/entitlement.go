package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
)

// Ensure EntitlementClient implements the interface.
var _ driven.EntitlementClient = (*EntitlementClient)(nil)

// EntitlementClient reads premium status and credit balance from the
// account and media backends.
type EntitlementClient struct {
	http *http.Client

	mu             sync.RWMutex
	accountBaseURL string
	mediaBaseURL   string
}

// NewEntitlementClient creates a client from API settings.
func NewEntitlementClient(settings domain.APISettings) *EntitlementClient {
	return &EntitlementClient{
		http:           newHTTPClient(),
		accountBaseURL: settings.AccountBaseURL,
		mediaBaseURL:   settings.MediaBaseURL,
	}
}

// Reconfigure swaps the backend base URLs after a settings reload.
func (c *EntitlementClient) Reconfigure(settings domain.APISettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accountBaseURL = settings.AccountBaseURL
	c.mediaBaseURL = settings.MediaBaseURL
}

func (c *EntitlementClient) baseURLs() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accountBaseURL, c.mediaBaseURL
}

// PremiumStatus reports whether the account has an active premium
// plan. The endpoint returns settings for several linked accounts;
// only the entry matching userID counts.
func (c *EntitlementClient) PremiumStatus(ctx context.Context, userID string) (bool, error) {
	var payload struct {
		Data struct {
			UserInfo []struct {
				UserID     any `json:"user_id"`
				IsUserPaid any `json:"is_user_paid"`
			} `json:"user_info"`
		} `json:"data"`
	}

	accountBaseURL, _ := c.baseURLs()
	endpoint := fmt.Sprintf("%s/api/account/user_settings/%s", accountBaseURL, userID)
	if err := getJSON(ctx, c.http, endpoint, &payload); err != nil {
		return false, fmt.Errorf("premium status: %w", err)
	}

	for _, info := range payload.Data.UserInfo {
		if asString(info.UserID) == userID {
			return asBool(info.IsUserPaid), nil
		}
	}
	return false, nil
}

// CreditsRemaining returns the remaining generation credits.
func (c *EntitlementClient) CreditsRemaining(ctx context.Context, userID string) (int, error) {
	var payload struct {
		Credits struct {
			Videos int `json:"videos"`
		} `json:"credits"`
	}

	_, mediaBaseURL := c.baseURLs()
	endpoint := fmt.Sprintf("%s/api/tokens_left/get/%s", mediaBaseURL, userID)
	if err := getJSON(ctx, c.http, endpoint, &payload); err != nil {
		return 0, fmt.Errorf("credits remaining: %w", err)
	}
	return payload.Credits.Videos, nil
}
