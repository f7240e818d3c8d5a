package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
)

// Ensure Gateway implements the interface.
var _ driven.AuthGateway = (*Gateway)(nil)

// Gateway is the OAuth adapter for the MultipleWords authorization
// server. Token handling is delegated to golang.org/x/oauth2; the
// code-by-state side channel and the user-id lookup are plain HTTP.
type Gateway struct {
	http *http.Client

	mu             sync.RWMutex
	conf           *oauth2.Config
	codeByStateURL string
	userLookupURL  string
}

// NewGateway creates a gateway from OAuth settings.
func NewGateway(settings domain.OAuthSettings) *Gateway {
	return &Gateway{
		http:           newHTTPClient(),
		conf:           oauthConfig(settings),
		codeByStateURL: settings.CodeByStateURL,
		userLookupURL:  settings.UserLookupURL,
	}
}

func oauthConfig(settings domain.OAuthSettings) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    settings.ClientID,
		RedirectURL: settings.RedirectURI,
		Scopes:      settings.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  settings.AuthURL,
			TokenURL: settings.TokenURL,
		},
	}
}

// Reconfigure swaps the endpoint configuration. Requests already in
// flight finish against the old endpoints.
func (g *Gateway) Reconfigure(settings domain.OAuthSettings) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.conf = oauthConfig(settings)
	g.codeByStateURL = settings.CodeByStateURL
	g.userLookupURL = settings.UserLookupURL
}

func (g *Gateway) oauthConf() *oauth2.Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.conf
}

// AuthCodeURL builds the authorization page URL for one attempt.
func (g *Gateway) AuthCodeURL(state string, platform domain.Platform) string {
	return g.oauthConf().AuthCodeURL(state,
		oauth2.SetAuthURLParam("platform", string(platform)),
	)
}

// LookupCode polls the code-by-state endpoint. A (nil, nil) return
// means the code has not been parked yet.
func (g *Gateway) LookupCode(ctx context.Context, state string) (*driven.PendingCode, error) {
	g.mu.RLock()
	lookupURL := g.codeByStateURL + "?state=" + url.QueryEscape(state)
	g.mu.RUnlock()

	var payload struct {
		Code  string `json:"code"`
		State string `json:"state"`
	}
	if err := getJSON(ctx, g.http, lookupURL, &payload); err != nil {
		// The server answers 404 until the redirect lands.
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if payload.Code == "" {
		return nil, nil
	}
	if payload.State == "" {
		payload.State = state
	}
	return &driven.PendingCode{Code: payload.Code, State: payload.State}, nil
}

// Exchange converts an authorization code into a token grant.
func (g *Gateway) Exchange(ctx context.Context, code string) (*driven.TokenGrant, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.http)

	token, err := g.oauthConf().Exchange(ctx, code,
		oauth2.SetAuthURLParam("include_user_info", "true"),
	)
	if err != nil {
		return nil, mapTokenError(err)
	}
	return grantFromToken(token), nil
}

// Refresh exchanges a refresh token for a fresh grant.
func (g *Gateway) Refresh(ctx context.Context, refreshToken string) (*driven.TokenGrant, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.http)

	token, err := g.oauthConf().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, mapTokenError(err)
	}
	return grantFromToken(token), nil
}

// ResolveUserID resolves the numeric account id for an access token.
func (g *Gateway) ResolveUserID(ctx context.Context, accessToken string) (string, error) {
	form := url.Values{}
	form.Set("token", accessToken)

	var payload struct {
		UserID any `json:"user_id"`
	}
	g.mu.RLock()
	lookupURL := g.userLookupURL
	g.mu.RUnlock()
	if err := postForm(ctx, g.http, lookupURL, form, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUserIDLookupFailed, err)
	}

	userID := asString(payload.UserID)
	if strings.TrimSpace(userID) == "" {
		return "", domain.ErrUserIDLookupFailed
	}
	return userID, nil
}

func grantFromToken(token *oauth2.Token) *driven.TokenGrant {
	return &driven.TokenGrant{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
}

// mapTokenError converts oauth2 retrieval failures into the domain
// error carrying the upstream status and body.
func mapTokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return &domain.TokenExchangeError{
			Status: status,
			Body:   strings.TrimSpace(string(retrieveErr.Body)),
		}
	}
	return err
}
