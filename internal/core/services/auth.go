package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
	"github.com/multiplewords/studio-cli/internal/core/ports/driving"
	"github.com/multiplewords/studio-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// authAttempt is the single live authorization attempt. Only one may
// exist at a time; starting a new attempt supersedes the previous one.
type authAttempt struct {
	state   string
	popup   driven.PopupHandle
	flowCtx context.Context
	cancel  context.CancelFunc

	mu        sync.Mutex
	cancelled bool
	completed bool
	codeUsed  bool
}

// markCancelled flags the attempt as cancelled and unblocks its poll
// loop. Safe to call repeatedly.
func (a *authAttempt) markCancelled() {
	a.mu.Lock()
	a.cancelled = true
	popup := a.popup
	a.popup = nil
	a.mu.Unlock()

	if popup != nil {
		popup.Close()
	}
	if a.cancel != nil {
		a.cancel()
	}
}

func (a *authAttempt) isCancelled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancelled
}

// cleanup closes the popup and releases the attempt's resources.
// Idempotent: it runs on every exit path of the flow.
func (a *authAttempt) cleanup() {
	a.mu.Lock()
	popup := a.popup
	a.popup = nil
	a.mu.Unlock()

	if popup != nil {
		popup.Close()
	}
	if a.cancel != nil {
		a.cancel()
	}
}

// AuthService runs the OAuth2 authorization-code flow and owns the
// session credential lifecycle.
//
// The authorization page redirects to an origin the client cannot
// observe, so completion is detected by polling the code-by-state side
// channel rather than by serving the redirect.
type AuthService struct {
	gateway  driven.AuthGateway
	store    driven.CredentialsStore
	browser  driven.Browser
	prompter driven.Prompter

	platform     domain.Platform
	pollInterval time.Duration

	mu      sync.Mutex
	attempt *authAttempt
	phase   domain.AuthPhase
}

// NewAuthService creates an auth service. pollInterval bounds the
// code-by-state poll rate; zero selects the configured default.
func NewAuthService(
	gateway driven.AuthGateway,
	store driven.CredentialsStore,
	browser driven.Browser,
	prompter driven.Prompter,
	platform domain.Platform,
	pollInterval time.Duration,
) *AuthService {
	if pollInterval <= 0 {
		pollInterval = domain.DefaultAppSettings().Polling.CodeInterval
	}
	return &AuthService{
		gateway:      gateway,
		store:        store,
		browser:      browser,
		prompter:     prompter,
		platform:     platform,
		pollInterval: pollInterval,
	}
}

// Authenticate runs one end-to-end authorization flow. Failures are
// reported in the result, never as panics or bare errors, so the UI
// can render a message per failure kind.
func (s *AuthService) Authenticate(ctx context.Context) domain.AuthResult {
	attempt, err := s.beginAttempt(ctx)
	if err != nil {
		return s.fail(err)
	}
	defer attempt.cleanup()

	result := s.run(ctx, attempt)

	s.mu.Lock()
	if s.attempt == attempt {
		s.attempt = nil
	}
	s.mu.Unlock()

	return result
}

// beginAttempt supersedes any in-flight attempt and registers a new
// one with a fresh state parameter.
func (s *AuthService) beginAttempt(ctx context.Context) (*authAttempt, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	flowCtx, cancel := context.WithCancel(ctx)
	attempt := &authAttempt{state: state, flowCtx: flowCtx, cancel: cancel}

	s.mu.Lock()
	prev := s.attempt
	s.attempt = attempt
	s.phase = domain.AuthPopupOpening
	s.mu.Unlock()

	// A second login press must not leave the first attempt's popup
	// and poll loop running.
	if prev != nil {
		logger.Debug("superseding in-flight authentication attempt")
		prev.markCancelled()
	}

	// Persist the state so the callback can be verified against it.
	creds, _ := s.store.Get()
	creds.OAuthState = state
	s.store.Save(creds)

	return attempt, nil
}

// run drives the state machine for one attempt.
func (s *AuthService) run(ctx context.Context, attempt *authAttempt) domain.AuthResult {
	authURL := s.gateway.AuthCodeURL(attempt.state, s.platform)
	logger.Debug("opening authorization page")

	popup, err := s.browser.OpenAuthPage(authURL)
	switch {
	case err == nil:
		attempt.mu.Lock()
		attempt.popup = popup
		attempt.mu.Unlock()
	case errors.Is(err, domain.ErrPopupBlocked):
		// Recoverable: hand the URL to the user and wait for their
		// acknowledgement before polling for the code.
		logger.Warn("browser blocked the authorization page, falling back to manual flow")
		if s.prompter == nil {
			return s.fail(domain.ErrPopupBlocked)
		}
		ok, perr := s.prompter.ConfirmManualAuth(authURL)
		if perr != nil {
			return s.fail(perr)
		}
		if !ok {
			return s.fail(domain.ErrAuthCancelled)
		}
	default:
		return s.fail(fmt.Errorf("opening authorization page: %w", err))
	}

	s.setPhase(domain.AuthPolling)
	code, err := s.pollForCode(attempt)
	if err != nil {
		return s.fail(err)
	}

	s.setPhase(domain.AuthExchanging)
	return s.exchange(ctx, attempt, code)
}

// pollForCode polls the code-by-state endpoint at a bounded rate until
// a matching code arrives, the popup closes, or the attempt is
// cancelled. Per-tick lookup errors never terminate the loop.
func (s *AuthService) pollForCode(attempt *authAttempt) (string, error) {
	limiter := rate.NewLimiter(rate.Every(s.pollInterval), 1)

	for {
		if attempt.isCancelled() {
			return "", domain.ErrAuthCancelled
		}

		if err := limiter.Wait(attempt.flowCtx); err != nil {
			if attempt.isCancelled() {
				return "", domain.ErrAuthCancelled
			}
			return "", err
		}

		pending, err := s.gateway.LookupCode(attempt.flowCtx, attempt.state)
		if err != nil {
			if attempt.isCancelled() {
				return "", domain.ErrAuthCancelled
			}
			logger.Debug("code lookup: %v", err)
		}
		if pending != nil {
			if pending.State != attempt.state {
				return "", domain.ErrStateMismatch
			}
			attempt.mu.Lock()
			attempt.completed = true
			attempt.mu.Unlock()
			s.setPhase(domain.AuthCodeReceived)
			return pending.Code, nil
		}

		attempt.mu.Lock()
		popup := attempt.popup
		completed := attempt.completed
		attempt.mu.Unlock()
		if popup != nil && popup.Closed() && !completed {
			return "", domain.ErrPopupClosed
		}
	}
}

// exchange converts the authorization code into a credential record.
// The code is single-use: a repeated exchange in the same attempt
// fails fast without touching the network.
func (s *AuthService) exchange(ctx context.Context, attempt *authAttempt, code string) domain.AuthResult {
	attempt.mu.Lock()
	used := attempt.codeUsed
	// The code is consumed before the network call so a duplicate
	// delivery can never trigger a second exchange.
	attempt.codeUsed = true
	attempt.mu.Unlock()
	if used {
		// Benign when a session already exists: the first exchange won.
		if creds, ok := s.store.Get(); ok && creds.AccessToken != "" {
			s.setPhase(domain.AuthAuthenticated)
			return domain.AuthResult{Success: true, UserID: creds.UserID, AccessToken: creds.AccessToken}
		}
		return s.fail(domain.ErrCodeAlreadyUsed)
	}

	grant, err := s.gateway.Exchange(ctx, code)
	if err != nil {
		return s.fail(err)
	}

	// The identity lookup is best-effort: its failure degrades the
	// session to "authenticated without user id" rather than failing
	// the whole flow.
	userID, err := s.gateway.ResolveUserID(ctx, grant.AccessToken)
	if err != nil {
		logger.Warn("user id lookup failed: %v", err)
		userID = ""
	}

	s.store.Save(domain.Credentials{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		Expiry:       grant.Expiry,
		UserID:       userID,
		OAuthState:   attempt.state,
	})

	s.setPhase(domain.AuthAuthenticated)
	return domain.AuthResult{Success: true, UserID: userID, AccessToken: grant.AccessToken}
}

// Cancel aborts the in-flight attempt, if any. The pending
// Authenticate call resolves as cancelled within one poll tick.
func (s *AuthService) Cancel() {
	s.mu.Lock()
	attempt := s.attempt
	s.mu.Unlock()

	if attempt != nil {
		attempt.markCancelled()
	}
}

// Logout cancels any in-flight attempt and clears every credential
// field.
func (s *AuthService) Logout() {
	s.Cancel()
	s.store.Clear()
	s.setPhase(domain.AuthIdle)
	logger.Debug("logged out, credentials cleared")
}

// IsAuthenticated reports whether a usable session exists.
func (s *AuthService) IsAuthenticated() bool {
	creds, ok := s.store.Get()
	return ok && creds.IsAuthenticated()
}

// HasSession reports whether any session exists. A session whose
// identity lookup failed still counts: it holds a token but no user
// id, and callers surface that state distinctly.
func (s *AuthService) HasSession() bool {
	creds, ok := s.store.Get()
	return ok && creds.AccessToken != ""
}

// UserID returns the resolved user id, empty when absent.
func (s *AuthService) UserID() string {
	creds, _ := s.store.Get()
	return creds.UserID
}

// AccessToken returns a valid access token, refreshing an expired one
// when a refresh token is available.
func (s *AuthService) AccessToken(ctx context.Context) (string, error) {
	creds, ok := s.store.Get()
	if !ok || creds.AccessToken == "" {
		return "", domain.ErrNotAuthenticated
	}
	if !creds.IsExpired() {
		return creds.AccessToken, nil
	}
	if creds.RefreshToken == "" {
		return "", domain.ErrNoRefreshToken
	}

	grant, err := s.gateway.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refreshing token: %w", err)
	}

	creds.AccessToken = grant.AccessToken
	if grant.RefreshToken != "" {
		creds.RefreshToken = grant.RefreshToken
	}
	creds.Expiry = grant.Expiry
	s.store.Save(creds)

	return grant.AccessToken, nil
}

// Phase reports the controller's current position in the flow.
func (s *AuthService) Phase() domain.AuthPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *AuthService) setPhase(p domain.AuthPhase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

func (s *AuthService) fail(err error) domain.AuthResult {
	s.setPhase(domain.AuthFailed)
	return domain.AuthResult{Success: false, Err: err}
}
