package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiplewords/studio-cli/internal/adapters/driving/tui/messages"
	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driving"
)

// --- Mock ports ---

type mockAuth struct {
	authenticated bool
	userID        string
	loggedOut     bool
}

func (m *mockAuth) Authenticate(_ context.Context) domain.AuthResult {
	return domain.AuthResult{Success: true, UserID: m.userID}
}
func (m *mockAuth) Cancel() {}
func (m *mockAuth) Logout() {
	m.loggedOut = true
	m.authenticated = false
}
func (m *mockAuth) IsAuthenticated() bool { return m.authenticated }
func (m *mockAuth) HasSession() bool      { return m.authenticated }
func (m *mockAuth) UserID() string        { return m.userID }
func (m *mockAuth) AccessToken(_ context.Context) (string, error) {
	return "tok", nil
}
func (m *mockAuth) Phase() domain.AuthPhase { return domain.AuthIdle }

type mockMonitor struct {
	state   domain.EntitlementState
	updates chan domain.EntitlementState
	stopped bool
}

func newMockMonitor(state domain.EntitlementState) *mockMonitor {
	return &mockMonitor{state: state, updates: make(chan domain.EntitlementState, 1)}
}

func (m *mockMonitor) Start(_ context.Context) {}

func (m *mockMonitor) Stop() { m.stopped = true }

func (m *mockMonitor) Refresh() {}

func (m *mockMonitor) State() domain.EntitlementState { return m.state }

func (m *mockMonitor) Updates() <-chan domain.EntitlementState { return m.updates }

type mockPurchase struct{}

func (m *mockPurchase) BeginPurchase(_ context.Context, _ domain.PurchasePlan) (driving.PurchaseWatch, error) {
	return nil, errors.New("not under test")
}

type mockGeneration struct{}

func (m *mockGeneration) Generate(_ context.Context, prompt string, kind domain.MediaKind) (*domain.GenerationRecord, error) {
	return &domain.GenerationRecord{ID: "rec-1", Prompt: prompt, Kind: kind, InsertedPath: "/media/rec-1.png"}, nil
}
func (m *mockGeneration) Enhance(_ context.Context, prompt string) (string, error) {
	return prompt + ", cinematic", nil
}
func (m *mockGeneration) History(_ context.Context, _ int) ([]domain.GenerationRecord, error) {
	return nil, nil
}

func newTestApp(state domain.EntitlementState) (*App, *mockMonitor) {
	monitor := newMockMonitor(state)
	app := NewApp(Config{
		Auth:       &mockAuth{authenticated: true, userID: "user-42"},
		Monitor:    monitor,
		Purchase:   &mockPurchase{},
		Generation: &mockGeneration{},
	})
	return app, monitor
}

func readyState(premium bool, credits int) domain.EntitlementState {
	return domain.EntitlementState{
		Status:      domain.EntitlementReady,
		Entitlement: domain.Entitlement{Premium: premium, Credits: credits},
	}
}

func TestView_ShowsCreditBalance(t *testing.T) {
	app, _ := newTestApp(readyState(false, 7))

	view := app.View()

	assert.Contains(t, view, "Credits: 7")
}

func TestView_ShowsPremium(t *testing.T) {
	app, _ := newTestApp(readyState(true, 0))

	view := app.View()

	assert.Contains(t, view, "unlimited")
}

func TestUpdate_EntitlementMessageRefreshesFooter(t *testing.T) {
	app, _ := newTestApp(readyState(false, 7))

	model, _ := app.Update(messages.EntitlementUpdated{State: readyState(false, 3)})
	updated := model.(*App)

	assert.Contains(t, updated.View(), "Credits: 3")
}

func TestUpdate_TabTogglesMediaKind(t *testing.T) {
	app, _ := newTestApp(readyState(false, 7))
	require.Equal(t, domain.MediaImage, app.kind)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	updated := model.(*App)
	assert.Equal(t, domain.MediaMusic, updated.kind)

	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.MediaImage, model.(*App).kind)
}

func TestUpdate_EnterWithoutCreditsWarnsInsteadOfGenerating(t *testing.T) {
	app, _ := newTestApp(readyState(false, 0))
	app.input.SetValue("a fox")

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := model.(*App)

	assert.Nil(t, cmd)
	assert.False(t, updated.busy)
	assert.Contains(t, updated.View(), "No credits remaining")
}

func TestUpdate_GenerationCompletedClearsInput(t *testing.T) {
	app, _ := newTestApp(readyState(false, 7))
	app.input.SetValue("a fox")
	app.busy = true

	model, _ := app.Update(messages.GenerationCompleted{
		Record: &domain.GenerationRecord{Kind: domain.MediaImage, InsertedPath: "/media/x.png"},
	})
	updated := model.(*App)

	assert.False(t, updated.busy)
	assert.Empty(t, updated.input.Value())
	assert.Contains(t, updated.View(), "/media/x.png")
}

func TestUpdate_GenerationFailureShowsError(t *testing.T) {
	app, _ := newTestApp(readyState(false, 7))
	app.busy = true

	model, _ := app.Update(messages.GenerationCompleted{Err: domain.ErrInsufficientCredits})
	updated := model.(*App)

	assert.False(t, updated.busy)
	assert.Contains(t, updated.View(), "No credits remaining")
}

func TestUpdate_EscStopsMonitorAndQuits(t *testing.T) {
	app, monitor := newTestApp(readyState(false, 7))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.True(t, monitor.stopped)
}

func TestUpdate_PromptEnhancedReplacesInput(t *testing.T) {
	app, _ := newTestApp(readyState(false, 7))
	app.input.SetValue("a fox")
	app.busy = true

	model, _ := app.Update(messages.PromptEnhanced{Prompt: "a fox, cinematic"})
	updated := model.(*App)

	assert.Equal(t, "a fox, cinematic", updated.input.Value())
}
