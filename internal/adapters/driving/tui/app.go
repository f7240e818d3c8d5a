// Package tui implements the interactive terminal UI following the
// Elm architecture.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/multiplewords/studio-cli/internal/adapters/driving/tui/messages"
	"github.com/multiplewords/studio-cli/internal/adapters/driving/tui/styles"
	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driving"
)

// Config holds the driving ports the TUI operates on.
type Config struct {
	Auth       driving.AuthService
	Monitor    driving.EntitlementMonitor
	Purchase   driving.PurchaseService
	Generation driving.GenerationService
}

// noticeKind selects the style of the notification line.
type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeInfo
	noticeSuccess
	noticeWarning
	noticeError
)

// App is the main TUI application. It implements tea.Model.
type App struct {
	config Config
	styles *styles.Styles

	input   textinput.Model
	spin    spinner.Model
	kind    domain.MediaKind
	state   domain.EntitlementState
	busy    bool
	busyMsg string

	notice     string
	noticeKind noticeKind

	width  int
	height int
}

// NewApp creates the TUI application and starts the entitlement
// poller.
func NewApp(config Config) *App {
	input := textinput.New()
	input.Placeholder = "Describe what to generate..."
	input.CharLimit = 500
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	config.Monitor.Start(context.Background())

	return &App{
		config: config,
		styles: styles.DefaultStyles(),
		input:  input,
		spin:   spin,
		kind:   domain.MediaImage,
		state:  config.Monitor.State(),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.spin.Tick, a.waitForEntitlement())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 8
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.EntitlementUpdated:
		a.state = msg.State
		return a, a.waitForEntitlement()

	case messages.AuthCompleted:
		a.busy = false
		if msg.Result.Success {
			if msg.Result.UserID == "" {
				a.setNotice("Signed in, but your account id could not be resolved", noticeWarning)
			} else {
				a.setNotice(fmt.Sprintf("Signed in as user %s", msg.Result.UserID), noticeSuccess)
			}
			a.config.Monitor.Refresh()
		} else if errors.Is(msg.Result.Err, domain.ErrAuthCancelled) {
			a.setNotice("Sign-in cancelled", noticeWarning)
		} else {
			a.setNotice(fmt.Sprintf("Sign-in failed: %v", msg.Result.Err), noticeError)
		}
		return a, nil

	case messages.GenerationCompleted:
		a.busy = false
		if msg.Err != nil {
			a.setNotice(a.generationError(msg.Err), noticeError)
			return a, nil
		}
		a.input.SetValue("")
		a.setNotice(fmt.Sprintf("Saved %s to %s", msg.Record.Kind, msg.Record.InsertedPath), noticeSuccess)
		return a, nil

	case messages.PromptEnhanced:
		a.busy = false
		if msg.Err != nil {
			a.setNotice(fmt.Sprintf("Enhancement failed: %v", msg.Err), noticeError)
			return a, nil
		}
		a.input.SetValue(msg.Prompt)
		a.input.CursorEnd()
		a.setNotice("Prompt enhanced", noticeInfo)
		return a, nil

	case messages.PurchaseResolved:
		a.busy = false
		if msg.Err != nil {
			a.setNotice(fmt.Sprintf("Purchase failed to start: %v", msg.Err), noticeError)
			return a, nil
		}
		kind := noticeSuccess
		if !msg.Outcome.Completed() {
			kind = noticeWarning
		}
		a.setNotice(msg.Outcome.Message(), kind)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		a.config.Monitor.Stop()
		return a, tea.Quit

	case tea.KeyEnter:
		if a.busy {
			return a, nil
		}
		prompt := a.input.Value()
		if prompt == "" {
			return a, nil
		}
		if !a.state.CanGenerate() {
			a.setNotice("No credits remaining. Ctrl+B buys credits, Ctrl+P upgrades to premium.", noticeWarning)
			return a, nil
		}
		a.startBusy(fmt.Sprintf("Generating %s...", a.kind))
		return a, a.generate(prompt, a.kind)

	case tea.KeyTab:
		if a.kind == domain.MediaImage {
			a.kind = domain.MediaMusic
		} else {
			a.kind = domain.MediaImage
		}
		return a, nil

	case tea.KeyCtrlE:
		if a.busy || a.input.Value() == "" {
			return a, nil
		}
		a.startBusy("Enhancing prompt...")
		return a, a.enhance(a.input.Value())

	case tea.KeyCtrlL:
		if a.busy {
			return a, nil
		}
		if a.config.Auth.HasSession() {
			a.config.Auth.Logout()
			a.config.Monitor.Refresh()
			a.setNotice("Signed out", noticeInfo)
			return a, nil
		}
		a.startBusy("Waiting for sign-in in your browser...")
		return a, a.login()

	case tea.KeyCtrlB:
		if a.busy {
			return a, nil
		}
		return a, a.purchase(domain.PlanCredits)

	case tea.KeyCtrlP:
		if a.busy {
			return a, nil
		}
		return a, a.purchase(domain.PlanPremium)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	title := a.styles.Title.Render("Studio")

	prompt := a.styles.Prompt.Render(a.input.View())

	var activity string
	if a.busy {
		activity = a.styles.Muted.Render(a.spin.View() + " " + a.busyMsg)
	}

	var notice string
	switch a.noticeKind {
	case noticeSuccess:
		notice = a.styles.Success.Render(a.notice)
	case noticeWarning:
		notice = a.styles.Warning.Render(a.notice)
	case noticeError:
		notice = a.styles.Error.Render(a.notice)
	case noticeInfo:
		notice = a.styles.Muted.Render(a.notice)
	}

	status := a.styles.StatusBar.Render(a.statusLine())
	help := a.styles.Help.Render(
		"enter generate • tab kind:" + string(a.kind) +
			" • ctrl+e enhance • ctrl+l sign in/out • ctrl+b credits • ctrl+p premium • esc quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, prompt, activity, notice, status, help)
}

// statusLine renders the entitlement footer.
func (a *App) statusLine() string {
	switch a.state.Status {
	case domain.EntitlementSignedOut:
		return a.styles.Muted.Render("Not signed in · press Ctrl+L to sign in")
	case domain.EntitlementUserIDMissing:
		return a.styles.Warning.Render("Signed in, but account id missing · sign in again")
	case domain.EntitlementError:
		return a.styles.Warning.Render("Entitlement temporarily unavailable")
	case domain.EntitlementReady:
		if a.state.Entitlement.Premium {
			return a.styles.Success.Render("Premium · unlimited generations")
		}
		return fmt.Sprintf("Credits: %s", a.state.Entitlement.DisplayCredits())
	default:
		return ""
	}
}

func (a *App) setNotice(text string, kind noticeKind) {
	a.notice = text
	a.noticeKind = kind
}

func (a *App) startBusy(msg string) {
	a.busy = true
	a.busyMsg = msg
	a.notice = ""
	a.noticeKind = noticeNone
}

func (a *App) generationError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientCredits):
		return "No credits remaining. Ctrl+B buys credits, Ctrl+P upgrades to premium."
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "Not signed in. Press Ctrl+L to sign in."
	default:
		return fmt.Sprintf("Generation failed: %v", err)
	}
}

// waitForEntitlement receives the next poller update.
func (a *App) waitForEntitlement() tea.Cmd {
	return func() tea.Msg {
		state, ok := <-a.config.Monitor.Updates()
		if !ok {
			return nil
		}
		return messages.EntitlementUpdated{State: state}
	}
}

func (a *App) login() tea.Cmd {
	return func() tea.Msg {
		result := a.config.Auth.Authenticate(context.Background())
		return messages.AuthCompleted{Result: result}
	}
}

func (a *App) generate(prompt string, kind domain.MediaKind) tea.Cmd {
	return func() tea.Msg {
		rec, err := a.config.Generation.Generate(context.Background(), prompt, kind)
		return messages.GenerationCompleted{Record: rec, Err: err}
	}
}

func (a *App) enhance(prompt string) tea.Cmd {
	return func() tea.Msg {
		enhanced, err := a.config.Generation.Enhance(context.Background(), prompt)
		return messages.PromptEnhanced{Prompt: enhanced, Err: err}
	}
}

func (a *App) purchase(plan domain.PurchasePlan) tea.Cmd {
	a.startBusy("Waiting for the purchase to complete in your browser...")
	return func() tea.Msg {
		watch, err := a.config.Purchase.BeginPurchase(context.Background(), plan)
		if err != nil {
			return messages.PurchaseResolved{Err: err}
		}
		return messages.PurchaseResolved{Outcome: <-watch.Outcome()}
	}
}
