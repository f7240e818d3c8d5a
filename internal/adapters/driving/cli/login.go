package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with your MultipleWords account",
	Long: `Opens the MultipleWords authorization page in your browser and waits
for you to approve access. Press Ctrl+C to cancel.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if services == nil {
		return errors.New("auth service not configured")
	}
	if services.Auth.IsAuthenticated() {
		cmd.Println("Already signed in.")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Ctrl+C must abort the poll loop, not just the context.
	auth := services.Auth
	go func() {
		<-ctx.Done()
		auth.Cancel()
	}()

	cmd.Println("Opening the authorization page in your browser...")
	result := auth.Authenticate(ctx)

	if !result.Success {
		switch {
		case errors.Is(result.Err, domain.ErrAuthCancelled):
			cmd.Println("Sign-in cancelled.")
			return nil
		case errors.Is(result.Err, domain.ErrPopupClosed):
			return errors.New("the authorization page was closed before sign-in completed")
		default:
			return fmt.Errorf("sign-in failed: %w", result.Err)
		}
	}

	if result.UserID == "" {
		cmd.Println("Signed in, but your account id could not be resolved.")
		cmd.Println("Credits and generation are unavailable until you sign in again.")
		return nil
	}

	cmd.Printf("Signed in as user %s.\n", result.UserID)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if services == nil {
		return errors.New("auth service not configured")
	}
	if !services.Auth.IsAuthenticated() {
		cmd.Println("Not signed in.")
		return nil
	}
	services.Auth.Logout()
	cmd.Println("Signed out.")
	return nil
}

var _ driven.Prompter = (*stdinPrompter)(nil)

// stdinPrompter asks on the terminal when the browser cannot be
// launched.
type stdinPrompter struct{}

// NewPrompter returns a terminal-backed manual-auth prompter.
func NewPrompter() driven.Prompter {
	return &stdinPrompter{}
}

func (p *stdinPrompter) ConfirmManualAuth(authURL string) (bool, error) {
	fmt.Fprintln(os.Stderr, "Could not open a browser automatically.")
	fmt.Fprintln(os.Stderr, "Open this URL yourself to sign in:")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "  %s\n", authURL)
	fmt.Fprintln(os.Stderr)
	fmt.Fprint(os.Stderr, "Continue waiting for sign-in? [Y/n] ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes", nil
}
