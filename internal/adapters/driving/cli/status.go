package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session and entitlement status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if services == nil {
		return errors.New("services not configured")
	}

	if !services.Auth.HasSession() {
		cmd.Println("Not signed in. Run 'studio login' to get started.")
		return nil
	}

	userID := services.Auth.UserID()
	if userID == "" {
		cmd.Println("Signed in, but no account id is attached to the session.")
		cmd.Println("Run 'studio login' again to repair it.")
		return nil
	}
	cmd.Printf("Signed in as user %s.\n", userID)

	state, err := currentEntitlement(cmd.Context())
	if err != nil {
		return err
	}

	switch state.Status {
	case domain.EntitlementReady:
		if state.Entitlement.Premium {
			cmd.Println("Plan: premium (unlimited generations)")
		} else {
			cmd.Printf("Plan: free, %s credits remaining\n", state.Entitlement.DisplayCredits())
		}
	case domain.EntitlementError:
		cmd.Println("Plan: temporarily unavailable, try again shortly")
	default:
		cmd.Println("Plan: unknown")
	}
	return nil
}

// currentEntitlement runs the monitor just long enough to obtain one
// fresh snapshot.
func currentEntitlement(ctx context.Context) (domain.EntitlementState, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	services.Monitor.Start(ctx)
	defer services.Monitor.Stop()

	select {
	case state := <-services.Monitor.Updates():
		return state, nil
	case <-ctx.Done():
		// Fall back to whatever the monitor last published.
		return services.Monitor.State(), nil
	}
}
