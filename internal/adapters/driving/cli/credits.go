package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Show remaining generation credits",
	RunE:  runCredits,
}

var creditsBuyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buy more credits",
	Long: `Opens the credits purchase page in your browser and waits for the
purchase to land on your account. Press Ctrl+C to stop waiting.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPurchase(cmd, domain.PlanCredits)
	},
}

var creditsUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade to premium (unlimited generations)",
	Long: `Opens the premium pricing page in your browser and waits for the
upgrade to activate. Press Ctrl+C to stop waiting.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPurchase(cmd, domain.PlanPremium)
	},
}

func init() {
	creditsCmd.AddCommand(creditsBuyCmd)
	creditsCmd.AddCommand(creditsUpgradeCmd)
	rootCmd.AddCommand(creditsCmd)
}

func runCredits(cmd *cobra.Command, _ []string) error {
	if services == nil {
		return errors.New("services not configured")
	}
	if !services.Auth.HasSession() {
		return errors.New("not signed in; run 'studio login' first")
	}

	state, err := currentEntitlement(cmd.Context())
	if err != nil {
		return err
	}

	switch state.Status {
	case domain.EntitlementReady:
		cmd.Printf("Credits remaining: %s\n", state.Entitlement.DisplayCredits())
	case domain.EntitlementUserIDMissing:
		return errors.New("no account id attached to the session; run 'studio login' again")
	default:
		return errors.New("could not read the credit balance, try again shortly")
	}
	return nil
}

func runPurchase(cmd *cobra.Command, plan domain.PurchasePlan) error {
	if services == nil {
		return errors.New("purchase service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watch, err := services.Purchase.BeginPurchase(ctx, plan)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return errors.New("not signed in; run 'studio login' first")
		}
		return fmt.Errorf("starting purchase: %w", err)
	}

	cmd.Println("Opened the purchase page in your browser.")
	cmd.Println("Waiting for the purchase to complete (Ctrl+C to stop waiting)...")

	outcome := <-watch.Outcome()
	cmd.Println(outcome.Message())
	return nil
}
