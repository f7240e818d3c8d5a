// Command studio is the MultipleWords studio CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/multiplewords/studio-cli/internal/adapters/driven/api"
	"github.com/multiplewords/studio-cli/internal/adapters/driven/browser"
	configfile "github.com/multiplewords/studio-cli/internal/adapters/driven/config/file"
	"github.com/multiplewords/studio-cli/internal/adapters/driven/insert"
	storagefile "github.com/multiplewords/studio-cli/internal/adapters/driven/storage/file"
	"github.com/multiplewords/studio-cli/internal/adapters/driven/storage/sqlite"
	"github.com/multiplewords/studio-cli/internal/adapters/driving/cli"
	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/services"
	"github.com/multiplewords/studio-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settingsStore, err := configfile.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settings := settingsStore.Settings()

	// Driven adapters.
	gateway := api.NewGateway(settings.OAuth)
	entitlementClient := api.NewEntitlementClient(settings.API)
	generationClient := api.NewGenerationClient(settings.API)
	opener := browser.NewOpener()

	// The session must outlive one command: login and generate run as
	// separate processes. Logout removes the file again.
	credentials, err := storagefile.NewCredentialsStore("")
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	inserter, err := insert.NewFileInserter(settings.Generation.OutputDir)
	if err != nil {
		return fmt.Errorf("preparing media directory: %w", err)
	}

	history, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer history.Close()

	// Core services.
	auth := services.NewAuthService(
		gateway, credentials, opener, cli.NewPrompter(),
		domain.PlatformDesktop, settings.Polling.CodeInterval,
	)
	monitor := services.NewEntitlementMonitor(
		entitlementClient, auth, settings.Polling.EntitlementInterval,
	)
	purchase := services.NewPurchaseService(
		entitlementClient, auth, opener, monitor,
		settings.API.PricingBaseURL+"/canva_pricing",
		settings.Polling.PurchaseInterval, settings.Polling.PurchaseTimeout,
	)
	generation := services.NewGenerationService(
		generationClient, auth, monitor, inserter, history,
	)

	// Apply config.toml edits to the API clients while a long-lived
	// session (the TUI) is running.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		err := settingsStore.Watch(watchCtx, func(fresh domain.AppSettings) {
			gateway.Reconfigure(fresh.OAuth)
			entitlementClient.Reconfigure(fresh.API)
			generationClient.Reconfigure(fresh.API)
			logger.Info("settings reloaded")
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("settings watch: %v", err)
		}
	}()

	cli.SetServices(&cli.Services{
		Auth:       auth,
		Monitor:    monitor,
		Purchase:   purchase,
		Generation: generation,
	})

	if err := cli.Execute(); err != nil {
		return err
	}

	// The poller may still be running after a TUI session ends.
	monitor.Stop()
	logger.Debug("shutdown complete")
	return nil
}
