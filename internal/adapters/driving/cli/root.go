// Package cli implements the command-line interface for the Studio
// CLI.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/multiplewords/studio-cli/internal/core/ports/driving"
	"github.com/multiplewords/studio-cli/internal/logger"
)

// version is the build version, overridden at link time.
var version = "dev"

// Services holds the driving ports the commands operate on.
type Services struct {
	Auth       driving.AuthService
	Monitor    driving.EntitlementMonitor
	Purchase   driving.PurchaseService
	Generation driving.GenerationService
}

var services *Services

// SetServices wires the application services into the commands.
func SetServices(s *Services) {
	services = s
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Generate AI images and music from the command line",
	Long: `Studio is a command-line client for the MultipleWords media
backend. Sign in with your MultipleWords account, check your credits,
and generate AI images or music clips straight into your project.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
