package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/multiplewords/studio-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI shows your sign-in state and credit balance live, and lets you
type prompts and generate media without leaving the terminal.

Controls:
  Enter  - Generate
  Tab    - Switch media kind
  Ctrl+E - Enhance the prompt
  Ctrl+L - Sign in / out
  Esc    - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if services == nil {
		return errors.New("services not configured")
	}

	app := tui.NewApp(tui.Config{
		Auth:       services.Auth,
		Monitor:    services.Monitor,
		Purchase:   services.Purchase,
		Generation: services.Generation,
	})

	program := tea.NewProgram(app, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
