package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generations",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if services == nil {
		return errors.New("generation service not configured")
	}

	records, err := services.Generation.History(cmd.Context(), historyLimit)
	if err != nil {
		if errors.Is(err, domain.ErrNotImplemented) {
			return errors.New("generation history is not enabled")
		}
		return err
	}
	if len(records) == 0 {
		cmd.Println("No generations yet.")
		return nil
	}

	for _, rec := range records {
		prompt := rec.Prompt
		if len(prompt) > 60 {
			prompt = prompt[:57] + "..."
		}
		cmd.Printf("%s  %-5s  %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Kind, prompt)
	}
	return nil
}
