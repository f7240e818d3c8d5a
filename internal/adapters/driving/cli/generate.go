package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

var (
	generateKind    string
	generateEnhance bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate an AI image or music clip",
	Long: `Generates media from a text prompt and saves it into your project's
media directory. Non-premium accounts consume one credit per generation.

Examples:
  studio generate "a fox in fresh snow"
  studio generate --kind music "calm piano over rain"
  studio generate --enhance "a fox"`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateKind, "kind", "k", "image", "media kind (image, music)")
	generateCmd.Flags().BoolVar(&generateEnhance, "enhance", false, "enhance the prompt before generating")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if services == nil {
		return errors.New("generation service not configured")
	}

	prompt := args[0]
	kind := domain.MediaKind(strings.ToLower(generateKind))
	if !kind.Valid() {
		return fmt.Errorf("unknown media kind %q (want image or music)", generateKind)
	}

	ctx := cmd.Context()

	if generateEnhance {
		enhanced, err := services.Generation.Enhance(ctx, prompt)
		if err != nil {
			return fmt.Errorf("enhancing prompt: %w", err)
		}
		cmd.Printf("Enhanced prompt: %s\n", enhanced)
		prompt = enhanced
	}

	cmd.Printf("Generating %s...\n", kind)
	rec, err := services.Generation.Generate(ctx, prompt, kind)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientCredits) {
			return errors.New("no credits remaining; run 'studio credits buy' to top up")
		}
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return errors.New("not signed in; run 'studio login' first")
		}
		return err
	}

	cmd.Printf("Saved %s to %s\n", rec.Kind, rec.InsertedPath)
	return nil
}
