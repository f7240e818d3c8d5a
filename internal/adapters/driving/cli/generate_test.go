package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

func TestGenerateCmd_Use(t *testing.T) {
	assert.Equal(t, "generate [prompt]", generateCmd.Use)
}

func TestGenerateCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute("generate")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestGenerateCmd_HasKindFlag(t *testing.T) {
	flag := generateCmd.Flags().Lookup("kind")
	require.NotNil(t, flag)
	assert.Equal(t, "k", flag.Shorthand)
	assert.Equal(t, "image", flag.DefValue)
}

func TestGenerateCmd_RejectsUnknownKind(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute("generate", "--kind", "sculpture", "a fox")
	defer func() { generateKind = "image" }()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown media kind")
}

func TestGenerateCmd_Success(t *testing.T) {
	_, _, _, gen, cleanup := setupTestServices(t)
	defer cleanup()
	gen.record = &domain.GenerationRecord{Kind: domain.MediaImage, InsertedPath: "/media/image/a.png"}

	out, err := execute("generate", "a fox in fresh snow")

	assert.NoError(t, err)
	assert.Contains(t, out, "Generating image...")
	assert.Contains(t, out, "Saved image to /media/image/a.png")
	assert.Equal(t, "a fox in fresh snow", gen.lastPrompt)
}

func TestGenerateCmd_EnhanceRewritesPrompt(t *testing.T) {
	_, _, _, gen, cleanup := setupTestServices(t)
	defer cleanup()
	gen.enhanced = "a red fox trotting through fresh snow at dawn"

	out, err := execute("generate", "--enhance", "a fox")
	defer func() { generateEnhance = false }()

	assert.NoError(t, err)
	assert.Contains(t, out, "Enhanced prompt: a red fox trotting")
	assert.Equal(t, gen.enhanced, gen.lastPrompt)
}

func TestGenerateCmd_NoCredits(t *testing.T) {
	_, _, _, gen, cleanup := setupTestServices(t)
	defer cleanup()
	gen.genErr = domain.ErrInsufficientCredits

	_, err := execute("generate", "a fox")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no credits remaining")
	assert.Contains(t, err.Error(), "studio credits buy")
}

func TestGenerateCmd_NotSignedIn(t *testing.T) {
	_, _, _, gen, cleanup := setupTestServices(t)
	defer cleanup()
	gen.genErr = domain.ErrNotAuthenticated

	_, err := execute("generate", "a fox")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "studio login")
}
