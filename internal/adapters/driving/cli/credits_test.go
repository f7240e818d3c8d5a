package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

func TestCreditsCmd_Use(t *testing.T) {
	assert.Equal(t, "credits", creditsCmd.Use)
}

func TestCreditsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range creditsCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "buy")
	assert.Contains(t, names, "upgrade")
}

func TestCreditsCmd_ShowsBalance(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute("credits")

	assert.NoError(t, err)
	assert.Contains(t, out, "Credits remaining: 5")
}

func TestCreditsCmd_ShowsUnlimitedForPremium(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices(t)
	defer cleanup()
	services.Monitor = newCmdMockMonitor(domain.EntitlementState{
		Status:      domain.EntitlementReady,
		Entitlement: domain.Entitlement{Premium: true},
	})

	out, err := execute("credits")

	assert.NoError(t, err)
	assert.Contains(t, out, "Credits remaining: unlimited")
}

func TestCreditsCmd_NotSignedIn(t *testing.T) {
	auth, _, _, _, cleanup := setupTestServices(t)
	defer cleanup()
	auth.authed = false

	_, err := execute("credits")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "studio login")
}

func TestCreditsBuyCmd_UsesCreditsPlan(t *testing.T) {
	_, _, purchase, _, cleanup := setupTestServices(t)
	defer cleanup()
	purchase.watch = newCmdMockWatch(domain.PurchaseOutcome{Kind: domain.PurchaseCreditsAdded, CreditsAdded: 10})

	out, err := execute("credits", "buy")

	assert.NoError(t, err)
	assert.Equal(t, domain.PlanCredits, purchase.lastPlan)
	assert.Contains(t, out, "(10 credits added)")
}

func TestCreditsUpgradeCmd_UsesPremiumPlan(t *testing.T) {
	_, _, purchase, _, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute("credits", "upgrade")

	assert.NoError(t, err)
	assert.Equal(t, domain.PlanPremium, purchase.lastPlan)
	assert.Contains(t, out, "Premium status activated successfully!")
}

func TestCreditsBuyCmd_NotSignedIn(t *testing.T) {
	_, _, purchase, _, cleanup := setupTestServices(t)
	defer cleanup()
	purchase.err = domain.ErrNotAuthenticated

	_, err := execute("credits", "buy")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "studio login")
}

func TestCreditsBuyCmd_BeginFailure(t *testing.T) {
	_, _, purchase, _, cleanup := setupTestServices(t)
	defer cleanup()
	purchase.err = errors.New("network down")

	_, err := execute("credits", "buy")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "starting purchase")
}
