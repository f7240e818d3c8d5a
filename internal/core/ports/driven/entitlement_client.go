package driven

import "context"

// EntitlementClient reads the server-side truth about an account's
// premium flag and credit balance. The two lookups are independent
// endpoints; callers fetch them concurrently.
type EntitlementClient interface {
	// PremiumStatus returns whether the account is a paid account.
	PremiumStatus(ctx context.Context, userID string) (bool, error)

	// CreditsRemaining returns the remaining generation credit balance.
	CreditsRemaining(ctx context.Context, userID string) (int, error)
}
