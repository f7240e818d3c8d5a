package services

import (
	"crypto/rand"
	"encoding/base64"
)

// stateLength is the number of random bytes behind the OAuth state
// parameter. 32 bytes gives 256 bits of entropy.
const stateLength = 32

// generateState creates a random state parameter for CSRF protection.
func generateState() (string, error) {
	bytes := make([]byte, stateLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
