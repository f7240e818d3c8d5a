package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredentials_IsAuthenticated(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{
			name:  "empty record",
			creds: Credentials{},
			want:  false,
		},
		{
			name:  "token without user id",
			creds: Credentials{AccessToken: "tok"},
			want:  false,
		},
		{
			name:  "user id without token",
			creds: Credentials{UserID: "42"},
			want:  false,
		},
		{
			name:  "complete record",
			creds: Credentials{AccessToken: "tok", UserID: "42"},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.creds.IsAuthenticated())
		})
	}
}

func TestCredentials_IsExpired(t *testing.T) {
	fresh := Credentials{Expiry: time.Now().Add(time.Hour)}
	assert.False(t, fresh.IsExpired())

	stale := Credentials{Expiry: time.Now().Add(-time.Minute)}
	assert.True(t, stale.IsExpired())

	// Zero expiry means the server never supplied a lifetime.
	zero := Credentials{}
	assert.False(t, zero.IsExpired())
}

func TestCredentials_NeedsRefresh(t *testing.T) {
	expired := Credentials{
		Expiry:       time.Now().Add(-time.Minute),
		RefreshToken: "refresh",
	}
	assert.True(t, expired.NeedsRefresh())

	expiredNoRefresh := Credentials{Expiry: time.Now().Add(-time.Minute)}
	assert.False(t, expiredNoRefresh.NeedsRefresh())

	valid := Credentials{
		Expiry:       time.Now().Add(time.Hour),
		RefreshToken: "refresh",
	}
	assert.False(t, valid.NeedsRefresh())
}
