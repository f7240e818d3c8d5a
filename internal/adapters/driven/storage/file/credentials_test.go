package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiplewords/studio-cli/internal/core/domain"
)

func TestCredentialsStore_EmptyByDefault(t *testing.T) {
	store, err := NewCredentialsStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestCredentialsStore_SaveAndGet(t *testing.T) {
	store, err := NewCredentialsStore(t.TempDir())
	require.NoError(t, err)

	creds := domain.Credentials{
		AccessToken:  "access-tok",
		RefreshToken: "refresh-tok",
		Expiry:       time.Now().Add(time.Hour).UTC(),
		UserID:       "user-42",
	}
	store.Save(creds)

	got, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, creds, got)
}

func TestCredentialsStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewCredentialsStore(dir)
	require.NoError(t, err)
	store.Save(domain.Credentials{AccessToken: "access-tok", UserID: "user-42"})

	reopened, err := NewCredentialsStore(dir)
	require.NoError(t, err)

	got, ok := reopened.Get()
	require.True(t, ok)
	assert.Equal(t, "access-tok", got.AccessToken)
	assert.Equal(t, "user-42", got.UserID)
}

func TestCredentialsStore_ClearRemovesFile(t *testing.T) {
	dir := t.TempDir()

	store, err := NewCredentialsStore(dir)
	require.NoError(t, err)
	store.Save(domain.Credentials{AccessToken: "access-tok", UserID: "user-42"})
	store.Clear()

	_, ok := store.Get()
	assert.False(t, ok)
	_, statErr := os.Stat(filepath.Join(dir, sessionFileName))
	assert.True(t, os.IsNotExist(statErr))

	reopened, err := NewCredentialsStore(dir)
	require.NoError(t, err)
	_, ok = reopened.Get()
	assert.False(t, ok, "cleared session must not come back after reopen")
}

func TestCredentialsStore_ClearWithoutSessionIsNoOp(t *testing.T) {
	store, err := NewCredentialsStore(t.TempDir())
	require.NoError(t, err)

	store.Clear()

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestCredentialsStore_CorruptFileTreatedAsSignedOut(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFileName), []byte("not json"), 0600))

	store, err := NewCredentialsStore(dir)
	require.NoError(t, err)

	_, ok := store.Get()
	assert.False(t, ok)
	_, statErr := os.Stat(filepath.Join(dir, sessionFileName))
	assert.True(t, os.IsNotExist(statErr), "corrupt file should be removed")
}

func TestCredentialsStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewCredentialsStore(dir)
	require.NoError(t, err)
	store.Save(domain.Credentials{AccessToken: "access-tok"})

	info, err := os.Stat(filepath.Join(dir, sessionFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
