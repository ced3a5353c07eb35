package filestorage_test

import (
	"testing"

	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session/filestorage"
	"github.com/stretchr/testify/require"
)

func TestStorage_RoundTrip(t *testing.T) {
	folder := t.TempDir()

	storage, err := filestorage.New(folder, "correct horse battery staple")
	require.NoError(t, err)

	require.NoError(t, storage.Set("idp_access_token", "access-123"))
	require.NoError(t, storage.Set("idp_refresh_token", "refresh-456"))

	value, err := storage.Get("idp_access_token")
	require.NoError(t, err)
	require.Equal(t, "access-123", value)

	// Reopen with the same passphrase and read back.
	reopened, err := filestorage.New(folder, "correct horse battery staple")
	require.NoError(t, err)

	value, err = reopened.Get("idp_refresh_token")
	require.NoError(t, err)
	require.Equal(t, "refresh-456", value)
}

func TestStorage_Delete(t *testing.T) {
	storage, err := filestorage.New(t.TempDir(), "pass")
	require.NoError(t, err)

	require.NoError(t, storage.Set("key", "value"))
	require.NoError(t, storage.Delete("key"))

	_, err = storage.Get("key")
	require.ErrorIs(t, err, interrors.ErrKeyNotFound)
}

func TestStorage_MissingKey(t *testing.T) {
	storage, err := filestorage.New(t.TempDir(), "pass")
	require.NoError(t, err)

	_, err = storage.Get("never-set")
	require.ErrorIs(t, err, interrors.ErrKeyNotFound)
}

func TestStorage_WrongPassphrase(t *testing.T) {
	folder := t.TempDir()

	storage, err := filestorage.New(folder, "right")
	require.NoError(t, err)
	require.NoError(t, storage.Set("key", "value"))

	wrong, err := filestorage.New(folder, "wrong")
	require.NoError(t, err)

	_, err = wrong.Get("key")
	require.Error(t, err)
	require.Contains(t, err.Error(), "decryption failed")
}

func TestStorage_RequiresPassphrase(t *testing.T) {
	_, err := filestorage.New(t.TempDir(), "")
	require.Error(t, err)
}
