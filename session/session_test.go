package session_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-client/session"
	"github.com/jrsteele09/go-auth-client/session/storagefakes"
	"github.com/jrsteele09/go-auth-client/users"
	"github.com/stretchr/testify/require"
)

func TestStore_Load(t *testing.T) {
	t.Run("both tokens present", func(t *testing.T) {
		storage := storagefakes.NewFakeStorage()
		require.NoError(t, storage.Set(session.AccessTokenKey, "access-123"))
		require.NoError(t, storage.Set(session.RefreshTokenKey, "refresh-456"))

		store, err := session.NewStore(storage)
		require.NoError(t, err)

		tokens, ok := store.Load()
		require.True(t, ok)
		require.Equal(t, "access-123", tokens.AccessToken)
		require.Equal(t, "refresh-456", tokens.RefreshToken)
	})

	t.Run("only access token present", func(t *testing.T) {
		storage := storagefakes.NewFakeStorage()
		require.NoError(t, storage.Set(session.AccessTokenKey, "access-123"))

		store, err := session.NewStore(storage)
		require.NoError(t, err)

		tokens, ok := store.Load()
		require.False(t, ok)
		require.Empty(t, tokens.AccessToken)
		require.False(t, store.IsAuthenticated())
	})

	t.Run("only refresh token present", func(t *testing.T) {
		storage := storagefakes.NewFakeStorage()
		require.NoError(t, storage.Set(session.RefreshTokenKey, "refresh-456"))

		store, err := session.NewStore(storage)
		require.NoError(t, err)

		_, ok := store.Load()
		require.False(t, ok)
		require.False(t, store.IsAuthenticated())
	})

	t.Run("empty storage", func(t *testing.T) {
		store, err := session.NewStore(storagefakes.NewFakeStorage())
		require.NoError(t, err)

		_, ok := store.Load()
		require.False(t, ok)
	})
}

func TestStore_IsAuthenticated(t *testing.T) {
	newStoreWithTokens := func(t *testing.T) *session.Store {
		t.Helper()
		store, err := session.NewStore(storagefakes.NewFakeStorage())
		require.NoError(t, err)
		require.NoError(t, store.Save(session.Tokens{AccessToken: "access", RefreshToken: "refresh"}))
		return store
	}

	t.Run("tokens without user are not authenticated", func(t *testing.T) {
		store := newStoreWithTokens(t)
		require.False(t, store.IsAuthenticated())
	})

	t.Run("tokens plus user are authenticated", func(t *testing.T) {
		store := newStoreWithTokens(t)
		require.NoError(t, store.SetUser(&users.User{ID: "user-1", Email: "a@b.com"}))
		require.True(t, store.IsAuthenticated())
	})

	t.Run("false immediately after clear", func(t *testing.T) {
		store := newStoreWithTokens(t)
		require.NoError(t, store.SetUser(&users.User{ID: "user-1"}))
		require.True(t, store.IsAuthenticated())

		require.NoError(t, store.Clear())
		require.False(t, store.IsAuthenticated())
		require.Empty(t, store.AccessToken())
		require.Nil(t, store.User())
	})

	t.Run("user cannot be attached without tokens", func(t *testing.T) {
		store, err := session.NewStore(storagefakes.NewFakeStorage())
		require.NoError(t, err)

		err = store.SetUser(&users.User{ID: "user-1"})
		require.Error(t, err)
		require.False(t, store.IsAuthenticated())
	})
}

func TestStore_Save(t *testing.T) {
	t.Run("persists and overwrites", func(t *testing.T) {
		storage := storagefakes.NewFakeStorage()
		store, err := session.NewStore(storage)
		require.NoError(t, err)

		require.NoError(t, store.Save(session.Tokens{AccessToken: "first", RefreshToken: "refresh"}))
		require.NoError(t, store.Save(session.Tokens{AccessToken: "second", RefreshToken: "refresh"}))

		stored, err := storage.Get(session.AccessTokenKey)
		require.NoError(t, err)
		require.Equal(t, "second", stored)
	})

	t.Run("clear removes persisted tokens", func(t *testing.T) {
		storage := storagefakes.NewFakeStorage()
		store, err := session.NewStore(storage)
		require.NoError(t, err)
		require.NoError(t, store.Save(session.Tokens{AccessToken: "access", RefreshToken: "refresh"}))

		require.NoError(t, store.Clear())

		_, err = storage.Get(session.AccessTokenKey)
		require.Error(t, err)
		_, err = storage.Get(session.RefreshTokenKey)
		require.Error(t, err)
	})
}

func TestStore_UpdateAccessToken(t *testing.T) {
	storage := storagefakes.NewFakeStorage()
	store, err := session.NewStore(storage)
	require.NoError(t, err)
	require.NoError(t, store.Save(session.Tokens{AccessToken: "old", RefreshToken: "refresh"}))

	require.NoError(t, store.UpdateAccessToken("new"))

	require.Equal(t, "new", store.AccessToken())
	require.Equal(t, "refresh", store.RefreshToken())

	persisted, err := storage.Get(session.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "new", persisted)
}
