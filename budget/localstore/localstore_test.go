package localstore_test

import (
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-auth-client/budget"
	"github.com/jrsteele09/go-auth-client/budget/localstore"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, dataFolder string) *localstore.Store {
	t.Helper()
	store, err := localstore.New(dataFolder)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() }) //nolint:errcheck
	return store
}

func TestStore(t *testing.T) {
	t.Run("saved records survive a reopen", func(t *testing.T) {
		dataFolder := t.TempDir()

		store := newStore(t, dataFolder)
		require.NoError(t, store.SaveLocal(budget.Budget{ID: "local-1", Name: "First", TotalAmount: 100}))
		require.NoError(t, store.SaveLocal(budget.Budget{ID: "local-2", Name: "Second", TotalAmount: 200}))
		require.NoError(t, store.Close())

		reopened := newStore(t, dataFolder)
		budgets, err := reopened.LoadLocal()
		require.NoError(t, err)
		require.Len(t, budgets, 2)
		require.Equal(t, "First", budgets[0].Name)
		require.Equal(t, "Second", budgets[1].Name)
		require.Equal(t, float64(200), budgets[1].TotalAmount)
	})

	t.Run("saving an existing id overwrites it", func(t *testing.T) {
		store := newStore(t, t.TempDir())

		require.NoError(t, store.SaveLocal(budget.Budget{ID: "local-1", Name: "Before"}))
		require.NoError(t, store.SaveLocal(budget.Budget{ID: "local-1", Name: "After"}))

		budgets, err := store.LoadLocal()
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		require.Equal(t, "After", budgets[0].Name)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		store := newStore(t, t.TempDir())

		require.NoError(t, store.SaveLocal(budget.Budget{ID: "local-1", Name: "Doomed"}))
		require.NoError(t, store.DeleteLocal(budget.ID("local-1")))

		budgets, err := store.LoadLocal()
		require.NoError(t, err)
		require.Empty(t, budgets)
	})

	t.Run("deleting an unknown id is not an error", func(t *testing.T) {
		store := newStore(t, t.TempDir())
		require.NoError(t, store.DeleteLocal(budget.ID("missing")))
	})

	t.Run("creates the data folder on first open", func(t *testing.T) {
		dataFolder := filepath.Join(t.TempDir(), "data")

		store := newStore(t, dataFolder)
		require.DirExists(t, dataFolder)
		require.NoError(t, store.SaveLocal(budget.Budget{ID: "local-1", Name: "First"}))

		budgets, err := store.LoadLocal()
		require.NoError(t, err)
		require.Len(t, budgets, 1)
	})

	t.Run("an empty database loads nothing", func(t *testing.T) {
		store := newStore(t, t.TempDir())
		budgets, err := store.LoadLocal()
		require.NoError(t, err)
		require.Empty(t, budgets)
	})
}
