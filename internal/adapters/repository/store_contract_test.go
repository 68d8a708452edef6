package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// runStoreContract checks the behaviour every KeyValueStore must share.
func runStoreContract(t *testing.T, store domain.KeyValueStore) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Clear(ctx, "test_"))

	t.Run("Missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "test_missing")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "test_stats", []byte(`{"water":1}`)))
		require.NoError(t, store.Set(ctx, "test_stats", []byte(`{"water":2}`)))

		got, err := store.Get(ctx, "test_stats")
		require.NoError(t, err)
		assert.JSONEq(t, `{"water":2}`, string(got))
	})

	t.Run("SetMany and Keys", func(t *testing.T) {
		require.NoError(t, store.SetMany(ctx, map[string][]byte{
			"test_habits": []byte(`[]`),
			"test_tasks":  []byte(`[]`),
			"other_tasks": []byte(`[]`),
		}))

		keys, err := store.Keys(ctx, "test_")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"test_habits", "test_stats", "test_tasks"}, keys)
	})

	t.Run("Prefix is matched literally", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "testXhabits", []byte(`1`)))
		keys, err := store.Keys(ctx, "test_")
		require.NoError(t, err)
		assert.NotContains(t, keys, "testXhabits")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "test_habits", "test_tasks", "test_never_written"))
		_, err := store.Get(ctx, "test_habits")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
		require.NoError(t, store.Delete(ctx))
	})

	t.Run("Clear only touches the prefix", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx, "test_"))

		keys, err := store.Keys(ctx, "test_")
		require.NoError(t, err)
		assert.Empty(t, keys)

		_, err = store.Get(ctx, "other_tasks")
		assert.NoError(t, err)
	})

	require.NoError(t, store.Clear(ctx, "other_"))
	require.NoError(t, store.Delete(ctx, "testXhabits"))
}
