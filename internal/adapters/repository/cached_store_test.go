package repository

import (
	"context"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/cache"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	rdb, err := cache.NewRedisClient(context.Background(), cache.Options{Addr: getEnv("REDIS_ADDR", "localhost:6379"), Password: getEnv("REDIS_PASSWORD", ""), DB: 1})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	require.NoError(t, rdb.FlushDB(context.Background()).Err(), "Failed to flush test DB")
	return rdb
}

func TestCachedStore_Integration(t *testing.T) {
	rdb := setupRedis(t)
	defer rdb.Close()

	runStoreContract(t, NewCachedStore(NewMemoryStore(), rdb, time.Minute, nil))
}

func TestCachedStore_ReadThroughAndInvalidate(t *testing.T) {
	rdb := setupRedis(t)
	defer rdb.Close()

	ctx := context.Background()
	backing := NewMemoryStore()
	store := NewCachedStore(backing, rdb, time.Minute, nil)

	require.NoError(t, backing.Set(ctx, "kanso_stats", []byte(`{"water":1}`)))

	got, err := store.Get(ctx, "kanso_stats")
	require.NoError(t, err)
	assert.Equal(t, `{"water":1}`, string(got))

	cached, err := rdb.Get(ctx, "kv:kanso_stats").Result()
	require.NoError(t, err)
	assert.Equal(t, `{"water":1}`, cached)

	require.NoError(t, store.SetMany(ctx, map[string][]byte{"kanso_stats": []byte(`{"water":2}`)}))
	_, err = rdb.Get(ctx, "kv:kanso_stats").Result()
	assert.ErrorIs(t, err, redis.Nil, "writes drop the cached copy")

	got, err = store.Get(ctx, "kanso_stats")
	require.NoError(t, err)
	assert.Equal(t, `{"water":2}`, string(got))

	require.NoError(t, store.Clear(ctx, "kanso_"))
	_, err = rdb.Get(ctx, "kv:kanso_stats").Result()
	assert.ErrorIs(t, err, redis.Nil)
}
