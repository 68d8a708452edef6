package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "kanso.db"))
	require.NoError(t, err)
	defer store.Close()

	runStoreContract(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kanso.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "kanso_reading_goal", []byte("6")))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err, "migrations are idempotent")
	defer reopened.Close()

	got, err := reopened.Get(ctx, "kanso_reading_goal")
	require.NoError(t, err)
	assert.Equal(t, "6", string(got))
}

func TestSQLiteStore_NotMigrated(t *testing.T) {
	db, err := sqlx.Connect("sqlite", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQLStore(db).Get(context.Background(), "kanso_stats")
	assert.ErrorIs(t, err, ErrStoreNotMigrated)
}

func TestPostgresStore_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "kanso_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "kanso_db"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	db.Close()

	store, err := OpenPostgres(dsn)
	require.NoError(t, err)
	defer store.Close()

	runStoreContract(t, store)

	t.Run("State round trip", func(t *testing.T) {
		ctx := context.Background()
		repo := NewStateRepository(store, "it_", nil)
		defer repo.Clear(ctx)

		st := domain.DefaultAppState()
		st.Stats.Water = 1.5
		st.Stats.History.Record(domain.DaySnapshot{Date: "2024-06-01", Water: 1.5})
		require.NoError(t, repo.Save(ctx, st, domain.ChangeAll))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1.5, loaded.Stats.Water)
		assert.Len(t, loaded.Stats.History, 1)
	})
}
