package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

const queryTimeout = 3 * time.Second

var ErrStoreNotMigrated = errors.New("kv_store table is missing, run migrations first")

var _ domain.KeyValueStore = (*SQLStore)(nil)

// SQLStore keeps documents in a single kv_store table. The same queries run
// on SQLite and Postgres; only bulk deletion differs.
type SQLStore struct {
	db       *sqlx.DB
	postgres bool
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	driver := db.DriverName()
	return &SQLStore{
		db:       db,
		postgres: driver == "pgx" || driver == "postgres",
	}
}

// OpenSQLite opens (and migrates) the local database file at path.
func OpenSQLite(path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	if err := RunSQLiteMigrations(dsn); err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	return NewSQLStore(db), nil
}

func OpenPostgres(dsn string) (*SQLStore, error) {
	if err := RunPostgresMigrations(dsn); err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return NewSQLStore(db), nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var value []byte
	query := s.db.Rebind(`SELECT value FROM kv_store WHERE key = ?`)
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("repository: get %s failed: %w", key, mapSQLError(err))
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetMany(ctx, map[string][]byte{key: value})
}

const upsertQuery = `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at`

// SetMany writes every entry in one transaction.
func (s *SQLStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin failed: %w", mapSQLError(err))
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(upsertQuery))
	if err != nil {
		return fmt.Errorf("repository: prepare upsert failed: %w", mapSQLError(err))
	}
	defer stmt.Close()

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := stmt.ExecContext(ctx, key, entries[key]); err != nil {
			return fmt.Errorf("repository: upsert %s failed: %w", key, mapSQLError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit failed: %w", mapSQLError(err))
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var err error
	if s.postgres {
		_, err = s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ANY($1)`, pq.Array(keys))
	} else {
		var query string
		var args []interface{}
		query, args, err = sqlx.In(`DELETE FROM kv_store WHERE key IN (?)`, keys)
		if err == nil {
			_, err = s.db.ExecContext(ctx, s.db.Rebind(query), args...)
		}
	}

	if err != nil {
		return fmt.Errorf("repository: delete failed: %w", mapSQLError(err))
	}
	return nil
}

func (s *SQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	keys := []string{}
	query := s.db.Rebind(`SELECT key FROM kv_store WHERE key LIKE ? ESCAPE '\' ORDER BY key`)
	if err := s.db.SelectContext(ctx, &keys, query, escapeLike(prefix)+"%"); err != nil {
		return nil, fmt.Errorf("repository: list keys failed: %w", mapSQLError(err))
	}
	return keys, nil
}

func (s *SQLStore) Clear(ctx context.Context, prefix string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := s.db.Rebind(`DELETE FROM kv_store WHERE key LIKE ? ESCAPE '\'`)
	if _, err := s.db.ExecContext(ctx, query, escapeLike(prefix)+"%"); err != nil {
		return fmt.Errorf("repository: clear failed: %w", mapSQLError(err))
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// mapSQLError turns a missing table into ErrStoreNotMigrated, whichever
// Postgres driver reported it.
func mapSQLError(err error) error {
	const undefinedTable = "42P01"

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
		return ErrStoreNotMigrated
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return ErrStoreNotMigrated
	}

	if strings.Contains(err.Error(), "no such table: kv_store") {
		return ErrStoreNotMigrated
	}
	return err
}
