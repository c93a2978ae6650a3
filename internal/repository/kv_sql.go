package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nashra-news-api/internal/database"
)

const kvTable = "kv_entries"

// sqlKV is the KVStore backed by the kv_entries table
type sqlKV struct {
	db *database.DB
	sb sq.StatementBuilderType
}

// NewSQLKV creates a key-value store on db, using the placeholder style of
// its driver
func NewSQLKV(db *database.DB) KVStore {
	var format sq.PlaceholderFormat = sq.Question
	if db.Driver() == database.DriverPostgres {
		format = sq.Dollar
	}
	return &sqlKV{db: db, sb: sq.StatementBuilder.PlaceholderFormat(format)}
}

// Get returns the stored value; a missing key is not an error
func (r *sqlKV) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := r.sb.Select("value").
		From(kvTable).
		Where(sq.Eq{"storage_key": key}).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts a value
func (r *sqlKV) Set(ctx context.Context, key, value string) error {
	query, args, err := r.sb.Insert(kvTable).
		Columns("storage_key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT (storage_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *sqlKV) Delete(ctx context.Context, key string) error {
	query, args, err := r.sb.Delete(kvTable).
		Where(sq.Eq{"storage_key": key}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *sqlKV) Count(ctx context.Context) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").From(kvTable).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}
