package state

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

func getValue(ctx context.Context, db *sql.DB, key string) ([]byte, bool, error) {
	var raw string
	err := db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(raw), true, nil
}

func putValue(ctx context.Context, db *sql.DB, key string, raw []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(raw), time.Now().Unix())
	return err
}
