// Package db holds small helpers shared by the SQLite-backed stores.
package db

import (
	"context"
	"database/sql"
)

// WithTx executes fn within a transaction.
// It rolls back on error and commits on success.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// NullString maps the empty string to NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringValue returns the string value or empty string if not valid.
func NullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// BoolInt stores a bool in an INTEGER column.
func BoolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
