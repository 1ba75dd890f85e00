package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE test_table (id INTEGER PRIMARY KEY, value TEXT)`)
	if err != nil {
		db.Close()
		t.Fatalf("failed to create table: %v", err)
	}

	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM test_table`).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func TestWithTx_Commit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, "test")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	if n := countRows(t, db); n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}
}

func TestWithTx_Rollback(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	boom := errors.New("boom")
	err := WithTx(context.Background(), db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, "test"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx error = %v, want %v", err, boom)
	}

	if n := countRows(t, db); n != 0 {
		t.Errorf("rows = %d, want 0 after rollback", n)
	}
}

func TestNullString(t *testing.T) {
	if NullString("").Valid {
		t.Error("NullString(\"\") should be NULL")
	}
	if got := NullStringValue(NullString("x")); got != "x" {
		t.Errorf("round trip = %q, want x", got)
	}
	if got := NullStringValue(sql.NullString{}); got != "" {
		t.Errorf("NullStringValue(NULL) = %q, want empty", got)
	}
}

func TestBoolInt(t *testing.T) {
	if BoolInt(true) != 1 || BoolInt(false) != 0 {
		t.Error("BoolInt mapping is wrong")
	}
}
