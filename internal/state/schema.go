package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS stream_items (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL UNIQUE,
			track_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			track_title TEXT NOT NULL,
			author TEXT,
			url TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			active INTEGER NOT NULL DEFAULT 0,
			played_recently INTEGER NOT NULL DEFAULT 0,
			related TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_stream_items_position ON stream_items(position);

		CREATE TABLE IF NOT EXISTS related_tracks_cache (
			track_id TEXT NOT NULL,
			rank INTEGER NOT NULL,
			related_id TEXT NOT NULL,
			title TEXT NOT NULL,
			author TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (track_id, related_id)
		);

		CREATE INDEX IF NOT EXISTS idx_related_tracks_cache_fetched ON related_tracks_cache(fetched_at);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
