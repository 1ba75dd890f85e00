package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	dbutil "github.com/llehouerou/streamus/internal/db"
	"github.com/llehouerou/streamus/internal/playlist"
)

func getQueue(ctx context.Context, db *sql.DB) ([]playlist.ItemSnapshot, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, position, track_id, title, track_title, author, url,
		       duration_ms, active, played_recently, related
		FROM stream_items
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []playlist.ItemSnapshot
	for rows.Next() {
		var s playlist.ItemSnapshot
		var author, url, related sql.NullString
		var durationMs int64

		err := rows.Scan(&s.ID, &s.Sequence, &s.Track.ID, &s.Title, &s.Track.Title,
			&author, &url, &durationMs, &s.Active, &s.PlayedRecently, &related)
		if err != nil {
			return nil, err
		}

		s.Track.Author = dbutil.NullStringValue(author)
		s.Track.URL = dbutil.NullStringValue(url)
		s.Track.Duration = time.Duration(durationMs) * time.Millisecond
		if related.Valid && related.String != "" {
			if err := json.Unmarshal([]byte(related.String), &s.Related); err != nil {
				return nil, err
			}
		}
		items = append(items, s)
	}

	return items, rows.Err()
}

func saveQueue(ctx context.Context, sqlDB *sql.DB, items []playlist.ItemSnapshot) error {
	return dbutil.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stream_items`); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO stream_items (id, position, track_id, title, track_title, author,
			                          url, duration_ms, active, played_recently, related)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, s := range items {
			var related sql.NullString
			if len(s.Related) > 0 {
				raw, err := json.Marshal(s.Related)
				if err != nil {
					return err
				}
				related = sql.NullString{String: string(raw), Valid: true}
			}
			_, err := stmt.ExecContext(ctx,
				s.ID, i, s.Track.ID, s.Title, s.Track.Title,
				dbutil.NullString(s.Track.Author), dbutil.NullString(s.Track.URL),
				s.Track.Duration.Milliseconds(),
				dbutil.BoolInt(s.Active), dbutil.BoolInt(s.PlayedRecently), related,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
