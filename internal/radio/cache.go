package radio

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/streamus/internal/db"
	"github.com/llehouerou/streamus/internal/playlist"
)

// DefaultCacheTTLDays is how long related tracks stay fresh.
const DefaultCacheTTLDays = 7

// Cache stores related tracks in SQLite, keyed by seed track id.
type Cache struct {
	db      *sql.DB
	ttlDays int
	now     func() time.Time
}

// NewCache creates a new Cache instance.
func NewCache(sqlDB *sql.DB, ttlDays int) *Cache {
	if ttlDays <= 0 {
		ttlDays = DefaultCacheTTLDays
	}
	return &Cache{db: sqlDB, ttlDays: ttlDays, now: time.Now}
}

func (c *Cache) expiry() int64 {
	return c.now().AddDate(0, 0, -c.ttlDays).Unix()
}

// Get returns cached related tracks for trackID. The second result is false
// when nothing is cached or the entry expired.
func (c *Cache) Get(ctx context.Context, trackID string) ([]playlist.Track, bool, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT related_id, title, author, duration_ms, fetched_at
		FROM related_tracks_cache
		WHERE track_id = ?
		ORDER BY rank ASC
	`, trackID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	expiry := c.expiry()
	var result []playlist.Track
	for rows.Next() {
		var (
			t          playlist.Track
			author     sql.NullString
			durationMs int64
			fetchedAt  int64
		)
		if err := rows.Scan(&t.ID, &t.Title, &author, &durationMs, &fetchedAt); err != nil {
			return nil, false, err
		}
		// Entries are written together; one stale row means all are.
		if fetchedAt < expiry {
			return nil, false, nil
		}
		t.Author = db.NullStringValue(author)
		t.Duration = time.Duration(durationMs) * time.Millisecond
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return result, len(result) > 0, nil
}

// Set replaces the cached related tracks for trackID.
func (c *Cache) Set(ctx context.Context, trackID string, tracks []playlist.Track) error {
	now := c.now().Unix()
	return db.WithTx(ctx, c.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM related_tracks_cache WHERE track_id = ?`, trackID); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO related_tracks_cache
				(track_id, rank, related_id, title, author, duration_ms, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range tracks {
			_, err := stmt.ExecContext(ctx, trackID, i, t.ID, t.Title, db.NullString(t.Author),
				t.Duration.Milliseconds(), now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CleanExpired removes all expired cache entries.
func (c *Cache) CleanExpired(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM related_tracks_cache WHERE fetched_at < ?`, c.expiry())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Cached serves related tracks from a Cache, falling back to a provider and
// storing what it returns.
type Cached struct {
	next  Provider
	cache *Cache
	log   zerolog.Logger
}

// NewCached wraps next with cache.
func NewCached(next Provider, cache *Cache, log zerolog.Logger) *Cached {
	return &Cached{next: next, cache: cache, log: log.With().Str("component", "radio-cache").Logger()}
}

func (c *Cached) Related(ctx context.Context, seed playlist.Track) ([]playlist.Track, error) {
	tracks, ok, err := c.cache.Get(ctx, seed.ID)
	if err != nil {
		c.log.Warn().Err(err).Str("track", seed.ID).Msg("related cache read failed")
	}
	if ok {
		return tracks, nil
	}

	tracks, err = c.next.Related(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("related tracks: %w", err)
	}
	if len(tracks) > 0 {
		if err := c.cache.Set(ctx, seed.ID, tracks); err != nil {
			c.log.Warn().Err(err).Str("track", seed.ID).Msg("related cache write failed")
		}
	}
	return tracks, nil
}
