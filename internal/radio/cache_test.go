package radio

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/streamus/internal/playlist"
	"github.com/llehouerou/streamus/internal/state"
)

// setupTestDB opens an in-memory state database with the cache table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	mgr, err := state.OpenPath(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr.DB()
}

func related() []playlist.Track {
	return []playlist.Track{
		{ID: "r1", Title: "First", Author: "A", Duration: 3 * time.Minute},
		{ID: "r2", Title: "Second"},
	}
}

func TestCache_Empty(t *testing.T) {
	cache := NewCache(setupTestDB(t), 7)

	result, ok, err := cache.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(setupTestDB(t), 7)

	require.NoError(t, cache.Set(ctx, "seed", related()))

	got, ok, err := cache.Get(ctx, "seed")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, related(), got, "rank order and fields survive")
}

func TestCache_SetReplaces(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(setupTestDB(t), 7)

	require.NoError(t, cache.Set(ctx, "seed", related()))
	require.NoError(t, cache.Set(ctx, "seed", []playlist.Track{{ID: "r3", Title: "Third"}}))

	got, ok, err := cache.Get(ctx, "seed")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "r3", got[0].ID)
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(setupTestDB(t), 7)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return base }

	require.NoError(t, cache.Set(ctx, "seed", related()))

	cache.now = func() time.Time { return base.AddDate(0, 0, 6) }
	_, ok, err := cache.Get(ctx, "seed")
	require.NoError(t, err)
	assert.True(t, ok)

	cache.now = func() time.Time { return base.AddDate(0, 0, 8) }
	_, ok, err = cache.Get(ctx, "seed")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := cache.CleanExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(setupTestDB(t), 7)
	next := NewMockProvider()
	next.SetRelated("seed", related()...)
	p := NewCached(next, cache, zerolog.Nop())

	first, err := p.Related(ctx, playlist.Track{ID: "seed"})
	require.NoError(t, err)
	second, err := p.Related(ctx, playlist.Track{ID: "seed"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"seed"}, next.Calls(), "second call is served from the cache")
}

func TestCached_EmptyResultsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := NewMockProvider()
	p := NewCached(next, NewCache(setupTestDB(t), 7), zerolog.Nop())

	_, err := p.Related(ctx, playlist.Track{ID: "seed"})
	require.NoError(t, err)
	_, err = p.Related(ctx, playlist.Track{ID: "seed"})
	require.NoError(t, err)
	assert.Len(t, next.Calls(), 2)
}

func TestCached_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	next := NewMockProvider()
	next.SetError("seed", boom)
	p := NewCached(next, NewCache(setupTestDB(t), 7), zerolog.Nop())

	_, err := p.Related(context.Background(), playlist.Track{ID: "seed"})
	require.ErrorIs(t, err, boom)
}
