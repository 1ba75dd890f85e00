package state

import (
	"context"
	"database/sql"
	"testing"
	"testing/synctest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/llehouerou/streamus/internal/playlist"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

type playerRecord struct {
	Volume int  `json:"volume"`
	Muted  bool `json:"muted"`
}

func TestInitSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := initSchema(db); err != nil {
		t.Fatalf("second initSchema failed: %v", err)
	}
}

func TestGetValue_Missing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, ok, err := getValue(context.Background(), db, KeyPlayer)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutValue_Upsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, putValue(ctx, db, KeyPlayer, []byte(`{"volume":10}`)))
	require.NoError(t, putValue(ctx, db, KeyPlayer, []byte(`{"volume":20}`)))

	raw, ok, err := getValue(ctx, db, KeyPlayer)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"volume":20}`, string(raw))
}

func TestSaveAndGetQueue(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	items := []playlist.ItemSnapshot{
		{
			ID:    "1",
			Track: playlist.Track{ID: "a", Title: "A", Author: "x", Duration: 3 * time.Minute},
			Title: "A renamed",
		},
		{
			ID:             "2",
			Track:          playlist.Track{ID: "b", Title: "B"},
			Title:          "B",
			Active:         true,
			PlayedRecently: true,
			Related:        []playlist.Track{{ID: "r", Title: "R"}},
		},
	}

	require.NoError(t, saveQueue(ctx, db, items))
	got, err := getQueue(ctx, db)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "A renamed", got[0].Title)
	assert.Equal(t, "x", got[0].Track.Author)
	assert.Equal(t, 3*time.Minute, got[0].Track.Duration)
	assert.Equal(t, 0, got[0].Sequence)
	assert.True(t, got[1].Active)
	assert.True(t, got[1].PlayedRecently)
	assert.Equal(t, items[1].Related, got[1].Related)

	// Saving again replaces the previous rows.
	require.NoError(t, saveQueue(ctx, db, items[1:]))
	got, err = getQueue(ctx, db)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Track.ID)
}

func TestManager_SaveIsDebounced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		db := setupTestDB(t)
		m := newManager(db, zerolog.Nop())

		m.Save(KeyPlayer, playerRecord{Volume: 10})
		m.Save(KeyPlayer, playerRecord{Volume: 30, Muted: true})

		_, ok, err := getValue(context.Background(), db, KeyPlayer)
		require.NoError(t, err)
		assert.False(t, ok, "nothing should be written before the debounce delay")

		// Pending values are visible to Load right away.
		var rec playerRecord
		ok, err = m.Load(KeyPlayer, &rec)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, playerRecord{Volume: 30, Muted: true}, rec)

		time.Sleep(saveDebounce + 10*time.Millisecond)
		synctest.Wait()

		raw, ok, err := getValue(context.Background(), db, KeyPlayer)
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `{"volume":30,"muted":true}`, string(raw))

		require.NoError(t, m.Close())
	})
}

func TestManager_CloseFlushesPending(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/state.db"

	m, err := OpenPath(path, zerolog.Nop())
	require.NoError(t, err)
	m.Save(KeyModes, map[string]any{"shuffle": true})
	m.SaveQueue([]playlist.ItemSnapshot{{ID: "1", Track: playlist.Track{ID: "a", Title: "A"}, Title: "A"}})
	require.NoError(t, m.Close())

	m, err = OpenPath(path, zerolog.Nop())
	require.NoError(t, err)
	defer m.Close()

	var modes map[string]any
	ok, err := m.Load(KeyModes, &modes)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, true, modes["shuffle"])

	q, err := m.GetQueue()
	require.NoError(t, err)
	require.Len(t, q, 1)
	assert.Equal(t, "a", q[0].Track.ID)
}

func TestManager_LoadMissing(t *testing.T) {
	db := setupTestDB(t)
	m := newManager(db, zerolog.Nop())
	defer m.Close()

	var rec playerRecord
	ok, err := m.Load(KeyStream, &rec)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMock_RoundTrip(t *testing.T) {
	m := NewMock()

	m.Save(KeyPlayer, playerRecord{Volume: 42})
	var rec playerRecord
	ok, err := m.Load(KeyPlayer, &rec)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, rec.Volume)
	assert.Equal(t, 1, m.SaveCount(KeyPlayer))
}
