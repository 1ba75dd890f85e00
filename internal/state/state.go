// Package state persists the whitelisted parts of the player and stream to a
// local SQLite database.
package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/streamus/internal/debounce"
	"github.com/llehouerou/streamus/internal/playlist"
)

const (
	appName      = "streamus"
	dbFileName   = "streamus.db"
	saveDebounce = 500 * time.Millisecond
)

// Keys of the persisted records.
const (
	KeyPlayer = "player"
	KeyStream = "stream"
	KeyModes  = "modes"
)

type Manager struct {
	db  *sql.DB
	log zerolog.Logger

	saver   *debounce.Pending
	writeMu sync.Mutex

	saveMu       sync.Mutex
	pending      map[string][]byte
	pendingQueue *[]playlist.ItemSnapshot
}

// Open opens the database under the XDG data directory.
func Open(log zerolog.Logger) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath, log)
}

// OpenPath opens the database at path, creating it when missing.
func OpenPath(dbPath string, log zerolog.Logger) (*Manager, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return newManager(db, log), nil
}

func newManager(db *sql.DB, log zerolog.Logger) *Manager {
	return &Manager{
		db:      db,
		log:     log.With().Str("component", "state").Logger(),
		saver:   debounce.New(saveDebounce),
		pending: make(map[string][]byte),
	}
}

// Close writes everything still pending and closes the database.
func (m *Manager) Close() error {
	m.saver.Stop()
	m.flush()

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// Load decodes the record stored under key into v. It reports false when
// nothing is stored.
func (m *Manager) Load(key string, v any) (bool, error) {
	m.saveMu.Lock()
	raw, ok := m.pending[key]
	m.saveMu.Unlock()

	if !ok {
		var err error
		raw, ok, err = getValue(context.Background(), m.db, key)
		if err != nil || !ok {
			return false, err
		}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Save records v under key. The write is debounced and failures are logged.
func (m *Manager) Save(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		m.log.Error().Err(err).Str("key", key).Msg("encode state")
		return
	}

	m.saveMu.Lock()
	m.pending[key] = raw
	m.saveMu.Unlock()

	m.saver.Trigger(m.flush)
}

// SaveQueue records the stream items. The write is debounced.
func (m *Manager) SaveQueue(items []playlist.ItemSnapshot) {
	m.saveMu.Lock()
	m.pendingQueue = &items
	m.saveMu.Unlock()

	m.saver.Trigger(m.flush)
}

// GetQueue returns the stored stream items in order.
func (m *Manager) GetQueue() ([]playlist.ItemSnapshot, error) {
	m.saveMu.Lock()
	pq := m.pendingQueue
	m.saveMu.Unlock()
	if pq != nil {
		return *pq, nil
	}
	return getQueue(context.Background(), m.db)
}

func (m *Manager) flush() {
	m.saveMu.Lock()
	pending := m.pending
	m.pending = make(map[string][]byte)
	pq := m.pendingQueue
	m.pendingQueue = nil
	m.saveMu.Unlock()

	if len(pending) == 0 && pq == nil {
		return
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	ctx := context.Background()
	for key, raw := range pending {
		if err := putValue(ctx, m.db, key, raw); err != nil {
			m.log.Error().Err(err).Str("key", key).Msg("save state")
		}
	}
	if pq != nil {
		if err := saveQueue(ctx, m.db, *pq); err != nil {
			m.log.Error().Err(err).Int("items", len(*pq)).Msg("save queue")
		}
	}
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
