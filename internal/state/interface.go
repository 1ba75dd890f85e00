package state

import (
	"database/sql"

	"github.com/llehouerou/streamus/internal/playlist"
)

// Store is the key-value contract the player and stream persist through.
// Save never blocks on I/O and logs its own failures.
type Store interface {
	Load(key string, v any) (bool, error)
	Save(key string, v any)
}

// QueueStore persists the stream items.
type QueueStore interface {
	SaveQueue(items []playlist.ItemSnapshot)
	GetQueue() ([]playlist.ItemSnapshot, error)
}

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	Store
	QueueStore
	DB() *sql.DB
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
