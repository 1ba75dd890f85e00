package state

import (
	"database/sql"
	"encoding/json"
	"slices"

	"github.com/llehouerou/streamus/internal/playlist"
)

// Mock is an in-memory test double for Manager. Values go through JSON so
// tests see exactly what would be persisted.
type Mock struct {
	values map[string][]byte
	queue  []playlist.ItemSnapshot
	saves  map[string]int
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{
		values: make(map[string][]byte),
		saves:  make(map[string]int),
	}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) Load(key string, v any) (bool, error) {
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (m *Mock) Save(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	m.values[key] = raw
	m.saves[key]++
}

func (m *Mock) SaveQueue(items []playlist.ItemSnapshot) {
	m.queue = slices.Clone(items)
	m.saves["queue"]++
}

func (m *Mock) GetQueue() ([]playlist.ItemSnapshot, error) {
	return slices.Clone(m.queue), nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

// Raw returns the JSON stored under key.
func (m *Mock) Raw(key string) string { return string(m.values[key]) }

// SaveCount returns how many times key was saved ("queue" for SaveQueue).
func (m *Mock) SaveCount(key string) int { return m.saves[key] }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
