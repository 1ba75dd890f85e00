package radio

import (
	"context"
	"slices"
	"sync"

	"github.com/llehouerou/streamus/internal/playlist"
)

// MockProvider is a test double for Provider and Searcher. It is safe for
// concurrent use since callers fetch from goroutines.
type MockProvider struct {
	mu       sync.Mutex
	related  map[string][]playlist.Track
	searches map[string][]playlist.Track
	errs     map[string]error
	calls    []string
	queries  []string
}

// NewMockProvider creates a mock with no canned results.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		related:  make(map[string][]playlist.Track),
		searches: make(map[string][]playlist.Track),
		errs:     make(map[string]error),
	}
}

// SetRelated sets the tracks returned for seed id.
func (m *MockProvider) SetRelated(id string, tracks ...playlist.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.related[id] = tracks
}

// SetSearch sets the tracks returned for query.
func (m *MockProvider) SetSearch(query string, tracks ...playlist.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches[query] = tracks
}

// SetError makes lookups of key (seed id or query) fail.
func (m *MockProvider) SetError(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[key] = err
}

func (m *MockProvider) Related(ctx context.Context, seed playlist.Track) ([]playlist.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, seed.ID)
	if err := m.errs[seed.ID]; err != nil {
		return nil, err
	}
	return slices.Clone(m.related[seed.ID]), ctx.Err()
}

func (m *MockProvider) Search(ctx context.Context, query string, limit int) ([]playlist.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if err := m.errs[query]; err != nil {
		return nil, err
	}
	res := slices.Clone(m.searches[query])
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, ctx.Err()
}

// Calls returns the seed ids Related was called with.
func (m *MockProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// Queries returns the queries Search was called with.
func (m *MockProvider) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.queries)
}

var (
	_ Provider = (*MockProvider)(nil)
	_ Searcher = (*MockProvider)(nil)
	_ Provider = (*YouTube)(nil)
	_ Searcher = (*YouTube)(nil)
	_ Provider = (*Lastfm)(nil)
	_ Provider = (*Cached)(nil)
	_ Provider = Chain(nil)
)
